package store

import (
	"encoding/json"
	"fmt"
	"io"
)

// Settings is the JSON interchange shape for exporting and importing all
// user-entered settings. Preset descriptions are not exported and are
// preserved across imports.
type Settings struct {
	Organizer    Organizer           `json:"organizer"`
	Attorneys    []Attorney          `json:"attorneys"`
	Matters      map[string][]string `json:"matters"`
	Descriptions map[string][]string `json:"descriptions"`
	Locations    []Location          `json:"locations"`
}

// Export writes every user-entered setting as indented JSON.
func (s *Store) Export(w io.Writer) error {
	settings := Settings{
		Matters:      map[string][]string{},
		Descriptions: map[string][]string{},
	}

	var err error
	if settings.Organizer, err = s.Organizer(); err != nil {
		return fmt.Errorf("export organizer: %w", err)
	}
	if settings.Attorneys, err = s.ListAttorneys(); err != nil {
		return fmt.Errorf("export attorneys: %w", err)
	}

	matters, err := s.ListMatters()
	if err != nil {
		return fmt.Errorf("export matters: %w", err)
	}
	for _, name := range matters {
		recipients, err := s.MatterRecipients(name)
		if err != nil {
			return fmt.Errorf("export matter %q: %w", name, err)
		}
		settings.Matters[name] = recipients
	}

	descriptions, err := s.ListDescriptions()
	if err != nil {
		return fmt.Errorf("export descriptions: %w", err)
	}
	for _, d := range descriptions {
		if d.IsPreset {
			continue
		}
		settings.Descriptions[d.Name] = d.Reminders
	}

	if settings.Locations, err = s.ListLocations(); err != nil {
		return fmt.Errorf("export locations: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(settings)
}

// Import replaces all user-entered settings with the decoded JSON. Presets
// survive the import untouched.
func (s *Store) Import(r io.Reader) error {
	var settings Settings
	if err := json.NewDecoder(r).Decode(&settings); err != nil {
		return fmt.Errorf("decode settings: %w", err)
	}
	if settings.Matters == nil || settings.Descriptions == nil {
		return fmt.Errorf("settings file is missing required sections")
	}

	if err := s.clearUserData(); err != nil {
		return fmt.Errorf("clear settings: %w", err)
	}

	if err := s.SetOrganizer(settings.Organizer); err != nil {
		return fmt.Errorf("import organizer: %w", err)
	}
	for _, a := range settings.Attorneys {
		if err := s.AddAttorney(a.Name, a.Email); err != nil {
			return fmt.Errorf("import attorney %q: %w", a.Email, err)
		}
	}
	for name, recipients := range settings.Matters {
		if err := s.SaveMatter(name, recipients); err != nil {
			return fmt.Errorf("import matter %q: %w", name, err)
		}
	}
	for name, reminders := range settings.Descriptions {
		if err := s.SaveDescription(name, reminders); err != nil {
			return fmt.Errorf("import description %q: %w", name, err)
		}
	}
	for _, l := range settings.Locations {
		if err := s.SaveLocation(l.Nickname, l.Address); err != nil {
			return fmt.Errorf("import location %q: %w", l.Nickname, err)
		}
	}
	return nil
}

func (s *Store) clearUserData() error {
	statements := []string{
		`DELETE FROM organizer`,
		`DELETE FROM attorneys`,
		`DELETE FROM matters`,
		`DELETE FROM descriptions WHERE is_preset = 0`,
		`DELETE FROM locations`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
