// Package store persists reusable form settings: organizer identity,
// attorneys, matters with their recipient sets, deadline descriptions with
// remembered reminder selections, and saved locations. Writes follow a
// last-write-wins policy.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

type Store struct {
	db *sql.DB
}

// Attorney is one selectable recipient.
type Attorney struct {
	ID    int64
	Name  string
	Email string
}

// Location maps a short nickname to a full address.
type Location struct {
	ID       int64
	Nickname string
	Address  string
}

// Organizer is the calendar organizer identity written into every event.
type Organizer struct {
	Name  string
	Email string
}

// Description is a deadline description with its remembered reminder labels.
// Preset descriptions ship with the application and cannot be overwritten.
type Description struct {
	Name      string
	Reminders []string
	IsPreset  bool
}

// presetDescriptions are seeded on first open.
var presetDescriptions = []Description{
	{Name: "Standard Filing Deadline", Reminders: []string{"7AM Day Of", "1 Day", "3 Days", "1 Week", "1 Month"}, IsPreset: true},
	{Name: "Standard Hearing Date", Reminders: []string{"7AM Day Of", "1 Day", "3 Days", "1 Week"}, IsPreset: true},
	{Name: "Standard MSJ Hearing", Reminders: []string{"7AM Day Of", "1 Day", "3 Days", "1 Week", "2 Weeks", "1 Month"}, IsPreset: true},
}

// Open opens (creating if necessary) the settings database at path.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := s.seedPresets(); err != nil {
		return nil, fmt.Errorf("seed presets: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS organizer (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS attorneys (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS matters (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			case_name TEXT UNIQUE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS matter_recipients (
			matter_id INTEGER NOT NULL,
			email TEXT NOT NULL,
			position INTEGER NOT NULL,
			FOREIGN KEY (matter_id) REFERENCES matters(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_matter_recipients_matter ON matter_recipients(matter_id)`,
		`CREATE TABLE IF NOT EXISTS descriptions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL,
			is_preset INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS description_reminders (
			description_id INTEGER NOT NULL,
			label TEXT NOT NULL,
			position INTEGER NOT NULL,
			FOREIGN KEY (description_id) REFERENCES descriptions(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_description_reminders_desc ON description_reminders(description_id)`,
		`CREATE TABLE IF NOT EXISTS locations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			nickname TEXT UNIQUE NOT NULL,
			address TEXT NOT NULL
		)`,
	}
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

func (s *Store) seedPresets() error {
	for _, p := range presetDescriptions {
		if err := s.saveDescription(p.Name, p.Reminders, true, false); err != nil {
			return err
		}
	}
	return nil
}

// === Organizer ===

func (s *Store) SetOrganizer(o Organizer) error {
	_, err := s.db.Exec(
		`INSERT INTO organizer (id, name, email) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, email = excluded.email`,
		o.Name, o.Email,
	)
	return err
}

// Organizer returns the stored identity; an empty Organizer if none was set.
func (s *Store) Organizer() (Organizer, error) {
	var o Organizer
	err := s.db.QueryRow(`SELECT name, email FROM organizer WHERE id = 1`).Scan(&o.Name, &o.Email)
	if err == sql.ErrNoRows {
		return Organizer{}, nil
	}
	return o, err
}

// === Attorneys ===

func (s *Store) AddAttorney(name, email string) error {
	_, err := s.db.Exec(
		`INSERT INTO attorneys (name, email) VALUES (?, ?)
		 ON CONFLICT(email) DO UPDATE SET name = excluded.name`,
		name, email,
	)
	return err
}

func (s *Store) RemoveAttorney(email string) error {
	_, err := s.db.Exec(`DELETE FROM attorneys WHERE email = ?`, email)
	return err
}

func (s *Store) ListAttorneys() ([]Attorney, error) {
	rows, err := s.db.Query(`SELECT id, name, email FROM attorneys ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attorneys []Attorney
	for rows.Next() {
		var a Attorney
		if err := rows.Scan(&a.ID, &a.Name, &a.Email); err != nil {
			return nil, err
		}
		attorneys = append(attorneys, a)
	}
	return attorneys, rows.Err()
}

// === Matters ===

// SaveMatter remembers the recipient set last used for a case, replacing any
// earlier set.
func (s *Store) SaveMatter(caseName string, recipients []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO matters (case_name) VALUES (?) ON CONFLICT(case_name) DO NOTHING`, caseName); err != nil {
		return err
	}
	var matterID int64
	if err := tx.QueryRow(`SELECT id FROM matters WHERE case_name = ?`, caseName).Scan(&matterID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM matter_recipients WHERE matter_id = ?`, matterID); err != nil {
		return err
	}
	for i, email := range recipients {
		if _, err := tx.Exec(
			`INSERT INTO matter_recipients (matter_id, email, position) VALUES (?, ?, ?)`,
			matterID, email, i,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// MatterRecipients returns the remembered recipients for a case, in the
// order they were saved. A case never saved yields an empty list.
func (s *Store) MatterRecipients(caseName string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT mr.email FROM matter_recipients mr
		 JOIN matters m ON m.id = mr.matter_id
		 WHERE m.case_name = ?
		 ORDER BY mr.position`,
		caseName,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipients []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		recipients = append(recipients, email)
	}
	return recipients, rows.Err()
}

func (s *Store) ListMatters() ([]string, error) {
	rows, err := s.db.Query(`SELECT case_name FROM matters ORDER BY case_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matters []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		matters = append(matters, name)
	}
	return matters, rows.Err()
}

// === Descriptions ===

// SaveDescription remembers the reminder labels last selected for a
// description. Preset descriptions are left untouched.
func (s *Store) SaveDescription(name string, reminders []string) error {
	return s.saveDescription(name, reminders, false, true)
}

func (s *Store) saveDescription(name string, reminders []string, preset, overwrite bool) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var id int64
	var isPreset bool
	err = tx.QueryRow(`SELECT id, is_preset FROM descriptions WHERE name = ?`, name).Scan(&id, &isPreset)
	switch {
	case err == sql.ErrNoRows:
		res, err := tx.Exec(`INSERT INTO descriptions (name, is_preset) VALUES (?, ?)`, name, preset)
		if err != nil {
			return err
		}
		id, _ = res.LastInsertId()
	case err != nil:
		return err
	case isPreset:
		// Presets keep their recommended reminders.
		return nil
	case !overwrite:
		return nil
	default:
		if _, err := tx.Exec(`DELETE FROM description_reminders WHERE description_id = ?`, id); err != nil {
			return err
		}
	}

	for i, label := range reminders {
		if _, err := tx.Exec(
			`INSERT INTO description_reminders (description_id, label, position) VALUES (?, ?, ?)`,
			id, label, i,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// DescriptionReminders returns the reminder labels remembered for a
// description and whether the description is known at all.
func (s *Store) DescriptionReminders(name string) ([]string, bool, error) {
	var id int64
	err := s.db.QueryRow(`SELECT id FROM descriptions WHERE name = ?`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	rows, err := s.db.Query(
		`SELECT label FROM description_reminders WHERE description_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var l string
		if err := rows.Scan(&l); err != nil {
			return nil, false, err
		}
		labels = append(labels, l)
	}
	return labels, true, rows.Err()
}

func (s *Store) ListDescriptions() ([]Description, error) {
	rows, err := s.db.Query(`SELECT id, name, is_preset FROM descriptions ORDER BY is_preset DESC, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type row struct {
		id int64
		d  Description
	}
	var entries []row
	for rows.Next() {
		var e row
		if err := rows.Scan(&e.id, &e.d.Name, &e.d.IsPreset); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var descriptions []Description
	for _, e := range entries {
		labels, _, err := s.DescriptionReminders(e.d.Name)
		if err != nil {
			return nil, err
		}
		e.d.Reminders = labels
		descriptions = append(descriptions, e.d)
	}
	return descriptions, nil
}

// === Locations ===

func (s *Store) SaveLocation(nickname, address string) error {
	_, err := s.db.Exec(
		`INSERT INTO locations (nickname, address) VALUES (?, ?)
		 ON CONFLICT(nickname) DO UPDATE SET address = excluded.address`,
		nickname, address,
	)
	return err
}

func (s *Store) RemoveLocation(nickname string) error {
	_, err := s.db.Exec(`DELETE FROM locations WHERE nickname = ?`, nickname)
	return err
}

func (s *Store) ListLocations() ([]Location, error) {
	rows, err := s.db.Query(`SELECT id, nickname, address FROM locations ORDER BY nickname`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []Location
	for rows.Next() {
		var l Location
		if err := rows.Scan(&l.ID, &l.Nickname, &l.Address); err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

// ResolveLocation maps a saved nickname to its full address. Input that is
// not a known nickname passes through unchanged.
func (s *Store) ResolveLocation(input string) (string, error) {
	if input == "" {
		return "", nil
	}
	var address string
	err := s.db.QueryRow(`SELECT address FROM locations WHERE nickname = ?`, input).Scan(&address)
	if err == sql.ErrNoRows {
		return input, nil
	}
	if err != nil {
		return "", err
	}
	return address, nil
}
