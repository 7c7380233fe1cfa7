// Command calendar generates legal deadline invite files (.ics) from the
// command line, persisting reusable settings in a local SQLite store.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AustinBrister/calendar"
	"github.com/AustinBrister/calendar/internal/config"
	"github.com/AustinBrister/calendar/internal/store"
)

type flags struct {
	configPath string

	caseName    string
	description string
	deadline    string
	notes       string
	location    string
	prefix      string
	priority    string
	duration    int
	busy        bool
	reminders   string
	recipients  string
	combined    bool
	outDir      string

	setOrganizer   string
	addAttorney    string
	listAttorneys  bool
	addLocation    string
	listLocations  bool
	exportSettings string
	importSettings string
}

func parseFlags() *flags {
	f := &flags{}
	flag.StringVar(&f.configPath, "config", defaultConfigPath(), "path to the YAML configuration file")

	flag.StringVar(&f.caseName, "case", "", "case name or number")
	flag.StringVar(&f.description, "description", "", "deadline description, e.g. \"Standard Filing Deadline\"")
	flag.StringVar(&f.deadline, "deadline", "", "deadline date-time, RFC 3339 or 2006-01-02T15:04 (local)")
	flag.StringVar(&f.notes, "notes", "", "additional notes for the event body")
	flag.StringVar(&f.location, "location", "", "event location (saved nickname or literal address)")
	flag.StringVar(&f.prefix, "prefix", "", "summary prefix, wrapped in square brackets")
	flag.StringVar(&f.priority, "priority", "medium", "priority: low, medium or high")
	flag.IntVar(&f.duration, "duration", 0, "deadline event duration in minutes (0 = configured default)")
	flag.BoolVar(&f.busy, "busy", false, "mark the deadline event as busy time")
	flag.StringVar(&f.reminders, "reminders", "", "comma separated reminder labels (default: remembered for the description)")
	flag.StringVar(&f.recipients, "recipients", "", "comma separated recipient emails (default: remembered for the case)")
	flag.BoolVar(&f.combined, "combined", false, "generate one combined file instead of one file per event")
	flag.StringVar(&f.outDir, "out", "", "output directory (default: configured output_dir)")

	flag.StringVar(&f.setOrganizer, "set-organizer", "", "store the organizer identity, \"Name <email>\"")
	flag.StringVar(&f.addAttorney, "add-attorney", "", "store an attorney, \"Name <email>\"")
	flag.BoolVar(&f.listAttorneys, "list-attorneys", false, "list stored attorneys and exit")
	flag.StringVar(&f.addLocation, "add-location", "", "store a location, \"nickname=address\"")
	flag.BoolVar(&f.listLocations, "list-locations", false, "list stored locations and exit")
	flag.StringVar(&f.exportSettings, "export-settings", "", "export all settings as JSON to the given file")
	flag.StringVar(&f.importSettings, "import-settings", "", "import settings JSON from the given file, replacing stored settings")
	flag.Parse()
	return f
}

func defaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "calendar", "calendar.yaml")
	}
	return "calendar.yaml"
}

func main() {
	log.SetFlags(log.LstdFlags)

	f := parseFlags()

	cfg, err := config.Load(f.configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open settings store: %v", err)
	}
	defer st.Close()

	if done, err := runSettingsCommand(f, st); err != nil {
		log.Fatalf("%v", err)
	} else if done {
		return
	}

	gen, err := calendar.NewGenerator(cfg.Core())
	if err != nil {
		log.Fatalf("Failed to initialize generator: %v", err)
	}

	req, err := buildRequest(f, st, gen, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	// Remember the selections for next time, like the form does.
	if err := st.SaveMatter(req.CaseName, req.Recipients); err != nil {
		log.Printf("Warning: could not save matter settings: %v", err)
	}
	labels := make([]string, 0, len(req.Reminders))
	for _, r := range req.Reminders {
		labels = append(labels, r.Label)
	}
	if err := st.SaveDescription(req.Description, labels); err != nil {
		log.Printf("Warning: could not save description settings: %v", err)
	}

	outDir := cfg.OutputDir
	if f.outDir != "" {
		outDir = f.outDir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	events := gen.PlanEvents(req)

	if f.combined {
		result, err := gen.CombinedFile(req.CaseName, events)
		if err != nil {
			log.Fatalf("Failed to generate combined calendar file: %v", err)
		}
		if err := writeDocument(outDir, result); err != nil {
			log.Fatalf("%v", err)
		}
		log.Printf("Generated a single calendar file containing %d events: %s", len(events), result.Filename)
		return
	}

	written := 0
	for _, result := range gen.Files(req.CaseName, events) {
		if result.Err != nil {
			log.Printf("Error creating file %s: %v", result.Filename, result.Err)
			continue
		}
		if err := writeDocument(outDir, result); err != nil {
			log.Printf("%v", err)
			continue
		}
		written++
	}
	if written == 0 {
		log.Fatalf("No calendar files could be generated")
	}
	log.Printf("Generated %d of %d calendar files in %s", written, len(events), outDir)
}

// runSettingsCommand executes maintenance flags. It reports whether the
// invocation was settings-only and generation should be skipped.
func runSettingsCommand(f *flags, st *store.Store) (bool, error) {
	done := false

	if f.setOrganizer != "" {
		name, email, err := parseNameAddress(f.setOrganizer)
		if err != nil {
			return false, fmt.Errorf("invalid -set-organizer value: %w", err)
		}
		if err := st.SetOrganizer(store.Organizer{Name: name, Email: email}); err != nil {
			return false, fmt.Errorf("save organizer: %w", err)
		}
		log.Printf("Organizer set to %s <%s>", name, email)
		done = true
	}

	if f.addAttorney != "" {
		name, email, err := parseNameAddress(f.addAttorney)
		if err != nil {
			return false, fmt.Errorf("invalid -add-attorney value: %w", err)
		}
		if err := st.AddAttorney(name, email); err != nil {
			return false, fmt.Errorf("save attorney: %w", err)
		}
		log.Printf("Attorney saved: %s <%s>", name, email)
		done = true
	}

	if f.addLocation != "" {
		nickname, address, ok := strings.Cut(f.addLocation, "=")
		if !ok || nickname == "" || address == "" {
			return false, fmt.Errorf("invalid -add-location value, want \"nickname=address\"")
		}
		if err := st.SaveLocation(strings.TrimSpace(nickname), strings.TrimSpace(address)); err != nil {
			return false, fmt.Errorf("save location: %w", err)
		}
		log.Printf("Location saved: %s", nickname)
		done = true
	}

	if f.listAttorneys {
		attorneys, err := st.ListAttorneys()
		if err != nil {
			return false, fmt.Errorf("list attorneys: %w", err)
		}
		for _, a := range attorneys {
			fmt.Printf("%s <%s>\n", a.Name, a.Email)
		}
		done = true
	}

	if f.listLocations {
		locations, err := st.ListLocations()
		if err != nil {
			return false, fmt.Errorf("list locations: %w", err)
		}
		for _, l := range locations {
			fmt.Printf("%s\t%s\n", l.Nickname, l.Address)
		}
		done = true
	}

	if f.exportSettings != "" {
		out, err := os.Create(f.exportSettings)
		if err != nil {
			return false, fmt.Errorf("create settings file: %w", err)
		}
		defer out.Close()
		if err := st.Export(out); err != nil {
			return false, fmt.Errorf("export settings: %w", err)
		}
		log.Printf("Settings exported to %s", f.exportSettings)
		done = true
	}

	if f.importSettings != "" {
		in, err := os.Open(f.importSettings)
		if err != nil {
			return false, fmt.Errorf("open settings file: %w", err)
		}
		defer in.Close()
		if err := st.Import(in); err != nil {
			return false, fmt.Errorf("import settings: %w", err)
		}
		log.Printf("Settings imported from %s", f.importSettings)
		done = true
	}

	return done, nil
}

// buildRequest validates the user-facing required fields and assembles the
// generation request, consulting the store for remembered settings.
func buildRequest(f *flags, st *store.Store, gen *calendar.Generator, cfg *config.Config) (calendar.Request, error) {
	var req calendar.Request

	organizer, err := st.Organizer()
	if err != nil {
		return req, fmt.Errorf("load organizer: %w", err)
	}
	if organizer.Name == "" || organizer.Email == "" {
		return req, fmt.Errorf("no organizer configured; run with -set-organizer \"Name <email>\" first")
	}

	if f.caseName == "" {
		return req, fmt.Errorf("please provide a case name or number with -case")
	}
	if f.description == "" {
		return req, fmt.Errorf("please provide a deadline description with -description")
	}
	if f.deadline == "" {
		return req, fmt.Errorf("please provide a deadline date and time with -deadline")
	}

	deadline, err := parseDeadline(f.deadline, gen.Location())
	if err != nil {
		return req, fmt.Errorf("invalid deadline %q: %w", f.deadline, err)
	}

	recipients := splitList(f.recipients)
	if len(recipients) == 0 {
		if recipients, err = st.MatterRecipients(f.caseName); err != nil {
			return req, fmt.Errorf("load matter recipients: %w", err)
		}
	}
	if len(recipients) == 0 {
		return req, fmt.Errorf("please provide at least one recipient with -recipients")
	}

	labels := splitList(f.reminders)
	if len(labels) == 0 {
		remembered, _, err := st.DescriptionReminders(f.description)
		if err != nil {
			return req, fmt.Errorf("load description reminders: %w", err)
		}
		labels = remembered
	}
	if len(labels) == 0 {
		return req, fmt.Errorf("please select at least one reminder with -reminders")
	}
	rules := make([]calendar.ReminderRule, 0, len(labels))
	for _, label := range labels {
		rule, ok := calendar.LookupReminder(label)
		if !ok {
			return req, fmt.Errorf("unknown reminder %q; known: %s", label, knownReminderLabels())
		}
		rules = append(rules, rule)
	}

	location, err := st.ResolveLocation(f.location)
	if err != nil {
		return req, fmt.Errorf("resolve location: %w", err)
	}

	switch f.priority {
	case "low", "medium", "high":
	default:
		return req, fmt.Errorf("invalid priority %q: want low, medium or high", f.priority)
	}

	duration := f.duration
	if duration <= 0 {
		duration = cfg.DefaultEventDuration
	}

	return calendar.Request{
		CaseName:        f.caseName,
		Description:     f.description,
		Notes:           f.notes,
		Recipients:      recipients,
		Prefix:          f.prefix,
		Location:        location,
		Priority:        calendar.Priority(f.priority),
		DurationMinutes: duration,
		MarkAsBusy:      f.busy,
		OrganizerName:   organizer.Name,
		OrganizerEmail:  organizer.Email,
		Deadline:        deadline,
		Reminders:       rules,
	}, nil
}

func parseDeadline(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04", value, loc)
}

func parseNameAddress(value string) (name, email string, err error) {
	addr, err := mail.ParseAddress(value)
	if err != nil {
		return "", "", err
	}
	if addr.Name == "" {
		return "", "", fmt.Errorf("missing display name in %q", value)
	}
	return addr.Name, addr.Address, nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func knownReminderLabels() string {
	var labels []string
	for _, r := range calendar.StandardReminders() {
		labels = append(labels, r.Label)
	}
	return strings.Join(labels, ", ")
}

func writeDocument(dir string, result calendar.FileResult) error {
	path := filepath.Join(dir, result.Filename)
	if err := os.WriteFile(path, []byte(result.Content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
