package store

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "calendar.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOrganizerRoundTrip(t *testing.T) {
	s := openTestStore(t)

	o, err := s.Organizer()
	require.NoError(t, err)
	assert.Equal(t, Organizer{}, o)

	require.NoError(t, s.SetOrganizer(Organizer{Name: "Jane Doe", Email: "jane@example.com"}))
	require.NoError(t, s.SetOrganizer(Organizer{Name: "Jane Q. Doe", Email: "jane@example.com"}))

	o, err = s.Organizer()
	require.NoError(t, err)
	assert.Equal(t, "Jane Q. Doe", o.Name)
	assert.Equal(t, "jane@example.com", o.Email)
}

func TestAttorneys(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.AddAttorney("Bob Briefs", "bob@example.com"))
	require.NoError(t, s.AddAttorney("Ann Appeals", "ann@example.com"))
	// Same email updates the name rather than duplicating.
	require.NoError(t, s.AddAttorney("Robert Briefs", "bob@example.com"))

	attorneys, err := s.ListAttorneys()
	require.NoError(t, err)
	require.Len(t, attorneys, 2)
	assert.Equal(t, "Ann Appeals", attorneys[0].Name)
	assert.Equal(t, "Robert Briefs", attorneys[1].Name)

	require.NoError(t, s.RemoveAttorney("ann@example.com"))
	attorneys, err = s.ListAttorneys()
	require.NoError(t, err)
	require.Len(t, attorneys, 1)
}

func TestMattersLastWriteWins(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveMatter("Smith v Jones", []string{"a@example.com", "b@example.com"}))
	require.NoError(t, s.SaveMatter("Smith v Jones", []string{"c@example.com"}))

	recipients, err := s.MatterRecipients("Smith v Jones")
	require.NoError(t, err)
	assert.Equal(t, []string{"c@example.com"}, recipients)

	recipients, err = s.MatterRecipients("Unknown v Unknown")
	require.NoError(t, err)
	assert.Empty(t, recipients)

	matters, err := s.ListMatters()
	require.NoError(t, err)
	assert.Equal(t, []string{"Smith v Jones"}, matters)
}

func TestPresetDescriptionsSeeded(t *testing.T) {
	s := openTestStore(t)

	labels, ok, err := s.DescriptionReminders("Standard Filing Deadline")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"7AM Day Of", "1 Day", "3 Days", "1 Week", "1 Month"}, labels)

	// Presets keep their recommended reminders even after a save attempt.
	require.NoError(t, s.SaveDescription("Standard Filing Deadline", []string{"1 Day"}))
	labels, _, err = s.DescriptionReminders("Standard Filing Deadline")
	require.NoError(t, err)
	assert.Equal(t, []string{"7AM Day Of", "1 Day", "3 Days", "1 Week", "1 Month"}, labels)
}

func TestUserDescriptions(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveDescription("Expert Disclosure", []string{"1 Week", "1 Day"}))
	labels, ok, err := s.DescriptionReminders("Expert Disclosure")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"1 Week", "1 Day"}, labels)

	require.NoError(t, s.SaveDescription("Expert Disclosure", []string{"3 Days"}))
	labels, _, err = s.DescriptionReminders("Expert Disclosure")
	require.NoError(t, err)
	assert.Equal(t, []string{"3 Days"}, labels)

	_, ok, err = s.DescriptionReminders("Never Saved")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocations(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveLocation("Downtown", "100 Main St, Courtroom 5, Chicago IL"))

	resolved, err := s.ResolveLocation("Downtown")
	require.NoError(t, err)
	assert.Equal(t, "100 Main St, Courtroom 5, Chicago IL", resolved)

	resolved, err = s.ResolveLocation("999 Elsewhere Ave")
	require.NoError(t, err)
	assert.Equal(t, "999 Elsewhere Ave", resolved)

	resolved, err = s.ResolveLocation("")
	require.NoError(t, err)
	assert.Empty(t, resolved)
}

func TestExportImportRoundTrip(t *testing.T) {
	src := openTestStore(t)
	require.NoError(t, src.SetOrganizer(Organizer{Name: "Jane Doe", Email: "jane@example.com"}))
	require.NoError(t, src.AddAttorney("Bob Briefs", "bob@example.com"))
	require.NoError(t, src.SaveMatter("Smith v Jones", []string{"bob@example.com"}))
	require.NoError(t, src.SaveDescription("Expert Disclosure", []string{"1 Week"}))
	require.NoError(t, src.SaveLocation("Downtown", "100 Main St"))

	var buf bytes.Buffer
	require.NoError(t, src.Export(&buf))

	dst := openTestStore(t)
	require.NoError(t, dst.SaveLocation("Stale", "should vanish on import"))
	require.NoError(t, dst.Import(bytes.NewReader(buf.Bytes())))

	o, err := dst.Organizer()
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", o.Name)

	recipients, err := dst.MatterRecipients("Smith v Jones")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob@example.com"}, recipients)

	locations, err := dst.ListLocations()
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, "Downtown", locations[0].Nickname)

	// Presets survive the import.
	_, ok, err := dst.DescriptionReminders("Standard Hearing Date")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestImportRejectsMalformedSettings(t *testing.T) {
	s := openTestStore(t)

	err := s.Import(bytes.NewReader([]byte(`{"organizer": {}}`)))
	assert.Error(t, err)

	err = s.Import(bytes.NewReader([]byte(`not json`)))
	assert.Error(t, err)
}
