package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folioapp/folio/internal/domain"
	"github.com/folioapp/folio/internal/log"
	"github.com/folioapp/folio/internal/store"
)

func newTestSettings(t *testing.T) (*SettingsService, *store.ShelfStore) {
	t.Helper()
	st, err := store.NewShelfStore("", log.NullLogger())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewSettingsService(st, log.NullLogger()), st
}

func TestSettings_DefaultsToDark(t *testing.T) {
	settings, _ := newTestSettings(t)
	settings.Load()
	assert.Equal(t, domain.ThemeDark, settings.Theme())
}

func TestSettings_TogglePersists(t *testing.T) {
	settings, st := newTestSettings(t)
	settings.Load()

	theme, err := settings.ToggleTheme()
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, theme)

	fresh := NewSettingsService(st, log.NullLogger())
	fresh.Load()
	assert.Equal(t, domain.ThemeLight, fresh.Theme())

	_, err = fresh.ToggleTheme()
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, fresh.Theme())
}

func TestSettings_IgnoresUnknownTheme(t *testing.T) {
	settings, st := newTestSettings(t)
	require.NoError(t, st.SaveTheme("solarized"))

	settings.Load()
	assert.Equal(t, domain.ThemeDark, settings.Theme())
}
