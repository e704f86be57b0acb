package service

import (
	"log/slog"
	"sync"

	"github.com/folioapp/folio/internal/domain"
)

// SettingsService tracks app-level preferences, currently just the
// color theme.
type SettingsService struct {
	store  domain.Store
	logger *slog.Logger

	mu    sync.RWMutex
	theme string
}

func NewSettingsService(store domain.Store, logger *slog.Logger) *SettingsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsService{
		store:  store,
		logger: logger,
		theme:  domain.ThemeDark,
	}
}

// Load restores the persisted theme. Anything unrecognized falls back
// to dark.
func (s *SettingsService) Load() {
	theme, ok := s.store.Theme()
	if !ok {
		return
	}
	if theme != domain.ThemeDark && theme != domain.ThemeLight {
		s.logger.Warn("ignoring unknown theme", "theme", theme)
		return
	}

	s.mu.Lock()
	s.theme = theme
	s.mu.Unlock()
}

func (s *SettingsService) Theme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// ToggleTheme flips between dark and light and persists the choice.
func (s *SettingsService) ToggleTheme() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.theme == domain.ThemeDark {
		s.theme = domain.ThemeLight
	} else {
		s.theme = domain.ThemeDark
	}

	if err := s.store.SaveTheme(s.theme); err != nil {
		s.logger.Error("failed to persist theme", "error", err)
		return s.theme, err
	}
	return s.theme, nil
}
