package domain

// Theme values persisted under the settings key.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Store handles local persistence (BoltDB + memory). The shelf service is
// the only writer of the collection; the TUI never touches the store.
type Store interface {
	// LoadBooks returns the persisted collection. A missing or
	// malformed payload yields an empty collection and a nil error;
	// only I/O failures are returned.
	LoadBooks() ([]*Book, error)

	// SaveBooks re-serializes the entire collection. Every successful
	// mutation calls this; there is no partial persistence.
	SaveBooks(books []*Book) error

	// Theme returns the persisted theme flag; ok is false when unset.
	Theme() (theme string, ok bool)

	// SaveTheme persists the theme flag. Last value wins.
	SaveTheme(theme string) error

	Close() error
}
