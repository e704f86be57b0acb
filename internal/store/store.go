package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/folioapp/folio/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketShelf    = []byte("shelf")
	bucketSettings = []byte("settings")
)

// Keys within buckets
const (
	keyCollection = "collection"
	keyTheme      = "theme"
)

// ShelfStore implements domain.Store using BoltDB. The whole collection
// lives under a single key so a load or save is always one read or one
// write of the full diary.
type ShelfStore struct {
	db     *bolt.DB
	logger *slog.Logger
	mu     sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

func NewShelfStore(dataDir string, logger *slog.Logger) (*ShelfStore, error) {
	if dataDir == "" {
		// Memory-only mode (no persistence)
		return &ShelfStore{cache: make(map[string][]byte), logger: logger}, nil
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dataDir, "folio.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	// Create buckets
	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketShelf, bucketSettings} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &ShelfStore{db: db, cache: make(map[string][]byte), logger: logger}, nil
}

func (s *ShelfStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *ShelfStore) get(bucket []byte, key string) []byte {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return data
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil
	}

	// Read from BoltDB
	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return nil
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return data
}

func (s *ShelfStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	// Update memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	// Write to BoltDB
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

// === Collection ===

// LoadBooks returns the persisted collection. A missing key means a
// fresh diary and yields an empty slice. A payload that no longer
// parses is logged and discarded rather than wedging startup.
func (s *ShelfStore) LoadBooks() ([]*domain.Book, error) {
	data := s.get(bucketShelf, keyCollection)
	if data == nil {
		return []*domain.Book{}, nil
	}

	var books []*domain.Book
	if err := json.Unmarshal(data, &books); err != nil {
		if s.logger != nil {
			s.logger.Warn("discarding malformed collection payload", "error", err)
		}
		return []*domain.Book{}, nil
	}
	if books == nil {
		books = []*domain.Book{}
	}
	return books, nil
}

func (s *ShelfStore) SaveBooks(books []*domain.Book) error {
	return s.set(bucketShelf, keyCollection, books)
}

// === Settings ===

func (s *ShelfStore) Theme() (string, bool) {
	data := s.get(bucketSettings, keyTheme)
	if data == nil {
		return "", false
	}

	var theme string
	if err := json.Unmarshal(data, &theme); err != nil {
		if s.logger != nil {
			s.logger.Warn("discarding malformed theme payload", "error", err)
		}
		return "", false
	}
	return theme, true
}

func (s *ShelfStore) SaveTheme(theme string) error {
	return s.set(bucketSettings, keyTheme, theme)
}
