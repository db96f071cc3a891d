package repositories

import (
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Supported storage drivers.
const (
	DriverBadger = "badger"
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Options selects and configures the storage backend.
type Options struct {
	Driver string
	// Path is the Badger directory. An empty path opens an in-memory store.
	Path string
	// DSN is the SQLite file (or ":memory:") or the MySQL data source name.
	DSN    string
	Logger *zap.SugaredLogger
}

// Store bundles the repositories of one backend and owns its connection.
type Store struct {
	Entries  EntryRepository
	Comments CommentRepository

	// Badger is set when the store is backed by BadgerDB.
	Badger *badger.DB
	gormDB *gorm.DB

	mutex  sync.Mutex
	closed bool
}

// Open opens the backend named by opts.Driver.
func Open(opts Options) (*Store, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	switch opts.Driver {
	case "", DriverBadger:
		return OpenBadger(opts.Path, opts.Logger)
	case DriverSQLite, DriverMySQL:
		return OpenGorm(opts.Driver, opts.DSN, opts.Logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}

// OpenBadger opens a Badger backed store at path, or an in-memory one when
// path is empty.
func OpenBadger(path string, logger *zap.SugaredLogger) (*Store, error) {
	opts := badger.DefaultOptions(path).
		WithSyncWrites(false).
		WithNumVersionsToKeep(1)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	if logger != nil {
		opts = opts.WithLogger(badgerLogger{logger.Named("badger")})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %q: %w", path, err)
	}
	return NewBadgerStore(db), nil
}

// NewBadgerStore wraps an already open Badger database.
func NewBadgerStore(db *badger.DB) *Store {
	return &Store{
		Entries:  NewBadgerEntryRepository(db),
		Comments: NewBadgerCommentRepository(db),
		Badger:   db,
	}
}

// Close releases the underlying database. It is safe to call more than once.
func (s *Store) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	if s.Badger != nil {
		return s.Badger.Close()
	}
	sqlDB, err := s.gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Clear removes every entry and comment.
func (s *Store) Clear() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.Badger != nil {
		return s.Badger.DropAll()
	}
	return s.gormDB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&commentRecord{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entryRecord{}).Error
	})
}

// badgerLogger routes Badger's internal logging through zap.
type badgerLogger struct {
	*zap.SugaredLogger
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.Warnf(format, args...)
}
