package repositories

import (
	"fmt"

	"myblog/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerEntryRepository implements EntryRepository using BadgerDB
type BadgerEntryRepository struct {
	db *badger.DB
}

// NewBadgerEntryRepository creates a new BadgerEntryRepository
func NewBadgerEntryRepository(db *badger.DB) *BadgerEntryRepository {
	return &BadgerEntryRepository{db: db}
}

// storedEntry drops attached comments; they live under their own keys.
func storedEntry(entry *models.Entry) models.Entry {
	stored := *entry
	stored.Comments = nil
	return stored
}

// Create creates a new entry
func (r *BadgerEntryRepository) Create(entry *models.Entry) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, EntrySeqKey)
		if err != nil {
			return err
		}
		entry.ID = id

		data, err := marshalEntity(storedEntry(entry))
		if err != nil {
			return err
		}
		return txn.Set(entryKey(id), data)
	})
}

// GetByID retrieves an entry by ID
func (r *BadgerEntryRepository) GetByID(id int) (*models.Entry, error) {
	var entry models.Entry

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(entryKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &entry)
		})
	})

	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// List retrieves a page of entries, newest first
func (r *BadgerEntryRepository) List(limit, offset int) ([]*models.Entry, error) {
	entries := []*models.Entry{}
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		count := 0
		prefix := []byte(EntryKeyPrefix)
		// Reverse iteration has to start past the last key carrying the prefix.
		start := append([]byte(EntryKeyPrefix), 0xFF)
		for it.Seek(start); it.ValidForPrefix(prefix); it.Next() {
			if count < offset {
				count++
				continue
			}
			if count >= offset+limit {
				break
			}

			var entry models.Entry
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &entry)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal entry: %w", err)
			}
			entries = append(entries, &entry)
			count++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns the number of stored entries
func (r *BadgerEntryRepository) Count() (int, error) {
	count := 0
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(EntryKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// Update updates an existing entry
func (r *BadgerEntryRepository) Update(entry *models.Entry) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entryKey(entry.ID)

		found, err := exists(txn, key)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}

		data, err := marshalEntity(storedEntry(entry))
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// Delete deletes an entry by ID
func (r *BadgerEntryRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entryKey(id)

		found, err := exists(txn, key)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}

		return txn.Delete(key)
	})
}
