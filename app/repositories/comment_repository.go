package repositories

import (
	"fmt"
	"strconv"

	"myblog/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCommentRepository implements CommentRepository using BadgerDB.
// Comments are keyed by entry then comment ID so that an entry's comments
// can be listed with a single prefix scan; a secondary index maps a comment
// ID back to its entry.
type BadgerCommentRepository struct {
	db *badger.DB
}

// NewBadgerCommentRepository creates a new BadgerCommentRepository
func NewBadgerCommentRepository(db *badger.DB) *BadgerCommentRepository {
	return &BadgerCommentRepository{db: db}
}

// Create creates a new comment
func (r *BadgerCommentRepository) Create(comment *models.Comment) error {
	return r.db.Update(func(txn *badger.Txn) error {
		found, err := exists(txn, entryKey(comment.EntryID))
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("entry %d: %w", comment.EntryID, ErrNotFound)
		}

		id, err := getNextID(txn, CommentSeqKey)
		if err != nil {
			return err
		}
		comment.ID = id

		data, err := marshalEntity(comment)
		if err != nil {
			return err
		}

		if err := txn.Set(commentKey(comment.EntryID, id), data); err != nil {
			return err
		}
		return txn.Set(commentIndexKey(id), []byte(strconv.Itoa(comment.EntryID)))
	})
}

// lookupEntryID resolves the entry a comment belongs to through the index.
func lookupEntryID(txn *badger.Txn, id int) (int, error) {
	item, err := txn.Get(commentIndexKey(id))
	if err == badger.ErrKeyNotFound {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	var entryID int
	err = item.Value(func(val []byte) error {
		entryID, err = strconv.Atoi(string(val))
		return err
	})
	return entryID, err
}

// GetByID retrieves a comment by ID
func (r *BadgerCommentRepository) GetByID(id int) (*models.Comment, error) {
	var comment models.Comment

	err := r.db.View(func(txn *badger.Txn) error {
		entryID, err := lookupEntryID(txn, id)
		if err != nil {
			return err
		}

		item, err := txn.Get(commentKey(entryID, id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &comment)
		})
	})

	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByEntry retrieves all comments for an entry in the order they were made
func (r *BadgerCommentRepository) ListByEntry(entryID int) ([]*models.Comment, error) {
	comments := []*models.Comment{}
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := commentPrefix(entryID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var comment models.Comment
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &comment)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal comment: %w", err)
			}
			comments = append(comments, &comment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// Delete deletes a comment by ID
func (r *BadgerCommentRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		entryID, err := lookupEntryID(txn, id)
		if err != nil {
			return err
		}

		if err := txn.Delete(commentKey(entryID, id)); err != nil {
			return err
		}
		return txn.Delete(commentIndexKey(id))
	})
}

// DeleteByEntry deletes every comment attached to an entry
func (r *BadgerCommentRepository) DeleteByEntry(entryID int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)

		var ids []int
		var keys [][]byte
		prefix := commentPrefix(entryID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().KeyCopy(nil)
			id, err := strconv.Atoi(string(key[len(prefix):]))
			if err != nil {
				it.Close()
				return fmt.Errorf("malformed comment key %q: %w", key, err)
			}
			keys = append(keys, key)
			ids = append(ids, id)
		}
		it.Close()

		for i, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
			if err := txn.Delete(commentIndexKey(ids[i])); err != nil {
				return err
			}
		}
		return nil
	})
}
