package mock

import (
	"fmt"
	"sort"
	"sync"

	"myblog/app/models"
	"myblog/app/repositories"
)

// EntryRepository is an in-memory repositories.EntryRepository.
type EntryRepository struct {
	entries map[int]*models.Entry
	nextID  int
	mutex   sync.RWMutex

	// Err, when set, is returned by every call.
	Err error
}

// CommentRepository is an in-memory repositories.CommentRepository. When
// Entries is set, Create refuses comments on entries it does not hold.
type CommentRepository struct {
	Entries *EntryRepository

	comments map[int]*models.Comment
	nextID   int
	mutex    sync.RWMutex

	Err error
}

var (
	_ repositories.EntryRepository   = (*EntryRepository)(nil)
	_ repositories.CommentRepository = (*CommentRepository)(nil)
)

func NewEntryRepository() *EntryRepository {
	return &EntryRepository{
		entries: make(map[int]*models.Entry),
		nextID:  1,
	}
}

func NewCommentRepository(entries *EntryRepository) *CommentRepository {
	return &CommentRepository{
		Entries:  entries,
		comments: make(map[int]*models.Comment),
		nextID:   1,
	}
}

func (m *EntryRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.entries = make(map[int]*models.Entry)
	m.nextID = 1
}

// EntryRepository implementation
func (m *EntryRepository) Create(entry *models.Entry) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.Err != nil {
		return m.Err
	}

	entry.ID = m.nextID
	m.nextID++
	m.entries[entry.ID] = copyEntry(entry)
	return nil
}

func (m *EntryRepository) GetByID(id int) (*models.Entry, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}

	entry, exists := m.entries[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return copyEntry(entry), nil
}

func (m *EntryRepository) Update(entry *models.Entry) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.Err != nil {
		return m.Err
	}

	if _, exists := m.entries[entry.ID]; !exists {
		return repositories.ErrNotFound
	}
	m.entries[entry.ID] = copyEntry(entry)
	return nil
}

func (m *EntryRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.Err != nil {
		return m.Err
	}

	if _, exists := m.entries[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *EntryRepository) List(limit, offset int) ([]*models.Entry, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}

	entries := make([]*models.Entry, 0, len(m.entries))
	for _, entry := range m.entries {
		entries = append(entries, copyEntry(entry))
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID > entries[j].ID
	})
	if offset >= len(entries) {
		return []*models.Entry{}, nil
	}
	end := offset + limit
	if end > len(entries) {
		end = len(entries)
	}
	return entries[offset:end], nil
}

func (m *EntryRepository) Count() (int, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.entries), nil
}

func (m *EntryRepository) has(id int) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	_, ok := m.entries[id]
	return ok
}

// CommentRepository implementation
func (m *CommentRepository) Create(comment *models.Comment) error {
	if m.Entries != nil && !m.Entries.has(comment.EntryID) {
		return fmt.Errorf("entry %d: %w", comment.EntryID, repositories.ErrNotFound)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.Err != nil {
		return m.Err
	}

	comment.ID = m.nextID
	m.nextID++
	stored := *comment
	m.comments[comment.ID] = &stored
	return nil
}

func (m *CommentRepository) GetByID(id int) (*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}

	comment, exists := m.comments[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	c := *comment
	return &c, nil
}

func (m *CommentRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.Err != nil {
		return m.Err
	}

	if _, exists := m.comments[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

func (m *CommentRepository) ListByEntry(entryID int) ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}

	comments := []*models.Comment{}
	for _, comment := range m.comments {
		if comment.EntryID == entryID {
			c := *comment
			comments = append(comments, &c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].ID < comments[j].ID
	})
	return comments, nil
}

func (m *CommentRepository) DeleteByEntry(entryID int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.Err != nil {
		return m.Err
	}

	for id, comment := range m.comments {
		if comment.EntryID == entryID {
			delete(m.comments, id)
		}
	}
	return nil
}

func copyEntry(entry *models.Entry) *models.Entry {
	e := *entry
	e.Comments = nil
	return &e
}
