package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"myblog/app/logger"
	"myblog/app/models"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenGorm opens a relational store and migrates its schema. A nil log
// discards GORM's output.
func OpenGorm(driver, dsn string, log *zap.SugaredLogger) (*Store, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		if dsn == "" {
			dsn = ":memory:"
		}
		dialector = sqlite.Open(withForeignKeys(dsn))
	case DriverMySQL:
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unknown relational driver %q", driver)
	}

	var gormLog gormlogger.Interface = gormlogger.Default.LogMode(gormlogger.Silent)
	if log != nil {
		gormLog = logger.NewGormAdapter(log.Named("gorm"), 200*time.Millisecond)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	if driver == DriverSQLite {
		// SQLite serialises writers, and every connection to ":memory:" is a
		// separate database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&entryRecord{}, &commentRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return NewGormStore(db), nil
}

// NewGormStore wraps an already migrated GORM database.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Entries:  NewGormEntryRepository(db),
		Comments: NewGormCommentRepository(db),
		gormDB:   db,
	}
}

func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

func translateGormError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// GormEntryRepository implements EntryRepository on a relational database
type GormEntryRepository struct {
	db *gorm.DB
}

// NewGormEntryRepository creates a new GormEntryRepository
func NewGormEntryRepository(db *gorm.DB) *GormEntryRepository {
	return &GormEntryRepository{db: db}
}

// Create creates a new entry
func (r *GormEntryRepository) Create(entry *models.Entry) error {
	rec := toEntryRecord(entry)
	rec.ID = 0
	if err := r.db.Create(&rec).Error; err != nil {
		return err
	}
	entry.ID = int(rec.ID)
	return nil
}

// GetByID retrieves an entry by ID
func (r *GormEntryRepository) GetByID(id int) (*models.Entry, error) {
	var rec entryRecord
	if err := r.db.First(&rec, id).Error; err != nil {
		return nil, translateGormError(err)
	}
	return rec.toModel(), nil
}

// List retrieves a page of entries, newest first
func (r *GormEntryRepository) List(limit, offset int) ([]*models.Entry, error) {
	var recs []entryRecord
	if err := r.db.Order("id desc").Limit(limit).Offset(offset).Find(&recs).Error; err != nil {
		return nil, err
	}
	entries := make([]*models.Entry, 0, len(recs))
	for _, rec := range recs {
		entries = append(entries, rec.toModel())
	}
	return entries, nil
}

// Count returns the number of stored entries
func (r *GormEntryRepository) Count() (int, error) {
	var n int64
	if err := r.db.Model(&entryRecord{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}

// Update updates an existing entry
func (r *GormEntryRepository) Update(entry *models.Entry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&entryRecord{}, entry.ID).Error; err != nil {
			return translateGormError(err)
		}
		rec := toEntryRecord(entry)
		return tx.Save(&rec).Error
	})
}

// Delete deletes an entry by ID
func (r *GormEntryRepository) Delete(id int) error {
	res := r.db.Delete(&entryRecord{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GormCommentRepository implements CommentRepository on a relational database
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Create creates a new comment
func (r *GormCommentRepository) Create(comment *models.Comment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&entryRecord{}, comment.EntryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("entry %d: %w", comment.EntryID, ErrNotFound)
			}
			return err
		}
		rec := toCommentRecord(comment)
		rec.ID = 0
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		comment.ID = int(rec.ID)
		return nil
	})
}

// GetByID retrieves a comment by ID
func (r *GormCommentRepository) GetByID(id int) (*models.Comment, error) {
	var rec commentRecord
	if err := r.db.First(&rec, id).Error; err != nil {
		return nil, translateGormError(err)
	}
	return rec.toModel(), nil
}

// ListByEntry retrieves all comments for an entry in the order they were made
func (r *GormCommentRepository) ListByEntry(entryID int) ([]*models.Comment, error) {
	var recs []commentRecord
	if err := r.db.Where("entry_id = ?", entryID).Order("id asc").Find(&recs).Error; err != nil {
		return nil, err
	}
	comments := make([]*models.Comment, 0, len(recs))
	for _, rec := range recs {
		comments = append(comments, rec.toModel())
	}
	return comments, nil
}

// Delete deletes a comment by ID
func (r *GormCommentRepository) Delete(id int) error {
	res := r.db.Delete(&commentRecord{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByEntry deletes every comment attached to an entry
func (r *GormCommentRepository) DeleteByEntry(entryID int) error {
	return r.db.Where("entry_id = ?", entryID).Delete(&commentRecord{}).Error
}
