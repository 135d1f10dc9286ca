package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/video-digest/internal/domain/entities"
)

// PostgresRegistry stores registry records in the processing_records table
type PostgresRegistry struct {
	db *gorm.DB
}

// NewPostgresRegistry creates a new Postgres-backed registry
func NewPostgresRegistry(db *gorm.DB) *PostgresRegistry {
	return &PostgresRegistry{db: db}
}

// Get retrieves a record by filename
func (r *PostgresRegistry) Get(ctx context.Context, filename string) (*entities.ProcessingRecord, error) {
	var rec entities.ProcessingRecord
	if err := r.db.WithContext(ctx).Where("filename = ?", filename).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// Upsert inserts the row if missing, then locks it and merges the patch in one transaction
func (r *PostgresRegistry) Upsert(ctx context.Context, filename string, patch entities.RecordPatch) (*entities.ProcessingRecord, error) {
	if filename == "" {
		return nil, errors.New("filename is required")
	}

	var rec entities.ProcessingRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		seed := entities.ProcessingRecord{
			Filename:   filename,
			BaseName:   entities.BaseName(filename),
			UploadTime: now,
		}
		if patch.UploadTime != nil {
			seed.UploadTime = *patch.UploadTime
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "filename"}},
			DoNothing: true,
		}).Create(&seed).Error; err != nil {
			return err
		}

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("filename = ?", filename).
			First(&rec).Error; err != nil {
			return err
		}

		cols := patch.Columns()
		if len(cols) == 0 {
			return nil
		}
		cols["updated_at"] = now
		if err := tx.Model(&entities.ProcessingRecord{}).
			Where("id = ?", rec.ID).
			Updates(cols).Error; err != nil {
			return err
		}
		patch.Apply(&rec)
		rec.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns every record in insertion order
func (r *PostgresRegistry) List(ctx context.Context) ([]*entities.ProcessingRecord, error) {
	var records []*entities.ProcessingRecord
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
