package repository

import (
	"errors"

	"github.com/aalkhodiry/ikhtibar/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrKeyNotFound is returned by Get when no record exists for a key.
// Callers that want absence-as-empty should check it with errors.Is.
var ErrKeyNotFound = errors.New("storage key not found")

// StorageRepository is the durable key-value substrate underneath the
// question bank, user stats and account records.
type StorageRepository interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

type storageRepository struct {
	db *gorm.DB
}

func NewStorageRepository(db *gorm.DB) StorageRepository {
	return &storageRepository{db: db}
}

func (r *storageRepository) Get(key string) (string, error) {
	var record model.StorageRecord
	if err := r.db.First(&record, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrKeyNotFound
		}
		return "", err
	}
	return record.Value, nil
}

func (r *storageRepository) Set(key, value string) error {
	record := model.StorageRecord{Key: key, Value: value}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
}

func (r *storageRepository) Delete(key string) error {
	return r.db.Delete(&model.StorageRecord{}, "key = ?", key).Error
}
