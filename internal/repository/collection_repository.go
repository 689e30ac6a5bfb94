package repository

import (
	"fmt"

	"gorm.io/gorm"

	"skinvault/internal/model"
)

type CollectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) *CollectionRepository {
	return &CollectionRepository{db: db}
}

func (r *CollectionRepository) Create(collection *model.Collection) error {
	if err := r.db.Create(collection).Error; err != nil {
		return fmt.Errorf("create collection failed: %w", err)
	}
	return nil
}

func (r *CollectionRepository) List() ([]model.Collection, error) {
	var collections []model.Collection
	if err := r.db.Find(&collections).Error; err != nil {
		return nil, fmt.Errorf("list collections failed: %w", err)
	}
	return collections, nil
}

// UpdateName succeeds with zero rows affected when the id does not exist.
func (r *CollectionRepository) UpdateName(id uint, name string) error {
	if err := r.db.Model(&model.Collection{}).Where("id = ?", id).Update("nome", name).Error; err != nil {
		return fmt.Errorf("update collection failed: %w", err)
	}
	return nil
}

// Delete does not cascade to skins referencing the collection.
func (r *CollectionRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Collection{}, id).Error; err != nil {
		return fmt.Errorf("delete collection failed: %w", err)
	}
	return nil
}
