package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"skinvault/internal/model"
)

// SkinFilter narrows skin listings. Zero values leave the corresponding
// condition off; both conditions combine with AND.
type SkinFilter struct {
	CollectionID uint
	NameContains string
}

type SkinRepository struct {
	db *gorm.DB
}

func NewSkinRepository(db *gorm.DB) *SkinRepository {
	return &SkinRepository{db: db}
}

func (r *SkinRepository) Create(skin *model.Skin) error {
	if err := r.db.Create(skin).Error; err != nil {
		return fmt.Errorf("create skin failed: %w", err)
	}
	return nil
}

func (r *SkinRepository) GetByID(id uint) (*model.Skin, error) {
	var skin model.Skin
	if err := r.db.First(&skin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query skin by id failed: %w", err)
	}
	return &skin, nil
}

// List joins each skin to its owning collection. An inner join is used, so
// skins whose collection was deleted are excluded even though their rows
// remain.
func (r *SkinRepository) List(filter SkinFilter) ([]model.SkinListing, error) {
	query := r.db.Table("skins").
		Select("skins.id, skins.nome, colecoes.nome AS colecao_nome").
		Joins("JOIN colecoes ON skins.colecao_id = colecoes.id")

	if filter.CollectionID != 0 {
		query = query.Where("colecoes.id = ?", filter.CollectionID)
	}
	if filter.NameContains != "" {
		query = query.Where("skins.nome LIKE ?", "%"+filter.NameContains+"%")
	}

	var listings []model.SkinListing
	if err := query.Scan(&listings).Error; err != nil {
		return nil, fmt.Errorf("list skins failed: %w", err)
	}
	return listings, nil
}

// Update succeeds with zero rows affected when the id does not exist.
func (r *SkinRepository) Update(id uint, name string, collectionID uint) error {
	updates := map[string]interface{}{
		"nome":       name,
		"colecao_id": collectionID,
	}
	if err := r.db.Model(&model.Skin{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("update skin failed: %w", err)
	}
	return nil
}

func (r *SkinRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Skin{}, id).Error; err != nil {
		return fmt.Errorf("delete skin failed: %w", err)
	}
	return nil
}
