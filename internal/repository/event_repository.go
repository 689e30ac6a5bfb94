package repository

import (
	"fmt"

	"gorm.io/gorm"

	"skinvault/internal/model"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(event *model.CatalogEvent) error {
	if err := r.db.Create(event).Error; err != nil {
		return fmt.Errorf("create catalog event failed: %w", err)
	}
	return nil
}

func (r *EventRepository) ListRecent(limit int) ([]model.CatalogEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	var events []model.CatalogEvent
	if err := r.db.Order("id DESC").Limit(limit).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list catalog events failed: %w", err)
	}
	return events, nil
}
