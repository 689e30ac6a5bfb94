package model

import "time"

// CatalogEvent records a catalog mutation. Events are published to the broker
// on write and persisted asynchronously by the event worker.
type CatalogEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Entity    string    `gorm:"size:32;not null" json:"entity"`
	Action    string    `gorm:"size:32;not null" json:"action"`
	EntityID  uint      `json:"entity_id"`
	Actor     string    `gorm:"size:64" json:"actor"`
	CreatedAt time.Time `json:"created_at"`
}

func (CatalogEvent) TableName() string {
	return "catalog_events"
}

const (
	EventEntityCollection = "colecao"
	EventEntitySkin       = "skin"

	EventActionCreated = "created"
	EventActionUpdated = "updated"
	EventActionDeleted = "deleted"
)
