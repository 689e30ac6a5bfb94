package app

import (
	"context"
	"log"
	"strings"

	"skinvault/internal/model"
	"skinvault/internal/repository"
)

// EventPublisher delivers catalog change events to the broker. A nil
// publisher disables the event pipeline.
type EventPublisher interface {
	Publish(ctx context.Context, event model.CatalogEvent) error
}

type CatalogService struct {
	collectionRepo *repository.CollectionRepository
	skinRepo       *repository.SkinRepository
	eventRepo      *repository.EventRepository
	publisher      EventPublisher
}

type AddCollectionInput struct {
	Name  string
	Actor string
}

type UpdateCollectionInput struct {
	ID    uint
	Name  string
	Actor string
}

type AddSkinInput struct {
	Name         string
	CollectionID uint
	Actor        string
}

type UpdateSkinInput struct {
	ID           uint
	Name         string
	CollectionID uint
	Actor        string
}

func NewCatalogService(
	collectionRepo *repository.CollectionRepository,
	skinRepo *repository.SkinRepository,
	eventRepo *repository.EventRepository,
	publisher EventPublisher,
) *CatalogService {
	return &CatalogService{
		collectionRepo: collectionRepo,
		skinRepo:       skinRepo,
		eventRepo:      eventRepo,
		publisher:      publisher,
	}
}

// RecentEvents returns the newest persisted catalog events, newest first.
func (s *CatalogService) RecentEvents(limit int) ([]model.CatalogEvent, error) {
	return s.eventRepo.ListRecent(limit)
}

func (s *CatalogService) ListCollections() ([]model.Collection, error) {
	return s.collectionRepo.List()
}

func (s *CatalogService) AddCollection(input AddCollectionInput) (*model.Collection, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	collection := &model.Collection{Name: name}
	if err := s.collectionRepo.Create(collection); err != nil {
		return nil, err
	}
	s.publishEvent(model.EventEntityCollection, model.EventActionCreated, collection.ID, input.Actor)
	return collection, nil
}

// UpdateCollection succeeds without effect when the id does not exist.
func (s *CatalogService) UpdateCollection(input UpdateCollectionInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ErrInvalidInput
	}

	if err := s.collectionRepo.UpdateName(input.ID, name); err != nil {
		return err
	}
	s.publishEvent(model.EventEntityCollection, model.EventActionUpdated, input.ID, input.Actor)
	return nil
}

// DeleteCollection succeeds without effect when the id does not exist and
// does not cascade to skins that reference the collection.
func (s *CatalogService) DeleteCollection(id uint, actor string) error {
	if err := s.collectionRepo.Delete(id); err != nil {
		return err
	}
	s.publishEvent(model.EventEntityCollection, model.EventActionDeleted, id, actor)
	return nil
}

func (s *CatalogService) ListSkins(filter repository.SkinFilter) ([]model.SkinListing, error) {
	return s.skinRepo.List(filter)
}

func (s *CatalogService) GetSkin(id uint) (*model.Skin, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	return s.skinRepo.GetByID(id)
}

// AddSkin rejects empty fields but does not verify that the referenced
// collection exists before the insert.
func (s *CatalogService) AddSkin(input AddSkinInput) (*model.Skin, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.CollectionID == 0 {
		return nil, ErrInvalidInput
	}

	skin := &model.Skin{Name: name, CollectionID: input.CollectionID}
	if err := s.skinRepo.Create(skin); err != nil {
		return nil, err
	}
	s.publishEvent(model.EventEntitySkin, model.EventActionCreated, skin.ID, input.Actor)
	return skin, nil
}

func (s *CatalogService) UpdateSkin(input UpdateSkinInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.CollectionID == 0 {
		return ErrInvalidInput
	}

	if err := s.skinRepo.Update(input.ID, name, input.CollectionID); err != nil {
		return err
	}
	s.publishEvent(model.EventEntitySkin, model.EventActionUpdated, input.ID, input.Actor)
	return nil
}

func (s *CatalogService) DeleteSkin(id uint, actor string) error {
	if err := s.skinRepo.Delete(id); err != nil {
		return err
	}
	s.publishEvent(model.EventEntitySkin, model.EventActionDeleted, id, actor)
	return nil
}

// publishEvent is best effort: a broker failure must not fail the mutation
// that already committed.
func (s *CatalogService) publishEvent(entity, action string, entityID uint, actor string) {
	if s.publisher == nil {
		return
	}
	event := model.CatalogEvent{
		Entity:   entity,
		Action:   action,
		EntityID: entityID,
		Actor:    actor,
	}
	if err := s.publisher.Publish(context.Background(), event); err != nil {
		log.Printf("publish catalog event failed: %v", err)
	}
}
