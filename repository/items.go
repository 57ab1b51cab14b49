package repository

import (
	"context"
	"fmt"

	"github.com/RushabhMehta2005/stores-api/models"
	"gorm.io/gorm"
)

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// FindByName returns the item with the given name or ErrNotFound.
func (r *ItemRepository) FindByName(ctx context.Context, name string) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&item).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

// List returns every item in insertion order.
func (r *ItemRepository) List(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := r.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	return items, nil
}

// Save inserts the item when it has no ID and replaces the row otherwise.
// The owning store must exist.
func (r *ItemRepository) Save(ctx context.Context, item *models.Item) error {
	db := r.db.WithContext(ctx)

	ok, err := storeExists(db, item.StoreID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrStoreMissing
	}

	return translate(db.Save(item).Error)
}

// Delete removes the item. Deleting an item that is already gone succeeds.
func (r *ItemRepository) Delete(ctx context.Context, item *models.Item) error {
	return translate(r.db.WithContext(ctx).Delete(item).Error)
}
