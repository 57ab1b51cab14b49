package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/RushabhMehta2005/stores-api/models"
	"gorm.io/gorm"
)

type StoreRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("items.id")
}

// FindByName returns the store with its items loaded, or ErrNotFound.
func (r *StoreRepository) FindByName(ctx context.Context, name string) (*models.Store, error) {
	var store models.Store
	err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Where("name = ?", name).
		First(&store).Error
	if err != nil {
		return nil, translate(err)
	}
	return &store, nil
}

func storeExists(db *gorm.DB, id uint) (bool, error) {
	var n int64
	if err := db.Model(&models.Store{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("checking store %d: %w", id, err)
	}
	return n > 0, nil
}

// List returns every store with its items, in insertion order.
func (r *StoreRepository) List(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	if err := r.db.WithContext(ctx).Preload("Items", orderedItems).Order("id").Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("listing stores: %w", err)
	}
	return stores, nil
}

// Save inserts the store when it has no ID and replaces the row otherwise.
func (r *StoreRepository) Save(ctx context.Context, store *models.Store) error {
	return translate(r.db.WithContext(ctx).Omit("Items").Save(store).Error)
}

// Delete removes the store together with its items in one transaction, so the
// cascade holds even where the driver does not enforce foreign keys.
func (r *StoreRepository) Delete(ctx context.Context, store *models.Store) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("store_id = ?", store.ID).Delete(&models.Item{}).Error; err != nil {
			return fmt.Errorf("deleting items of store %d: %w", store.ID, err)
		}
		if err := tx.Delete(&models.Store{}, store.ID).Error; err != nil {
			return fmt.Errorf("deleting store %d: %w", store.ID, err)
		}
		return nil
	})
}

// DeleteByName removes the named store and its items if it exists.
func (r *StoreRepository) DeleteByName(ctx context.Context, name string) error {
	store, err := r.FindByName(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return r.Delete(ctx, store)
}
