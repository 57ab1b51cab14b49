package repository

import (
	"context"
	"sync"

	"github.com/RushabhMehta2005/stores-api/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB

	mu       sync.RWMutex
	onDelete []func(id uint)
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// Save inserts or replaces the user. A taken username yields ErrDuplicate.
func (r *UserRepository) Save(ctx context.Context, user *models.User) error {
	return translate(r.db.WithContext(ctx).Save(user).Error)
}

// OnDelete registers fn to run after a user row has been removed.
func (r *UserRepository) OnDelete(fn func(id uint)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onDelete = append(r.onDelete, fn)
}

func (r *UserRepository) Delete(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Delete(user).Error; err != nil {
		return translate(err)
	}

	r.mu.RLock()
	hooks := r.onDelete
	r.mu.RUnlock()
	for _, fn := range hooks {
		fn(user.ID)
	}
	return nil
}
