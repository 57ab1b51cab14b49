package models

import "time"

type Store struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name  string `gorm:"uniqueIndex;not null"`
	Items []Item `gorm:"constraint:OnDelete:CASCADE;"`
}

type StoreResponse struct {
	ID    uint           `json:"id"`
	Name  string         `json:"name"`
	Items []ItemResponse `json:"items"`
}

// Response renders the store with whatever Items are loaded; never null.
func (s Store) Response() StoreResponse {
	items := make([]ItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, it.Response())
	}
	return StoreResponse{ID: s.ID, Name: s.Name, Items: items}
}

type StoreListResponse struct {
	Stores []StoreResponse `json:"stores"`
}

func NewStoreListResponse(stores []Store) StoreListResponse {
	out := make([]StoreResponse, 0, len(stores))
	for _, s := range stores {
		out = append(out, s.Response())
	}
	return StoreListResponse{Stores: out}
}
