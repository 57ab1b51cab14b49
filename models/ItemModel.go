package models

import "time"

// Item is a priced product owned by exactly one Store. Names are unique across
// all stores.
type Item struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name    string  `gorm:"uniqueIndex;not null"`
	Price   float64 `gorm:"not null"`
	StoreID uint    `gorm:"not null;index"`
}

// ItemResponse is the public JSON shape of an Item.
type ItemResponse struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func (i Item) Response() ItemResponse {
	return ItemResponse{Name: i.Name, Price: i.Price}
}

// ItemListResponse wraps GET /items.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
}

func NewItemListResponse(items []Item) ItemListResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, it.Response())
	}
	return ItemListResponse{Items: out}
}
