package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/RushabhMehta2005/stores-api/models"
	"github.com/RushabhMehta2005/stores-api/repository"
	"github.com/gin-gonic/gin"
)

// itemBody is accepted as JSON or as a form.
type itemBody struct {
	Price   *float64 `form:"price" json:"price" binding:"required,gte=0"`
	StoreID *uint    `form:"store_id" json:"store_id" binding:"required,gt=0"`
}

func itemExistsMessage(name string) string {
	return fmt.Sprintf("An item with name '%s' already exists.", name)
}

// saveItem persists item and writes the error response when it fails.
func (h *Handler) saveItem(c *gin.Context, item *models.Item) bool {
	err := h.Items.Save(c.Request.Context(), item)
	switch {
	case err == nil:
		return true
	case errors.Is(err, repository.ErrDuplicate):
		h.jsonError(c, http.StatusBadRequest, itemExistsMessage(item.Name))
	case errors.Is(err, repository.ErrStoreMissing):
		h.jsonError(c, http.StatusBadRequest, fmt.Sprintf("Store with id %d does not exist.", item.StoreID))
	default:
		h.internalError(c, err, "An error occurred inserting the item.")
	}
	return false
}

func (h *Handler) GetItem(c *gin.Context) {
	item, err := h.Items.FindByName(c.Request.Context(), c.Param("name"))
	if errors.Is(err, repository.ErrNotFound) {
		h.jsonError(c, http.StatusNotFound, "Item not found")
		return
	}
	if err != nil {
		h.internalError(c, err, "Failed to fetch item")
		return
	}

	c.JSON(http.StatusOK, item.Response())
}

func (h *Handler) CreateItem(c *gin.Context) {
	name := c.Param("name")

	_, err := h.Items.FindByName(c.Request.Context(), name)
	if err == nil {
		h.jsonError(c, http.StatusBadRequest, itemExistsMessage(name))
		return
	}
	if !errors.Is(err, repository.ErrNotFound) {
		h.internalError(c, err, "Failed to fetch item")
		return
	}

	var body itemBody
	if err := c.ShouldBind(&body); err != nil {
		h.jsonError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	item := models.Item{Name: name, Price: *body.Price, StoreID: *body.StoreID}
	if !h.saveItem(c, &item) {
		return
	}

	c.JSON(http.StatusCreated, item.Response())
}

// UpsertItem creates the item when absent; otherwise only its price changes
// and the owning store is left as it was.
func (h *Handler) UpsertItem(c *gin.Context) {
	name := c.Param("name")

	var body itemBody
	if err := c.ShouldBind(&body); err != nil {
		h.jsonError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.Items.FindByName(c.Request.Context(), name)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		item = &models.Item{Name: name, Price: *body.Price, StoreID: *body.StoreID}
	case err != nil:
		h.internalError(c, err, "Failed to fetch item")
		return
	default:
		item.Price = *body.Price
	}

	if !h.saveItem(c, item) {
		return
	}

	c.JSON(http.StatusOK, item.Response())
}

// DeleteItem succeeds whether or not the item exists.
func (h *Handler) DeleteItem(c *gin.Context) {
	item, err := h.Items.FindByName(c.Request.Context(), c.Param("name"))
	if errors.Is(err, repository.ErrNotFound) {
		h.message(c, http.StatusOK, "Item deleted")
		return
	}
	if err != nil {
		h.internalError(c, err, "Failed to fetch item")
		return
	}

	if err := h.Items.Delete(c.Request.Context(), item); err != nil {
		h.internalError(c, err, "Failed to delete item")
		return
	}

	h.message(c, http.StatusOK, "Item deleted")
}

func (h *Handler) ListItems(c *gin.Context) {
	items, err := h.Items.List(c.Request.Context())
	if err != nil {
		h.internalError(c, err, "Failed to fetch items")
		return
	}

	c.JSON(http.StatusOK, models.NewItemListResponse(items))
}
