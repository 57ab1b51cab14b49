package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/RushabhMehta2005/stores-api/models"
	"github.com/RushabhMehta2005/stores-api/repository"
	"github.com/gin-gonic/gin"
)

func storeExistsMessage(name string) string {
	return fmt.Sprintf("A store with name '%s' already exists.", name)
}

func (h *Handler) GetStore(c *gin.Context) {
	store, err := h.Stores.FindByName(c.Request.Context(), c.Param("name"))
	if errors.Is(err, repository.ErrNotFound) {
		h.jsonError(c, http.StatusNotFound, "Store not found")
		return
	}
	if err != nil {
		h.internalError(c, err, "Failed to fetch store")
		return
	}

	c.JSON(http.StatusOK, store.Response())
}

func (h *Handler) CreateStore(c *gin.Context) {
	name := c.Param("name")

	_, err := h.Stores.FindByName(c.Request.Context(), name)
	if err == nil {
		h.jsonError(c, http.StatusBadRequest, storeExistsMessage(name))
		return
	}
	if !errors.Is(err, repository.ErrNotFound) {
		h.internalError(c, err, "Failed to fetch store")
		return
	}

	store := models.Store{Name: name}
	if err := h.Stores.Save(c.Request.Context(), &store); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			h.jsonError(c, http.StatusBadRequest, storeExistsMessage(name))
			return
		}
		h.internalError(c, err, "An error occurred creating the store.")
		return
	}

	c.JSON(http.StatusCreated, store.Response())
}

// DeleteStore removes the store and, with it, all of its items.
func (h *Handler) DeleteStore(c *gin.Context) {
	if err := h.Stores.DeleteByName(c.Request.Context(), c.Param("name")); err != nil {
		h.internalError(c, err, "Failed to delete store")
		return
	}

	h.message(c, http.StatusOK, "Store deleted")
}

func (h *Handler) ListStores(c *gin.Context) {
	stores, err := h.Stores.List(c.Request.Context())
	if err != nil {
		h.internalError(c, err, "Failed to fetch stores")
		return
	}

	c.JSON(http.StatusOK, models.NewStoreListResponse(stores))
}
