package handler

import (
	"encoding/json"
	"net/http"

	"github.com/kmandell/mechanic-shop/internal/cache"
	"github.com/kmandell/mechanic-shop/internal/service"
)

// CreateInventoryItem creates a new inventory item
func (h *Handler) CreateInventoryItem(w http.ResponseWriter, r *http.Request) {
	var input service.CreateInventoryInput
	if err := decodeJSON(r, &input); err != nil {
		h.writeError(w, err)
		return
	}

	item, err := h.svc.CreateInventoryItem(input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, item)
}

// ListInventory returns all inventory items, cached with the default TTL
func (h *Handler) ListInventory(w http.ResponseWriter, r *http.Request) {
	if body, ok := h.cache.Get(cache.KeyAllInventory); ok {
		h.writeRaw(w, http.StatusOK, body)
		return
	}

	items, err := h.svc.ListInventoryItems()
	if err != nil {
		h.writeError(w, err)
		return
	}

	body, err := json.Marshal(items)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.cache.SetDefault(cache.KeyAllInventory, body)
	h.writeRaw(w, http.StatusOK, body)
}

// GetInventoryItem returns a single inventory item by id
func (h *Handler) GetInventoryItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.GetInventoryItem(pathID(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, item)
}

// UpdateInventoryItem updates an inventory item by id
func (h *Handler) UpdateInventoryItem(w http.ResponseWriter, r *http.Request) {
	var input service.UpdateInventoryInput
	if err := decodeJSON(r, &input); err != nil {
		h.writeError(w, err)
		return
	}

	item, err := h.svc.UpdateInventoryItem(pathID(r, "id"), input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, item)
}

// DeleteInventoryItem deletes an inventory item by id
func (h *Handler) DeleteInventoryItem(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteInventoryItem(pathID(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "inventory item deleted successfully"})
}
