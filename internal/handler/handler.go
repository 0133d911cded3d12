// Package handler implements the HTTP surface of the mechanic shop API.
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/kmandell/mechanic-shop/internal/cache"
	"github.com/kmandell/mechanic-shop/internal/config"
	"github.com/kmandell/mechanic-shop/internal/models"
	"github.com/kmandell/mechanic-shop/internal/service"
	"github.com/sirupsen/logrus"
)

// Handler serves HTTP requests
type Handler struct {
	svc   *service.Service
	cache *cache.Store
	cfg   *config.Config
	log   *logrus.Logger
}

// NewHandler initializes a new handler
func NewHandler(svc *service.Service, cacheStore *cache.Store, cfg *config.Config, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, cache: cacheStore, cfg: cfg, log: log}
}

// pathID parses a numeric path variable. Route patterns constrain the
// variables to digits.
func pathID(r *http.Request, name string) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	return id
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return models.NewValidationError("body", "invalid JSON payload")
	}
	return nil
}
