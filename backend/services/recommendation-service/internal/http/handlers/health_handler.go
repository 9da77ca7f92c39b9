package handlers

import (
	"net/http"
	"time"
)

// CatalogStatus reports what the service is currently serving.
type CatalogStatus interface {
	Len() int
	LoadedAt() time.Time
}

type healthResponse struct {
	Status   string     `json:"status"`
	Stations int        `json:"stations"`
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
}

// NewHealthHandler returns GET /health handler. loaded_at is omitted until the first load.
func NewHealthHandler(catalog CatalogStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok", Stations: catalog.Len()}
		if at := catalog.LoadedAt(); !at.IsZero() {
			at = at.UTC()
			resp.LoadedAt = &at
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
