package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/go-playground/validator"
	"github.com/gorilla/mux"

	"github.com/xelth-com/eckslotgo/internal/address"
	"github.com/xelth-com/eckslotgo/internal/buildinfo"
	"github.com/xelth-com/eckslotgo/internal/config"
	"github.com/xelth-com/eckslotgo/internal/database"
	"github.com/xelth-com/eckslotgo/internal/middleware"
	"github.com/xelth-com/eckslotgo/internal/models"
	"github.com/xelth-com/eckslotgo/internal/provisioning"
	"github.com/xelth-com/eckslotgo/internal/repository"
	"github.com/xelth-com/eckslotgo/internal/services/locations"
	"github.com/xelth-com/eckslotgo/internal/services/odoo"
	"github.com/xelth-com/eckslotgo/internal/websocket"
)

// Router wraps the mux router and the services behind the API
type Router struct {
	*mux.Router
	db          *database.DB
	cfg         *config.Config
	hub         *websocket.Hub
	cache       *address.FormatCache
	provisioner *provisioning.Provisioner
	locations   *locations.Service
	odoo        *odoo.Exporter
	validate    *validator.Validate
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, cfg *config.Config, hub *websocket.Hub) *Router {
	cache := address.NewFormatCache(cfg.Provisioning.AddressCacheSize)
	warnWhenCacheFull(cache)

	r := &Router{
		Router:   mux.NewRouter(),
		db:       db,
		cfg:      cfg,
		hub:      hub,
		cache:    cache,
		validate: validator.New(),
		locations: locations.NewService(db.DB, cache),
	}

	opts := []provisioning.Option{provisioning.WithBatchSize(cfg.Provisioning.BatchSize)}
	if hub != nil {
		opts = append(opts, provisioning.WithProgress(hub))
	}
	r.provisioner = provisioning.NewProvisioner(repository.NewGormStore(db.DB), opts...)

	if cfg.Odoo.Enabled() {
		client := odoo.NewClient(cfg.Odoo.URL, cfg.Odoo.Database, cfg.Odoo.Username, cfg.Odoo.Password)
		r.odoo = odoo.NewExporter(client, cfg.Odoo.ParentLocationID, cache)
	}

	base := r.Router
	if cfg.PathPrefix != "" {
		base = r.PathPrefix(cfg.PathPrefix).Subrouter()
	}
	guard := middleware.Auth(cfg.JWTSecret)

	// Health check endpoint
	base.HandleFunc("/health", r.healthCheck).Methods("GET")
	if hub != nil {
		base.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
			websocket.ServeWs(hub, w, req)
		})
	}

	api := base.PathPrefix("/api").Subrouter()
	api.HandleFunc("/status", r.getStatus).Methods("GET")

	// Cells
	api.HandleFunc("/cells/preview", r.previewCell).Methods("POST")
	api.Handle("/cells", guard(http.HandlerFunc(r.createCell))).Methods("POST")
	api.HandleFunc("/cells", r.listCells).Methods("GET")
	api.HandleFunc("/cells/{number:[0-9]+}", r.getCell).Methods("GET")
	api.Handle("/cells/{number:[0-9]+}", guard(http.HandlerFunc(r.deleteCell))).Methods("DELETE")
	api.HandleFunc("/cells/{number:[0-9]+}/aisles/{aisle:[0-9]+}", r.getAisle).Methods("GET")
	api.HandleFunc("/cells/{number:[0-9]+}/export.xlsx", r.exportCell).Methods("GET")
	api.HandleFunc("/cells/{number:[0-9]+}/labels.pdf", r.printLabels).Methods("GET")
	api.Handle("/cells/{number:[0-9]+}/odoo", guard(http.HandlerFunc(r.exportToOdoo))).Methods("POST")

	api.HandleFunc("/provisioning-runs", r.listRuns).Methods("GET")
	api.HandleFunc("/provisioning-runs/{runId}", r.getRun).Methods("GET")

	// Locations
	api.HandleFunc("/scan", r.scanLocation).Methods("GET")
	api.HandleFunc("/locations/{address}", r.getLocation).Methods("GET")
	api.HandleFunc("/locations/{address}/context", r.getLocationContext).Methods("GET")
	api.Handle("/locations/{id:[0-9]+}/block", guard(http.HandlerFunc(r.blockLocation))).Methods("POST")
	api.Handle("/locations/{id:[0-9]+}/unblock", guard(http.HandlerFunc(r.unblockLocation))).Methods("POST")

	// Reference data
	api.HandleFunc("/block-reasons", r.listBlockReasons).Methods("GET")
	api.HandleFunc("/aisles/{id:[0-9]+}/obstacles", r.listObstacles).Methods("GET")
	api.Handle("/aisles/{id:[0-9]+}/obstacles", guard(http.HandlerFunc(r.createObstacle))).Methods("POST")

	return r
}

// Handler returns the router with path normalisation applied
func (r *Router) Handler() http.Handler {
	return middleware.CaseInsensitive(r)
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	status := "ok"
	if sqlDB, err := r.db.DB.DB(); err != nil || sqlDB.PingContext(req.Context()) != nil {
		status = "degraded"
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": status})
}

// getStatus returns build information
func (r *Router) getStatus(w http.ResponseWriter, req *http.Request) {
	clients := 0
	if r.hub != nil {
		clients = r.hub.ClientCount()
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "running",
		"build":          buildinfo.Current(),
		"wsClients":      clients,
		"odooEnabled":    r.odoo != nil,
		"cacheSize":      r.cache.Len(),
		"cacheEvictions": r.cache.Evictions(),
	})
}

// warnWhenCacheFull logs the first eviction; later ones only show in /api/status
func warnWhenCacheFull(cache *address.FormatCache) {
	var once sync.Once
	cache.OnEvict(func(a address.FullAddress) {
		once.Do(func() {
			log.Printf("⚠️  Address cache full, evicted %s; consider raising ADDRESS_CACHE_SIZE", a)
		})
	})
}

// decodeAndValidate reads a JSON body into v and checks its validate tags
func (r *Router) decodeAndValidate(req *http.Request, v interface{}) error {
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		return &requestError{msg: "Invalid request payload: " + err.Error()}
	}
	if err := r.validate.Struct(v); err != nil {
		return &requestError{msg: err.Error()}
	}
	return nil
}

// requestError is a malformed request body
type requestError struct{ msg string }

func (e *requestError) Error() string { return e.msg }

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, provisioning.ErrCellExists),
		errors.Is(err, models.ErrAlreadyBlocked),
		errors.Is(err, models.ErrNotBlocked):
		return http.StatusConflict
	case errors.Is(err, provisioning.ErrInvalidConfig),
		errors.Is(err, address.ErrInvalidFormat),
		errors.Is(err, address.ErrInvalidLevel),
		errors.Is(err, address.ErrOutOfRange),
		errors.Is(err, address.ErrNotANumber):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondErr sends err with the status it maps to
func respondErr(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("❌ %v", err)
	}
	respondError(w, status, err.Error())
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
