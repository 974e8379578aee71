package handlers

import (
	"net/http"

	"github.com/xelth-com/eckslotgo/internal/models"
	"github.com/xelth-com/eckslotgo/internal/repository"
)

// ObstacleRequest describes a physical obstruction in an aisle
type ObstacleRequest struct {
	Type        string  `json:"type" validate:"required,max=50"`
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

func (r *Router) listBlockReasons(w http.ResponseWriter, req *http.Request) {
	reasons, err := repository.NewBlockReasonRepository(r.db.DB).FindAll(req.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reasons)
}

func (r *Router) listObstacles(w http.ResponseWriter, req *http.Request) {
	id, err := pathInt(req, "id")
	if err != nil {
		respondErr(w, err)
		return
	}
	if _, err := repository.NewAisleRepository(r.db.DB).FindByID(req.Context(), uint(id)); err != nil {
		respondErr(w, err)
		return
	}
	obstacles, err := repository.NewObstacleRepository(r.db.DB).FindByAisleID(req.Context(), uint(id))
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, obstacles)
}

func (r *Router) createObstacle(w http.ResponseWriter, req *http.Request) {
	id, err := pathInt(req, "id")
	if err != nil {
		respondErr(w, err)
		return
	}
	var body ObstacleRequest
	if err := r.decodeAndValidate(req, &body); err != nil {
		respondErr(w, err)
		return
	}
	if _, err := repository.NewAisleRepository(r.db.DB).FindByID(req.Context(), uint(id)); err != nil {
		respondErr(w, err)
		return
	}

	obstacle := &models.Obstacle{Type: body.Type, Name: body.Name, Description: body.Description, AisleID: uint(id)}
	if err := repository.NewObstacleRepository(r.db.DB).Create(req.Context(), obstacle); err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, obstacle)
}
