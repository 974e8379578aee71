package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// BlockRequest names the reason a location is blocked with
type BlockRequest struct {
	ReasonID uint `json:"reasonId" validate:"required"`
}

// getLocation resolves an address, short forms included
func (r *Router) getLocation(w http.ResponseWriter, req *http.Request) {
	view, err := r.locations.Lookup(req.Context(), mux.Vars(req)["address"])
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// scanLocation resolves a scanned label payload passed as ?code=
func (r *Router) scanLocation(w http.ResponseWriter, req *http.Request) {
	code := req.URL.Query().Get("code")
	if code == "" {
		respondError(w, http.StatusBadRequest, "code is required")
		return
	}
	view, err := r.locations.Lookup(req.Context(), code)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (r *Router) getLocationContext(w http.ResponseWriter, req *http.Request) {
	view, err := r.locations.Context(req.Context(), mux.Vars(req)["address"])
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (r *Router) blockLocation(w http.ResponseWriter, req *http.Request) {
	id, err := pathInt(req, "id")
	if err != nil {
		respondErr(w, err)
		return
	}
	var body BlockRequest
	if err := r.decodeAndValidate(req, &body); err != nil {
		respondErr(w, err)
		return
	}

	view, err := r.locations.Block(req.Context(), uint(id), body.ReasonID)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (r *Router) unblockLocation(w http.ResponseWriter, req *http.Request) {
	id, err := pathInt(req, "id")
	if err != nil {
		respondErr(w, err)
		return
	}
	view, err := r.locations.Unblock(req.Context(), uint(id))
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}
