package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/xelth-com/eckslotgo/internal/provisioning"
	"github.com/xelth-com/eckslotgo/internal/repository"
)

// previewSampleSize is the number of addresses returned with a preview
const previewSampleSize = 10

// PreviewResponse is the dry run of a cell configuration
type PreviewResponse struct {
	Summary     provisioning.Summary           `json:"summary"`
	Descriptors []provisioning.AisleDescriptor `json:"descriptors"`
	Sample      []string                       `json:"sample"`
}

// previewCell summarises a configuration without generating or writing its locations
func (r *Router) previewCell(w http.ResponseWriter, req *http.Request) {
	var cfg provisioning.CellConfig
	if err := r.decodeAndValidate(req, &cfg); err != nil {
		respondErr(w, err)
		return
	}

	preview, err := r.provisioner.Preview(cfg, previewSampleSize)
	if err != nil {
		respondErr(w, err)
		return
	}

	resp := PreviewResponse{Summary: preview.Summary, Descriptors: preview.Descriptors}
	for _, a := range preview.Sample {
		resp.Sample = append(resp.Sample, r.cache.Format(a))
	}
	respondJSON(w, http.StatusOK, resp)
}

// createCell provisions a cell with all its aisles, bays and locations
func (r *Router) createCell(w http.ResponseWriter, req *http.Request) {
	var cfg provisioning.CellConfig
	if err := r.decodeAndValidate(req, &cfg); err != nil {
		respondErr(w, err)
		return
	}

	result, err := r.provisioner.Provision(req.Context(), cfg)
	if err != nil {
		respondErr(w, err)
		return
	}
	log.Printf("📦 Cell %d provisioned: %d locations in %s", result.Cell.Number, result.Locations, result.Duration)
	respondJSON(w, http.StatusCreated, result)
}

func (r *Router) listCells(w http.ResponseWriter, req *http.Request) {
	cells, err := repository.NewCellRepository(r.db.DB).FindAll(req.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cells)
}

// getCell returns a cell with its aisles and bays
func (r *Router) getCell(w http.ResponseWriter, req *http.Request) {
	number, err := pathInt(req, "number")
	if err != nil {
		respondErr(w, err)
		return
	}
	cell, err := repository.NewCellRepository(r.db.DB).FindWithAisles(req.Context(), number)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cell)
}

// deleteCell removes a cell and everything generated for it
func (r *Router) deleteCell(w http.ResponseWriter, req *http.Request) {
	number, err := pathInt(req, "number")
	if err != nil {
		respondErr(w, err)
		return
	}
	if err := repository.NewCellRepository(r.db.DB).Delete(req.Context(), number); err != nil {
		respondErr(w, err)
		return
	}
	r.cache.Clear()
	log.Printf("🧹 Cell %d deleted", number)
	w.WriteHeader(http.StatusNoContent)
}

// getAisle returns both sides of an aisle with bays and locations
func (r *Router) getAisle(w http.ResponseWriter, req *http.Request) {
	number, err := pathInt(req, "number")
	if err != nil {
		respondErr(w, err)
		return
	}
	aisle, err := pathInt(req, "aisle")
	if err != nil {
		respondErr(w, err)
		return
	}

	cell, err := repository.NewCellRepository(r.db.DB).FindByNumber(req.Context(), number)
	if err != nil {
		respondErr(w, err)
		return
	}
	sides, err := repository.NewAisleRepository(r.db.DB).FindSides(req.Context(), cell.ID, aisle)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sides)
}

// listRuns returns the provisioning history, newest first. Optional: cell, limit.
func (r *Router) listRuns(w http.ResponseWriter, req *http.Request) {
	cell, _, err := queryInt(req, "cell")
	if err != nil {
		respondErr(w, err)
		return
	}
	limit, ok, err := queryInt(req, "limit")
	if err != nil {
		respondErr(w, err)
		return
	}
	if !ok {
		limit = 50
	}
	runs, err := repository.NewRunRepository(r.db.DB).FindRecent(req.Context(), cell, limit)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, runs)
}

func (r *Router) getRun(w http.ResponseWriter, req *http.Request) {
	run, err := repository.NewRunRepository(r.db.DB).FindByRunID(req.Context(), mux.Vars(req)["runId"])
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, run)
}

// pathInt reads a numeric route variable
func pathInt(req *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(mux.Vars(req)[name])
	if err != nil {
		return 0, &requestError{msg: fmt.Sprintf("invalid %s: %q", name, mux.Vars(req)[name])}
	}
	return v, nil
}

// queryInt reads an optional numeric query parameter
func queryInt(req *http.Request, name string) (int, bool, error) {
	raw := req.URL.Query().Get(name)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, &requestError{msg: fmt.Sprintf("invalid %s: %q", name, raw)}
	}
	return v, true, nil
}
