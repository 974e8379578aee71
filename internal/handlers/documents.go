package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/xelth-com/eckslotgo/internal/models"
	"github.com/xelth-com/eckslotgo/internal/repository"
	"github.com/xelth-com/eckslotgo/internal/services/export"
	"github.com/xelth-com/eckslotgo/internal/services/printer"
)

// cellRows loads the cell named by the route and its flattened locations
func (r *Router) cellRows(req *http.Request) (*models.Cell, []repository.AddressRow, error) {
	number, err := pathInt(req, "number")
	if err != nil {
		return nil, nil, err
	}
	cell, err := repository.NewCellRepository(r.db.DB).FindByNumber(req.Context(), number)
	if err != nil {
		return nil, nil, err
	}
	rows, err := repository.NewLocationRepository(r.db.DB).Addresses(req.Context(), number)
	if err != nil {
		return nil, nil, err
	}
	return cell, rows, nil
}

// exportCell streams the cell as an Excel workbook
func (r *Router) exportCell(w http.ResponseWriter, req *http.Request) {
	cell, rows, err := r.cellRows(req)
	if err != nil {
		respondErr(w, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCellWorkbook(&buf, *cell, rows, r.cache); err != nil {
		respondErr(w, fmt.Errorf("failed to write workbook: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=cell-%d.xlsx", cell.Number))
	w.Write(buf.Bytes())
}

// printLabels renders QR labels for a cell. Optional filters: aisle, level.
// Optional layout: cols, rows.
func (r *Router) printLabels(w http.ResponseWriter, req *http.Request) {
	cell, rows, err := r.cellRows(req)
	if err != nil {
		respondErr(w, err)
		return
	}

	aisle, byAisle, err := queryInt(req, "aisle")
	if err != nil {
		respondErr(w, err)
		return
	}
	level, byLevel, err := queryInt(req, "level")
	if err != nil {
		respondErr(w, err)
		return
	}
	filtered := rows[:0]
	for _, row := range rows {
		if byAisle && row.Aisle != aisle {
			continue
		}
		if byLevel && row.Level != level {
			continue
		}
		filtered = append(filtered, row)
	}

	labels, err := printer.LabelsFromRows(filtered, r.cache)
	if err != nil {
		respondErr(w, err)
		return
	}

	layout := printer.DefaultLayout()
	if r.cfg.InstanceSuffix != "" {
		layout.InstanceSuffix = r.cfg.InstanceSuffix
	}
	if v, err := strconv.Atoi(req.URL.Query().Get("cols")); err == nil && v > 0 {
		layout.Cols = v
	}
	if v, err := strconv.Atoi(req.URL.Query().Get("rows")); err == nil && v > 0 {
		layout.Rows = v
	}

	pdf, err := printer.GenerateLabelsPDF(labels, layout)
	if errors.Is(err, printer.ErrNoLabels) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		respondErr(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=labels-cell-%d.pdf", cell.Number))
	w.Write(pdf)
}

// exportToOdoo mirrors the cell's locations into Odoo
func (r *Router) exportToOdoo(w http.ResponseWriter, req *http.Request) {
	if r.odoo == nil {
		respondError(w, http.StatusServiceUnavailable, "Odoo export is not configured")
		return
	}
	cell, rows, err := r.cellRows(req)
	if err != nil {
		respondErr(w, err)
		return
	}
	result, err := r.odoo.ExportCell(req.Context(), *cell, rows)
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, result)
}
