package odoo

import (
	"context"
	"fmt"
	"log"

	"github.com/xelth-com/eckslotgo/internal/address"
	"github.com/xelth-com/eckslotgo/internal/models"
	"github.com/xelth-com/eckslotgo/internal/repository"
)

const locationModel = "stock.location"

// ExportResult counts what an export did in Odoo
type ExportResult struct {
	CellLocationID int64 `json:"cellLocationId"`
	Created        int   `json:"created"`
	Updated        int   `json:"updated"`
}

// Exporter mirrors provisioned locations into Odoo stock.location records.
// Each cell becomes a view location; each address an internal location
// whose barcode is the canonical address. Blocked locations are archived.
type Exporter struct {
	api      API
	parentID int64
	cache    *address.FormatCache
}

func NewExporter(api API, parentLocationID int, cache *address.FormatCache) *Exporter {
	if cache == nil {
		cache = address.NewFormatCache(0)
	}
	return &Exporter{api: api, parentID: int64(parentLocationID), cache: cache}
}

// ExportCell creates or updates one stock.location per row
func (e *Exporter) ExportCell(ctx context.Context, cell models.Cell, rows []repository.AddressRow) (*ExportResult, error) {
	if _, err := e.api.Authenticate(); err != nil {
		return nil, err
	}

	cellLocation, err := e.ensureCellLocation(cell)
	if err != nil {
		return nil, err
	}
	result := &ExportResult{CellLocationID: cellLocation}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		a, err := row.FullAddress()
		if err != nil {
			return result, fmt.Errorf("location id %d: %w", row.LocationID, err)
		}
		code := e.cache.Format(a)

		values := map[string]interface{}{
			"name":        code,
			"barcode":     code,
			"location_id": cellLocation,
			"usage":       "internal",
			"active":      row.BlockReasonID == nil,
		}

		// archived records are only found with an explicit active filter
		ids, err := e.api.Search(locationModel, []interface{}{
			[]interface{}{"barcode", "=", code},
			[]interface{}{"active", "in", []interface{}{true, false}},
		}, 1, 0)
		if err != nil {
			return result, err
		}

		if len(ids) > 0 {
			if err := e.api.Write(locationModel, ids, values); err != nil {
				return result, err
			}
			result.Updated++
			continue
		}
		if _, err := e.api.Create(locationModel, values); err != nil {
			return result, err
		}
		result.Created++
	}

	log.Printf("✅ Odoo export of cell %d: %d created, %d updated", cell.Number, result.Created, result.Updated)
	return result, nil
}

func (e *Exporter) ensureCellLocation(cell models.Cell) (int64, error) {
	name := fmt.Sprintf("Cell %d", cell.Number)
	domain := []interface{}{[]interface{}{"name", "=", name}}
	if e.parentID > 0 {
		domain = append(domain, []interface{}{"location_id", "=", e.parentID})
	}

	ids, err := e.api.Search(locationModel, domain, 1, 0)
	if err != nil {
		return 0, err
	}
	if len(ids) > 0 {
		return ids[0], nil
	}

	values := map[string]interface{}{"name": name, "usage": "view"}
	if e.parentID > 0 {
		values["location_id"] = e.parentID
	}
	return e.api.Create(locationModel, values)
}
