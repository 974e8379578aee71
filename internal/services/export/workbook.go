package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/xelth-com/eckslotgo/internal/address"
	"github.com/xelth-com/eckslotgo/internal/models"
	"github.com/xelth-com/eckslotgo/internal/repository"
)

const (
	SummarySheet   = "Summary"
	LocationsSheet = "Locations"
)

var locationHeader = []interface{}{"Address", "Aisle", "Side", "Bay", "Position", "Level", "Picking", "Status", "Blocked"}

// WriteCellWorkbook writes an XLSX with a summary sheet and one row per
// location of the cell
func WriteCellWorkbook(w io.Writer, cell models.Cell, rows []repository.AddressRow, cache *address.FormatCache) error {
	f := excelize.NewFile()
	defer f.Close()

	// the default sheet becomes the summary
	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return err
	}
	summary := [][]interface{}{
		{"Cell", cell.Number},
		{"Aisle sides", cell.AislesCount},
		{"Locations per side", cell.LocationsPerAisle},
		{"Levels", cell.LevelsPerLocation},
		{"Picking level", yesNo(cell.HasPicking)},
		{"Total locations", cell.TotalLocations()},
	}
	for i, line := range summary {
		if err := f.SetSheetRow(SummarySheet, fmt.Sprintf("A%d", i+1), &line); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(SummarySheet, "A", "A", 22); err != nil {
		return err
	}

	if _, err := f.NewSheet(LocationsSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(LocationsSheet, "A1", &locationHeader); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(LocationsSheet, 1, 1, bold); err != nil {
		return err
	}

	for i, row := range rows {
		a, err := row.FullAddress()
		if err != nil {
			return fmt.Errorf("location id %d: %w", row.LocationID, err)
		}
		line := []interface{}{
			cache.Format(a),
			row.Aisle,
			row.Side.Label(),
			row.Bay,
			row.Position,
			row.Level,
			yesNo(row.IsPicking),
			string(row.Status),
			yesNo(row.BlockReasonID != nil),
		}
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(LocationsSheet, cellName, &line); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(LocationsSheet, "A", "A", 16); err != nil {
		return err
	}

	return f.Write(w)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
