package printer

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/xelth-com/eckslotgo/internal/address"
	"github.com/xelth-com/eckslotgo/internal/repository"
	"github.com/xelth-com/eckslotgo/internal/utils"
)

// ErrNoLabels is returned when there is nothing to print
var ErrNoLabels = errors.New("no labels to print")

// Layout holds the A4 label grid configuration
type Layout struct {
	Cols       int     `json:"cols"`
	Rows       int     `json:"rows"`
	MarginTop  float64 `json:"marginTop"`
	MarginLeft float64 `json:"marginLeft"`
	GapX       float64 `json:"gapX"`
	GapY       float64 `json:"gapY"`
	// InstanceSuffix is appended to the QR payload so scanners know the issuing site
	InstanceSuffix string `json:"instanceSuffix"`
}

// DefaultLayout is a 3x7 sheet
func DefaultLayout() Layout {
	return Layout{Cols: 3, Rows: 7, MarginTop: 10, MarginLeft: 5, GapX: 2, GapY: 2, InstanceSuffix: "IB"}
}

func (l Layout) withDefaults() Layout {
	d := DefaultLayout()
	if l.Cols <= 0 {
		l.Cols = d.Cols
	}
	if l.Rows <= 0 {
		l.Rows = d.Rows
	}
	if l.InstanceSuffix == "" {
		l.InstanceSuffix = d.InstanceSuffix
	}
	return l
}

// Label is one location label
type Label struct {
	Address string
	Caption string
	Picking bool
}

// QRContent is the payload encoded for a location address
func QRContent(addr, suffix string) string {
	return utils.EncodeLabelCode(addr, suffix)
}

// LabelsFromRows builds labels for flattened location rows
func LabelsFromRows(rows []repository.AddressRow, cache *address.FormatCache) ([]Label, error) {
	labels := make([]Label, 0, len(rows))
	for _, row := range rows {
		a, err := row.FullAddress()
		if err != nil {
			return nil, fmt.Errorf("location id %d: %w", row.LocationID, err)
		}
		labels = append(labels, Label{
			Address: cache.Format(a),
			Caption: fmt.Sprintf("Aisle %03d %s / Bay %d", row.Aisle, row.Side.Label(), row.Bay),
			Picking: row.IsPicking,
		})
	}
	return labels, nil
}

// GenerateLabelsPDF lays labels out on A4 pages, one QR code per label
func GenerateLabelsPDF(labels []Label, layout Layout) ([]byte, error) {
	if len(labels) == 0 {
		return nil, ErrNoLabels
	}
	layout = layout.withDefaults()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Arial", "B", 10)

	pageWidth, pageHeight := 210.0, 297.0

	// symmetric margins on both axes
	availW := pageWidth - layout.MarginLeft*2 - float64(layout.Cols-1)*layout.GapX
	availH := pageHeight - layout.MarginTop*2 - float64(layout.Rows-1)*layout.GapY
	labelW := availW / float64(layout.Cols)
	labelH := availH / float64(layout.Rows)

	qrSize := labelH * 0.6
	if qrSize > labelW {
		qrSize = labelW * 0.9
	}

	perPage := layout.Cols * layout.Rows
	imgOptions := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}

	for i, label := range labels {
		if i%perPage == 0 {
			pdf.AddPage()
		}
		onPage := i % perPage
		x := layout.MarginLeft + float64(onPage%layout.Cols)*(labelW+layout.GapX)
		y := layout.MarginTop + float64(onPage/layout.Cols)*(labelH+layout.GapY)

		qrPng, err := qrcode.Encode(QRContent(label.Address, layout.InstanceSuffix), qrcode.Medium, 256)
		if err != nil {
			return nil, fmt.Errorf("qr for %s: %w", label.Address, err)
		}
		imgName := fmt.Sprintf("qr_%d", i)
		pdf.RegisterImageOptionsReader(imgName, imgOptions, bytes.NewReader(qrPng))
		pdf.ImageOptions(imgName, x+(labelW-qrSize)/2, y+1, qrSize, qrSize, false, imgOptions, 0, "")

		pdf.SetXY(x, y+labelH-11)
		pdf.SetFontSize(11)
		pdf.CellFormat(labelW, 5, label.Address, "", 0, "C", false, 0, "")

		pdf.SetXY(x, y+labelH-6)
		pdf.SetFontSize(6)
		pdf.CellFormat(labelW, 4, label.Caption, "", 0, "C", false, 0, "")

		if label.Picking {
			pdf.SetXY(x, y+1)
			pdf.SetFontSize(6)
			pdf.CellFormat(labelW-1, 3, "PICK", "", 0, "R", false, 0, "")
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
