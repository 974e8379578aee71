package printer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xelth-com/eckslotgo/internal/address"
	"github.com/xelth-com/eckslotgo/internal/repository"
)

func TestQRContent(t *testing.T) {
	if got := QRContent("4-016-0026-30", "IB"); got != "ECK1.COM/L4-016-0026-30IB" {
		t.Errorf("QRContent = %s", got)
	}
}

func TestLabelsFromRows(t *testing.T) {
	rows := []repository.AddressRow{
		{LocationID: 1, Cell: 4, Aisle: 16, Side: address.Even, Bay: 4, Position: 26, Level: 0, IsPicking: true},
		{LocationID: 2, Cell: 4, Aisle: 16, Side: address.Even, Bay: 4, Position: 26, Level: 30},
	}
	labels, err := LabelsFromRows(rows, address.NewFormatCache(8))
	if err != nil {
		t.Fatalf("LabelsFromRows: %v", err)
	}
	if labels[0].Address != "4-016-0026-00" || !labels[0].Picking {
		t.Errorf("first label = %+v", labels[0])
	}
	if labels[1].Caption != "Aisle 016 Even / Bay 4" {
		t.Errorf("caption = %q", labels[1].Caption)
	}

	bad := []repository.AddressRow{{LocationID: 3, Cell: 4, Aisle: 16, Position: 26, Level: 35}}
	if _, err := LabelsFromRows(bad, address.NewFormatCache(8)); !errors.Is(err, address.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for a corrupt row, got %v", err)
	}
}

func TestGenerateLabelsPDF(t *testing.T) {
	labels := make([]Label, 25) // spills onto a second page
	for i := range labels {
		labels[i] = Label{Address: "1-001-0001-00", Caption: "Aisle 001 Odd / Bay 1", Picking: i == 0}
	}

	data, err := GenerateLabelsPDF(labels, Layout{})
	if err != nil {
		t.Fatalf("GenerateLabelsPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}

	if _, err := GenerateLabelsPDF(nil, DefaultLayout()); !errors.Is(err, ErrNoLabels) {
		t.Errorf("expected ErrNoLabels, got %v", err)
	}
}
