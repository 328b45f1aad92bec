package document

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"invoice-manager/internal/core"
)

func sampleDetail() *core.InvoiceDetail {
	phone := "9876543210"
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	return &core.InvoiceDetail{
		Invoice: core.Invoice{
			ID:            1,
			InvoiceNumber: "123ABC",
			CompanyID:     "004217",
			PONumber:      "PO-1",
			InvoiceDate:   date,
			Subtotal:      decimal.RequireFromString("10000.00"),
			GSTAmount:     decimal.RequireFromString("1800.00"),
			TotalAmount:   decimal.RequireFromString("11800.00"),
			Status:        core.InvoiceStatusGenerated,
		},
		Company: core.OurCompany{
			CompanyID:     "004217",
			Name:          "Acme Training Pvt Ltd",
			Address:       "12 MG Road, Bengaluru",
			PANNumber:     "ABCDE1234F",
			GSTNumber:     "29ABCDE1234F1Z5",
			BankName:      "State Bank",
			AccountNumber: "000111222333",
			IFSCCode:      "SBIN0000001",
			Email:         "billing@acme.example",
			Phone:         "0801234567",
		},
		PurchaseOrder: &core.PurchaseOrder{
			PONumber:        "PO-1",
			ClientID:        7,
			ClientName:      "Globex",
			TrainingDetails: "Go concurrency workshop",
			TrainingAmount:  decimal.RequireFromString("10000.00"),
			PODate:          date,
			Status:          core.POStatusInvoiced,
		},
		Client: &core.ClientCompany{
			ID:      7,
			Name:    "Globex",
			Address: "4 Park Street, Kolkata",
			Email:   "ap@globex.example",
			Phone:   &phone,
		},
	}
}

func TestRenderer_Render(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "invoices")
	r := NewRenderer(dir)

	t.Run("WritesFile", func(t *testing.T) {
		path, err := r.Render(sampleDetail())
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if want := filepath.Join(dir, "Invoice_123ABC.pdf"); path != want {
			t.Errorf("expected path %s, got %s", want, path)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat rendered file: %v", err)
		}
		if info.Size() == 0 {
			t.Error("rendered file is empty")
		}
		head := make([]byte, 5)
		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		if _, err := f.Read(head); err != nil {
			t.Fatal(err)
		}
		if string(head) != "%PDF-" {
			t.Errorf("expected PDF header, got %q", head)
		}
	})

	t.Run("RerenderOverwrites", func(t *testing.T) {
		first, err := r.Render(sampleDetail())
		if err != nil {
			t.Fatal(err)
		}
		second, err := r.Render(sampleDetail())
		if err != nil {
			t.Fatal(err)
		}
		if first != second {
			t.Errorf("expected same path on re-render, got %s and %s", first, second)
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Errorf("expected exactly 1 file in %s, got %d", dir, len(entries))
		}
	})

	t.Run("OrphanedInvoice", func(t *testing.T) {
		d := sampleDetail()
		d.PurchaseOrder = nil
		d.Client = nil
		_, err := r.Render(d)
		if !errors.Is(err, core.ErrValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("expected unchanged, got %q", got)
	}
	if got := truncate("abcdefghijkl", 8); got != "abcde..." {
		t.Errorf("expected abcde..., got %q", got)
	}
}
