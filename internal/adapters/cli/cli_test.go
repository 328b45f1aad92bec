package cli

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"invoice-manager/internal/core"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{"45000", "45000", false},
		{"1234.56", "1234.56", false},
		{"", "", true},
		{"12,000", "", true},
		{"abc", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := parseAmount(tc.raw)
			if tc.wantErr {
				if !errors.Is(err, core.ErrValidation) {
					t.Errorf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func newUpdateFlags() *cobra.Command {
	cmd := &cobra.Command{Use: "update"}
	cmd.Flags().Int("client", 0, "")
	cmd.Flags().String("details", "", "")
	cmd.Flags().String("amount", "", "")
	return cmd
}

func TestPOUpdateFromFlags(t *testing.T) {
	t.Run("OnlyChangedFields", func(t *testing.T) {
		cmd := newUpdateFlags()
		if err := cmd.Flags().Parse([]string{"--amount", "2500.50"}); err != nil {
			t.Fatal(err)
		}
		update, err := poUpdateFromFlags(cmd)
		if err != nil {
			t.Fatal(err)
		}
		if update.TrainingDetails != nil || update.ClientID != nil {
			t.Errorf("unset flags must stay nil: %+v", update)
		}
		if update.TrainingAmount == nil || !update.TrainingAmount.Equal(decimal.RequireFromString("2500.50")) {
			t.Errorf("expected amount 2500.50, got %v", update.TrainingAmount)
		}
	})

	t.Run("ExplicitEmptyDetails", func(t *testing.T) {
		cmd := newUpdateFlags()
		if err := cmd.Flags().Parse([]string{"--details=", "--client", "9"}); err != nil {
			t.Fatal(err)
		}
		update, err := poUpdateFromFlags(cmd)
		if err != nil {
			t.Fatal(err)
		}
		if update.TrainingDetails == nil || *update.TrainingDetails != "" {
			t.Errorf("expected explicit empty details, got %v", update.TrainingDetails)
		}
		if update.ClientID == nil || *update.ClientID != 9 {
			t.Errorf("expected client 9, got %v", update.ClientID)
		}
	})

	t.Run("BadAmount", func(t *testing.T) {
		cmd := newUpdateFlags()
		if err := cmd.Flags().Parse([]string{"--amount", "ten"}); err != nil {
			t.Fatal(err)
		}
		if _, err := poUpdateFromFlags(cmd); err == nil {
			t.Error("expected error for non-numeric amount")
		}
	})
}

func TestPrintInvoices(t *testing.T) {
	var buf bytes.Buffer
	printInvoices(&buf, []core.Invoice{{
		ID:            4,
		InvoiceNumber: "007XYZ",
		PONumber:      "PO-9",
		InvoiceDate:   time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		TotalAmount:   decimal.RequireFromString("118"),
		Status:        core.InvoiceStatusSent,
	}})
	out := buf.String()
	for _, want := range []string{"007XYZ", "PO-9", "29-Feb-2024", "SENT", "₹118.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintResult_JSON(t *testing.T) {
	jsonOutput = true
	defer func() { jsonOutput = false }()

	var buf bytes.Buffer
	called := false
	if err := printResult(&buf, map[string]int{"n": 1}, func(io.Writer) { called = true }); err != nil {
		t.Fatal(err)
	}
	if called {
		t.Error("human printer must not run in JSON mode")
	}
	if !strings.Contains(buf.String(), `"n": 1`) {
		t.Errorf("unexpected JSON output %q", buf.String())
	}
}

func TestClip(t *testing.T) {
	if got := clip("Globex Corporation", 6); got != "Globe~" {
		t.Errorf("expected Globe~, got %q", got)
	}
	if got := clip("Acme", 10); got != "Acme" {
		t.Errorf("expected Acme, got %q", got)
	}
}
