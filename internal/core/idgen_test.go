package core_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"regexp"
	"testing"

	"invoice-manager/internal/core"
)

var (
	companyIDPattern     = regexp.MustCompile(`^[0-9]{6}$`)
	invoiceNumberPattern = regexp.MustCompile(`^[0-9]{3}[A-Z]{3}$`)
)

// scriptedSource replays fixed values, so tests can force collisions.
type scriptedSource struct {
	values []int
	pos    int
}

func (s *scriptedSource) IntN(n int) int {
	v := s.values[s.pos%len(s.values)] % n
	s.pos++
	return v
}

func neverTaken(context.Context, string) (bool, error) { return false, nil }

func TestIDGenerator_Formats(t *testing.T) {
	gen := core.NewIDGenerator(rand.New(rand.NewPCG(1, 2)))
	ctx := context.Background()

	for i := 0; i < 500; i++ {
		id, err := gen.CompanyID(ctx, neverTaken)
		if err != nil {
			t.Fatal(err)
		}
		if !companyIDPattern.MatchString(id) {
			t.Fatalf("company ID %q does not match %s", id, companyIDPattern)
		}

		num, err := gen.InvoiceNumber(ctx, neverTaken)
		if err != nil {
			t.Fatal(err)
		}
		if !invoiceNumberPattern.MatchString(num) {
			t.Fatalf("invoice number %q does not match %s", num, invoiceNumberPattern)
		}
	}
}

func TestIDGenerator_ZeroPadding(t *testing.T) {
	ctx := context.Background()

	gen := core.NewIDGenerator(&scriptedSource{values: []int{42}})
	id, err := gen.CompanyID(ctx, neverTaken)
	if err != nil {
		t.Fatal(err)
	}
	if id != "000042" {
		t.Errorf("expected 000042, got %s", id)
	}

	gen = core.NewIDGenerator(&scriptedSource{values: []int{7, 0, 25, 1}})
	num, err := gen.InvoiceNumber(ctx, neverTaken)
	if err != nil {
		t.Fatal(err)
	}
	if num != "007AZB" {
		t.Errorf("expected 007AZB, got %s", num)
	}
}

func TestIDGenerator_RetriesUntilFree(t *testing.T) {
	ctx := context.Background()
	gen := core.NewIDGenerator(&scriptedSource{values: []int{1, 2, 3}})

	taken := map[string]bool{"000001": true, "000002": true}
	var checked []string
	id, err := gen.CompanyID(ctx, func(_ context.Context, c string) (bool, error) {
		checked = append(checked, c)
		return taken[c], nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if id != "000003" {
		t.Errorf("expected first free candidate 000003, got %s", id)
	}
	if len(checked) != 3 {
		t.Errorf("expected 3 uniqueness checks, got %v", checked)
	}
}

func TestIDGenerator_ExistsError(t *testing.T) {
	gen := core.NewIDGenerator(nil)
	boom := errors.New("connection reset")
	_, err := gen.InvoiceNumber(context.Background(), func(context.Context, string) (bool, error) {
		return false, boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped lookup error, got %v", err)
	}
}

func TestIDGenerator_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	gen := core.NewIDGenerator(nil)

	calls := 0
	_, err := gen.CompanyID(ctx, func(context.Context, string) (bool, error) {
		calls++
		if calls == 3 {
			cancel()
		}
		return true, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
