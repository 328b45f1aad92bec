package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"invoice-manager/internal/core"
)

// ── fakes ────────────────────────────────────────────────────────────────────

type fakeCompanies struct {
	core.CompanyService
	company *core.OurCompany
}

func (f *fakeCompanies) GetOurCompany(context.Context) (*core.OurCompany, error) {
	if f.company == nil {
		return nil, core.ErrCompanyNotConfigured
	}
	return f.company, nil
}

type fakePOs struct {
	core.PurchaseOrderService
}

type fakeInvoices struct {
	core.InvoiceService
	invoices  map[int]*core.Invoice
	orphaned  map[int]bool
	generated int
	sent      []int
}

func newFakeInvoices() *fakeInvoices {
	return &fakeInvoices{invoices: map[int]*core.Invoice{}, orphaned: map[int]bool{}}
}

func (f *fakeInvoices) GenerateInvoice(_ context.Context, companyID, poNumber string) (*core.Invoice, error) {
	for _, inv := range f.invoices {
		if inv.PONumber == poNumber {
			return nil, core.ErrAlreadyInvoiced
		}
	}
	f.generated++
	inv := &core.Invoice{
		ID:            f.generated,
		InvoiceNumber: "00" + string(rune('0'+f.generated)) + "ABC",
		CompanyID:     "123456",
		PONumber:      poNumber,
		InvoiceDate:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Subtotal:      decimal.NewFromInt(100),
		GSTAmount:     decimal.NewFromInt(18),
		TotalAmount:   decimal.NewFromInt(118),
		Status:        core.InvoiceStatusGenerated,
	}
	f.invoices[inv.ID] = inv
	cp := *inv
	return &cp, nil
}

func (f *fakeInvoices) GetInvoiceDetail(_ context.Context, id int) (*core.InvoiceDetail, error) {
	inv, ok := f.invoices[id]
	if !ok {
		return nil, core.ErrInvoiceNotFound
	}
	d := &core.InvoiceDetail{Invoice: *inv, Company: core.OurCompany{Name: "Acme"}}
	if !f.orphaned[id] {
		d.PurchaseOrder = &core.PurchaseOrder{PONumber: inv.PONumber}
		d.Client = &core.ClientCompany{Name: "Globex", Email: "ap@globex.example"}
	}
	return d, nil
}

func (f *fakeInvoices) ListInvoicesMissingPDF(context.Context) ([]core.Invoice, error) {
	var out []core.Invoice
	for i := 1; i <= f.generated; i++ {
		if inv := f.invoices[i]; inv.PDFPath == nil {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (f *fakeInvoices) SetPDFPath(_ context.Context, id int, path string) error {
	f.invoices[id].PDFPath = &path
	return nil
}

func (f *fakeInvoices) MarkSent(_ context.Context, id int) error {
	f.invoices[id].Status = core.InvoiceStatusSent
	f.sent = append(f.sent, id)
	return nil
}

// fileRenderer writes a placeholder file so path existence checks behave like the real renderer.
type fileRenderer struct {
	dir   string
	calls int
	err   error
}

func (r *fileRenderer) Render(d *core.InvoiceDetail) (string, error) {
	r.calls++
	if r.err != nil {
		return "", r.err
	}
	if d.PurchaseOrder == nil {
		return "", core.ErrInvoiceOrphaned
	}
	path := filepath.Join(r.dir, "Invoice_"+d.Invoice.InvoiceNumber+".pdf")
	return path, os.WriteFile(path, []byte("%PDF-1.3"), 0o644)
}

type fakeMailer struct {
	paths []string
	err   error
}

func (m *fakeMailer) SendInvoice(_ context.Context, _ *core.InvoiceDetail, pdfPath string) error {
	if m.err != nil {
		return m.err
	}
	m.paths = append(m.paths, pdfPath)
	return nil
}

type fixture struct {
	svc      ApplicationService
	invoices *fakeInvoices
	renderer *fileRenderer
	mailer   *fakeMailer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		invoices: newFakeInvoices(),
		renderer: &fileRenderer{dir: t.TempDir()},
		mailer:   &fakeMailer{},
	}
	f.svc = NewAppService(&fakeCompanies{}, fakePOs{}, f.invoices, f.renderer, f.mailer, zerolog.Nop())
	return f
}

// ── tests ────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	ctx := context.Background()

	t.Run("NeedsSetup", func(t *testing.T) {
		svc := NewAppService(&fakeCompanies{}, fakePOs{}, newFakeInvoices(), nil, nil, zerolog.Nop())
		res, err := svc.Health(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if !res.NeedsSetup || res.Status != "ok" {
			t.Errorf("expected ok + needs_setup, got %+v", res)
		}
	})

	t.Run("Configured", func(t *testing.T) {
		svc := NewAppService(&fakeCompanies{company: &core.OurCompany{Name: "Acme"}}, fakePOs{}, newFakeInvoices(), nil, nil, zerolog.Nop())
		res, err := svc.Health(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if res.NeedsSetup || res.Company != "Acme" {
			t.Errorf("unexpected health %+v", res)
		}
	})
}

func TestGenerateInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("RendersPDF", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.svc.GenerateInvoice(ctx, GenerateInvoiceRequest{PONumber: "PO-1"})
		if err != nil {
			t.Fatalf("GenerateInvoice: %v", err)
		}
		if res.PDFPath == "" || res.PDFError != "" {
			t.Errorf("expected rendered PDF, got %+v", res)
		}
		if res.Invoice.PDFPath == nil || *res.Invoice.PDFPath != res.PDFPath {
			t.Errorf("invoice PDFPath not updated")
		}
		if stored := f.invoices.invoices[res.Invoice.ID].PDFPath; stored == nil {
			t.Error("PDF path not persisted")
		}
	})

	t.Run("RenderFailureKeepsInvoice", func(t *testing.T) {
		f := newFixture(t)
		f.renderer.err = core.Infra("write invoice pdf", errors.New("disk full"))
		res, err := f.svc.GenerateInvoice(ctx, GenerateInvoiceRequest{PONumber: "PO-2"})
		if err != nil {
			t.Fatalf("expected invoice despite render failure, got %v", err)
		}
		if res.PDFError == "" {
			t.Error("expected PDFError to be reported")
		}
		if len(f.invoices.invoices) != 1 {
			t.Errorf("expected 1 invoice, got %d", len(f.invoices.invoices))
		}
	})

	t.Run("AlreadyInvoiced", func(t *testing.T) {
		f := newFixture(t)
		if _, err := f.svc.GenerateInvoice(ctx, GenerateInvoiceRequest{PONumber: "PO-3"}); err != nil {
			t.Fatal(err)
		}
		_, err := f.svc.GenerateInvoice(ctx, GenerateInvoiceRequest{PONumber: "PO-3"})
		if !errors.Is(err, core.ErrAlreadyInvoiced) {
			t.Errorf("expected ErrAlreadyInvoiced, got %v", err)
		}
		if f.renderer.calls != 1 {
			t.Errorf("expected 1 render, got %d", f.renderer.calls)
		}
	})
}

func TestSendInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("RendersMissingAndMarksSent", func(t *testing.T) {
		f := newFixture(t)
		f.renderer.err = errors.New("first render fails")
		gen, err := f.svc.GenerateInvoice(ctx, GenerateInvoiceRequest{PONumber: "PO-1"})
		if err != nil {
			t.Fatal(err)
		}
		f.renderer.err = nil

		res, err := f.svc.SendInvoice(ctx, SendInvoiceRequest{InvoiceID: gen.Invoice.ID, MarkSent: true})
		if err != nil {
			t.Fatalf("SendInvoice: %v", err)
		}
		if res.Invoice.Status != core.InvoiceStatusSent {
			t.Errorf("expected SENT, got %s", res.Invoice.Status)
		}
		if len(f.mailer.paths) != 1 || f.mailer.paths[0] != res.PDFPath {
			t.Errorf("mailer did not receive rendered path: %v", f.mailer.paths)
		}
		if res.SentTo != "ap@globex.example" {
			t.Errorf("unexpected recipient %s", res.SentTo)
		}
	})

	t.Run("ReRendersDeletedFile", func(t *testing.T) {
		f := newFixture(t)
		gen, err := f.svc.GenerateInvoice(ctx, GenerateInvoiceRequest{PONumber: "PO-1"})
		if err != nil {
			t.Fatal(err)
		}
		if err := os.Remove(gen.PDFPath); err != nil {
			t.Fatal(err)
		}
		if _, err := f.svc.SendInvoice(ctx, SendInvoiceRequest{InvoiceID: gen.Invoice.ID}); err != nil {
			t.Fatalf("SendInvoice: %v", err)
		}
		if f.renderer.calls != 2 {
			t.Errorf("expected re-render, got %d render calls", f.renderer.calls)
		}
		if len(f.invoices.sent) != 0 {
			t.Error("invoice marked sent although MarkSent was false")
		}
	})

	t.Run("MailerFailureLeavesStatus", func(t *testing.T) {
		f := newFixture(t)
		gen, err := f.svc.GenerateInvoice(ctx, GenerateInvoiceRequest{PONumber: "PO-1"})
		if err != nil {
			t.Fatal(err)
		}
		f.mailer.err = core.ErrClientEmailMissing
		_, err = f.svc.SendInvoice(ctx, SendInvoiceRequest{InvoiceID: gen.Invoice.ID, MarkSent: true})
		if !errors.Is(err, core.ErrValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
		if f.invoices.invoices[gen.Invoice.ID].Status != core.InvoiceStatusGenerated {
			t.Error("status changed despite failed send")
		}
	})

	t.Run("NotConfigured", func(t *testing.T) {
		svc := NewAppService(&fakeCompanies{}, fakePOs{}, newFakeInvoices(), &fileRenderer{dir: t.TempDir()}, nil, zerolog.Nop())
		_, err := svc.SendInvoice(ctx, SendInvoiceRequest{InvoiceID: 1})
		if !errors.Is(err, core.ErrInfrastructure) {
			t.Errorf("expected infrastructure error, got %v", err)
		}
	})

	t.Run("UnknownInvoice", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.SendInvoice(ctx, SendInvoiceRequest{InvoiceID: 42})
		if !errors.Is(err, core.ErrNotFound) {
			t.Errorf("expected not found, got %v", err)
		}
	})
}

func TestRenderMissingPDFs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.renderer.err = errors.New("offline")
	for _, po := range []string{"PO-1", "PO-2", "PO-3"} {
		if _, err := f.svc.GenerateInvoice(ctx, GenerateInvoiceRequest{PONumber: po}); err != nil {
			t.Fatal(err)
		}
	}
	f.renderer.err = nil
	f.invoices.orphaned[2] = true

	res, err := f.svc.RenderMissingPDFs(ctx)
	if err != nil {
		t.Fatalf("RenderMissingPDFs: %v", err)
	}
	if len(res.Rendered) != 2 {
		t.Errorf("expected 2 rendered, got %v", res.Rendered)
	}
	if len(res.Failed) != 1 {
		t.Errorf("expected 1 failure for the orphaned invoice, got %v", res.Failed)
	}

	again, err := f.svc.RenderMissingPDFs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(again.Rendered) != 0 {
		t.Errorf("expected backfill to be idempotent, re-rendered %v", again.Rendered)
	}
}
