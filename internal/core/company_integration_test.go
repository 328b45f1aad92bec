package core_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"invoice-manager/internal/core"
	"invoice-manager/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := migrations.Apply(ctx, pool); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	if _, err := pool.Exec(ctx, `
		TRUNCATE TABLE invoices, purchase_orders, client_companies, our_company RESTART IDENTITY CASCADE;
	`); err != nil {
		t.Fatalf("Failed to clean test database: %v", err)
	}
	return pool
}

type testServices struct {
	companies core.CompanyService
	pos       core.PurchaseOrderService
	invoices  core.InvoiceService
}

func newTestServices(pool *pgxpool.Pool) testServices {
	idGen := core.NewIDGenerator(nil)
	pos := core.NewPurchaseOrderService(pool, zerolog.Nop())
	return testServices{
		companies: core.NewCompanyService(pool, idGen),
		pos:       pos,
		invoices:  core.NewInvoiceService(pool, pos, idGen, zerolog.Nop()),
	}
}

func testCompanyInput() core.OurCompanyInput {
	return core.OurCompanyInput{
		Name:          "Acme Training Pvt Ltd",
		Address:       "12 MG Road, Bengaluru",
		PANNumber:     "ABCDE1234F",
		GSTNumber:     "29ABCDE1234F1Z5",
		BankName:      "State Bank",
		AccountNumber: "000111222333",
		IFSCCode:      "SBIN0000001",
		Email:         "billing@acme.example",
		Phone:         "08012345678",
	}
}

func seedCompanyAndClient(t *testing.T, ctx context.Context, svc testServices) (*core.OurCompany, *core.ClientCompany) {
	t.Helper()
	company, err := svc.companies.CreateOurCompany(ctx, testCompanyInput())
	if err != nil {
		t.Fatalf("seed company: %v", err)
	}
	client, err := svc.companies.CreateClientCompany(ctx, core.ClientCompanyInput{
		Name:      "Globex",
		Address:   "4 Park Street, Kolkata",
		PANNumber: "PQRSX6789K",
		GSTNumber: "19PQRSX6789K1Z2",
		Email:     "ap@globex.example",
	})
	if err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return company, client
}

func TestCompanyService_OurCompany(t *testing.T) {
	pool := setupTestDB(t)
	svc := newTestServices(pool)
	ctx := context.Background()

	t.Run("NotConfigured", func(t *testing.T) {
		_, err := svc.companies.GetOurCompany(ctx)
		if !errors.Is(err, core.ErrCompanyNotConfigured) {
			t.Errorf("expected ErrCompanyNotConfigured, got %v", err)
		}
	})

	t.Run("MissingField", func(t *testing.T) {
		in := testCompanyInput()
		in.GSTNumber = ""
		_, err := svc.companies.CreateOurCompany(ctx, in)
		var ve *core.ValidationError
		if !errors.As(err, &ve) || ve.Field != "gst_number" {
			t.Errorf("expected validation error for gst_number, got %v", err)
		}
	})

	var companyID string
	t.Run("Create", func(t *testing.T) {
		c, err := svc.companies.CreateOurCompany(ctx, testCompanyInput())
		if err != nil {
			t.Fatalf("CreateOurCompany: %v", err)
		}
		if !companyIDPattern.MatchString(c.CompanyID) {
			t.Errorf("company ID %q is not 6 digits", c.CompanyID)
		}
		if c.ContactPerson != nil {
			t.Errorf("expected nil contact person, got %q", *c.ContactPerson)
		}
		companyID = c.CompanyID

		exists, err := svc.companies.CompanyIDExists(ctx, c.CompanyID)
		if err != nil || !exists {
			t.Errorf("expected CompanyIDExists=true, got %v, %v", exists, err)
		}
	})

	t.Run("SecondCreate_Conflict", func(t *testing.T) {
		in := testCompanyInput()
		in.PANNumber = "ZZZZZ9999Z"
		in.GSTNumber = "29ZZZZZ9999Z1Z5"
		_, err := svc.companies.CreateOurCompany(ctx, in)
		if !errors.Is(err, core.ErrCompanyAlreadyConfigured) {
			t.Errorf("expected ErrCompanyAlreadyConfigured, got %v", err)
		}
	})

	t.Run("UpdateKeepsID", func(t *testing.T) {
		in := testCompanyInput()
		in.Phone = "09999999999"
		in.ContactPerson = "Priya"
		c, err := svc.companies.UpdateOurCompany(ctx, in)
		if err != nil {
			t.Fatalf("UpdateOurCompany: %v", err)
		}
		if c.CompanyID != companyID {
			t.Errorf("company ID changed from %s to %s", companyID, c.CompanyID)
		}
		if c.Phone != "09999999999" || c.ContactPerson == nil || *c.ContactPerson != "Priya" {
			t.Errorf("update not applied: %+v", c)
		}
	})
}

func TestCompanyService_Clients(t *testing.T) {
	pool := setupTestDB(t)
	svc := newTestServices(pool)
	ctx := context.Background()

	t.Run("NameRequired", func(t *testing.T) {
		_, err := svc.companies.CreateClientCompany(ctx, core.ClientCompanyInput{Address: "x"})
		if !errors.Is(err, core.ErrValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	c, err := svc.companies.CreateClientCompany(ctx, core.ClientCompanyInput{
		Name:    "Initech",
		Address: "1 Office Park",
		Email:   "accounts@initech.example",
	})
	if err != nil {
		t.Fatalf("CreateClientCompany: %v", err)
	}
	if c.PANNumber != nil || c.GSTNumber != nil {
		t.Errorf("expected empty PAN/GST stored as NULL, got %v %v", c.PANNumber, c.GSTNumber)
	}

	got, err := svc.companies.GetClientCompany(ctx, c.ID)
	if err != nil || got.Name != "Initech" {
		t.Errorf("GetClientCompany: %+v, %v", got, err)
	}

	if _, err := svc.companies.GetClientCompany(ctx, c.ID+100); !errors.Is(err, core.ErrClientNotFound) {
		t.Errorf("expected ErrClientNotFound, got %v", err)
	}

	list, err := svc.companies.ListClientCompanies(ctx)
	if err != nil || len(list) != 1 {
		t.Errorf("expected 1 client, got %d (%v)", len(list), err)
	}
}
