package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// maxInsertAttempts bounds regeneration after a storage-level uniqueness conflict.
const maxInsertAttempts = 5

// dbtx is satisfied by both *pgxpool.Pool and pgx.Tx.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const ourCompanyColumns = `company_id, company_name, address, pan_number, gst_number,
	bank_name, account_number, ifsc_code, email, phone, contact_person, created_date`

const clientColumns = `id, company_name, address, pan_number, gst_number, email, phone, created_date`

type companyService struct {
	pool  *pgxpool.Pool
	idGen *IDGenerator
}

// NewCompanyService constructs a CompanyService backed by PostgreSQL.
func NewCompanyService(pool *pgxpool.Pool, idGen *IDGenerator) CompanyService {
	return &companyService{pool: pool, idGen: idGen}
}

// CreateOurCompany inserts the singleton company profile with a generated company ID.
func (s *companyService) CreateOurCompany(ctx context.Context, input OurCompanyInput) (*OurCompany, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		companyID, err := s.idGen.CompanyID(ctx, s.CompanyIDExists)
		if err != nil {
			return nil, Infra("generate company id", err)
		}

		c, err := scanOurCompany(s.pool.QueryRow(ctx, `
			INSERT INTO our_company (company_id, company_name, address, pan_number, gst_number,
			                         bank_name, account_number, ifsc_code, email, phone, contact_person)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING `+ourCompanyColumns,
			companyID, input.Name, input.Address, input.PANNumber, input.GSTNumber,
			input.BankName, input.AccountNumber, input.IFSCCode, input.Email, input.Phone,
			toPtr(input.ContactPerson),
		))
		switch {
		case err == nil:
			return c, nil
		case isUniqueViolation(err, "our_company_pkey"):
			return nil, ErrCompanyAlreadyConfigured
		case isUniqueViolation(err, "our_company_company_id_key") && attempt < maxInsertAttempts:
			continue
		default:
			return nil, Infra("create our company", err)
		}
	}
}

// GetOurCompany returns the singleton company profile.
func (s *companyService) GetOurCompany(ctx context.Context) (*OurCompany, error) {
	return getOurCompany(ctx, s.pool)
}

func getOurCompany(ctx context.Context, q dbtx) (*OurCompany, error) {
	c, err := scanOurCompany(q.QueryRow(ctx, `SELECT `+ourCompanyColumns+` FROM our_company`))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCompanyNotConfigured
		}
		return nil, Infra("get our company", err)
	}
	return c, nil
}

// UpdateOurCompany overwrites every profile field except the company ID.
func (s *companyService) UpdateOurCompany(ctx context.Context, input OurCompanyInput) (*OurCompany, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	c, err := scanOurCompany(s.pool.QueryRow(ctx, `
		UPDATE our_company
		SET company_name = $1, address = $2, pan_number = $3, gst_number = $4,
		    bank_name = $5, account_number = $6, ifsc_code = $7, email = $8, phone = $9,
		    contact_person = $10
		RETURNING `+ourCompanyColumns,
		input.Name, input.Address, input.PANNumber, input.GSTNumber,
		input.BankName, input.AccountNumber, input.IFSCCode, input.Email, input.Phone,
		toPtr(input.ContactPerson),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCompanyNotConfigured
		}
		return nil, Infra("update our company", err)
	}
	return c, nil
}

// CompanyIDExists reports whether companyID is already assigned.
func (s *companyService) CompanyIDExists(ctx context.Context, companyID string) (bool, error) {
	var exists bool
	if err := s.pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM our_company WHERE company_id = $1)", companyID,
	).Scan(&exists); err != nil {
		return false, Infra("check company id", err)
	}
	return exists, nil
}

// CreateClientCompany inserts a new client company.
func (s *companyService) CreateClientCompany(ctx context.Context, input ClientCompanyInput) (*ClientCompany, error) {
	if err := requiredField("company_name", input.Name); err != nil {
		return nil, err
	}
	if err := requiredField("address", input.Address); err != nil {
		return nil, err
	}

	c, err := scanClient(s.pool.QueryRow(ctx, `
		INSERT INTO client_companies (company_name, address, pan_number, gst_number, email, phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+clientColumns,
		input.Name, input.Address, toPtr(input.PANNumber), toPtr(input.GSTNumber),
		input.Email, toPtr(input.Phone),
	))
	if err != nil {
		return nil, Infra(fmt.Sprintf("create client company %q", input.Name), err)
	}
	return c, nil
}

// GetClientCompany returns a client company by ID.
func (s *companyService) GetClientCompany(ctx context.Context, id int) (*ClientCompany, error) {
	return getClient(ctx, s.pool, id)
}

func getClient(ctx context.Context, q dbtx, id int) (*ClientCompany, error) {
	c, err := scanClient(q.QueryRow(ctx, `SELECT `+clientColumns+` FROM client_companies WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", ErrClientNotFound, id)
		}
		return nil, Infra(fmt.Sprintf("get client company %d", id), err)
	}
	return c, nil
}

// ListClientCompanies returns every client company ordered by name.
func (s *companyService) ListClientCompanies(ctx context.Context) ([]ClientCompany, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+clientColumns+` FROM client_companies ORDER BY company_name, id`)
	if err != nil {
		return nil, Infra("list client companies", err)
	}
	defer rows.Close()

	var clients []ClientCompany
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, Infra("scan client company", err)
		}
		clients = append(clients, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, Infra("list client companies", err)
	}
	return clients, nil
}

func scanOurCompany(row pgx.Row) (*OurCompany, error) {
	c := &OurCompany{}
	err := row.Scan(
		&c.CompanyID, &c.Name, &c.Address, &c.PANNumber, &c.GSTNumber,
		&c.BankName, &c.AccountNumber, &c.IFSCCode, &c.Email, &c.Phone,
		&c.ContactPerson, &c.CreatedDate,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func scanClient(row pgx.Row) (*ClientCompany, error) {
	c := &ClientCompany{}
	err := row.Scan(
		&c.ID, &c.Name, &c.Address, &c.PANNumber, &c.GSTNumber,
		&c.Email, &c.Phone, &c.CreatedDate,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}
