package core

import (
	"context"
	"time"
)

// OurCompany is the invoicing business itself. Exactly one row may exist.
type OurCompany struct {
	CompanyID     string    `json:"company_id"`
	Name          string    `json:"company_name"`
	Address       string    `json:"address"`
	PANNumber     string    `json:"pan_number"`
	GSTNumber     string    `json:"gst_number"`
	BankName      string    `json:"bank_name"`
	AccountNumber string    `json:"account_number"`
	IFSCCode      string    `json:"ifsc_code"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	ContactPerson *string   `json:"contact_person,omitempty"`
	CreatedDate   time.Time `json:"created_date"`
}

// OurCompanyInput holds the profile fields of the invoicing business.
type OurCompanyInput struct {
	Name          string `json:"company_name"`
	Address       string `json:"address"`
	PANNumber     string `json:"pan_number"`
	GSTNumber     string `json:"gst_number"`
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	IFSCCode      string `json:"ifsc_code"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	ContactPerson string `json:"contact_person"`
}

// Validate checks that every mandatory profile field is present.
func (in OurCompanyInput) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"company_name", in.Name},
		{"address", in.Address},
		{"pan_number", in.PANNumber},
		{"gst_number", in.GSTNumber},
		{"bank_name", in.BankName},
		{"account_number", in.AccountNumber},
		{"ifsc_code", in.IFSCCode},
		{"email", in.Email},
		{"phone", in.Phone},
	} {
		if err := requiredField(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

// ClientCompany is a customer that raises purchase orders.
type ClientCompany struct {
	ID          int       `json:"id"`
	Name        string    `json:"company_name"`
	Address     string    `json:"address"`
	PANNumber   *string   `json:"pan_number,omitempty"`
	GSTNumber   *string   `json:"gst_number,omitempty"`
	Email       string    `json:"email"`
	Phone       *string   `json:"phone,omitempty"`
	CreatedDate time.Time `json:"created_date"`
}

// ClientCompanyInput holds the fields required to create a client company.
type ClientCompanyInput struct {
	Name      string `json:"company_name"`
	Address   string `json:"address"`
	PANNumber string `json:"pan_number"`
	GSTNumber string `json:"gst_number"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// CompanyService manages the singleton company profile and client companies.
type CompanyService interface {
	// CreateOurCompany configures the invoicing business, assigning a fresh 6-digit company ID.
	// Fails with ErrCompanyAlreadyConfigured when a profile already exists.
	CreateOurCompany(ctx context.Context, input OurCompanyInput) (*OurCompany, error)

	// GetOurCompany returns the configured company or ErrCompanyNotConfigured.
	GetOurCompany(ctx context.Context) (*OurCompany, error)

	// UpdateOurCompany overwrites the profile. The company ID never changes.
	UpdateOurCompany(ctx context.Context, input OurCompanyInput) (*OurCompany, error)

	// CompanyIDExists reports whether a company ID has been issued.
	CompanyIDExists(ctx context.Context, companyID string) (bool, error)

	CreateClientCompany(ctx context.Context, input ClientCompanyInput) (*ClientCompany, error)
	GetClientCompany(ctx context.Context, id int) (*ClientCompany, error)
	ListClientCompanies(ctx context.Context) ([]ClientCompany, error)
}
