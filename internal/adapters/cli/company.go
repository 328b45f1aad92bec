package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"invoice-manager/internal/app"
	"invoice-manager/internal/core"
)

var companyCmd = &cobra.Command{
	Use:   "company",
	Short: "Configure the invoicing company",
}

var companySetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create the company profile and assign its company ID",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		input := companyInputFromFlags(cmd)
		return withRuntime(cmd.Context(), func(svc app.ApplicationService) error {
			company, err := svc.SetupCompany(cmd.Context(), input)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), company, func(w io.Writer) { printCompany(w, company) })
		})
	},
}

var companyUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Overwrite the company profile; the company ID is kept",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		input := companyInputFromFlags(cmd)
		return withRuntime(cmd.Context(), func(svc app.ApplicationService) error {
			company, err := svc.UpdateCompany(cmd.Context(), input)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), company, func(w io.Writer) { printCompany(w, company) })
		})
	},
}

var companyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the company profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd.Context(), func(svc app.ApplicationService) error {
			company, err := svc.GetCompany(cmd.Context())
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), company, func(w io.Writer) { printCompany(w, company) })
		})
	},
}

var companyFlags = []struct{ name, usage string }{
	{"name", "Company name"},
	{"address", "Registered address"},
	{"pan", "PAN number"},
	{"gst", "GSTIN"},
	{"bank", "Bank name"},
	{"account", "Bank account number"},
	{"ifsc", "IFSC code"},
	{"email", "Billing email address"},
	{"phone", "Phone number"},
	{"contact", "Contact person signing invoice emails (optional)"},
}

func init() {
	rootCmd.AddCommand(companyCmd)
	companyCmd.AddCommand(companySetupCmd, companyUpdateCmd, companyShowCmd)

	for _, c := range []*cobra.Command{companySetupCmd, companyUpdateCmd} {
		for _, f := range companyFlags {
			c.Flags().String(f.name, "", f.usage)
		}
	}
}

func companyInputFromFlags(cmd *cobra.Command) core.OurCompanyInput {
	get := func(name string) string {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	return core.OurCompanyInput{
		Name:          get("name"),
		Address:       get("address"),
		PANNumber:     get("pan"),
		GSTNumber:     get("gst"),
		BankName:      get("bank"),
		AccountNumber: get("account"),
		IFSCCode:      get("ifsc"),
		Email:         get("email"),
		Phone:         get("phone"),
		ContactPerson: get("contact"),
	}
}

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage client companies",
}

var clientAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a client company",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		get := func(name string) string {
			v, _ := cmd.Flags().GetString(name)
			return v
		}
		input := core.ClientCompanyInput{
			Name:      get("name"),
			Address:   get("address"),
			PANNumber: get("pan"),
			GSTNumber: get("gst"),
			Email:     get("email"),
			Phone:     get("phone"),
		}
		return withRuntime(cmd.Context(), func(svc app.ApplicationService) error {
			client, err := svc.AddClient(cmd.Context(), input)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), client, func(w io.Writer) {
				fmt.Fprintf(w, "Client %s created with ID %d\n", client.Name, client.ID)
			})
		})
	},
}

var clientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List client companies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd.Context(), func(svc app.ApplicationService) error {
			result, err := svc.ListClients(cmd.Context())
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), result, func(w io.Writer) { printClients(w, result.Clients) })
		})
	},
}

func init() {
	rootCmd.AddCommand(clientCmd)
	clientCmd.AddCommand(clientAddCmd, clientListCmd)

	clientAddCmd.Flags().String("name", "", "Client company name")
	clientAddCmd.Flags().String("address", "", "Client address")
	clientAddCmd.Flags().String("pan", "", "Client PAN number")
	clientAddCmd.Flags().String("gst", "", "Client GSTIN")
	clientAddCmd.Flags().String("email", "", "Address invoices are emailed to")
	clientAddCmd.Flags().String("phone", "", "Client phone number")
}
