package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"invoice-manager/internal/app"
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Generate, inspect and send invoices",
}

var invoiceGenerateCmd = &cobra.Command{
	Use:   "generate <po-number>",
	Short: "Generate the invoice for a pending purchase order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		companyID, _ := cmd.Flags().GetString("company-id")
		return withRuntime(cmd.Context(), func(svc app.ApplicationService) error {
			result, err := svc.GenerateInvoice(cmd.Context(), app.GenerateInvoiceRequest{
				CompanyID: companyID,
				PONumber:  args[0],
			})
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), result, func(w io.Writer) {
				fmt.Fprintf(w, "Invoice %s generated for PO %s (ID %d)\n",
					result.Invoice.InvoiceNumber, result.Invoice.PONumber, result.Invoice.ID)
				if result.PDFError != "" {
					fmt.Fprintf(w, "Warning: PDF not rendered: %s\n", result.PDFError)
				} else {
					fmt.Fprintf(w, "PDF: %s\n", result.PDFPath)
				}
			})
		})
	},
}

var invoiceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd.Context(), func(svc app.ApplicationService) error {
			result, err := svc.ListInvoices(cmd.Context())
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), result, func(w io.Writer) { printInvoices(w, result.Invoices) })
		})
	},
}

var invoiceShowCmd = &cobra.Command{
	Use:   "show <invoice-id>",
	Short: "Show an invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInvoiceID(args[0])
		if err != nil {
			return err
		}
		return withRuntime(cmd.Context(), func(svc app.ApplicationService) error {
			detail, err := svc.GetInvoice(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), detail, func(w io.Writer) { printInvoice(w, detail) })
		})
	},
}

var invoiceSendCmd = &cobra.Command{
	Use:   "send <invoice-id>",
	Short: "Email an invoice to the client company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInvoiceID(args[0])
		if err != nil {
			return err
		}
		noMark, _ := cmd.Flags().GetBool("no-mark-sent")
		return withRuntime(cmd.Context(), func(svc app.ApplicationService) error {
			result, err := svc.SendInvoice(cmd.Context(), app.SendInvoiceRequest{InvoiceID: id, MarkSent: !noMark})
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), result, func(w io.Writer) {
				fmt.Fprintf(w, "Invoice %s sent to %s [%s]\n",
					result.Invoice.InvoiceNumber, result.SentTo, result.Invoice.Status)
			})
		})
	},
}

var invoiceRenderCmd = &cobra.Command{
	Use:   "render [invoice-id]",
	Short: "Render missing invoice PDFs, or the PDF of one invoice",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd.Context(), func(svc app.ApplicationService) error {
			if len(args) == 1 {
				id, err := parseInvoiceID(args[0])
				if err != nil {
					return err
				}
				path, err := svc.InvoicePDF(cmd.Context(), id)
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), map[string]string{"pdf_path": path}, func(w io.Writer) {
					fmt.Fprintln(w, path)
				})
			}

			result, err := svc.RenderMissingPDFs(cmd.Context())
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), result, func(w io.Writer) {
				fmt.Fprintf(w, "Rendered %d invoice(s)\n", len(result.Rendered))
				numbers := make([]string, 0, len(result.Failed))
				for n := range result.Failed {
					numbers = append(numbers, n)
				}
				sort.Strings(numbers)
				for _, n := range numbers {
					fmt.Fprintf(w, "  %s failed: %s\n", n, result.Failed[n])
				}
			})
		})
	},
}

func init() {
	rootCmd.AddCommand(invoiceCmd)
	invoiceCmd.AddCommand(invoiceGenerateCmd, invoiceListCmd, invoiceShowCmd, invoiceSendCmd, invoiceRenderCmd)

	invoiceGenerateCmd.Flags().String("company-id", "", "Expected company ID (optional)")
	invoiceSendCmd.Flags().Bool("no-mark-sent", false, "Leave the invoice status unchanged")
}

func parseInvoiceID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid invoice ID %q", raw)
	}
	return id, nil
}
