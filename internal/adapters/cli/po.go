package cli

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"invoice-manager/internal/app"
	"invoice-manager/internal/core"
)

var poCmd = &cobra.Command{
	Use:     "po",
	Aliases: []string{"purchase-order"},
	Short:   "Manage purchase orders",
}

var poCreateCmd = &cobra.Command{
	Use:   "create <po-number>",
	Short: "Create a PENDING purchase order",
	Example: `  invoice-manager po create PO-2024-001 --client 3 \
    --details "Kubernetes fundamentals, 2 batches" --amount 45000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clientID, _ := cmd.Flags().GetInt("client")
		details, _ := cmd.Flags().GetString("details")
		rawAmount, _ := cmd.Flags().GetString("amount")

		amount, err := parseAmount(rawAmount)
		if err != nil {
			return err
		}
		input := core.PurchaseOrderInput{
			PONumber:        args[0],
			ClientID:        clientID,
			TrainingDetails: details,
			TrainingAmount:  amount,
		}
		return withRuntime(cmd.Context(), func(svc app.ApplicationService) error {
			po, err := svc.CreatePurchaseOrder(cmd.Context(), input)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), po, func(w io.Writer) { printPurchaseOrder(w, po) })
		})
	},
}

var poListCmd = &cobra.Command{
	Use:   "list",
	Short: "List purchase orders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd.Context(), func(svc app.ApplicationService) error {
			result, err := svc.ListPurchaseOrders(cmd.Context())
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), result, func(w io.Writer) { printPurchaseOrders(w, result.PurchaseOrders) })
		})
	},
}

var poShowCmd = &cobra.Command{
	Use:   "show <po-number>",
	Short: "Show a purchase order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd.Context(), func(svc app.ApplicationService) error {
			po, err := svc.GetPurchaseOrder(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), po, func(w io.Writer) { printPurchaseOrder(w, po) })
		})
	},
}

var poUpdateCmd = &cobra.Command{
	Use:   "update <po-number>",
	Short: "Change details, amount or client of a purchase order",
	Long: `Change details, amount or client of a purchase order. Only the flags
given are applied. GST and total are recomputed; invoices already
generated for the PO keep their amounts.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		update, err := poUpdateFromFlags(cmd)
		if err != nil {
			return err
		}
		return withRuntime(cmd.Context(), func(svc app.ApplicationService) error {
			po, err := svc.UpdatePurchaseOrder(cmd.Context(), args[0], update)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), po, func(w io.Writer) { printPurchaseOrder(w, po) })
		})
	},
}

var poDeleteCmd = &cobra.Command{
	Use:   "delete <po-number>",
	Short: "Delete a purchase order",
	Long: `Delete a purchase order. Deletion is refused while invoices reference
the PO unless --force is given, in which case those invoices remain but
no longer resolve to a purchase order.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		return withRuntime(cmd.Context(), func(svc app.ApplicationService) error {
			if err := svc.DeletePurchaseOrder(cmd.Context(), args[0], force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Purchase order %s deleted\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(poCmd)
	poCmd.AddCommand(poCreateCmd, poListCmd, poShowCmd, poUpdateCmd, poDeleteCmd)

	poCreateCmd.Flags().Int("client", 0, "Client company ID")
	poCreateCmd.Flags().String("details", "", "Training details")
	poCreateCmd.Flags().String("amount", "", "Training amount before GST")

	poUpdateCmd.Flags().Int("client", 0, "New client company ID")
	poUpdateCmd.Flags().String("details", "", "New training details")
	poUpdateCmd.Flags().String("amount", "", "New training amount before GST")

	poDeleteCmd.Flags().Bool("force", false, "Delete even if invoices reference the PO")
}

// poUpdateFromFlags includes only the flags the user actually set.
func poUpdateFromFlags(cmd *cobra.Command) (core.PurchaseOrderUpdate, error) {
	var update core.PurchaseOrderUpdate
	flags := cmd.Flags()
	if flags.Changed("details") {
		v, _ := flags.GetString("details")
		update.TrainingDetails = &v
	}
	if flags.Changed("amount") {
		raw, _ := flags.GetString("amount")
		amount, err := parseAmount(raw)
		if err != nil {
			return update, err
		}
		update.TrainingAmount = &amount
	}
	if flags.Changed("client") {
		v, _ := flags.GetInt("client")
		update.ClientID = &v
	}
	return update, nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, &core.ValidationError{Field: "amount", Message: "is required"}
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &core.ValidationError{Field: "amount", Message: fmt.Sprintf("%q is not a number", raw)}
	}
	return amount, nil
}
