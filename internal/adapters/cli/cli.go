package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"invoice-manager/internal/core"
)

// printResult writes v as indented JSON when --json is set, otherwise calls human.
func printResult(w io.Writer, v any, human func(io.Writer)) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	human(w)
	return nil
}

func rule(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("=", 72))
}

func printCompany(w io.Writer, c *core.OurCompany) {
	fmt.Fprintln(w)
	rule(w)
	fmt.Fprintf(w, "  %s (ID %s)\n", c.Name, c.CompanyID)
	rule(w)
	fmt.Fprintf(w, "  Address  : %s\n", c.Address)
	fmt.Fprintf(w, "  PAN      : %s\n", c.PANNumber)
	fmt.Fprintf(w, "  GSTIN    : %s\n", c.GSTNumber)
	fmt.Fprintf(w, "  Bank     : %s / %s / %s\n", c.BankName, c.AccountNumber, c.IFSCCode)
	fmt.Fprintf(w, "  Email    : %s\n", c.Email)
	fmt.Fprintf(w, "  Phone    : %s\n", c.Phone)
	if c.ContactPerson != nil {
		fmt.Fprintf(w, "  Contact  : %s\n", *c.ContactPerson)
	}
	fmt.Fprintln(w)
}

func printClients(w io.Writer, clients []core.ClientCompany) {
	fmt.Fprintf(w, "  %-6s %-30s %-28s\n", "ID", "NAME", "EMAIL")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 66))
	for _, c := range clients {
		fmt.Fprintf(w, "  %-6d %-30s %-28s\n", c.ID, clip(c.Name, 30), clip(c.Email, 28))
	}
	if len(clients) == 0 {
		fmt.Fprintln(w, "  (no client companies)")
	}
}

func printPurchaseOrder(w io.Writer, po *core.PurchaseOrder) {
	fmt.Fprintln(w)
	rule(w)
	fmt.Fprintf(w, "  PURCHASE ORDER %s  [%s]\n", po.PONumber, po.Status)
	rule(w)
	fmt.Fprintf(w, "  Client   : %s (#%d)\n", po.ClientName, po.ClientID)
	fmt.Fprintf(w, "  PAN/GST  : %s / %s\n", po.ClientPANNumber, po.ClientGSTNumber)
	fmt.Fprintf(w, "  Details  : %s\n", po.TrainingDetails)
	fmt.Fprintf(w, "  Date     : %s\n", po.PODate.Format("02-Jan-2006"))
	fmt.Fprintf(w, "  Amount   : %15s\n", core.FormatMoney(po.TrainingAmount))
	fmt.Fprintf(w, "  GST %s%%  : %15s\n", po.GSTPercentage.String(), core.FormatMoney(po.GSTAmount))
	fmt.Fprintf(w, "  Total    : %15s\n", core.FormatMoney(po.TotalAmount))
	fmt.Fprintln(w)
}

func printPurchaseOrders(w io.Writer, pos []core.PurchaseOrder) {
	fmt.Fprintf(w, "  %-14s %-24s %-10s %16s\n", "PO NUMBER", "CLIENT", "STATUS", "TOTAL")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 67))
	for _, po := range pos {
		fmt.Fprintf(w, "  %-14s %-24s %-10s %16s\n",
			clip(po.PONumber, 14), clip(po.ClientName, 24), po.Status, core.FormatMoney(po.TotalAmount))
	}
	if len(pos) == 0 {
		fmt.Fprintln(w, "  (no purchase orders)")
	}
}

func printInvoice(w io.Writer, d *core.InvoiceDetail) {
	inv := d.Invoice
	fmt.Fprintln(w)
	rule(w)
	fmt.Fprintf(w, "  TAX INVOICE %s  [%s]\n", inv.InvoiceNumber, inv.Status)
	rule(w)
	fmt.Fprintf(w, "  ID       : %d\n", inv.ID)
	fmt.Fprintf(w, "  Date     : %s\n", inv.InvoiceDate.Format("02-Jan-2006"))
	fmt.Fprintf(w, "  PO       : %s\n", inv.PONumber)
	if d.Client != nil {
		fmt.Fprintf(w, "  Bill To  : %s <%s>\n", d.Client.Name, d.Client.Email)
	} else {
		fmt.Fprintln(w, "  Bill To  : (purchase order deleted)")
	}
	fmt.Fprintf(w, "  Subtotal : %15s\n", core.FormatMoney(inv.Subtotal))
	fmt.Fprintf(w, "  GST      : %15s\n", core.FormatMoney(inv.GSTAmount))
	fmt.Fprintf(w, "  Total    : %15s\n", core.FormatMoney(inv.TotalAmount))
	fmt.Fprintf(w, "  In words : %s\n", core.AmountInWords(inv.TotalAmount))
	if inv.PDFPath != nil {
		fmt.Fprintf(w, "  PDF      : %s\n", *inv.PDFPath)
	}
	fmt.Fprintln(w)
}

func printInvoices(w io.Writer, invoices []core.Invoice) {
	fmt.Fprintf(w, "  %-5s %-8s %-14s %-11s %-10s %16s\n", "ID", "NUMBER", "PO", "DATE", "STATUS", "TOTAL")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 69))
	for _, inv := range invoices {
		fmt.Fprintf(w, "  %-5d %-8s %-14s %-11s %-10s %16s\n",
			inv.ID, inv.InvoiceNumber, clip(inv.PONumber, 14), inv.InvoiceDate.Format("02-Jan-2006"),
			inv.Status, core.FormatMoney(inv.TotalAmount))
	}
	if len(invoices) == 0 {
		fmt.Fprintln(w, "  (no invoices)")
	}
}

// clip shortens s to at most n runes.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "~"
}
