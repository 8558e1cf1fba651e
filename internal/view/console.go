package view

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/expensedesk/bill-tracker/internal/bill"
)

// Console renders the employee views on a terminal. It implements the
// navigation, alert and preview collaborators the services expect; it
// owns no bill logic of its own.
type Console struct {
	out io.Writer

	// LastRoute holds the most recent navigation target.
	LastRoute string
}

// NewConsole creates a Console writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// RenderBills writes the formatted bill table, most recent first.
func (c *Console) RenderBills(views []bill.BillView) error {
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Type\tNom\tDate\tMontant\tStatut")
	for _, v := range views {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d €\t%s\n", v.Type, v.Name, v.FormattedDate, v.Amount, v.FormattedStatus)
	}
	return w.Flush()
}

// ShowReceipt displays the receipt behind fileURL, the terminal
// equivalent of the proof modal.
func (c *Console) ShowReceipt(fileURL string) {
	fmt.Fprintf(c.out, "Justificatif\n%s\n", fileURL)
}

// Alert raises a blocking user-facing message.
func (c *Console) Alert(message string) {
	fmt.Fprintln(c.out, message)
}

// Navigate records and announces a route change.
func (c *Console) Navigate(route string) {
	c.LastRoute = route
	fmt.Fprintf(c.out, "navigating to %s\n", route)
}
