// internal/storefront/view.go
package storefront

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/javajoker/stylehub/internal/models"
)

// View renders storefront state as text. It never mutates the cart; it
// learns about changes through CartStore.Subscribe.
type View struct {
	w       io.Writer
	printer *message.Printer
}

func NewView(w io.Writer) *View {
	return &View{
		w:       w,
		printer: message.NewPrinter(language.English),
	}
}

// PKR formats an amount with thousands separators, e.g. "PKR 5,460".
func (v *View) PKR(amount float64) string {
	return v.printer.Sprintf("PKR %v", number.Decimal(amount, number.MaxFractionDigits(2)))
}

// Attach re-renders the cart badge after every committed cart change.
func (v *View) Attach(store *CartStore) {
	store.Subscribe(v.CartChanged)
}

func (v *View) CartChanged(e CartEvent) {
	v.CartCount(e.Count)
}

func (v *View) CartCount(n int) {
	fmt.Fprintf(v.w, "Cart: %d item(s)\n", n)
}

func (v *View) Products(products []models.Product) {
	if len(products) == 0 {
		fmt.Fprintln(v.w, "No products found.")
		return
	}
	tw := tabwriter.NewWriter(v.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ProductID, p.Name, p.Category, v.PKR(p.Price))
	}
	tw.Flush()
}

func (v *View) Product(p *models.Product) {
	fmt.Fprintf(v.w, "%s (%s)\n", p.Name, p.ProductID)
	fmt.Fprintf(v.w, "Category: %s\n", p.Category)
	fmt.Fprintf(v.w, "Price: %s\n", v.PKR(p.Price))
	if p.Description != "" {
		fmt.Fprintf(v.w, "\n%s\n", p.Description)
	}
}

// Cart lists the lines numbered from 1 followed by the summary.
func (v *View) Cart(items models.Cart, summary models.OrderSummary) {
	if len(items) == 0 {
		fmt.Fprintln(v.w, "Your cart is empty.")
		return
	}
	tw := tabwriter.NewWriter(v.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tITEM\tSIZE\tPRICE\tQTY\tTOTAL")
	for i, item := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n",
			i+1, item.Name, item.Size, v.PKR(item.Price), item.Quantity, v.PKR(item.LineTotal()))
	}
	tw.Flush()
	fmt.Fprintln(v.w)
	v.Summary(summary)
}

func (v *View) Summary(s models.OrderSummary) {
	shipping := "FREE"
	if !s.FreeShipping() {
		shipping = v.PKR(s.Shipping)
	}
	tw := tabwriter.NewWriter(v.w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Subtotal:\t%s\n", v.PKR(s.Subtotal))
	fmt.Fprintf(tw, "Shipping:\t%s\n", shipping)
	fmt.Fprintf(tw, "Tax (5%%):\t%s\n", v.PKR(s.Tax))
	fmt.Fprintf(tw, "Total:\t%s\n", v.PKR(s.Total))
	tw.Flush()
}

// Confirmation prints the order exactly as it was submitted.
func (v *View) Confirmation(o *models.Order) {
	a := o.ShippingAddress
	fmt.Fprintf(v.w, "Order ID: %s\n\n", o.OrderID)
	fmt.Fprintln(v.w, "Order Summary:")
	fmt.Fprintf(v.w, "Customer: %s\n", o.Customer.FullName)
	fmt.Fprintf(v.w, "Email: %s\n", o.Customer.Email)
	fmt.Fprintf(v.w, "Phone: %s\n", o.Customer.Phone)
	fmt.Fprintln(v.w, "Shipping Address:")
	fmt.Fprintf(v.w, "  %s\n", a.Address)
	locality := a.City
	if a.State != "" {
		locality += ", " + a.State
	}
	fmt.Fprintf(v.w, "  %s %s\n", locality, a.PostalCode)
	fmt.Fprintf(v.w, "  %s\n", a.Country)
	fmt.Fprintf(v.w, "Payment Method: %s\n", strings.ToUpper(o.PaymentMethod))
	fmt.Fprintf(v.w, "Notes: %s\n", o.Notes)
	fmt.Fprintf(v.w, "Total Amount: %s\n\n", v.PKR(o.OrderSummary.Total))
	fmt.Fprintln(v.w, "Items Ordered:")
	for _, item := range o.Items {
		fmt.Fprintf(v.w, "  - %s (Size: %s) x %d = %s\n", item.Name, item.Size, item.Quantity, v.PKR(item.LineTotal()))
	}
}
