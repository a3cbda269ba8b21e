package pos

import (
	"strconv"
	"strings"
	"text/template"

	"github.com/samytrends/retail-api/internal/modules/order"
)

// receiptTmpl is the fixed-width layout sent to the counter printer.
var receiptTmpl = template.Must(template.New("receipt").Parse(
	`==========================================
              SAMY TRENDS
==========================================
Invoice : {{.Order.InvoiceNumber}}
Date    : {{.Order.CreatedAt.Format "02 Jan 2006 15:04"}}
Cashier : {{.Order.CashierName}}
------------------------------------------
{{range .Order.Items -}}
{{printf "%-24s" .Name}}{{printf "%3d" .Quantity}} x {{printf "%10s" .UnitPrice.String}}
{{printf "%38s" .LineTotal.String}}
{{end -}}
------------------------------------------
{{printf "%-28s%14s" "Subtotal" .Order.Subtotal.String}}
{{printf "%-28s%14s" "Tax (18% GST)" .Order.Tax.String}}
{{if gt .Order.DiscountPercent 0 -}}
{{printf "%-28s%14s" .DiscountLabel .DiscountValue}}
{{end -}}
{{printf "%-28s%14s" "TOTAL" .Order.Total.String}}
------------------------------------------
Paid by : {{.Order.PaymentMethod}}
==========================================
      Thank you for shopping with us
==========================================
`))

type receiptData struct {
	Order         *order.Order
	DiscountLabel string
	DiscountValue string
}

// renderReceipt formats a completed sale as a printable plain-text document.
func renderReceipt(o *order.Order) (string, error) {
	data := receiptData{
		Order:         o,
		DiscountLabel: "Discount",
		DiscountValue: "-" + o.Discount.String(),
	}
	if o.DiscountPercent > 0 {
		data.DiscountLabel = "Discount (" + strconv.Itoa(o.DiscountPercent) + "%)"
	}
	var b strings.Builder
	if err := receiptTmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
