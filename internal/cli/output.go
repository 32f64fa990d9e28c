package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"gitlab.com/nubelio/licences/storefront-client/internal/application"
	"gitlab.com/nubelio/licences/storefront-client/internal/domain"
)

// printer is the terminal presentation layer shared by every command.
// Status lines are colored, data goes into tables, and errors are
// rendered through the French translation table so raw server text
// never reaches the user.
type printer struct {
	out io.Writer
	err io.Writer
}

func newPrinter() *printer {
	return &printer{out: os.Stdout, err: os.Stderr}
}

func (p *printer) Success(format string, args ...any) {
	color.New(color.FgGreen).Fprintf(p.out, "✓ "+format+"\n", args...)
}

func (p *printer) Info(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *printer) Warning(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(p.out, "! "+format+"\n", args...)
}

func (p *printer) Failure(err error) {
	color.New(color.FgRed, color.Bold).Fprintf(p.err, "✗ %s\n", application.TranslateError(err))
}

func (p *printer) Header(text string) {
	color.New(color.Bold).Fprintln(p.out, text)
}

func (p *printer) newTable(headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(p.out)
	table.SetHeader(headers)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetColumnSeparator("")
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func (p *printer) ProductTable(products []domain.Product) {
	table := p.newTable([]string{"ID", "NAME", "PRICE", "STOCK", "ACTIVE", "CATEGORY"})
	for _, prod := range products {
		categoryName := prod.CategoryID
		if prod.Category != nil {
			categoryName = prod.Category.Name
		}
		table.Append([]string{
			prod.ID,
			prod.Name,
			formatPrice(prod.Price),
			strconv.Itoa(prod.StockQuantity),
			formatBool(prod.IsActive),
			categoryName,
		})
	}
	table.Render()
}

func (p *printer) CategoryTable(categories []domain.Category) {
	table := p.newTable([]string{"ID", "NAME", "SLUG", "ACTIVE", "ORDER"})
	for _, cat := range categories {
		table.Append([]string{
			cat.ID,
			cat.Name,
			cat.Slug,
			formatBool(cat.IsActive),
			strconv.Itoa(cat.Order),
		})
	}
	table.Render()
}

func (p *printer) CartTable(resp *domain.CartResponse) {
	table := p.newTable([]string{"PRODUCT", "QTY", "UNIT PRICE", "LINE TOTAL"})
	for _, item := range resp.Cart.Items {
		name := item.ProductID
		if item.Product != nil {
			name = item.Product.Name
		}
		table.Append([]string{
			name,
			strconv.Itoa(item.Quantity),
			formatPrice(item.Price),
			formatPrice(item.Price * float64(item.Quantity)),
		})
	}
	table.Render()
}

func (p *printer) OrderTable(orders []domain.Order) {
	table := p.newTable([]string{"NUMBER", "CUSTOMER", "TOTAL", "STATUS", "CREATED"})
	for _, o := range orders {
		table.Append([]string{
			o.OrderNumber,
			o.CustomerName,
			formatPrice(o.TotalAmount),
			string(o.Status),
			o.CreatedAt,
		})
	}
	table.Render()
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + " €"
}

func formatBool(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
