// Package invoice provides the Invoice document.
// An invoice is an aggregate: a header with money totals plus its line
// items, created and stored atomically.
package invoice

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"factura/internal/core/apperror"
	"factura/internal/core/entity"
	"factura/internal/core/id"
	"factura/internal/core/types"
)

// DefaultVATRate is applied to items that do not specify their own rate.
var DefaultVATRate = decimal.NewFromFloat(19.0)

// DefaultCurrency is used when the caller does not specify one.
const DefaultCurrency = "DZD"

// Status describes the invoice lifecycle state.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSent      Status = "sent"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
	StatusOverdue   Status = "overdue"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusCancelled, StatusOverdue:
		return true
	}
	return false
}

// Invoice represents an issued invoice document.
type Invoice struct {
	entity.BaseEntity

	// InvoiceNumber is assigned from the tenant's gap-free counter
	// at creation time ("INV-1", "INV-2", ...). Immutable afterwards.
	InvoiceNumber string `db:"invoice_number" json:"invoiceNumber"`

	// CustomerID references the billed customer
	CustomerID id.ID `db:"customer_id" json:"customerId"`

	// Status is the lifecycle state
	Status Status `db:"status" json:"status"`

	// Currency is the ISO currency code
	Currency string `db:"currency" json:"currency"`

	// Totals (derived from items, immutable through updates)
	Subtotal    types.Money `db:"subtotal" json:"subtotal"`
	VATAmount   types.Money `db:"vat_amount" json:"vatAmount"`
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`

	// Dates
	IssueDate time.Time  `db:"issue_date" json:"issueDate"`
	DueDate   *time.Time `db:"due_date" json:"dueDate,omitempty"`
	PaidAt    *time.Time `db:"paid_at" json:"paidAt,omitempty"`

	// Payment details
	PaymentMethod *string `db:"payment_method" json:"paymentMethod,omitempty"`
	TransactionID *string `db:"transaction_id" json:"transactionId,omitempty"`

	// Notes is a free-form comment
	Notes *string `db:"notes" json:"notes,omitempty"`

	// Table part: invoice lines
	Items []Item `db:"-" json:"items"`
}

// Item represents a single invoice line.
type Item struct {
	ID        id.ID `db:"id" json:"id"`
	InvoiceID id.ID `db:"invoice_id" json:"invoiceId"`
	LineNo    int   `db:"line_no" json:"lineNo"`

	// ProductID is optional: free-text lines carry only a description
	ProductID *id.ID `db:"product_id" json:"productId,omitempty"`

	Description string `db:"description" json:"description"`

	// Quantity is a whole number of units
	Quantity int `db:"quantity" json:"quantity"`

	// UnitPrice is the net price per unit
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`

	// VATRate is the VAT percentage applied to this line
	VATRate types.Money `db:"vat_rate" json:"vatRate"`

	// TotalPrice is quantity * unit price, net of VAT
	TotalPrice types.Money `db:"total_price" json:"totalPrice"`
}

// NewInvoice creates a draft invoice for the tenant.
// The invoice number is assigned later, inside the creation transaction.
func NewInvoice(tenantID, customerID id.ID) *Invoice {
	return &Invoice{
		BaseEntity: entity.NewBaseEntity(tenantID),
		CustomerID: customerID,
		Status:     StatusDraft,
		Currency:   DefaultCurrency,
		IssueDate:  time.Now().UTC(),
		Items:      make([]Item, 0),
	}
}

// AddItem appends a line and recalculates totals.
// A nil vatRate falls back to DefaultVATRate.
func (inv *Invoice) AddItem(productID *id.ID, description string, quantity int, unitPrice types.Money, vatRate *types.Money) {
	rate := DefaultVATRate
	if vatRate != nil {
		rate = *vatRate
	}

	qty := decimal.NewFromInt(int64(quantity))
	item := Item{
		ID:          id.New(),
		InvoiceID:   inv.ID,
		LineNo:      len(inv.Items) + 1,
		ProductID:   productID,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		VATRate:     rate,
		TotalPrice:  types.RoundMoney(qty.Mul(unitPrice)),
	}

	inv.Items = append(inv.Items, item)
	inv.recalculateTotals()
}

// recalculateTotals derives header totals from the lines.
// VAT is computed per line with that line's rate, then summed:
//
//	subtotal = sum(quantity * unit_price)
//	vat      = sum(quantity * unit_price * rate / 100)
//	total    = subtotal + vat
//
// Intermediate math keeps full decimal precision, results are rounded to
// 2 places.
func (inv *Invoice) recalculateTotals() {
	hundred := decimal.NewFromInt(100)
	subtotal := decimal.Zero
	vat := decimal.Zero

	for _, item := range inv.Items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		net := qty.Mul(item.UnitPrice)
		subtotal = subtotal.Add(net)
		vat = vat.Add(net.Mul(item.VATRate.Div(hundred)))
	}

	inv.Subtotal = types.RoundMoney(subtotal)
	inv.VATAmount = types.RoundMoney(vat)
	inv.TotalAmount = types.RoundMoney(subtotal.Add(vat))
}

// Validate implements entity.Validatable.
func (inv *Invoice) Validate(ctx context.Context) error {
	if id.IsNil(inv.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}

	if !inv.Status.IsValid() {
		return apperror.NewValidation("invalid status").
			WithDetail("field", "status").
			WithDetail("value", string(inv.Status))
	}

	if len(inv.Items) == 0 {
		return apperror.NewValidation("at least one item is required").
			WithDetail("field", "items")
	}

	for i, item := range inv.Items {
		if item.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
		if item.UnitPrice.IsNegative() {
			return apperror.NewValidation("unit price must not be negative").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
		if item.VATRate.IsNegative() {
			return apperror.NewValidation("VAT rate must not be negative").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}
