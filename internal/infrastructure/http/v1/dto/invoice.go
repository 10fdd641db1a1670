package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
	"factura/internal/domain/documents/invoice"
)

// InvoiceItemResponse contains one invoice line.
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	LineNo      int             `json:"lineNo"`
	ProductID   *string         `json:"productId,omitempty"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	VATRate     decimal.Decimal `json:"vatRate"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// InvoiceResponse contains the invoice header with its lines.
type InvoiceResponse struct {
	ID            string                `json:"id"`
	InvoiceNumber string                `json:"invoiceNumber"`
	CustomerID    string                `json:"customerId"`
	Status        string                `json:"status"`
	Currency      string                `json:"currency"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	VATAmount     decimal.Decimal       `json:"vatAmount"`
	TotalAmount   decimal.Decimal       `json:"totalAmount"`
	IssueDate     time.Time             `json:"issueDate"`
	DueDate       *time.Time            `json:"dueDate,omitempty"`
	PaidAt        *time.Time            `json:"paidAt,omitempty"`
	PaymentMethod *string               `json:"paymentMethod,omitempty"`
	TransactionID *string               `json:"transactionId,omitempty"`
	Notes         *string               `json:"notes,omitempty"`
	Items         []InvoiceItemResponse `json:"items"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// FromInvoice creates InvoiceResponse from the domain aggregate.
func FromInvoice(inv *invoice.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i, item := range inv.Items {
		var productID *string
		if item.ProductID != nil {
			s := item.ProductID.String()
			productID = &s
		}
		items[i] = InvoiceItemResponse{
			ID:          item.ID.String(),
			LineNo:      item.LineNo,
			ProductID:   productID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			VATRate:     item.VATRate,
			TotalPrice:  item.TotalPrice,
		}
	}

	return InvoiceResponse{
		ID:            inv.ID.String(),
		InvoiceNumber: inv.InvoiceNumber,
		CustomerID:    inv.CustomerID.String(),
		Status:        string(inv.Status),
		Currency:      inv.Currency,
		Subtotal:      inv.Subtotal,
		VATAmount:     inv.VATAmount,
		TotalAmount:   inv.TotalAmount,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		PaidAt:        inv.PaidAt,
		PaymentMethod: inv.PaymentMethod,
		TransactionID: inv.TransactionID,
		Notes:         inv.Notes,
		Items:         items,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

// CreateInvoiceItemRequest for one invoice line.
type CreateInvoiceItemRequest struct {
	ProductID   *string          `json:"productId"`
	Description string           `json:"description" binding:"required"`
	Quantity    int              `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal  `json:"unitPrice"`
	VATRate     *decimal.Decimal `json:"vatRate"`
}

// CreateInvoiceRequest for creating an invoice with its lines.
type CreateInvoiceRequest struct {
	CustomerID string                     `json:"customerId" binding:"required"`
	Currency   *string                    `json:"currency"`
	IssueDate  *time.Time                 `json:"issueDate"`
	DueDate    *time.Time                 `json:"dueDate"`
	Notes      *string                    `json:"notes"`
	Items      []CreateInvoiceItemRequest `json:"items" binding:"required"`
}

// ToInvoice maps the request to a new domain aggregate.
func (r CreateInvoiceRequest) ToInvoice(tenantID id.ID) (*invoice.Invoice, error) {
	customerID, err := id.Parse(r.CustomerID)
	if err != nil {
		return nil, apperror.NewValidation("invalid customer id").
			WithDetail("field", "customerId")
	}

	inv := invoice.NewInvoice(tenantID, customerID)
	if r.Currency != nil && *r.Currency != "" {
		inv.Currency = *r.Currency
	}
	if r.IssueDate != nil {
		inv.IssueDate = *r.IssueDate
	}
	inv.DueDate = r.DueDate
	inv.Notes = r.Notes

	for i, item := range r.Items {
		var productID *id.ID
		if item.ProductID != nil && *item.ProductID != "" {
			parsed, err := id.Parse(*item.ProductID)
			if err != nil {
				return nil, apperror.NewValidation("invalid product id").
					WithDetail("field", "items.productId").
					WithDetail("line", i+1)
			}
			productID = &parsed
		}
		inv.AddItem(productID, item.Description, item.Quantity, item.UnitPrice, item.VATRate)
	}

	return inv, nil
}

// UpdateInvoiceRequest carries the mutable invoice fields.
type UpdateInvoiceRequest struct {
	Status  *string    `json:"status"`
	DueDate *time.Time `json:"dueDate"`
	Notes   *string    `json:"notes"`
}

// ToUpdateInput maps the request to the service input.
func (r UpdateInvoiceRequest) ToUpdateInput() invoice.UpdateInput {
	input := invoice.UpdateInput{
		DueDate: r.DueDate,
		Notes:   r.Notes,
	}
	if r.Status != nil {
		status := invoice.Status(*r.Status)
		input.Status = &status
	}
	return input
}
