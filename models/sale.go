package models

import (
	"strings"
	"time"
)

// SystemOwner marks sales created by an admin session. Admin-created
// records belong to no regular user and are only visible to admins.
const SystemOwner = "SYSTEM"

// Order status values
const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// Payment status values
const (
	PaymentPaid   = "Paid"
	PaymentUnpaid = "Unpaid"
)

// Sale represents a single sales transaction record
type Sale struct {
	ID            string    `json:"id"`
	CustomerName  string    `json:"customerName"`
	Item          string    `json:"item"`
	UnitPrice     float64   `json:"unitPrice"`
	Quantity      int       `json:"quantity"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	SaleDate      time.Time `json:"saleDate"`
	ContactNumber string    `json:"contactNumber,omitempty"`
	Owner         string    `json:"owner,omitempty"`
}

// Total returns the derived sale total (unit price times quantity)
func (s *Sale) Total() float64 {
	return s.UnitPrice * float64(s.Quantity)
}

// SetPaymentStatus updates the payment status field
func (s *Sale) SetPaymentStatus(paymentStatus string) {
	s.PaymentStatus = paymentStatus
}

// ValidStatus reports whether status is a known order status (case-insensitive)
func ValidStatus(status string) bool {
	return strings.EqualFold(status, StatusPending) ||
		strings.EqualFold(status, StatusCompleted) ||
		strings.EqualFold(status, StatusCancelled)
}

// ValidPaymentStatus reports whether paymentStatus is a known payment status (case-insensitive)
func ValidPaymentStatus(paymentStatus string) bool {
	return strings.EqualFold(paymentStatus, PaymentPaid) ||
		strings.EqualFold(paymentStatus, PaymentUnpaid)
}

// SaleRequest represents the request body for creating or updating a sale
// Example:
// {
//   "customerName": "John Smith",
//   "item": "Laptop",
//   "unitPrice": 850.00,
//   "quantity": 2,
//   "status": "Completed",
//   "paymentStatus": "Paid",
//   "contactNumber": "9876543210"
// }
type SaleRequest struct {
	CustomerName  string     `json:"customerName"`
	Item          string     `json:"item"`
	UnitPrice     float64    `json:"unitPrice"`
	Quantity      int        `json:"quantity"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"paymentStatus"`
	SaleDate      *time.Time `json:"saleDate,omitempty"`
	ContactNumber string     `json:"contactNumber,omitempty"`
	Owner         string     `json:"owner,omitempty"`
}

// SaleResponse represents the response for a single sale
// Example response:
// {
//   "id": "SALE001",
//   "customerName": "John Smith",
//   "item": "Laptop",
//   "unitPrice": 850.00,
//   "quantity": 2,
//   "status": "Completed",
//   "paymentStatus": "Paid",
//   "saleDate": "2026-08-25T10:30:00Z",
//   "contactNumber": "9876543210",
//   "owner": "alice",
//   "total": 1700.00
// }
type SaleResponse struct {
	Sale
	Total float64 `json:"total"`
}

// NewSaleResponse builds a response DTO with the derived total filled in
func NewSaleResponse(sale Sale) SaleResponse {
	return SaleResponse{Sale: sale, Total: sale.Total()}
}

// SaleListResponse represents the response for listing sales
type SaleListResponse struct {
	Sales []SaleResponse `json:"sales"`
}

// NewSaleListResponse builds a list response from a sale snapshot
func NewSaleListResponse(sales []Sale) SaleListResponse {
	out := SaleListResponse{Sales: make([]SaleResponse, 0, len(sales))}
	for _, s := range sales {
		out.Sales = append(out.Sales, NewSaleResponse(s))
	}
	return out
}

// UndoResponse represents the response for restoring the last deleted sale
type UndoResponse struct {
	Restored *SaleResponse `json:"restored"`
}
