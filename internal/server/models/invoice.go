package models

import "time"

// InvoiceStatus is the closed set of invoice lifecycle states.
type InvoiceStatus string

const (
	InvoiceStatusPending  InvoiceStatus = "pending"
	InvoiceStatusApproved InvoiceStatus = "approved"
	InvoiceStatusRejected InvoiceStatus = "rejected"
	InvoiceStatusFinanced InvoiceStatus = "financed"
	InvoiceStatusPaid     InvoiceStatus = "paid"
)

// ParseInvoiceStatus maps a wire value onto the closed status set.
func ParseInvoiceStatus(s string) (InvoiceStatus, bool) {
	switch InvoiceStatus(s) {
	case InvoiceStatusPending, InvoiceStatusApproved, InvoiceStatusRejected,
		InvoiceStatusFinanced, InvoiceStatusPaid:
		return InvoiceStatus(s), true
	}
	return "", false
}

// CanTransitionTo reports whether the lifecycle allows moving from s to
// next. Pending invoices are approved or rejected, approved invoices are
// financed, financed invoices are paid.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	switch s {
	case InvoiceStatusPending:
		return next == InvoiceStatusApproved || next == InvoiceStatusRejected
	case InvoiceStatusApproved:
		return next == InvoiceStatusFinanced
	case InvoiceStatusFinanced:
		return next == InvoiceStatusPaid
	}
	return false
}

// Invoice is a vendor-submitted financing request. VendorID always
// references an existing account; RetailerID is optional.
type Invoice struct {
	ID            string
	Amount        float64
	Description   string
	Status        InvoiceStatus
	DueDate       time.Time
	VendorID      string
	RetailerID    string
	QRCode        string // base64 PNG data URL
	AttachmentKey string // object storage key, empty when no document uploaded
	IsVerified    bool
	AIRiskScore   int // 0 when not yet assessed
	CreatedAt     time.Time
}
