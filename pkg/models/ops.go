package models

import "time"

// PassengerRecord is one passenger row pulled from the upstream ops API.
type PassengerRecord struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	RouteID   string    `json:"route_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PassengerBatch is the upstream response for a passenger pull. Warnings
// are per-record problems the upstream chose not to fail the batch over.
type PassengerBatch struct {
	Records  []PassengerRecord `json:"records"`
	Warnings []string          `json:"warnings,omitempty"`
}

// Invoice is one vendor invoice row from the upstream ops API.
type Invoice struct {
	ID       string    `json:"id"`
	VendorID string    `json:"vendor_id"`
	Amount   float64   `json:"amount"`
	IssuedAt time.Time `json:"issued_at"`
}

// InvoiceBatch is the upstream response for an invoice pull.
type InvoiceBatch struct {
	Invoices []Invoice `json:"invoices"`
	Warnings []string  `json:"warnings,omitempty"`
}
