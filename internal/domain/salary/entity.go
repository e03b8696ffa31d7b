package salary

import (
	"time"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Structure is one employee's salary structure version. Versions are
// insert-only; the latest effective-from at or before a period wins.
type Structure struct {
	ID         string
	EmployeeID string

	Components payroll.Components
	// TotalFixed is recomputed from Components on every write.
	TotalFixed decimal.Decimal

	EPFApplicable  bool
	ESIApplicable  bool
	SewaApplicable bool

	// Fixed deductions applied every period.
	SewaAdvance    decimal.Decimal
	OtherDeduction decimal.Decimal

	EffectiveFrom time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Recalculate refreshes the derived total.
func (s *Structure) Recalculate() {
	s.TotalFixed = s.Components.Total()
}

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// ChangeRequest is a salary edit awaiting director approval. Edits by a
// director apply immediately and never create one.
type ChangeRequest struct {
	ID         string
	EmployeeID string
	// Proposed holds the requested structure; Previous snapshots the
	// structure in force when the request was made.
	Proposed       Structure
	Previous       *Structure
	Reason         string
	RequestedBy    string
	Status         RequestStatus
	DecidedBy      *string
	DecisionReason *string
	DecidedAt      *time.Time
	CreatedAt      time.Time
}
