package salary

import (
	"context"
	"time"
)

type SalaryRepository interface {
	// InsertStructure appends a new version; history is never rewritten.
	InsertStructure(ctx context.Context, s Structure) (Structure, error)
	// GetEffectiveStructure returns the latest version effective at asOf.
	GetEffectiveStructure(ctx context.Context, employeeID string, asOf time.Time) (Structure, error)
	ListStructureHistory(ctx context.Context, employeeID string) ([]Structure, error)
	GetEffectiveStructures(ctx context.Context, employeeIDs []string, asOf time.Time) (map[string]Structure, error)

	CreateChangeRequest(ctx context.Context, req ChangeRequest) (ChangeRequest, error)
	GetChangeRequestByID(ctx context.Context, id string) (ChangeRequest, error)
	ListChangeRequests(ctx context.Context, status *RequestStatus) ([]ChangeRequest, error)
	UpdateChangeRequest(ctx context.Context, req ChangeRequest) (ChangeRequest, error)
}
