package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/payroll"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/salary"
	"github.com/Jaidataanalytics/hrms-sub000/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type salaryRepositoryImpl struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.SalaryRepository {
	return &salaryRepositoryImpl{db: db}
}

const structureColumns = `
	id, employee_id, components, total_fixed,
	epf_applicable, esi_applicable, sewa_applicable,
	sewa_advance, other_deduction, effective_from, created_at, updated_at
`

func (r *salaryRepositoryImpl) InsertStructure(ctx context.Context, s salary.Structure) (salary.Structure, error) {
	q := GetQuerier(ctx, r.db)

	componentsRaw, err := json.Marshal(s.Components)
	if err != nil {
		return salary.Structure{}, err
	}

	query := `
		INSERT INTO salary_structures (
			id, employee_id, components, total_fixed,
			epf_applicable, esi_applicable, sewa_applicable,
			sewa_advance, other_deduction, effective_from
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + structureColumns

	saved, err := scanStructure(q.QueryRow(ctx, query,
		uuid.NewString(),
		s.EmployeeID,
		componentsRaw,
		s.TotalFixed,
		s.EPFApplicable,
		s.ESIApplicable,
		s.SewaApplicable,
		s.SewaAdvance,
		s.OtherDeduction,
		s.EffectiveFrom,
	))
	if err != nil {
		return salary.Structure{}, err
	}

	return saved, nil
}

func (r *salaryRepositoryImpl) GetEffectiveStructure(ctx context.Context, employeeID string, asOf time.Time) (salary.Structure, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + structureColumns + `
		FROM salary_structures
		WHERE employee_id = $1 AND effective_from <= $2
		ORDER BY effective_from DESC, created_at DESC
		LIMIT 1
	`

	s, err := scanStructure(q.QueryRow(ctx, query, employeeID, asOf))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Structure{}, salary.ErrStructureNotFound
		}
		return salary.Structure{}, err
	}

	return s, nil
}

func (r *salaryRepositoryImpl) ListStructureHistory(ctx context.Context, employeeID string) ([]salary.Structure, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + structureColumns + `
		FROM salary_structures
		WHERE employee_id = $1
		ORDER BY effective_from DESC, created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []salary.Structure
	for rows.Next() {
		s, err := scanStructure(rows)
		if err != nil {
			return nil, err
		}
		history = append(history, s)
	}

	return history, rows.Err()
}

func (r *salaryRepositoryImpl) GetEffectiveStructures(ctx context.Context, employeeIDs []string, asOf time.Time) (map[string]salary.Structure, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT ON (employee_id) ` + structureColumns + `
		FROM salary_structures
		WHERE employee_id = ANY($1) AND effective_from <= $2
		ORDER BY employee_id, effective_from DESC, created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeIDs, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]salary.Structure)
	for rows.Next() {
		s, err := scanStructure(rows)
		if err != nil {
			return nil, err
		}
		result[s.EmployeeID] = s
	}

	return result, rows.Err()
}

// ========== CHANGE REQUESTS ==========

const changeRequestColumns = `
	id, employee_id, proposed, previous, reason, requested_by,
	status, decided_by, decision_reason, decided_at, created_at
`

func (r *salaryRepositoryImpl) CreateChangeRequest(ctx context.Context, req salary.ChangeRequest) (salary.ChangeRequest, error) {
	q := GetQuerier(ctx, r.db)

	proposedRaw, err := json.Marshal(req.Proposed)
	if err != nil {
		return salary.ChangeRequest{}, err
	}
	var previousRaw []byte
	if req.Previous != nil {
		previousRaw, err = json.Marshal(req.Previous)
		if err != nil {
			return salary.ChangeRequest{}, err
		}
	}

	query := `
		INSERT INTO salary_change_requests (id, employee_id, proposed, previous, reason, requested_by, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + changeRequestColumns

	saved, err := scanChangeRequest(q.QueryRow(ctx, query,
		uuid.NewString(),
		req.EmployeeID,
		proposedRaw,
		previousRaw,
		req.Reason,
		req.RequestedBy,
		req.Status,
	))
	if err != nil {
		return salary.ChangeRequest{}, err
	}

	return saved, nil
}

func (r *salaryRepositoryImpl) GetChangeRequestByID(ctx context.Context, id string) (salary.ChangeRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + changeRequestColumns + ` FROM salary_change_requests WHERE id = $1`

	req, err := scanChangeRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.ChangeRequest{}, salary.ErrChangeRequestNotFound
		}
		return salary.ChangeRequest{}, err
	}

	return req, nil
}

func (r *salaryRepositoryImpl) ListChangeRequests(ctx context.Context, status *salary.RequestStatus) ([]salary.ChangeRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + changeRequestColumns + ` FROM salary_change_requests`
	args := []interface{}{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []salary.ChangeRequest
	for rows.Next() {
		req, err := scanChangeRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

func (r *salaryRepositoryImpl) UpdateChangeRequest(ctx context.Context, req salary.ChangeRequest) (salary.ChangeRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_change_requests
		SET status = $1, decided_by = $2, decision_reason = $3, decided_at = $4
		WHERE id = $5
		RETURNING ` + changeRequestColumns

	saved, err := scanChangeRequest(q.QueryRow(ctx, query,
		req.Status,
		req.DecidedBy,
		req.DecisionReason,
		req.DecidedAt,
		req.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.ChangeRequest{}, salary.ErrChangeRequestNotFound
		}
		return salary.ChangeRequest{}, err
	}

	return saved, nil
}

// ========== SCAN HELPERS ==========

func scanStructure(row pgx.Row) (salary.Structure, error) {
	var s salary.Structure
	var componentsRaw []byte

	err := row.Scan(
		&s.ID,
		&s.EmployeeID,
		&componentsRaw,
		&s.TotalFixed,
		&s.EPFApplicable,
		&s.ESIApplicable,
		&s.SewaApplicable,
		&s.SewaAdvance,
		&s.OtherDeduction,
		&s.EffectiveFrom,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return salary.Structure{}, err
	}

	var components payroll.Components
	if err := json.Unmarshal(componentsRaw, &components); err != nil {
		return salary.Structure{}, err
	}
	s.Components = components

	return s, nil
}

func scanChangeRequest(row pgx.Row) (salary.ChangeRequest, error) {
	var req salary.ChangeRequest
	var proposedRaw, previousRaw []byte

	err := row.Scan(
		&req.ID,
		&req.EmployeeID,
		&proposedRaw,
		&previousRaw,
		&req.Reason,
		&req.RequestedBy,
		&req.Status,
		&req.DecidedBy,
		&req.DecisionReason,
		&req.DecidedAt,
		&req.CreatedAt,
	)
	if err != nil {
		return salary.ChangeRequest{}, err
	}

	if err := json.Unmarshal(proposedRaw, &req.Proposed); err != nil {
		return salary.ChangeRequest{}, err
	}
	if len(previousRaw) > 0 {
		var previous salary.Structure
		if err := json.Unmarshal(previousRaw, &previous); err != nil {
			return salary.ChangeRequest{}, err
		}
		req.Previous = &previous
	}

	return req, nil
}
