package postgresql

import (
	"context"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/audit"
	"github.com/Jaidataanalytics/hrms-sub000/internal/pkg/database"
	"github.com/google/uuid"
)

type auditRepositoryImpl struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.AuditRepository {
	return &auditRepositoryImpl{db: db}
}

func (r *auditRepositoryImpl) Append(ctx context.Context, entry audit.Entry) (audit.Entry, error) {
	q := GetQuerier(ctx, r.db)

	if entry.Reason == "" {
		return audit.Entry{}, audit.ErrReasonRequired
	}

	query := `
		INSERT INTO audit_entries (id, target_type, target_id, actor, reason, before_value, after_value)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, target_type, target_id, actor, reason, before_value, after_value, created_at
	`

	var saved audit.Entry
	err := q.QueryRow(ctx, query,
		uuid.NewString(),
		entry.TargetType,
		entry.TargetID,
		entry.Actor,
		entry.Reason,
		entry.Before,
		entry.After,
	).Scan(
		&saved.ID,
		&saved.TargetType,
		&saved.TargetID,
		&saved.Actor,
		&saved.Reason,
		&saved.Before,
		&saved.After,
		&saved.CreatedAt,
	)
	if err != nil {
		return audit.Entry{}, err
	}

	return saved, nil
}

func (r *auditRepositoryImpl) ListByTarget(ctx context.Context, targetType audit.TargetType, targetID string) ([]audit.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, target_type, target_id, actor, reason, before_value, after_value, created_at
		FROM audit_entries
		WHERE target_type = $1 AND target_id = $2
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, targetType, targetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var e audit.Entry
		err := rows.Scan(
			&e.ID,
			&e.TargetType,
			&e.TargetID,
			&e.Actor,
			&e.Reason,
			&e.Before,
			&e.After,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
