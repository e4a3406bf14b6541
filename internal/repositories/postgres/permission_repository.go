package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fleetkeeper/fleetkeeper/internal/entities"
	"github.com/fleetkeeper/fleetkeeper/internal/repositories"
)

// PostgresPermissionRepository implements PermissionRepository using PostgreSQL
type PostgresPermissionRepository struct {
	db *sql.DB
}

// NewPostgresPermissionRepository creates a new PostgreSQL permission repository
func NewPostgresPermissionRepository(db *sql.DB) repositories.PermissionRepository {
	return &PostgresPermissionRepository{db: db}
}

// ListAll retrieves every permission rule row
func (r *PostgresPermissionRepository) ListAll(ctx context.Context) ([]*entities.PermissionRule, error) {
	query := `
		SELECT role, resource, action, allowed, updated_at
		FROM permission_rules
		ORDER BY role, resource, action
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list permission rules: %w", err)
	}
	defer rows.Close()

	var rules []*entities.PermissionRule
	for rows.Next() {
		rule := &entities.PermissionRule{}
		if err := rows.Scan(&rule.Role, &rule.Resource, &rule.Action, &rule.Allowed, &rule.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan permission rule: %w", err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate permission rules: %w", err)
	}

	return rules, nil
}

// Upsert writes a single rule keyed by (role, resource, action) and returns
// the row the store persisted. RETURNING reflects any store-side adjustments
// back to the caller so the in-memory cache never drifts from the table.
func (r *PostgresPermissionRepository) Upsert(ctx context.Context, rule *entities.PermissionRule) (*entities.PermissionRule, error) {
	if err := rule.Validate(); err != nil {
		return nil, fmt.Errorf("invalid permission rule: %w", err)
	}

	query := `
		INSERT INTO permission_rules (role, resource, action, allowed, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (role, resource, action)
		DO UPDATE SET allowed = EXCLUDED.allowed, updated_at = EXCLUDED.updated_at
		RETURNING role, resource, action, allowed, updated_at
	`
	stored := &entities.PermissionRule{}
	err := r.db.QueryRowContext(ctx, query,
		string(rule.Role), string(rule.Resource), string(rule.Action), rule.Allowed, time.Now(),
	).Scan(&stored.Role, &stored.Resource, &stored.Action, &stored.Allowed, &stored.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert permission rule: %w", err)
	}

	return stored, nil
}
