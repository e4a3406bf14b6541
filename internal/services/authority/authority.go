package authority

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/fleetkeeper/fleetkeeper/internal/entities"
	"github.com/fleetkeeper/fleetkeeper/internal/repositories"
)

// AuthorityInterface defines the interface for permission decisions
type AuthorityInterface interface {
	CanAccess(role entities.Role, resource entities.Resource, action entities.Action) bool
	Update(ctx context.Context, caller entities.Role, role entities.Role, resource entities.Resource, action entities.Action, allowed bool) (*entities.PermissionRule, error)
	Rules() []*entities.PermissionRule
}

// Authority decides whether a role may perform an action on a resource
// category, backed by an in-memory mirror of the permission store.
// The read path never does I/O; only Update touches the store.
type Authority struct {
	mu    sync.RWMutex
	repo  repositories.PermissionRepository
	rules map[entities.PermissionKey]*entities.PermissionRule
}

// NewAuthority creates a new Authority with an empty mirror.
// Call Load before serving; until then every non-admin check denies.
func NewAuthority(repo repositories.PermissionRepository) *Authority {
	return &Authority{
		repo:  repo,
		rules: make(map[entities.PermissionKey]*entities.PermissionRule),
	}
}

// Load mirrors the permission store into memory, replacing the previous
// mirror wholesale. On failure the previous mirror is kept (empty on first
// load, which denies every non-admin check) and the error is surfaced to
// the caller; there is no automatic retry.
func (a *Authority) Load(ctx context.Context) error {
	stored, err := a.repo.ListAll(ctx)
	if err != nil {
		return &StoreError{Op: "load", Err: err}
	}

	rules := make(map[entities.PermissionKey]*entities.PermissionRule, len(stored))
	for _, rule := range stored {
		rules[rule.Key()] = rule
	}

	a.mu.Lock()
	a.rules = rules
	a.mu.Unlock()

	return nil
}

// CanAccess reports whether role may perform action on resource.
// The admin bypass is hard-coded ahead of the table lookup: no stored rule
// can revoke it. For every other role, a missing row denies, same as an
// explicit allowed=false row.
func (a *Authority) CanAccess(role entities.Role, resource entities.Resource, action entities.Action) bool {
	if role == entities.RoleAdmin {
		return true
	}

	a.mu.RLock()
	rule, ok := a.rules[entities.PermissionKey{Role: role, Resource: resource, Action: action}]
	a.mu.RUnlock()

	if !ok {
		return false
	}
	return rule.Allowed
}

// Update upserts one permission row. Only admin callers may change the
// table; the check is local and happens before any store I/O. On success
// the mirror is set to the row the store confirmed, not the requested
// value, so store-side validation can never make the mirror drift. On
// store failure the mirror keeps its pre-write value.
func (a *Authority) Update(ctx context.Context, caller entities.Role, role entities.Role, resource entities.Resource, action entities.Action, allowed bool) (*entities.PermissionRule, error) {
	if caller != entities.RoleAdmin {
		return nil, ErrUnauthorized
	}

	rule := &entities.PermissionRule{
		Role:     role,
		Resource: resource,
		Action:   action,
		Allowed:  allowed,
	}
	if err := rule.Validate(); err != nil {
		return nil, fmt.Errorf("invalid permission rule: %w", err)
	}

	stored, err := a.repo.Upsert(ctx, rule)
	if err != nil {
		return nil, &StoreError{Op: "upsert", Err: err}
	}

	a.mu.Lock()
	a.rules[stored.Key()] = stored
	a.mu.Unlock()

	return stored, nil
}

// Rules returns a copy of the mirrored permission rows, ordered by key.
func (a *Authority) Rules() []*entities.PermissionRule {
	a.mu.RLock()
	defer a.mu.RUnlock()

	rules := make([]*entities.PermissionRule, 0, len(a.rules))
	for _, rule := range a.rules {
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].Key().String() < rules[j].Key().String()
	})
	return rules
}
