package services

import (
	"context"
	"fmt"
	"time"

	"github.com/fleetkeeper/fleetkeeper/internal/entities"
	"github.com/fleetkeeper/fleetkeeper/internal/repositories"
	"github.com/fleetkeeper/fleetkeeper/pkg/cache"
)

const snapshotCacheKey = "fleet:snapshot"

// FleetServiceInterface defines the interface for fleet snapshot access
type FleetServiceInterface interface {
	Snapshot(ctx context.Context) (*entities.FleetSnapshot, error)
	Drivers(ctx context.Context) ([]*entities.Driver, error)
	Invalidate()
}

// FleetService supplies fleet snapshots to alert derivation, caching them
// for a short TTL so per-render recomputation does not hit the database.
// The LISTEN/NOTIFY fleet listener invalidates the cache on data changes;
// the TTL covers the gap when that connection is down.
type FleetService struct {
	repo  repositories.FleetRepository
	cache cache.Cache
	ttl   time.Duration
}

// NewFleetService creates a new FleetService. cache may be nil, in which
// case every Snapshot call reads through to the repository.
func NewFleetService(repo repositories.FleetRepository, c cache.Cache, ttl time.Duration) *FleetService {
	return &FleetService{
		repo:  repo,
		cache: c,
		ttl:   ttl,
	}
}

// Snapshot returns the current fleet snapshot, from cache when fresh.
func (s *FleetService) Snapshot(ctx context.Context) (*entities.FleetSnapshot, error) {
	if s.cache != nil {
		if value, found := s.cache.Get(ctx, snapshotCacheKey); found {
			if snapshot, ok := value.(*entities.FleetSnapshot); ok {
				return snapshot, nil
			}
		}
	}

	snapshot, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load fleet snapshot: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, snapshotCacheKey, snapshot, s.ttl)
	}

	return snapshot, nil
}

// Drivers returns the driver list for display joins.
func (s *FleetService) Drivers(ctx context.Context) ([]*entities.Driver, error) {
	drivers, err := s.repo.Drivers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load drivers: %w", err)
	}
	return drivers, nil
}

// Invalidate drops the cached snapshot; the next Snapshot call refetches.
func (s *FleetService) Invalidate() {
	if s.cache != nil {
		_ = s.cache.Delete(context.Background(), snapshotCacheKey)
	}
}
