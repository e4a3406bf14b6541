package e2e

import (
	"database/sql"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fleetkeeper/fleetkeeper/internal/handlers"
	"github.com/fleetkeeper/fleetkeeper/internal/infrastructure/config"
	"github.com/fleetkeeper/fleetkeeper/internal/infrastructure/database"
	"github.com/fleetkeeper/fleetkeeper/internal/infrastructure/metrics"
	"github.com/fleetkeeper/fleetkeeper/internal/repositories/postgres"
	"github.com/fleetkeeper/fleetkeeper/internal/services"
	"github.com/fleetkeeper/fleetkeeper/internal/services/alerts"
	"github.com/fleetkeeper/fleetkeeper/internal/services/authority"
	"github.com/fleetkeeper/fleetkeeper/pkg/cache/memorycache"
	"go.uber.org/zap"
)

// E2ETestServer represents an E2E test environment: the HTTP API wired
// to a real test database.
type E2ETestServer struct {
	Server    *httptest.Server
	Authority *authority.Authority
	Fleet     *services.FleetService
	DB        *sql.DB

	pg *database.Postgres
}

// SetupE2ETest sets up an E2E test environment
func SetupE2ETest(t *testing.T) *E2ETestServer {
	t.Helper()

	config.InitConfig("test")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	pg, err := database.NewPostgres(&cfg.Database)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	projectRoot, err := findProjectRoot()
	if err != nil {
		t.Fatalf("failed to find project root: %v", err)
	}
	migrationsPath := filepath.Join(projectRoot, "internal/infrastructure/database/migrations/postgres")
	if err := pg.RunMigrations(migrationsPath); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	logger := zap.NewNop()

	permissionRepo := postgres.NewPostgresPermissionRepository(pg.DB)
	fleetRepo := postgres.NewPostgresFleetRepository(pg.DB)

	auth := authority.NewAuthority(permissionRepo)

	snapshotCache := memorycache.New(&memorycache.Config{DefaultTTL: time.Second})
	fleetService := services.NewFleetService(fleetRepo, snapshotCache, time.Second)

	engine := alerts.NewEngine(alerts.DefaultThresholds())

	collector := metrics.NewCollector()

	router := handlers.NewRouter(handlers.RouterConfig{
		Permissions: handlers.NewPermissionHandler(auth, collector, nil, logger),
		Alerts:      handlers.NewAlertHandler(fleetService, engine, collector, nil, logger),
		Health:      handlers.NewHealthHandler(pg, logger),
	})

	return &E2ETestServer{
		Server:    httptest.NewServer(router),
		Authority: auth,
		Fleet:     fleetService,
		DB:        pg.DB,
		pg:        pg,
	}
}

// Teardown cleans up the test environment
func (s *E2ETestServer) Teardown(t *testing.T) {
	t.Helper()

	s.Server.Close()

	tables := []string{"checklists", "documents", "vehicles", "drivers", "permission_rules"}
	for _, table := range tables {
		if _, err := s.DB.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Errorf("failed to clean table %s: %v", table, err)
		}
	}

	if err := s.pg.Close(); err != nil {
		t.Errorf("failed to close database: %v", err)
	}
}

func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found in any parent directory")
		}
		dir = parent
	}
}
