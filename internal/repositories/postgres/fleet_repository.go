package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fleetkeeper/fleetkeeper/internal/entities"
	"github.com/fleetkeeper/fleetkeeper/internal/repositories"
)

// PostgresFleetRepository implements FleetRepository using PostgreSQL
type PostgresFleetRepository struct {
	db *sql.DB
}

// NewPostgresFleetRepository creates a new PostgreSQL fleet repository
func NewPostgresFleetRepository(db *sql.DB) repositories.FleetRepository {
	return &PostgresFleetRepository{db: db}
}

// Vehicles retrieves all vehicles
func (r *PostgresFleetRepository) Vehicles(ctx context.Context) ([]*entities.Vehicle, error) {
	query := `
		SELECT id, name, mileage, last_service_mileage
		FROM vehicles
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*entities.Vehicle
	for rows.Next() {
		vehicle := &entities.Vehicle{}
		var lastService sql.NullInt64
		if err := rows.Scan(&vehicle.ID, &vehicle.Name, &vehicle.Mileage, &lastService); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		if lastService.Valid {
			km := int(lastService.Int64)
			vehicle.LastServiceMileage = &km
		}
		vehicles = append(vehicles, vehicle)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vehicles: %w", err)
	}

	return vehicles, nil
}

// Documents retrieves all vehicle documents
func (r *PostgresFleetRepository) Documents(ctx context.Context) ([]*entities.Document, error) {
	query := `
		SELECT id, vehicle_id, name, expiration
		FROM documents
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var documents []*entities.Document
	for rows.Next() {
		doc := &entities.Document{}
		if err := rows.Scan(&doc.ID, &doc.VehicleID, &doc.Name, &doc.Expiration); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		documents = append(documents, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}

	return documents, nil
}

// Checklists retrieves all pre-departure checklists
func (r *PostgresFleetRepository) Checklists(ctx context.Context) ([]*entities.Checklist, error) {
	query := `
		SELECT id, vehicle_id, driver_id, date, issues_to_address, created_at
		FROM checklists
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query checklists: %w", err)
	}
	defer rows.Close()

	var checklists []*entities.Checklist
	for rows.Next() {
		cl := &entities.Checklist{}
		var driverID, issues sql.NullString
		if err := rows.Scan(&cl.ID, &cl.VehicleID, &driverID, &cl.Date, &issues, &cl.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan checklist: %w", err)
		}
		if driverID.Valid {
			cl.DriverID = &driverID.String
		}
		if issues.Valid {
			cl.IssuesToAddress = &issues.String
		}
		checklists = append(checklists, cl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate checklists: %w", err)
	}

	return checklists, nil
}

// Drivers retrieves all drivers
func (r *PostgresFleetRepository) Drivers(ctx context.Context) ([]*entities.Driver, error) {
	query := `
		SELECT id, name
		FROM drivers
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query drivers: %w", err)
	}
	defer rows.Close()

	var drivers []*entities.Driver
	for rows.Next() {
		d := &entities.Driver{}
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, fmt.Errorf("failed to scan driver: %w", err)
		}
		drivers = append(drivers, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate drivers: %w", err)
	}

	return drivers, nil
}

// Snapshot bundles the collections consumed by alert derivation
func (r *PostgresFleetRepository) Snapshot(ctx context.Context) (*entities.FleetSnapshot, error) {
	vehicles, err := r.Vehicles(ctx)
	if err != nil {
		return nil, err
	}
	documents, err := r.Documents(ctx)
	if err != nil {
		return nil, err
	}
	checklists, err := r.Checklists(ctx)
	if err != nil {
		return nil, err
	}

	return &entities.FleetSnapshot{
		Vehicles:   vehicles,
		Documents:  documents,
		Checklists: checklists,
	}, nil
}
