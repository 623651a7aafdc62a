package repository

import (
	"context"
	"database/sql"

	"github.com/nashcab/car-rental-service/internal/model"
)

// DriverRepo provides access to the drivers table.
type DriverRepo struct{ DB *sql.DB }

func NewDriverRepo(db *sql.DB) *DriverRepo { return &DriverRepo{DB: db} }

const driverColumns = "id, first_name, last_name, phone, license, age, status"

func scanDriver(row interface{ Scan(...any) error }) (model.Driver, error) {
	var d model.Driver
	err := row.Scan(&d.ID, &d.FirstName, &d.LastName, &d.Phone, &d.License, &d.Age, &d.Status)
	return d, err
}

// Create inserts a driver and populates the generated id.  New drivers
// start Available.
func (r *DriverRepo) Create(ctx context.Context, d *model.Driver) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO drivers (first_name, last_name, phone, license, age, status) VALUES (?,?,?,?,?,?)",
		d.FirstName, d.LastName, d.Phone, d.License, d.Age, model.DriverAvailable)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	return nil
}

// GetByID fetches one driver.
func (r *DriverRepo) GetByID(ctx context.Context, id uint64) (model.Driver, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+driverColumns+" FROM drivers WHERE id=? LIMIT 1", id)
	return scanDriver(row)
}

// List returns all drivers ordered by id.
func (r *DriverRepo) List(ctx context.Context) ([]model.Driver, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+driverColumns+" FROM drivers ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var drivers []model.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

// DeleteTx removes a driver inside the caller's transaction and reports
// whether a row existed.  Booking cleanup for the driver is a separate
// statement owned by the same transaction.
func (r *DriverRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) (bool, error) {
	res, err := tx.ExecContext(ctx, "DELETE FROM drivers WHERE id=?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// UpdateStatus overrides a driver's availability and reports whether a
// row existed.
func (r *DriverRepo) UpdateStatus(ctx context.Context, id uint64, status model.DriverStatus) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "UPDATE drivers SET status=? WHERE id=?", status, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// SelectAvailableForUpdateTx locks and returns the first Available
// driver, lowest id first.  sql.ErrNoRows means every driver is out on a
// job.
func (r *DriverRepo) SelectAvailableForUpdateTx(ctx context.Context, tx *sql.Tx) (model.Driver, error) {
	row := tx.QueryRowContext(ctx,
		"SELECT "+driverColumns+" FROM drivers WHERE status=? ORDER BY id ASC LIMIT 1 FOR UPDATE",
		model.DriverAvailable)
	return scanDriver(row)
}

// UpdateStatusTx flips a driver's status inside the caller's transaction.
func (r *DriverRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status model.DriverStatus) error {
	_, err := tx.ExecContext(ctx, "UPDATE drivers SET status=? WHERE id=?", status, id)
	return err
}

// Count returns the number of drivers on the roster.
func (r *DriverRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM drivers").Scan(&n)
	return n, err
}
