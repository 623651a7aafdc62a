package repository

import (
	"context"
	"database/sql"

	"github.com/nashcab/car-rental-service/internal/model"
)

// CarRepo provides access to the cars table.
type CarRepo struct{ DB *sql.DB }

func NewCarRepo(db *sql.DB) *CarRepo { return &CarRepo{DB: db} }

const carColumns = "id, model, registration, seating, cab_type, price_per_km, status"

func scanCar(row interface{ Scan(...any) error }) (model.Car, error) {
	var c model.Car
	err := row.Scan(&c.ID, &c.Model, &c.Registration, &c.Seating, &c.Type, &c.PricePerKm, &c.Status)
	return c, err
}

// Create inserts a vehicle. New vehicles start Available.
func (r *CarRepo) Create(ctx context.Context, c *model.Car) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO cars (id, model, registration, seating, cab_type, price_per_km, status) VALUES (?,?,?,?,?,?,?)",
		c.ID, c.Model, c.Registration, c.Seating, c.Type, c.PricePerKm, model.CarAvailable)
	if isDuplicateKey(err) {
		return ErrCarIDExists
	}
	return err
}

// GetByID fetches one vehicle.
func (r *CarRepo) GetByID(ctx context.Context, id string) (model.Car, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+carColumns+" FROM cars WHERE id=? LIMIT 1", id)
	return scanCar(row)
}

// List returns the whole fleet ordered by id.
func (r *CarRepo) List(ctx context.Context) ([]model.Car, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+carColumns+" FROM cars ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cars []model.Car
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, c)
	}
	return cars, rows.Err()
}

// Delete removes a vehicle and reports whether a row existed.
func (r *CarRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM cars WHERE id=?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// UpdateStatus overrides a vehicle's availability and reports whether a
// row existed.
func (r *CarRepo) UpdateStatus(ctx context.Context, id string, status model.CarStatus) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "UPDATE cars SET status=? WHERE id=?", status, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// SelectAvailableForUpdateTx locks and returns the first Available
// vehicle of the requested type, lowest id first.  The row lock is held
// until the surrounding transaction ends, so two concurrent bookings can
// never claim the same vehicle.  sql.ErrNoRows means the fleet has no
// free vehicle of that type.
func (r *CarRepo) SelectAvailableForUpdateTx(ctx context.Context, tx *sql.Tx, t model.CabType) (model.Car, error) {
	row := tx.QueryRowContext(ctx,
		"SELECT "+carColumns+" FROM cars WHERE cab_type=? AND status=? ORDER BY id ASC LIMIT 1 FOR UPDATE",
		t, model.CarAvailable)
	return scanCar(row)
}

// UpdateStatusTx flips a vehicle's status inside the caller's transaction.
func (r *CarRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id string, status model.CarStatus) error {
	_, err := tx.ExecContext(ctx, "UPDATE cars SET status=? WHERE id=?", status, id)
	return err
}

// Count returns the fleet size.
func (r *CarRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM cars").Scan(&n)
	return n, err
}
