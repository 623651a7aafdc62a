package repository

import (
	"context"
	"database/sql"

	"github.com/nashcab/car-rental-service/internal/model"
)

// LoginHistoryRepo records successful sign-ins.
type LoginHistoryRepo struct{ DB *sql.DB }

func NewLoginHistoryRepo(db *sql.DB) *LoginHistoryRepo { return &LoginHistoryRepo{DB: db} }

// Record appends one sign-in row.  Failures here must not block a login,
// so callers log and continue.
func (r *LoginHistoryRepo) Record(ctx context.Context, rec *model.LoginRecord) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO login_history (role, user_id, login_date, login_time) VALUES (?,?,?,?)",
		rec.Role, rec.UserID, rec.Date, rec.Time)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = uint64(id)
	return nil
}

// ListByUser returns a user's sign-in history, newest first.
func (r *LoginHistoryRepo) ListByUser(ctx context.Context, userID string) ([]model.LoginRecord, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, role, user_id, login_date, login_time FROM login_history WHERE user_id=? ORDER BY id DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.LoginRecord
	for rows.Next() {
		var rec model.LoginRecord
		if err := rows.Scan(&rec.ID, &rec.Role, &rec.UserID, &rec.Date, &rec.Time); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
