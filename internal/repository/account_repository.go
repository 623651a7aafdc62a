package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/nashcab/car-rental-service/internal/model"
)

// AccountRepo provides access to one of the two account tables.  The
// customers and admins tables share a schema, so a single repository
// parameterized by table name serves both roles.
type AccountRepo struct {
	DB    *sql.DB
	table string
}

func NewCustomerRepo(db *sql.DB) *AccountRepo { return &AccountRepo{DB: db, table: "customers"} }
func NewAdminRepo(db *sql.DB) *AccountRepo    { return &AccountRepo{DB: db, table: "admins"} }

const accountColumns = "user_id, first_name, last_name, email, phone, registered_on, password_hash, reset_question, reset_answer"

// Create inserts an account.  User ids are case-preserving but compared
// exactly, matching the primary key collation.
func (r *AccountRepo) Create(ctx context.Context, a *model.Account) error {
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO "+r.table+" ("+accountColumns+") VALUES (?,?,?,?,?,?,?,?,?)",
		a.UserID, a.FirstName, a.LastName, a.Email, a.Phone, a.RegisteredOn,
		a.PasswordHash, a.ResetQuestion, a.ResetAnswerEnc)
	if isDuplicateKey(err) {
		return ErrUserIDExists
	}
	return err
}

// GetByID fetches an account by user id.
func (r *AccountRepo) GetByID(ctx context.Context, userID string) (model.Account, error) {
	var a model.Account
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM "+r.table+" WHERE user_id=? LIMIT 1", userID).
		Scan(&a.UserID, &a.FirstName, &a.LastName, &a.Email, &a.Phone, &a.RegisteredOn,
			&a.PasswordHash, &a.ResetQuestion, &a.ResetAnswerEnc)
	return a, err
}

// UpdatePassword replaces the stored hash and reports whether the
// account existed.
func (r *AccountRepo) UpdatePassword(ctx context.Context, userID, hash string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE "+r.table+" SET password_hash=? WHERE user_id=?", hash, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Delete removes an account and reports whether a row existed.
func (r *AccountRepo) Delete(ctx context.Context, userID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM "+r.table+" WHERE user_id=?", userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Count returns the number of accounts in the table.
func (r *AccountRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+r.table).Scan(&n)
	return n, err
}
