package repository

import (
	"context"
	"database/sql"

	"github.com/nashcab/car-rental-service/internal/model"
)

// FeedbackRepo provides access to the feedback table.
type FeedbackRepo struct{ DB *sql.DB }

func NewFeedbackRepo(db *sql.DB) *FeedbackRepo { return &FeedbackRepo{DB: db} }

// Create inserts a feedback entry and populates the generated id.
func (r *FeedbackRepo) Create(ctx context.Context, f *model.Feedback) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO feedback (user_id, name, email, rating, comments, fb_date) VALUES (?,?,?,?,?,?)",
		f.UserID, f.Name, f.Email, f.Rating, f.Comments, f.Date)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	return nil
}

// List returns all feedback, newest first.
func (r *FeedbackRepo) List(ctx context.Context) ([]model.Feedback, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, user_id, name, email, rating, comments, fb_date FROM feedback ORDER BY id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Feedback
	for rows.Next() {
		var f model.Feedback
		if err := rows.Scan(&f.ID, &f.UserID, &f.Name, &f.Email, &f.Rating, &f.Comments, &f.Date); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
