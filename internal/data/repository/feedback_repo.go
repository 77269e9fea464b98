package repository

import (
	"context"
	"fmt"

	"carwash-marketplace/internal/data/entity"
	"carwash-marketplace/pkg/database"

	"go.uber.org/zap"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *entity.Feedback) error
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Feedback, error)
	CountAll(ctx context.Context) (int64, error)
}

type feedbackRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFeedbackRepository(db database.PgxIface, log *zap.Logger) FeedbackRepository {
	return &feedbackRepository{
		db:  db,
		log: log.With(zap.String("repository", "feedback")),
	}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *entity.Feedback) error {
	query := `
		INSERT INTO feedback (id, name, comment, stars, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		feedback.ID,
		feedback.Name,
		feedback.Comment,
		feedback.Stars,
		feedback.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create feedback",
			zap.Error(err),
			zap.Int("stars", feedback.Stars),
		)
		return fmt.Errorf("create feedback: %w", err)
	}

	return nil
}

func (r *feedbackRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Feedback, error) {
	query := `
		SELECT id, name, comment, stars, created_at
		FROM feedback
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find feedback",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find feedback: %w", err)
	}
	defer rows.Close()

	var items []*entity.Feedback
	for rows.Next() {
		var f entity.Feedback
		err := rows.Scan(
			&f.ID,
			&f.Name,
			&f.Comment,
			&f.Stars,
			&f.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan feedback row", zap.Error(err))
			return nil, fmt.Errorf("scan feedback row: %w", err)
		}
		items = append(items, &f)
	}

	return items, nil
}

func (r *feedbackRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM feedback`).Scan(&count); err != nil {
		r.log.Error("Failed to count feedback", zap.Error(err))
		return 0, fmt.Errorf("count feedback: %w", err)
	}

	return count, nil
}
