package postgres

import (
	"context"

	"github.com/nodefoundry/depinmarket/internal/domain/model"
)

func (r *reviewRepository) Upsert(ctx context.Context, review model.Review) (*model.Review, error) {
	const query = `INSERT INTO reviews (resource_id, user_id, rating, review)
                   VALUES ($1, $2, $3, $4)
                   ON CONFLICT (resource_id, user_id)
                   DO UPDATE SET rating = EXCLUDED.rating, review = EXCLUDED.review
                   RETURNING id, created_at`
	err := r.storage.pool.QueryRow(ctx, query,
		review.ResourceID, review.UserID, review.Rating, review.Review).
		Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByResource(ctx context.Context, resourceID string) ([]model.Review, error) {
	const query = `SELECT id, resource_id, user_id, rating, review, created_at
                   FROM reviews WHERE resource_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, resourceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Review
	for rows.Next() {
		var rev model.Review
		if err := rows.Scan(&rev.ID, &rev.ResourceID, &rev.UserID,
			&rev.Rating, &rev.Review, &rev.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *reviewRepository) Stats(ctx context.Context, resourceID string) (*model.RatingStats, error) {
	const query = `SELECT COUNT(*), COALESCE(SUM(rating), 0), COALESCE(MIN(rating), 0), COALESCE(MAX(rating), 0)
                   FROM reviews WHERE resource_id=$1`
	var (
		stats model.RatingStats
		sum   int64
	)
	err := r.storage.pool.QueryRow(ctx, query, resourceID).
		Scan(&stats.Count, &sum, &stats.Min, &stats.Max)
	if err != nil {
		return nil, err
	}
	if stats.Count > 0 {
		avg := int(sum / stats.Count)
		stats.Average = &avg
	}
	return &stats, nil
}

func (r *reviewRepository) RemoveByResource(ctx context.Context, resourceID string) error {
	_, err := r.storage.pool.Exec(ctx, `DELETE FROM reviews WHERE resource_id=$1`, resourceID)
	return err
}
