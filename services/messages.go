package services

import (
	"context"

	"sparkmeals/db"
	"sparkmeals/models"
)

// SaveOrderNotification persists one relay attempt. It is a no-op when the log is disabled.
func SaveOrderNotification(ctx context.Context, rec models.NotificationRecord) error {
	if db.Pool == nil {
		return nil
	}
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO order_notifications (
			reference, phone, meal_id, meal_name, quantity, total, upstream_status, error
		) VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8)`,
		rec.Reference, rec.Phone, rec.MealID, rec.MealName, rec.Quantity,
		rec.Total.StringFixed(2), rec.UpstreamStatus, rec.Error,
	)
	return err
}
