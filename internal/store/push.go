package store

import (
	"context"

	"github.com/gatherly/event-planner-service/internal/models"
)

// SavePushSubscription upserts a push endpoint for a user. Re-registering
// the same endpoint refreshes its keys.
func (p *PostgresStore) SavePushSubscription(ctx context.Context, sub models.PushSubscription) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO push_subscriptions(user_id, endpoint, p256dh, auth)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (user_id, endpoint) DO UPDATE SET p256dh = EXCLUDED.p256dh, auth = EXCLUDED.auth
	`, sub.UserID, sub.Endpoint, sub.P256dh, sub.Auth)
	return err
}

// DeletePushSubscription removes a push endpoint for a user.
func (p *PostgresStore) DeletePushSubscription(ctx context.Context, userID, endpoint string) error {
	tag, err := p.pool.Exec(ctx, `
		DELETE FROM push_subscriptions WHERE user_id=$1 AND endpoint=$2
	`, userID, endpoint)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
