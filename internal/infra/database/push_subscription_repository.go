package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/droppurity/leadsboard/internal/entity"
)

type PushSubscriptionRepository struct {
	DB *sql.DB
}

func NewPushSubscriptionRepository(db *sql.DB) *PushSubscriptionRepository {
	return &PushSubscriptionRepository{DB: db}
}

// Save é upsert pelo endpoint: o registro inteiro é substituído, um
// segundo save com chaves novas ganha (last-write-wins).
func (r *PushSubscriptionRepository) Save(ctx context.Context, sub *entity.PushSubscription) error {
	query := `
		INSERT INTO push_subscriptions (endpoint, p256dh, auth, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (endpoint)
		DO UPDATE SET p256dh = EXCLUDED.p256dh, auth = EXCLUDED.auth
	`

	createdAt := sub.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.DB.ExecContext(ctx, query, sub.Endpoint, sub.P256dh, sub.Auth, createdAt)
	if err != nil {
		return fmt.Errorf("failed to save push subscription: %w", err)
	}

	return nil
}

// DeleteByEndpoint remove o registro; endpoint inexistente não é erro.
func (r *PushSubscriptionRepository) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM push_subscriptions WHERE endpoint = $1`, endpoint)
	if err != nil {
		return fmt.Errorf("failed to delete push subscription: %w", err)
	}
	return nil
}

func (r *PushSubscriptionRepository) FindAll(ctx context.Context) ([]entity.PushSubscription, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT endpoint, p256dh, auth, created_at FROM push_subscriptions`)
	if err != nil {
		return nil, fmt.Errorf("failed to query push subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []entity.PushSubscription
	for rows.Next() {
		var sub entity.PushSubscription
		if err := rows.Scan(&sub.Endpoint, &sub.P256dh, &sub.Auth, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan push subscription: %w", err)
		}
		subs = append(subs, sub)
	}

	return subs, rows.Err()
}
