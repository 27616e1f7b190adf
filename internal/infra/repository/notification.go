package repository

import (
	"context"
	"time"

	"casaraiz-backend/internal/infra"
	"casaraiz-backend/internal/infra/db"

	"github.com/google/uuid"
)

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: dbtx}
}

// CreateJob enqueues an outbox row inside the caller's transaction, so a
// notification is persisted atomically with the state change it announces.
func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO notification_jobs (id, kind, topic, payload, status, run_at)
		 VALUES ($1, $2, $3, $4, 'queued', $5)`,
		uuid.New(), kind, topic, payload, runAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue notification job", err)
	}
	return nil
}
