package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/crud-suite/internal/domain"
	"github.com/phrazzld/crud-suite/internal/platform/logger"
	"github.com/phrazzld/crud-suite/internal/store"
)

// PostgresNotificationStore implements store.NotificationStore.
type PostgresNotificationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresNotificationStore creates a PostgresNotificationStore. If logger is nil, the default logger is used.
func NewPostgresNotificationStore(db store.DBTX, logger *slog.Logger) *PostgresNotificationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresNotificationStore{
		db:     db,
		logger: logger.With(slog.String("component", "notification_store")),
	}
}

var _ store.NotificationStore = (*PostgresNotificationStore)(nil)

const notificationColumns = `id, buyer_id, message, read_at, created_at`

// scanNotification reads one row selected with notificationColumns, in that order.
func scanNotification(row rowScanner) (*domain.Notification, error) {
	var (
		n      domain.Notification
		readAt sql.NullTime
	)
	if err := row.Scan(&n.ID, &n.BuyerID, &n.Message, &readAt, &n.CreatedAt); err != nil {
		return nil, err
	}
	n.ReadAt = fromNullTime(readAt)
	return &n, nil
}

// Create implements store.NotificationStore.Create
func (s *PostgresNotificationStore) Create(ctx context.Context, n *domain.Notification) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Validate before touching the database
	if err := n.Validate(); err != nil {
		return err
	}

	// Insert the row; constraint violations are mapped below
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (id, buyer_id, message, read_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, n.ID, n.BuyerID, n.Message, toNullTime(n.ReadAt), n.CreatedAt)
	if err != nil {
		log.Error("failed to create notification",
			slog.String("error", err.Error()),
			slog.String("buyer_id", n.BuyerID.String()))
		return MapError(err)
	}

	log.Debug("notification created",
		slog.String("notification_id", n.ID.String()),
		slog.String("buyer_id", n.BuyerID.String()))
	return nil
}

// GetByID implements store.NotificationStore.GetByID
func (s *PostgresNotificationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	n, err := scanNotification(s.db.QueryRowContext(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id))
	if err != nil {
		return nil, mapEntityError(err, store.ErrNotificationNotFound, nil)
	}
	return n, nil
}

// ListByBuyer implements store.NotificationStore.ListByBuyer
// Unread notifications come first, then newest first.
func (s *PostgresNotificationStore) ListByBuyer(
	ctx context.Context,
	buyerID uuid.UUID,
	page store.Page,
) ([]*domain.Notification, error) {
	page = page.Normalize()
	return queryList(ctx, s.db, scanNotification, `
		SELECT `+notificationColumns+` FROM notifications
		WHERE buyer_id = $1
		ORDER BY (read_at IS NOT NULL), created_at DESC, id
		LIMIT $2 OFFSET $3
	`, buyerID, page.Limit, page.Offset)
}

// MarkRead implements store.NotificationStore.MarkRead.
// Marking an already read notification keeps the first read_at.
func (s *PostgresNotificationStore) MarkRead(ctx context.Context, id uuid.UUID, at time.Time) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE notifications SET read_at = COALESCE(read_at, $1) WHERE id = $2
	`, at.UTC(), id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrNotificationNotFound)
}

// Delete implements store.NotificationStore.Delete
func (s *PostgresNotificationStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError(err)
	}
	return CheckRowsAffected(result, store.ErrNotificationNotFound)
}

// DeleteReadBefore implements store.NotificationStore.DeleteReadBefore
// Unread notifications are kept regardless of age.
func (s *PostgresNotificationStore) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM notifications WHERE read_at IS NOT NULL AND created_at < $1
	`, cutoff.UTC())
	if err != nil {
		log.Error("failed to purge notifications", slog.String("error", err.Error()))
		return 0, MapError(err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	log.Info("purged read notifications", slog.Int64("count", n), slog.Time("cutoff", cutoff))
	return n, nil
}

// WithTx returns a copy of the store that runs its queries on tx.
func (s *PostgresNotificationStore) WithTx(tx *sql.Tx) store.NotificationStore {
	return &PostgresNotificationStore{db: tx, logger: s.logger}
}
