package repository

import (
	"context"

	"job-portal/internal/database"
	"job-portal/internal/domain/message"
)

const messageColumns = `message_id, sender_id, receiver_id, sender_name, content, read, created_at`

type PostgresMessageRepository struct {
	db database.DB
}

func NewPostgresMessageRepository(db database.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m message.Message) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO messages (`+messageColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.SenderID, m.ReceiverID, m.SenderName, m.Content, m.Read, m.CreatedAt,
	)
	return err
}

func (r *PostgresMessageRepository) ListBetween(ctx context.Context, a, b string) ([]message.Message, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+messageColumns+` FROM messages
		 WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
		 ORDER BY created_at ASC, message_id ASC`,
		a, b,
	)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanMessage)
}

func (r *PostgresMessageRepository) ListInvolving(ctx context.Context, userID string) ([]message.Message, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+messageColumns+` FROM messages
		 WHERE sender_id = $1 OR receiver_id = $1
		 ORDER BY created_at DESC, message_id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanMessage)
}

func (r *PostgresMessageRepository) MarkRead(ctx context.Context, senderID, receiverID string) (int64, error) {
	return r.db.Exec(ctx,
		`UPDATE messages SET read = true WHERE sender_id = $1 AND receiver_id = $2 AND NOT read`,
		senderID, receiverID,
	)
}

func scanMessage(row rowScanner) (message.Message, error) {
	var m message.Message
	if err := row.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.SenderName, &m.Content, &m.Read, &m.CreatedAt); err != nil {
		return message.Message{}, err
	}
	if err := m.Validate(); err != nil {
		return message.Message{}, invalidRow("messages", err)
	}
	return m, nil
}

var _ message.Repository = (*PostgresMessageRepository)(nil)
