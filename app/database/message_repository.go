package database

import (
	"fmt"
)

// messageRepository handles direct messages between users
type messageRepository struct {
	db *DB
}

func NewMessageRepository(db *DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Send(senderID, recipientID, body string) (*Message, error) {
	var m Message
	err := r.db.QueryRow(`
		INSERT INTO messages (sender_id, recipient_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, sender_id, recipient_id, body, created_at
	`, senderID, recipientID, body).Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Body, &m.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	return &m, nil
}

func (r *messageRepository) GetConversation(userID, otherID string, limit int) ([]Message, error) {
	return r.queryMessages(`
		SELECT id, sender_id, recipient_id, body, created_at
		FROM messages
		WHERE (sender_id = $1 AND recipient_id = $2)
		   OR (sender_id = $2 AND recipient_id = $1)
		ORDER BY created_at DESC
		LIMIT $3
	`, userID, otherID, limit)
}

// GetRecentConversations returns the latest message of each conversation
// the user participates in.
func (r *messageRepository) GetRecentConversations(userID string, limit int) ([]Message, error) {
	return r.queryMessages(`
		SELECT DISTINCT ON (pair) id, sender_id, recipient_id, body, created_at
		FROM (
			SELECT *, LEAST(sender_id, recipient_id) || ':' || GREATEST(sender_id, recipient_id) AS pair
			FROM messages
			WHERE sender_id = $1 OR recipient_id = $1
		) conversations
		ORDER BY pair, created_at DESC
		LIMIT $2
	`, userID, limit)
}

func (r *messageRepository) queryMessages(query string, args ...interface{}) ([]Message, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
