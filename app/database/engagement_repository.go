package database

import (
	"fmt"
)

// engagementRepository handles likes, saves, comments and follows
type engagementRepository struct {
	db *DB
}

func NewEngagementRepository(db *DB) EngagementRepository {
	return &engagementRepository{db: db}
}

// ToggleLike flips the like for (user, post) and returns the new state.
// The counter on the post is kept in the same transaction.
func (r *engagementRepository) ToggleLike(userID, postID string) (bool, error) {
	return r.toggle(userID, postID, "likes", "likes_count")
}

func (r *engagementRepository) ToggleSave(userID, postID string) (bool, error) {
	return r.toggle(userID, postID, "saves", "")
}

func (r *engagementRepository) toggle(userID, postID, table, counterColumn string) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin toggle transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND post_id = $2`, table),
		userID, postID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle %s: %w", table, err)
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read toggle result: %w", err)
	}

	active := removed == 0
	if active {
		_, err = tx.Exec(
			fmt.Sprintf(`INSERT INTO %s (user_id, post_id) VALUES ($1, $2)`, table),
			userID, postID)
		if err != nil {
			return false, fmt.Errorf("failed to toggle %s: %w", table, err)
		}
	}

	if counterColumn != "" {
		delta := 1
		if !active {
			delta = -1
		}
		_, err = tx.Exec(
			fmt.Sprintf(`UPDATE posts SET %s = GREATEST(%s + $2, 0) WHERE id = $1`, counterColumn, counterColumn),
			postID, delta)
		if err != nil {
			return false, fmt.Errorf("failed to update %s: %w", counterColumn, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit toggle: %w", err)
	}
	return active, nil
}

func (r *engagementRepository) AddComment(userID, postID, body string) (*Comment, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin comment transaction: %w", err)
	}
	defer tx.Rollback()

	var c Comment
	err = tx.QueryRow(`
		INSERT INTO comments (user_id, post_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, post_id, user_id, body, created_at
	`, userID, postID, body).Scan(&c.ID, &c.PostID, &c.UserID, &c.Body, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	_, err = tx.Exec(`UPDATE posts SET comments_count = comments_count + 1 WHERE id = $1`, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to update comment count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit comment: %w", err)
	}
	return &c, nil
}

func (r *engagementRepository) GetComments(postID string, limit int) ([]Comment, error) {
	rows, err := r.db.Query(`
		SELECT c.id, c.post_id, c.user_id, u.username, c.body, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1
		ORDER BY c.created_at DESC
		LIMIT $2
	`, postID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Username, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *engagementRepository) GetLikedPostIDs(userID string) ([]string, error) {
	return r.postIDSet(`SELECT post_id FROM likes WHERE user_id = $1`, userID)
}

func (r *engagementRepository) GetSavedPostIDs(userID string) ([]string, error) {
	return r.postIDSet(`SELECT post_id FROM saves WHERE user_id = $1`, userID)
}

func (r *engagementRepository) postIDSet(query, userID string) ([]string, error) {
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post id set: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan post id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *engagementRepository) Follow(followerID, creatorID string) error {
	_, err := r.db.Exec(`
		INSERT INTO follows (follower_id, creator_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, creator_id) DO NOTHING
	`, followerID, creatorID)

	if err != nil {
		return fmt.Errorf("failed to follow creator: %w", err)
	}
	return nil
}

func (r *engagementRepository) Unfollow(followerID, creatorID string) error {
	_, err := r.db.Exec(`
		DELETE FROM follows WHERE follower_id = $1 AND creator_id = $2
	`, followerID, creatorID)

	if err != nil {
		return fmt.Errorf("failed to unfollow creator: %w", err)
	}
	return nil
}

func (r *engagementRepository) GetFollowedCreatorIDs(followerID string) ([]string, error) {
	rows, err := r.db.Query(`SELECT creator_id FROM follows WHERE follower_id = $1`, followerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get followed creators: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan creator id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
