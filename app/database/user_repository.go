package database

import (
	"database/sql"
	"fmt"
)

// userRepository handles database operations for users
type userRepository struct {
	db *DB
}

func NewUserRepository(db *DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, password_hash, display_name, bio, avatar_url,
	available_cents, pending_cents, total_earned_cents, total_withdrawn_cents,
	autoplay_enabled, notifications_enabled, created_at, updated_at`

func scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.DisplayName, &u.Bio, &u.AvatarURL,
		&u.AvailableCents, &u.PendingCents, &u.TotalEarnedCents, &u.TotalWithdrawnCents,
		&u.AutoplayEnabled, &u.NotificationsEnabled, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) CreateUser(username, passwordHash string) (*User, error) {
	row := r.db.QueryRow(`
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING `+userColumns, username, passwordHash)

	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (r *userRepository) GetUserByID(id string) (*User, error) {
	row := r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

func (r *userRepository) GetUserByUsername(username string) (*User, error) {
	row := r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE username = $1`, username)

	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

func (r *userRepository) UpdateProfile(id, displayName, bio, avatarURL string) error {
	_, err := r.db.Exec(`
		UPDATE users
		SET display_name = $2, bio = $3, avatar_url = $4, updated_at = NOW()
		WHERE id = $1
	`, id, displayName, bio, avatarURL)

	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

func (r *userRepository) UpdateSettings(id string, autoplayEnabled, notificationsEnabled bool) error {
	_, err := r.db.Exec(`
		UPDATE users
		SET autoplay_enabled = $2, notifications_enabled = $3, updated_at = NOW()
		WHERE id = $1
	`, id, autoplayEnabled, notificationsEnabled)

	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	return nil
}

func (r *userRepository) GetUserCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get user count: %w", err)
	}
	return count, nil
}
