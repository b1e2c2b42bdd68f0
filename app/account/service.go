package account

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dreamlabs/dreams-server/app/database"
)

var (
	// ErrInvalidCredentials is returned when username or password is wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUsernameTaken is returned when registering an existing handle.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidSession is returned when a session token is unknown or expired.
	ErrInvalidSession = errors.New("invalid or expired session")
	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrPostNotFound is returned when a referenced post does not exist.
	ErrPostNotFound = errors.New("post not found")
)

// SessionStore persists session tokens with a TTL.
type SessionStore interface {
	SetSession(token, userID string, ttl time.Duration) error
	GetSession(token string) (string, error)
	DeleteSession(token string) error
}

// Service owns session, profile and engagement state. Every mutation is
// synchronous against the database, so all readers observe it
// immediately.
type Service struct {
	users      database.UserRepository
	posts      database.PostRepository
	engagement database.EngagementRepository
	messages   database.MessageRepository
	sessions   SessionStore
	sessionTTL time.Duration
}

func NewService(users database.UserRepository, posts database.PostRepository,
	engagement database.EngagementRepository, messages database.MessageRepository,
	sessions SessionStore, sessionTTL time.Duration) *Service {
	return &Service{
		users:      users,
		posts:      posts,
		engagement: engagement,
		messages:   messages,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

func (s *Service) Register(username, password string) (*database.User, error) {
	username = NormalizeUsername(username)
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	existing, err := s.users.GetUserByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.CreateUser(username, string(hash))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *Service) Login(username, password string) (string, *database.User, error) {
	username = NormalizeUsername(username)

	user, err := s.users.GetUserByUsername(username)
	if err != nil {
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token := uuid.NewString()
	if err := s.sessions.SetSession(token, user.ID, s.sessionTTL); err != nil {
		return "", nil, fmt.Errorf("failed to store session: %w", err)
	}
	return token, user, nil
}

func (s *Service) Logout(token string) error {
	if err := s.sessions.DeleteSession(token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Authenticate resolves a session token to its user.
func (s *Service) Authenticate(token string) (*database.User, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}

	userID, err := s.sessions.GetSession(token)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if userID == "" {
		return nil, ErrInvalidSession
	}

	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidSession
	}
	return user, nil
}

func (s *Service) UpdateProfile(userID, displayName, bio, avatarURL string) error {
	displayName = normalizeCaption(displayName)
	bio = normalizeCaption(bio)
	if err := validateProfile(displayName, bio); err != nil {
		return err
	}

	if err := s.users.UpdateProfile(userID, displayName, bio, avatarURL); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

func (s *Service) UpdateSettings(userID string, autoplayEnabled, notificationsEnabled bool) error {
	if err := s.users.UpdateSettings(userID, autoplayEnabled, notificationsEnabled); err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	return nil
}

// CreatorProfile returns the public-safe projection of a creator.
func (s *Service) CreatorProfile(creatorID string) (*database.PublicProfile, []database.Post, error) {
	user, err := s.users.GetUserByID(creatorID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load creator: %w", err)
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}

	posts, err := s.posts.GetPostsByCreator(creatorID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load creator posts: %w", err)
	}

	profile := user.Public()
	return &profile, posts, nil
}

func (s *Service) ToggleLike(userID, postID string) (bool, error) {
	if err := s.requirePost(postID); err != nil {
		return false, err
	}
	return s.engagement.ToggleLike(userID, postID)
}

func (s *Service) ToggleSave(userID, postID string) (bool, error) {
	if err := s.requirePost(postID); err != nil {
		return false, err
	}
	return s.engagement.ToggleSave(userID, postID)
}

func (s *Service) AddComment(userID, postID, body string) (*database.Comment, error) {
	body = normalizeCaption(body)
	if err := validateComment(body); err != nil {
		return nil, err
	}
	if err := s.requirePost(postID); err != nil {
		return nil, err
	}
	return s.engagement.AddComment(userID, postID, body)
}

func (s *Service) Comments(postID string, limit int) ([]database.Comment, error) {
	return s.engagement.GetComments(postID, limit)
}

// RecordShare bumps the share counter. Clipboard/share-sheet failures on
// the client are not reported here; a share event is best effort.
func (s *Service) RecordShare(postID string) error {
	if err := s.requirePost(postID); err != nil {
		return err
	}
	return s.posts.IncrementShareCount(postID)
}

func (s *Service) Follow(userID, creatorID string) error {
	return s.engagement.Follow(userID, creatorID)
}

func (s *Service) Unfollow(userID, creatorID string) error {
	return s.engagement.Unfollow(userID, creatorID)
}

// EngagementSnapshot returns the liked and saved base id sets for a user.
func (s *Service) EngagementSnapshot(userID string) (liked, saved []string, err error) {
	liked, err = s.engagement.GetLikedPostIDs(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load liked set: %w", err)
	}
	saved, err = s.engagement.GetSavedPostIDs(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load saved set: %w", err)
	}
	return liked, saved, nil
}

// CreatePost stores a user-created content item. User uploads are never
// monetized; rewards exist only on curated catalog content.
func (s *Service) CreatePost(userID, caption string, kind database.MediaKind, videoURL string, imageURLs []string, category string) (*database.Post, error) {
	caption = normalizeCaption(caption)
	if err := validateCaption(caption); err != nil {
		return nil, err
	}

	switch kind {
	case database.MediaKindVideo:
		if videoURL == "" {
			return nil, fmt.Errorf("video posts require a media URL")
		}
	case database.MediaKindImage:
		if len(imageURLs) == 0 {
			return nil, fmt.Errorf("image posts require at least one media URL")
		}
	default:
		return nil, fmt.Errorf("unsupported media kind '%s'", kind)
	}

	post, err := s.posts.CreatePost(database.NewPost{
		CreatorID: userID,
		Caption:   caption,
		MediaKind: kind,
		VideoURL:  videoURL,
		ImageURLs: imageURLs,
		Category:  category,
		Source:    database.PostSourceUser,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

func (s *Service) SendMessage(senderID, recipientID, body string) (*database.Message, error) {
	body = normalizeCaption(body)
	if err := validateComment(body); err != nil {
		return nil, err
	}

	recipient, err := s.users.GetUserByID(recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up recipient: %w", err)
	}
	if recipient == nil {
		return nil, ErrUserNotFound
	}

	return s.messages.Send(senderID, recipientID, body)
}

func (s *Service) Conversation(userID, otherID string, limit int) ([]database.Message, error) {
	return s.messages.GetConversation(userID, otherID, limit)
}

func (s *Service) RecentConversations(userID string, limit int) ([]database.Message, error) {
	return s.messages.GetRecentConversations(userID, limit)
}

func (s *Service) requirePost(postID string) error {
	post, err := s.posts.GetPost(postID)
	if err != nil {
		return fmt.Errorf("failed to look up post: %w", err)
	}
	if post == nil {
		return ErrPostNotFound
	}
	return nil
}
