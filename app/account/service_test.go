package account

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dreamlabs/dreams-server/app/database"
)

type fakeUserRepo struct {
	byUsername map[string]*database.User
	byID       map[string]*database.User
	nextID     int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byUsername: make(map[string]*database.User),
		byID:       make(map[string]*database.User),
	}
}

func (r *fakeUserRepo) CreateUser(username, passwordHash string) (*database.User, error) {
	r.nextID++
	u := &database.User{
		ID:           strings.Repeat("0", 35) + string(rune('0'+r.nextID)),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	r.byUsername[username] = u
	r.byID[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) GetUserByID(id string) (*database.User, error) {
	return r.byID[id], nil
}

func (r *fakeUserRepo) GetUserByUsername(username string) (*database.User, error) {
	return r.byUsername[username], nil
}

func (r *fakeUserRepo) UpdateProfile(id, displayName, bio, avatarURL string) error {
	if u := r.byID[id]; u != nil {
		u.DisplayName, u.Bio, u.AvatarURL = displayName, bio, avatarURL
	}
	return nil
}

func (r *fakeUserRepo) UpdateSettings(id string, autoplayEnabled, notificationsEnabled bool) error {
	return nil
}

func (r *fakeUserRepo) GetUserCount() (int, error) {
	return len(r.byID), nil
}

type fakeSessionStore struct {
	sessions map[string]string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]string)}
}

func (s *fakeSessionStore) SetSession(token, userID string, ttl time.Duration) error {
	s.sessions[token] = userID
	return nil
}

func (s *fakeSessionStore) GetSession(token string) (string, error) {
	return s.sessions[token], nil
}

func (s *fakeSessionStore) DeleteSession(token string) error {
	delete(s.sessions, token)
	return nil
}

func newTestService() (*Service, *fakeUserRepo, *fakeSessionStore) {
	users := newFakeUserRepo()
	sessions := newFakeSessionStore()
	service := NewService(users, nil, nil, nil, sessions, time.Hour)
	return service, users, sessions
}

func TestRegisterAndLogin(t *testing.T) {
	service, _, _ := newTestService()

	user, err := service.Register("Luna_Dreams", "sleepy-capital-9")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Username != "luna_dreams" {
		t.Errorf("Username should be normalized to lowercase, got '%s'", user.Username)
	}
	if user.PasswordHash == "sleepy-capital-9" {
		t.Error("Password must not be stored in plain text")
	}

	token, logged, err := service.Login("luna_dreams", "sleepy-capital-9")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token == "" {
		t.Error("Login should return a session token")
	}
	if logged.ID != user.ID {
		t.Errorf("Login returned wrong user: %s", logged.ID)
	}

	authed, err := service.Authenticate(token)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if authed.ID != user.ID {
		t.Errorf("Authenticate resolved wrong user: %s", authed.ID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	service, _, _ := newTestService()

	if _, err := service.Register("luna_dreams", "sleepy-capital-9"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, _, err := service.Login("luna_dreams", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}

	if _, _, err := service.Login("nobody", "sleepy-capital-9"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	service, _, _ := newTestService()

	if _, err := service.Register("luna_dreams", "sleepy-capital-9"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := service.Register("LUNA_DREAMS", "other-password-1"); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("Expected ErrUsernameTaken, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	service, _, _ := newTestService()

	cases := []struct {
		username string
		password string
		expected error
	}{
		{"ab", "sleepy-capital-9", ErrInvalidUsername},
		{"has spaces", "sleepy-capital-9", ErrInvalidUsername},
		{"way_too_long_username_here", "sleepy-capital-9", ErrInvalidUsername},
		{"Dream$User", "sleepy-capital-9", ErrInvalidUsername},
		{"luna_dreams", "short", ErrPasswordTooWeak},
	}

	for _, c := range cases {
		if _, err := service.Register(c.username, c.password); !errors.Is(err, c.expected) {
			t.Errorf("Register(%q, %q): expected %v, got %v", c.username, c.password, c.expected, err)
		}
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	service, _, _ := newTestService()

	if _, err := service.Register("luna_dreams", "sleepy-capital-9"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	token, _, err := service.Login("luna_dreams", "sleepy-capital-9")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if err := service.Logout(token); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if _, err := service.Authenticate(token); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("Expected ErrInvalidSession after logout, got %v", err)
	}
}

func TestAuthenticateEmptyToken(t *testing.T) {
	service, _, _ := newTestService()
	if _, err := service.Authenticate(""); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("Expected ErrInvalidSession for empty token, got %v", err)
	}
}

func TestNormalizeUsername(t *testing.T) {
	if got := NormalizeUsername("  Luna_Dreams  "); got != "luna_dreams" {
		t.Errorf("Expected 'luna_dreams', got '%s'", got)
	}
}

func TestCaptionValidation(t *testing.T) {
	if err := validateCaption(strings.Repeat("a", maxCaptionLength)); err != nil {
		t.Errorf("Caption at limit should pass, got %v", err)
	}
	if err := validateCaption(strings.Repeat("a", maxCaptionLength+1)); !errors.Is(err, ErrCaptionTooLong) {
		t.Errorf("Expected ErrCaptionTooLong, got %v", err)
	}
}

func TestCommentValidation(t *testing.T) {
	if err := validateComment(""); !errors.Is(err, ErrCommentInvalid) {
		t.Errorf("Expected ErrCommentInvalid for empty comment, got %v", err)
	}
	if err := validateComment(strings.Repeat("a", maxCommentLength+1)); !errors.Is(err, ErrCommentInvalid) {
		t.Errorf("Expected ErrCommentInvalid for oversized comment, got %v", err)
	}
	if err := validateComment("nice clip"); err != nil {
		t.Errorf("Valid comment rejected: %v", err)
	}
}
