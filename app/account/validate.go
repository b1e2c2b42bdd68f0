package account

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	minPasswordLength = 8
	maxCaptionLength  = 300
	maxCommentLength  = 500
	maxBioLength      = 200
	maxDisplayName    = 50
)

var (
	ErrInvalidUsername = errors.New("username must be 3-20 characters: lowercase letters, digits or underscores")
	ErrPasswordTooWeak = errors.New("password must be at least 8 characters")
	ErrCaptionTooLong  = errors.New("caption exceeds maximum length")
	ErrCommentInvalid  = errors.New("comment must be non-empty and within maximum length")
	ErrBioTooLong      = errors.New("bio exceeds maximum length")
	ErrDisplayNameLong = errors.New("display name exceeds maximum length")
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_]{3,20}$`)

// NormalizeUsername canonicalizes a handle: NFC normalization, trimmed,
// lowercased. Validation happens on the normalized form.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(username)))
}

func validateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooWeak
	}
	return nil
}

func normalizeCaption(caption string) string {
	return strings.TrimSpace(norm.NFC.String(caption))
}

func validateCaption(caption string) error {
	if len([]rune(caption)) > maxCaptionLength {
		return ErrCaptionTooLong
	}
	return nil
}

func validateComment(body string) error {
	if body == "" || len([]rune(body)) > maxCommentLength {
		return ErrCommentInvalid
	}
	return nil
}

func validateProfile(displayName, bio string) error {
	if len([]rune(displayName)) > maxDisplayName {
		return ErrDisplayNameLong
	}
	if len([]rune(bio)) > maxBioLength {
		return ErrBioTooLong
	}
	return nil
}
