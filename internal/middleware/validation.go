package middleware

import (
	"errors"
	"unicode/utf8"
)

// maxMessageRunes bounds chat input; anything longer than this is almost
// certainly a paste accident on an elder-care chat widget.
const maxMessageRunes = 4000

// ValidateMessage validates chat message content.
func ValidateMessage(content string) error {
	if len(content) == 0 {
		return errors.New("message cannot be empty")
	}
	if !utf8.ValidString(content) {
		return errors.New("message must be valid UTF-8")
	}
	if utf8.RuneCountInString(content) > maxMessageRunes {
		return errors.New("message exceeds maximum length")
	}
	return nil
}

// ValidateSessionID validates a session ID. Sessions are created client-side
// so any short printable token is accepted, not just UUIDs.
func ValidateSessionID(id string) error {
	if len(id) == 0 {
		return errors.New("session ID cannot be empty")
	}
	if len(id) > 64 {
		return errors.New("session ID exceeds maximum length")
	}
	for _, r := range id {
		if !isSessionIDRune(r) {
			return errors.New("session ID contains invalid characters")
		}
	}
	return nil
}

// ValidateLanguage validates an optional language override.
func ValidateLanguage(lang string) error {
	switch lang {
	case "", "th", "en":
		return nil
	}
	return errors.New("language must be th or en")
}

func isSessionIDRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_':
		return true
	}
	return false
}
