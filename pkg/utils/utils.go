package utils

import (
	"crypto/rand"
	"errors"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	NormalizePhoneNumber(raw string) (string, error)
}

type utils struct{}

func New() IUtils {
	return &utils{}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// NormalizePhoneNumber strips the channel prefix and formatting that
// messaging webhooks attach, leaving bare digits:
// "whatsapp:+52 1 5512345678" becomes "5215512345678".
func (u *utils) NormalizePhoneNumber(raw string) (string, error) {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "whatsapp:")

	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	if b.Len() < 8 {
		return "", errors.New("phone number too short")
	}
	return b.String(), nil
}
