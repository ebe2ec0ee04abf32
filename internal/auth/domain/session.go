package domain

import "time"

type Session struct {
	Token     string
	JTI       string
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
