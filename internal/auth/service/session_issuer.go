package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	authdomain "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/auth/domain"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/clock"
	commoncrypto "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/crypto"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/jwtverify"
	userdomain "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/user/domain"
)

type SessionIssuer struct {
	secret      []byte
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	ttl         time.Duration
}

func NewSessionIssuer(
	secret string,
	idGenerator commoncrypto.IDGenerator,
	ttl time.Duration,
	clock clock.Clock,
) *SessionIssuer {
	return &SessionIssuer{
		secret:      []byte(secret),
		idGenerator: idGenerator,
		clock:       clock,
		ttl:         ttl,
	}
}

func (si *SessionIssuer) Issue(user userdomain.User) (authdomain.Session, error) {
	jti, err := si.idGenerator.NewID()
	if err != nil {
		return authdomain.Session{}, err
	}

	now := si.clock.Now()
	expiresAt := now.Add(si.ttl)
	claims := jwt.MapClaims{
		"sub": string(user.ID),
		"eml": user.Email,
		"jti": jti,
		"exp": expiresAt.Unix(),
		"iat": now.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := t.SignedString(si.secret)
	if err != nil {
		return authdomain.Session{}, err
	}

	incrementSessionsIssued()
	return authdomain.Session{
		Token:     tokenString,
		JTI:       jti,
		UserID:    string(user.ID),
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}, nil
}

func (si *SessionIssuer) Parse(tokenString string) (authdomain.Session, error) {
	claims, err := jwtverify.ParseToken(tokenString, si.secret, si.clock.Now)
	if err != nil {
		return authdomain.Session{}, err
	}
	return authdomain.Session{
		Token:     tokenString,
		JTI:       claims.JTI,
		UserID:    claims.UserID,
		IssuedAt:  claims.IssuedAt,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}
