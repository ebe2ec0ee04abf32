package service_test

import (
	"context"
	"errors"
	"sync"
	"time"

	userdomain "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/user/domain"
	userrepo "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/user/repository"
)

type mockUserRepo struct {
	createFunc      func(ctx context.Context, user userdomain.User) error
	findByEmailFunc func(ctx context.Context, email string) (userdomain.User, error)
	findByIDFunc    func(ctx context.Context, id userdomain.ID) (userdomain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user userdomain.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (userdomain.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

// memoryUsers wires a mockUserRepo to a map so register and login see the
// same rows.
func memoryUsers(m *mockUserRepo) map[string]userdomain.User {
	var mu sync.Mutex
	byEmail := map[string]userdomain.User{}

	m.createFunc = func(_ context.Context, user userdomain.User) error {
		mu.Lock()
		defer mu.Unlock()
		if _, ok := byEmail[user.Email]; ok {
			return userrepo.ErrEmailAlreadyExists
		}
		byEmail[user.Email] = user
		return nil
	}
	m.findByEmailFunc = func(_ context.Context, email string) (userdomain.User, error) {
		mu.Lock()
		defer mu.Unlock()
		if u, ok := byEmail[email]; ok {
			return u, nil
		}
		return userdomain.User{}, userrepo.ErrUserNotFound
	}
	m.findByIDFunc = func(_ context.Context, id userdomain.ID) (userdomain.User, error) {
		mu.Lock()
		defer mu.Unlock()
		for _, u := range byEmail {
			if u.ID == id {
				return u, nil
			}
		}
		return userdomain.User{}, userrepo.ErrUserNotFound
	}
	return byEmail
}

type mockRevocationRepo struct {
	revokeFunc        func(ctx context.Context, jti string, userID string, expiresAt time.Time) error
	isRevokedFunc     func(ctx context.Context, jti string) (bool, error)
	deleteExpiredFunc func(ctx context.Context) (int64, error)
}

func (m *mockRevocationRepo) Revoke(ctx context.Context, jti string, userID string, expiresAt time.Time) error {
	if m.revokeFunc != nil {
		return m.revokeFunc(ctx, jti, userID, expiresAt)
	}
	return nil
}

func (m *mockRevocationRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if m.isRevokedFunc != nil {
		return m.isRevokedFunc(ctx, jti)
	}
	return false, nil
}

func (m *mockRevocationRepo) DeleteExpired(ctx context.Context) (int64, error) {
	if m.deleteExpiredFunc != nil {
		return m.deleteExpiredFunc(ctx)
	}
	return 0, nil
}

var errMismatch = errors.New("hash mismatch")

type mockHasher struct {
	hashFunc     func(password string) (string, error)
	compareFunc  func(hash, password string) error
	compareCalls int
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *mockHasher) Compare(hash, password string) error {
	m.compareCalls++
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	if hash != "hashed:"+password {
		return errMismatch
	}
	return nil
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
	counter   int
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	m.counter++
	return "id-" + string(rune('a'+m.counter-1)), nil
}
