// Package pantrytest holds in-memory storage and fakes for handler and
// end-to-end tests.
package pantrytest

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/config"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/logger"
	ingredientdomain "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/ingredient/domain"
	ingredientrepo "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/ingredient/repository"
	recipedomain "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/recipe/domain"
	userdomain "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/user/domain"
	userrepo "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/user/repository"
)

const SessionSecret = "pantry-test-session-secret-0123456789"

func Config(apiKey string) config.PantryConfig {
	return config.PantryConfig{
		HTTPPort:       "0",
		SessionSecret:  SessionSecret,
		SessionTTL:     time.Hour,
		RequestTimeout: 5 * time.Second,
		Recipe: config.RecipeAPIConfig{
			BaseURL:                 "http://recipes.invalid",
			APIKey:                  apiKey,
			Timeout:                 5 * time.Second,
			CircuitBreakerThreshold: 5,
			CircuitBreakerReset:     time.Minute,
		},
	}
}

func Logger() *logger.Logger {
	log, _ := logger.New("", "test", "error")
	return log
}

type Users struct {
	mu   sync.Mutex
	rows map[userdomain.ID]userdomain.User
}

func NewUsers() *Users {
	return &Users{rows: map[userdomain.ID]userdomain.User{}}
}

func (u *Users) Create(_ context.Context, user userdomain.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, existing := range u.rows {
		if existing.Email == user.Email {
			return userrepo.ErrEmailAlreadyExists
		}
	}
	u.rows[user.ID] = user
	return nil
}

func (u *Users) FindByEmail(_ context.Context, email string) (userdomain.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, existing := range u.rows {
		if existing.Email == email {
			return existing, nil
		}
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (u *Users) FindByID(_ context.Context, id userdomain.ID) (userdomain.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if existing, ok := u.rows[id]; ok {
		return existing, nil
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

type Revocations struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewRevocations() *Revocations {
	return &Revocations{revoked: map[string]time.Time{}}
}

func (r *Revocations) Revoke(_ context.Context, jti string, _ string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.revoked[jti]; !ok {
		r.revoked[jti] = expiresAt
	}
	return nil
}

func (r *Revocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[jti]
	return ok, nil
}

func (r *Revocations) DeleteExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	now := time.Now()
	for jti, exp := range r.revoked {
		if exp.Before(now) {
			delete(r.revoked, jti)
			n++
		}
	}
	return n, nil
}

type Ingredients struct {
	mu     sync.Mutex
	nextID ingredientdomain.ID
	rows   map[ingredientdomain.ID]ingredientdomain.Ingredient
	clock  func() time.Time
}

func NewIngredients() *Ingredients {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	return &Ingredients{
		rows: map[ingredientdomain.ID]ingredientdomain.Ingredient{},
		clock: func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Second)
		},
	}
}

func (s *Ingredients) Create(_ context.Context, userID string, name string) (ingredientdomain.Ingredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.rows {
		if it.UserID == userID && it.Name == name {
			return ingredientdomain.Ingredient{}, ingredientrepo.ErrIngredientAlreadyExists
		}
	}
	s.nextID++
	it := ingredientdomain.Ingredient{ID: s.nextID, Name: name, UserID: userID, DateAdded: s.clock()}
	s.rows[it.ID] = it
	return it, nil
}

func (s *Ingredients) ListByUser(_ context.Context, userID string) ([]ingredientdomain.Ingredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]ingredientdomain.Ingredient, 0)
	for _, it := range s.rows {
		if it.UserID == userID {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *Ingredients) FindByID(_ context.Context, id ingredientdomain.ID) (ingredientdomain.Ingredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if it, ok := s.rows[id]; ok {
		return it, nil
	}
	return ingredientdomain.Ingredient{}, ingredientrepo.ErrIngredientNotFound
}

func (s *Ingredients) Delete(_ context.Context, id ingredientdomain.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return ingredientrepo.ErrIngredientNotFound
	}
	delete(s.rows, id)
	return nil
}

type Hasher struct{}

func (Hasher) Hash(password string) (string, error) {
	return "plain:" + password, nil
}

func (Hasher) Compare(hash, password string) error {
	if hash != "plain:"+password {
		return errors.New("password mismatch")
	}
	return nil
}

type RecipeClient struct {
	mu        sync.Mutex
	Recipes   []recipedomain.RecipeSummary
	Detail    recipedomain.RecipeDetail
	Err       error
	Requested [][]string
}

func (c *RecipeClient) FindByIngredients(_ context.Context, names []string) ([]recipedomain.RecipeSummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Requested = append(c.Requested, append([]string(nil), names...))
	if c.Err != nil {
		return nil, c.Err
	}
	return c.Recipes, nil
}

func (c *RecipeClient) RecipeInformation(_ context.Context, id int64) (recipedomain.RecipeDetail, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return recipedomain.RecipeDetail{}, c.Err
	}
	detail := c.Detail
	detail.ID = id
	return detail, nil
}

func (c *RecipeClient) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Requested)
}
