package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go-session-auth/internal/model"
)

// DefaultUsers is the credential list served when no USERS_FILE is configured.
var DefaultUsers = []model.User{
	{ID: 1, Username: "test", Password: "contraseña"},
}

// UserRepository is a read-only credential store. It is safe for concurrent use
// because nothing mutates it after construction.
type UserRepository struct {
	users []model.User
}

func NewUserRepository(users []model.User) (*UserRepository, error) {
	ids := make(map[int]struct{}, len(users))
	seen := make(map[string]struct{}, len(users))

	for _, u := range users {
		if u.Username == "" {
			return nil, fmt.Errorf("user %d: username is required", u.ID)
		}
		if _, dup := seen[u.Username]; dup {
			return nil, fmt.Errorf("duplicate username %q", u.Username)
		}
		if _, dup := ids[u.ID]; dup {
			return nil, fmt.Errorf("duplicate user id %d", u.ID)
		}
		seen[u.Username] = struct{}{}
		ids[u.ID] = struct{}{}
	}

	stored := make([]model.User, len(users))
	copy(stored, users)

	return &UserRepository{users: stored}, nil
}

// LoadUsers reads a JSON array of users from path. An empty path yields DefaultUsers.
func LoadUsers(path string) ([]model.User, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultUsers, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read users file: %w", err)
	}

	var users []model.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("decode users file: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("users file %s contains no users", path)
	}

	return users, nil
}

// FindByCredentials matches username and password exactly, without normalization.
func (r *UserRepository) FindByCredentials(_ context.Context, username string, password string) (model.User, error) {
	for _, u := range r.users {
		if u.Username == username && u.Password == password {
			return u, nil
		}
	}
	return model.User{}, model.ErrInvalidCredentials
}

func (r *UserRepository) Count() int {
	return len(r.users)
}
