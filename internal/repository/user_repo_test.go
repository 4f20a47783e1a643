package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-session-auth/internal/model"
)

func TestFindByCredentials(t *testing.T) {
	repo, err := NewUserRepository(DefaultUsers)
	require.NoError(t, err)

	user, err := repo.FindByCredentials(context.Background(), "test", "contraseña")
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "test", "password"},
		{"unknown user", "nobody", "contraseña"},
		{"case differs", "Test", "contraseña"},
		{"padded username", " test", "contraseña"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := repo.FindByCredentials(context.Background(), tc.username, tc.password)
			assert.ErrorIs(t, err, model.ErrInvalidCredentials)
		})
	}
}

func TestNewUserRepositoryRejectsDuplicates(t *testing.T) {
	_, err := NewUserRepository([]model.User{
		{ID: 1, Username: "a", Password: "x"},
		{ID: 2, Username: "a", Password: "y"},
	})
	assert.Error(t, err)

	_, err = NewUserRepository([]model.User{
		{ID: 1, Username: "a", Password: "x"},
		{ID: 1, Username: "b", Password: "y"},
	})
	assert.Error(t, err)
}

func TestLoadUsers(t *testing.T) {
	users, err := LoadUsers("")
	require.NoError(t, err)
	assert.Equal(t, DefaultUsers, users)

	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":7,"username":"ana","password":"pw"}]`), 0o600))

	users, err = LoadUsers(path)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, model.User{ID: 7, Username: "ana", Password: "pw"}, users[0])

	empty := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`[]`), 0o600))
	_, err = LoadUsers(empty)
	assert.Error(t, err)

	_, err = LoadUsers(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
