package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/kvstore"
	"taskboard/internal/session"
)

func TestStore_Login(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     bool
	}{
		{name: "both fields present", email: "a@b.c", password: "secret", want: true},
		{name: "empty email", email: "", password: "secret", want: false},
		{name: "empty password", email: "a@b.c", password: "", want: false},
		{name: "both empty", email: "", password: "", want: false},
		{name: "whitespace-only email", email: "   ", password: "secret", want: false},
		{name: "whitespace-only password", email: "a@b.c", password: "\t ", want: false},
		// Explicitly a mock: no credential is checked against anything.
		{name: "arbitrary non-empty pair succeeds", email: "x", password: "y", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := session.NewStore(kvstore.NewMemoryStore())

			got := store.Login(tt.email, tt.password)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, store.IsAuthenticated())
		})
	}
}

func TestStore_CurrentUser(t *testing.T) {
	store := session.NewStore(kvstore.NewMemoryStore())

	assert.Nil(t, store.CurrentUser())

	before := time.Now()
	require.True(t, store.Login("user@example.com", "pw"))

	user := store.CurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, "user@example.com", user.Email)
	assert.False(t, user.LoginTime.Before(before))
	assert.False(t, user.LoginTime.After(time.Now()))
}

func TestStore_LogoutIsIdempotent(t *testing.T) {
	store := session.NewStore(kvstore.NewMemoryStore())
	require.True(t, store.Login("user@example.com", "pw"))

	store.Logout()
	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.CurrentUser())

	store.Logout()
	assert.False(t, store.IsAuthenticated())
}

// A malformed stored record behaves as an absent session.
func TestStore_MalformedRecordTreatedAsAbsent(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	require.NoError(t, kv.Set(context.Background(), "user", []byte(`{broken`)))

	store := session.NewStore(kv)
	assert.Nil(t, store.CurrentUser())
	assert.False(t, store.IsAuthenticated())
}
