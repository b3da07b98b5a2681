package surrealdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjcallan/paperdesk/internal/models"
)

func TestGetUser(t *testing.T) {
	db := testDB(t)
	store := NewInternalStore(db, testLogger())
	ctx := context.Background()

	user := &models.InternalUser{
		UserID:       "testuser1",
		Email:        "test@example.com",
		PasswordHash: "hash123",
		Role:         "user",
		CreatedAt:    time.Now().Truncate(time.Second),
	}
	require.NoError(t, store.SaveUser(ctx, user))

	got, err := store.GetUser(ctx, "testuser1")
	require.NoError(t, err)
	assert.Equal(t, "testuser1", got.UserID)
	assert.Equal(t, "test@example.com", got.Email)
	assert.Equal(t, "user", got.Role)
}

func TestGetUserNotFound(t *testing.T) {
	db := testDB(t)
	store := NewInternalStore(db, testLogger())
	ctx := context.Background()

	_, err := store.GetUser(ctx, "nonexistent")
	require.Error(t, err)
}

func TestGetUserByEmail(t *testing.T) {
	db := testDB(t)
	store := NewInternalStore(db, testLogger())
	ctx := context.Background()

	require.NoError(t, store.SaveUser(ctx, &models.InternalUser{
		UserID:       "email_user",
		Email:        "findme@example.com",
		PasswordHash: "hash",
		Role:         "user",
	}))

	got, err := store.GetUserByEmail(ctx, "findme@example.com")
	require.NoError(t, err)
	assert.Equal(t, "email_user", got.UserID)

	_, err = store.GetUserByEmail(ctx, "absent@example.com")
	assert.Error(t, err)
}

func TestSaveUserOverwrite(t *testing.T) {
	db := testDB(t)
	store := NewInternalStore(db, testLogger())
	ctx := context.Background()

	user := &models.InternalUser{
		UserID:       "overwrite_user",
		Email:        "v1@test.com",
		PasswordHash: "hash1",
		Role:         "user",
	}
	require.NoError(t, store.SaveUser(ctx, user))

	user.Email = "v2@test.com"
	user.Role = "admin"
	require.NoError(t, store.SaveUser(ctx, user))

	got, err := store.GetUser(ctx, "overwrite_user")
	require.NoError(t, err)
	assert.Equal(t, "v2@test.com", got.Email)
	assert.Equal(t, "admin", got.Role)
}

func TestDeleteUser(t *testing.T) {
	db := testDB(t)
	store := NewInternalStore(db, testLogger())
	ctx := context.Background()

	require.NoError(t, store.SaveUser(ctx, &models.InternalUser{
		UserID:       "delete_me",
		Email:        "delete@test.com",
		PasswordHash: "hash",
		Role:         "user",
	}))

	require.NoError(t, store.DeleteUser(ctx, "delete_me"))

	_, err := store.GetUser(ctx, "delete_me")
	assert.Error(t, err)
}

func TestListUsers(t *testing.T) {
	db := testDB(t)
	store := NewInternalStore(db, testLogger())
	ctx := context.Background()

	for _, id := range []string{"list_a", "list_b", "list_c"} {
		require.NoError(t, store.SaveUser(ctx, &models.InternalUser{
			UserID:       id,
			Email:        id + "@test.com",
			PasswordHash: "hash",
			Role:         "user",
		}))
	}

	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(users), 3)
	assert.Contains(t, users, "list_a")
	assert.Contains(t, users, "list_b")
	assert.Contains(t, users, "list_c")
}

func TestSetUserKV(t *testing.T) {
	db := testDB(t)
	store := NewInternalStore(db, testLogger())
	ctx := context.Background()

	require.NoError(t, store.SetUserKV(ctx, "kvuser", "starting_cash", "250000"))

	kv, err := store.GetUserKV(ctx, "kvuser", "starting_cash")
	require.NoError(t, err)
	assert.Equal(t, "kvuser", kv.UserID)
	assert.Equal(t, "starting_cash", kv.Key)
	assert.Equal(t, "250000", kv.Value)
}

func TestSetUserKVOverwrite(t *testing.T) {
	db := testDB(t)
	store := NewInternalStore(db, testLogger())
	ctx := context.Background()

	require.NoError(t, store.SetUserKV(ctx, "kvuser2", "theme", "light"))
	require.NoError(t, store.SetUserKV(ctx, "kvuser2", "theme", "dark"))

	kv, err := store.GetUserKV(ctx, "kvuser2", "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", kv.Value)
}

func TestDeleteUserKV(t *testing.T) {
	db := testDB(t)
	store := NewInternalStore(db, testLogger())
	ctx := context.Background()

	require.NoError(t, store.SetUserKV(ctx, "kvuser3", "temp", "value"))
	require.NoError(t, store.DeleteUserKV(ctx, "kvuser3", "temp"))

	_, err := store.GetUserKV(ctx, "kvuser3", "temp")
	assert.Error(t, err)
}

func TestListUserKV(t *testing.T) {
	db := testDB(t)
	store := NewInternalStore(db, testLogger())
	ctx := context.Background()

	require.NoError(t, store.SetUserKV(ctx, "kvlist", "key1", "val1"))
	require.NoError(t, store.SetUserKV(ctx, "kvlist", "key2", "val2"))

	kvs, err := store.ListUserKV(ctx, "kvlist")
	require.NoError(t, err)
	assert.Len(t, kvs, 2)
}

func TestSystemKVRoundTrip(t *testing.T) {
	db := testDB(t)
	store := NewInternalStore(db, testLogger())
	ctx := context.Background()

	require.NoError(t, store.SetSystemKV(ctx, "schema_version", "1"))

	val, err := store.GetSystemKV(ctx, "schema_version")
	require.NoError(t, err)
	assert.Equal(t, "1", val)

	_, err = store.GetSystemKV(ctx, "missing_key")
	assert.Error(t, err)
}
