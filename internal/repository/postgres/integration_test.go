//go:build integration

package postgres_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/userhub-io/userhub-server/internal/model"
	repo "github.com/userhub-io/userhub-server/internal/repository/postgres"
	"github.com/userhub-io/userhub-server/internal/service"
	"github.com/userhub-io/userhub-server/internal/testutil"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "userhub_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/userhub_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestUserDocuments_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	docs := repo.NewUserDocuments(conn)

	t.Run("set_get_roundtrip", func(t *testing.T) {
		doc := json.RawMessage(`{"uid":"doc-1","email":"a@b.com","isActive":true}`)
		require.NoError(t, docs.Set(ctx, "doc-1", doc))

		got, err := docs.Get(ctx, "doc-1")
		require.NoError(t, err)
		require.JSONEq(t, string(doc), string(got))
	})

	t.Run("set_overwrites", func(t *testing.T) {
		require.NoError(t, docs.Set(ctx, "doc-2", json.RawMessage(`{"email":"old@b.com"}`)))
		require.NoError(t, docs.Set(ctx, "doc-2", json.RawMessage(`{"email":"new@b.com"}`)))

		got, err := docs.Get(ctx, "doc-2")
		require.NoError(t, err)
		require.JSONEq(t, `{"email":"new@b.com"}`, string(got))
	})

	t.Run("merge_is_field_level", func(t *testing.T) {
		require.NoError(t, docs.Set(ctx, "doc-3", json.RawMessage(`{"uid":"doc-3","email":"a@b.com","displayName":""}`)))
		require.NoError(t, docs.Merge(ctx, "doc-3", json.RawMessage(`{"displayName":"X"}`)))

		got, err := docs.Get(ctx, "doc-3")
		require.NoError(t, err)
		require.JSONEq(t, `{"uid":"doc-3","email":"a@b.com","displayName":"X"}`, string(got))
	})

	t.Run("merge_absent_is_not_found", func(t *testing.T) {
		err := docs.Merge(ctx, "absent", json.RawMessage(`{"displayName":"X"}`))
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("get_absent_is_not_found", func(t *testing.T) {
		_, err := docs.Get(ctx, "absent")
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, docs.Set(ctx, "doc-4", json.RawMessage(`{"email":"a@b.com"}`)))
		require.NoError(t, docs.Delete(ctx, "doc-4"))
		require.ErrorIs(t, docs.Delete(ctx, "doc-4"), model.ErrNotFound)
	})
}

func TestUserService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	users := service.NewUser(repo.NewUserDocuments(conn), testutil.MakeNoopLogger())

	created, err := users.Create(ctx, model.CreateUserParams{UID: "life-1", Email: "a@b.com"})
	require.NoError(t, err)
	require.Equal(t, created.CreatedAt, created.UpdatedAt)
	require.True(t, created.IsActive)

	got, found, err := users.Get(ctx, "life-1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, created, got)

	inactive := false
	updated, found, err := users.Update(ctx, "life-1", model.UpdateUserParams{IsActive: &inactive})
	require.NoError(t, err)
	require.True(t, found)
	require.False(t, updated.IsActive)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)

	before, err := time.Parse(model.TimeFormat, created.UpdatedAt)
	require.NoError(t, err)
	after, err := time.Parse(model.TimeFormat, updated.UpdatedAt)
	require.NoError(t, err)
	require.True(t, after.After(before))

	deleted, err := users.Delete(ctx, "life-1")
	require.NoError(t, err)
	require.True(t, deleted)

	_, found, err = users.Get(ctx, "life-1")
	require.NoError(t, err)
	require.False(t, found)

	deleted, err = users.Delete(ctx, "life-1")
	require.NoError(t, err)
	require.False(t, deleted)
}

func TestUserService_CorruptDocument(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	// Plant a document missing the required email field directly in
	// the collection.
	_, err = conn.Exec(ctx, `INSERT INTO users (uid, doc) VALUES ($1, $2) ON CONFLICT (uid) DO UPDATE SET doc = EXCLUDED.doc`,
		"corrupt-1", []byte(`{"uid":"corrupt-1"}`))
	require.NoError(t, err)

	users := service.NewUser(repo.NewUserDocuments(conn), testutil.MakeNoopLogger())

	_, _, err = users.Get(ctx, "corrupt-1")
	var validationErr *model.ValidationError
	require.True(t, errors.As(err, &validationErr))
}
