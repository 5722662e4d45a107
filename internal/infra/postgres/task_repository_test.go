package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaroslawmuzyka/content-ai-wordpress/internal/core/task"
	"github.com/jaroslawmuzyka/content-ai-wordpress/internal/platform/database"
)

// setupTestDB connects to the local test database, or skips the integration
// tests when it is not available.
func setupTestDB(t *testing.T) (*database.DB, func()) {
	t.Helper()

	ctx := context.Background()

	testDB, err := database.New(ctx, database.ConnectionParams{
		Host:     "localhost",
		Port:     5432,
		User:     "testuser",
		Password: "testpass",
		DBName:   "contentfactory_test",
		SSLMode:  "disable",
	})
	if err != nil {
		t.Skip("cannot connect to the test database, skipping integration tests:", err)
		return nil, func() {}
	}

	cleanup := func() {
		_, _ = testDB.Pool.Exec(ctx, "DELETE FROM seo_content_tasks WHERE keyword LIKE 'test-%'")
		testDB.Close()
	}

	return testDB, cleanup
}

func TestTaskRepository_InsertAndGet(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewTaskRepository(db.Pool)

	created, err := repo.Insert(ctx, "test-pompy-ciepla", "polski", "aio prompt")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "test-pompy-ciepla", created.Keyword)
	assert.Equal(t, "polski", created.Language)
	assert.Equal(t, "aio prompt", created.AIOPrompt)
	// Fresh records start with every stage pending and empty headings.
	assert.Equal(t, task.Pending(), created.StatusResearch)
	assert.Equal(t, "", created.HeadersFinal)

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
}

func TestTaskRepository_Insert_DefaultsLanguage(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewTaskRepository(db.Pool)

	created, err := repo.Insert(context.Background(), "test-default-lang", "", "")
	require.NoError(t, err)
	assert.Equal(t, task.DefaultLanguage, created.Language)
}

func TestTaskRepository_GetByID_NotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewTaskRepository(db.Pool)

	_, err := repo.GetByID(context.Background(), -1)
	assert.ErrorIs(t, err, task.ErrNotFound)
}

func TestTaskRepository_Update(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewTaskRepository(db.Pool)

	created, err := repo.Insert(ctx, "test-update", "polski", "")
	require.NoError(t, err)

	err = repo.Update(ctx, created.ID, task.Patch{
		task.FieldStatusResearch: task.Done().String(),
		task.FieldSERPPhrases:    "fraza1\nfraza2",
	})
	require.NoError(t, err)

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, fetched.StatusResearch.IsDone())
	assert.Equal(t, "fraza1\nfraza2", fetched.SERPPhrases)
	// Untouched columns keep their values.
	assert.Equal(t, "test-update", fetched.Keyword)
}

func TestTaskRepository_Update_RejectsBadPatches(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewTaskRepository(db.Pool)

	created, err := repo.Insert(ctx, "test-reject", "polski", "")
	require.NoError(t, err)

	err = repo.Update(ctx, created.ID, task.Patch{task.FieldID: "9"})
	assert.Error(t, err)

	err = repo.Update(ctx, created.ID, task.Patch{task.Field("no_such_column"): "x"})
	assert.Error(t, err)

	err = repo.Update(ctx, -1, task.Patch{task.FieldKeyword: "x"})
	assert.ErrorIs(t, err, task.ErrNotFound)
}

func TestTaskRepository_ListAll_NewestFirst(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewTaskRepository(db.Pool)

	first, err := repo.Insert(ctx, "test-list-1", "polski", "")
	require.NoError(t, err)
	second, err := repo.Insert(ctx, "test-list-2", "polski", "")
	require.NoError(t, err)

	tasks, err := repo.ListAll(ctx)
	require.NoError(t, err)

	var ids []int64
	for _, tk := range tasks {
		ids = append(ids, tk.ID)
	}
	firstIdx, secondIdx := -1, -1
	for i, id := range ids {
		if id == first.ID {
			firstIdx = i
		}
		if id == second.ID {
			secondIdx = i
		}
	}
	require.NotEqual(t, -1, firstIdx)
	require.NotEqual(t, -1, secondIdx)
	assert.Less(t, secondIdx, firstIdx, "newer record must come first")
}

func TestTaskRepository_Delete(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewTaskRepository(db.Pool)

	created, err := repo.Insert(ctx, "test-delete", "polski", "")
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, []int64{created.ID}))

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, task.ErrNotFound)

	// Missing ids are not an error.
	assert.NoError(t, repo.Delete(ctx, []int64{created.ID}))
	assert.NoError(t, repo.Delete(ctx, nil))
}

func TestTaskRepository_Upsert(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewTaskRepository(db.Pool)

	created, err := repo.Insert(ctx, "test-upsert", "polski", "")
	require.NoError(t, err)

	created.Keyword = "test-upsert-zmieniony"
	created.StatusWriting = task.Failed("timeout")
	require.NoError(t, repo.Upsert(ctx, created))

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "test-upsert-zmieniony", fetched.Keyword)
	assert.Equal(t, task.Failed("timeout"), fetched.StatusWriting)

	err = repo.Upsert(ctx, &task.Task{Keyword: "test-no-id"})
	assert.Error(t, err)
}
