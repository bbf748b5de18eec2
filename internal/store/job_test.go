package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing. The
// production schema's uuid_generate_v4() default is PostgreSQL-only,
// so the table is created by hand rather than via AutoMigrate.
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE IF NOT EXISTS solve_jobs (
			id TEXT PRIMARY KEY,
			status TEXT NOT NULL DEFAULT 'queued',
			pivot_rule TEXT,
			model TEXT NOT NULL,
			solution TEXT,
			code TEXT,
			value REAL,
			iterations INTEGER,
			error TEXT,
			submitted_by TEXT,
			created_at DATETIME,
			updated_at DATETIME,
			finished_at DATETIME
		)
	`).Error
	require.NoError(t, err)

	return db
}

func TestRepositoryCreateAssignsIDAndDefaultStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	job := &SolveJob{Model: datatypes.JSON(`{"objective":[1,2]}`)}
	require.NoError(t, repo.Create(ctx, job))

	assert.NotEqual(t, uuid.Nil, job.ID)
	assert.Equal(t, JobQueued, job.Status)
}

func TestRepositoryGetRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	job := &SolveJob{Model: datatypes.JSON(`{"objective":[1]}`), PivotRule: "bland"}
	require.NoError(t, repo.Create(ctx, job))

	fetched, err := repo.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, fetched.ID)
	assert.Equal(t, "bland", fetched.PivotRule)
}

func TestRepositoryGetMissingReturnsError(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	_, err := repo.Get(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestRepositoryLifecycleTransitions(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	job := &SolveJob{Model: datatypes.JSON(`{"objective":[1]}`)}
	require.NoError(t, repo.Create(ctx, job))

	require.NoError(t, repo.MarkRunning(ctx, job.ID))
	running, err := repo.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, JobRunning, running.Status)

	solution := datatypes.JSON(`[1,2]`)
	require.NoError(t, repo.Complete(ctx, job.ID, solution, "optimal", 3.5, 4))
	done, err := repo.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, JobCompleted, done.Status)
	assert.NotNil(t, done.Code)
	assert.Equal(t, "optimal", *done.Code)
	assert.NotNil(t, done.FinishedAt)
}

func TestRepositoryFailRecordsError(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	job := &SolveJob{Model: datatypes.JSON(`{"objective":[1]}`)}
	require.NoError(t, repo.Create(ctx, job))

	require.NoError(t, repo.Fail(ctx, job.ID, "infeasible model"))
	failed, err := repo.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, JobFailed, failed.Status)
	assert.NotNil(t, failed.Error)
	assert.Equal(t, "infeasible model", *failed.Error)
}

func TestRepositoryListQueuedOrdersOldestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	first := &SolveJob{Model: datatypes.JSON(`{"objective":[1]}`)}
	require.NoError(t, repo.Create(ctx, first))

	second := &SolveJob{Model: datatypes.JSON(`{"objective":[2]}`)}
	require.NoError(t, repo.Create(ctx, second))

	require.NoError(t, repo.MarkRunning(ctx, second.ID))
	require.NoError(t, repo.Complete(ctx, second.ID, datatypes.JSON(`[]`), "optimal", 0, 0))

	jobs, err := repo.ListQueued(ctx, 10)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, first.ID, jobs[0].ID)
}

func TestRepositoryListPageOrdersNewestFirstAndReportsTotal(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	first := &SolveJob{Model: datatypes.JSON(`{"objective":[1]}`)}
	require.NoError(t, repo.Create(ctx, first))
	second := &SolveJob{Model: datatypes.JSON(`{"objective":[2]}`)}
	require.NoError(t, repo.Create(ctx, second))
	third := &SolveJob{Model: datatypes.JSON(`{"objective":[3]}`)}
	require.NoError(t, repo.Create(ctx, third))

	page, total, err := repo.ListPage(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 2)
	assert.Equal(t, third.ID, page[0].ID)
	assert.Equal(t, second.ID, page[1].ID)

	page2, total2, err := repo.ListPage(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total2)
	require.Len(t, page2, 1)
	assert.Equal(t, first.ID, page2[0].ID)
}
