// Package store persists solve requests and their outcomes so the API
// and scheduler can hand back results for jobs submitted asynchronously.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// JobStatus tracks a solve job through its lifecycle.
type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// SolveJob is the persisted record of one solve request: the input
// model (serialized as JSON) and, once finished, the diagnostic code
// and solution vector.
type SolveJob struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Status    JobStatus      `gorm:"type:varchar(20);not null;default:'queued';index;column:status" json:"status"`
	PivotRule string         `gorm:"type:varchar(20);column:pivot_rule" json:"pivot_rule"`
	Model     datatypes.JSON `gorm:"type:jsonb;not null;column:model" json:"model"`
	Solution  datatypes.JSON `gorm:"type:jsonb;column:solution" json:"solution,omitempty"`
	Code      *string        `gorm:"type:varchar(32);column:code" json:"code,omitempty"`
	Value     *float64       `gorm:"type:double precision;column:value" json:"value,omitempty"`
	Iterations int           `gorm:"column:iterations" json:"iterations"`
	Error     *string        `gorm:"type:text;column:error" json:"error,omitempty"`

	SubmittedBy *uuid.UUID `gorm:"type:uuid;index;column:submitted_by" json:"submitted_by,omitempty"`

	CreatedAt  time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at" json:"updated_at"`
	FinishedAt *time.Time `gorm:"column:finished_at" json:"finished_at,omitempty"`
}

// Repository persists SolveJob records.
type Repository struct {
	db *gorm.DB
}

// NewRepository wraps a *gorm.DB for job persistence.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new queued job and assigns its ID.
func (r *Repository) Create(ctx context.Context, job *SolveJob) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.Status == "" {
		job.Status = JobQueued
	}
	return r.db.WithContext(ctx).Create(job).Error
}

// Get fetches a job by ID.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*SolveJob, error) {
	var job SolveJob
	if err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// MarkRunning transitions a queued job to running.
func (r *Repository) MarkRunning(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&SolveJob{}).
		Where("id = ?", id).
		Update("status", JobRunning).Error
}

// Complete records a finished job's outcome.
func (r *Repository) Complete(ctx context.Context, id uuid.UUID, solution datatypes.JSON, code string, value float64, iterations int) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&SolveJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      JobCompleted,
			"solution":    solution,
			"code":        code,
			"value":       value,
			"iterations":  iterations,
			"finished_at": now,
		}).Error
}

// Fail records a job's terminal error.
func (r *Repository) Fail(ctx context.Context, id uuid.UUID, errMsg string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&SolveJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      JobFailed,
			"error":       errMsg,
			"finished_at": now,
		}).Error
}

// ListQueued returns queued jobs, oldest first, for the scheduler to
// pick up in batches.
func (r *Repository) ListQueued(ctx context.Context, limit int) ([]SolveJob, error) {
	var jobs []SolveJob
	err := r.db.WithContext(ctx).
		Where("status = ?", JobQueued).
		Order("created_at asc").
		Limit(limit).
		Find(&jobs).Error
	return jobs, err
}

// ListPage returns one page of jobs, newest first, along with the
// total row count so the caller can report pagination metadata.
func (r *Repository) ListPage(ctx context.Context, page, perPage int) ([]SolveJob, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&SolveJob{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []SolveJob
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}
