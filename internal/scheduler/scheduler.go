// Package scheduler drains queued solve jobs on a cron tick, fanning
// each batch out across a small worker pool.
package scheduler

import (
	"context"
	"encoding/json"
	"sync"

	"lpsimplex/internal/api"
	"lpsimplex/internal/simplex"
	"lpsimplex/internal/store"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler periodically pulls queued jobs from the store and solves
// them, recording the outcome back onto each job.
type Scheduler struct {
	cron        *cron.Cron
	repo        *store.Repository
	logger      *zap.Logger
	cronExpr    string
	batchSize   int
	workerCount int
	isRunning   bool
}

// New builds a scheduler; cronExpr follows the six-field
// seconds-included robfig/cron format used elsewhere in this codebase.
func New(repo *store.Repository, logger *zap.Logger, cronExpr string, batchSize, workerCount int) *Scheduler {
	if batchSize <= 0 {
		batchSize = 10
	}
	if workerCount <= 0 {
		workerCount = 4
	}
	return &Scheduler{
		cron:        cron.New(cron.WithSeconds()),
		repo:        repo,
		logger:      logger,
		cronExpr:    cronExpr,
		batchSize:   batchSize,
		workerCount: workerCount,
	}
}

// Start registers the batch-drain tick and starts the cron loop.
func (s *Scheduler) Start() {
	if s.isRunning {
		s.logger.Warn("solve job scheduler is already running")
		return
	}

	if _, err := s.cron.AddFunc(s.cronExpr, s.drainBatch); err != nil {
		s.logger.Error("failed to schedule solve job drain", zap.Error(err))
		return
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.Info("solve job scheduler started",
		zap.String("cron", s.cronExpr),
		zap.Int("batch_size", s.batchSize),
		zap.Int("worker_count", s.workerCount),
	)
}

// Stop drains in-flight ticks and stops the cron loop.
func (s *Scheduler) Stop() {
	if !s.isRunning {
		return
	}
	s.logger.Info("stopping solve job scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false
	s.logger.Info("solve job scheduler stopped")
}

// drainBatch fetches one batch of queued jobs and solves them across
// workerCount goroutines.
func (s *Scheduler) drainBatch() {
	ctx := context.Background()

	jobs, err := s.repo.ListQueued(ctx, s.batchSize)
	if err != nil {
		s.logger.Error("failed to list queued solve jobs", zap.Error(err))
		return
	}
	if len(jobs) == 0 {
		return
	}

	s.logger.Info("draining queued solve jobs", zap.Int("count", len(jobs)))

	queue := make(chan store.SolveJob, len(jobs))
	for _, job := range jobs {
		queue <- job
	}
	close(queue)

	var wg sync.WaitGroup
	for i := 0; i < s.workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				s.runJob(ctx, job)
			}
		}()
	}
	wg.Wait()
}

func (s *Scheduler) runJob(ctx context.Context, job store.SolveJob) {
	if err := s.repo.MarkRunning(ctx, job.ID); err != nil {
		s.logger.Error("failed to mark job running", zap.String("job_id", job.ID.String()), zap.Error(err))
		return
	}

	var dto api.ModelDTO
	if err := json.Unmarshal(job.Model, &dto); err != nil {
		s.logger.Error("failed to decode queued job model", zap.String("job_id", job.ID.String()), zap.Error(err))
		_ = s.repo.Fail(ctx, job.ID, "invalid stored model: "+err.Error())
		return
	}

	opts := (api.SolveRequest{PivotRule: job.PivotRule}).ToOptions()

	result := simplex.SolveModel(dto.ToModel(), opts)

	solution, err := json.Marshal(result.X)
	if err != nil {
		s.logger.Error("failed to encode solution", zap.String("job_id", job.ID.String()), zap.Error(err))
		_ = s.repo.Fail(ctx, job.ID, "failed to encode solution: "+err.Error())
		return
	}

	code := result.Code.String()
	if err := s.repo.Complete(ctx, job.ID, solution, code, result.Value, result.Iterations); err != nil {
		s.logger.Error("failed to record completed job", zap.String("job_id", job.ID.String()), zap.Error(err))
	}
}
