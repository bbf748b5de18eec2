// Package api exposes the solve engine over HTTP: synchronous solves,
// asynchronous job submission/polling backed by internal/store, and an
// MPS-file upload path.
package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"lpsimplex/internal/auth"
	"lpsimplex/internal/cache"
	"lpsimplex/internal/lpmodel"
	"lpsimplex/internal/middleware"
	"lpsimplex/internal/mps"
	"lpsimplex/internal/refsolver"
	"lpsimplex/internal/shared"
	"lpsimplex/internal/simplex"
	"lpsimplex/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	repo  *store.Repository
	cache *cache.Cache
	auth  *auth.Service
	log   *zap.Logger
}

// NewHandler creates a new solve API handler.
func NewHandler(repo *store.Repository, c *cache.Cache, authSvc *auth.Service, log *zap.Logger) *Handler {
	return &Handler{repo: repo, cache: c, auth: authSvc, log: log}
}

// RegisterRoutes registers the solve API routes.
func (h *Handler) RegisterRoutes(router *gin.Engine, authMiddleware *middleware.Middleware) {
	public := router.Group("/api/v1/auth")
	{
		public.POST("/token", h.IssueToken)
	}

	solve := router.Group("/api/v1/solve")
	solve.Use(authMiddleware.AuthMiddleware())
	{
		solve.POST("", h.Solve)
		solve.POST("/mps", h.SolveMPS)
	}

	jobs := router.Group("/api/v1/jobs")
	jobs.Use(authMiddleware.AuthMiddleware())
	{
		jobs.POST("", h.SubmitJob)
		jobs.GET("", h.ListJobs)
		jobs.GET("/:id", h.GetJob)
	}
}

// TokenRequest is the body of a /auth/token call.
type TokenRequest struct {
	Subject string `json:"subject" binding:"required"`
	Role    string `json:"role"`
}

// IssueToken godoc
// @Summary Issue a bearer token
// @Description Mint a JWT for a submitter or admin principal
// @Tags auth
// @Accept json
// @Produce json
// @Param request body TokenRequest true "Token request"
// @Success 200 {object} shared.SuccessResponse[map[string]interface{}]
// @Router /api/v1/auth/token [post]
func (h *Handler) IssueToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	role := auth.RoleSubmitter
	if req.Role == string(auth.RoleAdmin) {
		role = auth.RoleAdmin
	}

	token, expiresAt, err := h.auth.Issue(req.Subject, role)
	if err != nil {
		h.log.Error("failed to issue token", zap.Error(err))
		shared.RespondWithError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	shared.RespondWithSuccess(c, http.StatusOK, "token issued", gin.H{
		"token":      token,
		"expires_at": expiresAt,
	})
}

// Solve godoc
// @Summary Solve a linear program synchronously
// @Description Run the two-phase simplex method against the submitted model
// @Tags solve
// @Accept json
// @Produce json
// @Param request body SolveRequest true "Model and solve options"
// @Success 200 {object} shared.SuccessResponse[SolveResponse]
// @Failure 400 {object} shared.ErrorResponse
// @Router /api/v1/solve [post]
func (h *Handler) Solve(c *gin.Context) {
	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	m := req.Model.ToModel()
	opts := req.ToOptions()

	key := cache.Key(m, opts)
	if hit, ok := h.cache.Get(c.Request.Context(), key); ok {
		shared.RespondWithSuccess(c, http.StatusOK, "solved (cached)", toSolveResponse(hit, true))
		return
	}

	result := simplex.SolveModel(m, opts)
	if result.Code == simplex.Success {
		h.cache.Set(c.Request.Context(), key, result)
	}

	if req.CrossCheck && refsolver.Available {
		h.crossCheck(m, result)
	}

	shared.RespondWithSuccess(c, http.StatusOK, "solved", toSolveResponse(result, false))
}

// crossCheck runs the optional reference solver and logs a warning on
// disagreement; it never changes the response, only the diagnostics.
func (h *Handler) crossCheck(m *lpmodel.Model, primary simplex.Result) {
	ref, err := refsolver.Solve(m)
	if err != nil {
		h.log.Warn("cross-check solver failed", zap.Error(err))
		return
	}
	if ref.Code != primary.Code {
		h.log.Warn("cross-check diagnostic disagreement",
			zap.String("primary", primary.Code.String()),
			zap.String("reference", ref.Code.String()),
		)
		return
	}
	if primary.Code == simplex.Success {
		diff := primary.Value - ref.Value
		if diff < 0 {
			diff = -diff
		}
		if diff > 1e-4 {
			h.log.Warn("cross-check objective value mismatch",
				zap.Float64("primary_value", primary.Value),
				zap.Float64("reference_value", ref.Value),
			)
		}
	}
}

// SolveMPS godoc
// @Summary Solve a linear program from an MPS file
// @Tags solve
// @Accept text/plain
// @Produce json
// @Success 200 {object} shared.SuccessResponse[SolveResponse]
// @Router /api/v1/solve/mps [post]
func (h *Handler) SolveMPS(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		shared.RespondWithError(c, http.StatusBadRequest, "failed to read request body")
		return
	}

	m, err := mps.Read(bytes.NewReader(body))
	if err != nil {
		shared.RespondWithError(c, http.StatusBadRequest, "invalid MPS payload: "+err.Error())
		return
	}

	opts := simplex.DefaultOptions()
	result := simplex.SolveModel(m, opts)
	shared.RespondWithSuccess(c, http.StatusOK, "solved", toSolveResponse(result, false))
}

// SubmitJob godoc
// @Summary Submit a solve request for asynchronous processing
// @Tags jobs
// @Accept json
// @Produce json
// @Param request body SolveRequest true "Model and solve options"
// @Success 202 {object} shared.SuccessResponse[map[string]interface{}]
// @Router /api/v1/jobs [post]
func (h *Handler) SubmitJob(c *gin.Context) {
	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	modelJSON, err := json.Marshal(req.Model)
	if err != nil {
		shared.RespondWithError(c, http.StatusBadRequest, "failed to encode model")
		return
	}

	job := &store.SolveJob{
		Status:    store.JobQueued,
		PivotRule: req.PivotRule,
		Model:     modelJSON,
	}

	if subject, ok := middleware.CurrentPrincipal(c); ok {
		if id, err := uuid.Parse(subject); err == nil {
			job.SubmittedBy = &id
		}
	}

	if err := h.repo.Create(c.Request.Context(), job); err != nil {
		h.log.Error("failed to persist solve job", zap.Error(err))
		shared.RespondWithError(c, http.StatusInternalServerError, "failed to submit job")
		return
	}

	shared.RespondWithSuccess(c, http.StatusAccepted, "job queued", gin.H{"id": job.ID})
}

// ListJobs godoc
// @Summary List solve jobs, newest first
// @Tags jobs
// @Produce json
// @Param page query int false "page number (1-based)"
// @Param pageSize query int false "items per page"
// @Success 200 {object} shared.Page[store.SolveJob]
// @Router /api/v1/jobs [get]
func (h *Handler) ListJobs(c *gin.Context) {
	var req shared.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		shared.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	jobs, total, err := h.repo.ListPage(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		h.log.Error("failed to list solve jobs", zap.Error(err))
		shared.RespondWithError(c, http.StatusInternalServerError, "failed to list jobs")
		return
	}

	pagination := shared.NewPagination[store.SolveJob](total, req.Page, req.PageSize)
	shared.RespondWithPagination(c, http.StatusOK, jobs, pagination)
}

// GetJob godoc
// @Summary Fetch a solve job's status and result
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} shared.SuccessResponse[store.SolveJob]
// @Failure 404 {object} shared.ErrorResponse
// @Router /api/v1/jobs/{id} [get]
func (h *Handler) GetJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		shared.RespondWithError(c, http.StatusBadRequest, "invalid job id")
		return
	}

	job, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		shared.RespondWithError(c, http.StatusNotFound, "job not found")
		return
	}

	shared.RespondWithSuccess(c, http.StatusOK, "job retrieved", job)
}
