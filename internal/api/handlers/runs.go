package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/asset-divider/internal/api/dto"
	"github.com/eshaffer321/asset-divider/internal/domain/asset"
	"github.com/eshaffer321/asset-divider/internal/infrastructure/storage"
)

// RunsHandler handles distribution run requests.
type RunsHandler struct {
	*Base
}

// NewRunsHandler creates a new runs handler.
func NewRunsHandler(repo storage.Repository) *RunsHandler {
	return &RunsHandler{
		Base: NewBase(repo),
	}
}

// List handles GET /api/runs - returns recent runs, newest first.
func (h *RunsHandler) List(c *gin.Context) {
	if !h.requireRepo(c) {
		return
	}
	limit := ParseIntParam(c, "limit", 20)

	runs, err := h.repo.ListRuns(limit)
	if err != nil {
		h.WriteError(c, http.StatusInternalServerError, dto.InternalError())
		return
	}

	response := dto.RunListResponse{
		Runs:  make([]dto.RunResponse, 0, len(runs)),
		Count: len(runs),
	}
	for _, run := range runs {
		response.Runs = append(response.Runs, toRunResponse(run))
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/runs/:id - returns a single run.
func (h *RunsHandler) Get(c *gin.Context) {
	if !h.requireRepo(c) {
		return
	}
	run, ok := h.findRun(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toRunResponse(*run))
}

// Allocations handles GET /api/runs/:id/allocations - returns the assets of
// a run, optionally filtered with ?group=A.
func (h *RunsHandler) Allocations(c *gin.Context) {
	if !h.requireRepo(c) {
		return
	}
	run, ok := h.findRun(c)
	if !ok {
		return
	}

	group := strings.ToUpper(strings.TrimSpace(c.Query("group")))
	if group != "" && !validGroup(group) {
		h.WriteError(c, http.StatusBadRequest, dto.BadRequestError("group must be A, B or C"))
		return
	}

	allocations, err := h.repo.GetAllocations(run.ID, group)
	if err != nil {
		h.WriteError(c, http.StatusInternalServerError, dto.InternalError())
		return
	}

	response := dto.AllocationListResponse{
		RunID:       run.ID,
		Group:       group,
		Allocations: make([]dto.AllocationResponse, 0, len(allocations)),
		Count:       len(allocations),
		Totals:      make(map[string]float64),
	}
	for _, a := range allocations {
		response.Allocations = append(response.Allocations, toAllocationResponse(a))
		response.Totals[a.Group] += a.CurrentValue
	}

	c.JSON(http.StatusOK, response)
}

func (h *RunsHandler) findRun(c *gin.Context) (*storage.Run, bool) {
	id := c.Param("id")
	if id == "" {
		h.WriteError(c, http.StatusBadRequest, dto.BadRequestError("run ID is required"))
		return nil, false
	}

	run, err := h.repo.GetRun(id)
	if err != nil {
		h.WriteError(c, http.StatusInternalServerError, dto.InternalError())
		return nil, false
	}
	if run == nil {
		h.WriteError(c, http.StatusNotFound, dto.NotFoundError("run"))
		return nil, false
	}
	return run, true
}

func validGroup(g string) bool {
	for _, known := range asset.Groups() {
		if string(known) == g {
			return true
		}
	}
	return false
}

// toRunResponse converts a storage Run to an API response.
func toRunResponse(run storage.Run) dto.RunResponse {
	resp := dto.RunResponse{
		ID:           run.ID,
		StartedAt:    run.StartedAt.UTC().Format(time.RFC3339),
		Status:       run.Status,
		DryRun:       run.DryRun,
		SourceCount:  run.SourceCount,
		AssetCount:   run.AssetCount,
		SkippedCount: run.SkippedCount,
		TotalValue:   run.TotalValue,
		TargetValue:  run.TargetValue,
		VariancePct:  run.VariancePct,
		Iterations:   run.Iterations,
		Swaps:        run.Swaps,
		Converged:    run.Converged,
		GroupTotals:  run.GroupTotals,
		OutputDir:    run.OutputDir,
		Error:        run.Error,
	}
	if run.CompletedAt != nil {
		resp.CompletedAt = run.CompletedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func toAllocationResponse(a storage.Allocation) dto.AllocationResponse {
	return dto.AllocationResponse{
		Group:            a.Group,
		AssetType:        a.AssetType,
		Serial:           a.Serial,
		Name:             a.Name,
		Model:            a.Model,
		Source:           a.Source,
		PurchaseType:     a.PurchaseType,
		ConditionRemark:  a.ConditionRemark,
		MarketPrice:      a.MarketPrice,
		CurrentValue:     a.CurrentValue,
		DepreciationRate: a.DepreciationRate,
		RemarkCategory:   a.RemarkCategory,
		AllocationRemark: a.AllocationRemark,
	}
}
