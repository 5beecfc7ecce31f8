// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/shelfwatch/shelfwatch/internal/analytics"
	"github.com/shelfwatch/shelfwatch/internal/scope"
)

// maxAskBodyBytes bounds the POST /ask body. Questions are one sentence;
// anything larger is abuse.
const maxAskBodyBytes = 1 << 20

// askRequest is the POST /api/v1/ask body.
type askRequest struct {
	Question string `json:"question" validate:"required,min=3,max=500"`
}

// askAnswer pairs the resolved request with the dispatched analysis result.
// Result is nil when the question resolved but could not dispatch; Note says
// why.
type askAnswer struct {
	Resolved scope.Request `json:"resolved"`
	Result   interface{}   `json:"result,omitempty"`
	Note     string        `json:"note,omitempty"`
}

// Ask handles free-text analysis questions
//
// @Summary Resolve and dispatch a free-text question
// @Description Classifies the question into an analysis family, resolves brand and item mentions against the catalog, extracts day and window parameters, and dispatches the matching analysis
// @Tags Ask
// @Accept json
// @Produce json
// @Param request body askRequest true "Question to resolve"
// @Success 200 {object} APIResponse{data=askAnswer} "Question resolved successfully"
// @Failure 400 {object} APIResponse "Invalid body"
// @Router /api/v1/ask [post]
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req askRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAskBodyBytes))
	if err := decoder.Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Invalid JSON body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}

	resolved, err := h.resolver.Resolve(r.Context(), req.Question)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	answer := askAnswer{Resolved: resolved}
	answer.Result, answer.Note, err = h.dispatch(r, resolved)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondData(w, r, start, &answer)
}

// dispatch routes a resolved question to its analysis. Category rules:
// an item-scoped OOS question asks for its decline classification, an
// item-scoped pattern question for its single-item pattern; comparison
// always compares the resolved scope against the whole company.
func (h *Handler) dispatch(r *http.Request, resolved scope.Request) (interface{}, string, error) {
	ctx := r.Context()

	switch resolved.Category {
	case scope.CategoryCoverage:
		result, err := h.engine.CoverageByHorizons(ctx, resolved.Scope, analytics.CoverageOptions{
			Windows: resolved.Windows,
		})
		return result, "", err

	case scope.CategoryCoverageLoss:
		result, err := h.engine.CoverageLoss(ctx, resolved.Scope, analytics.LossOptions{})
		return result, "", err

	case scope.CategoryOOS:
		if resolved.ItemCode != "" {
			result, err := h.engine.ClassifyDecline(ctx, resolved.ItemCode, analytics.DeclineOptions{
				RecentDays: resolved.RecentDays,
			})
			return result, "", err
		}
		result, err := h.engine.DetectOOS(ctx, resolved.Scope, analytics.OOSOptions{
			RecentDays: resolved.RecentDays,
		})
		return result, "", err

	case scope.CategoryPattern:
		if resolved.ItemCode != "" {
			result, err := h.engine.ClassifyPattern(ctx, resolved.ItemCode, analytics.PatternOptions{})
			return result, "", err
		}
		result, err := h.engine.SeasonalScan(ctx, resolved.Scope, analytics.SeasonalScanOptions{})
		return result, "", err

	case scope.CategoryComparison:
		if resolved.Scope.IsCompany() {
			return nil, "Name a brand to compare against company coverage", nil
		}
		result, err := h.engine.CompareScopes(ctx, resolved.Scope, scope.Company(), analytics.CompareOptions{})
		return result, "", err

	case scope.CategorySupplyChain:
		if resolved.Scope.IsCompany() {
			return nil, "Name a brand for the supply-chain dashboard", nil
		}
		result, err := h.engine.BrandDashboard(ctx, resolved.Scope, analytics.DashboardOptions{
			RecentDays: resolved.RecentDays,
		})
		return result, "", err

	default:
		return nil, "Question did not match a known analysis family", nil
	}
}
