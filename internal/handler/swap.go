package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"roster-service/internal/domain"
)

// SwapHandler обрабатывает HTTP-запросы workflow замены участника
type SwapHandler struct {
	*BaseHandler
	swapUseCase domain.SwapUseCase
}

// NewSwapHandler создает новый экземпляр SwapHandler
func NewSwapHandler(swapUseCase domain.SwapUseCase, logger *logrus.Logger) *SwapHandler {
	return &SwapHandler{
		BaseHandler: NewBaseHandler(logger),
		swapUseCase: swapUseCase,
	}
}

// PostSwap обрабатывает открытие запроса на замену
func (h *SwapHandler) PostSwap(c echo.Context) error {
	var req AssignmentRef
	if err := c.Bind(&req); err != nil {
		h.logger.WithError(err).Warn("Failed to bind open swap request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	scheduleID := c.Param("id")
	logEntry := h.logRequest(c, "open_swap").WithFields(logrus.Fields{
		"schedule_id":   scheduleID,
		"assignment_id": req.AssignmentID,
	})
	logEntry.Info("Opening swap request")

	swap, err := h.swapUseCase.OpenSwap(c.Request().Context(), scheduleID, req.AssignmentID)
	if err != nil {
		logEntry.WithError(err).Error("Failed to open swap request")
		return h.respondError(c, err)
	}

	logEntry.WithField("swap_id", swap.ID).Info("Swap request opened successfully")
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"swap": toSwapView(swap),
	})
}

// GetSwapCandidates обрабатывает подбор пригодных замен для назначения
func (h *SwapHandler) GetSwapCandidates(c echo.Context) error {
	scheduleID := c.Param("id")
	assignmentID := c.QueryParam("assignment_id")

	candidates, err := h.swapUseCase.ListEligibleReplacements(c.Request().Context(), scheduleID, assignmentID)
	if err != nil {
		h.logRequest(c, "swap_candidates").WithError(err).Warn("Failed to list swap candidates")
		return h.respondError(c, err)
	}

	views := make([]CandidateView, len(candidates))
	for i, candidate := range candidates {
		views[i] = CandidateView{
			UserID:      candidate.ID,
			DisplayName: candidate.DisplayName,
		}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"candidates": views,
	})
}

// PostSwapResolve обрабатывает разрешение открытого запроса на замену
func (h *SwapHandler) PostSwapResolve(c echo.Context) error {
	var req ResolveSwapRequest
	if err := c.Bind(&req); err != nil {
		h.logger.WithError(err).Warn("Failed to bind resolve swap request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	scheduleID := c.Param("id")
	logEntry := h.logRequest(c, "resolve_swap").WithFields(logrus.Fields{
		"schedule_id":   scheduleID,
		"assignment_id": req.AssignmentID,
		"accept":        req.Accept,
	})
	logEntry.Info("Resolving swap request")

	assignment, err := h.swapUseCase.ResolveSwap(c.Request().Context(), scheduleID, req.AssignmentID, req.Accept, req.ReplacementUserID)
	if err != nil {
		logEntry.WithError(err).Error("Failed to resolve swap request")
		return h.respondError(c, err)
	}

	logEntry.WithField("holder", assignment.UserID).Info("Swap request resolved successfully")
	return c.JSON(http.StatusOK, map[string]interface{}{
		"assignment": toAssignmentView(assignment),
	})
}
