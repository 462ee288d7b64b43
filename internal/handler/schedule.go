package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"roster-service/internal/auth"
	"roster-service/internal/domain"
)

// ScheduleHandler обрабатывает HTTP-запросы жизненного цикла расписаний
type ScheduleHandler struct {
	*BaseHandler
	scheduleUseCase domain.ScheduleUseCase
}

// NewScheduleHandler создает новый экземпляр ScheduleHandler
func NewScheduleHandler(scheduleUseCase domain.ScheduleUseCase, logger *logrus.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		BaseHandler:     NewBaseHandler(logger),
		scheduleUseCase: scheduleUseCase,
	}
}

// PostSchedule обрабатывает создание расписания в статусе DRAFT
func (h *ScheduleHandler) PostSchedule(c echo.Context) error {
	var req CreateScheduleRequest
	if err := c.Bind(&req); err != nil {
		h.logger.WithError(err).Warn("Failed to bind create schedule request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	logEntry := h.logRequest(c, "create_schedule").WithField("name", req.Name)
	logEntry.Info("Creating schedule")

	schedule, err := h.scheduleUseCase.CreateSchedule(c.Request().Context(), domain.CreateScheduleInput{
		Name:        req.Name,
		Description: req.Description,
		Local:       req.Local,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		ShiftSlot:   req.ShiftSlot,
		CreatedBy:   auth.Subject(c),
	})
	if err != nil {
		logEntry.WithError(err).Error("Failed to create schedule")
		return h.respondError(c, err)
	}

	logEntry.WithField("schedule_id", schedule.ID).Info("Schedule created successfully")
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"schedule": toScheduleView(schedule),
	})
}

// GetSchedules обрабатывает получение списка расписаний
func (h *ScheduleHandler) GetSchedules(c echo.Context) error {
	schedules, err := h.scheduleUseCase.ListSchedules(c.Request().Context())
	if err != nil {
		h.logRequest(c, "list_schedules").WithError(err).Error("Failed to list schedules")
		return h.respondError(c, err)
	}

	views := make([]ScheduleView, len(schedules))
	for i, schedule := range schedules {
		views[i] = toScheduleView(schedule)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"schedules": views,
	})
}

// GetSchedule обрабатывает чтение среза расписания (опрашивается клиентами)
func (h *ScheduleHandler) GetSchedule(c echo.Context) error {
	snapshot, err := h.scheduleUseCase.GetSnapshot(c.Request().Context(), c.Param("id"))
	if err != nil {
		h.logRequest(c, "get_snapshot").WithError(err).Warn("Failed to get snapshot")
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, toSnapshotView(snapshot))
}

// PostGenerate обрабатывает генерацию состава для пустого черновика
func (h *ScheduleHandler) PostGenerate(c echo.Context) error {
	var req GenerateRequest
	if err := c.Bind(&req); err != nil {
		h.logger.WithError(err).Warn("Failed to bind generate request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	scheduleID := c.Param("id")
	logEntry := h.logRequest(c, "generate").WithFields(logrus.Fields{
		"schedule_id": scheduleID,
		"quotas":      len(req.Quotas),
	})
	logEntry.Info("Generating roster")

	snapshot, deficiencies, err := h.scheduleUseCase.Generate(c.Request().Context(), scheduleID, toQuotas(req.Quotas))
	if err != nil {
		logEntry.WithError(err).Error("Failed to generate roster")
		return h.respondError(c, err)
	}

	logEntry.WithFields(logrus.Fields{
		"assignments":  len(snapshot.Assignments),
		"deficiencies": len(deficiencies),
	}).Info("Roster generated successfully")
	return c.JSON(http.StatusOK, toGenerationView(snapshot, deficiencies))
}

// PostRegenerate обрабатывает разрушительную регенерацию состава
func (h *ScheduleHandler) PostRegenerate(c echo.Context) error {
	var req RegenerateRequest
	if err := c.Bind(&req); err != nil {
		h.logger.WithError(err).Warn("Failed to bind regenerate request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	scheduleID := c.Param("id")
	logEntry := h.logRequest(c, "regenerate").WithFields(logrus.Fields{
		"schedule_id": scheduleID,
		"confirm":     req.Confirm,
	})
	logEntry.Info("Regenerating roster")

	snapshot, deficiencies, err := h.scheduleUseCase.Regenerate(c.Request().Context(), scheduleID, toQuotas(req.Quotas), req.Confirm)
	if err != nil {
		logEntry.WithError(err).Error("Failed to regenerate roster")
		return h.respondError(c, err)
	}

	logEntry.WithFields(logrus.Fields{
		"assignments":  len(snapshot.Assignments),
		"deficiencies": len(deficiencies),
	}).Info("Roster regenerated successfully")
	return c.JSON(http.StatusOK, toGenerationView(snapshot, deficiencies))
}

// PostParticipants обрабатывает ручное добавление участников
func (h *ScheduleHandler) PostParticipants(c echo.Context) error {
	var req AddParticipantsRequest
	if err := c.Bind(&req); err != nil {
		h.logger.WithError(err).Warn("Failed to bind add participants request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	scheduleID := c.Param("id")
	logEntry := h.logRequest(c, "add_participants").WithFields(logrus.Fields{
		"schedule_id": scheduleID,
		"users":       len(req.UserIDs),
		"area_id":     req.AreaID,
		"role_id":     req.RoleID,
	})
	logEntry.Info("Adding participants")

	snapshot, err := h.scheduleUseCase.AddParticipants(c.Request().Context(), scheduleID, req.UserIDs, req.AreaID, req.RoleID)
	if err != nil {
		logEntry.WithError(err).Error("Failed to add participants")
		return h.respondError(c, err)
	}

	logEntry.Info("Participants added successfully")
	return c.JSON(http.StatusOK, toSnapshotView(snapshot))
}

// DeleteParticipants обрабатывает удаление назначений
func (h *ScheduleHandler) DeleteParticipants(c echo.Context) error {
	var req RemoveParticipantsRequest
	if err := c.Bind(&req); err != nil {
		h.logger.WithError(err).Warn("Failed to bind remove participants request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	scheduleID := c.Param("id")
	logEntry := h.logRequest(c, "remove_participants").WithFields(logrus.Fields{
		"schedule_id": scheduleID,
		"assignments": len(req.AssignmentIDs),
	})
	logEntry.Info("Removing participants")

	snapshot, err := h.scheduleUseCase.RemoveParticipants(c.Request().Context(), scheduleID, req.AssignmentIDs)
	if err != nil {
		logEntry.WithError(err).Error("Failed to remove participants")
		return h.respondError(c, err)
	}

	logEntry.Info("Participants removed successfully")
	return c.JSON(http.StatusOK, toSnapshotView(snapshot))
}

// PostPublish обрабатывает публикацию черновика (DRAFT → ACTIVE)
func (h *ScheduleHandler) PostPublish(c echo.Context) error {
	scheduleID := c.Param("id")
	logEntry := h.logRequest(c, "publish").WithField("schedule_id", scheduleID)
	logEntry.Info("Publishing schedule")

	schedule, err := h.scheduleUseCase.Publish(c.Request().Context(), scheduleID)
	if err != nil {
		logEntry.WithError(err).Error("Failed to publish schedule")
		return h.respondError(c, err)
	}

	logEntry.Info("Schedule published successfully")
	return c.JSON(http.StatusOK, map[string]interface{}{
		"schedule": toScheduleView(schedule),
	})
}

// PostComplete обрабатывает завершение расписания (ACTIVE → COMPLETE)
func (h *ScheduleHandler) PostComplete(c echo.Context) error {
	scheduleID := c.Param("id")
	logEntry := h.logRequest(c, "complete").WithField("schedule_id", scheduleID)
	logEntry.Info("Completing schedule")

	schedule, err := h.scheduleUseCase.Complete(c.Request().Context(), scheduleID)
	if err != nil {
		logEntry.WithError(err).Error("Failed to complete schedule")
		return h.respondError(c, err)
	}

	logEntry.Info("Schedule completed successfully")
	return c.JSON(http.StatusOK, map[string]interface{}{
		"schedule": toScheduleView(schedule),
	})
}

// DeleteSchedule обрабатывает мягкое удаление расписания
func (h *ScheduleHandler) DeleteSchedule(c echo.Context) error {
	scheduleID := c.Param("id")
	logEntry := h.logRequest(c, "delete_schedule").WithField("schedule_id", scheduleID)
	logEntry.Info("Deleting schedule")

	if err := h.scheduleUseCase.Delete(c.Request().Context(), scheduleID); err != nil {
		logEntry.WithError(err).Error("Failed to delete schedule")
		return h.respondError(c, err)
	}

	logEntry.Info("Schedule deleted successfully")
	return c.NoContent(http.StatusNoContent)
}

// PostConfirm обрабатывает подтверждение присутствия участника
func (h *ScheduleHandler) PostConfirm(c echo.Context) error {
	var req AssignmentRef
	if err := c.Bind(&req); err != nil {
		h.logger.WithError(err).Warn("Failed to bind confirm request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	scheduleID := c.Param("id")
	logEntry := h.logRequest(c, "confirm_presence").WithFields(logrus.Fields{
		"schedule_id":   scheduleID,
		"assignment_id": req.AssignmentID,
	})
	logEntry.Info("Confirming presence")

	assignment, err := h.scheduleUseCase.ConfirmPresence(c.Request().Context(), scheduleID, req.AssignmentID)
	if err != nil {
		logEntry.WithError(err).Error("Failed to confirm presence")
		return h.respondError(c, err)
	}

	logEntry.Info("Presence confirmed successfully")
	return c.JSON(http.StatusOK, map[string]interface{}{
		"assignment": toAssignmentView(assignment),
	})
}
