package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"roster-service/internal/auth"
	"roster-service/internal/domain"
)

// APIHandler объединяет обработчики публичного контракта сервиса.
type APIHandler struct {
	*ScheduleHandler
	*SwapHandler
}

// NewAPIHandler создает новый экземпляр APIHandler.
func NewAPIHandler(
	scheduleUseCase domain.ScheduleUseCase,
	swapUseCase domain.SwapUseCase,
	logger *logrus.Logger,
) *APIHandler {
	return &APIHandler{
		ScheduleHandler: NewScheduleHandler(scheduleUseCase, logger),
		SwapHandler:     NewSwapHandler(swapUseCase, logger),
	}
}

// RegisterRoutes регистрирует маршруты. Чтение срезов доступно любому
// аутентифицированному вызывающему; мутации жизненного цикла и состава
// требуют способности roster:manage.
func RegisterRoutes(e *echo.Echo, h *APIHandler, jwtManager *auth.JWTManager) {
	authenticated := e.Group("/schedules", auth.RequireAuth(jwtManager))
	manage := auth.RequireCapability(auth.CapabilityManage)

	authenticated.GET("", h.GetSchedules)
	authenticated.GET("/:id", h.GetSchedule)

	authenticated.POST("", h.PostSchedule, manage)
	authenticated.POST("/:id/generate", h.PostGenerate, manage)
	authenticated.POST("/:id/regenerate", h.PostRegenerate, manage)
	authenticated.POST("/:id/participants", h.PostParticipants, manage)
	authenticated.DELETE("/:id/participants", h.DeleteParticipants, manage)
	authenticated.POST("/:id/publish", h.PostPublish, manage)
	authenticated.POST("/:id/complete", h.PostComplete, manage)
	authenticated.DELETE("/:id", h.DeleteSchedule, manage)

	authenticated.POST("/:id/confirm", h.PostConfirm)
	authenticated.POST("/:id/swap", h.PostSwap)
	authenticated.GET("/:id/swap/candidates", h.GetSwapCandidates)
	authenticated.POST("/:id/swap/resolve", h.PostSwapResolve)
}
