package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fleetgo/maintenance/domain"
	"github.com/fleetgo/maintenance/internal/services/scheduler"
	"github.com/fleetgo/maintenance/pkg/httpcontext"
)

type ScheduleHandler struct {
	baseHandler
	service *scheduler.Service
}

func NewScheduleHandler(service *scheduler.Service, adapter *httpcontext.Adapter, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		baseHandler: newBaseHandler(adapter, logger),
		service:     service,
	}
}

// @Summary Generate due tasks
// @Tags schedule
// @Router /api/v1/schedule/generate [post]
func (h *ScheduleHandler) Generate(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	report, err := h.service.Generate(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, report)
}

// @Summary Auto-assign unassigned tasks
// @Tags schedule
// @Router /api/v1/schedule/assign [post]
func (h *ScheduleHandler) Assign(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	report, err := h.service.Assign(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, report)
}

// @Summary Run the full scheduling batch
// @Tags schedule
// @Router /api/v1/schedule/run [post]
func (h *ScheduleHandler) Run(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	report, err := h.service.RunOnce(stdCtx, domain.TriggerManual)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, report)
}
