package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fleetgo/maintenance/api/transport"
	"github.com/fleetgo/maintenance/domain"
	"github.com/fleetgo/maintenance/pkg/httpcontext"
	"github.com/fleetgo/maintenance/repository"
	completionUC "github.com/fleetgo/maintenance/usecase/completion"
	fleetUC "github.com/fleetgo/maintenance/usecase/fleet"
)

type TaskHandler struct {
	baseHandler
	fleet      *fleetUC.UseCase
	completion *completionUC.UseCase
}

func NewTaskHandler(fleet *fleetUC.UseCase, completion *completionUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		fleet:       fleet,
		completion:  completion,
	}
}

// @Summary List tasks
// @Tags tasks
// @Router /api/v1/tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	filter := repository.TaskFilter{
		Status:     string(ctx.QueryArgs().Peek("status")),
		Depot:      string(ctx.QueryArgs().Peek("depot")),
		Unassigned: ctx.QueryArgs().GetBool("unassigned"),
		Limit:      parseInt(string(ctx.QueryArgs().Peek("limit")), 100),
		Offset:     parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.fleet.Tasks(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, tasks)
}

// @Summary Task detail with parts and photos
// @Tags tasks
// @Router /api/v1/tasks/{id} [get]
func (h *TaskHandler) GetTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	detail, err := h.fleet.TaskDetail(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, detail)
}

// @Summary Complete a task
// @Tags tasks
// @Router /api/v1/tasks/{id}/complete [post]
func (h *TaskHandler) CompleteTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	req, err := parseCompletion(ctx)
	if err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid completion form"))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.completion.CompleteTask(stdCtx, id, req)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

func (h *TaskHandler) taskID(ctx *fasthttp.RequestCtx) (int64, bool) {
	raw, _ := ctx.UserValue("id").(string)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid task id"))
		return 0, false
	}
	return id, true
}

// parseCompletion reads the completion submission. Multipart carries
// parts, signature, status and the before/after photo files; a plain
// urlencoded form is accepted too, without photos.
func parseCompletion(ctx *fasthttp.RequestCtx) (completionUC.Request, error) {
	req := completionUC.Request{
		Photos: make(map[string]completionUC.PhotoUpload),
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		// Not multipart: fall back to urlencoded fields.
		args := ctx.PostArgs()
		req.Signature = string(args.Peek("signature"))
		req.Status = string(args.Peek("status"))
		for _, part := range args.PeekMulti("parts") {
			name := string(part)
			req.Parts = append(req.Parts, completionUC.PartUsage{
				Name: name,
				Qty:  string(args.Peek(qtyField(name))),
			})
		}
		return req, nil
	}

	req.Signature = formValue(form, "signature")
	req.Status = formValue(form, "status")
	for _, name := range form.Value["parts"] {
		req.Parts = append(req.Parts, completionUC.PartUsage{
			Name: name,
			Qty:  formValue(form, qtyField(name)),
		})
	}

	for _, kind := range []string{domain.PhotoKindBefore, domain.PhotoKindAfter} {
		files := form.File[kind]
		if len(files) == 0 {
			continue
		}
		upload, err := readUpload(files[0])
		if err != nil {
			return req, err
		}
		req.Photos[kind] = upload
	}

	return req, nil
}

func qtyField(part string) string {
	return "qty_" + strings.ReplaceAll(part, " ", "_")
}

func formValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

func readUpload(fh *multipart.FileHeader) (completionUC.PhotoUpload, error) {
	file, err := fh.Open()
	if err != nil {
		return completionUC.PhotoUpload{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return completionUC.PhotoUpload{}, err
	}
	return completionUC.PhotoUpload{Filename: fh.Filename, Data: data}, nil
}

func parseInt(value string, fallback int) int {
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return fallback
}
