package handler

import (
	"errors"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fleetgo/maintenance/api/transport"
	"github.com/fleetgo/maintenance/domain"
	"github.com/fleetgo/maintenance/internal/infrastructure/photostore"
	"github.com/fleetgo/maintenance/pkg/httpcontext"
)

type PhotoHandler struct {
	baseHandler
	store *photostore.Store
}

func NewPhotoHandler(store *photostore.Store, adapter *httpcontext.Adapter, logger *zap.Logger) *PhotoHandler {
	return &PhotoHandler{
		baseHandler: newBaseHandler(adapter, logger),
		store:       store,
	}
}

// @Summary Serve a stored evidence photo
// @Tags photos
// @Router /uploads/{name} [get]
func (h *PhotoHandler) Serve(ctx *fasthttp.RequestCtx) {
	name, _ := ctx.UserValue("name").(string)
	if name == "" || !domain.AllowedPhotoFile(name) {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid photo name"))
		return
	}

	data, err := h.store.Get(name)
	if err != nil {
		if errors.Is(err, photostore.ErrNotFound) {
			h.respondJSON(ctx, http.StatusNotFound, transport.NewError(string(domain.ErrCodeNotFound), "photo not found"))
			return
		}
		h.respondError(ctx, err)
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	ctx.Response.Header.SetContentType(contentType)
	ctx.SetStatusCode(http.StatusOK)
	ctx.SetBody(data)
}
