// Package settingsdelivery manages delivery layer of application settings.
package settingsdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/brixium/brixium-bank/internal/domain"
	"github.com/brixium/brixium-bank/pkg/errorspkg"
	"github.com/brixium/brixium-bank/pkg/web"
)

// Service provides service layer interface needed by settings delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package settingsdelivery
type Service interface {
	Get(ctx context.Context) (domain.AppSettings, error)
	Update(ctx context.Context, patch domain.SettingsPatch) (domain.AppSettings, error)
}

// Handler facilitates settings delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns settings handler.
func NewHandler(ss Service) Handler {
	return Handler{service: ss}
}

type settingsData struct {
	Settings domain.AppSettings `json:"settings"`
}

// Get handles http request to read the application settings.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	settings, err := h.service.Get(ctx)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: settingsData{settings}})
}

// Update handles http request to partially update the application
// settings. Absent fields keep their current values.
func (h *Handler) Update(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var patch domain.SettingsPatch
	if err := gctx.ShouldBindJSON(&patch); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: "invalid settings patch"})

		return
	}

	settings, err := h.service.Update(ctx, patch)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: settingsData{settings}})
}
