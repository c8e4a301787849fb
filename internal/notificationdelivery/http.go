// Package notificationdelivery manages delivery layer of in-app notifications.
package notificationdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/brixium/brixium-bank/internal/domain"
	"github.com/brixium/brixium-bank/internal/middleware"
	"github.com/brixium/brixium-bank/pkg/errorspkg"
	"github.com/brixium/brixium-bank/pkg/tokenpkg"
	"github.com/brixium/brixium-bank/pkg/web"
)

// Service provides service layer interface needed by notification delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package notificationdelivery
type Service interface {
	MarkRead(ctx context.Context, id string) error
	ListForAccount(ctx context.Context, accountID string) ([]domain.AppNotification, error)
	ListForAdmins(ctx context.Context) ([]domain.AppNotification, error)
}

// Handler facilitates notification delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns notification handler.
func NewHandler(ns Service) Handler {
	return Handler{service: ns}
}

type notificationsData struct {
	Notifications []domain.AppNotification `json:"notifications"`
}

// List handles http request to list the signed-in account's notifications.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	notifications, err := h.service.ListForAccount(ctx, authPayload.AccountID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: notificationsData{notifications}})
}

// ListForAdmins handles http request to list admin broadcasts.
func (h *Handler) ListForAdmins(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	notifications, err := h.service.ListForAdmins(ctx)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: notificationsData{notifications}})
}

type markReadURI struct {
	ID string `uri:"id" binding:"required"`
}

// MarkRead handles http request to mark one notification as read.
func (h *Handler) MarkRead(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var uri markReadURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: "invalid notification id"})

		return
	}

	if err := h.service.MarkRead(ctx, uri.ID); err != nil {
		if errors.Is(err, domain.ErrRequestNotFound) {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{})
}
