// Package kycdelivery manages delivery layer of KYC verification.
package kycdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/brixium/brixium-bank/internal/domain"
	"github.com/brixium/brixium-bank/internal/middleware"
	"github.com/brixium/brixium-bank/pkg/errorspkg"
	"github.com/brixium/brixium-bank/pkg/tokenpkg"
	"github.com/brixium/brixium-bank/pkg/web"
)

// Service provides service layer interface needed by KYC delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package kycdelivery
type Service interface {
	Submit(ctx context.Context, accountID string, documentURLs []string) (domain.KYCRequest, error)
	Review(ctx context.Context, requestID string, approve bool, adminID string) (domain.KYCRequest, error)
	GetForAccount(ctx context.Context, accountID string) (domain.KYCRequest, error)
	List(ctx context.Context) ([]domain.KYCRequest, error)
}

// Handler facilitates KYC delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns KYC handler.
func NewHandler(ks Service) Handler {
	return Handler{service: ks}
}

func bindErrMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return web.GetErrorMsg(ve)
	}

	return "invalid request body"
}

type submitRequest struct {
	DocumentURLs []string `json:"document_urls" binding:"required,min=1,dive,required"`
}

type requestData struct {
	KYCRequest domain.KYCRequest `json:"kyc_request"`
}

// Submit handles http request to file a verification request.
func (h *Handler) Submit(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req submitRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrMsg(err)})

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	submitted, err := h.service.Submit(ctx, authPayload.AccountID, req.DocumentURLs)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: requestData{submitted}})
}

// Get handles http request to read the signed-in account's verification
// request.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	req, err := h.service.GetForAccount(ctx, authPayload.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrRequestNotFound) {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: requestData{req}})
}

type requestsData struct {
	KYCRequests []domain.KYCRequest `json:"kyc_requests"`
}

// List handles http request to list every verification request for admins.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	requests, err := h.service.List(ctx)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: requestsData{requests}})
}

type reviewURI struct {
	ID string `uri:"id" binding:"required"`
}

type reviewRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

// Review handles http request to decide a pending verification on
// behalf of an admin.
func (h *Handler) Review(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var uri reviewURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrMsg(err)})

		return
	}

	var req reviewRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrMsg(err)})

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	reviewed, err := h.service.Review(ctx, uri.ID, *req.Approve, authPayload.AccountID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRequestNotFound):
			gctx.JSON(http.StatusNotFound, web.Error(err))
		case errors.Is(err, domain.ErrAlreadyProcessed):
			gctx.JSON(http.StatusConflict, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: requestData{reviewed}})
}
