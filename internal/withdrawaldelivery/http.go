// Package withdrawaldelivery manages delivery layer of withdrawal requests.
package withdrawaldelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/brixium/brixium-bank/internal/domain"
	"github.com/brixium/brixium-bank/internal/middleware"
	"github.com/brixium/brixium-bank/internal/withdrawalservice"
	"github.com/brixium/brixium-bank/pkg/errorspkg"
	"github.com/brixium/brixium-bank/pkg/tokenpkg"
	"github.com/brixium/brixium-bank/pkg/web"
)

// Service provides service layer interface needed by withdrawal delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package withdrawaldelivery
type Service interface {
	Request(ctx context.Context, arg withdrawalservice.RequestParams) (domain.WithdrawalRequest, error)
	Process(ctx context.Context, requestID string, approve bool, adminID string) (domain.WithdrawalRequest, error)
	ListForAccount(ctx context.Context, accountID string) ([]domain.WithdrawalRequest, error)
	List(ctx context.Context) ([]domain.WithdrawalRequest, error)
}

// Handler facilitates withdrawal delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns withdrawal handler.
func NewHandler(ws Service) Handler {
	return Handler{service: ws}
}

func bindErrMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return web.GetErrorMsg(ve)
	}

	return "invalid request body"
}

type createRequest struct {
	Amount   string `json:"amount" binding:"required"`
	Currency string `json:"currency" binding:"required,currency"`
	Address  string `json:"address" binding:"required"`
	Network  string `json:"network" binding:"omitempty"`
}

type requestData struct {
	WithdrawalRequest domain.WithdrawalRequest `json:"withdrawal_request"`
}

// Create handles http request to file a withdrawal request.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrMsg(err)})

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	created, err := h.service.Request(ctx, withdrawalservice.RequestParams{
		AccountID: authPayload.AccountID,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Address:   req.Address,
		Network:   req.Network,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			gctx.JSON(http.StatusNotFound, web.Error(err))
		case errors.Is(err, domain.ErrInvalidAmount),
			errors.Is(err, domain.ErrCurrencyMismatch),
			errors.Is(err, domain.ErrInsufficientFunds):
			gctx.JSON(http.StatusBadRequest, web.Error(err))
		case errors.Is(err, domain.ErrMaintenanceMode):
			gctx.JSON(http.StatusServiceUnavailable, web.Error(err))
		case errors.Is(err, domain.ErrKYCRequired):
			gctx.JSON(http.StatusForbidden, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: requestData{created}})
}

type requestsData struct {
	WithdrawalRequests []domain.WithdrawalRequest `json:"withdrawal_requests"`
}

// List handles http request to list the signed-in account's withdrawal
// requests.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	requests, err := h.service.ListForAccount(ctx, authPayload.AccountID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: requestsData{requests}})
}

// ListAll handles http request to list every withdrawal request for admins.
func (h *Handler) ListAll(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	requests, err := h.service.List(ctx)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: requestsData{requests}})
}

type processURI struct {
	ID string `uri:"id" binding:"required"`
}

type processRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

// Process handles http request to settle a pending withdrawal on behalf
// of an admin.
func (h *Handler) Process(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var uri processURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrMsg(err)})

		return
	}

	var req processRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrMsg(err)})

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	processed, err := h.service.Process(ctx, uri.ID, *req.Approve, authPayload.AccountID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientFunds):
			// Auto-rejected at settlement time; the committed request is
			// returned so the admin sees the final state.
			gctx.JSON(http.StatusConflict, web.Response{
				Data:  requestData{processed},
				Error: err.Error(),
			})
		case errors.Is(err, domain.ErrRequestNotFound):
			gctx.JSON(http.StatusNotFound, web.Error(err))
		case errors.Is(err, domain.ErrAlreadyProcessed):
			gctx.JSON(http.StatusConflict, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: requestData{processed}})
}
