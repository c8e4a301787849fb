// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

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

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	GetProfile(ctx context.Context, id string) (domain.AccountProfile, error)
	SetTransferPIN(ctx context.Context, id, pin string) error
	List(ctx context.Context) ([]domain.Account, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) Handler {
	return Handler{service: as}
}

func bindErrMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return web.GetErrorMsg(ve)
	}

	return "invalid request body"
}

type profileData struct {
	Account domain.AccountProfile `json:"account"`
}

// Get handles http request to get the signed-in account's profile.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	profile, err := h.service.GetProfile(ctx, authPayload.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: profileData{profile}})
}

type setPINRequest struct {
	PIN string `json:"pin" binding:"required,len=4,numeric"`
}

// SetPIN handles http request to set the transfer PIN.
func (h *Handler) SetPIN(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req setPINRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrMsg(err)})

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	if err := h.service.SetTransferPIN(ctx, authPayload.AccountID, req.PIN); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	profile, err := h.service.GetProfile(ctx, authPayload.AccountID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: profileData{profile}})
}

type usersData struct {
	Users []domain.AccountProfile `json:"users"`
}

// List handles http request to list all accounts for admins.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	accounts, err := h.service.List(ctx)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	users := make([]domain.AccountProfile, 0, len(accounts))
	for _, a := range accounts {
		users = append(users, domain.AccountProfile{
			ID:            a.ID,
			Name:          a.Name,
			Email:         a.Email,
			Balance:       a.Balance,
			Currency:      a.Currency,
			IsVerifiedKYC: a.IsVerifiedKYC,
			Phone:         a.Phone,
			CreatedAt:     a.CreatedAt,
			AccountNumber: a.AccountNumber,
			HasPIN:        a.TransferPIN != "",
		})
	}

	gctx.JSON(http.StatusOK, web.Response{Data: usersData{users}})
}
