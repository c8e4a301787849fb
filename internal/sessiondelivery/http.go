// Package sessiondelivery manages delivery layer of registration and sign-in.
package sessiondelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/brixium/brixium-bank/internal/accountservice"
	"github.com/brixium/brixium-bank/internal/domain"
	"github.com/brixium/brixium-bank/pkg/errorspkg"
	"github.com/brixium/brixium-bank/pkg/tokenpkg"
	"github.com/brixium/brixium-bank/pkg/web"
)

// AccountService provides service layer interface needed by session delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package sessiondelivery
type AccountService interface {
	Create(ctx context.Context, arg accountservice.CreateParams) (domain.Account, error)
	GetProfile(ctx context.Context, id string) (domain.AccountProfile, error)
}

// SessionService verifies credentials and tracks the current session.
type SessionService interface {
	LoginUser(ctx context.Context, email, password string) (domain.Account, error)
	LoginAdmin(ctx context.Context, email, password string) (domain.Admin, error)
	Logout(ctx context.Context) error
}

// Handler facilitates session delivery layer logic.
type Handler struct {
	accounts       AccountService
	sessions       SessionService
	tokenMaker     tokenpkg.Maker
	accessDuration time.Duration
}

// NewHandler returns session handler.
func NewHandler(as AccountService, ss SessionService, tm tokenpkg.Maker, accessDuration time.Duration) Handler {
	return Handler{
		accounts:       as,
		sessions:       ss,
		tokenMaker:     tm,
		accessDuration: accessDuration,
	}
}

func bindErrMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return web.GetErrorMsg(ve)
	}

	return "invalid request body"
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Currency string `json:"currency" binding:"omitempty,currency"`
	Phone    string `json:"phone" binding:"omitempty"`
}

type profileData struct {
	Account domain.AccountProfile `json:"account"`
}

// Register handles http request to open an account and sign it in.
func (h *Handler) Register(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req registerRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrMsg(err)})

		return
	}

	account, err := h.accounts.Create(ctx, accountservice.CreateParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Currency: req.Currency,
		Phone:    req.Phone,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	if _, err = h.sessions.LoginUser(ctx, req.Email, req.Password); err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	accessToken, payload, err := h.tokenMaker.CreateToken(account.ID, false, h.accessDuration)
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	profile, err := h.accounts.GetProfile(ctx, account.ID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: payload.ExpiredAt,
		Data:                 profileData{profile},
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginUser handles http request to sign in an account.
func (h *Handler) LoginUser(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req loginRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrMsg(err)})

		return
	}

	account, err := h.sessions.LoginUser(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			gctx.JSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	accessToken, payload, err := h.tokenMaker.CreateToken(account.ID, false, h.accessDuration)
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	profile, err := h.accounts.GetProfile(ctx, account.ID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: payload.ExpiredAt,
		Data:                 profileData{profile},
	})
}

type adminData struct {
	Admin struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"admin"`
}

// LoginAdmin handles http request to sign in an administrator.
func (h *Handler) LoginAdmin(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req loginRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrMsg(err)})

		return
	}

	admin, err := h.sessions.LoginAdmin(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			gctx.JSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	accessToken, payload, err := h.tokenMaker.CreateToken(admin.ID, true, h.accessDuration)
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	var data adminData
	data.Admin.ID = admin.ID
	data.Admin.Email = admin.Email

	gctx.JSON(http.StatusOK, web.Response{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: payload.ExpiredAt,
		Data:                 data,
	})
}

// Logout handles http request to clear the current session.
func (h *Handler) Logout(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	if err := h.sessions.Logout(ctx); err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{})
}
