// Package ledgerdelivery manages delivery layer of money movement.
package ledgerdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/brixium/brixium-bank/internal/domain"
	"github.com/brixium/brixium-bank/internal/middleware"
	"github.com/brixium/brixium-bank/pkg/errorspkg"
	"github.com/brixium/brixium-bank/pkg/tokenpkg"
	"github.com/brixium/brixium-bank/pkg/web"
)

// Service provides service layer interface needed by ledger delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package ledgerdelivery
type Service interface {
	Transfer(ctx context.Context, senderID, recipientEmail, amount, currency, pin string) (domain.TransferTxResult, error)
	Fund(ctx context.Context, accountID, amount, currency string) (domain.Account, error)
	Deduct(ctx context.Context, accountID, amount, currency string) (domain.Account, error)
	GetExchangeRate(from, to string) decimal.Decimal
	ChangeAccountCurrency(ctx context.Context, accountID, newCurrency string) (domain.Account, error)
	PerformExchange(ctx context.Context, accountID, fromCurrency, toCurrency, fromAmount string) (domain.Account, error)
	ListTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error)
}

// Handler facilitates ledger delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns ledger handler.
func NewHandler(ls Service) Handler {
	return Handler{service: ls}
}

func bindErrMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return web.GetErrorMsg(ve)
	}

	return "invalid request"
}

type transferRequest struct {
	RecipientEmail string `json:"recipient_email" binding:"required,email"`
	Amount         string `json:"amount" binding:"required"`
	Currency       string `json:"currency" binding:"omitempty,currency"`
	PIN            string `json:"pin" binding:"omitempty,len=4,numeric"`
}

type transferData struct {
	Transfer domain.TransferTxResult `json:"transfer"`
}

// CreateTransfer handles http request to transfer money to another account.
func (h *Handler) CreateTransfer(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req transferRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrMsg(err)})

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	result, err := h.service.Transfer(ctx, authPayload.AccountID, req.RecipientEmail, req.Amount, req.Currency, req.PIN)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecipientNotFound):
			gctx.JSON(http.StatusNotFound, web.Error(err))
		case errors.Is(err, domain.ErrSelfTransfer),
			errors.Is(err, domain.ErrInvalidAmount),
			errors.Is(err, domain.ErrCurrencyMismatch),
			errors.Is(err, domain.ErrInsufficientFunds):
			gctx.JSON(http.StatusBadRequest, web.Error(err))
		case errors.Is(err, domain.ErrInvalidPIN):
			gctx.JSON(http.StatusUnauthorized, web.Error(err))
		case errors.Is(err, domain.ErrKYCRequired):
			gctx.JSON(http.StatusForbidden, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transferData{result}})
}

type transactionsData struct {
	Transactions []domain.Transaction `json:"transactions"`
}

// ListTransactions handles http request to list the account's history.
func (h *Handler) ListTransactions(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	transactions, err := h.service.ListTransactions(ctx, authPayload.AccountID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transactionsData{transactions}})
}

type rateRequest struct {
	From string `form:"from" binding:"required,currency"`
	To   string `form:"to" binding:"required,currency"`
}

type rateData struct {
	From string          `json:"from"`
	To   string          `json:"to"`
	Rate decimal.Decimal `json:"rate"`
}

// GetRate handles http request to read a directed exchange rate.
func (h *Handler) GetRate(gctx *gin.Context) {
	l := zerolog.Ctx(gctx)

	var req rateRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrMsg(err)})

		return
	}

	rate := h.service.GetExchangeRate(req.From, req.To)
	if !rate.IsPositive() {
		gctx.JSON(http.StatusNotFound, web.Error(domain.ErrRateUnavailable))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: rateData{From: req.From, To: req.To, Rate: rate}})
}

type exchangeRequest struct {
	FromCurrency string `json:"from_currency" binding:"required,currency"`
	ToCurrency   string `json:"to_currency" binding:"required,currency"`
	Amount       string `json:"amount" binding:"required"`
}

type accountData struct {
	Account domain.Account `json:"account"`
}

// Exchange handles http request to exchange the account balance into
// another currency.
func (h *Handler) Exchange(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req exchangeRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrMsg(err)})

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	account, err := h.service.PerformExchange(ctx, authPayload.AccountID, req.FromCurrency, req.ToCurrency, req.Amount)
	if err != nil {
		writeExchangeError(gctx, err)
		return
	}

	account.Password = ""
	account.TransferPIN = ""

	gctx.JSON(http.StatusOK, web.Response{Data: accountData{account}})
}

type changeCurrencyRequest struct {
	Currency string `json:"currency" binding:"required,currency"`
}

// ChangeCurrency handles http request to switch the account currency,
// converting the whole balance.
func (h *Handler) ChangeCurrency(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req changeCurrencyRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrMsg(err)})

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	account, err := h.service.ChangeAccountCurrency(ctx, authPayload.AccountID, req.Currency)
	if err != nil {
		writeExchangeError(gctx, err)
		return
	}

	account.Password = ""
	account.TransferPIN = ""

	gctx.JSON(http.StatusOK, web.Response{Data: accountData{account}})
}

func writeExchangeError(gctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case errors.Is(err, domain.ErrCurrencyMismatch),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInsufficientFunds):
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	case errors.Is(err, domain.ErrRateUnavailable):
		gctx.JSON(http.StatusNotFound, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

type adjustRequest struct {
	Amount   string `json:"amount" binding:"required"`
	Currency string `json:"currency" binding:"required,currency"`
}

type adjustURI struct {
	ID string `uri:"id" binding:"required"`
}

// Fund handles http request to credit a user's balance on behalf of an admin.
func (h *Handler) Fund(gctx *gin.Context) {
	h.adjust(gctx, h.service.Fund)
}

// Deduct handles http request to debit a user's balance on behalf of an admin.
func (h *Handler) Deduct(gctx *gin.Context) {
	h.adjust(gctx, h.service.Deduct)
}

func (h *Handler) adjust(gctx *gin.Context, fn func(ctx context.Context, accountID, amount, currency string) (domain.Account, error)) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var uri adjustURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrMsg(err)})

		return
	}

	var req adjustRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrMsg(err)})

		return
	}

	account, err := fn(ctx, uri.ID, req.Amount, req.Currency)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			gctx.JSON(http.StatusNotFound, web.Error(err))
		case errors.Is(err, domain.ErrInvalidAmount),
			errors.Is(err, domain.ErrCurrencyMismatch),
			errors.Is(err, domain.ErrInsufficientFunds):
			gctx.JSON(http.StatusBadRequest, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	account.Password = ""
	account.TransferPIN = ""

	gctx.JSON(http.StatusOK, web.Response{Data: accountData{account}})
}
