// Package transactiondelivery manages delivery layer of ledger operations.
package transactiondelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/voltsbank/volts-bank/internal/domain"
	"github.com/voltsbank/volts-bank/internal/middleware"
	"github.com/voltsbank/volts-bank/pkg/errorspkg"
	"github.com/voltsbank/volts-bank/pkg/moneypkg"
	"github.com/voltsbank/volts-bank/pkg/tokenpkg"
	"github.com/voltsbank/volts-bank/pkg/web"
)

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	Deposit(ctx context.Context, email, number string, amount decimal.Decimal, description string) (domain.LedgerResult, error)
	Withdraw(ctx context.Context, email, number string, amount decimal.Decimal, description string) (domain.LedgerResult, error)
	PayInterest(ctx context.Context, email, number string) (domain.LedgerResult, error)
	List(ctx context.Context, email, number string, limit int32) ([]domain.Transaction, error)
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transaction handler.
func NewHandler(ts Service) Handler {
	return Handler{service: ts}
}

type data struct {
	Account     domain.Account     `json:"account"`
	Transaction domain.Transaction `json:"transaction"`
}

type response struct {
	Data data `json:"data,omitempty"`
}

func bindErrorMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		field := ve[0]
		return field.Field() + web.GetErrorMsg(field)
	}

	return "invalid request"
}

func writeLedgerError(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrAccountNotFound, domain.ErrCustomerNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(err))
		return
	case domain.ErrAccountOwnerMismatch:
		gctx.JSON(http.StatusUnauthorized, web.Error(err))
		return
	case domain.ErrNonPositiveAmount:
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	case domain.ErrWithdrawalNotAllowed, domain.ErrNotInterestBearing, domain.ErrInsufficientBalance:
		gctx.JSON(http.StatusUnprocessableEntity, web.Error(err))
		return
	case domain.ErrLedgerInconsistency:
		// Balance and journal may be out of sync: distinct from a declined
		// operation so the account can be flagged for reconciliation.
		gctx.JSON(http.StatusInternalServerError, web.Error(err))
		return
	}

	gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
}

type uriRequest struct {
	Number string `uri:"number" binding:"required"`
}

type amountRequest struct {
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description"`
}

// Deposit handles http request to deposit funds into an account.
func (h *Handler) Deposit(gctx *gin.Context) {
	h.applyAmountOperation(gctx, h.service.Deposit)
}

// Withdraw handles http request to withdraw funds from an account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	h.applyAmountOperation(gctx, h.service.Withdraw)
}

type amountOperation func(ctx context.Context, email, number string, amount decimal.Decimal, description string) (domain.LedgerResult, error)

func (h *Handler) applyAmountOperation(gctx *gin.Context, op amountOperation) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	var req amountRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	amount, err := moneypkg.Parse(req.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	result, err := op(ctx, authPayload.Email, uri.Number, amount, req.Description)
	if err != nil {
		writeLedgerError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{
		Account:     result.Account,
		Transaction: result.Transaction,
	}})
}

// PayInterest handles http request to pay monthly interest into an account.
func (h *Handler) PayInterest(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	result, err := h.service.PayInterest(ctx, authPayload.Email, uri.Number)
	if err != nil {
		writeLedgerError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{
		Account:     result.Account,
		Transaction: result.Transaction,
	}})
}

type listRequest struct {
	Limit int32 `form:"limit" binding:"omitempty,min=1,max=100"`
}

type listData struct {
	Transactions []domain.Transaction `json:"transactions"`
}

type listResponse struct {
	Data listData `json:"data,omitempty"`
}

// List handles http request to list an account's transactions, newest first.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	transactions, err := h.service.List(ctx, authPayload.Email, uri.Number, req.Limit)
	if err != nil {
		writeLedgerError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, listResponse{Data: listData{Transactions: transactions}})
}
