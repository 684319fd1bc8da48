// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

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

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Open(ctx context.Context, email string, arg domain.OpenAccountParams) (domain.LedgerResult, error)
	Get(ctx context.Context, email, number string) (domain.Account, error)
	List(ctx context.Context, email string) ([]domain.Account, decimal.Decimal, error)
	Delete(ctx context.Context, email, number string) error
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) Handler {
	return Handler{service: as}
}

// AccountResponse decorates an account with the capability tags and the
// formatted summary the presentation layer keys off.
type AccountResponse struct {
	domain.Account
	IsWithdrawable    bool   `json:"is_withdrawable"`
	IsInterestBearing bool   `json:"is_interest_bearing"`
	InterestRate      string `json:"interest_rate,omitempty"`
	Details           string `json:"details"`
}

// NewAccountResponse builds the delivery representation of an account.
func NewAccountResponse(a domain.Account) AccountResponse {
	res := AccountResponse{
		Account:           a,
		IsWithdrawable:    a.Type.SupportsWithdrawal(),
		IsInterestBearing: false,
		Details:           a.Details(),
	}

	if rate, ok := a.Type.InterestRate(); ok {
		res.IsInterestBearing = true
		res.InterestRate = moneypkg.FormatRate(rate)
	}

	return res
}

type data struct {
	Account AccountResponse `json:"account"`
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

type openRequest struct {
	Type            string `json:"type" binding:"required,accounttype"`
	Branch          string `json:"branch" binding:"required"`
	InitialDeposit  string `json:"initial_deposit"`
	EmployerName    string `json:"employer_name"`
	EmployerAddress string `json:"employer_address"`
}

type openData struct {
	Account            AccountResponse     `json:"account"`
	OpeningTransaction *domain.Transaction `json:"opening_transaction,omitempty"`
}

type openResponse struct {
	Data openData `json:"data,omitempty"`
}

// Open handles http request to open an account.
func (h *Handler) Open(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req openRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	initialDeposit := decimal.Zero

	if req.InitialDeposit != "" {
		var err error

		initialDeposit, err = moneypkg.Parse(req.InitialDeposit)
		if err != nil {
			l.Info().Err(err).Send()
			gctx.JSON(http.StatusBadRequest, web.Error(err))

			return
		}
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	arg := domain.OpenAccountParams{
		Type:            domain.AccountType(req.Type),
		Branch:          req.Branch,
		InitialDeposit:  initialDeposit,
		EmployerName:    req.EmployerName,
		EmployerAddress: req.EmployerAddress,
	}

	result, err := h.service.Open(ctx, authPayload.Email, arg)
	if err != nil {
		switch err {
		case domain.ErrCustomerNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrInvalidAccountType, domain.ErrNonPositiveAmount:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrBelowMinimumOpeningBalance, domain.ErrEmployerNameRequired:
			gctx.JSON(http.StatusUnprocessableEntity, web.Error(err))
			return
		case domain.ErrLedgerInconsistency:
			gctx.JSON(http.StatusInternalServerError, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := openData{Account: NewAccountResponse(result.Account)}
	if result.HasEntry() {
		tx := result.Transaction
		res.OpeningTransaction = &tx
	}

	gctx.JSON(http.StatusOK, openResponse{Data: res})
}

type getRequest struct {
	Number string `uri:"number" binding:"required"`
}

// Get handles http request to get an account.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	account, err := h.service.Get(ctx, authPayload.Email, req.Number)
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound, domain.ErrCustomerNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrAccountOwnerMismatch:
			gctx.JSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{NewAccountResponse(account)}})
}

type listData struct {
	Accounts     []AccountResponse `json:"accounts"`
	TotalBalance string            `json:"total_balance"`
}

type listResponse struct {
	Data listData `json:"data,omitempty"`
}

// List handles http request to list the customer's accounts.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	accounts, total, err := h.service.List(ctx, authPayload.Email)
	if err != nil {
		if err == domain.ErrCustomerNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	items := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		items = append(items, NewAccountResponse(a))
	}

	gctx.JSON(http.StatusOK, listResponse{
		Data: listData{
			Accounts:     items,
			TotalBalance: moneypkg.FormatBWP(total),
		},
	})
}

// Delete handles http request to delete an account.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	if err := h.service.Delete(ctx, authPayload.Email, req.Number); err != nil {
		switch err {
		case domain.ErrAccountNotFound, domain.ErrCustomerNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrAccountOwnerMismatch:
			gctx.JSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.Status(http.StatusNoContent)
}
