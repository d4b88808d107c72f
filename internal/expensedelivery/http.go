// Package expensedelivery manages delivery layer of expenses and balances.
package expensedelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/splitpot/splitpot/internal/domain"
	"github.com/splitpot/splitpot/pkg/errorspkg"
	"github.com/splitpot/splitpot/pkg/moneypkg"
	"github.com/splitpot/splitpot/pkg/web"
)

// Service provides service layer interface needed by expense delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package expensedelivery
type Service interface {
	RecordExpense(ctx context.Context, arg domain.CreateExpenseParams) (domain.Expense, error)
	PersonalBalance(ctx context.Context, userName string) (domain.PersonalBalance, error)
}

// Handler facilitates expense delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns expense handler.
func NewHandler(es Service) Handler {
	return Handler{service: es}
}

type data struct {
	Expense domain.Expense `json:"expense"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

type createRequest struct {
	GroupName   string            `json:"group_name" binding:"required"`
	ExpenseName string            `json:"expense_name" binding:"required"`
	Amount      string            `json:"amount" binding:"required,amount"`
	Payer       string            `json:"payer" binding:"required,email"`
	Split       string            `json:"split" binding:"required,oneof=equal custom"`
	CustomSplit map[string]string `json:"custom_split,omitempty"`
}

// Create handles http request to record an expense.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			field := ve[0]
			gctx.JSON(http.StatusBadRequest, web.JSONError{Error: field.Field() + web.GetErrorMsg(field)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	arg := domain.CreateExpenseParams{
		GroupName:   req.GroupName,
		ExpenseName: req.ExpenseName,
		Amount:      req.Amount,
		Payer:       req.Payer,
		EqualSplit:  req.Split == "equal",
		CustomSplit: req.CustomSplit,
	}

	expense, err := h.service.RecordExpense(ctx, arg)
	if err != nil {
		switch err {
		case domain.ErrGroupNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrPayerNotMember, domain.ErrInvalidSplitInput, domain.ErrInvalidAmount:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{expense}})
}

type personalBalanceRequest struct {
	Name string `uri:"name" binding:"required"`
}

type dataBalance struct {
	OwesToOthers string `json:"owes_to_others"`
	OwedByOthers string `json:"owed_by_others"`
	Net          string `json:"net_balance"`
	Direction    string `json:"direction"`
}
type responseBalance struct {
	Data dataBalance `json:"data,omitempty"`
}

// PersonalBalance handles http request to read one user's totals across
// all groups, resolved by display name.
func (h *Handler) PersonalBalance(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req personalBalanceRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	balance, err := h.service.PersonalBalance(ctx, req.Name)
	if err != nil {
		if err == domain.ErrUserNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	direction := "settled"

	switch {
	case balance.Net.IsPositive():
		direction = "to receive"
	case balance.Net.IsNegative():
		direction = "owes"
	}

	res := dataBalance{
		OwesToOthers: moneypkg.Format(balance.OwesToOthers),
		OwedByOthers: moneypkg.Format(balance.OwedByOthers),
		Net:          moneypkg.Format(balance.Net),
		Direction:    direction,
	}

	gctx.JSON(http.StatusOK, responseBalance{Data: res})
}
