// Package settlementdelivery manages delivery layer of settlements.
package settlementdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/splitpot/splitpot/internal/domain"
	"github.com/splitpot/splitpot/pkg/errorspkg"
	"github.com/splitpot/splitpot/pkg/web"
)

// Service provides service layer interface needed by settlement delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package settlementdelivery
type Service interface {
	Settle(ctx context.Context, payerEmail, payeeEmail, amount string) (int, error)
}

// Handler facilitates settlement delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns settlement handler.
func NewHandler(ss Service) Handler {
	return Handler{service: ss}
}

type data struct {
	AdjustedExpenses int `json:"adjusted_expenses"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

type createRequest struct {
	PayerEmail string `json:"payer_email" binding:"required,email"`
	PayeeEmail string `json:"payee_email" binding:"required,email"`
	Amount     string `json:"amount" binding:"required,amount"`
}

// Create handles http request to record a settlement payment.
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

	adjusted, err := h.service.Settle(ctx, req.PayerEmail, req.PayeeEmail, req.Amount)
	if err != nil {
		if err == domain.ErrInvalidAmount {
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{AdjustedExpenses: adjusted}})
}
