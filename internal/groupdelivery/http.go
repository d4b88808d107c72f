// Package groupdelivery manages delivery layer of groups.
package groupdelivery

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

// Service provides service layer interface needed by group delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package groupdelivery
type Service interface {
	Create(ctx context.Context, name string, members []string) (domain.Group, error)
}

// Ledger provides the balance reading needed by group delivery layer.
type Ledger interface {
	GroupBalances(ctx context.Context, groupName string) (domain.Balance, domain.Detail, error)
}

// Handler facilitates group delivery layer logic.
type Handler struct {
	service Service
	ledger  Ledger
}

// NewHandler returns group handler.
func NewHandler(gs Service, ls Ledger) Handler {
	return Handler{service: gs, ledger: ls}
}

type data struct {
	Group domain.Group `json:"group"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

type createRequest struct {
	Name    string   `json:"name" binding:"required"`
	Members []string `json:"members" binding:"required,min=1,dive,email"`
}

// Create handles http request to create a group.
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

	group, err := h.service.Create(ctx, req.Name, req.Members)
	if err != nil {
		if err == domain.ErrDuplicateGroup {
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{group}})
}

type balancesRequest struct {
	Name string `uri:"name" binding:"required"`
}

type dataBalances struct {
	Balances map[string]string            `json:"balances"`
	Detail   map[string]map[string]string `json:"detail"`
}
type responseBalances struct {
	Data dataBalances `json:"data,omitempty"`
}

// Balances handles http request to read a group's net balances and the
// who-owes-whom detail. An unknown or empty group yields empty maps.
func (h *Handler) Balances(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req balancesRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	balances, detail, err := h.ledger.GroupBalances(ctx, req.Name)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := dataBalances{
		Balances: make(map[string]string, len(balances)),
		Detail:   make(map[string]map[string]string, len(detail)),
	}

	for member, amount := range balances {
		res.Balances[member] = moneypkg.Format(amount)
	}

	for ower, owed := range detail {
		res.Detail[ower] = make(map[string]string, len(owed))
		for owee, amount := range owed {
			res.Detail[ower][owee] = moneypkg.Format(amount)
		}
	}

	gctx.JSON(http.StatusOK, responseBalances{Data: res})
}
