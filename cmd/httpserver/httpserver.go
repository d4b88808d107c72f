// Package httpserver manages server creation and api routing.
package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/splitpot/splitpot/internal/directory"
	"github.com/splitpot/splitpot/internal/expensedelivery"
	"github.com/splitpot/splitpot/internal/groupdelivery"
	"github.com/splitpot/splitpot/internal/groupservice"
	"github.com/splitpot/splitpot/internal/ledgerservice"
	"github.com/splitpot/splitpot/internal/middleware"
	"github.com/splitpot/splitpot/internal/settlementdelivery"
	"github.com/splitpot/splitpot/internal/settlementservice"
	"github.com/splitpot/splitpot/internal/storage"
	"github.com/splitpot/splitpot/internal/userdelivery"
	"github.com/splitpot/splitpot/internal/userservice"
	"github.com/splitpot/splitpot/pkg/configpkg"
	"github.com/splitpot/splitpot/pkg/moneypkg"
)

// Server holds the storage backend, handlers router and configuration.
type Server struct {
	Repos  *storage.Repos
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(repos *storage.Repos, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	userService := userservice.New(repos.Users)
	groupService := groupservice.New(repos.Groups, repos.Users)
	dir := directory.New(repos.Users, groupService)
	ledgerService := ledgerservice.New(repos.Expenses, dir)
	settlementService := settlementservice.New(repos.Expenses)

	userHandler := userdelivery.NewHandler(userService)
	groupHandler := groupdelivery.NewHandler(groupService, ledgerService)
	expenseHandler := expensedelivery.NewHandler(ledgerService)
	settlementHandler := settlementdelivery.NewHandler(settlementService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/users", userHandler.Create)
	engine.GET("/users/:email", userHandler.Get)

	engine.POST("/groups", groupHandler.Create)
	engine.GET("/groups/:name/balances", groupHandler.Balances)

	engine.POST("/expenses", expenseHandler.Create)
	engine.GET("/balances/:name", expenseHandler.PersonalBalance)

	engine.POST("/settlements", settlementHandler.Create)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("amount", moneypkg.ValidAmount); err != nil {
			return nil, errors.New("cannot register amount validator")
		}
	}

	server := &Server{
		Repos:  repos,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
