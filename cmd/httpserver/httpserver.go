// Package httpserver manages server creation and api routing.
package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/brixium/brixium-bank/internal/accountdelivery"
	"github.com/brixium/brixium-bank/internal/accountrepo"
	"github.com/brixium/brixium-bank/internal/accountservice"
	"github.com/brixium/brixium-bank/internal/kycdelivery"
	"github.com/brixium/brixium-bank/internal/kycrepo"
	"github.com/brixium/brixium-bank/internal/kycservice"
	"github.com/brixium/brixium-bank/internal/ledgerdelivery"
	"github.com/brixium/brixium-bank/internal/ledgerrepo"
	"github.com/brixium/brixium-bank/internal/ledgerservice"
	"github.com/brixium/brixium-bank/internal/middleware"
	"github.com/brixium/brixium-bank/internal/notificationdelivery"
	"github.com/brixium/brixium-bank/internal/notificationrepo"
	"github.com/brixium/brixium-bank/internal/notificationservice"
	"github.com/brixium/brixium-bank/internal/sessiondelivery"
	"github.com/brixium/brixium-bank/internal/sessionrepo"
	"github.com/brixium/brixium-bank/internal/sessionservice"
	"github.com/brixium/brixium-bank/internal/settingsdelivery"
	"github.com/brixium/brixium-bank/internal/settingsrepo"
	"github.com/brixium/brixium-bank/internal/settingsservice"
	"github.com/brixium/brixium-bank/internal/statestore"
	"github.com/brixium/brixium-bank/internal/transactionrepo"
	"github.com/brixium/brixium-bank/internal/withdrawaldelivery"
	"github.com/brixium/brixium-bank/internal/withdrawalrepo"
	"github.com/brixium/brixium-bank/internal/withdrawalservice"
	"github.com/brixium/brixium-bank/pkg/configpkg"
	"github.com/brixium/brixium-bank/pkg/currencypkg"
	"github.com/brixium/brixium-bank/pkg/tokenpkg"
)

// Server holds the state store, handlers router and configuration.
type Server struct {
	DB     *statestore.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(db *statestore.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	accountRepo := accountrepo.NewRepoMem(db)
	ledgerRepo := ledgerrepo.NewRepoMem(db)
	transactionRepo := transactionrepo.NewRepoMem(db)
	withdrawalRepo := withdrawalrepo.NewRepoMem(db)
	kycRepo := kycrepo.NewRepoMem(db)
	notificationRepo := notificationrepo.NewRepoMem(db)
	settingsRepo := settingsrepo.NewRepoMem(db)
	sessionRepo := sessionrepo.NewRepoMem(db)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	accountService := accountservice.New(accountRepo, settingsRepo)
	ledgerService := ledgerservice.New(accountRepo, ledgerRepo, transactionRepo, settingsRepo)
	withdrawalService := withdrawalservice.New(accountRepo, withdrawalRepo, settingsRepo)
	kycService := kycservice.New(accountRepo, kycRepo)
	notificationService := notificationservice.New(notificationRepo)
	settingsService := settingsservice.New(settingsRepo)
	sessionService := sessionservice.New(accountRepo, sessionRepo)

	sessionHandler := sessiondelivery.NewHandler(accountService, sessionService, tokenMaker, config.AccessTokenDuration)
	accountHandler := accountdelivery.NewHandler(accountService)
	ledgerHandler := ledgerdelivery.NewHandler(ledgerService)
	withdrawalHandler := withdrawaldelivery.NewHandler(withdrawalService)
	kycHandler := kycdelivery.NewHandler(kycService)
	notificationHandler := notificationdelivery.NewHandler(notificationService)
	settingsHandler := settingsdelivery.NewHandler(settingsService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/users", sessionHandler.Register)
	engine.POST("/users/login", sessionHandler.LoginUser)
	engine.POST("/admins/login", sessionHandler.LoginAdmin)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(tokenMaker))

	authRoutes.POST("/logout", sessionHandler.Logout)
	authRoutes.GET("/account", accountHandler.Get)
	authRoutes.POST("/pin", accountHandler.SetPIN)

	authRoutes.GET("/transactions", ledgerHandler.ListTransactions)
	authRoutes.POST("/transfers", ledgerHandler.CreateTransfer)
	authRoutes.GET("/rates", ledgerHandler.GetRate)
	authRoutes.POST("/exchange", ledgerHandler.Exchange)
	authRoutes.POST("/currency", ledgerHandler.ChangeCurrency)

	authRoutes.POST("/withdrawals", withdrawalHandler.Create)
	authRoutes.GET("/withdrawals", withdrawalHandler.List)

	authRoutes.POST("/kyc", kycHandler.Submit)
	authRoutes.GET("/kyc", kycHandler.Get)

	authRoutes.GET("/notifications", notificationHandler.List)
	authRoutes.PATCH("/notifications/:id/read", notificationHandler.MarkRead)

	adminRoutes := engine.Group("/admin").Use(
		middleware.AuthMiddleware(tokenMaker),
		middleware.AdminOnly(),
	)

	adminRoutes.GET("/users", accountHandler.List)
	adminRoutes.POST("/users/:id/fund", ledgerHandler.Fund)
	adminRoutes.POST("/users/:id/deduct", ledgerHandler.Deduct)

	adminRoutes.GET("/withdrawals", withdrawalHandler.ListAll)
	adminRoutes.POST("/withdrawals/:id/process", withdrawalHandler.Process)

	adminRoutes.GET("/kyc", kycHandler.List)
	adminRoutes.POST("/kyc/:id/review", kycHandler.Review)

	adminRoutes.GET("/notifications", notificationHandler.ListForAdmins)

	adminRoutes.GET("/settings", settingsHandler.Get)
	adminRoutes.PATCH("/settings", settingsHandler.Update)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("currency", currencypkg.ValidCurrency)
		if err != nil {
			return nil, errors.New("cannot register currency validator")
		}
	}

	server := &Server{
		DB:     db,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
