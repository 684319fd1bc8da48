package main

import (
	"database/sql"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq"

	"github.com/voltsbank/volts-bank/internal/accountdelivery"
	"github.com/voltsbank/volts-bank/internal/accountrepo"
	"github.com/voltsbank/volts-bank/internal/accountservice"
	"github.com/voltsbank/volts-bank/internal/customerdelivery"
	"github.com/voltsbank/volts-bank/internal/customerrepo"
	"github.com/voltsbank/volts-bank/internal/customerservice"
	"github.com/voltsbank/volts-bank/internal/middleware"
	"github.com/voltsbank/volts-bank/internal/sessiondelivery"
	"github.com/voltsbank/volts-bank/internal/sessionrepo"
	"github.com/voltsbank/volts-bank/internal/sessionservice"
	"github.com/voltsbank/volts-bank/internal/transactiondelivery"
	"github.com/voltsbank/volts-bank/internal/transactionrepo"
	"github.com/voltsbank/volts-bank/internal/transactionservice"
	"github.com/voltsbank/volts-bank/pkg/configpkg"
	"github.com/voltsbank/volts-bank/pkg/dbpkg"
	"github.com/voltsbank/volts-bank/pkg/tokenpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	conn, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to db")
	}

	server, err := createServer(conn, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	err = server.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}

func createServer(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*gin.Engine, error) {
	customerRepo := customerrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)
	sessionRepo := sessionrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	customerService := customerservice.New(customerRepo)
	accountService := accountservice.New(accountRepo, transactionRepo, customerService)
	transactionService := transactionservice.New(transactionRepo, accountService)
	sessionService := sessionservice.New(sessionRepo, config, tokenMaker)

	customerHandler := customerdelivery.NewHandler(customerService, sessionService)
	accountHandler := accountdelivery.NewHandler(accountService)
	transactionHandler := transactiondelivery.NewHandler(transactionService)
	sessionHandler := sessiondelivery.NewHandler(sessionService)

	gin.SetMode(gin.ReleaseMode)
	server := gin.New()

	server.Use(middleware.RequestLogger(logger))
	server.Use(gin.Recovery())

	server.POST("/customers", customerHandler.Create)
	server.POST("/customers/login", customerHandler.Login)
	server.POST("/sessions", sessionHandler.RenewAccessToken)

	authRoutes := server.Group("/").Use(middleware.AuthMiddleware(sessionService.TokenMaker))

	authRoutes.GET("/customers/me", customerHandler.Get)
	authRoutes.PUT("/customers/me", customerHandler.Update)
	authRoutes.DELETE("/customers/me", customerHandler.Delete)

	authRoutes.POST("/accounts", accountHandler.Open)
	authRoutes.GET("/accounts", accountHandler.List)
	authRoutes.GET("/accounts/:number", accountHandler.Get)
	authRoutes.DELETE("/accounts/:number", accountHandler.Delete)

	authRoutes.POST("/accounts/:number/deposits", transactionHandler.Deposit)
	authRoutes.POST("/accounts/:number/withdrawals", transactionHandler.Withdraw)
	authRoutes.POST("/accounts/:number/interest", transactionHandler.PayInterest)
	authRoutes.GET("/accounts/:number/transactions", transactionHandler.List)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("accounttype", accountdelivery.ValidAccountType)
		if err != nil {
			return nil, errors.New("cannot register account type validator")
		}
	}

	return server, nil
}
