// Package main provides the API to manage accounts, transfers,
// withdrawals and KYC verification.
package main

import (
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/brixium/brixium-bank/cmd/httpserver"
	"github.com/brixium/brixium-bank/internal/domain"
	"github.com/brixium/brixium-bank/internal/middleware"
	"github.com/brixium/brixium-bank/internal/statestore"
	"github.com/brixium/brixium-bank/pkg/configpkg"
	"github.com/brixium/brixium-bank/pkg/currencypkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	db, err := statestore.Open(config.SnapshotPath, seedState(config))
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot open state store")
	}

	server, err := httpserver.New(db, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Msg("BANK API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}

// seedState is the state of a fresh installation: default settings plus
// the administrator from the config.
func seedState(config configpkg.Config) statestore.State {
	return statestore.State{
		Admins: []domain.Admin{{
			ID:       "admin",
			Email:    config.AdminEmail,
			Password: config.AdminPassword,
		}},
		Settings: domain.AppSettings{
			SupportedCurrencies: currencypkg.SupportedCurrencies,
			DefaultNetworkFee:   decimal.NewFromInt(5),
			NetworkFeeType:      domain.FeeTypeFixed,
			MaintenanceMode:     false,
			DefaultCurrency:     currencypkg.USD,
		},
	}
}
