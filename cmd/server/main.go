package main

import (
	"context"
	"fmt"

	"github.com/apnaparivar/familytree-backend/internal/config"
	"github.com/apnaparivar/familytree-backend/internal/crypto"
	handlerhttp "github.com/apnaparivar/familytree-backend/internal/handler/http"
	"github.com/apnaparivar/familytree-backend/internal/logger"
	"github.com/apnaparivar/familytree-backend/internal/server"
	"github.com/apnaparivar/familytree-backend/internal/service"
	"github.com/apnaparivar/familytree-backend/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("familytree-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	storages := store.NewStorages(store.RestConfig{
		BaseURL:    cfg.Supabase.URL,
		ServiceKey: cfg.Supabase.ServiceKey,
		Timeout:    cfg.Supabase.Timeout,
	}, log)

	mailer, err := service.NewMailer(context.Background(), cfg.Mail, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating mailer")
	}

	services := service.NewServices(storages, crypto.NewCredentialService(), mailer, cfg.App, log)

	handler := handlerhttp.NewHandler(services, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
