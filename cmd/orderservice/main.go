package main

import (
	"context"
	"fmt"

	"github.com/sklep-internetowy/backend/internal/adapter/auth"
	"github.com/sklep-internetowy/backend/internal/adapter/client/catalog"
	"github.com/sklep-internetowy/backend/internal/adapter/config"
	"github.com/sklep-internetowy/backend/internal/adapter/handler/http"
	"github.com/sklep-internetowy/backend/internal/adapter/logger"
	"github.com/sklep-internetowy/backend/internal/adapter/storage"
	"github.com/sklep-internetowy/backend/internal/adapter/storage/repository"
	"github.com/sklep-internetowy/backend/internal/core/service"
	"go.uber.org/zap"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		return
	}

	log, err := logger.NewLogger(conf.App)
	if err != nil {
		fmt.Printf("logger error:%s", err)
		return
	}
	defer func() {
		err := log.Sync()
		if err != nil {
			fmt.Printf("log error: %s", err)
		}
	}()

	ctx := context.Background()

	db, err := storage.NewDBStorage(ctx, conf.Database)
	if err != nil {
		log.Error("database error", zap.Error(err))
		return
	}
	defer db.Close()

	err = db.RunMigrations(storage.MigrationsOrders)
	if err != nil {
		log.Error("database migration error", zap.Error(err))
		return
	}

	repo, err := repository.NewOrderRepository(db)
	if err != nil {
		log.Error("order repo creating error", zap.Error(err))
		return
	}

	verifier, err := auth.New(conf.Auth)
	if err != nil {
		log.Error("token verifier creating error", zap.Error(err))
		return
	}

	catalogClient, err := catalog.NewClient(conf.Catalog, log.Named("Catalog"))
	if err != nil {
		log.Error("catalog client creating error", zap.Error(err))
		return
	}

	svc, err := service.NewOrderService(repo, catalogClient, conf.Auth.AdminRole, log.Named("Service"))
	if err != nil {
		log.Error("order service creating error", zap.Error(err))
		return
	}

	orderHandler, err := http.NewOrderHandler(svc, log.Named("Order handler"))
	if err != nil {
		log.Error("order handler creating error", zap.Error(err))
		return
	}

	r, err := http.NewOrderRouter(conf, verifier, orderHandler, log.Named("Router"))
	if err != nil {
		log.Error("router creating error", zap.Error(err))
		return
	}

	err = r.Serve(conf.HTTP.HostString)
	if err != nil {
		log.Error("router serve error", zap.Error(err))
		return
	}
}
