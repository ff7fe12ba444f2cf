package app

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bibliotek/library-api/config"
	"github.com/bibliotek/library-api/internal/export"
	"github.com/bibliotek/library-api/internal/handler"
	"github.com/bibliotek/library-api/internal/repository"
	"github.com/bibliotek/library-api/internal/server"
	"github.com/bibliotek/library-api/internal/service"
	"github.com/bibliotek/library-api/migrations"
	"github.com/bibliotek/library-api/pkg/auth"
	"github.com/bibliotek/library-api/pkg/kafka"
	"github.com/bibliotek/library-api/pkg/logger"
	"github.com/bibliotek/library-api/pkg/postgres"
)

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "library")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return fmt.Errorf("db init %v", err)
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		return fmt.Errorf("repo init %v", err)
	}

	events := service.NewNopEvents()
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			return fmt.Errorf("kafka producer %v", err)
		}
		defer producer.Close()
		events = service.NewKafkaEvents(producer, cfg.Kafka.Topic)
	}

	tokens := auth.NewManager(cfg.Auth)
	svc := service.NewService(repo, events, export.NewWriter(cfg.ExportDir), tokens, log)
	h := handler.New(handler.Services{
		Book:      svc,
		Borrower:  svc,
		Borrowing: svc,
		Report:    svc,
		Auth:      svc,
	}, tokens, log)

	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.Error("srv.Stop", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
	return nil
}
