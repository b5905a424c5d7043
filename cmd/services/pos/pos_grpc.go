package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"restaurant-pos/config"
	"restaurant-pos/internal/events"
	"restaurant-pos/internal/pos"
	"restaurant-pos/internal/services/pos/handler"
	"restaurant-pos/internal/store"
	"restaurant-pos/proto/posv1"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.LoadConfig(logger)
	ctx := context.Background()

	backend, err := store.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err))
	}
	defer backend.Close()

	var options []pos.Option
	if cfg.Events.Enabled {
		redisClient, err := config.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis for events", zap.Error(err))
		}
		defer redisClient.Close()
		options = append(options, pos.WithPublisher(events.NewRedisPublisher(redisClient)))
		logger.Info("sale events enabled", zap.String("channel", events.ChannelAll))
	}

	svc := pos.NewService(backend, pos.OptionsFromConfig(cfg), logger, options...)

	outcome, err := svc.SeedOrMigrate(ctx)
	if err != nil {
		logger.Fatal("failed to seed menu", zap.Error(err))
	}
	logger.Info("menu ready", zap.Stringer("outcome", outcome), zap.Int("data_version", pos.DataVersion))

	lis, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		logger.Fatal("failed to listen", zap.String("addr", cfg.GRPC.Addr), zap.Error(err))
	}

	s := grpc.NewServer()
	posv1.RegisterPOSServiceServer(s, handler.NewPOSHandler(svc, logger))
	reflection.Register(s)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down POS service")
		s.GracefulStop()
	}()

	logger.Info("POS service listening", zap.String("addr", cfg.GRPC.Addr), zap.String("store", cfg.Store.Backend))
	if err := s.Serve(lis); err != nil {
		logger.Fatal("failed to serve", zap.Error(err))
	}
}
