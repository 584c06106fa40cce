package main

import (
	"context"
	"cubetris/cube"
	"cubetris/server"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
)

func main() {
	addr := flag.String("addr", ":9000", "gRPC listen address")
	httpAddr := flag.String("http", ":9001", "spectator websocket listen address, empty to disable")
	speed := flag.Int("speed", int(cube.Slow), "drop speed: 0 slow, 1 normal, 2 fast")
	theme := flag.Int("theme", 0, "layer palette: 0, 1 or 2")
	sensitivity := flag.Int("sensitivity", 1, "gesture sensitivity: 0 high, 1 medium, 2 low")
	hand := flag.Int("hand", int(cube.RightHand), "gesturing hand: 0 left, 1 right")
	debug := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config(*speed, *theme, *sensitivity, *hand)
	if err != nil {
		log.Fatalf("invalid options: %v", err)
	}

	lis, err := net.Listen("tcp", *addr)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}
	defer lis.Close()

	srv := server.New(cfg, logger)
	s := grpc.NewServer(grpc.UnaryInterceptor(server.LoggingInterceptor(logger)))
	server.RegisterCubeServiceServer(s, srv)

	var web *http.Server
	if *httpAddr != "" {
		web = &http.Server{Addr: *httpAddr, Handler: srv.Handler(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			logger.Info("serving spectators", slog.String("addr", *httpAddr))
			if err := web.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("spectator server failed", slog.String("error", err.Error()))
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		if web != nil {
			shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			web.Shutdown(shutdown) //nolint: errcheck
		}
		// ending the games ends their Watch streams, which GracefulStop waits for.
		srv.Close()
		s.GracefulStop()
	}()

	logger.Info("starting server", slog.String("addr", *addr))
	if err := s.Serve(lis); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}

func config(speed, theme, sensitivity, hand int) (cube.Config, error) {
	cfg, err := cube.DefaultConfig().WithSpeed(cube.Speed(speed))
	if err != nil {
		return cube.Config{}, err
	}
	if cfg, err = cfg.WithTheme(theme); err != nil {
		return cube.Config{}, err
	}
	if cfg, err = cfg.WithSensitivity(sensitivity); err != nil {
		return cube.Config{}, err
	}
	if cfg, err = cfg.WithHand(cube.Hand(hand)); err != nil {
		return cube.Config{}, err
	}
	return cfg, cfg.Validate()
}
