package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zappy-game/server/internal/api"
	"github.com/zappy-game/server/internal/cliargs"
	"github.com/zappy-game/server/internal/config"
	"github.com/zappy-game/server/internal/db"
	"github.com/zappy-game/server/internal/engine"
	"github.com/zappy-game/server/internal/telemetry"
	"github.com/zappy-game/server/internal/ws"
)

func main() {
	args, err := cliargs.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "zappy_server:", err)
		fmt.Fprintln(os.Stderr, "usage: zappy_server -p port -x width -y height -f frequency -n team1 team2 ... -c clientsNb")
		os.Exit(84)
	}

	cfg := config.Default()
	if envPath := os.Getenv("ZAPPY_CONFIG"); envPath != "" {
		if loaded, loadErr := config.Load(envPath); loadErr == nil {
			cfg = loaded
		} else {
			log.Printf("zappy_server: failed to load %s, using defaults: %v", envPath, loadErr)
		}
	}

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", args.Port))
	if err != nil {
		log.Printf("zappy_server: listen on port %d: %v", args.Port, err)
		os.Exit(84)
	}

	postgres, err := db.NewPostgres(cfg.Telemetry.PostgresURL)
	if err != nil {
		log.Printf("zappy_server: postgres unavailable, match history disabled: %v", err)
		postgres = &db.Postgres{}
	}
	defer postgres.Close()

	redis, err := db.NewRedis(cfg.Telemetry.RedisURL)
	if err != nil {
		log.Printf("zappy_server: redis unavailable, event mirror disabled: %v", err)
		redis = &db.Redis{}
	}
	defer redis.Close()

	recorder := telemetry.NewRecorder(postgres)
	defer recorder.Close()
	mirror := telemetry.NewMirror(redis, args.Port)

	hub := ws.NewHub()
	go hub.Run()
	dashboard := api.NewServer(hub)

	eng, err := engine.New(engine.Config{
		Listener:     listener,
		Width:        args.Width,
		Height:       args.Height,
		Frequency:    args.Frequency,
		TeamNames:    args.TeamNames,
		SlotsPerTeam: args.SlotsPerTeam,
		Seed:         cfg.Dev.Seed,
	})
	if err != nil {
		log.Printf("zappy_server: %v", err)
		os.Exit(84)
	}
	eng.OnGameOver = recorder.Record
	eng.Mirror = mirror.Publish
	eng.OnTick = dashboard.OnTick

	httpServer := &http.Server{
		Addr:         cfg.Server.DashboardAddr,
		Handler:      api.NewRouter(dashboard),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		log.Printf("zappy_server: dashboard listening on %s", cfg.Server.DashboardAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("zappy_server: dashboard failed: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("zappy_server: shutting down")
		cancel()
	}()

	log.Printf("zappy_server: session %s on port %d, %dx%d map, %d tick/s, teams %v", eng.SessionID(), args.Port, args.Width, args.Height, args.Frequency, args.TeamNames)
	summary := eng.Run(ctx)
	log.Printf("zappy_server: game over, winner=%q", summary.Winner)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
}
