// Package main runs the workout MCP server over stdio (for local assistant use).
// The same MCP server is also mounted on the main service at /mcp over HTTP.
// Logs are read from the configured storage backend; session progress starts fresh.
package main

import (
	"context"
	"flag"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2beens/hybridpro/internal/config"
	"github.com/2beens/hybridpro/internal/db"
	"github.com/2beens/hybridpro/internal/program"
	"github.com/2beens/hybridpro/internal/storage"
	"github.com/2beens/hybridpro/internal/workout"
	"github.com/2beens/hybridpro/internal/workout/chart"
	workoutmcp "github.com/2beens/hybridpro/internal/workout/mcp"
	"github.com/2beens/hybridpro/internal/workout/session"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	backend := strings.ToLower(cfg.StorageBackend)
	storeParams := storage.NewStoreParams{
		Backend:         backend,
		Path:            cfg.StoragePath,
		MemoryCacheSize: cfg.MemoryCacheSize,
		RedisKeyPrefix:  cfg.RedisKeyPrefix,
	}

	switch backend {
	case storage.BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: os.Getenv("HYBRIDPRO_REDIS_PASS"),
		})
		defer rdb.Close()
		storeParams.RedisClient = rdb
	case storage.BackendPostgres:
		dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:     cfg.PostgresHost,
			DBPort:     cfg.PostgresPort,
			DBName:     cfg.PostgresDBName,
			DBUser:     cfg.PostgresUser,
			DBPassword: os.Getenv("HYBRIDPRO_POSTGRES_PASS"),
		})
		if err != nil {
			log.Fatalf("db pool: %v", err)
		}
		defer dbPool.Close()
		storeParams.DBPool = dbPool
	case storage.BackendSqlite:
		if err := os.MkdirAll(cfg.StoragePath, 0o755); err != nil {
			log.Fatalf("sqlite dir: %v", err)
		}
		storeParams.Path = filepath.Join(cfg.StoragePath, "hybridpro.db")
	}

	store, err := storage.New(ctx, storeParams)
	if err != nil {
		log.Fatalf("new store: %v", err)
	}

	catalog, err := program.Load(cfg.ProgramPath)
	if err != nil {
		log.Fatalf("load program: %v", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("location: %v", err)
	}

	workoutSession := session.New(catalog, workout.NewLogsRepo(store, cfg.LogsKey), nil)
	workoutSession.Load(ctx)

	server := workoutmcp.NewServer(workoutmcp.NewServerParams{
		Catalog:    catalog,
		Session:    workoutSession,
		WeightUnit: cfg.WeightUnit,
		Canvas: chart.Canvas{
			Width:   cfg.ChartWidth,
			Height:  cfg.ChartHeight,
			Padding: cfg.ChartPadding,
		},
		Location: loc,
	})

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
