package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/2beens/hybridpro/internal/config"
	"github.com/2beens/hybridpro/internal/db"
	"github.com/2beens/hybridpro/internal/middleware"
	"github.com/2beens/hybridpro/internal/program"
	"github.com/2beens/hybridpro/internal/storage"
	"github.com/2beens/hybridpro/internal/telemetry/metrics"
	"github.com/2beens/hybridpro/internal/telemetry/tracing"
	"github.com/2beens/hybridpro/internal/workout"
	"github.com/2beens/hybridpro/internal/workout/api"
	"github.com/2beens/hybridpro/internal/workout/chart"
	workoutmcp "github.com/2beens/hybridpro/internal/workout/mcp"
	"github.com/2beens/hybridpro/internal/workout/session"
	"github.com/2beens/hybridpro/internal/workout/timer"
)

const (
	serviceName    = "hybridpro"
	sqliteFileName = "hybridpro.db"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client
	store       storage.Store

	session        *session.Session
	restTimer      *timer.RestTimer
	workoutHandler *api.Handler
	mcpServer      *mcp.Server

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	PostgresPassword        string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config
	backend := strings.ToLower(cfg.StorageBackend)

	var rdb *redis.Client
	if cfg.RedisHost != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: params.RedisPassword,
			DB:       0, // use default DB
		})

		rdbStatus := rdb.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, serviceName, rdb)
	if err != nil {
		return nil, err
	}

	var extraCollectors []prometheus.Collector
	var dbPool *pgxpool.Pool
	if backend == storage.BackendPostgres {
		dbPool, err = db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBUser:         cfg.PostgresUser,
			DBPassword:     params.PostgresPassword,
			TracingEnabled: params.HoneycombTracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		extraCollectors = append(extraCollectors, pgxpoolprometheus.NewCollector(
			dbPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))
	}

	promRegistry := metrics.SetupPrometheus(extraCollectors...)
	metricsManager := metrics.NewManager(serviceName, "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0) // set to 1 once serving

	storeParams := storage.NewStoreParams{
		Backend:         backend,
		Path:            cfg.StoragePath,
		MemoryCacheSize: cfg.MemoryCacheSize,
		RedisKeyPrefix:  cfg.RedisKeyPrefix,
	}
	// only set non-nil clients, a typed nil would pass the backend checks
	if rdb != nil {
		storeParams.RedisClient = rdb
	}
	if dbPool != nil {
		storeParams.DBPool = dbPool
	}
	if backend == storage.BackendSqlite {
		if err := os.MkdirAll(cfg.StoragePath, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
		storeParams.Path = filepath.Join(cfg.StoragePath, sqliteFileName)
	}

	store, err := storage.New(ctx, storeParams)
	if err != nil {
		return nil, fmt.Errorf("new store [%s]: %w", backend, err)
	}
	log.Debugf("logs storage backend: %s", backend)

	s := &Server{
		versionInfo:    params.VersionInfo,
		config:         cfg,
		dbPool:         dbPool,
		redisClient:    rdb,
		store:          store,
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	if err := s.setupWorkout(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// setupWorkout loads the program and the stored logs, and builds the
// handlers served over HTTP and MCP.
func (s *Server) setupWorkout(ctx context.Context) error {
	catalog, err := program.Load(s.config.ProgramPath)
	if err != nil {
		return fmt.Errorf("load program: %w", err)
	}

	loc, err := s.config.Location()
	if err != nil {
		return fmt.Errorf("load location: %w", err)
	}

	logsRepo := workout.NewLogsRepo(s.store, s.config.LogsKey)
	s.session = session.New(catalog, logsRepo, s.metricsManager)
	logsCount := s.session.Load(ctx)
	log.Infof("loaded %d exercise logs", logsCount)

	s.restTimer = timer.New(s.config.RestTimer, time.Second, s.metricsManager)

	canvas := chart.Canvas{
		Width:   s.config.ChartWidth,
		Height:  s.config.ChartHeight,
		Padding: s.config.ChartPadding,
	}

	s.workoutHandler = api.NewHandler(api.NewHandlerParams{
		Catalog:    catalog,
		Session:    s.session,
		RestTimer:  s.restTimer,
		WeightUnit: s.config.WeightUnit,
		Canvas:     canvas,
		Location:   loc,
	})

	s.mcpServer = workoutmcp.NewServer(workoutmcp.NewServerParams{
		Catalog:    catalog,
		Session:    s.session,
		WeightUnit: s.config.WeightUnit,
		Canvas:     canvas,
		Location:   loc,
	})

	return nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()

	r.Use(otelmux.Middleware(serviceName))

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "i'm an teapot", http.StatusTeapot)
	}).Methods("GET", "OPTIONS").Name("root")
	r.HandleFunc("/version", s.handleVersion).Methods("GET", "OPTIONS").Name("version")

	var logsWriteMiddlewares []mux.MiddlewareFunc
	if s.redisClient != nil && s.config.LogsWritePerMin > 0 {
		logsWriteMiddlewares = append(logsWriteMiddlewares, middleware.RateLimit(
			redis_rate.NewLimiter(s.redisClient),
			s.metricsManager,
			"logs-write",
			s.config.LogsWritePerMin,
		))
	}
	s.workoutHandler.SetupRoutes(r, logsWriteMiddlewares...)

	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)
	r.PathPrefix("/mcp").Handler(mcpHandler).Name("mcp")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	if s.versionInfo == "" {
		http.Error(w, "version unknown", http.StatusNotFound)
		return
	}
	_, _ = w.Write([]byte(s.versionInfo))
}

func (s *Server) metricsRouter() *mux.Router {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	return r
}

func (s *Server) Serve(host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsAddr := net.JoinHostPort(host, strconv.Itoa(s.config.MetricsPort))
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: s.metricsRouter(),
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	if s.restTimer != nil {
		s.restTimer.Close()
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop taking requests before the stores go away
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if closer, ok := s.store.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Errorf("failed to close store: %s", err)
		}
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
