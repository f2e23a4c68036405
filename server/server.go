package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"RoboScan360/config"
	"RoboScan360/config/authorization"
	"RoboScan360/config/db"
	"RoboScan360/config/redis"
	"RoboScan360/controllers"
	"RoboScan360/metrics"
	"RoboScan360/repository"
	"RoboScan360/role"
	"RoboScan360/routes"
	"RoboScan360/services"
)

// Options switches the parts of the process on and off. Handlers run once
// their dependency is ready.
type Options struct {
	Config *config.Config

	MongoEnabled     bool
	CacheEnabled     bool
	WebServerEnabled bool
	MigrationEnabled bool
	JobsEnabled      bool

	MigrationHandler    func(ctx context.Context, database *mongo.Database) error
	JobsHandler         func(app *App) (stop func(), err error)
	WebServerPreHandler func(r *gin.Engine, app *App)
}

func GetDefaultOptions(cfg *config.Config) Options {
	return Options{
		Config:           cfg,
		MongoEnabled:     true,
		CacheEnabled:     cfg.RedisAddr != "",
		WebServerEnabled: true,
		MigrationEnabled: true,
		JobsEnabled:      true,
	}
}

// App is the wired object graph shared by the web server and the jobs.
type App struct {
	Config       *config.Config
	Registry     *prometheus.Registry
	Handlers     *controllers.Handlers
	Appointments *services.AppointmentService
}

/*
* Build the stores over the database
* Build every service on top of them
 */
func NewApp(cfg *config.Config, database *mongo.Database, cache *redis.Cache, reg *prometheus.Registry) *App {
	roles := role.DefaultConfig()
	stores := repository.New(database)
	directory := services.NewDirectory(stores.Staff, roles)
	auth := authorization.New(cfg.JWTSecret, cfg.JWTTTL, roles)
	gateway := services.NewHTTPConferenceGateway(cfg.ConferenceBaseURL, cfg.ConferenceAPIKey, cfg.ConferenceTimeout, cfg.Location())

	appointments := services.NewAppointmentService(stores, directory, gateway, cache, metrics.NewAppointmentMetrics(reg), services.AppointmentOptions{
		Location:             cfg.Location(),
		EditRequiresUpcoming: cfg.EditRequiresUpcoming,
	})

	return &App{
		Config:       cfg,
		Registry:     reg,
		Appointments: appointments,
		Handlers: &controllers.Handlers{
			Auth:         auth,
			Appointments: appointments,
			Patients:     services.NewPatientService(stores.Patients, directory, cache),
			Accounts:     services.NewStaffService(stores, directory, roles, auth),
			Clients:      services.NewClientService(stores.Clients, directory, cache),
			Branches:     services.NewBranchService(stores, directory),
			Robots:       services.NewRobotService(stores, directory),
			Reports:      services.NewReportService(stores, directory, cache),
		},
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

func NewRouter(app *App, pre func(r *gin.Engine, app *App)) (*gin.Engine, error) {
	if err := controllers.RegisterValidators(); err != nil {
		return nil, err
	}
	if !app.Config.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  app.Config.CORSOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))
	if pre != nil {
		pre(r, app)
	}
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(app.Registry, promhttp.HandlerOpts{})))
	routes.Routes(r, app.Handlers)
	return r, nil
}

/*
* Connect mongo and redis
* Run migrations and start jobs
* Serve until SIGINT or SIGTERM, then shut down gracefully
 */
func Start(opts Options) error {
	cfg := opts.Config
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var database *mongo.Database
	if opts.MongoEnabled {
		var err error
		database, err = db.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			log.Error().Err(err).Msg("mongo connection failed")
			return err
		}
		defer func() {
			if err := db.Disconnect(context.Background()); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect failed")
			}
		}()
	}

	var cache *redis.Cache
	if opts.CacheEnabled {
		rdb, err := redis.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, running without cache")
		} else {
			cache = redis.NewCache(rdb, cfg.CacheTTL)
			defer rdb.Close()
		}
	}

	if opts.MigrationEnabled && opts.MigrationHandler != nil && database != nil {
		if err := opts.MigrationHandler(ctx, database); err != nil {
			return err
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	app := NewApp(cfg, database, cache, reg)

	if opts.JobsEnabled && opts.JobsHandler != nil {
		stopJobs, err := opts.JobsHandler(app)
		if err != nil {
			return err
		}
		defer stopJobs()
	}

	if !opts.WebServerEnabled {
		<-ctx.Done()
		return nil
	}

	router, err := NewRouter(app, opts.WebServerPreHandler)
	if err != nil {
		return err
	}
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		log.Error().Err(err).Msg("server error")
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
