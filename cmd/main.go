package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/sbilibin2017/gw-recipe-api/docs"
	"github.com/sbilibin2017/gw-recipe-api/internal/facades"
	"github.com/sbilibin2017/gw-recipe-api/internal/handlers"
	"github.com/sbilibin2017/gw-recipe-api/internal/health"
	"github.com/sbilibin2017/gw-recipe-api/internal/jwt"
	"github.com/sbilibin2017/gw-recipe-api/internal/logger"
	"github.com/sbilibin2017/gw-recipe-api/internal/middlewares"
	"github.com/sbilibin2017/gw-recipe-api/internal/migrations"
	"github.com/sbilibin2017/gw-recipe-api/internal/models"
	"github.com/sbilibin2017/gw-recipe-api/internal/repositories"
	"github.com/sbilibin2017/gw-recipe-api/internal/services"
	"github.com/sbilibin2017/gw-recipe-api/internal/storage"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title gw-recipe-api API
// @version 1.0.0
// @description Recipe service: users, tags, ingredients, recipes and recipe images
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Build version: %s\nBuild date: %s\nBuild commit: %s\n", buildVersion, buildDate, buildCommit)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

type config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int
	RedisExp          time.Duration

	JWTSecretKey string
	JWTExp       time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	GRPCHealthPort string

	MediaRoot   string
	MediaURL    string
	MaxUploadMB int

	TokenRateRPS   float64
	TokenRateBurst int

	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	TrustProxy bool

	CORSAllowedOrigins []string
}

// DSN returns the PostgreSQL connection URL.
func (c config) DSN() string {
	return migrations.PostgresDSN(c.PGUser, c.PGPassword, c.PGHost, strconv.Itoa(c.PGPort), c.PGDB)
}

// parseConfig loads environment variables from the file at path, if any,
// and fills in defaults for everything unset.
func parseConfig(path string) (config, error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	var (
		cfg  config
		errs []error
	)
	atoi := func(key, defaultValue string) int {
		n, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
		return n
	}
	list := func(key, defaultValue string) []string {
		var out []string
		for _, s := range strings.Split(getEnv(key, defaultValue), ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGPort = atoi("POSTGRES_PORT", "5432")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "database")
	cfg.PGMaxOpenConns = atoi("POSTGRES_MAX_OPEN_CONNS", "16")
	cfg.PGMaxIdleConns = atoi("POSTGRES_MAX_IDLE_CONNS", "8")

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPort = atoi("REDIS_PORT", "6379")
	cfg.RedisDB = atoi("REDIS_DB", "0")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.RedisPoolSize = atoi("REDIS_POOL_SIZE", "10")
	cfg.RedisMinIdleConns = atoi("REDIS_MIN_IDLE_CONNS", "2")
	cfg.RedisExp = time.Duration(atoi("REDIS_EXP_SECOND", "60")) * time.Second

	// JWT config
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	cfg.JWTExp = time.Duration(atoi("JWT_EXP_SECOND", "3600")) * time.Second

	// Kafka config, no brokers disables publishing
	cfg.KafkaBrokers = list("KAFKA_BROKERS", "")
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "recipe-events")

	cfg.GRPCHealthPort = getEnv("GRPC_HEALTH_PORT", "50051")

	// Media config
	cfg.MediaRoot = getEnv("MEDIA_ROOT", "media")
	cfg.MediaURL = getEnv("MEDIA_URL", "/media")
	cfg.MaxUploadMB = atoi("MAX_UPLOAD_MB", "10")

	// Token endpoint throttling
	rps, err := strconv.ParseFloat(getEnv("TOKEN_RATE_RPS", "1"), 64)
	if err != nil {
		errs = append(errs, fmt.Errorf("TOKEN_RATE_RPS: %w", err))
	}
	cfg.TokenRateRPS = rps
	cfg.TokenRateBurst = atoi("TOKEN_RATE_BURST", "5")

	trust, err := strconv.ParseBool(getEnv("TRUST_PROXY_HEADERS", "false"))
	if err != nil {
		errs = append(errs, fmt.Errorf("TRUST_PROXY_HEADERS: %w", err))
	}
	cfg.TrustProxy = trust

	cfg.CORSAllowedOrigins = list("CORS_ALLOWED_ORIGINS", "*")

	return cfg, errors.Join(errs...)
}

// run connects to the backing services, serves the HTTP API and the gRPC
// health service, and shuts both down gracefully on a signal.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer logger.Log.Sync()
	log := logger.Log
	log.Infow("logger initialized", "level", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	// Connect to PostgreSQL and bring the schema up to date
	if err := migrations.Up(cfg.DSN()); err != nil {
		return err
	}
	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.DSN())
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}

	// Kafka producer
	var events *facades.RecipeEventsKafkaFacade
	if len(cfg.KafkaBrokers) > 0 {
		writer := &kafka.Writer{
			Addr:                   kafka.TCP(cfg.KafkaBrokers...),
			Topic:                  cfg.KafkaTopic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		}
		defer writer.Close()
		events = facades.NewRecipeEventsKafkaFacade(writer)
	} else {
		events = facades.NewRecipeEventsKafkaFacade(nil)
	}

	tokens := jwt.New(jwt.WithSecretKey(cfg.JWTSecretKey), jwt.WithExpiration(cfg.JWTExp))
	images := storage.NewImageStorage(cfg.MediaRoot, cfg.MediaURL,
		storage.WithMaxBytes(int64(cfg.MaxUploadMB)<<20))

	// Repositories
	userRead := repositories.NewUserReadRepository(db, middlewares.GetTxFromContext)
	userWrite := repositories.NewUserWriteRepository(db, middlewares.GetTxFromContext)
	userCache := repositories.NewUserCacheRepository(rdb, cfg.RedisExp)
	tagRead := repositories.NewAttributeReadRepository(db, middlewares.GetTxFromContext, models.TagKind)
	tagWrite := repositories.NewAttributeWriteRepository(db, middlewares.GetTxFromContext, models.TagKind)
	ingredientRead := repositories.NewAttributeReadRepository(db, middlewares.GetTxFromContext, models.IngredientKind)
	ingredientWrite := repositories.NewAttributeWriteRepository(db, middlewares.GetTxFromContext, models.IngredientKind)
	recipeRead := repositories.NewRecipeReadRepository(db, middlewares.GetTxFromContext)
	recipeWrite := repositories.NewRecipeWriteRepository(db, middlewares.GetTxFromContext)

	// Services
	authService := services.NewAuthService(userRead, userWrite, tokens)
	userService := services.NewUserService(userRead, userWrite, userCache)
	tagService := services.NewAttributeService(models.TagKind, tagRead, tagWrite)
	ingredientService := services.NewAttributeService(models.IngredientKind, ingredientRead, ingredientWrite)
	recipeService := services.NewRecipeService(recipeRead, recipeWrite, tagRead, ingredientRead, images, events,
		services.WithAfterCommit(middlewares.AfterCommit),
	)

	limiter := middlewares.NewRateLimiter(cfg.TokenRateRPS, cfg.TokenRateBurst)
	go limiter.Run(ctx, time.Minute)

	// gRPC health service
	healthSrv := health.NewServer(map[string]health.Check{
		"postgres": db.PingContext,
		"redis": func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		},
	})
	lis, err := net.Listen("tcp", net.JoinHostPort(cfg.AppHost, cfg.GRPCHealthPort))
	if err != nil {
		return fmt.Errorf("listen grpc health: %w", err)
	}
	go healthSrv.Run(ctx, 10*time.Second)

	r := newRouter(routerDeps{
		Users:       authService,
		Tokens:      authService,
		Profile:     userService,
		Tags:        tagService,
		Ingredients: ingredientService,
		Recipes:     recipeService,
		Images:      images,
		Tokener:     tokens,
		Staff:       userService,
		DB:          db,
		Limiter:     limiter,
		MediaRoot:   cfg.MediaRoot,
		MediaURL:    cfg.MediaURL,
		TrustProxy:  cfg.TrustProxy,
		MaxUpload:   int64(cfg.MaxUploadMB) << 20,
		CORSOrigins: cfg.CORSAllowedOrigins,
		SwaggerURL:  fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort),
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.AppHost, cfg.AppPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	docs.SwaggerInfo.Host = srv.Addr

	// Graceful shutdown
	errChan := make(chan error, 2)

	go func() {
		log.Infof("gRPC health server listening on %s", lis.Addr())
		if err := healthSrv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("gRPC health server failed: %w", err)
		}
	}()

	go func() {
		log.Infof("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("Shutdown signal received, stopping servers...")
	case serveErr = <-errChan:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	}
	healthSrv.Stop()

	log.Info("servers stopped gracefully")
	return serveErr
}

type routerDeps struct {
	Users       handlers.UserCreator
	Tokens      handlers.TokenIssuer
	Profile     handlers.UserProfile
	Tags        handlers.AttributeManager
	Ingredients handlers.AttributeManager
	Recipes     handlers.RecipeManager
	Images      handlers.ImageURLer
	Tokener     middlewares.Tokener
	Staff       middlewares.StaffChecker
	DB          *sqlx.DB
	Limiter     *middlewares.RateLimiter
	MediaRoot   string
	MediaURL    string
	TrustProxy  bool
	MaxUpload   int64
	CORSOrigins []string
	SwaggerURL  string
}

// newRouter mounts every route of the API. Writes run inside a request transaction.
func newRouter(d routerDeps) chi.Router {
	tx := middlewares.TxMiddleware(d.DB)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	if d.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middlewares.LoggingMiddleware(logger.Log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	r.NotFound(handlers.NotFoundHandler)
	r.MethodNotAllowed(handlers.MethodNotAllowedHandler)

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.With(tx).Post("/user/create", handlers.NewCreateUserHandler(d.Users))
		r.With(d.Limiter.Middleware).Post("/user/token", handlers.NewTokenHandler(d.Tokens))

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middlewares.AuthMiddleware(d.Tokener))

			r.Get("/user/me", handlers.NewGetMeHandler(d.Profile))
			r.With(tx).Put("/user/me", handlers.NewUpdateMeHandler(d.Profile, false))
			r.With(tx).Patch("/user/me", handlers.NewUpdateMeHandler(d.Profile, true))

			r.Route("/recipe", func(r chi.Router) {
				mountAttributeRoutes(r, "/tags", d.Tags, tx)
				mountAttributeRoutes(r, "/ingredients", d.Ingredients, tx)

				r.Get("/recipes", handlers.NewListRecipesHandler(d.Recipes, d.Images))
				r.With(tx).Post("/recipes", handlers.NewCreateRecipeHandler(d.Recipes, d.Images))
				r.Get("/recipes/{id}", handlers.NewGetRecipeHandler(d.Recipes, d.Images))
				r.With(tx).Put("/recipes/{id}", handlers.NewUpdateRecipeHandler(d.Recipes, d.Images, false))
				r.With(tx).Patch("/recipes/{id}", handlers.NewUpdateRecipeHandler(d.Recipes, d.Images, true))
				r.With(tx).Delete("/recipes/{id}", handlers.NewDeleteRecipeHandler(d.Recipes))
				r.With(tx).Post("/recipes/{id}/upload-image", handlers.NewUploadImageHandler(d.Recipes, d.Images, d.MaxUpload))
			})

			r.With(middlewares.StaffMiddleware(d.Staff)).Get("/admin/users", handlers.NewListUsersHandler(d.Profile))
		})
	})

	media := mediaPrefix(d.MediaURL)
	r.Handle(media+"/*", http.StripPrefix(media+"/", http.FileServer(http.Dir(d.MediaRoot))))
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(d.SwaggerURL)))

	return r
}

// mediaPrefix returns the route path images are served under: the path part
// of mediaURL, or /media when it has none.
func mediaPrefix(mediaURL string) string {
	p := mediaURL
	if u, err := url.Parse(mediaURL); err == nil {
		p = u.Path
	}
	p = strings.Trim(p, "/")
	if p == "" {
		return "/media"
	}
	return "/" + p
}

func mountAttributeRoutes(r chi.Router, prefix string, svc handlers.AttributeManager, tx func(http.Handler) http.Handler) {
	r.Get(prefix, handlers.NewListAttributesHandler(svc))
	r.With(tx).Post(prefix, handlers.NewCreateAttributeHandler(svc))
	r.With(tx).Put(prefix+"/{id}", handlers.NewUpdateAttributeHandler(svc, false))
	r.With(tx).Patch(prefix+"/{id}", handlers.NewUpdateAttributeHandler(svc, true))
	r.With(tx).Delete(prefix+"/{id}", handlers.NewDeleteAttributeHandler(svc))
}
