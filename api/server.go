package api

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	db "github.com/SwiftKart/SwiftKart-Backend/db/sqlc"
	basemodels "github.com/SwiftKart/SwiftKart-Backend/models"
	"github.com/SwiftKart/SwiftKart-Backend/services/currency"
	"github.com/SwiftKart/SwiftKart-Backend/services/monitoring/logging"
	"github.com/SwiftKart/SwiftKart-Backend/services/monitoring/tasks"
	redis_service "github.com/SwiftKart/SwiftKart-Backend/services/redis"
	"github.com/SwiftKart/SwiftKart-Backend/services/security"
	"github.com/SwiftKart/SwiftKart-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

type Server struct {
	router *gin.Engine
	store  *db.Store
	conn   *sql.DB
	config *utils.Config
	logger *logging.Logger
	redis  *redis_service.RedisService
	auth   *AuthMiddleware
	refs   *utils.ReferenceGenerator
	tasks  *tasks.Scheduler
}

// Carts untouched for this long get their items pruned by the
// background scheduler.
const staleCartAge = 30 * 24 * time.Hour

func NewServer(envPath string) *Server {
	c, err := utils.LoadConfig(envPath)
	if err != nil {
		panic(fmt.Sprintf("Could not load config: %v", err))
	}

	conn, err := sql.Open(c.DBDriver, utils.GetDBSource(c, c.DBName))
	if err != nil {
		panic(fmt.Sprintf("Could not load DB: %v", err))
	}

	migrationsPath := c.MigrationsPath
	if migrationsPath == "" {
		migrationsPath = "file://db/migrations"
	}

	m, err := migrate.New(migrationsPath, utils.GetDBSource(c, c.DBName))
	if err != nil {
		log.Fatalf("Unable to instantiate the database schema migrator - %v", err)
	}

	if err := m.Up(); err != nil {
		if err != migrate.ErrNoChange {
			log.Fatalf("Unable to migrate up to the latest database schema - %v", err)
		}
	}

	l := logging.NewLogger(c)
	l.Info(fmt.Sprintf("starting with config: %+v", c.Redact()))

	// Redis is optional; catalog reads fall back to the database when
	// the cache is absent.
	var rs *redis_service.RedisService
	if c.RedisHost != "" {
		rs, err = redis_service.NewRedisService(&redis_service.RedisConfig{
			Host:     c.RedisHost,
			Port:     c.RedisPort,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		})
		if err != nil {
			l.Error(fmt.Sprintf("redis unavailable, continuing without cache: %v", err))
			rs = nil
		}
	}

	refs, err := utils.NewReferenceGenerator(c.ReferenceSalt)
	if err != nil {
		panic(fmt.Sprintf("Could not build reference generator: %v", err))
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currency_code", func(fl validator.FieldLevel) bool {
			return currency.IsValidCode(fl.Field().String())
		})
	}

	g := gin.Default()
	g.Use(CORSMiddleware())
	g.Use(l.LoggingMiddleWare())

	auth := NewAuthMiddleware(utils.NewJWTToken(c), security.NewCache())
	store := db.NewStore(conn)

	scheduler := tasks.NewScheduler(l)
	if err := scheduler.AddRecurring("cart-prune", "stale cart pruning", 24*time.Hour, func(ctx context.Context) error {
		pruned, err := store.PruneStaleCartItems(ctx, time.Now().Add(-staleCartAge))
		if err != nil {
			return err
		}
		if pruned > 0 {
			l.Info(fmt.Sprintf("pruned %d stale cart items", pruned))
		}
		return nil
	}); err != nil {
		panic(fmt.Sprintf("Could not register scheduler jobs: %v", err))
	}

	return &Server{
		router: g,
		store:  store,
		conn:   conn,
		config: c,
		logger: l,
		redis:  rs,
		auth:   auth,
		refs:   refs,
		tasks:  scheduler,
	}
}

func (s *Server) Start() {

	dr := basemodels.SuccessResponse{
		Status:  "success",
		Message: "Welcome to SwiftKart!",
		Version: utils.REVISION,
	}

	s.router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dr)
	})

	/// Register Object Routers Below
	Customer{}.router(s)
	Wallet{}.router(s)
	Catalog{}.router(s)
	Cart{}.router(s)
	Order{}.router(s)

	s.tasks.Start()

	if err := s.router.Run(fmt.Sprintf(":%v", s.config.ServerPort)); err != nil {
		s.logger.Fatal(fmt.Sprintf("server stopped: %v", err))
	}
}

// Stop releases the server's external connections.
func (s *Server) Stop() {
	s.tasks.Stop()
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error(fmt.Sprintf("error closing redis: %v", err))
		}
	}
	if err := s.conn.Close(); err != nil {
		s.logger.Error(fmt.Sprintf("error closing database: %v", err))
	}
}
