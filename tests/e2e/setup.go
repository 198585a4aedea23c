//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"court-booking-engine/cmd/bootstrap"
	"court-booking-engine/cmd/bootstrap/components"
	"court-booking-engine/internal/infra/db"
	"court-booking-engine/internal/infra/events"
	"court-booking-engine/internal/pkg/config"
	"court-booking-engine/tests/common/authtest"
	"court-booking-engine/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	pgUser     = "booking"
	pgPassword = "booking"
)

var (
	postgresOnce sync.Once
	postgresC    testcontainers.Container
	postgresErr  error

	redisOnce sync.Once
	redisC    testcontainers.Container
	redisErr  error
)

type endpoint struct {
	Host string
	Port nat.Port
}

func (e endpoint) Addr() string { return e.Host + ":" + e.Port.Port() }

// environment is what one suite gets: its own database, a stream name on the shared
// Redis, and an application wired against both.
type environment struct {
	pool   *pgxpool.Pool
	redis  *redis.Client
	router *gin.Engine
	cfg    config.Config
}

func setupEnvironment(t *testing.T) environment {
	t.Helper()
	gin.SetMode(gin.TestMode)

	pg := containerEndpoint(t, startPostgres, "5432/tcp")
	rd := containerEndpoint(t, startRedis, "6379/tcp")

	dbCfg := createDatabase(t, pg)
	pool, _, err := db.Connect(dbCfg)
	require.NoError(t, err, "connect to test database")
	t.Cleanup(pool.Close)

	require.NoError(t, applyMigrations(pool), "apply migrations")
	require.NoError(t, dbtest.SeedReferenceData(pool), "seed reference data")

	cfg := config.NewTestConfig()
	cfg.DB = dbCfg
	cfg.Store.Driver = config.StoreDriverPostgres
	cfg.Redis.Addr = rd.Addr()
	cfg.Redis.Stream = "booking_events_" + dbCfg.DBName

	rc := events.NewRedisClient(cfg.Redis)
	t.Cleanup(func() { _ = rc.Close() })

	router, app, err := startApp(cfg)
	require.NoError(t, err, "start application")
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop application", "error", err.Error())
		}
	})

	slog.Info("e2e environment ready", "database", dbCfg.DBName, "postgres", pg.Addr(), "redis", rd.Addr())
	return environment{pool: pool, redis: rc, router: router, cfg: cfg}
}

// createDatabase makes a fresh database for the calling suite and drops it afterwards.
func createDatabase(t *testing.T, pg endpoint) config.DBConfig {
	t.Helper()

	name := "booking_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	adminDSN := fmt.Sprintf("postgres://%s:%s@%s/postgres?sslmode=disable", pgUser, pgPassword, pg.Addr())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err, "open admin connection")
	defer admin.Close()

	// CREATE DATABASE can collide with template1 being in use by a parallel suite
	backoff := 250 * time.Millisecond
	for attempt := 1; ; attempt++ {
		_, err = admin.Exec(ctx, "CREATE DATABASE "+name)
		if err == nil || attempt == 5 {
			break
		}
		slog.Warn("create database failed, retrying", "attempt", attempt, "error", err.Error())
		time.Sleep(backoff)
		backoff = min(2*backoff, 2*time.Second)
	}
	require.NoError(t, err, "create test database")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		admin, err := pgxpool.New(ctx, adminDSN)
		if err != nil {
			slog.Warn("drop database skipped", "database", name, "error", err.Error())
			return
		}
		defer admin.Close()
		if _, err := admin.Exec(ctx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			slog.Warn("drop database failed", "database", name, "error", err.Error())
		}
	})

	return config.DBConfig{
		Host:     pg.Host,
		Port:     pg.Port.Port(),
		User:     pgUser,
		Password: pgPassword,
		DBName:   name,
		SSLMode:  "disable",
		TimeZone: "Asia/Tokyo",
		MaxConns: 10,
	}
}

// applyMigrations runs every migrations/*.sql file in name order.
func applyMigrations(pool *pgxpool.Pool) error {
	dir, err := migrationsDir()
	if err != nil {
		return err
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return err
	}
	sort.Strings(files)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	for _, f := range files {
		sql, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("apply %s: %w", filepath.Base(f), err)
		}
	}
	return nil
}

// migrationsDir walks up from the package under test to the module root.
func migrationsDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, "migrations"), nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found above working directory")
		}
		dir = parent
	}
}

// startApp boots the production fx graph with cfg in place of the environment config.
func startApp(cfg config.Config) (*gin.Engine, *fx.App, error) {
	var router *gin.Engine

	app := fx.New(
		fx.Supply(cfg),
		fx.Provide(
			bootstrap.NewBookingPolicy,
			func() *gin.Engine { return gin.New() },
		),
		bootstrap.LoggerModule,
		bootstrap.DBModule,
		bootstrap.JWTModule,
		bootstrap.ObservabilityModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.Start(ctx); err != nil {
		return nil, nil, err
	}
	return router, app, nil
}

// ------------------------------------------------------------
// containers, one of each per test process
// ------------------------------------------------------------

func startPostgres() (testcontainers.Container, error) {
	postgresOnce.Do(func() {
		postgresC, postgresErr = runContainer(testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       "postgres",
			},
			Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
			Cmd: []string{
				"postgres",
				"-c", "fsync=off",
				"-c", "synchronous_commit=off",
				"-c", "full_page_writes=off",
				"-c", "max_connections=200",
			},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", pgUser, pgPassword, host, port.Port())
			}).WithStartupTimeout(60 * time.Second),
			Labels: map[string]string{"purpose": "booking-e2e"},
		})
	})
	return postgresC, postgresErr
}

func startRedis() (testcontainers.Container, error) {
	redisOnce.Do(func() {
		redisC, redisErr = runContainer(testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
			Labels:       map[string]string{"purpose": "booking-e2e"},
		})
	})
	return redisC, redisErr
}

// runContainer leaves teardown to the reaper so the shared containers outlive single suites.
func runContainer(req testcontainers.ContainerRequest) (testcontainers.Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()
	return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
}

func containerEndpoint(t *testing.T, start func() (testcontainers.Container, error), port string) endpoint {
	t.Helper()

	c, err := start()
	require.NoError(t, err, "start container for %s", port)

	ctx := context.Background()
	mapped, err := c.MappedPort(ctx, nat.Port(port))
	require.NoError(t, err, "map port %s", port)
	host, err := c.Host(ctx)
	require.NoError(t, err, "resolve container host")
	return endpoint{Host: host, Port: mapped}
}

// ------------------------------------------------------------
// shared suite
// ------------------------------------------------------------

type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Config config.Config
	JWT    *authtest.JWTHelper
}

func (s *SharedSuite) SetupSuite() {
	env := setupEnvironment(s.T())
	s.DB = env.pool
	s.Redis = env.redis
	s.Router = env.router
	s.Config = env.cfg
	s.JWT = authtest.NewJWTHelper(env.cfg.JWT)
}

// SetupSubTest gives every s.Run case empty tables and an empty event stream.
func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "reset database")
	require.NoError(s.T(), s.Redis.Del(context.Background(), s.Config.Redis.Stream).Err(), "reset event stream")
}

// StreamEvents returns the type field of every event on the suite's stream, oldest first.
func (s *SharedSuite) StreamEvents() []string {
	msgs, err := s.Redis.XRange(context.Background(), s.Config.Redis.Stream, "-", "+").Result()
	require.NoError(s.T(), err, "read event stream")
	types := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if v, ok := m.Values["type"].(string); ok {
			types = append(types, v)
		}
	}
	return types
}
