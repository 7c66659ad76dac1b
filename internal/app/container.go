package app

import (
	"context"
	"log"
	"time"

	"job-portal/internal/config"
	"job-portal/internal/database"
	dbpostgres "job-portal/internal/database/postgres"
	"job-portal/internal/database/schema"
	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/domain/application"
	"job-portal/internal/domain/job"
	"job-portal/internal/domain/message"
	"job-portal/internal/domain/review"
	"job-portal/internal/domain/session"
	"job-portal/internal/domain/user"
	"job-portal/internal/infrastructure/cache"
	"job-portal/internal/infrastructure/identity"
	"job-portal/internal/pkg/jwt"
	"job-portal/internal/repository"
	"job-portal/internal/seeder"
	"job-portal/internal/usecase"
	"job-portal/internal/ws"
)

type Repositories struct {
	Users        user.Repository
	Sessions     session.Repository
	Jobs         job.Repository
	Applications application.Repository
	Messages     message.Repository
	Reviews      review.Repository
}

func PostgresRepositories(db database.DB) Repositories {
	return Repositories{
		Users:        repository.NewPostgresUserRepository(db),
		Sessions:     repository.NewPostgresSessionRepository(db),
		Jobs:         repository.NewPostgresJobRepository(db),
		Applications: repository.NewPostgresApplicationRepository(db),
		Messages:     repository.NewPostgresMessageRepository(db),
		Reviews:      repository.NewPostgresReviewRepository(db),
	}
}

// Deps are the outside-world collaborators of the container. Nil DB and
// RateCounter are allowed (readiness reports unavailable, rate limiting is off).
type Deps struct {
	DB          database.DB
	Repos       Repositories
	Identity    identity.Client
	RateCounter middleware.Counter
	Options     []usecase.Option
}

type Container struct {
	Config config.Config
	Logger *log.Logger

	DB          database.DB
	Redis       *cache.Redis
	RateCounter middleware.Counter
	Repos       Repositories
	Tickets     jwt.Service
	Hub         *ws.Hub

	Gate         *usecase.SessionGate
	Auth         *usecase.Auth
	Users        *usecase.Users
	Jobs         *usecase.Jobs
	Applications *usecase.Applications
	Messages     *usecase.Messages
	Reviews      *usecase.Reviews
}

// NewContainer connects Postgres and Redis, applies the schema and wires
// every service on top.
func NewContainer(ctx context.Context, cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := schema.Apply(connectCtx, db, logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	repos := PostgresRepositories(db)
	if cfg.App.SeedDemoData {
		runner := seeder.Runner{Seeders: seeder.Defaults()}
		if err := runner.Run(connectCtx, seeder.Target{Users: repos.Users, Jobs: repos.Jobs}); err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Printf("demo data seeded")
	}

	redis := cache.NewRedis(ctx, cfg.Redis, logger)

	c := Assemble(cfg, logger, Deps{
		DB:          db,
		Repos:       repos,
		Identity:    identity.NewClient(cfg.Auth.IdentityProviderURL, 10*time.Second, logger),
		RateCounter: redis,
		Options:     []usecase.Option{usecase.WithLogger(logger)},
	})
	c.Redis = redis
	return c, nil
}

func Assemble(cfg config.Config, logger *log.Logger, deps Deps) *Container {
	if logger == nil {
		logger = log.Default()
	}
	opts := deps.Options
	r := deps.Repos
	hub := ws.NewHub(logger)

	return &Container{
		Config:      cfg,
		Logger:      logger,
		DB:          deps.DB,
		RateCounter: deps.RateCounter,
		Repos:       r,
		Tickets:     jwt.NewHMACService(cfg.Auth.RealtimeTicketSecret, cfg.Auth.RealtimeTicketTTL),
		Hub:         hub,

		Gate:         usecase.NewSessionGate(r.Sessions, r.Users, opts...),
		Auth:         usecase.NewAuth(deps.Identity, r.Users, r.Sessions, cfg.Auth.SessionTTL, opts...),
		Users:        usecase.NewUsers(r.Users, opts...),
		Jobs:         usecase.NewJobs(r.Jobs, opts...),
		Applications: usecase.NewApplications(r.Applications, r.Jobs, opts...),
		Messages:     usecase.NewMessages(r.Messages, r.Users, hub, opts...),
		Reviews:      usecase.NewReviews(r.Reviews, r.Users, opts...),
	}
}

// Start launches the realtime hub; it stops when ctx is cancelled.
func (c *Container) Start(ctx context.Context) {
	go c.Hub.Run(ctx)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Printf("redis close error: %v", err)
		}
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
