package app

import (
	"context"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/domain/matching"
	"jobboard/internal/infrastructure/cache"
	"jobboard/internal/infrastructure/mail"
	"jobboard/internal/infrastructure/persistence/postgres"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/scheduler"
	"jobboard/internal/usecase"
	"jobboard/internal/ws"

	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

// Container owns every long-lived dependency of the server process.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Cache  *cache.Redis
	JWT    jwt.Service
	Hub    *ws.Hub

	Users        *postgres.UserRepository
	Jobs         *postgres.JobRepository
	Applications *postgres.ApplicationRepository

	AuthUC           *usecase.Auth
	UserUC           *usecase.User
	JobUC            *usecase.Job
	RecommendationUC *usecase.JobRecommendation
	ApplicationUC    *usecase.Application
	StatsUC          *usecase.Stats
	NotificationUC   *usecase.Notification

	Scheduler *scheduler.Scheduler
}

// NewDatabase opens the pool alone, for commands that need nothing else.
func NewDatabase(cfg config.Config, logger *zap.Logger) (database.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return dbpostgres.Connect(ctx, cfg.Database, logger)
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := NewDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  cache.NewRedis(cfg.Redis.URL, cfg.Redis.TTL, logger.Named("cache")),
		JWT:    jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL, cfg.JWT.Issuer),
		Hub:    ws.NewHub(logger.Named("ws")),

		Users:        postgres.NewUserRepository(db),
		Jobs:         postgres.NewJobRepository(db),
		Applications: postgres.NewApplicationRepository(db),
	}

	mailer := newMailer(cfg.Mail, logger)
	opts := matching.Options{
		SimilarThreshold: cfg.Matching.SimilarThreshold,
		MatchThreshold:   cfg.Matching.ProfileThreshold,
		Limit:            cfg.Matching.Limit,
	}

	c.AuthUC = usecase.NewAuthUsecase(usecase.AuthDeps{
		Users:              c.Users,
		JWT:                c.JWT,
		Mailer:             mailer,
		FrontEndURL:        cfg.App.FrontEndURL,
		EmployerAccessCode: cfg.Signup.EmployerAccessCode,
		Logger:             logger.Named("auth"),
	})
	c.NotificationUC = usecase.NewNotificationUsecase(usecase.NotificationDeps{
		Users:       c.Users,
		Mailer:      mailer,
		Pusher:      c.Hub,
		FrontEndURL: cfg.App.FrontEndURL,
		Threshold:   cfg.Matching.NotifyThreshold,
		Logger:      logger.Named("notify"),
	})
	c.UserUC = usecase.NewUserUsecase(c.Users, c.Jobs, c.Cache, logger.Named("users"))
	c.JobUC = usecase.NewJobUsecase(c.Jobs, c.Users, c.NotificationUC, c.Cache, logger.Named("jobs"))
	c.RecommendationUC = usecase.NewJobRecommendationUsecase(c.Jobs, c.Users, c.Applications, c.Cache, opts, logger.Named("recommend"))
	c.ApplicationUC = usecase.NewApplicationUsecase(c.Applications, c.Jobs, c.Users, c.Cache, logger.Named("applications"))
	c.StatsUC = usecase.NewStatsUsecase(c.Users, c.Jobs, c.Applications)

	c.Scheduler = scheduler.New(c.Users, cfg.Scheduler.ResetTokenSweepSpec, logger.Named("scheduler")).WithLocker(c.Cache)

	return c, nil
}

func newMailer(cfg config.MailConfig, logger *zap.Logger) mail.Sender {
	if !cfg.Enabled() {
		logger.Warn("smtp not configured, mail is logged instead of sent")
		return mail.NewLogSender(logger.Named("mail"))
	}
	return mail.NewSMTPSender(mail.SMTPConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		From:     cfg.From,
	})
}

// Close drains background notification work before releasing connections.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.JobUC != nil {
		c.JobUC.Wait()
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
