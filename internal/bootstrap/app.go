package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"recruitedge-api/internal/agents"
	"recruitedge-api/internal/auditlogs"
	"recruitedge-api/internal/billing"
	"recruitedge-api/internal/coverletters"
	"recruitedge-api/internal/interactions"
	"recruitedge-api/internal/jobpostings"
	"recruitedge-api/internal/mockai"
	"recruitedge-api/internal/moderation"
	"recruitedge-api/internal/monitor"
	"recruitedge-api/internal/pipeline"
	"recruitedge-api/internal/queue"
	"recruitedge-api/internal/resumes"
	"recruitedge-api/internal/salary"
	"recruitedge-api/internal/shared/config"
	"recruitedge-api/internal/shared/server"
	"recruitedge-api/internal/shared/storage/db"
	"recruitedge-api/internal/shared/storage/object"
	localstore "recruitedge-api/internal/shared/storage/object/local"
	s3store "recruitedge-api/internal/shared/storage/object/s3"
	"recruitedge-api/internal/skillgaps"
	"recruitedge-api/internal/usage"
)

// Queue is an event queue backend the API publishes to.
type Queue interface {
	queue.Publisher
	Ping(ctx context.Context) error
}

// App holds shared dependencies and the assembled router.
type App struct {
	Config    config.Config
	Router    *gin.Engine
	DB        *sql.DB
	Store     object.ObjectStore
	Queue     Queue
	AI        *mockai.Engine
	Usage     *usage.Service
	AuditLogs *auditlogs.Service
	Tracker   interactions.Tracker
	Agents    map[string]server.Registrar
}

// Build prepares shared dependencies and wires every agent onto the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	engine, err := mockai.New(cfg.MockAIDelay)
	if err != nil {
		return nil, fmt.Errorf("load mock ai catalog: %w", err)
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Queue:  queueClient,
		AI:     engine,
	}
	interactionsRepo := buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:       app.Config,
		Agents:       app.Agents,
		Interactions: interactions.NewHandler(interactionsRepo),
	})
	return app, nil
}

// Close releases the queue connection, if any.
func (a *App) Close() error {
	if closer, ok := a.Queue.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if config.IsDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if config.IsDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if config.IsDevLike(cfg.Env) {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			_ = sqlDB.Close()
			return nil, nil
		}
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, errors.New("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (Queue, error) {
	switch cfg.EventQueue {
	case "sqs":
		return queue.NewSQSClient(ctx, cfg.AWSRegion, cfg.SQSQueueURL)
	case "amqp":
		return queue.NewAMQPClient(cfg.AMQPURL, cfg.AMQPQueue)
	default:
		return nil, nil
	}
}

func buildServices(app *App) interactions.Repo {
	var (
		interactionRepo  interactions.Repo
		auditRepo        auditlogs.Repo
		resumeRepo       resumes.Repo
		coverLetterRepo  coverletters.Repo
		salaryRepo       salary.Repo
		skillRepo        skillgaps.Repo
		postingRepo      jobpostings.Repo
		candidateRepo    pipeline.Repo
		subscriptionRepo billing.SubscriptionRepo
		invoiceRepo      billing.InvoiceRepo
		healthRepo       monitor.Repo
		flagRepo         moderation.Repo
	)
	if app.DB != nil {
		interactionRepo = &interactions.PGRepo{DB: app.DB}
		auditRepo = &auditlogs.PGRepo{DB: app.DB}
		resumeRepo = &resumes.PGRepo{DB: app.DB}
		coverLetterRepo = &coverletters.PGRepo{DB: app.DB}
		salaryRepo = &salary.PGRepo{DB: app.DB}
		skillRepo = &skillgaps.PGRepo{DB: app.DB}
		postingRepo = &jobpostings.PGRepo{DB: app.DB}
		candidateRepo = &pipeline.PGRepo{DB: app.DB}
		subscriptionRepo = &billing.PGSubscriptionRepo{DB: app.DB}
		invoiceRepo = &billing.PGInvoiceRepo{DB: app.DB}
		healthRepo = &monitor.PGRepo{DB: app.DB}
		flagRepo = &moderation.PGRepo{DB: app.DB}
		app.Usage = usage.NewPostgresService(usage.NewPGStore(app.DB))
	} else {
		interactionRepo = interactions.NewMemoryRepo()
		auditRepo = auditlogs.NewMemoryRepo()
		resumeRepo = resumes.NewMemoryRepo()
		coverLetterRepo = coverletters.NewMemoryRepo()
		salaryRepo = salary.NewMemoryRepo()
		skillRepo = skillgaps.NewMemoryRepo()
		postingRepo = jobpostings.NewMemoryRepo()
		candidateRepo = pipeline.NewMemoryRepo()
		subscriptionRepo = billing.NewMemorySubscriptionRepo()
		invoiceRepo = billing.NewMemoryInvoiceRepo()
		healthRepo = monitor.NewMemoryRepo()
		flagRepo = moderation.NewMemoryRepo()
		app.Usage = usage.NewService()
	}

	app.AuditLogs = &auditlogs.Service{Repo: auditRepo}

	// Without a queue, interaction events go straight to the audit log.
	var publisher queue.Publisher = app.AuditLogs.Publisher()
	if app.Queue != nil {
		publisher = app.Queue
	}
	app.Tracker = &interactions.Recorder{Repo: interactionRepo, Publisher: publisher}

	postings := &jobpostings.Service{Repo: postingRepo, Tracker: app.Tracker}
	usageHandler := usage.NewHandler(app.Usage, config.IsDevLike(app.Config.Env))

	app.Agents = map[string]server.Registrar{
		agents.ResumeBuilder: resumes.NewHandler(&resumes.Service{
			Repo:    resumeRepo,
			Store:   app.Store,
			AI:      app.AI,
			Usage:   app.Usage,
			Tracker: app.Tracker,
		}),
		agents.CoverLetterWriter: coverletters.NewHandler(&coverletters.Service{
			Repo:    coverLetterRepo,
			AI:      app.AI,
			Usage:   app.Usage,
			Tracker: app.Tracker,
		}),
		agents.SalaryNegotiator: salary.NewHandler(&salary.Service{
			Repo:    salaryRepo,
			AI:      app.AI,
			Usage:   app.Usage,
			Tracker: app.Tracker,
		}),
		agents.SkillGapAnalyzer: skillgaps.NewHandler(&skillgaps.Service{
			Repo:    skillRepo,
			AI:      app.AI,
			Tracker: app.Tracker,
		}),
		agents.JobPostingManager: jobpostings.NewHandler(postings),
		agents.TalentPipeline: pipeline.NewHandler(&pipeline.Service{
			Repo:     candidateRepo,
			Postings: postings,
			Tracker:  app.Tracker,
		}),
		agents.BillingManager: billing.NewHandler(&billing.Service{
			Subscriptions: subscriptionRepo,
			Invoices:      invoiceRepo,
			Plans:         app.Usage,
			Tracker:       app.Tracker,
		}, usageHandler),
		agents.AuditLogViewer: auditlogs.NewHandler(app.AuditLogs),
		agents.SystemMonitor: monitor.NewHandler(&monitor.Service{
			Repo:    healthRepo,
			Probes:  buildProbes(app),
			Tracker: app.Tracker,
		}),
		agents.ContentModerator: moderation.NewHandler(&moderation.Service{
			Repo:    flagRepo,
			Tracker: app.Tracker,
		}),
	}
	return interactionRepo
}

func buildProbes(app *App) []monitor.Probe {
	database := monitor.Probe{Component: "database", Check: func(context.Context) error { return nil }}
	if app.DB != nil {
		database.Check = app.DB.PingContext
	}
	eventQueue := monitor.Probe{Component: "event_queue", Check: func(context.Context) error { return nil }}
	if app.Queue != nil {
		eventQueue = monitor.PingProbe("event_queue", app.Queue)
	}
	return []monitor.Probe{
		database,
		monitor.PingProbe("object_store", app.Store),
		eventQueue,
	}
}
