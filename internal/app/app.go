package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/club-activity/external/strava"
	"github.com/riskibarqy/club-activity/internal/config"
	"github.com/riskibarqy/club-activity/internal/domain/activity"
	"github.com/riskibarqy/club-activity/internal/domain/club"
	"github.com/riskibarqy/club-activity/internal/domain/fetchlog"
	"github.com/riskibarqy/club-activity/internal/domain/preference"
	cacherepo "github.com/riskibarqy/club-activity/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/club-activity/internal/infrastructure/repository/file"
	"github.com/riskibarqy/club-activity/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/club-activity/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/club-activity/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/club-activity/internal/platform/cache"
	idgen "github.com/riskibarqy/club-activity/internal/platform/id"
	"github.com/riskibarqy/club-activity/internal/platform/logging"
	"github.com/riskibarqy/club-activity/internal/platform/resilience"
	"github.com/riskibarqy/club-activity/internal/usecase"
)

// Services is the wired application graph shared by the API and the CLI.
type Services struct {
	Register   *usecase.RegisterService
	Ranking    *usecase.RankingService
	Throttle   *usecase.FetchThrottleService
	Preference *usecase.PreferenceService
	Club       *usecase.ClubService
	Ingestion  *usecase.IngestionService

	db *sqlx.DB
}

func (s *Services) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

type storage struct {
	register    activity.Register
	fetchLog    fetchlog.Repository
	preferences preference.Repository
	db          *sqlx.DB
}

// Build wires storage, the Strava provider and the use cases from cfg.
func Build(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Services, error) {
	if logger == nil {
		logger = logging.Default()
	}

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	register := store.register
	if cfg.RegisterCacheTTL > 0 {
		register = cacherepo.NewActivityRegister(register, basecache.NewStore(cfg.RegisterCacheTTL))
	}

	provider := newProvider(cfg, logger)

	registerSvc := usecase.NewRegisterService(register, logger)
	throttleSvc := usecase.NewFetchThrottleService(store.fetchLog, cfg.FetchCooldown, logger)
	ingestionSvc := usecase.NewIngestionService(
		provider,
		registerSvc,
		throttleSvc,
		idgen.NewUUIDGenerator(),
		usecase.IngestionConfig{
			MemberCap:     cfg.IngestMemberCap,
			PerPage:       cfg.IngestPerPage,
			MaxPages:      cfg.IngestMaxPages,
			ScreenWorkers: cfg.IngestScreenWorkers,
		},
		logger.Named("ingestion"),
	)

	return &Services{
		Register:   registerSvc,
		Ranking:    usecase.NewRankingService(registerSvc),
		Throttle:   throttleSvc,
		Preference: usecase.NewPreferenceService(store.preferences),
		Club:       usecase.NewClubService(provider),
		Ingestion:  ingestionSvc,
		db:         store.db,
	}, nil
}

func NewHTTPServer(cfg config.Config, services *Services, logger *logging.Logger) (*http.Server, error) {
	handler := httpapi.NewHandler(
		services.Register,
		services.Ranking,
		services.Throttle,
		services.Preference,
		services.Club,
		services.Ingestion,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func openStorage(ctx context.Context, cfg config.Config, logger *logging.Logger) (storage, error) {
	switch cfg.StorageBackend {
	case config.StorageMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		return storage{
			register:    memory.NewActivityRegister(nil),
			fetchLog:    memory.NewFetchLogRepository(),
			preferences: memory.NewPreferenceRepository(),
		}, nil
	case config.StoragePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return storage{}, err
		}
		logger.Info("using postgres storage", "db_name", dbNameFromURL(cfg.DBURL))
		return storage{
			register:    postgres.NewActivityRegister(db),
			fetchLog:    postgres.NewFetchLogRepository(db),
			preferences: postgres.NewPreferenceRepository(db),
			db:          db,
		}, nil
	default:
		logger.Info("using file storage", "data_dir", cfg.DataDir)
		return storage{
			register:    file.NewActivityRegister(cfg.DataDir),
			fetchLog:    file.NewFetchLogRepository(cfg.DataDir, logger),
			preferences: file.NewPreferenceRepository(cfg.DataDir),
		}, nil
	}
}

func newProvider(cfg config.Config, logger *logging.Logger) club.Provider {
	if !cfg.StravaConfigured() {
		logger.Warn("STRAVA_ACCESS_TOKEN not set, remote calls will be rejected upstream")
	}

	var provider club.Provider = strava.NewClient(strava.ClientConfig{
		BaseURL:       cfg.StravaBaseURL,
		Token:         cfg.StravaAccessToken,
		Timeout:       cfg.StravaTimeout,
		MaxRetries:    cfg.StravaMaxRetries,
		RatePerMinute: cfg.StravaRatePerMinute,
		Logger:        logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.StravaCircuitEnabled,
			FailureThreshold: cfg.StravaCircuitFailureCount,
			OpenTimeout:      cfg.StravaCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.StravaCircuitHalfOpenMaxReq,
		},
	})
	if cfg.ProviderCacheEnabled {
		provider = cacherepo.NewActivityProvider(provider, basecache.NewStore(cfg.ProviderCacheTTL))
	}
	return provider
}
