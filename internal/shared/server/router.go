package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumelens-backend/internal/analyses"
	"resumelens-backend/internal/cache"
	"resumelens-backend/internal/extract"
	"resumelens-backend/internal/llm"
	"resumelens-backend/internal/llm/deepseek"
	"resumelens-backend/internal/shared/apperror"
	"resumelens-backend/internal/shared/config"
	"resumelens-backend/internal/shared/metrics"
	"resumelens-backend/internal/shared/server/middleware"
	"resumelens-backend/internal/shared/server/respond"
	"resumelens-backend/internal/shared/storage/db"
	"resumelens-backend/internal/shared/storage/object"
	localstore "resumelens-backend/internal/shared/storage/object/local"
	s3store "resumelens-backend/internal/shared/storage/object/s3"
)

// NewRouter constructs the Gin engine with middleware, dependencies and
// routes registered.
func NewRouter(cfg config.Config) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	sqlDB := buildDB(cfg)
	store := buildStore(cfg)

	var cacheRepo cache.Repo
	if sqlDB != nil {
		cacheRepo = &cache.PGRepo{DB: sqlDB}
	} else {
		cacheRepo = cache.NewMemoryRepo()
	}
	analysisCache := cache.New(cacheRepo)
	if cfg.CacheTTL > 0 {
		analysisCache.TTL = cfg.CacheTTL
	}

	var llmClient llm.Client
	if cfg.InferenceAPIKey != "" {
		client, err := deepseek.NewClient(cfg.InferenceAPIKey, cfg.InferenceURL, cfg.InferenceModel, cfg.InferenceWait)
		if err != nil {
			return nil, err
		}
		llmClient = client
	} else {
		log.Printf("DEEPSEEK_API_KEY empty; analysis requests will be served by the fallback analyzer")
		llmClient = unavailableClient{}
	}

	extractHandler := extract.NewHandler(extract.New(), store)
	analysisHandler := analyses.NewHandler(analyses.NewService(analysisCache, llmClient))

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	extractHandler.Register(api)
	analysisHandler.Register(api)

	r.GET("/metrics", metrics.Handler())

	return r, nil
}

func buildDB(cfg config.Config) *sql.DB {
	if cfg.DatabaseURL == "" {
		return nil
	}
	ctx := context.Background()
	conn, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		log.Printf("failed to connect database, falling back to memory cache: %v", err)
		return nil
	}
	if err := db.RunMigrations(ctx, conn); err != nil {
		log.Printf("failed to run migrations, falling back to memory cache: %v", err)
		conn.Close()
		return nil
	}
	return conn
}

func buildStore(cfg config.Config) object.ObjectStore {
	switch cfg.ObjectStoreType {
	case "s3":
		store, err := s3store.New(context.Background(), cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			log.Printf("failed to build s3 store, uploads will not be archived: %v", err)
			return nil
		}
		return store
	case "none":
		return nil
	default:
		return localstore.New(cfg.LocalStoreDir)
	}
}

var errUnavailable = apperror.UpstreamTimeout("inference client not configured", nil)

// unavailableClient stands in when no inference credentials are
// configured. Every call reports a timeout-class failure so the handler
// routes the request to the fallback analyzer.
type unavailableClient struct{}

func (unavailableClient) AnalyzeResume(ctx context.Context, input llm.AnalyzeInput) (string, error) {
	return "", errUnavailable
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
