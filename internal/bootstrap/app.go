package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/AndyisCodingMate/housesync-product/internal/account"
	googleauth "github.com/AndyisCodingMate/housesync-product/internal/auth"
	"github.com/AndyisCodingMate/housesync-product/internal/contracts"
	"github.com/AndyisCodingMate/housesync-product/internal/documents"
	"github.com/AndyisCodingMate/housesync-product/internal/listings"
	"github.com/AndyisCodingMate/housesync-product/internal/llm"
	openai "github.com/AndyisCodingMate/housesync-product/internal/llm/openai"
	"github.com/AndyisCodingMate/housesync-product/internal/newsletter"
	"github.com/AndyisCodingMate/housesync-product/internal/profilepictures"
	"github.com/AndyisCodingMate/housesync-product/internal/queue"
	"github.com/AndyisCodingMate/housesync-product/internal/shared/config"
	"github.com/AndyisCodingMate/housesync-product/internal/shared/server"
	"github.com/AndyisCodingMate/housesync-product/internal/shared/storage/db"
	"github.com/AndyisCodingMate/housesync-product/internal/shared/storage/object"
	localstore "github.com/AndyisCodingMate/housesync-product/internal/shared/storage/object/local"
	miniostore "github.com/AndyisCodingMate/housesync-product/internal/shared/storage/object/minio"
	s3store "github.com/AndyisCodingMate/housesync-product/internal/shared/storage/object/s3"
	"github.com/AndyisCodingMate/housesync-product/internal/users"
	"github.com/AndyisCodingMate/housesync-product/internal/verification"
)

const reclaimSweepInterval = 10 * time.Minute

// App holds shared dependencies for the API server and the worker.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Queue  queue.Client
	Redis  *redis.Client

	UsersRepo     users.Repo
	DocumentsRepo documents.DocumentsRepo
	PicturesRepo  profilepictures.Repo
	ListingsRepo  listings.Repo
	ContractsRepo contracts.Repo

	UsersService     *users.Service
	DocumentsService *documents.Service
	PicturesService  *profilepictures.Service
	ListingsService  *listings.Service
	ContractsService *contracts.Service
	AccountService   *account.Service
	Reclaimer        *profilepictures.Reclaimer

	VerificationClient    *verification.Client
	VerificationProcessor *verification.Processor
	GoogleAuth            *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
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

	var rdb *redis.Client
	if strings.TrimSpace(cfg.RedisAddr) != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Queue:  queueClient,
		Redis:  rdb,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	filesDir := ""
	if cfg.ObjectStoreType == "local" {
		filesDir = cfg.LocalStoreDir
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:                 cfg,
		UsersHandler:           users.NewHandler(app.UsersService),
		GoogleAuth:             app.GoogleAuth,
		DocumentsHandler:       documents.NewHandler(app.DocumentsService),
		ProfilePicturesHandler: profilepictures.NewHandler(app.PicturesService),
		ListingsHandler:        listings.NewHandler(app.ListingsService),
		ContractsHandler:       contracts.NewHandler(app.ContractsService),
		VerificationHandler:    verification.NewHandler(app.VerificationClient),
		NewsletterHandler:      newsletter.NewHandler(cfg.NewsletterScriptURL),
		AccountHandler:         account.NewHandler(app.AccountService),
		FilesDir:               filesDir,
	})

	return app, nil
}

// Close releases background resources. Safe to call once after Build.
func (a *App) Close() {
	if a.Reclaimer != nil {
		a.Reclaimer.Close()
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	case "minio":
		return miniostore.New(ctx, miniostore.Options{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
	default:
		return localstore.New(cfg.LocalStoreDir, cfg.PublicBaseURL), nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.VerifyQueueURL) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx)
}

// llmBaseURL resolves the chat-completion endpoint: an explicit LLM_BASE_URL
// wins, otherwise LLM_PROVIDER picks the provider's default (the openai
// client itself defaults to api.openai.com when left empty).
func llmBaseURL(cfg config.Config) string {
	if strings.TrimSpace(cfg.LLMBaseURL) != "" {
		return cfg.LLMBaseURL
	}
	if strings.EqualFold(strings.TrimSpace(cfg.LLMProvider), "deepseek") {
		return "https://api.deepseek.com/v1"
	}
	return ""
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	cfg := app.Config

	var userRepo users.Repo
	var docRepo documents.DocumentsRepo
	var picRepo profilepictures.Repo
	var listingRepo listings.Repo
	var contractRepo contracts.Repo

	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		docRepo = &documents.PGRepo{DB: app.DB}
		picRepo = &profilepictures.PGRepo{DB: app.DB}
		listingRepo = &listings.PGRepo{DB: app.DB}
		contractRepo = &contracts.PGRepo{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
		docRepo = documents.NewMemoryRepo()
		picRepo = profilepictures.NewMemoryRepo()
		listingRepo = listings.NewMemoryRepo()
		contractRepo = contracts.NewMemoryRepo()
	}

	reclaimer := profilepictures.NewReclaimer(picRepo, app.Store, reclaimSweepInterval)
	picturesSvc := profilepictures.NewService(app.Store, picRepo, profilepictures.NewCache(app.Redis), reclaimer)

	docSvc := documents.NewService(app.Store, docRepo, app.Queue, picturesSvc)

	llmClient := llm.Client(llm.PlaceholderClient{})
	if strings.TrimSpace(cfg.LLMAPIKey) != "" && strings.TrimSpace(cfg.LLMModel) != "" {
		client, err := openai.NewClient(cfg.LLMAPIKey, cfg.LLMModel, llmBaseURL(cfg))
		if err != nil {
			return err
		}
		llmClient = client
	}

	userSvc := users.NewService(userRepo)
	googleAuthSvc := googleauth.NewGoogleService(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
		cfg.UIRedirectURL,
		userSvc,
	)

	verifyClient := verification.NewClient(cfg.TamperAPIURL, cfg.TamperAPIToken)

	app.UsersRepo = userRepo
	app.DocumentsRepo = docRepo
	app.PicturesRepo = picRepo
	app.ListingsRepo = listingRepo
	app.ContractsRepo = contractRepo
	app.UsersService = userSvc
	app.DocumentsService = docSvc
	app.PicturesService = picturesSvc
	app.ListingsService = listings.NewService(listingRepo)
	app.ContractsService = contracts.NewService(contractRepo, llmClient, cfg.ContractTemplatePath)
	app.AccountService = account.NewService(docRepo, picRepo)
	app.Reclaimer = reclaimer
	app.VerificationClient = verifyClient
	app.VerificationProcessor = verification.NewProcessor(docRepo, app.Store, verifyClient)
	app.GoogleAuth = googleAuthSvc

	return nil
}
