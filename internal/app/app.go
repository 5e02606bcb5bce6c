package app

import (
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskpilot/taskpilot/internal/ai"
	"github.com/taskpilot/taskpilot/internal/config"
	"github.com/taskpilot/taskpilot/internal/db"
	"github.com/taskpilot/taskpilot/internal/identity"
	"github.com/taskpilot/taskpilot/internal/repository"
	"github.com/taskpilot/taskpilot/internal/service"
	"github.com/taskpilot/taskpilot/internal/storage"
)

// App is the dependency container constructed once at startup and handed to
// the routes. Nothing here is global; any initialization failure aborts
// startup.
type App struct {
	Cfg              *config.Config
	DB               *mongo.Database
	Verifier         identity.Verifier
	TodoService      *service.TodoService
	TagService       *service.TagService
	FileService      *service.FileService
	RecommendService *service.RecommendService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.MongoURL, cfg.MongoDB)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Repositories
	todoRepository := repository.NewTodoRepository(database)
	tagRepository := repository.NewTagRepository(database)
	fileRepository := repository.NewFileRepository(database)
	imageRepository := repository.NewImageRepository(database)

	// Storage
	blobStorage, err := storage.NewS3Storage(storage.S3Config{
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Endpoint:  cfg.S3Endpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Identity provider
	verifier, err := identity.NewJWKSVerifier(identity.JWKSConfig{
		URL:             cfg.AuthJWKSURL,
		RefreshInterval: cfg.AuthJWKSRefresh,
		Leeway:          cfg.AuthLeeway,
		Issuer:          cfg.AuthIssuer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize identity verifier: %v", err)
	}

	// Services
	aiClient := ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	todoService := service.NewTodoService(todoRepository, tagRepository, fileRepository, imageRepository, cfg.AssetBaseURL)
	tagService := service.NewTagService(tagRepository)
	fileService := service.NewFileService(fileRepository, imageRepository, blobStorage, cfg.AssetBaseURL)
	recommendService := service.NewRecommendService(aiClient)

	return &App{
		Cfg:              cfg,
		DB:               database,
		Verifier:         verifier,
		TodoService:      todoService,
		TagService:       tagService,
		FileService:      fileService,
		RecommendService: recommendService,
	}, nil
}

func (a *App) Close() error {
	return db.Close(a.DB)
}
