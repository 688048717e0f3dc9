package config

import (
	"UnicornGolang/database/postgres"
	conversationHandler "UnicornGolang/internal/api/conversation/handler"
	conversationRepository "UnicornGolang/internal/api/conversation/repository"
	conversationService "UnicornGolang/internal/api/conversation/service"
	engineHandler "UnicornGolang/internal/api/engine/handler"
	engineService "UnicornGolang/internal/api/engine/service"
	"UnicornGolang/internal/middleware"
	"UnicornGolang/pkg/audio"
	"UnicornGolang/pkg/decision"
	"UnicornGolang/pkg/gemini"
	chatGPT "UnicornGolang/pkg/openai"
	"UnicornGolang/pkg/redis"
	"UnicornGolang/pkg/s3"
	"UnicornGolang/pkg/utils"
	"UnicornGolang/pkg/whatsapp"
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine         *fiber.App
	db             *sqlx.DB
	log            *logrus.Logger
	middleware     middleware.Middleware
	validator      *validator.Validate
	utils          utils.IUtils
	handlers       []handler
	redisServer    redis.IRedis
	whatsappClient whatsapp.IWhatsappSender
	s3Client       s3.ItfS3
	decisionEngine *decision.Engine
	audioManager   *audio.Manager
	creditChecker  conversationService.CreditChecker
	completion     conversationService.Completion

	workerCancel context.CancelFunc
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithWhatsappClient() ServerOption {
	return func(s *Server) error {
		client, err := whatsapp.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize WhatsApp client: %v", err)
			}
			return fmt.Errorf("failed to create WhatsApp client: %w", err)
		}
		s.whatsappClient = client
		return nil
	}
}

// WithSynthesis builds the speech pipeline: provider (SYNTH_PROVIDER
// selects elevenlabs or google), fingerprint cache and retrying manager.
func WithSynthesis() ServerOption {
	return func(s *Server) error {
		var provider audio.Provider
		var err error

		switch os.Getenv("SYNTH_PROVIDER") {
		case "google":
			provider, err = audio.NewGoogleVoiceClient(audio.GoogleVoiceConfig{
				APIKey:   os.Getenv("GOOGLE_VOICE_API_KEY"),
				ModelURL: os.Getenv("GOOGLE_VOICE_MODEL_URL"),
			})
		default:
			client, clientErr := audio.NewElevenLabsClient(audio.ElevenLabsConfig{
				APIKey: os.Getenv("ELEVENLABS_API_KEY"),
			})
			if clientErr != nil {
				err = clientErr
			} else {
				provider = client
				s.creditChecker = client
			}
		}
		if err != nil {
			return fmt.Errorf("failed to create synthesis provider: %w", err)
		}

		capacity, _ := strconv.Atoi(os.Getenv("AUDIO_CACHE_SIZE"))
		manager, err := audio.NewManager(audio.ManagerConfig{
			Provider: provider,
			Cache:    audio.NewCache(capacity),
			Logger:   s.log,
		})
		if err != nil {
			return fmt.Errorf("failed to create audio manager: %w", err)
		}

		s.audioManager = manager
		return nil
	}
}

func WithDecisionEngine() ServerOption {
	return func(s *Server) error {
		cfg := decision.DefaultConfig()
		if raw := os.Getenv("DECISION_THRESHOLD"); raw != "" {
			threshold, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return fmt.Errorf("invalid DECISION_THRESHOLD: %w", err)
			}
			cfg.Threshold = threshold
		}
		s.decisionEngine = decision.NewEngine(cfg, s.log)
		return nil
	}
}

// WithCompletion selects the reply model: COMPLETION_PROVIDER=gemini uses
// the Gemini client, anything else defaults to ChatGPT.
func WithCompletion() ServerOption {
	return func(s *Server) error {
		if os.Getenv("COMPLETION_PROVIDER") == "gemini" {
			client, err := gemini.NewGeminiClient()
			if err != nil {
				return fmt.Errorf("failed to create Gemini client: %w", err)
			}
			s.completion = conversationService.NewGeminiCompletion(client)
			return nil
		}
		s.completion = chatGPT.NewChatGPT()
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Conversation Domain
	conversationRepo := conversationRepository.New(s.db, s.log)
	conversationServices := conversationService.New(
		s.log,
		conversationRepo,
		s.decisionEngine,
		s.audioManager,
		s.creditChecker,
		s.redisServer,
		s.s3Client,
		s.whatsappClient,
		s.completion,
		s.utils,
	)
	conversationHandlers := conversationHandler.New(s.log, s.validator, s.middleware, conversationServices)

	// Engine ops Domain
	engineServices := engineService.New(s.log, s.decisionEngine, s.audioManager)
	engineHandlers := engineHandler.New(s.log, s.validator, s.middleware, engineServices)

	// Background replay of unanswered turns.
	workerCtx, cancel := context.WithCancel(context.Background())
	s.workerCancel = cancel
	go conversationServices.StartPendingWorker(workerCtx)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, conversationHandlers, engineHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	if err := s.engine.Listen(fmt.Sprintf(":%s", port)); err != nil {
		s.Shutdown()
		return err
	}

	return nil
}

// Shutdown stops the background worker and disconnects external clients.
func (s *Server) Shutdown() {
	if s.workerCancel != nil {
		s.workerCancel()
	}
	if s.whatsappClient != nil {
		s.whatsappClient.Disconnect()
	}
	if s.db != nil {
		s.db.Close()
	}
	_ = s.engine.ShutdownWithTimeout(10 * time.Second)
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
