package bootstrap

import (
	"context"
	"fmt"

	"interview-assistant-be/internal/config"
	"interview-assistant-be/internal/controller"
	"interview-assistant-be/internal/handler"
	"interview-assistant-be/internal/pkg/logger"
	"interview-assistant-be/internal/repository/implementation"
	"interview-assistant-be/internal/service"
	"interview-assistant-be/internal/tracer"
	"interview-assistant-be/internal/websocket"
	"interview-assistant-be/pkg/answer"
	"interview-assistant-be/pkg/audit"
	"interview-assistant-be/pkg/codeeval"
	"interview-assistant-be/pkg/diagram"
	"interview-assistant-be/pkg/events"
	"interview-assistant-be/pkg/llm"
	"interview-assistant-be/pkg/llm/factory"
	"interview-assistant-be/pkg/llm/mock"
	"interview-assistant-be/pkg/stt"
)

type Container struct {
	// Controllers
	SessionController    controller.ISessionController
	QuestionController   controller.IQuestionController
	HistoryController    controller.IHistoryController
	ProfileController    controller.IProfileController
	EvaluationController controller.IEvaluationController
	DiagramController    controller.IDiagramController
	HealthController     controller.IHealthController

	// WebSockets & STT
	STTHandler   *handler.STTHandler
	WebSocketHub *websocket.Hub

	// Background consumers, started by the caller.
	Consumers []service.IConsumerService

	Logger         logger.ILogger
	Bus            *events.Bus
	ShutdownTracer tracer.ShutdownFunc
}

func NewContainer(cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction())
	sttLogger := logger.NewIsolatedLogger(cfg.App.STTLogFilePath)
	shutdownTracer := tracer.InitTracer(cfg, sysLogger)

	sessionRepo, err := implementation.NewSessionRepository(cfg.Storage.SessionsDir, sysLogger)
	if err != nil {
		return nil, fmt.Errorf("init session store: %w", err)
	}

	// 2. Event Bus
	bus := events.NewBus(
		logger.NewWatermillAdapter(sysLogger, "EVENTS"),
		func(topic string, event events.Event, err error) {
			details := map[string]interface{}{"topic": topic, "error": err.Error()}
			if event != nil {
				details["type"] = event.EventType()
			}
			sysLogger.Error("EVENTS", "Event handler failed", details)
		},
	)

	// 3. Providers
	rules, err := answer.LoadRules(cfg.Answer.ClassifierRulesPath)
	if err != nil {
		return nil, err
	}
	classifier := answer.NewClassifier(rules)
	builder := answer.NewBuilder(classifier, cfg.Answer.HistoryWindow)
	budget := answer.NewBudget(rules,
		cfg.LLM.MaxTokensSimple,
		cfg.LLM.MaxTokensCode,
		cfg.LLM.MaxTokensComplex,
		cfg.LLM.MaxTokens,
	)

	llmProvider, err := factory.NewProvider(context.Background(), factory.Settings{
		Provider:    cfg.LLM.Provider,
		OpenAIKey:   cfg.LLM.OpenAIKey,
		OpenAIURL:   cfg.LLM.OpenAIBaseURL,
		OpenAIModel: cfg.LLM.Model,
		GeminiKey:   cfg.LLM.GeminiKey,
		GeminiModel: cfg.LLM.GeminiModel,
		Timeout:     cfg.LLM.Timeout,
		Defaults:    llm.Options{Temperature: cfg.LLM.Temperature},
	})
	if err != nil {
		return nil, fmt.Errorf("init LLM provider: %w", err)
	}
	sysLogger.Info("BOOT", "LLM provider selected", map[string]interface{}{
		"provider": llmProvider.Name(),
		"model":    cfg.LLM.Model,
	})

	transcriber, err := newTranscriber(cfg)
	if err != nil {
		return nil, err
	}
	sysLogger.Info("BOOT", "STT provider selected", map[string]interface{}{"provider": transcriber.Name()})

	// 4. Services
	publisherService := service.NewPublisherService(bus, sysLogger)
	sessionService := service.NewSessionService(sessionRepo)
	interviewService := service.NewInterviewService(
		sessionRepo,
		classifier,
		builder,
		budget,
		llmProvider,
		publisherService,
		sysLogger,
		service.InterviewConfig{Temperature: cfg.LLM.Temperature, TopP: cfg.LLM.TopP},
	)
	profileService := service.NewProfileService(sessionRepo, publisherService)
	evaluationService := service.NewEvaluationService(sessionRepo, codeeval.NewEvaluator(llmProvider), publisherService)
	diagramService := service.NewDiagramService(diagram.NewRenderer(cfg.Diagram.KrokiURL, cfg.Diagram.CacheTTL))
	transcriptService := service.NewTranscriptService(sessionRepo, transcriber, publisherService, sttLogger)

	consumers := []service.IConsumerService{
		service.NewAuditConsumer(bus, audit.NewWriter(cfg.Storage.AnalyticsPath), sysLogger),
		service.NewAutoEvalConsumer(bus, evaluationService, sysLogger),
	}

	// 5. WebSockets
	wsHub := websocket.NewHub(sttLogger)
	sttHandler := handler.NewSTTHandler(transcriptService, wsHub, cfg.Auth.APIKey, sttLogger)

	// 6. Controllers
	return &Container{
		SessionController:    controller.NewSessionController(sessionService),
		QuestionController:   controller.NewQuestionController(interviewService, sysLogger),
		HistoryController:    controller.NewHistoryController(sessionService),
		ProfileController:    controller.NewProfileController(profileService),
		EvaluationController: controller.NewEvaluationController(evaluationService),
		DiagramController:    controller.NewDiagramController(diagramService),
		HealthController: controller.NewHealthController(controller.HealthInfo{
			Version:     cfg.App.Version,
			LLMProvider: llmProvider.Name(),
			LLMEnabled:  llmProvider.Name() != mock.Name,
			STTProvider: transcriber.Name(),
			Sockets:     wsHub.Count,
		}),

		STTHandler:   sttHandler,
		WebSocketHub: wsHub,

		Consumers:      consumers,
		Logger:         sysLogger,
		Bus:            bus,
		ShutdownTracer: shutdownTracer,
	}, nil
}

// StartConsumers subscribes every background consumer. Subscriptions end
// when the bus closes.
func (c *Container) StartConsumers(ctx context.Context) error {
	for _, consumer := range c.Consumers {
		if err := consumer.Consume(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Close stops the consumers and flushes logs and traces.
func (c *Container) Close(ctx context.Context) error {
	c.WebSocketHub.CloseAll("server shutting down")
	err := c.Bus.Close()
	if terr := c.ShutdownTracer(ctx); terr != nil && err == nil {
		err = terr
	}
	_ = c.Logger.Sync()
	return err
}

func newTranscriber(cfg *config.Config) (stt.Transcriber, error) {
	switch cfg.STT.Provider {
	case "", "none":
		return stt.NewMock(), nil
	case "openai":
		if cfg.LLM.OpenAIKey == "" {
			return stt.NewMock(), nil
		}
		w, err := stt.NewWhisper(stt.WhisperConfig{
			APIKey:     cfg.LLM.OpenAIKey,
			BaseURL:    cfg.LLM.OpenAIBaseURL,
			Model:      cfg.STT.Model,
			ChunkBytes: cfg.STT.ChunkBytes,
		})
		if err != nil {
			return nil, fmt.Errorf("init whisper transcriber: %w", err)
		}
		return w, nil
	default:
		return nil, fmt.Errorf("unknown STT_PROVIDER %q", cfg.STT.Provider)
	}
}
