package run

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/openapi-orders/src/config"
	"github.com/jiaming2012/openapi-orders/src/eventpubsub"
	"github.com/jiaming2012/openapi-orders/src/logger"
	"github.com/jiaming2012/openapi-orders/src/normalizer"
	"github.com/jiaming2012/openapi-orders/src/services"
	"github.com/jiaming2012/openapi-orders/src/telemetry"
	"github.com/jiaming2012/openapi-orders/src/utils"
	"github.com/jiaming2012/openapi-orders/src/validator"
)

const ServiceName = "openapi-orders"

type Env struct {
	Config     *config.Config
	Template   config.TicketTemplateYAML
	Normalizer *normalizer.Normalizer
	Broker     *services.OpenApiBroker
	Shutdown   func(context.Context) error
}

// Setup loads the environment, configures logging and telemetry and builds the
// broker. templatePath overrides TICKET_TEMPLATE when not empty.
func Setup(ctx context.Context, envDir, goEnv, templatePath string) (*Env, error) {
	if err := utils.InitEnvironmentVariables(envDir, goEnv); err != nil {
		return nil, fmt.Errorf("Setup: failed to load environment: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("Setup: %w", err)
	}

	if err := logger.Setup(cfg.LogLevel, cfg.LogJson); err != nil {
		return nil, fmt.Errorf("Setup: %w", err)
	}

	if templatePath == "" {
		templatePath = cfg.TicketTemplate
	}

	template, err := config.LoadTicketTemplate(templatePath)
	if err != nil {
		return nil, fmt.Errorf("Setup: %w", err)
	}

	shutdown := func(context.Context) error { return nil }
	if cfg.OtelEnabled {
		if shutdown, err = telemetry.SetupOTelSDK(ctx, ServiceName); err != nil {
			return nil, fmt.Errorf("Setup: failed to setup otel sdk: %w", err)
		}

		log.Info("OpenTelemetry enabled")
	}

	return &Env{
		Config:     cfg,
		Template:   template,
		Normalizer: normalizer.NewNormalizer(template.PlaceholdersOrDefault(cfg.FictivePrice), utils.RealClock{}),
		Broker:     services.NewOpenApiBroker(cfg.BaseURL, cfg.AccessToken),
		Shutdown:   shutdown,
	}, nil
}

func (e *Env) ValidatorOptions() []validator.Option {
	return []validator.Option{validator.WithFallbackPrice(e.Config.FictivePrice)}
}

// NewSession builds a session on its own bus. Diagnostics and findings
// published on the bus are logged.
func (e *Env) NewSession(template config.TicketTemplateYAML, useRequestID bool) (*services.TicketSession, error) {
	bus := eventpubsub.NewBus()

	if err := bus.Subscribe(eventpubsub.DiagnosticEvent, func(ev eventpubsub.DiagnosticReported) {
		log.WithField("session", ev.SessionID).Warnf("diagnostic: %v", ev.Diagnostic)
	}); err != nil {
		return nil, fmt.Errorf("NewSession: failed to subscribe: %w", err)
	}

	if err := bus.Subscribe(eventpubsub.OrderPlacedEvent, func(ev eventpubsub.OrderEvent) {
		log.WithField("session", ev.SessionID).Infof("order %s placed: %s", ev.OrderId, ev.Ticket)
	}); err != nil {
		return nil, fmt.Errorf("NewSession: failed to subscribe: %w", err)
	}

	opts := []services.SessionOption{
		services.WithBus(bus),
		services.WithValidatorOptions(e.ValidatorOptions()...),
	}

	if useRequestID {
		opts = append(opts, services.WithRequestIDFromReference())
	}

	return services.NewTicketSession(e.Broker, template.Ticket, e.Config.AccountKey, e.Normalizer, opts...), nil
}
