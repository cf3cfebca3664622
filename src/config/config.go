package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jiaming2012/openapi-orders/src/models"
	"github.com/jiaming2012/openapi-orders/src/normalizer"
	"github.com/jiaming2012/openapi-orders/src/utils"
)

type Config struct {
	BaseURL        string
	AccessToken    string
	AccountKey     string
	HttpPort       int
	LogLevel       string
	LogJson        bool
	TicketTemplate string
	FictivePrice   float64
	OtelEnabled    bool
}

// TicketTemplateYAML is the file a session's initial ticket is read from.
type TicketTemplateYAML struct {
	Ticket       models.OrderTicket       `yaml:"ticket"`
	Placeholders *normalizer.Placeholders `yaml:"placeholders,omitempty"`
}

const DefaultBaseURL = "https://gateway.saxobank.com/sim/openapi"

// Load reads the configuration from the environment. Call
// utils.InitEnvironmentVariables first to populate it from a .env file.
func Load() (*Config, error) {
	accessToken, err := utils.GetEnv("OPENAPI_ACCESS_TOKEN")
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}

	port, err := strconv.Atoi(utils.GetEnvOrDefault("HTTP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("Load: failed to parse HTTP_PORT: %w", err)
	}

	fictivePrice, err := strconv.ParseFloat(utils.GetEnvOrDefault("FICTIVE_PRICE", fmt.Sprintf("%v", normalizer.FictivePrice)), 64)
	if err != nil {
		return nil, fmt.Errorf("Load: failed to parse FICTIVE_PRICE: %w", err)
	}

	if fictivePrice <= 0 {
		return nil, fmt.Errorf("Load: FICTIVE_PRICE must be positive, found %v", fictivePrice)
	}

	return &Config{
		BaseURL:        strings.TrimRight(utils.GetEnvOrDefault("OPENAPI_BASE_URL", DefaultBaseURL), "/"),
		AccessToken:    accessToken,
		AccountKey:     os.Getenv("OPENAPI_ACCOUNT_KEY"),
		HttpPort:       port,
		LogLevel:       utils.GetEnvOrDefault("LOG_LEVEL", "info"),
		LogJson:        strings.ToLower(os.Getenv("LOG_JSON")) == "true",
		TicketTemplate: os.Getenv("TICKET_TEMPLATE"),
		FictivePrice:   fictivePrice,
		OtelEnabled:    strings.ToLower(os.Getenv("OTEL_ENABLED")) == "true",
	}, nil
}

// DefaultTicketTemplate is the ticket the demos start from: a market day order
// for 100 units of instrument 211.
func DefaultTicketTemplate() TicketTemplateYAML {
	return TicketTemplateYAML{
		Ticket: models.OrderTicket{
			Uic:       211,
			AssetType: models.AssetTypeStock,
			BuySell:   models.Buy,
			Amount:    100,
			OrderType: models.OrderTypeMarket,
			OrderDuration: models.OrderDuration{
				DurationType: models.DurationTypeDayOrder,
			},
			ManualOrder: true,
		},
	}
}

// LoadTicketTemplate reads the template at path. An empty path returns the
// default template.
func LoadTicketTemplate(path string) (TicketTemplateYAML, error) {
	if path == "" {
		return DefaultTicketTemplate(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return TicketTemplateYAML{}, fmt.Errorf("LoadTicketTemplate: failed to read %s: %w", path, err)
	}

	return ParseTicketTemplate(data)
}

func ParseTicketTemplate(data []byte) (TicketTemplateYAML, error) {
	var template TicketTemplateYAML
	if err := yaml.Unmarshal(data, &template); err != nil {
		return TicketTemplateYAML{}, fmt.Errorf("ParseTicketTemplate: failed to unmarshal: %w", err)
	}

	if template.Ticket.OrderType == "" {
		return TicketTemplateYAML{}, models.ErrNoTicketTemplate
	}

	if err := template.Ticket.OrderType.Validate(); err != nil {
		return TicketTemplateYAML{}, fmt.Errorf("ParseTicketTemplate: %w", err)
	}

	if err := template.Ticket.OrderDuration.DurationType.Validate(); err != nil {
		return TicketTemplateYAML{}, fmt.Errorf("ParseTicketTemplate: %w", err)
	}

	if err := template.Ticket.BuySell.Validate(); err != nil {
		return TicketTemplateYAML{}, fmt.Errorf("ParseTicketTemplate: %w", err)
	}

	if template.Placeholders != nil {
		if err := template.Placeholders.Validate(); err != nil {
			return TicketTemplateYAML{}, fmt.Errorf("ParseTicketTemplate: %w", err)
		}
	}

	return template, nil
}

// PlaceholdersOrDefault returns the template placeholders, or the defaults
// with OrderPrice set to fictivePrice.
func (t TicketTemplateYAML) PlaceholdersOrDefault(fictivePrice float64) normalizer.Placeholders {
	if t.Placeholders != nil {
		return *t.Placeholders
	}

	p := normalizer.DefaultPlaceholders()
	if fictivePrice > 0 {
		p.StopLimitPrice = fictivePrice + (p.StopLimitPrice - p.OrderPrice)
		p.OrderPrice = fictivePrice
	}

	return p
}
