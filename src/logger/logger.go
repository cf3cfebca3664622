package logger

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/uptrace/opentelemetry-go-extra/otellogrus"
)

// Setup configures the package level logrus logger. Log entries written with a
// span context are also recorded as span events.
func Setup(level string, json bool) error {
	lvl := log.InfoLevel
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("Setup: failed to parse log level: %w", err)
		}

		lvl = parsed
	}

	log.SetLevel(lvl)
	log.SetOutput(os.Stdout)

	if json {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	log.AddHook(otellogrus.NewHook(otellogrus.WithLevels(
		log.PanicLevel,
		log.FatalLevel,
		log.ErrorLevel,
		log.WarnLevel,
		log.InfoLevel,
	)))

	return nil
}
