package run

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jiaming2012/openapi-orders/src/models"
	"github.com/jiaming2012/openapi-orders/src/router"
	"github.com/jiaming2012/openapi-orders/src/services"
)

// Serve runs the HTTP API until ctx is cancelled.
func Serve(ctx context.Context, env *Env, useRequestID bool) error {
	r := mux.NewRouter()

	handler := router.NewHandler(env.Normalizer, env.Template.Ticket, func(template models.OrderTicket) *services.TicketSession {
		t := env.Template
		t.Ticket = template

		session, err := env.NewSession(t, useRequestID)
		if err != nil {
			log.Errorf("Serve: %v", err)
			return services.NewTicketSession(env.Broker, template, env.Config.AccountKey, env.Normalizer)
		}

		return session
	}, env.ValidatorOptions()...)

	handler.Setup(r)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", env.Config.HttpPort),
		Handler:      otelhttp.NewHandler(r, "/"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", srv.Addr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-srvErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("Serve: %w", err)
		}

		return nil
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
