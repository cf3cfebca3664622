package eventpubsub

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/openapi-orders/src/models"
)

func TestBus(t *testing.T) {
	t.Run("async subscribers receive the event", func(t *testing.T) {
		bus := NewBus()
		sessionID := uuid.New()

		var received []OrderEvent
		require.NoError(t, bus.Subscribe(OrderPlacedEvent, func(ev OrderEvent) {
			received = append(received, ev)
		}))

		bus.Publish(OrderPlacedEvent, OrderEvent{SessionID: sessionID, OrderId: "76289286"})
		bus.Publish(OrderPlacedEvent, OrderEvent{SessionID: sessionID, OrderId: "76289287"})
		bus.WaitAsync()

		require.Len(t, received, 2)
		assert.Equal(t, "76289286", received[0].OrderId)
		assert.Equal(t, sessionID, received[1].SessionID)
	})

	t.Run("buses are isolated", func(t *testing.T) {
		bus1 := NewBus()
		bus2 := NewBus()

		count := 0
		require.NoError(t, bus1.SubscribeSync(FindingsReportedEvent, func(ev FindingsReported) {
			count += len(ev.Findings)
		}))

		bus2.Publish(FindingsReportedEvent, FindingsReported{Findings: models.Findings{{RuleID: models.RuleLotSize}}})
		assert.Equal(t, 0, count)

		bus1.Publish(FindingsReportedEvent, FindingsReported{Findings: models.Findings{{RuleID: models.RuleLotSize}}})
		assert.Equal(t, 1, count)
	})

	t.Run("subscribe rejects a non-function", func(t *testing.T) {
		assert.Error(t, NewBus().Subscribe(DiagnosticEvent, "not a function"))
	})
}
