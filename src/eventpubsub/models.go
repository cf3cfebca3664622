package eventpubsub

import (
	"github.com/google/uuid"

	"github.com/jiaming2012/openapi-orders/src/models"
)

type OrderEvent struct {
	SessionID uuid.UUID
	OrderId   string
	Ticket    models.OrderTicket
}

type FindingsReported struct {
	SessionID uuid.UUID
	Uic       int
	AssetType models.AssetType
	Findings  models.Findings
}

type DiagnosticReported struct {
	SessionID  uuid.UUID
	Diagnostic *models.Diagnostic
}
