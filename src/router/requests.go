package router

import (
	"github.com/jiaming2012/openapi-orders/src/models"
)

type errorResponse struct {
	Type  string      `json:"type"`
	Msg   string      `json:"message"`
	Field string      `json:"field,omitempty"`
	Value interface{} `json:"value,omitempty"`
}

func NewErrorResponse(errType string, message string) *errorResponse {
	return &errorResponse{
		Type: errType,
		Msg:  message,
	}
}

type OrderTypeQuery struct {
	OrderType  models.OrderType `schema:"orderType,required"`
	LimitPrice *float64         `schema:"limitPrice"`
}

type DurationTypeQuery struct {
	DurationType models.DurationType `schema:"durationType,required"`
}

type InstrumentQuery struct {
	Uic       int              `schema:"uic,required"`
	AssetType models.AssetType `schema:"assetType"`
}

type ValidateRequest struct {
	Ticket     models.OrderTicket           `json:"ticket"`
	Conditions *models.InstrumentDetailsDTO `json:"conditions"`
	Accounts   models.AccountList           `json:"accounts"`
}

type FindingsResponse struct {
	Findings models.Findings `json:"findings"`
	Count    int             `json:"count"`
}

type SessionResponse struct {
	ID          string             `json:"id"`
	AccountKey  string             `json:"accountKey,omitempty"`
	LastOrderId string             `json:"lastOrderId,omitempty"`
	Ticket      models.OrderTicket `json:"ticket"`
}

type ApplySupportedOrderTypeResponse struct {
	Changed bool               `json:"changed"`
	Ticket  models.OrderTicket `json:"ticket"`
}
