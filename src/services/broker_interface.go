package services

import (
	"context"

	"github.com/jiaming2012/openapi-orders/src/models"
)

type IBroker interface {
	FetchInfoPrice(ctx context.Context, uic int, assetType models.AssetType) (*models.InfoPriceDTO, error)
	FetchInstrumentConditions(ctx context.Context, uic int, assetType models.AssetType, accountKey string) (*models.InstrumentConditions, error)
	FetchAccounts(ctx context.Context) (models.AccountList, error)
	PreCheckOrder(ctx context.Context, ticket models.OrderTicket) (*models.PreCheckResultDTO, error)
	PlaceOrder(ctx context.Context, ticket models.OrderTicket, requestID string) (*models.OrderResponseDTO, error)
	ModifyOrder(ctx context.Context, ticket models.OrderTicket, requestID string) (*models.OrderResponseDTO, error)
	CancelOrder(ctx context.Context, orderId, accountKey string) (*models.CancelOrdersResponseDTO, error)
	FetchOrderCosts(ctx context.Context, ticket models.OrderTicket) (*models.OrderCostsDTO, error)
}
