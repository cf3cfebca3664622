package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"

	"github.com/jiaming2012/openapi-orders/src/models"
	"github.com/jiaming2012/openapi-orders/src/utils"
)

const (
	requestIDHeader   = "X-Request-ID"
	correlationHeader = "X-Correlation"
)

// OpenApiBroker talks to the trading OpenAPI. The bearer token is supplied by
// the caller; the broker never acquires or refreshes one.
type OpenApiBroker struct {
	baseUrl string
	client  *http.Client
}

func (b *OpenApiBroker) FetchInfoPrice(ctx context.Context, uic int, assetType models.AssetType) (*models.InfoPriceDTO, error) {
	queryParams := url.Values{}
	queryParams.Add("AssetType", string(assetType))
	queryParams.Add("Uic", strconv.Itoa(uic))

	bytes, _, err := b.do(ctx, http.MethodGet, "/trade/v1/infoprices", queryParams, nil, "")
	if err != nil {
		return nil, fmt.Errorf("FetchInfoPrice: failed to fetch info price: %w", err)
	}

	prices, err := utils.ParseOpenApiResponse[models.InfoPriceDTO](bytes)
	if err != nil {
		return nil, fmt.Errorf("FetchInfoPrice: failed to parse response: %w", err)
	}

	if len(prices) == 0 {
		return nil, fmt.Errorf("FetchInfoPrice: %w", models.ErrEmptyResponse)
	}

	return &prices[0], nil
}

func (b *OpenApiBroker) FetchInstrumentConditions(ctx context.Context, uic int, assetType models.AssetType, accountKey string) (*models.InstrumentConditions, error) {
	queryParams := url.Values{}
	queryParams.Add("AccountKey", accountKey)
	queryParams.Add("FieldGroups", "OrderSetting")

	path := fmt.Sprintf("/ref/v1/instruments/details/%d/%s", uic, url.PathEscape(string(assetType)))

	bytes, _, err := b.do(ctx, http.MethodGet, path, queryParams, nil, "")
	if err != nil {
		return nil, fmt.Errorf("FetchInstrumentConditions: failed to fetch instrument details: %w", err)
	}

	var dto models.InstrumentDetailsDTO
	if err := json.Unmarshal(bytes, &dto); err != nil {
		return nil, fmt.Errorf("FetchInstrumentConditions: failed to parse response: %w", err)
	}

	return dto.ToInstrumentConditions(), nil
}

func (b *OpenApiBroker) FetchAccounts(ctx context.Context) (models.AccountList, error) {
	bytes, _, err := b.do(ctx, http.MethodGet, "/port/v1/accounts/me", nil, nil, "")
	if err != nil {
		return nil, fmt.Errorf("FetchAccounts: failed to fetch accounts: %w", err)
	}

	accounts, err := utils.ParseOpenApiResponse[models.Account](bytes)
	if err != nil {
		return nil, fmt.Errorf("FetchAccounts: failed to parse response: %w", err)
	}

	return models.AccountList(accounts), nil
}

// PreCheckOrder validates an order on the platform without placing it. Each
// call carries a fresh request id so identical checks are not rejected as
// duplicates.
func (b *OpenApiBroker) PreCheckOrder(ctx context.Context, ticket models.OrderTicket) (*models.PreCheckResultDTO, error) {
	req := models.PreCheckRequest{
		OrderTicket: ticket,
		FieldGroups: []string{"Costs", "MarginImpactBuySell"},
	}

	bytes, _, err := b.do(ctx, http.MethodPost, "/trade/v2/orders/precheck", nil, req, uuid.New().String())
	if err != nil {
		return nil, fmt.Errorf("PreCheckOrder: failed to precheck order: %w", err)
	}

	var dto models.PreCheckResultDTO
	if err := json.Unmarshal(bytes, &dto); err != nil {
		return nil, fmt.Errorf("PreCheckOrder: failed to parse response: %w", err)
	}

	return &dto, nil
}

// PlaceOrder posts a new order. requestID, when not empty, is sent as the
// X-Request-ID header.
func (b *OpenApiBroker) PlaceOrder(ctx context.Context, ticket models.OrderTicket, requestID string) (*models.OrderResponseDTO, error) {
	ticket.OrderId = ""

	bytes, header, err := b.do(ctx, http.MethodPost, "/trade/v2/orders", nil, ticket, requestID)
	if err != nil {
		return nil, fmt.Errorf("PlaceOrder: failed to place order: %w", err)
	}

	var dto models.OrderResponseDTO
	if err := json.Unmarshal(bytes, &dto); err != nil {
		return nil, fmt.Errorf("PlaceOrder: failed to parse response: %w", err)
	}

	dto.RequestId = header.Get(requestIDHeader)

	log.Infof("PlaceOrder: placed order %s for uic %d", dto.OrderId, ticket.Uic)

	return &dto, nil
}

func (b *OpenApiBroker) ModifyOrder(ctx context.Context, ticket models.OrderTicket, requestID string) (*models.OrderResponseDTO, error) {
	if ticket.OrderId == "" {
		return nil, fmt.Errorf("ModifyOrder: %w", models.ErrNoLastOrder)
	}

	bytes, header, err := b.do(ctx, http.MethodPatch, "/trade/v2/orders", nil, ticket, requestID)
	if err != nil {
		return nil, fmt.Errorf("ModifyOrder: failed to modify order %s: %w", ticket.OrderId, err)
	}

	var dto models.OrderResponseDTO
	if err := json.Unmarshal(bytes, &dto); err != nil {
		return nil, fmt.Errorf("ModifyOrder: failed to parse response: %w", err)
	}

	dto.RequestId = header.Get(requestIDHeader)

	log.Infof("ModifyOrder: modified order %s", ticket.OrderId)

	return &dto, nil
}

func (b *OpenApiBroker) CancelOrder(ctx context.Context, orderId, accountKey string) (*models.CancelOrdersResponseDTO, error) {
	if orderId == "" {
		return nil, fmt.Errorf("CancelOrder: %w", models.ErrNoLastOrder)
	}

	queryParams := url.Values{}
	queryParams.Add("AccountKey", accountKey)

	bytes, _, err := b.do(ctx, http.MethodDelete, fmt.Sprintf("/trade/v2/orders/%s", url.PathEscape(orderId)), queryParams, nil, "")
	if err != nil {
		return nil, fmt.Errorf("CancelOrder: failed to cancel order %s: %w", orderId, err)
	}

	var dto models.CancelOrdersResponseDTO
	if err := json.Unmarshal(bytes, &dto); err != nil {
		return nil, fmt.Errorf("CancelOrder: failed to parse response: %w", err)
	}

	log.Infof("CancelOrder: cancelled order %s", orderId)

	return &dto, nil
}

func (b *OpenApiBroker) FetchOrderCosts(ctx context.Context, ticket models.OrderTicket) (*models.OrderCostsDTO, error) {
	queryParams := url.Values{}
	queryParams.Add("Amount", strconv.FormatFloat(ticket.Amount, 'f', -1, 64))
	if ticket.OrderPrice != nil {
		queryParams.Add("Price", strconv.FormatFloat(*ticket.OrderPrice, 'f', -1, 64))
	}
	queryParams.Add("FieldGroups", "DisplayAndFormat")
	queryParams.Add("HoldingPeriodInDays", "365")

	path := fmt.Sprintf("/cs/v1/tradingconditions/cost/%s/%d/%s/", url.PathEscape(ticket.AccountKey), ticket.Uic, url.PathEscape(string(ticket.AssetType)))

	bytes, _, err := b.do(ctx, http.MethodGet, path, queryParams, nil, "")
	if err != nil {
		return nil, fmt.Errorf("FetchOrderCosts: failed to fetch costs: %w", err)
	}

	var dto models.OrderCostsDTO
	if err := json.Unmarshal(bytes, &dto); err != nil {
		return nil, fmt.Errorf("FetchOrderCosts: failed to parse response: %w", err)
	}

	return &dto, nil
}

func (b *OpenApiBroker) do(ctx context.Context, method, path string, queryParams url.Values, body interface{}, requestID string) ([]byte, http.Header, error) {
	fullUrl := b.baseUrl + path
	if len(queryParams) > 0 {
		fullUrl = fmt.Sprintf("%s?%s", fullUrl, queryParams.Encode())
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal request body: %w", err)
		}

		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullUrl, reqBody)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Add("Accept", "application/json")
	if body != nil {
		req.Header.Add("Content-Type", "application/json; charset=utf-8")
	}

	if requestID != "" {
		req.Header.Add(requestIDHeader, requestID)
	}

	log.Tracef("%s %s", method, req.URL.String())

	res, err := b.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("query failed: %w", err)
	}

	defer res.Body.Close()

	resBytes, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var errDTO models.OpenApiErrorDTO
		if len(resBytes) > 0 {
			if err := json.Unmarshal(resBytes, &errDTO); err != nil {
				log.Debugf("%s %s: non-json error body: %s", method, path, string(resBytes))
			}
		}

		return nil, nil, models.NewOpenApiError(res.StatusCode, errDTO, res.Header.Get(correlationHeader))
	}

	if len(resBytes) == 0 {
		return nil, nil, models.ErrEmptyResponse
	}

	return resBytes, res.Header, nil
}

func NewOpenApiBroker(baseUrl, accessToken string) *OpenApiBroker {
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	})

	return &OpenApiBroker{
		baseUrl: baseUrl,
		client: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &oauth2.Transport{
				Source: tokenSource,
				Base:   otelhttp.NewTransport(http.DefaultTransport),
			},
		},
	}
}
