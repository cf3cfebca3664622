package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/openapi-orders/src/models"
)

func newTestServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *OpenApiBroker {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	return NewOpenApiBroker(srv.URL, "test-token")
}

func TestOpenApiBroker_FetchInfoPrice(t *testing.T) {
	broker := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/trade/v1/infoprices", r.URL.Path)
		assert.Equal(t, "Stock", r.URL.Query().Get("AssetType"))
		assert.Equal(t, "211", r.URL.Query().Get("Uic"))

		w.Write([]byte(`{"Uic":211,"AssetType":"Stock","Quote":{"Bid":150.25,"Ask":150.3}}`))
	})

	quote, err := broker.FetchInfoPrice(context.Background(), 211, models.AssetTypeStock)
	require.NoError(t, err)

	price, ok := quote.Price()
	assert.True(t, ok)
	assert.Equal(t, 150.25, price)
}

func TestOpenApiBroker_FetchInstrumentConditions(t *testing.T) {
	broker := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ref/v1/instruments/details/211/Stock", r.URL.Path)
		assert.Equal(t, "key-1", r.URL.Query().Get("AccountKey"))
		assert.Equal(t, "OrderSetting", r.URL.Query().Get("FieldGroups"))

		w.Write([]byte(`{"Uic":211,"AssetType":"Stock","SupportedOrderTypes":["Market","Limit"],"TradableOn":["A1"],"TickSize":0.01,"LotSizeType":"NotUsed"}`))
	})

	conditions, err := broker.FetchInstrumentConditions(context.Background(), 211, models.AssetTypeStock, "key-1")
	require.NoError(t, err)
	assert.True(t, conditions.IsTradable)
	assert.Equal(t, []models.OrderType{models.OrderTypeMarket, models.OrderTypeLimit}, conditions.SupportedOrderTypes)
	require.NotNil(t, conditions.TickSize)
	assert.Equal(t, 0.01, *conditions.TickSize)
}

func TestOpenApiBroker_FetchAccounts(t *testing.T) {
	broker := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/port/v1/accounts/me", r.URL.Path)
		w.Write([]byte(`{"Data":[{"AccountKey":"key-1","AccountId":"A1","Currency":"EUR","Active":true},{"AccountKey":"key-2","AccountId":"A2"}]}`))
	})

	accounts, err := broker.FetchAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	id, found := accounts.ResolveAccountID("key-2")
	assert.True(t, found)
	assert.Equal(t, "A2", id)
}

func TestOpenApiBroker_PreCheckOrder(t *testing.T) {
	var requestIDs []string

	broker := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/trade/v2/orders/precheck", r.URL.Path)
		requestIDs = append(requestIDs, r.Header.Get("X-Request-ID"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)

		var payload map[string]interface{}
		assert.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, []interface{}{"Costs", "MarginImpactBuySell"}, payload["FieldGroups"])
		assert.Equal(t, "Market", payload["OrderType"])
		assert.NotContains(t, payload, "OrderPrice")

		w.Write([]byte(`{"PreCheckResult":"Ok","EstimatedCashRequired":7000}`))
	})

	ticket := models.OrderTicket{Uic: 211, AssetType: models.AssetTypeStock, BuySell: models.Buy, Amount: 100, OrderType: models.OrderTypeMarket}

	for i := 0; i < 2; i++ {
		result, err := broker.PreCheckOrder(context.Background(), ticket)
		require.NoError(t, err)
		assert.NoError(t, result.Err())
	}

	require.Len(t, requestIDs, 2)
	assert.NotEmpty(t, requestIDs[0])
	assert.NotEqual(t, requestIDs[0], requestIDs[1])
}

func TestOpenApiBroker_PlaceModifyCancel(t *testing.T) {
	broker := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			assert.Equal(t, "/trade/v2/orders", r.URL.Path)
			assert.Equal(t, "ref-1", r.Header.Get("X-Request-ID"))
			w.Header().Set("X-Request-ID", "ref-1")
			w.Write([]byte(`{"OrderId":"76289286"}`))
		case http.MethodPatch:
			assert.Equal(t, "/trade/v2/orders", r.URL.Path)
			assert.Empty(t, r.Header.Get("X-Request-ID"))

			var ticket models.OrderTicket
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&ticket))
			assert.Equal(t, "76289286", ticket.OrderId)

			w.Write([]byte(`{"OrderId":"76289286"}`))
		case http.MethodDelete:
			assert.Equal(t, "/trade/v2/orders/76289286", r.URL.Path)
			assert.Equal(t, "key|1==", r.URL.Query().Get("AccountKey"))
			w.Write([]byte(`{"Orders":[{"OrderId":"76289286"}]}`))
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	})

	ctx := context.Background()
	ticket := models.OrderTicket{Uic: 211, AssetType: models.AssetTypeStock, AccountKey: "key|1==", BuySell: models.Buy, Amount: 100, OrderType: models.OrderTypeMarket, ExternalReference: "ref-1"}

	placed, err := broker.PlaceOrder(ctx, ticket, "ref-1")
	require.NoError(t, err)
	assert.Equal(t, "76289286", placed.OrderId)
	assert.Equal(t, "ref-1", placed.RequestId)

	ticket.OrderId = placed.OrderId
	_, err = broker.ModifyOrder(ctx, ticket, "")
	require.NoError(t, err)

	cancelled, err := broker.CancelOrder(ctx, placed.OrderId, ticket.AccountKey)
	require.NoError(t, err)
	require.Len(t, cancelled.Orders, 1)
	assert.Equal(t, "76289286", cancelled.Orders[0].OrderId)
}

func TestOpenApiBroker_ModifyWithoutOrderId(t *testing.T) {
	broker := NewOpenApiBroker("http://localhost:0", "token")

	_, err := broker.ModifyOrder(context.Background(), models.OrderTicket{}, "")
	assert.ErrorIs(t, err, models.ErrNoLastOrder)

	_, err = broker.CancelOrder(context.Background(), "", "key")
	assert.ErrorIs(t, err, models.ErrNoLastOrder)
}

func TestOpenApiBroker_FetchOrderCosts(t *testing.T) {
	broker := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cs/v1/tradingconditions/cost/key-1/211/Stock/", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("Amount"))
		assert.Equal(t, "70", r.URL.Query().Get("Price"))
		assert.Equal(t, "365", r.URL.Query().Get("HoldingPeriodInDays"))

		w.Write([]byte(`{"AccountKey":"key-1","AssetType":"Stock","Uic":211,"Amount":100,"Cost":{"Long":{"TotalCost":12.5},"Short":{"TotalCost":13}}}`))
	})

	price := 70.0
	costs, err := broker.FetchOrderCosts(context.Background(), models.OrderTicket{Uic: 211, AssetType: models.AssetTypeStock, AccountKey: "key-1", Amount: 100, OrderPrice: &price})
	require.NoError(t, err)

	total, err := costs.TotalCost(models.Buy)
	require.NoError(t, err)
	assert.Equal(t, 12.5, total)

	total, err = costs.TotalCost(models.Sell)
	require.NoError(t, err)
	assert.Equal(t, 13.0, total)
}

func TestOpenApiBroker_Errors(t *testing.T) {
	t.Run("error body is decoded", func(t *testing.T) {
		broker := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Correlation", "corr-1")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"ErrorCode":"IllegalInstrumentId","Message":"Instrument ID is invalid"}`))
		})

		_, err := broker.FetchInstrumentConditions(context.Background(), 0, models.AssetTypeStock, "key-1")
		require.Error(t, err)

		var apiErr *models.OpenApiError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, "IllegalInstrumentId", apiErr.ErrorCode)
		assert.Equal(t, "corr-1", apiErr.CorrelationID)
	})

	t.Run("unauthorized without body", func(t *testing.T) {
		broker := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := broker.FetchAccounts(context.Background())

		var apiErr *models.OpenApiError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	})

	t.Run("empty body", func(t *testing.T) {
		broker := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		_, err := broker.FetchAccounts(context.Background())
		assert.ErrorIs(t, err, models.ErrEmptyResponse)
	})
}
