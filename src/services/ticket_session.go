package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jiaming2012/openapi-orders/src/eventpubsub"
	"github.com/jiaming2012/openapi-orders/src/models"
	"github.com/jiaming2012/openapi-orders/src/normalizer"
	"github.com/jiaming2012/openapi-orders/src/validator"
)

// TicketSession holds the order ticket a user is building together with the
// account it trades on and the id of the last order placed from it. All
// methods are safe for concurrent use.
type TicketSession struct {
	ID uuid.UUID

	broker           IBroker
	normalizer       *normalizer.Normalizer
	validatorOptions []validator.Option
	bus              *eventpubsub.Bus
	useRequestID     bool

	mu          sync.Mutex
	ticket      models.OrderTicket
	accountKey  string
	accounts    models.AccountList
	lastOrderId string
}

type SessionOption func(*TicketSession)

func WithBus(bus *eventpubsub.Bus) SessionOption {
	return func(s *TicketSession) {
		s.bus = bus
	}
}

func WithValidatorOptions(opts ...validator.Option) SessionOption {
	return func(s *TicketSession) {
		s.validatorOptions = append(s.validatorOptions, opts...)
	}
}

// WithRequestIDFromReference sends the ticket's ExternalReference as the
// X-Request-ID header when placing or modifying an order.
func WithRequestIDFromReference() SessionOption {
	return func(s *TicketSession) {
		s.useRequestID = true
	}
}

func (s *TicketSession) Ticket() models.OrderTicket {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ticket.Clone()
}

func (s *TicketSession) Bus() *eventpubsub.Bus {
	return s.bus
}

func (s *TicketSession) AccountKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.accountKey
}

func (s *TicketSession) LastOrderId() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastOrderId
}

// ResumeOrder makes orderId the order ModifyLast and CancelLast act on, for a
// session that did not place it.
func (s *TicketSession) ResumeOrder(orderId string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastOrderId = orderId
}

// LoadAccounts fetches the user's accounts. Without a configured account key
// the first account is used.
func (s *TicketSession) LoadAccounts(ctx context.Context) (models.AccountList, error) {
	ctx, span := s.startSpan(ctx, "TicketSession.LoadAccounts")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadAccountsLocked(ctx); err != nil {
		recordError(span, err)
		return nil, err
	}

	return append(models.AccountList{}, s.accounts...), nil
}

// SelectOrderType reshapes the ticket for orderType. A limit order is seeded
// with the current bid when a quote is available.
func (s *TicketSession) SelectOrderType(ctx context.Context, orderType models.OrderType) (models.OrderTicket, error) {
	ctx, span := s.startSpan(ctx, "TicketSession.SelectOrderType")
	defer span.End()

	span.SetAttributes(attribute.String("orderType", string(orderType)))

	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := s.normalizeOrderTypeLocked(ctx, s.ticket, orderType)
	if err != nil {
		recordError(span, err)
		return s.ticket.Clone(), err
	}

	s.ticket = out
	return out.Clone(), nil
}

func (s *TicketSession) SelectOrderDuration(durationType models.DurationType) (models.OrderTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := s.normalizer.NormalizeForDuration(s.ticket, durationType)
	if err != nil {
		s.publishDiagnostic(err)
		return s.ticket.Clone(), err
	}

	s.ticket = out
	return out.Clone(), nil
}

// SetInstrument points the ticket at another instrument. The price fields are
// left as they are; a following SelectOrderType refreshes them.
func (s *TicketSession) SetInstrument(uic int, assetType models.AssetType) models.OrderTicket {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ticket.Uic = uic
	if assetType != "" {
		s.ticket.AssetType = assetType
	}

	return s.ticket.Clone()
}

func (s *TicketSession) SetAmount(amount float64) (models.OrderTicket, error) {
	if amount <= 0 {
		return models.OrderTicket{}, models.NewDiagnostic("Amount", amount, "amount must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ticket.Amount = amount
	return s.ticket.Clone(), nil
}

func (s *TicketSession) SetBuySell(buySell models.BuySell) (models.OrderTicket, error) {
	if err := buySell.Validate(); err != nil {
		return models.OrderTicket{}, models.NewDiagnostic("BuySell", buySell, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ticket.BuySell = buySell
	return s.ticket.Clone(), nil
}

// CheckConditions fetches the instrument's trading conditions for the
// session's account and validates the ticket against them. Findings are
// advisory; the returned error is only set when the conditions could not be
// fetched.
func (s *TicketSession) CheckConditions(ctx context.Context) (models.Findings, error) {
	ctx, span := s.startSpan(ctx, "TicketSession.CheckConditions")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	conditions, err := s.fetchConditionsLocked(ctx)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	ticket := s.ticket.Clone()
	ticket.AccountKey = s.accountKey

	findings := validator.NewValidator(s.accounts, s.validatorOptions...).Validate(ticket, conditions)

	span.SetAttributes(attribute.Int("findings", len(findings)))
	for _, f := range findings {
		log.WithField("rule", f.RuleID).Warn(f.Message)
	}

	s.publish(eventpubsub.FindingsReportedEvent, eventpubsub.FindingsReported{
		SessionID: s.ID,
		Uic:       ticket.Uic,
		AssetType: ticket.AssetType,
		Findings:  findings,
	})

	return findings, nil
}

// ApplySupportedOrderType switches the ticket to an order type the instrument
// supports when its current one is not.
func (s *TicketSession) ApplySupportedOrderType(ctx context.Context) (models.OrderTicket, bool, error) {
	ctx, span := s.startSpan(ctx, "TicketSession.ApplySupportedOrderType")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	conditions, err := s.fetchConditionsLocked(ctx)
	if err != nil {
		recordError(span, err)
		return s.ticket.Clone(), false, err
	}

	out, changed, err := s.normalizer.EnsureSupportedOrderType(s.ticket, conditions.SupportedOrderTypes)
	if err != nil {
		s.publishDiagnostic(err)
		return s.ticket.Clone(), false, err
	}

	if changed && out.OrderType == models.OrderTypeLimit {
		if out, err = s.normalizeOrderTypeLocked(ctx, s.ticket, models.OrderTypeLimit); err != nil {
			return s.ticket.Clone(), false, err
		}
	}

	s.ticket = out
	return out.Clone(), changed, nil
}

// PreCheck asks the platform to validate the ticket without placing it. A
// result that is not Ok is returned together with an error.
func (s *TicketSession) PreCheck(ctx context.Context) (*models.PreCheckResultDTO, error) {
	ctx, span := s.startSpan(ctx, "TicketSession.PreCheck")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, err := s.orderTicketLocked(ctx)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	result, err := s.broker.PreCheckOrder(ctx, ticket)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	if err := result.Err(); err != nil {
		recordError(span, err)
		return result, err
	}

	return result, nil
}

func (s *TicketSession) Place(ctx context.Context) (*models.OrderResponseDTO, error) {
	ctx, span := s.startSpan(ctx, "TicketSession.Place")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, err := s.orderTicketLocked(ctx)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	resp, err := s.broker.PlaceOrder(ctx, ticket, s.requestID(ticket))
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	s.lastOrderId = resp.OrderId
	span.SetAttributes(attribute.String("orderId", resp.OrderId))

	s.publish(eventpubsub.OrderPlacedEvent, eventpubsub.OrderEvent{
		SessionID: s.ID,
		OrderId:   resp.OrderId,
		Ticket:    ticket,
	})

	return resp, nil
}

// ModifyLast sends the current ticket as a change to the last placed order.
func (s *TicketSession) ModifyLast(ctx context.Context) (*models.OrderResponseDTO, error) {
	ctx, span := s.startSpan(ctx, "TicketSession.ModifyLast")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastOrderId == "" {
		return nil, models.ErrNoLastOrder
	}

	ticket, err := s.orderTicketLocked(ctx)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	ticket.OrderId = s.lastOrderId

	resp, err := s.broker.ModifyOrder(ctx, ticket, s.requestID(ticket))
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	s.publish(eventpubsub.OrderModifiedEvent, eventpubsub.OrderEvent{
		SessionID: s.ID,
		OrderId:   ticket.OrderId,
		Ticket:    ticket,
	})

	return resp, nil
}

func (s *TicketSession) CancelLast(ctx context.Context) (*models.CancelOrdersResponseDTO, error) {
	ctx, span := s.startSpan(ctx, "TicketSession.CancelLast")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastOrderId == "" {
		return nil, models.ErrNoLastOrder
	}

	if err := s.loadAccountsLocked(ctx); err != nil {
		recordError(span, err)
		return nil, err
	}

	orderId := s.lastOrderId

	resp, err := s.broker.CancelOrder(ctx, orderId, s.accountKey)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	s.lastOrderId = ""

	s.publish(eventpubsub.OrderCancelledEvent, eventpubsub.OrderEvent{
		SessionID: s.ID,
		OrderId:   orderId,
		Ticket:    s.ticket.Clone(),
	})

	return resp, nil
}

func (s *TicketSession) Costs(ctx context.Context) (*models.OrderCostsDTO, error) {
	ctx, span := s.startSpan(ctx, "TicketSession.Costs")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, err := s.orderTicketLocked(ctx)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	costs, err := s.broker.FetchOrderCosts(ctx, ticket)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	return costs, nil
}

func (s *TicketSession) normalizeOrderTypeLocked(ctx context.Context, ticket models.OrderTicket, orderType models.OrderType) (models.OrderTicket, error) {
	n := s.normalizer
	if orderType == models.OrderTypeLimit {
		quote, err := s.broker.FetchInfoPrice(ctx, ticket.Uic, ticket.AssetType)
		if err != nil {
			log.Warnf("SelectOrderType: no quote for uic %d, using fictive price: %v", ticket.Uic, err)
		} else if price, ok := quote.Price(); ok {
			n = n.WithLimitPrice(price)
		} else {
			log.Warnf("SelectOrderType: quote for uic %d has no bid, using fictive price", ticket.Uic)
		}
	}

	out, err := n.NormalizeForOrderType(ticket, orderType)
	if err != nil {
		s.publishDiagnostic(err)
		return ticket, err
	}

	return out, nil
}

func (s *TicketSession) fetchConditionsLocked(ctx context.Context) (*models.InstrumentConditions, error) {
	if err := s.loadAccountsLocked(ctx); err != nil {
		return nil, err
	}

	conditions, err := s.broker.FetchInstrumentConditions(ctx, s.ticket.Uic, s.ticket.AssetType, s.accountKey)
	if err != nil {
		return nil, fmt.Errorf("CheckConditions: failed to fetch conditions: %w", err)
	}

	return conditions, nil
}

func (s *TicketSession) loadAccountsLocked(ctx context.Context) error {
	if s.accounts != nil {
		return nil
	}

	accounts, err := s.broker.FetchAccounts(ctx)
	if err != nil {
		return fmt.Errorf("LoadAccounts: failed to fetch accounts: %w", err)
	}

	if s.accountKey == "" {
		if len(accounts) == 0 {
			return fmt.Errorf("LoadAccounts: %w", models.ErrAccountNotFound)
		}

		s.accountKey = accounts[0].AccountKey
	} else if _, found := accounts.ResolveAccountID(s.accountKey); !found {
		return fmt.Errorf("LoadAccounts: %s: %w", s.accountKey, models.ErrAccountNotFound)
	}

	s.accounts = accounts
	return nil
}

// orderTicketLocked returns the ticket as it is sent to the platform, with the
// session's account key filled in.
func (s *TicketSession) orderTicketLocked(ctx context.Context) (models.OrderTicket, error) {
	if err := s.loadAccountsLocked(ctx); err != nil {
		return models.OrderTicket{}, err
	}

	ticket := s.ticket.Clone()
	ticket.AccountKey = s.accountKey
	return ticket, nil
}

func (s *TicketSession) requestID(ticket models.OrderTicket) string {
	if !s.useRequestID {
		return ""
	}

	return ticket.ExternalReference
}

func (s *TicketSession) publish(topic string, event interface{}) {
	if s.bus == nil {
		return
	}

	s.bus.Publish(topic, event)
}

func (s *TicketSession) publishDiagnostic(err error) {
	var diagnostic *models.Diagnostic
	if !errors.As(err, &diagnostic) {
		return
	}

	s.publish(eventpubsub.DiagnosticEvent, eventpubsub.DiagnosticReported{
		SessionID:  s.ID,
		Diagnostic: diagnostic,
	})
}

func (s *TicketSession) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	tracer := otel.GetTracerProvider().Tracer("services:session")
	ctx, span := tracer.Start(ctx, name)
	span.SetAttributes(attribute.String("sessionId", s.ID.String()))
	return ctx, span
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func NewTicketSession(broker IBroker, template models.OrderTicket, accountKey string, n *normalizer.Normalizer, opts ...SessionOption) *TicketSession {
	if n == nil {
		n = normalizer.NewNormalizer(normalizer.DefaultPlaceholders(), nil)
	}

	s := &TicketSession{
		ID:         uuid.New(),
		broker:     broker,
		normalizer: n,
		ticket:     template.Clone(),
		accountKey: accountKey,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}
