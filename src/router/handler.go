package router

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jiaming2012/openapi-orders/src/models"
	"github.com/jiaming2012/openapi-orders/src/normalizer"
	"github.com/jiaming2012/openapi-orders/src/services"
	"github.com/jiaming2012/openapi-orders/src/validator"
)

// SessionFactory creates the session that backs a new ticket.
type SessionFactory func(template models.OrderTicket) *services.TicketSession

type Handler struct {
	normalizer       *normalizer.Normalizer
	validatorOptions []validator.Option
	template         models.OrderTicket
	newSession       SessionFactory
	decoder          *schema.Decoder

	mu       sync.RWMutex
	sessions map[uuid.UUID]*services.TicketSession
}

func setResponse(response interface{}, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		return fmt.Errorf("SetResponse: encode: %w", err)
	}

	return nil
}

func setErrorResponse(errType string, statusCode int, err error, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := NewErrorResponse(errType, err.Error())

	var diagnostic *models.Diagnostic
	if errors.As(err, &diagnostic) {
		resp.Field = diagnostic.Field
		resp.Value = diagnostic.Value
	}

	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		return encodeErr
	}

	return nil
}

// setSessionError maps an error of a session operation to its status code.
func setSessionError(errType string, err error, w http.ResponseWriter) {
	var diagnostic *models.Diagnostic
	var apiErr *models.OpenApiError

	switch {
	case errors.As(err, &diagnostic):
		setErrorResponse("diagnostic", http.StatusUnprocessableEntity, err, w)
	case errors.Is(err, models.ErrNoLastOrder):
		setErrorResponse(errType, http.StatusConflict, err, w)
	case errors.Is(err, models.ErrAccountNotFound):
		setErrorResponse(errType, http.StatusNotFound, err, w)
	case errors.As(err, &apiErr):
		log.Errorf("%s: %v", errType, err)
		setErrorResponse("broker", http.StatusBadGateway, err, w)
	default:
		log.Errorf("%s: %v", errType, err)
		setErrorResponse(errType, http.StatusInternalServerError, err, w)
	}
}

func (h *Handler) handleNormalizeOrderType(w http.ResponseWriter, r *http.Request) {
	var query OrderTypeQuery
	if err := h.decoder.Decode(&query, r.URL.Query()); err != nil {
		setErrorResponse("requestError", http.StatusBadRequest, err, w)
		return
	}

	ticket, err := decodeTicket(r)
	if err != nil {
		setErrorResponse("requestError", http.StatusBadRequest, err, w)
		return
	}

	n := h.normalizer
	if query.LimitPrice != nil {
		n = n.WithLimitPrice(*query.LimitPrice)
	}

	out, err := n.NormalizeForOrderType(ticket, query.OrderType)
	if err != nil {
		setErrorResponse("diagnostic", http.StatusUnprocessableEntity, err, w)
		return
	}

	if err := setResponse(out, w); err != nil {
		log.Errorf("handleNormalizeOrderType: %v", err)
	}
}

func (h *Handler) handleNormalizeDuration(w http.ResponseWriter, r *http.Request) {
	var query DurationTypeQuery
	if err := h.decoder.Decode(&query, r.URL.Query()); err != nil {
		setErrorResponse("requestError", http.StatusBadRequest, err, w)
		return
	}

	ticket, err := decodeTicket(r)
	if err != nil {
		setErrorResponse("requestError", http.StatusBadRequest, err, w)
		return
	}

	out, err := h.normalizer.NormalizeForDuration(ticket, query.DurationType)
	if err != nil {
		setErrorResponse("diagnostic", http.StatusUnprocessableEntity, err, w)
		return
	}

	if err := setResponse(out, w); err != nil {
		log.Errorf("handleNormalizeDuration: %v", err)
	}
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		setErrorResponse("requestError", http.StatusBadRequest, fmt.Errorf("handleValidate: failed to decode request: %w", err), w)
		return
	}

	var conditions *models.InstrumentConditions
	if req.Conditions != nil {
		conditions = req.Conditions.ToInstrumentConditions()
	}

	findings := validator.NewValidator(req.Accounts, h.validatorOptions...).Validate(req.Ticket, conditions)

	if err := setResponse(FindingsResponse{Findings: findings, Count: len(findings)}, w); err != nil {
		log.Errorf("handleValidate: %v", err)
	}
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	template := h.template.Clone()
	if r.ContentLength > 0 {
		ticket, err := decodeTicket(r)
		if err != nil {
			setErrorResponse("requestError", http.StatusBadRequest, err, w)
			return
		}

		template = ticket
	}

	session := h.newSession(template)

	h.mu.Lock()
	h.sessions[session.ID] = session
	h.mu.Unlock()

	log.Infof("created session %s", session.ID)

	if err := setResponse(newSessionResponse(session), w); err != nil {
		log.Errorf("handleCreateSession: %v", err)
	}
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.getSession(w, r)
	if !ok {
		return
	}

	if err := setResponse(newSessionResponse(session), w); err != nil {
		log.Errorf("handleGetSession: %v", err)
	}
}

func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.getSession(w, r)
	if !ok {
		return
	}

	h.mu.Lock()
	delete(h.sessions, session.ID)
	h.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSessionOrderType(w http.ResponseWriter, r *http.Request) {
	session, ok := h.getSession(w, r)
	if !ok {
		return
	}

	var query OrderTypeQuery
	if err := h.decoder.Decode(&query, r.URL.Query()); err != nil {
		setErrorResponse("requestError", http.StatusBadRequest, err, w)
		return
	}

	ticket, err := session.SelectOrderType(r.Context(), query.OrderType)
	if err != nil {
		setSessionError("handleSessionOrderType", err, w)
		return
	}

	if err := setResponse(ticket, w); err != nil {
		log.Errorf("handleSessionOrderType: %v", err)
	}
}

func (h *Handler) handleSessionDuration(w http.ResponseWriter, r *http.Request) {
	session, ok := h.getSession(w, r)
	if !ok {
		return
	}

	var query DurationTypeQuery
	if err := h.decoder.Decode(&query, r.URL.Query()); err != nil {
		setErrorResponse("requestError", http.StatusBadRequest, err, w)
		return
	}

	ticket, err := session.SelectOrderDuration(query.DurationType)
	if err != nil {
		setSessionError("handleSessionDuration", err, w)
		return
	}

	if err := setResponse(ticket, w); err != nil {
		log.Errorf("handleSessionDuration: %v", err)
	}
}

func (h *Handler) handleSessionInstrument(w http.ResponseWriter, r *http.Request) {
	session, ok := h.getSession(w, r)
	if !ok {
		return
	}

	var query InstrumentQuery
	if err := h.decoder.Decode(&query, r.URL.Query()); err != nil {
		setErrorResponse("requestError", http.StatusBadRequest, err, w)
		return
	}

	if err := setResponse(session.SetInstrument(query.Uic, query.AssetType), w); err != nil {
		log.Errorf("handleSessionInstrument: %v", err)
	}
}

func (h *Handler) handleSessionCheck(w http.ResponseWriter, r *http.Request) {
	session, ok := h.getSession(w, r)
	if !ok {
		return
	}

	findings, err := session.CheckConditions(r.Context())
	if err != nil {
		setSessionError("handleSessionCheck", err, w)
		return
	}

	if err := setResponse(FindingsResponse{Findings: findings, Count: len(findings)}, w); err != nil {
		log.Errorf("handleSessionCheck: %v", err)
	}
}

func (h *Handler) handleSessionSupportedOrderType(w http.ResponseWriter, r *http.Request) {
	session, ok := h.getSession(w, r)
	if !ok {
		return
	}

	ticket, changed, err := session.ApplySupportedOrderType(r.Context())
	if err != nil {
		setSessionError("handleSessionSupportedOrderType", err, w)
		return
	}

	if err := setResponse(ApplySupportedOrderTypeResponse{Changed: changed, Ticket: ticket}, w); err != nil {
		log.Errorf("handleSessionSupportedOrderType: %v", err)
	}
}

func (h *Handler) handleSessionPreCheck(w http.ResponseWriter, r *http.Request) {
	session, ok := h.getSession(w, r)
	if !ok {
		return
	}

	result, err := session.PreCheck(r.Context())
	if err != nil && result == nil {
		setSessionError("handleSessionPreCheck", err, w)
		return
	}

	// a functional precheck error still carries the platform's result
	if err := setResponse(result, w); err != nil {
		log.Errorf("handleSessionPreCheck: %v", err)
	}
}

func (h *Handler) handleSessionOrders(w http.ResponseWriter, r *http.Request) {
	session, ok := h.getSession(w, r)
	if !ok {
		return
	}

	var resp interface{}
	var err error

	switch r.Method {
	case http.MethodPost:
		resp, err = session.Place(r.Context())
	case http.MethodPatch:
		resp, err = session.ModifyLast(r.Context())
	case http.MethodDelete:
		resp, err = session.CancelLast(r.Context())
	default:
		setErrorResponse("requestError", http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method), w)
		return
	}

	if err != nil {
		setSessionError("handleSessionOrders", err, w)
		return
	}

	if err := setResponse(resp, w); err != nil {
		log.Errorf("handleSessionOrders: %v", err)
	}
}

func (h *Handler) handleSessionCosts(w http.ResponseWriter, r *http.Request) {
	session, ok := h.getSession(w, r)
	if !ok {
		return
	}

	costs, err := session.Costs(r.Context())
	if err != nil {
		setSessionError("handleSessionCosts", err, w)
		return
	}

	if err := setResponse(costs, w); err != nil {
		log.Errorf("handleSessionCosts: %v", err)
	}
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) (*services.TicketSession, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		setErrorResponse("requestError", http.StatusBadRequest, fmt.Errorf("invalid session id: %w", err), w)
		return nil, false
	}

	h.mu.RLock()
	session, found := h.sessions[id]
	h.mu.RUnlock()

	if !found {
		setErrorResponse("notFound", http.StatusNotFound, fmt.Errorf("session %s not found", id), w)
		return nil, false
	}

	return session, true
}

func decodeTicket(r *http.Request) (models.OrderTicket, error) {
	var ticket models.OrderTicket
	if err := json.NewDecoder(r.Body).Decode(&ticket); err != nil {
		return models.OrderTicket{}, models.NewDiagnostic("OrderTicket", nil, fmt.Sprintf("malformed order ticket: %v", err))
	}

	return ticket, nil
}

func newSessionResponse(session *services.TicketSession) SessionResponse {
	return SessionResponse{
		ID:          session.ID.String(),
		AccountKey:  session.AccountKey(),
		LastOrderId: session.LastOrderId(),
		Ticket:      session.Ticket(),
	}
}

// Setup registers the routes. Each handler is tagged with its route for the
// HTTP instrumentation.
func (h *Handler) Setup(router *mux.Router) {
	handleFunc := func(pattern string, handlerFunc func(http.ResponseWriter, *http.Request), methods ...string) {
		handler := otelhttp.WithRouteTag(pattern, http.HandlerFunc(handlerFunc))
		router.Handle(pattern, handler).Methods(methods...)
	}

	handleFunc("/ticket/normalize/order-type", h.handleNormalizeOrderType, http.MethodPost)
	handleFunc("/ticket/normalize/duration", h.handleNormalizeDuration, http.MethodPost)
	handleFunc("/ticket/validate", h.handleValidate, http.MethodPost)

	handleFunc("/sessions", h.handleCreateSession, http.MethodPost)
	handleFunc("/sessions/{id}", h.handleGetSession, http.MethodGet)
	handleFunc("/sessions/{id}", h.handleDeleteSession, http.MethodDelete)
	handleFunc("/sessions/{id}/order-type", h.handleSessionOrderType, http.MethodPut)
	handleFunc("/sessions/{id}/duration", h.handleSessionDuration, http.MethodPut)
	handleFunc("/sessions/{id}/instrument", h.handleSessionInstrument, http.MethodPut)
	handleFunc("/sessions/{id}/check", h.handleSessionCheck, http.MethodPost)
	handleFunc("/sessions/{id}/supported-order-type", h.handleSessionSupportedOrderType, http.MethodPost)
	handleFunc("/sessions/{id}/precheck", h.handleSessionPreCheck, http.MethodPost)
	handleFunc("/sessions/{id}/orders", h.handleSessionOrders, http.MethodPost, http.MethodPatch, http.MethodDelete)
	handleFunc("/sessions/{id}/costs", h.handleSessionCosts, http.MethodGet)
}

func NewHandler(n *normalizer.Normalizer, template models.OrderTicket, newSession SessionFactory, validatorOptions ...validator.Option) *Handler {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &Handler{
		normalizer:       n,
		validatorOptions: validatorOptions,
		template:         template,
		newSession:       newSession,
		decoder:          decoder,
		sessions:         make(map[uuid.UUID]*services.TicketSession),
	}
}
