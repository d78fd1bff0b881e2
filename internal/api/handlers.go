/**
 * @description
 * HTTP handler functions for the billing backend. Handlers parse and
 * validate incoming requests at the boundary (the billing engine
 * assumes validated input), call the service layer and write JSON
 * responses. Store sentinels map onto HTTP status codes here.
 */
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ferchoitu/led1-billing/internal/app"
	"github.com/ferchoitu/led1-billing/internal/billing"
	"github.com/ferchoitu/led1-billing/internal/domain"
	"github.com/ferchoitu/led1-billing/internal/store"
)

const dateLayout = "2006-01-02"

// Handler holds the application service that handlers interact with.
type Handler struct {
	service  *app.Service
	validate *validator.Validate
}

// NewHandler creates a new Handler with the given service.
func NewHandler(service *app.Service) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
	}
}

type errorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// respondWithJSON is a helper function to write JSON responses.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, errorResponse{Error: message})
}

// respondWithServiceError translates service and store errors into
// HTTP status codes.
func respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrClientNotFound),
		errors.Is(err, store.ErrPaymentNotFound),
		errors.Is(err, store.ErrExpenseNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrDuplicatePhone),
		errors.Is(err, store.ErrDuplicatePayment),
		errors.Is(err, store.ErrClientHasPayments),
		errors.Is(err, app.ErrAlreadyPaid),
		errors.Is(err, app.ErrClientInactive):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, billing.ErrOptedOut):
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, err.Error())
	}
}

func parseIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid id")
		return "", false
	}
	return id, true
}

// ---- clients ----

type clientRequest struct {
	Name             string          `json:"name" validate:"required"`
	BusinessName     *string         `json:"business_name"`
	PhoneE164        string          `json:"phone_e164" validate:"required,e164"`
	WhatsAppOptIn    *bool           `json:"whatsapp_opt_in"`
	Status           string          `json:"status" validate:"omitempty,oneof=active paused ended"`
	StartDate        string          `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate          *string         `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	TicketAmount     decimal.Decimal `json:"ticket_amount"`
	Currency         string          `json:"currency" validate:"omitempty,iso4217"`
	BillingFrequency string          `json:"billing_frequency" validate:"omitempty,oneof=monthly custom"`
	BillingDay       int             `json:"billing_day" validate:"required,min=1,max=28"`
	Notes            *string         `json:"notes"`
}

// toDomain applies defaults and converts the validated request into a
// domain client. Cross-field checks that the tag language cannot
// express (positive amount, end date not before start date) live here.
func (req clientRequest) toDomain() (*domain.Client, error) {
	if !req.TicketAmount.IsPositive() {
		return nil, errors.New("ticket_amount must be positive")
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, errors.New("invalid start_date")
	}

	var endDate *time.Time
	if req.EndDate != nil && *req.EndDate != "" {
		parsed, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			return nil, errors.New("invalid end_date")
		}
		if parsed.Before(startDate) {
			return nil, errors.New("end_date cannot precede start_date")
		}
		endDate = &parsed
	}

	c := &domain.Client{
		Name:             req.Name,
		BusinessName:     req.BusinessName,
		PhoneE164:        req.PhoneE164,
		WhatsAppOptIn:    true,
		Status:           domain.ClientStatusActive,
		StartDate:        startDate,
		EndDate:          endDate,
		TicketAmount:     req.TicketAmount,
		Currency:         "ARS",
		BillingFrequency: domain.BillingFrequencyMonthly,
		BillingDay:       req.BillingDay,
		Notes:            req.Notes,
	}
	if req.WhatsAppOptIn != nil {
		c.WhatsAppOptIn = *req.WhatsAppOptIn
	}
	if req.Status != "" {
		c.Status = req.Status
	}
	if req.Currency != "" {
		c.Currency = req.Currency
	}
	if req.BillingFrequency != "" {
		c.BillingFrequency = req.BillingFrequency
	}
	return c, nil
}

func (h *Handler) decodeAndValidateClient(w http.ResponseWriter, r *http.Request) (*domain.Client, bool) {
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: "validation error", Details: err.Error()})
		return nil, false
	}
	client, err := req.toDomain()
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return client, true
}

func (h *Handler) handleListClients(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	search := r.URL.Query().Get("search")

	clients, err := h.service.ListClients(r.Context(), status, search)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, clients)
}

func (h *Handler) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	client, ok := h.decodeAndValidateClient(w, r)
	if !ok {
		return
	}

	created, err := h.service.CreateClient(r.Context(), client)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleGetClient(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	client, err := h.service.GetClient(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, client)
}

func (h *Handler) handleUpdateClient(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	client, ok := h.decodeAndValidateClient(w, r)
	if !ok {
		return
	}
	client.ID = id

	updated, err := h.service.UpdateClient(r.Context(), client)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteClient(r.Context(), id); err != nil {
		respondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- payments ----

type paymentRequest struct {
	ClientID    string          `json:"client_id" validate:"required,uuid"`
	PeriodYear  int             `json:"period_year" validate:"required,min=2020,max=2100"`
	PeriodMonth int             `json:"period_month" validate:"required,min=1,max=12"`
	Amount      decimal.Decimal `json:"amount"`
	PaidAt      *string         `json:"paid_at"`
	Notes       *string         `json:"notes"`
}

func (h *Handler) handleListPayments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.PaymentFilter{ClientID: q.Get("client_id")}
	if y := q.Get("year"); y != "" {
		filter.PeriodYear, _ = strconv.Atoi(y)
	}
	if m := q.Get("month"); m != "" {
		filter.PeriodMonth, _ = strconv.Atoi(m)
	}

	payments, err := h.service.ListPayments(r.Context(), filter)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, payments)
}

func (h *Handler) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: "validation error", Details: err.Error()})
		return
	}
	if !req.Amount.IsPositive() {
		respondWithError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	payment := &domain.Payment{
		ClientID:    req.ClientID,
		PeriodYear:  req.PeriodYear,
		PeriodMonth: req.PeriodMonth,
		Amount:      req.Amount,
		Notes:       req.Notes,
	}
	if req.PaidAt != nil && *req.PaidAt != "" {
		paidAt, err := time.Parse(time.RFC3339, *req.PaidAt)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid paid_at")
			return
		}
		payment.PaidAt = paidAt
	}

	created, err := h.service.RecordPayment(r.Context(), payment)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleDeletePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.DeletePayment(r.Context(), id); err != nil {
		respondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- dashboard ----

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.Dashboard(r.Context())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, data)
}

// ---- notifications ----

type sendReminderRequest struct {
	ClientID string `json:"client_id" validate:"required,uuid"`
}

func (h *Handler) handleSendReminder(w http.ResponseWriter, r *http.Request) {
	var req sendReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: "validation error", Details: err.Error()})
		return
	}

	entry, err := h.service.SendReminder(r.Context(), req.ClientID)
	if err != nil {
		// A provider failure still produced and persisted a log row;
		// surface both.
		if entry != nil {
			respondWithJSON(w, http.StatusBadGateway, map[string]interface{}{
				"error": err.Error(),
				"log":   entry,
			})
			return
		}
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, entry)
}

func (h *Handler) handleRunReminders(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.RunReminders(r.Context())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

func (h *Handler) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		limit, _ = strconv.Atoi(l)
	}

	logs, err := h.service.ListNotifications(r.Context(), limit)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, logs)
}

// ---- expenses ----

type expenseRequest struct {
	Concept  string          `json:"concept" validate:"required"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency" validate:"omitempty,iso4217"`
	SpentAt  *string         `json:"spent_at" validate:"omitempty,datetime=2006-01-02"`
	Notes    *string         `json:"notes"`
}

func (h *Handler) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year, _ := strconv.Atoi(q.Get("year"))
	month, _ := strconv.Atoi(q.Get("month"))

	expenses, err := h.service.ListExpenses(r.Context(), year, month)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, expenses)
}

func (h *Handler) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: "validation error", Details: err.Error()})
		return
	}
	if !req.Amount.IsPositive() {
		respondWithError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	expense := &domain.Expense{
		Concept:  req.Concept,
		Amount:   req.Amount,
		Currency: "ARS",
		Notes:    req.Notes,
	}
	if req.Currency != "" {
		expense.Currency = req.Currency
	}
	if req.SpentAt != nil && *req.SpentAt != "" {
		spentAt, err := time.Parse(dateLayout, *req.SpentAt)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid spent_at")
			return
		}
		expense.SpentAt = spentAt
	}

	created, err := h.service.RecordExpense(r.Context(), expense)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteExpense(r.Context(), id); err != nil {
		respondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- reports ----

func (h *Handler) handleUpcomingReport(w http.ResponseWriter, r *http.Request) {
	charges, err := h.service.UpcomingCharges(r.Context())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, charges)
}

func (h *Handler) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	period := h.service.CurrentPeriod()

	year := period.Year
	month := period.Month
	if y := q.Get("year"); y != "" {
		year, _ = strconv.Atoi(y)
	}
	if m := q.Get("month"); m != "" {
		month, _ = strconv.Atoi(m)
	}
	if year < 2020 || year > 2100 || month < 1 || month > 12 {
		respondWithError(w, http.StatusBadRequest, "invalid period")
		return
	}

	report, err := h.service.Report(r.Context(), year, month)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, report)
}
