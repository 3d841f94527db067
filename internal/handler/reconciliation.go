package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/efreitasn/saudarecon/internal/domain"
	"github.com/efreitasn/saudarecon/internal/export"
	"github.com/efreitasn/saudarecon/internal/service"
)

// ReconciliationHandler handles HTTP requests for reconciliation endpoints.
type ReconciliationHandler struct {
	svc    *service.ReconcileService
	writer *export.Writer
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(svc *service.ReconcileService, writer *export.Writer) *ReconciliationHandler {
	return &ReconciliationHandler{svc: svc, writer: writer}
}

// entryRequest is a single ledger line in the request body. Quantity and
// rate accept JSON numbers or numeric strings.
type entryRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`
	Date     string          `json:"date"`
}

// reconcileRequest is the JSON request body for POST /reconciliations.
type reconcileRequest struct {
	Party   string         `json:"party"`
	Sauda   []entryRequest `json:"sauda"`
	Returns []entryRequest `json:"returns"`
}

type entryResponse struct {
	Quantity string `json:"quantity"`
	Rate     string `json:"rate"`
	Date     string `json:"date"`
}

type rejectedResponse struct {
	Ledger string `json:"ledger"`
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type commitmentResponse struct {
	Quantity         string  `json:"quantity"`
	Rate             string  `json:"rate"`
	Date             string  `json:"date"`
	Remaining        string  `json:"remaining"`
	LastDeliveryDate *string `json:"last_delivery_date"`
}

type rateLevelResponse struct {
	Rate            string `json:"rate"`
	Committed       string `json:"committed"`
	Delivered       string `json:"delivered"`
	Matched         string `json:"matched"`
	Remaining       string `json:"remaining"`
	OverDelivered   string `json:"over_delivered"`
	CommitmentCount int    `json:"commitment_count"`
	DeliveryCount   int    `json:"delivery_count"`
}

type rawMetricsResponse struct {
	TotalSauda      string `json:"total_sauda"`
	TotalDelivery   string `json:"total_delivery"`
	SimpleRemaining string `json:"simple_remaining"`
	NetQuantity     string `json:"net_quantity"`
	NetRate         string `json:"net_rate"`
	NetMoney        string `json:"net_money"`
	Position        string `json:"position"`
	Outcome         string `json:"outcome"`
}

type overMetricsResponse struct {
	TotalOverQuantity string `json:"total_over_quantity"`
	NetQuantity       string `json:"net_quantity"`
	NetRate           string `json:"net_rate"`
	NetMoney          string `json:"net_money"`
	Position          string `json:"position"`
	Outcome           string `json:"outcome"`
}

// reportResponse is the JSON response for a single reconciliation.
// Figures are strings with exactly two decimal places.
type reportResponse struct {
	ReportID       string               `json:"report_id"`
	Party          string               `json:"party"`
	CreatedAt      string               `json:"created_at"`
	Sauda          []entryResponse      `json:"sauda"`
	Returns        []entryResponse      `json:"returns"`
	Rejected       []rejectedResponse   `json:"rejected"`
	Commitments    []commitmentResponse `json:"commitments"`
	OverDeliveries []entryResponse      `json:"over_deliveries"`
	Rates          []rateLevelResponse  `json:"rates"`
	Raw            rawMetricsResponse   `json:"raw"`
	OverDelivery   overMetricsResponse  `json:"over_delivery"`
}

// reportSummaryResponse is a single report in the list response.
type reportSummaryResponse struct {
	ReportID        string `json:"report_id"`
	Party           string `json:"party"`
	CreatedAt       string `json:"created_at"`
	SaudaCount      int    `json:"sauda_count"`
	ReturnsCount    int    `json:"returns_count"`
	OpenCommitments int    `json:"open_commitments"`
	OverDeliveries  int    `json:"over_deliveries"`
}

type reportListResponse struct {
	Reports []reportSummaryResponse `json:"reports"`
	Total   int                     `json:"total"`
	Page    int                     `json:"page"`
	Limit   int                     `json:"limit"`
}

// Create handles POST /reconciliations.
func (h *ReconciliationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req reconcileRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", errInvalidJSON.Error())
		return
	}

	report, err := h.svc.Reconcile(service.ReconcileRequest{
		Party:   req.Party,
		Sauda:   toRawEntries(req.Sauda),
		Returns: toRawEntries(req.Returns),
	})
	if err != nil {
		mapReconciliationError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, buildReportResponse(report))
}

// Get handles GET /reconciliations/{report_id}.
func (h *ReconciliationHandler) Get(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.GetReport(chi.URLParam(r, "report_id"))
	if err != nil {
		mapReconciliationError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, buildReportResponse(report))
}

// List handles GET /reconciliations.
func (h *ReconciliationHandler) List(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		var err error
		page, err = strconv.Atoi(p)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "validation_error", "page must be a valid integer")
			return
		}
	}

	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		var err error
		limit, err = strconv.Atoi(l)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "validation_error", "limit must be a valid integer")
			return
		}
	}

	reports, total, err := h.svc.ListReports(r.URL.Query().Get("party"), page, limit)
	if err != nil {
		mapReconciliationError(w, err)
		return
	}

	summaries := make([]reportSummaryResponse, len(reports))
	for i, rep := range reports {
		summaries[i] = reportSummaryResponse{
			ReportID:        rep.ID,
			Party:           rep.Party,
			CreatedAt:       rep.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
			SaudaCount:      len(rep.Sauda),
			ReturnsCount:    len(rep.Deliveries),
			OpenCommitments: rep.OpenCommitments(),
			OverDeliveries:  len(rep.OverDeliveries),
		}
	}

	WriteJSON(w, http.StatusOK, reportListResponse{
		Reports: summaries,
		Total:   total,
		Page:    page,
		Limit:   limit,
	})
}

// Export handles GET /reconciliations/{report_id}/export/{format}.
func (h *ReconciliationHandler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		mapReconciliationError(w, err)
		return
	}

	report, err := h.svc.GetReport(chi.URLParam(r, "report_id"))
	if err != nil {
		mapReconciliationError(w, err)
		return
	}

	// Render fully before writing so a failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := h.writer.Write(&buf, format, report); err != nil {
		mapReconciliationError(w, err)
		return
	}

	WriteAttachment(w, format.ContentType(), format.Filename(), buf.Bytes())
}

func toRawEntries(entries []entryRequest) []domain.RawEntry {
	out := make([]domain.RawEntry, len(entries))
	for i, e := range entries {
		out[i] = domain.RawEntry{Quantity: e.Quantity, Rate: e.Rate, Date: e.Date}
	}
	return out
}

func fixed(d decimal.Decimal) string {
	return d.StringFixed(domain.Places)
}

func buildEntryResponses(entries []domain.Entry) []entryResponse {
	out := make([]entryResponse, len(entries))
	for i, e := range entries {
		out[i] = entryResponse{
			Quantity: fixed(e.Quantity),
			Rate:     fixed(e.Rate),
			Date:     e.Date.Format(domain.DateLayout),
		}
	}
	return out
}

func buildReportResponse(report *domain.Report) reportResponse {
	rejected := make([]rejectedResponse, len(report.Rejected))
	for i, rj := range report.Rejected {
		rejected[i] = rejectedResponse{Ledger: string(rj.Kind), Row: rj.Row, Reason: rj.Reason}
	}

	commitments := make([]commitmentResponse, len(report.Commitments))
	for i, c := range report.Commitments {
		resp := commitmentResponse{
			Quantity:  fixed(c.Quantity),
			Rate:      fixed(c.Rate),
			Date:      c.Date.Format(domain.DateLayout),
			Remaining: fixed(c.Remaining),
		}
		if c.LastDeliveryDate != nil {
			s := domain.FormatDate(c.LastDeliveryDate)
			resp.LastDeliveryDate = &s
		}
		commitments[i] = resp
	}

	over := make([]entryResponse, len(report.OverDeliveries))
	for i, o := range report.OverDeliveries {
		over[i] = entryResponse{
			Quantity: fixed(o.Quantity),
			Rate:     fixed(o.Rate),
			Date:     o.Date.Format(domain.DateLayout),
		}
	}

	rates := make([]rateLevelResponse, len(report.Levels))
	for i, l := range report.Levels {
		rates[i] = rateLevelResponse{
			Rate:            fixed(l.Rate),
			Committed:       fixed(l.Committed),
			Delivered:       fixed(l.Delivered),
			Matched:         fixed(l.Matched),
			Remaining:       fixed(l.Remaining),
			OverDelivered:   fixed(l.OverDelivered),
			CommitmentCount: l.CommitmentCount,
			DeliveryCount:   l.DeliveryCount,
		}
	}

	raw, om := report.Raw, report.Over
	return reportResponse{
		ReportID:       report.ID,
		Party:          report.Party,
		CreatedAt:      report.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		Sauda:          buildEntryResponses(report.Sauda),
		Returns:        buildEntryResponses(report.Deliveries),
		Rejected:       rejected,
		Commitments:    commitments,
		OverDeliveries: over,
		Rates:          rates,
		Raw: rawMetricsResponse{
			TotalSauda:      fixed(raw.TotalCommitted),
			TotalDelivery:   fixed(raw.TotalDelivered),
			SimpleRemaining: fixed(raw.SimpleRemaining),
			NetQuantity:     fixed(raw.NetQuantity),
			NetRate:         fixed(raw.NetRate),
			NetMoney:        fixed(raw.NetMoney),
			Position:        string(raw.Position()),
			Outcome:         string(raw.Outcome()),
		},
		OverDelivery: overMetricsResponse{
			TotalOverQuantity: fixed(om.TotalOverQuantity),
			NetQuantity:       fixed(om.NetQuantity),
			NetRate:           fixed(om.NetRate),
			NetMoney:          fixed(om.NetMoney),
			Position:          string(om.Position()),
			Outcome:           string(om.Outcome()),
		},
	}
}

// mapReconciliationError maps domain errors to HTTP responses for
// reconciliation endpoints.
func mapReconciliationError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteError(w, http.StatusBadRequest, "validation_error", validationErr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrReportNotFound):
		WriteError(w, http.StatusNotFound, "report_not_found", err.Error())
	case errors.Is(err, domain.ErrUnknownExportFormat):
		WriteError(w, http.StatusBadRequest, "unknown_format", err.Error())
	case errors.Is(err, domain.ErrTooManyEntries):
		WriteError(w, http.StatusRequestEntityTooLarge, "too_many_entries", err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
