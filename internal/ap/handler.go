package ap

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
	"github.com/meridian-erp/meridian-erp/internal/shared"
)

// Handler exposes the AP report endpoints.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs the AP report HTTP handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Routes mounts the report endpoints on the router.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/ap/reports", func(r chi.Router) {
		r.Post("/aging", h.handleAging)
		r.Post("/cash-flow", h.handleCashFlow)
		r.Post("/cash-requirement", h.handleCashRequirement)
		r.Post("/expense", h.handleExpense)
		r.Post("/all", h.handleAll)
	})
}

func (h *Handler) handleAging(w http.ResponseWriter, r *http.Request) {
	var filter AgingFilter
	if err := httpx.DecodeJSON(r, &filter); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	report, err := h.service.AgingReport(r.Context(), filter)
	if err != nil {
		h.respondError(w, "aging report", err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) handleCashFlow(w http.ResponseWriter, r *http.Request) {
	var filter CashFlowFilter
	if err := httpx.DecodeJSON(r, &filter); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	report, err := h.service.CashFlowReport(r.Context(), filter)
	if err != nil {
		h.respondError(w, "cash flow report", err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) handleCashRequirement(w http.ResponseWriter, r *http.Request) {
	var filter CashRequirementFilter
	if err := httpx.DecodeJSON(r, &filter); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	report, err := h.service.CashRequirementReport(r.Context(), filter)
	if err != nil {
		h.respondError(w, "cash requirement report", err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) handleExpense(w http.ResponseWriter, r *http.Request) {
	var filter ExpenseFilter
	if err := httpx.DecodeJSON(r, &filter); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	report, err := h.service.ExpenseReport(r.Context(), filter)
	if err != nil {
		h.respondError(w, "expense report", err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

// allReportsRequest bundles the filters for the combined endpoint.
type allReportsRequest struct {
	Aging           AgingFilter           `json:"aging"`
	CashFlow        CashFlowFilter        `json:"cashFlow"`
	CashRequirement CashRequirementFilter `json:"cashRequirement"`
}

func (h *Handler) handleAll(w http.ResponseWriter, r *http.Request) {
	var req allReportsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	bundle, err := h.service.AllReports(r.Context(), req.Aging, req.CashFlow, req.CashRequirement)
	if err != nil {
		h.respondError(w, "all reports", err)
		return
	}
	httpx.JSON(w, http.StatusOK, bundle)
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, shared.ErrInvalidFilter):
		httpx.Problem(w, http.StatusBadRequest, "Invalid Filter", err.Error())
	case errors.Is(err, ErrStreamOrder), errors.Is(err, ErrUnclassifiableInvoice):
		h.logger.Error(op, slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Report Failed", "")
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
