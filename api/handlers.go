/*
handlers.go - HTTP API handlers

PURPOSE:
  Exposes the confectionery core over REST. Handlers parse and validate
  the request, delegate to domain services, and serialize the result.
  No business decisions live here.

ENDPOINTS:
  Ingredients:
    GET    /api/ingredients              List ingredients
    POST   /api/ingredients              Create ingredient
    PUT    /api/ingredients/{id}/stock   Overwrite on-hand quantity
    DELETE /api/ingredients/{id}         Delete ingredient

  Products:
    GET    /api/products                 List products
    POST   /api/products                 Create product (derives cost)
    GET    /api/products/{id}            Get product
    PUT    /api/products/{id}            Replace product (re-derives cost)
    DELETE /api/products/{id}            Delete product

  Sales:
    POST   /api/sales                    Execute a sale

  Reports:
    GET    /api/reports/dashboard        Current-month summary
    GET    /api/reports/monthly?month=YYYY-MM
    GET    /api/reports/top-products     Full-ledger ranking

ERROR HANDLING:
  Domain errors map to HTTP status by taxonomy:
  - 400: InvalidArgument (validation, negative amounts, bad month key)
  - 404: NotFound (ingredient/product id)
  - 409: InsufficientStock (payload names the ingredient and amount)
  - 500: everything else
  Empty report windows are 200 responses with zeros/empty lists, never
  errors.

SEE ALSO:
  - dto.go: request/response shapes
  - server.go: routing and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/sugarcraft/confectionery-engine/catalog"
	"github.com/sugarcraft/confectionery-engine/inventory"
	"github.com/sugarcraft/confectionery-engine/reporting"
	"github.com/sugarcraft/confectionery-engine/sales"
)

// Handler holds all dependencies for HTTP handlers. Everything is
// injected; the package keeps no globals so tests can run isolated
// instances in parallel.
type Handler struct {
	Ingredients *inventory.Ledger
	Catalog     *catalog.Catalog
	Sales       *sales.Processor
	Reports     *reporting.Aggregator
	Log         zerolog.Logger

	// now is swappable so report-window tests control the clock.
	now func() time.Time
}

func NewHandler(ingredients *inventory.Ledger, cat *catalog.Catalog, proc *sales.Processor, reports *reporting.Aggregator, log zerolog.Logger) *Handler {
	return &Handler{
		Ingredients: ingredients,
		Catalog:     cat,
		Sales:       proc,
		Reports:     reports,
		Log:         log,
		now:         time.Now,
	}
}

// =============================================================================
// INGREDIENT HANDLERS
// =============================================================================

func (h *Handler) ListIngredients(w http.ResponseWriter, r *http.Request) {
	ings, err := h.Ingredients.List(r.Context())
	if err != nil {
		h.writeDomainError(w, "Failed to list ingredients", err)
		return
	}

	dtos := make([]IngredientDTO, len(ings))
	for i, ing := range ings {
		dtos[i] = toIngredientDTO(ing)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateIngredient(w http.ResponseWriter, r *http.Request) {
	var req CreateIngredientRequest
	if details, err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, err, details)
		return
	}

	ing, err := h.Ingredients.Add(r.Context(), req.Name,
		decimal.NewFromFloat(req.UnitCost), decimal.NewFromFloat(req.Stock))
	if err != nil {
		h.writeDomainError(w, "Failed to create ingredient", err)
		return
	}
	writeJSON(w, http.StatusCreated, toIngredientDTO(*ing))
}

func (h *Handler) SetIngredientStock(w http.ResponseWriter, r *http.Request) {
	id := inventory.IngredientID(chi.URLParam(r, "id"))

	var req SetStockRequest
	if details, err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, err, details)
		return
	}

	if err := h.Ingredients.SetStock(r.Context(), id, decimal.NewFromFloat(req.NewStock)); err != nil {
		h.writeDomainError(w, "Failed to set stock", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handler) DeleteIngredient(w http.ResponseWriter, r *http.Request) {
	id := inventory.IngredientID(chi.URLParam(r, "id"))
	if err := h.Ingredients.Remove(r.Context(), id); err != nil {
		h.writeDomainError(w, "Failed to delete ingredient", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// =============================================================================
// PRODUCT HANDLERS
// =============================================================================

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Catalog.List(r.Context())
	if err != nil {
		h.writeDomainError(w, "Failed to list products", err)
		return
	}

	dtos := make([]ProductDTO, len(products))
	for i, p := range products {
		dtos[i] = toProductDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := catalog.ProductID(chi.URLParam(r, "id"))
	p, err := h.Catalog.Get(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, "Failed to get product", err)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTO(*p))
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req SaveProductRequest
	if details, err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, err, details)
		return
	}

	p, err := h.Catalog.Create(r.Context(), req.Name,
		decimal.NewFromFloat(req.Price), toLineInputs(req.Recipe))
	if err != nil {
		h.writeDomainError(w, "Failed to create product", err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductDTO(*p))
}

func (h *Handler) ReplaceProduct(w http.ResponseWriter, r *http.Request) {
	id := catalog.ProductID(chi.URLParam(r, "id"))

	var req SaveProductRequest
	if details, err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, err, details)
		return
	}

	p, err := h.Catalog.Replace(r.Context(), id, req.Name,
		decimal.NewFromFloat(req.Price), toLineInputs(req.Recipe))
	if err != nil {
		h.writeDomainError(w, "Failed to replace product", err)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTO(*p))
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := catalog.ProductID(chi.URLParam(r, "id"))
	if err := h.Catalog.Remove(r.Context(), id); err != nil {
		h.writeDomainError(w, "Failed to delete product", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func toLineInputs(lines []RecipeLineRequest) []catalog.LineInput {
	inputs := make([]catalog.LineInput, len(lines))
	for i, l := range lines {
		inputs[i] = catalog.LineInput{
			IngredientID: inventory.IngredientID(l.IngredientID),
			Quantity:     decimal.NewFromFloat(l.Quantity),
		}
	}
	return inputs
}

// =============================================================================
// SALE HANDLER
// =============================================================================

func (h *Handler) Sell(w http.ResponseWriter, r *http.Request) {
	var req SellRequest
	if details, err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, err, details)
		return
	}

	sale, err := h.Sales.Sell(r.Context(),
		catalog.ProductID(req.ProductID), decimal.NewFromFloat(req.Quantity))
	if err != nil {
		h.writeDomainError(w, "Sale failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, toSaleDTO(*sale))
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// Dashboard summarizes the current calendar month.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Reports.Summary(r.Context(), reporting.CurrentMonth(h.now()))
	if err != nil {
		h.writeDomainError(w, "Failed to build dashboard", err)
		return
	}
	writeJSON(w, http.StatusOK, SummaryDTO{
		Revenue:   f64(summary.Revenue),
		Profit:    f64(summary.Profit),
		SaleCount: summary.SaleCount,
	})
}

// MonthlyReport returns revenue + product breakdown for ?month=YYYY-MM.
func (h *Handler) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	window, err := reporting.ParseMonth(r.URL.Query().Get("month"), h.now().Location())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month", err)
		return
	}

	report, err := h.Reports.MonthReport(r.Context(), window)
	if err != nil {
		h.writeDomainError(w, "Failed to build monthly report", err)
		return
	}
	writeJSON(w, http.StatusOK, MonthReportDTO{
		Revenue:  f64(report.Revenue),
		Products: toProductTotalDTOs(report.Products),
	})
}

// TopProducts ranks product sales over the full ledger.
func (h *Handler) TopProducts(w http.ResponseWriter, r *http.Request) {
	totals, err := h.Reports.TopProducts(r.Context(), nil)
	if err != nil {
		h.writeDomainError(w, "Failed to rank products", err)
		return
	}
	writeJSON(w, http.StatusOK, toProductTotalDTOs(totals))
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func writeValidationError(w http.ResponseWriter, err error, details map[string]string) {
	resp := ErrorResponse{Error: "Invalid request body", Code: "invalid_argument"}
	if len(details) > 0 {
		resp.Error = "Validation failed"
		resp.Details = details
	} else if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, http.StatusBadRequest, resp)
}

// writeDomainError translates core errors into transport responses.
// The taxonomy mapping lives here and nowhere else.
func (h *Handler) writeDomainError(w http.ResponseWriter, message string, err error) {
	var stockErr *inventory.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		writeJSON(w, http.StatusConflict, ErrorResponse{
			Error: stockErr.Error(),
			Code:  "insufficient_stock",
			Details: map[string]any{
				"ingredient": stockErr.Name,
				"required":   f64(stockErr.Required),
				"available":  f64(stockErr.Available),
			},
		})
	case errors.Is(err, inventory.ErrIngredientNotFound),
		errors.Is(err, catalog.ErrProductNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error: err.Error(),
			Code:  "not_found",
		})
	case inventory.IsInvalidArgument(err),
		catalog.IsInvalidArgument(err),
		errors.Is(err, sales.ErrInvalidQuantity):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Code:  "invalid_argument",
		})
	default:
		h.Log.Error().Err(err).Msg(message)
		writeError(w, http.StatusInternalServerError, message, err)
	}
}
