/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupled from the domain
  model. Request types carry validator tags (validated on decode);
  response DTOs are pure data carriers.

NAMING CONVENTION:
  - *DTO: response types returned to clients
  - *Request: request body types from clients

MONEY IN JSON:
  Amounts cross the wire as JSON numbers (float64) for client
  convenience; the domain holds them as decimals. Conversion happens
  only at this boundary.
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sugarcraft/confectionery-engine/catalog"
	"github.com/sugarcraft/confectionery-engine/inventory"
	"github.com/sugarcraft/confectionery-engine/reporting"
	"github.com/sugarcraft/confectionery-engine/sales"
)

// =============================================================================
// INGREDIENTS
// =============================================================================

type IngredientDTO struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	UnitCost float64 `json:"unit_cost"`
	Stock    float64 `json:"stock"`
}

type CreateIngredientRequest struct {
	Name     string  `json:"name" validate:"required"`
	UnitCost float64 `json:"unit_cost" validate:"gte=0"`
	Stock    float64 `json:"stock" validate:"gte=0"`
}

type SetStockRequest struct {
	NewStock float64 `json:"new_stock" validate:"gte=0"`
}

// =============================================================================
// PRODUCTS
// =============================================================================

type RecipeLineDTO struct {
	IngredientID   string  `json:"ingredient_id"`
	IngredientName string  `json:"ingredient_name"`
	Quantity       float64 `json:"quantity"`
}

type ProductDTO struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Price          float64         `json:"price"`
	ProductionCost float64         `json:"production_cost"`
	Recipe         []RecipeLineDTO `json:"recipe"`
}

type RecipeLineRequest struct {
	IngredientID string  `json:"ingredient_id" validate:"required"`
	Quantity     float64 `json:"quantity" validate:"gt=0"`
}

type SaveProductRequest struct {
	Name   string              `json:"name" validate:"required"`
	Price  float64             `json:"price" validate:"gte=0"`
	Recipe []RecipeLineRequest `json:"recipe" validate:"dive"`
}

// =============================================================================
// SALES
// =============================================================================

type SellRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	Quantity  float64 `json:"quantity" validate:"gt=0"`
}

type SaleDTO struct {
	ID      string        `json:"id"`
	At      string        `json:"at"`
	Items   []SaleItemDTO `json:"items"`
	Revenue float64       `json:"revenue"`
	Profit  float64       `json:"profit"`
}

type SaleItemDTO struct {
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
}

// =============================================================================
// REPORTS
// =============================================================================

type SummaryDTO struct {
	Revenue   float64 `json:"revenue"`
	Profit    float64 `json:"profit"`
	SaleCount int     `json:"sale_count"`
}

type ProductTotalDTO struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

type MonthReportDTO struct {
	Revenue  float64           `json:"revenue"`
	Products []ProductTotalDTO `json:"products"`
}

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func f64(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func toIngredientDTO(ing inventory.Ingredient) IngredientDTO {
	return IngredientDTO{
		ID:       string(ing.ID),
		Name:     ing.Name,
		UnitCost: f64(ing.UnitCost),
		Stock:    f64(ing.Stock),
	}
}

func toProductDTO(p catalog.Product) ProductDTO {
	recipe := make([]RecipeLineDTO, len(p.Recipe))
	for i, l := range p.Recipe {
		recipe[i] = RecipeLineDTO{
			IngredientID:   string(l.IngredientID),
			IngredientName: l.IngredientName,
			Quantity:       f64(l.Quantity),
		}
	}
	return ProductDTO{
		ID:             string(p.ID),
		Name:           p.Name,
		Price:          f64(p.Price),
		ProductionCost: f64(p.ProductionCost),
		Recipe:         recipe,
	}
}

func toSaleDTO(s sales.Sale) SaleDTO {
	items := make([]SaleItemDTO, len(s.Items))
	for i, it := range s.Items {
		items[i] = SaleItemDTO{ProductName: it.ProductName, Quantity: f64(it.Quantity)}
	}
	return SaleDTO{
		ID:      string(s.ID),
		At:      s.At.Format(time.RFC3339),
		Items:   items,
		Revenue: f64(s.Revenue),
		Profit:  f64(s.Profit),
	}
}

func toProductTotalDTOs(totals []reporting.ProductTotal) []ProductTotalDTO {
	dtos := make([]ProductTotalDTO, len(totals))
	for i, t := range totals {
		dtos[i] = ProductTotalDTO{Name: t.Name, Quantity: f64(t.Quantity)}
	}
	return dtos
}
