package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SetQuantityRequest body para PUT /api/kiosks/:id/inventory/:productId.
type SetQuantityRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// UpdateInventorySettingsRequest body para PUT /api/kiosks/:id/inventory/:productId/settings.
type UpdateInventorySettingsRequest struct {
	Threshold          decimal.Decimal `json:"threshold"`
	AutoRequestEnabled bool            `json:"auto_request_enabled"`
}

// KioskInventoryItemDTO fila del inventario de un kiosco con la recomendación de redistribución.
type KioskInventoryItemDTO struct {
	ID                 string          `json:"id"`
	KioskID            string          `json:"kiosk_id"`
	ProductID          string          `json:"product_id"`
	ProductName        string          `json:"product_name"`
	SKU                string          `json:"sku"`
	Unit               string          `json:"unit"`
	Quantity           decimal.Decimal `json:"quantity"`
	Threshold          decimal.Decimal `json:"threshold"`
	AutoRequestEnabled bool            `json:"auto_request_enabled"`
	Status             string          `json:"status"` // low_stock, surplus, normal
	Surplus            decimal.Decimal `json:"surplus"`
	SuggestedAction    string          `json:"suggested_action"` // receive, send
	SuggestedQuantity  decimal.Decimal `json:"suggested_quantity"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// InventoryWriteResponse resultado de escribir inventario; incluye la solicitud automática si se disparó.
type InventoryWriteResponse struct {
	Item        KioskInventoryItemDTO   `json:"item"`
	AutoRequest *RedistributionResponse `json:"auto_request,omitempty"`
}

// KioskInventoryListResponse inventario (o excedente) de un kiosco.
type KioskInventoryListResponse struct {
	KioskID string                  `json:"kiosk_id"`
	Items   []KioskInventoryItemDTO `json:"items"`
}
