package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kiosk-redistribution-api/internal/application/auth"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/dto"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/inventory"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/ledger"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/ports"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/redistribution"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/usecase"
	"github.com/jhoicas/kiosk-redistribution-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/kiosk-redistribution-api/internal/interfaces/http"
	"github.com/jhoicas/kiosk-redistribution-api/pkg/logger"
	"github.com/jhoicas/kiosk-redistribution-api/pkg/metrics"
)

type stubPDF struct{}

func (stubPDF) GenerateLedgerPDF(ports.LedgerReport) ([]byte, error) {
	return []byte("%PDF-1.4 stub"), nil
}

// apiHarness API completa sobre el store en memoria.
type apiHarness struct {
	t   *testing.T
	app *fiber.App
}

func newAPI(t *testing.T) *apiHarness {
	t.Helper()
	store := memory.NewStore()
	log := logger.Nop()
	m := metrics.New("kiosk-test")

	authUC := auth.NewAuthUseCase(store.Users(), store.Companies(), store.Kiosks(), auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	})
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CompanyUC:        usecase.NewCompanyUseCase(store.Companies()),
		ProductUC:        usecase.NewProductUseCase(store.Products()),
		KioskUC:          usecase.NewKioskUseCase(store.Kiosks()),
		InventoryUC:      inventory.NewKioskInventoryUseCase(store, store.Inventory(), store.Kiosks(), store.Products(), m, log),
		RedistributionUC: redistribution.NewUseCase(store, store.Redistributions(), store.Kiosks(), store.Products(), store.Inventory(), nil, m, log),
		LedgerUC:         ledger.NewUseCase(store.Transactions(), store.Companies(), store.Kiosks(), store.Products(), stubPDF{}),
		AuthUC:           authUC,
		Metrics:          m,
		JWTSecret:        testJWTSecret,
	})
	return &apiHarness{t: t, app: app}
}

// do envía la petición y decodifica la respuesta en out cuando no es nil.
func (h *apiHarness) do(method, path, token string, body any, out any) int {
	h.t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(h.t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(h.t, err)
	defer resp.Body.Close()
	if out != nil {
		raw, err := io.ReadAll(resp.Body)
		require.NoError(h.t, err)
		require.NoError(h.t, json.Unmarshal(raw, out), string(raw))
	}
	return resp.StatusCode
}

func (h *apiHarness) login(email, password string) string {
	h.t.Helper()
	var out dto.LoginResponse
	status := h.do(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: password}, &out)
	require.Equal(h.t, http.StatusOK, status)
	require.NotEmpty(h.t, out.Token)
	return out.Token
}

type fixture struct {
	admin, kiosk    string // tokens
	k1, k2, product string
}

func setupTenant(t *testing.T, h *apiHarness) fixture {
	t.Helper()
	var setup dto.CompanySetupResponse
	status := h.do(http.MethodPost, "/api/companies", "", map[string]any{
		"name": "Kioscos del Norte", "admin_email": "admin@norte.co", "admin_password": "supersecreto",
	}, &setup)
	require.Equal(t, http.StatusCreated, status)
	require.NotNil(t, setup.Admin)
	assert.Equal(t, "admin", setup.Admin.Role)

	f := fixture{admin: h.login("admin@norte.co", "supersecreto")}

	var k dto.KioskResponse
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/api/kiosks", f.admin,
		map[string]any{"kiosk_code": "K-001", "name": "Centro", "address": "Calle 1"}, &k))
	f.k1 = k.ID
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/api/kiosks", f.admin,
		map[string]any{"kiosk_code": "K-002", "name": "Terminal", "address": "Calle 2"}, &k))
	f.k2 = k.ID

	var p dto.ProductResponse
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/api/products", f.admin, map[string]any{
		"sku": "AGUA-500", "name": "Agua 500ml", "unit": "bottle",
		"suggested_selling_price": "12.5", "over_supply_limit": "100", "under_supply_limit": "10",
	}, &p))
	f.product = p.ID

	var u dto.UserResponse
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/api/auth/register", f.admin, map[string]any{
		"email": "centro@norte.co", "password": "clavekiosco", "role": "kiosk_user", "kiosk_id": f.k1,
	}, &u))
	assert.Equal(t, f.k1, u.KioskID)
	f.kiosk = h.login("centro@norte.co", "clavekiosco")
	return f
}

func TestRouter_FlujoCompletoDeRedistribucion(t *testing.T) {
	h := newAPI(t)
	f := setupTenant(t, h)

	// El kiosco carga su stock: 50 > umbral por defecto (20) → excedente.
	var write dto.InventoryWriteResponse
	status := h.do(http.MethodPut, "/api/kiosks/"+f.k1+"/inventory/"+f.product, f.kiosk, map[string]any{"quantity": "50"}, &write)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, inventory.ItemSurplus, write.Item.Status)
	assert.Nil(t, write.AutoRequest)

	// Ofrece 30 unidades (push desde su kiosco).
	var req dto.RedistributionResponse
	status = h.do(http.MethodPost, "/api/redistributions", f.kiosk, map[string]any{
		"product_id": f.product, "quantity": "30", "action": "send",
	}, &req)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "pending", req.Status)
	assert.Equal(t, "push", req.Direction)
	assert.Equal(t, f.k1, req.FromKioskID)

	// El kiosk_user no puede aprobar.
	status = h.do(http.MethodPost, "/api/redistributions/"+req.ID+"/approve", f.kiosk, map[string]any{"counterparty_kiosk_id": f.k2}, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// El admin aprueba hacia K-002 y se liquida.
	var decision dto.RedistributionDecisionResponse
	status = h.do(http.MethodPost, "/api/redistributions/"+req.ID+"/approve", f.admin, map[string]any{"counterparty_kiosk_id": f.k2}, &decision)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "approved", decision.Redistribution.Status)
	require.NotNil(t, decision.Transaction)
	assert.True(t, decision.Transaction.Value.Equal(decimal.NewFromInt(375)), decision.Transaction.Value.String())
	assert.Contains(t, decision.Affected, "kiosk:"+f.k2)

	// Segunda aprobación: ya no está pendiente.
	var errBody dto.ErrorResponse
	status = h.do(http.MethodPost, "/api/redistributions/"+req.ID+"/approve", f.admin, map[string]any{"counterparty_kiosk_id": f.k2}, &errBody)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", errBody.Code)

	// Inventario después del traslado.
	var inv dto.KioskInventoryListResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/kiosks/"+f.k1+"/inventory", f.kiosk, nil, &inv))
	require.Len(t, inv.Items, 1)
	assert.True(t, inv.Items[0].Quantity.Equal(decimal.NewFromInt(20)))

	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/kiosks/"+f.k2+"/inventory", f.admin, nil, &inv))
	require.Len(t, inv.Items, 1)
	assert.True(t, inv.Items[0].Quantity.Equal(decimal.NewFromInt(30)))

	// El libro lo ve el kiosco origen.
	var txs dto.TransactionListResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/transactions", f.kiosk, nil, &txs))
	require.Len(t, txs.Items, 1)
	assert.Equal(t, decision.Transaction.TxID, txs.Items[0].TxID)

	var stats dto.RedistributionStatsResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/redistributions/stats", f.admin, nil, &stats))
	assert.Equal(t, 0, stats.Pending)
	assert.Equal(t, 1, stats.ApprovedToday)
}

func TestRouter_StockInsuficienteRevierteAprobacion(t *testing.T) {
	h := newAPI(t)
	f := setupTenant(t, h)

	require.Equal(t, http.StatusOK, h.do(http.MethodPut, "/api/kiosks/"+f.k1+"/inventory/"+f.product, f.kiosk, map[string]any{"quantity": "10"}, nil))

	// El admin crea un push mayor al stock disponible.
	var req dto.RedistributionResponse
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/api/redistributions", f.admin, map[string]any{
		"product_id": f.product, "quantity": "25", "from_kiosk_id": f.k1,
	}, &req))

	var errBody dto.ErrorResponse
	status := h.do(http.MethodPost, "/api/redistributions/"+req.ID+"/approve", f.admin, map[string]any{"counterparty_kiosk_id": f.k2}, &errBody)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody.Code)

	// La solicitud sigue pendiente y no hay asientos.
	var got dto.RedistributionResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/redistributions/"+req.ID, f.admin, nil, &got))
	assert.Equal(t, "pending", got.Status)
	var txs dto.TransactionListResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/transactions", f.admin, nil, &txs))
	assert.Empty(t, txs.Items)
}

func TestRouter_AutoSolicitudAlBajarDelUmbral(t *testing.T) {
	h := newAPI(t)
	f := setupTenant(t, h)

	var write dto.InventoryWriteResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodPut, "/api/kiosks/"+f.k1+"/inventory/"+f.product+"/settings", f.kiosk,
		map[string]any{"threshold": "15", "auto_request_enabled": true}, &write))
	require.NotNil(t, write.AutoRequest, "stock 0 < umbral 15 debe crear una solicitud pull")
	assert.Equal(t, "pull", write.AutoRequest.Direction)
	assert.True(t, write.AutoRequest.Quantity.Equal(decimal.NewFromInt(15)))

	// Ya hay una pull pendiente: no se duplica.
	require.Equal(t, http.StatusOK, h.do(http.MethodPut, "/api/kiosks/"+f.k1+"/inventory/"+f.product, f.kiosk,
		map[string]any{"quantity": "5"}, &write))
	assert.Nil(t, write.AutoRequest)

	var list dto.RedistributionListResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/redistributions?status=pending", f.kiosk, nil, &list))
	assert.Len(t, list.Items, 1)
}

func TestRouter_KioskUserNoOperaOtroKiosco(t *testing.T) {
	h := newAPI(t)
	f := setupTenant(t, h)

	status := h.do(http.MethodPut, "/api/kiosks/"+f.k2+"/inventory/"+f.product, f.kiosk, map[string]any{"quantity": "5"}, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status = h.do(http.MethodPost, "/api/redistributions", f.kiosk, map[string]any{
		"product_id": f.product, "quantity": "5", "from_kiosk_id": f.k2,
	}, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status = h.do(http.MethodPost, "/api/kiosks", f.kiosk, map[string]any{"kiosk_code": "K-009", "name": "X", "address": "Y"}, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestRouter_CodigoDeKioscoDuplicado(t *testing.T) {
	h := newAPI(t)
	f := setupTenant(t, h)

	var errBody dto.ErrorResponse
	status := h.do(http.MethodPost, "/api/kiosks", f.admin, map[string]any{"kiosk_code": "K-001", "name": "Otro", "address": "Z"}, &errBody)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", errBody.Code)
}

func TestRouter_RechazoYExportPDF(t *testing.T) {
	h := newAPI(t)
	f := setupTenant(t, h)

	var req dto.RedistributionResponse
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/api/redistributions", f.kiosk, map[string]any{
		"product_id": f.product, "quantity": "4", "action": "receive", "priority": "High Priority",
	}, &req))
	assert.Equal(t, "pull", req.Direction)

	var stats dto.RedistributionStatsResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/redistributions/stats", f.admin, nil, &stats))
	assert.Equal(t, 1, stats.HighPriorityPending)

	var decision dto.RedistributionDecisionResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/api/redistributions/"+req.ID+"/reject", f.admin, nil, &decision))
	assert.Equal(t, "rejected", decision.Redistribution.Status)
	assert.Nil(t, decision.Transaction)

	httpReq := httptest.NewRequest(http.MethodGet, "/api/transactions/report.pdf", nil)
	httpReq.Header.Set("Authorization", "Bearer "+f.admin)
	resp, err := h.app.Test(httpReq, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

func TestRouter_MetricsExpuestas(t *testing.T) {
	h := newAPI(t)
	h.do(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "nadie@x.co", Password: "12345678"}, nil)

	resp, err := h.app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `path="/api/auth/login"`)
}

func TestRouter_PaginacionNormalizada(t *testing.T) {
	h := newAPI(t)
	f := setupTenant(t, h)

	var list dto.KioskListResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/kiosks?limit=500&offset=-3", f.admin, nil, &list))
	assert.Equal(t, dto.MaxPageLimit, list.Page.Limit)
	assert.Equal(t, 0, list.Page.Offset)
	assert.Len(t, list.Items, 2)

	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/kiosks?limit=1&offset=1", f.admin, nil, &list))
	assert.Equal(t, 1, list.Page.Limit)
	assert.Len(t, list.Items, 1)

	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/kiosks?limit=abc", f.admin, nil, &list))
	assert.Equal(t, dto.DefaultPageLimit, list.Page.Limit)
}
