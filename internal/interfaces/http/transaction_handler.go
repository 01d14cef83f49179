package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/ledger"
)

// TransactionHandler libro de transacciones.
type TransactionHandler struct {
	uc *ledger.UseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *ledger.UseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// List godoc
// @Summary      Listar transacciones
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.TransactionListResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), ActorFrom(c), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByTxID godoc
// @Summary      Obtener transacción por tx_id
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        txId  path  string  true  "tx_id"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transactions/{txId} [get]
func (h *TransactionHandler) GetByTxID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), ActorFrom(c), c.Params("txId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExportPDF godoc
// @Summary      Reporte PDF del libro de transacciones
// @Tags         transactions
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Router       /api/transactions/report.pdf [get]
func (h *TransactionHandler) ExportPDF(c *fiber.Ctx) error {
	pdf, err := h.uc.ExportPDF(c.UserContext(), ActorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	name := "transacciones_" + time.Now().Format("20060102") + ".pdf"
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(pdf)
}
