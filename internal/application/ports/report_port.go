package ports

import (
	"time"

	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/entity"
)

// LedgerReport datos del reporte PDF del libro de transacciones.
type LedgerReport struct {
	CompanyName  string
	Scope        string // "Todos los kioscos" o el código del kiosco
	GeneratedAt  time.Time
	Transactions []*entity.Transaction
	KioskCodes   map[string]string // kioskID → código
	ProductNames map[string]string // productID → nombre
}

// LedgerPDFGenerator genera el PDF del libro. Implementado con maroto en infrastructure/pdf.
type LedgerPDFGenerator interface {
	GenerateLedgerPDF(report LedgerReport) ([]byte, error)
}
