package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/kiosk-redistribution-api/internal/application/dto"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/ports"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/entity"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/repository"
)

// maxReportRows límite de asientos incluidos en el PDF.
const maxReportRows = 1000

// UseCase consultas del libro de transacciones y exportación PDF.
type UseCase struct {
	txRepo      repository.TransactionRepository
	companyRepo repository.CompanyRepository
	kioskRepo   repository.KioskRepository
	productRepo repository.ProductRepository
	pdfGen      ports.LedgerPDFGenerator
	now         func() time.Time
}

// NewUseCase construye el caso de uso del libro.
func NewUseCase(
	txRepo repository.TransactionRepository,
	companyRepo repository.CompanyRepository,
	kioskRepo repository.KioskRepository,
	productRepo repository.ProductRepository,
	pdfGen ports.LedgerPDFGenerator,
) *UseCase {
	return &UseCase{
		txRepo:      txRepo,
		companyRepo: companyRepo,
		kioskRepo:   kioskRepo,
		productRepo: productRepo,
		pdfGen:      pdfGen,
		now:         time.Now,
	}
}

// List admin: todo el libro de la empresa; kiosk_user: asientos donde su kiosco es origen o destino.
func (uc *UseCase) List(ctx context.Context, actor ports.Actor, limit, offset int) (*dto.TransactionListResponse, error) {
	filter, err := scope(actor)
	if err != nil {
		return nil, err
	}
	filter.Limit, filter.Offset = limit, offset
	list, err := uc.txRepo.List(ctx, actor.CompanyID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, ToTransactionResponse(t))
	}
	return &dto.TransactionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Get obtiene un asiento por tx_id. Un kiosk_user solo ve los suyos.
func (uc *UseCase) Get(ctx context.Context, actor ports.Actor, txID string) (*dto.TransactionResponse, error) {
	t, err := uc.txRepo.GetByTxID(ctx, actor.CompanyID, txID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.IsAdmin() && t.FromKioskID != actor.KioskID && t.ToKioskID != actor.KioskID {
		return nil, domain.ErrNotFound
	}
	out := ToTransactionResponse(t)
	return &out, nil
}

// ExportPDF genera el reporte PDF del libro visible para el actor.
func (uc *UseCase) ExportPDF(ctx context.Context, actor ports.Actor) ([]byte, error) {
	if uc.pdfGen == nil {
		return nil, domain.ErrInvalidInput
	}
	filter, err := scope(actor)
	if err != nil {
		return nil, err
	}
	filter.Limit = maxReportRows
	list, err := uc.txRepo.List(ctx, actor.CompanyID, filter)
	if err != nil {
		return nil, err
	}
	company, err := uc.companyRepo.GetByID(ctx, actor.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	report := ports.LedgerReport{
		CompanyName:  company.Name,
		Scope:        "Todos los kioscos",
		GeneratedAt:  uc.now(),
		Transactions: list,
		KioskCodes:   map[string]string{},
		ProductNames: map[string]string{},
	}
	kiosks, err := uc.kioskRepo.ListByCompany(ctx, actor.CompanyID, "", 0, 0)
	if err != nil {
		return nil, err
	}
	for _, k := range kiosks {
		report.KioskCodes[k.ID] = k.Code
	}
	if !actor.IsAdmin() {
		report.Scope = nonEmpty(report.KioskCodes[actor.KioskID], actor.KioskID)
	}
	if err := uc.resolveProducts(ctx, list, report.ProductNames); err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateLedgerPDF(report)
}

func (uc *UseCase) resolveProducts(ctx context.Context, list []*entity.Transaction, names map[string]string) error {
	for _, t := range list {
		if _, ok := names[t.ProductID]; ok {
			continue
		}
		p, err := uc.productRepo.GetByID(ctx, t.ProductID)
		if err != nil {
			return err
		}
		if p != nil {
			names[t.ProductID] = p.Name
		} else {
			names[t.ProductID] = t.ProductID
		}
	}
	return nil
}

func scope(actor ports.Actor) (repository.TransactionFilter, error) {
	if actor.IsAdmin() {
		return repository.TransactionFilter{}, nil
	}
	if actor.KioskID == "" {
		return repository.TransactionFilter{}, domain.ErrForbidden
	}
	return repository.TransactionFilter{KioskID: actor.KioskID}, nil
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// ToTransactionResponse mapea un asiento del libro a su DTO.
func ToTransactionResponse(t *entity.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		TxID:             t.TxID,
		RedistributionID: t.RedistributionID,
		ProductID:        t.ProductID,
		FromKioskID:      t.FromKioskID,
		ToKioskID:        t.ToKioskID,
		Quantity:         t.Quantity,
		Unit:             t.Unit,
		Value:            t.Value,
		Status:           t.Status,
		ExternalRef:      t.ExternalRef,
		CreatedAt:        t.CreatedAt,
	}
}
