package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/dto"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/entity"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/redistribution"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ProductUseCase casos de uso del catálogo central. La cantidad agregada se deriva del inventario de los kioscos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto. Devuelve domain.ErrDuplicate si el SKU ya existe en la empresa.
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCompanyAndSKU(ctx, companyID, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.DepletionRate == "" {
		in.DepletionRate = entity.DepletionMedium
	}
	if !validDepletion(in.DepletionRate) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:                    uuid.New().String(),
		CompanyID:             companyID,
		SKU:                   in.SKU,
		Name:                  in.Name,
		Unit:                  in.Unit,
		Quantity:              decimal.Zero,
		AcquiredPrice:         nullable(in.AcquiredPrice),
		MRP:                   nullable(in.MRP),
		SuggestedSellingPrice: nullable(in.SuggestedSellingPrice),
		OverSupplyLimit:       nullable(in.OverSupplyLimit),
		UnderSupplyLimit:      nullable(in.UnderSupplyLimit),
		NormalSupplyLevel:     nullable(in.NormalSupplyLevel),
		DepletionRate:         in.DepletionRate,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := validateLimits(product); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetByID obtiene un producto de la empresa. nil si no existe o es de otro tenant.
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, companyID, id)
	if err != nil || product == nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// Update actualiza precios, límites y metadatos del producto.
func (uc *ProductUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, companyID, id)
	if err != nil || product == nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.AcquiredPrice != nil {
		product.AcquiredPrice = nullable(in.AcquiredPrice)
	}
	if in.MRP != nil {
		product.MRP = nullable(in.MRP)
	}
	if in.SuggestedSellingPrice != nil {
		product.SuggestedSellingPrice = nullable(in.SuggestedSellingPrice)
	}
	if in.OverSupplyLimit != nil {
		product.OverSupplyLimit = nullable(in.OverSupplyLimit)
	}
	if in.UnderSupplyLimit != nil {
		product.UnderSupplyLimit = nullable(in.UnderSupplyLimit)
	}
	if in.NormalSupplyLevel != nil {
		product.NormalSupplyLevel = nullable(in.NormalSupplyLevel)
	}
	if in.DepletionRate != nil {
		if !validDepletion(*in.DepletionRate) {
			return nil, domain.ErrInvalidInput
		}
		product.DepletionRate = *in.DepletionRate
	}
	if err := validateLimits(product); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// SetEligibility marca o desmarca el producto como elegible para redistribución.
func (uc *ProductUseCase) SetEligibility(ctx context.Context, companyID, id string, eligible bool) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, companyID, id)
	if err != nil || product == nil {
		return nil, err
	}
	if err := uc.repo.SetEligibility(ctx, product.ID, eligible); err != nil {
		return nil, err
	}
	product.EligibleForRedistribution = eligible
	return ToProductResponse(product), nil
}

// List lista productos por empresa con paginación.
func (uc *ProductUseCase) List(ctx context.Context, companyID string, eligibleOnly bool, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, repository.ProductFilter{
		EligibleOnly: eligibleOnly,
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Analyze clasifica el stock agregado y proyecta el resultado financiero de redistribuir el excedente.
func (uc *ProductUseCase) Analyze(ctx context.Context, companyID, id string) (*dto.ProductAnalysisResponse, error) {
	product, err := uc.get(ctx, companyID, id)
	if err != nil || product == nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	proj := redistribution.EvaluateProduct(product, product.Quantity)
	return &dto.ProductAnalysisResponse{
		Product:    *resp,
		Projection: ToProjectionDTO(proj),
		Recommended: product.EligibleForRedistribution &&
			resp.SupplyStatus == string(redistribution.SupplyOversupply) &&
			proj.IsProfitable,
	}, nil
}

func (uc *ProductUseCase) get(ctx context.Context, companyID, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, nil
	}
	return product, nil
}

func validDepletion(rate string) bool {
	switch rate {
	case entity.DepletionLow, entity.DepletionMedium, entity.DepletionHigh:
		return true
	}
	return false
}

// validateLimits rechaza valores negativos y un límite inferior por encima del superior.
func validateLimits(p *entity.Product) error {
	for _, v := range []decimal.NullDecimal{p.AcquiredPrice, p.MRP, p.SuggestedSellingPrice, p.OverSupplyLimit, p.UnderSupplyLimit, p.NormalSupplyLevel} {
		if v.Valid && v.Decimal.IsNegative() {
			return domain.ErrInvalidInput
		}
	}
	if p.OverSupplyLimit.Valid && p.UnderSupplyLimit.Valid && p.UnderSupplyLimit.Decimal.GreaterThan(p.OverSupplyLimit.Decimal) {
		return domain.ErrInvalidInput
	}
	return nil
}

func nullable(v *decimal.Decimal) decimal.NullDecimal {
	if v == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*v)
}

// ToProductResponse mapea la entidad agregando la clasificación y el nivel derivados.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	normal := decimal.Zero
	if p.NormalSupplyLevel.Valid {
		normal = p.NormalSupplyLevel.Decimal
	}
	return &dto.ProductResponse{
		ID:                        p.ID,
		CompanyID:                 p.CompanyID,
		SKU:                       p.SKU,
		Name:                      p.Name,
		Unit:                      p.Unit,
		Quantity:                  p.Quantity,
		AcquiredPrice:             p.AcquiredPrice,
		MRP:                       p.MRP,
		SuggestedSellingPrice:     p.SuggestedSellingPrice,
		OverSupplyLimit:           p.OverSupplyLimit,
		UnderSupplyLimit:          p.UnderSupplyLimit,
		NormalSupplyLevel:         p.NormalSupplyLevel,
		SupplyLevel:               p.SupplyLevel,
		ComputedSupplyLevel:       redistribution.SupplyLevel(p.Quantity, normal),
		SupplyStatus:              string(redistribution.ClassifyProduct(p)),
		DepletionRate:             p.DepletionRate,
		EligibleForRedistribution: p.EligibleForRedistribution,
		CreatedAt:                 p.CreatedAt,
		UpdatedAt:                 p.UpdatedAt,
	}
}

// ToProjectionDTO mapea la proyección financiera del núcleo.
func ToProjectionDTO(p redistribution.FinancialProjection) dto.FinancialProjectionDTO {
	return dto.FinancialProjectionDTO{
		RedistributableQty: p.RedistributableQty,
		ExpectedRevenue:    p.ExpectedRevenue,
		OriginalCost:       p.OriginalCost,
		RedistributionCost: p.RedistributionCost,
		NetProfit:          p.NetProfit,
		Outcome:            string(p.Outcome),
		IsProfitable:       p.IsProfitable,
		BreakEven:          p.BreakEven,
	}
}
