package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/dto"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/entity"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/repository"
)

// KioskUseCase casos de uso CRUD para kioscos.
type KioskUseCase struct {
	repo repository.KioskRepository
}

// NewKioskUseCase construye el caso de uso.
func NewKioskUseCase(repo repository.KioskRepository) *KioskUseCase {
	return &KioskUseCase{repo: repo}
}

// Create registra un kiosco activo. El código es único por empresa (domain.ErrDuplicate desde el repo).
func (uc *KioskUseCase) Create(ctx context.Context, companyID string, in dto.CreateKioskRequest) (*dto.KioskResponse, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" || strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Address) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	kiosk := &entity.Kiosk{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Code:        code,
		Name:        in.Name,
		Address:     in.Address,
		ManagerName: in.ManagerName,
		Email:       in.Email,
		Phone:       in.Phone,
		Status:      entity.KioskStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, kiosk); err != nil {
		return nil, err
	}
	return toKioskResponse(kiosk), nil
}

// GetByID obtiene un kiosco de la empresa.
func (uc *KioskUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.KioskResponse, error) {
	kiosk, err := uc.get(ctx, companyID, id)
	if err != nil || kiosk == nil {
		return nil, err
	}
	return toKioskResponse(kiosk), nil
}

// Update actualiza un kiosco.
func (uc *KioskUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateKioskRequest) (*dto.KioskResponse, error) {
	kiosk, err := uc.get(ctx, companyID, id)
	if err != nil || kiosk == nil {
		return nil, err
	}
	if in.Name != nil {
		kiosk.Name = *in.Name
	}
	if in.Address != nil {
		kiosk.Address = *in.Address
	}
	if in.ManagerName != nil {
		kiosk.ManagerName = *in.ManagerName
	}
	if in.Email != nil {
		kiosk.Email = *in.Email
	}
	if in.Phone != nil {
		kiosk.Phone = *in.Phone
	}
	if in.Status != nil {
		if *in.Status != entity.KioskStatusActive && *in.Status != entity.KioskStatusInactive {
			return nil, domain.ErrInvalidInput
		}
		kiosk.Status = *in.Status
	}
	kiosk.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, kiosk); err != nil {
		return nil, err
	}
	return toKioskResponse(kiosk), nil
}

// SetActive activa o desactiva un kiosco. Un kiosco inactivo no puede ser contraparte de una aprobación.
func (uc *KioskUseCase) SetActive(ctx context.Context, companyID, id string, active bool) (*dto.KioskResponse, error) {
	status := entity.KioskStatusInactive
	if active {
		status = entity.KioskStatusActive
	}
	return uc.Update(ctx, companyID, id, dto.UpdateKioskRequest{Status: &status})
}

// List lista kioscos por empresa con paginación; status vacío = todos.
func (uc *KioskUseCase) List(ctx context.Context, companyID, status string, limit, offset int) (*dto.KioskListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.KioskResponse, 0, len(list))
	for _, k := range list {
		items = append(items, *toKioskResponse(k))
	}
	return &dto.KioskListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *KioskUseCase) get(ctx context.Context, companyID, id string) (*entity.Kiosk, error) {
	kiosk, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if kiosk == nil || kiosk.CompanyID != companyID {
		return nil, nil
	}
	return kiosk, nil
}

func toKioskResponse(k *entity.Kiosk) *dto.KioskResponse {
	if k == nil {
		return nil
	}
	return &dto.KioskResponse{
		ID:          k.ID,
		CompanyID:   k.CompanyID,
		Code:        k.Code,
		Name:        k.Name,
		Address:     k.Address,
		ManagerName: k.ManagerName,
		Email:       k.Email,
		Phone:       k.Phone,
		Status:      k.Status,
		CreatedAt:   k.CreatedAt,
		UpdatedAt:   k.UpdatedAt,
	}
}
