package ports

import "github.com/jhoicas/kiosk-redistribution-api/internal/domain/entity"

// Actor identidad autenticada que ejecuta un caso de uso (viene de los claims del JWT).
type Actor struct {
	UserID    string
	CompanyID string
	KioskID   string
	Role      string
}

// IsAdmin indica si el actor administra todos los kioscos de su empresa.
func (a Actor) IsAdmin() bool { return a.Role == entity.RoleAdmin }

// CanAccessKiosk un admin accede a cualquier kiosco de su empresa; un kiosk_user solo al propio.
func (a Actor) CanAccessKiosk(kioskID string) bool {
	if a.IsAdmin() {
		return true
	}
	return a.KioskID != "" && a.KioskID == kioskID
}
