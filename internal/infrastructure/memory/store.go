// Package memory implementa los puertos de persistencia en memoria. Lo usan los tests de
// casos de uso y de HTTP; Run trabaja sobre una copia del estado y solo la publica en Commit.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/kiosk-redistribution-api/internal/application/ports"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/entity"
)

var _ ports.TxRunner = (*Store)(nil)

type invKey struct{ kiosk, product string }

type state struct {
	companies       map[string]entity.Company
	users           map[string]entity.User
	kiosks          map[string]entity.Kiosk
	products        map[string]entity.Product
	inventory       map[invKey]entity.KioskInventory
	redistributions map[string]entity.Redistribution
	transactions    []entity.Transaction
}

func newState() *state {
	return &state{
		companies:       map[string]entity.Company{},
		users:           map[string]entity.User{},
		kiosks:          map[string]entity.Kiosk{},
		products:        map[string]entity.Product{},
		inventory:       map[invKey]entity.KioskInventory{},
		redistributions: map[string]entity.Redistribution{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.companies {
		c.companies[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.kiosks {
		c.kiosks[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.inventory {
		c.inventory[k] = v
	}
	for k, v := range s.redistributions {
		c.redistributions[k] = v
	}
	c.transactions = append(c.transactions, s.transactions...)
	return c
}

// view da acceso al estado: bloqueando el Store (fuera de tx) o directo (dentro de Run).
type view interface {
	do(fn func(st *state) error) error
}

// Store estado compartido en memoria. txMu serializa Run y los accesos fuera de tx; mu protege st.
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex
	st   *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// do escritura o lectura fuera de tx. Espera a que termine cualquier Run en curso para que el
// commit de Run no pise cambios hechos mientras tanto. No llamar desde dentro de un callback de Run.
func (s *Store) do(fn func(st *state) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

type txView struct{ st *state }

func (v txView) do(fn func(st *state) error) error { return fn(v.st) }

// Run ejecuta fn sobre una copia del estado; si fn falla la copia se descarta (rollback).
func (s *Store) Run(ctx context.Context, fn func(repos ports.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	work := s.st.clone()
	s.mu.Unlock()
	v := txView{st: work}
	repos := ports.TxRepos{
		Inventory:       &KioskInventoryRepo{v: v},
		Redistributions: &RedistributionRepo{v: v},
		Transactions:    &TransactionRepo{v: v},
		Products:        &ProductRepo{v: v},
	}
	if err := fn(repos); err != nil {
		return err
	}
	s.mu.Lock()
	s.st = work
	s.mu.Unlock()
	return nil
}

// Repositorios fuera de transacción.

func (s *Store) Companies() *CompanyRepo              { return &CompanyRepo{v: s} }
func (s *Store) Users() *UserRepo                     { return &UserRepo{v: s} }
func (s *Store) Kiosks() *KioskRepo                   { return &KioskRepo{v: s} }
func (s *Store) Products() *ProductRepo               { return &ProductRepo{v: s} }
func (s *Store) Inventory() *KioskInventoryRepo       { return &KioskInventoryRepo{v: s} }
func (s *Store) Redistributions() *RedistributionRepo { return &RedistributionRepo{v: s} }
func (s *Store) Transactions() *TransactionRepo       { return &TransactionRepo{v: s} }

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

func sortBy[T any](list []T, less func(a, b T) bool) {
	sort.SliceStable(list, func(i, j int) bool { return less(list[i], list[j]) })
}
