// Package memory implementa los puertos de persistencia en memoria.
// Se usa con STORE_DRIVER=memory (desarrollo local) y en los tests de casos de uso.
package memory

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// record guarda la entidad junto con su orden de inserción.
type record[T any] struct {
	v   T
	seq int64
}

type tables struct {
	seq        int64
	products   map[string]record[entity.Product]
	suppliers  map[string]record[entity.Supplier]
	clients    map[string]record[entity.Client]
	movements  map[string]record[entity.StockMovement]
	transports map[string]record[entity.Transport]
	orders     map[string]record[entity.PurchaseOrder]
	logs       map[string]record[entity.Log]
}

func newTables() *tables {
	return &tables{
		products:   map[string]record[entity.Product]{},
		suppliers:  map[string]record[entity.Supplier]{},
		clients:    map[string]record[entity.Client]{},
		movements:  map[string]record[entity.StockMovement]{},
		transports: map[string]record[entity.Transport]{},
		orders:     map[string]record[entity.PurchaseOrder]{},
		logs:       map[string]record[entity.Log]{},
	}
}

// clone copia los mapas; los slices internos no se mutan in situ, se reemplazan al escribir.
func (t *tables) clone() *tables {
	return &tables{
		seq:        t.seq,
		products:   maps.Clone(t.products),
		suppliers:  maps.Clone(t.suppliers),
		clients:    maps.Clone(t.clients),
		movements:  maps.Clone(t.movements),
		transports: maps.Clone(t.transports),
		orders:     maps.Clone(t.orders),
		logs:       maps.Clone(t.logs),
	}
}

func (t *tables) next() int64 {
	t.seq++
	return t.seq
}

// db da acceso a las tablas: con el mutex del Store o dentro de una transacción ya bloqueada.
type db interface {
	do(ctx context.Context, fn func(t *tables) error) error
}

// Store base de datos en memoria. Las transacciones son serializables: Run toma el
// mutex, trabaja sobre una copia y la publica solo si fn no devuelve error.
type Store struct {
	mu sync.Mutex
	t  *tables
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{t: newTables()}
}

func (s *Store) do(ctx context.Context, fn func(t *tables) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.t)
}

// Repos devuelve los repositorios fuera de transacción.
func (s *Store) Repos() repository.Repos {
	return newRepos(s)
}

// Analytics devuelve el adaptador de lectura para las vistas analíticas.
func (s *Store) Analytics() *AnalyticsRepo {
	return &AnalyticsRepo{db: s}
}

// Run ejecuta fn sobre una copia de las tablas; si fn falla no queda ninguna escritura.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.t.clone()
	if err := fn(newRepos(&txDB{t: draft})); err != nil {
		return err
	}
	s.t = draft
	return nil
}

type txDB struct {
	t *tables
}

func (d *txDB) do(ctx context.Context, fn func(t *tables) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(d.t)
}

func newRepos(d db) repository.Repos {
	return repository.Repos{
		Products:   &ProductRepo{db: d},
		Suppliers:  &SupplierRepo{db: d},
		Clients:    &ClientRepo{db: d},
		Movements:  &StockMovementRepo{db: d},
		Transports: &TransportRepo{db: d},
		Orders:     &PurchaseOrderRepo{db: d},
		Logs:       &LogRepo{db: d},
	}
}

// newestFirst ordena por created_at descendente; a igual fecha, el último insertado primero.
func newestFirst[T any](m map[string]record[T], createdAt func(T) time.Time) []T {
	recs := make([]record[T], 0, len(m))
	for _, r := range m {
		recs = append(recs, r)
	}
	sort.Slice(recs, func(i, j int) bool {
		ci, cj := createdAt(recs[i].v), createdAt(recs[j].v)
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return recs[i].seq > recs[j].seq
	})
	out := make([]T, len(recs))
	for i, r := range recs {
		out[i] = r.v
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func copyStr(p *string) *string {
	if p == nil {
		return nil
	}
	return ptr(*p)
}

func copyTime(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	return ptr(*p)
}
