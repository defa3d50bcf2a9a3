package printing

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jhoicas/Inventario-print/internal/domain"
	"github.com/jhoicas/Inventario-print/internal/domain/entity"
	"github.com/jhoicas/Inventario-print/internal/domain/packaging"
	"github.com/jhoicas/Inventario-print/internal/domain/repository"
	"github.com/jhoicas/Inventario-print/pkg/logger"
)

// Allocations repartos de bultos de un pedido, por clave de línea.
type Allocations map[string]packaging.Allocation

// Pieces piezas por bulto de cada línea, tal como las consume el layout de etiquetas.
func (a Allocations) Pieces() map[string][]int {
	out := make(map[string][]int, len(a))
	for k, v := range a {
		out[k] = append([]int(nil), v.Pieces...)
	}
	return out
}

// AllocationService edita y persiste los repartos. Las ediciones se serializan con
// un único mutex: un solo escritor a la vez. Cada edición se guarda al momento y
// Close vuelve a guardar el estado final.
type AllocationService struct {
	mu    sync.Mutex
	store repository.StateStore
	log   *logger.Logger
}

// NewAllocationService constructor.
func NewAllocationService(store repository.StateStore, log *logger.Logger) *AllocationService {
	return &AllocationService{store: store, log: log}
}

func allocationsKey(documentID string) string { return "allocations:" + documentID }

// Load devuelve el reparto de cada línea con cantidad ≥ 1. Lo guardado sólo se
// reutiliza si sigue siendo válido para la cantidad actual; si no, se parte del
// reparto por defecto (bultos sugeridos por el catálogo).
func (s *AllocationService) Load(ctx context.Context, doc *entity.Document) (Allocations, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, doc)
}

func (s *AllocationService) load(ctx context.Context, doc *entity.Document) (Allocations, error) {
	raw, err := s.store.Get(ctx, allocationsKey(doc.ID))
	if err != nil {
		return nil, fmt.Errorf("allocations: leer: %w", err)
	}
	stored := Allocations{}
	if raw != nil {
		if err := json.Unmarshal(raw, &stored); err != nil {
			s.log.Warn().Err(err).Str("document_id", doc.ID).Msg("repartos corruptos; se usan los valores por defecto")
			stored = Allocations{}
		}
	}

	out := make(Allocations, len(doc.Items))
	for _, it := range doc.Items {
		if it.Quantity < 1 {
			continue
		}
		if a, ok := stored[it.Key]; ok && a.Total == it.Quantity && a.Valid() {
			a.ItemKey = it.Key
			out[it.Key] = a
			continue
		}
		ppp := 0
		if it.Product != nil {
			ppp = it.Product.PiecesPerPackage
		}
		a, err := packaging.New(it.Key, it.Quantity, packaging.DefaultCount(it.Quantity, ppp))
		if err != nil {
			return nil, err
		}
		out[it.Key] = a
	}
	return out, nil
}

func (s *AllocationService) save(ctx context.Context, documentID string, a Allocations) error {
	raw, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("allocations: serializar: %w", err)
	}
	if err := s.store.Set(ctx, allocationsKey(documentID), raw); err != nil {
		return fmt.Errorf("allocations: guardar: %w", err)
	}
	return nil
}

// SetCount cambia el número de bultos de una línea y redistribuye desde cero.
func (s *AllocationService) SetCount(ctx context.Context, doc *entity.Document, itemKey string, count int) (packaging.Allocation, error) {
	return s.update(ctx, doc, itemKey, func(a packaging.Allocation) (packaging.Allocation, error) {
		if count < 1 {
			return a, fmt.Errorf("%w: número de bultos %d", domain.ErrInvalidInput, count)
		}
		return a.Resize(count), nil
	})
}

// EditPieces cambia las piezas de un bulto; la desviación pasa al bulto siguiente.
func (s *AllocationService) EditPieces(ctx context.Context, doc *entity.Document, itemKey string, index, value int) (packaging.Allocation, error) {
	return s.update(ctx, doc, itemKey, func(a packaging.Allocation) (packaging.Allocation, error) {
		return a.Edit(index, value)
	})
}

// Close guarda el estado final al cerrar el diálogo.
func (s *AllocationService) Close(ctx context.Context, doc *entity.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.load(ctx, doc)
	if err != nil {
		return err
	}
	return s.save(ctx, doc.ID, all)
}

func (s *AllocationService) update(
	ctx context.Context,
	doc *entity.Document,
	itemKey string,
	fn func(packaging.Allocation) (packaging.Allocation, error),
) (packaging.Allocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx, doc)
	if err != nil {
		return packaging.Allocation{}, err
	}
	current, ok := all[itemKey]
	if !ok {
		return packaging.Allocation{}, fmt.Errorf("%w: línea %s", domain.ErrNotFound, itemKey)
	}
	next, err := fn(current)
	if err != nil {
		return packaging.Allocation{}, err
	}
	all[itemKey] = next
	if err := s.save(ctx, doc.ID, all); err != nil {
		return packaging.Allocation{}, err
	}
	return next, nil
}

// Views repartos en el orden de las líneas del documento.
func Views(doc *entity.Document, all Allocations) []AllocationView {
	out := make([]AllocationView, 0, len(all))
	for _, it := range doc.Items {
		a, ok := all[it.Key]
		if !ok {
			continue
		}
		out = append(out, viewOf(it, a))
	}
	return out
}

func viewOf(it entity.LineItem, a packaging.Allocation) AllocationView {
	title := it.Description
	if pn := it.PartNumber(); pn != "" {
		title = pn + " · " + it.Description
	}
	return AllocationView{
		ItemKey:   a.ItemKey,
		Title:     title,
		Total:     a.Total,
		Count:     a.Count(),
		MaxPieces: a.Total - (a.Count() - 1),
		Pieces:    append([]int(nil), a.Pieces...),
	}
}
