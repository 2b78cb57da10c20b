package feed

import (
	"github.com/rookgm/orderfeed/internal/models"
	"slices"
	"sync"
	"sync/atomic"
)

// Observer receives working set changes.
// View must be treated as read-only. Observers are called with the writer
// lock held, so they must not call back into ReplaceAll or IngestOne.
type Observer interface {
	ViewChanged(view []models.Order)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(view []models.Order)

func (f ObserverFunc) ViewChanged(view []models.Order) {
	f(view)
}

// Reconciler owns the working set of orders
type Reconciler struct {
	mu        sync.Mutex
	orders    []models.Order
	ids       map[string]struct{}
	observers []Observer

	view atomic.Pointer[[]models.Order]
}

// NewReconciler creates new empty Reconciler instance
func NewReconciler() *Reconciler {
	r := &Reconciler{ids: make(map[string]struct{})}
	empty := []models.Order{}
	r.view.Store(&empty)
	return r
}

// Subscribe registers observer for working set changes
func (r *Reconciler) Subscribe(o Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, o)
}

// ReplaceAll replaces the whole working set with snapshot orders.
// Repeated ids inside the snapshot keep the first occurrence.
func (r *Reconciler) ReplaceAll(orders []models.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]models.Order, 0, len(orders))
	ids := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		if o.HasID() {
			if _, ok := ids[o.ID]; ok {
				continue
			}
			ids[o.ID] = struct{}{}
		}
		next = append(next, o)
	}
	Sort(next)

	r.orders = next
	r.ids = ids
	r.publish()
}

// IngestOne adds a single order unless an order with the same id is already known.
// Orders without id are always inserted.
func (r *Reconciler) IngestOne(order models.Order) models.InsertOutcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.HasID() {
		if _, ok := r.ids[order.ID]; ok {
			return models.Ignored
		}
		r.ids[order.ID] = struct{}{}
	}

	r.orders = append(r.orders, order)
	Sort(r.orders)
	r.publish()

	return models.Inserted
}

// CurrentView returns copy of the latest sorted working set. It never blocks on writers.
func (r *Reconciler) CurrentView() []models.Order {
	return slices.Clone(*r.view.Load())
}

// Len returns working set size
func (r *Reconciler) Len() int {
	return len(*r.view.Load())
}

// Contains reports whether order with id is in the working set
func (r *Reconciler) Contains(id string) bool {
	if id == "" {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.ids[id]
	return ok
}

// publish must be called with mu held
func (r *Reconciler) publish() {
	view := slices.Clone(r.orders)
	r.view.Store(&view)
	for _, o := range r.observers {
		o.ViewChanged(view)
	}
}
