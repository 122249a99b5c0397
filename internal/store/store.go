package store

import (
	"crypto/rand"
	"encoding/hex"
	"sort"
	"sync"
)

// Store holds all mutable state behind one mutex so each request's
// state-mutating step runs as a single critical section.
type Store struct {
	mu          sync.RWMutex
	items       map[string]*Item
	orders      map[string]*Order
	orderSeq    []string // insertion order for listing
	promotions  map[string]*Promotion
	promoSeq    []string
	menuVersion uint64
}

// New returns an empty store with menuVersion 0.
func New() *Store {
	return &Store{
		items:      make(map[string]*Item),
		orders:     make(map[string]*Order),
		promotions: make(map[string]*Promotion),
	}
}

// NewID returns a 16-byte cryptographically random id, hex encoded.
// Uniqueness is probabilistic; collisions are treated as negligible at
// this system's scale.
func NewID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic("store: crypto/rand unavailable: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// PutItem inserts or replaces an item and bumps the menu version.
// It returns the new version.
func (s *Store) PutItem(item *Item) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *item
	s.items[item.ID] = &cp
	s.menuVersion++
	return s.menuVersion
}

// GetItem returns a copy of the item, or a NotFoundError.
func (s *Store) GetItem(id string) (*Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return nil, &NotFoundError{Entity: "item", ID: id}
	}
	cp := *item
	return &cp, nil
}

// DeleteItem removes the record entirely and bumps the menu version.
func (s *Store) DeleteItem(id string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return 0, &NotFoundError{Entity: "item", ID: id}
	}
	delete(s.items, id)
	s.menuVersion++
	return s.menuVersion, nil
}

// ListItems returns copies of all items sorted by name.
func (s *Store) ListItems() []*Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Item, 0, len(s.items))
	for _, item := range s.items {
		cp := *item
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Snapshot returns a by-value copy of the catalog for the order total
// calculator, so totals are computed against a consistent view.
func (s *Store) Snapshot() map[string]Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := make(map[string]Item, len(s.items))
	for id, item := range s.items {
		snap[id] = *item
	}
	return snap
}

// InsertOrder records a completed order.
func (s *Store) InsertOrder(order *Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *order
	cp.Lines = append([]OrderLine(nil), order.Lines...)
	s.orders[order.ID] = &cp
	s.orderSeq = append(s.orderSeq, order.ID)
}

// GetOrder returns a copy of the order, or a NotFoundError.
func (s *Store) GetOrder(id string) (*Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, &NotFoundError{Entity: "order", ID: id}
	}
	cp := *order
	cp.Lines = append([]OrderLine(nil), order.Lines...)
	return &cp, nil
}

// ListOrders returns copies of all orders in creation order.
func (s *Store) ListOrders() []*Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Order, 0, len(s.orderSeq))
	for _, id := range s.orderSeq {
		order := s.orders[id]
		cp := *order
		cp.Lines = append([]OrderLine(nil), order.Lines...)
		out = append(out, &cp)
	}
	return out
}

// InsertPromotion records a promotion. Promotions do not bump the menu
// version; they are not part of the published catalog state.
func (s *Store) InsertPromotion(p *Promotion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.promotions[p.ID] = &cp
	s.promoSeq = append(s.promoSeq, p.ID)
}

// ListPromotions returns copies of all promotions in creation order.
func (s *Store) ListPromotions() []*Promotion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Promotion, 0, len(s.promoSeq))
	for _, id := range s.promoSeq {
		cp := *s.promotions[id]
		out = append(out, &cp)
	}
	return out
}

// MenuVersion returns the current published-state generation.
func (s *Store) MenuVersion() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.menuVersion
}

// BumpMenuVersion increments the generation counter without touching
// the catalog; used by explicit publish operations.
func (s *Store) BumpMenuVersion() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menuVersion++
	return s.menuVersion
}
