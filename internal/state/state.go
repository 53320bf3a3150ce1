package state

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/logger"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/storage"
)

// Snapshot is a copy of the application state. Callers may modify it freely.
type Snapshot struct {
	Cart      []models.CartLineItem  `json:"cart"`
	Wishlist  []models.WishlistEntry `json:"wishlist"`
	Token     string                 `json:"-"`
	LastOrder *models.Order          `json:"lastOrder,omitempty"`
	APIError  string                 `json:"apiError,omitempty"`
}

// Store holds the single in-memory copy of cart, wishlist, session token
// and last order, written through to a storage.Store on every mutation.
type Store struct {
	mu        sync.Mutex
	backend   storage.Store
	namespace string
	current   Snapshot

	subsMu sync.Mutex
	subs   map[int]func(Snapshot)
	nextID int

	// version counts installed snapshots; delivered is the last one handed
	// to subscribers. Delivery waits its turn so subscribers see commit order.
	version    uint64
	delivered  uint64
	deliverMu  sync.Mutex
	deliverCnd *sync.Cond
}

// Open loads the persisted state. Malformed persisted values are discarded.
func Open(ctx context.Context, backend storage.Store, namespace string) (*Store, error) {

	s := &Store{
		backend:   backend,
		namespace: namespace,
		current:   emptySnapshot(),
		subs:      make(map[int]func(Snapshot)),
	}
	s.deliverCnd = sync.NewCond(&s.deliverMu)

	if err := s.Reload(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) key(name string) string {
	return storage.Key(s.namespace, name)
}

// Reload replaces the in-memory state with what is persisted. A wishlist
// that needed cleaning is written back.
func (s *Store) Reload(ctx context.Context) error {

	log := logger.FromContext(ctx)

	s.mu.Lock()

	cart := s.loadCart(ctx, log)
	wishlist, cleaned := s.loadWishlist(ctx, log)

	var token string
	if _, err := s.backend.Get(ctx, s.key(storage.TokenKey), &token); err != nil {
		log.Warn("Discarding unreadable session token", slog.String("error", err.Error()))
		token = ""
	}

	var lastOrder *models.Order
	var order models.Order
	found, err := s.backend.Get(ctx, s.key(storage.OrderDetailsKey), &order)
	if err != nil {
		log.Warn("Discarding unreadable order details", slog.String("error", err.Error()))
	} else if found {
		lastOrder = &order
	}

	var apiError string
	if _, err := s.backend.Get(ctx, s.key(storage.APIErrorKey), &apiError); err != nil {
		apiError = ""
	}

	if cleaned {
		if err := s.backend.Set(ctx, s.key(storage.WishlistKey), wishlist); err != nil {
			s.mu.Unlock()
			return appErrors.StorageError("Failed to save the wishlist").WithError(err)
		}
	}

	s.current = Snapshot{
		Cart:      cart,
		Wishlist:  wishlist,
		Token:     token,
		LastOrder: lastOrder,
		APIError:  apiError,
	}
	snap := s.current.clone()
	s.version++
	version := s.version

	s.mu.Unlock()

	s.notify(version, snap)

	return nil
}

// loadCart decodes element by element so one bad line does not cost the
// whole cart.
func (s *Store) loadCart(ctx context.Context, log *slog.Logger) []models.CartLineItem {

	var raw []json.RawMessage

	if _, err := s.backend.Get(ctx, s.key(storage.CartKey), &raw); err != nil {
		log.Warn("Discarding malformed cart", slog.String("error", err.Error()))
		return []models.CartLineItem{}
	}

	items := make([]models.CartLineItem, 0, len(raw))
	for _, r := range raw {
		var item models.CartLineItem
		if err := json.Unmarshal(r, &item); err != nil || item.ID == "" {
			log.Warn("Dropping malformed cart line")
			continue
		}
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		items = append(items, item)
	}

	return items
}

func (s *Store) loadWishlist(ctx context.Context, log *slog.Logger) ([]models.WishlistEntry, bool) {

	var raw []json.RawMessage

	found, err := s.backend.Get(ctx, s.key(storage.WishlistKey), &raw)
	if err != nil {
		log.Warn("Discarding malformed wishlist", slog.String("error", err.Error()))
		return []models.WishlistEntry{}, true
	}

	entries := make([]models.WishlistEntry, 0, len(raw))
	for _, r := range raw {
		var entry models.WishlistEntry
		if err := json.Unmarshal(r, &entry); err != nil || !entry.Usable() {
			continue
		}
		entries = append(entries, entry)
	}

	cleaned := found && len(entries) != len(raw)
	if cleaned {
		log.Info("Removed unusable wishlist entries", slog.Int("removed", len(raw)-len(entries)))
	}

	return entries, cleaned
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current.clone()
}

func (s *Store) Cart() []models.CartLineItem {
	return s.Snapshot().Cart
}

func (s *Store) Wishlist() []models.WishlistEntry {
	return s.Snapshot().Wishlist
}

func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current.Token
}

func (s *Store) LastOrder() *models.Order {
	return s.Snapshot().LastOrder
}

// Subscribe registers fn to receive the state after every committed
// change, in commit order. fn must not call Mutate or Reload. The returned
// func unregisters it.
func (s *Store) Subscribe(fn func(Snapshot)) func() {

	s.subsMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

func (s *Store) notify(version uint64, snap Snapshot) {

	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	for s.delivered != version-1 {
		s.deliverCnd.Wait()
	}

	defer func() {
		s.delivered = version
		s.deliverCnd.Broadcast()
	}()

	s.subsMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(snap.clone())
	}
}

// Mutate runs fn against a working copy of the state. If fn succeeds, the
// keys it touched are committed to the backing store in one operation and
// only then become visible. Any error leaves state and store as they were.
func (s *Store) Mutate(ctx context.Context, fn func(tx *Tx) error) error {

	s.mu.Lock()

	tx := &Tx{next: s.current.clone()}

	if err := fn(tx); err != nil {
		s.mu.Unlock()
		return err
	}

	ops := tx.ops(s.key)
	if len(ops) == 0 {
		s.mu.Unlock()
		return nil
	}

	if err := s.backend.Commit(ctx, ops...); err != nil {
		s.mu.Unlock()
		logger.FromContext(ctx).Error("Failed to persist state", slog.Int("keys", len(ops)), slog.String("error", err.Error()))
		return appErrors.StorageError("Failed to save changes").WithError(err)
	}

	// fn may still hold the slices it staged; keep a private copy.
	s.current = tx.next.clone()
	snap := s.current.clone()
	s.version++
	version := s.version

	s.mu.Unlock()

	s.notify(version, snap)

	return nil
}

func emptySnapshot() Snapshot {
	return Snapshot{
		Cart:     []models.CartLineItem{},
		Wishlist: []models.WishlistEntry{},
	}
}

func (s Snapshot) clone() Snapshot {

	out := Snapshot{
		Cart:     make([]models.CartLineItem, len(s.Cart)),
		Wishlist: make([]models.WishlistEntry, len(s.Wishlist)),
		Token:    s.Token,
		APIError: s.APIError,
	}
	copy(out.Cart, s.Cart)
	copy(out.Wishlist, s.Wishlist)

	if s.LastOrder != nil {
		order := *s.LastOrder
		order.Items = append([]models.CartLineItem(nil), s.LastOrder.Items...)
		out.LastOrder = &order
	}

	return out
}
