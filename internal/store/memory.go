package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prodhub/workbench/internal/models"
)

// MemoryStore holds every collection as an ordered slice in memory.
// It is the default backend: collections are seeded at startup and
// discarded on exit. A single mutex serializes access; there is one
// writer (the local user) so contention is not a concern.
type MemoryStore struct {
	mu sync.RWMutex

	tickets   []*models.Ticket
	versions  []*models.ProductVersion
	documents []*models.Document
	outbound  []*models.OutboundRequest
	products  []*models.Product
	releases  []*models.Release
	navGroups []*models.NavGroup
}

// NewMemoryStore creates a memory store preloaded with the given seed.
// A nil seed yields an empty store.
func NewMemoryStore(seed *Seed) *MemoryStore {
	s := &MemoryStore{}
	if seed != nil {
		s.tickets = seed.Tickets
		s.versions = seed.Versions
		s.documents = seed.Documents
		s.outbound = seed.Outbound
		s.products = seed.Products
		s.releases = seed.Releases
		s.navGroups = seed.NavGroups
	}
	return s
}

// Migrate is a no-op for the memory backend.
func (s *MemoryStore) Migrate(ctx context.Context) error { return nil }

// Close is a no-op for the memory backend.
func (s *MemoryStore) Close() error { return nil }

// listCopy returns a defensive copy of the slice header so callers can
// filter and paginate without racing concurrent upserts.
func listCopy[T any](src []*T) []*T {
	out := make([]*T, len(src))
	copy(out, src)
	return out
}

func find[T any](src []*T, id string, idOf func(*T) string) *T {
	for _, rec := range src {
		if idOf(rec) == id {
			return rec
		}
	}
	return nil
}

// upsert replaces the record with the same id in place, preserving its
// position, or inserts it: appended by default, prepended when prepend
// is set.
func upsert[T any](src []*T, rec *T, idOf func(*T) string, prepend bool) []*T {
	id := idOf(rec)
	for i, existing := range src {
		if idOf(existing) == id {
			src[i] = rec
			return src
		}
	}
	if prepend {
		return append([]*T{rec}, src...)
	}
	return append(src, rec)
}

// remove filters the id out of the slice. Absence is a no-op.
func remove[T any](src []*T, id string, idOf func(*T) string) []*T {
	out := src[:0]
	for _, rec := range src {
		if idOf(rec) != id {
			out = append(out, rec)
		}
	}
	return out
}

// --- Tickets ---

func ticketID(t *models.Ticket) string { return t.ID }

func (s *MemoryStore) ListTickets(ctx context.Context) ([]*models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listCopy(s.tickets), nil
}

func (s *MemoryStore) GetTicket(ctx context.Context, id string) (*models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t := find(s.tickets, id, ticketID); t != nil {
		return t, nil
	}
	return nil, fmt.Errorf("ticket not found: %s", id)
}

func (s *MemoryStore) UpsertTicket(ctx context.Context, t *models.Ticket) error {
	if err := validateTicket(t); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	if t.ID == "" {
		t.ID = newULID()
		t.CreatedAt = now
	} else if existing := find(s.tickets, t.ID, ticketID); existing == nil {
		if t.CreatedAt.IsZero() {
			t.CreatedAt = now
		}
	}
	t.UpdatedAt = now
	s.tickets = upsert(s.tickets, t, ticketID, false)
	return nil
}

func (s *MemoryStore) DeleteTicket(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets = remove(s.tickets, id, ticketID)
	return nil
}

// --- Product versions ---

func versionID(v *models.ProductVersion) string { return v.ID }

func (s *MemoryStore) ListVersions(ctx context.Context) ([]*models.ProductVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listCopy(s.versions), nil
}

func (s *MemoryStore) GetVersion(ctx context.Context, id string) (*models.ProductVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v := find(s.versions, id, versionID); v != nil {
		return v, nil
	}
	return nil, fmt.Errorf("version not found: %s", id)
}

func (s *MemoryStore) UpsertVersion(ctx context.Context, v *models.ProductVersion) error {
	if err := validateVersion(v); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if v.ID == "" {
		v.ID = newULID()
	}
	s.versions = upsert(s.versions, v, versionID, false)
	return nil
}

func (s *MemoryStore) DeleteVersion(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.versions = remove(s.versions, id, versionID)
	return nil
}

// --- Documents ---

func documentID(d *models.Document) string { return d.ID }

func (s *MemoryStore) ListDocuments(ctx context.Context) ([]*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listCopy(s.documents), nil
}

func (s *MemoryStore) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if d := find(s.documents, id, documentID); d != nil {
		return d, nil
	}
	return nil, fmt.Errorf("document not found: %s", id)
}

func (s *MemoryStore) UpsertDocument(ctx context.Context, d *models.Document) error {
	if err := validateDocument(d); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID == "" {
		d.ID = newULID()
	}
	s.documents = upsert(s.documents, d, documentID, false)
	return nil
}

func (s *MemoryStore) DeleteDocument(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = remove(s.documents, id, documentID)
	return nil
}

// --- Outbound requests ---

func outboundID(r *models.OutboundRequest) string { return r.ID }

func (s *MemoryStore) ListOutbound(ctx context.Context) ([]*models.OutboundRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listCopy(s.outbound), nil
}

func (s *MemoryStore) GetOutbound(ctx context.Context, id string) (*models.OutboundRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r := find(s.outbound, id, outboundID); r != nil {
		return r, nil
	}
	return nil, fmt.Errorf("outbound request not found: %s", id)
}

func (s *MemoryStore) UpsertOutbound(ctx context.Context, r *models.OutboundRequest) error {
	if err := validateOutbound(r); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == "" {
		r.ID = newULID()
	}
	// New requests go to the front: the list displays newest first.
	s.outbound = upsert(s.outbound, r, outboundID, true)
	return nil
}

func (s *MemoryStore) DeleteOutbound(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outbound = remove(s.outbound, id, outboundID)
	return nil
}

// --- Products ---

func productID(p *models.Product) string { return p.ID }

func (s *MemoryStore) ListProducts(ctx context.Context) ([]*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listCopy(s.products), nil
}

func (s *MemoryStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p := find(s.products, id, productID); p != nil {
		return p, nil
	}
	return nil, fmt.Errorf("product not found: %s", id)
}

func (s *MemoryStore) UpsertProduct(ctx context.Context, p *models.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = newULID()
	}
	s.products = upsert(s.products, p, productID, false)
	return nil
}

func (s *MemoryStore) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = remove(s.products, id, productID)
	return nil
}

// --- Releases ---

func (s *MemoryStore) ListReleases(ctx context.Context) ([]*models.Release, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listCopy(s.releases), nil
}

// --- Navigation groups ---

func navGroupID(g *models.NavGroup) string { return g.ID }

func (s *MemoryStore) ListNavGroups(ctx context.Context) ([]*models.NavGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listCopy(s.navGroups), nil
}

func (s *MemoryStore) GetNavGroup(ctx context.Context, id string) (*models.NavGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if g := find(s.navGroups, id, navGroupID); g != nil {
		return g, nil
	}
	return nil, fmt.Errorf("nav group not found: %s", id)
}

func (s *MemoryStore) UpsertNavGroup(ctx context.Context, g *models.NavGroup) error {
	if err := validateNavGroup(g); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if g.ID == "" {
		g.ID = newULID()
	}
	s.navGroups = upsert(s.navGroups, g, navGroupID, false)
	return nil
}

func (s *MemoryStore) DeleteNavGroup(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navGroups = remove(s.navGroups, id, navGroupID)
	return nil
}

func (s *MemoryStore) UpsertNavResource(ctx context.Context, groupID string, r *models.NavResource) error {
	if err := validateNavResource(r); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	g := find(s.navGroups, groupID, navGroupID)
	if g == nil {
		return fmt.Errorf("nav group not found: %s", groupID)
	}
	if r.ID == "" {
		r.ID = newULID()
	}
	for i := range g.Items {
		if g.Items[i].ID == r.ID {
			g.Items[i] = *r
			return nil
		}
	}
	g.Items = append(g.Items, *r)
	return nil
}

func (s *MemoryStore) DeleteNavResource(ctx context.Context, groupID, resourceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := find(s.navGroups, groupID, navGroupID)
	if g == nil {
		return nil
	}
	items := g.Items[:0]
	for _, item := range g.Items {
		if item.ID != resourceID {
			items = append(items, item)
		}
	}
	g.Items = items
	return nil
}
