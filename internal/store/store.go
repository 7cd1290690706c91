package store

import (
	"context"

	"github.com/prodhub/workbench/internal/models"
)

// Store defines the record-store contract shared by every backend.
//
// Upsert replaces an existing record in place (its position in the
// collection is preserved) and otherwise inserts it: appended for most
// entities, prepended for outbound requests, which display newest
// first. A record arriving with an empty ID gets a generated one.
// Delete of an id that is not present is a no-op, never an error.
// Deletes never cascade: a document or outbound request keeps pointing
// at a deleted version and keeps whatever display text it cached.
type Store interface {
	// Tickets
	ListTickets(ctx context.Context) ([]*models.Ticket, error)
	GetTicket(ctx context.Context, id string) (*models.Ticket, error)
	UpsertTicket(ctx context.Context, t *models.Ticket) error
	DeleteTicket(ctx context.Context, id string) error

	// Product versions
	ListVersions(ctx context.Context) ([]*models.ProductVersion, error)
	GetVersion(ctx context.Context, id string) (*models.ProductVersion, error)
	UpsertVersion(ctx context.Context, v *models.ProductVersion) error
	DeleteVersion(ctx context.Context, id string) error

	// Documents
	ListDocuments(ctx context.Context) ([]*models.Document, error)
	GetDocument(ctx context.Context, id string) (*models.Document, error)
	UpsertDocument(ctx context.Context, d *models.Document) error
	DeleteDocument(ctx context.Context, id string) error

	// Outbound requests
	ListOutbound(ctx context.Context) ([]*models.OutboundRequest, error)
	GetOutbound(ctx context.Context, id string) (*models.OutboundRequest, error)
	UpsertOutbound(ctx context.Context, r *models.OutboundRequest) error
	DeleteOutbound(ctx context.Context, id string) error

	// Products
	ListProducts(ctx context.Context) ([]*models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	UpsertProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id string) error

	// Releases (dashboard changelog, read-only)
	ListReleases(ctx context.Context) ([]*models.Release, error)

	// Navigation groups
	ListNavGroups(ctx context.Context) ([]*models.NavGroup, error)
	GetNavGroup(ctx context.Context, id string) (*models.NavGroup, error)
	UpsertNavGroup(ctx context.Context, g *models.NavGroup) error
	DeleteNavGroup(ctx context.Context, id string) error
	UpsertNavResource(ctx context.Context, groupID string, r *models.NavResource) error
	DeleteNavResource(ctx context.Context, groupID, resourceID string) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
