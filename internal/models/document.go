package models

// DocumentCategory groups documents by audience.
type DocumentCategory string

const (
	DocumentCategoryMarket   DocumentCategory = "MARKET"   // pre-sales
	DocumentCategoryDelivery DocumentCategory = "DELIVERY" // delivery & usage
	DocumentCategoryOps      DocumentCategory = "OPS"      // operations
	DocumentCategoryRnD      DocumentCategory = "RND"      // R&D and testing
)

// DocumentCategories lists every category in display order.
var DocumentCategories = []DocumentCategory{
	DocumentCategoryMarket,
	DocumentCategoryDelivery,
	DocumentCategoryOps,
	DocumentCategoryRnD,
}

// Document is an external document associated with a product version.
// VersionID is a plain foreign key: it is never validated and survives
// deletion of the version it points at.
type Document struct {
	ID        string
	Title     string
	Category  DocumentCategory
	VersionID string
	URL       string
	Author    string
	UpdatedAt string
}
