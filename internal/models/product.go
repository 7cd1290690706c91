package models

// Product is a catalog entry for a shipped product line.
type Product struct {
	ID            string
	Name          string
	Description   string
	Owner         string
	Health        int // 0-100
	ActiveTickets int
	Icon          string
}

// ReleaseType classifies a changelog entry.
type ReleaseType string

const (
	ReleaseTypeHotfix       ReleaseType = "Hotfix"
	ReleaseTypeFeature      ReleaseType = "Feature"
	ReleaseTypeOptimization ReleaseType = "Optimization"
)

// Release is one entry in the dashboard changelog.
type Release struct {
	ID          string
	Version     string
	Date        string
	Type        ReleaseType
	Title       string
	Description string
	Items       []string
}
