package models

// VersionStatus represents the lifecycle stage of a product version.
// It is a free-form enumerated field: any status may be set from any
// other, there is no guarded transition table.
type VersionStatus string

const (
	VersionStatusPlanning     VersionStatus = "PLANNING"
	VersionStatusDeveloping   VersionStatus = "DEVELOPING"
	VersionStatusUATReady     VersionStatus = "UAT_READY"
	VersionStatusUATVerifying VersionStatus = "UAT_VERIFYING"
	VersionStatusReleased     VersionStatus = "RELEASED"
	VersionStatusDelivered    VersionStatus = "DELIVERED"
	VersionStatusArchived     VersionStatus = "ARCHIVED"
)

// VersionType classifies how a version is produced.
type VersionType string

const (
	VersionTypeStandard   VersionType = "STANDARD"
	VersionTypeCustomized VersionType = "CUSTOMIZED"
	VersionTypeHotfix     VersionType = "HOTFIX"
)

// ProductVersion is one planned or shipped version of a product.
// Dates are stored as "2006-01-02" strings; empty means unset.
type ProductVersion struct {
	ID          string
	ProductName string
	Version     string // version label, e.g. "v2.4.0"
	Name        string // human-readable version name
	Type        VersionType

	Features     string
	Dependencies string

	Status   VersionStatus
	Progress int // 0-100

	Customers       []string
	EnvRequirements string

	StartDate      string
	EndDate        string
	PlannedUATDate string
	ActualUATDate  string
	DeliveryDate   string

	ProductManager string
	VersionAdmin   string
	UATDeployer    string
	UATTester      string
	NotifyUser     string
	UATFinishUser  string

	IsReadyForDelivery bool
	IsArchived         bool
	IsDelayed          bool

	RelatedReleaseVersion  string
	RelatedOutboundRequest string
	ExceptionNote          string
}
