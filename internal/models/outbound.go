package models

// OutboundStatus represents the approval state of an outbound request.
type OutboundStatus string

const (
	OutboundStatusPending  OutboundStatus = "PENDING"
	OutboundStatusApproved OutboundStatus = "APPROVED"
	OutboundStatusRejected OutboundStatus = "REJECTED"
)

// OutboundRequest records a request to ship a product version to a
// project site. ProductName and Version are denormalized display text
// cached when the request is created; they deliberately go stale if the
// referenced product or version changes later.
type OutboundRequest struct {
	ID              string
	ApplicationDate string

	ProductID   string
	ProductName string

	VersionID string
	Version   string

	Applicant   string
	ProjectSide string

	Requirements string
	ArtifactURL  string
	DocumentURL  string

	Status        OutboundStatus
	Operator      string
	OperationTime string
}
