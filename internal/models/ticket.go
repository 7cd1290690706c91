package models

import "time"

// TicketStatus represents the state of a support ticket.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// TicketPriority represents the severity of a ticket.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "LOW"
	TicketPriorityMedium   TicketPriority = "MEDIUM"
	TicketPriorityHigh     TicketPriority = "HIGH"
	TicketPriorityCritical TicketPriority = "CRITICAL"
)

// Sentiment is the reporter sentiment inferred by the assist collaborator.
type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
	SentimentNegative Sentiment = "NEGATIVE"
)

// Analysis is the structured result attached to a ticket after an
// assist run. All fields come back from a single model call.
type Analysis struct {
	SuggestedPriority          TicketPriority `json:"suggestedPriority"`
	SuggestedType              string         `json:"suggestedType"`
	Summary                    string         `json:"summary"`
	RootCauseHypothesis        string         `json:"rootCauseHypothesis"`
	SuggestedRootCauseCategory string         `json:"suggestedRootCauseCategory,omitempty"`
	Sentiment                  Sentiment      `json:"sentiment"`
	DraftResponse              string         `json:"draftResponse"`
}

// Ticket represents a fault/support ticket against a product.
type Ticket struct {
	ID          string
	Title       string
	Description string
	Status      TicketStatus
	Priority    TicketPriority

	Type         string // fault type / classification
	CustomerName string

	Reporter  string
	Assignee  string
	TestOwner string
	DevOwner  string

	ProductID      string
	ProductVersion string // denormalized display text, cached at write time
	TargetVersion  string

	RootCauseCategory string
	IntroductionStage string

	Solution                string
	EstimatedResolutionTime string
	ReviewStatus            string

	ReportingMonth string
	AttachmentURL  string
	Tags           []string

	AIAnalysis *Analysis

	CreatedAt time.Time
	UpdatedAt time.Time
}
