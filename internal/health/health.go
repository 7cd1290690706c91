// Package health computes the aggregate figures behind the dashboard.
package health

import (
	"time"

	"github.com/prodhub/workbench/internal/models"
	"github.com/prodhub/workbench/internal/timeline"
)

// Summary is the full set of dashboard aggregates, computed from one
// consistent read of the store.
type Summary struct {
	TicketsByStatus   map[models.TicketStatus]int
	TicketsByPriority map[models.TicketPriority]int
	OpenTickets       int
	CriticalOpen      []*models.Ticket

	ActiveVersions  int
	DelayedVersions []*models.ProductVersion
	AtRiskVersions  []*models.ProductVersion

	DocumentsByCategory map[models.DocumentCategory]int
	PendingOutbound     int

	Products []ProductHealth
}

// ProductHealth is one product's dashboard row.
type ProductHealth struct {
	Product *models.Product
	Health  int // clamped to 0-100
}

// Input bundles the collections a summary is computed from.
type Input struct {
	Tickets   []*models.Ticket
	Versions  []*models.ProductVersion
	Documents []*models.Document
	Outbound  []*models.OutboundRequest
	Products  []*models.Product
}

// Summarize computes the dashboard aggregates. Versions count as
// delayed or at risk only when their interval intersects the window;
// archived versions are skipped throughout.
func Summarize(in Input, w timeline.Window) *Summary {
	s := &Summary{
		TicketsByStatus:     make(map[models.TicketStatus]int),
		TicketsByPriority:   make(map[models.TicketPriority]int),
		DocumentsByCategory: make(map[models.DocumentCategory]int),
	}

	for _, t := range in.Tickets {
		s.TicketsByStatus[t.Status]++
		s.TicketsByPriority[t.Priority]++
		open := t.Status == models.TicketStatusOpen || t.Status == models.TicketStatusInProgress
		if open {
			s.OpenTickets++
			if t.Priority == models.TicketPriorityCritical {
				s.CriticalOpen = append(s.CriticalOpen, t)
			}
		}
	}

	for _, v := range in.Versions {
		if v.IsArchived {
			continue
		}
		switch v.Status {
		case models.VersionStatusDeveloping, models.VersionStatusUATReady, models.VersionStatusUATVerifying:
			s.ActiveVersions++
		}
		if _, visible := timeline.BarPosition(w, v.StartDate, v.EndDate); !visible {
			continue
		}
		if v.IsDelayed {
			s.DelayedVersions = append(s.DelayedVersions, v)
			continue
		}
		// Low progress with the end date closing in is worth surfacing
		// even without an explicit delay flag.
		if v.Status == models.VersionStatusDeveloping && v.Progress < 50 {
			if end, err := time.Parse(timeline.DateFormat, v.EndDate); err == nil && end.Before(w.Start.AddDate(0, 2, 0)) {
				s.AtRiskVersions = append(s.AtRiskVersions, v)
			}
		}
	}

	for _, d := range in.Documents {
		s.DocumentsByCategory[d.Category]++
	}

	for _, r := range in.Outbound {
		if r.Status == models.OutboundStatusPending {
			s.PendingOutbound++
		}
	}

	for _, p := range in.Products {
		h := p.Health
		if h < 0 {
			h = 0
		}
		if h > 100 {
			h = 100
		}
		s.Products = append(s.Products, ProductHealth{Product: p, Health: h})
	}

	return s
}
