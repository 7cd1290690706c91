// Package projection derives display subsets of record collections:
// substring and categorical filtering, the portal's two-level group
// search, and fixed-size pagination. Every function here is pure and
// order-preserving.
package projection

import (
	"strings"

	"github.com/prodhub/workbench/internal/models"
)

// All is the sentinel for a categorical filter axis that matches
// every record.
const All = "ALL"

func matches(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func axisMatches(filter, value string) bool {
	return filter == "" || filter == All || filter == value
}

// FilterVersions returns the versions visible on the roadmap: archived
// versions are hidden unless showArchived, and the query matches the
// product name or the version label.
func FilterVersions(versions []*models.ProductVersion, query string, showArchived bool) []*models.ProductVersion {
	var out []*models.ProductVersion
	for _, v := range versions {
		if !showArchived && v.IsArchived {
			continue
		}
		if matches(query, v.ProductName, v.Version) {
			out = append(out, v)
		}
	}
	return out
}

// TicketFilter narrows the ticket list. Status and Priority accept the
// All sentinel (or empty) to skip that axis.
type TicketFilter struct {
	Query    string
	Status   string
	Priority string
}

// FilterTickets matches the query against title, customer name, and id,
// and applies both categorical axes.
func FilterTickets(tickets []*models.Ticket, f TicketFilter) []*models.Ticket {
	var out []*models.Ticket
	for _, t := range tickets {
		if !axisMatches(f.Status, string(t.Status)) {
			continue
		}
		if !axisMatches(f.Priority, string(t.Priority)) {
			continue
		}
		if matches(f.Query, t.Title, t.CustomerName, t.ID) {
			out = append(out, t)
		}
	}
	return out
}

// FilterDocuments matches the query against the title and applies the
// version and category axes.
func FilterDocuments(docs []*models.Document, query, versionID, category string) []*models.Document {
	var out []*models.Document
	for _, d := range docs {
		if !axisMatches(versionID, d.VersionID) {
			continue
		}
		if !axisMatches(category, string(d.Category)) {
			continue
		}
		if matches(query, d.Title) {
			out = append(out, d)
		}
	}
	return out
}

// FilterOutbound matches the query against project side, applicant, and
// the cached product name, plus an optional status axis.
func FilterOutbound(reqs []*models.OutboundRequest, query, status string) []*models.OutboundRequest {
	var out []*models.OutboundRequest
	for _, r := range reqs {
		if !axisMatches(status, string(r.Status)) {
			continue
		}
		if matches(query, r.ProjectSide, r.Applicant, r.ProductName) {
			out = append(out, r)
		}
	}
	return out
}

// SearchNavGroups applies the portal's two-level search. A group whose
// title matches is kept whole. Otherwise the group is kept with only
// its matching items (by name or description), and dropped entirely
// when nothing in it matches. Groups are never mutated: narrowed groups
// are copies.
func SearchNavGroups(groups []*models.NavGroup, query string) []*models.NavGroup {
	if query == "" {
		return groups
	}
	var out []*models.NavGroup
	for _, g := range groups {
		if matches(query, g.Title) {
			out = append(out, g)
			continue
		}
		var items []models.NavResource
		for _, item := range g.Items {
			if matches(query, item.Name, item.Description) {
				items = append(items, item)
			}
		}
		if len(items) > 0 {
			narrowed := *g
			narrowed.Items = items
			out = append(out, &narrowed)
		}
	}
	return out
}
