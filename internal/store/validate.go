package store

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/prodhub/workbench/internal/models"
)

// newULID generates a new ULID string.
func newULID() string {
	entropy := rand.New(rand.NewSource(time.Now().UnixNano()))
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulid.Monotonic(entropy, 0)).String()
}

// clampPercent pins free-form numeric input to the [0,100] range.
func clampPercent(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// The validate functions enforce the only pre-commit checks the system
// performs: required-field presence and percentage clamping. There is
// no schema validation beyond this, and no referential checks on the
// id fields records carry.

func validateTicket(t *models.Ticket) error {
	if t.Title == "" {
		return fmt.Errorf("ticket title is required")
	}
	if t.Status == "" {
		t.Status = models.TicketStatusOpen
	}
	if t.Priority == "" {
		t.Priority = models.TicketPriorityMedium
	}
	return nil
}

func validateVersion(v *models.ProductVersion) error {
	if v.Version == "" {
		return fmt.Errorf("version label is required")
	}
	if v.Status == "" {
		v.Status = models.VersionStatusPlanning
	}
	if v.Type == "" {
		v.Type = models.VersionTypeStandard
	}
	v.Progress = clampPercent(v.Progress)
	return nil
}

func validateDocument(d *models.Document) error {
	if d.Title == "" {
		return fmt.Errorf("document title is required")
	}
	return nil
}

func validateOutbound(r *models.OutboundRequest) error {
	switch {
	case r.ProductID == "":
		return fmt.Errorf("outbound product is required")
	case r.VersionID == "":
		return fmt.Errorf("outbound version is required")
	case r.Applicant == "":
		return fmt.Errorf("outbound applicant is required")
	case r.ProjectSide == "":
		return fmt.Errorf("outbound project side is required")
	}
	if r.Status == "" {
		r.Status = models.OutboundStatusPending
	}
	return nil
}

func validateProduct(p *models.Product) error {
	if p.Name == "" {
		return fmt.Errorf("product name is required")
	}
	p.Health = clampPercent(p.Health)
	return nil
}

func validateNavGroup(g *models.NavGroup) error {
	if g.Title == "" {
		return fmt.Errorf("nav group title is required")
	}
	return nil
}

func validateNavResource(r *models.NavResource) error {
	if r.Name == "" {
		return fmt.Errorf("nav resource name is required")
	}
	return nil
}
