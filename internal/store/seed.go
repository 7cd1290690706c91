package store

import (
	"time"

	"github.com/prodhub/workbench/internal/models"
)

// Seed is the set of collections a store starts with.
type Seed struct {
	Tickets   []*models.Ticket
	Versions  []*models.ProductVersion
	Documents []*models.Document
	Outbound  []*models.OutboundRequest
	Products  []*models.Product
	Releases  []*models.Release
	NavGroups []*models.NavGroup
}

// DefaultSeed returns the built-in sample collections loaded at
// startup. Dates are anchored to now so the roadmap window always has
// visible bars.
func DefaultSeed() *Seed {
	now := time.Now().UTC()
	day := func(offset int) string {
		return now.AddDate(0, 0, offset).Format("2006-01-02")
	}

	return &Seed{
		Products: []*models.Product{
			{ID: "p1", Name: "Cloud ERP Core", Description: "Enterprise resource planning core handling finance and inventory.", Owner: "Sarah Miller", Health: 98, ActiveTickets: 12, Icon: "Box"},
			{ID: "p2", Name: "Nexus Mobile App", Description: "End-user mobile application for iOS and Android.", Owner: "David Li", Health: 85, ActiveTickets: 34, Icon: "Smartphone"},
			{ID: "p3", Name: "Data Analytics Gateway", Description: "Big-data processing and BI reporting gateway service.", Owner: "Emily Zhang", Health: 45, ActiveTickets: 8, Icon: "BarChart"},
		},

		Tickets: []*models.Ticket{
			{
				ID: "T-1024", Title: "ERP login extremely slow during morning peak",
				Description: "Finance staff report ERP login taking over 30 seconds around 9am, sometimes timing out entirely.",
				Status:      models.TicketStatusOpen, Priority: models.TicketPriorityHigh,
				Type: "Performance", CustomerName: "Global Finance Corp",
				Reporter: "u5", DevOwner: "Sarah Miller",
				ProductID: "p1", ProductVersion: "v2.4.0",
				ReportingMonth: now.Format("2006-01"),
				Tags:           []string{"Login", "Timeout", "Finance"},
				CreatedAt:      now.AddDate(0, 0, -4), UpdatedAt: now.AddDate(0, 0, -3),
			},
			{
				ID: "T-1025", Title: "Mobile avatar upload crashes the app",
				Description: "Updating the profile avatar on iOS 17 crashes the app. Steps: Settings > Profile > tap avatar > pick photo.",
				Status:      models.TicketStatusInProgress, Priority: models.TicketPriorityMedium,
				Type: "Bug", CustomerName: "Retail Users",
				Reporter: "u8", Assignee: "u1", TestOwner: "Jessica Wu",
				ProductID: "p2", ProductVersion: "v4.1.2",
				RootCauseCategory: "Code Logic", IntroductionStage: "Development",
				ReportingMonth: now.Format("2006-01"),
				Tags:           []string{"iOS", "Crash", "Profile"},
				CreatedAt:      now.AddDate(0, 0, -5), UpdatedAt: now.AddDate(0, 0, -1),
			},
			{
				ID: "T-1026", Title: "Add CSV export to reporting",
				Description: "Reports currently export to PDF only; finance wants CSV for downstream analysis.",
				Status:      models.TicketStatusOpen, Priority: models.TicketPriorityLow,
				Type: "Feature Request", CustomerName: "Internal Finance",
				Reporter:  "u12",
				ProductID: "p3", ProductVersion: "v1.0.0",
				ReportingMonth: now.Format("2006-01"),
				Tags:           []string{"Export", "Feature"},
				CreatedAt:      now.AddDate(0, 0, -6), UpdatedAt: now.AddDate(0, 0, -6),
			},
			{
				ID: "T-1027", Title: "Database connection pool exhaustion alerts",
				Description: "Monitoring saw the Analytics Gateway primary pool hit 100% occupancy three times in the last hour.",
				Status:      models.TicketStatusOpen, Priority: models.TicketPriorityCritical,
				Type: "Infrastructure", CustomerName: "Internal Ops",
				Reporter:  "sys_monitor",
				ProductID: "p3", ProductVersion: "v1.2.0",
				AttachmentURL:  "https://example.com/logs/db_pool.log",
				ReportingMonth: now.Format("2006-01"),
				Tags:           []string{"Database", "Alert", "Infra"},
				CreatedAt:      now.AddDate(0, 0, -1), UpdatedAt: now.AddDate(0, 0, -1),
			},
		},

		Versions: []*models.ProductVersion{
			{
				ID: "v1", ProductName: "Cloud ERP Core", Version: "v2.4.0", Name: "Finance close automation",
				Type: models.VersionTypeStandard, Status: models.VersionStatusDeveloping, Progress: 65,
				Features:  "Automated month-end close, ledger reconciliation dashboard.",
				StartDate: day(-40), EndDate: day(25), PlannedUATDate: day(10),
				ProductManager: "Sarah Miller", VersionAdmin: "Tom Qian", UATTester: "Jessica Wu",
				Customers: []string{"Global Finance Corp"},
			},
			{
				ID: "v2", ProductName: "Nexus Mobile App", Version: "v4.2.0", Name: "Offline mode",
				Type: models.VersionTypeStandard, Status: models.VersionStatusUATVerifying, Progress: 90,
				Features:  "Offline order capture with background sync.",
				StartDate: day(-70), EndDate: day(-5), PlannedUATDate: day(-15), ActualUATDate: day(-12),
				ProductManager: "David Li", VersionAdmin: "Tom Qian", UATTester: "Jessica Wu",
				IsReadyForDelivery: true,
			},
			{
				ID: "v3", ProductName: "Data Analytics Gateway", Version: "v1.3.0", Name: "Streaming ingestion",
				Type: models.VersionTypeCustomized, Status: models.VersionStatusPlanning, Progress: 10,
				Features:  "Kafka source connector, per-tenant quotas.",
				StartDate: day(15), EndDate: day(75), PlannedUATDate: day(60),
				ProductManager: "Emily Zhang", VersionAdmin: "Tom Qian",
				Customers: []string{"North Site"}, IsDelayed: true,
				ExceptionNote: "Connector vendor certification slipped two weeks.",
			},
			{
				ID: "v4", ProductName: "Cloud ERP Core", Version: "v2.3.1", Name: "Stability hotfix",
				Type: models.VersionTypeHotfix, Status: models.VersionStatusDelivered, Progress: 100,
				Features:  "Fixes ledger rounding drift under concurrent postings.",
				StartDate: day(-120), EndDate: day(-95), PlannedUATDate: day(-100),
				ActualUATDate: day(-99), DeliveryDate: day(-92),
				ProductManager: "Sarah Miller", VersionAdmin: "Tom Qian",
				IsReadyForDelivery: true,
			},
			{
				ID: "v5", ProductName: "Cloud ERP Core", Version: "v2.2.0", Name: "Legacy reporting",
				Type: models.VersionTypeStandard, Status: models.VersionStatusArchived, Progress: 100,
				Features:  "Superseded reporting stack.",
				StartDate: day(-300), EndDate: day(-210), PlannedUATDate: day(-230),
				ProductManager: "Sarah Miller", VersionAdmin: "Tom Qian",
				IsArchived: true,
			},
		},

		Documents: []*models.Document{
			{ID: "d1", Title: "Cloud ERP v2.4.0 Pre-sales Deck", Category: models.DocumentCategoryMarket, VersionID: "v1", URL: "https://docs.example.com/erp/presales-240", Author: "Sarah Miller", UpdatedAt: day(-9)},
			{ID: "d2", Title: "Cloud ERP v2.4.0 Install Guide", Category: models.DocumentCategoryDelivery, VersionID: "v1", URL: "https://docs.example.com/erp/install-240", Author: "Tom Qian", UpdatedAt: day(-3)},
			{ID: "d3", Title: "Gateway Operations Runbook", Category: models.DocumentCategoryOps, VersionID: "v3", URL: "https://docs.example.com/gateway/runbook", Author: "Emily Zhang", UpdatedAt: day(-20)},
			{ID: "d4", Title: "Mobile v4.2.0 Test Plan", Category: models.DocumentCategoryRnD, VersionID: "v2", URL: "https://docs.example.com/mobile/testplan-420", Author: "Jessica Wu", UpdatedAt: day(-6)},
		},

		Outbound: []*models.OutboundRequest{
			{
				ID: "OB-2201", ApplicationDate: day(-2),
				ProductID: "p1", ProductName: "Cloud ERP Core",
				VersionID: "v4", Version: "v2.3.1",
				Applicant: "wei.chen", ProjectSide: "North Site",
				Requirements: "Full package plus delta upgrade script.",
				ArtifactURL:  "https://artifacts.example.com/erp/2.3.1",
				Status:       models.OutboundStatusPending,
			},
			{
				ID: "OB-2198", ApplicationDate: day(-10),
				ProductID: "p2", ProductName: "Nexus Mobile App",
				VersionID: "v2", Version: "v4.2.0",
				Applicant: "li.na", ProjectSide: "South Site",
				Status:   models.OutboundStatusApproved,
				Operator: "Tom Qian", OperationTime: day(-9),
			},
		},

		Releases: []*models.Release{
			{ID: "rel1", Version: "v2.3.1", Date: day(-92), Type: models.ReleaseTypeHotfix, Title: "Ledger rounding fix", Description: "Emergency fix for rounding drift.", Items: []string{"Fix ledger rounding under concurrent postings", "Add posting audit log"}},
			{ID: "rel2", Version: "v4.1.2", Date: day(-120), Type: models.ReleaseTypeFeature, Title: "Mobile quick actions", Description: "Home-screen quick actions and push improvements.", Items: []string{"Quick actions", "Push delivery retries"}},
		},

		NavGroups: []*models.NavGroup{
			{
				ID: "g1", Title: "Development Toolchain",
				Items: []models.NavResource{
					{ID: "r1", Name: "GitLab", Description: "Source repositories and CI pipelines", URL: "https://git.example.com", Icon: "Gitlab", BgColor: "bg-orange-100 text-orange-600"},
					{ID: "r2", Name: "Harbor Registry", Description: "Container image registry", URL: "https://harbor.example.com", Icon: "Container", BgColor: "bg-sky-100 text-sky-600"},
					{ID: "r3", Name: "SonarQube", Description: "Static analysis and quality gates", URL: "https://sonar.example.com", Icon: "Code2", BgColor: "bg-indigo-100 text-indigo-600"},
				},
			},
			{
				ID: "g2", Title: "Knowledge Base",
				Items: []models.NavResource{
					{ID: "r4", Name: "Engineering Wiki", Description: "Team handbook and design docs", URL: "https://wiki.example.com", Icon: "BookOpen", BgColor: "bg-emerald-100 text-emerald-600"},
					{ID: "r5", Name: "API Portal", Description: "Service API reference", URL: "https://api-docs.example.com", Icon: "Database", BgColor: "bg-violet-100 text-violet-600"},
				},
			},
			{
				ID: "g3", Title: "Management Systems",
				Items: []models.NavResource{
					{ID: "r6", Name: "HR Portal", Description: "Leave, expenses, and reviews", URL: "https://hr.example.com", Icon: "Users", BgColor: "bg-rose-100 text-rose-600"},
					{ID: "r7", Name: "BI Dashboards", Description: "Company metrics and reports", URL: "https://bi.example.com", Icon: "BarChart", BgColor: "bg-amber-100 text-amber-600"},
				},
			},
		},
	}
}
