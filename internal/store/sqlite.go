package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/prodhub/workbench/internal/models"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore implements Store using modernc.org/sqlite (pure Go, no CGO).
// A position column on every table preserves the same insertion order
// the memory backend keeps naturally: updates keep their position,
// inserts append (or prepend, for outbound requests).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Ensure parent directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite only supports one concurrent writer. Limiting to a single
	// connection serializes all DB access through Go's connection pool,
	// preventing "database is locked" errors from concurrent requests.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// boolToInt converts a bool to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// marshalJSON encodes a value for a JSON text column. A nil slice
// encodes as [] so the column default and round-trips stay consistent.
func marshalJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// Migrate runs all embedded SQL migration files in order.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		filename TEXT PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT (datetime('now'))
	)`)
	if err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()

		var count int
		err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations WHERE filename = ?", name).Scan(&count)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", name, err)
		}
		if count > 0 {
			continue
		}

		data, err := migrationsFS.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}

		if _, err := s.db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}

		if _, err := s.db.ExecContext(ctx, "INSERT INTO schema_migrations (filename) VALUES (?)", name); err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// nextPosition computes the position for a new row: one past the
// current maximum, or one before the minimum when prepend is set.
func (s *SQLiteStore) nextPosition(ctx context.Context, table string, prepend bool) (int64, error) {
	agg := "MAX"
	delta := int64(1)
	if prepend {
		agg = "MIN"
		delta = -1
	}
	var pos sql.NullInt64
	err := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT %s(position) FROM %s", agg, table)).Scan(&pos)
	if err != nil {
		return 0, fmt.Errorf("next position for %s: %w", table, err)
	}
	if !pos.Valid {
		return 0, nil
	}
	return pos.Int64 + delta, nil
}

func (s *SQLiteStore) exists(ctx context.Context, table, id string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE id = ?", table), id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check %s exists: %w", table, err)
	}
	return count > 0, nil
}

// --- Tickets ---

const ticketColumns = `id, title, description, status, priority, type, customer_name,
	reporter, assignee, test_owner, dev_owner, product_id, product_version,
	target_version, root_cause_category, introduction_stage, solution,
	estimated_resolution_time, review_status, reporting_month, attachment_url,
	tags, ai_analysis, created_at, updated_at`

func scanTicket(row interface{ Scan(...any) error }) (*models.Ticket, error) {
	var t models.Ticket
	var tags string
	var analysis sql.NullString
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.Type,
		&t.CustomerName, &t.Reporter, &t.Assignee, &t.TestOwner, &t.DevOwner,
		&t.ProductID, &t.ProductVersion, &t.TargetVersion, &t.RootCauseCategory,
		&t.IntroductionStage, &t.Solution, &t.EstimatedResolutionTime, &t.ReviewStatus,
		&t.ReportingMonth, &t.AttachmentURL, &tags, &analysis, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &t.Tags); err != nil {
			return nil, fmt.Errorf("decode ticket tags: %w", err)
		}
	}
	if analysis.Valid && analysis.String != "" {
		t.AIAnalysis = &models.Analysis{}
		if err := json.Unmarshal([]byte(analysis.String), t.AIAnalysis); err != nil {
			return nil, fmt.Errorf("decode ticket analysis: %w", err)
		}
	}
	return &t, nil
}

func (s *SQLiteStore) ListTickets(ctx context.Context) ([]*models.Ticket, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+ticketColumns+" FROM tickets ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	var out []*models.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetTicket(ctx context.Context, id string) (*models.Ticket, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+ticketColumns+" FROM tickets WHERE id = ?", id)
	t, err := scanTicket(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("ticket not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return t, nil
}

func (s *SQLiteStore) UpsertTicket(ctx context.Context, t *models.Ticket) error {
	if err := validateTicket(t); err != nil {
		return err
	}
	now := time.Now().UTC()
	if t.ID == "" {
		t.ID = newULID()
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	var analysis any
	if t.AIAnalysis != nil {
		analysis = marshalJSON(t.AIAnalysis)
	}

	found, err := s.exists(ctx, "tickets", t.ID)
	if err != nil {
		return err
	}
	if found {
		_, err := s.db.ExecContext(ctx, `UPDATE tickets SET title = ?, description = ?,
			status = ?, priority = ?, type = ?, customer_name = ?, reporter = ?,
			assignee = ?, test_owner = ?, dev_owner = ?, product_id = ?,
			product_version = ?, target_version = ?, root_cause_category = ?,
			introduction_stage = ?, solution = ?, estimated_resolution_time = ?,
			review_status = ?, reporting_month = ?, attachment_url = ?, tags = ?,
			ai_analysis = ?, updated_at = ? WHERE id = ?`,
			t.Title, t.Description, t.Status, t.Priority, t.Type, t.CustomerName,
			t.Reporter, t.Assignee, t.TestOwner, t.DevOwner, t.ProductID,
			t.ProductVersion, t.TargetVersion, t.RootCauseCategory, t.IntroductionStage,
			t.Solution, t.EstimatedResolutionTime, t.ReviewStatus, t.ReportingMonth,
			t.AttachmentURL, marshalJSON(t.Tags), analysis, t.UpdatedAt, t.ID)
		if err != nil {
			return fmt.Errorf("update ticket: %w", err)
		}
		return nil
	}

	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	pos, err := s.nextPosition(ctx, "tickets", false)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO tickets (`+ticketColumns+`, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, t.Status, t.Priority, t.Type, t.CustomerName,
		t.Reporter, t.Assignee, t.TestOwner, t.DevOwner, t.ProductID, t.ProductVersion,
		t.TargetVersion, t.RootCauseCategory, t.IntroductionStage, t.Solution,
		t.EstimatedResolutionTime, t.ReviewStatus, t.ReportingMonth, t.AttachmentURL,
		marshalJSON(t.Tags), analysis, t.CreatedAt, t.UpdatedAt, pos)
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteTicket(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM tickets WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	return nil
}

// --- Product versions ---

const versionColumns = `id, product_name, version, name, type, features, dependencies,
	status, progress, customers, env_requirements, start_date, end_date,
	planned_uat_date, actual_uat_date, delivery_date, product_manager,
	version_admin, uat_deployer, uat_tester, notify_user, uat_finish_user,
	is_ready_for_delivery, is_archived, is_delayed, related_release_version,
	related_outbound_request, exception_note`

func scanVersion(row interface{ Scan(...any) error }) (*models.ProductVersion, error) {
	var v models.ProductVersion
	var customers string
	var ready, archived, delayed int
	err := row.Scan(&v.ID, &v.ProductName, &v.Version, &v.Name, &v.Type, &v.Features,
		&v.Dependencies, &v.Status, &v.Progress, &customers, &v.EnvRequirements,
		&v.StartDate, &v.EndDate, &v.PlannedUATDate, &v.ActualUATDate, &v.DeliveryDate,
		&v.ProductManager, &v.VersionAdmin, &v.UATDeployer, &v.UATTester, &v.NotifyUser,
		&v.UATFinishUser, &ready, &archived, &delayed, &v.RelatedReleaseVersion,
		&v.RelatedOutboundRequest, &v.ExceptionNote)
	if err != nil {
		return nil, err
	}
	if customers != "" {
		if err := json.Unmarshal([]byte(customers), &v.Customers); err != nil {
			return nil, fmt.Errorf("decode version customers: %w", err)
		}
	}
	v.IsReadyForDelivery = ready != 0
	v.IsArchived = archived != 0
	v.IsDelayed = delayed != 0
	return &v, nil
}

func (s *SQLiteStore) ListVersions(ctx context.Context) ([]*models.ProductVersion, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+versionColumns+" FROM versions ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	var out []*models.ProductVersion
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetVersion(ctx context.Context, id string) (*models.ProductVersion, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+versionColumns+" FROM versions WHERE id = ?", id)
	v, err := scanVersion(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("version not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get version: %w", err)
	}
	return v, nil
}

func (s *SQLiteStore) UpsertVersion(ctx context.Context, v *models.ProductVersion) error {
	if err := validateVersion(v); err != nil {
		return err
	}
	if v.ID == "" {
		v.ID = newULID()
	}

	found, err := s.exists(ctx, "versions", v.ID)
	if err != nil {
		return err
	}
	if found {
		_, err := s.db.ExecContext(ctx, `UPDATE versions SET product_name = ?, version = ?,
			name = ?, type = ?, features = ?, dependencies = ?, status = ?, progress = ?,
			customers = ?, env_requirements = ?, start_date = ?, end_date = ?,
			planned_uat_date = ?, actual_uat_date = ?, delivery_date = ?,
			product_manager = ?, version_admin = ?, uat_deployer = ?, uat_tester = ?,
			notify_user = ?, uat_finish_user = ?, is_ready_for_delivery = ?,
			is_archived = ?, is_delayed = ?, related_release_version = ?,
			related_outbound_request = ?, exception_note = ? WHERE id = ?`,
			v.ProductName, v.Version, v.Name, v.Type, v.Features, v.Dependencies,
			v.Status, v.Progress, marshalJSON(v.Customers), v.EnvRequirements,
			v.StartDate, v.EndDate, v.PlannedUATDate, v.ActualUATDate, v.DeliveryDate,
			v.ProductManager, v.VersionAdmin, v.UATDeployer, v.UATTester, v.NotifyUser,
			v.UATFinishUser, boolToInt(v.IsReadyForDelivery), boolToInt(v.IsArchived),
			boolToInt(v.IsDelayed), v.RelatedReleaseVersion, v.RelatedOutboundRequest,
			v.ExceptionNote, v.ID)
		if err != nil {
			return fmt.Errorf("update version: %w", err)
		}
		return nil
	}

	pos, err := s.nextPosition(ctx, "versions", false)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO versions (`+versionColumns+`, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.ProductName, v.Version, v.Name, v.Type, v.Features, v.Dependencies,
		v.Status, v.Progress, marshalJSON(v.Customers), v.EnvRequirements,
		v.StartDate, v.EndDate, v.PlannedUATDate, v.ActualUATDate, v.DeliveryDate,
		v.ProductManager, v.VersionAdmin, v.UATDeployer, v.UATTester, v.NotifyUser,
		v.UATFinishUser, boolToInt(v.IsReadyForDelivery), boolToInt(v.IsArchived),
		boolToInt(v.IsDelayed), v.RelatedReleaseVersion, v.RelatedOutboundRequest,
		v.ExceptionNote, pos)
	if err != nil {
		return fmt.Errorf("insert version: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteVersion(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM versions WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete version: %w", err)
	}
	return nil
}

// --- Documents ---

const documentColumns = `id, title, category, version_id, url, author, updated_at`

func scanDocument(row interface{ Scan(...any) error }) (*models.Document, error) {
	var d models.Document
	err := row.Scan(&d.ID, &d.Title, &d.Category, &d.VersionID, &d.URL, &d.Author, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *SQLiteStore) ListDocuments(ctx context.Context) ([]*models.Document, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+documentColumns+" FROM documents ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []*models.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+documentColumns+" FROM documents WHERE id = ?", id)
	d, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("document not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return d, nil
}

func (s *SQLiteStore) UpsertDocument(ctx context.Context, d *models.Document) error {
	if err := validateDocument(d); err != nil {
		return err
	}
	if d.ID == "" {
		d.ID = newULID()
	}

	found, err := s.exists(ctx, "documents", d.ID)
	if err != nil {
		return err
	}
	if found {
		_, err := s.db.ExecContext(ctx, `UPDATE documents SET title = ?, category = ?,
			version_id = ?, url = ?, author = ?, updated_at = ? WHERE id = ?`,
			d.Title, d.Category, d.VersionID, d.URL, d.Author, d.UpdatedAt, d.ID)
		if err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		return nil
	}

	pos, err := s.nextPosition(ctx, "documents", false)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO documents (`+documentColumns+`, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Title, d.Category, d.VersionID, d.URL, d.Author, d.UpdatedAt, pos)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteDocument(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// --- Outbound requests ---

const outboundColumns = `id, application_date, product_id, product_name, version_id,
	version, applicant, project_side, requirements, artifact_url, document_url,
	status, operator, operation_time`

func scanOutbound(row interface{ Scan(...any) error }) (*models.OutboundRequest, error) {
	var r models.OutboundRequest
	err := row.Scan(&r.ID, &r.ApplicationDate, &r.ProductID, &r.ProductName,
		&r.VersionID, &r.Version, &r.Applicant, &r.ProjectSide, &r.Requirements,
		&r.ArtifactURL, &r.DocumentURL, &r.Status, &r.Operator, &r.OperationTime)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *SQLiteStore) ListOutbound(ctx context.Context) ([]*models.OutboundRequest, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+outboundColumns+" FROM outbound_requests ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("list outbound requests: %w", err)
	}
	defer rows.Close()

	var out []*models.OutboundRequest
	for rows.Next() {
		r, err := scanOutbound(rows)
		if err != nil {
			return nil, fmt.Errorf("scan outbound request: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetOutbound(ctx context.Context, id string) (*models.OutboundRequest, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+outboundColumns+" FROM outbound_requests WHERE id = ?", id)
	r, err := scanOutbound(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("outbound request not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get outbound request: %w", err)
	}
	return r, nil
}

func (s *SQLiteStore) UpsertOutbound(ctx context.Context, r *models.OutboundRequest) error {
	if err := validateOutbound(r); err != nil {
		return err
	}
	if r.ID == "" {
		r.ID = newULID()
	}

	found, err := s.exists(ctx, "outbound_requests", r.ID)
	if err != nil {
		return err
	}
	if found {
		_, err := s.db.ExecContext(ctx, `UPDATE outbound_requests SET application_date = ?,
			product_id = ?, product_name = ?, version_id = ?, version = ?, applicant = ?,
			project_side = ?, requirements = ?, artifact_url = ?, document_url = ?,
			status = ?, operator = ?, operation_time = ? WHERE id = ?`,
			r.ApplicationDate, r.ProductID, r.ProductName, r.VersionID, r.Version,
			r.Applicant, r.ProjectSide, r.Requirements, r.ArtifactURL, r.DocumentURL,
			r.Status, r.Operator, r.OperationTime, r.ID)
		if err != nil {
			return fmt.Errorf("update outbound request: %w", err)
		}
		return nil
	}

	// New requests go to the front: the list displays newest first.
	pos, err := s.nextPosition(ctx, "outbound_requests", true)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO outbound_requests (`+outboundColumns+`, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.ApplicationDate, r.ProductID, r.ProductName, r.VersionID, r.Version,
		r.Applicant, r.ProjectSide, r.Requirements, r.ArtifactURL, r.DocumentURL,
		r.Status, r.Operator, r.OperationTime, pos)
	if err != nil {
		return fmt.Errorf("insert outbound request: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteOutbound(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM outbound_requests WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete outbound request: %w", err)
	}
	return nil
}

// --- Products ---

const productColumns = `id, name, description, owner, health, active_tickets, icon`

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Owner, &p.Health, &p.ActiveTickets, &p.Icon)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *SQLiteStore) ListProducts(ctx context.Context) ([]*models.Product, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+productColumns+" FROM products ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = ?", id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (s *SQLiteStore) UpsertProduct(ctx context.Context, p *models.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = newULID()
	}

	found, err := s.exists(ctx, "products", p.ID)
	if err != nil {
		return err
	}
	if found {
		_, err := s.db.ExecContext(ctx, `UPDATE products SET name = ?, description = ?,
			owner = ?, health = ?, active_tickets = ?, icon = ? WHERE id = ?`,
			p.Name, p.Description, p.Owner, p.Health, p.ActiveTickets, p.Icon, p.ID)
		if err != nil {
			return fmt.Errorf("update product: %w", err)
		}
		return nil
	}

	pos, err := s.nextPosition(ctx, "products", false)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO products (`+productColumns+`, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Owner, p.Health, p.ActiveTickets, p.Icon, pos)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteProduct(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// --- Releases ---

func (s *SQLiteStore) ListReleases(ctx context.Context) ([]*models.Release, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, version, date, type, title, description, items FROM releases ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("list releases: %w", err)
	}
	defer rows.Close()

	var out []*models.Release
	for rows.Next() {
		var rel models.Release
		var items string
		if err := rows.Scan(&rel.ID, &rel.Version, &rel.Date, &rel.Type, &rel.Title, &rel.Description, &items); err != nil {
			return nil, fmt.Errorf("scan release: %w", err)
		}
		if items != "" {
			if err := json.Unmarshal([]byte(items), &rel.Items); err != nil {
				return nil, fmt.Errorf("decode release items: %w", err)
			}
		}
		out = append(out, &rel)
	}
	return out, rows.Err()
}

// --- Navigation groups ---

// Nav resources live inside their group as a JSON column, matching the
// nested shape the rest of the system works with.

func scanNavGroup(row interface{ Scan(...any) error }) (*models.NavGroup, error) {
	var g models.NavGroup
	var items string
	if err := row.Scan(&g.ID, &g.Title, &items); err != nil {
		return nil, err
	}
	if items != "" {
		if err := json.Unmarshal([]byte(items), &g.Items); err != nil {
			return nil, fmt.Errorf("decode nav group items: %w", err)
		}
	}
	return &g, nil
}

func (s *SQLiteStore) ListNavGroups(ctx context.Context) ([]*models.NavGroup, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, title, items FROM nav_groups ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("list nav groups: %w", err)
	}
	defer rows.Close()

	var out []*models.NavGroup
	for rows.Next() {
		g, err := scanNavGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan nav group: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetNavGroup(ctx context.Context, id string) (*models.NavGroup, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, title, items FROM nav_groups WHERE id = ?", id)
	g, err := scanNavGroup(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("nav group not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get nav group: %w", err)
	}
	return g, nil
}

func (s *SQLiteStore) UpsertNavGroup(ctx context.Context, g *models.NavGroup) error {
	if err := validateNavGroup(g); err != nil {
		return err
	}
	if g.ID == "" {
		g.ID = newULID()
	}
	if g.Items == nil {
		g.Items = []models.NavResource{}
	}

	found, err := s.exists(ctx, "nav_groups", g.ID)
	if err != nil {
		return err
	}
	if found {
		_, err := s.db.ExecContext(ctx, "UPDATE nav_groups SET title = ?, items = ? WHERE id = ?",
			g.Title, marshalJSON(g.Items), g.ID)
		if err != nil {
			return fmt.Errorf("update nav group: %w", err)
		}
		return nil
	}

	pos, err := s.nextPosition(ctx, "nav_groups", false)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, "INSERT INTO nav_groups (id, title, items, position) VALUES (?, ?, ?, ?)",
		g.ID, g.Title, marshalJSON(g.Items), pos)
	if err != nil {
		return fmt.Errorf("insert nav group: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteNavGroup(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM nav_groups WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete nav group: %w", err)
	}
	return nil
}

func (s *SQLiteStore) UpsertNavResource(ctx context.Context, groupID string, r *models.NavResource) error {
	if err := validateNavResource(r); err != nil {
		return err
	}
	g, err := s.GetNavGroup(ctx, groupID)
	if err != nil {
		return fmt.Errorf("nav group not found: %s", groupID)
	}
	if r.ID == "" {
		r.ID = newULID()
	}
	replaced := false
	for i, item := range g.Items {
		if item.ID == r.ID {
			g.Items[i] = *r
			replaced = true
			break
		}
	}
	if !replaced {
		g.Items = append(g.Items, *r)
	}
	_, err = s.db.ExecContext(ctx, "UPDATE nav_groups SET items = ? WHERE id = ?",
		marshalJSON(g.Items), groupID)
	if err != nil {
		return fmt.Errorf("update nav group items: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteNavResource(ctx context.Context, groupID, resourceID string) error {
	g, err := s.GetNavGroup(ctx, groupID)
	if err != nil {
		return nil
	}
	kept := g.Items[:0]
	for _, item := range g.Items {
		if item.ID != resourceID {
			kept = append(kept, item)
		}
	}
	_, err = s.db.ExecContext(ctx, "UPDATE nav_groups SET items = ? WHERE id = ?",
		marshalJSON(kept), groupID)
	if err != nil {
		return fmt.Errorf("update nav group items: %w", err)
	}
	return nil
}

// SeedIfEmpty loads the seed collections into an empty database. A
// database that already has products keeps its data untouched.
func (s *SQLiteStore) SeedIfEmpty(ctx context.Context, seed *Seed) error {
	if seed == nil {
		return nil
	}
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return fmt.Errorf("check seed state: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, p := range seed.Products {
		if err := s.UpsertProduct(ctx, p); err != nil {
			return fmt.Errorf("seed product: %w", err)
		}
	}
	for _, t := range seed.Tickets {
		if err := s.UpsertTicket(ctx, t); err != nil {
			return fmt.Errorf("seed ticket: %w", err)
		}
	}
	for _, v := range seed.Versions {
		if err := s.UpsertVersion(ctx, v); err != nil {
			return fmt.Errorf("seed version: %w", err)
		}
	}
	for _, d := range seed.Documents {
		if err := s.UpsertDocument(ctx, d); err != nil {
			return fmt.Errorf("seed document: %w", err)
		}
	}
	// Seed in oldest-first order so prepend leaves the newest in front.
	for i := len(seed.Outbound) - 1; i >= 0; i-- {
		if err := s.UpsertOutbound(ctx, seed.Outbound[i]); err != nil {
			return fmt.Errorf("seed outbound request: %w", err)
		}
	}
	for _, g := range seed.NavGroups {
		if err := s.UpsertNavGroup(ctx, g); err != nil {
			return fmt.Errorf("seed nav group: %w", err)
		}
	}
	for i, rel := range seed.Releases {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO releases (id, version, date, type, title, description, items, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			rel.ID, rel.Version, rel.Date, rel.Type, rel.Title, rel.Description,
			marshalJSON(rel.Items), i)
		if err != nil {
			return fmt.Errorf("seed release: %w", err)
		}
	}
	return nil
}
