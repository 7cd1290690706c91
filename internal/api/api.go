package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prodhub/workbench/internal/assist"
	"github.com/prodhub/workbench/internal/health"
	"github.com/prodhub/workbench/internal/models"
	"github.com/prodhub/workbench/internal/projection"
	"github.com/prodhub/workbench/internal/session"
	"github.com/prodhub/workbench/internal/store"
	"github.com/prodhub/workbench/internal/timeline"
)

// Server provides the REST API handlers.
type Server struct {
	store   store.Store
	assist  *assist.Client
	session *session.Session

	// inflight tracks ticket ids with an analysis outstanding, so a
	// second analyze call for the same ticket returns without issuing
	// another model request.
	mu       sync.Mutex
	inflight map[string]bool
}

// NewServer creates a new API server.
// The assist client may be nil if no API key is configured.
func NewServer(s store.Store, ac *assist.Client) *Server {
	return &Server{
		store:  s,
		assist: ac,
		session: session.New(session.User{
			ID: "u1", Name: "Alex Chen", Role: "AGENT",
		}),
		inflight: make(map[string]bool),
	}
}

// Router returns an http.Handler for the API routes.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/tickets", s.listTickets)
	mux.HandleFunc("POST /api/v1/tickets", s.createTicket)
	mux.HandleFunc("GET /api/v1/tickets/{id}", s.getTicket)
	mux.HandleFunc("PUT /api/v1/tickets/{id}", s.updateTicket)
	mux.HandleFunc("DELETE /api/v1/tickets/{id}", s.deleteTicket)
	mux.HandleFunc("POST /api/v1/tickets/{id}/analyze", s.analyzeTicket)

	mux.HandleFunc("GET /api/v1/versions", s.listVersions)
	mux.HandleFunc("POST /api/v1/versions", s.createVersion)
	mux.HandleFunc("GET /api/v1/versions/{id}", s.getVersion)
	mux.HandleFunc("PUT /api/v1/versions/{id}", s.updateVersion)
	mux.HandleFunc("DELETE /api/v1/versions/{id}", s.deleteVersion)

	mux.HandleFunc("GET /api/v1/roadmap", s.roadmap)

	mux.HandleFunc("GET /api/v1/documents", s.listDocuments)
	mux.HandleFunc("POST /api/v1/documents", s.createDocument)
	mux.HandleFunc("GET /api/v1/documents/{id}", s.getDocument)
	mux.HandleFunc("PUT /api/v1/documents/{id}", s.updateDocument)
	mux.HandleFunc("DELETE /api/v1/documents/{id}", s.deleteDocument)

	mux.HandleFunc("GET /api/v1/outbound", s.listOutbound)
	mux.HandleFunc("POST /api/v1/outbound", s.createOutbound)
	mux.HandleFunc("GET /api/v1/outbound/{id}", s.getOutbound)
	mux.HandleFunc("DELETE /api/v1/outbound/{id}", s.deleteOutbound)
	mux.HandleFunc("POST /api/v1/outbound/{id}/approve", s.approveOutbound)
	mux.HandleFunc("POST /api/v1/outbound/{id}/reject", s.rejectOutbound)

	mux.HandleFunc("GET /api/v1/products", s.listProducts)
	mux.HandleFunc("POST /api/v1/products", s.createProduct)
	mux.HandleFunc("GET /api/v1/products/{id}", s.getProduct)
	mux.HandleFunc("PUT /api/v1/products/{id}", s.updateProduct)
	mux.HandleFunc("DELETE /api/v1/products/{id}", s.deleteProduct)

	mux.HandleFunc("GET /api/v1/releases", s.listReleases)

	mux.HandleFunc("GET /api/v1/nav", s.listNavGroups)
	mux.HandleFunc("POST /api/v1/nav", s.createNavGroup)
	mux.HandleFunc("GET /api/v1/nav/{id}", s.getNavGroup)
	mux.HandleFunc("PUT /api/v1/nav/{id}", s.updateNavGroup)
	mux.HandleFunc("DELETE /api/v1/nav/{id}", s.deleteNavGroup)
	mux.HandleFunc("PUT /api/v1/nav/{id}/resources", s.upsertNavResource)
	mux.HandleFunc("DELETE /api/v1/nav/{id}/resources/{rid}", s.deleteNavResource)

	mux.HandleFunc("GET /api/v1/dashboard", s.dashboard)

	mux.HandleFunc("GET /api/v1/session", s.getSession)
	mux.HandleFunc("PUT /api/v1/session/view", s.setSessionView)
	mux.HandleFunc("PUT /api/v1/session/select/{id}", s.selectTicket)
	mux.HandleFunc("DELETE /api/v1/session/select", s.clearSelection)

	return corsMiddleware(mux)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// patchString applies a string value from a JSON patch map to the target if the key is present and non-empty.
func patchString(patch map[string]any, key string, target *string) {
	if v, ok := patch[key]; ok {
		if str, ok := v.(string); ok && str != "" {
			*target = str
		}
	}
}

// pageParam reads the 1-based page query param, defaulting to 1.
func pageParam(r *http.Request) int {
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		return p
	}
	return 1
}

// pagedResponse is the envelope list endpoints return when they
// paginate server-side.
type pagedResponse struct {
	Items any             `json:"items"`
	Page  projection.Page `json:"page"`
}

// paginateSlice applies the shared paginator and slices the window out.
func paginateSlice[T any](items []T, page int) ([]T, projection.Page) {
	p := projection.Paginate(len(items), page, projection.PageSize)
	if p.Total == 0 {
		return nil, p
	}
	return items[p.Start:p.End], p
}

// tryAcquireAnalysis registers an analysis flight for the ticket id.
// It returns false when one is already outstanding.
func (s *Server) tryAcquireAnalysis(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[id] {
		return false
	}
	s.inflight[id] = true
	return true
}

func (s *Server) releaseAnalysis(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, id)
}

// --- Tickets ---

func (s *Server) listTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := s.store.ListTickets(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	q := r.URL.Query()
	filtered := projection.FilterTickets(tickets, projection.TicketFilter{
		Query:    q.Get("q"),
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
	})
	items, page := paginateSlice(filtered, pageParam(r))
	writeJSON(w, http.StatusOK, pagedResponse{Items: items, Page: page})
}

func (s *Server) getTicket(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ticket, err := s.store.GetTicket(r.Context(), id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

func (s *Server) createTicket(w http.ResponseWriter, r *http.Request) {
	var t models.Ticket
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := s.store.UpsertTicket(r.Context(), &t); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) updateTicket(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existing, err := s.store.GetTicket(r.Context(), id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	// Selectively merge only keys present in the patch with non-empty values.
	// Empty strings are treated as "not provided" to avoid wiping existing data.
	patchString(patch, "Title", &existing.Title)
	patchString(patch, "Description", &existing.Description)
	patchTicketStatus(patch, existing)
	patchString(patch, "Type", &existing.Type)
	patchString(patch, "CustomerName", &existing.CustomerName)
	patchString(patch, "Assignee", &existing.Assignee)
	patchString(patch, "TestOwner", &existing.TestOwner)
	patchString(patch, "DevOwner", &existing.DevOwner)
	patchString(patch, "TargetVersion", &existing.TargetVersion)
	patchString(patch, "RootCauseCategory", &existing.RootCauseCategory)
	patchString(patch, "IntroductionStage", &existing.IntroductionStage)
	patchString(patch, "Solution", &existing.Solution)
	patchString(patch, "EstimatedResolutionTime", &existing.EstimatedResolutionTime)
	patchString(patch, "ReviewStatus", &existing.ReviewStatus)
	patchString(patch, "AttachmentURL", &existing.AttachmentURL)

	if err := s.store.UpsertTicket(r.Context(), existing); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.session.RefreshSelection(existing)
	writeJSON(w, http.StatusOK, existing)
}

func patchTicketStatus(patch map[string]any, t *models.Ticket) {
	var status, priority string
	patchString(patch, "Status", &status)
	patchString(patch, "Priority", &priority)
	if status != "" {
		t.Status = models.TicketStatus(status)
	}
	if priority != "" {
		t.Priority = models.TicketPriority(priority)
	}
}

func (s *Server) deleteTicket(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteTicket(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.session.ClearSelectionIfDeleted(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) analyzeTicket(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if s.assist == nil {
		writeError(w, http.StatusServiceUnavailable, "assist is not configured")
		return
	}

	if !s.tryAcquireAnalysis(id) {
		writeError(w, http.StatusConflict, "analysis already in progress")
		return
	}
	defer s.releaseAnalysis(id)

	ticket, err := s.store.GetTicket(r.Context(), id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	analysis, err := s.assist.Analyze(r.Context(), ticket)
	if err != nil {
		// Analysis failures are silent to the caller: the ticket comes
		// back unchanged and the failure is only logged.
		slog.Warn("ticket analysis failed", "ticket", id, "error", err)
		writeJSON(w, http.StatusOK, ticket)
		return
	}

	assist.Apply(ticket, analysis)
	if err := s.store.UpsertTicket(r.Context(), ticket); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.session.RefreshSelection(ticket)
	writeJSON(w, http.StatusOK, ticket)
}

// --- Product versions ---

func (s *Server) listVersions(w http.ResponseWriter, r *http.Request) {
	versions, err := s.store.ListVersions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	q := r.URL.Query()
	showArchived := q.Get("archived") == "true"
	filtered := projection.FilterVersions(versions, q.Get("q"), showArchived)
	items, page := paginateSlice(filtered, pageParam(r))
	writeJSON(w, http.StatusOK, pagedResponse{Items: items, Page: page})
}

func (s *Server) getVersion(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	version, err := s.store.GetVersion(r.Context(), id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, version)
}

func (s *Server) createVersion(w http.ResponseWriter, r *http.Request) {
	var v models.ProductVersion
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := s.store.UpsertVersion(r.Context(), &v); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (s *Server) updateVersion(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var v models.ProductVersion
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	v.ID = id
	if err := s.store.UpsertVersion(r.Context(), &v); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) deleteVersion(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteVersion(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// roadmapItem is one visible version bar.
type roadmapItem struct {
	Version *models.ProductVersion `json:"version"`
	Bar     timeline.Bar           `json:"bar"`
}

func (s *Server) roadmap(w http.ResponseWriter, r *http.Request) {
	versions, err := s.store.ListVersions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	window := timeline.DefaultWindow(time.Now())
	var items []roadmapItem
	for _, v := range versions {
		if v.IsArchived {
			continue
		}
		bar, ok := timeline.BarPosition(window, v.StartDate, v.EndDate)
		if !ok {
			continue
		}
		items = append(items, roadmapItem{Version: v, Bar: bar})
	}

	months := window.Months()
	labels := make([]string, len(months))
	for i, m := range months {
		labels[i] = m.Format("2006-01")
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"start":  window.Start.Format(timeline.DateFormat),
		"end":    window.End.Format(timeline.DateFormat),
		"months": labels,
		"items":  items,
	})
}

// --- Documents ---

func (s *Server) listDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.ListDocuments(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	q := r.URL.Query()
	filtered := projection.FilterDocuments(docs, q.Get("q"), q.Get("version"), q.Get("category"))
	items, page := paginateSlice(filtered, pageParam(r))
	writeJSON(w, http.StatusOK, pagedResponse{Items: items, Page: page})
}

func (s *Server) getDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	doc, err := s.store.GetDocument(r.Context(), id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) createDocument(w http.ResponseWriter, r *http.Request) {
	var d models.Document
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := s.store.UpsertDocument(r.Context(), &d); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) updateDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var d models.Document
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	d.ID = id
	if err := s.store.UpsertDocument(r.Context(), &d); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) deleteDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteDocument(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Outbound requests ---

func (s *Server) listOutbound(w http.ResponseWriter, r *http.Request) {
	reqs, err := s.store.ListOutbound(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	q := r.URL.Query()
	filtered := projection.FilterOutbound(reqs, q.Get("q"), q.Get("status"))
	items, page := paginateSlice(filtered, pageParam(r))
	writeJSON(w, http.StatusOK, pagedResponse{Items: items, Page: page})
}

func (s *Server) getOutbound(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	req, err := s.store.GetOutbound(r.Context(), id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (s *Server) createOutbound(w http.ResponseWriter, r *http.Request) {
	var req models.OutboundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.ApplicationDate == "" {
		req.ApplicationDate = time.Now().Format(timeline.DateFormat)
	}

	// Cache display names at write time. They survive later edits or
	// deletion of the product and version they point at.
	if req.ProductName == "" {
		if p, err := s.store.GetProduct(r.Context(), req.ProductID); err == nil {
			req.ProductName = p.Name
		}
	}
	if req.Version == "" {
		if v, err := s.store.GetVersion(r.Context(), req.VersionID); err == nil {
			req.Version = v.Version
		}
	}

	if err := s.store.UpsertOutbound(r.Context(), &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (s *Server) deleteOutbound(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteOutbound(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) approveOutbound(w http.ResponseWriter, r *http.Request) {
	s.decideOutbound(w, r, models.OutboundStatusApproved)
}

func (s *Server) rejectOutbound(w http.ResponseWriter, r *http.Request) {
	s.decideOutbound(w, r, models.OutboundStatusRejected)
}

func (s *Server) decideOutbound(w http.ResponseWriter, r *http.Request, status models.OutboundStatus) {
	id := r.PathValue("id")
	req, err := s.store.GetOutbound(r.Context(), id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var body struct {
		Operator string `json:"operator"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	req.Status = status
	if body.Operator != "" {
		req.Operator = body.Operator
	}
	req.OperationTime = time.Now().Format(timeline.DateFormat)

	if err := s.store.UpsertOutbound(r.Context(), req); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// --- Products ---

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.store.ListProducts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	product, err := s.store.GetProduct(r.Context(), id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var p models.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := s.store.UpsertProduct(r.Context(), &p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var p models.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	p.ID = id
	if err := s.store.UpsertProduct(r.Context(), &p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteProduct(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Releases ---

func (s *Server) listReleases(w http.ResponseWriter, r *http.Request) {
	releases, err := s.store.ListReleases(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, releases)
}

// --- Navigation ---

func (s *Server) listNavGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.store.ListNavGroups(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	groups = projection.SearchNavGroups(groups, r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) getNavGroup(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	group, err := s.store.GetNavGroup(r.Context(), id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (s *Server) createNavGroup(w http.ResponseWriter, r *http.Request) {
	var g models.NavGroup
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := s.store.UpsertNavGroup(r.Context(), &g); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

func (s *Server) updateNavGroup(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var g models.NavGroup
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	g.ID = id
	if err := s.store.UpsertNavGroup(r.Context(), &g); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) deleteNavGroup(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteNavGroup(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) upsertNavResource(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")
	var res models.NavResource
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := s.store.UpsertNavResource(r.Context(), groupID, &res); err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) deleteNavResource(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")
	resourceID := r.PathValue("rid")
	if err := s.store.DeleteNavResource(r.Context(), groupID, resourceID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Dashboard ---

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tickets, err := s.store.ListTickets(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	versions, err := s.store.ListVersions(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	docs, err := s.store.ListDocuments(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	outbound, err := s.store.ListOutbound(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	summary := health.Summarize(health.Input{
		Tickets:   tickets,
		Versions:  versions,
		Documents: docs,
		Outbound:  outbound,
		Products:  products,
	}, timeline.DefaultWindow(time.Now()))

	writeJSON(w, http.StatusOK, summary)
}

// --- Session ---

type sessionResponse struct {
	User     session.User
	View     session.ViewState
	Selected *models.Ticket
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionResponse{
		User:     s.session.User(),
		View:     s.session.View(),
		Selected: s.session.Selected(),
	})
}

func (s *Server) setSessionView(w http.ResponseWriter, r *http.Request) {
	var body struct {
		View session.ViewState `json:"view"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.View == "" {
		writeError(w, http.StatusBadRequest, "view is required")
		return
	}
	s.session.SetView(body.View)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) selectTicket(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ticket, err := s.store.GetTicket(r.Context(), id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.session.Select(ticket)
	writeJSON(w, http.StatusOK, ticket)
}

func (s *Server) clearSelection(w http.ResponseWriter, r *http.Request) {
	s.session.Select(nil)
	w.WriteHeader(http.StatusNoContent)
}
