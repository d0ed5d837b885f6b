package handlers

import (
	"context"
	"net/http"

	"github.com/gartstein/holdings/internal/holdings/controller"
	"github.com/gartstein/holdings/internal/holdings/models"
	"github.com/gartstein/holdings/internal/holdings/navigation"
	"github.com/gartstein/holdings/internal/holdings/payment"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CompanyController is the repository surface the catalog routes call.
type CompanyController interface {
	List() []models.Company
	Saved() []models.Company
	Get(id uuid.UUID) (models.Company, error)
	IsFavorite(id uuid.UUID) bool
	Create(ctx context.Context, draft models.Draft) (models.Company, error)
	Update(ctx context.Context, id uuid.UUID, draft models.Draft) (models.Company, error)
	Delete(ctx context.Context, id uuid.UUID)
	ToggleFavorite(ctx context.Context, id uuid.UUID) (bool, error)
}

// Dispatcher hands a payment intent to the host's handler.
type Dispatcher interface {
	Dispatch(ctx context.Context, intent payment.Intent)
}

// CatalogHandler serves stateless record, plan and intent routes.
type CatalogHandler struct {
	companies CompanyController
	logger    *zap.Logger
}

func NewCatalogHandler(companies CompanyController, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{companies: companies, logger: logger.Named("catalog_handler")}
}

// List handles GET /companies?q=
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	records := controller.Filter(h.companies.List(), r.URL.Query().Get("q"))
	h.respondCards(w, records)
}

// Favorites handles GET /favorites
func (h *CatalogHandler) Favorites(w http.ResponseWriter, _ *http.Request) {
	h.respondCards(w, h.companies.Saved())
}

// Get handles GET /companies/{id}
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondServiceError(w, h.logger, err, nil)
		return
	}
	c, err := h.companies.Get(id)
	if err != nil {
		respondServiceError(w, h.logger, err, nil)
		return
	}
	respondJSON(w, toCard(c, h.companies.IsFavorite(id)), http.StatusOK)
}

// Create handles POST /companies
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req DraftRequest
	if err := decode(r, &req); err != nil {
		respondServiceError(w, h.logger, err, nil)
		return
	}
	draft, err := req.toDraft()
	if err != nil {
		respondServiceError(w, h.logger, err, nil)
		return
	}
	c, err := h.companies.Create(r.Context(), draft)
	if err != nil {
		respondServiceError(w, h.logger, err, nil)
		return
	}
	respondJSON(w, toCard(c, false), http.StatusCreated)
}

// Update handles PUT /companies/{id}
func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondServiceError(w, h.logger, err, nil)
		return
	}
	var req DraftRequest
	if err := decode(r, &req); err != nil {
		respondServiceError(w, h.logger, err, nil)
		return
	}
	draft, err := req.toDraft()
	if err != nil {
		respondServiceError(w, h.logger, err, nil)
		return
	}
	c, err := h.companies.Update(r.Context(), id, draft)
	if err != nil {
		respondServiceError(w, h.logger, err, nil)
		return
	}
	respondJSON(w, toCard(c, h.companies.IsFavorite(id)), http.StatusOK)
}

// Delete handles DELETE /companies/{id}. Unknown ids succeed.
func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondServiceError(w, h.logger, err, nil)
		return
	}
	h.companies.Delete(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}

// ToggleFavorite handles POST /companies/{id}/favorite
func (h *CatalogHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondServiceError(w, h.logger, err, nil)
		return
	}
	favorite, err := h.companies.ToggleFavorite(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, nil)
		return
	}
	respondJSON(w, FavoriteResponse{ID: id, Favorite: favorite}, http.StatusOK)
}

// Plans handles GET /plans
func (h *CatalogHandler) Plans(w http.ResponseWriter, _ *http.Request) {
	plans := models.Plans()
	out := make([]PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, toPlanResponse(p))
	}
	respondJSON(w, out, http.StatusOK)
}

// Services handles GET /services
func (h *CatalogHandler) Services(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, models.CoreServices(), http.StatusOK)
}

// Contact handles GET /contact
func (h *CatalogHandler) Contact(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, models.ContactChannels, http.StatusOK)
}

// PlanIntent handles GET /plans/{key}/intent. It only builds the intent.
func (h *CatalogHandler) PlanIntent(w http.ResponseWriter, r *http.Request) {
	key, err := models.ParsePlanKey(chi.URLParam(r, "key"))
	if err != nil {
		respondServiceError(w, h.logger, err, nil)
		return
	}
	respondJSON(w, payment.NewIntent(key.Plan(), nil), http.StatusOK)
}

// CompanyIntent handles GET /companies/{id}/intent
func (h *CatalogHandler) CompanyIntent(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondServiceError(w, h.logger, err, nil)
		return
	}
	c, err := h.companies.Get(id)
	if err != nil {
		respondServiceError(w, h.logger, err, nil)
		return
	}
	respondJSON(w, payment.NewIntent(c.Plan(), &c), http.StatusOK)
}

func (h *CatalogHandler) respondCards(w http.ResponseWriter, records []models.Company) {
	out := make([]navigation.Card, 0, len(records))
	for _, c := range records {
		out = append(out, toCard(c, h.companies.IsFavorite(c.ID)))
	}
	respondJSON(w, out, http.StatusOK)
}

// ViewHandler exposes the single navigation session.
type ViewHandler struct {
	nav        *navigation.Navigator
	dispatcher Dispatcher
	logger     *zap.Logger
}

func NewViewHandler(nav *navigation.Navigator, dispatcher Dispatcher, logger *zap.Logger) *ViewHandler {
	return &ViewHandler{nav: nav, dispatcher: dispatcher, logger: logger.Named("view_handler")}
}

// State handles GET /view
func (h *ViewHandler) State(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, h.nav.State(), http.StatusOK)
}

// Search handles POST /view/search
func (h *ViewHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := decode(r, &req); err != nil {
		respondServiceError(w, h.logger, err, nil)
		return
	}
	respondJSON(w, h.nav.Search(req.Query), http.StatusOK)
}

// SetTab handles POST /view/tab/{tab}
func (h *ViewHandler) SetTab(w http.ResponseWriter, r *http.Request) {
	tab, err := navigation.ParseTab(chi.URLParam(r, "tab"))
	if err != nil {
		respondServiceError(w, h.logger, err, nil)
		return
	}
	respondJSON(w, h.nav.SetTab(tab), http.StatusOK)
}

func (h *ViewHandler) OpenCreate(w http.ResponseWriter, _ *http.Request) {
	view, err := h.nav.OpenCreate()
	h.respond(w, view, err)
}

func (h *ViewHandler) OpenEdit(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondServiceError(w, h.logger, err, nil)
		return
	}
	view, err := h.nav.OpenEdit(id)
	h.respond(w, view, err)
}

// UpdateDraft handles PATCH /view/draft
func (h *ViewHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	var req DraftPatchRequest
	if err := decode(r, &req); err != nil {
		respondServiceError(w, h.logger, err, nil)
		return
	}
	patch, err := req.toPatch()
	if err != nil {
		respondServiceError(w, h.logger, err, nil)
		return
	}
	view, err := h.nav.UpdateDraft(patch)
	h.respond(w, view, err)
}

// ToggleDraftService handles POST /view/draft/services
func (h *ViewHandler) ToggleDraftService(w http.ResponseWriter, r *http.Request) {
	var req ServiceRequest
	if err := decode(r, &req); err != nil {
		respondServiceError(w, h.logger, err, nil)
		return
	}
	view, err := h.nav.ToggleDraftService(req.Service)
	h.respond(w, view, err)
}

func (h *ViewHandler) ToggleServicesMenu(w http.ResponseWriter, _ *http.Request) {
	view, err := h.nav.ToggleServicesMenu()
	h.respond(w, view, err)
}

// Commit handles POST /view/commit. Validation failures carry the unchanged view.
func (h *ViewHandler) Commit(w http.ResponseWriter, r *http.Request) {
	view, err := h.nav.Commit(r.Context())
	h.respond(w, view, err)
}

func (h *ViewHandler) Cancel(w http.ResponseWriter, _ *http.Request) {
	view, err := h.nav.Cancel()
	h.respond(w, view, err)
}

func (h *ViewHandler) Back(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, h.nav.Back(), http.StatusOK)
}

func (h *ViewHandler) OpenServicesInfo(w http.ResponseWriter, _ *http.Request) {
	view, err := h.nav.OpenServicesInfo()
	h.respond(w, view, err)
}

func (h *ViewHandler) OpenPlans(w http.ResponseWriter, _ *http.Request) {
	view, err := h.nav.OpenPlans()
	h.respond(w, view, err)
}

// PayPlan handles POST /view/pay/plans/{key}
func (h *ViewHandler) PayPlan(w http.ResponseWriter, r *http.Request) {
	key, err := models.ParsePlanKey(chi.URLParam(r, "key"))
	if err != nil {
		respondServiceError(w, h.logger, err, nil)
		return
	}
	view, err := h.nav.PayPlan(key)
	h.respond(w, view, err)
}

// PayCompany handles POST /view/pay/companies/{id}
func (h *ViewHandler) PayCompany(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondServiceError(w, h.logger, err, nil)
		return
	}
	view, err := h.nav.PayCompany(id)
	h.respond(w, view, err)
}

// Pay handles POST /view/pay. The intent is handed off and 202 returned; no
// payment outcome is ever reported.
func (h *ViewHandler) Pay(w http.ResponseWriter, r *http.Request) {
	intent, err := h.nav.PaymentIntent()
	if err != nil {
		view := h.nav.State()
		respondServiceError(w, h.logger, err, &view)
		return
	}
	h.dispatcher.Dispatch(r.Context(), intent)
	respondJSON(w, intent, http.StatusAccepted)
}

// Delete handles DELETE /view/companies/{id}
func (h *ViewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondServiceError(w, h.logger, err, nil)
		return
	}
	respondJSON(w, h.nav.Delete(r.Context(), id), http.StatusOK)
}

// ToggleFavorite handles POST /view/companies/{id}/favorite
func (h *ViewHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondServiceError(w, h.logger, err, nil)
		return
	}
	view, err := h.nav.ToggleFavorite(r.Context(), id)
	h.respond(w, view, err)
}

func (h *ViewHandler) respond(w http.ResponseWriter, view navigation.View, err error) {
	if err != nil {
		respondServiceError(w, h.logger, err, &view)
		return
	}
	respondJSON(w, view, http.StatusOK)
}
