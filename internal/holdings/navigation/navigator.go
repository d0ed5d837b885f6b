// Package navigation tracks which screen a session is on and what it is editing
// or paying for. Every action is a synchronous transition; rendering is left to
// whoever reads the View.
package navigation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gartstein/holdings/internal/holdings/controller"
	e "github.com/gartstein/holdings/internal/holdings/errors"
	"github.com/gartstein/holdings/internal/holdings/models"
	"github.com/gartstein/holdings/internal/holdings/payment"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Screen string

const (
	ScreenBrowsing Screen = "browsing"
	ScreenCreating Screen = "creating"
	ScreenEditing  Screen = "editing"
	ScreenServices Screen = "services"
	ScreenPlans    Screen = "plans"
	ScreenPaying   Screen = "paying"
)

type Tab string

const (
	TabBrowse Tab = "browse"
	TabSaved  Tab = "saved"
)

func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case TabBrowse, TabSaved:
		return Tab(s), nil
	}
	return "", fmt.Errorf("%w: unknown tab %q", e.ErrInvalidInput, s)
}

// Records is the slice of the repository the navigator drives.
type Records interface {
	List() []models.Company
	Saved() []models.Company
	Get(id uuid.UUID) (models.Company, error)
	Exists(id uuid.UUID) bool
	IsFavorite(id uuid.UUID) bool
	Create(ctx context.Context, draft models.Draft) (models.Company, error)
	Update(ctx context.Context, id uuid.UUID, draft models.Draft) (models.Company, error)
	Delete(ctx context.Context, id uuid.UUID)
	ToggleFavorite(ctx context.Context, id uuid.UUID) (bool, error)
}

// Card is one record as shown on the browsing screen.
type Card struct {
	models.Company
	Favorite bool        `json:"favorite"`
	Plan     models.Plan `json:"plan"`
}

// Payment describes the PayingFor screen.
type Payment struct {
	Plan    models.Plan     `json:"plan"`
	Company *models.Company `json:"company,omitempty"`
	Intent  payment.Intent  `json:"intent"`
	Contact models.Contact  `json:"contact"`
}

// View is a snapshot of the session. It shares nothing with the navigator.
type View struct {
	Screen    Screen            `json:"screen"`
	Tab       Tab               `json:"tab"`
	Query     string            `json:"query"`
	EditingID *uuid.UUID        `json:"editingId,omitempty"`
	Draft     *models.Draft     `json:"draft,omitempty"`
	MenuOpen  bool              `json:"servicesMenuOpen"`
	Errors    map[string]string `json:"errors,omitempty"`
	Cards     []Card            `json:"cards,omitempty"`
	Services  []string          `json:"services,omitempty"`
	Plans     []models.Plan     `json:"plans,omitempty"`
	Payment   *Payment          `json:"payment,omitempty"`
}

// Navigator owns one session's view state. All methods are safe for concurrent
// use and run one at a time.
type Navigator struct {
	mu      sync.Mutex
	records Records
	logger  *zap.Logger

	screen   Screen
	tab      Tab
	query    string
	editing  uuid.UUID
	draft    models.Draft
	menuOpen bool
	errs     map[string]string
	plan     models.PlanKey
	company  *uuid.UUID
}

func NewNavigator(records Records, logger *zap.Logger) *Navigator {
	return &Navigator{
		records: records,
		logger:  logger.Named("navigator"),
		screen:  ScreenBrowsing,
		tab:     TabBrowse,
		draft:   models.NewDraft(),
	}
}

// State returns the current view, first resolving references to records that
// no longer exist.
func (n *Navigator) State() View {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.resolve()
	return n.view()
}

// Cards lists what the browsing screen shows for the active tab. The search
// query applies to the browse tab only.
func (n *Navigator) Cards() []Card {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.cards()
}

func (n *Navigator) Search(query string) View {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.query = query
	n.resolve()
	return n.view()
}

func (n *Navigator) SetTab(tab Tab) View {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.tab = tab
	n.resolve()
	return n.view()
}

func (n *Navigator) OpenCreate() (View, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.require(ScreenBrowsing); err != nil {
		return n.view(), err
	}
	n.draft = models.NewDraft()
	n.transition(ScreenCreating)
	return n.view(), nil
}

// OpenEdit seeds the draft from the record. An unknown id leaves the session browsing.
func (n *Navigator) OpenEdit(id uuid.UUID) (View, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.require(ScreenBrowsing); err != nil {
		return n.view(), err
	}
	record, err := n.records.Get(id)
	if err != nil {
		n.logger.Debug("Edit target missing",
			zap.String("record_id", id.String()),
			zap.Error(fmt.Errorf("%w: %w", e.ErrStaleReference, err)),
		)
		n.reset()
		return n.view(), nil
	}
	n.editing = id
	n.draft = models.DraftFrom(record)
	n.transition(ScreenEditing)
	return n.view(), nil
}

func (n *Navigator) UpdateDraft(patch models.DraftPatch) (View, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.require(ScreenCreating, ScreenEditing); err != nil {
		return n.view(), err
	}
	n.draft = n.draft.Apply(patch)
	return n.view(), nil
}

func (n *Navigator) ToggleDraftService(service string) (View, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.require(ScreenCreating, ScreenEditing); err != nil {
		return n.view(), err
	}
	n.draft = n.draft.ToggleService(service)
	return n.view(), nil
}

func (n *Navigator) ToggleServicesMenu() (View, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.require(ScreenCreating, ScreenEditing); err != nil {
		return n.view(), err
	}
	n.menuOpen = !n.menuOpen
	return n.view(), nil
}

// Commit creates or updates from the draft. A validation failure keeps the
// screen and the draft and is returned alongside the view.
func (n *Navigator) Commit(ctx context.Context) (View, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.resolve() {
		return n.view(), nil
	}
	if err := n.require(ScreenCreating, ScreenEditing); err != nil {
		return n.view(), err
	}

	var err error
	if n.screen == ScreenCreating {
		_, err = n.records.Create(ctx, n.draft)
	} else {
		_, err = n.records.Update(ctx, n.editing, n.draft)
	}

	var verr *e.ValidationError
	switch {
	case err == nil:
		n.reset()
		return n.view(), nil
	case errors.As(err, &verr):
		n.errs = verr.Fields
		return n.view(), err
	case errors.Is(err, e.ErrNotFound):
		// deleted elsewhere while the edit was open
		n.reset()
		return n.view(), nil
	default:
		return n.view(), err
	}
}

// Cancel discards the draft and returns to browsing.
func (n *Navigator) Cancel() (View, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.resolve() {
		return n.view(), nil
	}
	if err := n.require(ScreenCreating, ScreenEditing); err != nil {
		return n.view(), err
	}
	n.reset()
	return n.view(), nil
}

func (n *Navigator) OpenServicesInfo() (View, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.require(ScreenBrowsing); err != nil {
		return n.view(), err
	}
	n.transition(ScreenServices)
	return n.view(), nil
}

func (n *Navigator) OpenPlans() (View, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.require(ScreenBrowsing); err != nil {
		return n.view(), err
	}
	n.transition(ScreenPlans)
	return n.view(), nil
}

// PayPlan starts paying for a catalog plan with no company attached.
func (n *Navigator) PayPlan(key models.PlanKey) (View, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !key.Valid() {
		return n.view(), fmt.Errorf("%w: %q", e.ErrInvalidPlan, key)
	}
	if err := n.require(ScreenPlans); err != nil {
		return n.view(), err
	}
	n.plan = key
	n.company = nil
	n.transition(ScreenPaying)
	return n.view(), nil
}

// PayCompany starts paying for the record's own plan. An unknown id leaves the
// session browsing.
func (n *Navigator) PayCompany(id uuid.UUID) (View, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.require(ScreenBrowsing); err != nil {
		return n.view(), err
	}
	record, err := n.records.Get(id)
	if err != nil {
		n.logger.Debug("Payment target missing",
			zap.String("record_id", id.String()),
			zap.Error(fmt.Errorf("%w: %w", e.ErrStaleReference, err)),
		)
		n.reset()
		return n.view(), nil
	}
	n.plan = record.ConsultancyPlan
	n.company = &id
	n.transition(ScreenPaying)
	return n.view(), nil
}

// Back leaves the current screen. It never fails and always closes the
// services menu.
func (n *Navigator) Back() View {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.resolve()
	n.menuOpen = false

	switch n.screen {
	case ScreenCreating, ScreenEditing, ScreenServices, ScreenPlans:
		n.reset()
	case ScreenPaying:
		if n.company != nil {
			n.reset()
		} else {
			n.transition(ScreenPlans)
		}
	}
	return n.view()
}

// Delete removes a record and its favorite. A screen referring to it falls back to browsing.
func (n *Navigator) Delete(ctx context.Context, id uuid.UUID) View {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.records.Delete(ctx, id)
	n.resolve()
	return n.view()
}

func (n *Navigator) ToggleFavorite(ctx context.Context, id uuid.UUID) (View, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, err := n.records.ToggleFavorite(ctx, id)
	n.resolve()
	return n.view(), err
}

// PaymentIntent returns the intent for the payment in progress.
func (n *Navigator) PaymentIntent() (payment.Intent, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.resolve()
	if err := n.require(ScreenPaying); err != nil {
		return payment.Intent{}, err
	}
	return n.payment().Intent, nil
}

// resolve sends the session back to browsing when the record under edit or
// payment is gone. It reports whether it did.
func (n *Navigator) resolve() bool {
	var target *uuid.UUID
	switch {
	case n.screen == ScreenEditing:
		target = &n.editing
	case n.screen == ScreenPaying && n.company != nil:
		target = n.company
	}
	if target == nil || n.records.Exists(*target) {
		return false
	}
	n.logger.Debug("Stale reference, returning to browsing",
		zap.String("screen", string(n.screen)),
		zap.String("record_id", target.String()),
	)
	n.reset()
	return true
}

func (n *Navigator) require(screens ...Screen) error {
	for _, s := range screens {
		if n.screen == s {
			return nil
		}
	}
	return fmt.Errorf("%w: action not available on %s screen", e.ErrInvalidState, n.screen)
}

func (n *Navigator) transition(to Screen) {
	n.logger.Debug("View transition",
		zap.String("from", string(n.screen)),
		zap.String("to", string(to)),
	)
	n.screen = to
	n.menuOpen = false
	n.errs = nil
}

// reset returns to browsing, dropping the draft and any edit or payment target.
// Query and tab survive.
func (n *Navigator) reset() {
	n.editing = uuid.Nil
	n.draft = models.NewDraft()
	n.plan = ""
	n.company = nil
	n.transition(ScreenBrowsing)
}

func (n *Navigator) cards() []Card {
	var records []models.Company
	if n.tab == TabSaved {
		records = n.records.Saved()
	} else {
		records = controller.Filter(n.records.List(), n.query)
	}

	out := make([]Card, 0, len(records))
	for _, c := range records {
		out = append(out, Card{
			Company:  c,
			Favorite: n.records.IsFavorite(c.ID),
			Plan:     c.Plan(),
		})
	}
	return out
}

func (n *Navigator) payment() Payment {
	p := Payment{
		Plan:    n.plan.Plan(),
		Contact: models.ContactChannels,
	}
	if n.company != nil {
		if c, err := n.records.Get(*n.company); err == nil {
			p.Company = &c
			p.Plan = c.Plan()
		}
	}
	p.Intent = payment.NewIntent(p.Plan, p.Company)
	return p
}

func (n *Navigator) view() View {
	v := View{
		Screen:   n.screen,
		Tab:      n.tab,
		Query:    n.query,
		MenuOpen: n.menuOpen,
	}
	if len(n.errs) > 0 {
		v.Errors = make(map[string]string, len(n.errs))
		for k, msg := range n.errs {
			v.Errors[k] = msg
		}
	}

	switch n.screen {
	case ScreenBrowsing:
		v.Cards = n.cards()
	case ScreenCreating, ScreenEditing:
		d := n.draft
		d.Services = append([]string{}, d.Services...)
		v.Draft = &d
		if n.screen == ScreenEditing {
			id := n.editing
			v.EditingID = &id
		}
		if n.menuOpen {
			v.Services = models.CoreServices()
		}
	case ScreenServices:
		v.Services = models.CoreServices()
	case ScreenPlans:
		v.Plans = models.Plans()
	case ScreenPaying:
		p := n.payment()
		v.Payment = &p
	}
	return v
}
