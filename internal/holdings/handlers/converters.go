package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	e "github.com/gartstein/holdings/internal/holdings/errors"
	"github.com/gartstein/holdings/internal/holdings/models"
	"github.com/gartstein/holdings/internal/holdings/navigation"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
	View   *navigation.View  `json:"view,omitempty"`
}

// DraftRequest is the body of create and update calls. An empty plan means the default.
type DraftRequest struct {
	Name            string   `json:"name"`
	Services        []string `json:"services"`
	Color           string   `json:"color"`
	TextColor       string   `json:"textColor"`
	ConsultancyPlan string   `json:"consultancyPlan"`
}

// DraftPatchRequest carries only the fields to change.
type DraftPatchRequest struct {
	Name            *string  `json:"name,omitempty"`
	Services        []string `json:"services,omitempty"`
	Color           *string  `json:"color,omitempty"`
	TextColor       *string  `json:"textColor,omitempty"`
	ConsultancyPlan *string  `json:"consultancyPlan,omitempty"`
}

type SearchRequest struct {
	Query string `json:"query"`
}

type ServiceRequest struct {
	Service string `json:"service"`
}

type FavoriteResponse struct {
	ID       uuid.UUID `json:"id"`
	Favorite bool      `json:"favorite"`
}

type PlanResponse struct {
	Key      models.PlanKey `json:"key"`
	Duration string         `json:"duration"`
	Price    int64          `json:"price"`
	Currency string         `json:"currency"`
	Display  string         `json:"display"`
}

func (req DraftRequest) toDraft() (models.Draft, error) {
	d := models.Draft{
		Name:      req.Name,
		Services:  req.Services,
		Color:     req.Color,
		TextColor: req.TextColor,
	}
	if req.ConsultancyPlan != "" {
		key, err := models.ParsePlanKey(req.ConsultancyPlan)
		if err != nil {
			return models.Draft{}, err
		}
		d.ConsultancyPlan = key
	}
	return d, nil
}

func (req DraftPatchRequest) toPatch() (models.DraftPatch, error) {
	p := models.DraftPatch{
		Name:      req.Name,
		Services:  req.Services,
		Color:     req.Color,
		TextColor: req.TextColor,
	}
	if req.ConsultancyPlan != nil {
		key, err := models.ParsePlanKey(*req.ConsultancyPlan)
		if err != nil {
			return models.DraftPatch{}, err
		}
		p.ConsultancyPlan = &key
	}
	return p, nil
}

func toCard(c models.Company, favorite bool) navigation.Card {
	return navigation.Card{Company: c, Favorite: favorite, Plan: c.Plan()}
}

func toPlanResponse(p models.Plan) PlanResponse {
	return PlanResponse{
		Key:      p.Key,
		Duration: p.Duration,
		Price:    p.Price,
		Currency: models.Currency,
		Display:  p.Display(),
	}
}

func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid UUID format", e.ErrInvalidInput)
	}
	return id, nil
}

func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON body", e.ErrInvalidInput)
	}
	return nil
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, e.ErrValidation),
		errors.Is(err, e.ErrInvalidInput),
		errors.Is(err, e.ErrInvalidPlan):
		return http.StatusBadRequest
	case errors.Is(err, e.ErrNotFound), errors.Is(err, e.ErrStaleReference):
		return http.StatusNotFound
	case errors.Is(err, e.ErrInvalidState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError writes err with its mapped status. view, when set, rides along.
func respondServiceError(w http.ResponseWriter, logger *zap.Logger, err error, view *navigation.View) {
	status := statusFor(err)
	resp := ErrorResponse{Error: err.Error(), View: view}

	var verr *e.ValidationError
	if errors.As(err, &verr) {
		resp.Fields = verr.Fields
	}
	if status == http.StatusInternalServerError {
		logger.Error("Internal error", zap.Error(err))
		resp.Error = "internal server error"
	}
	respondJSON(w, resp, status)
}

func respondJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
