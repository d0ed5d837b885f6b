// Package models defines the core domain models: company records, the draft
// buffer used by the create and edit flows, and the fixed plan and service catalogs.
package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	DefaultColor     = "#90CAF9"
	DefaultTextColor = "#333333"
)

// Company is one investment company record.
type Company struct {
	// ID is assigned at creation and never changes.
	ID uuid.UUID `json:"id"`
	// Name is the non-empty display name.
	Name string `json:"name"`
	// Services lists the offered services in the order they were picked.
	Services []string `json:"services"`
	// Color and TextColor drive the card presentation.
	Color     string `json:"color"`
	TextColor string `json:"textColor"`
	// ConsultancyPlan is always a catalog key.
	ConsultancyPlan PlanKey `json:"consultancyPlan"`
	// Gradient is derived from Color on every create or update.
	Gradient string `json:"gradient"`
}

// Plan resolves the record's consultancy plan.
func (c Company) Plan() Plan {
	return c.ConsultancyPlan.Plan()
}

// Clone returns a copy that shares no slices with c.
func (c Company) Clone() Company {
	c.Services = append([]string(nil), c.Services...)
	return c
}

// Draft is the working copy used by the create and edit flows. It is never persisted.
type Draft struct {
	Name            string   `json:"name"`
	Services        []string `json:"services"`
	Color           string   `json:"color"`
	TextColor       string   `json:"textColor"`
	ConsultancyPlan PlanKey  `json:"consultancyPlan"`
}

// DraftPatch carries the draft fields to overwrite. Nil fields are left alone.
type DraftPatch struct {
	Name            *string
	Services        []string
	Color           *string
	TextColor       *string
	ConsultancyPlan *PlanKey
}

// NewDraft returns the empty draft with default colors and plan.
func NewDraft() Draft {
	return Draft{
		Services:        []string{},
		Color:           DefaultColor,
		TextColor:       DefaultTextColor,
		ConsultancyPlan: DefaultPlan,
	}
}

// DraftFrom seeds a draft from an existing record.
func DraftFrom(c Company) Draft {
	return Draft{
		Name:            c.Name,
		Services:        append([]string{}, c.Services...),
		Color:           c.Color,
		TextColor:       c.TextColor,
		ConsultancyPlan: c.ConsultancyPlan,
	}
}

// Apply returns d with the non-nil fields of p written over it.
func (d Draft) Apply(p DraftPatch) Draft {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Services != nil {
		d.Services = append([]string{}, p.Services...)
	}
	if p.Color != nil {
		d.Color = *p.Color
	}
	if p.TextColor != nil {
		d.TextColor = *p.TextColor
	}
	if p.ConsultancyPlan != nil {
		d.ConsultancyPlan = *p.ConsultancyPlan
	}
	return d
}

// ToggleService adds service at the end of the list, or removes it if present.
func (d Draft) ToggleService(service string) Draft {
	out := make([]string, 0, len(d.Services)+1)
	found := false
	for _, s := range d.Services {
		if s == service {
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		out = append(out, service)
	}
	d.Services = out
	return d
}

// Normalized trims the name and services, drops empty services and fills
// missing colors and plan with their defaults.
func (d Draft) Normalized() Draft {
	d.Name = strings.TrimSpace(d.Name)

	services := make([]string, 0, len(d.Services))
	for _, s := range d.Services {
		if s = strings.TrimSpace(s); s != "" {
			services = append(services, s)
		}
	}
	d.Services = services

	if d.Color == "" {
		d.Color = DefaultColor
	}
	if d.TextColor == "" {
		d.TextColor = DefaultTextColor
	}
	if !d.ConsultancyPlan.Valid() {
		d.ConsultancyPlan = DefaultPlan
	}
	return d
}

// Record builds the company stored under id from a normalized draft.
func (d Draft) Record(id uuid.UUID) Company {
	return Company{
		ID:              id,
		Name:            d.Name,
		Services:        append([]string{}, d.Services...),
		Color:           d.Color,
		TextColor:       d.TextColor,
		ConsultancyPlan: d.ConsultancyPlan,
		Gradient:        Gradient(d.Color),
	}
}

// Gradient derives the card background from a base color.
func Gradient(color string) string {
	return fmt.Sprintf("linear-gradient(135deg, %s 0%%, %sdd 100%%)", color, color)
}
