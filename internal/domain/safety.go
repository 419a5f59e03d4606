package domain

import (
	"time"
)

type SectionKind string

const (
	SectionWarningSigns     SectionKind = "warning_signs"
	SectionCopingStrategies SectionKind = "coping_strategies"
	SectionSafePlaces       SectionKind = "safe_places"
	SectionReasonsToLive    SectionKind = "reasons_to_live"
)

// SectionKinds lists every section a plan carries, in display order.
var SectionKinds = []SectionKind{
	SectionWarningSigns,
	SectionCopingStrategies,
	SectionSafePlaces,
	SectionReasonsToLive,
}

type SafetyPlan struct {
	ID        string             `json:"id"`
	UserID    string             `json:"user_id"`
	Shared    bool               `json:"shared"`
	Sections  []SafetyPlanSection `json:"sections"`
	Contacts  []EmergencyContact  `json:"contacts"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type SafetyPlanSection struct {
	ID       string           `json:"id"`
	PlanID   string           `json:"plan_id"`
	Kind     SectionKind      `json:"kind"`
	Position int              `json:"position"`
	Items    []SafetyPlanItem `json:"items"`
}

type SafetyPlanItem struct {
	ID        string    `json:"id"`
	SectionID string    `json:"section_id"`
	Text      string    `json:"text"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

type EmergencyContact struct {
	ID           string `json:"id"`
	PlanID       string `json:"plan_id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
	Position     int    `json:"position"`
}

// Section returns the plan's section of the given kind, or nil.
func (p *SafetyPlan) Section(kind SectionKind) *SafetyPlanSection {
	for i := range p.Sections {
		if p.Sections[i].Kind == kind {
			return &p.Sections[i]
		}
	}
	return nil
}
