package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/serenity-health/serenity/internal/domain"
	"github.com/serenity-health/serenity/internal/repository"
)

// SafetyService manages the user's safety plan. Every user has at most one
// plan; reading it creates an empty one on first access.
type SafetyService struct {
	store *repository.Store
}

func NewSafetyService(store *repository.Store) *SafetyService {
	return &SafetyService{store: store}
}

// GetPlan returns the user's plan, creating an empty one with its four
// sections the first time.
func (s *SafetyService) GetPlan(ctx context.Context, userID string) (*domain.SafetyPlan, error) {
	plan, err := s.store.GetSafetyPlan(ctx, userID)
	if err == nil {
		return plan, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	plan = &domain.SafetyPlan{
		ID:        uuid.New().String(),
		UserID:    userID,
		UpdatedAt: time.Now().UTC(),
		Contacts:  []domain.EmergencyContact{},
	}
	for i, kind := range domain.SectionKinds {
		plan.Sections = append(plan.Sections, domain.SafetyPlanSection{
			ID:       uuid.New().String(),
			PlanID:   plan.ID,
			Kind:     kind,
			Position: i,
			Items:    []domain.SafetyPlanItem{},
		})
	}
	if err := s.store.CreateSafetyPlan(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *SafetyService) AddItem(ctx context.Context, userID string, kind domain.SectionKind, text string) (*domain.SafetyPlanItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyText
	}

	plan, err := s.GetPlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	sec := plan.Section(kind)
	if sec == nil {
		return nil, domain.ErrSectionNotFound
	}

	item := &domain.SafetyPlanItem{
		ID:        uuid.New().String(),
		SectionID: sec.ID,
		Text:      text,
		Position:  len(sec.Items),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.InsertSectionItem(ctx, item); err != nil {
		return nil, err
	}
	if err := s.store.TouchPlan(ctx, plan.ID); err != nil {
		return nil, err
	}
	return item, nil
}

// ReplaceSection swaps the section's items for the given texts, keeping
// their order. Blank texts are dropped.
func (s *SafetyService) ReplaceSection(ctx context.Context, userID string, kind domain.SectionKind, texts []string) (*domain.SafetyPlanSection, error) {
	plan, err := s.GetPlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	sec := plan.Section(kind)
	if sec == nil {
		return nil, domain.ErrSectionNotFound
	}

	now := time.Now().UTC()
	items := []domain.SafetyPlanItem{}
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		items = append(items, domain.SafetyPlanItem{
			ID:        uuid.New().String(),
			SectionID: sec.ID,
			Text:      text,
			Position:  len(items),
			CreatedAt: now,
		})
	}
	if err := s.store.ReplaceSectionItems(ctx, sec.ID, items); err != nil {
		return nil, err
	}
	if err := s.store.TouchPlan(ctx, plan.ID); err != nil {
		return nil, err
	}
	sec.Items = items
	return sec, nil
}

func (s *SafetyService) RemoveItem(ctx context.Context, userID, itemID string) error {
	err := s.store.DeleteSectionItem(ctx, userID, itemID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrItemNotFound
	}
	return err
}

func (s *SafetyService) AddContact(ctx context.Context, userID, name, phone, relationship string) (*domain.EmergencyContact, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrEmptyText
	}

	plan, err := s.GetPlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	contact := &domain.EmergencyContact{
		ID:           uuid.New().String(),
		PlanID:       plan.ID,
		Name:         name,
		Phone:        strings.TrimSpace(phone),
		Relationship: strings.TrimSpace(relationship),
		Position:     len(plan.Contacts),
	}
	if err := s.store.InsertContact(ctx, contact); err != nil {
		return nil, err
	}
	if err := s.store.TouchPlan(ctx, plan.ID); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *SafetyService) UpdateContact(ctx context.Context, userID string, contact *domain.EmergencyContact) error {
	err := s.store.UpdateContact(ctx, userID, contact)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrContactNotFound
	}
	return err
}

func (s *SafetyService) RemoveContact(ctx context.Context, userID, contactID string) error {
	err := s.store.DeleteContact(ctx, userID, contactID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrContactNotFound
	}
	return err
}

func (s *SafetyService) SetShared(ctx context.Context, userID string, shared bool) error {
	if _, err := s.GetPlan(ctx, userID); err != nil {
		return err
	}
	err := s.store.SetPlanShared(ctx, userID, shared)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrPlanNotFound
	}
	return err
}

var sectionLabels = map[domain.SectionKind]string{
	domain.SectionWarningSigns:     "Warning signs",
	domain.SectionCopingStrategies: "Coping strategies",
	domain.SectionSafePlaces:       "Safe places",
	domain.SectionReasonsToLive:    "Reasons to live",
}

// Export renders the plan as plain text for printing or sharing.
func (s *SafetyService) Export(ctx context.Context, userID string) (string, error) {
	plan, err := s.GetPlan(ctx, userID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("MY SAFETY PLAN\n")
	b.WriteString("Updated: " + plan.UpdatedAt.Format("January 2, 2006") + "\n\n")

	for _, sec := range plan.Sections {
		label, ok := sectionLabels[sec.Kind]
		if !ok {
			label = string(sec.Kind)
		}
		b.WriteString(strings.ToUpper(label) + "\n")
		if len(sec.Items) == 0 {
			b.WriteString("  (nothing here yet)\n")
		}
		for i, it := range sec.Items {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, it.Text)
		}
		b.WriteString("\n")
	}

	b.WriteString("PEOPLE I CAN CALL\n")
	if len(plan.Contacts) == 0 {
		b.WriteString("  (no contacts added)\n")
	}
	for _, c := range plan.Contacts {
		line := "  " + c.Name
		if c.Relationship != "" {
			line += " (" + c.Relationship + ")"
		}
		if c.Phone != "" {
			line += " - " + c.Phone
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\nIF I AM IN IMMEDIATE DANGER\n")
	b.WriteString("  Call or text 988 (Suicide and Crisis Lifeline)\n")
	b.WriteString("  Text HOME to 741741 (Crisis Text Line)\n")
	b.WriteString("  Call 911 or go to the nearest emergency room\n")

	return b.String(), nil
}
