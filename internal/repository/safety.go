package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/serenity-health/serenity/internal/domain"
)

// GetSafetyPlan loads the user's plan with sections, items and contacts.
// Returns pgx.ErrNoRows when the user has no plan yet.
func (s *Store) GetSafetyPlan(ctx context.Context, userID string) (*domain.SafetyPlan, error) {
	var plan domain.SafetyPlan
	err := s.pool.QueryRow(ctx, `
		SELECT id, user_id, shared, updated_at
		FROM safety_plans
		WHERE user_id = $1`,
		userID,
	).Scan(&plan.ID, &plan.UserID, &plan.Shared, &plan.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get safety plan: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT sec.id, sec.plan_id, sec.kind, sec.position,
		       COALESCE(it.id::text, ''), COALESCE(it.text, ''), COALESCE(it.position, 0), COALESCE(it.created_at, now())
		FROM safety_plan_sections sec
		LEFT JOIN safety_plan_items it ON it.section_id = sec.id
		WHERE sec.plan_id = $1
		ORDER BY sec.position, it.position`,
		plan.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("list plan sections: %w", err)
	}
	defer rows.Close()

	var ordered []*domain.SafetyPlanSection
	byID := map[string]*domain.SafetyPlanSection{}
	for rows.Next() {
		var (
			sec  domain.SafetyPlanSection
			item domain.SafetyPlanItem
		)
		if err := rows.Scan(&sec.ID, &sec.PlanID, &sec.Kind, &sec.Position,
			&item.ID, &item.Text, &item.Position, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan plan section: %w", err)
		}
		existing, ok := byID[sec.ID]
		if !ok {
			sec.Items = []domain.SafetyPlanItem{}
			existing = &sec
			ordered = append(ordered, existing)
			byID[sec.ID] = existing
		}
		if item.ID != "" {
			item.SectionID = existing.ID
			existing.Items = append(existing.Items, item)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plan sections: %w", err)
	}
	plan.Sections = make([]domain.SafetyPlanSection, len(ordered))
	for i, sec := range ordered {
		plan.Sections[i] = *sec
	}

	contacts, err := s.listContacts(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	plan.Contacts = contacts
	return &plan, nil
}

func (s *Store) listContacts(ctx context.Context, planID string) ([]domain.EmergencyContact, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, plan_id, name, phone, relationship, position
		FROM emergency_contacts
		WHERE plan_id = $1
		ORDER BY position`,
		planID,
	)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	contacts := []domain.EmergencyContact{}
	for rows.Next() {
		var c domain.EmergencyContact
		if err := rows.Scan(&c.ID, &c.PlanID, &c.Name, &c.Phone, &c.Relationship, &c.Position); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// CreateSafetyPlan inserts an empty plan with its four fixed sections in one
// transaction.
func (s *Store) CreateSafetyPlan(ctx context.Context, plan *domain.SafetyPlan) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create plan: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO safety_plans (id, user_id, shared, updated_at)
		VALUES ($1, $2, $3, $4)`,
		plan.ID, plan.UserID, plan.Shared, plan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}

	for _, sec := range plan.Sections {
		_, err = tx.Exec(ctx, `
			INSERT INTO safety_plan_sections (id, plan_id, kind, position)
			VALUES ($1, $2, $3, $4)`,
			sec.ID, sec.PlanID, sec.Kind, sec.Position,
		)
		if err != nil {
			return fmt.Errorf("insert plan section: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// ReplaceSectionItems swaps a section's items for the given list atomically.
func (s *Store) ReplaceSectionItems(ctx context.Context, sectionID string, items []domain.SafetyPlanItem) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace items: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM safety_plan_items WHERE section_id = $1`, sectionID); err != nil {
		return fmt.Errorf("clear section items: %w", err)
	}
	for _, it := range items {
		_, err = tx.Exec(ctx, `
			INSERT INTO safety_plan_items (id, section_id, text, position, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			it.ID, it.SectionID, it.Text, it.Position, it.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert section item: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (s *Store) InsertSectionItem(ctx context.Context, it *domain.SafetyPlanItem) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO safety_plan_items (id, section_id, text, position, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		it.ID, it.SectionID, it.Text, it.Position, it.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert section item: %w", err)
	}
	return nil
}

// DeleteSectionItem removes an item, verifying through the section and plan
// joins that the row belongs to the calling user.
func (s *Store) DeleteSectionItem(ctx context.Context, userID, itemID string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM safety_plan_items it
		USING safety_plan_sections sec, safety_plans p
		WHERE it.id = $1 AND it.section_id = sec.id AND sec.plan_id = p.id AND p.user_id = $2`,
		itemID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete section item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Store) InsertContact(ctx context.Context, c *domain.EmergencyContact) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO emergency_contacts (id, plan_id, name, phone, relationship, position)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.PlanID, c.Name, c.Phone, c.Relationship, c.Position,
	)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

func (s *Store) UpdateContact(ctx context.Context, userID string, c *domain.EmergencyContact) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE emergency_contacts ec
		SET name = $3, phone = $4, relationship = $5
		FROM safety_plans p
		WHERE ec.id = $1 AND ec.plan_id = p.id AND p.user_id = $2`,
		c.ID, userID, c.Name, c.Phone, c.Relationship,
	)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Store) DeleteContact(ctx context.Context, userID, contactID string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM emergency_contacts ec
		USING safety_plans p
		WHERE ec.id = $1 AND ec.plan_id = p.id AND p.user_id = $2`,
		contactID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Store) SetPlanShared(ctx context.Context, userID string, shared bool) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE safety_plans SET shared = $2, updated_at = now()
		WHERE user_id = $1`,
		userID, shared,
	)
	if err != nil {
		return fmt.Errorf("set plan shared: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Store) TouchPlan(ctx context.Context, planID string) error {
	_, err := s.pool.Exec(ctx, `UPDATE safety_plans SET updated_at = now() WHERE id = $1`, planID)
	if err != nil {
		return fmt.Errorf("touch plan: %w", err)
	}
	return nil
}
