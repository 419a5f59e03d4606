//go:build integration

package repository_test

import (
	"context"
	"io/fs"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	serenity "github.com/serenity-health/serenity"
	"github.com/serenity-health/serenity/internal/domain"
	"github.com/serenity-health/serenity/internal/repository"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// newTestStore connects to TEST_DATABASE_URL and applies migrations. Tests
// are skipped when the variable is unset.
func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	migrationsFS, err := fs.Sub(serenity.MigrationsFS, "migrations")
	require.NoError(t, err)
	require.NoError(t, repository.RunMigrations(url, migrationsFS))

	pool, err := repository.NewPool(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return repository.NewStore(pool)
}

func newTestUser(t *testing.T, store *repository.Store) *domain.User {
	t.Helper()
	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        uuid.New().String() + "@test.local",
		DisplayName:  "Test User",
		PasswordHash: "x",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, store.InsertUser(context.Background(), user))
	return user
}

func TestStore_ChatRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := newTestUser(t, store)

	now := time.Now().UTC().Truncate(time.Microsecond)
	chat := &domain.ChatHistory{
		ID:     uuid.New().String(),
		UserID: user.ID,
		Title:  "First chat",
		Date:   now,
		Messages: []domain.ChatMessage{
			{ID: uuid.New().String(), Text: "hello", Sender: domain.SenderUser, Timestamp: now},
		},
		Context:   domain.NewMentalHealthContext(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.InsertChat(ctx, chat))

	got, err := store.GetChat(ctx, user.ID, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, chat.Title, got.Title)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "hello", got.Messages[0].Text)
	require.NotNil(t, got.Context)

	// Row filtering: another user never sees this chat.
	other := newTestUser(t, store)
	_, err = store.GetChat(ctx, other.ID, chat.ID)
	require.Error(t, err)

	require.NoError(t, store.DeleteChat(ctx, user.ID, chat.ID))
	_, err = store.GetChat(ctx, user.ID, chat.ID)
	require.Error(t, err)
}

func TestStore_EmotionAggregate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := newTestUser(t, store)

	for _, e := range []struct {
		emotion   string
		intensity int
	}{
		{"anxious", 6}, {"anxious", 8}, {"calm", 3},
	} {
		entry := &domain.EmotionEntry{
			ID:        uuid.New().String(),
			UserID:    user.ID,
			Emotion:   e.emotion,
			Intensity: e.intensity,
			Timestamp: time.Now().UTC(),
		}
		require.NoError(t, store.InsertEmotionEntry(ctx, entry))
	}

	aggs, err := store.AggregateEmotions(ctx, user.ID, time.Time{})
	require.NoError(t, err)
	require.Len(t, aggs, 2)
	assert.Equal(t, "anxious", aggs[0].Emotion)
	assert.EqualValues(t, 2, aggs[0].Count)
	assert.InDelta(t, 7.0, aggs[0].AvgIntensity, 1e-9)
}

func TestStore_SafetyPlanLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := newTestUser(t, store)

	plan := &domain.SafetyPlan{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		UpdatedAt: time.Now().UTC(),
	}
	for i, kind := range domain.SectionKinds {
		plan.Sections = append(plan.Sections, domain.SafetyPlanSection{
			ID:       uuid.New().String(),
			PlanID:   plan.ID,
			Kind:     kind,
			Position: i,
		})
	}
	require.NoError(t, store.CreateSafetyPlan(ctx, plan))

	item := &domain.SafetyPlanItem{
		ID:        uuid.New().String(),
		SectionID: plan.Sections[0].ID,
		Text:      "Poor sleep for several days",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.InsertSectionItem(ctx, item))

	got, err := store.GetSafetyPlan(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, got.Sections, 4)
	require.Len(t, got.Sections[0].Items, 1)
	assert.Equal(t, item.Text, got.Sections[0].Items[0].Text)

	// Deleting through another user's id must not touch the row.
	other := newTestUser(t, store)
	require.Error(t, store.DeleteSectionItem(ctx, other.ID, item.ID))
	require.NoError(t, store.DeleteSectionItem(ctx, user.ID, item.ID))
}
