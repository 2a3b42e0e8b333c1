package entries

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/wellpulse/wellpulse/internal/platform/httpx"
	_ "github.com/wellpulse/wellpulse/testing"
)

type mockRepository struct {
	entries map[uuid.UUID]*Entry
}

func newMockRepository() *mockRepository {
	return &mockRepository{entries: make(map[uuid.UUID]*Entry)}
}

func (m *mockRepository) Create(ctx context.Context, fields EntryFields, userID uuid.UUID) (*Entry, error) {
	now := time.Now()
	entry := &Entry{
		ID:         uuid.New(),
		UserID:     userID,
		Date:       fields.Date,
		Sleep:      fields.Sleep,
		Stress:     fields.Stress,
		Symptoms:   fields.Symptoms,
		Mood:       fields.Mood,
		Engagement: fields.Engagement,
		Drugs:      fields.Drugs,
		Notes:      fields.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	m.entries[entry.ID] = entry
	return entry, nil
}

func (m *mockRepository) List(ctx context.Context, userID uuid.UUID) ([]Entry, error) {
	result := []Entry{}
	for _, e := range m.entries {
		if e.UserID == userID {
			result = append(result, *e)
		}
	}
	// Newest date first, as the SQL repository orders.
	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			if result[j].Date.After(result[i].Date) {
				result[i], result[j] = result[j], result[i]
			}
		}
	}
	return result, nil
}

func (m *mockRepository) Get(ctx context.Context, id, userID uuid.UUID) (*Entry, error) {
	entry, ok := m.entries[id]
	if !ok || entry.UserID != userID {
		return nil, httpx.ErrNotFound
	}
	copied := *entry
	return &copied, nil
}

func (m *mockRepository) Update(ctx context.Context, id, userID uuid.UUID, patch EntryPatch) (*Entry, error) {
	entry, ok := m.entries[id]
	if !ok || entry.UserID != userID {
		return nil, httpx.ErrNotFound
	}
	if patch.Date != nil {
		entry.Date = *patch.Date
	}
	if patch.Sleep != nil {
		entry.Sleep = *patch.Sleep
	}
	if patch.Stress != nil {
		entry.Stress = *patch.Stress
	}
	if patch.Symptoms != nil {
		entry.Symptoms = *patch.Symptoms
	}
	if patch.Mood != nil {
		entry.Mood = *patch.Mood
	}
	if patch.Engagement != nil {
		entry.Engagement = *patch.Engagement
	}
	if patch.Drugs != nil {
		entry.Drugs = patch.Drugs
	}
	if patch.Notes != nil {
		entry.Notes = patch.Notes
	}
	entry.UpdatedAt = time.Now()
	copied := *entry
	return &copied, nil
}

func (m *mockRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	entry, ok := m.entries[id]
	if !ok || entry.UserID != userID {
		return false, nil
	}
	delete(m.entries, id)
	return true, nil
}

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) Invalidate(ctx context.Context, userID uuid.UUID) {
	c.calls++
}

func TestServiceCreateInvalidates(t *testing.T) {
	repo := newMockRepository()
	inv := &countingInvalidator{}
	service := NewService(repo, inv)
	userID := uuid.New()

	entry, err := service.Create(t.Context(), validCreate(), userID)
	require.NoError(t, err)
	require.Equal(t, userID, entry.UserID)
	require.Equal(t, 1, inv.calls)
}

func TestServiceCreateInvalidSkipsRepo(t *testing.T) {
	repo := newMockRepository()
	inv := &countingInvalidator{}
	service := NewService(repo, inv)

	req := validCreate()
	req.Mood = ptr(11)

	_, err := service.Create(t.Context(), req, uuid.New())
	require.Error(t, err)
	require.True(t, errors.Is(err, httpx.ErrValidation))
	require.Empty(t, repo.entries)
	require.Zero(t, inv.calls)
}

func TestServiceOwnershipIsolation(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo, nil)
	owner := uuid.New()
	other := uuid.New()

	entry, err := service.Create(t.Context(), validCreate(), owner)
	require.NoError(t, err)

	_, err = service.Get(t.Context(), entry.ID, other)
	require.True(t, errors.Is(err, httpx.ErrNotFound))

	_, err = service.Update(t.Context(), entry.ID, other, UpdateEntryRequest{Mood: ptr(1)})
	require.True(t, errors.Is(err, httpx.ErrNotFound))

	deleted, err := service.Delete(t.Context(), entry.ID, other)
	require.NoError(t, err)
	require.False(t, deleted)

	// Owner still sees the untouched entry.
	got, err := service.Get(t.Context(), entry.ID, owner)
	require.NoError(t, err)
	require.Equal(t, 8, got.Mood)
}

func TestServiceUpdateEmptyPatchIsRead(t *testing.T) {
	repo := newMockRepository()
	inv := &countingInvalidator{}
	service := NewService(repo, inv)
	userID := uuid.New()

	entry, err := service.Create(t.Context(), validCreate(), userID)
	require.NoError(t, err)
	require.Equal(t, 1, inv.calls)

	got, err := service.Update(t.Context(), entry.ID, userID, UpdateEntryRequest{})
	require.NoError(t, err)
	require.Equal(t, entry.ID, got.ID)
	require.Equal(t, 1, inv.calls, "empty patch must not invalidate")
}

func TestServiceDeleteInvalidatesOnce(t *testing.T) {
	repo := newMockRepository()
	inv := &countingInvalidator{}
	service := NewService(repo, inv)
	userID := uuid.New()

	entry, err := service.Create(t.Context(), validCreate(), userID)
	require.NoError(t, err)

	deleted, err := service.Delete(t.Context(), entry.ID, userID)
	require.NoError(t, err)
	require.True(t, deleted)
	require.Equal(t, 2, inv.calls)

	// Second delete is a miss and must not invalidate again.
	deleted, err = service.Delete(t.Context(), entry.ID, userID)
	require.NoError(t, err)
	require.False(t, deleted)
	require.Equal(t, 2, inv.calls)
}

func TestServiceListNewestFirst(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo, nil)
	userID := uuid.New()

	for _, day := range []string{"2026-08-10", "2026-08-12", "2026-08-11"} {
		req := validCreate()
		req.Date = ptr(day)
		_, err := service.Create(t.Context(), req, userID)
		require.NoError(t, err)
	}

	list, err := service.List(t.Context(), userID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.True(t, list[0].Date.After(list[1].Date))
	require.True(t, list[1].Date.After(list[2].Date))
}
