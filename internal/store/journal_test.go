package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tianshu/internal/canon"
)

func TestAddJournal_AssignsIDSeqAndHash(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	body := []byte(`{"note":"深呼吸"}`)
	e, err := s.AddJournal(ctx, JournalEntry{Day: "2025-12-20", Kind: "anger", Body: body})
	require.NoError(t, err)

	assert.Equal(t, "entry-0001", e.ID)
	assert.Equal(t, int64(1), e.Seq)
	assert.Equal(t, canon.HashWithDomain(canon.DomainJournal, body), e.BodyHash)

	e2, err := s.AddJournal(ctx, JournalEntry{Day: "2025-12-20", Kind: "doubt"})
	require.NoError(t, err)
	assert.Equal(t, "entry-0002", e2.ID)
	assert.Equal(t, int64(2), e2.Seq)
	assert.Equal(t, []byte{}, e2.Body)
}

func TestAddJournal_RequiresDayAndKind(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.AddJournal(ctx, JournalEntry{Kind: "anger"})
	assert.Error(t, err)
	_, err = s.AddJournal(ctx, JournalEntry{Day: "2025-12-20"})
	assert.Error(t, err)

	entries, err := s.ListJournal(ctx, JournalFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAddJournal_DefaultUUIDs(t *testing.T) {
	s, err := Open(t.TempDir() + "/uuid.db")
	require.NoError(t, err)
	defer s.Close()

	e, err := s.AddJournal(context.Background(), JournalEntry{Day: "2025-12-20", Kind: "pride"})
	require.NoError(t, err)
	assert.Len(t, e.ID, 36)
}

func TestListJournal_NewestFirst(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, e := range []JournalEntry{
		{Day: "2025-12-19", Kind: "greed"},
		{Day: "2025-12-20", Kind: "anger"},
		{Day: "2025-12-20", Kind: "doubt"},
		{Day: "2025-12-21", Kind: "pride"},
	} {
		_, err := s.AddJournal(ctx, e)
		require.NoError(t, err)
	}

	all, err := s.ListJournal(ctx, JournalFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"pride", "doubt", "anger", "greed"}, kinds(all))

	day, err := s.ListJournal(ctx, JournalFilter{Day: "2025-12-20"})
	require.NoError(t, err)
	assert.Equal(t, []string{"doubt", "anger"}, kinds(day))

	recent, err := s.ListJournal(ctx, JournalFilter{Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"pride", "doubt", "anger"}, kinds(recent))
}

func TestListJournal_EmptyIsNotNil(t *testing.T) {
	s := createTestStore(t)

	entries, err := s.ListJournal(context.Background(), JournalFilter{Day: "1999-01-01"})
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestGetJournal(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	added, err := s.AddJournal(ctx, JournalEntry{Day: "2025-12-20", Kind: "ignorance", Body: []byte("raw bytes")})
	require.NoError(t, err)

	got, found, err := s.GetJournal(ctx, added.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, added, got)

	_, found, err = s.GetJournal(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func kinds(entries []JournalEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Kind
	}
	return out
}
