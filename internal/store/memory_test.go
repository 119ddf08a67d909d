package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserIDsAreSequential(t *testing.T) {
	t.Parallel()

	m := NewMemStore()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		u, err := m.CreateUser(ctx, User{Username: fmt.Sprintf("user%d", i), Password: "pw"})
		require.NoError(t, err)
		assert.Equal(t, i, u.ID)
	}
}

func TestGetUserByUsername(t *testing.T) {
	t.Parallel()

	m := NewMemStore()
	ctx := context.Background()

	created, err := m.CreateUser(ctx, User{Username: "analyst", Password: "pw", OrgCode: "GOV-7"})
	require.NoError(t, err)

	got, err := m.GetUserByUsername(ctx, "analyst")
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = m.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAnalysesFilteredByUserInInsertionOrder(t *testing.T) {
	t.Parallel()

	m := NewMemStore()
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		owner := 1
		if i%2 == 1 {
			owner = 2
		}
		_, err := m.CreateAnalysis(ctx, Analysis{
			UserID:        owner,
			TargetAccount: fmt.Sprintf("acct-%d", i),
		})
		require.NoError(t, err)
	}

	got, err := m.GetAnalysesByUserID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"acct-0", "acct-2", "acct-4"},
		[]string{got[0].TargetAccount, got[1].TargetAccount, got[2].TargetAccount})
	assert.Less(t, got[0].ID, got[1].ID)
	assert.Less(t, got[1].ID, got[2].ID)

	empty, err := m.GetAnalysesByUserID(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestContactRequestLifecycle(t *testing.T) {
	t.Parallel()

	m := NewMemStore()
	ctx := context.Background()

	created, err := m.CreateContactRequest(ctx, ContactRequest{
		Name:      "Ada",
		Email:     "ada@example.com",
		Type:      "support",
		Message:   "help",
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Resolved:  true, // must be ignored
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.False(t, created.Resolved, "new requests always start unresolved")

	list, err := m.GetContactRequests(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Resolved)

	updated, err := m.UpdateContactRequest(ctx, created.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Resolved)

	_, err = m.UpdateContactRequest(ctx, 42, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionCreateGetDelete(t *testing.T) {
	t.Parallel()

	m := NewMemStore()
	ctx := context.Background()

	sess := Session{ID: "abc", UserID: 1, CreatedAt: time.Now()}
	require.NoError(t, m.CreateSession(ctx, sess))

	got, err := m.GetSession(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 1, got.UserID)

	require.NoError(t, m.DeleteSession(ctx, "abc"))
	_, err = m.GetSession(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing session is not an error.
	require.NoError(t, m.DeleteSession(ctx, "abc"))
}

func TestCounts(t *testing.T) {
	t.Parallel()

	m := NewMemStore()
	ctx := context.Background()

	_, err := m.CreateUser(ctx, User{Username: "u"})
	require.NoError(t, err)
	_, err = m.CreateAnalysis(ctx, Analysis{UserID: 1})
	require.NoError(t, err)
	_, err = m.CreateAnalysis(ctx, Analysis{UserID: 1})
	require.NoError(t, err)
	_, err = m.CreateContactRequest(ctx, ContactRequest{Name: "n"})
	require.NoError(t, err)

	stats, err := m.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Users: 1, Analyses: 2, ContactRequests: 1}, stats)
}
