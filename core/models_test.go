package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		id1 := IDFromContent("CNT-2024-001 Alpha Corp service agreement")
		id2 := IDFromContent("CNT-2024-001 Alpha Corp service agreement")
		assert.Equal(t, id1, id2)
	})

	t.Run("distinct content distinct ids", func(t *testing.T) {
		id1 := IDFromContent("contract one")
		id2 := IDFromContent("contract two")
		assert.NotEqual(t, id1, id2)
	})

	t.Run("empty content", func(t *testing.T) {
		assert.NotZero(t, IDFromContent(""))
	})
}

func TestParseCollection(t *testing.T) {
	t.Run("contracts", func(t *testing.T) {
		c, err := ParseCollection("contracts")
		require.NoError(t, err)
		assert.Equal(t, CollectionContracts, c)
	})

	t.Run("tickets", func(t *testing.T) {
		c, err := ParseCollection("tickets")
		require.NoError(t, err)
		assert.Equal(t, CollectionTickets, c)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := ParseCollection("dashboards")
		assert.ErrorIs(t, err, ErrUnknownCollection)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ParseCollection("")
		assert.ErrorIs(t, err, ErrUnknownCollection)
	})
}

func TestParseRole(t *testing.T) {
	for _, role := range Roles {
		r, err := ParseRole(string(role))
		require.NoError(t, err)
		assert.Equal(t, role, r)
	}

	_, err := ParseRole("INTERN")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestMergeTopN(t *testing.T) {
	contracts := []SearchResult{
		{ID: "c1", Score: 0.9, Collection: CollectionContracts},
		{ID: "c2", Score: 0.4, Collection: CollectionContracts},
		{ID: "c3", Score: 0.2, Collection: CollectionContracts},
	}
	tickets := []SearchResult{
		{ID: "t1", Score: 0.8, Collection: CollectionTickets},
		{ID: "t2", Score: 0.6, Collection: CollectionTickets},
		{ID: "t3", Score: 0.5, Collection: CollectionTickets},
	}

	t.Run("sorted descending and truncated", func(t *testing.T) {
		merged := MergeTopN(5, contracts, tickets)
		require.Len(t, merged, 5)
		ids := make([]string, 0, len(merged))
		for _, r := range merged {
			ids = append(ids, r.ID)
		}
		assert.Equal(t, []string{"c1", "t1", "t2", "t3", "c2"}, ids)
	})

	t.Run("fewer results than limit", func(t *testing.T) {
		merged := MergeTopN(5, contracts[:1], tickets[:1])
		assert.Len(t, merged, 2)
	})

	t.Run("empty inputs", func(t *testing.T) {
		assert.Empty(t, MergeTopN(5, nil, nil))
	})

	t.Run("inputs not modified", func(t *testing.T) {
		before := make([]SearchResult, len(tickets))
		copy(before, tickets)
		MergeTopN(2, tickets)
		assert.Equal(t, before, tickets)
	})
}

func TestDefaultCapabilities(t *testing.T) {
	caps := DefaultCapabilities()

	t.Run("every role present", func(t *testing.T) {
		for _, role := range Roles {
			_, ok := caps[role]
			assert.True(t, ok, "missing capability for %s", role)
		}
	})

	t.Run("head of support sees everything", func(t *testing.T) {
		cap := caps[RoleHeadOfSupport]
		assert.True(t, cap.Allows(CollectionContracts))
		assert.True(t, cap.Allows(CollectionTickets))
	})

	t.Run("support agent sees tickets only", func(t *testing.T) {
		cap := caps[RoleSupportAgent]
		assert.False(t, cap.Allows(CollectionContracts))
		assert.True(t, cap.Allows(CollectionTickets))
	})

	t.Run("revoked role sees nothing", func(t *testing.T) {
		cap := caps[RoleAccountManagerC]
		assert.False(t, cap.HasAccess)
		assert.False(t, cap.Allows(CollectionContracts))
		assert.False(t, cap.Allows(CollectionTickets))
	})
}
