package match_test

import (
	"testing"

	"freightmatch/internal/core/domain/model/match"
	"freightmatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("valid statuses", func(t *testing.T) {
		for _, s := range []match.Status{
			match.Pending, match.Recommended, match.Reserved,
			match.Accepted, match.Declined, match.Expired, match.Cancelled,
		} {
			assert.NoError(t, s.Validate(), s.String())
		}
	})

	t.Run("invalid statuses", func(t *testing.T) {
		for _, s := range []match.Status{match.Unknown, match.Status(42), match.Status(-1)} {
			require.Error(t, s.Validate())
			require.ErrorIs(t, s.Validate(), errs.ErrValueIsInvalid)
		}
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Pending", match.Pending.String())
	assert.Equal(t, "Recommended", match.Recommended.String())
	assert.Equal(t, "Reserved", match.Reserved.String())
	assert.Equal(t, "Accepted", match.Accepted.String())
	assert.Equal(t, "Declined", match.Declined.String())
	assert.Equal(t, "Expired", match.Expired.String())
	assert.Equal(t, "Cancelled", match.Cancelled.String())
	assert.Equal(t, "Unknown", match.Unknown.String())
	assert.Equal(t, "Unknown", match.Status(99).String())
}

func TestStatusFromString(t *testing.T) {
	for _, s := range []match.Status{
		match.Pending, match.Recommended, match.Reserved,
		match.Accepted, match.Declined, match.Expired, match.Cancelled,
	} {
		parsed, err := match.StatusFromString(s.String())
		require.NoError(t, err, s.String())
		assert.Equal(t, s, parsed)
	}

	for _, str := range []string{"", "Unknown", "pending", "Shipped"} {
		_, err := match.StatusFromString(str)
		require.Error(t, err, str)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	terminal := []match.Status{match.Accepted, match.Declined, match.Expired, match.Cancelled}
	nonTerminal := []match.Status{match.Pending, match.Recommended, match.Reserved}

	for _, s := range terminal {
		assert.True(t, s.IsTerminal(), s.String())
	}
	for _, s := range nonTerminal {
		assert.False(t, s.IsTerminal(), s.String())
	}
}

// TestStatus_TransitionTable walks every (from, event) pair and checks the
// outcome against the defined lifecycle. No illegal jump may succeed.
func TestStatus_TransitionTable(t *testing.T) {
	all := []match.Status{
		match.Pending, match.Recommended, match.Reserved,
		match.Accepted, match.Declined, match.Expired, match.Cancelled,
	}

	type event struct {
		name    string
		apply   func(match.Status) (match.Status, error)
		allowed map[match.Status]match.Status
	}

	events := []event{
		{
			name:    "recommend",
			apply:   match.Status.Recommend,
			allowed: map[match.Status]match.Status{match.Pending: match.Recommended},
		},
		{
			name:    "reserve",
			apply:   match.Status.Reserve,
			allowed: map[match.Status]match.Status{match.Recommended: match.Reserved},
		},
		{
			name:    "accept",
			apply:   match.Status.Accept,
			allowed: map[match.Status]match.Status{match.Reserved: match.Accepted},
		},
		{
			name:  "decline",
			apply: match.Status.Decline,
			allowed: map[match.Status]match.Status{
				match.Recommended: match.Declined,
				match.Reserved:    match.Declined,
			},
		},
		{
			name:  "expire",
			apply: match.Status.Expire,
			allowed: map[match.Status]match.Status{
				match.Recommended: match.Expired,
				match.Reserved:    match.Expired,
			},
		},
		{
			name:  "cancel",
			apply: match.Status.Cancel,
			allowed: map[match.Status]match.Status{
				match.Pending:     match.Cancelled,
				match.Recommended: match.Cancelled,
				match.Reserved:    match.Cancelled,
			},
		},
	}

	for _, ev := range events {
		for _, from := range all {
			got, err := ev.apply(from)
			if want, ok := ev.allowed[from]; ok {
				require.NoError(t, err, "%s from %s", ev.name, from)
				assert.Equal(t, want, got)
			} else {
				require.Error(t, err, "%s from %s must be rejected", ev.name, from)
				require.ErrorIs(t, err, errs.ErrConflict)
			}
		}
	}
}

func TestStatus_Cancel_InvalidStatus(t *testing.T) {
	_, err := match.Unknown.Cancel()
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
