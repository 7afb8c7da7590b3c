package queries_test

import (
	"testing"

	"freightmatch/internal/core/application/usecases/queries"
	"freightmatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetMatchQuery_Valid(t *testing.T) {
	matchID := kernel.NewUUID()

	query, err := queries.NewGetMatchQuery(matchID)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, matchID, query.MatchID())
}

func TestNewGetMatchQuery_ZeroID_ReturnsError(t *testing.T) {
	_, err := queries.NewGetMatchQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetMatchQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetMatchQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetMatchQueryIsNotConstructed)
}
