package queries_test

import (
	"testing"

	"freightmatch/internal/core/application/usecases/queries"
	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/domain/model/recommendation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetDriverRecommendationsQuery_Valid(t *testing.T) {
	driverID := kernel.NewUUID()
	statuses := []recommendation.Status{recommendation.Active, recommendation.Viewed}

	query, err := queries.NewGetDriverRecommendationsQuery(driverID, statuses)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, driverID, query.DriverID())
	assert.Equal(t, statuses, query.Statuses())
}

func TestNewGetDriverRecommendationsQuery_ZeroDriver_ReturnsError(t *testing.T) {
	_, err := queries.NewGetDriverRecommendationsQuery(kernel.UUID{}, nil)
	require.Error(t, err)
}

func TestGetDriverRecommendationsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetDriverRecommendationsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetDriverRecommendationsQueryIsNotConstructed)
}

func TestNewGetStatisticsQuery_Valid(t *testing.T) {
	query := queries.NewGetStatisticsQuery()
	require.NoError(t, query.Validate())
}

func TestGetStatisticsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetStatisticsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetStatisticsQueryIsNotConstructed)
}
