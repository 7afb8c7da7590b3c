// Package http exposes the match lifecycle over a REST API.
// It coordinates between HTTP handlers and application use cases, mapping
// domain errors to status codes: validation failures to 400, missing
// aggregates to 404, lost lifecycle races to 409.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"freightmatch/internal/core/application/usecases/commands"
	"freightmatch/internal/core/application/usecases/queries"
	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/domain/model/match"
	"freightmatch/internal/core/domain/model/recommendation"
	"freightmatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Handlers bundles the command and query handlers the server dispatches to.
type Handlers struct {
	CreateMatch               commands.CreateMatchCommandHandler
	CreateRelayMatch          commands.CreateRelayMatchCommandHandler
	UpdateMatch               commands.UpdateMatchCommandHandler
	RecommendMatch            commands.RecommendMatchCommandHandler
	RecommendRelayMatch       commands.RecommendRelayMatchCommandHandler
	ResolveSegment            commands.ResolveSegmentCommandHandler
	ReserveMatch              commands.ReserveMatchCommandHandler
	AcceptMatch               commands.AcceptMatchCommandHandler
	DeclineMatch              commands.DeclineMatchCommandHandler
	CancelMatch               commands.CancelMatchCommandHandler
	ViewRecommendation        commands.ViewRecommendationCommandHandler
	AcceptRecommendation      commands.AcceptRecommendationCommandHandler
	DeclineRecommendation     commands.DeclineRecommendationCommandHandler
	DeactivateRecommendations commands.DeactivateRecommendationsCommandHandler

	GetMatch                 queries.GetMatchQueryHandler
	GetMatches               queries.GetMatchesQueryHandler
	GetActiveReservation     queries.GetActiveReservationQueryHandler
	GetDriverRecommendations queries.GetDriverRecommendationsQueryHandler
	GetStatistics            queries.GetStatisticsQueryHandler
}

// Server implements the REST API for the match lifecycle.
type Server struct {
	handlers       Handlers
	reservationTTL time.Duration
}

// NewServer creates a new HTTP server with the required command and query
// handlers. reservationTTL is applied when a reserve request does not name
// its own hold duration.
func NewServer(handlers Handlers, reservationTTL time.Duration) *Server {
	return &Server{
		handlers:       handlers,
		reservationTTL: reservationTTL,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/matches", s.CreateMatch)
	api.POST("/matches/relay", s.CreateRelayMatch)
	api.GET("/matches/:id", s.GetMatch)
	api.PATCH("/matches/:id", s.UpdateMatch)
	api.POST("/matches/:id/recommend", s.RecommendMatch)
	api.POST("/matches/:id/recommend/relay", s.RecommendRelayMatch)
	api.POST("/matches/:id/segments/:index/accept", s.AcceptSegment)
	api.POST("/matches/:id/segments/:index/decline", s.DeclineSegment)
	api.POST("/matches/:id/segments/:index/expire", s.ExpireSegment)
	api.POST("/matches/:id/reserve", s.ReserveMatch)
	api.POST("/matches/:id/accept", s.AcceptMatch)
	api.POST("/matches/:id/decline", s.DeclineMatch)
	api.POST("/matches/:id/cancel", s.CancelMatch)
	api.GET("/matches/:id/reservation", s.GetMatchReservation)
	api.POST("/matches/:id/recommendations/deactivate", s.DeactivateMatchRecommendations)

	api.GET("/drivers/:id/matches", s.GetDriverMatches)
	api.GET("/drivers/:id/reservation", s.GetDriverReservation)
	api.GET("/drivers/:id/recommendations", s.GetDriverRecommendations)

	api.GET("/loads/:id/matches", s.GetLoadMatches)
	api.GET("/loads/:id/reservation", s.GetLoadReservation)
	api.POST("/loads/:id/recommendations/deactivate", s.DeactivateLoadRecommendations)

	api.POST("/recommendations/:id/view", s.ViewRecommendation)
	api.POST("/recommendations/:id/accept", s.AcceptRecommendation)
	api.POST("/recommendations/:id/decline", s.DeclineRecommendation)

	api.GET("/statistics", s.GetStatistics)
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps domain errors onto HTTP status codes.
func writeError(ctx echo.Context, err error) error {
	var (
		notFoundErr   *errs.ObjectNotFoundError
		conflictErr   *errs.ConflictError
		invalidErr    *errs.ValueIsInvalidError
		requiredErr   *errs.ValueIsRequiredError
		outOfRangeErr *errs.ValueIsOutOfRangeError
	)

	code := http.StatusInternalServerError
	switch {
	case errors.As(err, &notFoundErr):
		code = http.StatusNotFound
	case errors.As(err, &conflictErr):
		code = http.StatusConflict
	case errors.As(err, &invalidErr), errors.As(err, &requiredErr), errors.As(err, &outOfRangeErr):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, errorResponse{Code: code, Message: err.Error()})
}

func pathUUID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

func parseMatchStatuses(raw []string) ([]match.Status, error) {
	statuses := make([]match.Status, 0, len(raw))
	for _, s := range raw {
		status, err := match.StatusFromString(s)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

type createMatchRequest struct {
	LoadID       string             `json:"load_id"`
	DriverID     string             `json:"driver_id"`
	VehicleID    string             `json:"vehicle_id"`
	Kind         string             `json:"kind"`
	Score        float64            `json:"score"`
	ScoreFactors map[string]float64 `json:"score_factors"`
	ProposedRate float64            `json:"proposed_rate"`
}

type idResponse struct {
	ID string `json:"id"`
}

// CreateMatch handles POST /api/v1/matches.
func (s *Server) CreateMatch(ctx echo.Context) error {
	var req createMatchRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	loadID, err := kernel.UUIDFromString(req.LoadID)
	if err != nil {
		return writeError(ctx, err)
	}
	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return writeError(ctx, err)
	}
	vehicleID, err := kernel.UUIDFromString(req.VehicleID)
	if err != nil {
		return writeError(ctx, err)
	}
	kind, err := match.KindFromString(req.Kind)
	if err != nil {
		return writeError(ctx, err)
	}

	matchID := kernel.NewUUID()
	cmd, err := commands.NewCreateMatchCommand(
		matchID, loadID, driverID, vehicleID, kind, req.Score, req.ScoreFactors, req.ProposedRate,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.CreateMatch.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, idResponse{ID: matchID.String()})
}

type relaySegmentRequest struct {
	DriverID    string  `json:"driver_id"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Rate        float64 `json:"rate"`
}

type createRelayMatchRequest struct {
	LoadID       string                `json:"load_id"`
	Score        float64               `json:"score"`
	ScoreFactors map[string]float64    `json:"score_factors"`
	Segments     []relaySegmentRequest `json:"segments"`
}

// CreateRelayMatch handles POST /api/v1/matches/relay.
func (s *Server) CreateRelayMatch(ctx echo.Context) error {
	var req createRelayMatchRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	loadID, err := kernel.UUIDFromString(req.LoadID)
	if err != nil {
		return writeError(ctx, err)
	}

	segments := make([]match.Segment, 0, len(req.Segments))
	for i, seg := range req.Segments {
		segmentDriver, segErr := kernel.UUIDFromString(seg.DriverID)
		if segErr != nil {
			return writeError(ctx, segErr)
		}

		segment, segErr := match.NewSegment(i, segmentDriver, seg.Origin, seg.Destination, seg.Rate)
		if segErr != nil {
			return writeError(ctx, segErr)
		}
		segments = append(segments, segment)
	}

	matchID := kernel.NewUUID()
	cmd, err := commands.NewCreateRelayMatchCommand(matchID, loadID, req.Score, req.ScoreFactors, segments)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.CreateRelayMatch.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, idResponse{ID: matchID.String()})
}

type updateMatchRequest struct {
	ProposedRate *float64           `json:"proposed_rate"`
	Score        *float64           `json:"score"`
	ScoreFactors map[string]float64 `json:"score_factors"`
}

// UpdateMatch handles PATCH /api/v1/matches/:id.
func (s *Server) UpdateMatch(ctx echo.Context) error {
	matchID, err := pathUUID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req updateMatchRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	cmd, err := commands.NewUpdateMatchCommand(matchID, req.ProposedRate, req.Score, req.ScoreFactors)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.UpdateMatch.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type recommendMatchRequest struct {
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	EquipmentType string  `json:"equipment_type"`
	WeightLbs     float64 `json:"weight_lbs"`
	EmptyMiles    float64 `json:"empty_miles"`
	LoadedMiles   float64 `json:"loaded_miles"`
	TTLMinutes    int     `json:"ttl_minutes"`
}

// RecommendMatch handles POST /api/v1/matches/:id/recommend.
func (s *Server) RecommendMatch(ctx echo.Context) error {
	matchID, err := pathUUID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req recommendMatchRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	recommendationID := kernel.NewUUID()
	cmd, err := commands.NewRecommendMatchCommand(
		recommendationID,
		matchID,
		recommendation.LoadSummary{
			Origin:        req.Origin,
			Destination:   req.Destination,
			EquipmentType: req.EquipmentType,
			WeightLbs:     req.WeightLbs,
		},
		req.EmptyMiles,
		req.LoadedMiles,
		time.Duration(req.TTLMinutes)*time.Minute,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.RecommendMatch.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, idResponse{ID: recommendationID.String()})
}

type recommendRelayMatchRequest struct {
	EquipmentType string  `json:"equipment_type"`
	WeightLbs     float64 `json:"weight_lbs"`
	TTLMinutes    int     `json:"ttl_minutes"`
}

type idsResponse struct {
	IDs []string `json:"ids"`
}

// RecommendRelayMatch handles POST /api/v1/matches/:id/recommend/relay.
// It offers every segment of a relay match to its segment driver, creating
// one recommendation per segment.
func (s *Server) RecommendRelayMatch(ctx echo.Context) error {
	matchID, err := pathUUID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req recommendRelayMatchRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	cmd, err := commands.NewRecommendRelayMatchCommand(
		matchID, req.EquipmentType, req.WeightLbs, time.Duration(req.TTLMinutes)*time.Minute,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.handlers.RecommendRelayMatch.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	ids := make([]string, 0, len(created))
	for _, id := range created {
		ids = append(ids, id.String())
	}

	return ctx.JSON(http.StatusCreated, idsResponse{IDs: ids})
}

// AcceptSegment handles POST /api/v1/matches/:id/segments/:index/accept.
func (s *Server) AcceptSegment(ctx echo.Context) error {
	return s.resolveSegment(ctx, commands.NewAcceptSegmentCommand)
}

// DeclineSegment handles POST /api/v1/matches/:id/segments/:index/decline.
func (s *Server) DeclineSegment(ctx echo.Context) error {
	return s.resolveSegment(ctx, commands.NewDeclineSegmentCommand)
}

// ExpireSegment handles POST /api/v1/matches/:id/segments/:index/expire.
func (s *Server) ExpireSegment(ctx echo.Context) error {
	return s.resolveSegment(ctx, commands.NewExpireSegmentCommand)
}

func (s *Server) resolveSegment(
	ctx echo.Context,
	construct func(kernel.UUID, int) (commands.ResolveSegmentCommand, error),
) error {
	matchID, err := pathUUID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: "invalid segment index"})
	}

	cmd, err := construct(matchID, index)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.ResolveSegment.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type reserveMatchRequest struct {
	DriverID   string `json:"driver_id"`
	TTLMinutes int    `json:"ttl_minutes"`
}

// ReserveMatch handles POST /api/v1/matches/:id/reserve.
func (s *Server) ReserveMatch(ctx echo.Context) error {
	matchID, err := pathUUID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req reserveMatchRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return writeError(ctx, err)
	}

	ttl := s.reservationTTL
	if req.TTLMinutes > 0 {
		ttl = time.Duration(req.TTLMinutes) * time.Minute
	}

	reservationID := kernel.NewUUID()
	cmd, err := commands.NewReserveMatchCommand(reservationID, matchID, driverID, ttl)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.ReserveMatch.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, idResponse{ID: reservationID.String()})
}

type acceptMatchRequest struct {
	DriverID     string  `json:"driver_id"`
	AcceptedRate float64 `json:"accepted_rate"`
}

// AcceptMatch handles POST /api/v1/matches/:id/accept.
func (s *Server) AcceptMatch(ctx echo.Context) error {
	matchID, err := pathUUID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req acceptMatchRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAcceptMatchCommand(matchID, driverID, req.AcceptedRate)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.AcceptMatch.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type declineMatchRequest struct {
	DriverID string `json:"driver_id"`
	Reason   string `json:"reason"`
	Notes    string `json:"notes"`
}

// DeclineMatch handles POST /api/v1/matches/:id/decline.
func (s *Server) DeclineMatch(ctx echo.Context) error {
	matchID, err := pathUUID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req declineMatchRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewDeclineMatchCommand(matchID, driverID, req.Reason, req.Notes)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.DeclineMatch.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type cancelMatchRequest struct {
	Reason string `json:"reason"`
}

// CancelMatch handles POST /api/v1/matches/:id/cancel.
func (s *Server) CancelMatch(ctx echo.Context) error {
	matchID, err := pathUUID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req cancelMatchRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	cmd, err := commands.NewCancelMatchCommand(matchID, req.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.CancelMatch.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetMatch handles GET /api/v1/matches/:id.
func (s *Server) GetMatch(ctx echo.Context) error {
	matchID, err := pathUUID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetMatchQuery(matchID)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.handlers.GetMatch.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toMatchJSON(response))
}

// GetDriverMatches handles GET /api/v1/drivers/:id/matches.
func (s *Server) GetDriverMatches(ctx echo.Context) error {
	driverID, err := pathUUID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	statuses, err := parseMatchStatuses(ctx.QueryParams()["status"])
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetMatchesForDriverQuery(driverID, statuses)
	if err != nil {
		return writeError(ctx, err)
	}

	return s.listMatches(ctx, query)
}

// GetLoadMatches handles GET /api/v1/loads/:id/matches.
func (s *Server) GetLoadMatches(ctx echo.Context) error {
	loadID, err := pathUUID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	statuses, err := parseMatchStatuses(ctx.QueryParams()["status"])
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetMatchesForLoadQuery(loadID, statuses)
	if err != nil {
		return writeError(ctx, err)
	}

	return s.listMatches(ctx, query)
}

func (s *Server) listMatches(ctx echo.Context, query queries.GetMatchesQuery) error {
	matches, err := s.handlers.GetMatches.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]matchJSON, 0, len(matches))
	for _, m := range matches {
		response = append(response, toMatchJSON(m))
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetMatchReservation handles GET /api/v1/matches/:id/reservation.
func (s *Server) GetMatchReservation(ctx echo.Context) error {
	return s.activeReservation(ctx, queries.NewGetActiveReservationForMatchQuery)
}

// GetDriverReservation handles GET /api/v1/drivers/:id/reservation.
func (s *Server) GetDriverReservation(ctx echo.Context) error {
	return s.activeReservation(ctx, queries.NewGetActiveReservationForDriverQuery)
}

// GetLoadReservation handles GET /api/v1/loads/:id/reservation.
func (s *Server) GetLoadReservation(ctx echo.Context) error {
	return s.activeReservation(ctx, queries.NewGetActiveReservationForLoadQuery)
}

func (s *Server) activeReservation(
	ctx echo.Context,
	construct func(kernel.UUID) (queries.GetActiveReservationQuery, error),
) error {
	id, err := pathUUID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := construct(id)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.handlers.GetActiveReservation.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, reservationJSON{
		ID:        response.ID.String(),
		MatchID:   response.MatchID.String(),
		DriverID:  response.DriverID.String(),
		LoadID:    response.LoadID.String(),
		Status:    response.Status,
		CreatedAt: response.CreatedAt,
		ExpiresAt: response.ExpiresAt,
	})
}

// GetDriverRecommendations handles GET /api/v1/drivers/:id/recommendations.
func (s *Server) GetDriverRecommendations(ctx echo.Context) error {
	driverID, err := pathUUID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	raw := ctx.QueryParams()["status"]
	statuses := make([]recommendation.Status, 0, len(raw))
	for _, str := range raw {
		status, parseErr := recommendation.StatusFromString(str)
		if parseErr != nil {
			return writeError(ctx, parseErr)
		}
		statuses = append(statuses, status)
	}

	query, err := queries.NewGetDriverRecommendationsQuery(driverID, statuses)
	if err != nil {
		return writeError(ctx, err)
	}

	feed, err := s.handlers.GetDriverRecommendations.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]recommendationJSON, 0, len(feed))
	for _, rec := range feed {
		response = append(response, recommendationJSON{
			ID:              rec.ID.String(),
			MatchID:         rec.MatchID.String(),
			LoadID:          rec.LoadID.String(),
			Score:           rec.Score,
			ProposedRate:    rec.ProposedRate,
			Origin:          rec.Origin,
			Destination:     rec.Destination,
			EquipmentType:   rec.EquipmentType,
			WeightLbs:       rec.WeightLbs,
			EmptyMiles:      rec.EmptyMiles,
			LoadedMiles:     rec.LoadedMiles,
			DeadheadPercent: rec.DeadheadPercent,
			Status:          rec.Status,
			ExpiresAt:       rec.ExpiresAt,
			ViewedAt:        rec.ViewedAt,
			CreatedAt:       rec.CreatedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// ViewRecommendation handles POST /api/v1/recommendations/:id/view.
func (s *Server) ViewRecommendation(ctx echo.Context) error {
	recommendationID, err := pathUUID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewViewRecommendationCommand(recommendationID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.ViewRecommendation.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AcceptRecommendation handles POST /api/v1/recommendations/:id/accept.
func (s *Server) AcceptRecommendation(ctx echo.Context) error {
	recommendationID, err := pathUUID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAcceptRecommendationCommand(recommendationID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.AcceptRecommendation.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type declineRecommendationRequest struct {
	Reason string `json:"reason"`
}

// DeclineRecommendation handles POST /api/v1/recommendations/:id/decline.
func (s *Server) DeclineRecommendation(ctx echo.Context) error {
	recommendationID, err := pathUUID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req declineRecommendationRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	cmd, err := commands.NewDeclineRecommendationCommand(recommendationID, req.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.DeclineRecommendation.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type deactivatedResponse struct {
	Deactivated int `json:"deactivated"`
}

// DeactivateMatchRecommendations handles POST /api/v1/matches/:id/recommendations/deactivate.
func (s *Server) DeactivateMatchRecommendations(ctx echo.Context) error {
	return s.deactivateRecommendations(ctx, commands.NewDeactivateRecommendationsForMatchCommand)
}

// DeactivateLoadRecommendations handles POST /api/v1/loads/:id/recommendations/deactivate.
func (s *Server) DeactivateLoadRecommendations(ctx echo.Context) error {
	return s.deactivateRecommendations(ctx, commands.NewDeactivateRecommendationsForLoadCommand)
}

func (s *Server) deactivateRecommendations(
	ctx echo.Context,
	construct func(kernel.UUID) (commands.DeactivateRecommendationsCommand, error),
) error {
	id, err := pathUUID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := construct(id)
	if err != nil {
		return writeError(ctx, err)
	}

	count, err := s.handlers.DeactivateRecommendations.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deactivatedResponse{Deactivated: count})
}

// GetStatistics handles GET /api/v1/statistics.
func (s *Server) GetStatistics(ctx echo.Context) error {
	stats, err := s.handlers.GetStatistics.Handle(ctx.Request().Context(), queries.NewGetStatisticsQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, statisticsJSON{
		MatchesByStatus:            stats.MatchesByStatus,
		ActiveReservations:         stats.ActiveReservations,
		OutstandingRecommendations: stats.OutstandingRecommendations,
	})
}

type matchJSON struct {
	ID            string             `json:"id"`
	LoadID        string             `json:"load_id"`
	DriverID      string             `json:"driver_id,omitempty"`
	VehicleID     string             `json:"vehicle_id,omitempty"`
	Kind          string             `json:"kind"`
	Status        string             `json:"status"`
	Score         float64            `json:"score"`
	ProposedRate  float64            `json:"proposed_rate"`
	AcceptedRate  *float64           `json:"accepted_rate,omitempty"`
	ReservedUntil *time.Time         `json:"reserved_until,omitempty"`
	DeclineReason string             `json:"decline_reason,omitempty"`
	Segments      []matchSegmentJSON `json:"segments,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

type matchSegmentJSON struct {
	Index       int     `json:"index"`
	DriverID    string  `json:"driver_id"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Rate        float64 `json:"rate"`
	Status      string  `json:"status"`
}

type reservationJSON struct {
	ID        string    `json:"id"`
	MatchID   string    `json:"match_id"`
	DriverID  string    `json:"driver_id"`
	LoadID    string    `json:"load_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type recommendationJSON struct {
	ID              string     `json:"id"`
	MatchID         string     `json:"match_id"`
	LoadID          string     `json:"load_id"`
	Score           float64    `json:"score"`
	ProposedRate    float64    `json:"proposed_rate"`
	Origin          string     `json:"origin"`
	Destination     string     `json:"destination"`
	EquipmentType   string     `json:"equipment_type"`
	WeightLbs       float64    `json:"weight_lbs"`
	EmptyMiles      float64    `json:"empty_miles"`
	LoadedMiles     float64    `json:"loaded_miles"`
	DeadheadPercent float64    `json:"deadhead_percent"`
	Status          string     `json:"status"`
	ExpiresAt       time.Time  `json:"expires_at"`
	ViewedAt        *time.Time `json:"viewed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type statisticsJSON struct {
	MatchesByStatus            map[string]int64 `json:"matches_by_status"`
	ActiveReservations         int64            `json:"active_reservations"`
	OutstandingRecommendations int64            `json:"outstanding_recommendations"`
}

func toMatchJSON(m queries.MatchResponse) matchJSON {
	out := matchJSON{
		ID:            m.ID.String(),
		LoadID:        m.LoadID.String(),
		Kind:          m.Kind,
		Status:        m.Status,
		Score:         m.Score,
		ProposedRate:  m.ProposedRate,
		AcceptedRate:  m.AcceptedRate,
		ReservedUntil: m.ReservedUntil,
		DeclineReason: m.DeclineReason,
		CreatedAt:     m.CreatedAt,
	}

	if !m.DriverID.IsZero() {
		out.DriverID = m.DriverID.String()
	}
	if !m.VehicleID.IsZero() {
		out.VehicleID = m.VehicleID.String()
	}

	for _, seg := range m.Segments {
		out.Segments = append(out.Segments, matchSegmentJSON{
			Index:       seg.Index,
			DriverID:    seg.DriverID.String(),
			Origin:      seg.Origin,
			Destination: seg.Destination,
			Rate:        seg.Rate,
			Status:      seg.Status,
		})
	}

	return out
}
