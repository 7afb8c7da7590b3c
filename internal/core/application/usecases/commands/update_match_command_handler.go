package commands

import (
	"context"
)

// UpdateMatchCommandHandler applies partial field updates to a match.
// The write is conditional on the status the match was read in, so a
// concurrent lifecycle transition surfaces as a Conflict instead of being
// silently overwritten.
type UpdateMatchCommandHandler struct {
	uowFactory MatchUoWFactory
}

// NewUpdateMatchCommandHandler creates a handler for match update operations.
func NewUpdateMatchCommandHandler(uowFactory MatchUoWFactory) UpdateMatchCommandHandler {
	return UpdateMatchCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the match update command.
// Returns an ObjectNotFound error if the match does not exist and a Conflict
// error if the match is already in a terminal state.
func (h *UpdateMatchCommandHandler) Handle(ctx context.Context, cmd UpdateMatchCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	matchRepo := uow.MatchRepository()
	m, err := matchRepo.Get(ctx, cmd.MatchID())
	if err != nil {
		return err
	}

	prior := m.Status()

	if rate := cmd.ProposedRate(); rate != nil {
		if err = m.UpdateProposedRate(*rate); err != nil {
			return err
		}
	}

	if score := cmd.Score(); score != nil {
		if err = m.UpdateScore(*score, cmd.ScoreFactors()); err != nil {
			return err
		}
	}

	if err = matchRepo.UpdateFrom(ctx, m, prior); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
