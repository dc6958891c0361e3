package chat

import (
	"context"

	"spendly/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// HandleTurn runs one conversational turn for a session.
	HandleTurn(ctx context.Context, input TurnInput) (TurnOutput, error)

	// Session returns the stored document for inspection.
	Session(ctx context.Context, id string) (model.Session, error)
}
