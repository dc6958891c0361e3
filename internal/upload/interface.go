package upload

import "context"

// UseCase stores uploaded statements and payslips for later turns.
type UseCase interface {
	Save(ctx context.Context, input SaveInput) (File, error)
}
