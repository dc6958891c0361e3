package chat

import "spendly/internal/model"

// --- UseCase Inputs ---

// Metadata is optional numeric context supplied with a turn. Nil means not supplied.
type Metadata struct {
	AnnualIncome  *float64
	MonthlyIncome *float64
	ExistingEMI   *float64
	CIBILScore    *int
}

type TurnInput struct {
	SessionID string
	Intent    model.Intent
	Message   string
	// DocumentPath references a stored upload; empty when none.
	DocumentPath string
	Metadata     Metadata
}

// --- UseCase Outputs ---

type TurnOutput struct {
	// Messages is the most recent window of the conversation log.
	Messages []model.Message
	Summary  string
	// Data is the calculator result or a FollowUp.
	Data     any
	Warnings []string
}

// FollowUp is the result of a turn that still needs an answer.
type FollowUp struct {
	Question string `json:"follow_up_question"`
}
