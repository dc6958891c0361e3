package http

import (
	"errors"
	"math"
	"strings"

	"spendly/internal/chat"
	"spendly/internal/model"
)

// --- Request DTOs ---

// chatReq accepts the multipart form the web client posts as well as JSON.
// Empty form fields bind as zero and count as not supplied.
type chatReq struct {
	SessionID     string   `form:"session_id"     json:"session_id"`
	Message       string   `form:"message"        json:"message"`
	Intent        string   `form:"intent"         json:"intent"`
	FilePath      string   `form:"file_path"      json:"file_path"`
	CIBILScore    *int     `form:"cibil_score"    json:"cibil_score"`
	MonthlyIncome *float64 `form:"monthly_income" json:"monthly_income"`
	ExistingEMI   *float64 `form:"existing_emi"   json:"existing_emi"`
	AnnualIncome  *float64 `form:"annual_income"  json:"annual_income"`
}

var errNegativeAmount = errors.New("amounts must not be negative")
var errNonFiniteAmount = errors.New("amounts must be finite numbers")
var errCIBILRange = errors.New("cibil_score must be between 300 and 900")

func (r chatReq) validate() error {
	for _, v := range []*float64{r.MonthlyIncome, r.ExistingEMI, r.AnnualIncome} {
		if v == nil {
			continue
		}
		if math.IsNaN(*v) || math.IsInf(*v, 0) {
			return errNonFiniteAmount
		}
		if *v < 0 {
			return errNegativeAmount
		}
	}
	if r.CIBILScore != nil && *r.CIBILScore != 0 && (*r.CIBILScore < 300 || *r.CIBILScore > 900) {
		return errCIBILRange
	}
	return nil
}

func (r chatReq) toInput() chat.TurnInput {
	return chat.TurnInput{
		SessionID:    strings.TrimSpace(r.SessionID),
		Intent:       model.Intent(strings.TrimSpace(r.Intent)),
		Message:      r.Message,
		DocumentPath: strings.TrimSpace(r.FilePath),
		Metadata: chat.Metadata{
			AnnualIncome:  positive(r.AnnualIncome),
			MonthlyIncome: positive(r.MonthlyIncome),
			ExistingEMI:   r.ExistingEMI,
			CIBILScore:    r.CIBILScore,
		},
	}
}

func positive(v *float64) *float64 {
	if v == nil || *v <= 0 {
		return nil
	}
	return v
}

// --- Response DTOs ---

type messageResp struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResp struct {
	Messages []messageResp `json:"messages"`
	Summary  string        `json:"summary"`
	Data     any           `json:"data"`
	Warnings []string      `json:"warnings"`
}

func (h *handler) newChatResp(o chat.TurnOutput) chatResp {
	resp := chatResp{
		Messages: newMessagesResp(o.Messages),
		Summary:  o.Summary,
		Data:     o.Data,
		Warnings: o.Warnings,
	}
	if resp.Warnings == nil {
		resp.Warnings = []string{}
	}
	return resp
}

func newMessagesResp(msgs []model.Message) []messageResp {
	out := make([]messageResp, len(msgs))
	for i, m := range msgs {
		out[i] = messageResp{Role: string(m.Role), Content: m.Content}
	}
	return out
}
