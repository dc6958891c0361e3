package usecase

import (
	"context"
	"errors"
	"fmt"

	"spendly/internal/advisor"
	"spendly/internal/chat"
	"spendly/internal/document"
	"spendly/internal/model"
	"spendly/internal/slot"
	"spendly/pkg/metrics"
)

func (uc *implUseCase) dispatch(ctx context.Context, t *turn) error {
	if t.input.DocumentPath != "" && t.input.Intent.IngestsDocument() {
		uc.ingestDocument(ctx, t)
	}

	switch t.input.Intent {
	case model.IntentSpendingPlan:
		res, err := uc.advisor.Spending(ctx, uc.snapshot(ctx, t))
		uc.noteNarrative(ctx, t, err)
		t.data = res

	case model.IntentInvestment:
		res, err := uc.advisor.Investment(ctx, uc.snapshot(ctx, t))
		uc.noteNarrative(ctx, t, err)
		t.data = res

	case model.IntentLoan:
		res, err := uc.advisor.Loan(ctx, uc.loanInput(t))
		uc.noteNarrative(ctx, t, err)
		t.data = res

	case model.IntentTaxSaver:
		return uc.runTax(ctx, t)

	default:
		return chat.ErrUnknownIntent
	}
	return nil
}

// ingestDocument replaces the stored snapshot or payslip. Parse failures
// keep whatever the session already had.
func (uc *implUseCase) ingestDocument(ctx context.Context, t *turn) {
	doc, err := uc.parser.Parse(ctx, t.input.DocumentPath)
	if err != nil {
		uc.l.Warnf(ctx, "%s: %s: %v", LogPrefixIngest, t.input.DocumentPath, err)
		uc.noteFailure(ctx, metrics.CollaboratorParser, err)
		t.warn(WarnDocumentUnreadable)
		return
	}

	switch doc.Kind {
	case document.KindBankStatement:
		uc.setState(ctx, t, model.StateKeyParsedBank, doc.Snapshot)
	case document.KindPayslip:
		uc.setState(ctx, t, model.StateKeyPayslip, doc.Payslip)
		if income := doc.Payslip.Income(); income > 0 {
			uc.setState(ctx, t, model.StateKeyMonthlyIncome, income)
		}
	}
}

func (uc *implUseCase) snapshot(ctx context.Context, t *turn) model.Snapshot {
	var snap model.Snapshot
	if _, err := t.session.State.Get(model.StateKeyParsedBank, &snap); err != nil {
		uc.l.Warnf(ctx, "%s: stored snapshot unreadable: %v", LogPrefixHandleTurn, err)
		return model.Snapshot{}
	}
	return snap
}

func (uc *implUseCase) loanInput(t *turn) advisor.LoanInput {
	md := t.input.Metadata
	in := advisor.LoanInput{}

	if md.MonthlyIncome != nil && *md.MonthlyIncome > 0 {
		in.MonthlyIncome = *md.MonthlyIncome
	} else if v, ok := t.session.State.Number(model.StateKeyMonthlyIncome); ok {
		in.MonthlyIncome = v
	}
	if md.ExistingEMI != nil {
		in.ExistingEMI = *md.ExistingEMI
	}
	if md.CIBILScore != nil {
		in.CIBILScore = *md.CIBILScore
	}
	return in
}

// runTax drives the tax intake and runs the comparison once it is complete.
func (uc *implUseCase) runTax(ctx context.Context, t *turn) error {
	schema := slot.TaxIntake
	state := t.session.State

	var progress slot.Progress
	if _, err := state.Get(model.StateKeyTaxQuestions, &progress); err != nil {
		uc.l.Warnf(ctx, "%s: stored progress unreadable, restarting intake: %v", LogPrefixTax, err)
	}
	progress = slot.Sanitize(schema, progress)

	if state.Flow().IsAwaiting(schema.ID) {
		next, err := slot.RecordAnswer(ctx, uc.extractor, schema, progress, t.input.Message)
		if err != nil {
			uc.l.Warnf(ctx, "%s: record answer: %v", LogPrefixTax, err)
			uc.noteFailure(ctx, metrics.CollaboratorExtractor, err)
			t.warn(WarnAnswerNotUnderstood)
		}
		progress = next
	}

	if err := state.Set(model.StateKeyTaxQuestions, progress); err != nil {
		return fmt.Errorf("store tax progress: %w", err)
	}

	if field, ok := slot.NextPrompt(schema, progress); ok {
		if err := state.SetFlow(model.AwaitingSlot(schema.ID, slot.Position(schema, progress))); err != nil {
			return fmt.Errorf("store flow: %w", err)
		}
		t.data = chat.FollowUp{Question: field.Prompt}
		return nil
	}

	if err := state.SetFlow(model.Idle()); err != nil {
		return fmt.Errorf("store flow: %w", err)
	}

	res, err := uc.advisor.Tax(ctx, uc.taxInput(ctx, t, progress))
	uc.noteNarrative(ctx, t, err)
	t.data = res
	return nil
}

func (uc *implUseCase) taxInput(ctx context.Context, t *turn, progress slot.Progress) advisor.TaxInput {
	in := advisor.TaxInput{
		AnnualIncome:     uc.annualIncome(t),
		MonthlyRent:      number(progress[slot.FieldRent]),
		HealthPremium:    number(progress[slot.FieldHealthInsurance]),
		HomeLoanInterest: number(progress[slot.FieldLoans]),
	}

	var slip model.Payslip
	if ok, err := t.session.State.Get(model.StateKeyPayslip, &slip); err != nil {
		uc.l.Warnf(ctx, "%s: stored payslip unreadable: %v", LogPrefixTax, err)
	} else if ok {
		in.HRAReceived = slip.HRA * monthsPerYear
		in.ProvidentFund = slip.PF * monthsPerYear
	}
	return in
}

// annualIncome prefers the declared figure, then remembered state, then a
// monthly figure, then the configured default.
func (uc *implUseCase) annualIncome(t *turn) float64 {
	if md := t.input.Metadata.AnnualIncome; md != nil && *md > 0 {
		return *md
	}
	if v, ok := t.session.State.Number(model.StateKeyAnnualIncome); ok && v > 0 {
		return v
	}
	if v, ok := t.session.State.Number(model.StateKeyMonthlyIncome); ok && v > 0 {
		return v * monthsPerYear
	}
	return uc.cfg.DefaultAnnualIncome
}

func (uc *implUseCase) noteNarrative(ctx context.Context, t *turn, err error) {
	if err == nil {
		return
	}
	if !errors.Is(err, advisor.ErrNoGenerator) {
		uc.noteFailure(ctx, metrics.CollaboratorGenerator, err)
	}
	t.warn(WarnNarrativeMissing)
}

// noteFailure counts a degraded collaborator call. Failures caused by the
// caller going away are not the collaborator's fault.
func (uc *implUseCase) noteFailure(ctx context.Context, collaborator string, err error) {
	if ctx.Err() != nil && isCancellation(err) {
		return
	}
	metrics.CollaboratorFailuresTotal.WithLabelValues(collaborator).Inc()
}

func number(v any) float64 {
	if f, ok := v.(float64); ok {
		return f
	}
	return 0
}
