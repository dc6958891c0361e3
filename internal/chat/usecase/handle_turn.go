package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"spendly/internal/chat"
	"spendly/internal/model"
	"spendly/internal/session/repository"
	"spendly/pkg/log"
	"spendly/pkg/metrics"
)

// turn is the mutable working set of one HandleTurn call.
type turn struct {
	input    chat.TurnInput
	session  model.Session
	data     any
	warnings []string
}

func (t *turn) warn(msg string) {
	for _, w := range t.warnings {
		if w == msg {
			return
		}
	}
	t.warnings = append(t.warnings, msg)
}

// HandleTurn validates the input, runs the intent under the session lock and
// persists the updated session. Collaborator failures degrade the result
// and are reported in Warnings; store failures fail the turn.
func (uc *implUseCase) HandleTurn(ctx context.Context, input chat.TurnInput) (chat.TurnOutput, error) {
	start := time.Now()
	intent := string(input.Intent)

	docPath, err := uc.validate(input)
	if err != nil {
		uc.l.Warnf(ctx, "%s: rejected session=%q intent=%q: %v", LogPrefixHandleTurn, input.SessionID, intent, err)
		metrics.TurnsTotal.WithLabelValues(intentLabel(input.Intent), metrics.OutcomeRejected).Inc()
		return chat.TurnOutput{}, err
	}
	input.DocumentPath = docPath
	ctx = log.WithSessionID(ctx, input.SessionID)
	defer func() {
		metrics.TurnDuration.WithLabelValues(intent).Observe(time.Since(start).Seconds())
	}()

	output, err := uc.handleLocked(ctx, input)
	outcome := metrics.OutcomeOK
	switch {
	case err != nil:
		outcome = metrics.OutcomeFailed
	case len(output.Warnings) > 0:
		outcome = metrics.OutcomeDegraded
	}
	metrics.TurnsTotal.WithLabelValues(intent, outcome).Inc()

	return output, err
}

func (uc *implUseCase) handleLocked(ctx context.Context, input chat.TurnInput) (chat.TurnOutput, error) {
	unlock, err := uc.locks.Lock(ctx, input.SessionID)
	if err != nil {
		return chat.TurnOutput{}, fmt.Errorf("%w: %v", chat.ErrTurnCancelled, err)
	}
	defer unlock()

	sess, err := uc.repo.Load(ctx, input.SessionID)
	if err != nil {
		uc.l.Errorf(ctx, "%s: load: %v", LogPrefixHandleTurn, err)
		return chat.TurnOutput{}, fmt.Errorf("%w: %v", chat.ErrSessionStore, err)
	}

	t := &turn{input: input, session: sess}
	t.session.Append(model.RoleUser, input.Message)
	uc.rememberMetadata(ctx, t)

	if err := uc.dispatch(ctx, t); err != nil {
		uc.l.Errorf(ctx, "%s: dispatch %s: %v", LogPrefixHandleTurn, input.Intent, err)
		return chat.TurnOutput{}, err
	}

	summary := uc.summarise(ctx, t)
	t.session.Append(model.RoleAssistant, summary)

	if err := ctx.Err(); err != nil {
		uc.l.Warnf(ctx, "%s: %v, discarding turn", LogPrefixHandleTurn, err)
		return chat.TurnOutput{}, fmt.Errorf("%w: %v", chat.ErrTurnCancelled, err)
	}

	if err := uc.repo.Save(context.WithoutCancel(ctx), input.SessionID, t.session); err != nil {
		uc.l.Errorf(ctx, "%s: save: %v", LogPrefixHandleTurn, err)
		return chat.TurnOutput{}, fmt.Errorf("%w: %v", chat.ErrSessionStore, err)
	}

	return chat.TurnOutput{
		Messages: t.session.Window(uc.cfg.HistoryWindow),
		Summary:  summary,
		Data:     t.data,
		Warnings: t.warnings,
	}, nil
}

func (uc *implUseCase) validate(input chat.TurnInput) (string, error) {
	if !repository.ValidID(input.SessionID) {
		return "", chat.ErrInvalidSessionID
	}
	if !input.Intent.IsValid() {
		return "", chat.ErrUnknownIntent
	}
	if strings.TrimSpace(input.Message) == "" {
		return "", chat.ErrEmptyMessage
	}
	if input.DocumentPath == "" {
		return "", nil
	}
	return resolveUpload(uc.cfg.UploadDir, input.DocumentPath)
}

// rememberMetadata keeps declared incomes for later turns.
func (uc *implUseCase) rememberMetadata(ctx context.Context, t *turn) {
	md := t.input.Metadata
	if md.AnnualIncome != nil && *md.AnnualIncome > 0 {
		uc.setState(ctx, t, model.StateKeyAnnualIncome, *md.AnnualIncome)
	}
	if md.MonthlyIncome != nil && *md.MonthlyIncome > 0 {
		uc.setState(ctx, t, model.StateKeyMonthlyIncome, *md.MonthlyIncome)
	}
}

// setState only fails for values that cannot be marshalled, which the
// model types never are.
func (uc *implUseCase) setState(ctx context.Context, t *turn, key string, v any) {
	if err := t.session.State.Set(key, v); err != nil {
		uc.l.Errorf(ctx, "%s: set %s: %v", LogPrefixHandleTurn, key, err)
	}
}

// summarise asks for the closing chat reply. An empty string is returned
// when generation fails.
func (uc *implUseCase) summarise(ctx context.Context, t *turn) string {
	var prompt string
	if fu, ok := t.data.(chat.FollowUp); ok {
		prompt = fmt.Sprintf(followUpSummaryPrompt, t.input.Message, fu.Question)
	} else {
		raw, err := json.Marshal(t.data)
		if err != nil {
			raw = []byte("{}")
		}
		prompt = fmt.Sprintf(summaryPrompt, t.input.Message, raw)
	}

	text, err := uc.gen.Generate(ctx, prompt, "")
	if err != nil {
		uc.l.Warnf(ctx, "%s: summary: %v", LogPrefixHandleTurn, err)
		uc.noteFailure(ctx, metrics.CollaboratorGenerator, err)
		t.warn(WarnSummaryMissing)
		return ""
	}
	return text
}

func (uc *implUseCase) Session(ctx context.Context, id string) (model.Session, error) {
	if !repository.ValidID(id) {
		return model.Session{}, chat.ErrInvalidSessionID
	}
	sess, err := uc.repo.Load(ctx, id)
	if err != nil {
		uc.l.Errorf(ctx, "%s: %v", LogPrefixSession, err)
		return model.Session{}, fmt.Errorf("%w: %v", chat.ErrSessionStore, err)
	}
	return sess, nil
}

// intentLabel keeps rejected garbage out of metric cardinality.
func intentLabel(i model.Intent) string {
	if i.IsValid() {
		return string(i)
	}
	return "unknown"
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
