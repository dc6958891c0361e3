package usecase

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"spendly/internal/advisor"
	"spendly/internal/chat"
	"spendly/internal/model"
	"spendly/internal/slot"
)

func taxTurn(msg string) chat.TurnInput {
	return chat.TurnInput{SessionID: "tax-user", Intent: model.IntentTaxSaver, Message: msg}
}

func followUp(t *testing.T, out chat.TurnOutput) string {
	t.Helper()
	fu, ok := out.Data.(chat.FollowUp)
	if !ok {
		t.Fatalf("expected follow-up, got %T %+v", out.Data, out.Data)
	}
	return fu.Question
}

func TestHandleTurn_TaxIntakeSequence(t *testing.T) {
	f := newFixture(t)
	f.extractor.responses = []string{
		`{"rent": 15000, "health_insurance": null}`,
		`{"health_insurance": "22,000"}`,
		`{"loans": 0}`,
	}
	fields := slot.TaxIntake.Fields

	out := f.turn(t, taxTurn("Help me save tax"))
	if q := followUp(t, out); q != fields[0].Prompt {
		t.Fatalf("turn 1 asked %q", q)
	}
	if len(f.extractor.calls) != 0 {
		t.Errorf("nothing was pending, extractor should not run")
	}
	if fs := f.stored(t, "tax-user").State.Flow(); fs != model.AwaitingSlot(model.FlowTaxIntake, 0) {
		t.Errorf("flow after turn 1 = %+v", fs)
	}

	out = f.turn(t, taxTurn("I pay 15k rent in Pune"))
	if q := followUp(t, out); q != fields[1].Prompt {
		t.Fatalf("turn 2 asked %q", q)
	}

	out = f.turn(t, taxTurn("about 22,000 a year"))
	if q := followUp(t, out); q != fields[2].Prompt {
		t.Fatalf("turn 3 asked %q", q)
	}

	out = f.turn(t, taxTurn("no loans"))
	res, ok := out.Data.(advisor.TaxResult)
	if !ok {
		t.Fatalf("turn 4 expected tax result, got %T", out.Data)
	}
	if res.AnnualIncome != DefaultAnnualIncome {
		t.Errorf("annual income = %v, want default", res.AnnualIncome)
	}
	if res.Deductions.Section80D != 22000 {
		t.Errorf("80D = %v, want 22000", res.Deductions.Section80D)
	}
	if res.Recommendation == "" {
		t.Errorf("expected a recommendation")
	}

	stored := f.stored(t, "tax-user")
	if fs := stored.State.Flow(); fs.Kind != model.FlowKindIdle {
		t.Errorf("flow after completion = %+v", fs)
	}
	var progress slot.Progress
	if _, err := stored.State.Get(model.StateKeyTaxQuestions, &progress); err != nil {
		t.Fatalf("progress: %v", err)
	}
	want := slot.Progress{"rent": 15000.0, "health_insurance": 22000.0, "loans": 0.0}
	if !reflect.DeepEqual(progress, want) {
		t.Errorf("progress = %v, want %v", progress, want)
	}

	wantFields := [][]string{
		{"rent", "health_insurance", "loans"},
		{"health_insurance", "loans"},
		{"loans"},
	}
	for i, call := range f.extractor.calls {
		if !reflect.DeepEqual(call.fields, wantFields[i]) {
			t.Errorf("extract call %d fields = %v, want %v", i, call.fields, wantFields[i])
		}
	}
	if len(stored.Messages) != 8 {
		t.Errorf("expected 8 log entries, got %d", len(stored.Messages))
	}
}

func TestHandleTurn_TaxUnresolvedAnswerReasks(t *testing.T) {
	f := newFixture(t)
	f.extractor.responses = []string{`{"rent": "a lot"}`}

	f.turn(t, taxTurn("tax please"))
	out := f.turn(t, taxTurn("I'd rather not say"))
	if q := followUp(t, out); q != slot.TaxIntake.Fields[0].Prompt {
		t.Errorf("expected rent question again, got %q", q)
	}
	if len(out.Warnings) != 0 {
		t.Errorf("an unclear answer is not a failure: %v", out.Warnings)
	}
}

func TestHandleTurn_TaxExtractorFailure(t *testing.T) {
	f := newFixture(t)
	f.extractor.err = errBoom

	f.turn(t, taxTurn("tax please"))
	out := f.turn(t, taxTurn("15000"))
	if q := followUp(t, out); q != slot.TaxIntake.Fields[0].Prompt {
		t.Errorf("expected rent question again, got %q", q)
	}
	if !contains(out.Warnings, WarnAnswerNotUnderstood) {
		t.Errorf("warnings = %v", out.Warnings)
	}
}

func TestHandleTurn_TaxIncomeFromMetadata(t *testing.T) {
	f := newFixture(t)
	f.extractor.responses = []string{`{"rent": 0, "health_insurance": 0, "loans": 0}`}

	f.turn(t, taxTurn("start"))
	in := taxTurn("none of those")
	in.Metadata.AnnualIncome = ptr(1200000.0)
	out := f.turn(t, in)

	res, ok := out.Data.(advisor.TaxResult)
	if !ok {
		t.Fatalf("expected tax result, got %T", out.Data)
	}
	if res.AnnualIncome != 1200000 {
		t.Errorf("annual income = %v", res.AnnualIncome)
	}
	if v, ok := f.stored(t, "tax-user").State.Number(model.StateKeyAnnualIncome); !ok || v != 1200000 {
		t.Errorf("annual income not remembered: %v %v", v, ok)
	}
}

func TestHandleTurn_LegacyAwaitingFlag(t *testing.T) {
	f := newFixture(t)
	f.extractor.responses = []string{`{"rent": 9000}`}

	legacy := model.NewSession()
	legacy.State.Set(model.StateKeyLegacyAwaitingTax, true)
	legacy.State.Set(model.StateKeyTaxQuestions, map[string]any{})
	if err := f.repo.Save(context.Background(), "tax-user", legacy); err != nil {
		t.Fatalf("seed: %v", err)
	}

	out := f.turn(t, taxTurn("9000 rent"))
	if q := followUp(t, out); q != slot.TaxIntake.Fields[1].Prompt {
		t.Errorf("expected health question, got %q", q)
	}
	stored := f.stored(t, "tax-user")
	if stored.State.Has(model.StateKeyLegacyAwaitingTax) {
		t.Errorf("legacy flag should be dropped")
	}
}

func TestHandleTurn_SpendingNarrativeFailure(t *testing.T) {
	f := newFixture(t)
	f.gen.err = errBoom
	path := f.upload(t, "stmt.csv", "Date,Description,Amount\n"+
		"2024-05-01,Salary,50000\n"+
		"2024-05-02,Swiggy,-15000\n"+
		"2024-05-03,House rent,-25000\n")

	out := f.turn(t, chat.TurnInput{
		SessionID:    "spender",
		Intent:       model.IntentSpendingPlan,
		Message:      "How is my spending?",
		DocumentPath: path,
	})

	res, ok := out.Data.(advisor.SpendingResult)
	if !ok {
		t.Fatalf("expected spending result, got %T", out.Data)
	}
	if res.TotalExpense != 40000 || res.Income != 50000 {
		t.Errorf("numbers = %+v", res)
	}
	if res.Narrative != "" || out.Summary != "" {
		t.Errorf("expected empty narrative and summary, got %q / %q", res.Narrative, out.Summary)
	}
	if !contains(out.Warnings, WarnNarrativeMissing) || !contains(out.Warnings, WarnSummaryMissing) {
		t.Errorf("warnings = %v", out.Warnings)
	}

	stored := f.stored(t, "spender")
	var snap model.Snapshot
	if ok, err := stored.State.Get(model.StateKeyParsedBank, &snap); !ok || err != nil {
		t.Fatalf("snapshot not stored: %v %v", ok, err)
	}
	if len(snap.Transactions) != 3 {
		t.Errorf("snapshot transactions = %d", len(snap.Transactions))
	}
	if last := stored.Messages[len(stored.Messages)-1]; last.Role != model.RoleAssistant || last.Content != "" {
		t.Errorf("assistant entry = %+v", last)
	}
}

func TestHandleTurn_UnreadableDocumentKeepsSnapshot(t *testing.T) {
	f := newFixture(t)
	good := f.upload(t, "good.csv", "Description,Amount\nSalary,1000\n")
	bad := f.upload(t, "bad.csv", "")

	in := chat.TurnInput{SessionID: "s1", Intent: model.IntentInvestment, Message: "invest", DocumentPath: good}
	f.turn(t, in)

	in.DocumentPath = bad
	out := f.turn(t, in)
	if !contains(out.Warnings, WarnDocumentUnreadable) {
		t.Errorf("warnings = %v", out.Warnings)
	}
	res := out.Data.(advisor.InvestmentResult)
	if res.Income != 1000 {
		t.Errorf("previous snapshot not used: %+v", res)
	}
}

func TestHandleTurn_PayslipSetsMonthlyIncome(t *testing.T) {
	f := newFixture(t)
	slip := f.upload(t, "slip.txt", "Basic: 40,000\nHRA: 10,000\nPF: 4,800\nTDS: 2,000")

	f.turn(t, chat.TurnInput{SessionID: "s1", Intent: model.IntentSpendingPlan, Message: "payslip", DocumentPath: slip})
	out := f.turn(t, chat.TurnInput{SessionID: "s1", Intent: model.IntentLoan, Message: "loan?"})

	res := out.Data.(advisor.LoanResult)
	if res.MonthlyIncome != 50000 || res.MaxEMI != 20000 {
		t.Errorf("loan from payslip income = %+v", res)
	}
}

func TestHandleTurn_LoanCappedAtZero(t *testing.T) {
	f := newFixture(t)
	out := f.turn(t, chat.TurnInput{
		SessionID: "borrower",
		Intent:    model.IntentLoan,
		Message:   "Can I get a loan?",
		Metadata: chat.Metadata{
			MonthlyIncome: ptr(50000.0),
			ExistingEMI:   ptr(30000.0),
			CIBILScore:    ptr(710),
		},
	})
	res, ok := out.Data.(advisor.LoanResult)
	if !ok {
		t.Fatalf("expected loan result, got %T", out.Data)
	}
	if res.MaxEMI != 0 || res.LoanAmount != 0 {
		t.Errorf("max_emi = %v, loan_amount = %v", res.MaxEMI, res.LoanAmount)
	}
	if !res.GoodCredit || res.CIBILScore != 710 {
		t.Errorf("credit = %+v", res)
	}
	if out.Summary != "Here is your summary." {
		t.Errorf("summary = %q", out.Summary)
	}
}

func TestHandleTurn_RejectsBadInput(t *testing.T) {
	f := newFixture(t)
	outside := t.TempDir() + "/stmt.csv"

	tests := []struct {
		name  string
		input chat.TurnInput
		want  error
	}{
		{name: "bad session id", input: chat.TurnInput{SessionID: "../etc", Intent: model.IntentLoan, Message: "hi"}, want: chat.ErrInvalidSessionID},
		{name: "empty session id", input: chat.TurnInput{Intent: model.IntentLoan, Message: "hi"}, want: chat.ErrInvalidSessionID},
		{name: "unknown intent", input: chat.TurnInput{SessionID: "s1", Intent: "horoscope", Message: "hi"}, want: chat.ErrUnknownIntent},
		{name: "empty message", input: chat.TurnInput{SessionID: "s1", Intent: model.IntentLoan, Message: "  "}, want: chat.ErrEmptyMessage},
		{name: "missing document", input: chat.TurnInput{SessionID: "s1", Intent: model.IntentSpendingPlan, Message: "hi", DocumentPath: "nope.csv"}, want: chat.ErrInvalidDocument},
		{name: "document outside uploads", input: chat.TurnInput{SessionID: "s1", Intent: model.IntentSpendingPlan, Message: "hi", DocumentPath: outside}, want: chat.ErrInvalidDocument},
		{name: "traversal", input: chat.TurnInput{SessionID: "s1", Intent: model.IntentSpendingPlan, Message: "hi", DocumentPath: "../../etc/passwd"}, want: chat.ErrInvalidDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.HandleTurn(context.Background(), tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
	if f.repo.loads != 0 || f.repo.saves != 0 {
		t.Errorf("rejected turns touched the store: %d loads, %d saves", f.repo.loads, f.repo.saves)
	}
}

func TestHandleTurn_AcceptsBareUploadName(t *testing.T) {
	f := newFixture(t)
	f.upload(t, "abc.csv", "Description,Amount\nSalary,100\n")

	out := f.turn(t, chat.TurnInput{SessionID: "s1", Intent: model.IntentSpendingPlan, Message: "hi", DocumentPath: "abc.csv"})
	if res := out.Data.(advisor.SpendingResult); res.Income != 100 {
		t.Errorf("income = %v", res.Income)
	}
}

func TestHandleTurn_StoreErrors(t *testing.T) {
	t.Run("load", func(t *testing.T) {
		f := newFixture(t)
		f.repo.loadErr = errBoom
		_, err := f.uc.HandleTurn(context.Background(), chat.TurnInput{SessionID: "s1", Intent: model.IntentLoan, Message: "hi"})
		if !errors.Is(err, chat.ErrSessionStore) {
			t.Fatalf("error = %v", err)
		}
		if f.repo.saves != 0 {
			t.Errorf("save attempted after failed load")
		}
	})

	t.Run("save", func(t *testing.T) {
		f := newFixture(t)
		f.repo.saveErr = errBoom
		_, err := f.uc.HandleTurn(context.Background(), chat.TurnInput{SessionID: "s1", Intent: model.IntentLoan, Message: "hi"})
		if !errors.Is(err, chat.ErrSessionStore) {
			t.Fatalf("error = %v", err)
		}
		if s := f.stored(t, "s1"); len(s.Messages) != 0 {
			t.Errorf("failed save left state behind: %+v", s)
		}
	})
}

func TestHandleTurn_CancelledBeforeSave(t *testing.T) {
	f := newFixture(t)
	f.gen.block = true

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := f.uc.HandleTurn(ctx, chat.TurnInput{SessionID: "s1", Intent: model.IntentLoan, Message: "hi"})
	if !errors.Is(err, chat.ErrTurnCancelled) {
		t.Fatalf("error = %v, want ErrTurnCancelled", err)
	}
	if f.repo.saves != 0 {
		t.Errorf("cancelled turn was saved")
	}
}

func TestHandleTurn_HistoryWindow(t *testing.T) {
	f := newFixture(t)
	var out chat.TurnOutput
	for i := 0; i < 6; i++ {
		out = f.turn(t, chat.TurnInput{SessionID: "chatty", Intent: model.IntentLoan, Message: fmt.Sprintf("m%d", i)})
	}
	if len(out.Messages) != DefaultHistoryWindow {
		t.Fatalf("window = %d, want %d", len(out.Messages), DefaultHistoryWindow)
	}
	if out.Messages[0].Content != "m2" {
		t.Errorf("window starts at %q, want m2", out.Messages[0].Content)
	}
	if n := len(f.stored(t, "chatty").Messages); n != 12 {
		t.Errorf("stored log = %d entries, want 12", n)
	}
}

func TestHandleTurn_SameSessionSerialised(t *testing.T) {
	f := newFixture(t)
	const n = 10

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.uc.HandleTurn(context.Background(), chat.TurnInput{
				SessionID: "shared", Intent: model.IntentLoan, Message: fmt.Sprintf("m%d", i),
			})
			if err != nil {
				t.Errorf("turn %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	s := f.stored(t, "shared")
	if len(s.Messages) != 2*n {
		t.Fatalf("lost update: %d entries, want %d", len(s.Messages), 2*n)
	}
	for i := 0; i < len(s.Messages); i += 2 {
		if s.Messages[i].Role != model.RoleUser || s.Messages[i+1].Role != model.RoleAssistant {
			t.Fatalf("turns interleaved at %d: %+v", i, s.Messages[i:i+2])
		}
	}
}

func TestHandleTurn_DistinctSessionsIsolated(t *testing.T) {
	f := newFixture(t)
	ids := []string{"alice", "bob", "carol", "dave"}

	var wg sync.WaitGroup
	for _, id := range ids {
		for j := 0; j < 3; j++ {
			wg.Add(1)
			go func(id string, j int) {
				defer wg.Done()
				in := chat.TurnInput{SessionID: id, Intent: model.IntentLoan, Message: id + "-msg"}
				in.Metadata.MonthlyIncome = ptr(1000.0)
				if _, err := f.uc.HandleTurn(context.Background(), in); err != nil {
					t.Errorf("%s: %v", id, err)
				}
			}(id, j)
		}
	}
	wg.Wait()

	for _, id := range ids {
		s := f.stored(t, id)
		if len(s.Messages) != 6 {
			t.Errorf("%s has %d entries, want 6", id, len(s.Messages))
		}
		for _, m := range s.Messages {
			if m.Role == model.RoleUser && m.Content != id+"-msg" {
				t.Errorf("%s saw foreign message %q", id, m.Content)
			}
		}
	}
}

func TestSession(t *testing.T) {
	f := newFixture(t)
	f.turn(t, chat.TurnInput{SessionID: "s1", Intent: model.IntentLoan, Message: "hi"})

	s, err := f.uc.Session(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Messages) != 2 {
		t.Errorf("messages = %d", len(s.Messages))
	}
	if _, err := f.uc.Session(context.Background(), "bad/id"); !errors.Is(err, chat.ErrInvalidSessionID) {
		t.Errorf("error = %v", err)
	}
}

func contains(items []string, want string) bool {
	for _, v := range items {
		if v == want {
			return true
		}
	}
	return false
}
