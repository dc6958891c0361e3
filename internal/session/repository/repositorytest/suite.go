// Package repositorytest holds the behaviour every session backend must share.
package repositorytest

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"spendly/internal/model"
	"spendly/internal/session/repository"
)

// Run exercises repo against the session store contract. Ids are prefixed
// with prefix so shared external backends can be reused between runs.
func Run(t *testing.T, repo repository.Repository, prefix string) {
	t.Helper()
	ctx := context.Background()

	t.Run("unknown id loads empty", func(t *testing.T) {
		s, err := repo.Load(ctx, prefix+"missing")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Messages == nil || s.State == nil || len(s.Messages) != 0 || len(s.State) != 0 {
			t.Errorf("expected fresh session, got %+v", s)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		id := prefix + "roundtrip"
		want := Sample()

		if err := repo.Save(ctx, id, want); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, err := repo.Load(ctx, id)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		AssertEqual(t, got, want)
	})

	t.Run("save replaces wholesale", func(t *testing.T) {
		id := prefix + "replace"
		first := Sample()
		second := model.NewSession()
		second.Append(model.RoleUser, "only")

		if err := repo.Save(ctx, id, first); err != nil {
			t.Fatalf("save: %v", err)
		}
		if err := repo.Save(ctx, id, second); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, err := repo.Load(ctx, id)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		AssertEqual(t, got, second)
	})

	t.Run("loaded session is independent", func(t *testing.T) {
		id := prefix + "independent"
		if err := repo.Save(ctx, id, Sample()); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, _ := repo.Load(ctx, id)
		got.Append(model.RoleUser, "local edit")
		got.State.Set("local", true)

		again, _ := repo.Load(ctx, id)
		AssertEqual(t, again, Sample())
	})

	t.Run("concurrent saves never tear", func(t *testing.T) {
		id := prefix + "concurrent"
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				s := model.NewSession()
				for j := 0; j <= i; j++ {
					s.Append(model.RoleUser, fmt.Sprintf("m%d", j))
				}
				s.State.Set("writer", i)
				if err := repo.Save(ctx, id, s); err != nil {
					t.Errorf("save: %v", err)
				}
			}(i)
		}
		wg.Wait()

		got, err := repo.Load(ctx, id)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		writer, ok := got.State.Number("writer")
		if !ok || len(got.Messages) != int(writer)+1 {
			t.Errorf("torn document: %d messages from writer %v", len(got.Messages), writer)
		}
	})
}

// RunPurge checks Purger and Lister when the backend implements them.
func RunPurge(t *testing.T, repo repository.Repository, prefix string) {
	t.Helper()
	ctx := context.Background()

	purger, ok := repo.(repository.Purger)
	if !ok {
		t.Skip("backend does not implement Purger")
	}

	id := prefix + "purge"
	if err := repo.Save(ctx, id, Sample()); err != nil {
		t.Fatalf("save: %v", err)
	}

	n, err := purger.Purge(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if n != 0 {
		t.Errorf("fresh session purged")
	}

	if lister, ok := repo.(repository.Lister); ok {
		ids, err := lister.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if !contains(ids, id) {
			t.Errorf("list %v does not contain %s", ids, id)
		}
	}

	n, err = purger.Purge(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if n < 1 {
		t.Errorf("expected at least one purged session, got %d", n)
	}

	got, err := repo.Load(ctx, id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Messages) != 0 {
		t.Errorf("purged session still present")
	}
}

// Sample is a session with history, a snapshot and an unknown state key.
func Sample() model.Session {
	s := model.NewSession()
	s.Append(model.RoleUser, "How is my spending?")
	s.Append(model.RoleAssistant, "Food is 30% of your expenses.")
	s.State.Set(model.StateKeyParsedBank, model.Snapshot{
		Income: 50000,
		Transactions: []model.Transaction{
			{Date: "2024-05-01", Desc: "Swiggy", Amount: -1200, Category: "Food"},
		},
		EmergencyFund: 12500,
	})
	s.State.SetFlow(model.AwaitingSlot(model.FlowTaxIntake, 1))
	s.State["future_key"] = json.RawMessage(`{"nested":[1,2,3]}`)
	return s
}

// AssertEqual compares sessions by their persisted form.
func AssertEqual(t *testing.T, got, want model.Session) {
	t.Helper()
	g, err := repository.Encode(got)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	w, err := repository.Encode(want)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(g) != string(w) {
		t.Errorf("session mismatch:\n got %s\nwant %s", g, w)
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
