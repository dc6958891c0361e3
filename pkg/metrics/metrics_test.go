package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestTurnsTotal(t *testing.T) {
	before := testutil.ToFloat64(TurnsTotal.WithLabelValues("loan", OutcomeOK))
	TurnsTotal.WithLabelValues("loan", OutcomeOK).Inc()
	after := testutil.ToFloat64(TurnsTotal.WithLabelValues("loan", OutcomeOK))
	if after-before != 1 {
		t.Errorf("expected counter to grow by 1, got %v", after-before)
	}
}

func TestHandler(t *testing.T) {
	CollaboratorFailuresTotal.WithLabelValues(CollaboratorGenerator).Inc()

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "spendly_collaborator_failures_total") {
		t.Errorf("exposition is missing collaborator failures metric")
	}
}
