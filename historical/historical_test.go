package historical

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLastMinuteAggregatesParsesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("sort") != "desc" || q.Get("limit") != "30" || q.Get("adjusted") != "true" {
			t.Fatalf("unexpected query params: %v", q)
		}
		w.Write([]byte(`{"results":[{"t":2000,"v":50},{"t":1000,"v":30}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "key")
	aggs, err := c.LastMinuteAggregates(context.Background(), "AAPL", 0, 2000, 30)
	if err != nil {
		t.Fatalf("LastMinuteAggregates: %v", err)
	}
	if len(aggs) != 2 || aggs[0].StartMs != 2000 || aggs[1].Volume != 30 {
		t.Fatalf("unexpected aggregates: %+v", aggs)
	}
}

func TestLastMinuteAggregatesErrorsOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := New(srv.URL, "key")
	c.http.RetryMax = 0
	if _, err := c.LastMinuteAggregates(context.Background(), "AAPL", 0, 1000, 30); err == nil {
		t.Fatalf("expected error on 403 response")
	}
}
