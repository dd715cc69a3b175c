package db

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestHealthBody_JSON(t *testing.T) {
	body := healthBody{
		Status: "unhealthy",
		Schema: "public",
		Error:  "dial tcp: connection refused",
		Pool:   &PoolStats{MaxConns: 20, AcquireDuration: "0s"},
	}

	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(b)
	for _, want := range []string{`"status":"unhealthy"`, `"schema":"public"`, `"max_conns":20`, `"healthy":false`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}
}

func TestHealthBody_OmitsEmptyError(t *testing.T) {
	b, err := json.Marshal(healthBody{Status: "healthy", Pool: &PoolStats{Healthy: true}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), `"error"`) {
		t.Errorf("expected no error field, got %s", b)
	}
}
