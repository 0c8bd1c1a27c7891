package e2e

import (
	"net/http"
	"testing"
	"time"
)

// WaitFor polls cond until it holds or the deadline passes.
func WaitFor(t testing.TB, timeout time.Duration, what string, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out after %v waiting for %s", timeout, what)
}

func WaitForShutdown(t testing.TB, errCh chan error) {
	t.Helper()

	select {
	case <-time.After(5 * time.Second):
		t.Fatalf("run(ctx) did not exit after cancel")
	case err := <-errCh:
		if err != nil {
			t.Fatalf("run(ctx) returned error: %v", err)
		}
	}
}

func WaitForHealthReady(t testing.TB, client *http.Client, baseURL string) *http.Response {
	t.Helper()

	var resp *http.Response
	var err error

	for i := 0; i < 25; i++ {
		resp, err = client.Get(baseURL + "/health")
		if err == nil {
			return resp
		}
		time.Sleep(200 * time.Millisecond)
	}

	t.Fatalf("failed to call /health: %v", err)
	return nil
}
