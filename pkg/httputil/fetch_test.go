package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("col_a,col_b\n1,2\n"))
	}))
	defer srv.Close()

	got, err := FetchBytes(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("FetchBytes() failed: %v", err)
	}
	if want := "col_a,col_b\n1,2\n"; string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFetchBytes_ClientErrorFailsImmediately(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := FetchBytes(context.Background(), srv.Client(), srv.URL)
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if isRetryable(err) {
		t.Error("404 should not be retryable")
	}
	if calls != 1 {
		t.Errorf("404 should not be retried, got %d calls", calls)
	}
}

func TestFetchOnce_ServerErrorIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := fetchOnce(context.Background(), srv.Client(), srv.URL)
	if err == nil {
		t.Fatal("expected error for 500")
	}
	var re *RetryableError
	if !errors.As(err, &re) {
		t.Errorf("500 should be wrapped as retryable, got %T", err)
	}
}
