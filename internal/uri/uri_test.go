package uri

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestFetchBase64(t *testing.T) {
	f := NewFetcher()
	want := []byte("hello media")
	uri := "base64://" + base64.StdEncoding.EncodeToString(want)
	got, err := f.Fetch(context.Background(), uri)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFetchBase64Invalid(t *testing.T) {
	f := NewFetcher()
	if _, err := f.Fetch(context.Background(), "base64://!!not-base64!!"); err == nil {
		t.Fatal("want error for invalid base64")
	}
}

func TestFetchFile(t *testing.T) {
	want := []byte{0x89, 'P', 'N', 'G'}
	path := filepath.Join(t.TempDir(), "img.png")
	if err := os.WriteFile(path, want, 0o644); err != nil {
		t.Fatal(err)
	}

	f := NewFetcher()
	for _, uri := range []string{"file://" + path, path} {
		got, err := f.Fetch(context.Background(), uri)
		if err != nil {
			t.Fatalf("Fetch(%q): %v", uri, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("Fetch(%q) = %v, want %v", uri, got, want)
		}
	}
}

func TestFetchHTTP(t *testing.T) {
	want := []byte("payload")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(want)
	}))
	defer srv.Close()

	f := NewFetcher()
	got, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFetchHTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewFetcher()
	if _, err := f.Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("want error for non-200 status")
	}
}
