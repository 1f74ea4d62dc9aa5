package certgen

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFetchAssetEmptyReference(t *testing.T) {
	if _, ok := FetchAsset(context.Background(), "", time.Second); ok {
		t.Error("Expected empty reference to be absent")
	}
	if _, ok := FetchAsset(context.Background(), "   ", time.Second); ok {
		t.Error("Expected whitespace reference to be absent")
	}
}

func TestFetchAssetRemote(t *testing.T) {
	payload := []byte("fake-image-bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	data, ok := FetchAsset(context.Background(), server.URL, time.Second)
	if !ok {
		t.Fatal("Expected remote fetch to succeed")
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("Expected %q, got %q", payload, data)
	}
}

func TestFetchAssetRemoteNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	if _, ok := FetchAsset(context.Background(), server.URL, time.Second); ok {
		t.Error("Expected 404 response to be absent")
	}
}

func TestFetchAssetTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	start := time.Now()
	_, ok := FetchAsset(context.Background(), server.URL, 100*time.Millisecond)
	elapsed := time.Since(start)

	if ok {
		t.Error("Expected hanging server to yield absent")
	}
	if elapsed > 2*time.Second {
		t.Errorf("Fetch took %s, expected it bounded by the timeout", elapsed)
	}
}

func TestFetchAssetLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	payload := []byte("local-bytes")
	if err := os.WriteFile(path, payload, 0644); err != nil {
		t.Fatal(err)
	}

	data, ok := FetchAsset(context.Background(), path, time.Second)
	if !ok {
		t.Fatal("Expected local file fetch to succeed")
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("Expected %q, got %q", payload, data)
	}

	if _, ok := FetchAsset(context.Background(), filepath.Join(t.TempDir(), "missing.png"), time.Second); ok {
		t.Error("Expected missing file to be absent")
	}
}
