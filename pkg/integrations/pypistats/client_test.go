package pypistats

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/pypeek/pkg/cache"
	"github.com/matzehuels/pypeek/pkg/errors"
)

func statsServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/packages/requests/recent":
			w.Write([]byte(`{"data":{"last_day":1,"last_month":123456,"last_week":7},"package":"requests","type":"recent_downloads"}`))
		case "/packages/broken/recent":
			w.Write([]byte(`<html>oops</html>`))
		case "/packages/flaky/recent":
			w.WriteHeader(http.StatusBadGateway)
		default:
			http.NotFound(w, r)
		}
	}))
}

func testClient(url string) *Client {
	return NewClient(cache.NewNullCache(), time.Hour, WithBaseURL(url))
}

func TestRecentDownloads(t *testing.T) {
	server := statsServer(t)
	defer server.Close()

	n, err := testClient(server.URL).RecentDownloads(context.Background(), "Requests", true)
	if err != nil {
		t.Fatalf("RecentDownloads: %v", err)
	}
	if n != 123456 {
		t.Errorf("RecentDownloads() = %d, want 123456", n)
	}
}

func TestRecentDownloads_Untracked(t *testing.T) {
	server := statsServer(t)
	defer server.Close()

	c := testClient(server.URL)
	for _, name := range []string{"not-tracked", "Another_One", "x"} {
		n, err := c.RecentDownloads(context.Background(), name, true)
		if err != nil {
			t.Errorf("RecentDownloads(%q) error: %v", name, err)
		}
		if n != 0 {
			t.Errorf("RecentDownloads(%q) = %d, want 0", name, n)
		}
	}
}

func TestRecentDownloads_Unavailable(t *testing.T) {
	server := statsServer(t)
	defer server.Close()

	c := testClient(server.URL)
	for _, name := range []string{"flaky", "broken"} {
		t.Run(name, func(t *testing.T) {
			n, err := c.RecentDownloads(context.Background(), name, true)
			if !stderrors.Is(err, errors.ErrStatsUnavailable) {
				t.Errorf("error = %v, want ErrStatsUnavailable", err)
			}
			if n != 0 {
				t.Errorf("RecentDownloads() = %d, want 0", n)
			}
		})
	}
}

func TestRecentDownloads_MalformedNotCached(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Write([]byte(`<html>maintenance</html>`))
			return
		}
		w.Write([]byte(`{"data":{"last_month":42}}`))
	}))
	defer server.Close()

	backend, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := NewClient(backend, time.Hour, WithBaseURL(server.URL))
	ctx := context.Background()

	if _, err := c.RecentDownloads(ctx, "requests", false); !stderrors.Is(err, errors.ErrStatsUnavailable) {
		t.Fatalf("first call error = %v, want ErrStatsUnavailable", err)
	}
	n, err := c.RecentDownloads(ctx, "requests", false)
	if err != nil {
		t.Fatalf("second call should reach the server again: %v", err)
	}
	if n != 42 {
		t.Errorf("RecentDownloads() = %d, want 42", n)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("server called %d times, want 2", got)
	}
}

func TestRecentDownloads_TransportError(t *testing.T) {
	server := statsServer(t)
	url := server.URL
	server.Close()

	_, err := testClient(url).RecentDownloads(context.Background(), "requests", true)
	if !stderrors.Is(err, errors.ErrNetwork) {
		t.Errorf("error = %v, want ErrNetwork", err)
	}
	if stderrors.Is(err, errors.ErrStatsUnavailable) {
		t.Error("transport failures should not be folded into ErrStatsUnavailable")
	}
}

func TestRecentDownloads_EmptyName(t *testing.T) {
	_, err := testClient("http://127.0.0.1:1").RecentDownloads(context.Background(), "  ", true)
	if !stderrors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}
