package peersync_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/oae-tools/vozform/internal/peersync"
	"github.com/oae-tools/vozform/internal/record"
)

// wsURL converts an httptest server HTTP URL to a WebSocket URL.
func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func testBridge(code string) *record.Bridge {
	return &record.Bridge{
		Code: code,
		Fields: map[string]string{
			record.CodeField:     code,
			"COMPRIMENTO TRAMOS": "10;9;11",
		},
	}
}

func TestPushUpsertsIntoPeerStore(t *testing.T) {
	t.Parallel()
	store := record.NewMemStore()
	srv := httptest.NewServer(peersync.NewHandler(store, nil))
	defer srv.Close()

	c := peersync.NewClient(wsURL(srv), nil)
	if err := c.Push(context.Background(), testBridge("OAE-101")); err != nil {
		t.Fatalf("Push: %v", err)
	}

	got, err := store.Get(context.Background(), "OAE-101")
	if err != nil {
		t.Fatalf("Get after push: %v", err)
	}
	if got.Fields["COMPRIMENTO TRAMOS"] != "10;9;11" {
		t.Errorf("replicated fields = %v, want span lengths preserved", got.Fields)
	}
}

func TestPushTwiceUpdatesExistingRecord(t *testing.T) {
	t.Parallel()
	store := record.NewMemStore()
	srv := httptest.NewServer(peersync.NewHandler(store, nil))
	defer srv.Close()

	c := peersync.NewClient(wsURL(srv), nil)
	if err := c.Push(context.Background(), testBridge("OAE-7")); err != nil {
		t.Fatalf("first Push: %v", err)
	}

	updated := testBridge("OAE-7")
	updated.Fields["COMPRIMENTO TRAMOS"] = "12;12"
	if err := c.Push(context.Background(), updated); err != nil {
		t.Fatalf("second Push: %v", err)
	}

	bridges, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(bridges) != 1 {
		t.Fatalf("List returned %d records, want 1", len(bridges))
	}
	if got := bridges[0].Fields["COMPRIMENTO TRAMOS"]; got != "12;12" {
		t.Errorf("COMPRIMENTO TRAMOS = %q, want updated value", got)
	}
}

func TestPushMissingCodeRejected(t *testing.T) {
	t.Parallel()
	store := record.NewMemStore()
	srv := httptest.NewServer(peersync.NewHandler(store, nil))
	defer srv.Close()

	c := peersync.NewClient(wsURL(srv), nil)
	err := c.Push(context.Background(), &record.Bridge{Fields: map[string]string{"NOME": "sem código"}})
	if !errors.Is(err, peersync.ErrRejected) {
		t.Fatalf("Push err = %v, want ErrRejected", err)
	}
}

func TestPushDialFailure(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	c := peersync.NewClient("ws://127.0.0.1:1/sync", nil)
	if err := c.Push(ctx, testBridge("OAE-1")); err == nil {
		t.Fatal("expected dial error, got nil")
	}
}
