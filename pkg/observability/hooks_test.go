package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Explorer hooks
	e := NoopExplorerHooks{}
	e.OnSearchStart(ctx, "Bar")
	e.OnSearchComplete(ctx, "Bar", 42, time.Second, nil)
	e.OnDocCheckStart(ctx, "https://plotly.com/python/reference/bar/")
	e.OnDocCheckComplete(ctx, "https://plotly.com/python/reference/bar/", true, time.Second)
	e.OnRenderStart(ctx, "svg")
	e.OnRenderComplete(ctx, "svg", time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "doc")
	c.OnCacheMiss(ctx, "tree")
	c.OnCacheSet(ctx, "artifact", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "plotly.com", "/python/reference/bar/")
	h.OnResponse(ctx, "GET", "plotly.com", "/python/reference/bar/", 200, time.Second)
	h.OnError(ctx, "GET", "plotly.com", "/python/reference/bar/", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Explorer().(NoopExplorerHooks); !ok {
		t.Error("Explorer() should return NoopExplorerHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customExplorer := &testExplorerHooks{}
	SetExplorerHooks(customExplorer)
	if Explorer() != customExplorer {
		t.Error("SetExplorerHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Explorer().(NoopExplorerHooks); !ok {
		t.Error("Reset() should restore NoopExplorerHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testExplorerHooks{}
	SetExplorerHooks(custom)

	// Setting nil should be ignored
	SetExplorerHooks(nil)

	if Explorer() != custom {
		t.Error("SetExplorerHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testExplorerHooks struct{ NoopExplorerHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
