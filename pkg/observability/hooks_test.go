package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	s := NoopStoreHooks{}
	s.OnLoad(ctx, "file", 10, time.Millisecond, nil)
	s.OnSave(ctx, "redis", 0, time.Millisecond, errors.New("down"))

	o := NoopOperationHooks{}
	o.OnOperation(ctx, "add_user", "user_added", time.Millisecond, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "shortest_path")
	c.OnCacheMiss(ctx, "recommend")
	c.OnCacheSet(ctx, "recommend", 128)

	h := NoopHTTPHooks{}
	h.OnResponse(ctx, "POST", "/add_user", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Store() should return NoopStoreHooks by default")
	}
	if _, ok := Operation().(NoopOperationHooks); !ok {
		t.Error("Operation() should return NoopOperationHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customStore := &testStoreHooks{}
	SetStoreHooks(customStore)
	if Store() != customStore {
		t.Error("SetStoreHooks should set custom hooks")
	}

	customOp := &testOperationHooks{}
	SetOperationHooks(customOp)
	if Operation() != customOp {
		t.Error("SetOperationHooks should set custom hooks")
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

	Reset()
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Reset() should restore NoopStoreHooks")
	}
	if _, ok := Operation().(NoopOperationHooks); !ok {
		t.Error("Reset() should restore NoopOperationHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testOperationHooks{}
	SetOperationHooks(custom)
	SetOperationHooks(nil)

	if Operation() != custom {
		t.Error("SetOperationHooks(nil) should be ignored")
	}
}

type testStoreHooks struct{ NoopStoreHooks }
type testOperationHooks struct{ NoopOperationHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
