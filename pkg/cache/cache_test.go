package cache

import (
	"context"
	"testing"
	"time"
)

func TestSetAndGet(t *testing.T) {
	ctx := context.Background()
	c := New()
	c.Set(ctx, "key1", "value1", 1*time.Second)
	val, ok := c.Get(ctx, "key1")
	if !ok || val != "value1" {
		t.Fatalf("expected value1, got %v, exists=%v", val, ok)
	}
}

func TestExpiration(t *testing.T) {
	ctx := context.Background()
	c := New()
	c.Set(ctx, "key1", "value1", 100*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	_, ok := c.Get(ctx, "key1")
	if ok {
		t.Fatalf("expected expired key to return false")
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	c := New()
	c.Set(ctx, "key1", "value1", 1*time.Second)
	c.Delete("key1")
	_, ok := c.Get(ctx, "key1")
	if ok {
		t.Fatalf("expected deleted key to return false")
	}
}

func TestInvalidate(t *testing.T) {
	ctx := context.Background()
	c := New()
	c.Set(ctx, "dashboard:this_week", "w", 1*time.Second)
	c.Set(ctx, "dashboard:this_month", "m", 1*time.Second)
	c.Set(ctx, "session:1", "s1", 1*time.Second)
	c.Invalidate(ctx, "dashboard:")
	_, ok1 := c.Get(ctx, "dashboard:this_week")
	_, ok2 := c.Get(ctx, "dashboard:this_month")
	_, ok3 := c.Get(ctx, "session:1")
	if ok1 || ok2 {
		t.Fatalf("expected dashboard keys to be invalidated")
	}
	if !ok3 {
		t.Fatalf("expected session:1 to still exist")
	}
}
