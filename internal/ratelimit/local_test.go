package ratelimit

import (
	"context"
	"testing"
)

func TestLocalLimiter_BurstThenBlock(t *testing.T) {
	// 60/min admits 60 at once and refills one token per second.
	l := NewLocalLimiter(60)
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		if !l.Allow(ctx, "10.0.0.1") {
			t.Fatalf("request %d should be allowed within burst", i+1)
		}
	}
	if l.Allow(ctx, "10.0.0.1") {
		t.Error("request past the burst should be blocked")
	}
	if !l.Allow(ctx, "10.0.0.2") {
		t.Error("other senders have their own bucket")
	}
}

func TestLocalLimiter_SmallLimit(t *testing.T) {
	l := NewLocalLimiter(1)
	ctx := context.Background()
	if !l.Allow(ctx, "10.0.0.1") {
		t.Fatal("first request should be admitted")
	}
	if l.Allow(ctx, "10.0.0.1") {
		t.Error("second request within the minute should be blocked")
	}
}

func TestLocalLimiter_Disabled(t *testing.T) {
	l := NewLocalLimiter(0)
	for i := 0; i < 1000; i++ {
		if !l.Allow(context.Background(), "10.0.0.1") {
			t.Fatalf("request %d blocked with limiting disabled", i+1)
		}
	}
}

func TestUnlimited(t *testing.T) {
	var l Limiter = Unlimited{}
	if !l.Allow(context.Background(), "anyone") {
		t.Error("Unlimited should allow everything")
	}
}
