package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestKeyedRateLimiterAllow(t *testing.T) {
	tests := []struct {
		name     string
		rps      float64
		burst    int
		calls    int
		wantPass int
	}{
		{
			name:     "burst allows initial requests",
			rps:      1,
			burst:    3,
			calls:    3,
			wantPass: 3,
		},
		{
			name:     "exceeding burst blocks",
			rps:      1,
			burst:    2,
			calls:    5,
			wantPass: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := New(tt.rps, tt.burst)
			defer rl.Stop()

			passed := 0
			for i := 0; i < tt.calls; i++ {
				if rl.Allow("test") {
					passed++
				}
			}
			if passed != tt.wantPass {
				t.Errorf("passed = %d, want %d", passed, tt.wantPass)
			}
		})
	}
}

func TestKeyedRateLimiterIndependentKeys(t *testing.T) {
	rl := New(1, 1)
	defer rl.Stop()

	if !rl.Allow("key1") {
		t.Error("key1 first request should pass")
	}
	if rl.Allow("key1") {
		t.Error("key1 second request should be limited")
	}
	if !rl.Allow("key2") {
		t.Error("key2 should be independent and allowed")
	}
}

func TestKeyedRateLimiterWait(t *testing.T) {
	rl := New(100, 1)
	defer rl.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// First token is free, second needs a short wait.
	if err := rl.Wait(ctx, "k"); err != nil {
		t.Fatalf("first wait: %v", err)
	}
	if err := rl.Wait(ctx, "k"); err != nil {
		t.Fatalf("second wait: %v", err)
	}
}

func TestKeyedRateLimiterWaitCanceled(t *testing.T) {
	rl := New(0.001, 1)
	defer rl.Stop()

	rl.Allow("k")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := rl.Wait(ctx, "k"); err == nil {
		t.Error("expected context error from wait")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	rl := New(1, 1)
	rl.Stop()
	rl.Stop()
}
