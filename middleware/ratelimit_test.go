package middleware

import (
	"testing"
	"time"
)

func TestIPRateLimiter(t *testing.T) {
	rl := NewIPRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("request %d unexpectedly blocked", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Fatal("request over the limit was allowed")
	}

	// A different IP has its own budget.
	if !rl.Allow("5.6.7.8") {
		t.Fatal("second IP blocked by first IP's usage")
	}
}

func TestIPRateLimiterWindowExpiry(t *testing.T) {
	rl := NewIPRateLimiter(1, 10*time.Millisecond)

	if !rl.Allow("1.2.3.4") {
		t.Fatal("first request blocked")
	}
	if rl.Allow("1.2.3.4") {
		t.Fatal("second request inside window allowed")
	}

	time.Sleep(20 * time.Millisecond)
	if !rl.Allow("1.2.3.4") {
		t.Fatal("request after window expiry blocked")
	}
}
