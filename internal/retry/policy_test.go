package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
)

// TestDefaultPolicy verifies the baseline default values.
func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	if p.Mode != BackoffLinear {
		t.Fatalf("expected linear default mode got %s", p.Mode)
	}
	if p.Initial != time.Second {
		t.Fatalf("expected initial 1s got %v", p.Initial)
	}
	if p.Max != 30*time.Second {
		t.Fatalf("expected max 30s got %v", p.Max)
	}
	if p.MaxRetries != 2 {
		t.Fatalf("expected max retries 2 got %d", p.MaxRetries)
	}
}

// TestNewPolicyOverrides checks override precedence and clamping when initial > max.
func TestNewPolicyOverrides(t *testing.T) {
	p := NewPolicy(BackoffFixed, 5*time.Second, 2*time.Second, 5)
	if p.Initial != 2*time.Second {
		t.Fatalf("expected clamped initial 2s got %v", p.Initial)
	}
	if p.Max != 2*time.Second {
		t.Fatalf("expected max 2s got %v", p.Max)
	}
	if p.Mode != BackoffFixed {
		t.Fatalf("expected fixed mode got %s", p.Mode)
	}
	if p.MaxRetries != 5 {
		t.Fatalf("expected maxRetries 5 got %d", p.MaxRetries)
	}

	if p := NewPolicy("bogus", 0, 0, -1); p != DefaultPolicy() {
		t.Fatalf("expected defaults for invalid input got %+v", p)
	}
}

// TestDelayModes ensures fixed, linear, exponential behave and respect cap.
func TestDelayModes(t *testing.T) {
	fixed := NewPolicy(BackoffFixed, 100*time.Millisecond, 500*time.Millisecond, 3)
	for i := 1; i <= 3; i++ {
		if d := fixed.Delay(i); d != 100*time.Millisecond {
			t.Fatalf("fixed attempt %d expected 100ms got %v", i, d)
		}
	}

	cases := []struct {
		name    string
		policy  Policy
		attempt int
		want    time.Duration
	}{
		{"linear 1", NewPolicy(BackoffLinear, 100*time.Millisecond, 250*time.Millisecond, 5), 1, 100 * time.Millisecond},
		{"linear 2", NewPolicy(BackoffLinear, 100*time.Millisecond, 250*time.Millisecond, 5), 2, 200 * time.Millisecond},
		{"linear cap", NewPolicy(BackoffLinear, 100*time.Millisecond, 250*time.Millisecond, 5), 3, 250 * time.Millisecond},
		{"exp 1", NewPolicy(BackoffExponential, 50*time.Millisecond, 160*time.Millisecond, 5), 1, 50 * time.Millisecond},
		{"exp 2", NewPolicy(BackoffExponential, 50*time.Millisecond, 160*time.Millisecond, 5), 2, 100 * time.Millisecond},
		{"exp cap", NewPolicy(BackoffExponential, 50*time.Millisecond, 160*time.Millisecond, 5), 3, 160 * time.Millisecond},
		{"non-positive attempt", NewPolicy(BackoffLinear, 10*time.Millisecond, 20*time.Millisecond, 1), 0, 0},
	}
	for _, c := range cases {
		if got := c.policy.Delay(c.attempt); got != c.want {
			t.Fatalf("%s: expected %v got %v", c.name, c.want, got)
		}
	}
}

// TestValidate covers validation error paths.
func TestValidate(t *testing.T) {
	if err := DefaultPolicy().Validate(); err != nil {
		t.Fatalf("default policy should validate: %v", err)
	}
	for _, p := range []Policy{
		{Mode: BackoffLinear, Initial: 0, Max: time.Second, MaxRetries: 1},
		{Mode: BackoffLinear, Initial: time.Second, Max: 0, MaxRetries: 1},
		{Mode: BackoffLinear, Initial: time.Second, Max: time.Second, MaxRetries: -1},
	} {
		if err := p.Validate(); err == nil {
			t.Fatalf("expected error for %+v", p)
		}
	}
}

func TestDo(t *testing.T) {
	p := NewPolicy(BackoffFixed, time.Millisecond, time.Millisecond, 3)
	transient := ferrors.NetworkError("broker unavailable").Build()

	t.Run("retries transient errors", func(t *testing.T) {
		calls := 0
		err := p.Do(context.Background(), func(context.Context) error {
			calls++
			if calls < 3 {
				return transient
			}
			return nil
		})
		if err != nil || calls != 3 {
			t.Fatalf("expected success after 3 calls, got err=%v calls=%d", err, calls)
		}
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		calls := 0
		err := p.Do(context.Background(), func(context.Context) error {
			calls++
			return transient
		})
		if !errors.Is(err, transient) || calls != 4 {
			t.Fatalf("expected 4 calls and the transient error, got err=%v calls=%d", err, calls)
		}
	})

	t.Run("permanent errors are not retried", func(t *testing.T) {
		calls := 0
		_ = p.Do(context.Background(), func(context.Context) error {
			calls++
			return errors.New("permanent")
		})
		if calls != 1 {
			t.Fatalf("expected 1 call got %d", calls)
		}
	})

	t.Run("stops when context is done", func(t *testing.T) {
		slow := NewPolicy(BackoffFixed, time.Hour, time.Hour, 3)
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		err := slow.Do(ctx, func(context.Context) error { return transient })
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("expected deadline error got %v", err)
		}
	})
}
