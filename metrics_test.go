package authvault

import (
	"context"
	"testing"
)

func TestMetricsCountOperations(t *testing.T) {
	engine := newTestEngine(t, withSeededDirectory(t), func(b *Builder) { b.WithMetricsEnabled(true) })
	ctx := context.Background()

	if _, err := engine.Login(ctx, "student@example.com", "password123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := engine.Login(ctx, "student@example.com", "wrong-one"); err == nil {
		t.Fatal("expected login failure")
	}
	if err := engine.SetupPin(ctx, "1234"); err != nil {
		t.Fatalf("SetupPin failed: %v", err)
	}

	snap := engine.MetricsSnapshot()
	if snap.Counters[MetricLoginSuccess] != 1 {
		t.Fatalf("login success counter = %d, want 1", snap.Counters[MetricLoginSuccess])
	}
	if snap.Counters[MetricLoginFailure] != 1 {
		t.Fatalf("login failure counter = %d, want 1", snap.Counters[MetricLoginFailure])
	}
	if snap.Counters[MetricPinSetup] != 1 {
		t.Fatalf("pin setup counter = %d, want 1", snap.Counters[MetricPinSetup])
	}
}

func TestMetricsDisabledSnapshotEmpty(t *testing.T) {
	engine := newTestEngine(t, withSeededDirectory(t))

	if _, err := engine.Login(context.Background(), "student@example.com", "password123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if len(engine.MetricsSnapshot().Counters) != 0 {
		t.Fatal("expected empty snapshot with metrics disabled")
	}
}

func TestMetricsIgnoreOutOfRangeID(t *testing.T) {
	m := newMetrics()
	m.Inc(metricCount + 10)
	if len(m.Snapshot().Counters) != 0 {
		t.Fatal("out-of-range id must not count")
	}
}
