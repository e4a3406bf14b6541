package cache

import (
	"testing"

	"go.uber.org/zap"
)

func TestFleetListener_StopBeforeStart(t *testing.T) {
	l := NewFleetListener("host=localhost", func() {}, zap.NewNop())

	if err := l.Stop(); err != nil {
		t.Errorf("Stop() before Start() should not error, got %v", err)
	}

	// Stop is idempotent
	if err := l.Stop(); err != nil {
		t.Errorf("second Stop() should not error, got %v", err)
	}
}
