package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func bufferedSpinner(ctx context.Context, message string) (*Spinner, *bytes.Buffer) {
	var buf bytes.Buffer
	s := newSpinnerWithContext(ctx, message)
	s.out = &buf
	return s, &buf
}

func TestSpinnerDraws(t *testing.T) {
	s, buf := bufferedSpinner(context.Background(), "Summing subsets...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Summing subsets...") {
		t.Errorf("output = %q, want the message", buf.String())
	}
	if !s.Cancelled() {
		t.Error("Cancelled() = false after Stop")
	}
}

func TestSpinnerParentCancel(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"Cancel", func() (context.Context, context.CancelFunc) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx, cancel
		}},
		{"Timeout", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 20*time.Millisecond)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()
			s, _ := bufferedSpinner(ctx, "Checking trees...")
			s.Start()
			time.Sleep(100 * time.Millisecond)
			if !s.Cancelled() {
				t.Error("Cancelled() = false after the parent context ended")
			}
			s.Stop()
		})
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s, _ := bufferedSpinner(context.Background(), "Stopping...")
	s.Start()
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s, buf := bufferedSpinner(context.Background(), "Never shown")
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop without Start blocked")
	}
	if buf.Len() != 0 {
		t.Errorf("output = %q, want nothing", buf.String())
	}
}

func TestSpinnerSetMessage(t *testing.T) {
	s, buf := bufferedSpinner(context.Background(), "Checking trees on 8 vertices...")
	s.Start()
	s.SetMessage("3/10 trees")
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "3/10 trees") {
		t.Errorf("output = %q, want the new message", buf.String())
	}
}

func TestSpinnerStopWithMessages(t *testing.T) {
	s, _ := bufferedSpinner(context.Background(), "Working...")
	s.Start()
	s.StopWithSuccess("Done")

	s, _ = bufferedSpinner(context.Background(), "Working...")
	s.Start()
	s.StopWithError("Failed")
}
