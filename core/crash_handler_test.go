package core

import (
	"testing"
)

type fakeScreen struct {
	finalized int
}

func (f *fakeScreen) Fini() { f.finalized++ }

func stubExit(t *testing.T) *int {
	t.Helper()
	code := -1
	prev := exitFunc
	exitFunc = func(c int) { code = c }
	t.Cleanup(func() { exitFunc = prev })
	return &code
}

func TestHandleCrashFinalizesScreenOnce(t *testing.T) {
	code := stubExit(t)
	screen := &fakeScreen{}
	SetCrashScreen(screen)

	HandleCrash("boom")
	if screen.finalized != 1 {
		t.Errorf("Expected screen finalized once, got %d", screen.finalized)
	}
	if *code != 1 {
		t.Errorf("Expected exit code 1, got %d", *code)
	}

	// A second crash must not finalize again
	HandleCrash("again")
	if screen.finalized != 1 {
		t.Errorf("Expected no second finalize, got %d", screen.finalized)
	}
}

func TestHandleCrashNilIsNoop(t *testing.T) {
	code := stubExit(t)
	HandleCrash(nil)
	if *code != -1 {
		t.Errorf("Expected no exit for nil panic value, got %d", *code)
	}
}

func TestGoRecoversPanic(t *testing.T) {
	done := make(chan int, 1)
	prev := exitFunc
	exitFunc = func(c int) { done <- c }
	t.Cleanup(func() { exitFunc = prev })
	SetCrashScreen(nil)

	Go(func() { panic("worker failed") })

	if c := <-done; c != 1 {
		t.Errorf("Expected exit code 1 from recovered goroutine, got %d", c)
	}
}
