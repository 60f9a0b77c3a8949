package bough

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"
)

// captureStderr runs fn with os.Stderr redirected and returns what it wrote.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.String()
	}()

	fn()

	w.Close()
	os.Stderr = oldStderr
	return <-done
}

// recoverIn runs fn on a new goroutine and returns whatever it panicked with.
func recoverIn(fn func()) any {
	ch := make(chan any)
	go func() {
		defer func() { ch <- recover() }()
		fn()
	}()
	return <-ch
}

// ---- Debug mode tests ------------------------------------------------------

func TestDebugMode_ForeignGoroutinePanics(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	if err := s.Step(time.Millisecond); err != nil {
		t.Fatal(err)
	}

	r := recoverIn(func() { _ = s.Step(time.Millisecond) })
	if r == nil {
		t.Fatal("expected panic on Step from another goroutine, got none")
	}
	msg := fmt.Sprint(r)
	if !strings.Contains(msg, "goroutine") || !strings.Contains(msg, "Update") {
		t.Errorf("panic message = %q, want goroutine ownership message", msg)
	}
}

func TestDebugMode_OwnerIsFirstCaller(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	// The first goroutine to use the scene becomes its owner.
	if r := recoverIn(func() { _ = s.Step(time.Millisecond) }); r != nil {
		t.Fatalf("first use panicked: %v", r)
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic when the test goroutine uses a scene it does not own")
		}
	}()
	_ = s.Step(time.Millisecond)
}

func TestDebugMode_ResetClearsOwner(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	_ = s.Step(time.Millisecond)
	s.SetDebugMode(true)
	if r := recoverIn(func() { _ = s.Step(time.Millisecond) }); r != nil {
		t.Fatalf("step after reset panicked: %v", r)
	}
}

func TestReleaseMode_ForeignGoroutineNoPanic(t *testing.T) {
	s := NewScene()
	_ = s.Step(time.Millisecond)
	if r := recoverIn(func() { _ = s.Step(time.Millisecond) }); r != nil {
		t.Fatalf("release mode panicked: %v", r)
	}
}

func TestDebugMode_SpriteCountWarning(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	sprites := make([]*Sprite, debugMaxSpriteCount+1)
	for i := range sprites {
		sprites[i] = &Sprite{}
	}

	output := captureStderr(t, func() {
		s.Add(sprites...)
	})
	if !strings.Contains(output, "warning: scene has") {
		t.Errorf("expected sprite count warning in stderr, got: %q", output)
	}
}

func TestDebugMode_NoWarningUnderThreshold(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	output := captureStderr(t, func() {
		s.Add(newTestSprite(), newTestSprite())
	})
	if output != "" {
		t.Errorf("unexpected stderr output: %q", output)
	}
}

func TestDebugLog(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	stats := debugStats{
		updateTime:  100,
		collectTime: 50,
		submitTime:  80,
		spriteCount: 1000,
		drawn:       900,
		batch:       BatchStats{Drawables: 900, Runs: 12, Batches: 10, Singles: 2},
		drawCalls:   12,
	}
	output := captureStderr(t, func() { s.debugLog(stats) })

	for _, want := range []string{"[bough] update:", "sprites: 1000", "drawn: 900", "runs: 12", "draw calls: 12"} {
		if !strings.Contains(output, want) {
			t.Errorf("debug log missing %q in %q", want, output)
		}
	}
}

func TestDebugLog_ReleaseModeSilent(t *testing.T) {
	s := NewScene()
	output := captureStderr(t, func() { s.debugLog(debugStats{spriteCount: 1}) })
	if output != "" {
		t.Errorf("release mode logged: %q", output)
	}
}
