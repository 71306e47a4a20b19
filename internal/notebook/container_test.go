package notebook

import (
	"strings"
	"testing"

	tuirender "nbterm/internal/tui/render"
)

func contentLines(n int) []tuirender.Line {
	lines := make([]tuirender.Line, n)
	for i := range lines {
		lines[i] = tuirender.Line{Spans: []tuirender.Span{{Text: "line"}}}
	}
	return lines
}

func TestContainerNoOverflowNoToggle(t *testing.T) {
	ui := NewUIState()
	c := NewContainer("c1", ui, nil, 10)
	c.SetContent(contentLines(5))
	if c.Overflowing() {
		t.Error("5 lines under cap 10 should not overflow")
	}
	view := c.View()
	if len(view) != 5 {
		t.Errorf("view = %d lines, want 5 (no toggle line)", len(view))
	}
}

func TestContainerTruncatesAndToggles(t *testing.T) {
	ui := NewUIState()
	c := NewContainer("c1", ui, nil, 10)
	c.SetContent(contentLines(30))
	if !c.Overflowing() {
		t.Fatal("30 lines over cap 10 should overflow")
	}

	collapsed := c.View()
	if len(collapsed) != 11 {
		t.Errorf("collapsed view = %d lines, want 10 content + toggle", len(collapsed))
	}
	toggle := tuirender.LinesToText(collapsed[len(collapsed)-1:])
	if !strings.Contains(toggle, "expand output") || !strings.Contains(toggle, "20 more") {
		t.Errorf("toggle line = %q", toggle)
	}

	c.Toggle()
	expanded := c.View()
	if len(expanded) != 31 {
		t.Errorf("expanded view = %d lines, want 30 content + toggle", len(expanded))
	}
	if !strings.Contains(tuirender.LinesToText(expanded[len(expanded)-1:]), "collapse output") {
		t.Error("expanded view should end with a collapse line")
	}

	// 再次切换回到同一个折叠高度。
	c.Toggle()
	again := c.View()
	if len(again) != len(collapsed) {
		t.Errorf("double toggle: %d lines, want %d", len(again), len(collapsed))
	}
}

func TestContainerCapTightensWithTerminalHeight(t *testing.T) {
	ui := NewUIState()
	obs := NewSizeObserver()
	c := NewContainer("c1", ui, obs, 10)
	c.SetContent(contentLines(9))
	if c.Overflowing() {
		t.Fatal("9 lines under cap 10 should not overflow yet")
	}
	// 终端变矮：可见高度 8，上限收紧为 8-4=4。
	obs.Notify(80, 8)
	if !c.Overflowing() {
		t.Error("tightened cap should mark the same content overflowing")
	}
	view := c.View()
	if len(view) != 5 {
		t.Errorf("view = %d lines, want 4 content + toggle", len(view))
	}
}

func TestContainerExpandedStateSurvivesReset(t *testing.T) {
	// 展开标志属于界面状态，存放在容器外部；换一个容器实例仍可见。
	ui := NewUIState()
	first := NewContainer("c1", ui, nil, 10)
	first.Toggle()
	second := NewContainer("c1", ui, nil, 10)
	if !second.Expanded() {
		t.Error("expanded flag should be keyed by cell id, not container instance")
	}
	ui.Forget("c1")
	if second.Expanded() {
		t.Error("Forget should clear the flag")
	}
}

func TestSizeObserverRelease(t *testing.T) {
	obs := NewSizeObserver()
	calls := 0
	release := obs.Observe(func(w, h int) { calls++ })
	if obs.Observers() != 1 {
		t.Fatalf("observers = %d, want 1", obs.Observers())
	}
	obs.Notify(100, 40)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}

	release()
	if obs.Observers() != 0 {
		t.Errorf("observers after release = %d, want 0", obs.Observers())
	}
	obs.Notify(90, 30)
	if calls != 1 {
		t.Errorf("released observer still called: %d", calls)
	}
	// 幂等释放。
	release()
	if obs.Observers() != 0 {
		t.Errorf("double release changed observers: %d", obs.Observers())
	}
}

func TestSizeObserverReplaysLastSize(t *testing.T) {
	obs := NewSizeObserver()
	obs.Notify(120, 50)
	gotW, gotH := 0, 0
	obs.Observe(func(w, h int) { gotW, gotH = w, h })
	if gotW != 120 || gotH != 50 {
		t.Errorf("late observer got %dx%d, want 120x50", gotW, gotH)
	}
}

func TestContainerCloseReleasesObserver(t *testing.T) {
	obs := NewSizeObserver()
	c := NewContainer("c1", NewUIState(), obs, 10)
	if obs.Observers() != 1 {
		t.Fatalf("observers = %d, want 1", obs.Observers())
	}
	c.Close()
	if obs.Observers() != 0 {
		t.Errorf("observers after close = %d, want 0", obs.Observers())
	}
	c.Close()
	if obs.Observers() != 0 {
		t.Error("close should be idempotent")
	}
}
