package kernel

import (
	"context"
	"strings"
	"testing"
	"time"

	"nbterm/internal/cells"
	"nbterm/internal/events"
	"nbterm/internal/outputs"
)

func runStream(t *testing.T, input string) []events.Event {
	t.Helper()
	bus := events.NewBus()
	sub := bus.Subscribe()
	if err := NewStream(bus).Run(context.Background(), strings.NewReader(input)); err != nil {
		t.Fatalf("run: %v", err)
	}
	bus.Close()
	out := []events.Event{}
	for evt := range sub {
		out = append(out, evt)
	}
	return out
}

func TestStreamRegisterCell(t *testing.T) {
	got := runStream(t, `{"op":"register-cell","cell_id":"c1","name":"setup","code":"import marimo","hide_code":true}`+"\n")
	if len(got) != 1 {
		t.Fatalf("events = %d, want 1", len(got))
	}
	evt := got[0]
	if evt.Type != events.EventCellRegistered || evt.CellID != "c1" {
		t.Fatalf("event = %+v", evt)
	}
	payload := evt.Payload.(events.CellRegistered)
	if payload.Cell.Name != "setup" || payload.Cell.Code != "import marimo" {
		t.Errorf("cell = %+v", payload.Cell)
	}
	if !payload.Cell.Config.HideCode || payload.Cell.Config.Disabled {
		t.Errorf("config = %+v", payload.Cell.Config)
	}
}

func TestStreamRegisterCellDefaultName(t *testing.T) {
	got := runStream(t, `{"op":"register-cell","cell_id":"c1"}`+"\n")
	payload := got[0].Payload.(events.CellRegistered)
	if payload.Cell.Name != cells.DefaultCellName {
		t.Errorf("name = %q, want %q", payload.Cell.Name, cells.DefaultCellName)
	}
}

func TestStreamCellOpFansOut(t *testing.T) {
	// 一条 cell-op 同时携带输出与状态，翻译成两个事件。
	line := `{"op":"cell-op","cell_id":"c1","output":{"mimetype":"text/plain","channel":"output","data":"42"},"status":"idle","errored":false}`
	got := runStream(t, line+"\n")
	if len(got) != 2 {
		t.Fatalf("events = %d, want 2: %+v", len(got), got)
	}
	out := got[0].Payload.(events.CellOutput)
	if out.Output.MimeType != outputs.MimePlain || out.Output.Data != "42" {
		t.Errorf("output = %+v", out.Output)
	}
	status := got[1].Payload.(events.CellStatus)
	if status.Status == nil || *status.Status != cells.StatusIdle {
		t.Errorf("status = %+v", status)
	}
	if status.Errored == nil || *status.Errored {
		t.Errorf("errored = %v", status.Errored)
	}
}

func TestStreamStructuredJSONData(t *testing.T) {
	line := `{"op":"cell-op","cell_id":"c1","output":{"mimetype":"application/json","data":{"a":1}}}`
	got := runStream(t, line+"\n")
	if len(got) != 1 {
		t.Fatalf("events = %d, want 1", len(got))
	}
	out := got[0].Payload.(events.CellOutput)
	m, ok := out.Output.Data.(map[string]any)
	if !ok {
		t.Fatalf("data = %T, want structured value", out.Output.Data)
	}
	if m["a"] != float64(1) {
		t.Errorf("data = %v", m)
	}
}

func TestStreamDefaultsChannel(t *testing.T) {
	line := `{"op":"cell-op","cell_id":"c1","output":{"mimetype":"text/plain","data":"x"}}`
	got := runStream(t, line+"\n")
	out := got[0].Payload.(events.CellOutput)
	if out.Output.Channel != outputs.ChannelOutput {
		t.Errorf("channel = %q, want output", out.Output.Channel)
	}
}

func TestStreamSkipsBadLines(t *testing.T) {
	input := strings.Join([]string{
		`not json at all`,
		`{"op":"cell-op","cell_id":"c1","output":{"mimetype":"application/x-bogus","data":"x"}}`,
		`{"op":"cell-op","cell_id":"c1","status":"bogus-status"}`,
		`{"op":"reset"}`,
	}, "\n") + "\n"
	got := runStream(t, input)
	if len(got) != 1 || got[0].Type != events.EventSessionReset {
		t.Errorf("bad lines should be skipped, got %+v", got)
	}
}

func TestStreamConsoleWithResponseFansOut(t *testing.T) {
	// 同一条 cell-op 同时带 stdin 控制台输出与应答：两个事件，
	// 输出条目不能被应答吞掉。
	line := `{"op":"cell-op","cell_id":"c1","console":{"mimetype":"text/plain","channel":"stdin","data":"name? "},"response":"alice"}`
	got := runStream(t, line+"\n")
	if len(got) != 2 {
		t.Fatalf("events = %d, want 2: %+v", len(got), got)
	}
	first := got[0].Payload.(events.CellConsole)
	if first.Output.Channel != outputs.ChannelStdin || first.Output.Data != "name? " {
		t.Errorf("console output = %+v", first.Output)
	}
	if first.Response != "" {
		t.Errorf("console event should not carry the response, got %q", first.Response)
	}
	second := got[1].Payload.(events.CellConsole)
	if second.Response != "alice" {
		t.Errorf("response = %q", second.Response)
	}
}

func TestStreamConsoleResponse(t *testing.T) {
	line := `{"op":"cell-op","cell_id":"c1","response":"alice"}`
	got := runStream(t, line+"\n")
	if len(got) != 1 {
		t.Fatalf("events = %d, want 1", len(got))
	}
	console := got[0].Payload.(events.CellConsole)
	if console.Response != "alice" {
		t.Errorf("response = %q", console.Response)
	}
}

func TestStreamRunTiming(t *testing.T) {
	line := `{"op":"run-timing","cell_id":"c1","run_start_ms":1700000000000,"elapsed_ms":340}`
	got := runStream(t, line+"\n")
	timing := got[0].Payload.(events.RunTiming)
	if !timing.Start.Equal(time.UnixMilli(1700000000000)) {
		t.Errorf("start = %v", timing.Start)
	}
	if timing.Elapsed != 340*time.Millisecond {
		t.Errorf("elapsed = %v", timing.Elapsed)
	}
}

func TestStreamTimestampPropagates(t *testing.T) {
	line := `{"op":"remove-cell","cell_id":"c1","timestamp_ms":1700000000000}`
	got := runStream(t, line+"\n")
	if !got[0].Timestamp.Equal(time.UnixMilli(1700000000000)) {
		t.Errorf("timestamp = %v", got[0].Timestamp)
	}
}

func TestStreamContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus := events.NewBus()
	err := NewStream(bus).Run(ctx, strings.NewReader(`{"op":"reset"}`+"\n"))
	if err == nil {
		t.Error("cancelled context should surface an error")
	}
}
