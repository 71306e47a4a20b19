package notebook

import (
	"nbterm/internal/cells"
	"nbterm/internal/events"
	"nbterm/internal/outputs"
)

func defaultEventHandlers() []EventCellRenderer {
	return []EventCellRenderer{
		cellRegisteredHandler{},
		cellRemovedHandler{},
		cellOutputHandler{},
		cellConsoleHandler{},
		cellStatusHandler{},
		runTimingHandler{},
		sessionResetHandler{},
	}
}

type cellRegisteredHandler struct{}

func (cellRegisteredHandler) Type() events.EventType { return events.EventCellRegistered }

func (cellRegisteredHandler) Handle(r *Renderer, evt events.Event) {
	payload, ok := evt.Payload.(events.CellRegistered)
	if !ok {
		return
	}
	r.registerLocked(payload.Cell)
}

type cellRemovedHandler struct{}

func (cellRemovedHandler) Type() events.EventType { return events.EventCellRemoved }

func (cellRemovedHandler) Handle(r *Renderer, evt events.Event) {
	r.removeLocked(evt.CellID)
}

type cellOutputHandler struct{}

func (cellOutputHandler) Type() events.EventType { return events.EventCellOutput }

func (cellOutputHandler) Handle(r *Renderer, evt events.Event) {
	payload, ok := evt.Payload.(events.CellOutput)
	if !ok {
		return
	}
	state := r.stateOf(evt.CellID)
	if state == nil {
		return
	}
	output := payload.Output
	state.Output = &output
}

type cellConsoleHandler struct{}

func (cellConsoleHandler) Type() events.EventType { return events.EventCellConsole }

func (cellConsoleHandler) Handle(r *Renderer, evt events.Event) {
	payload, ok := evt.Payload.(events.CellConsole)
	if !ok {
		return
	}
	state := r.stateOf(evt.CellID)
	if state == nil {
		return
	}
	// 后到的 stdin 应答补到最近一条 stdin 控制台输出上，不新建条目。
	if payload.Response != "" {
		for i := len(state.ConsoleOutputs) - 1; i >= 0; i-- {
			if state.ConsoleOutputs[i].Channel == outputs.ChannelStdin {
				state.ConsoleOutputs[i].Response = payload.Response
				return
			}
		}
		return
	}
	state.ConsoleOutputs = append(state.ConsoleOutputs, cells.ConsoleOutput{Message: payload.Output})
}

type cellStatusHandler struct{}

func (cellStatusHandler) Type() events.EventType { return events.EventCellStatus }

func (cellStatusHandler) Handle(r *Renderer, evt events.Event) {
	payload, ok := evt.Payload.(events.CellStatus)
	if !ok {
		return
	}
	state := r.stateOf(evt.CellID)
	if state == nil {
		return
	}
	if payload.Status != nil {
		state.Status = *payload.Status
		// 新的执行周期：运行期字段整体作废重建。
		if *payload.Status == cells.StatusRunning {
			state.Output = nil
			state.Outline = nil
			state.ConsoleOutputs = state.ConsoleOutputs[:0]
			state.Interrupted = false
			state.Stopped = false
			state.Errored = false
			state.RunStartTimestamp = evt.Timestamp
			state.RunElapsedTime = nil
		}
	}
	if payload.StaleInputs != nil {
		state.StaleInputs = *payload.StaleInputs
	}
	if payload.Interrupted != nil {
		state.Interrupted = *payload.Interrupted
	}
	if payload.Stopped != nil {
		state.Stopped = *payload.Stopped
	}
	if payload.Errored != nil {
		state.Errored = *payload.Errored
	}
	if payload.DebuggerActive != nil {
		state.DebuggerActive = *payload.DebuggerActive
	}
}

type runTimingHandler struct{}

func (runTimingHandler) Type() events.EventType { return events.EventRunTiming }

func (runTimingHandler) Handle(r *Renderer, evt events.Event) {
	payload, ok := evt.Payload.(events.RunTiming)
	if !ok {
		return
	}
	state := r.stateOf(evt.CellID)
	if state == nil {
		return
	}
	elapsed := payload.Elapsed
	state.RunStartTimestamp = payload.Start
	state.RunElapsedTime = &elapsed
}

type sessionResetHandler struct{}

func (sessionResetHandler) Type() events.EventType { return events.EventSessionReset }

func (sessionResetHandler) Handle(r *Renderer, evt events.Event) {
	r.resetLocked()
}
