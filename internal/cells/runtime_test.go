package cells

import (
	"testing"
	"time"

	"nbterm/internal/outputs"
)

func TestNewRuntimeStateDefaults(t *testing.T) {
	st := NewRuntimeState(RuntimeDefaults{AutoInstantiate: true})
	if st.Status != StatusIdle {
		t.Errorf("status = %q, want idle", st.Status)
	}
	if st.Output != nil || st.Outline != nil {
		t.Error("output/outline should start nil")
	}
	if st.ConsoleOutputs == nil || len(st.ConsoleOutputs) != 0 {
		t.Errorf("console outputs should be empty non-nil, got %v", st.ConsoleOutputs)
	}
	if st.StaleInputs {
		t.Error("auto-instantiated notebooks start with fresh inputs")
	}
	if st.Interrupted || st.Stopped || st.Errored || st.DebuggerActive {
		t.Errorf("flags should start false: %+v", st)
	}
	if !st.RunStartTimestamp.IsZero() || st.RunElapsedTime != nil {
		t.Error("timing fields should start unset")
	}
}

func TestNewRuntimeStateStaleWithoutAutoInstantiate(t *testing.T) {
	st := NewRuntimeState(RuntimeDefaults{AutoInstantiate: false})
	if !st.StaleInputs {
		t.Error("without auto-instantiate a fresh cell has stale inputs")
	}
}

func TestNewRuntimeStateOptions(t *testing.T) {
	msg := outputs.Message{MimeType: outputs.MimePlain, Data: "x"}
	start := time.Now()
	st := NewRuntimeState(RuntimeDefaults{AutoInstantiate: true},
		WithOutput(&msg),
		WithStatus(StatusRunning),
		WithErrored(true),
		WithRunTiming(start, 2*time.Second),
	)
	if st.Output != &msg || st.Status != StatusRunning || !st.Errored {
		t.Errorf("got %+v", st)
	}
	if !st.RunStartTimestamp.Equal(start) || st.RunElapsedTime == nil || *st.RunElapsedTime != 2*time.Second {
		t.Errorf("timing = %v / %v", st.RunStartTimestamp, st.RunElapsedTime)
	}
}

func TestRunStatusValid(t *testing.T) {
	for _, s := range []RunStatus{StatusIdle, StatusQueued, StatusRunning, StatusDisabled} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if RunStatus("crashed").Valid() {
		t.Error("unknown status should be invalid")
	}
	if StatusDisabled.String() != "disabled-transitively" {
		t.Errorf("disabled status = %q", StatusDisabled)
	}
}
