package ui

import (
	"testing"

	"verdict/internal/session"
)

func newTestModel(t *testing.T, files []string) *progressModel {
	t.Helper()
	events := make(chan session.Event)
	model, ok := NewProgressModel("analyzing", files, events).(*progressModel)
	if !ok {
		t.Fatal("NewProgressModel returned an unexpected model type")
	}
	return model
}

func TestDuplicatePathsKeepSeparateRows(t *testing.T) {
	model := newTestModel(t, []string{"a.tree", "a.tree"})

	model.applyEvent(session.Event{Index: 0, Path: "a.tree", Status: session.StatusDone, Diagnostics: 2})
	if model.items[0].status != session.StatusDone {
		t.Errorf("row 0 status = %v, want done", model.items[0].status)
	}
	if model.items[1].status != session.StatusQueued {
		t.Errorf("row 1 status = %v, want queued", model.items[1].status)
	}

	model.applyEvent(session.Event{Index: 1, Path: "a.tree", Status: session.StatusDone, Diagnostics: 5})
	if model.items[0].diagnostics != 2 || model.items[1].diagnostics != 5 {
		t.Errorf("rows share state: %+v", model.items)
	}
}

func TestApplyEventIgnoresOutOfRangeIndex(t *testing.T) {
	model := newTestModel(t, []string{"a.tree"})

	model.applyEvent(session.Event{Index: 3, Status: session.StatusDone})
	model.applyEvent(session.Event{Index: -1, Status: session.StatusDone})
	if model.items[0].status != session.StatusQueued {
		t.Errorf("row 0 status = %v, want queued", model.items[0].status)
	}
}
