package testing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCaptureSnapshot_Structure(t *testing.T) {
	tester := NewHookTesterWithT(t)
	tester.PumpComponent(counter)

	snap := tester.CaptureSnapshot()
	if snap.Tree == nil {
		t.Fatal("expected non-nil tree")
	}
	if snap.Tree.ID != "div#0" || snap.Tree.Class != "counter" {
		t.Errorf("expected div#0.counter root, got %s.%s", snap.Tree.ID, snap.Tree.Class)
	}
	button := snap.Tree.Children[1]
	if len(button.Events) != 1 || button.Events[0] != "click" {
		t.Errorf("expected click binding on button, got %v", button.Events)
	}
	if snap.Passes != 1 {
		t.Errorf("expected 1 pass, got %d", snap.Passes)
	}
}

func TestSnapshot_Diff(t *testing.T) {
	tester := NewHookTesterWithT(t)
	tester.PumpComponent(counter)
	a := tester.CaptureSnapshot()
	b := tester.CaptureSnapshot()
	if diff := a.Diff(b); diff != "" {
		t.Errorf("expected no diff for identical snapshots, got:\n%s", diff)
	}

	tester.TapLabel("inc")
	c := tester.CaptureSnapshot()
	diff := c.Diff(a)
	if diff == "" {
		t.Fatal("expected diff after state change")
	}
	if !strings.Contains(diff, `"text": "0"`) {
		t.Errorf("expected diff to mention the old text, got:\n%s", diff)
	}
}

func TestSnapshot_UpdateAndMatch(t *testing.T) {
	tester := NewHookTesterWithT(t)
	tester.PumpComponent(list)

	snap := tester.CaptureSnapshot()
	path := filepath.Join(t.TempDir(), "nested", "list.snapshot.json")
	if err := snap.UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected snapshot file: %v", err)
	}

	snap.MatchesFile(t, path)
}

type recordingT struct {
	*testing.T
	fatals []string
	errs   []string
}

func (r *recordingT) Fatalf(format string, args ...any) {
	r.fatals = append(r.fatals, format)
}

func (r *recordingT) Errorf(format string, args ...any) {
	r.errs = append(r.errs, format)
}

func TestSnapshot_MatchesFileMissing(t *testing.T) {
	tester := NewHookTesterWithT(t)
	tester.PumpComponent(list)

	rt := &recordingT{T: t}
	tester.CaptureSnapshot().MatchesFile(rt, filepath.Join(t.TempDir(), "missing.json"))
	if len(rt.fatals) != 1 || !strings.Contains(rt.fatals[0], "snapshot file missing") {
		t.Errorf("expected missing-file failure, got %v", rt.fatals)
	}
}
