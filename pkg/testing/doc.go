// Package testing provides a component testing harness for the hooks
// runtime.
//
// # Quick Start
//
// Create a tester, pump a component, and make assertions:
//
//	func TestCounter(t *testing.T) {
//	    tester := hookstest.NewHookTesterWithT(t)
//	    tester.PumpComponent(app.Counter(io.Discard))
//
//	    // Find nodes
//	    count := tester.Find(hookstest.ByClass("count")).First()
//
//	    // Activate bindings
//	    tester.TapLabel("setCount")
//
//	    // Assert state
//	    if !tester.Find(hookstest.ByText("1")).Exists() {
//	        t.Error("expected count 1")
//	    }
//	}
//
// # Background Work
//
// Async work started by a component should post its results through the
// tester's dispatcher. Pump drains it on the test goroutine:
//
//	load := todos.NewLoadTodos(client, tester.Dispatcher().Post)
//	tester.PumpComponent(app.TodoList(s, load))
//	tester.WaitForDispatch()
//	tester.PumpAndSettle()
//
// # Snapshot Testing
//
// Capture and compare view tree snapshots:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/counter.snapshot.json")
//
// Update snapshots with:
//
//	HOOKS_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import hookstest "github.com/go-drift/hooks/pkg/testing"
package testing
