package app

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-drift/hooks/pkg/errors"
	"github.com/go-drift/hooks/pkg/store"
	hookstest "github.com/go-drift/hooks/pkg/testing"
	"github.com/go-drift/hooks/pkg/todos"
)

func TestCounter(t *testing.T) {
	var out bytes.Buffer
	tester := hookstest.NewHookTesterWithT(t)
	if err := tester.PumpComponent(Counter(&out)); err != nil {
		t.Fatalf("PumpComponent failed: %v", err)
	}

	if got := out.String(); got != "Hello\nworld\n" {
		t.Errorf("Expected both effects on mount, got %q", got)
	}

	out.Reset()
	tester.TapLabel("setCount")
	if got := out.String(); got != "Hello\n" {
		t.Errorf("Expected only the count effect, got %q", got)
	}
	if got := tester.Find(hookstest.ByClass("count")).First().Label(); got != "1" {
		t.Errorf("Expected count 1, got %q", got)
	}

	out.Reset()
	tester.TapLabel("setName")
	if got := out.String(); got != "world\n" {
		t.Errorf("Expected only the name effect, got %q", got)
	}
	if got := tester.Find(hookstest.ByClass("name")).First().Label(); got != "李四" {
		t.Errorf("Expected name 李四, got %q", got)
	}

	out.Reset()
	tester.TapLabel("setName")
	if out.Len() != 0 {
		t.Errorf("Expected no effect when name is set to the same value, got %q", out.String())
	}
	if tester.Passes() != 4 {
		t.Errorf("Expected 4 passes, got %d", tester.Passes())
	}
}

func TestReducerCounter(t *testing.T) {
	tester := hookstest.NewHookTesterWithT(t)
	tester.PumpComponent(ReducerCounter)

	tester.TapLabel("+")
	tester.TapLabel("+")
	tester.TapLabel("-")

	if got := tester.Find(hookstest.ByClass("count")).First().Label(); got != "1" {
		t.Errorf("Expected count 1, got %q", got)
	}
}

func TestCounterReducer_Unknown(t *testing.T) {
	if got := CounterReducer(5, CounterAction("reset")); got != 5 {
		t.Errorf("Expected unknown action to keep 5, got %d", got)
	}
}

func newTodoServer(t *testing.T, seed ...todos.Todo) *todos.Client {
	ts := httptest.NewServer(todos.NewServer(seed).Handler())
	t.Cleanup(ts.Close)
	return todos.NewClient(ts.URL, time.Second)
}

func TestTodoList_LoadsOnMount(t *testing.T) {
	client := newTodoServer(t, todos.Todo{ID: 1, Title: "a"}, todos.Todo{ID: 2, Title: "b", Done: true})
	s := todos.NewStore()
	tester := hookstest.NewHookTesterWithT(t)

	if err := tester.PumpComponent(TodoList(s, todos.NewLoadTodos(client, nil))); err != nil {
		t.Fatalf("PumpComponent failed: %v", err)
	}

	labels := tester.Find(hookstest.ByTag("label")).Texts()
	if strings.Join(labels, ",") != "a,b" {
		t.Errorf("Expected a,b, got %v", labels)
	}
	if !tester.Find(hookstest.ByKey(int64(2))).First().HasClass("completed") {
		t.Error("Expected done todo to be marked completed")
	}
}

func TestTodoList_LoadsThroughDispatcher(t *testing.T) {
	client := newTodoServer(t, todos.Todo{ID: 1, Title: "a"})
	s := todos.NewStore()
	tester := hookstest.NewHookTesterWithT(t)

	tester.PumpComponent(TodoList(s, todos.NewLoadTodos(client, tester.Dispatcher().Post)))
	if tester.Find(hookstest.ByTag("li")).Exists() {
		t.Error("Expected no items before the load result is drained")
	}

	tester.WaitForDispatch()
	if err := tester.PumpAndSettle(); err != nil {
		t.Fatalf("PumpAndSettle failed: %v", err)
	}
	if got := tester.Find(hookstest.ByTag("li")).Count(); got != 1 {
		t.Errorf("Expected 1 item, got %d", got)
	}
}

func TestTodoList_AddToggleDelete(t *testing.T) {
	s := todos.NewStore()
	tester := hookstest.NewHookTesterWithT(t)
	tester.PumpComponent(TodoList(s, nil))

	if err := tester.TapLabel(AddLabel); err != nil {
		t.Fatalf("TapLabel failed: %v", err)
	}
	tester.TapLabel(AddLabel)
	if got := tester.Find(hookstest.ByText(NewTodoTitle)).Count(); got != 2 {
		t.Fatalf("Expected 2 new todos, got %d", got)
	}

	if err := tester.Tap(hookstest.ByClass("toggle")); err != nil {
		t.Fatalf("Tap failed: %v", err)
	}
	first := todos.SelectAllTodos(s.State())[0]
	if !first.Done {
		t.Error("Expected first todo done after toggling")
	}
	if !tester.Find(hookstest.ByClass("toggle")).First().Checked {
		t.Error("Expected checkbox to reflect the done state")
	}

	if err := tester.Tap(hookstest.ByClass("destroy")); err != nil {
		t.Fatalf("Tap failed: %v", err)
	}
	if got := tester.Find(hookstest.ByTag("li")).Count(); got != 1 {
		t.Errorf("Expected 1 todo left, got %d", got)
	}
	if _, ok := todos.Adapter.SelectByID(s.State().Todos.EntityState, first.ID); ok {
		t.Error("Expected the destroyed todo to be removed from the store")
	}
}

type quietHandler struct{}

func (quietHandler) HandleError(*errors.HookError)  {}
func (quietHandler) HandlePanic(*errors.PanicError) {}

func TestTodoList_ShowsLoadError(t *testing.T) {
	errors.SetHandler(quietHandler{})
	defer errors.SetHandler(nil)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer ts.Close()

	s := todos.NewStore()
	tester := hookstest.NewHookTesterWithT(t)
	tester.PumpComponent(TodoList(s, todos.NewLoadTodos(todos.NewClient(ts.URL, time.Second), nil)))

	errNode := tester.Find(hookstest.ByClass("error"))
	if !errNode.Exists() || !strings.Contains(errNode.First().Label(), "500") {
		t.Errorf("Expected the load error to be shown, got %v", errNode.Texts())
	}
}

func TestTodoList_DisposeUnsubscribes(t *testing.T) {
	s := todos.NewStore()
	tester := hookstest.NewHookTester()
	tester.PumpComponent(TodoList(s, nil))

	if s.ListenerCount() != 2 {
		t.Errorf("Expected 2 selector subscriptions, got %d", s.ListenerCount())
	}
	tester.Cleanup()
	if s.ListenerCount() != 0 {
		t.Errorf("Expected no subscriptions after dispose, got %d", s.ListenerCount())
	}
}

func TestTodoList_LoggerMiddleware(t *testing.T) {
	var log bytes.Buffer
	tester := hookstest.NewHookTesterWithT(t)
	s := todos.NewStore(store.Logger[todos.RootState](store.LoggerOptions{
		Out:       &log,
		Collapsed: true,
		Now:       tester.Clock().Now,
	}))
	tester.PumpComponent(TodoList(s, nil))
	tester.TapLabel(AddLabel)

	if !strings.Contains(log.String(), "action todos/addTodo @ 00:00:00.000") {
		t.Errorf("Expected logged addTodo, got %q", log.String())
	}
}
