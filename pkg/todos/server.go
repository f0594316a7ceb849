package todos

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Fixture is the on-disk database layout: {"todos": [...]}.
type Fixture struct {
	Todos []Todo `json:"todos" yaml:"todos"`
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// LoadFixture reads a JSON or YAML (by extension) fixture file. A missing
// file yields an empty fixture.
func LoadFixture(path string) (Fixture, error) {
	var f Fixture
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Fixture{Todos: []Todo{}}, nil
		}
		return f, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if isYAML(path) {
		err = yaml.Unmarshal(data, &f)
	} else {
		err = json.Unmarshal(data, &f)
	}
	if err != nil {
		return f, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if f.Todos == nil {
		f.Todos = []Todo{}
	}
	return f, nil
}

// SaveFixture writes f to path atomically, in the format chosen by the
// file extension.
func SaveFixture(path string, f Fixture) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(f)
	} else {
		data, err = json.MarshalIndent(f, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode fixture: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".fixture-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write fixture: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write fixture: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// Server is an in-memory mock of the /todos REST resource.
type Server struct {
	mu     sync.Mutex
	todos  []Todo
	nextID int64
	path   string

	srvMu    sync.Mutex
	server   *http.Server
	listener net.Listener
}

// NewServer returns a server seeded with todos.
func NewServer(todos []Todo) *Server {
	s := &Server{todos: slices.Clone(todos), nextID: 1}
	if s.todos == nil {
		s.todos = []Todo{}
	}
	for _, t := range s.todos {
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}
	return s
}

// OpenServer returns a server backed by the fixture at path. Every
// mutation is written back to the file.
func OpenServer(path string) (*Server, error) {
	f, err := LoadFixture(path)
	if err != nil {
		return nil, err
	}
	s := NewServer(f.Todos)
	s.path = path
	return s, nil
}

// Todos returns a copy of the stored todos.
func (s *Server) Todos() []Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.todos)
}

// Handler returns the HTTP routes of the resource.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /todos", s.handleList)
	mux.HandleFunc("POST /todos", s.handleCreate)
	mux.HandleFunc("GET /todos/{id}", s.handleGet)
	mux.HandleFunc("PATCH /todos/{id}", s.handleUpdate)
	mux.HandleFunc("PUT /todos/{id}", s.handleUpdate)
	mux.HandleFunc("DELETE /todos/{id}", s.handleDelete)
	return mux
}

// Start listens on addr and serves in the background. Returns the bound
// address (useful with port 0).
func (s *Server) Start(addr string) (string, error) {
	s.srvMu.Lock()
	defer s.srvMu.Unlock()

	if s.server != nil {
		return s.listener.Addr().String(), nil
	}

	// Bind first to fail fast on port conflicts.
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("todos server listen: %w", err)
	}
	server := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	s.server = server
	s.listener = listener

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.srvMu.Lock()
			s.server = nil
			s.listener = nil
			s.srvMu.Unlock()
			fmt.Fprintf(os.Stderr, "todos server error: %v\n", err)
		}
	}()
	return listener.Addr().String(), nil
}

// Shutdown gracefully stops a started server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.srvMu.Lock()
	server := s.server
	s.server = nil
	s.listener = nil
	s.srvMu.Unlock()

	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Todos())
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	i := s.indexOf(id)
	var todo Todo
	if i >= 0 {
		todo = s.todos[i]
	}
	s.mu.Unlock()
	if i < 0 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var todo Todo
	if err := json.NewDecoder(r.Body).Decode(&todo); err != nil {
		http.Error(w, fmt.Sprintf("invalid body: %v", err), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	if todo.ID == 0 || s.indexOf(todo.ID) >= 0 {
		todo.ID = s.nextID
	}
	if todo.ID >= s.nextID {
		s.nextID = todo.ID + 1
	}
	s.todos = append(s.todos, todo)
	err := s.persist()
	s.mu.Unlock()

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, todo)
}

// todoPatch holds the fields a PATCH may change.
type todoPatch struct {
	Title *string `json:"title"`
	Done  *bool   `json:"done"`
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch todoPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, fmt.Sprintf("invalid body: %v", err), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if patch.Title != nil {
		s.todos[i].Title = *patch.Title
	}
	if patch.Done != nil {
		s.todos[i].Done = *patch.Done
	}
	todo := s.todos[i]
	err := s.persist()
	s.mu.Unlock()

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	s.todos = slices.Delete(s.todos, i, i+1)
	err := s.persist()
	s.mu.Unlock()

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// indexOf must be called with s.mu held.
func (s *Server) indexOf(id int64) int {
	return slices.IndexFunc(s.todos, func(t Todo) bool { return t.ID == id })
}

// persist must be called with s.mu held.
func (s *Server) persist() error {
	if s.path == "" {
		return nil
	}
	return SaveFixture(s.path, Fixture{Todos: s.todos})
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
