// Package workflowtest provides an in-memory stand-in for the remote HR service
// and a browser-like client for end-to-end tests of the console.
package workflowtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/target/hr-console/internal/domain/model"
	"github.com/target/hr-console/internal/testutil"
)

// Call is one request received by the fake HR service.
type Call struct {
	Method        string
	Path          string
	Authorization string
}

type rejection struct {
	status  int
	message string
}

// HRService is an httptest server that implements the HR REST resources in memory.
// Mount point is /api; login lives at /api/auth/login.
type HRService struct {
	t  testutil.TestingTB
	ts *httptest.Server

	mu          sync.Mutex
	nextID      int
	employees   []model.Employee
	contracts   []model.Contract
	attendance  []model.AttendanceRecord
	departments []model.Department
	calls       []Call
	rejections  map[string]rejection
	accounts    map[string]string
	tokens      map[string]bool
	noSummary   bool
}

// NewHRService starts the fake and registers cleanup with t.
func NewHRService(t testutil.TestingTB) *HRService {
	t.Helper()
	s := &HRService{
		t:          t,
		rejections: make(map[string]rejection),
		accounts:   make(map[string]string),
		tokens:     make(map[string]bool),
		departments: []model.Department{
			{ID: "1", Name: "Engineering"},
			{ID: "2", Name: "Finance"},
			{ID: "3", Name: "Human Resources"},
		},
	}
	s.ts = httptest.NewServer(s.routes())
	t.Cleanup(s.ts.Close)
	return s
}

// BaseURL returns the API root to configure the gateway with.
func (s *HRService) BaseURL() string { return s.ts.URL + "/api" }

// AddAccount registers credentials accepted by /auth/login; token is returned on success
// and is the only bearer accepted for data calls.
func (s *HRService) AddAccount(email, password, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[email] = password + "\x00" + token
	s.tokens[token] = true
}

// RevokeToken makes later calls with token answer 401.
func (s *HRService) RevokeToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

// RejectNext makes the next request to "METHOD /path" fail with status and message.
func (s *HRService) RejectNext(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejections[method+" "+path] = rejection{status: status, message: message}
}

// DisableSummary makes GET /dashboard/summary answer 404.
func (s *HRService) DisableSummary() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.noSummary = true
}

// SeedEmployee stores an employee and returns it with its id.
func (s *HRService) SeedEmployee(e model.Employee) model.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.newID()
	s.employees = append(s.employees, e)
	return e
}

// SeedContract stores a contract and returns it with its id.
func (s *HRService) SeedContract(c model.Contract) model.Contract {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.newID()
	s.contracts = append(s.contracts, c)
	return c
}

// SeedAttendance stores an attendance record and returns it with its id.
func (s *HRService) SeedAttendance(a model.AttendanceRecord) model.AttendanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.newID()
	s.attendance = append(s.attendance, a)
	return a
}

// Employees returns a snapshot of stored employees.
func (s *HRService) Employees() []model.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Employee(nil), s.employees...)
}

// Contracts returns a snapshot of stored contracts.
func (s *HRService) Contracts() []model.Contract {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Contract(nil), s.contracts...)
}

// Attendance returns a snapshot of stored attendance records.
func (s *HRService) Attendance() []model.AttendanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.AttendanceRecord(nil), s.attendance...)
}

// Calls returns every request received so far.
func (s *HRService) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallsTo returns requests whose path equals path.
func (s *HRService) CallsTo(method, path string) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func (s *HRService) newID() model.ID {
	s.nextID++
	return model.ID(strconv.Itoa(s.nextID))
}

func (s *HRService) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/departments", s.authed(func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		writeJSON(w, http.StatusOK, s.departments)
	}))
	mux.HandleFunc("GET /api/dashboard/summary", s.authed(s.handleSummary))
	registerCollection(s, mux, "employees", &s.employees,
		func(e *model.Employee) *model.ID { return &e.ID })
	registerCollection(s, mux, "contracts", &s.contracts,
		func(c *model.Contract) *model.ID { return &c.ID })
	registerCollection(s, mux, "attendance", &s.attendance,
		func(a *model.AttendanceRecord) *model.ID { return &a.ID })
	return s.record(mux)
}

func (s *HRService) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/api")
		s.mu.Lock()
		s.calls = append(s.calls, Call{Method: r.Method, Path: path, Authorization: r.Header.Get("Authorization")})
		rej, ok := s.rejections[r.Method+" "+path]
		if ok {
			delete(s.rejections, r.Method+" "+path)
		}
		s.mu.Unlock()

		if ok {
			writeJSON(w, rej.status, map[string]string{"message": rej.message})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *HRService) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		ok := token != "" && s.tokens[token]
		s.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthenticated."})
			return
		}
		next(w, r)
	}
}

func (s *HRService) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		return
	}
	s.mu.Lock()
	entry, ok := s.accounts[creds.Email]
	s.mu.Unlock()
	password, token, _ := strings.Cut(entry, "\x00")
	if !ok || password != creds.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials."})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  map[string]string{"email": creds.Email, "name": "HR Admin"},
	})
}

func (s *HRService) handleSummary(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.noSummary {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
		return
	}
	writeJSON(w, http.StatusOK, model.SummarizeRecords(s.employees, s.contracts, s.attendance))
}

// registerCollection wires list/get/create/update/delete for one resource.
func registerCollection[T any](s *HRService, mux *http.ServeMux, name string, items *[]T, idOf func(*T) *model.ID) {
	base := "/api/" + name

	find := func(id string) int {
		for i := range *items {
			if string(*idOf(&(*items)[i])) == id {
				return i
			}
		}
		return -1
	}

	mux.HandleFunc("GET "+base, s.authed(func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		out := append([]T{}, *items...)
		writeJSON(w, http.StatusOK, out)
	}))
	mux.HandleFunc("GET "+base+"/{id}", s.authed(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		i := find(r.PathValue("id"))
		if i < 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found."})
			return
		}
		writeJSON(w, http.StatusOK, (*items)[i])
	}))
	mux.HandleFunc("POST "+base, s.authed(func(w http.ResponseWriter, r *http.Request) {
		var item T
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		*idOf(&item) = s.newID()
		*items = append(*items, item)
		writeJSON(w, http.StatusCreated, item)
	}))
	mux.HandleFunc("PUT "+base+"/{id}", s.authed(func(w http.ResponseWriter, r *http.Request) {
		var item T
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		i := find(r.PathValue("id"))
		if i < 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found."})
			return
		}
		*idOf(&item) = *idOf(&(*items)[i])
		(*items)[i] = item
		writeJSON(w, http.StatusOK, item)
	}))
	mux.HandleFunc("DELETE "+base+"/{id}", s.authed(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		i := find(r.PathValue("id"))
		if i < 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found."})
			return
		}
		*items = append((*items)[:i], (*items)[i+1:]...)
		w.WriteHeader(http.StatusNoContent)
	}))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
