// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"sync"

	"github.com/toeirei/paymaster/core/model"
)

// Record is a stored payment method.
type Record = model.Record

// Operation names used by FailNext and Break.
const (
	OpSearch     = "search"
	OpGet        = "get"
	OpCreate     = "create"
	OpUpdate     = "update"
	OpDelete     = "delete"
	OpSetDefault = "set-default"
)

// Request is a request seen by the fake.
type Request struct {
	Method    string
	Path      string
	Query     string
	Body      string
	RequestID string
}

// FakeAPI mimics the payment methods backend closely enough for the console:
// JSON bodies, `{"error": ...}` failures and the one-default-per-owner rule.
type FakeAPI struct {
	mu       sync.Mutex
	records  map[int]Record
	nextID   int
	failures map[string]string
	broken   map[string]bool
	requests []Request
}

func NewFakeAPI(seed ...Record) *FakeAPI {
	f := &FakeAPI{
		records:  make(map[int]Record),
		failures: make(map[string]string),
		broken:   make(map[string]bool),
	}
	f.Seed(seed...)
	return f
}

// Seed stores records as-is; records without an id get the next free one.
func (f *FakeAPI) Seed(records ...Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range records {
		if r.ID == 0 {
			f.nextID++
			r.ID = f.nextID
		}
		if r.ID > f.nextID {
			f.nextID = r.ID
		}
		f.records[r.ID] = r
	}
}

// FailNext makes the next call of op answer with `{"error": message}`.
func (f *FakeAPI) FailNext(op, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[op] = message
}

// Break makes the next call of op drop the connection without a response.
func (f *FakeAPI) Break(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.broken[op] = true
}

// Record returns the stored record with id.
func (f *FakeAPI) Record(id int) (Record, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	return r, ok
}

// Requests returns every request seen so far.
func (f *FakeAPI) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.requests...)
}

// LastRequest returns the most recent request.
func (f *FakeAPI) LastRequest() Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return Request{}
	}
	return f.requests[len(f.requests)-1]
}

// Handler serves the API under /api/payments.
func (f *FakeAPI) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/payments", f.wrap(OpSearch, f.search))
	mux.HandleFunc("POST /api/payments", f.wrap(OpCreate, f.create))
	mux.HandleFunc("GET /api/payments/{id}", f.wrap(OpGet, f.get))
	mux.HandleFunc("PUT /api/payments/{id}", f.wrap(OpUpdate, f.update))
	mux.HandleFunc("DELETE /api/payments/{id}", f.wrap(OpDelete, f.delete))
	mux.HandleFunc("PUT /api/payments/{id}/set-default", f.wrap(OpSetDefault, f.setDefault))
	return mux
}

type handlerFunc func(w http.ResponseWriter, r *http.Request, body []byte)

func (f *FakeAPI) wrap(op string, next handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		f.mu.Lock()
		f.requests = append(f.requests, Request{
			Method:    r.Method,
			Path:      r.URL.Path,
			Query:     r.URL.RawQuery,
			Body:      string(body),
			RequestID: r.Header.Get("X-Request-Id"),
		})
		broken := f.broken[op]
		delete(f.broken, op)
		msg, failing := f.failures[op]
		delete(f.failures, op)
		f.mu.Unlock()

		if broken {
			if hj, ok := w.(http.Hijacker); ok {
				if conn, _, err := hj.Hijack(); err == nil {
					_ = conn.Close()
					return
				}
			}
			panic(http.ErrAbortHandler)
		}
		if failing {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
			return
		}
		next(w, r, body)
	}
}

func (f *FakeAPI) search(w http.ResponseWriter, r *http.Request, _ []byte) {
	q := r.URL.Query()
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []Record{}
	for _, rec := range f.records {
		if t := q.Get("type"); t != "" && string(rec.Type) != t {
			continue
		}
		if n := q.Get("name"); n != "" && rec.Name != n {
			continue
		}
		if u := q.Get("user_id"); u != "" && strconv.Itoa(rec.UserID) != u {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func (f *FakeAPI) get(w http.ResponseWriter, r *http.Request, _ []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (f *FakeAPI) create(w http.ResponseWriter, r *http.Request, body []byte) {
	var rec Record
	if err := json.Unmarshal(body, &rec); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid payment method: " + err.Error()})
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	rec.ID = f.nextID
	rec.IsDefault = false
	f.records[rec.ID] = rec
	writeJSON(w, http.StatusCreated, rec)
}

func (f *FakeAPI) update(w http.ResponseWriter, r *http.Request, body []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.lookup(w, r)
	if !ok {
		return
	}
	id, isDefault := rec.ID, rec.IsDefault
	if err := json.Unmarshal(body, &rec); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid payment method: " + err.Error()})
		return
	}
	rec.ID, rec.IsDefault = id, isDefault
	f.records[id] = rec
	writeJSON(w, http.StatusOK, rec)
}

func (f *FakeAPI) delete(w http.ResponseWriter, r *http.Request, _ []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id, err := strconv.Atoi(r.PathValue("id")); err == nil {
		delete(f.records, id)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeAPI) setDefault(w http.ResponseWriter, r *http.Request, _ []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.lookup(w, r)
	if !ok {
		return
	}
	for id, other := range f.records {
		if other.UserID == rec.UserID {
			other.IsDefault = id == rec.ID
			f.records[id] = other
		}
	}
	writeJSON(w, http.StatusOK, model.DefaultChange{ID: rec.ID, UserID: rec.UserID})
}

// lookup resolves the {id} path value; callers hold f.mu.
func (f *FakeAPI) lookup(w http.ResponseWriter, r *http.Request) (Record, bool) {
	raw := r.PathValue("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": fmt.Sprintf("Payment with id: '%s' was not found.", raw)})
		return Record{}, false
	}
	rec, ok := f.records[id]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": fmt.Sprintf("Payment with id: '%d' was not found.", id)})
		return Record{}, false
	}
	return rec, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
