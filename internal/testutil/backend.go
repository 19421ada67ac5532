// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package testutil provides a fake QRify backend served over HTTP for tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/qrify/qrify/client"
)

// Route names usable with Fail.
const (
	RouteCreate        = "create"
	RouteList          = "list"
	RouteGet           = "get"
	RouteDelete        = "delete"
	RouteHistory       = "history"
	RouteStats         = "stats"
	RouteIncrementScan = "increment_scan"
)

// Request is a recorded incoming request.
type Request struct {
	Route    string
	Method   string
	Path     string
	Query    string
	DeviceID string
	Body     []byte
}

type failure struct {
	status int
	body   string
}

// FakeBackend serves a client.MemoryBackend under /api and records every
// request it receives.
type FakeBackend struct {
	Backend *client.MemoryBackend
	Server  *httptest.Server

	mu       sync.Mutex
	requests []Request
	failures map[string]failure
}

// NewFakeBackend starts the server; it is closed on test cleanup.
func NewFakeBackend(t testing.TB) *FakeBackend {
	t.Helper()
	f := &FakeBackend{
		Backend:  client.NewMemoryBackend(),
		failures: map[string]failure{},
	}
	f.Server = httptest.NewServer(f.router())
	t.Cleanup(f.Server.Close)
	return f
}

// URL is the API base URL to configure the client with.
func (f *FakeBackend) URL() string { return f.Server.URL + "/api" }

// Client returns an HTTPClient pointed at the fake with deviceID set.
func (f *FakeBackend) Client(deviceID string) *client.HTTPClient {
	return client.NewHTTPClient(client.Config{BaseURL: f.URL(), DeviceID: deviceID})
}

// Fail makes every request to route answer status with body until Recover.
func (f *FakeBackend) Fail(route string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[route] = failure{status: status, body: body}
}

func (f *FakeBackend) Recover(route string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.failures, route)
}

func (f *FakeBackend) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Request, len(f.requests))
	copy(out, f.requests)
	return out
}

// Count returns how many requests hit route.
func (f *FakeBackend) Count(route string) int {
	n := 0
	for _, r := range f.Requests() {
		if r.Route == route {
			n++
		}
	}
	return n
}

func (f *FakeBackend) router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/qr-codes").Subrouter()
	api.HandleFunc("/", f.handleCreate).Methods(http.MethodPost).Name(RouteCreate)
	api.HandleFunc("/", f.handleList).Methods(http.MethodGet).Name(RouteList)
	api.HandleFunc("/history/", f.handleHistory).Methods(http.MethodGet).Name(RouteHistory)
	api.HandleFunc("/stats/", f.handleStats).Methods(http.MethodGet).Name(RouteStats)
	api.HandleFunc("/{id}/", f.handleGet).Methods(http.MethodGet).Name(RouteGet)
	api.HandleFunc("/{id}/", f.handleDelete).Methods(http.MethodDelete).Name(RouteDelete)
	api.HandleFunc("/{id}/increment_scan/", f.handleIncrementScan).Methods(http.MethodPost).Name(RouteIncrementScan)
	r.Use(f.middleware)
	return r
}

func (f *FakeBackend) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		route := ""
		if cr := mux.CurrentRoute(r); cr != nil {
			route = cr.GetName()
		}
		f.mu.Lock()
		f.requests = append(f.requests, Request{
			Route:    route,
			Method:   r.Method,
			Path:     r.URL.Path,
			Query:    r.URL.RawQuery,
			DeviceID: r.Header.Get(client.DeviceIDHeader),
			Body:     body,
		})
		fail, failing := f.failures[route]
		f.mu.Unlock()

		if failing {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(fail.status)
			_, _ = w.Write([]byte(fail.body))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func device(r *http.Request) string { return r.Header.Get(client.DeviceIDHeader) }

func page(r *http.Request) int {
	n, _ := strconv.Atoi(r.URL.Query().Get("page"))
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, err error) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(apiErr.StatusCode)
		_, _ = w.Write(apiErr.Body)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func (f *FakeBackend) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in client.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "JSON parse error"})
		return
	}
	rec, err := f.Backend.Create(device(r), in)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (f *FakeBackend) handleList(w http.ResponseWriter, r *http.Request) {
	p, err := f.Backend.List(device(r), page(r))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (f *FakeBackend) handleHistory(w http.ResponseWriter, r *http.Request) {
	p, err := f.Backend.History(device(r), page(r))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (f *FakeBackend) handleStats(w http.ResponseWriter, r *http.Request) {
	s, err := f.Backend.Stats(device(r))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (f *FakeBackend) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := f.Backend.Get(device(r), client.ID(mux.Vars(r)["id"]))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (f *FakeBackend) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := f.Backend.Delete(device(r), client.ID(mux.Vars(r)["id"])); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeBackend) handleIncrementScan(w http.ResponseWriter, r *http.Request) {
	rec, err := f.Backend.IncrementScan(device(r), client.ID(mux.Vars(r)["id"]))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
