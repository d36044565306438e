// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLogger(t *testing.T) {
	t.Run("passes through status and body", func(t *testing.T) {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"1"}`))
		})

		req := httptest.NewRequest(http.MethodPost, "/api/templates", nil)
		rr := httptest.NewRecorder()
		Logger(inner).ServeHTTP(rr, req)

		if rr.Code != http.StatusCreated {
			t.Errorf("status: got %d, want 201", rr.Code)
		}
		if rr.Body.String() != `{"id":"1"}` {
			t.Errorf("body: got %q", rr.Body.String())
		}
	})

	t.Run("server error", func(t *testing.T) {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/templates/x/preview", nil)
		rr := httptest.NewRecorder()
		Logger(inner).ServeHTTP(rr, req)

		if rr.Code != http.StatusBadGateway {
			t.Errorf("status: got %d, want 502", rr.Code)
		}
	})
}

func TestStatusRecorder(t *testing.T) {
	t.Run("first WriteHeader wins", func(t *testing.T) {
		rec := &statusRecorder{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}
		rec.WriteHeader(http.StatusNotFound)
		rec.WriteHeader(http.StatusInternalServerError)

		if rec.status != http.StatusNotFound {
			t.Errorf("status: got %d, want 404", rec.status)
		}
	})

	t.Run("Write defaults to 200 and counts bytes", func(t *testing.T) {
		rec := &statusRecorder{ResponseWriter: httptest.NewRecorder()}
		rec.Write([]byte("<html>"))
		rec.Write([]byte("</html>"))

		if rec.status != http.StatusOK {
			t.Errorf("status: got %d, want 200", rec.status)
		}
		if rec.bytes != 13 {
			t.Errorf("bytes: got %d, want 13", rec.bytes)
		}
	})
}
