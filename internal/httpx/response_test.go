package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJSONWritesStatusAndContentType(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusCreated, map[string]int{"id": 7})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("wrong content type %q", ct)
	}
	var body map[string]int
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body["id"] != 7 {
		t.Fatalf("bad body %q err=%v", w.Body.String(), err)
	}
}

func TestJSONErrorEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"name": "required"})
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error != "validation_failed" {
		t.Fatalf("wrong code %q", resp.Error)
	}
	details, ok := resp.Details.(map[string]any)
	if !ok || details["name"] != "required" {
		t.Fatalf("details not preserved: %+v", resp.Details)
	}

	// details must be omitted entirely when nil
	w = httptest.NewRecorder()
	JSONError(w, http.StatusNotFound, "not_found", nil)
	if w.Body.String() != `{"error":"not_found"}` {
		t.Fatalf("unexpected envelope %q", w.Body.String())
	}
}
