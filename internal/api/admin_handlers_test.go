package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/5outh/towerlog/internal/models/dtos/responses"
)

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) responses.APIResponse[any] {
	t.Helper()
	var resp responses.APIResponse[any]
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return resp
}

func TestAdminUpdateUnknownAction(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/admin/update/{what}", AdminUpdateHandler(nil, nil))

	req := httptest.NewRequest("POST", "/admin/update/everything", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
	resp := decodeError(t, rr)
	if resp.Error != "Did not recognize that" {
		t.Errorf("Unexpected error message: %q", resp.Error)
	}
}

func TestAdminUpdateFlightsRequiresState(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/admin/update/{what}", AdminUpdateHandler(nil, nil))

	req := httptest.NewRequest("POST", "/admin/update/flights", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestAdminDeleteRefusesUnknownTarget(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/admin/delete/{what}", AdminDeleteHandler(nil))

	req := httptest.NewRequest("POST", "/admin/delete/flights", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
	resp := decodeError(t, rr)
	if resp.Error != "Probably don't want to do that" {
		t.Errorf("Unexpected error message: %q", resp.Error)
	}
}

func TestDataViewUnknownType(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/data/view/{type}", DataViewHandler(&Repositories{}))

	req := httptest.NewRequest("GET", "/data/view/secrets", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}
