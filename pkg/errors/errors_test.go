package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			appErr:   &AppError{Code: CodeNotFound, Message: "appointment not found"},
			expected: "NOT_FOUND: appointment not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "failed to save appointment",
				Err:     errors.New("store unreachable"),
			},
			expected: "INTERNAL_ERROR: failed to save appointment (caused by: store unreachable)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	original := errors.New("store unreachable")
	wrapped := Wrap(original, CodeInternal, "internal error", http.StatusInternalServerError)

	if !errors.Is(wrapped, original) {
		t.Errorf("errors.Is should find the original error")
	}
	if errors.Unwrap(wrapped) != original {
		t.Errorf("Unwrap() should return original error")
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"not found", NotFound("Doctor"), CodeNotFound, http.StatusNotFound},
		{"not found with id", NotFoundWithID("Appointment", "a-1"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("validation failed", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"invalid input", InvalidInput("bad token"), CodeInvalidInput, http.StatusBadRequest},
		{"bad request", BadRequest("bad body"), CodeBadRequest, http.StatusBadRequest},
		{"conflict", Conflict("duplicate"), CodeConflict, http.StatusConflict},
		{"internal", Internal("boom", nil), CodeInternal, http.StatusInternalServerError},
		{"timeout", Timeout("slow"), CodeTimeout, http.StatusGatewayTimeout},
		{"unavailable", Unavailable("Redis"), CodeUnavailable, http.StatusServiceUnavailable},
		{"rate limited", RateLimited("slow down"), CodeRateLimited, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %s, want %s", tt.err.Code, tt.wantCode)
			}
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("StatusCode() = %d, want %d", tt.err.StatusCode(), tt.wantStatus)
			}
		})
	}
}

func TestNotFoundWithID_Details(t *testing.T) {
	err := NotFoundWithID("Appointment", "a-1")

	if err.Message != "Appointment not found" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Details["id"] != "a-1" || err.Details["resource"] != "Appointment" {
		t.Errorf("unexpected details %v", err.Details)
	}
}

func TestStatusCode_DerivedFromCode(t *testing.T) {
	err := &AppError{Code: CodeValidation, Message: "missing patient name"}
	if err.StatusCode() != http.StatusUnprocessableEntity {
		t.Errorf("StatusCode() = %d, want %d", err.StatusCode(), http.StatusUnprocessableEntity)
	}

	err = &AppError{Code: "SOMETHING_ELSE"}
	if err.StatusCode() != http.StatusInternalServerError {
		t.Errorf("StatusCode() = %d, want %d", err.StatusCode(), http.StatusInternalServerError)
	}
}

func TestWithDetails(t *testing.T) {
	err := Validation("validation failed", nil).WithDetails(map[string]any{"field": "patientPhone"})
	if err.Details["field"] != "patientPhone" {
		t.Errorf("expected field 'patientPhone', got %v", err.Details["field"])
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("Doctor")
	if AsAppError(appErr) != appErr {
		t.Errorf("AsAppError() should return same AppError")
	}

	wrapped := fmt.Errorf("lookup: %w", appErr)
	if !IsAppError(wrapped) {
		t.Errorf("IsAppError() should see through wrapping")
	}
	if AsAppError(wrapped) != appErr {
		t.Errorf("AsAppError() should unwrap to the AppError")
	}

	regular := errors.New("regular error")
	if IsAppError(regular) {
		t.Errorf("IsAppError() should return false for regular error")
	}
	result := AsAppError(regular)
	if result.Code != CodeInternal || result.Err != regular {
		t.Errorf("AsAppError() should wrap regular error as internal error, got %+v", result)
	}
}

func TestAppError_ToJSON(t *testing.T) {
	out := string(NotFoundWithID("Appointment", "a-1").ToJSON())

	for _, want := range []string{`"code":"NOT_FOUND"`, `"message":"Appointment not found"`, `"id":"a-1"`} {
		if !strings.Contains(out, want) {
			t.Errorf("ToJSON() = %s, missing %s", out, want)
		}
	}
}
