package feedsdk

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAPIErrorRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	NewValidationError(map[string]string{"email": "required"}).WriteError(rec)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	err := parseErrorResponse(rec.Result(), rec.Body.Bytes())
	require.ErrorIs(t, err, ErrValidation)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "required", apiErr.Details["email"])
}

func TestParseErrorResponse(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
	}{
		{"typed body", http.StatusForbidden, `{"error":"permission_denied","error_description":"no"}`, ErrorCodePermissionDenied},
		{"non-json body", http.StatusBadGateway, `<html>bad gateway</html>`, ErrorCodeServerError},
		{"empty body", http.StatusNotFound, ``, ErrorCodeServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{StatusCode: tt.status}
			err := parseErrorResponse(resp, []byte(tt.body))

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, tt.status, apiErr.StatusCode)
			require.Equal(t, tt.wantCode, apiErr.Code)
		})
	}

	require.NoError(t, parseErrorResponse(&http.Response{StatusCode: http.StatusOK}, nil))
}

func TestAPIErrorIs(t *testing.T) {
	got := &APIError{StatusCode: http.StatusNotFound, Code: ErrorCodeNotFound, Description: "custom"}
	require.ErrorIs(t, got, ErrNotFound)
	require.NotErrorIs(t, got, ErrPermissionDenied)
}

func TestListOptionsQuery(t *testing.T) {
	require.Empty(t, ListOptions{}.query())
	require.Equal(t, "?limit=10&owner=u1&search=a+b", ListOptions{Search: "a b", Owner: "u1", Limit: 10}.query())
}
