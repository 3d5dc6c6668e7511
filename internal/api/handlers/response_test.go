package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorDetails(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondErrorDetails(rec, http.StatusBadRequest, "validation failed", []string{"email is required"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, ErrorResponse{Code: 400, Message: "validation failed", Details: []string{"email is required"}}, body)
}

func TestRespondError_OmitsEmptyDetails(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondNotFound(rec, "appointment not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"code":404,"message":"appointment not found"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"name":"Jane"}`},
		{name: "empty", body: ``, wantErr: true},
		{name: "unknown field", body: `{"name":"Jane","age":3}`, wantErr: true},
		{name: "two objects", body: `{"name":"Jane"}{"name":"Joe"}`, wantErr: true},
		{name: "malformed", body: `{"name":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var dst payload
			err := DecodeJSON(r, &dst)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Jane", dst.Name)
		})
	}
}
