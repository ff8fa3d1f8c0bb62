package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/NPrawn/food-classifier/internal/model"
	"github.com/NPrawn/food-classifier/internal/pipeline"
	"github.com/NPrawn/food-classifier/internal/preprocess"
	"github.com/NPrawn/food-classifier/internal/refdata"
)

type stubEnricher struct {
	result *pipeline.Result
	err    error
}

func (s *stubEnricher) Enrich([]byte) (*pipeline.Result, error) {
	return s.result, s.err
}

func newTestRouter(e Enricher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, New(e))
	return r
}

func multipartBody(t *testing.T, field string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, "food.jpg")
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&stubEnricher{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestPredictSuccess(t *testing.T) {
	unit := "100g"
	kcal := 250.0
	r := newTestRouter(&stubEnricher{result: &pipeline.Result{
		EnName:      "Bulgogi",
		KoName:      "불고기",
		Probability: 0.87,
		Nutrition:   refdata.NutritionRecord{Unit: &unit, CaloriesKcal: &kcal},
		Allergens:   []string{"대두"},
	}})

	body, contentType := multipartBody(t, "file", []byte("fake image bytes"))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/predict", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, "Bulgogi", got["en_name"])
	require.Equal(t, "불고기", got["ko_name"])
	require.InDelta(t, 0.87, got["probability"], 1e-6)
	require.Equal(t, []any{"대두"}, got["allergens"])

	nutrition, ok := got["nutrition"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "100g", nutrition["unit"])
	require.Equal(t, 250.0, nutrition["calories_kcal"])
	// Absent nutrients serialize as explicit nulls.
	require.Contains(t, nutrition, "protein_g")
	require.Nil(t, nutrition["protein_g"])
}

func TestPredictErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "decode error is the client's fault",
			err:        &preprocess.DecodeError{Err: bytes.ErrTooLarge},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "label mismatch is a server configuration error",
			err:        &model.LabelMismatchError{ModelClasses: 105, CatalogClasses: 100},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "unexpected error stays generic",
			err:        bytes.ErrTooLarge,
			wantStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&stubEnricher{err: tt.err})

			body, contentType := multipartBody(t, "file", []byte("whatever"))
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/predict", body)
			req.Header.Set("Content-Type", contentType)
			r.ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)

			var got map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			require.NotEmpty(t, got["error"])
			// Internal details must not leak to the client.
			require.NotContains(t, got["error"], "105")
		})
	}
}

func TestPredictMissingFile(t *testing.T) {
	r := newTestRouter(&stubEnricher{})

	tests := []struct {
		name        string
		body        *bytes.Buffer
		contentType string
	}{
		{"no body", bytes.NewBuffer(nil), ""},
		{"wrong field name", nil, ""},
	}

	body, contentType := multipartBody(t, "image", []byte("bytes"))
	tests[1].body = body
	tests[1].contentType = contentType

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/predict", tt.body)
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			r.ServeHTTP(w, req)
			require.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
