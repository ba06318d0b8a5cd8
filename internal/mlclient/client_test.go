package mlclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skin-diagnosis-api/internal/apperrors"
)

func TestDiagnoseBareShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "doctor-key", r.Header.Get("access_token"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "lesion.png", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"malignant": 0.82, "benign": 0.18}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	result, err := c.Diagnose(context.Background(), []byte("png-bytes"), "lesion.png", "doctor-key")
	require.NoError(t, err)

	require.NotNil(t, result.Malignant)
	require.NotNil(t, result.Benign)
	assert.Equal(t, 0.82, *result.Malignant)
	assert.Equal(t, 0.18, *result.Benign)
}

func TestDiagnoseEnvelopeShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"diagnosis": [{"malignant": 0.07, "benign": 0.93}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	result, err := c.Diagnose(context.Background(), []byte("png-bytes"), "lesion.png", "doctor-key")
	require.NoError(t, err)

	require.NotNil(t, result.Malignant)
	assert.Equal(t, 0.07, *result.Malignant)
	assert.Equal(t, 0.93, *result.Benign)
}

func TestDiagnoseRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": "bad image"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.Diagnose(context.Background(), []byte("png-bytes"), "lesion.png", "doctor-key")
	require.Error(t, err)

	assert.Equal(t, apperrors.KindUpstream, apperrors.KindOf(err))
	assert.Equal(t, "ML API error.", apperrors.MessageOf(err))
	assert.Equal(t, http.StatusUnprocessableEntity, apperrors.StatusOf(err))
}

func TestDiagnoseNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Diagnose(context.Background(), []byte("png-bytes"), "lesion.png", "doctor-key")
	require.Error(t, err)

	assert.Equal(t, apperrors.KindUpstream, apperrors.KindOf(err))
	assert.Equal(t, "Diagnosis error.", apperrors.MessageOf(err))
	assert.Equal(t, http.StatusBadGateway, apperrors.StatusOf(err))
}

func TestDiagnoseBadResponseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.Diagnose(context.Background(), []byte("png-bytes"), "lesion.png", "doctor-key")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUpstream, apperrors.KindOf(err))
}
