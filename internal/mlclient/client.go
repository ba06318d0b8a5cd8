// Package mlclient calls the external ML classification service that scores
// lesion images. The call is a single attempt with a client-side timeout; a
// non-2xx response surfaces as an upstream error carrying the remote status
// and body.
package mlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"skin-diagnosis-api/internal/apperrors"
	"skin-diagnosis-api/internal/models"
)

// Client talks to the ML diagnosis endpoint
type Client struct {
	client  *http.Client
	baseURL string
}

// NewClient creates a diagnosis client for the given endpoint URL
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
	}
}

// wireResponse accepts both response shapes the service has been observed to
// return: the bare probability pair, and the pair wrapped in a
// `{"diagnosis": [...]}` envelope.
type wireResponse struct {
	Malignant *float64                 `json:"malignant"`
	Benign    *float64                 `json:"benign"`
	Diagnosis []models.DiagnosisResult `json:"diagnosis"`
}

// Diagnose submits the raw image bytes for classification, authenticating
// with the doctor's access key. Not retried; fail-fast on any error.
func (c *Client) Diagnose(ctx context.Context, imageBytes []byte, filename, apiKey string) (*models.DiagnosisResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create multipart body: %w", err)
	}
	if _, err := part.Write(imageBytes); err != nil {
		return nil, fmt.Errorf("failed to write multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("access_token", apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUpstream, "Diagnosis error.", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, apperrors.Upstream(resp.StatusCode, "ML API error.",
			fmt.Errorf("ML API returned status %d: %s", resp.StatusCode, string(respBody)))
	}

	var wire wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, apperrors.Wrap(apperrors.KindUpstream, "Diagnosis error.",
			fmt.Errorf("failed to decode ML response: %w", err))
	}

	return normalize(wire), nil
}

// normalize converts either wire shape to the canonical probability pair.
func normalize(wire wireResponse) *models.DiagnosisResult {
	if len(wire.Diagnosis) > 0 {
		result := wire.Diagnosis[0]
		return &result
	}
	return &models.DiagnosisResult{
		Malignant: wire.Malignant,
		Benign:    wire.Benign,
	}
}
