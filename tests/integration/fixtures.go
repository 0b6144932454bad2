package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

var baseURL = envOr("INVENTORY_API_URL", "http://localhost:5000")

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// requireLiveAPI skips the test unless a running API was requested.
func requireLiveAPI(t *testing.T) {
	t.Helper()
	if os.Getenv("INVENTORY_E2E") == "" {
		t.Skip("set INVENTORY_E2E=1 and INVENTORY_API_URL to run against a live API")
	}
}

type productResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int64   `json:"quantity"`
	Price    float64 `json:"price"`
	ImageKey *string `json:"imageKey"`
	ImageURL *string `json:"imageUrl"`
}

// CreateProduct posts a multipart create request, optionally with an image.
func CreateProduct(t *testing.T, client *http.Client, fields map[string]string, imageName string, imageContent []byte) productResponse {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if imageName != "" {
		part, err := writer.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = part.Write(imageContent)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, baseURL+"/products", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created productResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	return created
}

// CleanupProduct deletes a product, ignoring failures.
func CleanupProduct(client *http.Client, id string) {
	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/products/%s", baseURL, id), nil)
	if err != nil {
		return
	}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("cleanup delete %s: %v\n", id, err)
		return
	}
	resp.Body.Close()
}
