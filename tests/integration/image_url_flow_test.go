package integration

import (
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageURLFlow(t *testing.T) {
	requireLiveAPI(t)

	client := &http.Client{Timeout: 10 * time.Second}

	created := CreateProduct(t, client, map[string]string{
		"name":     "Integration Widget",
		"quantity": "3",
		"price":    "4.50",
	}, "widget.png", []byte("not-really-a-png"))
	t.Cleanup(func() { CleanupProduct(client, created.ID) })

	require.NotNil(t, created.ImageKey)
	require.NotNil(t, created.ImageURL)

	// the signed URL must grant read access without further credentials
	resp, err := client.Get(*created.ImageURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte("not-really-a-png"), payload)
}

func TestImageURLAbsentWithoutImage(t *testing.T) {
	requireLiveAPI(t)

	client := &http.Client{Timeout: 10 * time.Second}

	created := CreateProduct(t, client, map[string]string{
		"name":     "Plain Widget",
		"quantity": "1",
		"price":    "2.00",
	}, "", nil)
	t.Cleanup(func() { CleanupProduct(client, created.ID) })

	assert.Nil(t, created.ImageKey)
	assert.Nil(t, created.ImageURL)
}
