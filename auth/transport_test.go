package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planet-tools/scene-search/auth"
)

func TestBasicKeyTransport(t *testing.T) {
	var user, password string
	var ok bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, password, ok = r.BasicAuth()
	}))
	defer server.Close()

	client := &http.Client{Transport: &auth.BasicKeyTransport{Key: "secret-key"}}
	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	resp.Body.Close()

	require.True(t, ok)
	assert.Equal(t, "secret-key", user)
	assert.Empty(t, password)
}

func TestBasicKeyTransportDoesNotMutateOriginal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	client := &http.Client{Transport: &auth.BasicKeyTransport{Key: "secret-key"}}
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestAPIKeyTransport(t *testing.T) {
	var header string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get("X-API-Key")
	}))
	defer server.Close()

	client := &http.Client{Transport: &auth.APIKeyTransport{Key: "secret-key", Header: "X-API-Key"}}
	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "api-key secret-key", header)
}
