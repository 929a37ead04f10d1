package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheckAgainstStub(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			_, _ = w.Write([]byte("OK"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	tc := NewTestClient(srv.URL + "/")
	assert.True(t, tc.testHealthCheck())
	assert.False(t, tc.testAgentCard())
}

func TestRPCReportsJSONRPCError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "2.0", req["jsonrpc"])
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":"1","error":{"code":-32004,"message":"session not found"}}`))
	}))
	defer srv.Close()

	_, ok := NewTestClient(srv.URL).rpc("session/get", map[string]interface{}{"sessionId": "x"})
	assert.False(t, ok)
}
