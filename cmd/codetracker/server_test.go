package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mxpv/codetracker/pkg/server"
)

func TestNewServer(t *testing.T) {
	handler := http.NotFoundHandler()

	srv := NewServer(server.Config{}, handler)
	assert.Equal(t, ":3001", srv.Addr)
	assert.NotNil(t, srv.Handler)

	srv = NewServer(server.Config{Port: 8080, BindAddress: "*"}, handler)
	assert.Equal(t, ":8080", srv.Addr)

	srv = NewServer(server.Config{Port: 8080, BindAddress: "127.0.0.1"}, handler)
	assert.Equal(t, "127.0.0.1:8080", srv.Addr)
}
