package main

import (
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mxpv/codetracker/pkg/model"
	"github.com/mxpv/codetracker/pkg/server"
)

type Server struct {
	http.Server
}

func NewServer(cfg server.Config, handler http.Handler) *Server {
	port := cfg.Port
	if port == 0 {
		port = model.DefaultPort
	}

	bindAddress := cfg.BindAddress
	if bindAddress == "*" {
		bindAddress = ""
	}

	srv := Server{}

	srv.Addr = fmt.Sprintf("%s:%d", bindAddress, port)
	srv.Handler = handler
	srv.ReadHeaderTimeout = 10 * time.Second
	log.Debugf("using address: %s", srv.Addr)

	return &srv
}
