// Package server exposes the meniscus solver over a WebSocket.
//
// Each connection is a request/response loop: the client sends
//
//	{"type":"solve","id":"1","params":{"theta_deg":40,"R":0.005}}
//
// and receives either a "profile" message carrying x, y and csv, or an
// "error" message carrying the error text and its kind.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/san-kum/menisim/internal/config"
	"github.com/san-kum/menisim/internal/dynamo"
	"github.com/san-kum/menisim/internal/export"
	"github.com/san-kum/menisim/internal/meniscus"
	log "github.com/sirupsen/logrus"
)

const (
	TypeSolve   = "solve"
	TypePing    = "ping"
	TypeProfile = "profile"
	TypePong    = "pong"
	TypeError   = "error"

	// KindRequest marks malformed or unknown messages.
	KindRequest = "request"

	// MaxMessageSize bounds one incoming frame; larger frames close the connection.
	MaxMessageSize = 64 << 10
)

type Request struct {
	Type   string         `json:"type"`
	ID     string         `json:"id,omitempty"`
	Params map[string]any `json:"params,omitempty"`
}

type Response struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`
	*export.Output
	Iterations int     `json:"iterations,omitempty"`
	ZMin       float64 `json:"z_min,omitempty"`
	Error      string  `json:"error,omitempty"`
	Kind       string  `json:"kind,omitempty"`
}

// SolveFunc computes a profile; the default is meniscus.Solve.
type SolveFunc func(meniscus.Params) (*meniscus.Profile, error)

type Server struct {
	addr     string
	upgrader websocket.Upgrader
	solve    SolveFunc
	logger   log.FieldLogger
}

func NewServer(addr string, logger log.FieldLogger) *Server {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		solve:  meniscus.Solve,
		logger: logger,
	}
}

// WithSolver replaces the solve function, e.g. to pin an integrator.
func (s *Server) WithSolver(fn SolveFunc) *Server {
	s.solve = fn
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	return mux
}

// Serve blocks until ctx is cancelled or the listener fails.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.WithField("addr", s.addr).Info("listening")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WithError(err).Warn("upgrade failed")
		return
	}
	defer conn.Close()

	logger := s.logger.WithField("remote", r.RemoteAddr)
	logger.Debug("client connected")

	conn.SetReadLimit(MaxMessageSize)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			switch {
			case errors.Is(err, websocket.ErrReadLimit):
				logger.WithField("limit", MaxMessageSize).Warn("message too large")
			case websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
				logger.WithError(err).Warn("connection closed")
			}
			return
		}

		var resp Response
		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			resp = errorResponse("", fmt.Errorf("malformed message: %w", err), KindRequest)
		} else {
			resp = s.handle(req, logger)
		}
		if err := conn.WriteJSON(resp); err != nil {
			logger.WithError(err).Warn("write failed")
			return
		}
	}
}

func (s *Server) handle(req Request, logger log.FieldLogger) Response {
	switch req.Type {
	case TypePing:
		return Response{Type: TypePong, ID: req.ID}
	case TypeSolve:
		params, err := config.FromMap(req.Params)
		if err != nil {
			return errorResponse(req.ID, err, dynamo.Kind(err))
		}
		start := time.Now()
		prof, err := s.solve(params)
		fields := log.Fields{"id": req.ID, "elapsed": time.Since(start)}
		if err != nil {
			logger.WithFields(fields).WithError(err).Info("solve failed")
			return errorResponse(req.ID, err, dynamo.Kind(err))
		}
		fields["iterations"] = prof.Iterations
		logger.WithFields(fields).Debug("solved")

		out := export.NewOutput(prof)
		return Response{
			Type:       TypeProfile,
			ID:         req.ID,
			Output:     &out,
			Iterations: prof.Iterations,
			ZMin:       prof.ZMin,
		}
	default:
		return Response{Type: TypeError, ID: req.ID, Error: "unknown message type " + `"` + req.Type + `"`, Kind: KindRequest}
	}
}

func errorResponse(id string, err error, kind string) Response {
	if kind == "" {
		kind = "internal"
	}
	return Response{Type: TypeError, ID: id, Error: err.Error(), Kind: kind}
}
