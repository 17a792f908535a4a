package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/modelctx/mcp-server-template/internal/logx"
	"github.com/modelctx/mcp-server-template/internal/metrics"
)

const sessionHeader = "Mcp-Session-Id"

// JSON-RPC error codes used for request-level failures on /mcp.
const (
	codeBadRequest = -32000
	codeInternal   = -32603
)

// session is one client conversation bound to one transport instance.
type session struct {
	transport *mcp.StreamableServerTransport
	conn      *mcp.ServerSession
}

// SessionRouter correlates /mcp requests with per-session transports.
// It owns the session table: entries are added when a POST carries an
// initialize request and removed on DELETE, server-side closure or shutdown.
// At most one live transport exists per session id.
type SessionRouter struct {
	server *mcp.Server

	mu       sync.Mutex
	sessions map[string]*session
}

// NewSessionRouter returns a router serving sessions of server.
func NewSessionRouter(server *mcp.Server) *SessionRouter {
	return &SessionRouter{server: server, sessions: make(map[string]*session)}
}

func (sr *SessionRouter) lookup(id string) *session {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	return sr.sessions[id]
}

// createSession builds a transport with a fresh id, connects the protocol
// server to it and publishes it in the table.
func (sr *SessionRouter) createSession(ctx context.Context) (*session, error) {
	id := uuid.NewString()
	t := mcp.NewStreamableServerTransport(id, nil)
	conn, err := sr.server.Connect(ctx, t, nil)
	if err != nil {
		return nil, err
	}
	s := &session{transport: t, conn: conn}
	sr.mu.Lock()
	sr.sessions[id] = s
	sr.mu.Unlock()
	metrics.SessionOpened()
	logx.Log.Debug().Str("session_id", id).Msg("session created")
	go func() {
		// Reap the table entry once the session ends, however that happens.
		_ = conn.Wait()
		if sr.remove(id) {
			logx.Log.Debug().Str("session_id", id).Msg("session closed")
		}
	}()
	return s, nil
}

// closeSession removes id from the table and closes its connection.
// Closing an id that is already gone is not an error.
func (sr *SessionRouter) closeSession(id string) error {
	sr.mu.Lock()
	s := sr.sessions[id]
	delete(sr.sessions, id)
	sr.mu.Unlock()
	if s == nil {
		return nil
	}
	metrics.SessionClosed()
	return s.conn.Close()
}

func (sr *SessionRouter) remove(id string) bool {
	sr.mu.Lock()
	_, ok := sr.sessions[id]
	delete(sr.sessions, id)
	sr.mu.Unlock()
	if ok {
		metrics.SessionClosed()
	}
	return ok
}

// CloseAll closes every live connection and clears the table. Close failures
// are logged and do not stop the sweep.
func (sr *SessionRouter) CloseAll() {
	sr.mu.Lock()
	sessions := sr.sessions
	sr.sessions = make(map[string]*session)
	sr.mu.Unlock()
	for id, s := range sessions {
		if err := s.conn.Close(); err != nil {
			logx.Log.Error().Err(err).Str("session_id", id).Msg("close session")
		}
		metrics.SessionClosed()
	}
}

func (sr *SessionRouter) handlePOST(w http.ResponseWriter, r *http.Request) {
	if id := r.Header.Get(sessionHeader); id != "" {
		s := sr.lookup(id)
		if s == nil {
			body, _ := io.ReadAll(r.Body)
			writeRPCError(w, http.StatusBadRequest, codeBadRequest,
				"Bad Request: No valid session ID provided or not an initialization request", requestID(body))
			return
		}
		s.transport.ServeHTTP(w, r)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeRPCError(w, http.StatusBadRequest, codeBadRequest, "Bad Request: unable to read request body", nil)
		return
	}
	if !isInitialize(body) {
		writeRPCError(w, http.StatusBadRequest, codeBadRequest,
			"Bad Request: No valid session ID provided or not an initialization request", requestID(body))
		return
	}
	s, err := sr.createSession(r.Context())
	if err != nil {
		logx.Log.Error().Err(err).Msg("create session")
		writeRPCError(w, http.StatusInternalServerError, codeInternal, "Internal server error", requestID(body))
		return
	}
	// The transport reads the body again during delegation.
	r.Body = io.NopCloser(bytes.NewReader(body))
	s.transport.ServeHTTP(w, r)
}

func (sr *SessionRouter) handleGET(w http.ResponseWriter, r *http.Request) {
	s := sr.lookup(r.Header.Get(sessionHeader))
	if s == nil {
		http.Error(w, "Invalid or missing session ID", http.StatusBadRequest)
		return
	}
	// The transport owns the SSE stream, including Last-Event-ID resumption.
	s.transport.ServeHTTP(w, r)
}

func (sr *SessionRouter) handleDELETE(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(sessionHeader)
	if sr.lookup(id) == nil {
		http.Error(w, "Invalid or missing session ID", http.StatusBadRequest)
		return
	}
	if err := sr.closeSession(id); err != nil {
		logx.Log.Error().Err(err).Str("session_id", id).Msg("terminate session")
		http.Error(w, "Error processing session termination", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// isInitialize reports whether body is a single JSON-RPC initialize request.
func isInitialize(body []byte) bool {
	var probe struct {
		Method string `json:"method"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return false
	}
	return probe.Method == "initialize"
}

// requestID extracts the JSON-RPC id from a request body so rejections can
// echo it. Returns nil (encoded as null) when the body has none.
func requestID(body []byte) json.RawMessage {
	var probe struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil
	}
	return probe.ID
}

func writeRPCError(w http.ResponseWriter, status, code int, message string, id json.RawMessage) {
	type errorBody struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	type envelope struct {
		JSONRPC string          `json:"jsonrpc"`
		Error   errorBody       `json:"error"`
		ID      json.RawMessage `json:"id"`
	}
	if id == nil {
		id = json.RawMessage("null")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{
		JSONRPC: "2.0",
		Error:   errorBody{Code: code, Message: message},
		ID:      id,
	})
}
