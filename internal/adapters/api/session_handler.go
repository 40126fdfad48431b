package api

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"weatherwidget.app/internal/adapters/render"
	"weatherwidget.app/internal/core/widget"
	"weatherwidget.app/internal/ports"
	"weatherwidget.app/pkg/errors"
)

const (
	sessionSendBuffer = 32
	sessionReadLimit  = 4096
	pongWait          = 60 * time.Second
	pingPeriod        = 25 * time.Second
	writeWait         = 5 * time.Second
)

// Client to server message types
const (
	MessageQuery  = "query"
	MessageSubmit = "submit"
)

// Server to client message types
const (
	MessageState = "state"
	MessageError = "error"
)

// ClientMessage is a frame sent by the live widget
type ClientMessage struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// StateMessage is pushed on every controller transition
type StateMessage struct {
	Type    string           `json:"type"`
	Seq     uint64           `json:"seq"`
	State   string           `json:"state"`
	Query   string           `json:"query"`
	HTML    string           `json:"html"`
	Record  *WeatherResponse `json:"record,omitempty"`
	Message string           `json:"message,omitempty"`
}

// ErrorMessage reports a frame the server could not handle
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// session is one WebSocket connection and the controller it drives
type session struct {
	id         string
	conn       *websocket.Conn
	controller *widget.Controller
	renderer   *render.Renderer
	logger     ports.Logger

	ctx       context.Context
	cancel    context.CancelFunc
	send      chan []byte
	submits   sync.WaitGroup
	closeOnce sync.Once
}

// handleWebSocket handles GET /ws. The connection's controller is mounted
// right away, so connecting issues one lookup for the initial query, unless
// mounted=1 says the page already rendered that lookup.
func (s *HTTPServerAdapter) handleWebSocket(c *gin.Context) {
	query := s.initialQuery(c)

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", ports.F("error", err))
		return
	}

	id := uuid.NewString()
	controller, err := s.newController(query, id, c.Query("mounted") == "1")
	if err != nil {
		s.logger.Error("Failed to create widget controller", ports.F("error", err))
		_ = conn.Close()
		return
	}

	ctx, cancel := context.WithCancel(s.ctx)
	sess := &session{
		id:         id,
		conn:       conn,
		controller: controller,
		renderer:   s.renderer,
		logger:     s.logger,
		ctx:        ctx,
		cancel:     cancel,
		send:       make(chan []byte, sessionSendBuffer),
	}

	if !s.register(sess) {
		cancel()
		_ = conn.Close()
		return
	}
	defer s.unregister(sess)

	s.sessionMetrics.SessionOpened()
	defer s.sessionMetrics.SessionClosed()

	s.logger.Info("Widget session opened", ports.F("session", id), ports.F("query", query))
	sess.run()
	s.logger.Info("Widget session closed", ports.F("session", id))
}

func (s *HTTPServerAdapter) register(sess *session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx.Err() != nil {
		return false
	}
	s.sessions[sess.id] = sess
	s.wg.Add(1)
	return true
}

func (s *HTTPServerAdapter) unregister(sess *session) {
	s.mu.Lock()
	delete(s.sessions, sess.id)
	s.mu.Unlock()
	s.wg.Done()
}

// run blocks until the connection ends, then waits for in-flight submits
func (sess *session) run() {
	unsubscribe := sess.controller.Subscribe(sess.publish)

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		sess.writePump()
	}()

	sess.spawn(func(ctx context.Context) { sess.controller.Mount(ctx) })
	sess.readPump()

	sess.cancel()
	sess.submits.Wait()
	unsubscribe()
	close(sess.send)
	<-writerDone
	sess.close()
}

func (sess *session) spawn(fn func(ctx context.Context)) {
	sess.submits.Add(1)
	go func() {
		defer sess.submits.Done()
		fn(sess.ctx)
	}()
}

func (sess *session) close() {
	sess.closeOnce.Do(func() {
		sess.cancel()
		_ = sess.conn.Close()
	})
}

func (sess *session) readPump() {
	sess.conn.SetReadLimit(sessionReadLimit)
	_ = sess.conn.SetReadDeadline(time.Now().Add(pongWait))
	sess.conn.SetPongHandler(func(string) error {
		return sess.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				sess.logger.Debug("Widget session read ended", ports.F("session", sess.id), ports.F("error", err))
			}
			return
		}

		if err := sess.handle(data); err != nil {
			sess.logger.Warn("Rejected widget message", ports.F("session", sess.id), ports.F("error", err))
			sess.enqueue(ErrorMessage{Type: MessageError, Message: err.Error()})
		}
	}
}

func (sess *session) handle(data []byte) error {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return errors.NewProtocolError("malformed message", err)
	}

	switch msg.Type {
	case MessageQuery:
		sess.controller.SetQuery(msg.Text)
	case MessageSubmit:
		sess.spawn(func(ctx context.Context) { sess.controller.Submit(ctx) })
	default:
		return errors.NewProtocolError("unsupported message type "+msg.Type, nil)
	}
	return nil
}

// publish is the controller listener; it runs on the submitting goroutine
func (sess *session) publish(update widget.Update) {
	msg := StateMessage{
		Type:  MessageState,
		Seq:   update.Seq,
		State: update.State.Kind().String(),
		Query: update.Query,
	}

	switch st := update.State.(type) {
	case widget.Ready:
		record := newWeatherResponse(st.Record)
		msg.Record = &record
	case widget.Failed:
		msg.Message = st.Message
	case widget.NotFound:
		msg.Message = widget.NotFoundMessage
	}

	html, err := sess.renderer.Fragment(update.State)
	if err != nil {
		sess.logger.Error("Failed to render widget state", ports.F("session", sess.id), ports.F("error", err))
	}
	msg.HTML = html

	sess.enqueue(msg)
}

// enqueue never blocks; a client that cannot keep up is disconnected
func (sess *session) enqueue(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		sess.logger.Error("Failed to encode widget message", ports.F("session", sess.id), ports.F("error", err))
		return
	}

	select {
	case sess.send <- data:
	default:
		sess.logger.Warn("Widget session too slow, closing", ports.F("session", sess.id))
		sess.close()
	}
}

func (sess *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-sess.send:
			_ = sess.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = sess.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := sess.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				sess.close()
				return
			}
		case <-ticker.C:
			_ = sess.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sess.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				sess.close()
				return
			}
		}
	}
}
