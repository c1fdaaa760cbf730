package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/raphaelgruber/ideascope/internal/http/dto"
	"github.com/raphaelgruber/ideascope/internal/service"
)

const (
	streamReadTimeout  = 30 * time.Second
	streamWriteTimeout = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local dev
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Stream runs one analysis per connection. The client sends an
// AnalyzeRequest, the server pushes a state event per transition and
// finally a result or error event, then closes.
func (h *AnalysisHandler) Stream(c *gin.Context) {
	ctx := c.Request.Context()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.WarnContext(ctx, "websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	send := func(ev dto.StreamEvent) error {
		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
		return conn.WriteJSON(ev)
	}

	_ = conn.SetReadDeadline(time.Now().Add(streamReadTimeout))
	var req dto.AnalyzeRequest
	if err := conn.ReadJSON(&req); err != nil {
		_ = send(dto.StreamEvent{Type: dto.EventError, Error: "invalid request", Status: http.StatusBadRequest})
		return
	}

	request, err := toServiceRequest(req)
	if err != nil {
		_ = send(dto.StreamEvent{Type: dto.EventError, Error: messageFor(err, "invalid request"), Status: statusFor(err)})
		return
	}

	// A hijacked connection outlives the request context, so a client that
	// goes away is only noticed by reading. The reader also answers pings.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	_ = conn.SetReadDeadline(time.Time{})
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	// States are written from the analysis goroutine only.
	request.Observer = func(s service.State) {
		if err := send(dto.StreamEvent{Type: dto.EventState, State: string(s)}); err != nil {
			slog.DebugContext(ctx, "stream state dropped", "state", s, "error", err)
		}
	}

	report, err := h.analyzer.Analyze(ctx, request)
	if err != nil {
		slog.WarnContext(ctx, "streamed analysis failed", "error", err)
		_ = send(dto.StreamEvent{Type: dto.EventError, Error: messageFor(err, "Failed to analyze project idea"), Status: statusFor(err)})
		return
	}

	_ = send(dto.StreamEvent{Type: dto.EventResult, Report: report})
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"),
		time.Now().Add(time.Second))
}
