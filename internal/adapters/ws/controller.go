// Package ws owns the websocket endpoint: it upgrades requests, runs
// the per-connection pumps and translates wire envelopes into router
// events. The coordination core never sees a websocket.
package ws

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/moaazpadawy-lgtm/written-chat-clone/internal/app"
	"github.com/moaazpadawy-lgtm/written-chat-clone/internal/core"
)

type Controller struct {
	Router    *app.Router
	ReadLimit int64
}

func NewController(router *app.Router, readLimit int64) *Controller {
	return &Controller{Router: router, ReadLimit: readLimit}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWS upgrades the request and starts the connection's pumps. The
// connection id lives as long as the socket; transport teardown is the
// implicit disconnect event.
func (ctl *Controller) HandleWS(ctx context.Context, c *gin.Context) {
	id := core.ConnID(uuid.NewString())
	log.Info().Str("module", "ws").Str("conn", string(id)).Msg("new WS connection")

	sock, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "ws").Msg("ws upgrade")
		return
	}
	if ctl.ReadLimit > 0 {
		sock.SetReadLimit(ctl.ReadLimit)
	}

	conn := newWsConn(sock)
	ctx, cancel := context.WithCancel(ctx)

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, id, conn)
}

func (ctl *Controller) dispatch(id core.ConnID, c *wsConn, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "ws").Msg("bad json")
		return
	}

	switch env.Type {
	case "join":
		ctl.handleJoin(id, c, data)
	case "sendMessage":
		ctl.handleSendMessage(id, c, data)
	case "typing":
		ctl.handleTyping(id, data, ctl.Router.Typing)
	case "stopTyping":
		ctl.handleTyping(id, data, ctl.Router.StopTyping)
	case "ping":
		ctl.handlePing(c)
	default:
		log.Warn().Str("module", "ws").Str("type", env.Type).Msg("unknown event")
	}
}

func (ctl *Controller) handleJoin(id core.ConnID, c *wsConn, data []byte) {
	type joinPayload struct {
		Type     string `json:"type"`
		Username string `json:"username"`
		Room     string `json:"room"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "ws").Msg("bad join payload")
		ctl.sendJSON(c, map[string]any{"type": "error", "error": "bad_payload"})
		return
	}
	log.Info().Str("module", "ws").Str("conn", string(id)).Str("room", p.Room).Msg("join")
	ctl.Router.Join(id, c, p.Username, p.Room)
}

func (ctl *Controller) handleSendMessage(id core.ConnID, c *wsConn, data []byte) {
	type sendPayload struct {
		Type     string `json:"type"`
		ID       string `json:"id,omitempty"`
		Room     string `json:"room"`
		Username string `json:"username"`
		Text     string `json:"text"`
	}
	var p sendPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "ws").Msg("bad sendMessage payload")
		ctl.sendJSON(c, map[string]any{"type": "error", "error": "bad_payload"})
		return
	}
	ctl.Router.SendMessage(id, p.Room, p.Username, p.Text, func(err error) {
		ack := core.AckEvent{Type: core.EventAck, ID: p.ID}
		if err != nil {
			ack.Error = err.Error()
		}
		ctl.sendJSON(c, ack)
	})
}

func (ctl *Controller) handleTyping(id core.ConnID, data []byte, relay func(core.ConnID, string, string)) {
	type typingPayload struct {
		Type     string `json:"type"`
		Room     string `json:"room"`
		Username string `json:"username"`
	}
	var p typingPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "ws").Msg("bad typing payload")
		return
	}
	relay(id, p.Room, p.Username)
}

func (ctl *Controller) handlePing(c *wsConn) {
	ctl.sendJSON(c, map[string]any{"type": "pong"})
}
