package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/vancomm/bstree/internal/commands"
	"github.com/vancomm/bstree/internal/metrics"
)

// Connect upgrades to a websocket session. Every text message is a batch
// of command lines and is answered with one JSON array of replies.
func (h TreeHandler) Connect(w http.ResponseWriter, r *http.Request) {
	c, err := h.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("upgrade")
		return
	}
	defer c.Close()

	metrics.WebSocketSessions.Inc()
	defer metrics.WebSocketSessions.Dec()

	log := h.log.WithField("remoteAddr", r.RemoteAddr)
	log.Debug("ws session opened")

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("read")
			}
			break
		}
		if mt != websocket.TextMessage {
			c.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseUnsupportedData, "text messages only"))
			break
		}

		log.WithField("message", string(message)).Debug("\t>")
		replies := commands.ExecuteAll(h.store, string(message))
		if replies == nil {
			replies = []commands.Reply{}
		}
		if err := c.WriteJSON(replies); err != nil {
			log.WithError(err).Warn("write")
			break
		}
	}
	log.Debug("ws session closed")
}
