package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/ololchike/test-app--sub000/internal/tour"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const wsIdleTimeout = 10 * time.Minute

type wsReply struct {
	Quote *Quote `json:"quote,omitempty"`
	Error string `json:"error,omitempty"`
}

// GET /tours/:id/quote/ws
//
// Each message is a QuoteRequest; each reply is the quote for it. Messages
// on one connection are handled strictly in order.
func (h *Handler) QuoteWS(c *gin.Context) {
	tourID := c.Param("id")

	// fail before the upgrade so the client sees a 404
	if _, err := h.service.tours.LoadRegistry(c.Request.Context(), tourID); err != nil {
		writeError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[CHECKOUT] ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		conn.SetReadDeadline(time.Now().Add(wsIdleTimeout))

		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var req QuoteRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			if err := conn.WriteJSON(wsReply{Error: "invalid message"}); err != nil {
				return
			}
			continue
		}

		// the request context ends with the upgrade; quotes get their own
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		q, err := h.service.Quote(ctx, tourID, req)
		cancel()

		reply := wsReply{Quote: q}
		if err != nil {
			reply = wsReply{Error: wsMessage(err)}
		}
		if err := conn.WriteJSON(reply); err != nil {
			return
		}
	}
}

func wsMessage(err error) string {
	if errors.Is(err, tour.ErrNotFound) {
		return err.Error()
	}
	return "could not price selection"
}
