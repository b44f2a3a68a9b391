package realtime

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWS godoc
// @Summary Realtime board invalidation channel
// @Description Upgrades to a WebSocket. The server only ever sends {"type":"board_changed"}; clients refetch GET /board on receipt.
// @Tags Realtime
// @Success 101
// @Router /ws [get]
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warnw("Failed to upgrade connection",
			"client_ip", c.ClientIP(),
			"error", err,
		)
		return
	}

	client := NewClient(h, conn)
	h.logger.Debugw("WebSocket connection established",
		"client_id", client.ID,
		"client_ip", c.ClientIP(),
		"user_agent", c.GetHeader("User-Agent"),
	)

	client.Run()
}

func RegisterRoutes(rg gin.IRoutes, hub *Hub) {
	rg.GET("/ws", hub.ServeWS)
}
