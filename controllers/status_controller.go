package controllers

import (
	"net/http"
	"time"

	"foodscan/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type StatusController struct {
	Hub *services.StatusHub
}

// constructor
func NewStatusController(hub *services.StatusHub) *StatusController {
	return &StatusController{Hub: hub}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // same-origin page only; tighten behind a proxy if needed
}

// GET /ws/status
// Streams analysis lifecycle events for this session so the page can show
// and hide its waiting indicator.
func (sc *StatusController) StatusWS(c *gin.Context) {
	sid := c.GetString("sessionID")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := services.NewWSClient(sid, conn)
	sc.Hub.Register(cl)

	// ping to keep connections alive through some proxies
	go func() {
		t := time.NewTicker(25 * time.Second)
		defer t.Stop()
		for range t.C {
			if err := cl.Ping(); err != nil {
				sc.Hub.Unregister(cl)
				return
			}
		}
	}()

	// read loop ends on client close/error → unregister
	for {
		if err := cl.ReadNext(); err != nil {
			sc.Hub.Unregister(cl)
			return
		}
	}
}
