package stream

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes exposes the per-session event feed at /ws/:id. The feed is
// one-way: edit and preview events flow out, inbound frames are discarded.
func RegisterRoutes(r fiber.Router, hub *Hub) {
	r.Get("/ws/:id", websocket.New(func(c *websocket.Conn) {
		client := hub.Register(c.Params("id"))
		defer hub.Unregister(client)

		done := make(chan struct{})
		go writeEvents(c, client, done)

		// the read loop only notices disconnects
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
		<-done
	}))
}

func writeEvents(c *websocket.Conn, client *Client, done chan<- struct{}) {
	defer close(done)
	for msg := range client.Send {
		if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}
