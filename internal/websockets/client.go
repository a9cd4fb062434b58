package websockets

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second

	pongWait = 60 * time.Second

	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 64 * 1024
)

type MessageType string

const (
	TypeDishUpdate MessageType = "dish.update"
	TypeChefUpdate MessageType = "chef.update"
	TypeError      MessageType = "error"
	TypePing       MessageType = "ping"
	TypePong       MessageType = "pong"
)

type ClientType string

const (
	ClientTypeAdmin   ClientType = "admin"
	ClientTypeViewer  ClientType = "viewer"
	ClientTypeDisplay ClientType = "display"
)

// Valid reports whether t is a known client type
func (t ClientType) Valid() bool {
	switch t {
	case ClientTypeAdmin, ClientTypeViewer, ClientTypeDisplay:
		return true
	}
	return false
}

type Message struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Encode builds the wire form of a message carrying data
func Encode(msgType MessageType, data any) ([]byte, error) {
	msg := Message{Type: msgType}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		msg.Data = raw
	}
	return json.Marshal(msg)
}

// Client is one websocket connection. Clients only listen; the one message
// they may send is a ping.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	// replies to this client's own messages; never closed
	replies chan []byte

	id string

	userID int64

	clientType ClientType
}

func NewClient(hub *Hub, conn *websocket.Conn, userID int64, clientType ClientType) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, 256),
		replies:    make(chan []byte, 16),
		id:         uuid.NewString(),
		userID:     userID,
		clientType: clientType,
	}
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket client %s (user %d): %v", c.id, c.userID, err)
			}
			break
		}

		var wsMessage Message
		if err := json.Unmarshal(message, &wsMessage); err != nil {
			c.reply(TypeError, map[string]string{"message": "malformed message"})
			continue
		}

		switch wsMessage.Type {
		case TypePing:
			c.reply(TypePong, nil)
		default:
			c.reply(TypeError, map[string]string{"message": "unsupported message type " + string(wsMessage.Type)})
		}
	}
}

// reply queues a message for this client only
func (c *Client) reply(msgType MessageType, data any) {
	message, err := Encode(msgType, data)
	if err != nil {
		log.Printf("Error encoding %s reply: %v", msgType, err)
		return
	}
	select {
	case c.replies <- message:
	default:
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case message := <-c.replies:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func ServeWs(hub *Hub, conn *websocket.Conn, userID int64, clientType ClientType) {
	client := NewClient(hub, conn, userID, clientType)

	select {
	case hub.register <- client:
	case <-hub.done:
		conn.Close()
		return
	}

	log.Printf("websocket client %s connected (%s, user %d)", client.id, client.clientType, client.userID)

	go client.writePump()
	go client.readPump()
}
