package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10 // must be less than pongWait
	maxMessageSize = 4 * 1024
	sendBuffer     = 256
)

// Client message types
const (
	MessagePing        = "PING"
	MessagePong        = "PONG"
	MessageSubscribe   = "SUBSCRIBE"
	MessageUnsubscribe = "UNSUBSCRIBE"
	MessageSubscribed  = "SUBSCRIBED"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// handheld scanners and the admin UI connect from anywhere
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one websocket connection watching provisioning runs.
// With no subscriptions it receives progress for every cell.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	ClientID string

	mu    sync.Mutex
	cells map[int]struct{}
}

// ClientMessage is what clients send: PING, or SUBSCRIBE/UNSUBSCRIBE with a cell
type ClientMessage struct {
	Type  string `json:"type"`
	MsgID string `json:"msgId,omitempty"`
	Cell  int    `json:"cell,omitempty"`
}

// Watches reports whether progress for cell should reach this client
func (c *Client) Watches(cell int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.cells) == 0 || cell == 0 {
		return true
	}
	_, ok := c.cells[cell]
	return ok
}

func (c *Client) subscribe(cell int, on bool) []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if on {
		c.cells[cell] = struct{}{}
	} else {
		delete(c.cells, cell)
	}
	cells := make([]int, 0, len(c.cells))
	for n := range c.cells {
		cells = append(cells, n)
	}
	return cells
}

// readPump handles client messages until the connection drops
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
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WS error: %v", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case MessagePing:
			c.hub.sendTo(c, map[string]string{"type": MessagePong, "msgId": msg.MsgID, "clientId": c.ClientID})
		case MessageSubscribe, MessageUnsubscribe:
			if msg.Cell < 1 || msg.Cell > 9 {
				continue
			}
			cells := c.subscribe(msg.Cell, msg.Type == MessageSubscribe)
			c.hub.sendTo(c, map[string]interface{}{"type": MessageSubscribed, "msgId": msg.MsgID, "cells": cells})
		}
	}
}

// writePump drains send and keeps the connection alive with pings
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
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// sendTo queues a message for one client if it is still registered
func (h *Hub) sendTo(c *Client, v interface{}) bool {
	msg, err := json.Marshal(v)
	if err != nil {
		return false
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c.ClientID]; !ok {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// ServeWs upgrades the request and registers the client with hub
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("⚠️  WS upgrade failed: %v", err)
		return
	}
	client := &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		ClientID: "web_" + uuid.New().String(),
		cells:    make(map[int]struct{}),
	}
	select {
	case hub.register <- client:
	case <-hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
