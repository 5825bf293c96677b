/*
Copyright © 2025 Daanish <daanish04@gmail.com>
*/

// WitLink trivia sessions
//
// Groups of connected participants join a shared room, the room's creator
// (the host) configures and starts a timed quiz, and everyone receives
// synchronized state updates as the game progresses.
//
// Features:
// - One websocket per participant: /ws?name=<display name>
// - Connections without a display name are rejected at the handshake
// - Rooms identified by 6-char codes, created and joined over the socket
// - Host-only authority over room settings and game start
// - Questions generated per room by Gemini from topic + difficulty
// - Scores tracked per player while a game is RUNNING, reset on game-over
// - Host departure closes the room for every remaining player
// - Public (non-private) rooms listed over HTTP, join links shareable as QR
//
// All session state is process-lifetime only; a restart clears every room.

package main

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one live connection. id and name are fixed for the connection's
// lifetime; gone is owned by the coordinator goroutine.
type Client struct {
	id   string
	name string
	conn *websocket.Conn
	send chan any
	gone bool
}

func (c *Client) readPump(coord *Coordinator) {
	defer func() {
		coord.unregister <- c
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		coord.actions <- action{client: c, msg: msg}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// serveWS is the identity gate and connection entry point. The display name
// travels in the handshake query; without one the connection is never
// admitted and no client is created.
func serveWS(cfg *Config, coord *Coordinator) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		name := r.URL.Query().Get("name")
		if name == "" {
			http.Error(w, "Name is required", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "WS: Upgrade failed: %v", err)
			return
		}

		client := &Client{
			id:   uuid.NewString(),
			name: name,
			conn: conn,
			send: make(chan any, 32),
		}

		coord.register <- client

		go client.writePump()
		client.readPump(coord)
	}
}
