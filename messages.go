/*
Copyright © 2025 Daanish <daanish04@gmail.com>
*/

package main

// Messages coming from clients. One struct covers every action; Type selects
// which of the remaining fields are meaningful.
type ClientMessage struct {
	Type       string `json:"type"`                 // "make-room", "join-room", "get-room-users", "room-update", "start-game", "submit-answer", "player-finished", "game-over", "leave-room", "message"
	RoomID     string `json:"roomId,omitempty"`     // every action except make-room and room-update
	ID         string `json:"id,omitempty"`         // room-update
	IsPrivate  bool   `json:"isPrivate,omitempty"`  // make-room
	Topic      string `json:"topic,omitempty"`      // room-update
	Difficulty string `json:"difficulty,omitempty"` // room-update
	MaxPlayers int    `json:"maxPlayers,omitempty"` // room-update
	IsCorrect  bool   `json:"isCorrect,omitempty"`  // submit-answer
	Message    string `json:"message,omitempty"`    // message
}

// Reply to make-room, sent only to the creator.
type RoomCreatedMessage struct {
	Type   string `json:"type"` // "room-created"
	RoomID string `json:"roomId"`
}

// Broadcast to a room when someone joins.
type PlayerJoinedMessage struct {
	Type    string           `json:"type"` // "player-joined"
	RoomID  string           `json:"roomId"`
	Player  PlayerSnapshot   `json:"player"`
	Players []PlayerSnapshot `json:"players"`
}

// Reply to get-room-users, sent only to the caller.
type RoomUsersMessage struct {
	Type    string           `json:"type"` // "room-users"
	RoomID  string           `json:"roomId"`
	Host    string           `json:"host"`
	Players []PlayerSnapshot `json:"players"`
}

// Full room view for the caller of get-room-users.
type RoomJoinedMessage struct {
	Type string       `json:"type"` // "room-joined"
	Room RoomSnapshot `json:"room"`
}

// Broadcast after the host saves new settings.
type RoomSavedMessage struct {
	Type string       `json:"type"` // "room-saved"
	Room RoomSnapshot `json:"room"`
}

// Broadcast as soon as the host starts a game, before generation finishes.
type GameStartingMessage struct {
	Type   string `json:"type"` // "game-starting"
	RoomID string `json:"roomId"`
}

// Broadcast once questions are ready and the room is RUNNING.
type GameStartedMessage struct {
	Type string       `json:"type"` // "game-started"
	Room RoomSnapshot `json:"room"`
}

// Broadcast after a correct answer bumped someone's score.
type AnswerCorrectMessage struct {
	Type string       `json:"type"` // "answer-correct"
	Room RoomSnapshot `json:"room"`
}

// Broadcast when a player finishes their question set.
type PlayerFinishedMessage struct {
	Type string       `json:"type"` // "player-finished"
	Room RoomSnapshot `json:"room"`
}

// Broadcast on game-over; the snapshot still carries the final scores.
type BackToRoomMessage struct {
	Type string       `json:"type"` // "back-to-room"
	Room RoomSnapshot `json:"room"`
}

// Broadcast to remaining players when someone other than the host leaves.
type RoomLeftMessage struct {
	Type       string           `json:"type"` // "room-left"
	RoomID     string           `json:"roomId"`
	PlayerID   string           `json:"playerId"`
	PlayerName string           `json:"playerName"`
	Players    []PlayerSnapshot `json:"players"`
}

// Broadcast to remaining players when the host leaves and the room dies.
type RoomClosedMessage struct {
	Type    string `json:"type"` // "room-closed"
	RoomID  string `json:"roomId"`
	Message string `json:"message"`
}

type ChatPlayer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Stateless chat relay.
type ChatMessage struct {
	Type    string     `json:"type"` // "message"
	Player  ChatPlayer `json:"player"`
	Message string     `json:"message"`
}

// Sent to a single connection when its action failed.
type RoomErrorMessage struct {
	Type    string `json:"type"` // "room-error"
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
