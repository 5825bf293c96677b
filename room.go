/*
Copyright © 2025 Daanish <daanish04@gmail.com>
*/

package main

import (
	"encoding/json"
	"fmt"
	"time"
)

// RoomStatus is the room lifecycle: WAITING → STARTING → RUNNING → WAITING.
// STARTING exists so that a second start-game arriving while question
// generation is outstanding can be rejected instead of racing the first.
type RoomStatus int

const (
	RoomWaiting RoomStatus = iota
	RoomStarting
	RoomRunning
)

func (s RoomStatus) String() string {
	switch s {
	case RoomStarting:
		return "STARTING"
	case RoomRunning:
		return "RUNNING"
	default:
		return "WAITING"
	}
}

func (s RoomStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *RoomStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw {
	case "WAITING":
		*s = RoomWaiting
	case "STARTING":
		*s = RoomStarting
	case "RUNNING":
		*s = RoomRunning
	default:
		return fmt.Errorf("unknown room status: %q", raw)
	}
	return nil
}

type PlayerStatus int

const (
	PlayerLobby PlayerStatus = iota
	PlayerInGame
)

func (s PlayerStatus) String() string {
	if s == PlayerInGame {
		return "INGAME"
	}
	return "LOBBY"
}

func (s PlayerStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *PlayerStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw {
	case "LOBBY":
		*s = PlayerLobby
	case "INGAME":
		*s = PlayerInGame
	default:
		return fmt.Errorf("unknown player status: %q", raw)
	}
	return nil
}

type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyMedium:
		return "MEDIUM"
	case DifficultyHard:
		return "HARD"
	default:
		return "EASY"
	}
}

func (d Difficulty) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Difficulty) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := parseDifficulty(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// perQuestion is the answering time a player gets per question; it is fed
// into the generation prompt so question length stays answerable.
func (d Difficulty) perQuestion() time.Duration {
	switch d {
	case DifficultyMedium:
		return 45 * time.Second
	case DifficultyHard:
		return 60 * time.Second
	default:
		return 30 * time.Second
	}
}

func parseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "EASY":
		return DifficultyEasy, nil
	case "MEDIUM":
		return DifficultyMedium, nil
	case "HARD":
		return DifficultyHard, nil
	}
	return DifficultyEasy, fmt.Errorf("unknown difficulty: %q", s)
}

const defaultMaxPlayers = 5

// Player is one connection's membership record inside a room. Its identity
// is the connection id, so the same client reuses it across rooms.
type Player struct {
	client *Client
	name   string
	score  int
	status PlayerStatus
}

// Room holds all state for one trivia session. Rooms are owned by the
// coordinator and only ever touched on its goroutine.
type Room struct {
	id         string
	topic      string
	difficulty Difficulty
	maxPlayers int
	players    []*Player // join order
	status     RoomStatus
	hostID     string
	questions  []Question
	private    bool
}

func newRoom(id string, host *Client, private bool) *Room {
	room := &Room{
		id:         id,
		topic:      randomTopic(),
		difficulty: DifficultyEasy,
		maxPlayers: defaultMaxPlayers,
		status:     RoomWaiting,
		hostID:     host.id,
		private:    private,
	}
	room.players = append(room.players, &Player{
		client: host,
		name:   host.name,
		status: PlayerLobby,
	})

	return room
}

func (r *Room) player(clientID string) *Player {
	for _, p := range r.players {
		if p.client.id == clientID {
			return p
		}
	}
	return nil
}

func (r *Room) removePlayer(clientID string) *Player {
	for i, p := range r.players {
		if p.client.id == clientID {
			r.players = append(r.players[:i], r.players[i+1:]...)
			return p
		}
	}
	return nil
}

// PlayerSnapshot and RoomSnapshot are the wire views of the mutable state
// above. Generated questions are deliberately absent: they carry correct
// answers and are only served per room via the questions endpoint.
type PlayerSnapshot struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Score  int          `json:"score"`
	Status PlayerStatus `json:"status"`
}

type RoomSnapshot struct {
	ID         string           `json:"id"`
	Topic      string           `json:"topic"`
	Difficulty Difficulty       `json:"difficulty"`
	MaxPlayers int              `json:"maxPlayers"`
	Players    []PlayerSnapshot `json:"players"`
	Status     RoomStatus       `json:"status"`
	HostID     string           `json:"hostId"`
	IsPrivate  bool             `json:"isPrivate"`
}

// RoomDescription is the public listing entry for non-private rooms.
type RoomDescription struct {
	ID           string     `json:"id"`
	Topic        string     `json:"topic"`
	Difficulty   Difficulty `json:"difficulty"`
	PlayersCount int        `json:"playersCount"`
	MaxPlayers   int        `json:"maxPlayers"`
	Status       RoomStatus `json:"status"`
}

func (p *Player) snapshot() PlayerSnapshot {
	return PlayerSnapshot{
		ID:     p.client.id,
		Name:   p.name,
		Score:  p.score,
		Status: p.status,
	}
}

func (r *Room) roster() []PlayerSnapshot {
	players := make([]PlayerSnapshot, 0, len(r.players))
	for _, p := range r.players {
		players = append(players, p.snapshot())
	}
	return players
}

func (r *Room) snapshot() RoomSnapshot {
	return RoomSnapshot{
		ID:         r.id,
		Topic:      r.topic,
		Difficulty: r.difficulty,
		MaxPlayers: r.maxPlayers,
		Players:    r.roster(),
		Status:     r.status,
		HostID:     r.hostID,
		IsPrivate:  r.private,
	}
}

func (r *Room) description() RoomDescription {
	return RoomDescription{
		ID:           r.id,
		Topic:        r.topic,
		Difficulty:   r.difficulty,
		PlayersCount: len(r.players),
		MaxPlayers:   r.maxPlayers,
		Status:       r.status,
	}
}
