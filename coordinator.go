/*
Copyright © 2025 Daanish <daanish04@gmail.com>
*/

package main

import (
	"context"
)

type action struct {
	client *Client
	msg    ClientMessage
}

// generationResult carries a finished question-generation call back onto the
// coordinator goroutine. The room is re-fetched on arrival, so results for
// rooms that died mid-generation are dropped instead of applied.
type generationResult struct {
	roomID    string
	hostID    string
	questions []Question
	err       error
}

type snapshotRequest struct {
	roomID string
	resp   chan *RoomSnapshot
}

type questionsReply struct {
	roomFound bool
	questions []Question
}

type questionsRequest struct {
	roomID string
	resp   chan questionsReply
}

// Coordinator owns every room and processes all room actions on a single
// goroutine, so room state never needs a lock. Clients feed parsed actions
// into the actions channel; HTTP handlers read state through the request
// channels below.
type Coordinator struct {
	cfg       *Config
	generator QuestionGenerator

	register   chan *Client
	unregister chan *Client
	actions    chan action
	generated  chan generationResult

	snapshotReqs chan snapshotRequest
	questionReqs chan questionsRequest
	listReqs     chan chan []RoomDescription

	rooms map[string]*Room

	// connection id -> room ids, so disconnect cleanup only visits rooms
	// the connection actually joined.
	memberships map[string]map[string]struct{}
}

func newCoordinator(cfg *Config, generator QuestionGenerator) *Coordinator {
	return &Coordinator{
		cfg:          cfg,
		generator:    generator,
		register:     make(chan *Client, 64),
		unregister:   make(chan *Client, 64),
		actions:      make(chan action, 256),
		generated:    make(chan generationResult, 16),
		snapshotReqs: make(chan snapshotRequest, 64),
		questionReqs: make(chan questionsRequest, 64),
		listReqs:     make(chan chan []RoomDescription, 64),
		rooms:        make(map[string]*Room),
		memberships:  make(map[string]map[string]struct{}),
	}
}

func (c *Coordinator) run(started chan struct{}) {
	close(started)

	for {
		select {
		case cl := <-c.register:
			logf(c.cfg, "COORD: User connected with id %s (%s)", cl.id, cl.name)

		case cl := <-c.unregister:
			c.handleDisconnect(cl)

		case act := <-c.actions:
			c.handleAction(act.client, act.msg)

		case res := <-c.generated:
			c.applyGenerated(res)

		case req := <-c.snapshotReqs:
			if room, ok := c.rooms[req.roomID]; ok {
				snap := room.snapshot()
				req.resp <- &snap
			} else {
				req.resp <- nil
			}

		case req := <-c.questionReqs:
			if room, ok := c.rooms[req.roomID]; ok {
				req.resp <- questionsReply{roomFound: true, questions: room.questions}
			} else {
				req.resp <- questionsReply{}
			}

		case resp := <-c.listReqs:
			list := make([]RoomDescription, 0, len(c.rooms))
			for _, room := range c.rooms {
				if !room.private {
					list = append(list, room.description())
				}
			}
			resp <- list
		}
	}
}

func (c *Coordinator) handleAction(cl *Client, msg ClientMessage) {
	switch msg.Type {
	case "make-room":
		c.makeRoom(cl, msg)
	case "join-room":
		c.joinRoom(cl, msg)
	case "get-room-users":
		c.roomUsers(cl, msg)
	case "room-update":
		c.updateRoom(cl, msg)
	case "start-game":
		c.startGame(cl, msg)
	case "submit-answer":
		c.submitAnswer(cl, msg)
	case "player-finished":
		c.playerFinished(cl, msg)
	case "game-over":
		c.gameOver(cl, msg)
	case "leave-room":
		c.leaveRoom(cl, msg)
	case "message":
		c.relayMessage(cl, msg)
	default:
		// ignore unknown types
	}
}

// send queues a message for one connection. A full send buffer means the
// client stopped draining; it gets cut loose rather than stalling the
// coordinator.
func (c *Coordinator) send(cl *Client, msg any) {
	if cl.gone {
		return
	}

	select {
	case cl.send <- msg:
	default:
		cl.gone = true
		close(cl.send)
	}
}

func (c *Coordinator) sendError(cl *Client, kind, reason string) {
	c.send(cl, RoomErrorMessage{Type: "room-error", Kind: kind, Message: reason})
}

func (c *Coordinator) broadcast(room *Room, msg any) {
	for _, p := range room.players {
		c.send(p.client, msg)
	}
}

// room resolves a room id, reporting the failure to the caller itself so
// every handler can simply bail on nil.
func (c *Coordinator) room(cl *Client, roomID string) *Room {
	room, ok := c.rooms[roomID]
	if !ok {
		c.sendError(cl, errKindNotFound, "Room does not exist")
		return nil
	}
	return room
}

func (c *Coordinator) addMembership(clientID, roomID string) {
	set, ok := c.memberships[clientID]
	if !ok {
		set = make(map[string]struct{})
		c.memberships[clientID] = set
	}
	set[roomID] = struct{}{}
}

func (c *Coordinator) makeRoom(cl *Client, msg ClientMessage) {
	roomID := newRoomCode()
	for {
		if _, exists := c.rooms[roomID]; !exists {
			break
		}
		roomID = newRoomCode()
	}

	room := newRoom(roomID, cl, msg.IsPrivate)
	c.rooms[roomID] = room
	c.addMembership(cl.id, roomID)

	c.send(cl, RoomCreatedMessage{Type: "room-created", RoomID: roomID})
	logf(c.cfg, "COORD: %s made and joined room %s", cl.name, roomID)
}

func (c *Coordinator) joinRoom(cl *Client, msg ClientMessage) {
	room := c.room(cl, msg.RoomID)
	if room == nil {
		return
	}
	if room.player(cl.id) != nil {
		c.sendError(cl, errKindBadState, "Already in room")
		return
	}
	if len(room.players) >= room.maxPlayers {
		c.sendError(cl, errKindRoomFull, "Room is full")
		return
	}

	status := PlayerLobby
	if room.status == RoomRunning {
		status = PlayerInGame
	}

	player := &Player{client: cl, name: cl.name, status: status}
	room.players = append(room.players, player)
	c.addMembership(cl.id, room.id)

	c.broadcast(room, PlayerJoinedMessage{
		Type:    "player-joined",
		RoomID:  room.id,
		Player:  player.snapshot(),
		Players: room.roster(),
	})
	logf(c.cfg, "COORD: %s joined room %s", cl.name, room.id)
}

func (c *Coordinator) roomUsers(cl *Client, msg ClientMessage) {
	room := c.room(cl, msg.RoomID)
	if room == nil {
		return
	}

	c.send(cl, RoomUsersMessage{
		Type:    "room-users",
		RoomID:  room.id,
		Host:    room.hostID,
		Players: room.roster(),
	})
	c.send(cl, RoomJoinedMessage{Type: "room-joined", Room: room.snapshot()})
}

func (c *Coordinator) updateRoom(cl *Client, msg ClientMessage) {
	room := c.room(cl, msg.ID)
	if room == nil {
		return
	}
	if room.hostID != cl.id {
		c.sendError(cl, errKindUnauthorized, "Only the host can update room settings")
		return
	}
	if room.status != RoomWaiting {
		c.sendError(cl, errKindBadState, "Settings can only be changed between games")
		return
	}

	difficulty, err := parseDifficulty(msg.Difficulty)
	if err != nil {
		c.sendError(cl, errKindBadRequest, "Unknown difficulty")
		return
	}
	if msg.MaxPlayers < 1 {
		c.sendError(cl, errKindBadRequest, "maxPlayers must be positive")
		return
	}

	room.topic = msg.Topic
	room.difficulty = difficulty
	room.maxPlayers = msg.MaxPlayers

	c.broadcast(room, RoomSavedMessage{Type: "room-saved", Room: room.snapshot()})
}

func (c *Coordinator) startGame(cl *Client, msg ClientMessage) {
	room := c.room(cl, msg.RoomID)
	if room == nil {
		return
	}
	if room.hostID != cl.id {
		c.sendError(cl, errKindUnauthorized, "Only the host can start the game")
		return
	}
	switch room.status {
	case RoomStarting:
		c.sendError(cl, errKindBadState, "Game is already starting")
		return
	case RoomRunning:
		c.sendError(cl, errKindBadState, "Game is already running")
		return
	}

	// STARTING is set before the suspending call, so a second start-game
	// lands in the rejection above instead of racing this one.
	room.status = RoomStarting
	c.broadcast(room, GameStartingMessage{Type: "game-starting", RoomID: room.id})

	go func(roomID, hostID, topic string, difficulty Difficulty) {
		ctx, cancel := context.WithTimeout(context.Background(), c.cfg.generationTimeout)
		defer cancel()

		questions, err := c.generator.Generate(ctx, topic, difficulty)
		c.generated <- generationResult{
			roomID:    roomID,
			hostID:    hostID,
			questions: questions,
			err:       err,
		}
	}(room.id, room.hostID, room.topic, room.difficulty)
}

func (c *Coordinator) applyGenerated(res generationResult) {
	room, ok := c.rooms[res.roomID]
	if !ok {
		logf(c.cfg, "COORD: Dropping generation result for deleted room %s", res.roomID)
		return
	}
	if room.status != RoomStarting {
		// game-over reset the room while generation was outstanding
		logf(c.cfg, "COORD: Dropping stale generation result for room %s", res.roomID)
		return
	}

	if res.err != nil {
		room.status = RoomWaiting
		logf(c.cfg, "COORD: Question generation failed for room %s: %v", res.roomID, res.err)
		// The host is still a player here: a STARTING room dies with its
		// host, so the lookup cannot miss.
		if host := room.player(res.hostID); host != nil {
			c.sendError(host.client, errKindGeneration, "Failed to generate questions")
		}
		return
	}

	room.questions = res.questions
	room.status = RoomRunning
	for _, p := range room.players {
		p.status = PlayerInGame
	}

	c.broadcast(room, GameStartedMessage{Type: "game-started", Room: room.snapshot()})
	logf(c.cfg, "COORD: Game started in room %s with %d questions", room.id, len(room.questions))
}

func (c *Coordinator) submitAnswer(cl *Client, msg ClientMessage) {
	room := c.room(cl, msg.RoomID)
	if room == nil {
		return
	}
	if room.status != RoomRunning {
		c.sendError(cl, errKindBadState, "Game is not running")
		return
	}
	player := room.player(cl.id)
	if player == nil {
		c.sendError(cl, errKindNotInRoom, "Player not found in room")
		return
	}
	if !msg.IsCorrect {
		return
	}

	player.score++
	c.broadcast(room, AnswerCorrectMessage{Type: "answer-correct", Room: room.snapshot()})
}

func (c *Coordinator) playerFinished(cl *Client, msg ClientMessage) {
	room := c.room(cl, msg.RoomID)
	if room == nil {
		return
	}
	if room.status != RoomRunning {
		c.sendError(cl, errKindBadState, "Game is not running")
		return
	}
	player := room.player(cl.id)
	if player == nil {
		c.sendError(cl, errKindNotInRoom, "Player not found in room")
		return
	}

	player.status = PlayerLobby
	c.broadcast(room, PlayerFinishedMessage{Type: "player-finished", Room: room.snapshot()})
}

func (c *Coordinator) gameOver(cl *Client, msg ClientMessage) {
	room := c.room(cl, msg.RoomID)
	if room == nil {
		return
	}

	room.status = RoomWaiting
	for _, p := range room.players {
		p.status = PlayerLobby
	}

	// Broadcast before zeroing, so the payload carries the final standings.
	c.broadcast(room, BackToRoomMessage{Type: "back-to-room", Room: room.snapshot()})

	for _, p := range room.players {
		p.score = 0
	}
}

func (c *Coordinator) leaveRoom(cl *Client, msg ClientMessage) {
	room := c.room(cl, msg.RoomID)
	if room == nil {
		return
	}
	if room.player(cl.id) == nil {
		c.sendError(cl, errKindNotInRoom, "Player not found in room")
		return
	}

	c.removeFromRoom(room, cl)
}

func (c *Coordinator) relayMessage(cl *Client, msg ClientMessage) {
	room := c.room(cl, msg.RoomID)
	if room == nil {
		return
	}
	player := room.player(cl.id)
	if player == nil {
		c.sendError(cl, errKindNotInRoom, "Player not found in room")
		return
	}

	c.broadcast(room, ChatMessage{
		Type:    "message",
		Player:  ChatPlayer{ID: cl.id, Name: player.name},
		Message: msg.Message,
	})
}

// removeFromRoom takes one player out of one room and settles the fallout:
// host departure closes the room for everyone, an emptied room is deleted
// silently, and anything else is announced to the remaining players.
func (c *Coordinator) removeFromRoom(room *Room, cl *Client) {
	player := room.removePlayer(cl.id)
	if player == nil {
		return
	}
	if set, ok := c.memberships[cl.id]; ok {
		delete(set, room.id)
	}

	if room.hostID == cl.id {
		c.broadcast(room, RoomClosedMessage{
			Type:    "room-closed",
			RoomID:  room.id,
			Message: "Host has left. Room is closed.",
		})
		c.deleteRoom(room)
		logf(c.cfg, "COORD: Host left, room %s closed", room.id)
		return
	}

	if len(room.players) == 0 {
		delete(c.rooms, room.id)
		logf(c.cfg, "COORD: Room %s emptied and deleted", room.id)
		return
	}

	c.broadcast(room, RoomLeftMessage{
		Type:       "room-left",
		RoomID:     room.id,
		PlayerID:   cl.id,
		PlayerName: player.name,
		Players:    room.roster(),
	})
}

// deleteRoom evicts every remaining member from the room's broadcast scope
// and drops the room from the registry.
func (c *Coordinator) deleteRoom(room *Room) {
	for _, p := range room.players {
		if set, ok := c.memberships[p.client.id]; ok {
			delete(set, room.id)
		}
	}
	delete(c.rooms, room.id)
}

func (c *Coordinator) handleDisconnect(cl *Client) {
	if !cl.gone {
		cl.gone = true
		close(cl.send)
	}

	for roomID := range c.memberships[cl.id] {
		room, ok := c.rooms[roomID]
		if !ok {
			continue
		}
		c.removeFromRoom(room, cl)
	}
	delete(c.memberships, cl.id)

	logf(c.cfg, "COORD: User disconnected with id %s", cl.id)
}

// RoomSnapshot returns a point-in-time view of a room, or nil if the room
// does not exist or ctx expired first.
func (c *Coordinator) RoomSnapshot(ctx context.Context, roomID string) *RoomSnapshot {
	resp := make(chan *RoomSnapshot, 1)

	select {
	case c.snapshotReqs <- snapshotRequest{roomID: roomID, resp: resp}:
		select {
		case snap := <-resp:
			return snap
		case <-ctx.Done():
			return nil
		}
	case <-ctx.Done():
		return nil
	}
}

// RoomQuestions reports whether the room exists and its current question
// list, which is empty until a game has started.
func (c *Coordinator) RoomQuestions(ctx context.Context, roomID string) (bool, []Question) {
	resp := make(chan questionsReply, 1)

	select {
	case c.questionReqs <- questionsRequest{roomID: roomID, resp: resp}:
		select {
		case reply := <-resp:
			return reply.roomFound, reply.questions
		case <-ctx.Done():
			return false, nil
		}
	case <-ctx.Done():
		return false, nil
	}
}

// PublicRooms lists descriptions of all non-private rooms.
func (c *Coordinator) PublicRooms(ctx context.Context) []RoomDescription {
	resp := make(chan []RoomDescription, 1)

	select {
	case c.listReqs <- resp:
		select {
		case list := <-resp:
			return list
		case <-ctx.Done():
			return nil
		}
	case <-ctx.Done():
		return nil
	}
}
