/*
Copyright © 2025 Daanish <daanish04@gmail.com>
*/

package main

import (
	"crypto/rand"
)

const (
	roomCodeLength   = 6
	roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// newRoomCode generates a short, human-typeable room code. Uniqueness against
// live rooms is the coordinator's job; it re-rolls on collision.
func newRoomCode() string {
	buf := make([]byte, roomCodeLength)
	if _, err := rand.Read(buf); err != nil {
		panic("crypto/rand failure: " + err.Error())
	}

	out := make([]byte, roomCodeLength)
	for i := range out {
		out[i] = roomCodeAlphabet[int(buf[i])%len(roomCodeAlphabet)]
	}

	return string(out)
}
