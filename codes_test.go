/*
Copyright © 2025 Daanish <daanish04@gmail.com>
*/

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoomCode(t *testing.T) {
	seen := make(map[string]struct{})

	for i := 0; i < 1000; i++ {
		code := newRoomCode()
		require.Len(t, code, roomCodeLength)

		for _, r := range code {
			assert.True(t, strings.ContainsRune(roomCodeAlphabet, r), "unexpected rune %q in %q", r, code)
		}

		seen[code] = struct{}{}
	}

	// 62^6 codes; 1000 draws colliding would point at a broken generator.
	assert.Greater(t, len(seen), 990)
}
