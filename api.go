/*
Copyright © 2025 Daanish <daanish04@gmail.com>
*/

package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

const readTimeout = 2 * time.Second

func writeJSON(cfg *Config, w http.ResponseWriter, errs chan<- error, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	securityHeaders(cfg, w)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		errs <- err
	}
}

func serveTopics(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		writeJSON(cfg, w, errs, http.StatusOK, topics)

		logf(cfg, "SERVE: Topic catalogue to %s in %s",
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

// serveQuestion generates a one-shot question list without any room, for
// clients that want a quiz outside a session.
func serveQuestion(cfg *Config, generator QuestionGenerator, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		topic := r.URL.Query().Get("topic")
		rawDifficulty := r.URL.Query().Get("difficulty")
		if topic == "" || rawDifficulty == "" {
			writeJSON(cfg, w, errs, http.StatusBadRequest, map[string]string{"error": "Topic and difficulty are required"})
			return
		}

		difficulty, err := parseDifficulty(rawDifficulty)
		if err != nil {
			writeJSON(cfg, w, errs, http.StatusBadRequest, map[string]string{"error": "Unknown difficulty"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), cfg.generationTimeout)
		defer cancel()

		questions, err := generator.Generate(ctx, topic, difficulty)
		if err != nil {
			logf(cfg, "SERVE: Question generation failed: %v", err)
			writeJSON(cfg, w, errs, http.StatusInternalServerError, map[string]string{"error": "Failed to generate questions"})
			return
		}

		writeJSON(cfg, w, errs, http.StatusOK, map[string][]Question{"questions": questions})
	}
}

func serveRoomQuestions(cfg *Config, coord *Coordinator, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
		defer cancel()

		found, questions := coord.RoomQuestions(ctx, p.ByName("roomid"))
		if !found {
			writeJSON(cfg, w, errs, http.StatusNotFound, map[string]string{"error": "Room not found"})
			return
		}
		if len(questions) == 0 {
			writeJSON(cfg, w, errs, http.StatusNotFound, map[string]string{"error": "Questions not found for this room"})
			return
		}

		writeJSON(cfg, w, errs, http.StatusOK, map[string][]Question{"questions": questions})
	}
}

func serveRooms(cfg *Config, coord *Coordinator, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
		defer cancel()

		writeJSON(cfg, w, errs, http.StatusOK, coord.PublicRooms(ctx))
	}
}

// serveRoomQR renders a PNG QR code for a room's share URL, so a host can
// put the join link on a screen.
func serveRoomQR(cfg *Config, coord *Coordinator) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		roomID := p.ByName("roomid")

		ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
		defer cancel()

		if coord.RoomSnapshot(ctx, roomID) == nil {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}

		// Derive scheme (respecting TLS and X-Forwarded-Proto if present).
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}

		// We are at .../rooms/:roomid/qr; strip the trailing "/qr" to get
		// the share URL.
		path := strings.TrimSuffix(r.URL.Path, "/qr")

		url := scheme + "://" + r.Host + path

		const qrSize = 320 // mobile-friendly size
		png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	}
}
