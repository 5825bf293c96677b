/*
Copyright © 2025 Daanish <daanish04@gmail.com>
*/

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Machine-readable kinds carried on every room-error message, alongside the
// human-readable reason string.
const (
	errKindNotFound     = "room-not-found"
	errKindRoomFull     = "room-full"
	errKindUnauthorized = "not-room-host"
	errKindBadState     = "invalid-state"
	errKindNotInRoom    = "player-not-in-room"
	errKindGeneration   = "generation-failed"
	errKindBadRequest   = "bad-request"
)

func setupLogging(cfg *Config) {
	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}

	handler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
	})
	slog.SetDefault(slog.New(handler))
}

func logf(cfg *Config, format string, args ...any) {
	if !cfg.verbose {
		return
	}

	slog.Debug(fmt.Sprintf(format, args...))
}

func newPage(title, body string) string {
	var htmlBody strings.Builder

	htmlBody.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
	htmlBody.WriteString(`<style>`)
	htmlBody.WriteString(`html,body,a{display:block;height:100%;width:100%;text-decoration:none;color:inherit;cursor:auto;}</style>`)
	htmlBody.WriteString(fmt.Sprintf("<title>%s</title></head>", title))
	htmlBody.WriteString(fmt.Sprintf("<body><a href=\"/\">%s</a></body></html>", body))

	return htmlBody.String()
}
