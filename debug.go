package cywbus

import (
	"context"
	"encoding/hex"
	"log/slog"

	"golang.org/x/exp/constraints"
)

const (
	levelTrace slog.Level = slog.LevelDebug - 1
	// deviceLevel is used for lines read out of the chip's firmware console.
	deviceLevel slog.Level = slog.LevelError - 1
)

func (d *Bus) logerr(msg string, attrs ...slog.Attr) {
	d.logattrs(slog.LevelError, msg, attrs...)
}

func (d *Bus) info(msg string, attrs ...slog.Attr) {
	d.logattrs(slog.LevelInfo, msg, attrs...)
}

func (d *Bus) debug(msg string, attrs ...slog.Attr) {
	d.logattrs(slog.LevelDebug, msg, attrs...)
}

func (d *Bus) trace(msg string, attrs ...slog.Attr) {
	if d._traceenabled {
		d.logattrs(levelTrace, msg, attrs...)
	}
}

func (d *Bus) logenabled(level slog.Level) bool {
	return d.logger != nil && d.logger.Handler().Enabled(context.Background(), level)
}

func (d *Bus) logattrs(level slog.Level, msg string, attrs ...slog.Attr) {
	if d.logger != nil {
		d.logger.LogAttrs(context.Background(), level, msg, attrs...)
	}
}

func hex32(u uint32) string {
	return hex.EncodeToString([]byte{byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)})
}

// alignup rounds `val` up to nearest multiple of `align`. `align` must be a power of 2.
func alignup[T constraints.Unsigned](val, align T) T {
	return (val + align - 1) &^ (align - 1)
}

func isaligned[T constraints.Unsigned](val, align T) bool {
	return val&(align-1) == 0
}
