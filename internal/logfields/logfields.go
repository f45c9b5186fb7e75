// Package logfields holds the canonical slog keys used by the dev server.
package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyAddr       = "addr"
	KeyMethod     = "method"
	KeyPath       = "path"
	KeyStatus     = "status"
	KeyBytes      = "bytes"
	KeyDurationMS = "duration_ms"
	KeyConfig     = "config_path"
	KeyFile       = "file"
	KeyEvent      = "event"
	KeyError      = "error"
)

func Addr(a string) slog.Attr         { return slog.String(KeyAddr, a) }
func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func Bytes(n int) slog.Attr           { return slog.Int(KeyBytes, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Config(p string) slog.Attr       { return slog.String(KeyConfig, p) }
func File(p string) slog.Attr         { return slog.String(KeyFile, p) }
func Event(e string) slog.Attr        { return slog.String(KeyEvent, e) }

// Error returns an empty string value for a nil error.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
