package logfields

import "log/slog"

// Canonical log field names shared by the content pipeline and the server.
const (
	KeySlug        = "slug"
	KeyPath        = "path"
	KeyBuildID     = "build_id"
	KeyFingerprint = "fingerprint"
	KeyDurationMS  = "duration_ms"
	KeyTag         = "tag"
	KeyKey         = "key"
	KeyError       = "error"
)

func Slug(s string) slog.Attr        { return slog.String(KeySlug, s) }
func Path(p string) slog.Attr        { return slog.String(KeyPath, p) }
func BuildID(id string) slog.Attr    { return slog.String(KeyBuildID, id) }
func Fingerprint(f string) slog.Attr { return slog.String(KeyFingerprint, f) }
func DurationMS(ms int64) slog.Attr  { return slog.Int64(KeyDurationMS, ms) }
func Tag(t string) slog.Attr         { return slog.String(KeyTag, t) }
func Key(k string) slog.Attr         { return slog.String(KeyKey, k) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
