package config

import "slices"

// ConfigDiff describes what changed between two configs.
// Only fields that can be safely hot-reloaded are tracked; interview and
// provider settings require a restart because a session may be in flight.
type ConfigDiff struct {
	LogLevelChanged bool
	NewLogLevel     LogLevel

	PeerChanged bool
	NewPeerURL  string

	ExportChanged bool
	NewExport     ExportConfig
}

// Any reports whether the diff contains at least one change.
func (d ConfigDiff) Any() bool {
	return d.LogLevelChanged || d.PeerChanged || d.ExportChanged
}

// Diff compares old and new configs and returns what changed.
// Only tracks changes that are safe to apply without restart.
func Diff(old, new *Config) ConfigDiff {
	d := ConfigDiff{}

	if old.Server.LogLevel != new.Server.LogLevel {
		d.LogLevelChanged = true
		d.NewLogLevel = new.Server.LogLevel
	}

	if old.Peer.URL != new.Peer.URL {
		d.PeerChanged = true
		d.NewPeerURL = new.Peer.URL
	}

	if old.Export.Dir != new.Export.Dir || !slices.Equal(old.Export.Formats, new.Export.Formats) {
		d.ExportChanged = true
		d.NewExport = new.Export
	}

	return d
}
