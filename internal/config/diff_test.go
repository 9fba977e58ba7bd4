package config_test

import (
	"testing"

	"github.com/oae-tools/vozform/internal/config"
)

func baseConfig() *config.Config {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	return cfg
}

func TestDiff_NoChanges(t *testing.T) {
	t.Parallel()
	old, new := baseConfig(), baseConfig()
	if d := config.Diff(old, new); d.Any() {
		t.Errorf("Diff of identical configs = %+v, want no changes", d)
	}
}

func TestDiff_LogLevelChanged(t *testing.T) {
	t.Parallel()
	old, new := baseConfig(), baseConfig()
	new.Server.LogLevel = config.LogDebug

	d := config.Diff(old, new)
	if !d.LogLevelChanged || d.NewLogLevel != config.LogDebug {
		t.Errorf("Diff = %+v, want log level change to debug", d)
	}
}

func TestDiff_PeerChanged(t *testing.T) {
	t.Parallel()
	old, new := baseConfig(), baseConfig()
	new.Peer.URL = "ws://other:8080/sync"

	d := config.Diff(old, new)
	if !d.PeerChanged || d.NewPeerURL != "ws://other:8080/sync" {
		t.Errorf("Diff = %+v, want peer change", d)
	}
}

func TestDiff_ExportFormatsChanged(t *testing.T) {
	t.Parallel()
	old, new := baseConfig(), baseConfig()
	new.Export.Formats = []config.ExportFormat{config.ExportJSON, config.ExportCSV}

	d := config.Diff(old, new)
	if !d.ExportChanged || len(d.NewExport.Formats) != 2 {
		t.Errorf("Diff = %+v, want export change", d)
	}
}

func TestDiff_InterviewChangesIgnored(t *testing.T) {
	t.Parallel()
	old, new := baseConfig(), baseConfig()
	new.Interview.Confirm = true
	new.Interview.Language = "pt-PT"

	if d := config.Diff(old, new); d.Any() {
		t.Errorf("Diff = %+v, interview settings should not be hot-reloadable", d)
	}
}
