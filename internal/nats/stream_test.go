package nats

import (
	"strings"
	"testing"
)

func TestStreamConfig(t *testing.T) {
	t.Parallel()

	cfg := StreamConfig()
	if cfg.Name != "ANALYTICS" {
		t.Fatalf("Name=%q, want ANALYTICS", cfg.Name)
	}
	if len(cfg.Subjects) != 1 || cfg.Subjects[0] != "analytics.>" {
		t.Fatalf("Subjects=%v, want [analytics.>]", cfg.Subjects)
	}
	if cfg.Duplicates <= 0 {
		t.Fatalf("Duplicates window must be positive for msg-id dedupe")
	}
}

func TestSnapshotSubjectIsCoveredByStream(t *testing.T) {
	t.Parallel()

	prefix := strings.TrimSuffix(StreamConfig().Subjects[0], ">")
	if !strings.HasPrefix(SnapshotSubject, prefix) {
		t.Fatalf("subject %q not covered by %q", SnapshotSubject, StreamConfig().Subjects[0])
	}
}

func TestCreateTLSConfig_MissingFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := createTLSConfig(dir+"/ca.pem", dir+"/cert.pem", dir+"/key.pem"); err == nil {
		t.Fatalf("expected error for missing CA file")
	}
}
