package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestServiceReloadAndFind(t *testing.T) {
	path := writeCatalogFile(t, sampleCatalog)
	svc := NewService(NewSource(path))

	rows, err := svc.Reload(context.Background())
	if err != nil {
		t.Fatalf("Reload() error: %v", err)
	}
	if rows != 3 {
		t.Fatalf("Reload() = %d rows, want 3", rows)
	}
	if svc.LoadedAt().IsZero() {
		t.Error("LoadedAt should be set after reload")
	}

	records := svc.Records()
	if got := svc.Find(records[0].ID); got == nil || got.Venue != records[0].Venue {
		t.Errorf("Find(%s) = %v", records[0].ID, got)
	}
	if got := svc.Find("missing"); got != nil {
		t.Errorf("Find(missing) = %v, want nil", got)
	}
}

func TestServiceReloadKeepsCacheOnFailure(t *testing.T) {
	path := writeCatalogFile(t, sampleCatalog)
	svc := NewService(NewSource(path))

	if _, err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error: %v", err)
	}
	before := len(svc.Records())

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Reload(context.Background()); err == nil {
		t.Fatal("Reload() after removing the file should fail")
	}

	if got := len(svc.Records()); got != before {
		t.Errorf("cache has %d rows after failed reload, want %d", got, before)
	}
}

func TestServiceCandidateLazyLoads(t *testing.T) {
	path := writeCatalogFile(t, sampleCatalog)
	svc := NewService(NewSource(path))

	today := date(2026, 3, 8)
	rec, err := svc.Candidate(context.Background(), today)
	if err != nil {
		t.Fatalf("Candidate() error: %v", err)
	}
	if rec == nil || rec.Venue != "Zepp Namba" {
		t.Errorf("Candidate() = %v, want nearest future Zepp Namba", rec)
	}
	if svc.LoadedAt().IsZero() {
		t.Error("Candidate should have loaded the catalog")
	}
}

func TestServiceCandidateFetchFailure(t *testing.T) {
	svc := NewService(NewSource(filepath.Join(t.TempDir(), "absent.csv")))

	if _, err := svc.Candidate(context.Background(), date(2026, 3, 8)); err == nil {
		t.Error("Candidate() with unreadable source should fail")
	}
}
