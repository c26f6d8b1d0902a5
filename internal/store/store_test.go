package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MikeSquared-Agency/mirror/internal/model"
)

func TestLoadSave_CreatesWithZeroWatermark(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")

	sf, err := LoadSave(path)
	if err != nil {
		t.Fatalf("load save: %v", err)
	}
	if got := sf.LastFullExport().Unix(); got != 0 {
		t.Errorf("expected zero watermark, got %d", got)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected save file to be created: %v", err)
	}
	if !strings.Contains(string(data), `"last_full_export": 0`) {
		t.Errorf("unexpected save file contents: %s", data)
	}
}

func TestSaveFile_AdvancePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")

	sf, err := LoadSave(path)
	if err != nil {
		t.Fatalf("load save: %v", err)
	}
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	if err := sf.Advance(now); err != nil {
		t.Fatalf("advance: %v", err)
	}

	reloaded, err := LoadSave(path)
	if err != nil {
		t.Fatalf("reload save: %v", err)
	}
	if got := reloaded.LastFullExport().Unix(); got != now.Unix() {
		t.Errorf("expected watermark %d, got %d", now.Unix(), got)
	}
}

func testExport(ids ...string) *model.Export {
	msgs := make([]model.Message, 0, len(ids))
	for _, id := range ids {
		msgs = append(msgs, model.Message{
			ID:        id,
			Type:      "Default",
			Timestamp: "2024-03-05T12:00:00.0+00:00",
			Author:    model.User{ID: "50", Name: "author", Discriminator: "0000", Nickname: "author"},
		})
	}
	return &model.Export{
		Guild:      model.Guild{ID: "500", Name: "Test Guild"},
		Channel:    model.Channel{ID: "7", Type: "GuildTextChat", Name: "general"},
		Messages:   msgs,
		ExportedAt: "2024-03-05T12:00:00.0+00:00",
	}
}

func TestWriteReadExport_RoundTrip(t *testing.T) {
	st, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	// messageCount is recomputed at write time.
	ex := testExport("1", "2", "3")
	ex.MessageCount = 0
	if err := st.WriteExport("7", ex); err != nil {
		t.Fatalf("write export: %v", err)
	}

	got, err := st.ReadExport("7")
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if got == nil {
		t.Fatal("expected a document")
	}
	if got.MessageCount != 3 || len(got.Messages) != 3 {
		t.Errorf("expected recomputed count 3, got count=%d len=%d", got.MessageCount, len(got.Messages))
	}
	if got.Messages[2].ID != "3" {
		t.Errorf("expected message order preserved, got %q", got.Messages[2].ID)
	}
}

func TestWriteExport_Format(t *testing.T) {
	dir := t.TempDir()
	st, err := New(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := st.WriteExport("7", testExport("1")); err != nil {
		t.Fatalf("write export: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "7.json"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "{\n  \"guild\"") {
		t.Errorf("expected 2-space indented document, got prefix %q", text[:20])
	}
	if strings.Contains(text, `"roles"`) {
		t.Errorf("expected roles key absent for a roleless author, got %s", text)
	}
	if !strings.Contains(text, `"topic": null`) {
		t.Errorf("expected nullable fields as explicit null, got %s", text)
	}
}

func TestReadExport_Missing(t *testing.T) {
	st, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	got, err := st.ReadExport("does-not-exist")
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for a never-exported channel, got %+v", got)
	}
}
