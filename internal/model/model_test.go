package model

import (
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{
			name: "full fraction truncated to four digits",
			in:   time.Date(2024, 3, 5, 12, 34, 56, 123456000, time.UTC),
			want: "2024-03-05T12:34:56.1234+00:00",
		},
		{
			name: "trailing zeros stripped",
			in:   time.Date(2024, 3, 5, 12, 34, 56, 120000000, time.UTC),
			want: "2024-03-05T12:34:56.12+00:00",
		},
		{
			name: "zero fraction keeps a single digit",
			in:   time.Date(2024, 3, 5, 12, 34, 56, 0, time.UTC),
			want: "2024-03-05T12:34:56.0+00:00",
		},
		{
			name: "single significant digit",
			in:   time.Date(2024, 3, 5, 12, 34, 56, 100000000, time.UTC),
			want: "2024-03-05T12:34:56.1+00:00",
		},
		{
			name: "non-UTC input normalized to offset zero",
			in:   time.Date(2024, 3, 5, 14, 34, 56, 500000000, time.FixedZone("CEST", 2*3600)),
			want: "2024-03-05T12:34:56.5+00:00",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTime(tt.in); got != tt.want {
				t.Errorf("FormatTime(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatColor(t *testing.T) {
	if got := FormatColor(0); got != nil {
		t.Errorf("expected nil for zero color, got %q", *got)
	}
	if got := FormatColor(0xFF00FF); got == nil || *got != "#FF00FF" {
		t.Errorf("expected #FF00FF, got %v", got)
	}
	if got := FormatColor(255); got == nil || *got != "#0000FF" {
		t.Errorf("expected #0000FF, got %v", got)
	}
}

func TestUserRolesOmittedWhenEmpty(t *testing.T) {
	data, err := json.Marshal(User{ID: "1", Name: "ann", Discriminator: "0000", Nickname: "ann"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), `"roles"`) {
		t.Errorf("expected no roles key for a user without roles, got %s", data)
	}

	data, err = json.Marshal(User{
		ID: "1", Name: "ann", Discriminator: "0000", Nickname: "ann",
		Roles: []Role{{ID: "9", Name: "admin", Position: 3}},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"roles"`) {
		t.Errorf("expected roles key for a user with roles, got %s", data)
	}
}

func TestNullableFieldsSerializeAsNull(t *testing.T) {
	data, err := json.Marshal(Channel{ID: "1", Type: "GuildTextChat", Name: "general"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"topic":null`) {
		t.Errorf("expected topic to be an explicit null, got %s", data)
	}

	data, err = json.Marshal(DateRange{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"after":null`) || !strings.Contains(string(data), `"before":null`) {
		t.Errorf("expected null date range bounds, got %s", data)
	}
}

func TestMessageOptionalFields(t *testing.T) {
	msg := Message{
		ID:        "1",
		Type:      "Default",
		Timestamp: "2024-03-05T12:00:00.0+00:00",
	}
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), `"reference"`) {
		t.Errorf("expected no reference key for a non-reply, got %s", data)
	}
	if !strings.Contains(string(data), `"timestampEdited":null`) {
		t.Errorf("expected timestampEdited null, got %s", data)
	}
	if !strings.Contains(string(data), `"callEndedTimestamp":null`) {
		t.Errorf("expected callEndedTimestamp null, got %s", data)
	}

	msg.Reference = &MessageReference{MessageID: "2", ChannelID: "3", GuildID: "4"}
	data, err = json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"reference"`) {
		t.Errorf("expected reference key for a reply, got %s", data)
	}
}

func TestEmbedOptionalSubStructures(t *testing.T) {
	data, err := json.Marshal(Embed{Images: []EmbedImage{}, Fields: []EmbedField{}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{`"color"`, `"author"`, `"thumbnail"`, `"video"`, `"footer"`, `"image"`} {
		if strings.Contains(string(data), key) {
			t.Errorf("expected %s to be absent on a bare embed, got %s", key, data)
		}
	}
	if !strings.Contains(string(data), `"fields":[]`) {
		t.Errorf("expected fields to always be present, got %s", data)
	}
	if !strings.Contains(string(data), `"title":""`) {
		t.Errorf("expected title to always be present, got %s", data)
	}
}
