package mediainfo

import "testing"

func TestNormalizeSubtitleCodec(t *testing.T) {
	cases := []struct {
		codecID, format, want string
	}{
		{"S_TEXT/UTF8", "UTF-8", "subrip"},
		{"UTF-8", "", "subrip"},
		{"S_TEXT/ASS", "ASS", "ass"},
	}
	for _, c := range cases {
		if got := normalizeSubtitleCodec(c.codecID, c.format); got != c.want {
			t.Errorf("normalizeSubtitleCodec(%q, %q) = %q, want %q", c.codecID, c.format, got, c.want)
		}
	}
}

func TestParseMenuTimestamp(t *testing.T) {
	secs, ok := parseMenuTimestamp("00:02:30.500")
	if !ok {
		t.Fatal("expected valid timestamp")
	}
	if secs != 150.5 {
		t.Errorf("got %v, want 150.5", secs)
	}

	if _, ok := parseMenuTimestamp("@type"); ok {
		t.Error("expected @type to be rejected")
	}
}

func TestNormalizedIndex(t *testing.T) {
	r := map[string]string{"@typeorder": "3"}
	if got := normalizedIndex(r, 9); got != 2 {
		t.Errorf("got %d, want 2", got)
	}

	empty := map[string]string{}
	if got := normalizedIndex(empty, 1); got != 1 {
		t.Errorf("fallback to position failed: got %d, want 1", got)
	}
}

func TestBuildChaptersOrdersByStart(t *testing.T) {
	raws := []map[string]string{
		{"@type": "Menu", "00:05:00.000": "Episode 2", "00:00:00.000": "Episode 1"},
	}
	chapters := buildChapters(raws)
	if len(chapters) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(chapters))
	}
	if chapters[0].Name != "Episode 1" {
		t.Errorf("chapters[0].Name = %q, want %q", chapters[0].Name, "Episode 1")
	}
	if chapters[0].EndTime != 300 {
		t.Errorf("chapters[0].EndTime = %v, want 300", chapters[0].EndTime)
	}
	if chapters[1].Name != "Episode 2" {
		t.Errorf("chapters[1].Name = %q, want %q", chapters[1].Name, "Episode 2")
	}
}
