package quality

import "testing"

func TestParseRoundTripsWithString(t *testing.T) {
	for _, q := range append(Iter(), Original) {
		parsed, err := Parse(q.String())
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", q.String(), err)
		}
		if parsed != q {
			t.Errorf("Parse(%q) = %q, want %q", q.String(), parsed, q)
		}
	}
}

func TestParseRejectsInvalidValue(t *testing.T) {
	_, err := Parse("invalid")
	if err == nil {
		t.Fatal("expected an error for an unrecognized quality value")
	}
	var invalid *InvalidValueError
	if _, ok := err.(*InvalidValueError); !ok {
		t.Errorf("got error of type %T, want %T", err, invalid)
	}
}

func TestFromHeight(t *testing.T) {
	cases := []struct {
		height uint32
		want   Quality
	}{
		{0, P240},
		{1, P240},
		{240, P240},
		{241, P360},
		{480, P480},
		{720, P720},
		{1080, P1080},
		{1440, P1440},
		{2160, P4k},
		{4320, P8k},
		{4321, P8k},
	}
	for _, c := range cases {
		if got := FromHeight(c.height); got != c.want {
			t.Errorf("FromHeight(%d) = %q, want %q", c.height, got, c.want)
		}
	}
}
