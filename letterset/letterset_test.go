package letterset

import "testing"

func TestByteToLetterRoundTrip(t *testing.T) {
	for b := byte('a'); b <= 'z'; b++ {
		l, err := ByteToLetter(b)
		if err != nil {
			t.Fatalf("ByteToLetter(%q): %v", b, err)
		}
		if l.Byte() != b {
			t.Errorf("roundtrip mismatch: got %q want %q", l.Byte(), b)
		}
	}
}

func TestByteToLetterRejectsOutOfRange(t *testing.T) {
	for _, b := range []byte{'A', '0', ' ', '{', 0} {
		if _, err := ByteToLetter(b); err == nil {
			t.Errorf("ByteToLetter(%q): expected error, got none", b)
		}
	}
}

func TestRankMatchesPopCountOfLowerBits(t *testing.T) {
	// mask has letters a, c, d, f set (indices 0, 2, 3, 5).
	m := Letter(0).Bit() | Letter(2).Bit() | Letter(3).Bit() | Letter(5).Bit()
	cases := []struct {
		l    Letter
		rank int
	}{
		{0, 0},
		{1, 1}, // between a and c: one letter (a) below
		{2, 1},
		{3, 2},
		{4, 3},
		{5, 3},
		{6, 4},
	}
	for _, c := range cases {
		if got := m.Rank(c.l); got != c.rank {
			t.Errorf("Rank(%d) = %d, want %d", c.l, got, c.rank)
		}
	}
}

func TestTrailingZeros(t *testing.T) {
	if got := Mask(0).TrailingZeros(); got != 32 {
		t.Errorf("TrailingZeros(0) = %d, want 32", got)
	}
	m := Letter(5).Bit() | Letter(9).Bit()
	if got := m.TrailingZeros(); got != 5 {
		t.Errorf("TrailingZeros = %d, want 5", got)
	}
}

func TestWithAndSet(t *testing.T) {
	var m Mask
	m = m.With(Letter(3))
	if !m.Set(Letter(3)) {
		t.Error("expected letter 3 to be set")
	}
	if m.Set(Letter(4)) {
		t.Error("expected letter 4 to be unset")
	}
	if m.PopCount() != 1 {
		t.Errorf("PopCount() = %d, want 1", m.PopCount())
	}
}

func TestEmpty(t *testing.T) {
	if !Mask(0).Empty() {
		t.Error("zero mask should be empty")
	}
	if Full.Empty() {
		t.Error("full mask should not be empty")
	}
}
