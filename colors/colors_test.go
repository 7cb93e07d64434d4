package colors

import (
	"errors"
	"math"
	"testing"
)

func TestChannels(t *testing.T) {
	c := ARGB(0x12, 0x34, 0x56, 0x78)
	if c != 0x12345678 {
		t.Fatalf("packed %08x", c)
	}
	if Alpha(c) != 0x12 || Red(c) != 0x34 || Green(c) != 0x56 || Blue(c) != 0x78 {
		t.Errorf("unpacked %x %x %x %x", Alpha(c), Red(c), Green(c), Blue(c))
	}
	if got := SetAlpha(0x80, c); got != 0x80345678 {
		t.Errorf("SetAlpha gave %08x", got)
	}
}

func TestMixIdentity(t *testing.T) {
	bases := []uint32{0xFF102030, 0x80FFFFFF, 0x00000001, 0xFF000000}
	for _, base := range bases {
		for _, rgb := range []uint32{0x000000, 0xABCDEF, 0xFFFFFF} {
			clear := rgb
			if got := Mix(base, clear); got != base {
				t.Errorf("Mix(%08x, %08x) = %08x, want base", base, clear, got)
			}
			solid := 0xFF000000 | rgb
			if got := Mix(base, solid); got != solid {
				t.Errorf("Mix(%08x, %08x) = %08x, want overlay", base, solid, got)
			}
		}
	}
}

func TestMixHalf(t *testing.T) {
	got := Mix(0xFF000000, 0x80FFFFFF)
	if Alpha(got) != 0xFF {
		t.Errorf("alpha %x", Alpha(got))
	}
	if r := Red(got); r < 0x7F || r > 0x81 {
		t.Errorf("red %x is not about half", r)
	}
}

func TestLerpARGB(t *testing.T) {
	from, to := uint32(0x00000000), uint32(0xFFFFFFFF)
	if got := LerpARGB(from, to, -1); got != from {
		t.Errorf("t<0 gave %08x", got)
	}
	if got := LerpARGB(from, to, 2); got != to {
		t.Errorf("t>1 gave %08x", got)
	}
	if got := LerpARGB(0xFF000000, 0xFF0000FF, 0.5); Blue(got) != 0x80 {
		t.Errorf("midpoint blue %x", Blue(got))
	}
}

func TestHSBRoundTrip(t *testing.T) {
	for _, c := range []uint32{0xFFFF0000, 0xFF00FF00, 0xFF0000FF, 0xFF808080, 0xFF123456, 0xFFFEDCBA} {
		h, s, v := RGBToHSB(Red(c), Green(c), Blue(c))
		r, g, b := HSBToRGB(h, s, v)
		if abs(r-Red(c)) > 1 || abs(g-Green(c)) > 1 || abs(b-Blue(c)) > 1 {
			t.Errorf("%08x went to %d %d %d", c, r, g, b)
		}
	}
}

func TestLerpHSB(t *testing.T) {
	blue, red := uint32(0xFF0000FF), uint32(0xFFFF0000)
	if got := LerpHSB(blue, red, 0, false); got != blue {
		t.Errorf("ratio 0 gave %08x", got)
	}
	if got := LerpHSB(blue, red, 1, false); got != red {
		t.Errorf("ratio 1 gave %08x", got)
	}
	// long way from blue (240°) to red (0°) passes through green/cyan
	long := LerpHSB(blue, red, 0.5, false)
	if Green(long) < 0xF0 {
		t.Errorf("long way midpoint %08x is not green-ish", long)
	}
	// short way passes through magenta
	short := LerpHSB(blue, red, 0.5, true)
	if Green(short) != 0 || Red(short) < 0xF0 || Blue(short) < 0xF0 {
		t.Errorf("short way midpoint %08x is not magenta", short)
	}
}

func TestEasing(t *testing.T) {
	for _, f := range []func(float64) float64{CubicOut, QuinticOut} {
		if f(0) != 0 || f(1) != 1 {
			t.Errorf("easing endpoints %v %v", f(0), f(1))
		}
		if f(0.5) <= 0.5 {
			t.Errorf("easing out should be above linear, got %v", f(0.5))
		}
	}
	if math.Abs(CubicOut(0.5)-0.875) > 1e-9 {
		t.Errorf("CubicOut(0.5) = %v", CubicOut(0.5))
	}
	if QuinticOut(0.5) <= CubicOut(0.5) {
		t.Errorf("quintic should be steeper")
	}
}

func TestParseHex(t *testing.T) {
	cases := []struct {
		in   string
		want uint32
		err  bool
	}{
		{"#7F7F7F", 0xFF7F7F7F, false},
		{"80112233", 0x80112233, false},
		{"0xFFABCDEF", 0xFFABCDEF, false},
		{"#123", 0, true},
		{"#zzzzzz", 0, true},
	}
	for _, c := range cases {
		got, err := ParseHex(c.in)
		if c.err {
			if !errors.Is(err, ErrBadHex) {
				t.Errorf("%q: expected ErrBadHex, got %v", c.in, err)
			}
			continue
		}
		if err != nil || got != c.want {
			t.Errorf("%q: got %08x %v want %08x", c.in, got, err, c.want)
		}
	}
	if Hex(0xFF00AA11) != "#00aa11" || Hex(0x4000AA11) != "#4000aa11" {
		t.Errorf("Hex formatting %s %s", Hex(0xFF00AA11), Hex(0x4000AA11))
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
