package scalar

import (
	"errors"
	"math"
	"testing"

	"github.com/muon-data/go-muon/ir"
)

func TestParseInt(t *testing.T) {
	tests := []struct {
		in   string
		bits int
		want int64
		err  error
	}{
		{in: "0", bits: 64, want: 0},
		{in: "-42", bits: 64, want: -42},
		{in: "+42", bits: 64, want: 42},
		{in: "1_000_000", bits: 64, want: 1000000},
		{in: "0b1010", bits: 8, want: 10},
		{in: "0o777", bits: 16, want: 511},
		{in: "0xdead_BEEF", bits: 64, want: 0xdeadbeef},
		{in: "-0x80", bits: 8, want: -128},
		{in: "127", bits: 8, want: 127},

		{in: "128", bits: 8, err: ir.ErrOverflow},
		{in: "-129", bits: 8, err: ir.ErrOverflow},
		{in: "65536", bits: 16, err: ir.ErrOverflow},
		{in: "0x1_0000_0000", bits: 32, err: ir.ErrOverflow},
		{in: "99999999999999999999", bits: 64, err: ir.ErrOverflow},

		{in: "", bits: 64, err: ir.ErrSyntax},
		{in: "-", bits: 64, err: ir.ErrSyntax},
		{in: "_1", bits: 64, err: ir.ErrSyntax},
		{in: "1_", bits: 64, err: ir.ErrSyntax},
		{in: "1__0", bits: 64, err: ir.ErrSyntax},
		{in: "0x_1", bits: 64, err: ir.ErrSyntax},
		{in: "0b2", bits: 64, err: ir.ErrSyntax},
		{in: "0o8", bits: 64, err: ir.ErrSyntax},
		{in: "12a", bits: 64, err: ir.ErrSyntax},
		{in: "1.5", bits: 64, err: ir.ErrSyntax},
		{in: "0x", bits: 64, err: ir.ErrSyntax},
	}
	for _, tc := range tests {
		got, err := ParseInt(tc.in, tc.bits)
		if tc.err != nil {
			if !errors.Is(err, tc.err) {
				t.Errorf("ParseInt(%q, %d): got err %v, want %v", tc.in, tc.bits, err, tc.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseInt(%q, %d): %v", tc.in, tc.bits, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseInt(%q, %d) = %d, want %d", tc.in, tc.bits, got, tc.want)
		}
	}
}

func TestParseUint(t *testing.T) {
	tests := []struct {
		in   string
		bits int
		want uint64
		err  error
	}{
		{in: "255", bits: 8, want: 255},
		{in: "0xffff_ffff_ffff_ffff", bits: 64, want: math.MaxUint64},
		{in: "256", bits: 8, err: ir.ErrOverflow},
		{in: "-1", bits: 64, err: ir.ErrSyntax},
	}
	for _, tc := range tests {
		got, err := ParseUint(tc.in, tc.bits)
		if tc.err != nil {
			if !errors.Is(err, tc.err) {
				t.Errorf("ParseUint(%q, %d): got err %v, want %v", tc.in, tc.bits, err, tc.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseUint(%q, %d): %v", tc.in, tc.bits, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseUint(%q, %d) = %d, want %d", tc.in, tc.bits, got, tc.want)
		}
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		err  error
	}{
		{in: "0.0", want: 0},
		{in: "-1.5", want: -1.5},
		{in: "1e3", want: 1000},
		{in: "2.5E-2", want: 0.025},
		{in: "1_000.5", want: 1000.5},
		{in: "inf", want: math.Inf(1)},
		{in: "+inf", want: math.Inf(1)},
		{in: "-inf", want: math.Inf(-1)},

		{in: "Inf", err: ir.ErrSyntax},
		{in: "nan", err: ir.ErrSyntax},
		{in: ".5", err: ir.ErrSyntax},
		{in: "5.", err: ir.ErrSyntax},
		{in: "1e", err: ir.ErrSyntax},
		{in: "0x1p3", err: ir.ErrSyntax},
		{in: "1._5", err: ir.ErrSyntax},
		{in: "", err: ir.ErrSyntax},
	}
	for _, tc := range tests {
		got, err := ParseFloat(tc.in, 64)
		if tc.err != nil {
			if !errors.Is(err, tc.err) {
				t.Errorf("ParseFloat(%q): got err %v, want %v", tc.in, err, tc.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFloat(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseFloat(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if v, err := ParseFloat("NaN", 64); err != nil || !math.IsNaN(v) {
		t.Errorf("ParseFloat(NaN) = %v, %v", v, err)
	}
}

func TestFormatFloat(t *testing.T) {
	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		if _, err := FormatFloat(v); !errors.Is(err, ir.ErrUnsupportedValue) {
			t.Errorf("FormatFloat(%v): want ErrUnsupportedValue, got %v", v, err)
		}
	}
	// output must read back as a float, never an int
	for _, v := range []float64{1, -2, 1.5, 1e21} {
		s, err := FormatFloat(v)
		if err != nil {
			t.Fatalf("FormatFloat(%v): %v", v, err)
		}
		got, err := ParseFloat(s, 64)
		if err != nil {
			t.Errorf("FormatFloat(%v) = %q does not parse back: %v", v, s, err)
		} else if got != v {
			t.Errorf("FormatFloat(%v) = %q parses back to %v", v, s, got)
		}
		if n := Infer(s); n == nil || n.Type != ir.FloatType {
			t.Errorf("FormatFloat(%v) = %q should infer as float", v, s)
		}
	}
}

func TestInfer(t *testing.T) {
	tests := []struct {
		in   string
		want ir.Type
	}{
		{"true", ir.BoolType},
		{"false", ir.BoolType},
		{"42", ir.IntType},
		{"-0x10", ir.IntType},
		{"1.5", ir.FloatType},
		{"2e10", ir.FloatType},
		{"2024-06-01", ir.DateType},
		{"12:30:00", ir.TimeType},
		{"2024-06-01T12:30:00Z", ir.DateTimeType},
	}
	for _, tc := range tests {
		n := Infer(tc.in)
		if n == nil || n.Type != tc.want {
			t.Errorf("Infer(%q): want %s node, got %v", tc.in, tc.want, n)
		}
	}
	// these stay plain strings
	for _, in := range []string{"hello", "True", "1.5.2", "inf", "NaN", "12:30", ""} {
		if n := Infer(in); n != nil {
			t.Errorf("Infer(%q): want nil, got %s node", in, n.Type)
		}
	}
}
