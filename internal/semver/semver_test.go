package semver

import "testing"

func mustParseVersion(t *testing.T, raw string) Version {
	t.Helper()
	v, err := ParseVersion(raw)
	if err != nil {
		t.Fatalf("ParseVersion(%q): %v", raw, err)
	}
	return v
}

func mustParseConstraint(t *testing.T, raw string) Constraint {
	t.Helper()
	c, err := ParseConstraint(raw)
	if err != nil {
		t.Fatalf("ParseConstraint(%q): %v", raw, err)
	}
	return c
}

func TestSatisfies(t *testing.T) {
	c := mustParseConstraint(t, ">=1.2.0 <1.5.0")

	if !Satisfies(mustParseVersion(t, "1.2.0"), c) {
		t.Fatalf("expected 1.2.0 to satisfy >=1.2.0 <1.5.0")
	}
	if !Satisfies(mustParseVersion(t, "1.4.9"), c) {
		t.Fatalf("expected 1.4.9 to satisfy >=1.2.0 <1.5.0")
	}
	if Satisfies(mustParseVersion(t, "1.5.0"), c) {
		t.Fatalf("expected 1.5.0 to NOT satisfy >=1.2.0 <1.5.0")
	}
	if Satisfies(Version{}, c) {
		t.Fatalf("expected zero Version to satisfy nothing")
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b Version
		want int
	}{
		{New(1, 0, 0, ""), New(1, 0, 0, ""), 0},
		{New(1, 0, 0, ""), New(1, 0, 1, ""), -1},
		{New(1, 2, 0, ""), New(1, 1, 9, ""), 1},
		{New(2, 0, 0, ""), New(10, 0, 0, ""), -1},
		{New(1, 0, 0, "rc1"), New(1, 0, 0, ""), -1},
		{New(1, 0, 0, ""), New(1, 0, 0, "rc1"), 1},
		{New(1, 0, 0, "alpha"), New(1, 0, 0, "beta"), -1},
		{Version{}, New(0, 0, 0, ""), -1},
		{Version{}, Version{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.a.String()+"_vs_"+tt.b.String(), func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestParseConstraint_Invalid(t *testing.T) {
	if _, err := ParseConstraint(">=banana <2"); err == nil {
		t.Fatalf("expected error for malformed constraint")
	}
}

func TestZero(t *testing.T) {
	if Zero.String() != "0.0.0" {
		t.Fatalf("Zero = %q, want 0.0.0", Zero.String())
	}
	if Zero.IsZero() {
		t.Fatalf("Zero should be a real version, not the empty value")
	}
}
