package match

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Blue Dream", "blue dream"},
		{"  OG Kush  ", "og kush"},
		{"sour diesel", "sour diesel"},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeAll_DropsEmpty(t *testing.T) {
	got := NormalizeAll([]string{" Blue Dream ", "", "  ", "OG Kush"})
	want := []string{"blue dream", "og kush"}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRatio(t *testing.T) {
	if got := Ratio("blue dream", "blue dream"); got != 100 {
		t.Errorf("identical strings: got %d, want 100", got)
	}
	if got := Ratio("blu dream", "blue dream"); got != 90 {
		t.Errorf("one-char deletion in 10 chars: got %d, want 90", got)
	}
	if got := Ratio("", ""); got != 100 {
		t.Errorf("two empty strings: got %d, want 100", got)
	}
	if got := Ratio("abc", "xyz123"); got != 0 {
		t.Errorf("disjoint strings: got %d, want 0", got)
	}
}

func TestTokenSortRatio_WordOrderInsensitive(t *testing.T) {
	if got := TokenSortRatio("dream blue", "blue dream"); got != 100 {
		t.Errorf("reordered tokens: got %d, want 100", got)
	}
}

func TestResolve_TypoAboveThreshold(t *testing.T) {
	r := NewResolver(85)
	candidates := []string{"blue dream", "og kush"}

	got, score, ok := r.Resolve("Blu Dream", candidates)
	if !ok {
		t.Fatalf("expected a match, got none (score %d)", score)
	}
	if got != "blue dream" {
		t.Errorf("resolved to %q, want %q", got, "blue dream")
	}
	if score < 85 {
		t.Errorf("score %d below threshold", score)
	}
}

func TestResolve_NoMatchBelowThreshold(t *testing.T) {
	r := NewResolver(85)
	candidates := []string{"blue dream", "og kush"}

	if got, _, ok := r.Resolve("xyz123", candidates); ok {
		t.Errorf("expected no match, resolved to %q", got)
	}
}

func TestResolve_EmptyInputs(t *testing.T) {
	r := NewResolver(85)

	if _, _, ok := r.Resolve("   ", []string{"blue dream"}); ok {
		t.Error("expected no match for blank query")
	}
	if _, _, ok := r.Resolve("blue dream", nil); ok {
		t.Error("expected no match for empty candidate set")
	}
}

func TestResolve_Deterministic(t *testing.T) {
	r := NewResolver(85)
	candidates := []string{"blue dream", "og kush", "sour diesel"}

	first, firstScore, firstOK := r.Resolve("blue dreem", candidates)
	for i := 0; i < 10; i++ {
		got, score, ok := r.Resolve("blue dreem", candidates)
		if got != first || score != firstScore || ok != firstOK {
			t.Fatalf("run %d diverged: (%q,%d,%v) != (%q,%d,%v)",
				i, got, score, ok, first, firstScore, firstOK)
		}
	}
}

func TestNewResolver_ZeroThresholdDefaults(t *testing.T) {
	r := NewResolver(0)
	if r.threshold != DefaultThreshold {
		t.Errorf("expected default threshold %d, got %d", DefaultThreshold, r.threshold)
	}
}
