package keyword

import (
	"strings"
	"testing"
)

func TestExtract(t *testing.T) {
	got := Extract("B2B SaaS founder struggling to find first paying customers")

	want := []string{"saas", "founder", "struggling", "find", "first", "paying", "customers"}
	if len(got) != len(want) {
		t.Fatalf("Extract = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("keyword %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExtract_StopwordsOnly(t *testing.T) {
	if got := Extract("the and but"); len(got) != 0 {
		t.Errorf("expected no keywords, got %v", got)
	}
}

func TestExtract_Empty(t *testing.T) {
	if got := Extract(""); len(got) != 0 {
		t.Errorf("expected no keywords, got %v", got)
	}
	if got := Extract("   \t\n"); len(got) != 0 {
		t.Errorf("expected no keywords for whitespace, got %v", got)
	}
}

func TestExtract_DedupPreservesOrder(t *testing.T) {
	got := Extract("pricing problems and pricing again: PRICING")
	want := []string{"pricing", "problems"}
	if len(got) != len(want) {
		t.Fatalf("Extract = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("keyword %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExtract_TrimsPossessives(t *testing.T) {
	got := Extract("the founders' marketplace")
	want := []string{"founders", "marketplace"}
	if len(got) != len(want) {
		t.Fatalf("Extract = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("keyword %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExtract_MinLengthAndStopwords(t *testing.T) {
	inputs := []string{
		"I'm not sure whether we should raise a seed round or bootstrap",
		"How do I price my B2B product for enterprise customers?",
		"growth, churn & retention!!",
	}
	for _, in := range inputs {
		for _, kw := range Extract(in) {
			if len(kw) < 3 {
				t.Errorf("Extract(%q) returned short token %q", in, kw)
			}
			if IsStopword(kw) {
				t.Errorf("Extract(%q) returned stopword %q", in, kw)
			}
		}
	}
}

// Re-extracting from the joined output must yield the same term set.
func TestExtract_Idempotent(t *testing.T) {
	first := Extract("Marketplace startup with a chicken-and-egg problem in early traction")
	second := Extract(strings.Join(first, " "))

	if len(first) != len(second) {
		t.Fatalf("second pass = %v, want same terms as %v", second, first)
	}
	set := make(map[string]bool, len(first))
	for _, kw := range first {
		set[kw] = true
	}
	for _, kw := range second {
		if !set[kw] {
			t.Errorf("second pass produced new term %q", kw)
		}
	}
}
