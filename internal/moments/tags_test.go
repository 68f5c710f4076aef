package moments

import "testing"

func TestTagsRoundTrip(t *testing.T) {
	tags := []string{"pricing", "b2b-saas", "first customers"}

	encoded := EncodeTags(tags)
	decoded, err := DecodeTags(encoded)
	if err != nil {
		t.Fatalf("DecodeTags: %v", err)
	}

	if len(decoded) != len(tags) {
		t.Fatalf("decoded %d tags, want %d", len(decoded), len(tags))
	}
	for i, tag := range tags {
		if decoded[i] != tag {
			t.Errorf("tag %d = %q, want %q", i, decoded[i], tag)
		}
	}
}

func TestEncodeTags_Empty(t *testing.T) {
	if got := EncodeTags(nil); got != "[]" {
		t.Errorf("EncodeTags(nil) = %q, want %q", got, "[]")
	}
	if got := EncodeTags([]string{}); got != "[]" {
		t.Errorf("EncodeTags([]) = %q, want %q", got, "[]")
	}
}

func TestDecodeTags_Malformed(t *testing.T) {
	if _, err := DecodeTags(`["unclosed`); err == nil {
		t.Error("expected error for malformed tag JSON")
	}
}

func TestDecodeTags_Blank(t *testing.T) {
	tags, err := DecodeTags("")
	if err != nil {
		t.Fatalf("DecodeTags(\"\"): %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("expected no tags, got %v", tags)
	}
}
