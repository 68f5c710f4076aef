package moments

import "encoding/json"

// EncodeTags serializes a tag list to its stored JSON form.
// A nil or empty list encodes as "[]" so the stored column is always
// valid JSON array syntax.
func EncodeTags(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// DecodeTags parses the stored JSON form back into a tag list.
// An empty string decodes as no tags; malformed JSON is an error the
// caller decides how to treat (the similarity scorer skips such rows).
func DecodeTags(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return nil, err
	}
	return tags, nil
}
