package keyword

// stopwords holds common English function words plus the filler verbs that
// dominate spoken-language situation descriptions ("I think I really want
// to..."). Tokens shorter than three characters never reach the lookup but
// are kept here so the set reads as one list.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"i", "im", "my", "me", "we", "our", "a", "an", "the", "is", "are",
		"was", "were", "be", "been", "being", "have", "has", "had", "do",
		"does", "did", "will", "would", "could", "should", "may", "might",
		"shall", "can", "need", "dare", "ought", "used", "to", "of", "in",
		"for", "on", "with", "at", "by", "from", "as", "into", "through",
		"during", "before", "after", "above", "below", "between", "out",
		"off", "over", "under", "again", "further", "then", "once", "here",
		"there", "when", "where", "why", "how", "all", "both", "each",
		"few", "more", "most", "other", "some", "such", "no", "nor", "not",
		"only", "own", "same", "so", "than", "too", "very", "just", "don",
		"dont", "t", "s", "and", "but", "or", "if", "about", "it", "its",
		"that", "this", "what", "which", "who", "whom", "these", "those",
		"am", "having", "doing", "because", "until", "while",
		"up", "down", "whether", "considering", "sure", "really", "think",
		"know", "like", "want", "get", "got", "going",
	} {
		stopwords[w] = struct{}{}
	}
}
