package analytics

import (
	"regexp"
	"sort"
	"strings"
)

// TOP_TOKEN_LIMIT caps every frequency table the summarizer emits.
const TOP_TOKEN_LIMIT = 50

const minTokenLength = 3

var (
	tokenURLPattern     = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tokenMentionPattern = regexp.MustCompile(`@\w+`)
	nonWordPattern      = regexp.MustCompile(`[^a-z0-9\s#]`)
)

// stopwords is the fixed filter set for token frequencies. Changing it
// changes every word-frequency view, so treat it as part of the output
// contract.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "and", "for", "are", "but", "not", "you", "all", "can", "had",
		"her", "was", "one", "our", "out", "day", "get", "has", "him", "his",
		"how", "man", "new", "now", "old", "see", "two", "way", "who", "boy",
		"did", "its", "let", "put", "say", "she", "too", "use", "this", "that",
		"with", "have", "will", "your", "from", "they", "know", "want", "been",
		"good", "much", "some", "time", "very", "when", "come", "here", "just",
		"like", "long", "make", "many", "over", "such", "take", "than", "them",
		"well", "were", "what", "would", "there", "could", "other", "after",
		"first", "never", "these", "think", "where", "being", "every", "great",
		"might", "shall", "still", "those", "under", "while", "about", "before",
		"should", "through", "during", "follow", "around", "really", "something",
	} {
		stopwords[w] = struct{}{}
	}
}

// Tokenize lowercases, strips URLs/mentions/punctuation, and drops
// stopwords and tokens shorter than three runes.
func Tokenize(text string) []string {
	text = strings.ToLower(text)
	text = tokenURLPattern.ReplaceAllString(text, " ")
	text = tokenMentionPattern.ReplaceAllString(text, " ")
	text = nonWordPattern.ReplaceAllString(text, " ")

	var tokens []string
	for _, word := range strings.Fields(text) {
		if len([]rune(word)) < minTokenLength {
			continue
		}
		if _, ok := stopwords[word]; ok {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

type tokenEntry struct {
	token     string
	count     int
	firstSeen int
}

// countTokens builds a frequency table over the given texts. Frequency
// ties break by first-seen order so the output is deterministic.
func countTokens(texts []string, limit int) []tokenEntry {
	counts := make(map[string]*tokenEntry)
	var order []*tokenEntry

	for _, text := range texts {
		for _, token := range Tokenize(text) {
			entry, ok := counts[token]
			if !ok {
				entry = &tokenEntry{token: token, firstSeen: len(order)}
				counts[token] = entry
				order = append(order, entry)
			}
			entry.count++
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].firstSeen < order[j].firstSeen
	})

	if limit > 0 && len(order) > limit {
		order = order[:limit]
	}

	entries := make([]tokenEntry, len(order))
	for i, e := range order {
		entries[i] = *e
	}
	return entries
}
