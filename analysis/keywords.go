package analysis

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Vocabulary extracts keywords: curated phrases plus long words that are not stop words.
type Vocabulary struct {
	phrases   *regexp.Regexp
	words     *regexp.Regexp
	stopWords map[string]bool
}

var baseStopWords = []string{
	"the", "and", "was", "were", "are", "is", "it", "of", "to", "in", "for", "with", "on", "at", "by",
	"from", "this", "that", "they", "them", "their", "would", "could", "should", "very", "really",
	"great", "good", "nice", "well", "also", "more", "most", "all", "some", "any", "had", "have", "has",
	"been", "being", "will", "can", "may", "might", "much", "many", "but", "not", "only", "just",
	"about", "than", "into", "over", "through", "during", "before", "after", "above", "below", "up",
	"down", "out", "off", "again", "further", "then", "once", "program", "course",
}

// NewVocabulary builds a vocabulary. phrasePattern is an alternation matched on
// word boundaries; words shorter than minLength are ignored.
func NewVocabulary(phrasePattern string, minLength int, stopWords ...string) *Vocabulary {
	if minLength < 1 {
		minLength = 1
	}
	v := &Vocabulary{
		phrases:   regexp.MustCompile(`\b(?:` + phrasePattern + `)\b`),
		words:     regexp.MustCompile(`\b[a-zA-Z]{` + strconv.Itoa(minLength) + `,}\b`),
		stopWords: make(map[string]bool, len(stopWords)),
	}
	for _, w := range stopWords {
		v.stopWords[w] = true
	}
	return v
}

// FeedbackVocabulary is used on promoter feedback per track.
var FeedbackVocabulary = NewVocabulary(
	`ai|data|learning|hands.?on|practical|networking|conversations|speakers|framework|sessions?|insights?|experience|knowledge|tools?|technology|implementation|strategy|strategic|leadership|transformation|collaboration|workshop|discussions?`,
	4, baseStopWords...)

// MotivationVocabulary is used on the motivations behind favorite sessions.
var MotivationVocabulary = NewVocabulary(
	`hands.?on|end.?to.?end|real.?world|practical|interactive|engaging|informative|valuable|insightful|comprehensive|detailed|clear|useful|relevant|applicable|actionable|concrete|specific|technical|business|strategic|creative|collaborative|networking|learning|experience|knowledge|insights|framework|tools?|technology|ai|data|llm|development|coding|application|discussion|workshop|presentation|project|showcase|creativity|marketing|privacy|security|governance|strategy|implementation|transformation`,
	4, append(slices.Clone(baseStopWords), "session", "sessions", "day")...)

// Extract returns phrase matches followed by meaningful words, lower-cased.
func (v *Vocabulary) Extract(text string) []string {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}
	out := v.phrases.FindAllString(text, -1)
	for _, w := range v.words.FindAllString(text, -1) {
		if !v.stopWords[w] {
			out = append(out, w)
		}
	}
	return out
}

// KeywordCount is a keyword and how often it occurred.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// MostCommon returns the n most frequent words; ties keep first-seen order.
func MostCommon(words []string, n int) []KeywordCount {
	idx := map[string]int{}
	var counts []KeywordCount
	for _, w := range words {
		if i, ok := idx[w]; ok {
			counts[i].Count++
			continue
		}
		idx[w] = len(counts)
		counts = append(counts, KeywordCount{Keyword: w, Count: 1})
	}
	slices.SortStableFunc(counts, func(a, b KeywordCount) int { return b.Count - a.Count })
	if n >= 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}
