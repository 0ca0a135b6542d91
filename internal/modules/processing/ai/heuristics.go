package ai

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// The closed category set. Keyword tags are shown to the model in the
// enrichment prompt; the pattern drives offline inference. Order matters:
// inferCategory returns the first match, and the Technology pattern is
// deliberately broad since captured items skew technical.
type category struct {
	Name     string
	Keywords []string
	pattern  *regexp.Regexp
}

var categories = []category{
	{
		Name:     "Technology",
		Keywords: []string{"programming", "software", "ai", "infrastructure", "hardware"},
		pattern:  regexp.MustCompile(`\b(code|coding|program|software|api|app|tech|comput|data|ai|ml|cloud|server|framework|library|develop|engineer|web|react|javascript|typescript|python|linux)`),
	},
	{
		Name:     "Business",
		Keywords: []string{"strategy", "marketing", "finance", "entrepreneurship"},
		pattern:  regexp.MustCompile(`\b(business|startup|market|revenue|sales|strateg|finance|invest|customer|pricing)`),
	},
	{
		Name:     "Personal",
		Keywords: []string{"journal", "relationships", "habits", "reflection"},
		pattern:  regexp.MustCompile(`\b(family|friend|feel|journal|diary|gratitude|habit|reflect|relationship)`),
	},
	{
		Name:     "Creative",
		Keywords: []string{"design", "writing", "art", "music", "photography"},
		pattern:  regexp.MustCompile(`\b(design|art|music|writ|story|stories|photo|draw|paint|creative|film|poem)`),
	},
	{
		Name:     "Learning",
		Keywords: []string{"courses", "books", "research", "tutorials"},
		pattern:  regexp.MustCompile(`\b(learn|course|study|studie|tutorial|book|lecture|education|research|exam)`),
	},
	{
		Name:     "Work",
		Keywords: []string{"projects", "meetings", "career", "planning"},
		pattern:  regexp.MustCompile(`\b(meeting|deadline|project|task|team|client|office|standup|sprint|career|interview)`),
	},
}

// fallbackCategory is returned when nothing matches.
const fallbackCategory = "Personal"

// CategoryNames returns the closed set in declaration order.
func CategoryNames() []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	return names
}

// matchCategory validates a raw model-produced category claim against the
// closed set (case-insensitive exact match).
func matchCategory(raw string) (string, bool) {
	claim := strings.TrimSpace(raw)
	for _, c := range categories {
		if strings.EqualFold(c.Name, claim) {
			return c.Name, true
		}
	}
	return "", false
}

// Topic tags tried in order; at most maxHeuristicTags are collected.
var tagPatterns = []struct {
	Tag     string
	pattern *regexp.Regexp
}{
	{"web-development", regexp.MustCompile(`react|vue|angular|svelte|css|html|frontend|front-end|javascript|typescript|node\.?js|web dev`)},
	{"machine-learning", regexp.MustCompile(`machine learning|neural|deep learning|llm|large language|pytorch|tensorflow|training data`)},
	{"programming", regexp.MustCompile(`\b(code|coding|program|function|compiler|debug|algorithm|software|refactor)`)},
	{"database", regexp.MustCompile(`database|sql|postgres|mysql|mongo|redis|schema|query plan`)},
	{"devops", regexp.MustCompile(`docker|kubernetes|deploy|ci/cd|pipeline|terraform|observability|infrastructure`)},
	{"ai", regexp.MustCompile(`\bai\b|artificial intelligence|gpt|claude|chatbot|prompt engineering`)},
	{"design", regexp.MustCompile(`\b(design|ui|ux|typography|figma|wireframe)`)},
	{"productivity", regexp.MustCompile(`productivity|habit|workflow|time management|deep work|focus`)},
	{"business", regexp.MustCompile(`startup|business|market|revenue|sales|pricing`)},
	{"science", regexp.MustCompile(`physics|biology|chemistry|experiment|hypothesis|scientific`)},
	{"health", regexp.MustCompile(`health|fitness|sleep|exercise|nutrition|diet`)},
	{"finance", regexp.MustCompile(`invest|stock|budget|saving|crypto|interest rate`)},
	{"writing", regexp.MustCompile(`\b(writing|blog|essay|draft|prose|editing)`)},
	{"career", regexp.MustCompile(`career|interview|resume|promotion|job search`)},
}

const (
	maxHeuristicTags = 4
	fallbackTag      = "general"
)

// Sentence-salience keywords worth +3 when scoring summary candidates.
var importanceKeywords = []string{
	"key", "important", "essential", "critical", "main", "significant",
	"conclusion", "however", "therefore", "because", "result", "means",
	"summary", "takeaway", "remember", "must",
}

var (
	sentenceBoundary = regexp.MustCompile(`[.!?]+`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
	wordPattern      = regexp.MustCompile(`[a-zA-Z0-9]+`)
)

// inferSummary extracts the two most salient sentences from content.
// Scoring favors importance keywords, title-keyword overlap, later position
// and moderate length, so the result is not just the document opening.
// Pure and deterministic; safe to call repeatedly.
func inferSummary(title, content string) string {
	cleaned := strings.TrimSpace(whitespaceRun.ReplaceAllString(content, " "))

	var candidates []string
	for _, s := range sentenceBoundary.Split(cleaned, -1) {
		s = strings.TrimSpace(s)
		if n := utf8.RuneCountInString(s); n > 20 && n < 200 {
			candidates = append(candidates, s)
		}
	}

	if len(candidates) == 0 {
		if cleaned == "" {
			return title
		}
		if utf8.RuneCountInString(cleaned) > 150 {
			return truncateAtWord(cleaned, 150) + "..."
		}
		return cleaned
	}

	titleWords := map[string]bool{}
	for _, w := range wordPattern.FindAllString(strings.ToLower(title), -1) {
		if len(w) > 3 {
			titleWords[w] = true
		}
	}

	type scored struct {
		text  string
		score int
	}
	scoredCandidates := make([]scored, len(candidates))
	for i, s := range candidates {
		lower := strings.ToLower(s)
		score := 0
		for _, kw := range importanceKeywords {
			if strings.Contains(lower, kw) {
				score += 3
				break
			}
		}
		for w := range titleWords {
			if strings.Contains(lower, w) {
				score++
			}
		}
		if i > 0 {
			score++
		}
		if i >= len(candidates)/2 {
			score++
		}
		if utf8.RuneCountInString(s) > 60 {
			score++
		}
		scoredCandidates[i] = scored{text: s, score: score}
	}

	// Stable: ties keep document order.
	sort.SliceStable(scoredCandidates, func(a, b int) bool {
		return scoredCandidates[a].score > scoredCandidates[b].score
	})

	top := scoredCandidates
	if len(top) > 2 {
		top = top[:2]
	}
	parts := make([]string, len(top))
	for i, s := range top {
		parts[i] = s.text
	}
	return strings.Join(parts, ". ") + "."
}

// inferTags matches title+content against the ordered topic patterns and
// returns up to 4 tag names, or the generic fallback when nothing matches.
func inferTags(title, content string) []string {
	text := strings.ToLower(title + " " + content)
	var tags []string
	for _, tp := range tagPatterns {
		if tp.pattern.MatchString(text) {
			tags = append(tags, tp.Tag)
			if len(tags) == maxHeuristicTags {
				break
			}
		}
	}
	if len(tags) == 0 {
		return []string{fallbackTag}
	}
	return tags
}

// inferCategory returns the first matching category in priority order.
func inferCategory(title, content string) string {
	text := strings.ToLower(title + " " + content)
	for _, c := range categories {
		if c.pattern.MatchString(text) {
			return c.Name
		}
	}
	return fallbackCategory
}

// truncateAtWord cuts s to at most max runes, backing up to a word boundary
// when one exists. Rune-based so multibyte content never gets split mid-rune.
func truncateAtWord(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	cut := string(runes[:max])
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut)
}
