package textstats

// matchFunc reports the byte length of a delimiter match starting at offset i
// of s, or 0 when no delimiter starts there.
type matchFunc func(s string, i int) int

// Splitter cuts text into segments separated by a delimiter.
//
// Matches are found left to right and each one is as long as possible.
// Leading and interior empty segments are kept; trailing empty segments are
// dropped, so empty input and input made only of delimiters yield nothing.
type Splitter struct {
	name  string
	match matchFunc
}

// Package-level splitters. Both delimiters are ASCII, so scanning bytes never
// lands inside a multi-byte rune.
var (
	// SentenceSplitter splits on [.!?] followed by optional whitespace.
	SentenceSplitter = Splitter{name: "sentence", match: sentenceDelimiter}

	// WordSplitter splits on zero or more commas followed by at least one
	// whitespace character.
	WordSplitter = Splitter{name: "word", match: wordDelimiter}
)

// Name identifies the splitter in logs and errors.
func (sp Splitter) Name() string { return sp.name }

// Split returns the segments of s.
func (sp Splitter) Split(s string) []string {
	var segs []string
	start := 0
	for i := 0; i < len(s); {
		n := sp.match(s, i)
		if n == 0 {
			i++
			continue
		}
		segs = append(segs, s[start:i])
		i += n
		start = i
	}
	segs = append(segs, s[start:])

	for len(segs) > 0 && segs[len(segs)-1] == "" {
		segs = segs[:len(segs)-1]
	}
	return segs
}

// Count returns len(sp.Split(s)).
func (sp Splitter) Count(s string) int {
	return len(sp.Split(s))
}

func sentenceDelimiter(s string, i int) int {
	switch s[i] {
	case '.', '!', '?':
	default:
		return 0
	}
	j := i + 1
	for j < len(s) && isSpace(s[j]) {
		j++
	}
	return j - i
}

func wordDelimiter(s string, i int) int {
	j := i
	for j < len(s) && s[j] == ',' {
		j++
	}
	k := j
	for k < len(s) && isSpace(s[k]) {
		k++
	}
	if k == j {
		return 0
	}
	return k - i
}

// isSpace matches the ASCII whitespace class: space, \t, \n, \v, \f, \r.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
