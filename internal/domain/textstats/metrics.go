// Package textstats derives word, sentence, character and syllable counts
// from plain text.
//
// All functions are pure and safe for concurrent use. Tokenization is ASCII
// only; see Splitter for the boundary rules.
package textstats

// Metrics holds the counts every readability formula is built from.
type Metrics struct {
	Words         int `json:"words"`
	Sentences     int `json:"sentences"`
	Characters    int `json:"characters"`
	Syllables     int `json:"syllables"`
	Polysyllables int `json:"polysyllables"`
}

// Compute derives Metrics from text. It returns a *DegenerateInputError when
// the text has no words or no sentences.
func Compute(text string) (Metrics, error) {
	m := Metrics{
		Words:      Words(text),
		Sentences:  Sentences(text),
		Characters: Characters(text),
	}
	if err := m.Validate(); err != nil {
		return Metrics{}, err
	}

	m.Syllables, m.Polysyllables = Syllables(text)
	// Sentence splitting can expose words glued by punctuation ("a.b"), which
	// the word count never sees. Keep the polysyllable count within words.
	if m.Polysyllables > m.Words {
		m.Polysyllables = m.Words
	}
	return m, nil
}

// Validate reports whether m can be used as a formula denominator.
func (m Metrics) Validate() error {
	if m.Words <= 0 || m.Sentences <= 0 {
		return &DegenerateInputError{Words: m.Words, Sentences: m.Sentences}
	}
	return nil
}

// Sentences counts the segments produced by SentenceSplitter.
func Sentences(text string) int {
	return SentenceSplitter.Count(text)
}

// Words counts the segments produced by WordSplitter. Empty and
// punctuation-only segments count as words.
func Words(text string) int {
	return WordSplitter.Count(text)
}

// Characters counts the runes of text that are not ASCII whitespace.
func Characters(text string) int {
	n := 0
	for _, r := range text {
		if r < 0x80 && isSpace(byte(r)) {
			continue
		}
		n++
	}
	return n
}
