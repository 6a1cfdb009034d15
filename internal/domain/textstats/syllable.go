package textstats

import "strings"

// polysyllableThreshold is the estimate a word must exceed to be a polysyllable.
const polysyllableThreshold = 2

var emptySentence = []string{""}

// WordSyllables estimates the syllables in a single word.
//
// Each run of consecutive vowels (a, e, i, o, u, y; case-insensitive) counts
// once. A trailing lower-case 'e' in the word as given is treated as silent.
// The result is never below 1.
func WordSyllables(word string) int {
	count := 0
	prevVowel := false
	for _, r := range strings.ToLower(word) {
		vowel := isVowel(r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}
	if strings.HasSuffix(word, "e") {
		count--
	}
	if count <= 0 {
		count = 1
	}
	return count
}

// Syllables sums WordSyllables over every word of every sentence in text and
// counts the words whose estimate is above two.
//
// An empty sentence, as between the dots of "...", holds one empty word worth
// one syllable. A whitespace-only sentence holds no words.
func Syllables(text string) (total, polysyllables int) {
	for _, sentence := range SentenceSplitter.Split(text) {
		words := WordSplitter.Split(sentence)
		if sentence == "" {
			words = emptySentence
		}
		for _, word := range words {
			n := WordSyllables(word)
			if n > polysyllableThreshold {
				polysyllables++
			}
			total += n
		}
	}
	return total, polysyllables
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
