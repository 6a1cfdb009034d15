// Package scoring turns text metrics into readability scores and reader ages.
//
// Four formulas are supported: Automated Readability Index, Flesch–Kincaid
// grade level, SMOG and Coleman–Liau. Every score is rounded half up to two
// decimals and then mapped to an age through a fixed bracket table.
package scoring

import (
	"math"
	"strconv"
	"strings"

	"github.com/okian/readability/internal/domain/textstats"
)

// Formula coefficients.
const (
	ariCharsPerWord     = 4.71
	ariWordsPerSentence = 0.5
	ariConstant         = 21.43

	fkWordsPerSentence = 0.39
	fkSyllablesPerWord = 11.8
	fkConstant         = 15.59

	smogScale      = 1.043
	smogSampleSize = 30
	smogConstant   = 3.1291

	clLetters   = 0.0588
	clSentences = 0.296
	clConstant  = 15.8
	clPer       = 100
)

// Kind selects a readability formula.
type Kind int

// Supported formulas.
const (
	ARI Kind = iota
	FK
	SMOG
	CL
)

// Kinds lists every formula in report order.
var Kinds = []Kind{ARI, FK, SMOG, CL}

var kindNames = map[Kind][2]string{
	ARI:  {"ARI", "Automated Readability Index"},
	FK:   {"FK", "Flesch–Kincaid"},
	SMOG: {"SMOG", "Simple Measure of Gobbledygook"},
	CL:   {"CL", "Coleman–Liau"},
}

// String returns the short code, e.g. "ARI".
func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n[0]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Title returns the formula's full name.
func (k Kind) Title() string {
	if n, ok := kindNames[k]; ok {
		return n[1]
	}
	return k.String()
}

// MarshalText encodes the short code.
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, ErrUnknownKind
	}
	return []byte(k.String()), nil
}

// UnmarshalText accepts the short code in any case.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind parses a short code such as "fk" or "SMOG".
func ParseKind(s string) (Kind, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	for _, k := range Kinds {
		if kindNames[k][0] == code {
			return k, nil
		}
	}
	return 0, &unknownKindError{input: s}
}

type unknownKindError struct{ input string }

func (e *unknownKindError) Error() string { return ErrUnknownKind.Error() + ": " + e.input }
func (e *unknownKindError) Unwrap() error { return ErrUnknownKind }

// Result is one formula's rounded score and the age it maps to.
type Result struct {
	Kind  Kind    `json:"kind"`
	Score float64 `json:"score"`
	Age   int     `json:"age"`
}

// Raw evaluates the formula without rounding. It fails with
// textstats.ErrDegenerateInput when m has no words or no sentences.
func Raw(k Kind, m textstats.Metrics) (float64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	c := float64(m.Characters)
	w := float64(m.Words)
	s := float64(m.Sentences)
	t := float64(m.Syllables)
	p := float64(m.Polysyllables)

	switch k {
	case ARI:
		return ariCharsPerWord*(c/w) + ariWordsPerSentence*(w/s) - ariConstant, nil
	case FK:
		return fkWordsPerSentence*(w/s) + fkSyllablesPerWord*(t/w) - fkConstant, nil
	case SMOG:
		return smogScale*math.Sqrt(p*smogSampleSize/s) + smogConstant, nil
	case CL:
		l := c / w * clPer
		scl := s / w * clPer
		return clLetters*l - clSentences*scl - clConstant, nil
	default:
		return 0, &unknownKindError{input: k.String()}
	}
}

// Compute evaluates formula k, rounds the score and maps it to an age.
func Compute(k Kind, m textstats.Metrics) (Result, error) {
	raw, err := Raw(k, m)
	if err != nil {
		return Result{}, err
	}
	score := Round2(raw)
	age, err := ageFor(k.String(), score)
	if err != nil {
		return Result{}, err
	}
	return Result{Kind: k, Score: score, Age: age}, nil
}

// ComputeAll evaluates every formula in Kinds order and stops at the first
// failure.
func ComputeAll(m textstats.Metrics) ([]Result, error) {
	results := make([]Result, 0, len(Kinds))
	for _, k := range Kinds {
		r, err := Compute(k, m)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// Average returns the mean age of results rounded to two decimals, or 0 for
// an empty slice.
func Average(results []Result) float64 {
	if len(results) == 0 {
		return 0
	}
	sum := 0
	for _, r := range results {
		sum += r.Age
	}
	return Round2(float64(sum) / float64(len(results)))
}

// AverageAge computes all four formulas and averages their ages.
func AverageAge(m textstats.Metrics) (float64, error) {
	results, err := ComputeAll(m)
	if err != nil {
		return 0, err
	}
	return Average(results), nil
}
