// Package sentiment implements the keyword-lexicon text scorer.
//
// Scoring is a linear scan over whitespace tokens against three fixed word
// lists. The label thresholds, confidence bounds, and keyword cap are part
// of the API contract and must not drift from the dashboard's expectations.
package sentiment

import (
	"math"
	"math/rand/v2"
	"strings"

	"github.com/fmaa-dev/fmaa/internal/model"
)

// MaxKeywords caps the keyword list regardless of input size.
const MaxKeywords = 10

// positiveWords score +1 per hit.
var positiveWords = wordSet(
	"good", "great", "excellent", "amazing", "awesome", "fantastic", "wonderful",
	"happy", "joy", "love", "best", "perfect", "outstanding", "brilliant",
	"superb", "marvelous", "incredible", "terrific", "fabulous", "impressive",
)

// negativeWords score -1 per hit.
var negativeWords = wordSet(
	"bad", "worst", "terrible", "awful", "horrible", "disgusting", "hate",
	"sad", "angry", "frustrated", "disappointed", "poor", "pathetic",
	"useless", "worthless", "disaster", "nightmare", "ridiculous", "annoying",
)

// neutralWords contribute 0 but are still recorded as keywords.
var neutralWords = wordSet(
	"okay", "fine", "normal", "average", "standard", "typical", "regular",
	"moderate", "acceptable", "adequate",
)

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// Result is the outcome of scoring one text.
type Result struct {
	Sentiment  model.Sentiment `json:"sentiment"`
	Score      float64         `json:"score"`
	Confidence float64         `json:"confidence"`
	Keywords   []model.Keyword `json:"keywords"`
}

// Analyzer scores text against the fixed lexicon.
//
// Neutral confidence is a uniform draw from [60,80), matching the product's
// historical behavior. The randomness source is injectable so tests can
// pin it.
type Analyzer struct {
	rng func() float64 // uniform [0,1)
}

// New returns an Analyzer using the shared math/rand source.
func New() *Analyzer {
	return &Analyzer{rng: rand.Float64}
}

// NewWithRand returns an Analyzer drawing neutral confidence from rng.
func NewWithRand(rng func() float64) *Analyzer {
	return &Analyzer{rng: rng}
}

// Analyze scores text. The caller is responsible for input bounds
// (model.ValidateSentimentText); Analyze itself never rejects.
func (a *Analyzer) Analyze(text string) Result {
	tokens := strings.Fields(strings.ToLower(text))

	var score int
	keywords := make([]model.Keyword, 0, MaxKeywords)
	for _, tok := range tokens {
		word := cleanToken(tok)
		var polarity model.Sentiment
		switch {
		case positiveWords[word]:
			score++
			polarity = model.SentimentPositive
		case negativeWords[word]:
			score--
			polarity = model.SentimentNegative
		case neutralWords[word]:
			polarity = model.SentimentNeutral
		default:
			continue
		}
		if len(keywords) < MaxKeywords {
			keywords = append(keywords, model.Keyword{Word: word, Sentiment: polarity})
		}
	}

	// Normalize by token count, not hit count.
	var normalized float64
	if len(tokens) > 0 {
		normalized = float64(score) / float64(len(tokens))
	}

	var label model.Sentiment
	var confidence float64
	switch {
	case normalized > 0.1:
		label = model.SentimentPositive
		confidence = math.Min(normalized*100, 95)
	case normalized < -0.1:
		label = model.SentimentNegative
		confidence = math.Min(math.Abs(normalized)*100, 95)
	default:
		label = model.SentimentNeutral
		confidence = 60 + a.rng()*20
	}

	return Result{
		Sentiment:  label,
		Score:      round(normalized, 3),
		Confidence: round(confidence, 1),
		Keywords:   keywords,
	}
}

// cleanToken strips everything outside [a-z0-9_] from an already-lowercased
// token.
func cleanToken(tok string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return -1
	}, tok)
}

func round(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}
