package model

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Sentiment is the polarity label assigned to a text or keyword.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// MaxSentimentTextLen is the maximum accepted input length in characters.
const MaxSentimentTextLen = 5000

// Keyword is one recognized word with its polarity, in token order.
type Keyword struct {
	Word      string    `json:"word"`
	Sentiment Sentiment `json:"sentiment"`
}

// SentimentAnalysis is one persisted scoring result. Rows are immutable
// after insert; created_at is set server-side.
type SentimentAnalysis struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	Sentiment  Sentiment `json:"sentiment"`
	Score      float64   `json:"score"`
	Confidence float64   `json:"confidence"`
	Keywords   []Keyword `json:"keywords"`
	CreatedAt  time.Time `json:"created_at"`
}

// ValidateSentimentText enforces the input bounds: non-empty after trim,
// at most MaxSentimentTextLen characters. Runs before any scoring.
func ValidateSentimentText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text is required and cannot be empty")
	}
	if utf8.RuneCountInString(text) > MaxSentimentTextLen {
		return fmt.Errorf("text cannot exceed %d characters", MaxSentimentTextLen)
	}
	return nil
}
