// Package highlight drives live phrase highlighting. Rapid successive
// requests (a user typing in the highlight field) collapse into one match
// pass via debouncing; each pass takes its own snapshot of text and phrase,
// so it is safe to call while a detection run is in flight.
package highlight

import (
	"time"

	"github.com/bep/debounce"

	"echofinder/internal/match"
	"echofinder/internal/token"
)

// DefaultInterval is the debounce window for interactive requests.
const DefaultInterval = 250 * time.Millisecond

// Update carries the spans to highlight for one phrase. Count is the live
// occurrence count, which may legitimately differ from the count stored in
// an analysis result when the text or settings changed since the last run.
type Update struct {
	Phrase string
	Spans  []token.Span
	Count  int
}

// Service debounces highlight requests and delivers updates to a single
// callback. The callback runs on the debounce timer's goroutine.
type Service struct {
	debounced func(func())
	onUpdate  func(Update)
}

func NewService(interval time.Duration, onUpdate func(Update)) *Service {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Service{
		debounced: debounce.New(interval),
		onUpdate:  onUpdate,
	}
}

// Request schedules a highlight pass for phrase against text, replacing any
// pass still pending.
func (s *Service) Request(text, phrase string) {
	s.debounced(func() {
		s.onUpdate(Compute(text, phrase))
	})
}

// Compute runs one synchronous match pass. Report export uses this directly;
// the interactive path goes through Request.
func Compute(text, phrase string) Update {
	spans := match.FindOccurrences(text, phrase)
	return Update{Phrase: phrase, Spans: spans, Count: len(spans)}
}
