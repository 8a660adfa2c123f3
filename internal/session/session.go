// Package session owns the per-session state machine: the active symbol,
// the cached price series and the conversation history. All mutation goes
// through Session methods; the REPL drives one event at a time, so no
// locking is needed.
package session

import (
	"context"
	"errors"

	"stock-ai-chatbot/internal/interfaces"
	"stock-ai-chatbot/internal/logger"
	"stock-ai-chatbot/internal/metrics"
	"stock-ai-chatbot/internal/prompt"
	"stock-ai-chatbot/internal/trace"
	"stock-ai-chatbot/internal/types"
)

// FallbackMessage is the user-visible text substituted for any chat-call
// failure. Chat failures degrade inline; only data-fetch failures halt
// the display pipeline.
const FallbackMessage = "Cannot connect to the API. Please try again later."

// ErrNotLoaded is returned by Ask when no symbol has been loaded yet.
var ErrNotLoaded = errors.New("no market data loaded")

// State is the lifecycle state of a session.
type State int

const (
	// Uninitialized means no symbol has been selected yet.
	Uninitialized State = iota
	// Loaded means the cached series is consistent with the active symbol.
	Loaded
	// SymbolError means the last fetch for the active symbol failed and
	// the cached series is empty.
	SymbolError
)

func (s State) String() string {
	switch s {
	case Loaded:
		return "Loaded"
	case SymbolError:
		return "SymbolError"
	default:
		return "Uninitialized"
	}
}

// HeadlineSource supplies optional news context for questions.
type HeadlineSource interface {
	Headlines(ctx context.Context, symbol string) []types.Headline
}

// Session coordinates fetch, cache and conversation state for one user
// session. Exactly one instance exists per running session.
type Session struct {
	fetcher interfaces.Fetcher
	chatter interfaces.Chatter
	news    HeadlineSource // may be nil

	state   State
	symbol  string
	series  types.TimeSeries
	history []types.Turn
	lastErr error
	chatErr error
}

// New creates an uninitialized session. news may be nil to disable
// headline enrichment.
func New(fetcher interfaces.Fetcher, chatter interfaces.Chatter, news HeadlineSource) *Session {
	return &Session{
		fetcher: fetcher,
		chatter: chatter,
		news:    news,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Symbol returns the active symbol ("" while Uninitialized).
func (s *Session) Symbol() string { return s.symbol }

// Series returns the cached price series, empty unless Loaded.
func (s *Session) Series() types.TimeSeries { return s.series }

// History returns the conversation history for the active symbol.
func (s *Session) History() []types.Turn { return s.history }

// Metrics summarizes the cached series; ok=false while nothing is loaded.
func (s *Session) Metrics() (types.Metrics, bool) {
	return metrics.Summarize(s.series)
}

// LastError returns the fetch error that put the session in SymbolError.
func (s *Session) LastError() error { return s.lastErr }

// LastChatError returns the underlying error behind the most recent
// fallback answer, nil when the last chat call succeeded.
func (s *Session) LastChatError() error { return s.chatErr }

// SelectSymbol fetches data for symbol and swaps it in. On success the
// symbol, series and cleared history change together, so no state with a
// mismatched symbol/series pair is ever observable. On failure the error
// is returned for the presentation layer to show as a blocking warning;
// history is cleared only when the symbol actually changed, so a failed
// refresh of the current symbol keeps the conversation.
func (s *Session) SelectSymbol(ctx context.Context, symbol string) error {
	ctx, span := trace.StartSpan(ctx, "session.SelectSymbol")
	defer span.End()

	changed := symbol != s.symbol

	series, err := s.fetcher.Fetch(ctx, symbol)
	if err != nil {
		s.state = SymbolError
		s.symbol = symbol
		s.series = nil
		s.lastErr = err
		if changed {
			s.history = nil
		}
		return err
	}

	s.state = Loaded
	s.symbol = symbol
	s.series = series
	s.lastErr = nil
	if changed {
		s.history = nil
	}

	logger.Info(ctx, "Symbol selected", "symbol", symbol, "points", len(series))
	return nil
}

// Ask answers a question about the active symbol. It builds the context
// from the cached series, calls the chat client, and appends both the raw
// user question and the assistant answer to history on every exit path.
// A chat failure is absorbed here: the answer becomes FallbackMessage,
// still appended as an assistant turn, and no error is returned. Ask only
// errors when nothing is loaded.
func (s *Session) Ask(ctx context.Context, question string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "session.Ask")
	defer span.End()

	if s.state != Loaded {
		return "", ErrNotLoaded
	}

	answer := FallbackMessage
	fallback := true
	defer func() {
		s.history = append(s.history,
			types.Turn{Role: types.RoleUser, Content: question},
			types.Turn{Role: types.RoleAssistant, Content: answer},
		)
		logger.Chat(ctx, s.symbol, len(question), len(answer), fallback)
	}()

	var headlines []types.Headline
	if s.news != nil {
		headlines = s.news.Headlines(ctx, s.symbol)
	}

	messages := make([]types.Turn, 0, len(s.history)+1)
	messages = append(messages, s.history...)
	messages = append(messages, types.Turn{
		Role:    types.RoleUser,
		Content: prompt.Build(s.symbol, s.series, headlines, question),
	})

	text, err := s.chatter.Chat(ctx, messages)
	if err != nil {
		logger.ErrorWithErr(ctx, "Chat call failed, answering with fallback", err, "symbol", s.symbol)
		s.chatErr = err
		return answer, nil
	}

	s.chatErr = nil
	answer = text
	fallback = false
	return answer, nil
}
