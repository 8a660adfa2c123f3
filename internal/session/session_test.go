package session

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"stock-ai-chatbot/internal/types"
)

type mockFetcher struct {
	series map[string]types.TimeSeries
	err    error
	calls  int
}

func (m *mockFetcher) Fetch(ctx context.Context, symbol string) (types.TimeSeries, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	series, ok := m.series[symbol]
	if !ok {
		return nil, errors.New("no mock data for " + symbol)
	}
	return series, nil
}

type mockChatter struct {
	answer       string
	err          error
	lastMessages []types.Turn
}

func (m *mockChatter) Chat(ctx context.Context, messages []types.Turn) (string, error) {
	m.lastMessages = append([]types.Turn(nil), messages...)
	if m.err != nil {
		return "", m.err
	}
	return m.answer, nil
}

func makeSeries(n int, startClose float64) types.TimeSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make(types.TimeSeries, n)
	for i := range series {
		base := startClose + float64(i)
		series[i] = types.PricePoint{
			Date:   start.AddDate(0, 0, i),
			Open:   base - 1,
			High:   base + 2,
			Low:    base - 3,
			Close:  base,
			Volume: 1000,
		}
	}
	return series
}

func newLoadedSession(t *testing.T, chatter *mockChatter) (*Session, *mockFetcher) {
	t.Helper()
	fetcher := &mockFetcher{series: map[string]types.TimeSeries{
		"AAPL": makeSeries(10, 100),
		"MSFT": makeSeries(8, 300),
	}}
	sess := New(fetcher, chatter, nil)
	if err := sess.SelectSymbol(context.Background(), "AAPL"); err != nil {
		t.Fatalf("Initial load failed: %v", err)
	}
	return sess, fetcher
}

func TestInitialState(t *testing.T) {
	sess := New(&mockFetcher{}, &mockChatter{}, nil)

	if sess.State() != Uninitialized {
		t.Errorf("Expected Uninitialized, got %v", sess.State())
	}
	if _, ok := sess.Metrics(); ok {
		t.Error("Expected no metrics before any load")
	}
	if _, err := sess.Ask(context.Background(), "q"); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Expected ErrNotLoaded for question before load, got %v", err)
	}
	if len(sess.History()) != 0 {
		t.Error("A rejected question must not touch history")
	}
}

func TestSymbolChangeClearsHistory(t *testing.T) {
	chatter := &mockChatter{answer: "AAPL looks fine"}
	sess, _ := newLoadedSession(t, chatter)

	if _, err := sess.Ask(context.Background(), "How is AAPL doing?"); err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if len(sess.History()) != 2 {
		t.Fatalf("Expected 2 turns after one question, got %d", len(sess.History()))
	}

	if err := sess.SelectSymbol(context.Background(), "MSFT"); err != nil {
		t.Fatalf("Symbol change failed: %v", err)
	}

	if sess.Symbol() != "MSFT" {
		t.Errorf("Expected active symbol MSFT, got %s", sess.Symbol())
	}
	if len(sess.History()) != 0 {
		t.Errorf("History must be cleared on symbol change, got %d turns", len(sess.History()))
	}
	if sess.State() != Loaded {
		t.Errorf("Expected Loaded after symbol change, got %v", sess.State())
	}
	if len(sess.Series()) != 8 {
		t.Errorf("Expected MSFT series cached, got %d points", len(sess.Series()))
	}
}

func TestFetchFailureEntersSymbolError(t *testing.T) {
	fetchErr := errors.New("provider down")
	fetcher := &mockFetcher{err: fetchErr}
	sess := New(fetcher, &mockChatter{}, nil)

	err := sess.SelectSymbol(context.Background(), "AAPL")
	if !errors.Is(err, fetchErr) {
		t.Fatalf("Expected fetch error to propagate, got %v", err)
	}

	if sess.State() != SymbolError {
		t.Errorf("Expected SymbolError, got %v", sess.State())
	}
	if len(sess.Series()) != 0 {
		t.Error("Cached series must stay empty after a failed fetch")
	}
	if !errors.Is(sess.LastError(), fetchErr) {
		t.Errorf("Expected LastError to keep the reason, got %v", sess.LastError())
	}
	if _, err := sess.Ask(context.Background(), "q"); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Expected ErrNotLoaded while in SymbolError, got %v", err)
	}
}

func TestFailedRefreshOfSameSymbolKeepsHistory(t *testing.T) {
	chatter := &mockChatter{answer: "ok"}
	sess, fetcher := newLoadedSession(t, chatter)

	if _, err := sess.Ask(context.Background(), "q"); err != nil {
		t.Fatalf("Ask failed: %v", err)
	}

	fetcher.err = errors.New("provider down")
	if err := sess.SelectSymbol(context.Background(), "AAPL"); err == nil {
		t.Fatal("Expected refresh failure")
	}

	if len(sess.History()) != 2 {
		t.Errorf("Same-symbol fetch failure must not mutate history, got %d turns", len(sess.History()))
	}
}

func TestChatFailureDegradesToFallback(t *testing.T) {
	chatter := &mockChatter{err: errors.New("connection reset")}
	sess, _ := newLoadedSession(t, chatter)

	answer, err := sess.Ask(context.Background(), "What is the trend?")
	if err != nil {
		t.Fatalf("Chat failures must not surface as errors, got %v", err)
	}
	if answer != FallbackMessage {
		t.Errorf("Expected the literal fallback string, got %q", answer)
	}

	history := sess.History()
	if len(history) != 2 {
		t.Fatalf("Expected both turns appended despite the failure, got %d", len(history))
	}
	if history[0].Role != types.RoleUser || history[0].Content != "What is the trend?" {
		t.Errorf("Expected the raw user question first, got %+v", history[0])
	}
	if history[1].Role != types.RoleAssistant || history[1].Content != FallbackMessage {
		t.Errorf("Expected the fallback appended as an assistant turn, got %+v", history[1])
	}
	if sess.LastChatError() == nil {
		t.Error("Expected the underlying chat error to stay inspectable")
	}
}

func TestAskSendsHistoryPlusContextTurn(t *testing.T) {
	chatter := &mockChatter{answer: "first answer"}
	sess, _ := newLoadedSession(t, chatter)

	if _, err := sess.Ask(context.Background(), "first question"); err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	chatter.answer = "second answer"
	if _, err := sess.Ask(context.Background(), "second question"); err != nil {
		t.Fatalf("Ask failed: %v", err)
	}

	msgs := chatter.lastMessages
	if len(msgs) != 3 {
		t.Fatalf("Expected 2 prior turns + context turn, got %d", len(msgs))
	}
	if msgs[0].Content != "first question" || msgs[1].Content != "first answer" {
		t.Error("Prior turns must be sent verbatim ahead of the context turn")
	}
	last := msgs[2]
	if last.Role != types.RoleUser {
		t.Errorf("Context turn must be a user turn, got %q", last.Role)
	}
	if !strings.Contains(last.Content, "Stock data for AAPL:") {
		t.Error("Context turn must carry the serialized data block")
	}
	if !strings.HasSuffix(last.Content, "Question: second question") {
		t.Error("Context turn must end with the literal question")
	}

	// History keeps the raw question, not the context-augmented payload.
	history := sess.History()
	if history[2].Content != "second question" {
		t.Errorf("Expected raw question in history, got %q", history[2].Content)
	}
}

func TestEndToEndPeriodHighVsContextWindow(t *testing.T) {
	// 10 known points, period high on day 8, well past the 5-row context
	// bound: metrics see all points, the model sees only the first five.
	series := makeSeries(10, 100)
	series[7].High = 500

	chatter := &mockChatter{answer: "the high is 500"}
	fetcher := &mockFetcher{series: map[string]types.TimeSeries{"AAPL": series}}
	sess := New(fetcher, chatter, nil)

	if err := sess.SelectSymbol(context.Background(), "AAPL"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	m, ok := sess.Metrics()
	if !ok {
		t.Fatal("Expected metrics for loaded series")
	}
	if m.HighPrice != 500 {
		t.Errorf("Expected period high 500 over all 10 points, got %f", m.HighPrice)
	}

	if _, err := sess.Ask(context.Background(), "What is the highest Close rate?"); err != nil {
		t.Fatalf("Ask failed: %v", err)
	}

	sent := chatter.lastMessages[len(chatter.lastMessages)-1].Content
	if !strings.Contains(sent, "2024-01-01") || !strings.Contains(sent, "2024-01-05") {
		t.Error("Expected the first 5 rows in the model context")
	}
	if strings.Contains(sent, "2024-01-06") || strings.Contains(sent, "500.00") {
		t.Error("Model context leaked data past the 5-row bound")
	}
}
