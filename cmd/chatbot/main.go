package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"stock-ai-chatbot/internal/prompt"
	"stock-ai-chatbot/internal/session"
	"stock-ai-chatbot/internal/store"
	"stock-ai-chatbot/internal/trace"
	"stock-ai-chatbot/internal/types"
)

func main() {
	if err := initializeSystem(); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	defer trace.Shutdown(context.Background())

	cfg, err := loadConfig(ctx)
	if err != nil {
		log.Fatal(err)
	}

	fetcher := initializeFetcher(ctx, cfg)
	chatter := initializeChatter(ctx, cfg)

	var headlines session.HeadlineSource
	if svc := initializeNews(ctx, cfg); svc != nil {
		headlines = svc
	}

	sess := session.New(fetcher, chatter, headlines)

	fmt.Println("Stock Analysis AI Chatbot")
	fmt.Println("Ask about the stock, or type 'help' for commands.")
	fmt.Printf("Answers are limited to %d days of data.\n\n", prompt.ContextRows)

	// Initial load of the default symbol, like opening the page.
	if err := sess.SelectSymbol(ctx, cfg.DefaultSymbol); err != nil {
		fmt.Printf("Failed to load data: %v\n", err)
	} else {
		showOverview(sess)
	}
	showExamples(cfg)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		if done := handleLine(ctx, cfg, sess, line); done {
			break
		}
	}

	fmt.Println("Bye.")
}

// handleLine dispatches one REPL line. Returns true on quit.
func handleLine(ctx context.Context, cfg *store.Config, sess *session.Session, line string) bool {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		return true
	case "help":
		showHelp()
	case "symbols":
		fmt.Println("Available symbols:", strings.Join(cfg.Symbols, ", "))
	case "examples":
		showExamples(cfg)
	case "history":
		showHistory(sess.History())
	case "symbol", "use":
		if len(fields) < 2 {
			fmt.Println("Usage: symbol <TICKER>")
			return false
		}
		selectSymbol(ctx, cfg, sess, strings.ToUpper(fields[1]))
	default:
		ask(ctx, sess, line)
	}
	return false
}

func selectSymbol(ctx context.Context, cfg *store.Config, sess *session.Session, symbol string) {
	known := false
	for _, s := range cfg.Symbols {
		if s == symbol {
			known = true
			break
		}
	}
	if !known {
		fmt.Printf("Unknown symbol %q. Type 'symbols' to list available ones.\n", symbol)
		return
	}

	if err := sess.SelectSymbol(ctx, symbol); err != nil {
		// Data-fetch failures block the display pipeline for this symbol.
		fmt.Printf("Failed to load data: %v\n", err)
		return
	}
	showOverview(sess)
}

func ask(ctx context.Context, sess *session.Session, question string) {
	answer, err := sess.Ask(ctx, question)
	if err != nil {
		fmt.Printf("Cannot answer yet: %v\n", err)
		return
	}
	fmt.Println(answer)
}

// showOverview prints the metrics row and a short tail of the series,
// the terminal stand-in for the metrics widgets and the chart.
func showOverview(sess *session.Session) {
	fmt.Printf("\n%s price history loaded (%d trading days)\n", sess.Symbol(), len(sess.Series()))

	if m, ok := sess.Metrics(); ok {
		fmt.Printf("Current: $%.2f  Open: $%.2f  High: $%.2f  Low: $%.2f\n",
			m.CurrentPrice, m.OpenPrice, m.HighPrice, m.LowPrice)
	}

	series := sess.Series()
	tail := series
	if len(tail) > 10 {
		tail = tail[len(tail)-10:]
	}
	fmt.Printf("\n%-12s %10s %10s %10s %10s %12s\n", "Date", "Open", "High", "Low", "Close", "Volume")
	for _, p := range tail {
		fmt.Printf("%-12s %10.2f %10.2f %10.2f %10.2f %12d\n",
			p.Date.Format("2006-01-02"), p.Open, p.High, p.Low, p.Close, p.Volume)
	}
	fmt.Println()
}

func showHistory(history []types.Turn) {
	if len(history) == 0 {
		fmt.Println("No conversation yet.")
		return
	}
	for _, turn := range history {
		fmt.Printf("[%s] %s\n", turn.Role, turn.Content)
	}
}

func showExamples(cfg *store.Config) {
	if len(cfg.ExamplePrompts) == 0 {
		return
	}
	fmt.Println("Try these example questions:")
	for _, p := range cfg.ExamplePrompts {
		fmt.Printf("  - %s\n", p)
	}
	fmt.Println()
}

func showHelp() {
	fmt.Println(`Commands:
  symbol <TICKER>   switch the active stock (clears the conversation)
  symbols           list available symbols
  examples          show example questions
  history           show the conversation so far
  quit              exit
Anything else is sent to the analyst as a question.`)
}
