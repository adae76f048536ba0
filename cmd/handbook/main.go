package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/handbook"
	"github.com/fwojciec/handbook/ask"
	"github.com/fwojciec/handbook/gemini"
	"github.com/fwojciec/handbook/htmltomarkdown"
	"github.com/fwojciec/handbook/jsonschema"
	"github.com/fwojciec/handbook/openai"
	hbslog "github.com/fwojciec/handbook/slog"
	"github.com/fwojciec/handbook/sqlite"
	goopenai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Oracles. When set before calling Run() they replace the provider
	// clients, which lets tests run "ask" and "serve" offline.
	Ranker   handbook.Ranker
	Answerer handbook.Answerer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("handbook"),
		kong.Description("Answer questions about a numbered handbook."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'handbook --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	deps.Logger = newLogger(cli.Verbose, stderr)

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set HANDBOOK_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	deps.Sections = sqlite.NewSectionService(m.DB)
	deps.TOC = sqlite.NewTOCService(m.DB)
	deps.AccessCodes = sqlite.NewAccessCodeService(m.DB)
	deps.Converter = htmltomarkdown.NewConverter()

	switch cmd {
	case "ask":
		if err := m.wireAsker(ctx, cli, deps, cli.Ask.Code != ""); err != nil {
			return err
		}
	case "serve":
		if err := m.wireAsker(ctx, cli, deps, !cli.Serve.Open); err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

// wireAsker loads the imported handbook and builds the question-answering
// pipeline around the configured provider.
func (m *Main) wireAsker(ctx context.Context, cli *CLI, deps *Dependencies, gated bool) error {
	sections, err := deps.Sections.FindSections(ctx)
	if err != nil {
		return err
	}
	if len(sections) == 0 {
		fmt.Fprintln(deps.Stderr, "Hint: Run 'handbook import' to load a handbook first")
		return handbook.Errorf(handbook.ENOTFOUND, "no sections imported")
	}
	toc, err := deps.TOC.FindTOC(ctx)
	if err != nil {
		return err
	}

	ranker, answerer := m.Ranker, m.Answerer
	if ranker == nil || answerer == nil {
		ranker, answerer, err = newOracles(ctx, cli, deps.Stderr)
		if err != nil {
			return err
		}
	}

	svc := &ask.Service{
		Sections: handbook.SectionTable(sections),
		TOC:      handbook.FormatTOC(toc),
		Ranker:   hbslog.NewLoggingRanker(ranker, deps.Logger),
		Answerer: hbslog.NewLoggingAnswerer(answerer, deps.Logger),
	}
	if gated {
		svc.AccessCodes = deps.AccessCodes
	}
	if cli.MaxContextTokens > 0 {
		counter, err := gemini.NewTokenCounter(tokenizerModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}
		svc.TokenCounter = counter
		svc.MaxContextTokens = cli.MaxContextTokens
	}

	deps.Asker = hbslog.NewLoggingAsker(svc, deps.Logger)
	return nil
}

// newOracles creates the ranking and answering oracles for the configured
// provider.
func newOracles(ctx context.Context, cli *CLI, stderr io.Writer) (handbook.Ranker, handbook.Answerer, error) {
	parser, err := jsonschema.NewParser()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create label parser: %w", err)
	}

	switch cli.Provider {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "OPENAI_API_KEY environment variable not set. Get an API key at https://platform.openai.com/api-keys")
			return nil, nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
		client := goopenai.NewClient(apiKey)
		model := modelOrDefault(cli.Model, openai.DefaultModel)
		return openai.NewRanker(client, model, parser), openai.NewAnswerer(client, model), nil
	default:
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return nil, nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		model := modelOrDefault(cli.Model, gemini.DefaultModel)
		return gemini.NewRanker(client, model, parser), gemini.NewAnswerer(client, model), nil
	}
}

// tokenizerModel is used for token counting with either provider, since
// only the Gemini tokenizer runs locally.
const tokenizerModel = "gemini-2.5-flash"

func modelOrDefault(model, fallback string) string {
	if model != "" {
		return model
	}
	return fallback
}

func newLogger(verbose bool, stderr io.Writer) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(stderr, nil))
}

func defaultDBPath() string {
	if path := os.Getenv("HANDBOOK_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "handbook.db"
	}
	dir := filepath.Join(home, ".handbook")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "handbook.db")
}
