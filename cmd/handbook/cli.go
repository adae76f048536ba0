package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/handbook"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
	Sections    handbook.SectionService
	TOC         handbook.TOCService
	AccessCodes handbook.AccessCodeService
	Asker       handbook.Asker
	Converter   handbook.Converter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose          bool   `short:"v" help:"Log oracle calls and requests to stderr"`
	Provider         string `env:"HANDBOOK_PROVIDER" default:"gemini" enum:"gemini,openai" help:"Language model provider (gemini, openai)"`
	Model            string `env:"HANDBOOK_MODEL" help:"Model name (defaults depend on provider)"`
	MaxContextTokens int    `env:"HANDBOOK_MAX_CONTEXT_TOKENS" default:"0" help:"Token budget for the assembled context (0 = unbounded)"`

	Import   ImportCmd   `cmd:"" help:"Import handbook sections and table of contents"`
	Sections SectionsCmd `cmd:"" help:"List imported sections"`
	Expand   ExpandCmd   `cmd:"" help:"Show the sections reachable from the given labels"`
	Ask      AskCmd      `cmd:"" help:"Ask a question about the handbook"`
	Codes    CodesCmd    `cmd:"" help:"Manage access codes"`
	Serve    ServeCmd    `cmd:"" help:"Serve the question-answering HTTP API"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Sections string `short:"s" type:"existingfile" help:"JSON file of {section, title, text} records"`
	TOC      string `short:"t" name:"toc" type:"existingfile" help:"JSON file of {section, title} records"`
	Markdown string `short:"m" type:"existingfile" help:"Markdown handbook with numbered headings"`
	HTML     string `name:"html" type:"existingfile" help:"HTML handbook with numbered headings"`
	Selector string `help:"CSS selector for the handbook content of an HTML file (default: main, article or body)"`
}

// SectionsCmd is the "sections" subcommand.
type SectionsCmd struct {
	Full bool `help:"Show full section text"`
}

// ExpandCmd is the "expand" subcommand.
type ExpandCmd struct {
	Labels []string `arg:"" help:"Section labels to start from (e.g. \"Section 1.2.\" \"appendix 1\")"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question to ask about the handbook"`
	Code     string `short:"c" env:"HANDBOOK_ACCESS_CODE" help:"Access code to charge the question to"`
	Debug    bool   `help:"Print the prompt sent to the answering model"`
}

// CodesCmd is the "codes" subcommand group.
type CodesCmd struct {
	Add  CodesAddCmd  `cmd:"" help:"Create an access code"`
	List CodesListCmd `cmd:"" help:"List access codes and their usage"`
}

// CodesAddCmd is the "codes add" subcommand.
type CodesAddCmd struct {
	Code  string `arg:"" optional:"" help:"Access code (generated if omitted)"`
	Limit int    `short:"l" required:"" help:"Number of questions the code may ask"`
}

// CodesListCmd is the "codes list" subcommand.
type CodesListCmd struct{}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr          string  `env:"HANDBOOK_ADDR" default:":8080" help:"Listen address"`
	RatePerSecond float64 `default:"0.5" help:"Requests per second allowed per access code"`
	Burst         int     `default:"3" help:"Request burst allowed per access code"`
	Open          bool    `help:"Do not require access codes"`
}
