// ============================================================================
// Acid - Lexer, Parser und REPL
// ============================================================================
//
// Package:     render
// Description: Output of token lists, syntax trees and diagnostics
// Author:      Mike Stoffels with Claude
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	mdwast "github.com/msto63/acid/foundation/acid/ast"
	mdwparser "github.com/msto63/acid/foundation/acid/parser"
	mdwerror "github.com/msto63/acid/foundation/core/error"
	mdwstringx "github.com/msto63/acid/foundation/utils/stringx"
	"gopkg.in/yaml.v3"
)

// Format selects how trees and token lists are written
type Format string

const (
	FormatText Format = "text" // one-line debug representation
	FormatTree Format = "tree" // indented, one node per line
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatText, FormatTree, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", mdwerror.Newf("unknown output format %q", name).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("render.ParseFormat").
			WithDetail("allowed", "text, tree, json, yaml")
	}
}

// Options controls tree output
type Options struct {
	Format Format
	Spans  bool // include source spans
}

// Program writes prog in the requested format
func Program(w io.Writer, prog *mdwast.Program, opts Options) error {
	switch opts.Format {
	case FormatTree:
		_, err := io.WriteString(w, mdwast.Tree(prog, opts.Spans))
		return err
	case FormatJSON:
		return writeJSON(w, mdwast.Dump(prog, opts.Spans))
	case FormatYAML:
		return writeYAML(w, mdwast.Dump(prog, opts.Spans))
	default:
		_, err := fmt.Fprintln(w, prog.String())
		return err
	}
}

// ProgramString renders prog to a string
func ProgramString(prog *mdwast.Program, opts Options) (string, error) {
	var b strings.Builder
	if err := Program(&b, prog, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

// tokenRecord is the structured form of a token
type tokenRecord struct {
	Kind string `json:"kind" yaml:"kind"`
	Text string `json:"text" yaml:"text"`
	Span string `json:"span" yaml:"span"`
}

// Tokens writes one token per line, or a list in JSON/YAML
func Tokens(w io.Writer, tokens []mdwparser.Token, format Format, styles Styles) error {
	switch format {
	case FormatJSON, FormatYAML:
		records := make([]tokenRecord, len(tokens))
		for i, tok := range tokens {
			records[i] = tokenRecord{Kind: tok.Kind.String(), Text: tok.Text, Span: tok.Loc.String()}
		}
		if format == FormatJSON {
			return writeJSON(w, records)
		}
		return writeYAML(w, records)
	}

	for _, tok := range tokens {
		line := mdwstringx.PadRight(tok.Loc.String(), 14, ' ') + " " +
			styles.Kind.Render(mdwstringx.PadRight(tok.Kind.String(), 15, ' ')) + " " +
			mdwstringx.Quote(tok.Text, 60)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
