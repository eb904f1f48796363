// Command sqliteparse is a thin driver over the parser core: it reads SQL
// from a file or stdin, parses it, and prints either a token table or an AST
// dump. It is an external collaborator of the core library, not part of its
// public contract - the core has no knowledge of flags, files, or this
// binary's output formats.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/juju/errors"
	"gopkg.in/yaml.v3"

	sqliteast "github.com/jaymd96/sqlite-ast-parser"
	"github.com/jaymd96/sqlite-ast-parser/format"
	"github.com/jaymd96/sqlite-ast-parser/internal/debug"
	"github.com/jaymd96/sqlite-ast-parser/lexer"
)

// config mirrors the subset of sqliteparse's behavior that's more
// comfortably expressed as a file than a flag line: which token (by index)
// to highlight when dumping tokens, and formatter preferences for
// any round-tripped output.
type config struct {
	Mode            string `yaml:"mode"`
	HighlightToken  int    `yaml:"highlight_token"`
	FormatUppercase bool   `yaml:"format_uppercase"`
	FormatIndent    string `yaml:"format_indent"`
}

func defaultConfig() config {
	return config{
		Mode:            "ast",
		HighlightToken:  -1,
		FormatUppercase: true,
		FormatIndent:    "  ",
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Annotatef(err, "reading config %q", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Annotatef(err, "parsing config %q", path)
	}
	return cfg, nil
}

func main() {
	os.Exit(main1())
}

// main1 runs the CLI and returns its exit code instead of calling os.Exit
// directly, so testscript.RunMain can register it as a subprocess command
// for integration tests.
func main1() int {
	fs := flag.NewFlagSet("sqliteparse", flag.ContinueOnError)
	var (
		sqlFlag    = fs.String("sql", "", "SQL text to parse (overrides -file and stdin)")
		fileFlag   = fs.String("file", "", "file containing SQL to parse (reads stdin if empty and -sql is empty)")
		modeFlag   = fs.String("mode", "", "output mode: ast, tokens, or format (overrides -config)")
		configFlag = fs.String("config", "", "YAML config file path")
	)
	if err := fs.Parse(os.Args[1:]); err != nil {
		return 2
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.ErrorStack(err))
		return 1
	}
	if *modeFlag != "" {
		cfg.Mode = *modeFlag
	}

	sql, err := readInput(*sqlFlag, *fileFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.ErrorStack(err))
		return 1
	}

	if err := run(os.Stdout, sql, cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func readInput(sqlFlag, fileFlag string) (string, error) {
	if sqlFlag != "" {
		return sqlFlag, nil
	}
	if fileFlag != "" {
		data, err := os.ReadFile(fileFlag)
		if err != nil {
			return "", errors.Annotatef(err, "reading %q", fileFlag)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.Annotate(err, "reading stdin")
	}
	return string(data), nil
}

func run(w io.Writer, sql string, cfg config) error {
	switch cfg.Mode {
	case "tokens":
		return runTokens(w, sql, cfg)
	case "format":
		return runFormat(w, sql, cfg)
	case "ast", "":
		return runAST(w, sql)
	default:
		return fmt.Errorf("unknown mode %q (want ast, tokens, or format)", cfg.Mode)
	}
}

func runFormat(w io.Writer, sql string, cfg config) error {
	opts := format.Options{Uppercase: cfg.FormatUppercase, Indent: cfg.FormatIndent}
	stmts, err := sqliteast.ParseAll(sql)
	for _, stmt := range stmts {
		if stmt == nil {
			continue
		}
		f := format.New(opts)
		f.Format(stmt)
		fmt.Fprintln(w, f.String()+";")
	}
	if err != nil {
		fmt.Fprintln(w, err)
	}
	return nil
}

func runAST(w io.Writer, sql string) error {
	stmts, err := sqliteast.ParseAll(sql)
	if err != nil {
		fmt.Fprintln(w, err)
	}
	for i, stmt := range stmts {
		if stmt == nil {
			continue
		}
		fmt.Fprintf(w, "-- statement %d --\n", i+1)
		if dumpErr := debug.DumpAST(w, stmt); dumpErr != nil {
			return dumpErr
		}
	}
	return nil
}

func runTokens(w io.Writer, sql string, cfg config) error {
	l := lexer.New(sql)
	items, err := debug.ScanAll(l)
	if len(items) == 0 && err != nil {
		return errors.Annotate(err, "scanning tokens")
	}
	if dumpErr := debug.DumpTokens(w, items, cfg.HighlightToken); dumpErr != nil {
		return dumpErr
	}
	if err != nil {
		fmt.Fprintln(w, err)
	}
	return nil
}
