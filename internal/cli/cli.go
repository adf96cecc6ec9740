// Package cli implements the rowbinary command's subcommand dispatch: a
// flag.FlagSet per subcommand, a printUsage, and an Execute(args) int
// entry point returning a process exit code.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"rowbinary/internal/xlog"
	"rowbinary/schema"
)

// Execute dispatches CLI subcommands.
func Execute(args []string) int {
	log.SetFlags(log.LstdFlags | log.Lmsgprefix)
	log.SetPrefix("[rowbinary] ")

	if err := xlog.Init("logs", xlog.INFO, "rowbinary"); err != nil {
		log.Printf("warning: file logging disabled: %v", err)
	}
	defer xlog.Close()

	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "dump":
		return runDump(args[1:])
	case "gen":
		return runGen(args[1:])
	case "load":
		return runLoad(args[1:])
	case "help", "-h", "--help":
		printUsage()
		return 0
	case "version", "--version", "-v":
		fmt.Println("rowbinary 0.1.0-dev")
		return 0
	default:
		log.Printf("unknown subcommand: %s", args[0])
		printUsage()
		return 1
	}
}

func printUsage() {
	binary := filepath.Base(os.Args[0])
	fmt.Printf(`rowbinary - RowBinary / RowBinaryWithNamesAndTypes codec CLI

Usage:
  %[1]s <command> [options]

Available commands:
  dump     Decode a RowBinary stream to JSON lines
  gen      Emit a synthetic RowBinary stream for a given schema
  load     Decode a RowBinary stream and mirror rows into Redis
  help     Show this help
  version  Show version info

Examples:
  %[1]s gen --schema "id UInt64, name String" --rows 100 > rows.bin
  %[1]s dump --input rows.bin
  %[1]s load --input rows.bin --config config.yaml
`, binary)
}

func errorToExitCode(err error) int {
	if err == flag.ErrHelp {
		return 0
	}
	log.Printf("command failed: %v", err)
	return 1
}

// parseSchema parses a flat "name Type, name Type" description used by
// the bare "rowbinary" format, which carries no self-describing header.
func parseSchema(s string) ([]schema.Column, error) {
	parts := splitTopLevel(s, ',')
	columns := make([]schema.Column, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sp := strings.IndexByte(part, ' ')
		if sp < 0 {
			return nil, fmt.Errorf("invalid column spec %q: expected \"name Type\"", part)
		}
		name := strings.TrimSpace(part[:sp])
		typeStr := strings.TrimSpace(part[sp+1:])
		t, err := schema.Parse(typeStr)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		columns = append(columns, schema.Column{Name: name, Type: t})
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("schema must describe at least one column")
	}
	return columns, nil
}

// splitTopLevel splits s on sep, ignoring occurrences nested inside
// parentheses (so "Array(Tuple(a UInt8, b UInt8))" isn't split on its
// internal comma).
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// openInput opens path for reading, or returns stdin when path is empty.
func openInput(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// openOutput opens path for writing (truncating it), or returns stdout
// when path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// visitedFlags returns the set of flag names the user explicitly passed,
// so a --config file can supply defaults without overriding an explicit
// command-line override.
func visitedFlags(fs *flag.FlagSet) map[string]bool {
	visited := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { visited[f.Name] = true })
	return visited
}
