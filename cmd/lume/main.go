package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/Alex6357/lume"
)

const (
	appName     = "lume"
	historyFile = ".lume_history"
	promptMain  = "==> "
	promptCont  = "... "
)

var banner = fmt.Sprintf("Lume %s tokenizer REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", lume.Version)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch cmd := os.Args[1]; cmd {
	case "lex":
		os.Exit(cmdLex(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Printf("%s %s (built %s)\n", appName, lume.Version, lume.BuildDate)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`Lume %s

Usage:
  %s lex <file.lume> [-debug]   Tokenize a file and print the token stream.
  %s repl                       Interactive tokenizer.
  %s version                    Print the compiled version.

`, lume.Version, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// lex
// -----------------------------------------------------------------------------

func cmdLex(args []string) int {
	fs := flag.NewFlagSet("lex", flag.ContinueOnError)
	debug := fs.Bool("debug", false, "dump each token verbosely as it is emitted")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s lex <file.lume> [-debug]\n", appName)
		return 2
	}

	file := fs.Arg(0)
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}

	l := lume.New(string(src), file)
	if *debug {
		l.Trace = func(tok lume.Token) {
			spew.Fdump(os.Stderr, tok)
		}
	}

	tokens, err := l.Scan()
	if err != nil {
		// Render the caret snippet against the text that was actually
		// scanned, which excludes a shebang line if the file had one.
		fmt.Fprintln(os.Stderr, lume.WrapErrorWithSource(err, scannedText(string(src))))
		return 1
	}

	printTokens(os.Stdout, tokens)
	return 0
}

// scannedText mirrors the lexer's shebang stripping so error offsets line up.
func scannedText(src string) string {
	if strings.HasPrefix(src, "#!") {
		if idx := strings.IndexByte(src, '\n'); idx >= 0 {
			return src[idx+1:]
		}
		return ""
	}
	return src
}

func printTokens(w io.Writer, tokens []lume.Token) {
	kindCol := color.New(color.FgCyan)
	for _, tok := range tokens {
		fmt.Fprintf(w, "%5d..%-5d %s", tok.Span.Start, tok.Span.End, kindCol.Sprintf("%-18s", tok.Kind))
		switch {
		case tok.Text != "" && tok.Value != nil:
			fmt.Fprintf(w, " %s %v", tok.Text, payload(tok.Value))
		case tok.Text != "":
			fmt.Fprintf(w, " %s", tok.Text)
		case tok.Value != nil:
			fmt.Fprintf(w, " %v", payload(tok.Value))
		}
		fmt.Fprintln(w)
	}
}

func payload(v interface{}) string {
	switch x := v.(type) {
	case string:
		return fmt.Sprintf("%q", x)
	case rune:
		return fmt.Sprintf("%q", x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(_ []string) int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		src, ok := readByLexProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			return 0
		}

		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		if trimmed == ":quit" {
			return 0
		}
		if strings.HasPrefix(trimmed, ":") {
			fmt.Println("unknown command. Type :quit to exit.")
			continue
		}

		tokens, err := lume.Lex(src, "repl")
		if err != nil {
			fmt.Fprintln(os.Stderr, lume.WrapErrorWithSource(err, src))
			continue
		}
		printTokens(os.Stdout, tokens)
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
	}
}

// readByLexProbe keeps prompting for continuation lines while the buffer
// scans to an incomplete error (unterminated string, char literal, escape,
// or block comment).
func readByLexProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, lerr := lume.NewInteractive(src, "repl").Scan(); lume.IsIncomplete(lerr) {
			continue
		}
		return src, true
	}
}
