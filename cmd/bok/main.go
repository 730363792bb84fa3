// Command bok is a minimal double-entry bookkeeping tool backed by a
// content-addressed, hash-chained ledger store.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/dtennander/bok"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		printUsage()
		return fmt.Errorf("subcommand required")
	}

	switch os.Args[1] {
	case "init":
		return runInit(os.Args[2:])
	case "add":
		return runAdd(os.Args[2:])
	case "show":
		return runShow(os.Args[2:])
	case "log":
		return runLog(os.Args[2:])
	case "-h", "--help", "help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown subcommand: %q", os.Args[1])
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: bok <subcommand> [flags]

Subcommands:
  init   Create a new ledger chain
  add    Append a journal entry
  show   Print one entry by reference (hash prefix or HEAD)
  log    List the chain from a reference back to the origin

Run 'bok <subcommand> --help' for subcommand flags.
`)
}

func dirFlag(fs *pflag.FlagSet) *string {
	return fs.String("dir", ".bok", "ledger directory")
}

func runInit(args []string) error {
	fs := pflag.NewFlagSet("init", pflag.ContinueOnError)
	dir := dirFlag(fs)
	year := fs.Uint64("year", uint64(time.Now().Year()), "year the chain accounts for")
	backend := fs.String("backend", bok.BackendFile, "storage backend (file or badger)")
	algorithm := fs.String("hash", "sha256", "digest algorithm (sha256 or blake3)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := bok.DefaultConfig(*dir)
	cfg.Backend = *backend
	hasher, err := bok.HasherForAlgorithm(*algorithm)
	if err != nil {
		return err
	}
	cfg.Hasher = hasher

	ledger, err := bok.Create(cfg, *year)
	if err != nil {
		return err
	}
	defer ledger.Close()

	fmt.Printf("Initialized ledger for %d in %s\n", *year, *dir)
	fmt.Println(ledger.Head())
	return nil
}

func runAdd(args []string) error {
	fs := pflag.NewFlagSet("add", pflag.ContinueOnError)
	dir := dirFlag(fs)
	name := fs.String("name", "", "short label for the entry")
	description := fs.String("desc", "", "entry description")
	date := fs.String("date", "", "event date as YYYY-MM-DD (default today)")
	debits := fs.StringArray("debit", nil, "debit leg as account:amount (repeatable)")
	credits := fs.StringArray("credit", nil, "credit leg as account:amount (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	var lines []bok.EntryLine
	for _, leg := range *debits {
		line, err := parseLine(leg, bok.Debit)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}
	for _, leg := range *credits {
		line, err := parseLine(leg, bok.Credit)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return fmt.Errorf("at least one --debit or --credit is required")
	}
	if !bok.Balanced(lines) {
		fmt.Fprintln(os.Stderr, "warning: debit and credit totals do not balance")
	}

	ledger, err := bok.Open(bok.DefaultConfig(*dir))
	if err != nil {
		return err
	}
	defer ledger.Close()

	var hash string
	if *date != "" {
		eventDate, err := time.Parse("2006-01-02", *date)
		if err != nil {
			return fmt.Errorf("parsing --date: %w", err)
		}
		hash, err = ledger.AddEntryOn(eventDate, *name, *description, lines)
		if err != nil {
			return err
		}
	} else {
		hash, err = ledger.AddEntry(*name, *description, lines)
		if err != nil {
			return err
		}
	}

	fmt.Println(hash)
	return nil
}

// parseLine parses an "account:amount" leg. The amount is in the
// smallest currency unit.
func parseLine(leg string, side bok.Side) (bok.EntryLine, error) {
	account, amountStr, ok := strings.Cut(leg, ":")
	if !ok || account == "" {
		return bok.EntryLine{}, fmt.Errorf("invalid %s leg %q, want account:amount", side, leg)
	}
	amount, err := strconv.ParseUint(amountStr, 10, 64)
	if err != nil {
		return bok.EntryLine{}, fmt.Errorf("invalid amount in %s leg %q: %w", side, leg, err)
	}
	return bok.NewEntryLine(account, amount, side, nil), nil
}

func runShow(args []string) error {
	fs := pflag.NewFlagSet("show", pflag.ContinueOnError)
	dir := dirFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: bok show <ref>")
	}

	ledger, err := bok.Open(bok.DefaultConfig(*dir))
	if err != nil {
		return err
	}
	defer ledger.Close()

	entry, err := ledger.GetEntry(fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Print(bok.FormatEntry(entry))
	return nil
}

func runLog(args []string) error {
	fs := pflag.NewFlagSet("log", pflag.ContinueOnError)
	dir := dirFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	ref := "HEAD"
	if fs.NArg() > 0 {
		ref = fs.Arg(0)
	}

	ledger, err := bok.Open(bok.DefaultConfig(*dir))
	if err != nil {
		return err
	}
	defer ledger.Close()

	walker, err := ledger.Walk(ref)
	if err != nil {
		return err
	}
	for {
		entry, err := walker.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("%.8s %s\n", walker.Hash(), bok.FormatEntryShort(entry))
	}
}
