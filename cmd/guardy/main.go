// Command guardy is a minimal smoke-test entrypoint over the scanning
// engine: point it at a directory, get back a human or JSON summary. It
// does not install git hooks, merge a config file, or render an HTML
// report — those are external-collaborator concerns, out of scope here.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strconv"

	"github.com/alecthomas/kingpin/v2"

	"github.com/deepbrainspace/guardy/internal/config"
	appcontext "github.com/deepbrainspace/guardy/internal/context"
	"github.com/deepbrainspace/guardy/internal/log"
	"github.com/deepbrainspace/guardy/internal/scanner"
)

func main() {
	app := kingpin.New("guardy", "Find secrets in a source tree.")

	path := app.Arg("path", "Directory to scan.").Default(".").String()
	jsonOut := app.Flag("json", "Emit the full ScanResult as JSON instead of a summary line.").Bool()
	verbose := app.Flag("verbose", "Increase log verbosity.").Short('v').Counter()
	followSymlinks := app.Flag("follow-symlinks", "Follow symlinked directories during traversal.").Bool()
	noEntropy := app.Flag("no-entropy", "Disable entropy validation for Generic detectors.").Bool()
	maxFileSizeMB := app.Flag("max-file-size-mb", "Skip files larger than this, in megabytes.").Default(strconv.Itoa(config.Default().MaxFileSizeMB)).Int()
	threads := app.Flag("threads", "Worker pool size; 0 uses all CPUs.").Default(strconv.Itoa(runtime.NumCPU())).Int()
	listDetectors := app.Command("list-detectors", "Print the built-in detector IDs and exit.")

	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	logger, flush := log.New("guardy", log.WithConsoleSink(os.Stderr))
	defer flush() //nolint:errcheck
	log.SetLevel(*verbose)
	appcontext.SetDefaultLogger(logger)

	cfg := config.Default()
	cfg.FollowSymlinks = *followSymlinks
	cfg.EnableEntropyAnalysis = !*noEntropy
	cfg.MaxFileSizeMB = *maxFileSizeMB
	cfg.MaxThreads = *threads

	s, err := scanner.New(cfg)
	if err != nil {
		logger.Error(err, "failed to build scanner")
		os.Exit(2)
	}

	if cmd == listDetectors.FullCommand() {
		for _, d := range s.Library().Detectors() {
			fmt.Println(d.ID)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := s.Scan(ctx, *path)
	if err != nil {
		logger.Error(err, "scan failed", "path", *path)
		os.Exit(2)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			logger.Error(err, "failed to encode result")
			os.Exit(2)
		}
	} else {
		fmt.Println(result.Summary())
		for _, m := range result.Matches {
			fmt.Printf("%s:%d:%d  %s  %s\n", m.Location.FilePath, m.Location.Coordinate.Line, m.Location.Coordinate.Column, m.DetectorID, m.Redacted())
		}
	}

	if result.HasSecrets() {
		os.Exit(1)
	}
}
