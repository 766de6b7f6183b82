package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-series/config"
	"github.com/andareed/siftly-series/history"
	"github.com/andareed/siftly-series/ingest"
	"github.com/andareed/siftly-series/logging"
)

var logFile = flag.String("debug", "", "Write debug logs to file")

func main() {
	versionFlag := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "YAML config file")
	dateCol := flag.String("date-col", "", "column holding the timestamps")
	indexCol := flag.String("index-col", "", "column to use as the index (wins over --date-col)")
	datetimeCols := flag.String("datetime-cols", "", "comma separated columns merged into one timestamp")
	columns := flag.String("column", "", "comma separated columns to plot")
	recent := flag.Bool("recent", false, "print recently opened files and exit")
	sessionPath := flag.String("session", "", "restore a saved session")
	pngOut := flag.String("png", "", "write the first file's chart to a PNG and exit")

	flag.Parse()

	// --- EARLY EXIT ---
	if *versionFlag {
		fmt.Println("Version:", Version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logOpts := logging.Options{
		File:       cfg.Log.File,
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	}
	if *logFile != "" {
		logOpts.File = *logFile
		logOpts.Level = "debug"
	}
	cleanup, err := logging.SetupLogging(logOpts)
	if err != nil {
		log.Fatalf("Failed to setup logging %v", err)
	}
	defer cleanup()

	logging.Info("siftly-series: started")

	store := openHistory(cfg)
	if store != nil {
		defer store.Close()
	}

	if *recent {
		if err := printRecent(os.Stdout, store); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		return
	}

	var specs []loadSpec
	active := 0
	if *sessionPath != "" {
		sess, err := LoadSession(*sessionPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		base := filepath.Dir(*sessionPath)
		for _, d := range sess.Tabs {
			specs = append(specs, d.loadSpec(base))
		}
		active = sess.Active
	}
	hints := ingest.Hints{
		DateCol:      *dateCol,
		IndexCol:     *indexCol,
		DatetimeCols: splitList(*datetimeCols),
	}
	for _, path := range flag.Args() {
		specs = append(specs, loadSpec{path: path, hints: hints, columns: splitList(*columns)})
	}
	if len(specs) == 0 {
		fmt.Println("Usage: sfseries [flags] <file.csv> [more files...]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	l := newLoader(cfg, store)
	tabs, errs := l.loadAll(context.Background(), specs)
	for _, err := range errs {
		logging.Errorf("%v", err)
	}
	if len(tabs) == 0 {
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}

	if *pngOut != "" {
		if err := writeChartPNG(tabs[0], *pngOut, 0, 0); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		fmt.Println("Wrote", *pngOut)
		return
	}

	m := newModel(cfg, l, tabs)
	if active >= 0 && active < len(tabs) {
		m.active = active
	}
	if len(errs) > 0 {
		m.startup = m.startNotice(fmt.Sprintf("%d file(s) failed to load, see log", len(errs)), "warn", noticeErrorDuration)
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	if err != nil {
		logging.Errorf("Tea program error: %v", err)
		fmt.Println("Error:", err)
	}
}

// openHistory opens the ingestion history. Failures only disable it.
func openHistory(cfg config.Config) *history.Store {
	if !cfg.History.Enabled || cfg.History.Path == "" {
		return nil
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		logging.Warnf("history disabled: %v", err)
		return nil
	}
	return store
}

func printRecent(w io.Writer, store *history.Store) error {
	if store == nil {
		return errors.New("history is disabled")
	}
	entries, err := store.Recent(context.Background(), 20)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OPENED\tROWS\tINDEX\tNULL TS\tPATH")
	for _, e := range entries {
		index := e.IndexName
		if index == "" {
			index = "(row)"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%s\n",
			e.IngestedAt.Local().Format("2006-01-02 15:04"), e.Rows, index, e.NullTimestamps, e.Path)
	}
	return tw.Flush()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
