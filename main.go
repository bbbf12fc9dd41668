package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	mathrand "math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lotas/seitenleiste/internal/applog"
	"github.com/lotas/seitenleiste/internal/export"
	"github.com/lotas/seitenleiste/internal/groups"
	"github.com/lotas/seitenleiste/internal/inventory"
	"github.com/lotas/seitenleiste/internal/notes"
	"github.com/lotas/seitenleiste/internal/server"
	"github.com/lotas/seitenleiste/internal/storage"
	"github.com/lotas/seitenleiste/internal/tui"
	"github.com/lotas/seitenleiste/internal/types"
)

const defaultPort = 19292

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "export":
			runExport(os.Args[2:])
			return
		case "backup":
			runBackup(os.Args[2:])
			return
		case "restore":
			runRestore(os.Args[2:])
			return
		case "help", "--help", "-h":
			printHelp()
			return
		}
	}

	fs := flag.NewFlagSet("seitenleiste", flag.ExitOnError)
	port := fs.Int("port", envInt("SEITENLEISTE_PORT", defaultPort), "WebSocket port for the extension bridge")
	dbPath := fs.String("db", os.Getenv("SEITENLEISTE_DB"), "Path to the sqlite database (default: ~/.local/share/seitenleiste/seitenleiste.db)")
	interval := fs.Duration("interval", envDuration("SEITENLEISTE_INTERVAL", 5*time.Second), "Snapshot refresh interval")
	fs.Parse(os.Args[1:])

	if dataDir, err := storage.DefaultDataDir(); err == nil {
		if err := applog.Init(dataDir); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		}
	}
	defer applog.Close()

	store, err := openStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	rng := mathrand.New(mathrand.NewSource(time.Now().UnixNano()))
	gr := groups.NewRegistry(store, rng)
	if err := gr.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading groups: %v\n", err)
		os.Exit(1)
	}
	nr := notes.NewRegistry(store)
	if err := nr.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading notes: %v\n", err)
		os.Exit(1)
	}
	if err := gr.EnsureColors(); err != nil {
		fmt.Fprintf(os.Stderr, "Error assigning group colors: %v\n", err)
		os.Exit(1)
	}

	srv := server.New(*port)
	client := inventory.New(srv)

	model := tui.NewModel(gr, nr, client, srv, *interval)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "Export as JSON instead of markdown")
	out := fs.String("out", "", "Output file path (default: stdout)")
	port := fs.Int("port", envInt("SEITENLEISTE_PORT", defaultPort), "WebSocket port for the extension bridge")
	dbPath := fs.String("db", os.Getenv("SEITENLEISTE_DB"), "Path to the sqlite database")
	fs.Parse(args)

	store, err := openStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	gr := groups.NewRegistry(store, mathrand.New(mathrand.NewSource(time.Now().UnixNano())))
	if err := gr.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading groups: %v\n", err)
		os.Exit(1)
	}
	nr := notes.NewRegistry(store)
	if err := nr.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading notes: %v\n", err)
		os.Exit(1)
	}

	snapshot, err := snapshotLive(*port)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var output string
	if *asJSON {
		output, err = export.JSON(snapshot, gr.All(), nr.All())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building JSON: %v\n", err)
			os.Exit(1)
		}
	} else {
		output = export.Markdown(snapshot, gr.All(), nr.All())
	}

	if *out == "" {
		fmt.Print(output)
		return
	}
	if err := os.WriteFile(*out, []byte(output), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *out, err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Exported %d tabs to %s\n", len(snapshot), *out)
}

// snapshotLive starts the bridge and waits for the extension to push one
// snapshot, so exports always reflect the windows that are open right now.
func snapshotLive(port int) ([]types.Tab, error) {
	srv := server.New(port)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go srv.ListenAndServe(ctx)

	fmt.Fprintf(os.Stderr, "Waiting for browser extension on port %d...\n", port)

	timeout := time.After(10 * time.Second)
	for {
		select {
		case msg := <-srv.Messages():
			if msg.Type == "snapshot" {
				return server.ParseSnapshot(msg)
			}
		case <-timeout:
			return nil, fmt.Errorf("timed out waiting for extension (10s)")
		}
	}
}

func runBackup(args []string) {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)
	dbPath := fs.String("db", os.Getenv("SEITENLEISTE_DB"), "Path to the sqlite database")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: seitenleiste backup <file>")
		os.Exit(1)
	}
	target := fs.Arg(0)

	store, err := openStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	f, err := os.Create(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", target, err)
		os.Exit(1)
	}
	defer f.Close()

	if err := store.Backup(f); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing backup: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Backup written to %s\n", target)
}

func runRestore(args []string) {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)
	dbPath := fs.String("db", os.Getenv("SEITENLEISTE_DB"), "Path to the sqlite database")
	yes := fs.Bool("yes", false, "Skip the confirmation prompt")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: seitenleiste restore <file> [--yes]")
		os.Exit(1)
	}
	source := fs.Arg(0)

	if !*yes {
		fmt.Fprint(os.Stderr, "This replaces the current groups and notes. Continue? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(os.Stderr, "Aborted.")
			return
		}
	}

	store, err := openStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	f, err := os.Open(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", source, err)
		os.Exit(1)
	}
	defer f.Close()

	if err := store.Restore(f); err != nil {
		fmt.Fprintf(os.Stderr, "Error restoring backup: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Restored groups and notes from %s\n", source)
}

func openStore(path string) (*storage.Store, error) {
	if path == "" {
		var err error
		path, err = storage.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}
	return storage.Open(path)
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func printHelp() {
	fmt.Print(`seitenleiste — browser tab organizer

Usage:
  seitenleiste                               Start the TUI (default)
    --port <n>           WebSocket port for the extension bridge (default: 19292)
    --db <file>          Path to the sqlite database
    --interval <dur>     Snapshot refresh interval (default: 5s)

  seitenleiste export                        Export tabs to stdout or file
    --json               Export as JSON instead of markdown
    --out <file>         Output file path (default: stdout)
    --port <n>           WebSocket port (default: 19292)

  seitenleiste backup <file>                 Write groups and notes to an archive
  seitenleiste restore <file> [--yes]        Replace groups and notes from an archive

  seitenleiste help                          Show this help

Environment:
  SEITENLEISTE_PORT      Default bridge port
  SEITENLEISTE_DB        Default database path
  SEITENLEISTE_INTERVAL  Default refresh interval (e.g. 5s, 10s)
`)
}
