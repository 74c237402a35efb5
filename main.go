package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/miosa/osa-vscroll/app"
	"github.com/miosa/osa-vscroll/config"
	"github.com/miosa/osa-vscroll/style"
	"github.com/miosa/osa-vscroll/ui/row"
	"github.com/miosa/osa-vscroll/vscroll"
)

var version = "dev"

func main() {
	profileFlag := flag.String("profile", "", "Named profile for state isolation (~/.osa/profiles/<name>)")
	sourceFlag := flag.String("source", "", "Row source: lorem, git or procs")
	countFlag := flag.Int("count", 0, "Number of rows to load")
	repoFlag := flag.String("repo", "", "Repository path for the git source")
	themeFlag := flag.String("theme", "", "Color theme: "+strings.Join(style.ThemeNames, ", ")+" (default: follow the terminal)")
	plain := flag.Bool("plain", false, "Render row bodies as plain text instead of markdown")
	noColor := flag.Bool("no-color", false, "Disable ANSI colors")
	debug := flag.Bool("debug", false, "Write a debug log to <profile>/vscroll.log")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.BoolVar(showVersion, "V", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("vscroll %s\n", version)
		os.Exit(0)
	}

	if *noColor {
		// Caller can set NO_COLOR=1 in the shell to disable colors.
		os.Setenv("NO_COLOR", "1")
	}

	home, _ := os.UserHomeDir()
	app.ProfileDir = filepath.Join(home, ".osa")
	if *profileFlag != "" {
		app.ProfileDir = filepath.Join(home, ".osa", "profiles", *profileFlag)
	}
	os.MkdirAll(app.ProfileDir, 0o755)

	cfg := config.Load(app.ProfileDir)
	if *sourceFlag != "" {
		cfg.Source = *sourceFlag
	}
	if *countFlag > 0 {
		cfg.Count = *countFlag
	}
	if *repoFlag != "" {
		cfg.Repo = *repoFlag
	}
	if *themeFlag != "" {
		if _, ok := style.Themes[*themeFlag]; !ok {
			fmt.Fprintf(os.Stderr, "vscroll: unknown theme %q (want one of %s)\n", *themeFlag, strings.Join(style.ThemeNames, ", "))
			os.Exit(2)
		}
		cfg.Theme = *themeFlag
	}

	// The alt screen owns the terminal; logs only ever go to a file.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	vscroll.SetLogOutput(io.Discard)
	if *debug {
		f, err := os.OpenFile(filepath.Join(app.ProfileDir, "vscroll.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "vscroll: open debug log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		vscroll.SetLogOutput(f)
		vscroll.SetVerbose(true)
	}

	// Auto-detect terminal background unless the config pins a theme.
	switch {
	case cfg.Theme != "" && style.SetTheme(cfg.Theme):
	case lipgloss.HasDarkBackground(os.Stdin, os.Stdout):
		style.SetTheme("dark")
	default:
		style.SetTheme("light")
	}

	opts := []app.Option{app.WithLogger(logger)}
	if *plain {
		opts = append(opts, app.WithRenderer(row.Plain{}))
	}
	m := app.New(cfg, version, opts...)

	// AltScreen and mouse mode are set on the View, not as program options.
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "vscroll: %v\n", err)
		os.Exit(1)
	}
}
