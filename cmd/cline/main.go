package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"syscall"

	"github.com/lixenwraith/cline/config"
	"github.com/lixenwraith/cline/core"
	"github.com/lixenwraith/cline/editor"
	"github.com/lixenwraith/cline/input"
	"github.com/lixenwraith/cline/render"
	"github.com/lixenwraith/cline/status"
	"github.com/lixenwraith/cline/terminal"
)

var (
	configFlag = flag.String("config", "", "Path to TOML config file")
	debugFlag  = flag.Bool("debug", false, "Write debug log to <log_dir>/"+logFileName)
)

func version() string {
	return editor.Version
}

func main() {
	// Panic Recovery: Ensure terminal is reset even if the editor crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [filename]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fail(err)
	}

	if logFile := setupLogging(*debugFlag, cfg.LogDir); logFile != nil {
		core.OnExit(func() { logFile.Close() })
	}

	// Dependency Injection: crash path writes reset sequences without core importing terminal
	core.SetCrashReset(func() { terminal.EmergencyReset(os.Stdout) })

	// Terminal signals still arrive from outside the tty (kill, hangup).
	// The main loop drains them like resizes.
	sigs := core.WatchSignals(syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)
	core.OnExit(sigs.Stop)

	st := editor.NewState()
	if flag.NArg() > 0 {
		st.Filename = flag.Arg(0)
	}

	ctl := terminal.NewController(os.Stdin)
	ctl.SetModeListener(func(enabled bool) { st.RawMode = enabled })
	if err := ctl.Enable(); err != nil {
		fail(err)
	}

	tty := terminal.NewTTY(os.Stdin, os.Stdout)

	// Geometry is mandatory: failure aborts before anything is drawn
	resolver := terminal.NewResolver(tty, tty, tty.WindowSize)
	rows, cols, err := resolver.Resolve()
	if err != nil {
		fail(err)
	}
	if err := st.Resize(rows, cols); err != nil {
		fail(err)
	}
	log.Printf("main: terminal %dx%d, viewport %dx%d", cols, rows, st.ScreenColumns, st.ScreenRows)

	watcher := terminal.NewResizeWatcher()
	watcher.Start()
	core.OnExit(watcher.Stop)

	// Session counters land in the debug log on exit
	reg := status.NewRegistry()
	core.OnExit(reg.Log)

	decoder := input.NewDecoder(tty)
	decoder.SetWake(func() bool { return watcher.Pending() || sigs.Pending() })
	decoder.SetStatus(reg)

	screen := render.NewScreen(tty, cfg.MaxFrameBytes)
	screen.SetStatus(reg)

	dispatcher := editor.NewDispatcher(st, screen, decoder, editor.NewReadOnlyHooks(st), cfg.QuitTimes)
	dispatcher.SetResize(resolver, watcher)
	dispatcher.SetStatus(reg)
	dispatcher.SetInterrupt(sigs)

	err = dispatcher.Run()
	switch {
	case errors.Is(err, editor.ErrQuit):
		core.Exit(0)
	case errors.Is(err, editor.ErrInterrupted):
		core.Exit(sigs.ExitCode())
	}
	fail(err)
}

// fail restores the terminal, prints a diagnostic and exits
func fail(err error) {
	log.Printf("main: fatal: %v", err)
	core.RunExitHooks()
	fmt.Fprintf(os.Stderr, "cline: %v\n", err)
	core.Exit(1)
}
