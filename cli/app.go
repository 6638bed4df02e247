// app.go - flag handling and wiring of surface, driver, feeders and viewers
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
	"time"

	"github.com/gdamore/tcell/v2"

	"arcos/internal/config"
	"arcos/internal/console"
	"arcos/internal/render"
	"arcos/internal/vga"
)

// options are the command-line overrides.
type options struct {
	configPath  string
	view        string
	surfacePath string
	pngPath     string
	attach      bool
	command     []string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options

	fs := flag.NewFlagSet("arcos", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "config file (default ~/.arcos/config.yaml)")
	fs.StringVar(&o.view, "view", "", "viewer: ansi, plain, tcell, fyne, png or none")
	fs.StringVar(&o.surfacePath, "surface", "", "map the surface onto this file")
	fs.StringVar(&o.pngPath, "png", "", "write a PNG snapshot to this file")
	fs.BoolVar(&o.attach, "attach", false, "show an existing mapped surface without booting")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: arcos [flags] [command [args...]]\n\n")
		fmt.Fprintf(stderr, "Boots the text console, feeds it stdin or the output of command,\n")
		fmt.Fprintf(stderr, "and shows the result.\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	o.command = fs.Args()

	if o.attach && o.surfacePath == "" {
		return o, errors.New("-attach needs -surface")
	}
	if o.attach && len(o.command) > 0 {
		return o, errors.New("-attach cannot run a command")
	}
	return o, nil
}

// apply layers the flags over the file settings.
func (o options) apply(s *config.Settings) {
	if o.view != "" {
		s.Viewer.Mode = o.view
	}
	if o.surfacePath != "" {
		s.Surface.Backend = config.BackendMapped
		s.Surface.Path = o.surfacePath
	}
	if o.pngPath != "" {
		s.Viewer.PNGPath = o.pngPath
		if o.view == "" {
			s.Viewer.Mode = config.ViewPNG
		}
	}
}

func loadSettings(o options) (*config.Settings, error) {
	path := o.configPath
	if path == "" {
		path = config.GetConfigPath()
		if err := config.EnsureFile(path); err != nil {
			log.Printf("Warning: Could not create config file: %v", err)
		}
	}

	settings, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	o.apply(settings)
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func setupLogging(s *config.Settings) (io.Closer, error) {
	if !s.Logging.Enabled {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}

	path := s.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}

// surfaceHandle is an open surface plus whatever releases it.
type surfaceHandle struct {
	vga.Surface
	sync  func() error
	close func() error
}

func openSurface(s *config.Settings) (*surfaceHandle, error) {
	w, h := s.Display.Width, s.Display.Height

	if s.Surface.Backend == config.BackendMapped {
		m, err := vga.OpenMapped(s.Surface.Path, w, h)
		if err != nil {
			return nil, err
		}
		return &surfaceHandle{Surface: m, sync: m.Sync, close: m.Close}, nil
	}

	m, err := vga.NewMemorySurface(w, h)
	if err != nil {
		return nil, err
	}
	noop := func() error { return nil }
	return &surfaceHandle{Surface: m, sync: noop, close: noop}, nil
}

// run is main without the process exit.
func run(ctx context.Context, args []string, stdin *os.File, stdout *os.File, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	settings, err := loadSettings(opts)
	if err != nil {
		return err
	}

	logFile, err := setupLogging(settings)
	if err != nil {
		return err
	}
	defer logFile.Close()

	surface, err := openSurface(settings)
	if err != nil {
		return err
	}
	defer surface.close()

	if opts.attach {
		log.Printf("Attaching to surface %s", settings.Surface.Path)
		return present(ctx, stdout, settings, func() vga.Snapshot { return vga.Capture(surface) }, "attached")
	}

	drv, err := vga.NewDriver(surface, settings.DriverOptions())
	if err != nil {
		return err
	}
	session, err := console.Boot(drv, settings.Display.Welcome)
	if err != nil {
		return err
	}

	attr, err := settings.Attribute()
	if err != nil {
		return err
	}
	if err := drv.SetDefaultAttribute(attr.FG, attr.BG); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	gate := &feedGate{w: drv}
	feedDone := startFeed(ctx, gate, drv.Width(), drv.Height(), opts.command, stdin)

	if live(settings.Viewer.Mode) {
		err := viewLive(ctx, stdout, settings, drv.Snapshot, session.ID[:8])
		stopFeed(cancel, gate, feedDone, feedGrace)
		if serr := surface.sync(); serr != nil {
			log.Printf("Warning: Could not sync surface: %v", serr)
		}
		return err
	}

	if err := <-feedDone; err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Feed stopped: %v", err)
		fmt.Fprintf(stderr, "arcos: %v\n", err)
	}
	if err := surface.sync(); err != nil {
		log.Printf("Warning: Could not sync surface: %v", err)
	}
	log.Printf("Console %s: %d scrolls, cursor at %+v", session.ID, drv.Scrolls(), drv.Cursor())

	return presentTo(stdout, settings, drv.Snapshot())
}

func live(mode string) bool {
	return mode == config.ViewTcell || mode == config.ViewFyne
}

// viewLive shows the console while it is being fed.
var viewLive = present

// present runs a live viewer, or renders one snapshot for the static modes.
func present(ctx context.Context, out *os.File, s *config.Settings, source func() vga.Snapshot, title string) error {
	refresh := time.Duration(s.Viewer.RefreshMS) * time.Millisecond

	switch s.Viewer.Mode {
	case config.ViewTcell:
		screen, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		if err := screen.Init(); err != nil {
			return err
		}
		defer screen.Fini()

		err = render.NewTcellView(screen).Run(ctx, source, refresh)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err

	case config.ViewFyne:
		attr, err := s.Attribute()
		if err != nil {
			return err
		}
		runFyneViewer(ctx, "ArcOS - "+title, attr, source, refresh)
		return nil
	}

	return presentTo(out, s, source())
}

// presentTo renders one snapshot for the static viewer modes.
func presentTo(out *os.File, s *config.Settings, snap vga.Snapshot) error {
	switch s.Viewer.Mode {
	case config.ViewANSI:
		return render.Present(out, snap)
	case config.ViewPlain:
		return render.WritePlain(out, snap)
	case config.ViewPNG:
		f, err := os.Create(s.Viewer.PNGPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", s.Viewer.PNGPath, err)
		}
		if err := render.WritePNG(f, snap); err != nil {
			f.Close()
			return fmt.Errorf("failed to write %s: %w", s.Viewer.PNGPath, err)
		}
		log.Printf("Wrote snapshot to %s", s.Viewer.PNGPath)
		return f.Close()
	case config.ViewNone:
		return nil
	}
	return fmt.Errorf("viewer %q cannot render a static snapshot", s.Viewer.Mode)
}
