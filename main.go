package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/leonelquinteros/gotext"

	"tileview/pkg/engine/input"
	"tileview/pkg/engine/log"
	"tileview/pkg/engine/terminal"
	"tileview/pkg/game/config"
	"tileview/pkg/game/devtools"
	"tileview/pkg/game/menu"
	"tileview/pkg/game/renderer"
	ebitenrenderer "tileview/pkg/game/renderer/ebiten"
	"tileview/pkg/game/renderer/tui"
	"tileview/pkg/game/tiledisplay"
	"tileview/pkg/game/tileset"
)

// layerFlags collects repeated -tile flags.
type layerFlags []tiledisplay.Layer

func (f *layerFlags) String() string {
	parts := make([]string, len(*f))
	for i, l := range *f {
		parts[i] = l.String()
	}
	return strings.Join(parts, ",")
}

func (f *layerFlags) Set(s string) error {
	l, err := tiledisplay.ParseLayer(s)
	if err != nil {
		return err
	}
	*f = append(*f, l)
	return nil
}

type options struct {
	configPath  string
	tilesetPath string
	backend     string
	layers      layerFlags
	zoom        float64
	x, y        int
	probe       bool
	keys        bool
	dump        bool
	snapshot    string
}

func parseFlags(args []string) (*options, error) {
	o := &options{}
	fs := flag.NewFlagSet("tileview", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "preferences file (default: per-user config.yaml)")
	fs.StringVar(&o.tilesetPath, "tileset", "", "tileset JSON file (overrides the tileset preference)")
	fs.StringVar(&o.backend, "backend", "", "renderer: auto, ebiten or terminal (overrides the backend preference)")
	fs.Var(&o.layers, "tile", "layer as id[:rrggbb[aa]][@rotation]; repeat to stack")
	fs.Float64Var(&o.zoom, "zoom", 0, "zoom factor between 0.25 and 4 (default: zoom preference)")
	fs.IntVar(&o.x, "x", -1, "column of the tile's left edge; negative centers")
	fs.IntVar(&o.y, "y", -1, "row of the tile's top edge; negative centers")
	fs.BoolVar(&o.probe, "probe", false, "report which -tile ids exist and exit")
	fs.BoolVar(&o.keys, "keys", false, "print key bindings and exit")
	fs.BoolVar(&o.dump, "dump", false, "dump the resolved tileset entries of -tile ids and exit")
	fs.StringVar(&o.snapshot, "snapshot", "", "write the composited tiles as a PNG into this directory and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return o, nil
}

// zoomOr returns the -zoom value, or fallback when it was not given.
func (o *options) zoomOr(fallback float64) float64 {
	if o.zoom == 0 {
		return fallback
	}
	return o.zoom
}

func main() {
	code, err := run(os.Args[1:])
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, color.Red.Sprint(err))
		}
		os.Exit(2)
	}
	os.Exit(code)
}

func run(args []string) (int, error) {
	// A missing .env is normal.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return 0, fmt.Errorf("load .env: %w", err)
	}

	opts, err := parseFlags(args)
	if err != nil {
		return 0, err
	}

	prefs, err := config.Load(opts.configPath)
	if err != nil {
		return 0, err
	}
	if err := log.Configure(prefs.Log.Level, prefs.Log.File); err != nil {
		return 0, err
	}
	gotext.Configure("locales", prefs.Locale, "default")
	applyBindings(prefs.Bindings)

	if opts.keys {
		menu.WriteBindings(os.Stdout)
		return 0, nil
	}

	path := opts.tilesetPath
	if path == "" {
		path = prefs.Tileset
	}
	if path == "" {
		return 0, errors.New(gotext.Get("NO_TILESET"))
	}
	ts, err := tileset.Load(path)
	if err != nil {
		return 0, err
	}
	log.WithFields(map[string]any{"path": path, "tiles": ts.Len()}).Debug("tileset loaded")

	if opts.dump {
		dumpTiles(os.Stdout, ts, opts.layers)
		return 0, nil
	}

	if opts.snapshot != "" {
		img, err := devtools.RenderLayers(ts, opts.layers, opts.zoomOr(prefs.Zoom))
		if err != nil {
			return 0, err
		}
		file, err := devtools.SaveSnapshot(opts.snapshot, img)
		if err != nil {
			return 0, err
		}
		fmt.Println(file)
		return 0, nil
	}

	window := tiledisplay.New()
	window.SetZoom(opts.zoomOr(prefs.Zoom))
	window.SetPosition(opts.x, opts.y)
	for _, l := range opts.layers {
		window.AddLayer(l)
	}

	if opts.probe {
		// Probing only needs the tileset, so the backend is never started.
		renderer.SetRenderer(tui.New(ts))
		return probe(os.Stdout, window), nil
	}

	backend := opts.backend
	if backend == "" {
		backend = prefs.Backend
	}
	backend, err = chooseBackend(backend, terminal.IsInteractive(), os.Getenv, runtime.GOOS)
	if err != nil {
		return 0, err
	}

	var action string
	switch backend {
	case config.BackendTerminal:
		action, err = runTerminal(ts, window, prefs)
	default:
		action, err = runEbiten(ts, window, prefs)
	}
	if err != nil {
		return 0, err
	}

	fmt.Println(action)
	if action == tiledisplay.ResultError {
		return 1, nil
	}
	return 0, nil
}

// chooseBackend resolves "auto" to a concrete backend: the Ebiten window on
// a graphical session, the terminal otherwise.
func chooseBackend(name string, interactive bool, getenv func(string) string, goos string) (string, error) {
	switch name {
	case config.BackendEbiten, config.BackendTerminal:
		return name, nil
	case config.BackendAuto, "":
	default:
		return "", fmt.Errorf("unknown backend %q", name)
	}

	graphical := goos == "windows" || goos == "darwin" ||
		getenv("DISPLAY") != "" || getenv("WAYLAND_DISPLAY") != ""
	switch {
	case graphical:
		return config.BackendEbiten, nil
	case interactive:
		return config.BackendTerminal, nil
	}
	return "", errors.New(gotext.Get("NO_BACKEND"))
}

func runTerminal(ts *tileset.Tileset, window *tiledisplay.Window, prefs *config.Preferences) (string, error) {
	if prefs.Log.File == "" {
		// The screen belongs to tcell; stray log lines would corrupt it.
		log.SetOutput(io.Discard)
	}

	r := tui.New(ts)
	if err := r.Init(); err != nil {
		return "", err
	}
	defer r.Fini()

	renderer.SetRenderer(r)
	defer renderer.SetRenderer(nil)
	return window.Query(), nil
}

func runEbiten(ts *tileset.Tileset, window *tiledisplay.Window, prefs *config.Preferences) (string, error) {
	r := ebitenrenderer.New(ts, prefs.Window.Width, prefs.Window.Height)
	if err := r.Init(); err != nil {
		return "", err
	}
	renderer.SetRenderer(r)
	defer renderer.SetRenderer(nil)

	// Ebiten owns the main goroutine; the window loop runs beside it.
	result := make(chan string, 1)
	go func() {
		result <- window.Query()
		r.Stop()
	}()

	if err := r.Run(); err != nil {
		return "", err
	}
	return <-result, nil
}

// applyBindings installs configured key codes, keyed by action name.
func applyBindings(bindings map[string]string) {
	for action, code := range bindings {
		// viper lower-cases keys; action names are upper case.
		input.SetSingleBinding(input.Action(strings.ToUpper(action)), code)
		log.Debugf("bound %s to %q", strings.ToUpper(action), code)
	}
}

// probe reports each layer's tile id and returns 1 if any is missing.
func probe(w io.Writer, window *tiledisplay.Window) int {
	code := 0
	for _, l := range window.Layers() {
		if window.TileExists(l.TileID) {
			fmt.Fprintln(w, color.Green.Sprint(fmt.Sprintf(gotext.Get("TILE_FOUND"), l.TileID)))
			continue
		}
		fmt.Fprintln(w, color.Red.Sprint(fmt.Sprintf(gotext.Get("TILE_MISSING"), l.TileID)))
		code = 1
	}
	return code
}

// dumpTiles prints the resolved entries for the given layers, or every
// entry when none are given.
func dumpTiles(w io.Writer, ts *tileset.Tileset, layers layerFlags) {
	ids := make([]string, 0, len(layers))
	for _, l := range layers {
		ids = append(ids, l.TileID)
	}
	if len(ids) == 0 {
		ids = ts.IDs()
	}

	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
	for _, id := range ids {
		tile, ok := ts.Find(id)
		if !ok {
			fmt.Fprintln(w, color.Red.Sprint(fmt.Sprintf(gotext.Get("TILE_MISSING"), id)))
			continue
		}
		fmt.Fprintf(w, "%s: ", id)
		cfg.Fdump(w, tile)
	}
}
