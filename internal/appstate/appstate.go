// Package appstate runs the interactive editor window: it feeds shiny
// input events to the editor, binds the command shortcuts and paints the
// page, the location tree and the status line.
package appstate

import (
	"context"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/darkmapgen/internal/clipboard"
	"github.com/example/darkmapgen/internal/config"
	"github.com/example/darkmapgen/internal/editor"
	"github.com/example/darkmapgen/internal/export"
	"github.com/example/darkmapgen/internal/notify"
	"github.com/example/darkmapgen/internal/projectfile"
	"github.com/example/darkmapgen/internal/render"
	"github.com/example/darkmapgen/internal/theme"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

// messageTime is how long status messages stay on screen.
const messageTime = 2 * time.Second

// DefaultWindowSize is used when no size is configured.
var DefaultWindowSize = image.Pt(1024, 768)

// AppState holds the editor and the settings of its window.
type AppState struct {
	Editor   *editor.Editor
	Config   *config.Config
	Theme    *theme.Theme
	Notifier *notify.Notifier
	Version  string
	Toggles  Toggles
	Size     image.Point

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithEditor sets the editor driven by the window.
func WithEditor(ed *editor.Editor) Option { return func(a *AppState) { a.Editor = ed } }

// WithConfig sets the configuration and takes the view toggles from it.
func WithConfig(cfg *config.Config) Option {
	return func(a *AppState) {
		a.Config = cfg
		a.Toggles = Toggles{
			Labels:        cfg.Editor.Labels,
			ThickLines:    cfg.Editor.ThickLines,
			CursorGuides:  cfg.Editor.CursorGuides,
			FillNew:       cfg.Editor.FillNew,
			HideSelection: cfg.Editor.HideSelection,
		}
	}
}

// WithTheme sets the colors.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithNotifier sets the desktop notifier.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.Notifier = n } }

// WithVersion sets the version shown in the title.
func WithVersion(v string) Option { return func(a *AppState) { a.Version = v } }

// WithWindowSize sets the initial window size.
func WithWindowSize(w, h int) Option {
	return func(a *AppState) {
		if w > 0 && h > 0 {
			a.Size = image.Pt(w, h)
		}
	}
}

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{Size: DefaultWindowSize}
	for _, o := range opts {
		o(a)
	}
	if a.Config == nil {
		WithConfig(config.New())(a)
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	return a
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

// canvasSize returns the viewport size for a window of the given size.
func canvasSize(width, height int) image.Point {
	return image.Pt(max(width-sidebarWidth, 0), max(height-statusHeight, 0))
}

func (a *AppState) Main(s screen.Screen) {
	ed := a.Editor
	width, height := a.Size.X, a.Size.Y
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: ed.Title(a.Version)})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer a.notifyClose()

	cv := canvasSize(width, height)
	ed.Viewport = cv
	ed.ScrollTo(ed.Scroll.X, ed.Scroll.Y)

	var message string
	var messageUntil time.Time
	var sideScroll int
	var dlg *dialog
	var quit bool

	say := func(format string, args ...any) {
		message = fmt.Sprintf(format, args...)
		log.Print(message)
		messageUntil = time.Now().Add(messageTime)
	}

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()

	repaint := func() {
		paintMu.Lock()
		if paintCancel != nil && dropCount < frameDropThreshold {
			paintCancel()
			dropCount++
		}
		paintMu.Unlock()
		rows := treeRows(ed.Project)
		sel := selectedRow(rows, ed.Project.Current, ed.Selected)
		st := paintState{
			width:        width,
			height:       height,
			theme:        *a.Theme,
			scene:        buildScene(ed, a.Theme, a.Toggles, a.Config.Export.AA),
			rows:         rows,
			selRow:       sel,
			sideScroll:   sideScroll,
			status:       statusLine(ed, a.Version),
			message:      message,
			messageUntil: messageUntil,
			dialog:       dlg,
		}
		select {
		case paintCh <- st:
		default:
			select {
			case <-paintCh:
			default:
			}
			paintCh <- st
		}
	}

	resize := func(e size.Event) {
		width, height = e.WidthPx, e.HeightPx
		ed.Viewport = canvasSize(width, height)
		ed.ScrollTo(ed.Scroll.X, ed.Scroll.Y)
		sideScroll = clampScroll(sideScroll, len(treeRows(ed.Project)), height-statusHeight)
	}

	ed.Prompt = &modal{
		events: w,
		show: func(d *dialog) {
			dlg = d
			repaint()
		},
		resize: resize,
		done: func() {
			ed.Mods = 0
			ed.UpdateMode()
		},
	}

	keyboardAction := map[KeyShortcut]string{}
	actions := map[string]func(){}
	register := func(name string, keys KeyboardShortcuts, fn func()) {
		actions[name] = fn
		if keys != nil {
			for _, sc := range keys.KeyboardShortcuts() {
				keyboardAction[sc] = name
			}
		}
	}

	exportOptions := func() export.Options {
		return a.Config.ExportOptions(ed.Project.Dir)
	}
	reportExport := func(res *export.Result) {
		if res == nil {
			return
		}
		if err := res.Err(); err != nil {
			log.Printf("export: %v", err)
			ed.Prompt.Alert(fmt.Sprintf("%s\n\n%v", res.Summary(), err))
		}
		say("%s", res.Summary())
		a.Notifier.Export(res.Summary(), nil)
	}

	register("prevpage", shortcutList{{Code: key.CodePageUp}}, func() { ed.ChangePage(-1) })
	register("nextpage", shortcutList{{Code: key.CodePageDown}}, func() { ed.ChangePage(1) })
	displayKeys := []key.Code{key.Code1, key.Code2, key.Code3, key.Code4, key.Code5}
	for i, code := range displayKeys {
		mode := render.Outlines + render.DisplayMode(i)
		register("display"+mode.String(), shortcutList{{Code: code, Modifiers: key.ModControl}}, func() {
			ed.SetDisplayMode(mode)
		})
	}
	toggle := func(name string, code key.Code, flag *bool) {
		register(name, shortcutList{{Code: code, Modifiers: key.ModControl}}, func() { *flag = !*flag })
	}
	toggle("thicklines", key.CodeT, &a.Toggles.ThickLines)
	toggle("labels", key.CodeL, &a.Toggles.Labels)
	toggle("fillnew", key.CodeF, &a.Toggles.FillNew)
	toggle("guides", key.CodeG, &a.Toggles.CursorGuides)
	toggle("hideselection", key.CodeH, &a.Toggles.HideSelection)
	register("zoomin", shortcutList{{Code: key.CodeKeypadPlusSign}, {Code: key.CodeEqualSign}}, func() { ed.ZoomStep(1) })
	register("zoomout", shortcutList{{Code: key.CodeKeypadHyphenMinus}, {Code: key.CodeHyphenMinus}}, func() { ed.ZoomStep(-1) })
	register("save", shortcutList{{Code: key.CodeS, Modifiers: key.ModControl}}, func() {
		if err := ed.Save(); err != nil {
			log.Printf("save: %v", err)
			ed.Prompt.Alert(fmt.Sprintf("Failed to save project file.\n\n%v", err))
			return
		}
		path := projectfile.Path(ed.Project.Dir)
		say("saved %s", path)
		a.Notifier.Save(path)
	})
	register("generateall", shortcutList{{Code: key.CodeF7}}, func() { reportExport(ed.GenerateAll(exportOptions())) })
	register("generateselected", shortcutList{{Code: key.CodeF7, Modifiers: key.ModControl}}, func() {
		reportExport(ed.GenerateSelected(exportOptions()))
	})
	register("reindex", shortcutList{{Code: key.CodeF9}}, func() { ed.EditIndex() })
	register("move", shortcutList{{Code: key.CodeM}}, func() { ed.MoveSelected() })
	register("info", shortcutList{{Code: key.CodeI}}, func() {
		info, err := ed.Info(a.Config.Export.Margin)
		if err != nil {
			say("%v", err)
			return
		}
		ed.Prompt.Alert(info)
	})
	register("copy", shortcutList{{Code: key.CodeC, Modifiers: key.ModControl}}, func() {
		if ed.Selected == nil {
			say("%v", editor.ErrNoSelection)
			return
		}
		detail, err := clipboard.CopyLocation(ed.Map(), ed.Selected, a.Config.Export.Margin, a.Config.Export.AA)
		if err != nil {
			log.Printf("copy: %v", err)
			return
		}
		say("copied %s", detail)
		a.Notifier.Copy(detail)
	})
	register("copyinfo", shortcutList{{Code: key.CodeC, Modifiers: key.ModControl | key.ModShift}}, func() {
		info, err := ed.Info(a.Config.Export.Margin)
		if err != nil {
			say("%v", err)
			return
		}
		if err := clipboard.WriteText(info); err != nil {
			log.Printf("copy info: %v", err)
			return
		}
		detail := fmt.Sprintf("details of location %03d on PAGE%03d", ed.Selected.Index, ed.Map().Page)
		say("copied %s", detail)
		a.Notifier.Copy(detail)
	})
	register("quit", shortcutList{{Code: key.CodeQ, Modifiers: key.ModControl}}, func() {
		quit = ed.ConfirmClose()
	})

	// The canvas gets pointer events while a drag or pan holds it, even
	// outside its area.
	canvasMouse := func(e mouse.Event) bool {
		if ed.Busy() {
			return true
		}
		return int(e.X) >= sidebarWidth && int(e.Y) < height-statusHeight
	}

	for !quit {
		e := w.NextEvent()
		switch e := e.(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				if ed.Project.Modified {
					log.Print("appstate: window closed with unsaved changes")
				}
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
		case size.Event:
			resize(e)
			repaint()
		case paint.Event:
			repaint()
		case mouse.Event:
			if e.Direction == mouse.DirPress && time.Now().Before(messageUntil) {
				messageUntil = time.Time{}
			}
			if canvasMouse(e) {
				e.X -= sidebarWidth
				ed.Mouse(e)
				repaint()
				continue
			}
			if int(e.X) >= sidebarWidth {
				continue
			}
			rows := treeRows(ed.Project)
			side := height - statusHeight
			switch {
			case e.Button == mouse.ButtonWheelUp:
				sideScroll = clampScroll(sideScroll-3*rowHeight, len(rows), side)
			case e.Button == mouse.ButtonWheelDown:
				sideScroll = clampScroll(sideScroll+3*rowHeight, len(rows), side)
			case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
				if i := rowAt(rows, int(e.Y), sideScroll); i >= 0 && !ed.Busy() {
					ed.Select(rows[i].page, rows[i].loc)
					sideScroll = revealRow(sideScroll, i, side)
				}
			default:
				continue
			}
			repaint()
		case key.Event:
			if e.Direction != key.DirRelease {
				ks := KeyShortcut{Code: e.Code, Modifiers: e.Modifiers & shortcutModifiers}
				if action, ok := keyboardAction[ks]; ok && !ed.Busy() {
					actions[action]()
					rows := treeRows(ed.Project)
					sideScroll = revealRow(sideScroll, selectedRow(rows, ed.Project.Current, ed.Selected), height-statusHeight)
					repaint()
					continue
				}
			}
			if ed.Key(e) {
				repaint()
			}
		}
	}
}
