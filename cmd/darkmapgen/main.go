package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"

	"github.com/example/darkmapgen/assets"
	"github.com/example/darkmapgen/internal/config"
	"github.com/example/darkmapgen/internal/editor"
	"github.com/example/darkmapgen/internal/model"
	"github.com/example/darkmapgen/internal/notify"
	"github.com/example/darkmapgen/internal/pages"
	"github.com/example/darkmapgen/internal/projectfile"
	"github.com/example/darkmapgen/internal/theme"
)

var (
	version            = "dev"
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs           *flag.FlagSet
	program      string
	notifier     *notify.Notifier
	config       *config.Config
	dir          string
	thief        bool
	shock        bool
	exportAlerts bool
	saveAlerts   bool
	copyAlerts   bool
	themeName    string
	activeTheme  *theme.Theme

	// project is loaded once and shared by every command of a shell session.
	project *model.Project

	stdin  *bufio.Reader
	stdout io.Writer
	stderr io.Writer
	out    *termenv.Output
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	r := newRootWith(cfg, os.Stdin, os.Stdout, os.Stderr)
	r.notifier = notify.New(prefs)
	return r
}

func newRootWith(cfg *config.Config, in io.Reader, stdout, stderr io.Writer) *root {
	r := &root{
		fs:      flag.NewFlagSet("darkmapgen", flag.ContinueOnError),
		program: "darkmapgen",
		config:  cfg,
		stdin:   bufio.NewReader(in),
		stdout:  stdout,
		stderr:  stderr,
		out:     termenv.NewOutput(stdout),
	}
	r.fs.SetOutput(stderr)
	r.fs.StringVar(&r.dir, "dir", ".", "project directory holding the page images and DarkMapGen.proj")
	r.fs.BoolVar(&r.thief, "thief", false, "force Thief page naming (pageNNN)")
	r.fs.BoolVar(&r.shock, "shock", false, "force System Shock 2 page naming (pageNNNa and pageNNNa-hi)")
	r.fs.BoolVar(&r.exportAlerts, "notify-export", cfg.Notify.Export, "show a desktop notification after generating files")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving the project")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	// Precedence: CLI > Env > Config > Default. The env and config values
	// are already merged into cfg.Theme by the loader.
	r.fs.StringVar(&r.themeName, "theme", "", fmt.Sprintf("color theme to use (%s or a [theme.NAME] config section)", strings.Join(assets.ThemeNames(), ", ")))
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return &UsageError{of: r}
		}
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.thief && r.shock {
		return errors.New("-thief and -shock cannot be used together")
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventExport, r.exportAlerts)
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	}
	r.activeTheme = r.loadTheme()
	return r.dispatch(r.fs.Arg(0), r.fs.Args()[1:])
}

// dispatch parses and runs one subcommand.
func (r *root) dispatch(name string, args []string) error {
	var (
		cmd runnable
		err error
	)
	switch name {
	case "edit":
		cmd, err = parseEditCmd(args, r)
	case "export":
		cmd, err = parseExportCmd(args, r)
	case "info":
		cmd, err = parseInfoCmd(args, r)
	case "move":
		cmd, err = parseMoveCmd(args, r)
	case "reindex":
		cmd, err = parseReindexCmd(args, r)
	case "delete":
		cmd, err = parseDeleteCmd(args, r)
	case "copy":
		cmd, err = parseCopyCmd(args, r)
	case "watch":
		cmd, err = parseWatchCmd(args, r)
	case "shell":
		cmd, err = parseShellCmd(args, r)
	case "config":
		cmd, err = parseConfigCmd(args, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func (r *root) loadTheme() *theme.Theme {
	name := r.themeName
	if name == "" {
		name = r.config.Theme
	}
	if t, ok := r.config.Themes[name]; ok {
		return t
	}
	t, err := theme.NewLoader().Load(name)
	if err != nil {
		if name != "" && name != "default" {
			fmt.Fprintf(r.stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		}
		return theme.Default()
	}
	return t
}

// pageMode resolves the page naming scheme from the flags and the config.
func (r *root) pageMode() pages.Mode {
	switch {
	case r.thief:
		return pages.ModeThief
	case r.shock:
		return pages.ModeShock
	}
	return r.config.Export.Mode
}

// openProject loads the page images and the project file of -dir.
func (r *root) openProject() (*model.Project, error) {
	if r.project != nil {
		return r.project, nil
	}
	if err := pages.Exists(r.dir); err != nil {
		return nil, err
	}
	p := model.NewProject(r.dir)
	if err := pages.Load(p, r.pageMode()); err != nil {
		return nil, err
	}
	if err := projectfile.Load(p); err != nil {
		return nil, err
	}
	r.project = p
	return p, nil
}

// locate opens the project and looks up a page and, when idx is not
// negative, one of its locations.
func (r *root) locate(page, idx int) (*model.Project, *model.Location, error) {
	if page < 0 || page >= model.MaxMaps {
		return nil, nil, fmt.Errorf("page %d out of range 0 to %d", page, model.MaxMaps-1)
	}
	p, err := r.openProject()
	if err != nil {
		return nil, nil, err
	}
	if !p.HasImage(page) {
		return nil, nil, fmt.Errorf("PAGE%03d has no page image", page)
	}
	if idx < 0 {
		return p, nil, nil
	}
	loc := p.Map(page).ByIndex(idx)
	if loc == nil {
		return nil, nil, fmt.Errorf("no location %03d on PAGE%03d", idx, page)
	}
	return p, loc, nil
}

// newEditor returns an editor on page with loc selected. Questions go to
// the terminal unless yes is set.
func (r *root) newEditor(p *model.Project, page int, loc *model.Location, yes bool) *editor.Editor {
	var prompt editor.Prompter = &linePrompter{in: r.stdin, out: r.stdout}
	if yes {
		prompt = editor.Accept{}
	}
	ed := editor.New(p, prompt)
	ed.Select(page, loc)
	return ed
}

// save writes the project file and reports it.
func (r *root) save(p *model.Project) error {
	if err := projectfile.Save(p); err != nil {
		return err
	}
	r.success("Saved " + projectfile.Path(p.Dir))
	r.notifySave(projectfile.Path(p.Dir))
	return nil
}

func (r *root) success(msg string) {
	fmt.Fprintln(r.stdout, r.out.String(msg).Foreground(termenv.ANSIGreen))
}

func (r *root) failure(msg string) {
	fmt.Fprintln(r.stdout, r.out.String(msg).Foreground(termenv.ANSIRed))
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func (r *root) notifyExport(summary string, img image.Image) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Export(summary, img)
}

func (r *root) notifySave(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(path)
}

func (r *root) notifyCopy(detail string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Copy(detail)
}

// linePrompter asks editor questions on the terminal.
type linePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func (l *linePrompter) readLine() (string, bool) {
	s, err := l.in.ReadString('\n')
	if err != nil && s == "" {
		return "", false
	}
	return strings.TrimSpace(s), true
}

func (l *linePrompter) Confirm(msg string) bool {
	fmt.Fprintf(l.out, "%s [y/N] ", strings.ReplaceAll(msg, "\n", " "))
	s, ok := l.readLine()
	if !ok {
		return false
	}
	switch strings.ToLower(s) {
	case "y", "yes":
		return true
	}
	return false
}

func (l *linePrompter) Input(label, value string) (string, bool) {
	fmt.Fprintf(l.out, "%s [%s]: ", label, value)
	s, ok := l.readLine()
	if !ok {
		return "", false
	}
	if s == "" {
		return value, true
	}
	return s, true
}

func (l *linePrompter) Alert(msg string) {
	fmt.Fprintln(l.out, msg)
}
