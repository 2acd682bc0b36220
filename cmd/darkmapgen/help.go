package main

import (
	"bytes"
	"embed"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"text/template"
)

//go:embed templates/*.txt
var helpFS embed.FS

var (
	helpOnce sync.Once
	helpTmpl *template.Template
)

func parseHelpTemplates() {
	helpTmpl = template.Must(template.New("").Funcs(map[string]any{
		"flags": func(fs *flag.FlagSet) []flagInfo {
			result := []flagInfo{}
			if fs == nil {
				return result
			}
			fs.VisitAll(func(f *flag.Flag) {
				result = append(result, flagInfo{f.Name, f.DefValue, f.Usage})
			})
			return result
		},
	}).ParseFS(helpFS, "templates/*.txt"))
}

type flagInfo struct {
	Name     string
	DefValue string
	Usage    string
}

type HelpData interface {
	Program() string
	Template() string
	FlagSet() *flag.FlagSet
}

type UsageError struct {
	of  HelpData
	msg string
}

func (e *UsageError) Error() string {
	help, err := e.renderHelp()
	if err != nil {
		return err.Error()
	}
	if e.msg != "" {
		return e.msg + "\n\n" + help
	}
	return help
}

func (e *UsageError) renderHelp() (string, error) {
	helpOnce.Do(parseHelpTemplates)
	var buf bytes.Buffer
	if err := helpTmpl.ExecuteTemplate(&buf, e.of.Template(), e.of); err != nil {
		log.Printf("error rendering help template: %v", err)
		return "", err
	}
	return buf.String(), nil
}

// usageFunc prints the help of h, for flag.FlagSet.Usage.
func usageFunc(h HelpData) func() {
	return func() {
		help, err := (&UsageError{of: h}).renderHelp()
		if err != nil {
			return
		}
		var out io.Writer = os.Stderr
		if fs := h.FlagSet(); fs != nil {
			out = fs.Output()
		}
		fmt.Fprint(out, help)
	}
}

func usageErrorf(h HelpData, format string, args ...any) error {
	return &UsageError{of: h, msg: fmt.Sprintf(format, args...)}
}

func (r *root) Template() string { return "root.txt" }

func (c *editCmd) Template() string { return "edit.txt" }

func (c *exportCmd) Template() string { return "export.txt" }

func (c *infoCmd) Template() string { return "info.txt" }

func (c *moveCmd) Template() string { return "move.txt" }

func (c *reindexCmd) Template() string { return "reindex.txt" }

func (c *deleteCmd) Template() string { return "delete.txt" }

func (c *copyCmd) Template() string { return "copy.txt" }

func (c *watchCmd) Template() string { return "watch.txt" }

func (c *shellCmd) Template() string { return "shell.txt" }

func (c *configCmd) Template() string { return "config.txt" }

func (v *versionCmd) Template() string { return "version.txt" }
