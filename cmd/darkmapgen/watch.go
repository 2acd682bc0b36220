package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/example/darkmapgen/internal/model"
	"github.com/example/darkmapgen/internal/projectfile"
)

// settleTime is how long the project file must stay quiet before an export.
const settleTime = 250 * time.Millisecond

// watchCmd re-exports whenever the project file is saved.
type watchCmd struct {
	*exportCmd
}

func parseWatchCmd(args []string, r *root) (*watchCmd, error) {
	c := &watchCmd{exportCmd: newExportCmd("watch", r)}
	if err := c.parseArgs(c, args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *watchCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return c.watch(ctx)
}

func (c *watchCmd) watch(ctx context.Context) error {
	p, _, err := c.target()
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()
	// Editors replace files, so the directory is watched rather than the file.
	if err := watcher.Add(p.Dir); err != nil {
		return fmt.Errorf("watch %s: %w", p.Dir, err)
	}
	path := filepath.Clean(projectfile.Path(p.Dir))
	fmt.Fprintf(c.r.stdout, "Watching %s, press Ctrl+C to stop\n", path)

	c.rebuild(p)
	timer := time.NewTimer(settleTime)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				timer.Reset(settleTime)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch: %v", err)
		case <-timer.C:
			c.rebuild(p)
		}
	}
}

// rebuild reloads the project file and exports it. Failures are reported
// and the watch carries on.
func (c *watchCmd) rebuild(p *model.Project) {
	if err := reloadLocations(p); err != nil {
		c.r.failure(err.Error())
		return
	}
	var loc *model.Location
	if c.page >= 0 && c.loc >= 0 {
		if loc = p.Map(c.page).ByIndex(c.loc); loc == nil {
			c.r.failure(fmt.Sprintf("no location %03d on PAGE%03d", c.loc, c.page))
			return
		}
	}
	if err := c.generate(p, loc); err != nil {
		fmt.Fprintln(c.r.stderr, err)
	}
}

// reloadLocations replaces the locations of p with the project file
// contents, keeping the page images. A broken file leaves p as it was.
func reloadLocations(p *model.Project) error {
	return projectfile.Load(p)
}
