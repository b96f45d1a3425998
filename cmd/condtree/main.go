// Command condtree is an interactive terminal editor for boolean condition
// trees. It is the reference consumer of the engine packages: a keyboard
// grab-and-place gesture drives the same drag controller a pointer-based
// renderer would, and the demo payload is a simple field/op/value clause.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/condtree/internal/history"
	"github.com/vanderheijden86/condtree/internal/rule"
	"github.com/vanderheijden86/condtree/pkg/codec"
	"github.com/vanderheijden86/condtree/pkg/config"
	"github.com/vanderheijden86/condtree/pkg/model"
	"github.com/vanderheijden86/condtree/pkg/version"
	"github.com/vanderheijden86/condtree/pkg/watcher"
)

func main() {
	versionFlag := flag.Bool("version", false, "Show version")
	guideFlag := flag.Bool("guide", false, "Print the usage guide and exit")
	file := flag.String("file", "", "Tree file to load and save (JSON)")
	snapshots := flag.Bool("snapshots", false, "List saved snapshots of the tree file and exit")
	restore := flag.Int64("restore", 0, "Start from the given snapshot id instead of the file")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("condtree %s\n", version.Version)
		os.Exit(0)
	}

	if *guideFlag {
		out, err := renderGuide()
		if err != nil {
			fmt.Fprintf(os.Stderr, "rendering guide: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(out)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}

	var hist *history.Store
	if *file != "" {
		hist, err = history.Open(*file + ".history")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (snapshots disabled)\n", err)
		} else {
			defer hist.Close()
		}
	}

	if *snapshots {
		if hist == nil {
			fmt.Fprintln(os.Stderr, "Error: -snapshots needs -file")
			os.Exit(1)
		}
		if err := printSnapshots(hist); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	root, err := loadTree(*file, hist, *restore)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var watch *watcher.Watcher
	if *file != "" {
		if _, err := os.Stat(*file); err == nil {
			watch, err = watcher.New(*file)
			if err == nil {
				if err := watch.Start(); err != nil {
					watch = nil
				}
			}
		}
	}

	p := tea.NewProgram(newApp(root, cfg, *file, hist, watch), tea.WithAltScreen())
	_, err = p.Run()
	if watch != nil {
		watch.Stop()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// printSnapshots lists the saved revisions of the tree file.
func printSnapshots(hist *history.Store) error {
	snaps, err := hist.List(history.DefaultKeep)
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Println("no snapshots yet")
		return nil
	}
	for _, snap := range snaps {
		fmt.Printf("%4d  %s  %d nodes\n", snap.ID, snap.SavedAt.Local().Format("2006-01-02 15:04:05"), snap.NodeCount)
	}
	return nil
}

// loadTree reads the tree file, or returns the sample tree when no file is
// given or the file does not exist yet. A non-zero restore id loads that
// snapshot from the history store instead.
func loadTree(path string, hist *history.Store, restore int64) (*model.Group[rule.Clause], error) {
	if restore != 0 {
		if hist == nil {
			return nil, fmt.Errorf("-restore needs -file")
		}
		snap, err := hist.Get(restore)
		if err != nil {
			return nil, err
		}
		root, err := codec.Unmarshal[rule.Clause](snap.Tree)
		if err != nil {
			return nil, fmt.Errorf("restoring snapshot %d: %w", restore, err)
		}
		return root, nil
	}
	if path == "" {
		return sampleTree(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return sampleTree(), nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	root, err := codec.Unmarshal[rule.Clause](data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return root, nil
}

// sampleTree is the starting tree for a fresh session:
// role == "admin" AND (plan == "pro" OR trial == "true").
func sampleTree() *model.Group[rule.Clause] {
	return model.NewGroup[rule.Clause](model.OpAnd,
		model.NewCondition(rule.Clause{Field: "user.role", Op: "==", Value: "admin"}),
		model.NewGroup[rule.Clause](model.OpOr,
			model.NewCondition(rule.Clause{Field: "account.plan", Op: "==", Value: "pro"}),
			model.NewCondition(rule.Clause{Field: "account.trial", Op: "==", Value: "true"}),
		),
	)
}
