// Package main is the entry point for checklistpp.
// With arguments it runs one batch command and exits; without arguments it
// starts the interactive prompt.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"checklistpp/internal/command"
	"checklistpp/internal/config"
	"checklistpp/internal/session"
	"checklistpp/internal/storage"
	"checklistpp/internal/ui"
	"checklistpp/internal/view"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Batch exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const helpText = `checklistpp - checklists and a kanban board for your terminal

USAGE:
    checklistpp [OPTIONS]
    checklistpp [-l NAME] <command> [ARGS]

Run without a command to start the interactive prompt. With a command
one operation is performed in batch and the process exits.

OPTIONS:
    -l, --checklist NAME  Operate on the named checklist (default "default")
    -h, --help            Show this help message
    -v, --version         Show version information

DATA STORAGE:
    One JSON file per checklist in ~/.checklists/ (configurable).

CONFIGURATION:
    Optional config file: ~/.config/checklistpp/config.yaml
    Keys: data_dir, limits.{todo,progress,done,taskname}, repaint,
    default_view, theme.{primary,accent,muted}.

EXAMPLES:
    # Interactive prompt on the default checklist
    checklistpp

    # Add and complete a task in batch
    checklistpp add Write report high
    checklistpp mark 1

    # Kanban view of the "work" checklist
    checklistpp -l work view kanban
    checklistpp -l work show

    # Export and re-import markdown
    checklistpp export md
    checklistpp import tasks.md

`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("checklistpp", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, helpText)
		fmt.Fprint(os.Stderr, command.HelpText())
	}

	var name string
	fs.StringVar(&name, "checklist", "default", "checklist name")
	fs.StringVar(&name, "l", "default", "checklist name (shorthand)")

	showVersion := fs.Bool("version", false, "show version information")
	fs.BoolVar(showVersion, "v", false, "show version information (shorthand)")

	showHelp := fs.Bool("help", false, "show help message")
	fs.BoolVar(showHelp, "h", false, "show help message (shorthand)")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if *showVersion {
		fmt.Printf("checklistpp version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		return exitOK
	}
	if *showHelp {
		fmt.Print(helpText)
		fmt.Print(command.HelpText())
		return exitOK
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return exitError
	}

	store, err := storage.New(cfg.GetDataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		return exitError
	}
	store.SetTaskNameLimit(cfg.Limits.TaskName)

	sess, err := session.New(store, cfg, name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening checklist %q: %v\n", name, err)
		return exitError
	}

	styles := view.NewStylesFromTheme(&cfg.Theme)
	disp := command.New(sess, styles, terminalWidth())

	if fs.NArg() == 0 {
		if err := ui.Run(disp, styles); err != nil {
			fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
			return exitError
		}
		return exitOK
	}

	return runBatch(disp, fs.Args())
}

// runBatch executes one command line and maps the result onto the exit
// code contract: 0 success, 1 operation failure, 2 usage error.
func runBatch(disp *command.Dispatcher, args []string) int {
	res := disp.Execute(strings.Join(args, " "))
	if res.Err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", res.Err)
		if isUsageError(res.Err) {
			return exitUsage
		}
		return exitError
	}
	if res.Output != "" {
		fmt.Println(res.Output)
	}
	if res.Mutated && disp.Sess.Cfg.Repaint {
		fmt.Print(disp.Render())
	}
	return exitOK
}

// isUsageError distinguishes malformed commands from operation failures.
func isUsageError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "usage:") ||
		strings.HasPrefix(msg, "unrecognized command")
}

// terminalWidth returns the stdout width, or a conservative default when
// stdout is not a terminal.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}
