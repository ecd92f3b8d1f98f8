package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tasklist/internal/config"
	"github.com/idilsaglam/tasklist/internal/controller"
	"github.com/idilsaglam/tasklist/internal/logging"
	"github.com/idilsaglam/tasklist/internal/model"
	"github.com/idilsaglam/tasklist/internal/store"
	"github.com/idilsaglam/tasklist/internal/store/jsonstore"
	"github.com/idilsaglam/tasklist/internal/store/sqlitestore"
	"github.com/idilsaglam/tasklist/internal/tui"
	"github.com/idilsaglam/tasklist/internal/ui"
	"github.com/idilsaglam/tasklist/internal/view"
	"github.com/idilsaglam/tasklist/internal/web"
)

// Options tune output behavior from root flags.
type Options struct {
	Group  bool // list grouped by pending/done
	Config *config.Config

	// Confirm answers the clear-all question; nil asks interactively.
	Confirm controller.Confirmer
	// Out receives command output; nil means stdout.
	Out io.Writer
}

func (o Options) out() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	if opt.Config == nil {
		opt.Config = config.Default()
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0
	case "ls", "add", "done", "rm", "clear-done", "clear", "tui", "html", "serve":
	default:
		ui.Fail("unknown subcommand: " + cmd)
		fmt.Fprintln(os.Stderr)
		PrintHelp()
		return 2
	}

	// The TUI owns the terminal, so its logs only go to a file.
	fallback := io.Writer(os.Stderr)
	if cmd == "tui" {
		fallback = io.Discard
	}
	logger, closeLog, err := logging.Open(opt.Config.LogFile, opt.Config.LogLevel, fallback)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	defer closeLog()

	s, closeStore, err := openStore(opt.Config)
	if err != nil {
		ui.Fail("store: " + err.Error())
		return 1
	}
	defer closeStore()

	newCtrl := func(extra ...controller.Option) *controller.Controller {
		opts := append([]controller.Option{
			controller.WithKey(opt.Config.Key),
			controller.WithLogger(logger),
		}, extra...)
		return controller.New(s, opts...)
	}

	switch cmd {
	case "ls":
		return doList(newCtrl(), opt)

	case "add":
		if len(a) == 0 {
			ui.Fail("usage: tasklist add <text...>")
			return 2
		}
		return doAdd(newCtrl(), strings.Join(a, " "))

	case "done", "rm":
		if len(a) != 1 {
			ui.Fail(fmt.Sprintf("usage: tasklist %s <index|id>", cmd))
			return 2
		}
		c := newCtrl()
		t, code := resolve(c.Tasks(), a[0])
		if code != 0 {
			return code
		}
		if cmd == "done" {
			c.Toggle(t.ID)
			ui.OK("toggled")
		} else {
			c.Remove(t.ID)
			ui.OK("removed")
		}
		return 0

	case "clear-done":
		n := newCtrl().ClearCompleted()
		ui.OK(fmt.Sprintf("cleared %d completed", n))
		return 0

	case "clear":
		return doClearAll(newCtrl(), a, opt)

	case "tui":
		screen := tui.NewScreen()
		if err := tui.Run(newCtrl(controller.WithRenderer(screen)), screen); err != nil {
			ui.Fail("tui: " + err.Error())
			return 1
		}
		return 0

	case "html":
		return doHTML(newCtrl(), a, opt)

	case "serve":
		return doServe(newCtrl, logger, opt)
	}
	return 2
}

func PrintHelp() {
	fmt.Printf(`tasklist - a tiny task list

Usage:
  tasklist [flags] <subcommand> [args]

Subcommands:
  add <text...>      Add a task to the top of the list
  ls                 List tasks (-group to split pending/done)
  done <index|id>    Toggle done for a task (1-based index or id)
  rm <index|id>      Remove a task
  clear-done         Remove every completed task
  clear [-y]         Remove ALL tasks (asks first unless -y)
  tui                Interactive list
  html [file]        Write the list as an HTML page (stdout by default)
  serve              Serve the list on -addr (default %s)

Flags:
  -config, -store, -data, -key, -addr, -theme, -log-level, -log-file, -group

Examples:
  tasklist add "Buy milk"
  tasklist ls
  tasklist done 2
  tasklist -store sqlite serve
`, config.DefaultAddr)
}

func openStore(cfg *config.Config) (store.Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Store {
	case config.StoreMemory:
		return store.NewMemory(), noop, nil
	case config.StoreSQLite:
		if cfg.DataDir != "" {
			if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("mkdir: %w", err)
			}
		}
		s, err := sqlitestore.Open(cfg.SQLitePath())
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		s, err := jsonstore.New(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil
	}
}

// resolve finds a task by exact id, else by 1-based index.
func resolve(tasks []model.Task, ref string) (model.Task, int) {
	if i := model.Index(tasks, ref); i >= 0 {
		return tasks[i], 0
	}
	n, err := strconv.Atoi(ref)
	if err != nil {
		ui.Fail("no task with id " + ref)
		return model.Task{}, 2
	}
	if n < 1 || n > len(tasks) {
		ui.Fail(fmt.Sprintf("index out of range: have %d, got %d", len(tasks), n))
		ui.Fprint(os.Stderr, ui.Current().Muted, "Hint: run `tasklist ls` to see valid indexes")
		return model.Task{}, 2
	}
	return tasks[n-1], 0
}

// -------------- subcommand impls ----------------

func doList(c *controller.Controller, opt Options) int {
	v := c.Render()
	t := ui.Current()

	lines := []string{
		ui.Header(v),
		t.Muted.Render(ui.ProgressBar(v.Done, v.Total, 28)),
		"",
	}
	if opt.Group {
		lines = append(lines, ui.GroupedLines(v)...)
	} else {
		lines = append(lines, ui.ListLines(v)...)
	}
	lines = append(lines, "", t.Muted.Render("Tip: add with `tasklist add \"Buy milk\"`"))
	fmt.Fprintln(opt.out(), ui.PanelString(lines))
	return 0
}

func doAdd(c *controller.Controller, text string) int {
	if !c.Add(text) {
		ui.Fail("add: empty text")
		return 2
	}
	ui.OK("added")
	return 0
}

func doClearAll(c *controller.Controller, args []string, opt Options) int {
	fs := flag.NewFlagSet("clear", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	yes := fs.Bool("y", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		ui.Fail("usage: tasklist clear [-y]")
		return 2
	}

	confirm := opt.Confirm
	switch {
	case *yes:
		confirm = controller.Answered(true)
	case confirm == nil:
		confirm = controller.ConfirmFunc(askConfirm)
	}
	if !c.ClearAll(confirm) {
		ui.Fprint(opt.out(), ui.Current().Muted, "nothing cleared")
		return 0
	}
	ui.OK("cleared all tasks")
	return 0
}

// askConfirm blocks on a yes/no prompt in the terminal.
func askConfirm(prompt string) bool {
	var yes bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("Yes").
				Negative("No").
				Value(&yes),
		),
	).WithTheme(huh.ThemeDracula()).Run()
	return err == nil && yes
}

func doHTML(c *controller.Controller, args []string, opt Options) int {
	if len(args) > 1 {
		ui.Fail("usage: tasklist html [file]")
		return 2
	}
	page := view.PageOptions{Title: "Tasks"}
	if len(args) == 0 {
		if err := view.RenderHTML(opt.out(), c.Render(), page); err != nil {
			ui.Fail(err.Error())
			return 1
		}
		return 0
	}
	if err := writeHTML(args[0], c.Render(), page); err != nil {
		ui.Fail("html: " + err.Error())
		return 1
	}
	ui.OK("wrote " + args[0])
	return 0
}

// writeHTML renders v into path; a failed close is a failed write.
func writeHTML(path string, v view.View, page view.PageOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := view.RenderHTML(f, v, page); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func doServe(newCtrl func(...controller.Option) *controller.Controller, logger *log.Logger, opt Options) int {
	page := &web.Page{}
	srv := web.NewServer(newCtrl(controller.WithRenderer(page)), page, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(opt.out(), "serving on http://%s (ctrl+c to stop)\n", opt.Config.Addr)
	if err := srv.ListenAndServe(ctx, opt.Config.Addr); err != nil {
		ui.Fail("serve: " + err.Error())
		return 1
	}
	return 0
}
