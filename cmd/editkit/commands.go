package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Cyclone1070/editkit/internal/adapter"
	"github.com/Cyclone1070/editkit/internal/config"
	"github.com/Cyclone1070/editkit/internal/tool"
	"github.com/Cyclone1070/editkit/internal/tool/editor"
	"github.com/spf13/cobra"
)

// errCommandFailed signals that the editor reported a failure. The report has
// already been printed, so main only sets the exit code.
var errCommandFailed = errors.New("command failed")

// maxRequestLine bounds one JSON request read by serve.
const maxRequestLine = 64 * 1024 * 1024

// CLI represents the editkit command line interface.
type CLI struct {
	rootCmd *cobra.Command
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer

	configPath string
	workspace  string
	verbose    bool
}

// NewCLI creates the command tree bound to the given streams.
func NewCLI(stdin io.Reader, stdout, stderr io.Writer) *CLI {
	c := &CLI{stdin: stdin, stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:           "editkit",
		Short:         "Encoding-aware text file editor for tool-driven agents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVar(&c.configPath, "config", "", "Path to a JSON config file (default ~/.config/editkit/config.json)")
	rootCmd.PersistentFlags().StringVar(&c.workspace, "workspace", "", "Restrict edits to this directory")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(c.newExecCmd())
	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newToolsCmd())

	c.rootCmd = rootCmd
	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

func (c *CLI) logger() *slog.Logger {
	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(c.stderr, &slog.HandlerOptions{Level: level}))
}

func (c *CLI) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.NewLoader().LoadFile(c.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if c.workspace != "" {
		cfg.Editor.WorkspaceRoot = c.workspace
	}
	return cfg, nil
}

func (c *CLI) newEditor() (*editor.Editor, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return editor.NewFromConfig(cfg, c.logger())
}

func (c *CLI) newExecCmd() *cobra.Command {
	var req editor.Request
	var fileText, oldStr, newStr string
	var insertLine int
	var showDiff bool

	cmd := &cobra.Command{
		Use:   "exec",
		Short: "Run a single editor command and print its report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("file-text") {
				req.FileText = &fileText
			}
			if flags.Changed("old-str") {
				req.OldStr = &oldStr
			}
			if flags.Changed("new-str") {
				req.NewStr = &newStr
			}
			if flags.Changed("insert-line") {
				req.InsertLine = &insertLine
			}

			ed, err := c.newEditor()
			if err != nil {
				return err
			}

			res := ed.Execute(cmd.Context(), req)
			printResult(c.stdout, res, showDiff)
			if !res.Success {
				return errCommandFailed
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&req.Command, "command", "c", "", "One of: view, create, str_replace, insert, undo_edit")
	f.StringVarP(&req.Path, "path", "p", "", "Absolute path of the file or directory")
	f.IntSliceVar(&req.ViewRange, "view-range", nil, "Line range for view, e.g. 3,-1")
	f.StringVar(&fileText, "file-text", "", "Content for create")
	f.StringVar(&oldStr, "old-str", "", "Text to replace for str_replace")
	f.StringVar(&newStr, "new-str", "", "Replacement text for str_replace or text to insert")
	f.IntVar(&insertLine, "insert-line", 0, "Line after which insert places new-str")
	f.StringVar(&req.Encoding, "encoding", "", "Override the detected encoding")
	f.BoolVar(&req.EnableLinting, "lint", false, "Run the configured linter after the edit")
	f.BoolVar(&showDiff, "diff", false, "Print the unified diff of an edit")
	return cmd
}

func (c *CLI) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Read JSON requests from stdin, one per line, and write JSON results to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ed, err := c.newEditor()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), adapter.NewEditorTool(ed), c.stdin, c.stdout, c.logger())
		},
	}
}

func (c *CLI) newToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the tool declarations as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ed, err := c.newEditor()
			if err != nil {
				return err
			}
			reg := adapter.NewRegistry(adapter.NewEditorTool(ed))
			enc := json.NewEncoder(c.stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(reg.Declarations())
		},
	}
}

// serve handles requests until in is exhausted or ctx is cancelled. Requests
// run one at a time so edits to the same file apply in arrival order.
func serve(ctx context.Context, t *adapter.EditorTool, in io.Reader, out io.Writer, logger *slog.Logger) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRequestLine)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var args map[string]any
		var resp string
		err := json.Unmarshal(line, &args)
		if err == nil {
			resp, err = t.Execute(ctx, args)
		}
		if err != nil {
			logger.Debug("rejected request", "error", err)
			resp = invalidRequest(err)
		}

		if _, err := fmt.Fprintln(out, resp); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}
	return scanner.Err()
}

// printResult writes the report followed, for edits, by a change summary
// and optionally the unified diff.
func printResult(w io.Writer, res *editor.Result, showDiff bool) {
	fmt.Fprintln(w, res.Output())
	d, ok := adapter.Display(res).(tool.DiffDisplay)
	if !ok {
		return
	}
	fmt.Fprintf(w, "\n%d line(s) added, %d line(s) removed\n", d.AddedLines, d.RemovedLines)
	if showDiff {
		fmt.Fprint(w, d.Diff)
	}
}

func invalidRequest(err error) string {
	res := &editor.Result{Kind: editor.InvalidParameter, Message: err.Error()}
	bytes, _ := json.Marshal(adapter.Response{Result: res, Output: res.Output()})
	return string(bytes)
}
