package editor

import (
	"fmt"
	"strings"
)

// Command names accepted in Request.Command.
const (
	CommandView       = "view"
	CommandCreate     = "create"
	CommandStrReplace = "str_replace"
	CommandInsert     = "insert"
	CommandUndoEdit   = "undo_edit"
)

// AllCommands lists the commands in the order they are documented.
var AllCommands = []string{CommandView, CommandCreate, CommandStrReplace, CommandInsert, CommandUndoEdit}

// Request is the wire format of a single editor command. Optional fields are
// pointers so an absent parameter can be told apart from an empty one.
type Request struct {
	Command       string  `json:"command" mapstructure:"command"`
	Path          string  `json:"path" mapstructure:"path"`
	ViewRange     []int   `json:"view_range,omitempty" mapstructure:"view_range"`
	FileText      *string `json:"file_text,omitempty" mapstructure:"file_text"`
	OldStr        *string `json:"old_str,omitempty" mapstructure:"old_str"`
	NewStr        *string `json:"new_str,omitempty" mapstructure:"new_str"`
	InsertLine    *int    `json:"insert_line,omitempty" mapstructure:"insert_line"`
	EnableLinting bool    `json:"enable_linting,omitempty" mapstructure:"enable_linting"`
	Encoding      string  `json:"encoding,omitempty" mapstructure:"encoding"`
}

// LineRange is an inclusive 1-based line range. End == -1 means end of file.
type LineRange struct {
	Start int
	End   int
}

// Command is a validated request. Each variant carries only its own payload.
type Command interface {
	Name() string
	Target() string
}

type ViewCommand struct {
	Path  string
	Range *LineRange
}

type CreateCommand struct {
	Path string
	Text string
}

type ReplaceCommand struct {
	Path string
	Old  string
	New  string
}

type InsertCommand struct {
	Path      string
	AfterLine int
	Text      string
}

type UndoCommand struct {
	Path string
}

func (c ViewCommand) Name() string    { return CommandView }
func (c CreateCommand) Name() string  { return CommandCreate }
func (c ReplaceCommand) Name() string { return CommandStrReplace }
func (c InsertCommand) Name() string  { return CommandInsert }
func (c UndoCommand) Name() string    { return CommandUndoEdit }

func (c ViewCommand) Target() string    { return c.Path }
func (c CreateCommand) Target() string  { return c.Path }
func (c ReplaceCommand) Target() string { return c.Path }
func (c InsertCommand) Target() string  { return c.Path }
func (c UndoCommand) Target() string    { return c.Path }

// Validate checks that the parameters required by the command are present.
func (r Request) Validate() error {
	_, err := r.ToCommand()
	return err
}

// ToCommand validates r and converts it to its command variant.
func (r Request) ToCommand() (Command, error) {
	if strings.TrimSpace(r.Path) == "" {
		return nil, newError(InvalidParameter, "", "Parameter `path` is required for command: %s", r.Command)
	}

	switch r.Command {
	case CommandView:
		cmd := ViewCommand{Path: r.Path}
		if r.ViewRange != nil {
			if len(r.ViewRange) != 2 {
				return nil, newError(InvalidParameter, r.Path, "Invalid `view_range` parameter: %v. It should be a list of two integers.", r.ViewRange)
			}
			cmd.Range = &LineRange{Start: r.ViewRange[0], End: r.ViewRange[1]}
		}
		return cmd, nil

	case CommandCreate:
		if r.FileText == nil {
			return nil, missing("file_text", r)
		}
		return CreateCommand{Path: r.Path, Text: *r.FileText}, nil

	case CommandStrReplace:
		if r.OldStr == nil || *r.OldStr == "" {
			return nil, missing("old_str", r)
		}
		cmd := ReplaceCommand{Path: r.Path, Old: *r.OldStr}
		if r.NewStr != nil {
			cmd.New = *r.NewStr
		}
		if cmd.Old == cmd.New {
			return nil, newError(InvalidParameter, r.Path, "No replacement was performed. `new_str` and `old_str` must be different.")
		}
		return cmd, nil

	case CommandInsert:
		if r.InsertLine == nil {
			return nil, missing("insert_line", r)
		}
		if r.NewStr == nil {
			return nil, missing("new_str", r)
		}
		return InsertCommand{Path: r.Path, AfterLine: *r.InsertLine, Text: *r.NewStr}, nil

	case CommandUndoEdit:
		return UndoCommand{Path: r.Path}, nil

	case "":
		return nil, newError(InvalidParameter, r.Path, "Parameter `command` is required. Allowed commands: %s", strings.Join(AllCommands, ", "))

	default:
		return nil, newError(InvalidParameter, r.Path, "Unrecognized command %s. The allowed commands are: %s", r.Command, strings.Join(AllCommands, ", "))
	}
}

func missing(param string, r Request) *Error {
	return newError(InvalidParameter, r.Path, "Parameter `%s` is required for command: %s", param, r.Command)
}

// String renders the request for logs and the CLI.
func (r Request) String() string {
	switch r.Command {
	case CommandView:
		if len(r.ViewRange) == 2 {
			return fmt.Sprintf("view %s [%d, %d]", r.Path, r.ViewRange[0], r.ViewRange[1])
		}
	case CommandInsert:
		if r.InsertLine != nil {
			return fmt.Sprintf("insert %s after line %d", r.Path, *r.InsertLine)
		}
	}
	return r.Command + " " + r.Path
}
