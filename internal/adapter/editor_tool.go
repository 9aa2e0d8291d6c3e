// Package adapter exposes the editor to callers that speak in loosely typed
// argument maps, such as LLM tool calls and the JSON-lines server.
package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Cyclone1070/editkit/internal/tool"
	"github.com/Cyclone1070/editkit/internal/tool/editor"
	"github.com/mitchellh/mapstructure"
)

// ToolName is the name the editor is declared under.
const ToolName = "str_replace_editor"

const toolDescription = `Custom editing tool for viewing, creating and editing files.
* State is persistent across command calls.
* If path is a file, view displays the result of applying cat -n. If path is a directory, view lists non-hidden files and directories.
* The create command cannot be used if the specified path already exists as a file with content.
* The undo_edit command reverts the last edit made to the file at path.
* Files keep their original character encoding.

Notes for using the str_replace command:
* The old_str parameter should match EXACTLY one or more consecutive lines from the original file. Be mindful of whitespaces!
* If the old_str parameter is not unique in the file, the replacement will not be performed. Include enough context to make it unique.
* The new_str parameter should contain the edited lines that should replace the old_str.`

// executor is the editor operation the tool wraps.
type executor interface {
	Execute(ctx context.Context, req editor.Request) *editor.Result
}

// Response is the JSON shape returned to callers.
type Response struct {
	*editor.Result
	Output string `json:"output"`
}

// EditorTool adapts the editor to map-based tool calls.
type EditorTool struct {
	editor executor
}

// NewEditorTool creates an EditorTool.
func NewEditorTool(ed executor) *EditorTool {
	if ed == nil {
		panic("editor is required")
	}
	return &EditorTool{editor: ed}
}

// Name implements Tool.
func (t *EditorTool) Name() string {
	return ToolName
}

// Declaration implements Tool.
func (t *EditorTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name:        ToolName,
		Description: toolDescription,
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"command": {
					Type:        tool.TypeString,
					Description: "The command to run.",
					Enum:        editor.AllCommands,
				},
				"path": {Type: tool.TypeString, Description: "Absolute path to file or directory."},
				"file_text": {
					Type:        tool.TypeString,
					Description: "Required parameter of `create` command, with the content of the file to be created.",
				},
				"old_str": {
					Type:        tool.TypeString,
					Description: "Required parameter of `str_replace` command containing the string in `path` to replace.",
				},
				"new_str": {
					Type:        tool.TypeString,
					Description: "Optional parameter of `str_replace` command containing the new string (if not given, no string will be added). Required parameter of `insert` command containing the string to insert.",
				},
				"insert_line": {
					Type:        tool.TypeInteger,
					Description: "Required parameter of `insert` command. The `new_str` will be inserted AFTER the line `insert_line` of `path`.",
				},
				"view_range": {
					Type:        tool.TypeArray,
					Description: "Optional parameter of `view` command when `path` points to a file. [start_line, end_line] shows that range, 1-indexed; end_line -1 shows all lines from start_line.",
					Items:       &tool.Schema{Type: tool.TypeInteger},
				},
				"enable_linting": {Type: tool.TypeBoolean, Description: "Run the configured linter after a successful edit."},
				"encoding": {Type: tool.TypeString, Description: "Optional encoding override. Normally detected automatically."},
			},
			Required: []string{"command", "path"},
		},
	}
}

// Execute decodes args, runs the command and returns the JSON Response.
// Command failures are part of the Response; only undecodable arguments
// produce an error.
func (t *EditorTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	req, err := DecodeRequest(args)
	if err != nil {
		return "", err
	}

	bytes, err := json.Marshal(Run(ctx, t.editor, req))
	if err != nil {
		return "", fmt.Errorf("failed to marshal response: %w", err)
	}
	return string(bytes), nil
}

// Run executes req and wraps the result with its rendered output.
func Run(ctx context.Context, ed executor, req editor.Request) Response {
	res := ed.Execute(ctx, req)
	return Response{Result: res, Output: res.Output()}
}

// DecodeRequest converts a loosely typed argument map into an editor.Request.
// Unknown keys are rejected so typos surface instead of being ignored.
func DecodeRequest(args map[string]any) (editor.Request, error) {
	var req editor.Request
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &req,
		ErrorUnused: true,
	})
	if err != nil {
		return editor.Request{}, err
	}
	if err := decoder.Decode(args); err != nil {
		return editor.Request{}, fmt.Errorf("invalid arguments: %w", err)
	}
	return req, nil
}

// Display picks how a front end should show res.
func Display(res *editor.Result) tool.ToolDisplay {
	if res.Success && res.Diff != "" {
		added, removed := countChanges(res.Diff)
		return tool.DiffDisplay{Diff: res.Diff, AddedLines: added, RemovedLines: removed}
	}
	return tool.StringDisplay(res.Output())
}

func countChanges(diff string) (added, removed int) {
	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
			added++
		} else if strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---") {
			removed++
		}
	}
	return added, removed
}
