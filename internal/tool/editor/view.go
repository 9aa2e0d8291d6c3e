package editor

import (
	"context"

	"github.com/Cyclone1070/editkit/internal/tool/helper/content"
)

func (e *Editor) view(ctx context.Context, cmd ViewCommand, abs, encoding string) (*Result, error) {
	info, err := e.stat(abs)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		if cmd.Range != nil {
			return nil, newError(InvalidParameter, abs, "The `view_range` parameter is not allowed when `path` points to a directory.")
		}
		listing, err := e.lister.List(ctx, abs)
		if err != nil {
			return nil, wrapError(abs, "Failed to list "+abs, err)
		}
		header, body, note := renderListing(listing)
		return &Result{Message: header, Snippet: body, Note: note}, nil
	}

	doc, _, err := e.readText(abs, encoding)
	if err != nil {
		return nil, err
	}
	lines := content.Lines(doc.Text)

	if cmd.Range == nil {
		return &Result{Message: viewHeader(abs), Snippet: numberLines(lines, 1)}, nil
	}

	start, end, err := checkRange(abs, *cmd.Range, len(lines))
	if err != nil {
		return nil, err
	}
	return &Result{Message: viewHeader(abs), Snippet: numberLines(lines[start-1:end], start)}, nil
}

// checkRange validates r against a file of total lines and resolves End == -1.
func checkRange(abs string, r LineRange, total int) (int, int, error) {
	if r.Start < 1 || r.Start > total {
		return 0, 0, newError(InvalidLine, abs,
			"Invalid `view_range` parameter: [%d, %d]. Its first element `%d` should be within the range of lines of the file: [1, %d].",
			r.Start, r.End, r.Start, total)
	}
	if r.End == -1 {
		return r.Start, total, nil
	}
	if r.End < r.Start {
		return 0, 0, newError(InvalidLine, abs,
			"Invalid `view_range` parameter: [%d, %d]. Its second element `%d` should be greater than or equal to the first element `%d`.",
			r.Start, r.End, r.End, r.Start)
	}
	if r.End > total {
		return 0, 0, newError(InvalidLine, abs,
			"Invalid `view_range` parameter: [%d, %d]. Its second element `%d` should be smaller than the number of lines in the file: `%d`.",
			r.Start, r.End, r.End, total)
	}
	return r.Start, r.End, nil
}
