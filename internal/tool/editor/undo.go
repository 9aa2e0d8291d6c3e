package editor

import (
	"errors"

	"github.com/Cyclone1070/editkit/internal/tool/charset"
	"github.com/Cyclone1070/editkit/internal/tool/helper/content"
	"github.com/Cyclone1070/editkit/internal/tool/history"
)

// undo restores the most recent checkpoint using the encoding it was taken
// under. If the write fails the checkpoint is put back.
func (e *Editor) undo(abs string) (*Result, error) {
	snap, err := e.history.Pop(abs)
	if err != nil {
		if errors.Is(err, history.ErrNothingToUndo) {
			return nil, newError(NoHistory, abs, "No edit history found for %s.", abs)
		}
		return nil, wrapError(abs, "Failed to read edit history for "+abs, err)
	}

	info, statErr := e.fs.Stat(abs)
	if statErr != nil {
		info = nil
	}

	current := ""
	if data, readErr := e.fs.ReadFile(abs); readErr == nil {
		if text, decErr := charset.Decode(data, snap.Encoding); decErr == nil {
			current = content.ParseDocument(text).Text
		}
	}

	if err := e.writeText(abs, snap.Content, snap.Encoding, permOf(info)); err != nil {
		e.history.Restore(abs, snap)
		return nil, err
	}
	e.encodings.Remember(abs, charset.Resolution{Encoding: snap.Encoding})

	restored := content.ParseDocument(snap.Content)
	return &Result{
		Message:  undoHeader(abs),
		Snippet:  numberLines(content.Lines(restored.Text), 1),
		Encoding: snap.Encoding,
		Diff:     unifiedDiff(abs, current, restored.Text),
	}, nil
}
