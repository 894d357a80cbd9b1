package memhost

import "github.com/fwojciec/diffpane"

func (h *Host) editable(buf diffpane.BufferID) (*Buffer, error) {
	b, ok := h.Buffer(buf)
	if !ok {
		return nil, ErrUnknownBuffer
	}
	if b.readOnly {
		return nil, ErrReadOnly
	}
	return b, nil
}

// InsertLines inserts texts before line at of buf.
func (h *Host) InsertLines(buf diffpane.BufferID, at int, texts ...string) error {
	b, err := h.editable(buf)
	if err != nil {
		return err
	}
	o := op{kind: opInsert, line: at, lines: texts}
	h.apply(b, o, diffpane.ActionUser)
	b.record(group{o})
	return nil
}

// DeleteLines removes count whole lines of buf starting at first.
func (h *Host) DeleteLines(buf diffpane.BufferID, first, count int) error {
	b, err := h.editable(buf)
	if err != nil {
		return err
	}
	o := op{kind: opDelete, line: first, lines: make([]string, count)}
	o = h.apply(b, o, diffpane.ActionUser)
	if len(o.lines) > 0 {
		b.record(group{o})
	}
	return nil
}

// ReplaceLines replaces count lines of buf starting at first with texts as
// a single undo unit.
func (h *Host) ReplaceLines(buf diffpane.BufferID, first, count int, texts ...string) error {
	b, err := h.editable(buf)
	if err != nil {
		return err
	}
	del := h.apply(b, op{kind: opDelete, line: first, lines: make([]string, count)}, diffpane.ActionUser)
	ins := op{kind: opInsert, line: first, lines: texts}
	h.apply(b, ins, diffpane.ActionUser)
	b.record(group{del, ins})
	return nil
}

// SetLine replaces the text of a single line of buf.
func (h *Host) SetLine(buf diffpane.BufferID, n int, text string) error {
	b, err := h.editable(buf)
	if err != nil {
		return err
	}
	if b.lineAt(n) == nil {
		return nil
	}
	o := h.apply(b, op{kind: opSet, line: n, text: text}, diffpane.ActionUser)
	b.record(group{o})
	return nil
}

// Undo reverts the last edit of buf.
func (h *Host) Undo(buf diffpane.BufferID) error {
	b, err := h.editable(buf)
	if err != nil {
		return err
	}
	if len(b.undoStack) == 0 {
		return ErrNothingToUndo
	}
	g := b.undoStack[len(b.undoStack)-1]
	b.undoStack = b.undoStack[:len(b.undoStack)-1]
	for i := len(g) - 1; i >= 0; i-- {
		h.apply(b, g[i].inverse(), diffpane.ActionUndo)
	}
	b.redoStack = append(b.redoStack, g)
	b.modified = true
	return nil
}

// Redo reapplies the last undone edit of buf.
func (h *Host) Redo(buf diffpane.BufferID) error {
	b, err := h.editable(buf)
	if err != nil {
		return err
	}
	if len(b.redoStack) == 0 {
		return ErrNothingToRedo
	}
	g := b.redoStack[len(b.redoStack)-1]
	b.redoStack = b.redoStack[:len(b.redoStack)-1]
	for _, o := range g {
		h.apply(b, o, diffpane.ActionRedo)
	}
	b.undoStack = append(b.undoStack, g)
	b.modified = true
	return nil
}

// apply performs o on b and reports it to the listener. It returns o with
// the deleted or replaced text filled in.
func (h *Host) apply(b *Buffer, o op, action diffpane.EditAction) op {
	switch o.kind {
	case opInsert:
		if len(o.lines) == 0 {
			return o
		}
		o.line = clamp(o.line, 0, len(b.lines)-1)
		b.insertLines(o.line, o.lines)
		h.modified(b, diffpane.Modification{
			Type:       diffpane.ModInsertText,
			Action:     action,
			Line:       o.line,
			LinesAdded: len(o.lines),
		})
	case opDelete:
		count := clamp(len(o.lines), 0, len(b.lines)-1-o.line)
		if count == 0 {
			o.lines = nil
			return o
		}
		h.modified(b, diffpane.Modification{
			Type:    diffpane.ModBeforeDelete,
			Action:  action,
			Line:    o.line,
			EndLine: o.line + count,
		})
		o.lines = b.deleteLines(o.line, count)
		h.modified(b, diffpane.Modification{
			Type:       diffpane.ModDeleteText,
			Action:     action,
			Line:       o.line,
			LinesAdded: -count,
		})
	case opSet:
		o.old = b.setLine(o.line, o.text)
		h.modified(b, diffpane.Modification{
			Type:   diffpane.ModInsertText,
			Action: action,
			Line:   o.line,
		})
	}
	return o
}

func (h *Host) modified(b *Buffer, mod diffpane.Modification) {
	if h.listener != nil {
		h.listener.OnModified(b.id, mod)
	}
}
