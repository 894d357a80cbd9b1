package session

import "github.com/fwojciec/diffpane"

// isAlignmentNeeded reports whether folding moved the display rows of
// matching records apart. Only records from the first visible line of view
// through one screen below the viewport are checked.
func isAlignmentNeeded(h diffpane.ViewHost, view diffpane.ViewID, alignment diffpane.Alignment) bool {
	firstRow := h.FirstVisibleLine(view)
	lastRow := firstRow + 2*h.LinesOnScreen(view)

	firstLine := h.DocLineFromVisible(view, firstRow)
	lastLine := h.DocLineFromVisible(view, lastRow)

	for _, rec := range alignment {
		line := rec.Side(view).Line
		if line >= firstLine && rec.Main.DiffMask == rec.Sub.DiffMask &&
			h.VisibleFromDocLine(diffpane.MainView, rec.Main.Line) != h.VisibleFromDocLine(diffpane.SubView, rec.Sub.Line) {
			return true
		}
		if line > lastLine {
			break
		}
	}
	return false
}

// alignDiffs pads the views so that paired records land on the same display
// row. Folds are expanded first. When consecutive records share a line on
// the side that needs padding, only the last of them pads it.
func alignDiffs(h diffpane.ViewHost, alignment diffpane.Alignment) {
	h.ExpandAllFolds(diffpane.MainView)
	h.ExpandAllFolds(diffpane.SubView)

	mainEnd := h.LineCount(diffpane.MainView) - 1
	subEnd := h.LineCount(diffpane.SubView) - 1

	n := len(alignment)
	for i := 0; i < n; i++ {
		rec := alignment[i]
		if rec.Main.Line > mainEnd || rec.Sub.Line > subEnd {
			break
		}

		h.SetPadding(diffpane.MainView, rec.Main.Line, 0)
		h.SetPadding(diffpane.SubView, rec.Sub.Line, 0)

		mismatch := h.VisibleFromDocLine(diffpane.MainView, rec.Main.Line) -
			h.VisibleFromDocLine(diffpane.SubView, rec.Sub.Line)

		switch {
		case mismatch > 0:
			if i+1 < n && alignment[i+1].Sub.Line == rec.Sub.Line {
				continue
			}
			addBlankSection(h, diffpane.SubView, rec.Sub.Line, mismatch)
		case mismatch < 0:
			if i+1 < n && alignment[i+1].Main.Line == rec.Main.Line {
				continue
			}
			addBlankSection(h, diffpane.MainView, rec.Main.Line, -mismatch)
		}
	}
}

func addBlankSection(h diffpane.ViewHost, view diffpane.ViewID, line, rows int) {
	h.SetPadding(view, line, h.Padding(view, line)+rows)
}

// mapLine translates a line of view into the other view through the
// alignment records preceding it.
func mapLine(alignment diffpane.Alignment, view diffpane.ViewID, line int) int {
	other := view.Other()
	mapped := line
	for _, rec := range alignment {
		from := rec.Side(view).Line
		if from > line {
			break
		}
		mapped = rec.Side(other).Line + (line - from)
	}
	return mapped
}

// spliceAlignment replaces the records of a re-diffed window. Records before
// the window are kept, fresh holds the records of the window, and records
// after it are shifted by the number of lines each view gained.
func spliceAlignment(old, fresh diffpane.Alignment, main, sub diffpane.Section, mainDelta, subDelta int) diffpane.Alignment {
	mainEnd := main.Off + main.Len
	subEnd := sub.Off + sub.Len

	out := make(diffpane.Alignment, 0, len(old)+len(fresh))
	for _, rec := range old {
		if rec.Main.Line < main.Off && rec.Sub.Line < sub.Off {
			out = append(out, rec)
		}
	}
	for _, rec := range fresh {
		if rec.Main.Line >= main.Off && rec.Main.Line <= mainEnd &&
			rec.Sub.Line >= sub.Off && rec.Sub.Line <= subEnd {
			out = append(out, rec)
		}
	}
	for _, rec := range old {
		if rec.Main.Line >= mainEnd-mainDelta && rec.Sub.Line >= subEnd-subDelta {
			rec.Main.Line += mainDelta
			rec.Sub.Line += subDelta
			out = append(out, rec)
		}
	}
	return out
}
