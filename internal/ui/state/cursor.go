package state

// MoveCursorUp moves the cursor one row up, wrapping to the last item.
func (l *List) MoveCursorUp() bool {
	n := len(l.visible)
	if n == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	if l.Cursor > 0 {
		l.Cursor--
	} else {
		l.Cursor = n - 1
	}
	l.EnsureCursorVisible()
	return old != l.Cursor
}

// MoveCursorDown moves the cursor one row down, wrapping to the first item.
func (l *List) MoveCursorDown() bool {
	n := len(l.visible)
	if n == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	if l.Cursor < n-1 {
		l.Cursor++
	} else {
		l.Cursor = 0
	}
	l.EnsureCursorVisible()
	return old != l.Cursor
}

// MoveCursorHome moves the cursor to the first item.
func (l *List) MoveCursorHome() bool {
	if len(l.visible) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = 0
	l.EnsureCursorVisible()
	return old != l.Cursor
}

// MoveCursorEnd moves the cursor to the last item.
func (l *List) MoveCursorEnd() bool {
	n := len(l.visible)
	if n == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = n - 1
	l.EnsureCursorVisible()
	return old != l.Cursor
}

// MoveCursorPageUp moves the cursor up by one viewport of rows.
func (l *List) MoveCursorPageUp() bool {
	return l.moveCursorTo(l.pageTarget(-1))
}

// MoveCursorPageDown moves the cursor down by one viewport of rows.
func (l *List) MoveCursorPageDown() bool {
	return l.moveCursorTo(l.pageTarget(1))
}

// MoveCursorTo places the cursor on visible index i.
func (l *List) MoveCursorTo(i int) bool {
	if i < 0 || i >= len(l.visible) {
		return false
	}
	old := l.Cursor
	l.Cursor = i
	l.EnsureCursorVisible()
	return old != l.Cursor
}

func (l *List) moveCursorTo(target int) bool {
	if len(l.visible) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = target
	l.clampCursor()
	l.EnsureCursorVisible()
	return l.Cursor != old
}

// pageTarget returns the row one viewport height above (dir < 0) or below
// the cursor, measured in screen rows so variable item heights page evenly.
func (l *List) pageTarget(dir int) int {
	n := len(l.visible)
	if n == 0 {
		return 0
	}
	cur := l.Cursor
	if cur < 0 {
		cur = 0
	}
	if l.Viewport.Height <= 0 {
		if dir < 0 {
			return 0
		}
		return n - 1
	}
	y := l.Viewport.RowTop(n, cur) + dir*l.Viewport.Height
	if y < 0 {
		return 0
	}
	if y >= l.Viewport.TotalHeight(n) {
		return n - 1
	}
	target := l.Viewport.IndexAt(n, y)
	if target == cur {
		target += dir
	}
	return target
}

func (l *List) clampCursor() {
	n := len(l.visible)
	if n == 0 {
		l.Cursor = 0
		return
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= n {
		l.Cursor = n - 1
	}
}

// EnsureCursorVisible adjusts the scroll offset so the cursor row stays visible.
func (l *List) EnsureCursorVisible() {
	l.clampCursor()
	if len(l.visible) == 0 {
		l.Viewport.Scroll = 0
		return
	}
	l.Viewport.EnsureVisible(len(l.visible), l.Cursor)
}
