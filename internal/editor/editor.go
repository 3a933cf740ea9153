// Package editor drives a buffer from logical key presses: cursor movement,
// scrolling, the minibuffer prompt and the find, save and quit flows. It knows
// nothing about the terminal; callers translate their key events into Key and
// paint the Frame it produces.
package editor

import (
	"bytes"
	"errors"
	"fmt"
	iofs "io/fs"
	"time"

	"go.uber.org/zap"

	"kilo-tui/internal/buffer"
	"kilo-tui/internal/syntax"
)

// Version is shown on the welcome line of an empty buffer.
const Version = "1.0"

// Store reads and writes whole files.
type Store interface {
	LoadLines(path string) ([][]byte, error)
	SaveLines(path string, data []byte) (int, error)
}

// Options tune the editor behaviour.
type Options struct {
	TabStop       int
	QuitTimes     int
	StatusTimeout time.Duration
	Highlight     bool
	// QuitKey names the quit key in the unsaved-changes warning.
	QuitKey string
}

// DefaultOptions returns the classic kilo settings.
func DefaultOptions() Options {
	return Options{
		TabStop:       buffer.DefaultTabStop,
		QuitTimes:     3,
		StatusTimeout: 5 * time.Second,
		Highlight:     true,
		QuitKey:       "Ctrl-Q",
	}
}

type viewState struct {
	cx, cy         int
	rowoff, coloff int
}

// Editor is the state of one editing session. It is not safe for concurrent
// use; every call is expected from the UI loop.
type Editor struct {
	buf      *buffer.Buffer
	store    Store
	registry *syntax.Registry
	opts     Options
	log      *zap.Logger
	now      func() time.Time

	cx, cy     int // raw cursor
	rx         int // rendered cursor column
	rowoff     int
	coloff     int
	screenRows int
	screenCols int

	filename string
	synced   []byte // file content as last read or written
	status   string
	statusAt time.Time

	quitLeft int

	prompt     *prompt
	search     *buffer.Session
	findOrigin viewState
}

// New creates an editor with an empty buffer.
func New(store Store, registry *syntax.Registry, opts Options, log *zap.Logger) *Editor {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.QuitTimes < 0 {
		opts.QuitTimes = 0
	}
	if opts.QuitKey == "" {
		opts.QuitKey = DefaultOptions().QuitKey
	}
	return &Editor{
		buf:        buffer.New(opts.TabStop),
		store:      store,
		registry:   registry,
		opts:       opts,
		log:        log,
		now:        time.Now,
		screenRows: 1,
		screenCols: 1,
		quitLeft:   opts.QuitTimes,
		search:     buffer.NewSession(),
	}
}

// Buffer returns the underlying buffer.
func (e *Editor) Buffer() *buffer.Buffer { return e.buf }

// Filename returns the file being edited, empty for an unnamed buffer.
func (e *Editor) Filename() string { return e.filename }

// Cursor returns the raw cursor position.
func (e *Editor) Cursor() buffer.Pos { return buffer.Pos{Row: e.cy, Col: e.cx} }

// Dirty reports unsaved changes.
func (e *Editor) Dirty() bool { return e.buf.Dirty() > 0 }

// Prompting reports whether the minibuffer prompt owns the keyboard.
func (e *Editor) Prompting() bool { return e.prompt != nil }

// SetSize sets the terminal size. Two lines are reserved for the status and
// message bars.
func (e *Editor) SetSize(width, height int) {
	e.screenCols = max(width, 1)
	e.screenRows = max(height-2, 1)
	e.scroll()
}

// SetStatus sets the message bar text.
func (e *Editor) SetStatus(format string, args ...any) {
	e.status = fmt.Sprintf(format, args...)
	e.statusAt = e.now()
}

// Message returns the message bar text while it has not expired.
func (e *Editor) Message() string {
	if e.status == "" || e.now().Sub(e.statusAt) >= e.opts.StatusTimeout {
		return ""
	}
	return e.status
}

// Open loads path into the buffer. A missing file opens an empty buffer that
// will be created on save.
func (e *Editor) Open(path string) error {
	lines, err := e.store.LoadLines(path)
	if err != nil {
		if !errors.Is(err, iofs.ErrNotExist) {
			return fmt.Errorf("open %s: %w", path, err)
		}
		e.log.Info("new file", zap.String("path", path))
		lines = nil
	}
	e.cancelPrompt()
	e.filename = path
	e.selectProfile()
	e.buf.Load(lines)
	e.synced = e.buf.Serialize()
	e.cx, e.cy, e.rx = 0, 0, 0
	e.rowoff, e.coloff = 0, 0
	e.log.Debug("opened", zap.String("path", path), zap.Int("rows", e.buf.NumRows()))
	return nil
}

// Reload re-reads the current file, keeping the cursor where possible. An
// open prompt is cancelled first.
func (e *Editor) Reload() error {
	lines, err := e.store.LoadLines(e.filename)
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	e.cancelPrompt()
	e.buf.Load(lines)
	e.synced = e.buf.Serialize()
	e.cy = min(e.cy, e.buf.NumRows())
	e.cx = min(e.cx, e.rowLen(e.cy))
	e.scroll()
	e.log.Info("reloaded", zap.String("path", e.filename), zap.Int("rows", e.buf.NumRows()))
	return nil
}

// DiskChanged reports whether the file on disk differs from the content the
// buffer was last loaded from or saved as.
func (e *Editor) DiskChanged() (bool, error) {
	lines, err := e.store.LoadLines(e.filename)
	if err != nil {
		return false, err
	}
	var disk bytes.Buffer
	for _, line := range lines {
		disk.Write(line)
		disk.WriteByte('\n')
	}
	return !bytes.Equal(disk.Bytes(), e.synced), nil
}

// HandleKey applies one key press. While a prompt is open the key goes to the
// prompt.
func (e *Editor) HandleKey(k Key) {
	defer e.scroll()
	if e.prompt != nil {
		e.stepPrompt(k)
		return
	}
	e.quitLeft = e.opts.QuitTimes

	switch k.Kind {
	case KeyEnter:
		e.moveTo(e.buf.InsertNewline(e.cy, e.cx))
	case KeyHome:
		e.cx = 0
	case KeyEnd:
		e.cx = e.rowLen(e.cy)
	case KeyBackspace:
		e.moveTo(e.buf.DeleteChar(e.cy, e.cx))
	case KeyDelete:
		e.moveTo(e.buf.DeleteForward(e.cy, e.cx))
	case KeyPageUp, KeyPageDown:
		e.page(k.Kind)
	case KeyUp, KeyDown, KeyLeft, KeyRight:
		e.moveCursor(k.Kind)
	case KeyCtrl:
		if k.Rune == 'h' {
			e.moveTo(e.buf.DeleteChar(e.cy, e.cx))
		}
	case KeyTab:
		e.moveTo(e.buf.InsertChar(e.cy, e.cx, '\t'))
	case KeyRune:
		if k.printable() {
			e.moveTo(e.buf.InsertChar(e.cy, e.cx, byte(k.Rune)))
		}
	}
}

// Save writes the buffer to its file. An unnamed buffer asks for a name first.
func (e *Editor) Save() {
	if e.prompt != nil {
		return
	}
	e.quitLeft = e.opts.QuitTimes
	if e.filename == "" {
		e.openPrompt(promptSaveAs, "Save as: %s (ESC to cancel)")
		return
	}
	e.write()
}

// StartFind opens the incremental search prompt.
func (e *Editor) StartFind() {
	if e.prompt != nil {
		return
	}
	e.quitLeft = e.opts.QuitTimes
	e.findOrigin = viewState{cx: e.cx, cy: e.cy, rowoff: e.rowoff, coloff: e.coloff}
	e.search.Reset()
	e.openPrompt(promptFind, "Search: %s (ESC/Arrows/Enter)")
}

// RequestQuit reports whether the editor may exit now. With unsaved changes
// the request must be repeated QuitTimes more times; any other key in between
// starts the count again.
func (e *Editor) RequestQuit() bool {
	if e.Dirty() && e.quitLeft > 0 {
		e.SetStatus("WARNING: Unsaved changes. Press %s %d more times to quit.", e.opts.QuitKey, e.quitLeft)
		e.quitLeft--
		return false
	}
	return true
}

func (e *Editor) write() {
	data := e.buf.Serialize()
	n, err := e.store.SaveLines(e.filename, data)
	if err != nil {
		e.log.Warn("save failed", zap.String("path", e.filename), zap.Error(err))
		e.SetStatus("Can't save! I/O error: %v", err)
		return
	}
	e.buf.MarkClean()
	e.synced = data
	e.log.Info("saved", zap.String("path", e.filename), zap.Int("bytes", n))
	e.SetStatus("%d bytes written to disk", n)
}

func (e *Editor) selectProfile() {
	var p *syntax.Profile
	if e.opts.Highlight && e.filename != "" {
		p = e.registry.Select(e.filename)
	}
	e.buf.SetProfile(p)
}

func (e *Editor) rowLen(row int) int {
	if r := e.buf.Row(row); r != nil {
		return r.Len()
	}
	return 0
}

func (e *Editor) moveTo(p buffer.Pos) {
	e.cy, e.cx = p.Row, p.Col
}

func (e *Editor) moveCursor(kind KeyKind) {
	switch kind {
	case KeyLeft:
		if e.cx != 0 {
			e.cx--
		} else if e.cy > 0 {
			e.cy--
			e.cx = e.rowLen(e.cy)
		}
	case KeyRight:
		if e.cy < e.buf.NumRows() {
			if e.cx < e.rowLen(e.cy) {
				e.cx++
			} else {
				e.cy++
				e.cx = 0
			}
		}
	case KeyUp:
		if e.cy != 0 {
			e.cy--
		}
	case KeyDown:
		if e.cy < e.buf.NumRows() {
			e.cy++
		}
	}
	e.cx = min(e.cx, e.rowLen(e.cy))
}

func (e *Editor) page(kind KeyKind) {
	dir := KeyUp
	if kind == KeyPageUp {
		e.cy = e.rowoff
	} else {
		dir = KeyDown
		e.cy = min(e.rowoff+e.screenRows-1, e.buf.NumRows())
	}
	for range e.screenRows {
		e.moveCursor(dir)
	}
}

// scroll keeps the cursor inside the visible window.
func (e *Editor) scroll() {
	e.rx = 0
	if e.cy < e.buf.NumRows() {
		e.rx = e.buf.RawToRendered(e.cy, e.cx)
	}
	if e.cy < e.rowoff {
		e.rowoff = e.cy
	}
	if e.cy >= e.rowoff+e.screenRows {
		e.rowoff = e.cy - e.screenRows + 1
	}
	if e.rx < e.coloff {
		e.coloff = e.rx
	}
	if e.rx >= e.coloff+e.screenCols {
		e.coloff = e.rx - e.screenCols + 1
	}
}
