package cli

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/jackparrish/deskfolio/pkg/catalog"
	"github.com/jackparrish/deskfolio/pkg/follower"
	"github.com/jackparrish/deskfolio/pkg/geometry"
	"github.com/jackparrish/deskfolio/pkg/site"
	"github.com/jackparrish/deskfolio/pkg/tile"
	"github.com/jackparrish/deskfolio/pkg/workspace"

	perrors "github.com/jackparrish/deskfolio/pkg/errors"
)

// A terminal cell stands for an 8x16 pixel block of the desktop.
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

const (
	frameInterval  = 50 * time.Millisecond
	resizeDebounce = 150 * time.Millisecond

	// marqueeEvery is the number of frames per marquee step.
	marqueeEvery = 4

	// dragThreshold is how far the pointer must travel before a press
	// becomes a drag.
	dragThreshold = cellWidth
)

type (
	frameMsg  time.Time
	resizeMsg struct{ seq int }
	pageMsg   struct {
		path, title, text string
		err               error
	}
	statusMsg struct {
		text string
		err  error
	}
)

// deskPages loads what navigate tiles point at.
type deskPages interface {
	CaseText(ctx context.Context, slug string) (string, error)
	Summary(ctx context.Context, slug string) (site.CaseSummary, error)
}

// DeskOptions configures the terminal desktop.
type DeskOptions struct {
	Catalog  *catalog.Catalog
	Layout   geometry.Options
	Pointer  follower.Pointer
	Pages    deskPages
	SiteName string
	About    string

	// Open hands external links and mailto: addresses to the system.
	// When nil the target is only shown in the status line.
	Open func(target string) error

	Logger *log.Logger
}

// actionRecorder keeps the action a tile asked for until Update picks it up.
type actionRecorder struct {
	kind   catalog.ActionKind
	target string
}

func (r *actionRecorder) Navigate(path string) error {
	r.kind, r.target = catalog.KindNavigate, path
	return nil
}

func (r *actionRecorder) OpenExternal(url string) error {
	r.kind, r.target = catalog.KindExternal, url
	return nil
}

func (r *actionRecorder) ComposeEmail(addr string) error {
	r.kind, r.target = catalog.KindEmail, catalog.Action{Kind: catalog.KindEmail, Target: addr}.Href()
	return nil
}

func (r *actionRecorder) take() (catalog.ActionKind, string, bool) {
	kind, target := r.kind, r.target
	r.kind, r.target = "", ""
	return kind, target, kind != ""
}

var _ tile.Activator = (*actionRecorder)(nil)

// caseReader shows one page of text with scrolling.
type caseReader struct {
	title  string
	lines  []string
	offset int
}

// DeskModel hosts a workspace in the terminal.
type DeskModel struct {
	ws   *workspace.Workspace
	rec  *actionRecorder
	opts DeskOptions

	cols, rows int
	sized      bool
	resizeSeq  int

	focus    int
	hovered  string
	pressed  string
	pressAt  geometry.Point
	dragging bool

	frame  int
	now    time.Time
	status string

	reading bool
	reader  caseReader
}

// NewDeskModel mounts a workspace for the terminal. Call Close when the
// program exits.
func NewDeskModel(opts DeskOptions) DeskModel {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.SiteName == "" {
		opts.SiteName = appName
	}
	rec := &actionRecorder{}
	ws := workspace.New(opts.Catalog, workspace.Options{
		Viewport:  viewportFor(80, 24),
		Layout:    opts.Layout,
		Pointer:   opts.Pointer,
		Activator: rec,
		Logger:    opts.Logger,
	})
	return DeskModel{ws: ws, rec: rec, opts: opts, cols: 80, rows: 24, focus: -1}
}

// Close stops the workspace's follower loop.
func (m DeskModel) Close() { m.ws.Close() }

// Workspace exposes the hosted workspace.
func (m DeskModel) Workspace() *workspace.Workspace { return m.ws }

func viewportFor(cols, rows int) geometry.Viewport {
	return geometry.Viewport{Width: float64(cols) * cellWidth, Height: float64(rows) * cellHeight}
}

// pointAt maps a terminal cell to the desktop point at its center.
func pointAt(x, y int) geometry.Point {
	return geometry.Point{X: (float64(x) + 0.5) * cellWidth, Y: (float64(y) + 0.5) * cellHeight}
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m DeskModel) Init() tea.Cmd {
	return frameTick()
}

func (m DeskModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		if !m.sized {
			m.sized = true
			m.ws.Resize(viewportFor(m.cols, m.rows))
			return m, nil
		}
		m.resizeSeq++
		seq := m.resizeSeq
		return m, tea.Tick(resizeDebounce, func(time.Time) tea.Msg { return resizeMsg{seq: seq} })

	case resizeMsg:
		if msg.seq == m.resizeSeq {
			m.ws.Resize(viewportFor(m.cols, m.rows))
			if m.reading {
				m.reader = newCaseReader(m.reader.title, strings.Join(m.reader.lines, "\n"), m.cols)
			}
		}
		return m, nil

	case frameMsg:
		m.now = time.Time(msg)
		m.frame++
		return m, frameTick()

	case pageMsg:
		m.openPage(msg)
		return m, nil

	case statusMsg:
		m.status = msg.text
		if msg.err != nil {
			m.status = "! " + msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		if m.reading {
			return m.updateReader(msg)
		}
		return m.updateDesk(msg)

	case tea.MouseMsg:
		if m.reading {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				m.scroll(-3)
			case tea.MouseButtonWheelDown:
				m.scroll(3)
			}
			return m, nil
		}
		return m.updateMouse(msg)
	}
	return m, nil
}

func (m DeskModel) updateDesk(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.opts.Catalog.Len()
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab", "right", "l":
		if n > 0 {
			m.focus = (m.focus + 1) % n
		}
	case "shift+tab", "left", "h":
		if n > 0 {
			m.focus = (m.focus - 1 + n) % n
		}
	case "enter", " ":
		if m.focus < 0 {
			return m, nil
		}
		_, err := m.ws.Key(m.focusedID(), "enter")
		return m.dispatch(err)
	case "esc":
		m.focus = -1
		m.status = ""
	}
	return m, nil
}

func (m DeskModel) focusedID() string {
	tiles := m.opts.Catalog.Tiles()
	if m.focus < 0 || m.focus >= len(tiles) {
		return ""
	}
	return tiles[m.focus].ID
}

func (m DeskModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	p := pointAt(msg.X, msg.Y)
	m.ws.PointerMove(p)

	switch msg.Action {
	case tea.MouseActionMotion:
		if m.pressed == "" {
			m.hover(p)
			return m, nil
		}
		if !m.dragging {
			d := p.Sub(m.pressAt)
			if math.Hypot(d.X, d.Y) < dragThreshold {
				return m, nil
			}
			if err := m.ws.DragStart(m.pressed, m.pressAt); err != nil {
				return m, nil
			}
			m.dragging = true
		}
		_ = m.ws.DragMove(m.pressed, p)

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		id, ok := m.ws.HitTest(p, m.now)
		if !ok {
			return m, nil
		}
		m.pressed, m.pressAt = id, p
		m.focus = m.opts.Catalog.Index(id)

	case tea.MouseActionRelease:
		id := m.pressed
		if id == "" {
			return m, nil
		}
		m.pressed = ""
		if m.dragging {
			m.dragging = false
			_, _ = m.ws.DragEnd(id, p)
			// The drop disengaged the tile; hovering it again re-engages.
			m.hovered = ""
		}
		_, err := m.ws.Click(id)
		m.hover(p)
		return m.dispatch(err)
	}
	return m, nil
}

func (m *DeskModel) hover(p geometry.Point) {
	id, _ := m.ws.HitTest(p, m.now)
	if id == m.hovered {
		return
	}
	if m.hovered != "" {
		_ = m.ws.PointerLeave(m.hovered)
	}
	if id != "" {
		_ = m.ws.PointerEnter(id)
	}
	m.hovered = id
}

// dispatch turns the recorded tile action into a command.
func (m DeskModel) dispatch(err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.status = "! " + err.Error()
		return m, nil
	}
	kind, target, ok := m.rec.take()
	if !ok {
		return m, nil
	}
	if kind == catalog.KindNavigate {
		return m, m.navigate(target)
	}

	open := m.opts.Open
	return m, func() tea.Msg {
		if open == nil {
			return statusMsg{text: iconArrow + " " + target}
		}
		return statusMsg{text: "opened " + target, err: open(target)}
	}
}

func (m DeskModel) navigate(path string) tea.Cmd {
	pages, about := m.opts.Pages, m.opts.About
	return func() tea.Msg {
		if path == "/about" {
			return pageMsg{path: path, title: "About", text: about}
		}
		slug, ok := strings.CutPrefix(path, "/case/")
		if !ok || pages == nil {
			return pageMsg{path: path, err: perrors.New(perrors.ErrCodeNotFound, "no page at %s", path)}
		}
		ctx := context.Background()
		text, err := pages.CaseText(ctx, slug)
		if err != nil {
			return pageMsg{path: path, err: err}
		}
		title := slug
		if sum, err := pages.Summary(ctx, slug); err == nil {
			title = sum.Title
		}
		return pageMsg{path: path, title: title, text: text}
	}
}

func (m *DeskModel) openPage(msg pageMsg) {
	title, text := msg.title, msg.text
	switch {
	case perrors.IsNotFound(msg.err):
		title = "Page not found"
		text = "The page you're looking for doesn't exist.\n\nPress esc to go back to the desktop."
	case msg.err != nil:
		if m.opts.Logger != nil {
			m.opts.Logger.Error("page unavailable", "path", msg.path, "err", msg.err)
		}
		title = "This case study can't be shown right now"
		text = fmt.Sprintf("The page at %s could not be read.\n\nPress esc to go back to the desktop.", msg.path)
	}
	m.reading = true
	m.reader = newCaseReader(title, text, m.cols)
}

func newCaseReader(title, text string, width int) caseReader {
	wrapped := lipgloss.NewStyle().Width(max(width-4, 20)).Render(text)
	return caseReader{title: title, lines: strings.Split(wrapped, "\n")}
}

func (m DeskModel) updateReader(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := m.readerHeight()
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q", "backspace":
		m.reading = false
		m.reader = caseReader{}
	case "up", "k":
		m.scroll(-1)
	case "down", "j":
		m.scroll(1)
	case "pgup", "b":
		m.scroll(-page)
	case "pgdown", "f", " ":
		m.scroll(page)
	case "home", "g":
		m.reader.offset = 0
	case "end", "G":
		m.scroll(len(m.reader.lines))
	}
	return m, nil
}

func (m DeskModel) readerHeight() int {
	return max(m.rows-4, 1)
}

func (m *DeskModel) scroll(delta int) {
	last := max(len(m.reader.lines)-m.readerHeight(), 0)
	m.reader.offset = min(max(m.reader.offset+delta, 0), last)
}

// =============================================================================
// Rendering
// =============================================================================

const (
	paintPlain = iota
	paintBorder
	paintFocus
	paintDrag
	paintLabel
	paintFace
	paintCard
	paintFollower
	paintHeader
	paintDim
)

var deskPalette = []lipgloss.Style{
	paintPlain:    lipgloss.NewStyle(),
	paintBorder:   lipgloss.NewStyle().Foreground(colorGray),
	paintFocus:    lipgloss.NewStyle().Foreground(colorCyan).Bold(true),
	paintDrag:     lipgloss.NewStyle().Foreground(colorYellow).Bold(true),
	paintLabel:    lipgloss.NewStyle().Foreground(colorWhite),
	paintFace:     lipgloss.NewStyle().Foreground(colorDim),
	paintCard:     lipgloss.NewStyle().Foreground(colorBlue),
	paintFollower: lipgloss.NewStyle().Foreground(colorRed).Bold(true),
	paintHeader:   lipgloss.NewStyle().Foreground(colorCyan).Bold(true),
	paintDim:      lipgloss.NewStyle().Foreground(colorDim),
}

type cell struct {
	r     rune
	paint int
	// cont marks the right half of a wide rune.
	cont bool
}

// canvas is a grid of styled terminal cells.
type canvas struct {
	cols, rows int
	cells      [][]cell
}

func newCanvas(cols, rows int) *canvas {
	c := &canvas{cols: cols, rows: rows, cells: make([][]cell, rows)}
	for y := range c.cells {
		row := make([]cell, cols)
		for x := range row {
			row[x].r = ' '
		}
		c.cells[y] = row
	}
	return c
}

func (c *canvas) set(x, y int, r rune, paint int) {
	if y < 0 || y >= c.rows || x < 0 || x >= c.cols {
		return
	}
	row := c.cells[y]
	if row[x].cont && x > 0 {
		row[x-1] = cell{r: ' '}
	}
	if x+1 < c.cols && row[x+1].cont {
		row[x+1] = cell{r: ' '}
	}
	row[x] = cell{r: r, paint: paint}
	if runewidth.RuneWidth(r) == 2 {
		if x+1 >= c.cols {
			row[x] = cell{r: ' '}
			return
		}
		row[x+1] = cell{cont: true, paint: paint}
	}
}

// text writes s from (x, y), clipped to the canvas.
func (c *canvas) text(x, y int, s string, paint int) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		c.set(x, y, r, paint)
		x += w
	}
}

func (c *canvas) String() string {
	var b strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		paint := paintPlain
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if paint == paintPlain {
				b.WriteString(run.String())
			} else {
				b.WriteString(deskPalette[paint].Render(run.String()))
			}
			run.Reset()
		}
		for _, cl := range row {
			if cl.cont {
				continue
			}
			if cl.paint != paint {
				flush()
				paint = cl.paint
			}
			run.WriteRune(cl.r)
		}
		flush()
	}
	return b.String()
}

func (m DeskModel) View() string {
	if m.reading {
		return m.readerView()
	}
	return m.deskView()
}

func (m DeskModel) deskView() string {
	c := newCanvas(m.cols, m.rows)
	view := m.ws.Snapshot(m.now)

	c.text(1, 0, m.opts.SiteName, paintHeader)
	hint := "tab focus · enter open · drag to move · q quit"
	c.text(m.cols-runewidth.StringWidth(hint)-1, 0, hint, paintDim)
	if m.status != "" {
		c.text(1, 1, runewidth.Truncate(m.status, m.cols-2, "…"), paintLabel)
	}

	focused := m.focusedID()
	for _, t := range view.Tiles {
		m.drawTile(c, t, t.ID == focused || t.ID == view.Active)
	}

	if view.Follower != nil {
		c.set(int(view.Follower.X/cellWidth), int(view.Follower.Y/cellHeight), '◆', paintFollower)
	}
	return c.String()
}

func (m DeskModel) drawTile(c *canvas, t workspace.TileView, highlight bool) {
	x0 := int(math.Round(t.X / cellWidth))
	y0 := int(math.Round(t.Y / cellHeight))
	w := max(int(math.Round(t.W/cellWidth)), 4)
	h := max(int(math.Round(t.H/cellHeight)), 3)

	border := paintBorder
	switch {
	case t.State == tile.Dragging.String():
		border = paintDrag
	case highlight:
		border = paintFocus
	}

	inner := strings.Repeat("─", w-2)
	c.text(x0, y0, "╭"+inner+"╮", border)
	c.text(x0, y0+h-1, "╰"+inner+"╯", border)
	for y := y0 + 1; y < y0+h-1; y++ {
		c.set(x0, y, '│', border)
		c.set(x0+w-1, y, '│', border)
		c.text(x0+1, y, faceRow(t, w-2, y-y0-1, h-2), facePaint(t))
	}

	if t.HideLabel {
		return
	}
	label := tile.NewMarquee(t.Label, w)
	frame := label.Frame(m.frame / marqueeEvery)
	if !label.Scrolling() {
		pad := (w - runewidth.StringWidth(t.Label)) / 2
		frame = runewidth.FillRight(strings.Repeat(" ", pad)+t.Label, w)
	}
	c.text(x0, y0+h, frame, paintLabel)
}

func facePaint(t workspace.TileView) int {
	if t.Visual.Kind == catalog.VisualText {
		return paintCard
	}
	return paintFace
}

// faceRow returns row i of a tile face that is width cells wide and
// height rows tall.
func faceRow(t workspace.TileView, width, i, height int) string {
	mid := height / 2
	switch t.Visual.Kind {
	case catalog.VisualText:
		if i != mid {
			return strings.Repeat(" ", width)
		}
		return centered(t.Visual.Text, width)
	case catalog.VisualVideo:
		if i == mid {
			return centered("▶", width)
		}
		return strings.Repeat("▒", width)
	default:
		return strings.Repeat("░", width)
	}
}

func centered(s string, width int) string {
	s = runewidth.Truncate(s, width, "…")
	pad := (width - runewidth.StringWidth(s)) / 2
	return runewidth.FillRight(strings.Repeat(" ", pad)+s, width)
}

func (m DeskModel) readerView() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.reader.title))
	b.WriteString("\n\n")

	end := min(m.reader.offset+m.readerHeight(), len(m.reader.lines))
	for _, line := range m.reader.lines[m.reader.offset:end] {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("↑/↓ scroll  esc back  ctrl+c quit  [%d/%d]", end, len(m.reader.lines))))
	return b.String()
}

// runDesk runs the terminal desktop until the user quits or ctx ends.
func runDesk(ctx context.Context, m DeskModel) error {
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// deskCommand creates the desk command.
func (c *CLI) deskCommand() *cobra.Command {
	var (
		mode    string
		pointer string
		noOpen  bool
	)

	cmd := &cobra.Command{
		Use:   "desk",
		Short: "Open the desktop in the terminal",
		Long: `Open the desktop in the terminal.

Tiles float and can be dragged with the mouse. Tab moves the focus, Enter or
Space opens the focused tile. Case studies open as text; links and mail
tiles are handed to the system browser unless --no-open is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDesk(cmd.Context(), mode, pointer, noOpen)
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "placement mode: scatter, anchors (default: layout.mode)")
	cmd.Flags().StringVar(&pointer, "pointer", "", "follower behavior: fine, coarse (default: layout.pointer)")
	cmd.Flags().BoolVar(&noOpen, "no-open", false, "show link targets instead of opening them")

	return cmd
}

func (c *CLI) runDesk(ctx context.Context, mode, pointer string, noOpen bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	srv, release, err := c.newSite(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer release()

	opts := srv.LayoutOptions()
	if mode != "" {
		if opts.Mode, err = geometry.ParseMode(mode); err != nil {
			return err
		}
	}
	if pointer == "" {
		pointer = cfg.Layout.Pointer
	}

	// The program owns the terminal; keep log lines out of it.
	logger := c.Logger.WithPrefix("desk")
	logger.SetOutput(io.Discard)

	deskOpts := DeskOptions{
		Catalog:  srv.Catalog(),
		Layout:   opts,
		Pointer:  follower.ParsePointer(pointer),
		Pages:    srv,
		SiteName: cfg.PageSite().Name,
		About:    cfg.Site.About,
		Logger:   logger,
	}
	if !noOpen {
		deskOpts.Open = openBrowser
	}
	return runDesk(ctx, NewDeskModel(deskOpts))
}
