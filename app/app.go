package app

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/miosa/osa-vscroll/config"
	"github.com/miosa/osa-vscroll/msg"
	"github.com/miosa/osa-vscroll/source"
	"github.com/miosa/osa-vscroll/style"
	"github.com/miosa/osa-vscroll/ui/common"
	"github.com/miosa/osa-vscroll/ui/header"
	"github.com/miosa/osa-vscroll/ui/row"
	"github.com/miosa/osa-vscroll/ui/status"
	"github.com/miosa/osa-vscroll/ui/vlist"
	"github.com/miosa/osa-vscroll/vscroll"
)

// ProfileDir is set by main to the user's profile directory path. Settings
// toggled at runtime are saved there when it is non-empty.
var ProfileDir string

const loadTimeout = 15 * time.Second

// Loader fetches rows for a source spec.
type Loader func(context.Context, source.Spec) ([]source.Row, error)

// Option configures a Model.
type Option func(*Model)

// WithLoader replaces source.Load.
func WithLoader(l Loader) Option {
	return func(m *Model) {
		if l != nil {
			m.loader = l
		}
	}
}

// WithRenderer sets the row card renderer.
func WithRenderer(r row.Renderer) Option {
	return func(m *Model) { m.renderer = r }
}

// WithLogger sets the logger for the app and its strategy.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

// Model is the root bubbletea model.
type Model struct {
	keys     KeyMap
	cfg      config.Config
	spec     source.Spec
	loader   Loader
	renderer row.Renderer
	log      *slog.Logger

	list   *vlist.Model
	header header.Model
	status status.Model
	layout Layout

	lastIdx int
	width   int
	height  int
}

// New builds the root model from cfg.
func New(cfg config.Config, version string, opts ...Option) Model {
	m := Model{
		keys:   DefaultKeyMap(),
		cfg:    cfg,
		spec:   cfg.SourceSpec(),
		loader: source.Load,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		header: header.New(version),
		status: status.New(),
	}
	for _, o := range opts {
		o(&m)
	}
	if m.renderer == nil {
		m.renderer = row.NewMarkdown(glamourStyle())
	}

	strategyOpts := append(cfg.StrategyOptions(), vscroll.WithLogger(m.log))
	m.list = vlist.New(
		vlist.WithRenderer(m.renderer),
		vlist.WithStrategyOptions(strategyOpts...),
	)
	m.header.SetSource(m.spec.Name, sourceOrigin(m.spec))
	m.header.SetLoading()
	m.status.SetSmooth(cfg.Smooth)
	return m
}

func glamourStyle() string {
	if style.IsDark() {
		return "dark"
	}
	return "light"
}

func sourceOrigin(s source.Spec) string {
	if s.Name == source.NameGit {
		if s.Repo == "" {
			return "."
		}
		return s.Repo
	}
	return ""
}

// List returns the virtual list.
func (m Model) List() *vlist.Model { return m.list }

// -- Init ---------------------------------------------------------------------

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), func() tea.Msg { return tea.RequestWindowSize() })
}

func (m Model) load() tea.Cmd {
	spec, loader := m.spec, m.loader
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		rows, err := loader(ctx, spec)
		return msg.RowsLoaded{Spec: spec, Rows: rows, Err: err}
	}
}

// -- Update -------------------------------------------------------------------

func (m Model) Update(rawMsg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch v := rawMsg.(type) {

	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.layout = ComputeLayout(v.Width, v.Height)
		m.list.SetSize(m.layout.ListWidth, m.layout.ListHeight)
		m.header.SetWidth(v.Width)
		m.status.SetWidth(v.Width)

	case msg.RowsLoaded:
		if v.Err != nil {
			m.log.Error("load failed", "source", v.Spec.Name, "err", v.Err)
			m.status.SetError(v.Err)
			m.header.SetCount(len(m.list.Items()))
			break
		}
		m.status.SetError(nil)
		// A load is always fresh content, even at the same row count.
		m.list.ReplaceItems(toItems(v.Rows))
		m.header.SetCount(len(v.Rows))
		m.log.Info("rows loaded", "source", v.Spec.Name, "count", len(v.Rows))

	case msg.ScrolledIndexChanged:
		m.log.Info("scrolled index", "index", v.Index)

	case tea.KeyPressMsg:
		cmd, quit := m.handleKey(v)
		if quit {
			return m, tea.Quit
		}
		cmds = append(cmds, cmd)

	default:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(rawMsg)
		cmds = append(cmds, cmd)
	}

	if cmd := m.sync(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(k tea.KeyPressMsg) (cmd tea.Cmd, quit bool) {
	switch {
	case key.Matches(k, m.keys.Quit):
		return nil, true
	case key.Matches(k, m.keys.ScrollDown):
		m.list.ScrollBy(1)
	case key.Matches(k, m.keys.ScrollUp):
		m.list.ScrollBy(-1)
	case key.Matches(k, m.keys.HalfPageDown):
		m.list.HalfPageDown()
	case key.Matches(k, m.keys.HalfPageUp):
		m.list.HalfPageUp()
	case key.Matches(k, m.keys.PageDown):
		m.list.PageDown()
	case key.Matches(k, m.keys.PageUp):
		m.list.PageUp()
	case key.Matches(k, m.keys.ScrollTop):
		m.list.ScrollToTop()
	case key.Matches(k, m.keys.ScrollBottom):
		m.list.ScrollToBottom()
	case key.Matches(k, m.keys.JumpTens):
		return m.list.ScrollToIndex(nextTen(m.list.ScrolledIndex(), len(m.list.Items())), m.behavior()), false
	case key.Matches(k, m.keys.Reload):
		m.header.SetLoading()
		return m.load(), false
	case key.Matches(k, m.keys.ToggleSmooth):
		m.cfg.Smooth = !m.cfg.Smooth
		m.status.SetSmooth(m.cfg.Smooth)
		m.saveConfig()
	}
	return nil, false
}

// nextTen returns the next multiple of ten after idx, wrapping to 0 past the
// last row.
func nextTen(idx, count int) int {
	next := (idx/10 + 1) * 10
	if next >= count {
		return 0
	}
	return next
}

func (m Model) behavior() vscroll.ScrollBehavior {
	if m.cfg.Smooth {
		return vscroll.Smooth
	}
	return vscroll.Instant
}

func (m Model) saveConfig() {
	if ProfileDir == "" {
		return
	}
	if err := config.Save(ProfileDir, m.cfg); err != nil {
		m.log.Warn("save config failed", "err", err)
	}
}

// sync copies list state into the status bar and reports a new scrolled
// index as a message.
func (m *Model) sync() tea.Cmd {
	idx := m.list.ScrolledIndex()
	m.status.SetPosition(idx, len(m.list.Items()))
	m.status.SetViewport(m.list.RenderedRange(), m.list.Offset(), m.list.TotalSize())
	m.status.SetCache(m.list.Strategy().Heights().Counts())

	if idx == m.lastIdx {
		return nil
	}
	m.lastIdx = idx
	return func() tea.Msg { return msg.ScrolledIndexChanged{Index: idx} }
}

func toItems(rows []source.Row) []vscroll.Item {
	items := make([]vscroll.Item, len(rows))
	for i, r := range rows {
		items[i] = r
	}
	return items
}

// -- View ---------------------------------------------------------------------

// View composes header, list, status bar and help line. AltScreen and
// MouseMode are set on every frame.
func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

func (m Model) render() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.header.HeaderView())
	if m.layout.ListHeight > 0 {
		b.WriteString("\n")
		b.WriteString(m.list.View())
	}
	b.WriteString("\n")
	b.WriteString(m.status.View())
	b.WriteString("\n")
	b.WriteString(common.KeyHelp(m.keys.HelpBindings()...))
	return b.String()
}
