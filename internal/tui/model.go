//go:build linux

package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/juliomoralesp/port-scanner/internal/pipeline"
	"github.com/juliomoralesp/port-scanner/pkg/model"
)

type viewState int

const (
	stateList viewState = iota
	stateFilter
	stateDetail
)

type keyMap struct {
	Filter  key.Binding
	All     key.Binding
	Sort    key.Binding
	Reverse key.Binding
	Refresh key.Binding
	Detail  key.Binding
	Back    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Filter:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter by name")),
		All:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "toggle all states")),
		Sort:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle sort")),
		Reverse: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reverse")),
		Refresh: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "refresh")),
		Detail:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "detail")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Model is the interactive table over socket snapshots. The snapshot is
// re-read only on explicit refresh or when the state filter changes;
// there is no background polling.
type Model struct {
	cfg    pipeline.Config
	query  pipeline.Query
	keys   keyMap
	styles styles

	table table.Model
	input textinput.Model

	records []model.SocketRecord // full snapshot
	visible []model.SocketRecord // after Select
	state   viewState
	detail  *model.SocketRecord
	errMsg  string

	width  int
	height int
}

type snapshotMsg []model.SocketRecord

func takeSnapshot(cfg pipeline.Config) tea.Cmd {
	return func() tea.Msg {
		records, err := pipeline.Snapshot(cfg)
		if err != nil {
			return err
		}
		return snapshotMsg(records)
	}
}

func newModel(cfg pipeline.Config, query pipeline.Query, colorEnabled bool) Model {
	st := newStyles(colorEnabled)

	columns := []table.Column{
		{Title: "PROTO", Width: 6},
		{Title: "PORT", Width: 6},
		{Title: "ADDRESS", Width: 26},
		{Title: "STATE", Width: 12},
		{Title: "OWNER", Width: 40},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	ts := table.DefaultStyles()
	ts.Header = st.tableHeader
	ts.Selected = st.tableSelected
	t.SetStyles(ts)

	in := textinput.New()
	in.Placeholder = "process name substring"
	in.Prompt = "name> "
	in.SetValue(query.Name)

	return Model{
		cfg:    cfg,
		query:  query,
		keys:   defaultKeyMap(),
		styles: st,
		table:  t,
		input:  in,
	}
}

func (m Model) Init() tea.Cmd {
	return takeSnapshot(m.cfg)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h := msg.Height - 6
		if h < 3 {
			h = 3
		}
		m.table.SetHeight(h)
		return m, nil

	case snapshotMsg:
		m.records = msg
		m.errMsg = ""
		m.applyQuery()
		return m, nil

	case error:
		m.errMsg = msg.Error()
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case stateFilter:
			return m.updateFilter(msg)
		case stateDetail:
			if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Quit) {
				m.state = stateList
				m.detail = nil
			}
			return m, nil
		default:
			return m.updateList(msg)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.query.Name = m.input.Value()
		m.input.Blur()
		m.state = stateList
		m.applyQuery()
		return m, nil
	case "esc":
		m.input.SetValue(m.query.Name)
		m.input.Blur()
		m.state = stateList
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Filter):
		m.state = stateFilter
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.All):
		m.cfg.AllStates = !m.cfg.AllStates
		return m, takeSnapshot(m.cfg)

	case key.Matches(msg, m.keys.Sort):
		m.query.Sort = nextSortKey(m.query.Sort)
		m.applyQuery()
		return m, nil

	case key.Matches(msg, m.keys.Reverse):
		m.query.Reverse = !m.query.Reverse
		m.applyQuery()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, takeSnapshot(m.cfg)

	case key.Matches(msg, m.keys.Detail):
		if i := m.table.Cursor(); i >= 0 && i < len(m.visible) {
			r := m.visible[i]
			m.detail = &r
			m.state = stateDetail
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func nextSortKey(k pipeline.SortKey) pipeline.SortKey {
	switch k {
	case pipeline.SortByPort:
		return pipeline.SortByPID
	case pipeline.SortByPID:
		return pipeline.SortByProto
	default:
		return pipeline.SortByPort
	}
}

// applyQuery re-selects the visible records and rebuilds the table rows.
func (m *Model) applyQuery() {
	m.visible = pipeline.Select(m.records, m.query)

	rows := make([]table.Row, 0, len(m.visible))
	for _, r := range m.visible {
		rows = append(rows, recordRow(r))
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func recordRow(r model.SocketRecord) table.Row {
	return table.Row{
		r.Protocol,
		strconv.Itoa(r.Port),
		r.LocalAddr,
		model.StateName(r.State),
		ownerCell(r),
	}
}

// Run starts the interactive view and blocks until the user quits.
func Run(cfg pipeline.Config, query pipeline.Query, colorEnabled bool) error {
	p := tea.NewProgram(newModel(cfg, query, colorEnabled), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
