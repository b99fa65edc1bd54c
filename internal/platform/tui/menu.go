package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/skyraid/internal/core"
	"github.com/vovakirdan/skyraid/internal/games/skyraid/levels"
	"github.com/vovakirdan/skyraid/internal/storage"
)

// MenuItem represents a selectable level in the menu.
type MenuItem struct {
	World int
	Level int
	Name  string
	Boss  bool
	Stars int // Best stars earned, 0 if never cleared
}

// Label returns the menu line for the item without the cursor.
func (it MenuItem) Label() string {
	stars := strings.Repeat("*", it.Stars) + strings.Repeat(".", 3-it.Stars)
	boss := ""
	if it.Boss {
		boss = " [BOSS]"
	}
	return fmt.Sprintf("%d-%d  %-22s %s%s", it.World, it.Level, it.Name, stars, boss)
}

// MenuModel is the Bubble Tea model for the level select menu.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	offset         int // First visible item
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user selects a level
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model listing the levels of lib with the
// best stars recorded in store. Both may be nil.
func NewMenuModel(store *storage.Store, lib *levels.Library, cfg core.RuntimeConfig) MenuModel {
	if lib == nil {
		lib = levels.NewLibrary(nil)
	}

	best := make(map[[2]int]int)
	if store != nil {
		if results, err := store.BestLevelResults(); err == nil {
			for _, r := range results {
				best[[2]int{r.World, r.Level}] = r.Stars
			}
		}
	}

	defs := lib.Levels()
	items := make([]MenuItem, 0, len(defs))
	for _, d := range defs {
		items = append(items, MenuItem{
			World: d.World,
			Level: d.Level,
			Name:  d.Name,
			Boss:  d.Boss,
			Stars: best[[2]int{d.World, d.Level}],
		})
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.scrollToCursor()
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start game
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	m.scrollToCursor()
	return m, nil
}

// visibleRows is how many level lines fit between header and footer.
func (m MenuModel) visibleRows() int {
	return max(m.height-9, 1)
}

// scrollToCursor keeps the cursor inside the visible window.
func (m *MenuModel) scrollToCursor() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Title
	b.WriteString("\n")
	b.WriteString(centerText("  S K Y   R A I D  ", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a level", m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText("No levels found", m.width))
		b.WriteString("\n")
	}

	end := min(m.offset+m.visibleRows(), len(m.items))
	for i := m.offset; i < end; i++ {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+m.items[i].Label(), m.width))
		b.WriteString("\n")
	}

	// Footer with controls
	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	World           int
	Level           int
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, lib *levels.Library, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, lib, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	if m.WantsScoreboard() {
		result.WantsScoreboard = true
		return result, nil
	}

	if m.IsQuitting() {
		result.Quit = true
		return result, nil
	}

	if sel := m.Selected(); sel != nil {
		result.World = sel.World
		result.Level = sel.Level
	} else {
		result.Quit = true
	}

	return result, nil
}
