package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fekuna/ammodeals-service/internal/listing/dto"
	"github.com/fekuna/ammodeals-service/internal/listing/usecase"
	"github.com/fekuna/ammodeals-service/internal/model"
)

// Model is the interactive comparison view. Every key event replaces the
// ViewState and re-derives the results before the next render.
type Model struct {
	catalog  []model.Listing
	calibers []string
	state    dto.ViewState
	results  []model.Listing

	input  textinput.Model
	width  int
	styles Styles
}

// NewModel takes the full catalog and the caliber options, sentinel first.
func NewModel(catalog []model.Listing, calibers []string) Model {
	in := textinput.New()
	in.Placeholder = "Search for ammunition..."
	in.Prompt = "> "
	in.CharLimit = 64
	in.Width = 40
	in.Focus()

	if len(calibers) == 0 || calibers[0] != dto.AllCalibers {
		calibers = append([]string{dto.AllCalibers}, calibers...)
	}

	m := Model{
		catalog:  slices.Clone(catalog),
		calibers: slices.Clone(calibers),
		state:    dto.DefaultViewState(),
		input:    in,
		styles:   DefaultStyles(),
	}
	m.results = usecase.Derive(m.catalog, m.state)
	return m
}

func (m Model) State() dto.ViewState { return m.state }

func (m Model) Results() []model.Listing { return slices.Clone(m.results) }

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			return m.setState(m.state.WithCaliber(m.nextCaliber(1))), nil
		case "shift+tab":
			return m.setState(m.state.WithCaliber(m.nextCaliber(-1))), nil
		case "ctrl+s":
			next := dto.SortName
			if m.state.SortBy == dto.SortName {
				next = dto.SortPricePerRound
			}
			return m.setState(m.state.WithSort(next)), nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if q := m.input.Value(); q != m.state.Query {
		m = m.setState(m.state.WithQuery(q))
	}
	return m, cmd
}

func (m Model) setState(s dto.ViewState) Model {
	m.state = s
	m.results = usecase.Derive(m.catalog, s)
	return m
}

func (m Model) nextCaliber(step int) string {
	i := slices.Index(m.calibers, m.state.Caliber)
	if i < 0 {
		return m.calibers[0]
	}
	n := len(m.calibers)
	return m.calibers[((i+step)%n+n)%n]
}

func sortLabel(k dto.SortKey) string {
	if k == dto.SortName {
		return "Name"
	}
	return "Price per Round"
}

func caliberLabel(c string) string {
	if c == dto.AllCalibers {
		return "All Calibers"
	}
	return c
}

func (m Model) View() string {
	s := m.styles
	var b strings.Builder

	b.WriteString(s.Title.Render("Cheapest Ammo Online"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %s   %s %s\n\n",
		s.Label.Render("Caliber:"), s.Value.Render(caliberLabel(m.state.Caliber)),
		s.Label.Render("Sort by:"), s.Value.Render(sortLabel(m.state.SortBy)))

	fmt.Fprintf(&b, "Ammunition Deals (%d results)\n\n", len(m.results))
	for _, l := range m.results {
		stock := s.InStock.Render("In Stock")
		if !l.InStock {
			stock = s.OutStock.Render("Out of Stock")
		}
		fmt.Fprintf(&b, "%s  %s  %s\n", s.Name.Render(l.Name), s.Price.Render("$"+l.Price.StringFixed(2)), stock)
		fmt.Fprintf(&b, "  %s\n", s.Meta.Render(fmt.Sprintf("%s • %dgr %s • %d rounds • $%s/round • Sold by %s",
			l.Brand, l.GrainWeight, l.BulletType, l.Quantity, l.PricePerRound.StringFixed(3), l.Retailer)))
	}

	b.WriteString(s.Help.Render("type to search • tab caliber • ctrl+s sort • esc quit"))
	b.WriteString("\n")
	return b.String()
}
