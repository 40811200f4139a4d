package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fekuna/ammodeals-service/internal/listing/dto"
	"github.com/fekuna/ammodeals-service/internal/listing/seed"
	"github.com/fekuna/ammodeals-service/internal/model"
	"github.com/fekuna/ammodeals-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var calibers = []string{"9mm", ".223", ".45 ACP", "5.56x45", ".308"}

func newTestModel(t *testing.T) Model {
	t.Helper()
	catalog, err := seed.Default(logger.NewNop())
	require.NoError(t, err)
	return NewModel(catalog, calibers)
}

func ids(listings []model.Listing) []int64 {
	out := make([]int64, len(listings))
	for i, l := range listings {
		out[i] = l.ID
	}
	return out
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestModel_InitialView(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, dto.DefaultViewState(), m.State())
	assert.Equal(t, []int64{1, 3, 2, 4, 5}, ids(m.Results()))

	view := m.View()
	assert.Contains(t, view, "Ammunition Deals (5 results)")
	assert.Contains(t, view, "All Calibers")
	assert.Contains(t, view, "Price per Round")
	assert.Contains(t, view, "$0.500/round")
}

func TestModel_TypingFiltersByQuery(t *testing.T) {
	m := typeText(t, newTestModel(t), "federal")
	assert.Equal(t, "federal", m.State().Query)
	assert.Equal(t, []int64{1}, ids(m.Results()))
	assert.Contains(t, m.View(), "Ammunition Deals (1 results)")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "federa", m.State().Query)
	assert.Equal(t, []int64{1}, ids(m.Results()))
}

func TestModel_TabCyclesCaliber(t *testing.T) {
	m := newTestModel(t)
	want := append([]string{dto.AllCalibers}, calibers...)

	for i := 1; i <= len(want); i++ {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
		assert.Equal(t, want[i%len(want)], m.State().Caliber)
	}
	assert.Equal(t, dto.AllCalibers, m.State().Caliber, "tab wraps to the sentinel")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "9mm", m.State().Caliber)
	assert.Equal(t, []int64{1}, ids(m.Results()))

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, dto.AllCalibers, m.State().Caliber)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, ".308", m.State().Caliber)
	assert.Equal(t, []int64{5}, ids(m.Results()))
}

func TestModel_CtrlSTogglesSort(t *testing.T) {
	m := newTestModel(t)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, dto.SortName, m.State().SortBy)
	assert.Equal(t, []int64{2, 5, 3, 4, 1}, ids(m.Results()))
	assert.Contains(t, m.View(), "Sort by:")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, dto.SortPricePerRound, m.State().SortBy)
	assert.Equal(t, []int64{1, 3, 2, 4, 5}, ids(m.Results()))
}

func TestModel_StateReplacementKeepsOtherFields(t *testing.T) {
	m := typeText(t, newTestModel(t), "fmj")
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})

	assert.Equal(t, dto.ViewState{Query: "fmj", Caliber: "9mm", SortBy: dto.SortName}, m.State())
	assert.Equal(t, []int64{1}, ids(m.Results()))
}

func TestModel_Quit(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		_, cmd := send(t, newTestModel(t), tea.KeyMsg{Type: key})
		require.NotNil(t, cmd)
		_, ok := cmd().(tea.QuitMsg)
		assert.True(t, ok)
	}
}

func TestModel_OutOfStockRendering(t *testing.T) {
	m := typeText(t, newTestModel(t), "remington")
	view := m.View()
	assert.Contains(t, view, "Out of Stock")
	assert.Contains(t, view, "Sold by AmmoSeek")
}

func TestRenderTable(t *testing.T) {
	catalog, err := seed.Default(logger.NewNop())
	require.NoError(t, err)

	out := RenderTable(catalog, DefaultStyles())
	for _, h := range tableHeaders {
		assert.Contains(t, out, h)
	}
	assert.Contains(t, out, "9mm Luger 115gr FMJ")
	assert.Contains(t, out, "$24.99")
	assert.Contains(t, out, "$1.800/round")
	assert.Contains(t, out, "Out of Stock")

	// rows keep the given order
	assert.Less(t, strings.Index(out, "9mm Luger"), strings.Index(out, ".308 Winchester"))
}
