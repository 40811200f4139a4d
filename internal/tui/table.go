package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fekuna/ammodeals-service/internal/model"
)

var tableHeaders = []string{"ID", "Name", "Brand", "Caliber", "Rounds", "Price", "Per Round", "Retailer", "Stock"}

func stockLabel(inStock bool) string {
	if inStock {
		return "In Stock"
	}
	return "Out of Stock"
}

func tableRow(l model.Listing) []string {
	return []string{
		strconv.FormatInt(l.ID, 10),
		l.Name,
		l.Brand,
		l.Caliber,
		strconv.Itoa(l.Quantity),
		"$" + l.Price.StringFixed(2),
		fmt.Sprintf("$%s/round", l.PricePerRound.StringFixed(3)),
		l.Retailer,
		stockLabel(l.InStock),
	}
}

// RenderTable draws listings as a bordered table in the given order.
func RenderTable(listings []model.Listing, styles Styles) string {
	rows := make([][]string, 0, len(listings))
	for _, l := range listings {
		rows = append(rows, tableRow(l))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.Border).
		Headers(tableHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header
			}
			if col == len(tableHeaders)-1 && row >= 0 && row < len(listings) {
				if listings[row].InStock {
					return styles.Cell.Foreground(success)
				}
				return styles.Cell.Foreground(danger)
			}
			return styles.Cell
		})

	return t.String()
}
