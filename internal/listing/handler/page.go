package handler

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/fekuna/ammodeals-service/internal/listing/dto"
	"github.com/fekuna/ammodeals-service/internal/model"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("page.html").Funcs(template.FuncMap{
		"money":    func(d decimal.Decimal) string { return d.StringFixed(2) },
		"perRound": func(d decimal.Decimal) string { return d.StringFixed(3) },
	}).ParseFS(templateFS, "templates/page.html"),
)

type option struct {
	Value    string
	Label    string
	Selected bool
}

type pageData struct {
	State    dto.ViewState
	Calibers []option
	Sorts    []option
	Listings []model.Listing
	Total    int
}

// RenderPage handles GET /. The three controls round-trip through the query string.
func (h *ListingHandler) RenderPage(c *fiber.Ctx) error {
	state, err := parseViewState(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_sort",
			Message: err.Error(),
		})
	}

	result, err := h.uc.ListListings(c.UserContext(), state)
	if err != nil {
		return h.internalError(c, "failed to list listings", err)
	}

	data := pageData{
		State:    state,
		Listings: result.Listings,
		Total:    result.Total,
	}
	for _, cal := range h.uc.Calibers() {
		label := cal
		if cal == dto.AllCalibers {
			label = "All Calibers"
		}
		data.Calibers = append(data.Calibers, option{Value: cal, Label: label, Selected: cal == state.Caliber})
	}
	data.Sorts = []option{
		{Value: string(dto.SortPricePerRound), Label: "Price per Round", Selected: state.SortBy == dto.SortPricePerRound},
		{Value: string(dto.SortName), Label: "Name", Selected: state.SortBy == dto.SortName},
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return h.internalError(c, "failed to render page", err)
	}

	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}
