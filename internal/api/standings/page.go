// internal/api/standings/page.go
package standings

import (
	"context"
	"fmt"
	"html"
	"io"
	"sort"
	"strings"

	"github.com/a-h/templ"

	standingsengine "github.com/courtsidehq/courtside/internal/standings"
)

func standingsPageComponent(category string, tables map[string][]standingsengine.Row) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="space-y-6">`); err != nil {
			return err
		}
		header := fmt.Sprintf(
			`<div class="flex items-center justify-between"><h1 class="text-2xl font-semibold text-gray-900">Standings</h1><div class="text-xs text-gray-500">%s</div></div>`,
			html.EscapeString(category),
		)
		if _, err := io.WriteString(w, header); err != nil {
			return err
		}
		if _, err := io.WriteString(w, buildStandingsHTML(tables)); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func buildStandingsHTML(tables map[string][]standingsengine.Row) string {
	if len(tables) == 0 {
		return `<div class="rounded border border-dashed p-6 text-center text-sm text-gray-500">No teams registered.</div>`
	}

	groups := make([]string, 0, len(tables))
	for group := range tables {
		groups = append(groups, group)
	}
	sort.Strings(groups)

	var builder strings.Builder
	builder.WriteString(`<div class="grid gap-6">`)
	for _, group := range groups {
		builder.WriteString(buildGroupTableHTML(group, tables[group]))
	}
	builder.WriteString(`</div>`)
	return builder.String()
}

func buildGroupTableHTML(group string, rows []standingsengine.Row) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(
		`<div class="rounded border bg-white p-4 shadow-sm"><h2 class="text-lg font-semibold text-gray-900">Group %s</h2>`,
		html.EscapeString(group),
	))
	builder.WriteString(`<table class="mt-3 w-full text-sm text-gray-700"><thead><tr class="text-left text-gray-600">`)
	builder.WriteString(`<th>#</th><th>Team</th><th>W</th><th>L</th><th>Pts</th><th>PF</th><th>PA</th><th>+/-</th>`)
	builder.WriteString(`</tr></thead><tbody>`)
	for _, row := range rows {
		builder.WriteString(fmt.Sprintf(
			`<tr data-team-id="%s"><td>%d</td><td>%s</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%+d</td></tr>`,
			html.EscapeString(row.TeamID),
			row.Position,
			html.EscapeString(row.TeamName),
			row.Wins,
			row.Losses,
			row.LeaguePoints,
			row.PointsFor,
			row.PointsAgainst,
			row.PointDifferential(),
		))
	}
	builder.WriteString(`</tbody></table></div>`)
	return builder.String()
}
