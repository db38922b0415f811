// Package renderer turns bets and statistics into markdown, and markdown into
// HTML.
package renderer

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/betlog"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/*.md
var templates embed.FS

// Report is the view of a ledger the templates render.
type Report struct {
	Title    string
	Currency string
	Balance  decimal.Decimal
	Initial  decimal.Decimal
	Stats    betlog.Stats
	Bets     []betlog.Bet
}

// NewReport builds a report of the bets of l accepted by all the filters. The
// statistics only cover those bets, the balances are the ledger's.
func NewReport(title, currency string, l *betlog.Ledger, filters ...func(betlog.Bet) bool) *Report {
	r := &Report{
		Title:    title,
		Currency: currency,
		Balance:  l.Balance(),
		Initial:  l.Initial(),
	}
	for b := range l.Bets(filters...) {
		r.Bets = append(r.Bets, b)
	}
	r.Stats = betlog.ComputeStats(l.Bets(filters...))
	return r
}

// RenderBets renders the bets of the report as a markdown table.
func RenderBets(r *Report) string {
	return renderTemplate("bets", "bets.md", nil, r.Currency, r)
}

// RenderStats renders the statistics and the balances of the report.
func RenderStats(r *Report) string {
	return renderTemplate("stats", "stats.md", nil, r.Currency, r)
}

// RenderReport renders the full report: title, statistics and bets.
func RenderReport(r *Report) string {
	partials := map[string]string{
		"report_stats": "stats.md",
		"report_bets":  "bets.md",
	}
	return renderTemplate("report", "report.md", partials, r.Currency, r)
}

// RenderBet renders a single bet with its legs.
func RenderBet(b betlog.Bet, currency string) string {
	return renderTemplate("bet", "bet.md", nil, currency, b)
}

// HTML converts markdown to an HTML fragment. Tables are supported.
func HTML(markdown string) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("could not convert markdown to html: %w", err)
	}
	return buf.String(), nil
}

// funcs returns the template functions, formatting money in currency.
func funcs(currency string) template.FuncMap {
	return template.FuncMap{
		"money": func(v decimal.Decimal) string { return betlog.M(v, currency).String() },
		"signed": func(v decimal.Decimal) string {
			return betlog.M(v, currency).SignedString()
		},
		"percent": func(v decimal.Decimal) string {
			return v.Shift(2).StringFixed(1) + "%"
		},
		// cell escapes the characters that would break a table cell.
		"cell": func(s string) string {
			return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
		},
		"effect": func(b betlog.Bet) string { return betlog.M(b.Effect(), currency).SignedString() },
	}
}

// renderTemplate renders a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, currency string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs(currency)).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
