package ui

import (
	"html/template"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

const docsMarkdown = `### About this Application

This application analyzes year-over-year increases in domestic government health
expenditure for East Asia & Pacific Lower Middle Income Countries.

### Required Excel Sheet

Your Excel file should contain a sheet named 'YoY_Health_Expenditure' with the
following columns:

- Country Name
- Country Code
- Year columns in the format "YYYY YoY (%)" - e.g., "2006 YoY (%)"

### Visualization Options

- **Line Chart - YoY Change**: Shows the year-over-year percentage change for each country
- **Heatmap - YoY Change**: Displays a color-coded matrix of all values
- **Bar Chart - Average YoY Change**: Compares the average change across countries

### Countries

You can select specific countries to focus on using the country filter.
`

// RenderDocs converts the documentation panel text to HTML once per call; the
// source is a compile-time constant so there is nothing to sanitize.
func RenderDocs() template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return template.HTML(markdown.ToHTML([]byte(docsMarkdown), p, renderer))
}
