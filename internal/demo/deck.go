// Package demo holds the embedded presentation content and measurement
// series the application ships with, the way the rest of the codebase
// would receive them from a real experiment export.
package demo

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"photodeck/domain/deck"
)

// Deck returns the built-in presentation with speaker notes rendered to
// HTML. The slide order matches the chart payload keys served by the
// chart service.
func Deck() *deck.Deck {
	slides := []deck.Slide{
		{
			ID:    "title",
			Title: "Visible-Light Photocatalytic Degradation of Methylene Blue",
			Kind:  deck.KindTitle,
			NotesMD: "Overview talk: catalyst synthesis, spectra, kinetics, and " +
				"apparent quantum yield of the best run.",
		},
		{
			ID:    "spectra",
			Title: "Absorbance Spectra of Candidate Catalysts",
			Kind:  deck.KindChart, ChartKey: "spectra",
			NotesMD: "Both materials absorb across the visible band; catalyst B " +
				"trades the 420 nm shoulder for a broader 520 nm peak. The " +
				"long-wavelength drop-off is the band edge.",
		},
		{
			ID:    "kinetics",
			Title: "Degradation Kinetics Under 525 nm Irradiation",
			Kind:  deck.KindChart, ChartKey: "kinetics",
			NotesMD: "Pseudo-first-order model: ln(C0/C) vs *t* is linear, the " +
				"slope is the rate constant *k*. R² above 0.99 on the shown run.",
		},
		{
			ID:    "calibration",
			Title: "Concentration Calibration (Beer–Lambert)",
			Kind:  deck.KindChart, ChartKey: "calibration",
			NotesMD: "Absorbance at 664 nm against prepared standards. The fitted " +
				"line converts absorbance readings to concentration.",
		},
		{
			ID:    "aqy",
			Title: "Apparent Quantum Yield",
			Kind:  deck.KindCalculator,
			NotesMD: "Live calculator: moles degraded, irradiation time, optical " +
				"power, and wavelength give AQY%. Photon energy is *hc/λ*.",
		},
		{
			ID:    "summary",
			Title: "Summary & Outlook",
			Kind:  deck.KindNarrative,
			NotesMD: "Catalyst B degrades 94% of the dye in 90 minutes at an AQY " +
				"near 0.4%. Next step: co-catalyst loading sweep.",
		},
	}

	for i := range slides {
		slides[i].NotesHTML = renderNotes(slides[i].NotesMD)
	}

	return &deck.Deck{
		Title:  "Photocatalytic Degradation — Group Seminar",
		Slides: slides,
	}
}

// renderNotes converts markdown speaker notes to HTML
func renderNotes(md string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(markdown.ToHTML([]byte(md), p, renderer))
}
