package deck

// SlideKind identifies which widget family a slide hosts, so the shell
// knows which payloads to request for it.
type SlideKind string

const (
	KindTitle      SlideKind = "title"
	KindNarrative  SlideKind = "narrative"
	KindChart      SlideKind = "chart"
	KindCalculator SlideKind = "calculator"
)

// Slide is one page of the presentation
type Slide struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Kind      SlideKind `json:"kind"`
	ChartKey  string    `json:"chart_key,omitempty"` // which chart payload this slide renders
	NotesMD   string    `json:"-"`                   // speaker notes, markdown source
	NotesHTML string    `json:"notes_html,omitempty"`
}

// Deck is the ordered slide list shown to every viewer
type Deck struct {
	Title  string  `json:"title"`
	Slides []Slide `json:"slides"`
}

// Len returns the slide count
func (d *Deck) Len() int {
	return len(d.Slides)
}
