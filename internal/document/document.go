// Package document models the manuscript as an ordered sequence of
// paragraphs, each an ordered sequence of formatted runs. The engine never
// creates paragraphs or runs; it only splits and marks existing ones, so a
// paragraph's concatenated run text is invariant under highlighting.
//
// All offsets are character (rune) offsets into the paragraph's plain
// text.
package document

// Color is a highlight attribute on a run.
type Color string

const (
	// NoColor leaves a run unmarked.
	NoColor Color = ""
	// Green marks an exact match.
	Green Color = "green"
	// Cyan marks a fuzzy match.
	Cyan Color = "cyan"
	// Yellow marks a body citation missing from the references.
	Yellow Color = "yellow"
	// Red marks a reference never cited in the body.
	Red Color = "red"
)

// Comment is a reviewer note anchored to a run.
type Comment struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

// Run is a contiguous stretch of identically formatted text.
type Run struct {
	Text      string
	Highlight Color
	Comments  []Comment
}

// Paragraph is an ordered sequence of runs.
type Paragraph struct {
	Runs []*Run
}

// Document is an ordered sequence of paragraphs.
type Document struct {
	Name       string
	Paragraphs []*Paragraph
}

// NewParagraph builds a paragraph holding one run with the given text.
func NewParagraph(text string) *Paragraph {
	return &Paragraph{Runs: []*Run{{Text: text}}}
}

// Text returns the paragraph's plain text: the concatenation of its run
// texts.
func (p *Paragraph) Text() string {
	var out string
	for _, r := range p.Runs {
		out += r.Text
	}
	return out
}

// Len returns the rune length of the paragraph text.
func (p *Paragraph) Len() int {
	n := 0
	for _, r := range p.Runs {
		n += len([]rune(r.Text))
	}
	return n
}

// SplitAt splits the run containing the given rune offset so that a run
// boundary falls exactly there. Offsets already on a boundary are no-ops.
// The two halves keep the original run's formatting, so their texts
// concatenate to the original.
func (p *Paragraph) SplitAt(offset int) {
	pos := 0
	for i, r := range p.Runs {
		runes := []rune(r.Text)
		runEnd := pos + len(runes)
		if pos < offset && offset < runEnd {
			left := &Run{Text: string(runes[:offset-pos]), Highlight: r.Highlight, Comments: r.Comments}
			right := &Run{Text: string(runes[offset-pos:]), Highlight: r.Highlight}
			p.Runs = append(p.Runs[:i], append([]*Run{left, right}, p.Runs[i+1:]...)...)
			return
		}
		pos = runEnd
	}
}

// MarkRange highlights exactly the rune range [start, end), splitting runs
// at both boundaries so adjacent text keeps its formatting. A zero-length
// range is a no-op.
func (p *Paragraph) MarkRange(start, end int, color Color) {
	if start >= end || color == NoColor {
		return
	}
	p.SplitAt(start)
	p.SplitAt(end)

	pos := 0
	for _, r := range p.Runs {
		runes := len([]rune(r.Text))
		if pos >= start && pos+runes <= end && runes > 0 {
			r.Highlight = color
		}
		pos += runes
	}
}

// CommentRange attaches a comment to the first run fully inside the rune
// range [start, end). Degrades to a no-op when no run is covered.
func (p *Paragraph) CommentRange(start, end int, comment Comment) {
	pos := 0
	for _, r := range p.Runs {
		runes := len([]rune(r.Text))
		if pos >= start && pos+runes <= end && runes > 0 {
			r.Comments = append(r.Comments, comment)
			return
		}
		pos += runes
	}
}

// InsertLegend prepends a legend paragraph mapping each highlight color to
// its meaning.
func (d *Document) InsertLegend() {
	legend := &Paragraph{Runs: []*Run{
		{Text: "Reference Check: "},
		{Text: " EXACT MATCH ", Highlight: Green},
		{Text: "  "},
		{Text: " FUZZY MATCH ", Highlight: Cyan},
		{Text: "  "},
		{Text: " MISSING FROM REFS ", Highlight: Yellow},
		{Text: "  "},
		{Text: " NOT CITED IN TEXT ", Highlight: Red},
	}}
	d.Paragraphs = append([]*Paragraph{legend}, d.Paragraphs...)
}

// ParagraphTexts returns the plain text of every paragraph in order.
func (d *Document) ParagraphTexts() []string {
	out := make([]string, len(d.Paragraphs))
	for i, p := range d.Paragraphs {
		out[i] = p.Text()
	}
	return out
}
