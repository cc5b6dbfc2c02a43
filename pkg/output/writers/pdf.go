// Package writers renders report content into output documents.
package writers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	gofpdf "github.com/go-pdf/fpdf"

	"github.com/waftester/scanreport/pkg/finding"
	"github.com/waftester/scanreport/pkg/markdown"
)

// Compile-time interface checks.
var (
	_ markdown.Emitter     = (*PDFDocument)(nil)
	_ markdown.ListEmitter = (*PDFDocument)(nil)
	_ io.WriterTo          = (*PDFDocument)(nil)
)

// ErrListsDisabled is returned by ListItem when native lists are turned off.
var ErrListsDisabled = errors.New("native list style disabled")

const (
	coreFont   = "Helvetica"
	coreMono   = "Courier"
	utf8Family = "body"

	lineHeight   = 5.5
	indentStep   = 6.0
	minGridWidth = 14.0
)

// Color is an RGB triple.
type Color struct{ R, G, B int }

var (
	colorText    = Color{40, 40, 40}
	colorMuted   = Color{110, 110, 110}
	colorAccent  = Color{46, 116, 181}
	colorHeader  = Color{30, 41, 59}
	colorWarning = Color{220, 38, 38}
	colorCode    = Color{80, 80, 80}
	colorInline  = Color{180, 0, 0}
	colorAIBlue  = Color{0, 112, 192}
)

var riskColors = map[finding.RiskLevel]Color{
	finding.RiskHigh:          {255, 0, 0},
	finding.RiskMedium:        {255, 140, 0},
	finding.RiskLow:           {180, 160, 0},
	finding.RiskInformational: {0, 0, 255},
}

// RiskColor returns the display color of a risk level.
func RiskColor(level finding.RiskLevel) Color {
	if c, ok := riskColors[level]; ok {
		return c
	}
	return colorMuted
}

// AccentColor is used for AI-sourced labels.
func AccentColor() Color { return colorAIBlue }

// PDFConfig configures a PDFDocument.
type PDFConfig struct {
	// PageSize is an fpdf size name such as "A4" or "Letter".
	PageSize string

	// Orientation is "P" or "L".
	Orientation string

	// FontPath is an optional TrueType font registered as UTF-8. Without it
	// the core Helvetica font is used and text is mapped to cp1252.
	FontPath string

	// Footer is printed left of the page number on every page.
	Footer string

	// Title and Author are written to the document metadata.
	Title  string
	Author string

	// CreatedAt fixes the metadata timestamps. Zero means now.
	CreatedAt time.Time

	// DisableCompression leaves content streams uncompressed.
	DisableCompression bool

	// PlainLists renders list items as indented paragraphs.
	PlainLists bool

	Logger *slog.Logger
}

// Field is one label/value line of the cover page.
type Field struct {
	Label string
	Value string
}

// Cover describes the title page.
type Cover struct {
	Title    string
	LogoPath string
	Fields   []Field
}

// PDFDocument is an fpdf-backed document. It is not safe for concurrent use.
type PDFDocument struct {
	pdf        *gofpdf.Fpdf
	tr         func(string) string
	family     string
	mono       string
	utf8       bool
	plainLists bool
	logger     *slog.Logger
}

// NewPDFDocument creates an empty document. It fails only when a
// configured font cannot be loaded.
func NewPDFDocument(cfg PDFConfig) (*PDFDocument, error) {
	size := cfg.PageSize
	if size == "" {
		size = "A4"
	}
	orientation := cfg.Orientation
	if orientation == "" {
		orientation = "P"
	}

	pdf := gofpdf.New(orientation, "mm", size, "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 18)
	pdf.SetCompression(!cfg.DisableCompression)
	pdf.AliasNbPages("")

	d := &PDFDocument{
		pdf:        pdf,
		family:     coreFont,
		mono:       coreMono,
		plainLists: cfg.PlainLists,
		logger:     orDefault(cfg.Logger),
	}

	if cfg.FontPath != "" {
		data, err := os.ReadFile(cfg.FontPath)
		if err != nil {
			return nil, fmt.Errorf("%w: read font %s: %w", finding.ErrRender, cfg.FontPath, err)
		}
		pdf.AddUTF8FontFromBytes(utf8Family, "", data)
		pdf.AddUTF8FontFromBytes(utf8Family, "B", data)
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("%w: load font %s: %w", finding.ErrRender, cfg.FontPath, err)
		}
		d.family, d.mono, d.utf8 = utf8Family, utf8Family, true
		d.tr = func(s string) string { return s }
	} else {
		d.tr = pdf.UnicodeTranslatorFromDescriptor("")
	}

	created := cfg.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	pdf.SetCreationDate(created)
	pdf.SetModificationDate(created)
	pdf.SetTitle(cfg.Title, true)
	pdf.SetAuthor(cfg.Author, true)
	pdf.SetCreator("scanreport", true)

	footer := cfg.Footer
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		d.font("", 8)
		d.color(colorMuted)
		text := fmt.Sprintf("%d / {nb}", pdf.PageNo())
		if footer != "" {
			text = footer + "    " + text
		}
		pdf.CellFormat(0, 8, d.tr(text), "", 0, "C", false, 0, "")
	})

	return d, nil
}

func (d *PDFDocument) font(style string, size float64) {
	if d.utf8 && style != "B" {
		style = ""
	}
	d.pdf.SetFont(d.family, style, size)
}

func (d *PDFDocument) monoFont(size float64) {
	d.pdf.SetFont(d.mono, "", size)
}

func (d *PDFDocument) color(c Color) {
	d.pdf.SetTextColor(c.R, c.G, c.B)
}

func (d *PDFDocument) contentWidth() float64 {
	w, _ := d.pdf.GetPageSize()
	l, _, r, _ := d.pdf.GetMargins()
	return w - l - r
}

// ensureSpace starts a new page when fewer than h millimeters remain.
func (d *PDFDocument) ensureSpace(h float64) bool {
	_, ph := d.pdf.GetPageSize()
	_, _, _, b := d.pdf.GetMargins()
	if d.pdf.GetY()+h > ph-b {
		d.pdf.AddPage()
		return true
	}
	return false
}

// Cover adds the title page.
func (d *PDFDocument) Cover(c Cover) {
	d.pdf.AddPage()
	d.pdf.Ln(30)

	d.font("B", 22)
	d.color(colorHeader)
	d.pdf.MultiCell(0, 11, d.tr(c.Title), "", "C", false)
	d.pdf.Ln(8)

	if c.LogoPath != "" {
		if err := d.image(c.LogoPath, 50, true); err != nil {
			d.logger.Warn("logo could not be embedded", slog.String("path", c.LogoPath), slog.Any("error", err))
		}
		d.pdf.Ln(8)
	}

	for _, f := range c.Fields {
		d.font("B", 11)
		d.color(colorText)
		d.pdf.CellFormat(45, 8, d.tr(f.Label+":"), "", 0, "L", false, 0, "")
		d.font("", 11)
		d.pdf.MultiCell(0, 8, d.tr(f.Value), "", "L", false)
	}
}

// SectionTitle starts a top-level section with an underline rule.
func (d *PDFDocument) SectionTitle(text string) {
	d.ensureSpace(20)
	d.font("B", 16)
	d.color(colorHeader)
	d.pdf.MultiCell(0, 9, d.tr(text), "", "L", false)

	l, _, _, _ := d.pdf.GetMargins()
	y := d.pdf.GetY() + 1
	d.pdf.SetDrawColor(colorAccent.R, colorAccent.G, colorAccent.B)
	d.pdf.SetLineWidth(0.6)
	d.pdf.Line(l, y, l+d.contentWidth(), y)
	d.pdf.SetLineWidth(0.2)
	d.pdf.SetDrawColor(0, 0, 0)
	d.pdf.Ln(5)
}

// SubTitle adds a finding or subsection title.
func (d *PDFDocument) SubTitle(text string) {
	d.ensureSpace(16)
	d.pdf.Ln(2)
	d.font("B", 13)
	d.color(colorAccent)
	d.pdf.MultiCell(0, 7, d.tr(text), "", "L", false)
	d.pdf.Ln(1)
}

// Text adds a plain paragraph.
func (d *PDFDocument) Text(text string) {
	d.font("", 10)
	d.color(colorText)
	d.pdf.MultiCell(0, lineHeight, d.tr(text), "", "L", false)
	d.pdf.Ln(1)
}

// Warning adds a bold red paragraph.
func (d *PDFDocument) Warning(text string) {
	d.font("B", 11)
	d.color(colorWarning)
	d.pdf.MultiCell(0, 6, d.tr(text), "", "L", false)
	d.pdf.Ln(2)
}

// Note adds a muted paragraph used for placeholders and fallbacks.
func (d *PDFDocument) Note(text string) {
	d.font("", 9)
	d.color(colorMuted)
	d.pdf.MultiCell(0, lineHeight, d.tr(text), "", "L", false)
}

// Label adds a bold caption for the block that follows.
func (d *PDFDocument) Label(text string, c Color) {
	d.ensureSpace(12)
	d.font("B", 10)
	d.color(c)
	d.pdf.MultiCell(0, 6, d.tr(text), "", "L", false)
}

// KeyValue adds a label column and a wrapped value.
func (d *PDFDocument) KeyValue(label, value string) {
	d.KeyValueColor(label, value, colorText, false)
}

// KeyValueColor adds a label/value line with a colored, optionally bold value.
func (d *PDFDocument) KeyValueColor(label, value string, c Color, bold bool) {
	d.ensureSpace(8)
	d.font("B", 10)
	d.color(colorMuted)
	d.pdf.CellFormat(40, 6, d.tr(label), "", 0, "L", false, 0, "")
	style := ""
	if bold {
		style = "B"
	}
	d.font(style, 10)
	d.color(c)
	d.pdf.MultiCell(0, 6, d.tr(value), "", "L", false)
}

// Gap adds vertical space.
func (d *PDFDocument) Gap() {
	d.pdf.Ln(4)
}

// PageBreak starts a new page.
func (d *PDFDocument) PageBreak() {
	d.pdf.AddPage()
}

// Image embeds a PNG or JPEG at the given width in millimeters. On failure
// the document error is cleared, fallback is written as a note, and an
// error wrapping finding.ErrRender is returned.
func (d *PDFDocument) Image(path string, width float64, fallback string) error {
	if err := d.image(path, width, false); err != nil {
		if fallback != "" {
			d.Note(fallback)
		}
		return err
	}
	return nil
}

func (d *PDFDocument) image(path string, width float64, centered bool) error {
	if d.pdf.Err() {
		return fmt.Errorf("%w: document already failed: %w", finding.ErrRender, d.pdf.Error())
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: image %s: %w", finding.ErrRender, path, err)
	}

	x := d.pdf.GetX()
	if centered {
		pw, _ := d.pdf.GetPageSize()
		x = (pw - width) / 2
	}
	d.pdf.ImageOptions(path, x, -1, width, 0, true, gofpdf.ImageOptions{ReadDpi: true}, 0, "")
	if d.pdf.Err() {
		err := d.pdf.Error()
		d.pdf.ClearError()
		return fmt.Errorf("%w: image %s: %w", finding.ErrRender, path, err)
	}
	return nil
}

// Grid draws a bordered table whose cells wrap. header may be nil. widths
// are relative weights; nil means equal columns. The header repeats after
// page breaks.
func (d *PDFDocument) Grid(header []string, rows [][]string, widths []float64) error {
	cols := len(header)
	for _, r := range rows {
		cols = max(cols, len(r))
	}
	if cols == 0 {
		return nil
	}

	abs, err := d.columnWidths(cols, widths)
	if err != nil {
		return err
	}

	var repeatHeader func()
	if header != nil {
		d.gridRow(header, abs, true, nil)
		if d.rowHeight(header, abs, true) < d.bodyHeight()/2 {
			repeatHeader = func() { d.gridRow(header, abs, true, nil) }
		}
	}
	for _, r := range rows {
		d.gridRow(r, abs, false, repeatHeader)
	}
	d.pdf.Ln(3)
	return nil
}

func (d *PDFDocument) columnWidths(cols int, weights []float64) ([]float64, error) {
	total := d.contentWidth()
	out := make([]float64, cols)
	if len(weights) != cols {
		for i := range out {
			out[i] = total / float64(cols)
		}
	} else {
		var sum float64
		for _, w := range weights {
			sum += w
		}
		for i, w := range weights {
			out[i] = total * w / sum
		}
	}
	for _, w := range out {
		if w < minGridWidth {
			return nil, fmt.Errorf("%d columns do not fit the page width", cols)
		}
	}
	return out, nil
}

func (d *PDFDocument) rowHeight(cells []string, widths []float64, bold bool) float64 {
	d.gridFont(bold)
	lines := 1
	for i, w := range widths {
		if i < len(cells) {
			lines = max(lines, len(d.wrap(d.tr(cells[i]), w-2)))
		}
	}
	return float64(lines)*lineHeight + 2
}

func (d *PDFDocument) gridFont(bold bool) {
	if bold {
		d.font("B", 9)
		d.pdf.SetTextColor(255, 255, 255)
		d.pdf.SetFillColor(colorHeader.R, colorHeader.G, colorHeader.B)
		return
	}
	d.font("", 9)
	d.color(colorText)
}

// gridRow draws one row. A row that does not fit the rest of the page
// moves to the next one; a row taller than a whole page is split across
// pages, and onBreak runs after every page it adds.
func (d *PDFDocument) gridRow(cells []string, widths []float64, bold bool, onBreak func()) {
	d.gridFont(bold)
	wrapped := make([][]string, len(widths))
	lines := 1
	for i, w := range widths {
		text := ""
		if i < len(cells) {
			text = d.tr(cells[i])
		}
		wrapped[i] = d.wrap(text, w-2)
		lines = max(lines, len(wrapped[i]))
	}

	fresh := false
	newPage := func() {
		d.pdf.AddPage()
		if onBreak != nil {
			onBreak()
		}
		fresh = true
	}

	for off := 0; off < lines; {
		n := min(lines-off, d.linesLeft())
		if !fresh && (n < 1 || (off == 0 && n < lines && lines <= d.linesPerPage())) {
			newPage()
			continue
		}
		n = max(n, 1)
		d.gridChunk(wrapped, off, n, widths, bold)
		off += n
		if off < lines {
			newPage()
		}
	}
}

// gridChunk draws lines [off, off+n) of every cell as one bordered band.
func (d *PDFDocument) gridChunk(wrapped [][]string, off, n int, widths []float64, bold bool) {
	d.gridFont(bold)
	h := float64(n)*lineHeight + 2
	x0, y0 := d.pdf.GetXY()
	style := "D"
	if bold {
		style = "FD"
	}
	x := x0
	for i, w := range widths {
		d.pdf.Rect(x, y0, w, h, style)
		d.pdf.SetXY(x+1, y0+1)
		cell := wrapped[i]
		for j := off; j < off+n && j < len(cell); j++ {
			d.pdf.CellFormat(w-2, lineHeight, cell[j], "", 2, "L", false, 0, "")
		}
		x += w
	}
	d.pdf.SetXY(x0, y0+h)
}

// bodyHeight is the printable height between the top margin and the
// automatic page break.
func (d *PDFDocument) bodyHeight() float64 {
	_, ph := d.pdf.GetPageSize()
	_, t, _, b := d.pdf.GetMargins()
	return ph - t - b
}

// linesLeft is how many grid lines still fit on the current page.
func (d *PDFDocument) linesLeft() int {
	_, ph := d.pdf.GetPageSize()
	_, _, _, b := d.pdf.GetMargins()
	return int((ph - b - d.pdf.GetY() - 2) / lineHeight)
}

// linesPerPage is how many grid lines fit on an empty page.
func (d *PDFDocument) linesPerPage() int {
	return int((d.bodyHeight() - 2) / lineHeight)
}

// wrap breaks already translated text into lines no wider than w. Words
// longer than a line are split by character.
func (d *PDFDocument) wrap(text string, w float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		var cur string
		for _, word := range strings.Fields(para) {
			cand := word
			if cur != "" {
				cand = cur + " " + word
			}
			if d.pdf.GetStringWidth(cand) <= w {
				cur = cand
				continue
			}
			if cur != "" {
				lines = append(lines, cur)
				cur = ""
			}
			for d.pdf.GetStringWidth(word) > w {
				head, rest := d.splitToWidth(word, w)
				lines = append(lines, head)
				word = rest
			}
			cur = word
		}
		lines = append(lines, cur)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

// splitToWidth returns the longest prefix of word fitting w. Core-font text
// is single-byte after translation; UTF-8 text is split on runes.
func (d *PDFDocument) splitToWidth(word string, w float64) (string, string) {
	var units []string
	if d.utf8 {
		for _, r := range word {
			units = append(units, string(r))
		}
	} else {
		for i := 0; i < len(word); i++ {
			units = append(units, word[i:i+1])
		}
	}
	n := 1
	for n < len(units) && d.pdf.GetStringWidth(strings.Join(units[:n+1], "")) <= w {
		n++
	}
	return strings.Join(units[:n], ""), strings.Join(units[n:], "")
}

// Heading implements markdown.Emitter.
func (d *PDFDocument) Heading(level markdown.HeadingLevel, text string) {
	size := 12.0
	if level == markdown.HeadingSection {
		size = 14
	}
	d.ensureSpace(12)
	d.pdf.Ln(2)
	d.font("B", size)
	d.color(colorAccent)
	d.pdf.MultiCell(0, 7, d.tr(text), "", "L", false)
}

// Paragraph implements markdown.Emitter.
func (d *PDFDocument) Paragraph(runs []markdown.Run) {
	d.writeRuns(0, runs)
}

// IndentedParagraph implements markdown.Emitter.
func (d *PDFDocument) IndentedParagraph(runs []markdown.Run) {
	d.writeRuns(indentStep, runs)
}

// CodeLine implements markdown.Emitter.
func (d *PDFDocument) CodeLine(text string) {
	d.monoFont(9)
	d.color(colorCode)
	l, _, _, _ := d.pdf.GetMargins()
	d.pdf.SetX(l + indentStep/2)
	d.pdf.MultiCell(d.contentWidth()-indentStep/2, 4.5, d.tr(strings.ReplaceAll(text, "\t", "    ")), "", "L", false)
}

// Table implements markdown.Emitter. Inline markers in cells are dropped.
func (d *PDFDocument) Table(t markdown.Table) error {
	flatten := func(cells []string) []string {
		out := make([]string, len(cells))
		for i, c := range cells {
			out[i] = markdown.PlainText(markdown.ParseInline(c))
		}
		return out
	}
	var header []string
	if t.HasHeader() {
		header = flatten(t.Header)
	}
	rows := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = flatten(r)
	}
	return d.Grid(header, rows, nil)
}

// ListItem implements markdown.ListEmitter with a hanging indent.
func (d *PDFDocument) ListItem(ordered bool, number int, runs []markdown.Run) error {
	if d.plainLists {
		return ErrListsDisabled
	}
	marker := "•"
	if ordered {
		marker = fmt.Sprintf("%d.", number)
	}

	l, _, _, _ := d.pdf.GetMargins()
	d.font("", 10)
	d.color(colorText)
	d.pdf.SetX(l + indentStep/2)
	d.pdf.CellFormat(indentStep, lineHeight, d.tr(marker), "", 0, "L", false, 0, "")
	d.writeRunsAt(l+indentStep*1.5, runs)
	return nil
}

func (d *PDFDocument) writeRuns(indent float64, runs []markdown.Run) {
	l, _, _, _ := d.pdf.GetMargins()
	d.pdf.SetX(l + indent)
	d.writeRunsAt(l+indent, runs)
}

// writeRunsAt writes styled runs from the current position, wrapping to
// left. The page margin is restored afterwards.
func (d *PDFDocument) writeRunsAt(left float64, runs []markdown.Run) {
	l, _, _, _ := d.pdf.GetMargins()
	d.pdf.SetLeftMargin(left)
	defer d.pdf.SetLeftMargin(l)

	for _, r := range runs {
		switch r.Kind {
		case markdown.RunBold:
			d.font("B", 10)
			d.color(colorText)
		case markdown.RunCode:
			d.monoFont(9.5)
			d.color(colorInline)
		default:
			d.font("", 10)
			d.color(colorText)
		}
		d.pdf.Write(lineHeight, d.tr(r.Text))
	}
	d.pdf.Ln(lineHeight + 1)
}

// Err returns the first error recorded by the underlying document.
func (d *PDFDocument) Err() error {
	return d.pdf.Error()
}

// Recover clears a recorded error so later sections can still render, and
// returns it.
func (d *PDFDocument) Recover() error {
	err := d.pdf.Error()
	if err != nil {
		d.pdf.ClearError()
	}
	return err
}

// Pages returns the number of pages started so far.
func (d *PDFDocument) Pages() int {
	return d.pdf.PageNo()
}

// WriteTo implements io.WriterTo by serializing the finished document.
func (d *PDFDocument) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if err := d.pdf.Output(cw); err != nil {
		return cw.n, fmt.Errorf("%w: %w", finding.ErrRender, err)
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

func orDefault(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.Default()
}
