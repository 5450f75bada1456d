package printer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Receipt layout in millimetres.
const (
	ticketWidth  = 80.0
	ticketMargin = 5.0
	lineHeight   = 6.0
	fontSize     = 12.0
)

// PDF writes each ticket as a receipt-sized single-page PDF into a directory.
type PDF struct {
	dir string
	now func() time.Time

	mu  sync.Mutex
	seq int
}

// NewPDF creates a PDF printer writing into dir.
func NewPDF(dir string) *PDF {
	return &PDF{dir: dir, now: time.Now}
}

// SetClock replaces the time source (for testing).
func (p *PDF) SetClock(now func() time.Time) {
	p.now = now
}

// Print implements Printer.
func (p *PDF) Print(ctx context.Context, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(p.dir, 0700); err != nil {
		return fmt.Errorf("create ticket directory: %w", err)
	}

	p.mu.Lock()
	p.seq++
	name := fmt.Sprintf("ticket-%s-%03d.pdf", p.now().Format("20060102-150405"), p.seq)
	p.mu.Unlock()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(ticketMargin, ticketMargin, ticketMargin)
	pdf.SetAutoPageBreak(false, ticketMargin)
	pdf.SetFont("Courier", "", fontSize)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := tr(content)
	lines := pdf.SplitLines([]byte(text), ticketWidth-2*ticketMargin)
	height := 2*ticketMargin + float64(len(lines))*lineHeight

	pdf.AddPageFormat("P", gofpdf.SizeType{Wd: ticketWidth, Ht: height})
	pdf.MultiCell(0, lineHeight, text, "", "L", false)

	path := filepath.Join(p.dir, name)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write ticket: %w", err)
	}
	return nil
}
