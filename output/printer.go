package output

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/ryclarke/gh-metadata-migrator/config"
)

const (
	// Styled is the colored console output style
	Styled = "styled"
	// Plain is the unstyled console output style, suited to redirected output
	Plain = "plain"
)

// AvailableStyles lists all supported output styles
var AvailableStyles = []string{Styled, Plain}

// Printer writes human-readable per-pair results and validation findings.
// It implements Sink so that it can receive the same records as the CSV log.
type Printer struct {
	mu     sync.Mutex
	w      io.Writer
	plain  bool
	styles printerStyles
}

// NewPrinter returns a Printer writing to w in the configured output style.
func NewPrinter(ctx context.Context, w io.Writer) *Printer {
	if config.Viper(ctx).GetString(config.OutputStyle) == Plain {
		return &Printer{w: w, plain: true, styles: plainStyles()}
	}

	return &Printer{w: w, styles: newPrinterStyles()}
}

// Append prints the outcome of a single pair.
func (p *Printer) Append(record Record) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := fmt.Fprintln(p.w, p.pairLine(record.Status == StatusSuccess, record.Source, record.Target)); err != nil {
		return err
	}

	if record.Status != StatusSuccess && record.Error != "" {
		_, err := fmt.Fprintln(p.w, p.styles.errorText.Render(record.Error))
		return err
	}

	return nil
}

func (p *Printer) pairLine(success bool, source, target string) string {
	switch {
	case success && p.plain:
		return p.styles.pairSuccess.Render(fmt.Sprintf(plainSuccessFormat, source, target))
	case success:
		return p.styles.pairSuccess.Render(fmt.Sprintf(pairSuccessFormat, source, target))
	case p.plain:
		return p.styles.pairError.Render(fmt.Sprintf(plainErrorFormat, source, target))
	default:
		return p.styles.pairError.Render(fmt.Sprintf(pairErrorFormat, source, target))
	}
}

// Report prints the labels and milestones found on the source but missing from the target.
func (p *Printer) Report(source, target string, missingLabels, missingMilestones []string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintln(p.w, p.styles.title.Render(fmt.Sprintf("%s -> %s", source, target)))

	if len(missingLabels) == 0 && len(missingMilestones) == 0 {
		fmt.Fprintln(p.w, p.styles.complete.Render("All labels and milestones present in target repository."))
		return
	}

	for _, name := range missingLabels {
		fmt.Fprintln(p.w, p.styles.missing.Render(fmt.Sprintf(missingLabelFormat, name)))
	}

	for _, title := range missingMilestones {
		fmt.Fprintln(p.w, p.styles.missing.Render(fmt.Sprintf(missingMilestoneFormat, title)))
	}
}

// Failure prints a pair that could not be checked at all.
func (p *Printer) Failure(source, target string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintln(p.w, p.pairLine(false, source, target))
	fmt.Fprintln(p.w, p.styles.errorText.Render(err.Error()))
}

// Footer prints a separator followed by the location of the migration log.
func (p *Printer) Footer(logPath string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintln(p.w, p.styles.separator.Render(separatorLine))
	fmt.Fprintln(p.w, p.styles.path.Render("Migration log: "+logPath))
}
