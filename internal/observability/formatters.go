// Package observability provides formatted output utilities for verbose mode.
package observability

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonathan/social-amplifier/internal/types"
)

// boxWidth is the default width for formatted output boxes
const boxWidth = 60

// Printer handles formatted artifact output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer.
// A nil writer defaults to stdout.
func NewPrinter(out io.Writer) *Printer {
	if out == nil {
		out = os.Stdout
	}
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSummary outputs the generated blog summary.
func (p *Printer) PrintSummary(summary string) {
	p.printBox("Summary", summary)
}

// PrintPosts outputs each generated platform post.
func (p *Printer) PrintPosts(posts []types.PlatformPost) {
	for _, post := range posts {
		p.printBox(fmt.Sprintf("Post [%s]", post.Platform), post.Text)
	}
}

// PrintReview outputs the reviewer's critique of the posts.
func (p *Printer) PrintReview(review string) {
	p.printBox("Review", review)
}

// PrintAsset outputs the published image reference.
func (p *Printer) PrintAsset(asset *types.ImageAsset) {
	if asset == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("URL:       %s\n", asset.URL))
	sb.WriteString(fmt.Sprintf("Public ID: %s\n", asset.PublicID))
	sb.WriteString(fmt.Sprintf("Format:    %s", asset.Format))
	if asset.Size != nil {
		sb.WriteString(fmt.Sprintf("\nSize:      %d bytes", *asset.Size))
	}
	p.printBox("Image Asset", sb.String())
}
