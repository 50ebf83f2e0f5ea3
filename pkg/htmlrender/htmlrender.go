// Package htmlrender writes a filled grid out as a self-contained HTML page:
// a CSS grid of one div per half-cell plus two paragraphs of numbered hints,
// one per direction.
//
// Grounded in the teacher's original Rust source, html.rs -- the div-per-
// half-cell layout, its class names and the two hint paragraphs are carried
// over unchanged, translated from PrintItem into this module's printstream.Item.
package htmlrender

import (
	"fmt"
	"io"

	"github.com/crossgenio/crossgen/pkg/grid"
	"github.com/crossgenio/crossgen/pkg/printstream"
)

const css = `
.solution {
    font: 22px monospace;
    text-align: center;
    position: absolute;
    left: 0px;
    right: 0px;
    bottom: 0px;
}
.hint {
    font: 8px monospace;
    color: Gray;
    position: absolute;
}
.row {
    overflow: hidden;
    float: left;
}
.row > div:nth-child(even) { width: 30px; }
.row > div:nth-child(odd) { width: 2px; }
.row > div {
    float: left;
    position: relative;
}
.low { height: 2px; }
.high { height: 30px; }
.dark { background-color: DarkBlue; }
.light { background-color: LightGray; }
.blockcol { background-color: DarkBlue; }
`

func borderClass(on bool) string {
	if on {
		return "dark"
	}
	return "light"
}

func divFor(item printstream.Item, showSolution bool) string {
	switch item.Kind {
	case printstream.HorizBorder, printstream.Cross:
		return fmt.Sprintf(`<div class="low %s"></div>`, borderClass(item.Thick))
	case printstream.VertBorder:
		return fmt.Sprintf(`<div class="high %s"></div>`, borderClass(item.Thick))
	case printstream.Block:
		return `<div class="high blockcol"></div>`
	case printstream.CharHint:
		hint := ""
		if item.HasHint {
			hint = fmt.Sprintf("%d", item.HintNumber)
		}
		solution := "&nbsp;"
		if showSolution {
			solution = string(item.Char)
		}
		return fmt.Sprintf(
			`<div class="high"><span class="hint">%s</span><span class="solution">%s</span></div>`,
			hint, solution)
	case printstream.LineBreak:
		return `</div><div class="row">`
	default:
		return ""
	}
}

func writeGrid(w io.Writer, items []printstream.Item, showSolution bool) error {
	if _, err := fmt.Fprintln(w, `<div class="row">`); err != nil {
		return err
	}
	for _, item := range items {
		if _, err := io.WriteString(w, divFor(item, showSolution)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "</div>")
	return err
}

func directionLabel(dir grid.Direction) string {
	if dir == grid.Across {
		return "Horizontal"
	}
	return "Vertical"
}

func wordAt(entry *grid.Entry) string {
	runes := make([]rune, len(entry.Cells))
	for i, c := range entry.Cells {
		runes[i] = c.Letter
	}
	return string(runes)
}

func writeHints(w io.Writer, board *grid.Board, dir grid.Direction, hintText map[string]string) error {
	if _, err := fmt.Fprintf(w, "<p><br><b>%s:</b>&nbsp;\n", directionLabel(dir)); err != nil {
		return err
	}
	for _, entry := range board.Entries {
		if entry.Direction != dir {
			continue
		}
		word := wordAt(entry)
		hint, ok := hintText[word]
		if !ok {
			hint = fmt.Sprintf("[%s]", word)
		}
		if _, err := fmt.Fprintf(w, "<b>%d.</b> %s &nbsp;", entry.Number, hint); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "</p>")
	return err
}

// Write renders g as a full HTML page to w. When showSolution is false,
// filled cells show a blank square instead of their letter, so the page can
// double as a printable puzzle. hintText maps each word to its clue text;
// words missing from the map fall back to "[WORD]" as a placeholder.
func Write(w io.Writer, g *grid.Grid, showSolution bool, hintText map[string]string) error {
	board := g.Materialize()
	items := printstream.Collect(printstream.NewSolution(g))

	if _, err := fmt.Fprintln(w, `<!doctype html>`); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, `<head>`); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, `<meta charset="utf-8" />`); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, `<style type="text/css">%s</style>`+"\n", css); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, `<title>Crosswords</title>`); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, `</head><body>`); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, `<div style="width: %dpx">`+"\n", board.Width*32+2); err != nil {
		return err
	}
	if err := writeGrid(w, items, showSolution); err != nil {
		return fmt.Errorf("htmlrender: writing grid: %w", err)
	}
	if _, err := fmt.Fprintln(w, `</div><br><div style="clear: both"></div>`); err != nil {
		return err
	}
	if err := writeHints(w, board, grid.Across, hintText); err != nil {
		return fmt.Errorf("htmlrender: writing across hints: %w", err)
	}
	if err := writeHints(w, board, grid.Down, hintText); err != nil {
		return fmt.Errorf("htmlrender: writing down hints: %w", err)
	}
	_, err := fmt.Fprintln(w, "<br></body>")
	return err
}
