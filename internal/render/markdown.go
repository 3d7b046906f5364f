// Package render converts a tab's structural content stream into
// markdown. Rendering is deterministic and total: every element kind
// has a defined rendering, and kinds this layer does not recognize
// degrade to a visible inline placeholder instead of being dropped.
package render

import (
	"fmt"
	"strings"

	"github.com/dgallion1/docstab/internal/gdocs"
	"github.com/dgallion1/docstab/internal/tabtree"
)

// Tab renders one tab's content stream. Heading levels are the
// author-assigned levels from the document; tab nesting depth never
// shifts them.
func Tab(node *tabtree.Node) string {
	r := &renderer{
		lists:    node.Lists,
		objects:  node.InlineObjects,
		counters: make(map[string][]int),
	}
	if node.Body == nil {
		return ""
	}
	return r.content(node.Body.Content)
}

// TabWithHeader renders a single tab prefixed by a document/tab
// header line.
func TabWithHeader(docTitle string, node *tabtree.Node) string {
	return "# " + docTitle + " — [" + node.Title + "]\n\n" + Tab(node)
}

// Document renders every tab in depth-first tree order, each section
// prefixed by a tab-title marker line whose heading depth mirrors the
// tab hierarchy, so the tree can be reconstructed from the markdown.
func Document(title string, tabs []*tabtree.Node) string {
	// A legacy document surfaces as one synthetic tab with no id; it
	// renders without section markers.
	if len(tabs) == 1 && tabs[0].ID == "" {
		return "# " + title + "\n\n" + Tab(tabs[0])
	}

	sections := make([]string, 0, len(tabs)+1)
	sections = append(sections, "# "+title)
	for _, tab := range tabs {
		marker := strings.Repeat("#", tab.Depth+2) + " [" + tab.Title + "]"
		sections = append(sections, marker+"\n\n"+Tab(tab))
	}
	return strings.Join(sections, "\n\n---\n\n")
}

type renderer struct {
	lists   map[string]gdocs.List
	objects map[string]gdocs.InlineObject

	// ordinal counters per list id, indexed by nesting level
	counters map[string][]int
}

type block struct {
	text string
	list bool
}

func (r *renderer) content(elements []gdocs.StructuralElement) string {
	blocks := r.blocks(elements)

	var sb strings.Builder
	for i, b := range blocks {
		if i > 0 {
			// Consecutive items of a list stay adjacent; every other
			// block boundary gets a blank line.
			if b.list && blocks[i-1].list {
				sb.WriteString("\n")
			} else {
				sb.WriteString("\n\n")
			}
		}
		sb.WriteString(b.text)
	}
	return sb.String()
}

func (r *renderer) blocks(elements []gdocs.StructuralElement) []block {
	var out []block
	for _, el := range elements {
		switch {
		case el.Paragraph != nil:
			if b, ok := r.paragraph(el.Paragraph); ok {
				out = append(out, b)
			}
		case el.Table != nil:
			if text := r.table(el.Table); text != "" {
				out = append(out, block{text: text})
			}
		case el.TableOfContents != nil:
			out = append(out, r.blocks(el.TableOfContents.Content)...)
		case el.SectionBreak != nil:
			// Section breaks carry no renderable text.
		default:
			if len(el.Unknown) == 0 {
				out = append(out, block{text: placeholder("element")})
				continue
			}
			for _, kind := range el.Unknown {
				out = append(out, block{text: placeholder(kind)})
			}
		}
	}
	return out
}

func (r *renderer) paragraph(p *gdocs.Paragraph) (block, bool) {
	text := strings.TrimRight(r.inlines(p.Elements), "\n")

	if p.Bullet != nil {
		indent := strings.Repeat("  ", p.Bullet.NestingLevel)
		marker := "-"
		if r.ordered(p.Bullet.ListID, p.Bullet.NestingLevel) {
			marker = fmt.Sprintf("%d.", r.nextOrdinal(p.Bullet.ListID, p.Bullet.NestingLevel))
		}
		return block{text: indent + marker + " " + text, list: true}, true
	}

	if level := headingLevel(p.ParagraphStyle); level > 0 {
		line := strings.TrimRight(strings.Repeat("#", level)+" "+text, " ")
		return block{text: line}, true
	}

	if text == "" {
		return block{}, false
	}
	return block{text: text}, true
}

// headingLevel maps the remote named styles onto markdown levels.
// TITLE and SUBTITLE are author-level headings too, not tab-relative.
func headingLevel(style *gdocs.ParagraphStyle) int {
	if style == nil {
		return 0
	}
	switch style.NamedStyleType {
	case "HEADING_1", "TITLE":
		return 1
	case "HEADING_2", "SUBTITLE":
		return 2
	case "HEADING_3":
		return 3
	case "HEADING_4":
		return 4
	case "HEADING_5":
		return 5
	case "HEADING_6":
		return 6
	}
	return 0
}

// ordered reports whether the list renders with ordinal markers at the
// given nesting level, from the list's glyph type.
func (r *renderer) ordered(listID string, level int) bool {
	list, ok := r.lists[listID]
	if !ok || list.ListProperties == nil {
		return false
	}
	levels := list.ListProperties.NestingLevels
	if level < 0 || level >= len(levels) {
		return false
	}
	switch levels[level].GlyphType {
	case "DECIMAL", "ZERO_DECIMAL", "ALPHA", "UPPER_ALPHA", "ROMAN", "UPPER_ROMAN":
		return true
	}
	return false
}

func (r *renderer) nextOrdinal(listID string, level int) int {
	counters := r.counters[listID]
	for len(counters) <= level {
		counters = append(counters, 0)
	}
	// Deeper levels restart when a shallower item appears.
	counters = counters[:level+1]
	counters[level]++
	r.counters[listID] = counters
	return counters[level]
}

func (r *renderer) inlines(elements []gdocs.ParagraphElement) string {
	var sb strings.Builder
	for _, el := range elements {
		switch {
		case el.TextRun != nil:
			sb.WriteString(textRun(el.TextRun))
		case el.InlineObjectElement != nil:
			sb.WriteString(r.image(el.InlineObjectElement.InlineObjectID))
		case el.HorizontalRule != nil:
			sb.WriteString("---")
		case el.PageBreak != nil:
			// No markdown equivalent.
		default:
			if len(el.Unknown) == 0 {
				sb.WriteString(placeholder("inline"))
				continue
			}
			for _, kind := range el.Unknown {
				sb.WriteString(placeholder(kind))
			}
		}
	}
	return sb.String()
}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
)

func textRun(run *gdocs.TextRun) string {
	text := mdEscaper.Replace(run.Content)
	style := run.TextStyle
	if style == nil || (!style.Bold && !style.Italic && style.Link == nil) {
		return text
	}

	// Keep surrounding whitespace outside the markers so they bind to
	// the styled text.
	trimmed := strings.TrimLeft(text, " \t\n")
	lead := text[:len(text)-len(trimmed)]
	core := strings.TrimRight(trimmed, " \t\n")
	trail := trimmed[len(core):]
	if core == "" {
		return text
	}

	if style.Italic {
		core = "_" + core + "_"
	}
	if style.Bold {
		core = "**" + core + "**"
	}
	if style.Link != nil && style.Link.URL != "" {
		core = "[" + core + "](" + style.Link.URL + ")"
	}
	return lead + core + trail
}

func (r *renderer) image(objectID string) string {
	if obj, ok := r.objects[objectID]; ok {
		if props := obj.InlineObjectProperties; props != nil && props.EmbeddedObject != nil {
			emb := props.EmbeddedObject
			alt := emb.Title
			if alt == "" {
				alt = emb.Description
			}
			if alt == "" {
				alt = objectID
			}
			if emb.ImageProperties != nil && emb.ImageProperties.ContentURI != "" {
				return "![" + alt + "](" + emb.ImageProperties.ContentURI + ")"
			}
			return "[image: " + alt + "]"
		}
	}
	if objectID == "" {
		return "[image]"
	}
	return "[image: " + objectID + "]"
}

// table renders a markdown pipe table. Cell content is itself a
// content stream; it renders recursively and flattens to one line,
// since markdown cells cannot hold block structure.
func (r *renderer) table(t *gdocs.Table) string {
	if len(t.TableRows) == 0 {
		return ""
	}

	var lines []string
	for i, row := range t.TableRows {
		cells := make([]string, len(row.TableCells))
		for j, cell := range row.TableCells {
			cells[j] = flattenCell(r.content(cell.Content))
		}
		lines = append(lines, "| "+strings.Join(cells, " | ")+" |")
		if i == 0 {
			seps := make([]string, len(cells))
			for j := range seps {
				seps[j] = "---"
			}
			lines = append(lines, "| "+strings.Join(seps, " | ")+" |")
		}
	}
	return strings.Join(lines, "\n")
}

func flattenCell(s string) string {
	s = strings.ReplaceAll(s, "\n\n", "<br>")
	s = strings.ReplaceAll(s, "\n", "<br>")
	return strings.ReplaceAll(s, "|", `\|`)
}

func placeholder(kind string) string {
	return "[[unsupported: " + kind + "]]"
}
