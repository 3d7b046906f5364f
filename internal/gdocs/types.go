package gdocs

import (
	"encoding/json"
	"sort"
)

// Document is a Google Docs document snapshot. Snapshots are fetched
// fresh per operation and never mutated in place.
type Document struct {
	DocumentID string `json:"documentId"`
	Title      string `json:"title"`
	Tabs       []*Tab `json:"tabs,omitempty"`

	// Body is only populated for legacy documents without tabs.
	Body *Body `json:"body,omitempty"`
}

// Tab is one node of a document's tab tree.
type Tab struct {
	TabProperties TabProperties `json:"tabProperties"`
	DocumentTab   *DocumentTab  `json:"documentTab,omitempty"`
	ChildTabs     []*Tab        `json:"childTabs,omitempty"`
}

// TabProperties carries the stable tab identifier and the
// human-assigned title. Titles are not guaranteed unique.
type TabProperties struct {
	TabID       string `json:"tabId"`
	Title       string `json:"title"`
	Index       int    `json:"index"`
	ParentTabID string `json:"parentTabId,omitempty"`
}

// DocumentTab is the content of a single tab.
type DocumentTab struct {
	Body          *Body                   `json:"body,omitempty"`
	Lists         map[string]List         `json:"lists,omitempty"`
	InlineObjects map[string]InlineObject `json:"inlineObjects,omitempty"`
}

// Body is an offset-addressed content stream. Element ranges partition
// the stream contiguously; all offsets are UTF-16 code units.
type Body struct {
	Content []StructuralElement `json:"content,omitempty"`
}

// StartOffset returns the first text-addressable offset of the body.
// The leading section break occupies the stream before the first
// paragraph, so text normally begins at 1.
func (b *Body) StartOffset() int64 {
	if b != nil {
		for _, el := range b.Content {
			if el.SectionBreak == nil {
				return el.StartIndex
			}
		}
	}
	return 1
}

// EndOffset returns the last valid insertion point inside the body,
// one before the newline that terminates the final paragraph. Text
// inserted here lands inside the tab, not past it.
func (b *Body) EndOffset() int64 {
	if b == nil || len(b.Content) == 0 {
		return 1
	}
	last := b.Content[len(b.Content)-1]
	if last.EndIndex <= 1 {
		return 1
	}
	return last.EndIndex - 1
}

// StreamLength is the editable length of the body in UTF-16 code units.
func (b *Body) StreamLength() int64 {
	n := b.EndOffset() - b.StartOffset()
	if n < 0 {
		return 0
	}
	return n
}

// StructuralElement is one block-level unit of a content stream. The
// remote API is extensible: kinds this layer does not model are
// recorded by field name in Unknown so rendering can surface them
// instead of dropping them.
type StructuralElement struct {
	StartIndex int64 `json:"startIndex,omitempty"`
	EndIndex   int64 `json:"endIndex,omitempty"`

	Paragraph       *Paragraph       `json:"paragraph,omitempty"`
	Table           *Table           `json:"table,omitempty"`
	SectionBreak    *SectionBreak    `json:"sectionBreak,omitempty"`
	TableOfContents *TableOfContents `json:"tableOfContents,omitempty"`

	Unknown []string `json:"-"`
}

func (e *StructuralElement) UnmarshalJSON(data []byte) error {
	type plain StructuralElement
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key := range raw {
		switch key {
		case "startIndex", "endIndex", "paragraph", "table", "sectionBreak", "tableOfContents":
		default:
			p.Unknown = append(p.Unknown, key)
		}
	}
	sort.Strings(p.Unknown)
	*e = StructuralElement(p)
	return nil
}

// Paragraph is a run of inline elements with an optional named style
// and an optional list bullet.
type Paragraph struct {
	Elements       []ParagraphElement `json:"elements,omitempty"`
	ParagraphStyle *ParagraphStyle    `json:"paragraphStyle,omitempty"`
	Bullet         *Bullet            `json:"bullet,omitempty"`
}

type ParagraphStyle struct {
	NamedStyleType string `json:"namedStyleType,omitempty"`
}

// Bullet marks a paragraph as a list item of the referenced list.
type Bullet struct {
	ListID       string `json:"listId"`
	NestingLevel int    `json:"nestingLevel,omitempty"`
}

// ParagraphElement is one inline unit. Unknown kinds are recorded the
// same way as on StructuralElement.
type ParagraphElement struct {
	StartIndex int64 `json:"startIndex,omitempty"`
	EndIndex   int64 `json:"endIndex,omitempty"`

	TextRun             *TextRun             `json:"textRun,omitempty"`
	InlineObjectElement *InlineObjectElement `json:"inlineObjectElement,omitempty"`
	HorizontalRule      *HorizontalRule      `json:"horizontalRule,omitempty"`
	PageBreak           *PageBreak           `json:"pageBreak,omitempty"`

	Unknown []string `json:"-"`
}

func (e *ParagraphElement) UnmarshalJSON(data []byte) error {
	type plain ParagraphElement
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key := range raw {
		switch key {
		case "startIndex", "endIndex", "textRun", "inlineObjectElement", "horizontalRule", "pageBreak":
		default:
			p.Unknown = append(p.Unknown, key)
		}
	}
	sort.Strings(p.Unknown)
	*e = ParagraphElement(p)
	return nil
}

type TextRun struct {
	Content   string     `json:"content"`
	TextStyle *TextStyle `json:"textStyle,omitempty"`
}

type TextStyle struct {
	Bold   bool  `json:"bold,omitempty"`
	Italic bool  `json:"italic,omitempty"`
	Link   *Link `json:"link,omitempty"`
}

type Link struct {
	URL string `json:"url,omitempty"`
}

type InlineObjectElement struct {
	InlineObjectID string `json:"inlineObjectId"`
}

type HorizontalRule struct{}

type PageBreak struct{}

type SectionBreak struct{}

// TableOfContents embeds its own content stream of link paragraphs.
type TableOfContents struct {
	Content []StructuralElement `json:"content,omitempty"`
}

// Table is rows by cells; each cell holds a nested content stream.
type Table struct {
	Rows      int        `json:"rows,omitempty"`
	Columns   int        `json:"columns,omitempty"`
	TableRows []TableRow `json:"tableRows,omitempty"`
}

type TableRow struct {
	TableCells []TableCell `json:"tableCells,omitempty"`
}

type TableCell struct {
	Content []StructuralElement `json:"content,omitempty"`
}

// List holds per-nesting-level glyph properties for one list.
type List struct {
	ListProperties *ListProperties `json:"listProperties,omitempty"`
}

type ListProperties struct {
	NestingLevels []NestingLevel `json:"nestingLevels,omitempty"`
}

type NestingLevel struct {
	GlyphType   string `json:"glyphType,omitempty"`
	GlyphSymbol string `json:"glyphSymbol,omitempty"`
}

// InlineObject is an embedded object (image) referenced from a
// paragraph by id.
type InlineObject struct {
	ObjectID               string                  `json:"objectId"`
	InlineObjectProperties *InlineObjectProperties `json:"inlineObjectProperties,omitempty"`
}

type InlineObjectProperties struct {
	EmbeddedObject *EmbeddedObject `json:"embeddedObject,omitempty"`
}

type EmbeddedObject struct {
	Title           string           `json:"title,omitempty"`
	Description     string           `json:"description,omitempty"`
	ImageProperties *ImageProperties `json:"imageProperties,omitempty"`
}

type ImageProperties struct {
	ContentURI string `json:"contentUri,omitempty"`
}
