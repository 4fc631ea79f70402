package document

import "strings"

const (
	MinColumns = 1
	MaxColumns = 3

	MinFontSize = 10
	MaxFontSize = 24

	DefaultColumns  = 2
	DefaultFontSize = 14
)

// Document is the single editable markdown unit plus its layout preferences.
// Columns is a pure rendering hint: the text is never partitioned, the
// preview flows it through CSS columns.
type Document struct {
	Text     string `json:"text"`
	Columns  int    `json:"columns"`
	FontSize int    `json:"fontSize"`
}

// New returns an empty document with default layout preferences.
func New() Document {
	return Document{
		Columns:  DefaultColumns,
		FontSize: DefaultFontSize,
	}
}

// Default returns the built-in quick-start document shown to first-time users.
func Default() Document {
	return Document{
		Text:     defaultText,
		Columns:  DefaultColumns,
		FontSize: DefaultFontSize,
	}
}

// Clamp forces layout preferences back into their valid ranges.
func (d *Document) Clamp() {
	if d.Columns < MinColumns {
		d.Columns = MinColumns
	}
	if d.Columns > MaxColumns {
		d.Columns = MaxColumns
	}
	if d.FontSize < MinFontSize {
		d.FontSize = MinFontSize
	}
	if d.FontSize > MaxFontSize {
		d.FontSize = MaxFontSize
	}
}

// WordCount counts whitespace-separated words; whitespace-only text counts
// as zero.
func (d Document) WordCount() int {
	trimmed := strings.TrimSpace(d.Text)
	if trimmed == "" {
		return 0
	}
	return len(strings.Fields(trimmed))
}
