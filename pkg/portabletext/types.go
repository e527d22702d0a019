package portabletext

// Block is one entry of a rich content array. Text blocks use Style,
// ListItem, Level, Children and MarkDefs; image blocks use Asset and Alt.
type Block struct {
	Type     string    `json:"_type"`
	Key      string    `json:"_key,omitempty"`
	Style    string    `json:"style,omitempty"`
	ListItem string    `json:"listItem,omitempty"`
	Level    int       `json:"level,omitempty"`
	Children []Span    `json:"children,omitempty"`
	MarkDefs []MarkDef `json:"markDefs,omitempty"`
	Asset    *ImageRef `json:"asset,omitempty"`
	Alt      string    `json:"alt,omitempty"`
}

// Span is a run of text with decorator marks (strong, em) and references to
// mark definitions by key.
type Span struct {
	Type  string   `json:"_type"`
	Key   string   `json:"_key,omitempty"`
	Text  string   `json:"text"`
	Marks []string `json:"marks,omitempty"`
}

// MarkDef is an annotation referenced from span marks, such as a link.
type MarkDef struct {
	Key  string `json:"_key"`
	Type string `json:"_type"`
	Href string `json:"href,omitempty"`
}

// ImageRef points at an uploaded image asset.
type ImageRef struct {
	Ref string `json:"_ref"`
	URL string `json:"url,omitempty"`
}

// IsText reports whether b is a text block.
func (b Block) IsText() bool {
	return b.Type == "" || b.Type == "block"
}

// IsImage reports whether b is an image block.
func (b Block) IsImage() bool {
	return b.Type == "image"
}
