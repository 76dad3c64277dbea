package models

import "time"

// NoneSentinel is how an unlabeled state is written to the result file
const NoneSentinel = "None"

// TimestampLayout matches "YYYY-MM-DD HH:MM:SS"
const TimestampLayout = "2006-01-02 15:04:05"

// Label is either unlabeled or carries one of the two configured label names
type Label struct {
	value string
	set   bool
}

// Unlabeled returns the empty label
func Unlabeled() Label {
	return Label{}
}

// Labeled returns a label carrying value
func Labeled(value string) Label {
	return Label{value: value, set: true}
}

// ParseLabel reads a label as stored in the result file
func ParseLabel(s string) Label {
	if s == NoneSentinel || s == "" {
		return Unlabeled()
	}
	return Labeled(s)
}

// IsSet reports whether the label carries a value
func (l Label) IsSet() bool {
	return l.set
}

// Value returns the label name, or "" when unlabeled
func (l Label) Value() string {
	return l.value
}

// String renders the label the way it is persisted
func (l Label) String() string {
	if !l.set {
		return NoneSentinel
	}
	return l.value
}

// ResultRecord is one row of the result table
type ResultRecord struct {
	Filename  string
	Label     Label
	Timestamp string
	Extra     []string // values for columns beyond the core three
}

// Done reports whether the record carries a label
func (r ResultRecord) Done() bool {
	return r.Label.IsSet()
}

// FormatTimestamp renders t in the result file layout
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// TileView is the client-facing state of one grid cell
type TileView struct {
	Index        int    `json:"index"`
	Path         string `json:"path"`
	Title        string `json:"title"`
	Label        string `json:"label"`
	Labeled      bool   `json:"labeled"`
	Timestamp    string `json:"timestamp"`
	Caption      string `json:"caption"`
	CaptionColor string `json:"caption_color"`
	ImageURL     string `json:"image_url"`
}

// LegendEntry describes which mouse button applies which label
type LegendEntry struct {
	Button string `json:"button"`
	Label  string `json:"label"`
	Color  string `json:"color"`
}

// PageView is the client-facing state of the grid currently displayed
type PageView struct {
	SessionID string        `json:"session_id"`
	Title     string        `json:"title"`
	Rows      int           `json:"rows"`
	Columns   int           `json:"columns"`
	FontSize  int           `json:"font_size"`
	Page      int           `json:"page"`
	Total     int           `json:"total_images"`
	Version   uint64        `json:"version"` // increases with every change
	Tiles     []TileView    `json:"tiles"`
	Legend    []LegendEntry `json:"legend"`
	Closed    bool          `json:"closed"`
}

// Summary aggregates a result table for reporting
type Summary struct {
	ResultPath   string         `json:"result_path"`
	Total        int            `json:"total"`
	Labeled      int            `json:"labeled"`
	Unlabeled    int            `json:"unlabeled"`
	Counts       map[string]int `json:"counts"`
	LastLabeled  string         `json:"last_labeled,omitempty"`
	FirstLabeled string         `json:"first_labeled,omitempty"`
}
