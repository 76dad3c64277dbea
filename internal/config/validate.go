package config

import (
	"fmt"
	"strings"

	"github.com/lehigh-university-libraries/clicklabel/internal/images"
	"github.com/lehigh-university-libraries/clicklabel/internal/models"
)

// Reason names one violated configuration rule
type Reason string

const (
	ReasonDataDirEmpty         Reason = "data_dir_empty"
	ReasonResultPathEmpty      Reason = "result_path_empty"
	ReasonLabelsCount          Reason = "labels_count"
	ReasonLabelEmpty           Reason = "label_empty"
	ReasonLabelReserved        Reason = "label_reserved"
	ReasonLabelsDuplicate      Reason = "labels_duplicate"
	ReasonColorsCount          Reason = "colors_count"
	ReasonColorUnknown         Reason = "color_unknown"
	ReasonRowsNotPositive      Reason = "rows_not_positive"
	ReasonColumnsNotPositive   Reason = "columns_not_positive"
	ReasonFontSizeNotPositive  Reason = "font_size_not_positive"
	ReasonMaxTilePxNotPositive Reason = "max_tile_px_not_positive"
)

// Violation is a single failed rule with a human readable detail
type Violation struct {
	Reason Reason
	Detail string
}

// ValidationError collects every violation found by Validate
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Reason, v.Detail))
	}
	return "invalid configuration: " + strings.Join(parts, "; ")
}

// Has reports whether the error includes reason
func (e *ValidationError) Has(reason Reason) bool {
	for _, v := range e.Violations {
		if v.Reason == reason {
			return true
		}
	}
	return false
}

// Validate checks every rule and returns a *ValidationError listing all
// violations, or nil.
func (c *Config) Validate() error {
	var errs []Violation
	add := func(r Reason, format string, args ...any) {
		errs = append(errs, Violation{Reason: r, Detail: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(c.DataDir) == "" {
		add(ReasonDataDirEmpty, "data_dir must be set")
	}
	if strings.TrimSpace(c.ResultPath) == "" {
		add(ReasonResultPathEmpty, "result_path must be set")
	}

	if len(c.Labels) != 2 {
		add(ReasonLabelsCount, "labels must contain exactly 2 entries, got %d", len(c.Labels))
	} else {
		for i, l := range c.Labels {
			switch {
			case strings.TrimSpace(l) == "":
				add(ReasonLabelEmpty, "labels[%d] is empty", i)
			case l == models.NoneSentinel:
				add(ReasonLabelReserved, "labels[%d] %q is reserved for unlabeled images", i, l)
			}
		}
		if c.Labels[0] == c.Labels[1] && c.Labels[0] != "" {
			add(ReasonLabelsDuplicate, "labels must differ, both are %q", c.Labels[0])
		}
	}

	if len(c.Colors) != 2 {
		add(ReasonColorsCount, "colors must contain exactly 2 entries, got %d", len(c.Colors))
	} else {
		for i, col := range c.Colors {
			if _, err := images.ParseColor(col); err != nil {
				add(ReasonColorUnknown, "colors[%d]: %v", i, err)
			}
		}
	}

	if c.Rows <= 0 {
		add(ReasonRowsNotPositive, "rows must be positive, got %d", c.Rows)
	}
	if c.Columns <= 0 {
		add(ReasonColumnsNotPositive, "columns must be positive, got %d", c.Columns)
	}
	if c.FontSize <= 0 {
		add(ReasonFontSizeNotPositive, "font_size must be positive, got %d", c.FontSize)
	}
	if c.MaxTilePx <= 0 {
		add(ReasonMaxTilePxNotPositive, "max_tile_px must be positive, got %d", c.MaxTilePx)
	}

	if len(errs) > 0 {
		return &ValidationError{Violations: errs}
	}
	return nil
}
