package models

import "fmt"

// Category describes one row of the content-type vocabulary. The two flags
// gate which form fields are required: HasContent posts need a body,
// HasImage posts need a hero image. Adding a content type is a data change
// here, never a new branch in handler or service code.
type Category struct {
	Key        string
	Label      string
	HasImage   bool
	HasContent bool
}

// Categories is the fixed vocabulary, in display order.
var Categories = []Category{
	{Key: "news", Label: "News", HasImage: true, HasContent: true},
	{Key: "quote", Label: "Quote", HasImage: false, HasContent: true},
	{Key: "caption", Label: "Caption", HasImage: true, HasContent: false},
	{Key: "motivation", Label: "Motivation", HasImage: false, HasContent: true},
}

// CategoryByKey looks up a category row.
func CategoryByKey(key string) (Category, bool) {
	for _, c := range Categories {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

// ValidateCategories checks the vocabulary at startup so a bad edit to the
// table fails fast instead of surfacing as odd validation behavior later.
func ValidateCategories() error {
	seen := make(map[string]bool, len(Categories))
	for _, c := range Categories {
		if c.Key == "" {
			return fmt.Errorf("category with empty key (label %q)", c.Label)
		}
		if c.Label == "" {
			return fmt.Errorf("category %q has no label", c.Key)
		}
		if seen[c.Key] {
			return fmt.Errorf("duplicate category key %q", c.Key)
		}
		seen[c.Key] = true
	}
	return nil
}
