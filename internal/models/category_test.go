package models

import "testing"

func TestCategoryByKey(t *testing.T) {
	cat, ok := CategoryByKey("news")
	if !ok {
		t.Fatal("news category should exist")
	}
	if !cat.HasImage || !cat.HasContent {
		t.Errorf("news should carry both image and content, got %+v", cat)
	}

	if _, ok := CategoryByKey("podcast"); ok {
		t.Error("unknown key should not resolve")
	}
}

func TestCategoryCapabilities(t *testing.T) {
	tests := []struct {
		key        string
		hasImage   bool
		hasContent bool
	}{
		{"news", true, true},
		{"quote", false, true},
		{"caption", true, false},
		{"motivation", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cat, ok := CategoryByKey(tt.key)
			if !ok {
				t.Fatalf("category %q should exist", tt.key)
			}
			if cat.HasImage != tt.hasImage {
				t.Errorf("%s HasImage = %v, want %v", tt.key, cat.HasImage, tt.hasImage)
			}
			if cat.HasContent != tt.hasContent {
				t.Errorf("%s HasContent = %v, want %v", tt.key, cat.HasContent, tt.hasContent)
			}
		})
	}
}

func TestValidateCategories(t *testing.T) {
	if err := ValidateCategories(); err != nil {
		t.Errorf("builtin vocabulary should validate, got %v", err)
	}
}

func TestValidateCategoriesRejectsBadTable(t *testing.T) {
	original := Categories
	defer func() { Categories = original }()

	Categories = []Category{{Key: "news", Label: "News"}, {Key: "news", Label: "Again"}}
	if err := ValidateCategories(); err == nil {
		t.Error("duplicate keys should fail validation")
	}

	Categories = []Category{{Key: "", Label: "Nameless"}}
	if err := ValidateCategories(); err == nil {
		t.Error("empty key should fail validation")
	}
}
