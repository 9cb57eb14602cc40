package validation

import (
	"strings"
	"testing"
)

func TestValidateGroupName(t *testing.T) {
	if err := ValidateGroupName("아브라함"); err != nil {
		t.Errorf("ValidateGroupName(valid) error = %v", err)
	}
	if err := ValidateGroupName("   "); err == nil {
		t.Error("ValidateGroupName(blank) should fail")
	}
}

func TestValidateCount(t *testing.T) {
	if err := ValidateCount("attended_leaders_count", 0); err != nil {
		t.Errorf("ValidateCount(0) error = %v", err)
	}
	if err := ValidateCount("attended_leaders_count", 12); err != nil {
		t.Errorf("ValidateCount(12) error = %v", err)
	}
	if err := ValidateCount("attended_leaders_count", -1); err == nil {
		t.Error("ValidateCount(-1) should fail")
	}
}

func TestValidateTheme(t *testing.T) {
	if err := ValidateTheme(""); err != nil {
		t.Errorf("empty theme is valid, got error = %v", err)
	}
	if err := ValidateTheme(strings.Repeat("가", MaxThemeLength)); err != nil {
		t.Errorf("theme at limit should pass, got error = %v", err)
	}
	if err := ValidateTheme(strings.Repeat("가", MaxThemeLength+1)); err == nil {
		t.Error("theme over limit should fail")
	}
}
