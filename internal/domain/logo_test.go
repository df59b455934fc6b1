package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// LogoCustomization.PlacementCount Tests
// ============================================================================

func TestPlacementCount_Deduplicates(t *testing.T) {
	l := &LogoCustomization{Placements: []string{PlacementBack, PlacementBack, PlacementLeftChest}}
	assert.Equal(t, 2, l.PlacementCount())
}

func TestPlacementCount_Nil(t *testing.T) {
	var l *LogoCustomization
	assert.Equal(t, 0, l.PlacementCount())
}

// ============================================================================
// LogoCustomization.Defects Tests
// ============================================================================

func TestDefects_NoneTypeIsValid(t *testing.T) {
	l := &LogoCustomization{Type: LogoTypeNone}
	assert.Empty(t, l.Defects())
}

func TestDefects_TextRequiresTextAndPlacement(t *testing.T) {
	l := &LogoCustomization{Type: LogoTypeText}
	defects := l.Defects()
	assert.Contains(t, defects, "Logo placement not selected")
	assert.Contains(t, defects, "Logo text is empty")
}

func TestDefects_UploadRequiresFileURL(t *testing.T) {
	l := &LogoCustomization{Type: LogoTypeUpload, Placements: []string{PlacementBack}}
	assert.Equal(t, []string{"Logo file not uploaded"}, l.Defects())
}

func TestDefects_ExistingRequiresLogoID(t *testing.T) {
	l := &LogoCustomization{Type: LogoTypeExisting, Placements: []string{PlacementBack}}
	assert.Equal(t, []string{"Logo not selected"}, l.Defects())
}

func TestDefects_ValidText(t *testing.T) {
	l := &LogoCustomization{
		Type:       LogoTypeText,
		Placements: []string{PlacementLeftChest},
		Text:       "Unifit",
	}
	assert.Empty(t, l.Defects())
}

func TestDefects_UnknownType(t *testing.T) {
	l := &LogoCustomization{Type: "embossed"}
	assert.Equal(t, []string{"Logo option not recognised"}, l.Defects())
}

func TestIsValidLogoType(t *testing.T) {
	assert.True(t, IsValidLogoType(LogoTypeUpload))
	assert.False(t, IsValidLogoType("embossed"))
}
