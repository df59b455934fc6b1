package domain

// Logo customization type constants. The Type field discriminates which of
// the optional fields are required; Validate is exhaustive over these values.
const (
	LogoTypeNone     = "none"
	LogoTypeText     = "text"
	LogoTypeUpload   = "upload"
	LogoTypeExisting = "existing"
)

// Garment placement constants.
const (
	PlacementLeftChest   = "left-chest"
	PlacementRightChest  = "right-chest"
	PlacementBack        = "back"
	PlacementSleeveLeft  = "sleeve-left"
	PlacementSleeveRight = "sleeve-right"
)

// LogoCustomization is a buyer's branding choice for a slot. Placement order
// and duplicates are meaningless; PlacementCount deduplicates.
type LogoCustomization struct {
	Type       string   `json:"type"`
	Placements []string `json:"placements,omitempty"`
	Text       string   `json:"text,omitempty"`
	FileURL    string   `json:"file_url,omitempty"`
	FileName   string   `json:"file_name,omitempty"`
	FileSize   int64    `json:"file_size,omitempty"`
	LogoID     string   `json:"logo_id,omitempty"`
	Font       string   `json:"font,omitempty"`
	Color      string   `json:"color,omitempty"`
}

// ValidLogoTypes returns the set of valid logo customization types.
func ValidLogoTypes() []string {
	return []string{LogoTypeNone, LogoTypeText, LogoTypeUpload, LogoTypeExisting}
}

// IsValidLogoType checks whether the given type string is a valid logo type.
func IsValidLogoType(t string) bool {
	for _, v := range ValidLogoTypes() {
		if v == t {
			return true
		}
	}
	return false
}

// PlacementCount returns the number of distinct placements.
func (l *LogoCustomization) PlacementCount() int {
	if l == nil {
		return 0
	}
	seen := make(map[string]struct{}, len(l.Placements))
	for _, p := range l.Placements {
		seen[p] = struct{}{}
	}
	return len(seen)
}

// Defects returns human-readable validation defects for this customization.
// An empty slice means the customization is valid for its type.
func (l *LogoCustomization) Defects() []string {
	if l == nil {
		return []string{"Logo option not chosen"}
	}

	switch l.Type {
	case LogoTypeNone:
		// An explicit "no logo" choice is valid on its own.
		return nil
	case LogoTypeText:
		var defects []string
		if l.PlacementCount() == 0 {
			defects = append(defects, "Logo placement not selected")
		}
		if l.Text == "" {
			defects = append(defects, "Logo text is empty")
		}
		return defects
	case LogoTypeUpload:
		var defects []string
		if l.PlacementCount() == 0 {
			defects = append(defects, "Logo placement not selected")
		}
		if l.FileURL == "" {
			defects = append(defects, "Logo file not uploaded")
		}
		return defects
	case LogoTypeExisting:
		var defects []string
		if l.PlacementCount() == 0 {
			defects = append(defects, "Logo placement not selected")
		}
		if l.LogoID == "" {
			defects = append(defects, "Logo not selected")
		}
		return defects
	default:
		return []string{"Logo option not recognised"}
	}
}
