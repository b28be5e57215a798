package tui

// Timer theme
const (
	ColorPrimaryText   = "#E6EAF2"
	ColorSecondaryText = "#B1B8C7"
	ColorDisabledText  = "#6D7383"

	ColorAccentBright = "#A78BFA"

	// Session status colors
	ColorError   = "#EF4444"
	ColorSuccess = "#22C55E" // ACTIVE
	ColorWarning = "#F59E0B" // PAUSED
)
