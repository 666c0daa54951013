package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutWideWidth is the width at which the recent panel moves beside
	// the form instead of below it.
	LayoutWideWidth = 110

	// RecentPanelWidth is the recent panel width in the wide layout.
	RecentPanelWidth = 44

	// FieldLabelWidth is the label column of the form.
	FieldLabelWidth = 18
)

// Console sizing.
const (
	// ConsoleMinHeight is the smallest console body height.
	ConsoleMinHeight = 5

	// ConsoleMaxHeight caps the console body height.
	ConsoleMaxHeight = 14
)

// Timing constants.
const (
	// ToastLifetime is how long a notification stays on screen.
	ToastLifetime = 5 * time.Second

	// MaxToasts is how many notifications are stacked at once.
	MaxToasts = 3

	// LookupTimeout bounds a metadata lookup.
	LookupTimeout = 20 * time.Second
)
