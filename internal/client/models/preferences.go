package models

// Preferences are the user-tunable switches persisted in the settings store.
type Preferences struct {
	HideSensitiveData  bool
	DisableSharing     bool
	UseDefaultQuantity bool
	DefaultQuantity    int
}

// DefaultPreferences is what a fresh store reports.
func DefaultPreferences() Preferences {
	return Preferences{DefaultQuantity: 1}
}
