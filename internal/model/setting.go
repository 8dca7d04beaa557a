package model

import "time"

// Site setting keys the admin panel manages.
const (
	SettingSiteTitle               = "site_title"
	SettingSiteTagline             = "site_tagline"
	SettingContactEmail            = "contact_email"
	SettingEnableDarkMode          = "enable_dark_mode"
	SettingEnableAccessibilityMode = "enable_accessibility_mode"
	SettingEnableAdviceMuseum      = "enable_advice_museum"
	SettingMaxAdvicePerDay         = "max_advice_per_day"
)

// DefaultMaxAdvicePerDay applies when max_advice_per_day is unset or invalid.
const DefaultMaxAdvicePerDay = 5

// KnownSettings lists the keys accepted by the settings endpoint.
var KnownSettings = map[string]bool{
	SettingSiteTitle:               true,
	SettingSiteTagline:             true,
	SettingContactEmail:            true,
	SettingEnableDarkMode:          true,
	SettingEnableAccessibilityMode: true,
	SettingEnableAdviceMuseum:      true,
	SettingMaxAdvicePerDay:         true,
}

// SiteSetting is a single key/value row.
type SiteSetting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
