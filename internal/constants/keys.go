package constants

const (
	// Context Keys
	ContextKeyIsLoggedIn = "isLoggedIn"
	ContextKeySettings   = "settings"

	// Session Keys
	SessionKeyAuthenticated = "authenticated"
	SessionKeySuccessFlash  = "success"

	// Setting Keys
	SettingPasswordHash    = "password_hash"
	SettingSiteTitle       = "site_title"
	SettingSiteDescription = "site_description"
	SettingSnapshotCron    = "snapshot_cron"
)
