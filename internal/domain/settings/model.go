package settings

// Known setting keys. The settings table is a small key-value store loaded
// and replaced wholesale; unknown keys are rejected on write.
const (
	KeySystemName            = "system_name"
	KeyRequireStrongPassword = "require_strong_password"
	KeySessionTimeout        = "session_timeout"
	KeyMaxLoginAttempts      = "max_login_attempts"
	KeyEnableAuditLog        = "enable_audit_log"
)

// Defaults returns a fresh copy of the settings applied on first boot.
func Defaults() map[string]string {
	return map[string]string{
		KeySystemName:            "ClinicDesk",
		KeyRequireStrongPassword: "true",
		KeySessionTimeout:        "30",
		KeyMaxLoginAttempts:      "5",
		KeyEnableAuditLog:        "true",
	}
}

func knownKey(k string) bool {
	switch k {
	case KeySystemName, KeyRequireStrongPassword, KeySessionTimeout,
		KeyMaxLoginAttempts, KeyEnableAuditLog:
		return true
	}
	return false
}
