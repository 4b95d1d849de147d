package config

// maskedValue replaces secret config fields in log output.
const maskedValue = "***"

// Redacted returns a copy of the config safe to hand to a log sink: the
// bootstrap admin password, the session-signing secret, and the database DSN
// (which may embed credentials) are masked. Empty secrets stay empty so logs
// still show which ones were configured.
func (c *StructuredConfig) Redacted() StructuredConfig {
	redacted := *c
	redacted.App.SessionSignKey = mask(redacted.App.SessionSignKey)
	redacted.Bootstrap.AdminPassword = mask(redacted.Bootstrap.AdminPassword)
	redacted.Storage.DB.DSN = mask(redacted.Storage.DB.DSN)
	return redacted
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return maskedValue
}
