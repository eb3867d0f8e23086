package config

import "strings"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	switch cfg.Mail.Provider {
	case "", MailProviderResend, MailProviderSendGrid:
	default:
		return ErrInvalidMailConfigs
	}

	return nil
}

// EffectiveDSN returns the DSN to hand to the driver, with sslmode=require
// appended when RequireTLS is set and the DSN does not already pin one.
func (db DB) EffectiveDSN() string {
	if !db.RequireTLS || strings.Contains(db.DSN, "sslmode=") {
		return db.DSN
	}

	sep := "?"
	if strings.Contains(db.DSN, "?") {
		sep = "&"
	}

	return db.DSN + sep + "sslmode=require"
}
