package common

// AccessTokenHeaderName is the HTTP header carrying the access token on
// authenticated requests.
const AccessTokenHeaderName = "Authorization"

// Local profile store keys. LegacyProfileKey holds the pre-migration local
// profile shape; BackupProfileKey holds the post-reconciliation merged user
// snapshot written through on every resolution.
const (
	LegacyProfileKey = "stujob_user"
	BackupProfileKey = "stujob_user_backup"
)

// Profile completion percentages assigned by the reconciliation flows.
const (
	CompletionSynthesized = 40 // default profile created on first sign-in
	CompletionRegistered  = 60 // profile created during registration
	CompletionMigrated    = 80 // profile seeded from a migrated local record
	CompletionTransient   = 50 // transient user fabricated on unconfirmed-email login
	CompletionBasic       = 30 // last-resort basic user
)
