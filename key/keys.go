// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Module selection.
const (
	DefaultModule = "modules.default"
)

// Outbound HTTP.
const (
	HTTPTimeout   = "http.timeout"
	HTTPRateLimit = "http.rate_limit"
	HTTPUserAgent = "http.user_agent"
)

// Token cache.
const (
	TokenSkew = "token.skew"
)

// Provider fan-out.
const (
	FanoutConcurrency    = "fanout.concurrency"
	FanoutAttemptTimeout = "fanout.attempt_timeout"
)

// Subtitle preference, most preferred language first.
const (
	SubtitlesLanguages = "subtitles.languages"
)

// AnimeOnsen module.
const (
	AnimeOnsenClientID     = "animeonsen.client_id"
	AnimeOnsenClientSecret = "animeonsen.client_secret"
)

// Gojo module.
const (
	GojoFormat = "gojo.format"
)

// Anilist metadata lookups.
const (
	AnilistCacheTTL = "anilist.cache_ttl"
)

// Iconography.
const (
	IconsVariant = "icons.variant"
)

// Logging.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI.
const (
	CliColored = "cli.colored"
)
