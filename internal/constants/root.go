package constants

const (
	AppName            = "liftlog"
	DefaultKeyringUser = "access-token"
	DefaultConfigDir   = "~/.config/liftlog"
	Version            = "v0.3.0"

	// DefaultAPIURL is used when neither --api-url nor LIFTLOG_API_URL is set
	DefaultAPIURL = "http://localhost:8000"

	// DateFormat is the standard calendar date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// SessionFileName is the JSON file used for token storage when the OS keyring is unavailable
	SessionFileName = "session.json"

	// CacheFileName is the SQLite database holding the offline read cache
	CacheFileName = "cache.db"

	// Defaults applied by the "add set" quick action. The exercise id is
	// resolved at runtime to the first exercise in the catalog.
	DefaultSetReps     = 5
	DefaultSetWeightKg = 20

	// RPE bounds accepted by the backend
	MinRPE = 0
	MaxRPE = 10

	// VoiceUploadField is the multipart field name the voice-ingestion
	// endpoint expects the audio blob under.
	VoiceUploadField = "file"

	// VoiceAudioMIME tags the assembled recording artifact
	VoiceAudioMIME = "audio/webm"

	// VoiceFileName is the filename reported for the uploaded artifact
	VoiceFileName = "audio.webm"
)
