package domain

const (
	DefaultRemoteURL             = "https://media.githubusercontent.com/media/Uncreate/EssaiControlPanel/refs/heads/main/MasterToolDatabase.txt"
	DefaultLocalFileName         = "MasterToolDatabase.txt"
	DefaultSource                = SourceOnline
	DefaultRequestTimeoutSeconds = 30
	DefaultWatchLocal            = true
	DefaultLogLevel              = "info"
	DefaultLogFormat             = "console"
	LocalSourceWarning           = "You are using the LOCAL database. Data may be outdated. Use only for testing."
)
