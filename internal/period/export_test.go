package period

// Exported helpers for testing.
var (
	TestClip              = clip
	TestMinLogDurationCol = minLogDurationWidth
)
