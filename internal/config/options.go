package config

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
// This is the single source of truth for default values and generator output.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "data_dir", Default: defaultDataDir(), Comment: "Directory for local state; settings live in data_dir/scalemate.db"},
		{Key: "document", Default: "TestMarkdown", Comment: "Bundled Markdown document shown at startup"},

		{Key: "render.style", Default: "dracula", Comment: "Glamour style: dracula, dark, light, notty, ascii, pink, tokyo-night"},
		{Key: "render.word_wrap", Default: 80, Comment: "Wrap rendered Markdown at this column; 0 follows the terminal width"},

		{Key: "usage.session_spacing", Default: "3h", Comment: "Gap after a decent session before actions count toward the next"},
		{Key: "usage.actions_threshold", Default: 4, Comment: "Actions in one session that make it a decent session"},
		{Key: "usage.min_acts_for_review", Default: 5, Comment: "Distinct actions required before asking for a review"},
		{Key: "usage.review_spacing", Default: "720h", Comment: "Minimum time between two review prompts"},
		{Key: "usage.review_delay", Default: "1s", Comment: "Delay before the review prompt is shown"},

		{Key: "review.url", Default: "", Comment: "Store page offered in the review prompt"},

		{Key: "log.file", Default: "", Comment: "Log file; empty means data_dir/scalemate.log, off disables logging"},
		{Key: "log.level", Default: "info", Comment: "Log level: debug, info, warn, error"},
	}
}
