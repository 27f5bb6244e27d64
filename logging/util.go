package logging

import "log/slog"

// LevelFromString maps a configured level name ("DEBUG", "info", ...)
// onto a slog level. Nil and unrecognized values fall back to info so a
// typo in the config never silences the log.
func LevelFromString(str *string) slog.Level {
	if str == nil {
		return slog.LevelInfo
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(*str)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
