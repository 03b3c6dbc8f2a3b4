package logger

import "log/slog"

const ErrKey = "error"

func Err(err error) slog.Attr {
	return slog.Any(ErrKey, err)
}
