// Package sl содержит мелкие помощники для структурированного логирования
// через slog.
package sl

import "log/slog"

// Err оборачивает ошибку в slog.Attr с ключом "error", чтобы ошибки
// во всех записях лога выглядели одинаково:
//
//	log.Error("failed to cancel order", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
