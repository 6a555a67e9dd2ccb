package middleware

import (
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Logging creates middleware that logs every incoming update
func Logging(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			start := time.Now()
			err := next(c)

			fields := []zap.Field{
				zap.Int64("user_id", c.Sender().ID),
				zap.Duration("took", time.Since(start)),
			}
			if c.Callback() != nil {
				fields = append(fields, zap.String("callback", c.Callback().Unique))
			} else {
				fields = append(fields, zap.String("text", c.Text()))
			}

			if err != nil {
				logger.Error("Update failed", append(fields, zap.Error(err))...)
			} else {
				logger.Debug("Update handled", fields...)
			}
			return err
		}
	}
}
