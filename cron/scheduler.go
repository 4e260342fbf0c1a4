package cron

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartCron schedules every registered job and starts the scheduler. A panicking job is
// recovered and logged.
func StartCron(log *zap.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.Recover(cronLogger{log})))
	for name, j := range Jobs() {
		name, run := name, j.Run
		if _, err := c.AddFunc(j.Schedule, func() {
			log.Debug("cron job started", zap.String("job", name))
			run()
		}); err != nil {
			return nil, fmt.Errorf("register job %s: %w", name, err)
		}
	}
	c.Start()
	return c, nil
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	log *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Infow(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
