package mailer

import (
	"github.com/sirupsen/logrus"
)

// LogGateway writes messages to the application log instead of delivering
// them. Used in development and tests.
type LogGateway struct {
	logger *logrus.Logger
}

// NewLogGateway creates a new LogGateway
func NewLogGateway(logger *logrus.Logger) *LogGateway {
	return &LogGateway{logger: logger}
}

// Send logs the message and reports success
func (g *LogGateway) Send(to, subject, body string) error {
	g.logger.WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
		"bytes":   len(body),
	}).Info("Mail delivery skipped (log gateway)")
	return nil
}

// GetName returns the name of this mail gateway
func (g *LogGateway) GetName() string {
	return "Log Gateway"
}
