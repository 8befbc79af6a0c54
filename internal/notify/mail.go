package notify

import (
	"github.com/alexivanou/cityinfo-api/internal/config"
	"go.uber.org/zap"
)

// MailService delivers operational notification mails. Delivery is
// best-effort: callers must never fail a request because a mail was lost.
type MailService interface {
	Send(subject, message string)
}

// LocalMailService writes mails to the log instead of delivering them
type LocalMailService struct {
	logger *zap.Logger
	cfg    config.MailConfig
}

// NewLocalMailService creates a log-backed mail service
func NewLocalMailService(logger *zap.Logger, cfg config.MailConfig) *LocalMailService {
	return &LocalMailService{logger: logger, cfg: cfg}
}

// Send logs the mail with its envelope addresses
func (s *LocalMailService) Send(subject, message string) {
	s.logger.Info("Mail sent",
		zap.String("from", s.cfg.From),
		zap.String("to", s.cfg.To),
		zap.String("subject", subject),
		zap.String("message", message),
	)
}
