package sms

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LogSender только пишет сообщение в лог. Используется без настроенного провайдера.
type LogSender struct {
	logger *logrus.Logger
}

func NewLogSender(logger *logrus.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, phone, message string) (string, error) {
	id := uuid.NewString()
	s.logger.WithFields(logrus.Fields{
		"sender":     "log",
		"phone":      phone,
		"message_id": id,
	}).Info(message)
	return id, nil
}
