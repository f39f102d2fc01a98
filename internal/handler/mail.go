package handler

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/crewport-dev/staffing-admin/backend/internal/domain"
)

// publishMailMessage はメールをシリアライズしてメールキューに積む。
// 実際の送信は cmd/mail のワーカーが行う。
func (h *Handler) publishMailMessage(mailMessage domain.MailMessage) error {
	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	)
}
