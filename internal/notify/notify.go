package notify

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shiftwise-dev/shiftwise/backend/internal/config"
	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
	"github.com/shiftwise-dev/shiftwise/backend/internal/repository"
)

// Dispatcher stores a notification for the in-app feed and queues the
// matching email for the mail worker.
type Dispatcher struct {
	cfg         *config.Config
	repository  *repository.Repository
	mailChannel *amqp.Channel
}

func NewDispatcher(cfg *config.Config, repository *repository.Repository, mailChannel *amqp.Channel) *Dispatcher {
	return &Dispatcher{
		cfg:         cfg,
		repository:  repository,
		mailChannel: mailChannel,
	}
}

func (d *Dispatcher) Send(companyID int64, userID int64, message string, link string, meta map[string]string) error {
	if meta == nil {
		meta = map[string]string{}
	}
	notification := &domain.Notification{
		CompanyID: companyID,
		UserID:    userID,
		Message:   message,
		Link:      link,
		Meta:      meta,
	}
	if err := d.repository.CreateNotification(notification); err != nil {
		return err
	}

	user, err := d.repository.GetUserByID(userID)
	if err != nil {
		return err
	}

	mailMessage := domain.MailMessage{
		Type: domain.MailTypeNotification,
		To:   user.Email,
		Data: domain.NotificationMailData{
			FullName: user.FullName,
			Message:  message,
			Link:     link,
		},
	}

	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(d.cfg.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return d.mailChannel.PublishWithContext(
		ctx,
		"",
		"notification_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	)
}
