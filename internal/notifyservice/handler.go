package notifyservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/exp/rand"

	"github.com/iosebkhe/blog-list-full-stack/internal/common"
)

const blogCreatedTemplate = "blog_created.html"

func NewNotifyService(mb common.MessageConsumer, m Mailer, recipient string, logger Logger) *NotifyService {
	ctx, cancel := context.WithCancel(context.Background())
	return &NotifyService{
		mb:         mb,
		m:          m,
		logger:     logger,
		recipient:  recipient,
		maxRetries: 5,
		baseDelay:  500 * time.Millisecond,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// SendBlogCreatedNotifications starts a goroutine that mails the recipient for
// every blog.created event. It returns once the consumer is registered.
func (s *NotifyService) SendBlogCreatedNotifications() error {
	msgs, err := s.mb.Consume(common.BlogCreatedKey, common.BlogExchange, common.BlogCreatedQueue)
	if err != nil {
		return err
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				s.handleBlogCreated(msg)

			case <-s.ctx.Done():
				s.logger.Info("stopping blog notifications")
				return
			}
		}
	}()

	return nil
}

func (s *NotifyService) handleBlogCreated(msg amqp.Delivery) {
	var event common.BlogEvent

	if err := json.Unmarshal(msg.Body, &event); err != nil {
		s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
		msg.Ack(false)
		return
	}

	// exponential backoff with full jitter
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		err := s.m.send(s.recipient, event, blogCreatedTemplate)
		if err == nil {
			s.logger.Info("blog notification sent", slog.String("blog_id", event.BlogID))
			msg.Ack(false)
			return
		}

		delay := time.Duration(rand.Int63n(int64(s.baseDelay) << uint(attempt)))
		s.logger.Info("delaying blog notification", slog.String("blog_id", event.BlogID), slog.Int("attempt", attempt), slog.Duration("delay", delay))

		select {
		case <-time.After(delay):
		case <-s.ctx.Done():
			return
		}
	}

	s.logger.Error("could not send blog notification", slog.String("blog_id", event.BlogID))
	msg.Ack(false)
}

// Close stops the consumer goroutine and waits for it to return.
func (s *NotifyService) Close() {
	s.cancel()
	s.wg.Wait()
}
