package mq

import (
	"encoding/json"
	"log"

	"wx-pay-api/internal/dal"

	"github.com/streadway/amqp"
)

// Publisher 把事件发布到 payment_events 交换机
type Publisher struct{}

func NewPublisher() *Publisher { return &Publisher{} }

func (p *Publisher) Publish(topic string, msg any) error {
	if dal.RabbitCh == nil {
		return nil
	}
	b, _ := json.Marshal(msg)
	err := dal.RabbitCh.Publish(
		"payment_events",
		topic,
		false, false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         b,
		},
	)
	if err != nil {
		log.Printf("publish %s failed: %v", topic, err)
	}
	return err
}
