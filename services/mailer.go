package services

import (
	"encoding/json"
	"log"
	"social_posting_ms/dtos/request"

	"github.com/IBM/sarama"
)

type IMailService interface {
	Send(to, subject, body string) error
}

// KafkaMailService publishes mail events to the notification topic; the
// notification service performs the SMTP delivery. Callers in the
// ceremony flow log failures and carry on, a user-facing success never
// depends on deliverability.
type KafkaMailService struct {
	producer sarama.SyncProducer
	topic    string
}

func NewKafkaMailService(brokers []string, topic string) (*KafkaMailService, error) {
	producer, err := sarama.NewSyncProducer(brokers, nil)
	if err != nil {
		return nil, err
	}
	return &KafkaMailService{producer: producer, topic: topic}, nil
}

func (ms *KafkaMailService) Send(to, subject, body string) error {
	data, err := json.Marshal(&request.MailEvent{To: to, Subject: subject, Body: body})
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: ms.topic,
		Value: sarama.StringEncoder(data),
	}
	partition, offset, err := ms.producer.SendMessage(msg)
	if err != nil {
		return err
	}
	log.Printf("mail event for %s sent to partition %d at offset %d", to, partition, offset)
	return nil
}

func (ms *KafkaMailService) Close() error {
	return ms.producer.Close()
}
