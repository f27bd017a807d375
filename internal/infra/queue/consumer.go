package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/ligue-cursos/internal/usecase"
)

// MessageHandler é o contrato do motor de conversa visto pela fila.
type MessageHandler interface {
	Execute(ctx context.Context, input usecase.MessageInput) error
}

// Consumer drena q.messages.inbound com um único loop. Falha de UMA
// mensagem nunca para o consumo: vai pra DLQ e o loop segue.
type Consumer struct {
	Channel *amqp.Channel
	Handler MessageHandler
}

func NewConsumer(ch *amqp.Channel, handler MessageHandler) *Consumer {
	return &Consumer{
		Channel: ch,
		Handler: handler,
	}
}

func (c *Consumer) Start(ctx context.Context, queueName string) error {
	msgs, err := c.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		return err
	}

	log.Printf(" [*] Consumer rodando e aguardando na fila '%s'", queueName)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Consumer encerrado")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			c.handleDelivery(ctx, d)
		}
	}
}

func (c *Consumer) handleDelivery(ctx context.Context, d amqp.Delivery) {
	var msg InboundMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		log.Printf("❌ [CONSUMER] JSON inválido: %s", err)
		// Mensagem podre. Rejeita sem requeue para não travar a fila.
		d.Nack(false, false)
		return
	}

	input := usecase.MessageInput{From: msg.From, Body: msg.Body}

	if err := c.Handler.Execute(ctx, input); err != nil {
		log.Printf("❌ [CONSUMER] Erro ao processar mensagem de %s: %s", msg.From, err)
		// Sem retry automático: a mensagem vai pra DLQ e o loop continua
		d.Nack(false, false)
		return
	}

	d.Ack(false)
}
