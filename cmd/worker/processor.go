package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/aws/aws-lambda-go/events"

	"github.com/sai-laundry/laundry-backend/internal/aws"
	"github.com/sai-laundry/laundry-backend/internal/orders"
)

// Processor consumes order-created events: it emits business metrics and
// marks the order notified. Both steps are safe to repeat, so redelivered
// messages do no harm beyond a duplicate metric point.
type Processor struct {
	orderStore *orders.Store
	metrics    *aws.MetricsEmitter
}

// NewProcessor creates a worker processor with AWS clients injected.
func NewProcessor(clients *aws.AWSClients, ordersTable string) *Processor {
	return &Processor{
		orderStore: orders.NewStore(clients.DynamoDB, ordersTable),
		metrics:    aws.NewMetricsEmitter(clients.CloudWatch),
	}
}

// Handle receives an SQS batch event and processes each message.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			// Return error: Lambda will retry. If failed too many times, message goes to DLQ.
			log.Printf("worker error: %v", err)
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var ev aws.OrderEvent
	if err := json.Unmarshal([]byte(rec.Body), &ev); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}

	log.Printf("[worker] received order=%s number=%d", ev.OrderID, ev.OrderNumber)

	order, err := p.orderStore.Get(ctx, ev.OrderID)
	if err != nil {
		return fmt.Errorf("failed to fetch order: %w", err)
	}
	if order == nil {
		// lets the message age into the DLQ
		return fmt.Errorf("order not found: %s", ev.OrderID)
	}
	if order.Notified {
		log.Printf("[worker] duplicate event for order=%s", ev.OrderID)
		return nil
	}

	if err := p.metrics.EmitOrderCreated(ctx, order.TotalAmount); err != nil {
		return fmt.Errorf("failed to emit metrics: %w", err)
	}

	// the customer confirmation goes out here; for now the log line is it
	log.Printf("[worker] order #%d confirmed for %s (%s), total %.2f",
		order.OrderNumber, order.UserName, order.UserMobile, order.TotalAmount)

	if err := p.orderStore.MarkNotified(ctx, ev.OrderID); err != nil {
		return fmt.Errorf("failed to mark notified: %w", err)
	}

	log.Printf("[worker] completed order=%s", ev.OrderID)
	return nil
}
