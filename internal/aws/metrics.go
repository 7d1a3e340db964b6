package aws

import (
	"context"
	"fmt"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const metricNamespace = "SaiLaundry/Orders"

// MetricsEmitter publishes business metrics for created orders.
type MetricsEmitter struct {
	client  CloudWatchAPI
	nowFunc func() time.Time
}

// NewMetricsEmitter returns a MetricsEmitter backed by the given client.
func NewMetricsEmitter(client CloudWatchAPI) *MetricsEmitter {
	return &MetricsEmitter{
		client:  client,
		nowFunc: time.Now,
	}
}

// EmitOrderCreated records one OrderCreated count and the order value.
func (m *MetricsEmitter) EmitOrderCreated(ctx context.Context, totalAmount float64) error {
	now := m.nowFunc()
	input := &cloudwatch.PutMetricDataInput{
		Namespace: sdkaws.String(metricNamespace),
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: sdkaws.String("OrderCreated"),
				Timestamp:  &now,
				Unit:       cwtypes.StandardUnitCount,
				Value:      sdkaws.Float64(1),
			},
			{
				MetricName: sdkaws.String("OrderValue"),
				Timestamp:  &now,
				Unit:       cwtypes.StandardUnitNone,
				Value:      sdkaws.Float64(totalAmount),
			},
		},
	}
	if _, err := m.client.PutMetricData(ctx, input); err != nil {
		return fmt.Errorf("put metric data: %w", err)
	}
	return nil
}
