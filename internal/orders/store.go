package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sai-laundry/laundry-backend/internal/aws"
)

// ErrStatusMismatch is returned when a conditional status update finds the
// order in a different state than expected.
var ErrStatusMismatch = errors.New("status mismatch/conditional failed")

// ErrInvalidTransition is returned when a status change is rejected by the
// forward-only lifecycle rules.
var ErrInvalidTransition = errors.New("invalid status transition")

// Store encapsulates operations on the orders table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewStore creates a new orders Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// Create persists a complete order document. order.ID and order.OrderNumber
// must be set by the caller. The put is conditional on the id not existing,
// so a retried create can never clobber an order. CreatedAt is stamped here
// if the caller left it zero.
func (s *Store) Create(ctx context.Context, order Order) error {
	if order.CreatedAt.IsZero() {
		order.CreatedAt = s.nowFunc()
	}
	order.TotalAmount = Total(order.Items)

	item, err := attributevalue.MarshalMap(order)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}

	input := &dyn.PutItemInput{
		TableName:           &s.tableName,
		Item:                item,
		ConditionExpression: awsString("attribute_not_exists(id)"),
	}
	if _, err := s.client.PutItem(ctx, input); err != nil {
		var cf *types.ConditionalCheckFailedException
		if errors.As(err, &cf) {
			return fmt.Errorf("order %s already exists: %w", order.ID, err)
		}
		return fmt.Errorf("put order: %w", err)
	}
	return nil
}

// Get fetches an order by id. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, orderID string) (*Order, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: orderID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var o Order
	if err := attributevalue.UnmarshalMap(out.Item, &o); err != nil {
		return nil, fmt.Errorf("unmarshal order: %w", err)
	}
	return &o, nil
}

// ListByUser returns every order owned by uid.
func (s *Store) ListByUser(ctx context.Context, uid string) ([]Order, error) {
	input := &dyn.ScanInput{
		TableName:        &s.tableName,
		FilterExpression: awsString("uid = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: uid},
		},
	}
	return s.scan(ctx, input)
}

// ListAll returns every order. Admin views only.
func (s *Store) ListAll(ctx context.Context) ([]Order, error) {
	return s.scan(ctx, &dyn.ScanInput{TableName: &s.tableName})
}

func (s *Store) scan(ctx context.Context, input *dyn.ScanInput) ([]Order, error) {
	var result []Order
	for {
		out, err := s.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("scan orders: %w", err)
		}
		for _, item := range out.Items {
			var o Order
			if err := attributevalue.UnmarshalMap(item, &o); err != nil {
				return nil, fmt.Errorf("unmarshal order: %w", err)
			}
			result = append(result, o)
		}
		if out.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	return result, nil
}

// UpdateStatus conditionally moves the order status from expected -> newStatus.
// Lifecycle rules are enforced up front; the conditional write then guards
// against a concurrent transition. Returns ErrInvalidTransition for a move
// the lifecycle forbids and ErrStatusMismatch when the stored status no
// longer matches expected.
func (s *Store) UpdateStatus(ctx context.Context, orderID, expectedStatus, newStatus string) error {
	if !KnownStatus(newStatus) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, newStatus)
	}
	if !CanTransition(expectedStatus, newStatus) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, expectedStatus, newStatus)
	}

	input := &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: orderID},
		},
		UpdateExpression:         awsString("SET #s = :new"),
		ExpressionAttributeNames: map[string]string{"#s": "status"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":new":      &types.AttributeValueMemberS{Value: newStatus},
			":expected": &types.AttributeValueMemberS{Value: expectedStatus},
		},
		ConditionExpression: awsString("#s = :expected"),
	}
	if _, err := s.client.UpdateItem(ctx, input); err != nil {
		var cf *types.ConditionalCheckFailedException
		if errors.As(err, &cf) {
			return ErrStatusMismatch
		}
		return fmt.Errorf("update status: %w", err)
	}
	return nil
}

// Update replaces the editable fields of an order: customer snapshot,
// schedule, items and status. The update expression never names orderNumber
// or createdAt, so those survive every edit. TotalAmount is recomputed from
// the new items here, not trusted from the caller.
func (s *Store) Update(ctx context.Context, orderID string, o Order) error {
	if !KnownStatus(o.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, o.Status)
	}

	itemsAttr, err := attributevalue.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	locAttr, err := attributevalue.Marshal(o.PickupLocation)
	if err != nil {
		return fmt.Errorf("marshal pickup location: %w", err)
	}
	totalAttr, err := attributevalue.Marshal(Total(o.Items))
	if err != nil {
		return fmt.Errorf("marshal total: %w", err)
	}

	input := &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: orderID},
		},
		UpdateExpression: awsString("SET userName = :un, userMobile = :um, pickupLocation = :pl, " +
			"pickupDate = :pd, pickupTime = :pt, #items = :it, totalAmount = :ta, #s = :st, instructions = :in"),
		ExpressionAttributeNames: map[string]string{
			"#s":     "status",
			"#items": "items",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":un": &types.AttributeValueMemberS{Value: o.UserName},
			":um": &types.AttributeValueMemberS{Value: o.UserMobile},
			":pl": locAttr,
			":pd": &types.AttributeValueMemberS{Value: o.PickupDate},
			":pt": &types.AttributeValueMemberS{Value: o.PickupTime},
			":it": itemsAttr,
			":ta": totalAttr,
			":st": &types.AttributeValueMemberS{Value: o.Status},
			":in": &types.AttributeValueMemberS{Value: o.Instructions},
		},
		ConditionExpression: awsString("attribute_exists(id)"),
	}
	if _, err := s.client.UpdateItem(ctx, input); err != nil {
		var cf *types.ConditionalCheckFailedException
		if errors.As(err, &cf) {
			return fmt.Errorf("order %s not found: %w", orderID, err)
		}
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// MarkNotified flags the order once the worker has sent the customer
// notification, so redelivered queue messages do not notify twice.
func (s *Store) MarkNotified(ctx context.Context, orderID string) error {
	input := &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: orderID},
		},
		UpdateExpression: awsString("SET notified = :t"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t": &types.AttributeValueMemberBOOL{Value: true},
		},
		ConditionExpression: awsString("attribute_exists(id)"),
	}
	if _, err := s.client.UpdateItem(ctx, input); err != nil {
		return fmt.Errorf("mark notified: %w", err)
	}
	return nil
}

// Delete removes the order. Hard delete, no audit trail.
func (s *Store) Delete(ctx context.Context, orderID string) error {
	_, err := s.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: orderID},
		},
	})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

func awsString(s string) *string { return &s }
