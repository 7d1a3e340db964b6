package sequence

import (
	"context"
	"fmt"
	"strconv"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sai-laundry/laundry-backend/internal/aws"
)

// OrderNumberCounter is the counter document backing order numbering.
const OrderNumberCounter = "orderNumber"

// Store hands out strictly increasing integers from named counters in the
// counters table. The increment is a single atomic update expression, so two
// concurrent callers can never receive the same value. The counter must never
// be mutated outside this store.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
}

// NewStore creates a new sequence Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
	}
}

// Next increments the named counter and returns the new value. A missing
// counter document counts as zero, so the first number issued is 1.
// On error no number is issued and the caller must abort whatever write the
// number was meant for.
func (s *Store) Next(ctx context.Context, name string) (int64, error) {
	input := &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"name": &types.AttributeValueMemberS{Value: name},
		},
		UpdateExpression: awsString("SET #v = if_not_exists(#v, :zero) + :one"),
		ExpressionAttributeNames: map[string]string{
			"#v": "value",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":zero": &types.AttributeValueMemberN{Value: "0"},
			":one":  &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	}

	out, err := s.client.UpdateItem(ctx, input)
	if err != nil {
		return 0, fmt.Errorf("increment counter %s: %w", name, err)
	}

	attr, ok := out.Attributes["value"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("counter %s: unexpected value attribute %T", name, out.Attributes["value"])
	}
	n, err := strconv.ParseInt(attr.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("counter %s: parse value: %w", name, err)
	}
	return n, nil
}

func awsString(s string) *string { return &s }
