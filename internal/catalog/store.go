package catalog

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sai-laundry/laundry-backend/internal/aws"
)

// Store encapsulates operations on the catalog table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
}

// NewStore creates a new catalog Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
	}
}

// List returns the catalog sections. It never fails from the caller's point
// of view: a store error or an empty table yields the built-in fallback list,
// so order placement always has prices to offer.
func (s *Store) List(ctx context.Context) []Section {
	sections, err := s.list(ctx)
	if err != nil {
		log.Printf("[catalog] falling back to built-in data: %v", err)
		return Fallback()
	}
	if len(sections) == 0 {
		return Fallback()
	}
	return sections
}

func (s *Store) list(ctx context.Context) ([]Section, error) {
	input := &dyn.ScanInput{TableName: &s.tableName}
	var result []Section
	for {
		out, err := s.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("scan catalog: %w", err)
		}
		for _, item := range out.Items {
			var sec Section
			if err := attributevalue.UnmarshalMap(item, &sec); err != nil {
				return nil, fmt.Errorf("unmarshal section: %w", err)
			}
			result = append(result, sec)
		}
		if out.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	return result, nil
}

// Put upserts a whole section document, items and services included.
func (s *Store) Put(ctx context.Context, sec Section) error {
	item, err := attributevalue.MarshalMap(sec)
	if err != nil {
		return fmt.Errorf("marshal section: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.tableName,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put section: %w", err)
	}
	return nil
}

// Delete removes a section and, since items are embedded, everything under it.
func (s *Store) Delete(ctx context.Context, sectionID string) error {
	_, err := s.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: sectionID},
		},
	})
	if err != nil {
		return fmt.Errorf("delete section: %w", err)
	}
	return nil
}

// Seed writes the fallback data set into the table.
func (s *Store) Seed(ctx context.Context) error {
	for _, sec := range Fallback() {
		if err := s.Put(ctx, sec); err != nil {
			return err
		}
	}
	return nil
}
