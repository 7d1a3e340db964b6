package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/sai-laundry/laundry-backend/internal/aws"
)

// ErrLocationIndex is returned when a location index is out of range.
var ErrLocationIndex = errors.New("location index out of range")

// Store encapsulates operations on the users table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewStore creates a new users Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// Create persists a new user, refusing to overwrite an existing uid.
func (s *Store) Create(ctx context.Context, u User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.nowFunc()
	}
	item, err := attributevalue.MarshalMap(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	input := &dyn.PutItemInput{
		TableName:           &s.tableName,
		Item:                item,
		ConditionExpression: awsString("attribute_not_exists(uid)"),
	}
	if _, err := s.client.PutItem(ctx, input); err != nil {
		var cf *types.ConditionalCheckFailedException
		if errors.As(err, &cf) {
			return fmt.Errorf("user %s already exists: %w", u.UID, err)
		}
		return fmt.Errorf("put user: %w", err)
	}
	return nil
}

// CreateWalkIn mints a minimal customer record an admin can attach orders to.
// Returns the new uid.
func (s *Store) CreateWalkIn(ctx context.Context, name, mobile string) (string, error) {
	uid := uuid.NewString()
	u := User{
		UID:      uid,
		Name:     name,
		Mobile:   mobile,
		Role:     RoleCustomer,
		Verified: false,
		IsWalkIn: true,
	}
	if err := s.Create(ctx, u); err != nil {
		return "", err
	}
	return uid, nil
}

// Get fetches a user by uid. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, uid string) (*User, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"uid": &types.AttributeValueMemberS{Value: uid},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var u User
	if err := attributevalue.UnmarshalMap(out.Item, &u); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return &u, nil
}

// FindByMobile returns the first user whose mobile matches, ignoring spaces.
// Returns (nil, nil) when there is no match.
func (s *Store) FindByMobile(ctx context.Context, mobile string) (*User, error) {
	want := strings.ReplaceAll(mobile, " ", "")
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if strings.ReplaceAll(all[i].Mobile, " ", "") == want {
			return &all[i], nil
		}
	}
	return nil, nil
}

// FindByEmail returns the user with the given email, or (nil, nil).
func (s *Store) FindByEmail(ctx context.Context, email string) (*User, error) {
	input := &dyn.ScanInput{
		TableName:        &s.tableName,
		FilterExpression: awsString("email = :e"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":e": &types.AttributeValueMemberS{Value: email},
		},
	}
	out, err := s.client.Scan(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}
	if len(out.Items) == 0 {
		return nil, nil
	}
	var u User
	if err := attributevalue.UnmarshalMap(out.Items[0], &u); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return &u, nil
}

// List returns every user.
func (s *Store) List(ctx context.Context) ([]User, error) {
	input := &dyn.ScanInput{TableName: &s.tableName}
	var result []User
	for {
		out, err := s.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("scan users: %w", err)
		}
		for _, item := range out.Items {
			var u User
			if err := attributevalue.UnmarshalMap(item, &u); err != nil {
				return nil, fmt.Errorf("unmarshal user: %w", err)
			}
			result = append(result, u)
		}
		if out.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	return result, nil
}

// UpdateProfile sets name and mobile on the user document. Existing orders
// keep the snapshot of both taken at placement time.
func (s *Store) UpdateProfile(ctx context.Context, uid, name, mobile string) error {
	input := &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"uid": &types.AttributeValueMemberS{Value: uid},
		},
		UpdateExpression:         awsString("SET #n = :n, mobile = :m"),
		ExpressionAttributeNames: map[string]string{"#n": "name"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":n": &types.AttributeValueMemberS{Value: name},
			":m": &types.AttributeValueMemberS{Value: mobile},
		},
		ConditionExpression: awsString("attribute_exists(uid)"),
	}
	if _, err := s.client.UpdateItem(ctx, input); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// SetVerified flips the login gate for a customer.
func (s *Store) SetVerified(ctx context.Context, uid string, verified bool) error {
	input := &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"uid": &types.AttributeValueMemberS{Value: uid},
		},
		UpdateExpression: awsString("SET verified = :v"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberBOOL{Value: verified},
		},
		ConditionExpression: awsString("attribute_exists(uid)"),
	}
	if _, err := s.client.UpdateItem(ctx, input); err != nil {
		return fmt.Errorf("set verified: %w", err)
	}
	return nil
}

// AddLocation appends a location to the user's address book.
func (s *Store) AddLocation(ctx context.Context, uid string, loc Location) error {
	u, err := s.Get(ctx, uid)
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("user %s not found", uid)
	}
	return s.putLocations(ctx, uid, append(u.Locations, loc))
}

// RemoveLocation deletes the location at index, preserving the order of the
// rest.
func (s *Store) RemoveLocation(ctx context.Context, uid string, index int) error {
	u, err := s.Get(ctx, uid)
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("user %s not found", uid)
	}
	if index < 0 || index >= len(u.Locations) {
		return ErrLocationIndex
	}
	locs := append(u.Locations[:index:index], u.Locations[index+1:]...)
	return s.putLocations(ctx, uid, locs)
}

func (s *Store) putLocations(ctx context.Context, uid string, locs []Location) error {
	attr, err := attributevalue.Marshal(locs)
	if err != nil {
		return fmt.Errorf("marshal locations: %w", err)
	}
	input := &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"uid": &types.AttributeValueMemberS{Value: uid},
		},
		UpdateExpression: awsString("SET locations = :l"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":l": attr,
		},
		ConditionExpression: awsString("attribute_exists(uid)"),
	}
	if _, err := s.client.UpdateItem(ctx, input); err != nil {
		return fmt.Errorf("update locations: %w", err)
	}
	return nil
}

// Delete removes the user document. Orders owned by the user are left in
// place and keep rendering from their denormalized customer fields.
func (s *Store) Delete(ctx context.Context, uid string) error {
	_, err := s.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"uid": &types.AttributeValueMemberS{Value: uid},
		},
	})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func awsString(s string) *string { return &s }
