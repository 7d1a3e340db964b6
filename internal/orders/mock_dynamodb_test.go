package orders

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// mockDynamo is a small in-memory stand-in for the DynamoDB operations the
// stores use. Items live per table in a nested map: table -> pk -> item.
// Supports the condition and update expressions this codebase writes, nothing
// more.
type mockDynamo struct {
	mu     sync.Mutex
	tables map[string]map[string]map[string]types.AttributeValue

	failAll    error // when set, every call fails with this error
	failUpdate error // when set, UpdateItem fails with this error

	putCalls    int
	updateCalls int
	deleteCalls int
	scanCalls   int
}

func newMockDynamo() *mockDynamo {
	return &mockDynamo{
		tables: map[string]map[string]map[string]types.AttributeValue{},
	}
}

func (m *mockDynamo) ensureTable(tbl string) map[string]map[string]types.AttributeValue {
	if _, ok := m.tables[tbl]; !ok {
		m.tables[tbl] = map[string]map[string]types.AttributeValue{}
	}
	return m.tables[tbl]
}

// pkOf finds the primary key value in an item or key map. The tables in play
// key on id (orders), uid (users) or name (counters).
func pkOf(attrs map[string]types.AttributeValue) (string, string, error) {
	for _, name := range []string{"id", "uid", "name"} {
		if v, ok := attrs[name]; ok {
			if s, ok := v.(*types.AttributeValueMemberS); ok {
				return name, s.Value, nil
			}
		}
	}
	return "", "", errors.New("no primary key attribute")
}

func (m *mockDynamo) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putCalls++
	if m.failAll != nil {
		return nil, m.failAll
	}
	table := m.ensureTable(*params.TableName)
	_, pk, err := pkOf(params.Item)
	if err != nil {
		return nil, err
	}
	if params.ConditionExpression != nil && strings.HasPrefix(*params.ConditionExpression, "attribute_not_exists(") {
		if _, exists := table[pk]; exists {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	table[pk] = params.Item
	return &dyn.PutItemOutput{}, nil
}

func (m *mockDynamo) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return nil, m.failAll
	}
	table := m.ensureTable(*params.TableName)
	_, pk, err := pkOf(params.Key)
	if err != nil {
		return nil, err
	}
	item, ok := table[pk]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: item}, nil
}

func (m *mockDynamo) UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	if m.failAll != nil {
		return nil, m.failAll
	}
	if m.failUpdate != nil {
		return nil, m.failUpdate
	}
	table := m.ensureTable(*params.TableName)
	_, pk, err := pkOf(params.Key)
	if err != nil {
		return nil, err
	}
	item, exists := table[pk]

	resolve := func(name string) string {
		if resolved, ok := params.ExpressionAttributeNames[name]; ok {
			return resolved
		}
		return name
	}

	// condition checks
	if params.ConditionExpression != nil {
		cond := *params.ConditionExpression
		switch {
		case strings.HasPrefix(cond, "attribute_exists("):
			if !exists {
				return nil, &types.ConditionalCheckFailedException{}
			}
		case strings.Contains(cond, "= :expected"):
			attr := resolve(strings.TrimSpace(strings.Split(cond, "=")[0]))
			if !exists {
				return nil, &types.ConditionalCheckFailedException{}
			}
			curr, ok := item[attr].(*types.AttributeValueMemberS)
			want := params.ExpressionAttributeValues[":expected"].(*types.AttributeValueMemberS)
			if !ok || curr.Value != want.Value {
				return nil, &types.ConditionalCheckFailedException{}
			}
		}
	}

	if !exists {
		item = map[string]types.AttributeValue{}
		if keyName, keyVal, err := pkOf(params.Key); err == nil {
			item[keyName] = &types.AttributeValueMemberS{Value: keyVal}
		}
		table[pk] = item
	}

	// apply "SET a = :x, b = :y" clauses, plus the counter's
	// "if_not_exists(#v, :zero) + :one" arithmetic
	expr := strings.TrimPrefix(*params.UpdateExpression, "SET ")
	for _, clause := range splitClauses(expr) {
		parts := strings.SplitN(clause, " = ", 2)
		if len(parts) != 2 {
			continue
		}
		attr := resolve(strings.TrimSpace(parts[0]))
		rhs := strings.TrimSpace(parts[1])
		if strings.Contains(rhs, "if_not_exists") && strings.Contains(rhs, "+ :one") {
			var curr int64
			if n, ok := item[attr].(*types.AttributeValueMemberN); ok {
				curr, _ = strconv.ParseInt(n.Value, 10, 64)
			}
			item[attr] = &types.AttributeValueMemberN{Value: strconv.FormatInt(curr+1, 10)}
			continue
		}
		if v, ok := params.ExpressionAttributeValues[rhs]; ok {
			item[attr] = v
		}
	}

	out := &dyn.UpdateItemOutput{}
	if params.ReturnValues == types.ReturnValueUpdatedNew {
		out.Attributes = item
	}
	return out, nil
}

// splitClauses splits a SET expression on the commas between clauses,
// ignoring commas inside parentheses such as if_not_exists(#v, :zero).
func splitClauses(expr string) []string {
	var out []string
	depth, start := 0, 0
	for i, r := range expr {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(expr[start:i]))
				start = i + 1
			}
		}
	}
	return append(out, strings.TrimSpace(expr[start:]))
}

func (m *mockDynamo) DeleteItem(ctx context.Context, params *dyn.DeleteItemInput, optFns ...func(*dyn.Options)) (*dyn.DeleteItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteCalls++
	if m.failAll != nil {
		return nil, m.failAll
	}
	table := m.ensureTable(*params.TableName)
	_, pk, err := pkOf(params.Key)
	if err != nil {
		return nil, err
	}
	delete(table, pk)
	return &dyn.DeleteItemOutput{}, nil
}

func (m *mockDynamo) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scanCalls++
	if m.failAll != nil {
		return nil, m.failAll
	}
	table := m.ensureTable(*params.TableName)

	// optional "attr = :ph" filter
	var filterAttr, filterVal string
	if params.FilterExpression != nil {
		parts := strings.SplitN(*params.FilterExpression, " = ", 2)
		filterAttr = strings.TrimSpace(parts[0])
		if v, ok := params.ExpressionAttributeValues[strings.TrimSpace(parts[1])].(*types.AttributeValueMemberS); ok {
			filterVal = v.Value
		}
	}

	out := &dyn.ScanOutput{}
	for _, item := range table {
		if filterAttr != "" {
			v, ok := item[filterAttr].(*types.AttributeValueMemberS)
			if !ok || v.Value != filterVal {
				continue
			}
		}
		out.Items = append(out.Items, item)
	}
	return out, nil
}

func (m *mockDynamo) TransactWriteItems(ctx context.Context, params *dyn.TransactWriteItemsInput, optFns ...func(*dyn.Options)) (*dyn.TransactWriteItemsOutput, error) {
	return nil, errors.New("not supported by mock")
}
