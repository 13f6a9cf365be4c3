package database

import (
	"sort"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
)

// fakeDynamoDB keeps one table in memory. Unimplemented methods panic via
// the embedded nil interface.
type fakeDynamoDB struct {
	dynamodbiface.DynamoDBAPI

	keyAttr  string
	items    map[string]map[string]*dynamodb.AttributeValue
	pageSize int
	err      error

	scans     []*dynamodb.ScanInput
	pageCalls int
}

func newFakeDynamoDB(keyAttr string) *fakeDynamoDB {
	return &fakeDynamoDB{
		keyAttr:  keyAttr,
		items:    map[string]map[string]*dynamodb.AttributeValue{},
		pageSize: 100,
	}
}

func (f *fakeDynamoDB) put(v interface{}) {
	item, err := dynamodbattribute.MarshalMap(v)
	if err != nil {
		panic(err)
	}
	f.items[aws.StringValue(item[f.keyAttr].S)] = item
}

func (f *fakeDynamoDB) GetItemWithContext(_ aws.Context, in *dynamodb.GetItemInput, _ ...request.Option) (*dynamodb.GetItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	key := aws.StringValue(in.Key[f.keyAttr].S)
	return &dynamodb.GetItemOutput{Item: f.items[key]}, nil
}

func (f *fakeDynamoDB) PutItemWithContext(_ aws.Context, in *dynamodb.PutItemInput, _ ...request.Option) (*dynamodb.PutItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	key := aws.StringValue(in.Item[f.keyAttr].S)
	if _, exists := f.items[key]; exists && in.ConditionExpression != nil {
		return nil, awserr.New(dynamodb.ErrCodeConditionalCheckFailedException, "The conditional request failed", nil)
	}
	f.items[key] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamoDB) ScanWithContext(_ aws.Context, in *dynamodb.ScanInput, _ ...request.Option) (*dynamodb.ScanOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.scans = append(f.scans, in)
	matched := f.matching(in)
	if in.Limit != nil && int(*in.Limit) < len(matched) {
		matched = matched[:*in.Limit]
	}
	return &dynamodb.ScanOutput{Items: matched}, nil
}

func (f *fakeDynamoDB) ScanPagesWithContext(_ aws.Context, in *dynamodb.ScanInput, fn func(*dynamodb.ScanOutput, bool) bool, _ ...request.Option) error {
	if f.err != nil {
		return f.err
	}
	f.scans = append(f.scans, in)
	matched := f.matching(in)
	if len(matched) == 0 {
		f.pageCalls++
		fn(&dynamodb.ScanOutput{}, true)
		return nil
	}
	for start := 0; start < len(matched); start += f.pageSize {
		end := start + f.pageSize
		if end > len(matched) {
			end = len(matched)
		}
		f.pageCalls++
		if !fn(&dynamodb.ScanOutput{Items: matched[start:end]}, end == len(matched)) {
			break
		}
	}
	return nil
}

// matching applies a single-attribute equality filter, which is all the
// product table ever sends.
func (f *fakeDynamoDB) matching(in *dynamodb.ScanInput) []map[string]*dynamodb.AttributeValue {
	keys := make([]string, 0, len(f.items))
	for k := range f.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var attr, want string
	if in.FilterExpression != nil {
		for _, name := range in.ExpressionAttributeNames {
			attr = aws.StringValue(name)
		}
		for _, value := range in.ExpressionAttributeValues {
			want = aws.StringValue(value.S)
		}
	}

	var out []map[string]*dynamodb.AttributeValue
	for _, k := range keys {
		item := f.items[k]
		if attr != "" && aws.StringValue(item[attr].S) != want {
			continue
		}
		out = append(out, item)
	}
	return out
}
