// internal/database/order_table.go
package database

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"

	"github.com/javajoker/stylehub/internal/models"
	"github.com/javajoker/stylehub/internal/utils"
)

// OrderTable stores orders in DynamoDB keyed by orderId.
type OrderTable struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewOrderTable(client dynamodbiface.DynamoDBAPI, table string) *OrderTable {
	return &OrderTable{client: client, table: table}
}

// Save writes the order once; a second write with the same id fails with
// utils.ErrConflict.
func (t *OrderTable) Save(ctx context.Context, order *models.Order) error {
	item, err := dynamodbattribute.MarshalMap(order)
	if err != nil {
		return utils.Backend("encode order", err)
	}

	_, err = t.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(t.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(orderId)"),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == dynamodb.ErrCodeConditionalCheckFailedException {
			return utils.ErrConflict
		}
		return utils.Backend("dynamodb put item", err)
	}
	return nil
}

func (t *OrderTable) Get(ctx context.Context, orderID string) (*models.Order, error) {
	out, err := t.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(t.table),
		Key: map[string]*dynamodb.AttributeValue{
			"orderId": {S: aws.String(orderID)},
		},
	})
	if err != nil {
		return nil, utils.Backend("dynamodb get item", err)
	}
	if len(out.Item) == 0 {
		return nil, utils.ErrNotFound
	}

	var order models.Order
	if err := dynamodbattribute.UnmarshalMap(out.Item, &order); err != nil {
		return nil, utils.Backend("decode order", err)
	}
	return &order, nil
}
