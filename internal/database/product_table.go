// internal/database/product_table.go
package database

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/aws/aws-sdk-go/service/dynamodb/expression"

	"github.com/javajoker/stylehub/internal/models"
	"github.com/javajoker/stylehub/internal/utils"
)

// ProductTable reads the catalog table. Its key is productId.
type ProductTable struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewProductTable(client dynamodbiface.DynamoDBAPI, table string) *ProductTable {
	return &ProductTable{client: client, table: table}
}

func (t *ProductTable) Name() string {
	return t.table
}

// Get loads one product. A missing item yields utils.ErrNotFound.
func (t *ProductTable) Get(ctx context.Context, productID string) (*models.Product, error) {
	out, err := t.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(t.table),
		Key: map[string]*dynamodb.AttributeValue{
			"productId": {S: aws.String(productID)},
		},
	})
	if err != nil {
		return nil, utils.Backend("dynamodb get item", err)
	}
	if len(out.Item) == 0 {
		return nil, utils.ErrNotFound
	}

	var product models.Product
	if err := dynamodbattribute.UnmarshalMap(out.Item, &product); err != nil {
		return nil, utils.Backend("decode product", err)
	}
	return &product, nil
}

// Scan reads the whole table, following every page. A non-empty category
// adds an equality filter, which DynamoDB applies after reading, so the cost
// stays proportional to the table size.
func (t *ProductTable) Scan(ctx context.Context, category string) ([]models.Product, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(t.table),
	}

	if category != "" {
		filt := expression.Name("category").Equal(expression.Value(category))
		expr, err := expression.NewBuilder().WithFilter(filt).Build()
		if err != nil {
			return nil, utils.Backend("build scan filter", err)
		}
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
		input.FilterExpression = expr.Filter()
	}

	products := []models.Product{}
	var decodeErr error
	err := t.client.ScanPagesWithContext(ctx, input, func(page *dynamodb.ScanOutput, lastPage bool) bool {
		var batch []models.Product
		if decodeErr = dynamodbattribute.UnmarshalListOfMaps(page.Items, &batch); decodeErr != nil {
			return false
		}
		products = append(products, batch...)
		return true
	})
	if err != nil {
		return nil, utils.Backend("dynamodb scan", err)
	}
	if decodeErr != nil {
		return nil, utils.Backend("decode products", decodeErr)
	}

	return products, nil
}

// Ping reads at most one item and returns how many came back.
func (t *ProductTable) Ping(ctx context.Context) (int, error) {
	out, err := t.client.ScanWithContext(ctx, &dynamodb.ScanInput{
		TableName: aws.String(t.table),
		Limit:     aws.Int64(1),
	})
	if err != nil {
		return 0, utils.Backend("dynamodb scan", err)
	}
	return len(out.Items), nil
}
