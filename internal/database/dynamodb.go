// internal/database/dynamodb.go
package database

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/stylehub/internal/config"
)

// NewDynamoDB builds a DynamoDB client with explicit credentials.
func NewDynamoDB(cfg config.AWSConfig) (dynamodbiface.DynamoDBAPI, error) {
	awsCfg := &aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"region":     cfg.Region,
		"access_key": maskKey(cfg.AccessKeyID),
		"table":      cfg.TableName,
	}).Info("AWS configuration loaded")

	return dynamodb.New(sess), nil
}

// CheckTable confirms that the table exists and is reachable.
func CheckTable(ctx context.Context, client dynamodbiface.DynamoDBAPI, table string) error {
	out, err := client.DescribeTableWithContext(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(table),
	})
	if err != nil {
		return fmt.Errorf("failed to describe table %s: %w", table, err)
	}
	logrus.WithFields(logrus.Fields{
		"table":  table,
		"status": aws.StringValue(out.Table.TableStatus),
	}).Info("DynamoDB table reachable")
	return nil
}

func maskKey(key string) string {
	if len(key) <= 10 {
		return "***"
	}
	return key[:10] + "..."
}
