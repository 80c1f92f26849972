package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/fullstack-app/apiserver/config"
)

// DynamoBackend implements Backend against DynamoDB. Each operation is a
// single network round trip; no client-side transactions or locks.
type DynamoBackend struct {
	client *dynamodb.Client
}

// NewDynamoClient builds a DynamoDB client from the app configuration.
// Static credentials and the endpoint override are only set when
// configured, for use with a local container.
func NewDynamoClient(ctx context.Context, cfg config.Config) (*dynamodb.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Database.Region),
	}
	if cfg.Database.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.Database.AccessKey, cfg.Database.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Database.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Database.Endpoint)
		}
	})
	return client, nil
}

// NewDynamoBackend wraps a DynamoDB client as a Backend.
func NewDynamoBackend(client *dynamodb.Client) *DynamoBackend {
	return &DynamoBackend{client: client}
}

func (b *DynamoBackend) Put(ctx context.Context, table string, item Item) error {
	_, err := b.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

func (b *DynamoBackend) QueryByPartitionKey(ctx context.Context, table, hk string) ([]Item, error) {
	out, err := b.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(table),
		KeyConditionExpression: aws.String("hk = :hk"),
		ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
			":hk": &ddbtypes.AttributeValueMemberS{Value: hk},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query by partition key: %w", err)
	}
	return out.Items, nil
}

func (b *DynamoBackend) QueryByIndex(ctx context.Context, table, index, sk2, sk string) ([]Item, error) {
	out, err := b.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(table),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("sk2 = :sk2 and sk = :sk"),
		ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
			":sk2": &ddbtypes.AttributeValueMemberS{Value: sk2},
			":sk":  &ddbtypes.AttributeValueMemberS{Value: sk},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query by index: %w", err)
	}
	return out.Items, nil
}
