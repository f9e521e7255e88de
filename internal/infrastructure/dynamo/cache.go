package dynamo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const (
	attrKey       = "cache_key"
	attrExpiresAt = "expires_at"
)

// API is the subset of the DynamoDB client used by the cache.
type API interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// cacheItem is one cache entry. ExpiresAt is a Unix timestamp used as DynamoDB TTL.
type cacheItem struct {
	Key       string `dynamodbav:"cache_key"`
	Value     string `dynamodbav:"value"`
	ExpiresAt int64  `dynamodbav:"expires_at"`
}

// Cache is a key/value store with per-entry expiry backed by a DynamoDB table.
// DynamoDB deletes expired items lazily, so reads also check expires_at.
type Cache struct {
	client    API
	tableName string
	now       func() time.Time
}

func NewCache(client API, tableName string) *Cache {
	return &Cache{client: client, tableName: tableName, now: time.Now}
}

func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value: %w", err)
	}
	item, err := attributevalue.MarshalMap(cacheItem{
		Key:       key,
		Value:     string(raw),
		ExpiresAt: c.now().Add(ttl).Unix(),
	})
	if err != nil {
		return fmt.Errorf("marshal cache item: %w", err)
	}
	_, err = c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.tableName),
		Item:      item,
	})
	return err
}

func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	out, err := c.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(c.tableName),
		Key:            strKey(attrKey, key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return false, err
	}
	if out.Item == nil {
		return false, nil
	}
	var item cacheItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return false, fmt.Errorf("unmarshal cache item: %w", err)
	}
	if item.ExpiresAt <= c.now().Unix() {
		return false, nil
	}
	if err := json.Unmarshal([]byte(item.Value), dest); err != nil {
		return false, fmt.Errorf("decode cache value: %w", err)
	}
	return true, nil
}

func (c *Cache) Del(ctx context.Context, key string) error {
	_, err := c.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(c.tableName),
		Key:       strKey(attrKey, key),
	})
	return err
}
