package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DistributedRateLimiter implements RateLimiter with DynamoDB as the
// counter store, so limits hold across multiple server instances.
// Errors fail open: limits are advisory, not security-critical.
type DistributedRateLimiter struct {
	client    *dynamodb.Client
	tableName string
	limits    map[string]RateLimitConfig
}

type rateLimitItem struct {
	PK        string `dynamodbav:"PK"`
	Count     int    `dynamodbav:"Count"`
	WindowEnd int64  `dynamodbav:"WindowEnd"`
	TTL       int64  `dynamodbav:"TTL"`
}

// NewDistributedRateLimiter creates a DynamoDB-backed rate limiter
func NewDistributedRateLimiter(client *dynamodb.Client, tableName string) *DistributedRateLimiter {
	return &DistributedRateLimiter{
		client:    client,
		tableName: tableName,
		limits:    DefaultRateLimits,
	}
}

func (r *DistributedRateLimiter) configFor(action string) RateLimitConfig {
	if cfg, ok := r.limits[action]; ok {
		return cfg
	}
	return r.limits[ActionGlobal]
}

func (r *DistributedRateLimiter) itemKey(identifier, action string, windowStart time.Time) string {
	return fmt.Sprintf("RATELIMIT#%s#%s#%d", action, identifier, windowStart.Unix())
}

// CheckAndIncrement atomically increments the window counter with a
// conditional update, rejecting once the limit is reached.
func (r *DistributedRateLimiter) CheckAndIncrement(ctx context.Context, identifier, action string) RateLimitResult {
	cfg := r.configFor(action)

	now := time.Now()
	windowStart := now.Truncate(cfg.Window)
	windowEnd := windowStart.Add(cfg.Window)
	resetIn := secondsUntil(windowEnd, now)

	if r.client == nil {
		// No table configured: allow everything (local development)
		return RateLimitResult{Allowed: true, Remaining: cfg.MaxRequests, ResetIn: resetIn, Limit: cfg.MaxRequests}
	}

	update := &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: r.itemKey(identifier, action, windowStart)},
		},
		UpdateExpression:    aws.String("SET #count = if_not_exists(#count, :zero) + :incr, WindowEnd = :window_end, #ttl = :ttl"),
		ConditionExpression: aws.String("attribute_not_exists(#count) OR #count < :limit"),
		ExpressionAttributeNames: map[string]string{
			"#count": "Count",
			"#ttl":   "TTL",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":zero":       &types.AttributeValueMemberN{Value: "0"},
			":incr":       &types.AttributeValueMemberN{Value: "1"},
			":limit":      &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", cfg.MaxRequests)},
			":window_end": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", windowEnd.Unix())},
			":ttl":        &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", windowEnd.Add(time.Hour).Unix())},
		},
		ReturnValues: types.ReturnValueAllNew,
	}

	result, err := r.client.UpdateItem(ctx, update)
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return RateLimitResult{Allowed: false, Remaining: 0, ResetIn: resetIn, Limit: cfg.MaxRequests}
		}
		// Fail open on infrastructure errors
		return RateLimitResult{Allowed: true, Remaining: cfg.MaxRequests, ResetIn: resetIn, Limit: cfg.MaxRequests}
	}

	var item rateLimitItem
	if err := attributevalue.UnmarshalMap(result.Attributes, &item); err != nil {
		return RateLimitResult{Allowed: true, Remaining: cfg.MaxRequests, ResetIn: resetIn, Limit: cfg.MaxRequests}
	}

	remaining := cfg.MaxRequests - item.Count
	if remaining < 0 {
		remaining = 0
	}
	return RateLimitResult{Allowed: true, Remaining: remaining, ResetIn: resetIn, Limit: cfg.MaxRequests}
}

// Peek reads the current window counter without incrementing it
func (r *DistributedRateLimiter) Peek(ctx context.Context, identifier, action string) RateLimitResult {
	cfg := r.configFor(action)

	now := time.Now()
	windowStart := now.Truncate(cfg.Window)
	windowEnd := windowStart.Add(cfg.Window)
	resetIn := secondsUntil(windowEnd, now)

	fresh := RateLimitResult{Allowed: true, Remaining: cfg.MaxRequests, ResetIn: resetIn, Limit: cfg.MaxRequests}
	if r.client == nil {
		return fresh
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: r.itemKey(identifier, action, windowStart)},
		},
	})
	if err != nil || out.Item == nil {
		return fresh
	}

	var item rateLimitItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return fresh
	}

	remaining := cfg.MaxRequests - item.Count
	if remaining < 0 {
		remaining = 0
	}
	return RateLimitResult{
		Allowed:   item.Count < cfg.MaxRequests,
		Remaining: remaining,
		ResetIn:   resetIn,
		Limit:     cfg.MaxRequests,
	}
}

// Reset deletes the current window counter for a pair
func (r *DistributedRateLimiter) Reset(ctx context.Context, identifier, action string) {
	if r.client == nil {
		return
	}

	cfg := r.configFor(action)
	windowStart := time.Now().Truncate(cfg.Window)

	r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: r.itemKey(identifier, action, windowStart)},
		},
	})
}
