package dynamodb

import (
	"context"
	"fmt"

	"snipvault/application/ports"
	"snipvault/domain/core/entities"
	"snipvault/domain/core/valueobjects"
	pkgerrors "snipvault/pkg/errors"
	"snipvault/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

const skProfile = "PROFILE"

// UserRepository implements ports.UserRepository using DynamoDB
type UserRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewUserRepository creates a DynamoDB-backed user repository
func NewUserRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

var _ ports.UserRepository = (*UserRepository)(nil)

// userItem represents the DynamoDB item structure for a user
type userItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	UserID     string `dynamodbav:"UserID"`
	Name       string `dynamodbav:"Name"`
	Email      string `dynamodbav:"Email"`
	Role       string `dynamodbav:"Role"`
	CreatedAt  string `dynamodbav:"CreatedAt"`
	UpdatedAt  string `dynamodbav:"UpdatedAt"`
}

func userPK(id string) string {
	return fmt.Sprintf("USER#%s", id)
}

// FindByID retrieves a user by ID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userPK(id)},
			"SK": &types.AttributeValueMemberS{Value: skProfile},
		},
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("user", id)
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	createdAt, err := utils.ParseRFC3339(item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("stored user %s has invalid CreatedAt: %w", id, err)
	}
	updatedAt, err := utils.ParseRFC3339(item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("stored user %s has invalid UpdatedAt: %w", id, err)
	}

	return entities.ReconstructUser(
		item.UserID,
		item.Name,
		item.Email,
		valueobjects.Role(item.Role),
		createdAt,
		updatedAt,
	), nil
}

// Upsert stores or replaces the user record
func (r *UserRepository) Upsert(ctx context.Context, user *entities.User) error {
	item := userItem{
		PK:         userPK(user.ID()),
		SK:         skProfile,
		EntityType: "USER",
		UserID:     user.ID(),
		Name:       user.Name(),
		Email:      user.Email(),
		Role:       string(user.Role()),
		CreatedAt:  utils.FormatRFC3339(user.CreatedAt()),
		UpdatedAt:  utils.FormatRFC3339(user.UpdatedAt()),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	r.logger.Debug("User upserted", zap.String("userID", user.ID()))
	return nil
}
