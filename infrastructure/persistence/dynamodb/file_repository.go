// Package dynamodb implements the persistence ports against a
// single-table DynamoDB layout. File records live under PK
// "FILE#<id>"; a GSI keyed by owner serves listings and quota counts.
package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"snipvault/application/ports"
	"snipvault/domain/core/entities"
	"snipvault/domain/core/valueobjects"
	pkgerrors "snipvault/pkg/errors"
	"snipvault/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

const (
	skMetadata     = "METADATA"
	entityTypeFile = "FILE"
)

// FileRepository implements ports.FileRepository using DynamoDB
type FileRepository struct {
	client     *dynamodb.Client
	tableName  string
	ownerIndex string
	logger     *zap.Logger
}

// NewFileRepository creates a DynamoDB-backed file repository
func NewFileRepository(client *dynamodb.Client, tableName, ownerIndex string, logger *zap.Logger) *FileRepository {
	return &FileRepository{
		client:     client,
		tableName:  tableName,
		ownerIndex: ownerIndex,
		logger:     logger,
	}
}

var _ ports.FileRepository = (*FileRepository)(nil)

// fileItem represents the DynamoDB item structure for a file
type fileItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	GSI1PK     string `dynamodbav:"GSI1PK"` // OWNER#<userID>
	GSI1SK     string `dynamodbav:"GSI1SK"` // FILE#<updatedAt>#<fileID>
	EntityType string `dynamodbav:"EntityType"`
	FileID     string `dynamodbav:"FileID"`
	Title      string `dynamodbav:"Title"`
	Content    string `dynamodbav:"Content"`
	Language   string `dynamodbav:"Language"`
	Visibility string `dynamodbav:"Visibility"`
	EditMode   string `dynamodbav:"EditMode"`
	CreatedBy  string `dynamodbav:"CreatedBy"`
	CreatedAt  string `dynamodbav:"CreatedAt"`
	UpdatedAt  string `dynamodbav:"UpdatedAt"`
}

func filePK(id string) string {
	return fmt.Sprintf("FILE#%s", id)
}

func toFileItem(file *entities.CodeFile) fileItem {
	return fileItem{
		PK:         filePK(file.ID().String()),
		SK:         skMetadata,
		GSI1PK:     fmt.Sprintf("OWNER#%s", file.CreatedBy()),
		GSI1SK:     fmt.Sprintf("FILE#%s#%s", utils.FormatRFC3339(file.UpdatedAt()), file.ID().String()),
		EntityType: entityTypeFile,
		FileID:     file.ID().String(),
		Title:      file.Content().Title(),
		Content:    file.Content().Content(),
		Language:   string(file.Language()),
		Visibility: string(file.Visibility()),
		EditMode:   string(file.EditMode()),
		CreatedBy:  file.CreatedBy(),
		CreatedAt:  utils.FormatRFC3339(file.CreatedAt()),
		UpdatedAt:  utils.FormatRFC3339(file.UpdatedAt()),
	}
}

func (r *FileRepository) fromFileItem(item fileItem) (*entities.CodeFile, error) {
	id, err := valueobjects.NewFileIDFromString(item.FileID)
	if err != nil {
		return nil, fmt.Errorf("stored file has invalid ID %q: %w", item.FileID, err)
	}

	createdAt, err := utils.ParseRFC3339(item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("stored file %s has invalid CreatedAt: %w", item.FileID, err)
	}
	updatedAt, err := utils.ParseRFC3339(item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("stored file %s has invalid UpdatedAt: %w", item.FileID, err)
	}

	return entities.ReconstructCodeFile(
		id,
		valueobjects.ReconstructFileContent(item.Title, item.Content),
		valueobjects.Language(item.Language),
		valueobjects.Visibility(item.Visibility),
		valueobjects.EditMode(item.EditMode),
		item.CreatedBy,
		createdAt,
		updatedAt,
	), nil
}

// FindByID retrieves a file by its ID
func (r *FileRepository) FindByID(ctx context.Context, id valueobjects.FileID) (*entities.CodeFile, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: filePK(id.String())},
			"SK": &types.AttributeValueMemberS{Value: skMetadata},
		},
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get file: %w", err)
	}
	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("file", id.String())
	}

	var item fileItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal file: %w", err)
	}
	return r.fromFileItem(item)
}

// FindByOwner retrieves all files created by the given user, newest first
func (r *FileRepository) FindByOwner(ctx context.Context, ownerID string) ([]*entities.CodeFile, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(fmt.Sprintf("OWNER#%s", ownerID))).
		And(expression.Key("GSI1SK").BeginsWith("FILE#"))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build owner query: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.ownerIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(false), // newest first
	}

	var files []*entities.CodeFile
	paginator := dynamodb.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query files by owner: %w", err)
		}
		for _, raw := range page.Items {
			var item fileItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Warn("Failed to unmarshal file item", zap.Error(err))
				continue
			}
			file, err := r.fromFileItem(item)
			if err != nil {
				r.logger.Warn("Skipping malformed file item",
					zap.String("fileID", item.FileID),
					zap.Error(err),
				)
				continue
			}
			files = append(files, file)
		}
	}
	return files, nil
}

// CountByOwner counts the files the given user owns
func (r *FileRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(fmt.Sprintf("OWNER#%s", ownerID))).
		And(expression.Key("GSI1SK").BeginsWith("FILE#"))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return 0, fmt.Errorf("failed to build owner count query: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.ownerIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Select:                    types.SelectCount,
	}

	count := 0
	paginator := dynamodb.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to count files by owner: %w", err)
		}
		count += int(page.Count)
	}
	return count, nil
}

// Insert persists a new file, failing if the ID already exists
func (r *FileRepository) Insert(ctx context.Context, file *entities.CodeFile) error {
	av, err := attributevalue.MarshalMap(toFileItem(file))
	if err != nil {
		return fmt.Errorf("failed to marshal file: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		return fmt.Errorf("failed to insert file: %w", err)
	}

	r.logger.Debug("File inserted",
		zap.String("fileID", file.ID().String()),
		zap.String("createdBy", file.CreatedBy()),
	)
	return nil
}

// UpdateByID replaces the stored file, failing if it was deleted concurrently
func (r *FileRepository) UpdateByID(ctx context.Context, file *entities.CodeFile) error {
	av, err := attributevalue.MarshalMap(toFileItem(file))
	if err != nil {
		return fmt.Errorf("failed to marshal file: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(PK)"),
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return pkgerrors.NewNotFoundError("file", file.ID().String())
		}
		return fmt.Errorf("failed to update file: %w", err)
	}
	return nil
}

// DeleteByID removes a file
func (r *FileRepository) DeleteByID(ctx context.Context, id valueobjects.FileID) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: filePK(id.String())},
			"SK": &types.AttributeValueMemberS{Value: skMetadata},
		},
		ConditionExpression: aws.String("attribute_exists(PK)"),
	}

	if _, err := r.client.DeleteItem(ctx, input); err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return pkgerrors.NewNotFoundError("file", id.String())
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	r.logger.Debug("File deleted", zap.String("fileID", id.String()))
	return nil
}
