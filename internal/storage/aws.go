package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/travelease/inquiry-pipeline/internal/domain"
)

// PutItemAPI is the subset of the DynamoDB client used by DynamoStore.
type PutItemAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DynamoStore persists submissions to a DynamoDB table keyed by submission_id.
// The table's stream (NEW_IMAGE) feeds the notification handlers.
type DynamoStore struct {
	client    PutItemAPI
	tableName string
}

// NewDynamoStore creates a store from a loaded AWS config.
func NewDynamoStore(cfg aws.Config, tableName string) *DynamoStore {
	return NewDynamoStoreWithClient(dynamodb.NewFromConfig(cfg), tableName)
}

// NewDynamoStoreWithClient wraps an existing DynamoDB client.
func NewDynamoStoreWithClient(client PutItemAPI, tableName string) *DynamoStore {
	return &DynamoStore{client: client, tableName: tableName}
}

// Put writes the submission as a single item. The write is conditional on the
// id not existing yet, so an id can only ever be assigned once.
func (s *DynamoStore) Put(ctx context.Context, sub domain.Submission) error {
	av, err := attributevalue.MarshalMap(sub)
	if err != nil {
		return fmt.Errorf("marshaling submission: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": domain.FieldSubmissionID,
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("putting submission %s: %w", sub.ID, ErrDuplicateID)
		}
		return fmt.Errorf("putting submission to DynamoDB: %w", err)
	}
	return nil
}
