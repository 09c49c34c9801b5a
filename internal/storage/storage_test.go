package storage

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelease/inquiry-pipeline/internal/domain"
)

func testSubmission() domain.Submission {
	return domain.Submission{
		ID:        "sub-1",
		Name:      "Ana",
		Email:     "ana@x.com",
		Message:   "Hi",
		Budget:    "$3000",
		Timestamp: "2026-10-19T12:00:00Z",
		Status:    domain.StatusNew,
		Type:      domain.TypeBusinessContact,
	}
}

type fakeDynamo struct {
	inputs []*dynamodb.PutItemInput
	err    error
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.inputs = append(f.inputs, in)
	return &dynamodb.PutItemOutput{}, f.err
}

func TestDynamoStorePut(t *testing.T) {
	fake := &fakeDynamo{}
	s := NewDynamoStoreWithClient(fake, "travel-submissions")

	require.NoError(t, s.Put(context.Background(), testSubmission()))
	require.Len(t, fake.inputs, 1)

	in := fake.inputs[0]
	assert.Equal(t, "travel-submissions", aws.ToString(in.TableName))
	assert.Equal(t, "attribute_not_exists(#id)", aws.ToString(in.ConditionExpression))
	assert.Equal(t, "submission_id", in.ExpressionAttributeNames["#id"])

	assert.Equal(t, &types.AttributeValueMemberS{Value: "sub-1"}, in.Item["submission_id"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "new"}, in.Item["status"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "business_contact"}, in.Item["type"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "$3000"}, in.Item["budget"])
	for _, f := range []string{"phone", "company", "subject", "travel_dates"} {
		assert.NotContains(t, in.Item, f)
	}
}

func TestDynamoStorePutErrors(t *testing.T) {
	t.Run("conditional check", func(t *testing.T) {
		s := NewDynamoStoreWithClient(&fakeDynamo{err: &types.ConditionalCheckFailedException{}}, "t")
		err := s.Put(context.Background(), testSubmission())
		assert.ErrorIs(t, err, ErrDuplicateID)
	})

	t.Run("service error", func(t *testing.T) {
		cause := errors.New("ProvisionedThroughputExceededException")
		s := NewDynamoStoreWithClient(&fakeDynamo{err: cause}, "t")
		err := s.Put(context.Background(), testSubmission())
		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, ErrDuplicateID)
	})
}

func TestMemoryStoreFansOutInserts(t *testing.T) {
	s := NewMemoryStore()

	var mu sync.Mutex
	received := map[string][]events.DynamoDBEvent{}
	for _, name := range []string{"client", "business"} {
		name := name
		s.Subscribe(func(_ context.Context, e events.DynamoDBEvent) {
			mu.Lock()
			received[name] = append(received[name], e)
			mu.Unlock()
		})
	}

	require.NoError(t, s.Put(context.Background(), testSubmission()))
	s.Close()

	assert.Equal(t, 1, s.Len())
	got, ok := s.Get("sub-1")
	require.True(t, ok)
	assert.Equal(t, "Ana", got.Name)

	for _, name := range []string{"client", "business"} {
		require.Len(t, received[name], 1, name)
		rec := received[name][0].Records[0]
		assert.Equal(t, "INSERT", rec.EventName)
		assert.Equal(t, "ana@x.com", rec.Change.NewImage["email"].String())
	}
}

func TestMemoryStoreRejectsDuplicateID(t *testing.T) {
	s := NewMemoryStore()
	calls := 0
	s.Subscribe(func(context.Context, events.DynamoDBEvent) { calls++ })

	require.NoError(t, s.Put(context.Background(), testSubmission()))
	s.Close()
	err := s.Put(context.Background(), testSubmission())
	s.Close()

	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1, calls)
}
