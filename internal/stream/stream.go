// Package stream decodes DynamoDB change-feed batches into submissions.
//
// Stream images always arrive in the tagged DynamoDB JSON format. Scalar
// attributes are accepted (S as-is, N as its decimal text, BOOL as
// "true"/"false"), NULL is treated as absent, and any other type is skipped
// with a warning. Decoding goes through attributevalue so the stream
// side reads the same dynamodbav tags the intake side writes.
package stream

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/travelease/inquiry-pipeline/internal/domain"
	"github.com/travelease/inquiry-pipeline/internal/pkg/logger"
)

var (
	// ErrEmptyImage is returned for an INSERT record without a NewImage.
	ErrEmptyImage = errors.New("stream record has no new image")
	// ErrUnsupportedType is returned by Image for attributes it cannot tag.
	ErrUnsupportedType = errors.New("unsupported attribute type")
)

// Summary counts what happened to the records of one batch.
type Summary struct {
	Inserts      int
	Skipped      int
	DecodeErrors int
}

// Decode converts a tagged NewImage into a Submission.
func Decode(image map[string]events.DynamoDBAttributeValue) (domain.Submission, error) {
	var sub domain.Submission
	if len(image) == 0 {
		return sub, ErrEmptyImage
	}

	item := toItem(image)
	if err := attributevalue.UnmarshalMap(item, &sub); err != nil {
		return sub, fmt.Errorf("unmarshaling image: %w", err)
	}
	return sub, nil
}

func toItem(image map[string]events.DynamoDBAttributeValue) map[string]types.AttributeValue {
	// Non-scalar attributes can only come from writers outside this pipeline;
	// they are dropped so the record's notifications still go out.
	item := make(map[string]types.AttributeValue, len(image))
	for name, v := range image {
		switch v.DataType() {
		case events.DataTypeString:
			item[name] = &types.AttributeValueMemberS{Value: v.String()}
		case events.DataTypeNumber:
			item[name] = &types.AttributeValueMemberS{Value: v.Number()}
		case events.DataTypeBoolean:
			item[name] = &types.AttributeValueMemberS{Value: strconv.FormatBool(v.Boolean())}
		case events.DataTypeNull:
			// absent
		default:
			logger.Warn("skipping non-scalar stream attribute", "attribute", name)
		}
	}
	return item
}

// Image builds the tagged NewImage a DynamoDB stream would emit for sub.
func Image(sub domain.Submission) (map[string]events.DynamoDBAttributeValue, error) {
	item, err := attributevalue.MarshalMap(sub)
	if err != nil {
		return nil, fmt.Errorf("marshaling submission: %w", err)
	}
	image := make(map[string]events.DynamoDBAttributeValue, len(item))
	for name, av := range item {
		switch v := av.(type) {
		case *types.AttributeValueMemberS:
			image[name] = events.NewStringAttribute(v.Value)
		case *types.AttributeValueMemberNULL:
			image[name] = events.NewNullAttribute()
		default:
			return nil, fmt.Errorf("attribute %q: %w", name, ErrUnsupportedType)
		}
	}
	return image, nil
}

// InsertEvent wraps sub into a single-record INSERT batch.
func InsertEvent(sub domain.Submission) (events.DynamoDBEvent, error) {
	image, err := Image(sub)
	if err != nil {
		return events.DynamoDBEvent{}, err
	}
	keys := map[string]events.DynamoDBAttributeValue{
		domain.FieldSubmissionID: events.NewStringAttribute(sub.ID),
	}
	return events.DynamoDBEvent{Records: []events.DynamoDBEventRecord{{
		EventName:   string(events.DynamoDBOperationTypeInsert),
		EventSource: "aws:dynamodb",
		Change: events.DynamoDBStreamRecord{
			Keys:           keys,
			NewImage:       image,
			StreamViewType: string(events.DynamoDBStreamViewTypeNewImage),
		},
	}}}, nil
}

// ForEachInsert calls fn for every INSERT record in the batch, in order.
// Other event kinds are skipped. A record that fails to decode is logged and
// counted; it never stops the rest of the batch.
func ForEachInsert(ctx context.Context, event events.DynamoDBEvent, fn func(context.Context, domain.Submission)) Summary {
	var sum Summary
	for _, rec := range event.Records {
		if rec.EventName != string(events.DynamoDBOperationTypeInsert) {
			sum.Skipped++
			continue
		}
		sub, err := Decode(rec.Change.NewImage)
		if err != nil {
			sum.DecodeErrors++
			logger.Error("stream record decode failed", "event_id", rec.EventID, "error", err)
			continue
		}
		sum.Inserts++
		fn(ctx, sub)
	}
	return sum
}
