package dynamo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"causes-api/internal/adapters/store"
	"causes-api/internal/models"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*dynamodb.ScanOutput)
	return out, args.Error(1)
}

func (m *mockAPI) BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*dynamodb.BatchWriteItemOutput)
	return out, args.Error(1)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func tableIs(name string) interface{} {
	return mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
		return in.TableName != nil && *in.TableName == name &&
			in.FilterExpression == nil && in.ExclusiveStartKey == nil && in.Limit == nil
	})
}

func TestStore_ScanAll(t *testing.T) {
	api := &mockAPI{}
	api.On("Scan", mock.Anything, tableIs("causes")).Return(&dynamodb.ScanOutput{
		Items: []map[string]types.AttributeValue{
			{
				"cause_id":       &types.AttributeValueMemberS{Value: "uuid-1"},
				"category":       &types.AttributeValueMemberS{Value: "environment"},
				"cause_desc":     &types.AttributeValueMemberS{Value: "environment"},
				"follower_count": &types.AttributeValueMemberN{Value: "171"},
			},
			{
				"cause_id":   &types.AttributeValueMemberS{Value: "uuid-2"},
				"category":   &types.AttributeValueMemberS{Value: "labor practices"},
				"cause_desc": &types.AttributeValueMemberS{Value: "union suppression"},
				"active":     &types.AttributeValueMemberBOOL{Value: true},
			},
		},
	}, nil).Once()

	s := New(api, quietLogger())
	records, err := s.ScanAll(context.Background(), "causes")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, store.String("uuid-1"), records[0]["cause_id"])
	assert.Equal(t, store.Number("171"), records[0]["follower_count"])
	assert.Equal(t, store.String("union suppression"), records[1]["cause_desc"])
	_, hasFollowers := records[1]["follower_count"]
	assert.False(t, hasFollowers)
	_, hasActive := records[1]["active"]
	assert.False(t, hasActive)

	api.AssertExpectations(t)
	api.AssertNumberOfCalls(t, "Scan", 1)
}

func TestStore_ScanAllTruncatedIsSingleRead(t *testing.T) {
	api := &mockAPI{}
	api.On("Scan", mock.Anything, tableIs("causes")).Return(&dynamodb.ScanOutput{
		Items: []map[string]types.AttributeValue{
			{"cause_id": &types.AttributeValueMemberS{Value: "uuid-1"}},
		},
		LastEvaluatedKey: map[string]types.AttributeValue{
			"cause_id": &types.AttributeValueMemberS{Value: "uuid-1"},
		},
	}, nil).Once()

	s := New(api, quietLogger())
	records, err := s.ScanAll(context.Background(), "causes")
	require.NoError(t, err)
	assert.Len(t, records, 1)
	api.AssertNumberOfCalls(t, "Scan", 1)
}

func TestStore_ScanAllEmpty(t *testing.T) {
	api := &mockAPI{}
	api.On("Scan", mock.Anything, tableIs("causes")).Return(&dynamodb.ScanOutput{}, nil).Once()

	records, err := New(api, quietLogger()).ScanAll(context.Background(), "causes")
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestStore_ScanAllError(t *testing.T) {
	api := &mockAPI{}
	api.On("Scan", mock.Anything, mock.Anything).Return(nil, errors.New("ResourceNotFoundException: table missing")).Once()

	_, err := New(api, quietLogger()).ScanAll(context.Background(), "causes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ResourceNotFoundException: table missing")

	var storeErr *store.StoreError
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "causes", storeErr.Collection)
}

func TestStore_ScanAllInvalidTable(t *testing.T) {
	api := &mockAPI{}

	_, err := New(api, quietLogger()).ScanAll(context.Background(), "bad table")
	assert.ErrorIs(t, err, store.ErrInvalidCollection)
	api.AssertNotCalled(t, "Scan", mock.Anything, mock.Anything)
}

func TestStore_PutCausesBatches(t *testing.T) {
	causes := make([]models.Cause, 30)
	for i := range causes {
		causes[i] = models.Cause{CauseID: string(rune('a' + i)), Category: "c", CauseDesc: "d", FollowerCount: int64(i)}
	}

	api := &mockAPI{}
	api.On("BatchWriteItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.BatchWriteItemInput) bool {
		return len(in.RequestItems["causes"]) == 25
	})).Return(&dynamodb.BatchWriteItemOutput{}, nil).Once()
	api.On("BatchWriteItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.BatchWriteItemInput) bool {
		return len(in.RequestItems["causes"]) == 5
	})).Return(&dynamodb.BatchWriteItemOutput{}, nil).Once()

	err := New(api, quietLogger()).PutCauses(context.Background(), "causes", causes)
	require.NoError(t, err)
	api.AssertExpectations(t)
}

func TestStore_PutCausesMarshalsAttributes(t *testing.T) {
	var captured *dynamodb.BatchWriteItemInput
	api := &mockAPI{}
	api.On("BatchWriteItem", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(1).(*dynamodb.BatchWriteItemInput) }).
		Return(&dynamodb.BatchWriteItemOutput{}, nil).Once()

	err := New(api, quietLogger()).PutCauses(context.Background(), "causes", []models.Cause{
		{CauseID: "uuid-1", Category: "environment", CauseDesc: "environment", FollowerCount: 171},
	})
	require.NoError(t, err)
	require.NotNil(t, captured)

	item := captured.RequestItems["causes"][0].PutRequest.Item
	assert.Equal(t, &types.AttributeValueMemberS{Value: "uuid-1"}, item["cause_id"])
	assert.Equal(t, &types.AttributeValueMemberN{Value: "171"}, item["follower_count"])
}

func TestStore_PutCausesUnprocessed(t *testing.T) {
	leftover := map[string][]types.WriteRequest{
		"causes": {{PutRequest: &types.PutRequest{Item: map[string]types.AttributeValue{
			"cause_id": &types.AttributeValueMemberS{Value: "uuid-1"},
		}}}},
	}

	api := &mockAPI{}
	api.On("BatchWriteItem", mock.Anything, mock.Anything).
		Return(&dynamodb.BatchWriteItemOutput{UnprocessedItems: leftover}, nil)

	s := New(api, quietLogger())
	s.retry = &store.RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, BackoffFactor: 2}

	err := s.PutCauses(context.Background(), "causes", []models.Cause{
		{CauseID: "uuid-1", Category: "c", CauseDesc: "d"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrUnavailable)
	api.AssertNumberOfCalls(t, "BatchWriteItem", 3)
}

func TestStore_PutCausesClientErrorNotRetried(t *testing.T) {
	api := &mockAPI{}
	api.On("BatchWriteItem", mock.Anything, mock.Anything).
		Return(nil, errors.New("AccessDeniedException"))

	err := New(api, quietLogger()).PutCauses(context.Background(), "causes", []models.Cause{
		{CauseID: "uuid-1", Category: "c", CauseDesc: "d"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AccessDeniedException")
	api.AssertNumberOfCalls(t, "BatchWriteItem", 1)
}
