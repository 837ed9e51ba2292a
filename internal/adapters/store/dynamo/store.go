package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"

	"causes-api/internal/adapters/store"
	"causes-api/internal/config"
	"causes-api/internal/models"
)

// batchSize is the BatchWriteItem request limit
const batchSize = 25

// API is the subset of the DynamoDB client the store uses
type API interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

// Store reads causes from a DynamoDB table
type Store struct {
	client API
	logger *logrus.Logger
	retry  *store.RetryConfig
}

// New creates a Store around an existing client
func New(client API, logger *logrus.Logger) *Store {
	if logger == nil {
		logger = logrus.New()
	}
	return &Store{
		client: client,
		logger: logger,
		retry:  store.DefaultRetryConfig(),
	}
}

// NewFromConfig loads the default AWS configuration chain and builds a client.
// A non-empty endpoint points the client at DynamoDB Local.
func NewFromConfig(ctx context.Context, cfg config.StoreConfig, logger *logrus.Logger) (*Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})

	return New(client, logger), nil
}

// ScanAll issues a single Scan against the table. Follow-up pages are not
// requested; a truncated result is logged so operators can see it.
func (s *Store) ScanAll(ctx context.Context, collection string) ([]store.Record, error) {
	if err := store.ValidateCollection(collection); err != nil {
		return nil, store.NewStoreError("Scan", collection, err)
	}

	out, err := s.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(collection),
	})
	if err != nil {
		return nil, store.NewStoreError("Scan", collection, err)
	}

	if len(out.LastEvaluatedKey) > 0 {
		s.logger.WithFields(logrus.Fields{
			"table": collection,
			"items": len(out.Items),
		}).Warn("Scan result truncated by DynamoDB page limit")
	}

	records := make([]store.Record, 0, len(out.Items))
	for _, item := range out.Items {
		records = append(records, recordFromItem(item))
	}

	return records, nil
}

// PutCauses writes causes in BatchWriteItem chunks, resubmitting unprocessed
// items a bounded number of times.
func (s *Store) PutCauses(ctx context.Context, collection string, causes []models.Cause) error {
	if err := store.ValidateCollection(collection); err != nil {
		return store.NewStoreError("Put", collection, err)
	}

	for start := 0; start < len(causes); start += batchSize {
		end := start + batchSize
		if end > len(causes) {
			end = len(causes)
		}

		requests := make([]types.WriteRequest, 0, end-start)
		for _, c := range causes[start:end] {
			item, err := attributevalue.MarshalMap(c)
			if err != nil {
				return store.NewStoreError("Put", collection, fmt.Errorf("failed to marshal cause %s: %w", c.CauseID, err))
			}
			requests = append(requests, types.WriteRequest{PutRequest: &types.PutRequest{Item: item}})
		}

		if err := s.writeBatch(ctx, collection, requests); err != nil {
			return err
		}
	}

	return nil
}

// writeBatch submits one batch and resubmits unprocessed items with backoff
func (s *Store) writeBatch(ctx context.Context, collection string, requests []types.WriteRequest) error {
	pending := map[string][]types.WriteRequest{collection: requests}

	return store.WithRetry(ctx, s.retry, func(ctx context.Context, attempt int) error {
		out, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{RequestItems: pending})
		if err != nil {
			return store.NewStoreError("Put", collection, err)
		}
		if len(out.UnprocessedItems[collection]) == 0 {
			return nil
		}

		pending = out.UnprocessedItems
		s.logger.WithFields(logrus.Fields{
			"table":       collection,
			"attempt":     attempt,
			"unprocessed": len(pending[collection]),
		}).Debug("Unprocessed items left after batch write")

		return store.NewStoreError("Put", collection, fmt.Errorf("%w: %d items left unprocessed", store.ErrUnavailable, len(pending[collection])))
	})
}

// Close implements store.Store
func (s *Store) Close() error {
	return nil
}

// recordFromItem keeps string and number attributes. Other attribute types
// have no place in a cause and are left out, so they read as absent.
func recordFromItem(item map[string]types.AttributeValue) store.Record {
	rec := make(store.Record, len(item))
	for name, av := range item {
		switch v := av.(type) {
		case *types.AttributeValueMemberS:
			rec[name] = store.String(v.Value)
		case *types.AttributeValueMemberN:
			rec[name] = store.Number(v.Value)
		}
	}
	return rec
}
