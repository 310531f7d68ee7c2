// Package dynamodb implements the graph document store on DynamoDB. Each
// case graph is one item keyed by claim id, read and written wholesale, with
// a conditional put on the document version for optimistic concurrency.
package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"claimgraph-backend/internal/domain/casegraph"
	"claimgraph-backend/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	awsDynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// graphItem is the persisted shape of a case graph document.
type graphItem struct {
	ClaimID    string           `dynamodbav:"claimId"`
	Version    int              `dynamodbav:"version"`
	Nodes      []casegraph.Node `dynamodbav:"nodes"`
	Edges      []casegraph.Edge `dynamodbav:"edges"`
	CreatedAt  int64            `dynamodbav:"createdAt"`
	UpdatedAt  int64            `dynamodbav:"updatedAt"`
	DocVersion int              `dynamodbav:"docVersion"`
}

// GraphStore is the DynamoDB-backed GraphRepository.
type GraphStore struct {
	client    *awsDynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewGraphStore creates a store over the given table.
func NewGraphStore(client *awsDynamodb.Client, tableName string, logger *zap.Logger) repository.GraphRepository {
	return &GraphStore{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// FindByClaimID loads the full graph document for a case.
func (s *GraphStore) FindByClaimID(ctx context.Context, claimID string) (*casegraph.Graph, error) {
	out, err := s.client.GetItem(ctx, &awsDynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"claimId": &types.AttributeValueMemberS{Value: claimID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get graph document: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, repository.ErrGraphNotFound
	}

	var item graphItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("unmarshal graph document: %w", err)
	}
	return &casegraph.Graph{
		ClaimID:    item.ClaimID,
		Version:    item.Version,
		Nodes:      item.Nodes,
		Edges:      item.Edges,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
		DocVersion: item.DocVersion,
	}, nil
}

// Save writes the whole document, conditional on the stored DocVersion
// matching the one the caller loaded. On success the in-memory graph's
// DocVersion is advanced to the newly stored value.
func (s *GraphStore) Save(ctx context.Context, g *casegraph.Graph) error {
	next := graphItem{
		ClaimID:    g.ClaimID,
		Version:    g.Version,
		Nodes:      g.Nodes,
		Edges:      g.Edges,
		CreatedAt:  g.CreatedAt,
		UpdatedAt:  g.UpdatedAt,
		DocVersion: g.DocVersion + 1,
	}
	item, err := attributevalue.MarshalMap(next)
	if err != nil {
		return fmt.Errorf("marshal graph document: %w", err)
	}

	_, err = s.client.PutItem(ctx, &awsDynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(claimId) OR docVersion = :expected"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", g.DocVersion)},
		},
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			s.logger.Warn("graph save lost optimistic-lock race",
				zap.String("claim_id", g.ClaimID),
				zap.Int("doc_version", g.DocVersion),
			)
			return repository.ErrVersionConflict
		}
		return fmt.Errorf("put graph document: %w", err)
	}

	g.DocVersion = next.DocVersion
	return nil
}

// Delete removes the graph document for a case.
func (s *GraphStore) Delete(ctx context.Context, claimID string) error {
	out, err := s.client.DeleteItem(ctx, &awsDynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"claimId": &types.AttributeValueMemberS{Value: claimID},
		},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return fmt.Errorf("delete graph document: %w", err)
	}
	if len(out.Attributes) == 0 {
		return repository.ErrGraphNotFound
	}
	return nil
}
