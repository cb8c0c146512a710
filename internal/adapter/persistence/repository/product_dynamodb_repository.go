package repository

import (
	"context"
	"time"

	"varejo_pos/internal/domain/entities"
	"varejo_pos/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultProductsTableName = "products"

type productItem struct {
	StoreID    string `dynamodbav:"store_id"`
	ID         string `dynamodbav:"id"`
	Name       string `dynamodbav:"name"`
	Active     bool   `dynamodbav:"active"`
	PriceCents int64  `dynamodbav:"price_cents"`
	Quantity   int64  `dynamodbav:"quantity"`
	CreatedAt  string `dynamodbav:"created_at"`
	UpdatedAt  string `dynamodbav:"updated_at"`
}

// ProductDynamoRepository reads Product rows from DynamoDB.
//
// Table requirements:
//   - PK: store_id (string)
//   - SK: id (string)
//
// The composite key is the tenant filter: every read carries the caller's
// store_id, so another store's products are unreachable by construction.

type ProductDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IProductRepository = (*ProductDynamoRepository)(nil)

func NewProductDynamoRepository(ddb *dynamodb.Client) *ProductDynamoRepository {
	return &ProductDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PRODUCTS_TABLE", defaultProductsTableName),
	}
}

// FindByIDs resolves the requested ids in one consistent batch read.
// Missing ids (including ids owned by another store) are simply absent from
// the result.
func (r *ProductDynamoRepository) FindByIDs(ctx context.Context, storeID string, ids []string) ([]entities.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]map[string]types.AttributeValue, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, map[string]types.AttributeValue{
			"store_id": &types.AttributeValueMemberS{Value: storeID},
			"id":       &types.AttributeValueMemberS{Value: id},
		})
	}

	products := make([]entities.Product, 0, len(ids))
	for len(keys) > 0 {
		out, err := r.ddb.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{
			RequestItems: map[string]types.KeysAndAttributes{
				r.tableName: {
					Keys:           keys,
					ConsistentRead: aws.Bool(true),
				},
			},
		})
		if err != nil {
			return nil, err
		}

		for _, raw := range out.Responses[r.tableName] {
			var it productItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			products = append(products, fromProductItem(it))
		}

		// DynamoDB may return a partial batch; retry the remainder.
		keys = nil
		if unprocessed, ok := out.UnprocessedKeys[r.tableName]; ok {
			keys = unprocessed.Keys
		}
	}
	return products, nil
}

func (r *ProductDynamoRepository) GetByID(ctx context.Context, storeID, id string) (entities.Product, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"store_id": &types.AttributeValueMemberS{Value: storeID},
			"id":       &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Product{}, err
	}
	if len(out.Item) == 0 {
		return entities.Product{}, nil
	}

	var it productItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Product{}, err
	}
	return fromProductItem(it), nil
}

func fromProductItem(it productItem) entities.Product {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.Product{
		ID:         it.ID,
		StoreID:    it.StoreID,
		Name:       it.Name,
		Active:     it.Active,
		PriceCents: it.PriceCents,
		Quantity:   it.Quantity,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}
}
