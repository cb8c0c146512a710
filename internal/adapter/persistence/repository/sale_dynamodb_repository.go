package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"varejo_pos/internal/domain/entities"
	"varejo_pos/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultSalesTableName     = "sales"
	defaultSaleItemsTableName = "sale_items"
	salesStoreIDIndex         = "store_id-index"
)

type saleRow struct {
	ID            string `dynamodbav:"id"`
	StoreID       string `dynamodbav:"store_id"`
	UserID        string `dynamodbav:"user_id"`
	CustomerID    string `dynamodbav:"customer_id,omitempty"`
	PaymentMethod string `dynamodbav:"payment_method"`
	PaymentRef    string `dynamodbav:"payment_ref,omitempty"`
	DiscountCents int64  `dynamodbav:"discount_cents"`
	TotalCents    int64  `dynamodbav:"total_cents"`
	Status        string `dynamodbav:"status"`
	CreatedAt     string `dynamodbav:"created_at"`
	UpdatedAt     string `dynamodbav:"updated_at"`
}

type saleItemRow struct {
	SaleID         string `dynamodbav:"sale_id"`
	ID             string `dynamodbav:"id"`
	ProductID      string `dynamodbav:"product_id"`
	ProductName    string `dynamodbav:"product_name"`
	Quantity       int64  `dynamodbav:"quantity"`
	UnitPriceCents int64  `dynamodbav:"unit_price_cents"`
	SubtotalCents  int64  `dynamodbav:"subtotal_cents"`
}

// SaleDynamoRepository persists the Sale aggregate in DynamoDB.
//
// Table requirements:
//   - sales: PK id (string), GSI store_id-index (PK: store_id)
//   - sale_items: PK sale_id (string), SK id (string)
//   - products: PK store_id (string), SK id (string) — shared with
//     ProductDynamoRepository, mutated here by the persist transaction

type SaleDynamoRepository struct {
	ddb           *dynamodb.Client
	tableName     string
	itemsTable    string
	productsTable string
}

var _ interfaces.ISaleRepository = (*SaleDynamoRepository)(nil)

func NewSaleDynamoRepository(ddb *dynamodb.Client) *SaleDynamoRepository {
	return &SaleDynamoRepository{
		ddb:           ddb,
		tableName:     getenvDefault("SALES_TABLE", defaultSalesTableName),
		itemsTable:    getenvDefault("SALE_ITEMS_TABLE", defaultSaleItemsTableName),
		productsTable: getenvDefault("PRODUCTS_TABLE", defaultProductsTableName),
	}
}

// Create writes the sale row, one row per item and a guarded decrement per
// product as a single TransactWriteItems call. DynamoDB cancels the whole
// transaction when any condition fails, so a sale can never be observed
// with partial items or partial stock movement.
//
// The decrement carries the guard quantity >= :q. Two sales racing over the
// same units make the later transaction cancel; that cancellation is
// surfaced as entities.ErrStockConflict.
func (r *SaleDynamoRepository) Create(ctx context.Context, sale *entities.Sale) error {
	writes, err := r.buildTransactWrites(sale)
	if err != nil {
		return err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: writes,
	})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) {
			// Cancellation reasons align with the write order: index 0 is
			// the sale put, 1..N the item puts, N+1..2N the decrements.
			firstDecrement := 1 + len(sale.Items)
			for i, reason := range canceled.CancellationReasons {
				if aws.ToString(reason.Code) == "ConditionalCheckFailed" && i >= firstDecrement {
					productID := sale.Items[i-firstDecrement].ProductID
					return fmt.Errorf("product %q: %w", productID, entities.ErrStockConflict)
				}
			}
		}
		return fmt.Errorf("sale transaction failed: %w", err)
	}
	return nil
}

// buildTransactWrites lays out the transaction: sale row first (referential
// root), then item rows, then the guarded decrements.
func (r *SaleDynamoRepository) buildTransactWrites(sale *entities.Sale) ([]types.TransactWriteItem, error) {
	saleAV, err := attributevalue.MarshalMap(toSaleRow(*sale))
	if err != nil {
		return nil, err
	}

	writes := make([]types.TransactWriteItem, 0, 1+2*len(sale.Items))
	writes = append(writes, types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(r.tableName),
			Item:                saleAV,
			ConditionExpression: aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: map[string]string{
				"#id": "id",
			},
		},
	})

	for _, item := range sale.Items {
		itemAV, err := attributevalue.MarshalMap(toSaleItemRow(item))
		if err != nil {
			return nil, err
		}
		writes = append(writes, types.TransactWriteItem{
			Put: &types.Put{
				TableName: aws.String(r.itemsTable),
				Item:      itemAV,
			},
		})
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, item := range sale.Items {
		writes = append(writes, types.TransactWriteItem{
			Update: &types.Update{
				TableName: aws.String(r.productsTable),
				Key: map[string]types.AttributeValue{
					"store_id": &types.AttributeValueMemberS{Value: sale.StoreID},
					"id":       &types.AttributeValueMemberS{Value: item.ProductID},
				},
				UpdateExpression:    aws.String("SET quantity = quantity - :q, updated_at = :now"),
				ConditionExpression: aws.String("attribute_exists(#id) AND quantity >= :q"),
				ExpressionAttributeNames: map[string]string{
					"#id": "id",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":q":   &types.AttributeValueMemberN{Value: strconv.FormatInt(item.Quantity, 10)},
					":now": &types.AttributeValueMemberS{Value: now},
				},
			},
		})
	}
	return writes, nil
}

func (r *SaleDynamoRepository) GetByID(ctx context.Context, id string) (entities.Sale, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Sale{}, err
	}
	if len(out.Item) == 0 {
		return entities.Sale{}, nil
	}

	var row saleRow
	if err := attributevalue.UnmarshalMap(out.Item, &row); err != nil {
		return entities.Sale{}, err
	}
	sale := fromSaleRow(row)

	items, err := r.getItems(ctx, id)
	if err != nil {
		return entities.Sale{}, err
	}
	sale.Items = items
	return sale, nil
}

func (r *SaleDynamoRepository) getItems(ctx context.Context, saleID string) ([]entities.SaleItem, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.itemsTable),
		KeyConditionExpression: aws.String("sale_id = :sid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sid": &types.AttributeValueMemberS{Value: saleID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.SaleItem, 0, len(out.Items))
	for _, raw := range out.Items {
		var row saleItemRow
		if err := attributevalue.UnmarshalMap(raw, &row); err != nil {
			return nil, err
		}
		items = append(items, fromSaleItemRow(row))
	}
	return items, nil
}

// ListByStoreID returns the store's sales without their item lists; callers
// needing line detail follow up with GetByID.
func (r *SaleDynamoRepository) ListByStoreID(ctx context.Context, storeID string) ([]entities.Sale, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(salesStoreIDIndex),
		KeyConditionExpression: aws.String("store_id = :sid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sid": &types.AttributeValueMemberS{Value: storeID},
		},
	})
	if err != nil {
		return nil, err
	}

	sales := make([]entities.Sale, 0, len(out.Items))
	for _, raw := range out.Items {
		var row saleRow
		if err := attributevalue.UnmarshalMap(raw, &row); err != nil {
			return nil, err
		}
		sales = append(sales, fromSaleRow(row))
	}
	return sales, nil
}

// UpdateStatus transitions a sale with a compare-and-set on the current
// status. A failed condition (absent sale or lost race) returns a
// zero-value sale instead of an error.
func (r *SaleDynamoRepository) UpdateStatus(ctx context.Context, id string, from, to entities.SaleStatus) (entities.Sale, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND #status = :from"),
		UpdateExpression:    aws.String("SET #status = :to, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#status":     "status",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":from":       &types.AttributeValueMemberS{Value: string(from)},
			":to":         &types.AttributeValueMemberS{Value: string(to)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Sale{}, nil
		}
		return entities.Sale{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Sale{}, nil
	}

	var row saleRow
	if err := attributevalue.UnmarshalMap(out.Attributes, &row); err != nil {
		return entities.Sale{}, err
	}
	return fromSaleRow(row), nil
}

func toSaleRow(s entities.Sale) saleRow {
	return saleRow{
		ID:            s.ID,
		StoreID:       s.StoreID,
		UserID:        s.UserID,
		CustomerID:    s.CustomerID,
		PaymentMethod: s.PaymentMethod,
		PaymentRef:    s.PaymentRef,
		DiscountCents: s.DiscountCents,
		TotalCents:    s.TotalCents,
		Status:        string(s.Status),
		CreatedAt:     s.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:     s.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromSaleRow(row saleRow) entities.Sale {
	createdAt, _ := time.Parse(time.RFC3339Nano, row.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, row.UpdatedAt)
	return entities.Sale{
		ID:            row.ID,
		StoreID:       row.StoreID,
		UserID:        row.UserID,
		CustomerID:    row.CustomerID,
		PaymentMethod: row.PaymentMethod,
		PaymentRef:    row.PaymentRef,
		DiscountCents: row.DiscountCents,
		TotalCents:    row.TotalCents,
		Status:        entities.SaleStatus(row.Status),
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
}

func toSaleItemRow(it entities.SaleItem) saleItemRow {
	return saleItemRow{
		SaleID:         it.SaleID,
		ID:             it.ID,
		ProductID:      it.ProductID,
		ProductName:    it.ProductName,
		Quantity:       it.Quantity,
		UnitPriceCents: it.UnitPriceCents,
		SubtotalCents:  it.SubtotalCents,
	}
}

func fromSaleItemRow(row saleItemRow) entities.SaleItem {
	return entities.SaleItem{
		ID:             row.ID,
		SaleID:         row.SaleID,
		ProductID:      row.ProductID,
		ProductName:    row.ProductName,
		Quantity:       row.Quantity,
		UnitPriceCents: row.UnitPriceCents,
		SubtotalCents:  row.SubtotalCents,
	}
}
