package repository

import (
	"testing"
	"time"

	"varejo_pos/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func testSale() *entities.Sale {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	return &entities.Sale{
		ID:            "sale-1",
		StoreID:       "S1",
		UserID:        "u-1",
		PaymentMethod: "CASH",
		DiscountCents: 200,
		TotalCents:    2300,
		Status:        entities.SaleStatusCompleted,
		CreatedAt:     now,
		UpdatedAt:     now,
		Items: []entities.SaleItem{
			{ID: "it-1", SaleID: "sale-1", ProductID: "P1", ProductName: "Espresso Beans", Quantity: 2, UnitPriceCents: 1000, SubtotalCents: 2000},
			{ID: "it-2", SaleID: "sale-1", ProductID: "P2", ProductName: "Paper Cups", Quantity: 1, UnitPriceCents: 500, SubtotalCents: 500},
		},
	}
}

func TestSaleDynamoRepository_BuildTransactWrites(t *testing.T) {
	r := &SaleDynamoRepository{tableName: "sales", itemsTable: "sale_items", productsTable: "products"}
	sale := testSale()

	writes, err := r.buildTransactWrites(sale)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(writes) != 5 {
		t.Fatalf("expected 1 sale + 2 items + 2 decrements, got %d writes", len(writes))
	}

	t.Run("sale put comes first with a duplicate guard", func(t *testing.T) {
		put := writes[0].Put
		if put == nil || aws.ToString(put.TableName) != "sales" {
			t.Fatalf("expected first write to put into sales, got %+v", writes[0])
		}
		if aws.ToString(put.ConditionExpression) != "attribute_not_exists(#id)" {
			t.Fatalf("unexpected condition: %s", aws.ToString(put.ConditionExpression))
		}
		status, ok := put.Item["status"].(*types.AttributeValueMemberS)
		if !ok || status.Value != "COMPLETED" {
			t.Fatalf("expected COMPLETED status in sale row, got %+v", put.Item["status"])
		}
	})

	t.Run("item puts precede decrements", func(t *testing.T) {
		for i := 1; i <= 2; i++ {
			put := writes[i].Put
			if put == nil || aws.ToString(put.TableName) != "sale_items" {
				t.Fatalf("expected write %d to put into sale_items, got %+v", i, writes[i])
			}
		}
	})

	t.Run("decrements are guarded", func(t *testing.T) {
		for i, want := range []struct {
			productID string
			qty       string
		}{{"P1", "2"}, {"P2", "1"}} {
			upd := writes[3+i].Update
			if upd == nil || aws.ToString(upd.TableName) != "products" {
				t.Fatalf("expected write %d to update products, got %+v", 3+i, writes[3+i])
			}
			if aws.ToString(upd.ConditionExpression) != "attribute_exists(#id) AND quantity >= :q" {
				t.Fatalf("unexpected decrement condition: %s", aws.ToString(upd.ConditionExpression))
			}
			key, ok := upd.Key["id"].(*types.AttributeValueMemberS)
			if !ok || key.Value != want.productID {
				t.Fatalf("expected decrement key %s, got %+v", want.productID, upd.Key["id"])
			}
			storeKey, ok := upd.Key["store_id"].(*types.AttributeValueMemberS)
			if !ok || storeKey.Value != "S1" {
				t.Fatalf("expected decrement scoped to store S1, got %+v", upd.Key["store_id"])
			}
			qty, ok := upd.ExpressionAttributeValues[":q"].(*types.AttributeValueMemberN)
			if !ok || qty.Value != want.qty {
				t.Fatalf("expected decrement of %s, got %+v", want.qty, upd.ExpressionAttributeValues[":q"])
			}
		}
	})
}

func TestSaleRowRoundTrip(t *testing.T) {
	sale := testSale()

	got := fromSaleRow(toSaleRow(*sale))
	if got.ID != sale.ID || got.TotalCents != sale.TotalCents || got.Status != sale.Status {
		t.Fatalf("sale row round trip mismatch: %+v", got)
	}
	if !got.CreatedAt.Equal(sale.CreatedAt) {
		t.Fatalf("expected created_at %v, got %v", sale.CreatedAt, got.CreatedAt)
	}

	item := fromSaleItemRow(toSaleItemRow(sale.Items[0]))
	if item != sale.Items[0] {
		t.Fatalf("item row round trip mismatch: %+v", item)
	}
}
