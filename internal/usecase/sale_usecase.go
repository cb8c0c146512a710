package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"varejo_pos/internal/domain/entities"
	"varejo_pos/internal/usecase/interfaces"
)

var (
	ErrInvalidStoreID       = errors.New("invalid store_id")
	ErrInvalidUserID        = errors.New("invalid user_id")
	ErrInvalidSaleID        = errors.New("invalid sale id")
	ErrInvalidProductID     = errors.New("invalid product id")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrDuplicateItem        = errors.New("duplicate product in item list")
	ErrTooManyItems         = errors.New("too many items in a single sale")
	ErrProductNotFound      = errors.New("product not found")
	ErrProductInactive      = errors.New("product is not active")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrSaleNotFound         = errors.New("sale not found")
	ErrSaleStatusConflict   = errors.New("sale status changed concurrently")
	ErrUnknownSortKey       = errors.New("unrecognized sort key")
)

// The persist transaction writes 1 sale + N items + N decrements and
// DynamoDB caps a transaction at 100 write items.
const maxSaleItems = 49

const paymentMethodCard = "CARD"

// SaleItemInput is one requested (product, quantity) pair. Prices are never
// accepted from the caller; they are resolved during assembly.
type SaleItemInput struct {
	ProductID string
	Quantity  int64
}

// CreateSaleInput is the assembled command for a new POS sale.
type CreateSaleInput struct {
	StoreID       string
	UserID        string
	CustomerID    string
	PaymentMethod string
	DiscountCents int64
	Items         []SaleItemInput

	// PaymentPayload is forwarded to the payment gateway for CARD sales.
	// The transaction amount inside it is always overwritten with the
	// assembled total.
	PaymentPayload json.RawMessage
}

// ISaleUseCase exposes the sale workflow.
//
// CreateSale covers assembly (resolve, validate, price) and the atomic
// persist; CancelSale/RefundSale drive the status machine. Neither of the
// transitions restores stock: decrements track physical movement recorded
// at sale time.

type ISaleUseCase interface {
	CreateSale(ctx context.Context, in CreateSaleInput) (entities.Sale, error)
	GetByID(ctx context.Context, id string) (entities.Sale, error)
	ListByStore(ctx context.Context, storeID, sortBy string) ([]entities.Sale, error)
	CancelSale(ctx context.Context, id string) (entities.Sale, error)
	RefundSale(ctx context.Context, id string) (entities.Sale, error)
}

type SaleUseCase struct {
	products interfaces.IProductRepository
	sales    interfaces.ISaleRepository
	gateway  interfaces.IPaymentGateway
}

var _ ISaleUseCase = (*SaleUseCase)(nil)

// NewSaleUseCase wires the sale workflow. gateway may be nil; card sales
// are then recorded without an external capture.
func NewSaleUseCase(products interfaces.IProductRepository, sales interfaces.ISaleRepository, gateway interfaces.IPaymentGateway) *SaleUseCase {
	return &SaleUseCase{products: products, sales: sales, gateway: gateway}
}

func (u *SaleUseCase) CreateSale(ctx context.Context, in CreateSaleInput) (entities.Sale, error) {
	storeID := strings.TrimSpace(in.StoreID)
	if storeID == "" {
		return entities.Sale{}, ErrInvalidStoreID
	}
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return entities.Sale{}, ErrInvalidUserID
	}
	paymentMethod := strings.ToUpper(strings.TrimSpace(in.PaymentMethod))
	if paymentMethod == "" {
		return entities.Sale{}, ErrInvalidPaymentMethod
	}
	log.Printf("[sale][usecase] create start store_id=%s items=%d discount_cents=%d", storeID, len(in.Items), in.DiscountCents)

	lineItems, err := u.assemble(ctx, storeID, in.Items)
	if err != nil {
		log.Printf("[sale][usecase] assembly failed store_id=%s err=%v", storeID, err)
		return entities.Sale{}, err
	}

	sale, err := entities.NewSale(storeID, userID, strings.TrimSpace(in.CustomerID), paymentMethod, lineItems, in.DiscountCents)
	if err != nil {
		log.Printf("[sale][usecase] aggregate rejected store_id=%s err=%v", storeID, err)
		return entities.Sale{}, err
	}

	if paymentMethod == paymentMethodCard {
		if err := u.capturePayment(ctx, sale, in.PaymentPayload); err != nil {
			log.Printf("[sale][usecase] payment capture failed sale_id=%s err=%v", sale.ID, err)
			return entities.Sale{}, err
		}
	}

	if err := u.sales.Create(ctx, sale); err != nil {
		log.Printf("[sale][usecase] persist failed sale_id=%s err=%v", sale.ID, err)
		return entities.Sale{}, err
	}

	log.Printf("[sale][usecase] create success sale_id=%s total_cents=%d items=%d", sale.ID, sale.TotalCents, len(sale.Items))
	return *sale, nil
}

// assemble resolves the requested products in one store-scoped batch and
// prices each line from the authoritative snapshot. It performs no writes.
func (u *SaleUseCase) assemble(ctx context.Context, storeID string, items []SaleItemInput) ([]entities.SaleItem, error) {
	if len(items) == 0 {
		return nil, entities.ErrSaleNoItems
	}
	if len(items) > maxSaleItems {
		return nil, fmt.Errorf("%w: got %d, limit is %d", ErrTooManyItems, len(items), maxSaleItems)
	}

	ids := make([]string, 0, len(items))
	requested := make([]SaleItemInput, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, in := range items {
		id := strings.TrimSpace(in.ProductID)
		if id == "" {
			return nil, ErrInvalidProductID
		}
		if in.Quantity <= 0 {
			return nil, fmt.Errorf("product %q: %w", id, entities.ErrInvalidQuantity)
		}
		if seen[id] {
			return nil, fmt.Errorf("product %q: %w", id, ErrDuplicateItem)
		}
		seen[id] = true
		ids = append(ids, id)
		requested = append(requested, SaleItemInput{ProductID: id, Quantity: in.Quantity})
	}

	products, err := u.products.FindByIDs(ctx, storeID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]entities.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lineItems := make([]entities.SaleItem, 0, len(requested))
	for _, in := range requested {
		p, ok := byID[in.ProductID]
		if !ok {
			return nil, fmt.Errorf("product %q: %w", in.ProductID, ErrProductNotFound)
		}
		if !p.Active {
			return nil, fmt.Errorf("product %q: %w", p.Name, ErrProductInactive)
		}
		if in.Quantity > p.Quantity {
			return nil, fmt.Errorf("product %q: requested %d, available %d: %w", p.Name, in.Quantity, p.Quantity, ErrInsufficientStock)
		}

		item, err := entities.NewSaleItem(p.ID, p.Name, in.Quantity, p.PriceCents)
		if err != nil {
			return nil, fmt.Errorf("product %q: %w", p.Name, err)
		}
		lineItems = append(lineItems, item)
	}
	return lineItems, nil
}

// capturePayment charges the assembled total through the configured gateway
// and records the provider payment id. The sale total is the source of
// truth for the amount, not the caller payload.
func (u *SaleUseCase) capturePayment(ctx context.Context, sale *entities.Sale, payload json.RawMessage) error {
	if u.gateway == nil {
		log.Printf("[sale][usecase] no payment gateway configured; recording card sale without capture sale_id=%s", sale.ID)
		return nil
	}

	reqMap := map[string]any{}
	if len(payload) > 0 && json.Valid(payload) {
		if err := json.Unmarshal(payload, &reqMap); err != nil {
			reqMap = map[string]any{}
		}
	}
	reqMap["transaction_amount"] = float64(sale.TotalCents) / 100
	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = sale.ID
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("POS sale %s", sale.ID)
	}
	body, err := json.Marshal(reqMap)
	if err != nil {
		return err
	}

	providerPaymentID, providerStatus, _, err := u.gateway.CreatePayment(ctx, body)
	if err != nil {
		return err
	}
	log.Printf("[sale][usecase] payment captured sale_id=%s provider_payment_id=%s provider_status=%s", sale.ID, providerPaymentID, providerStatus)
	sale.PaymentRef = providerPaymentID
	return nil
}

func (u *SaleUseCase) GetByID(ctx context.Context, id string) (entities.Sale, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Sale{}, ErrInvalidSaleID
	}

	sale, err := u.sales.GetByID(ctx, id)
	if err != nil {
		return entities.Sale{}, err
	}
	if sale.ID == "" {
		return entities.Sale{}, ErrSaleNotFound
	}
	return sale, nil
}

// saleSortKeys is the closed set of recognized sort tokens. Unrecognized
// tokens are rejected instead of being forwarded to the query layer.
var saleSortKeys = map[string]func(a, b entities.Sale) bool{
	"created_at": func(a, b entities.Sale) bool { return a.CreatedAt.After(b.CreatedAt) },
	"total":      func(a, b entities.Sale) bool { return a.TotalCents > b.TotalCents },
}

func (u *SaleUseCase) ListByStore(ctx context.Context, storeID, sortBy string) ([]entities.Sale, error) {
	storeID = strings.TrimSpace(storeID)
	if storeID == "" {
		return nil, ErrInvalidStoreID
	}
	if sortBy == "" {
		sortBy = "created_at"
	}
	less, ok := saleSortKeys[sortBy]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSortKey, sortBy)
	}

	sales, err := u.sales.ListByStoreID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(sales, func(i, j int) bool { return less(sales[i], sales[j]) })
	return sales, nil
}

func (u *SaleUseCase) CancelSale(ctx context.Context, id string) (entities.Sale, error) {
	return u.transition(ctx, id, (*entities.Sale).Cancel)
}

func (u *SaleUseCase) RefundSale(ctx context.Context, id string) (entities.Sale, error) {
	return u.transition(ctx, id, (*entities.Sale).Refund)
}

// transition loads the sale, validates the move against the observed
// status, then applies it with a compare-and-set on that status so a
// concurrent transition cannot be overwritten. Stock is never restored.
func (u *SaleUseCase) transition(ctx context.Context, id string, move func(*entities.Sale) error) (entities.Sale, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Sale{}, ErrInvalidSaleID
	}

	sale, err := u.sales.GetByID(ctx, id)
	if err != nil {
		return entities.Sale{}, err
	}
	if sale.ID == "" {
		return entities.Sale{}, ErrSaleNotFound
	}

	from := sale.Status
	if err := move(&sale); err != nil {
		return entities.Sale{}, err
	}

	updated, err := u.sales.UpdateStatus(ctx, id, from, sale.Status)
	if err != nil {
		return entities.Sale{}, err
	}
	if updated.ID == "" {
		return entities.Sale{}, ErrSaleStatusConflict
	}
	log.Printf("[sale][usecase] status updated sale_id=%s from=%s to=%s", id, from, updated.Status)
	return updated, nil
}
