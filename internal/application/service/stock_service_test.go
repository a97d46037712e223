package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/entity"
	"github.com/sangkips/stockroom-api/internal/domain/enum"
	"github.com/sangkips/stockroom-api/internal/domain/repository"
	"github.com/sangkips/stockroom-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBatchValidation(t *testing.T) {
	sv := newServices()
	supplierID := sv.supplier("Acme")
	productID := sv.product("Soap")

	tests := []struct {
		name  string
		items []BatchItemInput
		field string
	}{
		{"empty items", nil, "items"},
		{"zero quantity", []BatchItemInput{{ProductID: productID, Quantity: 0, UnitCost: dec("1")}}, "items[0].quantity"},
		{"negative cost", []BatchItemInput{{ProductID: productID, Quantity: 1, UnitCost: dec("-1")}}, "items[0].unit_cost"},
		{"missing product", []BatchItemInput{{ProductID: uuid.New(), Quantity: 1, UnitCost: dec("1")}}, "items[0].product_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sv.stock.CreateBatch(context.Background(), &CreateBatchInput{
				SupplierID:   supplierID,
				PurchaseDate: day(1),
				Items:        tt.items,
			})

			appErr := apperror.GetAppError(err)
			require.Equal(t, apperror.KindValidation, appErr.Kind)
			require.NotEmpty(t, appErr.Errors)
			assert.Equal(t, tt.field, appErr.Errors[0].Field)
		})
	}
	assert.Empty(t, sv.store.batches)
}

func TestCreateBatchNumbersLines(t *testing.T) {
	sv := newServices()
	a, b := sv.product("A"), sv.product("B")

	batch := sv.receive(sv.supplier("Acme"), day(2),
		BatchItemInput{ProductID: a, Quantity: 4, UnitCost: dec("2.00")},
		BatchItemInput{ProductID: b, Quantity: 1, UnitCost: dec("10.00")},
	)

	require.Len(t, batch.Items, 2)
	assert.Equal(t, 1, batch.Items[0].LineNo)
	assert.Equal(t, 2, batch.Items[1].LineNo)
	assert.True(t, dec("18").Equal(batch.TotalCost()))
}

func TestCurrentQuantitySumsReceiptsAndMovements(t *testing.T) {
	sv := newServices()
	ctx := context.Background()
	supplierID := sv.supplier("Acme")
	productID := sv.product("Soap")

	first := sv.receive(supplierID, day(1), BatchItemInput{ProductID: productID, Quantity: 10, UnitCost: dec("1")})
	sv.receive(supplierID, day(5), BatchItemInput{ProductID: productID, Quantity: 5, UnitCost: dec("1.2")})

	_, err := sv.stock.CreateAdjustment(ctx, &CreateAdjustmentInput{BatchID: &first.ID, ProductID: productID, Quantity: -3})
	require.NoError(t, err)

	stock, err := sv.stock.CurrentQuantity(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, int64(15), stock.Received)
	assert.Equal(t, int64(-3), stock.MovementDelta)
	assert.Equal(t, int64(12), stock.CurrentQuantity)
}

func TestCurrentQuantityUnknownProduct(t *testing.T) {
	sv := newServices()

	_, err := sv.stock.CurrentQuantity(context.Background(), uuid.New())

	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestCreateAdjustmentRules(t *testing.T) {
	sv := newServices()
	ctx := context.Background()
	inBatch, other := sv.product("Soap"), sv.product("Towel")
	batch := sv.receive(sv.supplier("Acme"), day(1), BatchItemInput{ProductID: inBatch, Quantity: 2, UnitCost: dec("1")})

	_, err := sv.stock.CreateAdjustment(ctx, &CreateAdjustmentInput{BatchID: &batch.ID, ProductID: other, Quantity: 1})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation), "product outside the batch")

	_, err = sv.stock.CreateAdjustment(ctx, &CreateAdjustmentInput{BatchID: &batch.ID, ProductID: inBatch, Quantity: 0})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation), "zero quantity")

	_, err = sv.stock.CreateAdjustment(ctx, &CreateAdjustmentInput{ProductID: inBatch, Quantity: 1})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation), "missing batch")

	movement, err := sv.stock.CreateAdjustment(ctx, &CreateAdjustmentInput{BatchID: &batch.ID, ProductID: inBatch, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, enum.MovementTypeAdjust, movement.MovementType)

	list, err := sv.stock.ListMovements(ctx, &repository.MovementFilterParams{ProductID: &inBatch})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDeleteBatch(t *testing.T) {
	sv := newServices()
	ctx := context.Background()
	productID := sv.product("Soap")
	supplierID := sv.supplier("Acme")

	adjusted := sv.receive(supplierID, day(1), BatchItemInput{ProductID: productID, Quantity: 2, UnitCost: dec("1")})
	_, err := sv.stock.CreateAdjustment(ctx, &CreateAdjustmentInput{BatchID: &adjusted.ID, ProductID: productID, Quantity: -1})
	require.NoError(t, err)

	err = sv.stock.DeleteBatch(ctx, adjusted.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	clean := sv.receive(supplierID, day(2), BatchItemInput{ProductID: productID, Quantity: 2, UnitCost: dec("1")})
	require.NoError(t, sv.stock.DeleteBatch(ctx, clean.ID))

	_, err = sv.stock.GetBatch(ctx, clean.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestLatestBatchPrice(t *testing.T) {
	sv := newServices()
	ctx := context.Background()
	supplierID := sv.supplier("Acme")
	productID := sv.product("Soap")

	price, err := sv.stock.LatestBatchPrice(ctx, productID)
	require.NoError(t, err)
	assert.Nil(t, price.UnitCost)

	sv.receive(supplierID, day(3), BatchItemInput{ProductID: productID, Quantity: 1, UnitCost: dec("10")})
	latest := sv.receive(supplierID, day(9), BatchItemInput{ProductID: productID, Quantity: 1, UnitCost: dec("12")})
	sv.receive(supplierID, day(6), BatchItemInput{ProductID: productID, Quantity: 1, UnitCost: dec("11")})

	price, err = sv.stock.LatestBatchPrice(ctx, productID)
	require.NoError(t, err)
	require.NotNil(t, price.UnitCost)
	assert.True(t, dec("12").Equal(*price.UnitCost))
	assert.Equal(t, latest.ID, *price.BatchID)
}

// partialBatches writes the header and then one line at a time, failing on
// line failAt the way a dropped connection would mid-insert
type partialBatches struct {
	fakeBatches
	failAt int
}

func (r partialBatches) Create(_ context.Context, b *entity.Batch) error {
	r.s.mu.Lock()
	newID(&b.ID)
	header := *b
	header.Items = nil
	r.s.batches[b.ID] = header
	r.s.mu.Unlock()

	for i := range b.Items {
		if i == r.failAt {
			return errors.New("insert batch_items: connection reset")
		}
		r.s.mu.Lock()
		stored := r.s.batches[b.ID]
		newID(&b.Items[i].ID)
		b.Items[i].BatchID = b.ID
		stored.Items = append(stored.Items, b.Items[i])
		r.s.batches[b.ID] = stored
		r.s.mu.Unlock()
	}
	return nil
}

func TestCreateBatchIsAllOrNothing(t *testing.T) {
	sv := newServices()
	ctx := context.Background()
	a, b := sv.product("A"), sv.product("B")
	s := sv.store
	stock := NewStockService(rollbackTx{s}, fakeProducts{s}, fakeSuppliers{s}, partialBatches{fakeBatches{s}, 1}, fakeMovements{s}, fakeStockQuery{s})

	_, err := stock.CreateBatch(ctx, &CreateBatchInput{
		SupplierID:   sv.supplier("Acme"),
		PurchaseDate: day(3),
		Items: []BatchItemInput{
			{ProductID: a, Quantity: 4, UnitCost: dec("2")},
			{ProductID: b, Quantity: 1, UnitCost: dec("10")},
		},
	})

	require.Error(t, err)
	assert.Empty(t, s.batches)

	qty, err := stock.CurrentQuantity(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, int64(0), qty.Received)
}
