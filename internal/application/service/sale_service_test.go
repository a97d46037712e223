package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/entity"
	"github.com/sangkips/stockroom-api/internal/domain/enum"
	"github.com/sangkips/stockroom-api/internal/domain/repository"
	"github.com/sangkips/stockroom-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func priced(sv *services, productID uuid.UUID, price string) {
	id := uuid.New()
	sv.store.prices[id] = entity.PriceListEntry{ID: id, ProductID: productID, Price: dec(price), IsActive: true}
}

func newSale(t *testing.T, sv *services, items ...SaleItemInput) *entity.Sale {
	t.Helper()
	sale, err := sv.sales.CreateSale(context.Background(), &CreateSaleInput{CashierID: uuid.New(), Items: items})
	require.NoError(t, err)
	return sale
}

func TestCreateSaleTotals(t *testing.T) {
	sv := newServices()
	soap, towel := sv.product("Soap"), sv.product("Towel")
	priced(sv, soap, "2.50")
	override := dec("7")

	sale := newSale(t, sv,
		SaleItemInput{ProductID: soap, Quantity: 4},
		SaleItemInput{ProductID: towel, Quantity: 2, UnitPrice: &override},
	)

	assert.True(t, dec("24").Equal(sale.GrandTotal))
	assert.True(t, dec("24").Equal(sale.Outstanding))
	assert.Equal(t, enum.OrderStatusDraft, sale.OrderStatus)
	assert.Equal(t, enum.PaymentStatusUnpaid, sale.PaymentStatus)
	assert.Regexp(t, `^INV-\d{8}-[0-9A-F]{8}$`, sale.InvoiceNumber)
	require.Len(t, sale.Items, 2)
	assert.True(t, dec("2.50").Equal(sale.Items[0].UnitPrice))
}

func TestCreateSaleValidation(t *testing.T) {
	sv := newServices()
	ctx := context.Background()
	unpriced := sv.product("Towel")

	_, err := sv.sales.CreateSale(ctx, &CreateSaleInput{})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation), "empty items")

	_, err = sv.sales.CreateSale(ctx, &CreateSaleInput{Items: []SaleItemInput{{ProductID: unpriced, Quantity: 0}}})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation), "zero quantity")

	_, err = sv.sales.CreateSale(ctx, &CreateSaleInput{Items: []SaleItemInput{{ProductID: unpriced, Quantity: 1}}})
	appErr := apperror.GetAppError(err)
	require.Equal(t, apperror.KindValidation, appErr.Kind, "no price available")
	assert.Equal(t, "items[0].unit_price", appErr.Errors[0].Field)

	price := dec("1")
	_, err = sv.sales.CreateSale(ctx, &CreateSaleInput{
		Status: enum.OrderStatusCompleted,
		Items:  []SaleItemInput{{ProductID: unpriced, Quantity: 1, UnitPrice: &price}},
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation), "completed on create")
	assert.Empty(t, sv.store.sales)
}

func TestCompleteSaleTakesStock(t *testing.T) {
	sv := newServices()
	ctx := context.Background()
	soap := sv.product("Soap")
	priced(sv, soap, "3")
	sv.receive(sv.supplier("Acme"), day(1), BatchItemInput{ProductID: soap, Quantity: 5, UnitCost: dec("1")})
	sale := newSale(t, sv, SaleItemInput{ProductID: soap, Quantity: 4})

	done, err := sv.sales.UpdateSaleStatus(ctx, sale.ID, enum.OrderStatusCompleted, nil)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusCompleted, done.OrderStatus)

	stock, err := sv.stock.CurrentQuantity(ctx, soap)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stock.CurrentQuantity)

	outs, err := sv.stock.ListMovements(ctx, &repository.MovementFilterParams{ProductID: &soap})
	require.NoError(t, err)
	require.Len(t, outs, 1)
	assert.Equal(t, enum.MovementTypeOut, outs[0].MovementType)
	assert.Equal(t, -4, outs[0].Quantity)

	_, err = sv.sales.UpdateSaleStatus(ctx, sale.ID, enum.OrderStatusSubmitted, nil)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict), "completed is final")
}

func TestCompleteSaleShortage(t *testing.T) {
	sv := newServices()
	ctx := context.Background()
	soap := sv.product("Soap")
	priced(sv, soap, "3")
	sv.receive(sv.supplier("Acme"), day(1), BatchItemInput{ProductID: soap, Quantity: 2, UnitCost: dec("1")})
	sale := newSale(t, sv, SaleItemInput{ProductID: soap, Quantity: 3})

	_, err := sv.sales.UpdateSaleStatus(ctx, sale.ID, enum.OrderStatusCompleted, nil)

	require.True(t, apperror.IsKind(err, apperror.KindConflict))
	assert.Contains(t, err.Error(), "Soap")
	assert.Empty(t, sv.store.movements)
	assert.Equal(t, enum.OrderStatusDraft, sv.store.sales[sale.ID].OrderStatus)
}

func TestRecordPayments(t *testing.T) {
	sv := newServices()
	ctx := context.Background()
	soap := sv.product("Soap")
	priced(sv, soap, "50")
	sale := newSale(t, sv, SaleItemInput{ProductID: soap, Quantity: 2})

	first, err := sv.sales.RecordPayment(ctx, sale.ID, &RecordPaymentInput{Amount: dec("40"), PaymentMethod: enum.PaymentMethodCash})
	require.NoError(t, err)

	got, err := sv.sales.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPartial, got.PaymentStatus)
	assert.True(t, dec("60").Equal(got.Outstanding))

	_, err = sv.sales.RecordPayment(ctx, sale.ID, &RecordPaymentInput{Amount: dec("60.01"), PaymentMethod: enum.PaymentMethodCard})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation), "overpayment")

	_, err = sv.sales.RecordPayment(ctx, sale.ID, &RecordPaymentInput{Amount: dec("60"), PaymentMethod: enum.PaymentMethodCard})
	require.NoError(t, err)

	got, err = sv.sales.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPaid, got.PaymentStatus)
	assert.True(t, decimal.Zero.Equal(got.Outstanding))

	require.NoError(t, sv.sales.DeletePayment(ctx, first.ID))

	got, err = sv.sales.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPartial, got.PaymentStatus)
	assert.True(t, dec("60").Equal(got.PaidAmount))

	payments, err := sv.sales.ListPayments(ctx, sale.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}

func TestRecordPaymentValidation(t *testing.T) {
	sv := newServices()

	_, err := sv.sales.RecordPayment(context.Background(), uuid.New(), &RecordPaymentInput{Amount: dec("0"), PaymentMethod: "barter"})

	appErr := apperror.GetAppError(err)
	require.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Len(t, appErr.Errors, 2)
}

func TestDeleteSale(t *testing.T) {
	sv := newServices()
	ctx := context.Background()
	soap := sv.product("Soap")
	priced(sv, soap, "5")

	paid := newSale(t, sv, SaleItemInput{ProductID: soap, Quantity: 1})
	_, err := sv.sales.RecordPayment(ctx, paid.ID, &RecordPaymentInput{Amount: dec("5"), PaymentMethod: enum.PaymentMethodCash})
	require.NoError(t, err)
	assert.True(t, apperror.IsKind(sv.sales.DeleteSale(ctx, paid.ID), apperror.KindConflict))

	submitted := newSale(t, sv, SaleItemInput{ProductID: soap, Quantity: 1})
	_, err = sv.sales.UpdateSaleStatus(ctx, submitted.ID, enum.OrderStatusSubmitted, nil)
	require.NoError(t, err)
	assert.True(t, apperror.IsKind(sv.sales.DeleteSale(ctx, submitted.ID), apperror.KindConflict))

	draft := newSale(t, sv, SaleItemInput{ProductID: soap, Quantity: 1})
	require.NoError(t, sv.sales.DeleteSale(ctx, draft.ID))
	assert.True(t, apperror.IsKind(sv.sales.DeleteSale(ctx, draft.ID), apperror.KindNotFound))
}

func TestListSalesPaginates(t *testing.T) {
	sv := newServices()
	soap := sv.product("Soap")
	priced(sv, soap, "5")
	newSale(t, sv, SaleItemInput{ProductID: soap, Quantity: 1})
	newSale(t, sv, SaleItemInput{ProductID: soap, Quantity: 2})

	result, err := sv.sales.ListSales(context.Background(), &repository.SaleFilterParams{})

	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(2), result.Pagination.Total)
}
