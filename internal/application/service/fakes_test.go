package service

import (
	"context"
	"maps"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/entity"
	"github.com/sangkips/stockroom-api/internal/domain/enum"
	"github.com/sangkips/stockroom-api/internal/domain/repository"
	"github.com/sangkips/stockroom-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// store is a tiny in-memory database shared by the fake repositories
type store struct {
	mu         sync.Mutex
	categories map[uuid.UUID]entity.Category
	suppliers  map[uuid.UUID]entity.Supplier
	products   map[uuid.UUID]entity.Product
	customers  map[uuid.UUID]entity.Customer
	users      map[uuid.UUID]entity.User
	batches    map[uuid.UUID]entity.Batch
	movements  []entity.StockMovement
	prices     map[uuid.UUID]entity.PriceListEntry
	returns    map[uuid.UUID]entity.Return
	sales      map[uuid.UUID]entity.Sale
	payments   map[uuid.UUID]entity.Payment
	prs        map[uuid.UUID]entity.PurchaseRequest
}

func newStore() *store {
	return &store{
		categories: map[uuid.UUID]entity.Category{},
		suppliers:  map[uuid.UUID]entity.Supplier{},
		products:   map[uuid.UUID]entity.Product{},
		customers:  map[uuid.UUID]entity.Customer{},
		users:      map[uuid.UUID]entity.User{},
		batches:    map[uuid.UUID]entity.Batch{},
		prices:     map[uuid.UUID]entity.PriceListEntry{},
		returns:    map[uuid.UUID]entity.Return{},
		sales:      map[uuid.UUID]entity.Sale{},
		payments:   map[uuid.UUID]entity.Payment{},
		prs:        map[uuid.UUID]entity.PurchaseRequest{},
	}
}

func newID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

type fakeTx struct{}

func (fakeTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// rollbackTx restores the whole store when fn fails
type rollbackTx struct{ s *store }

func (t rollbackTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	saved := t.s.snapshot()
	if err := fn(ctx); err != nil {
		t.s.restore(saved)
		return err
	}
	return nil
}

func (s *store) snapshot() *store {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &store{
		categories: maps.Clone(s.categories),
		suppliers:  maps.Clone(s.suppliers),
		products:   maps.Clone(s.products),
		customers:  maps.Clone(s.customers),
		users:      maps.Clone(s.users),
		batches:    maps.Clone(s.batches),
		movements:  slices.Clone(s.movements),
		prices:     maps.Clone(s.prices),
		returns:    maps.Clone(s.returns),
		sales:      maps.Clone(s.sales),
		payments:   maps.Clone(s.payments),
		prs:        maps.Clone(s.prs),
	}
}

func (s *store) restore(saved *store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = saved.categories
	s.suppliers = saved.suppliers
	s.products = saved.products
	s.customers = saved.customers
	s.users = saved.users
	s.batches = saved.batches
	s.movements = saved.movements
	s.prices = saved.prices
	s.returns = saved.returns
	s.sales = saved.sales
	s.payments = saved.payments
	s.prs = saved.prs
}

// categories

type fakeCategories struct{ s *store }

func (r fakeCategories) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	newID(&c.ID)
	r.s.categories[c.ID] = *c
	return nil
}

func (r fakeCategories) GetByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r fakeCategories) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.categories[c.ID] = *c
	return nil
}

func (r fakeCategories) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.categories, id)
	return nil
}

func (r fakeCategories) List(_ context.Context, search string) ([]entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Category{}
	for _, c := range r.s.categories {
		if search == "" || strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
			out = append(out, c)
		}
	}
	return out, nil
}

// suppliers

type fakeSuppliers struct{ s *store }

func (r fakeSuppliers) Create(_ context.Context, v *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	newID(&v.ID)
	r.s.suppliers[v.ID] = *v
	return nil
}

func (r fakeSuppliers) GetByID(_ context.Context, id uuid.UUID) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r fakeSuppliers) Update(_ context.Context, v *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.suppliers[v.ID] = *v
	return nil
}

func (r fakeSuppliers) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.suppliers, id)
	return nil
}

func (r fakeSuppliers) List(_ context.Context, _ string) ([]entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Supplier{}
	for _, v := range r.s.suppliers {
		out = append(out, v)
	}
	return out, nil
}

// products

type fakeProducts struct{ s *store }

func (r fakeProducts) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	newID(&p.ID)
	r.s.products[p.ID] = *p
	return nil
}

func (r fakeProducts) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r fakeProducts) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Product{}
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r fakeProducts) GetByBarcode(_ context.Context, barcode string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.Barcode != nil && *p.Barcode == barcode {
			return &p, nil
		}
	}
	return nil, nil
}

func (r fakeProducts) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[p.ID] = *p
	return nil
}

func (r fakeProducts) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.products, id)
	return nil
}

func (r fakeProducts) List(_ context.Context, _ *repository.ProductFilterParams) ([]entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Product{}
	for _, p := range r.s.products {
		out = append(out, p)
	}
	return out, nil
}

func (r fakeProducts) LockByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	return r.GetByIDs(ctx, ids)
}

// customers

type fakeCustomers struct{ s *store }

func (r fakeCustomers) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	newID(&c.ID)
	r.s.customers[c.ID] = *c
	return nil
}

func (r fakeCustomers) GetByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r fakeCustomers) Update(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.customers[c.ID] = *c
	return nil
}

func (r fakeCustomers) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.customers, id)
	return nil
}

func (r fakeCustomers) List(_ context.Context, _ *repository.CustomerFilterParams) ([]entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Customer{}
	for _, c := range r.s.customers {
		out = append(out, c)
	}
	return out, nil
}

// references

type fakeRefs struct{ s *store }

func (r fakeRefs) CategoryReferences(_ context.Context, id uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, p := range r.s.products {
		if p.CategoryID != nil && *p.CategoryID == id {
			n++
		}
	}
	return n, nil
}

func (r fakeRefs) SupplierReferences(_ context.Context, id uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, p := range r.s.products {
		if p.SupplierID != nil && *p.SupplierID == id {
			n++
		}
	}
	for _, b := range r.s.batches {
		if b.SupplierID == id {
			n++
		}
	}
	return n, nil
}

func (r fakeRefs) ProductReferences(_ context.Context, id uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, b := range r.s.batches {
		if b.HasProduct(id) {
			n++
		}
	}
	for _, m := range r.s.movements {
		if m.ProductID == id {
			n++
		}
	}
	return n, nil
}

func (r fakeRefs) CustomerReferences(_ context.Context, id uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, sale := range r.s.sales {
		if sale.CustomerID != nil && *sale.CustomerID == id {
			n++
		}
	}
	return n, nil
}

// batches

type fakeBatches struct{ s *store }

func (r fakeBatches) Create(_ context.Context, b *entity.Batch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	newID(&b.ID)
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	for i := range b.Items {
		newID(&b.Items[i].ID)
		b.Items[i].BatchID = b.ID
	}
	r.s.batches[b.ID] = *b
	return nil
}

func (r fakeBatches) GetByID(_ context.Context, id uuid.UUID) (*entity.Batch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.batches[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r fakeBatches) List(_ context.Context, _ *repository.BatchFilterParams) ([]entity.Batch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Batch{}
	for _, b := range r.s.batches {
		out = append(out, b)
	}
	return out, nil
}

func (r fakeBatches) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.batches, id)
	return nil
}

func (r fakeBatches) LatestItemForProduct(_ context.Context, productID uuid.UUID) (*entity.BatchItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var (
		best     *entity.BatchItem
		bestDate time.Time
		bestAt   time.Time
	)
	for _, b := range r.s.batches {
		for i := range b.Items {
			it := b.Items[i]
			if it.ProductID != productID {
				continue
			}
			newer := best == nil ||
				b.PurchaseDate.After(bestDate) ||
				(b.PurchaseDate.Equal(bestDate) && b.CreatedAt.After(bestAt))
			if newer {
				best, bestDate, bestAt = &it, b.PurchaseDate, b.CreatedAt
			}
		}
	}
	return best, nil
}

// movements

type fakeMovements struct{ s *store }

func (r fakeMovements) Create(ctx context.Context, m *entity.StockMovement) error {
	newID(&m.ID)
	return r.CreateMany(ctx, []entity.StockMovement{*m})
}

func (r fakeMovements) CreateMany(_ context.Context, ms []entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range ms {
		newID(&m.ID)
		r.s.movements = append(r.s.movements, m)
	}
	return nil
}

func (r fakeMovements) List(_ context.Context, params *repository.MovementFilterParams) ([]entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.StockMovement{}
	for _, m := range r.s.movements {
		if params != nil && params.ProductID != nil && m.ProductID != *params.ProductID {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r fakeMovements) CountByBatch(_ context.Context, batchID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, m := range r.s.movements {
		if m.BatchID != nil && *m.BatchID == batchID {
			n++
		}
	}
	return n, nil
}

// stock queries

type fakeStockQuery struct{ s *store }

func (r fakeStockQuery) StockLines(_ context.Context, filter *repository.StockReportFilter) ([]repository.StockLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []repository.StockLine{}
	for _, b := range r.s.batches {
		if filter.SupplierID != nil && b.SupplierID != *filter.SupplierID {
			continue
		}
		for _, it := range b.Items {
			p := r.s.products[it.ProductID]
			if filter.ProductID != nil && it.ProductID != *filter.ProductID {
				continue
			}
			out = append(out, repository.StockLine{
				ProductID:     p.ID,
				ProductName:   p.Name,
				Barcode:       p.Barcode,
				Unit:          p.Unit,
				CategoryID:    p.CategoryID,
				SupplierID:    b.SupplierID,
				BatchID:       b.ID,
				BatchItemID:   it.ID,
				InvoiceNumber: b.InvoiceNumber,
				Quantity:      int64(it.Quantity),
				UnitCost:      it.UnitCost,
				PurchaseDate:  b.PurchaseDate,
			})
		}
	}
	return out, nil
}

func (r fakeStockQuery) ReceivedTotals(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[uuid.UUID]int64{}
	for _, b := range r.s.batches {
		for _, it := range b.Items {
			if wanted(ids, it.ProductID) {
				out[it.ProductID] += int64(it.Quantity)
			}
		}
	}
	return out, nil
}

func (r fakeStockQuery) MovementTotals(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[uuid.UUID]int64{}
	for _, m := range r.s.movements {
		if wanted(ids, m.ProductID) {
			out[m.ProductID] += int64(m.Quantity)
		}
	}
	return out, nil
}

func wanted(ids []uuid.UUID, id uuid.UUID) bool {
	if len(ids) == 0 {
		return true
	}
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// price list

type fakePrices struct{ s *store }

func (r fakePrices) Create(_ context.Context, e *entity.PriceListEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	newID(&e.ID)
	r.s.prices[e.ID] = *e
	return nil
}

func (r fakePrices) GetByID(_ context.Context, id uuid.UUID) (*entity.PriceListEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.prices[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r fakePrices) GetActiveByProduct(_ context.Context, productID uuid.UUID) (*entity.PriceListEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.prices {
		if e.ProductID == productID && e.IsActive {
			return &e, nil
		}
	}
	return nil, nil
}

func (r fakePrices) GetActiveByProducts(_ context.Context, ids []uuid.UUID) ([]entity.PriceListEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.PriceListEntry{}
	for _, e := range r.s.prices {
		if e.IsActive && wanted(ids, e.ProductID) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r fakePrices) Update(_ context.Context, e *entity.PriceListEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.prices[e.ID] = *e
	return nil
}

func (r fakePrices) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.prices, id)
	return nil
}

func (r fakePrices) List(_ context.Context, _ *repository.PriceListFilterParams) ([]entity.PriceListEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.PriceListEntry{}
	for _, e := range r.s.prices {
		out = append(out, e)
	}
	return out, nil
}

// returns

type fakeReturns struct{ s *store }

func (r fakeReturns) Create(_ context.Context, v *entity.Return) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	newID(&v.ID)
	r.s.returns[v.ID] = *v
	return nil
}

func (r fakeReturns) GetByID(_ context.Context, id uuid.UUID) (*entity.Return, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.returns[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r fakeReturns) UpdatePending(_ context.Context, v *entity.Return) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.returns[v.ID]
	if !ok || cur.Status != enum.ReturnStatusPending {
		return false, nil
	}
	cp := *v
	cp.Status = cur.Status
	r.s.returns[v.ID] = cp
	return true, nil
}

func (r fakeReturns) TransitionStatus(_ context.Context, id uuid.UUID, from, to enum.ReturnStatus) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.returns[id]
	if !ok || v.Status != from {
		return false, nil
	}
	v.Status = to
	r.s.returns[id] = v
	return true, nil
}

func (r fakeReturns) DeletePending(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.returns[id]
	if !ok || cur.Status != enum.ReturnStatusPending {
		return false, nil
	}
	delete(r.s.returns, id)
	return true, nil
}

func (r fakeReturns) List(_ context.Context, _ *repository.ReturnFilterParams) ([]entity.Return, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Return{}
	for _, v := range r.s.returns {
		out = append(out, v)
	}
	return out, nil
}

// sales

type fakeSales struct{ s *store }

func (r fakeSales) Create(_ context.Context, v *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	newID(&v.ID)
	for i := range v.Items {
		newID(&v.Items[i].ID)
		v.Items[i].SaleID = v.ID
	}
	r.s.sales[v.ID] = *v
	return nil
}

func (r fakeSales) GetByID(_ context.Context, id uuid.UUID) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r fakeSales) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r fakeSales) UpdateTotals(_ context.Context, v *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur := r.s.sales[v.ID]
	cur.OrderStatus = v.OrderStatus
	cur.PaymentStatus = v.PaymentStatus
	cur.PaidAmount = v.PaidAmount
	cur.Outstanding = v.Outstanding
	r.s.sales[v.ID] = cur
	return nil
}

func (r fakeSales) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.sales, id)
	return nil
}

func (r fakeSales) List(_ context.Context, _ *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Sale{}
	for _, v := range r.s.sales {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InvoiceNumber < out[j].InvoiceNumber })
	return out, int64(len(out)), nil
}

func (r fakeSales) CreatePayment(_ context.Context, p *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	newID(&p.ID)
	r.s.payments[p.ID] = *p
	return nil
}

func (r fakeSales) GetPayment(_ context.Context, id uuid.UUID) (*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r fakeSales) DeletePayment(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.payments, id)
	return nil
}

func (r fakeSales) ListPayments(_ context.Context, saleID uuid.UUID) ([]entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Payment{}
	for _, p := range r.s.payments {
		if p.SaleID == saleID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r fakeSales) SumPayments(_ context.Context, saleID uuid.UUID) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := decimal.Zero
	for _, p := range r.s.payments {
		if p.SaleID == saleID {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

// purchase requests

type fakePurchaseRequests struct{ s *store }

func (r fakePurchaseRequests) Create(_ context.Context, v *entity.PurchaseRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	newID(&v.ID)
	for i := range v.Items {
		newID(&v.Items[i].ID)
		v.Items[i].PurchaseRequestID = v.ID
	}
	r.s.prs[v.ID] = *v
	return nil
}

func (r fakePurchaseRequests) GetByID(_ context.Context, id uuid.UUID) (*entity.PurchaseRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.prs[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r fakePurchaseRequests) UpdateIfStatus(_ context.Context, v *entity.PurchaseRequest, from enum.PurchaseRequestStatus) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.prs[v.ID]
	if !ok || cur.Status != from {
		return false, nil
	}
	cp := *v
	cp.Items = cur.Items
	r.s.prs[v.ID] = cp
	return true, nil
}

func (r fakePurchaseRequests) ReplaceItems(_ context.Context, id uuid.UUID, items []entity.PurchaseRequestItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v := r.s.prs[id]
	for i := range items {
		newID(&items[i].ID)
		items[i].PurchaseRequestID = id
	}
	v.Items = items
	r.s.prs[id] = v
	return nil
}

func (r fakePurchaseRequests) DeleteIfStatus(_ context.Context, id uuid.UUID, from enum.PurchaseRequestStatus) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.prs[id]
	if !ok || cur.Status != from {
		return false, nil
	}
	delete(r.s.prs, id)
	return true, nil
}

func (r fakePurchaseRequests) List(_ context.Context, _ *repository.PurchaseRequestFilterParams) ([]entity.PurchaseRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.PurchaseRequest{}
	for _, v := range r.s.prs {
		out = append(out, v)
	}
	return out, nil
}

// users

type fakeUsers struct{ s *store }

func (r fakeUsers) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	newID(&u.ID)
	r.s.users[u.ID] = *u
	return nil
}

func (r fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r fakeUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Username, username) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r fakeUsers) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[u.ID] = *u
	return nil
}

func (r fakeUsers) TouchLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u := r.s.users[id]
	u.LastLoginAt = &at
	r.s.users[id] = u
	return nil
}

type fakeRevocations struct {
	mu  sync.Mutex
	ids map[string]time.Duration
}

func (f *fakeRevocations) Revoke(_ context.Context, id string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ids == nil {
		f.ids = map[string]time.Duration{}
	}
	f.ids[id] = ttl
	return nil
}

func (f *fakeRevocations) IsRevoked(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.ids[id]
	return ok, nil
}

// services wires every service against one store
type services struct {
	store      *store
	categories *CategoryService
	suppliers  *SupplierService
	customers  *CustomerService
	products   *ProductService
	stock      *StockService
	reports    *ReportService
	prices     *PriceListService
	returns    *ReturnService
	sales      *SaleService
	prs        *PurchaseRequestService
	auth       *AuthService
	revoked    *fakeRevocations
}

func newServices() *services {
	s := newStore()
	tx := fakeTx{}
	refs := fakeRefs{s}
	stock := NewStockService(tx, fakeProducts{s}, fakeSuppliers{s}, fakeBatches{s}, fakeMovements{s}, fakeStockQuery{s})
	revoked := &fakeRevocations{}
	return &services{
		store:      s,
		categories: NewCategoryService(fakeCategories{s}, refs),
		suppliers:  NewSupplierService(fakeSuppliers{s}, refs),
		customers:  NewCustomerService(fakeCustomers{s}, refs),
		products:   NewProductService(fakeProducts{s}, fakeCategories{s}, fakeSuppliers{s}, refs),
		stock:      stock,
		reports:    NewReportService(fakeStockQuery{s}),
		prices:     NewPriceListService(tx, fakePrices{s}, fakeProducts{s}, fakeBatches{s}),
		returns:    NewReturnService(tx, fakeReturns{s}, fakeProducts{s}, fakeCustomers{s}, stock),
		sales:      NewSaleService(tx, fakeSales{s}, fakeProducts{s}, fakeCustomers{s}, fakePrices{s}, stock),
		prs:        NewPurchaseRequestService(tx, fakePurchaseRequests{s}, fakeSuppliers{s}, stock),
		auth:       NewAuthService(fakeUsers{s}, revoked, utils.NewJWTManager("test-secret", time.Hour)),
		revoked:    revoked,
	}
}

// seed helpers

func (sv *services) supplier(name string) uuid.UUID {
	v := entity.Supplier{ID: uuid.New(), Name: name}
	sv.store.suppliers[v.ID] = v
	return v.ID
}

func (sv *services) product(name string) uuid.UUID {
	p := entity.Product{ID: uuid.New(), Name: name, Unit: "pcs", IsAvailable: true}
	sv.store.products[p.ID] = p
	return p.ID
}

func (sv *services) receive(supplierID uuid.UUID, date time.Time, lines ...BatchItemInput) *entity.Batch {
	b, err := sv.stock.CreateBatch(context.Background(), &CreateBatchInput{
		SupplierID:    supplierID,
		InvoiceNumber: "INV-" + date.Format("0102"),
		PurchaseDate:  date,
		Items:         lines,
	})
	if err != nil {
		panic(err)
	}
	return b
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
