package ordering

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/stockly-api/internal/domain"
)

type periodKey struct {
	owner int64
	year  int
	month time.Month
}

// memStore simula o banco. Transações rodam em paralelo; GetForUpdate e
// EnsureForUpdate seguram o bloqueio da linha até o commit ou rollback, e o
// rollback restaura as linhas escritas pela transação.
type memStore struct {
	mu      sync.Mutex
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	nextID   int64
	products map[int64]*domain.Product
	clients  map[int64]*domain.Client
	orders   map[int64]*domain.Order
	revenue  map[periodKey]*domain.MonthlyRevenue
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[int64]*domain.Product),
		clients:  make(map[int64]*domain.Client),
		orders:   make(map[int64]*domain.Order),
		revenue:  make(map[periodKey]*domain.MonthlyRevenue),
		locks:    make(map[string]*sync.Mutex),
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

type txKey struct{}

// memTx guarda os bloqueios de linha e o estado anterior das linhas escritas
type memTx struct {
	held  []string
	saved map[string]bool
	undo  []func()
}

func txOf(ctx context.Context) (*memTx, bool) {
	tx, ok := ctx.Value(txKey{}).(*memTx)
	return tx, ok
}

func (s *memStore) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txOf(ctx); ok {
		return fn(ctx)
	}

	tx := &memTx{saved: make(map[string]bool)}
	err := fn(context.WithValue(ctx, txKey{}, tx))

	if err != nil {
		s.mu.Lock()
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i]()
		}
		s.mu.Unlock()
	}

	for _, key := range tx.held {
		s.rowLock(key).Unlock()
	}
	return err
}

func orderKey(id int64) string {
	return fmt.Sprintf("order:%d", id)
}

func revenueKey(key periodKey) string {
	return fmt.Sprintf("revenue:%d:%d:%d", key.owner, key.year, key.month)
}

func (s *memStore) rowLock(key string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	m, ok := s.locks[key]
	if !ok {
		m = &sync.Mutex{}
		s.locks[key] = m
	}
	return m
}

// lockRow segura a linha até o fim da transação, como SELECT ... FOR UPDATE.
// Fora de transação não bloqueia.
func (s *memStore) lockRow(ctx context.Context, key string) {
	tx, ok := txOf(ctx)
	if !ok {
		return
	}
	for _, held := range tx.held {
		if held == key {
			return
		}
	}
	s.rowLock(key).Lock()
	tx.held = append(tx.held, key)
	// abre espaço para outra transação tentar o mesmo bloqueio
	runtime.Gosched()
}

// keepOrder registra o estado do pedido antes da primeira escrita da transação. Exige s.mu.
func (s *memStore) keepOrder(ctx context.Context, id int64) {
	tx, ok := txOf(ctx)
	if !ok || tx.saved[orderKey(id)] {
		return
	}
	tx.saved[orderKey(id)] = true

	prev, existed := s.orders[id]
	if existed {
		prev = cloneOrder(prev)
	}
	tx.undo = append(tx.undo, func() {
		if existed {
			s.orders[id] = prev
			return
		}
		delete(s.orders, id)
	})
}

// keepRevenue registra o estado da linha de faturamento antes da primeira escrita. Exige s.mu.
func (s *memStore) keepRevenue(ctx context.Context, key periodKey) {
	tx, ok := txOf(ctx)
	if !ok || tx.saved[revenueKey(key)] {
		return
	}
	tx.saved[revenueKey(key)] = true

	prev, existed := s.revenue[key]
	if existed {
		prev = cloneRevenueRow(prev)
	}
	tx.undo = append(tx.undo, func() {
		if existed {
			s.revenue[key] = prev
			return
		}
		delete(s.revenue, key)
	})
}

func (s *memStore) addProduct(owner int64, price string) *domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &domain.Product{ID: s.id(), OwnerID: owner, Name: "produto", Price: decimal.RequireFromString(price), Quantity: 10}
	s.products[p.ID] = p
	return p
}

func (s *memStore) setPrice(productID int64, price string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[productID].Price = decimal.RequireFromString(price)
}

func (s *memStore) addClient(owner int64) *domain.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &domain.Client{ID: s.id(), OwnerID: owner, Name: "cliente"}
	s.clients[c.ID] = c
	return c
}

func (s *memStore) revenueOf(owner int64, p domain.Period) (decimal.Decimal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.revenue[periodKey{owner, p.Year, p.Month}]
	if !ok {
		return decimal.Zero, false
	}
	return row.Revenue, true
}

func (s *memStore) ledgerRow(owner int64, p domain.Period) *domain.MonthlyRevenue {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.revenue[periodKey{owner, p.Year, p.Month}]
	if !ok {
		return nil
	}
	return cloneRevenueRow(row)
}

func (s *memStore) setRevenue(owner int64, p domain.Period, amount string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := periodKey{owner, p.Year, p.Month}
	row, ok := s.revenue[key]
	if !ok {
		row = &domain.MonthlyRevenue{ID: s.id(), OwnerID: owner, Period: p}
		s.revenue[key] = row
	}
	row.Revenue = decimal.RequireFromString(amount)
}

func (s *memStore) order(id int64) *domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil
	}
	return cloneOrder(o)
}

func (s *memStore) putOrder(o *domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = cloneOrder(o)
}

// memOrderRepo

type memOrderRepo struct{ s *memStore }

func (r *memOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	order.ID = r.s.id()
	r.s.keepOrder(ctx, order.ID)
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	for _, item := range order.Items {
		item.ID = r.s.id()
		item.OrderID = order.ID
	}
	r.s.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *memOrderRepo) GetByID(_ context.Context, ownerID, orderID int64) (*domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[orderID]
	if !ok || o.OwnerID != ownerID {
		return nil, nil
	}
	return cloneOrder(o), nil
}

func (r *memOrderRepo) GetForUpdate(ctx context.Context, ownerID, orderID int64) (*domain.Order, error) {
	r.s.lockRow(ctx, orderKey(orderID))
	return r.GetByID(ctx, ownerID, orderID)
}

func (r *memOrderRepo) List(_ context.Context, ownerID int64, filters domain.OrderFilters) ([]*domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	orders := make([]*domain.Order, 0)
	for _, o := range r.s.orders {
		if o.OwnerID != ownerID {
			continue
		}
		if filters.Status != nil && o.Status != *filters.Status {
			continue
		}
		orders = append(orders, cloneOrder(o))
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })
	return orders, nil
}

func (r *memOrderRepo) Update(ctx context.Context, order *domain.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.orders[order.ID]
	if !ok || stored.OwnerID != order.OwnerID {
		return nil
	}
	r.s.keepOrder(ctx, order.ID)
	items := stored.Items
	updated := cloneOrder(order)
	updated.Items = items
	updated.UpdatedAt = time.Now()
	r.s.orders[order.ID] = updated
	return nil
}

func (r *memOrderRepo) ReplaceItems(ctx context.Context, orderID int64, items []*domain.OrderItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, item := range items {
		item.ID = r.s.id()
		item.OrderID = orderID
	}
	if stored, ok := r.s.orders[orderID]; ok {
		r.s.keepOrder(ctx, orderID)
		replaced := cloneOrder(stored)
		replaced.Items = cloneItems(items)
		r.s.orders[orderID] = replaced
	}
	return nil
}

func (r *memOrderRepo) Delete(ctx context.Context, ownerID, orderID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[orderID]
	if !ok || o.OwnerID != ownerID {
		return false, nil
	}
	r.s.keepOrder(ctx, orderID)
	delete(r.s.orders, orderID)
	return true, nil
}

func (r *memOrderRepo) CountByStatus(_ context.Context, ownerID int64, status domain.OrderStatus) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for _, o := range r.s.orders {
		if o.OwnerID == ownerID && o.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *memOrderRepo) ContributionTotals(_ context.Context) ([]domain.PeriodTotal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sums := make(map[periodKey]decimal.Decimal)
	for _, o := range r.s.orders {
		if o.Contribution == nil {
			continue
		}
		key := periodKey{o.OwnerID, o.Contribution.Period.Year, o.Contribution.Period.Month}
		sums[key] = sums[key].Add(o.Contribution.Amount)
	}
	totals := make([]domain.PeriodTotal, 0, len(sums))
	for key, amount := range sums {
		totals = append(totals, domain.PeriodTotal{
			OwnerID: key.owner,
			Period:  domain.Period{Year: key.year, Month: key.month},
			Amount:  amount,
		})
	}
	return totals, nil
}

// memProductRepo

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) GetByID(_ context.Context, ownerID, productID int64) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok || p.OwnerID != ownerID {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (r *memProductRepo) GetByIDs(_ context.Context, ownerID int64, productIDs []int64) (map[int64]*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make(map[int64]*domain.Product)
	for _, id := range productIDs {
		if p, ok := r.s.products[id]; ok && p.OwnerID == ownerID {
			copied := *p
			result[id] = &copied
		}
	}
	return result, nil
}

func (r *memProductRepo) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	product.ID = r.s.id()
	copied := *product
	r.s.products[product.ID] = &copied
	return product, nil
}

func (r *memProductRepo) List(_ context.Context, ownerID int64) ([]*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	products := make([]*domain.Product, 0)
	for _, p := range r.s.products {
		if p.OwnerID == ownerID {
			copied := *p
			products = append(products, &copied)
		}
	}
	return products, nil
}

func (r *memProductRepo) Summary(_ context.Context, ownerID int64) (int64, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count, stock int64
	for _, p := range r.s.products {
		if p.OwnerID == ownerID {
			count++
			stock += int64(p.Quantity)
		}
	}
	return count, stock, nil
}

// memClientRepo

type memClientRepo struct{ s *memStore }

func (r *memClientRepo) GetByID(_ context.Context, ownerID, clientID int64) (*domain.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[clientID]
	if !ok || c.OwnerID != ownerID {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (r *memClientRepo) Create(_ context.Context, client *domain.Client) (*domain.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	client.ID = r.s.id()
	copied := *client
	r.s.clients[client.ID] = &copied
	return client, nil
}

func (r *memClientRepo) List(_ context.Context, ownerID int64) ([]*domain.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	clients := make([]*domain.Client, 0)
	for _, c := range r.s.clients {
		if c.OwnerID == ownerID {
			copied := *c
			clients = append(clients, &copied)
		}
	}
	return clients, nil
}

func (r *memClientRepo) Count(_ context.Context, ownerID int64) (int64, error) {
	clients, _ := r.List(context.Background(), ownerID)
	return int64(len(clients)), nil
}

func (r *memClientRepo) Update(_ context.Context, client *domain.Client) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[client.ID]
	if !ok || c.OwnerID != client.OwnerID {
		return false, nil
	}
	copied := *client
	r.s.clients[client.ID] = &copied
	return true, nil
}

// Delete reproduz a chave estrangeira orders.client_id
func (r *memClientRepo) Delete(_ context.Context, ownerID, clientID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[clientID]
	if !ok || c.OwnerID != ownerID {
		return false, nil
	}
	for _, o := range r.s.orders {
		if o.ClientID == clientID {
			return false, &pq.Error{Code: "23503"}
		}
	}
	delete(r.s.clients, clientID)
	return true, nil
}

// memRevenueRepo

type memRevenueRepo struct{ s *memStore }

func (r *memRevenueRepo) EnsureForUpdate(ctx context.Context, ownerID int64, period domain.Period) (*domain.MonthlyRevenue, error) {
	key := periodKey{ownerID, period.Year, period.Month}
	r.s.lockRow(ctx, revenueKey(key))

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.revenue[key]
	if !ok {
		r.s.keepRevenue(ctx, key)
		row = &domain.MonthlyRevenue{ID: r.s.id(), OwnerID: ownerID, Period: period, Revenue: decimal.Zero}
		r.s.revenue[key] = row
	}
	return cloneRevenueRow(row), nil
}

func (r *memRevenueRepo) GetForUpdate(ctx context.Context, ownerID int64, period domain.Period) (*domain.MonthlyRevenue, error) {
	r.s.lockRow(ctx, revenueKey(periodKey{ownerID, period.Year, period.Month}))
	return r.Get(ctx, ownerID, period)
}

func (r *memRevenueRepo) Get(_ context.Context, ownerID int64, period domain.Period) (*domain.MonthlyRevenue, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.revenue[periodKey{ownerID, period.Year, period.Month}]
	if !ok {
		return nil, nil
	}
	return cloneRevenueRow(row), nil
}

func (r *memRevenueRepo) Save(ctx context.Context, row *domain.MonthlyRevenue) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := periodKey{row.OwnerID, row.Period.Year, row.Period.Month}
	r.s.keepRevenue(ctx, key)
	r.s.revenue[key] = cloneRevenueRow(row)
	return nil
}

func (r *memRevenueRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for key, row := range r.s.revenue {
		if row.ID == id {
			r.s.keepRevenue(ctx, key)
			delete(r.s.revenue, key)
		}
	}
	return nil
}

func (r *memRevenueRepo) FindByLastOrder(ctx context.Context, ownerID, orderID int64) ([]*domain.MonthlyRevenue, error) {
	r.s.mu.Lock()
	keys := make([]periodKey, 0)
	for key, row := range r.s.revenue {
		if row.OwnerID == ownerID && row.LastOrderID != nil && *row.LastOrderID == orderID {
			keys = append(keys, key)
		}
	}
	r.s.mu.Unlock()

	sort.Slice(keys, func(i, j int) bool { return revenueKey(keys[i]) < revenueKey(keys[j]) })
	for _, key := range keys {
		r.s.lockRow(ctx, revenueKey(key))
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := make([]*domain.MonthlyRevenue, 0, len(keys))
	for _, key := range keys {
		row, ok := r.s.revenue[key]
		if ok && row.LastOrderID != nil && *row.LastOrderID == orderID {
			rows = append(rows, cloneRevenueRow(row))
		}
	}
	return rows, nil
}

func (r *memRevenueRepo) ListByYear(_ context.Context, ownerID int64, year int) ([]*domain.MonthlyRevenue, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := make([]*domain.MonthlyRevenue, 0)
	for _, row := range r.s.revenue {
		if row.OwnerID == ownerID && row.Period.Year == year {
			rows = append(rows, cloneRevenueRow(row))
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Period.Month < rows[j].Period.Month })
	return rows, nil
}

func (r *memRevenueRepo) ListAll(_ context.Context) ([]*domain.MonthlyRevenue, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := make([]*domain.MonthlyRevenue, 0, len(r.s.revenue))
	for _, row := range r.s.revenue {
		rows = append(rows, cloneRevenueRow(row))
	}
	return rows, nil
}

func cloneItems(items []*domain.OrderItem) []*domain.OrderItem {
	cloned := make([]*domain.OrderItem, 0, len(items))
	for _, item := range items {
		copied := *item
		cloned = append(cloned, &copied)
	}
	return cloned
}

func cloneOrder(o *domain.Order) *domain.Order {
	copied := *o
	copied.Items = cloneItems(o.Items)
	if o.Contribution != nil {
		contribution := *o.Contribution
		copied.Contribution = &contribution
	}
	return &copied
}

func cloneRevenueRow(row *domain.MonthlyRevenue) *domain.MonthlyRevenue {
	copied := *row
	if row.LastOrderID != nil {
		id := *row.LastOrderID
		copied.LastOrderID = &id
	}
	return &copied
}
