package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/redis_repo"
)

// fakeStore 實作所有儲存port的in-memory版本
// WithBookLock用per-book mutex模擬row lock的序列化行為
type fakeStore struct {
	mu        sync.Mutex
	bookLocks map[uint]*sync.Mutex

	books      map[uint]*model.Book
	carts      map[uint]*model.Cart              // userID -> cart
	items      map[uint]map[uint]*model.CartItem // cartID -> bookID -> item
	favorites  map[uint]map[uint]*model.Favorite // userID -> bookID -> favorite
	orders     map[string]*model.Order
	nextCartID uint
	nextItemID uint
	nextFavID  uint
}

func newFakeStore(books ...*model.Book) *fakeStore {
	s := &fakeStore{
		bookLocks: make(map[uint]*sync.Mutex),
		books:     make(map[uint]*model.Book),
		carts:     make(map[uint]*model.Cart),
		items:     make(map[uint]map[uint]*model.CartItem),
		favorites: make(map[uint]map[uint]*model.Favorite),
		orders:    make(map[string]*model.Order),
	}
	for _, book := range books {
		s.books[book.BookID] = book
	}
	return s
}

func (s *fakeStore) bookLock(bookID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.bookLocks[bookID]
	if !ok {
		lock = &sync.Mutex{}
		s.bookLocks[bookID] = lock
	}
	return lock
}

// --- db.ICartStore ---

func (s *fakeStore) WithBookLock(ctx context.Context, bookID uint, fn func(tx db.CartTx) error) error {
	lock := s.bookLock(bookID)
	lock.Lock()
	defer lock.Unlock()
	return fn(&fakeCartTx{store: s, bookID: bookID})
}

func (s *fakeStore) GetActiveCart(ctx context.Context, userID uint) (*model.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[userID]
	if !ok || !cart.IsActive {
		return nil, nil
	}
	copied := *cart
	return &copied, nil
}

func (s *fakeStore) GetCartWithItems(ctx context.Context, userID uint) (*model.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[userID]
	if !ok || !cart.IsActive {
		return nil, nil
	}
	copied := *cart
	copied.Items = nil
	for _, item := range s.items[cart.CartID] {
		withBook := *item
		if book, ok := s.books[item.BookID]; ok {
			withBook.Book = *book
		}
		copied.Items = append(copied.Items, withBook)
	}
	sort.Slice(copied.Items, func(i, j int) bool {
		return copied.Items[i].CartItemID < copied.Items[j].CartItemID
	})
	return &copied, nil
}

func (s *fakeStore) GetCartSummary(ctx context.Context, userID uint) (*model.CartSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	summary := &model.CartSummary{}
	cart, ok := s.carts[userID]
	if !ok || !cart.IsActive {
		return summary, nil
	}
	for _, item := range s.items[cart.CartID] {
		summary.TotalItems += item.Quantity
		summary.UniqueBooks++
	}
	return summary, nil
}

func (s *fakeStore) RemoveItem(ctx context.Context, userID, bookID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[userID]
	if !ok || !cart.IsActive {
		return false, nil
	}
	if _, ok := s.items[cart.CartID][bookID]; !ok {
		return false, nil
	}
	delete(s.items[cart.CartID], bookID)
	return true, nil
}

func (s *fakeStore) ClearCart(ctx context.Context, userID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[userID]
	if !ok || !cart.IsActive {
		return 0, nil
	}
	deleted := int64(len(s.items[cart.CartID]))
	s.items[cart.CartID] = make(map[uint]*model.CartItem)
	return deleted, nil
}

var _ db.ICartStore = (*fakeStore)(nil)

type fakeCartTx struct {
	store  *fakeStore
	bookID uint
}

func (t *fakeCartTx) Book() *model.Book {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	book, ok := t.store.books[t.bookID]
	if !ok {
		return nil
	}
	copied := *book
	return &copied
}

func (t *fakeCartTx) GetOrCreateCart(userID uint) (*model.Cart, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	cart, ok := t.store.carts[userID]
	if !ok {
		t.store.nextCartID++
		cart = &model.Cart{CartID: t.store.nextCartID, UserID: userID, IsActive: true}
		t.store.carts[userID] = cart
		t.store.items[cart.CartID] = make(map[uint]*model.CartItem)
		return cart, nil
	}
	if !cart.IsActive {
		cart.IsActive = true
		t.store.items[cart.CartID] = make(map[uint]*model.CartItem)
	}
	return cart, nil
}

func (t *fakeCartTx) GetItem(cartID, bookID uint) (*model.CartItem, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	item, ok := t.store.items[cartID][bookID]
	if !ok {
		return nil, nil
	}
	return item, nil
}

func (t *fakeCartTx) CreateItem(item *model.CartItem) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.nextItemID++
	item.CartItemID = t.store.nextItemID
	item.CreatedAt = time.Now()
	t.store.items[item.CartID][item.BookID] = item
	return nil
}

func (t *fakeCartTx) UpdateItemQuantity(item *model.CartItem, quantity int) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	item.Quantity = quantity
	item.UpdatedAt = time.Now()
	return nil
}

func (t *fakeCartTx) DeleteItem(item *model.CartItem) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	delete(t.store.items[item.CartID], item.BookID)
	return nil
}

var _ db.CartTx = (*fakeCartTx)(nil)

// --- db.IOrderStore ---

func (s *fakeStore) WithinTx(ctx context.Context, fn func(tx db.OrderTx) error) error {
	return fn(&fakeOrderTx{store: s})
}

func (s *fakeStore) GetOrderByID(ctx context.Context, orderID string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderID]
	if !ok {
		return nil, db.ErrOrderNotFound
	}
	return order, nil
}

func (s *fakeStore) GetOrdersByUserID(ctx context.Context, userID uint) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var orders []model.Order
	for _, order := range s.orders {
		if order.UserID == userID {
			orders = append(orders, *order)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})
	return orders, nil
}

func (s *fakeStore) GetOrdersPaginated(ctx context.Context, userID uint, page, pageSize int) ([]model.Order, int64, error) {
	orders, err := s.GetOrdersByUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	total := int64(len(orders))
	start := (page - 1) * pageSize
	if start >= len(orders) {
		return []model.Order{}, total, nil
	}
	end := start + pageSize
	if end > len(orders) {
		end = len(orders)
	}
	return orders[start:end], total, nil
}

var _ db.IOrderStore = (*fakeStore)(nil)

type fakeOrderTx struct {
	store *fakeStore
}

func (t *fakeOrderTx) GetBooksByIDs(bookIDs []uint) ([]model.Book, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	var books []model.Book
	for _, id := range bookIDs {
		if book, ok := t.store.books[id]; ok {
			books = append(books, *book)
		}
	}
	return books, nil
}

func (t *fakeOrderTx) CreateOrder(order *model.Order) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.orders[order.OrderID] = order
	return nil
}

func (t *fakeOrderTx) CreateOrderItems(items []model.OrderItem) error {
	return nil
}

func (t *fakeOrderTx) DeactivateCart(cartID uint) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for _, cart := range t.store.carts {
		if cart.CartID == cartID {
			cart.IsActive = false
		}
	}
	return nil
}

var _ db.OrderTx = (*fakeOrderTx)(nil)

// --- db.IFavoriteRepository ---

func (s *fakeStore) AddToFavorites(ctx context.Context, userID, bookID uint) (*model.Favorite, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.favorites[userID] == nil {
		s.favorites[userID] = make(map[uint]*model.Favorite)
	}
	if existing, ok := s.favorites[userID][bookID]; ok {
		return existing, false, nil
	}
	s.nextFavID++
	favorite := &model.Favorite{
		FavoriteID: s.nextFavID,
		UserID:     userID,
		BookID:     bookID,
		CreatedAt:  time.Now(),
	}
	s.favorites[userID][bookID] = favorite
	return favorite, true, nil
}

func (s *fakeStore) RemoveFromFavorites(ctx context.Context, userID, bookID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.favorites[userID][bookID]; !ok {
		return false, nil
	}
	delete(s.favorites[userID], bookID)
	return true, nil
}

func (s *fakeStore) IsInFavorites(ctx context.Context, userID, bookID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.favorites[userID][bookID]
	return ok, nil
}

func (s *fakeStore) ClearFavorites(ctx context.Context, userID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := int64(len(s.favorites[userID]))
	s.favorites[userID] = make(map[uint]*model.Favorite)
	return deleted, nil
}

func (s *fakeStore) GetUserFavorites(ctx context.Context, userID uint) ([]model.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var favorites []model.Favorite
	for _, favorite := range s.favorites[userID] {
		withBook := *favorite
		if book, ok := s.books[favorite.BookID]; ok {
			withBook.Book = *book
		}
		favorites = append(favorites, withBook)
	}
	sort.Slice(favorites, func(i, j int) bool {
		return favorites[i].FavoriteID > favorites[j].FavoriteID
	})
	return favorites, nil
}

func (s *fakeStore) CountFavorites(ctx context.Context, userID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.favorites[userID])), nil
}

var _ db.IFavoriteRepository = (*fakeStore)(nil)

// --- db.IBookRepository ---

func (s *fakeStore) GetActiveBook(ctx context.Context, bookID uint) (*model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	book, ok := s.books[bookID]
	if !ok || !book.IsActive {
		return nil, db.ErrBookNotFound
	}
	copied := *book
	return &copied, nil
}

func (s *fakeStore) GetActiveBooks(ctx context.Context) ([]model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var books []model.Book
	for _, book := range s.books {
		if book.IsActive {
			books = append(books, *book)
		}
	}
	sort.Slice(books, func(i, j int) bool {
		return books[i].BookID < books[j].BookID
	})
	return books, nil
}

func (s *fakeStore) GetBooksByIDs(ctx context.Context, bookIDs []uint) ([]model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var books []model.Book
	for _, id := range bookIDs {
		if book, ok := s.books[id]; ok {
			books = append(books, *book)
		}
	}
	return books, nil
}

func (s *fakeStore) CreateBook(ctx context.Context, book *model.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books[book.BookID] = book
	return nil
}

func (s *fakeStore) AddBookStock(ctx context.Context, bookID uint, quantity int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	book, ok := s.books[bookID]
	if !ok {
		return 0, db.ErrBookNotFound
	}
	book.InStock += quantity
	return book.InStock, nil
}

func (s *fakeStore) SetBookStock(ctx context.Context, bookID uint, stock int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	book, ok := s.books[bookID]
	if !ok {
		return db.ErrBookNotFound
	}
	book.InStock = stock
	return nil
}

var _ db.IBookRepository = (*fakeStore)(nil)

// --- redis_repo.ICartCache ---

type fakeCartCache struct {
	mu          sync.Mutex
	summaries   map[uint]*model.CartSummary
	invalidated int
}

func newFakeCartCache() *fakeCartCache {
	return &fakeCartCache{summaries: make(map[uint]*model.CartSummary)}
}

func (c *fakeCartCache) GetSummary(ctx context.Context, userID uint) (*model.CartSummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	summary, ok := c.summaries[userID]
	if !ok {
		return nil, redis_repo.ErrCacheMiss
	}
	return summary, nil
}

func (c *fakeCartCache) SetSummary(ctx context.Context, userID uint, summary *model.CartSummary) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.summaries[userID] = summary
	return nil
}

func (c *fakeCartCache) Invalidate(ctx context.Context, userID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.summaries, userID)
	c.invalidated++
	return nil
}

var _ redis_repo.ICartCache = (*fakeCartCache)(nil)

// --- producer.IOrderEventProducer ---

// fakeOrderEventProducer 事件走goroutine發送，用channel等待
type fakeOrderEventProducer struct {
	events chan *model.Order
}

func newFakeOrderEventProducer() *fakeOrderEventProducer {
	return &fakeOrderEventProducer{events: make(chan *model.Order, 8)}
}

func (p *fakeOrderEventProducer) OrderCreated(ctx context.Context, order *model.Order) error {
	p.events <- order
	return nil
}

func (p *fakeOrderEventProducer) Close() error {
	return nil
}

func (p *fakeOrderEventProducer) waitForEvent(timeout time.Duration) *model.Order {
	select {
	case order := <-p.events:
		return order
	case <-time.After(timeout):
		return nil
	}
}
