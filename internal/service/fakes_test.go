package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ecommerce-service/internal/domain"
	"github.com/spec-kit/ecommerce-service/internal/events"
	"github.com/spec-kit/ecommerce-service/internal/repository"
)

// In-memory repository fakes shared by the service tests.

type fakeUserRepo struct {
	users map[string]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.Username] = *user
	return nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (f *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, ok := f.users[username]
	return ok, nil
}

type fakeRoleRepo struct {
	roles map[string]domain.Role
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: map[string]domain.Role{}}
}

func (f *fakeRoleRepo) Create(_ context.Context, role *domain.Role) error {
	f.roles[role.Name] = *role
	return nil
}

func (f *fakeRoleRepo) GetByName(_ context.Context, name string) (*domain.Role, error) {
	role, ok := f.roles[name]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &role, nil
}

type fakeProductRepo struct {
	nextID   int64
	products map[int64]domain.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{nextID: 1, products: map[int64]domain.Product{}}
}

func (f *fakeProductRepo) Create(_ context.Context, product *domain.Product) error {
	product.ID = f.nextID
	f.nextID++
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	f.products[product.ID] = *product
	return nil
}

func (f *fakeProductRepo) Update(_ context.Context, product *domain.Product) error {
	if _, ok := f.products[product.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.products[product.ID] = *product
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id int64) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &product, nil
}

func (f *fakeProductRepo) ListAll(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(f.products))
	for _, product := range f.products {
		out = append(out, product)
	}
	return out, nil
}

func (f *fakeProductRepo) Search(_ context.Context, searchKey string, page, size int) ([]domain.Product, int64, error) {
	var matched []domain.Product
	for _, product := range f.products {
		if searchKey == "" || strings.Contains(strings.ToLower(product.Name), strings.ToLower(searchKey)) {
			matched = append(matched, product)
		}
	}
	return matched, int64(len(matched)), nil
}

type fakeCartRepo struct {
	nextID int64
	items  map[int64]domain.CartItem
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{nextID: 1, items: map[int64]domain.CartItem{}}
}

func (f *fakeCartRepo) Add(_ context.Context, item *domain.CartItem) error {
	item.ID = f.nextID
	f.nextID++
	item.AddedAt = time.Now()
	f.items[item.ID] = *item
	return nil
}

func (f *fakeCartRepo) GetByID(_ context.Context, id int64) (*domain.CartItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &item, nil
}

func (f *fakeCartRepo) ListByUser(_ context.Context, username string) ([]domain.CartItem, error) {
	var out []domain.CartItem
	for _, item := range f.items {
		if item.Username == username {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeCartRepo) SearchByUser(_ context.Context, username, searchKey string, page, size int) ([]domain.CartItem, int64, error) {
	items, _ := f.ListByUser(context.Background(), username)
	return items, int64(len(items)), nil
}

func (f *fakeCartRepo) ExistsForUser(_ context.Context, username string, productID int64) (bool, error) {
	for _, item := range f.items {
		if item.Username == username && item.Product.ID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCartRepo) Delete(_ context.Context, id int64) error {
	delete(f.items, id)
	return nil
}

func (f *fakeCartRepo) ClearUser(_ context.Context, username string) error {
	for id, item := range f.items {
		if item.Username == username {
			delete(f.items, id)
		}
	}
	return nil
}

type fakeOrderRepo struct {
	nextID int64
	orders map[int64]domain.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{nextID: 1, orders: map[int64]domain.Order{}}
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	order.ID = f.nextID
	f.nextID++
	order.OrderDate = time.Now()
	f.orders[order.ID] = *order
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &order, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id int64, status domain.OrderStatus) error {
	order, ok := f.orders[id]
	if !ok {
		return pgx.ErrNoRows
	}
	order.Status = status
	f.orders[id] = order
	return nil
}

func (f *fakeOrderRepo) ListByUser(_ context.Context, username string) ([]domain.Order, error) {
	var out []domain.Order
	for _, order := range f.orders {
		if order.Username == username {
			out = append(out, order)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) SearchByUser(_ context.Context, username, searchKey string, page, size int) ([]domain.Order, int64, error) {
	orders, _ := f.ListByUser(context.Background(), username)
	return orders, int64(len(orders)), nil
}

func (f *fakeOrderRepo) Search(_ context.Context, searchKey, status string, page, size int) ([]domain.Order, int64, error) {
	var out []domain.Order
	for _, order := range f.orders {
		if status == "all" || string(order.Status) == status {
			out = append(out, order)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrderRepo) CountByMonth(_ context.Context, username string) ([]repository.MonthMetric, error) {
	return nil, nil
}

func (f *fakeOrderRepo) CountByStatus(_ context.Context, username string) ([]repository.StatusCount, error) {
	return nil, nil
}

func (f *fakeOrderRepo) LastOrders(_ context.Context, limit int) ([]domain.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) SalesPerMonth(_ context.Context) ([]repository.MonthMetric, error) {
	return nil, nil
}

func (f *fakeOrderRepo) TopSellingSince(_ context.Context, since time.Time, limit int) ([]repository.ProductSales, error) {
	return nil, nil
}

type fakeImageRepo struct {
	nextID int64
	images map[int64]domain.ProductImage
}

func newFakeImageRepo() *fakeImageRepo {
	return &fakeImageRepo{nextID: 1, images: map[int64]domain.ProductImage{}}
}

func (f *fakeImageRepo) Add(_ context.Context, image *domain.ProductImage) error {
	image.ID = f.nextID
	f.nextID++
	f.images[image.ID] = *image
	return nil
}

func (f *fakeImageRepo) GetByID(_ context.Context, id int64) (*domain.ProductImage, error) {
	image, ok := f.images[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &image, nil
}

func (f *fakeImageRepo) GetByName(_ context.Context, name string) (*domain.ProductImage, error) {
	for _, image := range f.images {
		if image.Name == name {
			return &image, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeImageRepo) ListByProduct(_ context.Context, productID int64) ([]domain.ProductImage, error) {
	var out []domain.ProductImage
	for _, image := range f.images {
		if image.ProductID == productID {
			out = append(out, image)
		}
	}
	return out, nil
}

func (f *fakeImageRepo) ListMeta(_ context.Context) ([]domain.ProductImage, error) {
	var out []domain.ProductImage
	for _, image := range f.images {
		image.Data = nil
		out = append(out, image)
	}
	return out, nil
}

func (f *fakeImageRepo) Delete(_ context.Context, id int64) error {
	delete(f.images, id)
	return nil
}

func (f *fakeImageRepo) DeleteByShortNames(_ context.Context, productID int64, shortNames []string) error {
	for id, image := range f.images {
		if image.ProductID != productID {
			continue
		}
		for _, short := range shortNames {
			if image.ShortName == short {
				delete(f.images, id)
			}
		}
	}
	return nil
}

// fakeDispatcher records published events synchronously.
type fakeDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (f *fakeDispatcher) Publish(_ context.Context, event events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, event)
	return nil
}

func (f *fakeDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (f *fakeDispatcher) events() []events.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]events.Event(nil), f.published...)
}
