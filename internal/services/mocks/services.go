package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/catalog"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(t testingT, m *mock.Mock) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// MockCartService is a mock of service.CartService.
type MockCartService struct {
	mock.Mock
}

func NewMockCartService(t testingT) *MockCartService {
	m := &MockCartService{}
	register(t, &m.Mock)
	return m
}

func (m *MockCartService) Load(ctx context.Context) ([]models.CartLineItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartLineItem), args.Error(1)
}

func (m *MockCartService) Items(ctx context.Context) []models.CartLineItem {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.CartLineItem)
}

func (m *MockCartService) Add(ctx context.Context, product *models.Product, size string) ([]models.CartLineItem, error) {
	args := m.Called(ctx, product, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartLineItem), args.Error(1)
}

func (m *MockCartService) Remove(ctx context.Context, productID string) ([]models.CartLineItem, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartLineItem), args.Error(1)
}

func (m *MockCartService) SetQuantity(ctx context.Context, productID string, quantity int) ([]models.CartLineItem, error) {
	args := m.Called(ctx, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartLineItem), args.Error(1)
}

func (m *MockCartService) View(ctx context.Context) *models.CartView {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.CartView)
}

// MockWishlistService is a mock of service.WishlistService.
type MockWishlistService struct {
	mock.Mock
}

func NewMockWishlistService(t testingT) *MockWishlistService {
	m := &MockWishlistService{}
	register(t, &m.Mock)
	return m
}

func (m *MockWishlistService) Load(ctx context.Context) ([]models.WishlistEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WishlistEntry), args.Error(1)
}

func (m *MockWishlistService) Items(ctx context.Context) []models.WishlistEntry {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.WishlistEntry)
}

func (m *MockWishlistService) Contains(ctx context.Context, productID string) bool {
	args := m.Called(ctx, productID)
	return args.Bool(0)
}

func (m *MockWishlistService) Find(ctx context.Context, productID string) (*models.WishlistEntry, bool) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*models.WishlistEntry), args.Bool(1)
}

func (m *MockWishlistService) Toggle(ctx context.Context, product *models.Product) (bool, error) {
	args := m.Called(ctx, product)
	return args.Bool(0), args.Error(1)
}

func (m *MockWishlistService) Remove(ctx context.Context, productID string) ([]models.WishlistEntry, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WishlistEntry), args.Error(1)
}

func (m *MockWishlistService) MoveToCart(ctx context.Context, productID string) (*service.MoveResult, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MoveResult), args.Error(1)
}

// MockCheckoutService is a mock of service.CheckoutService.
type MockCheckoutService struct {
	mock.Mock
}

func NewMockCheckoutService(t testingT) *MockCheckoutService {
	m := &MockCheckoutService{}
	register(t, &m.Mock)
	return m
}

func (m *MockCheckoutService) State() models.CheckoutState {
	args := m.Called()
	return args.Get(0).(models.CheckoutState)
}

func (m *MockCheckoutService) Submit(ctx context.Context, details *models.ShippingDetails) (*models.CheckoutResponse, error) {
	args := m.Called(ctx, details)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CheckoutResponse), args.Error(1)
}

// MockCatalogService is a mock of service.CatalogService.
type MockCatalogService struct {
	mock.Mock
}

func NewMockCatalogService(t testingT) *MockCatalogService {
	m := &MockCatalogService{}
	register(t, &m.Mock)
	return m
}

func (m *MockCatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockCatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockCatalogService) Detail(ctx context.Context, id string) (*models.ProductDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductDetail), args.Error(1)
}

func (m *MockCatalogService) Search(ctx context.Context, query string) ([]models.Product, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockCatalogService) Browse(ctx context.Context, segment catalog.Segment, filter catalog.Filter) (*service.BrowseResult, error) {
	args := m.Called(ctx, segment, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BrowseResult), args.Error(1)
}

// MockAuthService is a mock of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func NewMockAuthService(t testingT) *MockAuthService {
	m := &MockAuthService{}
	register(t, &m.Mock)
	return m
}

func (m *MockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.SessionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessionResponse), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAuthService) SendOTP(ctx context.Context, req *models.SendOTPRequest) (*models.SessionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessionResponse), args.Error(1)
}

func (m *MockAuthService) VerifyOTP(ctx context.Context, req *models.VerifyOTPRequest) (*models.SessionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessionResponse), args.Error(1)
}

func (m *MockAuthService) CurrentUser(ctx context.Context) (*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, req *models.UpdateProfileRequest) (*models.SessionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessionResponse), args.Error(1)
}

// MockOrderService is a mock of service.OrderService.
type MockOrderService struct {
	mock.Mock
}

func NewMockOrderService(t testingT) *MockOrderService {
	m := &MockOrderService{}
	register(t, &m.Mock)
	return m
}

func (m *MockOrderService) Confirmation(ctx context.Context, orderID string) (*models.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}
