package services

import (
	"context"
	"sync"
	"time"

	"github.com/KevTop1c/alx-travel-app-0x04/internal/application"
	"github.com/KevTop1c/alx-travel-app-0x04/internal/domain"
	"github.com/google/uuid"
)

// MockPaymentRepository
type MockPaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment

	CreateFn                   func(ctx context.Context, payment *domain.Payment) error
	UpdateFn                   func(ctx context.Context, payment *domain.Payment) error
	FindByReferenceFn          func(ctx context.Context, transactionRef string) (*domain.Payment, error)
	FindByReferenceForUpdateFn func(ctx context.Context, transactionRef string) (*domain.Payment, error)
	FindActiveByBookingIDFn    func(ctx context.Context, bookingID uuid.UUID) (*domain.Payment, error)
	FindStalePendingFn         func(ctx context.Context, cutoff time.Time, limit int) ([]*domain.Payment, error)
	SummaryByUserFn            func(ctx context.Context, userID uuid.UUID) (*application.PaymentSummary, error)
}

func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{
		payments: make(map[string]*domain.Payment),
	}
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateFn != nil {
		return m.CreateFn(ctx, payment)
	}
	m.payments[payment.TransactionRef] = payment
	return nil
}

func (m *MockPaymentRepository) Update(ctx context.Context, payment *domain.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, payment)
	}
	m.payments[payment.TransactionRef] = payment
	return nil
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (m *MockPaymentRepository) FindByReference(ctx context.Context, transactionRef string) (*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FindByReferenceFn != nil {
		return m.FindByReferenceFn(ctx, transactionRef)
	}
	if p, ok := m.payments[transactionRef]; ok {
		return p, nil
	}
	return nil, nil
}

func (m *MockPaymentRepository) FindByReferenceForUpdate(ctx context.Context, transactionRef string) (*domain.Payment, error) {
	if m.FindByReferenceForUpdateFn != nil {
		return m.FindByReferenceForUpdateFn(ctx, transactionRef)
	}
	return m.FindByReference(ctx, transactionRef)
}

func (m *MockPaymentRepository) FindActiveByBookingID(ctx context.Context, bookingID uuid.UUID) (*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FindActiveByBookingIDFn != nil {
		return m.FindActiveByBookingIDFn(ctx, bookingID)
	}
	for _, p := range m.payments {
		if p.BookingID == bookingID && (p.Status == domain.StatusPending || p.Status == domain.StatusSuccess) {
			return p, nil
		}
	}
	return nil, nil
}

func (m *MockPaymentRepository) FindLatestByBookingID(ctx context.Context, bookingID uuid.UUID) (*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest *domain.Payment
	for _, p := range m.payments {
		if p.BookingID != bookingID {
			continue
		}
		if latest == nil || p.CreatedAt.After(latest.CreatedAt) {
			latest = p
		}
	}
	return latest, nil
}

func (m *MockPaymentRepository) FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Payment, error) {
	return nil, nil // Not used in current tests
}

func (m *MockPaymentRepository) FindStalePending(ctx context.Context, cutoff time.Time, limit int) ([]*domain.Payment, error) {
	if m.FindStalePendingFn != nil {
		return m.FindStalePendingFn(ctx, cutoff, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var stale []*domain.Payment
	for _, p := range m.payments {
		if p.Status == domain.StatusPending && p.CreatedAt.Before(cutoff) {
			stale = append(stale, p)
		}
		if len(stale) == limit {
			break
		}
	}
	return stale, nil
}

func (m *MockPaymentRepository) SummaryByUser(ctx context.Context, userID uuid.UUID) (*application.PaymentSummary, error) {
	if m.SummaryByUserFn != nil {
		return m.SummaryByUserFn(ctx, userID)
	}
	return &application.PaymentSummary{}, nil
}

// MockBookingRepository
type MockBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking

	FindByIDFn         func(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	CountOverlappingFn func(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) (int, error)
	UpdateStatusFn     func(ctx context.Context, booking *domain.Booking) error
}

func NewMockBookingRepository() *MockBookingRepository {
	return &MockBookingRepository{
		bookings: make(map[string]*domain.Booking),
	}
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID.String()] = booking
	return nil
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	if b, ok := m.bookings[id.String()]; ok {
		return b, nil
	}
	return nil, nil
}

func (m *MockBookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return m.FindByID(ctx, id)
}

func (m *MockBookingRepository) CountOverlapping(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.CountOverlappingFn != nil {
		return m.CountOverlappingFn(ctx, propertyID, checkIn, checkOut)
	}
	count := 0
	for _, b := range m.bookings {
		if b.PropertyID == propertyID && b.Status != domain.BookingCanceled && b.Overlaps(checkIn, checkOut) {
			count++
		}
	}
	return count, nil
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, booking *domain.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, booking)
	}
	m.bookings[booking.ID.String()] = booking
	return nil
}

// MockGatewayClient
type MockGatewayClient struct {
	mu    sync.Mutex
	calls map[string]int

	InitializeFn func(ctx context.Context, req application.InitializeRequest) (*application.InitializeResponse, error)
	VerifyFn     func(ctx context.Context, transactionRef string) (*application.VerifyResponse, error)
}

func (m *MockGatewayClient) inc(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
}

func (m *MockGatewayClient) GetCalls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *MockGatewayClient) Initialize(ctx context.Context, req application.InitializeRequest) (*application.InitializeResponse, error) {
	m.inc("Initialize")
	if m.InitializeFn != nil {
		return m.InitializeFn(ctx, req)
	}
	return &application.InitializeResponse{
		CheckoutURL: "https://checkout.example.com/" + req.TxRef,
		RawPayload:  []byte(`{"status":"success"}`),
	}, nil
}

func (m *MockGatewayClient) Verify(ctx context.Context, transactionRef string) (*application.VerifyResponse, error) {
	m.inc("Verify")
	if m.VerifyFn != nil {
		return m.VerifyFn(ctx, transactionRef)
	}
	return &application.VerifyResponse{
		Status:     "success",
		RawPayload: []byte(`{"status":"success"}`),
	}, nil
}

// MockDispatcher records enqueued notifications for assertions.
type MockDispatcher struct {
	mu       sync.Mutex
	Enqueued []application.NotificationKind
}

func (m *MockDispatcher) Enqueue(kind application.NotificationKind, entityID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Enqueued = append(m.Enqueued, kind)
}

func (m *MockDispatcher) Count(kind application.NotificationKind) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, k := range m.Enqueued {
		if k == kind {
			n++
		}
	}
	return n
}

// MockTransactionCoordinator runs the callback against the given repositories
// with no real transaction semantics.
type MockTransactionCoordinator struct {
	Payments application.PaymentRepository
	Bookings application.BookingRepository

	WithTransactionFn func(ctx context.Context, fn func(payments application.PaymentRepository, bookings application.BookingRepository) error) error
}

func (m *MockTransactionCoordinator) WithTransaction(ctx context.Context, fn func(payments application.PaymentRepository, bookings application.BookingRepository) error) error {
	if m.WithTransactionFn != nil {
		return m.WithTransactionFn(ctx, fn)
	}
	return fn(m.Payments, m.Bookings)
}
