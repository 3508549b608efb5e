package services

import (
	"context"
	"log/slog"

	"github.com/KevTop1c/alx-travel-app-0x04/internal/application"
	"github.com/KevTop1c/alx-travel-app-0x04/internal/domain"
)

// InitiateService creates a pending payment for a booking and opens a
// checkout session at the gateway.
type InitiateService struct {
	paymentRepo application.PaymentRepository
	bookingRepo application.BookingRepository
	gateway     application.GatewayClient
	urls        CheckoutURLs
	currency    domain.Currency
	logger      *slog.Logger
}

func NewInitiateService(
	paymentRepo application.PaymentRepository,
	bookingRepo application.BookingRepository,
	gateway application.GatewayClient,
	urls CheckoutURLs,
	currency domain.Currency,
	logger *slog.Logger,
) *InitiateService {
	return &InitiateService{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		gateway:     gateway,
		urls:        urls,
		currency:    currency,
		logger:      logger,
	}
}

// Initiate checks the booking's preconditions in order, creates a pending
// payment priced at the booking total, and asks the gateway for a checkout
// handle. Each failed precondition is a distinct client error. A gateway
// failure settles the fresh record as failed and is surfaced to the caller:
// the user is present and can retry with a new request.
func (s *InitiateService) Initiate(ctx context.Context, cmd InitiateCommand) (*domain.Payment, error) {
	booking, err := s.bookingRepo.FindByID(ctx, cmd.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, application.NewNotFoundError("booking")
	}
	if booking.Status != domain.BookingPending {
		return nil, application.NewInvalidStateError("booking is not pending payment")
	}

	active, err := s.paymentRepo.FindActiveByBookingID(ctx, cmd.BookingID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, application.NewInvalidStateError("booking already has an active payment")
	}

	if booking.UserID != cmd.UserID {
		return nil, application.NewUnauthorizedError("you do not have permission to pay for this booking")
	}

	customer := domain.Customer{
		FirstName:   cmd.FirstName,
		LastName:    cmd.LastName,
		Email:       cmd.Email,
		PhoneNumber: cmd.PhoneNumber,
	}
	return s.createAndInitialize(ctx, booking, customer)
}

// createAndInitialize is shared with the retry flow, which re-runs initiation
// for a fresh payment record with the customer fields of the old one.
func (s *InitiateService) createAndInitialize(ctx context.Context, booking *domain.Booking, customer domain.Customer) (*domain.Payment, error) {
	payment, err := domain.NewPayment(booking, booking.TotalPrice(), s.currency, customer)
	if err != nil {
		return nil, application.NewValidationError(err)
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, application.NewInternalError(err)
	}

	initResp, err := s.gateway.Initialize(ctx, application.InitializeRequest{
		Amount:      payment.Amount,
		Currency:    payment.Currency,
		Email:       payment.Email,
		FirstName:   payment.FirstName,
		LastName:    payment.LastName,
		PhoneNumber: payment.PhoneNumber,
		TxRef:       payment.TransactionRef,
		CallbackURL: s.urls.Callback,
		ReturnURL:   s.urls.Return,
		Customization: &application.Customization{
			Title:       "Booking payment",
			Description: "Payment for booking " + booking.Reference,
		},
	})
	if err != nil {
		s.logger.Error("gateway initialization failed",
			"transaction_ref", payment.TransactionRef,
			"booking_reference", booking.Reference,
			"error", err)

		if markErr := payment.MarkFailed(); markErr == nil {
			if updateErr := s.paymentRepo.Update(ctx, payment); updateErr != nil {
				s.logger.Error("failed to persist failed payment",
					"transaction_ref", payment.TransactionRef,
					"error", updateErr)
			}
		}
		return nil, application.NewGatewayUnavailableError(err)
	}

	checkoutURL := initResp.CheckoutURL
	payment.CheckoutURL = &checkoutURL
	if initResp.GatewayRef != "" {
		gatewayRef := initResp.GatewayRef
		payment.GatewayRef = &gatewayRef
	}
	payment.GatewayPayload = initResp.RawPayload

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, application.NewInternalError(err)
	}

	s.logger.Info("payment initiated",
		"transaction_ref", payment.TransactionRef,
		"booking_reference", booking.Reference,
		"amount", payment.Amount.String())

	return payment, nil
}
