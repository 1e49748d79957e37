package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"blandselv-backend/internal/domain"
	"blandselv-backend/internal/quickpay"
)

var ErrAlreadyPaid = errors.New("order already paid")

// Service orchestrates the payment lifecycle against the gateway:
// create payment, create payment link, apply callbacks, answer status
// checks, and hand paid orders to the confirmer.
type Service struct {
	gateway   gateway
	orders    orderRepo
	sessions  sessionRepo
	confirmer confirmer
	logger    *log.Logger

	currency    string
	continueURL string
	cancelURL   string
	callbackURL string
}

type gateway interface {
	CreatePayment(ctx context.Context, orderID, currency string) (*quickpay.Payment, error)
	CreatePaymentLink(ctx context.Context, paymentID, amountOre int64, continueURL, cancelURL, callbackURL string) (string, error)
	GetPayment(ctx context.Context, paymentID int64) (*quickpay.Payment, error)
	VerifyChecksum(body []byte, checksum string) bool
}

type orderRepo interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, orderID string) (*domain.Order, error)
	SetPayment(ctx context.Context, orderID string, paymentID int64, link string) error
	AdvanceStatus(ctx context.Context, orderID, to string, from ...string) (bool, error)
}

type sessionRepo interface {
	Get(ctx context.Context, consentID string) (*domain.Session, error)
}

type confirmer interface {
	Confirm(ctx context.Context, o domain.Order) error
}

type Options struct {
	Currency    string
	ContinueURL string
	CancelURL   string
	CallbackURL string
}

func New(gw gateway, orders orderRepo, sessions sessionRepo, conf confirmer, logger *log.Logger, opts Options) *Service {
	return &Service{
		gateway:     gw,
		orders:      orders,
		sessions:    sessions,
		confirmer:   conf,
		logger:      logger,
		currency:    opts.Currency,
		continueURL: opts.ContinueURL,
		cancelURL:   opts.CancelURL,
		callbackURL: opts.CallbackURL,
	}
}

// StartPayment creates the local order row, registers the payment at the
// gateway and returns the hosted payment window URL. Re-posting an orderId
// whose payment link already exists returns the stored link instead of
// creating a duplicate payment at the gateway.
func (s *Service) StartPayment(ctx context.Context, orderID string, totalPriceOre int64, consentID string) (string, error) {
	existing, err := s.orders.GetByID(ctx, orderID)
	switch {
	case err == nil:
		if existing.Accepted() {
			return "", ErrAlreadyPaid
		}
		if existing.PaymentLink != "" {
			return existing.PaymentLink, nil
		}
	case errors.Is(err, domain.ErrNotFound):
		order := domain.Order{
			OrderID:       orderID,
			SessionID:     consentID,
			Status:        domain.OrderStatusNew,
			TotalPriceOre: totalPriceOre,
			Currency:      s.currency,
		}
		if consentID != "" {
			if sess, err := s.sessions.Get(ctx, consentID); err == nil {
				order.BasketItems = sess.BasketItems
				order.CustomerDetails = sess.CustomerDetails
			} else if !errors.Is(err, domain.ErrNotFound) {
				return "", fmt.Errorf("load session: %w", err)
			}
		}
		if _, err := s.orders.Create(ctx, order); err != nil {
			return "", fmt.Errorf("create order: %w", err)
		}
	default:
		return "", err
	}

	payment, err := s.gateway.CreatePayment(ctx, orderID, s.currency)
	if err != nil {
		return "", fmt.Errorf("create payment: %w", err)
	}

	link, err := s.gateway.CreatePaymentLink(ctx, payment.ID, totalPriceOre, s.continueURL, s.cancelURL, s.callbackURL)
	if err != nil {
		return "", fmt.Errorf("create payment link: %w", err)
	}

	if err := s.orders.SetPayment(ctx, orderID, payment.ID, link); err != nil {
		return "", fmt.Errorf("store payment: %w", err)
	}
	return link, nil
}

// HandleCallback verifies the callback signature and applies the reported
// payment state. Replayed callbacks are no-ops; the confirmation mail is
// sent only on the first transition into paid.
func (s *Service) HandleCallback(ctx context.Context, body []byte, checksum string) error {
	if !s.gateway.VerifyChecksum(body, checksum) {
		return domain.ErrInvalidChecksum
	}

	var payment quickpay.Payment
	if err := json.Unmarshal(body, &payment); err != nil {
		return fmt.Errorf("decode callback: %w", err)
	}
	return s.applyPayment(ctx, &payment)
}

// Status reports whether the order's payment went through. Local state is
// authoritative, but an order still waiting on its callback triggers one
// live gateway poll so a finished payment is not reported as pending.
func (s *Service) Status(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status == domain.OrderStatusNew && order.PaymentID != 0 {
		payment, err := s.gateway.GetPayment(ctx, order.PaymentID)
		if err != nil {
			s.logger.Printf("status poll for order %s failed: %v", orderID, err)
			return order, nil
		}
		if err := s.applyPayment(ctx, payment); err != nil {
			return nil, err
		}
		return s.orders.GetByID(ctx, orderID)
	}
	return order, nil
}

func (s *Service) applyPayment(ctx context.Context, payment *quickpay.Payment) error {
	if payment.OrderID == "" {
		return errors.New("payment without order id")
	}

	if !payment.Accepted {
		if payment.State == "rejected" {
			if _, err := s.orders.AdvanceStatus(ctx, payment.OrderID, domain.OrderStatusFailed, domain.OrderStatusNew); err != nil {
				return err
			}
		}
		return nil
	}

	becamePaid, err := s.orders.AdvanceStatus(ctx, payment.OrderID, domain.OrderStatusPaid, domain.OrderStatusNew, domain.OrderStatusFailed)
	if err != nil {
		return err
	}
	if payment.Captured() {
		if _, err := s.orders.AdvanceStatus(ctx, payment.OrderID, domain.OrderStatusPaidAndCaptured, domain.OrderStatusPaid); err != nil {
			return err
		}
	}

	if becamePaid && s.confirmer != nil {
		order, err := s.orders.GetByID(ctx, payment.OrderID)
		if err != nil {
			return err
		}
		if err := s.confirmer.Confirm(ctx, *order); err != nil {
			// Confirmation failure never rolls back a paid order.
			s.logger.Printf("confirm order %s: %v", payment.OrderID, err)
		}
	}
	return nil
}
