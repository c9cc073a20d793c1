package payment

import (
	"context"
	"time"

	"github.com/lumoshive/service-account-go/pkg/utilities"
)

// Confirmation is the fabricated result of a simulated charge.
type Confirmation struct {
	TransactionID string
	Amount        float64
	Status        string
}

// Service simulates a payment gateway. No real charge ever happens and
// nothing about the attempt is persisted. A real integration would replace
// this with a gateway adapter and keep this type as a test double.
type Service struct {
	delay time.Duration
}

func NewService(delay time.Duration) *Service {
	return &Service{delay: delay}
}

// Charge waits out the simulated gateway latency and fabricates a
// confirmation. Transaction ids are snowflakes, so two charges within the
// same millisecond still get distinct ids.
func (s *Service) Charge(ctx context.Context, amount float64) (*Confirmation, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return &Confirmation{
		TransactionID: "TXN-" + utilities.NewSnowflakeID(),
		Amount:        amount,
		Status:        "success",
	}, nil
}
