package payment

import (
	"context"
	"math/rand/v2"

	"github.com/shopspring/decimal"
)

type Refusal int

const (
	RefusalUnknown Refusal = iota
	RefusalNoFunds
	RefusalCardExpired
	RefusalLimitExceeded
	RefusalSuspectedFraud
	RefusalIssuerUnavailable
)

var refusalText = map[Refusal]string{
	RefusalUnknown:           "unknown reason",
	RefusalNoFunds:           "insufficient funds",
	RefusalCardExpired:       "card expired",
	RefusalLimitExceeded:     "limit exceeded",
	RefusalSuspectedFraud:    "suspected fraud",
	RefusalIssuerUnavailable: "issuer unavailable",
}

func (r Refusal) String() string {
	if s, ok := refusalText[r]; ok {
		return s
	}
	return refusalText[RefusalUnknown]
}

type Decision struct {
	Approved bool
	Refusal  Refusal
}

// Reason is the customer facing decline text; empty when approved.
func (d Decision) Reason() string {
	if d.Approved {
		return ""
	}
	return "Payment declined: " + d.Refusal.String()
}

type Authorizer interface {
	Authorize(ctx context.Context, amount decimal.Decimal, method string) Decision
}

// ApproveAll accepts every payment.
type ApproveAll struct{}

func (ApproveAll) Authorize(context.Context, decimal.Decimal, string) Decision {
	return Decision{Approved: true}
}

// RandomDecline refuses roughly percent out of every hundred payments.
type RandomDecline struct {
	percent int
	intn    func(int) int
}

func NewRandomDecline(percent int) *RandomDecline {
	return &RandomDecline{percent: min(max(percent, 0), 100), intn: rand.IntN}
}

func (r *RandomDecline) Authorize(context.Context, decimal.Decimal, string) Decision {
	return calcDecision(r.intn(100), r.percent)
}

// calcDecision maps a roll in [0,100) to a decision. Rolls in the top percent are declined and
// spread across the known refusals.
func calcDecision(roll, percent int) Decision {
	threshold := 100 - percent
	if roll < threshold {
		return Decision{Approved: true}
	}
	return Decision{Refusal: Refusal((roll - threshold) % len(refusalText))}
}
