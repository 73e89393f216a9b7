package cancellation

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"stayease/pkg/logger"
)

// PolicyType classifies how forgiving a cancellation policy is
type PolicyType string

const (
	PolicyFlexible      PolicyType = "FLEXIBLE"
	PolicyModerate      PolicyType = "MODERATE"
	PolicyStrict        PolicyType = "STRICT"
	PolicyNonRefundable PolicyType = "NON_REFUNDABLE"
)

// IsValidPolicyType checks whether a string is a recognised policy type
func IsValidPolicyType(t string) bool {
	switch PolicyType(t) {
	case PolicyFlexible, PolicyModerate, PolicyStrict, PolicyNonRefundable:
		return true
	}
	return false
}

// PolicyRule is one step of the refund staircase: cancelling at or after
// DaysBeforeCheckIn whole days out refunds RefundPercentage of the total.
type PolicyRule struct {
	DaysBeforeCheckIn int `json:"days_before_check_in"`
	RefundPercentage  int `json:"refund_percentage"`
}

// RefundEvaluation is the outcome of evaluating a policy against a stay
type RefundEvaluation struct {
	RefundPercentage int             `json:"refund_percentage"`
	RefundAmount     decimal.Decimal `json:"refund_amount"`
	DaysRemaining    int             `json:"days_remaining"`
	ApplicableRule   *PolicyRule     `json:"applicable_rule,omitempty"`
}

// EvaluateRefund computes the refund owed when a booking with the given
// all-in total is cancelled at `now`, ahead of `checkInDate`.
//
// The rule with the greatest DaysBeforeCheckIn threshold not exceeding the
// actual days remaining wins. A NON_REFUNDABLE policy always yields zero
// regardless of its rules. Days remaining never go negative; a check-in
// already in the past evaluates as zero days out.
func EvaluateRefund(policy *CancellationPolicy, total decimal.Decimal, checkInDate, now time.Time) RefundEvaluation {
	daysRemaining := int(checkInDate.Sub(now).Hours() / 24)
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	if policy.Type == PolicyNonRefundable {
		return RefundEvaluation{
			RefundPercentage: 0,
			RefundAmount:     decimal.Zero.Round(2),
			DaysRemaining:    daysRemaining,
		}
	}

	rules := make([]PolicyRule, len(policy.Rules))
	copy(rules, policy.Rules)
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].DaysBeforeCheckIn > rules[j].DaysBeforeCheckIn
	})

	var applicable *PolicyRule
	for i := range rules {
		if rules[i].DaysBeforeCheckIn <= daysRemaining {
			applicable = &rules[i]
			break
		}
	}

	if applicable == nil {
		// Every well-formed policy carries a 0-day floor rule. Tolerate
		// its absence as a 0% refund rather than failing the evaluation.
		logger.GetDefault().Warn("Cancellation policy has no applicable rule, treating as 0% refund",
			"policy_type", policy.Type,
			"days_remaining", daysRemaining,
		)
		return RefundEvaluation{
			RefundPercentage: 0,
			RefundAmount:     decimal.Zero.Round(2),
			DaysRemaining:    daysRemaining,
		}
	}

	amount := total.
		Mul(decimal.NewFromInt(int64(applicable.RefundPercentage))).
		Div(decimal.NewFromInt(100)).
		Round(2)

	return RefundEvaluation{
		RefundPercentage: applicable.RefundPercentage,
		RefundAmount:     amount,
		DaysRemaining:    daysRemaining,
		ApplicableRule:   applicable,
	}
}
