package cancellation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func moderatePolicy() *CancellationPolicy {
	return &CancellationPolicy{
		Type: PolicyModerate,
		Rules: []PolicyRule{
			{DaysBeforeCheckIn: 5, RefundPercentage: 100},
			{DaysBeforeCheckIn: 2, RefundPercentage: 50},
			{DaysBeforeCheckIn: 0, RefundPercentage: 0},
		},
	}
}

func flexiblePolicy() *CancellationPolicy {
	return &CancellationPolicy{
		Type: PolicyFlexible,
		Rules: []PolicyRule{
			{DaysBeforeCheckIn: 1, RefundPercentage: 100},
			{DaysBeforeCheckIn: 0, RefundPercentage: 0},
		},
	}
}

func TestEvaluateRefund_ModerateThreeDaysOut(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	checkIn := now.Add(3 * 24 * time.Hour)
	total := decimal.NewFromInt(1150)

	eval := EvaluateRefund(moderatePolicy(), total, checkIn, now)

	assert.Equal(t, 50, eval.RefundPercentage)
	assert.Equal(t, "575.00", eval.RefundAmount.StringFixed(2))
	assert.Equal(t, 3, eval.DaysRemaining)
	require.NotNil(t, eval.ApplicableRule)
	assert.Equal(t, 2, eval.ApplicableRule.DaysBeforeCheckIn)
}

func TestEvaluateRefund_FullRefundAtOrBeyondLargestThreshold(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	total := decimal.NewFromInt(900)

	for _, days := range []int{5, 6, 30, 365} {
		checkIn := now.Add(time.Duration(days) * 24 * time.Hour)
		eval := EvaluateRefund(moderatePolicy(), total, checkIn, now)
		assert.Equal(t, 100, eval.RefundPercentage, "days=%d", days)
		assert.Equal(t, "900.00", eval.RefundAmount.StringFixed(2), "days=%d", days)
	}
}

func TestEvaluateRefund_ZeroDaysSelectsFloorRule(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	total := decimal.NewFromInt(500)

	eval := EvaluateRefund(flexiblePolicy(), total, now, now)

	assert.Equal(t, 0, eval.RefundPercentage)
	assert.Equal(t, "0.00", eval.RefundAmount.StringFixed(2))
	assert.Equal(t, 0, eval.DaysRemaining)
}

func TestEvaluateRefund_PastCheckInClampsToZeroDays(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	checkIn := now.Add(-5 * 24 * time.Hour)

	eval := EvaluateRefund(moderatePolicy(), decimal.NewFromInt(1000), checkIn, now)

	assert.Equal(t, 0, eval.DaysRemaining)
	assert.Equal(t, 0, eval.RefundPercentage)
}

func TestEvaluateRefund_PartialDaysRoundDown(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	// 4 days and 20 hours out counts as 4 whole days
	checkIn := now.Add(4*24*time.Hour + 20*time.Hour)

	eval := EvaluateRefund(moderatePolicy(), decimal.NewFromInt(1000), checkIn, now)

	assert.Equal(t, 4, eval.DaysRemaining)
	assert.Equal(t, 50, eval.RefundPercentage)
}

func TestEvaluateRefund_NonRefundableAlwaysZero(t *testing.T) {
	policy := &CancellationPolicy{
		Type: PolicyNonRefundable,
		// rules content must not matter for this type
		Rules: []PolicyRule{
			{DaysBeforeCheckIn: 0, RefundPercentage: 100},
		},
	}
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	total := decimal.NewFromInt(2000)

	for _, days := range []int{0, 1, 10, 100} {
		checkIn := now.Add(time.Duration(days) * 24 * time.Hour)
		eval := EvaluateRefund(policy, total, checkIn, now)
		assert.Equal(t, 0, eval.RefundPercentage, "days=%d", days)
		assert.True(t, eval.RefundAmount.IsZero(), "days=%d", days)
	}
}

func TestEvaluateRefund_FractionalCentsRoundToTwoDecimals(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	checkIn := now.Add(3 * 24 * time.Hour)

	total := decimal.RequireFromString("333.33")
	eval := EvaluateRefund(moderatePolicy(), total, checkIn, now)

	// 50% of 333.33 = 166.665, rounds to 166.67
	assert.Equal(t, "166.67", eval.RefundAmount.StringFixed(2))
}

func TestEvaluateRefund_MissingFloorRuleTreatedAsZero(t *testing.T) {
	policy := &CancellationPolicy{
		Type: PolicyStrict,
		Rules: []PolicyRule{
			{DaysBeforeCheckIn: 7, RefundPercentage: 100},
		},
	}
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	checkIn := now.Add(2 * 24 * time.Hour)

	eval := EvaluateRefund(policy, decimal.NewFromInt(800), checkIn, now)

	assert.Equal(t, 0, eval.RefundPercentage)
	assert.True(t, eval.RefundAmount.IsZero())
	assert.Nil(t, eval.ApplicableRule)
}

func TestEvaluateRefund_Deterministic(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	checkIn := now.Add(3 * 24 * time.Hour)
	total := decimal.NewFromInt(1150)
	policy := moderatePolicy()

	first := EvaluateRefund(policy, total, checkIn, now)
	second := EvaluateRefund(policy, total, checkIn, now)

	assert.Equal(t, first.RefundPercentage, second.RefundPercentage)
	assert.True(t, first.RefundAmount.Equal(second.RefundAmount))
}
