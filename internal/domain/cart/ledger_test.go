package cart

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	return NewLedger("test-session", DefaultRates(), IgnoreMissing)
}

func seedSampleCart(t *testing.T, l *Ledger) (canvasID, sculptureID string) {
	t.Helper()
	canvas, err := l.AddItem(AddItemRequest{ProductID: "1", Name: "Ethereal Canvas Print", Price: money("129.99"), Quantity: 1})
	require.NoError(t, err)
	sculpture, err := l.AddItem(AddItemRequest{ProductID: "2", Name: "Mystic Sculpture", Price: money("299.99"), Quantity: 1})
	require.NoError(t, err)
	return canvas.ID, sculpture.ID
}

func TestTotals_SampleCartWithStandardShipping(t *testing.T) {
	l := newTestLedger(t)
	seedSampleCart(t, l)

	totals := l.Totals()

	assert.Equal(t, "429.98", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "15.99", totals.ShippingCost.StringFixed(2))
	assert.Equal(t, "0.00", totals.Discount.StringFixed(2))
	assert.Equal(t, "445.97", totals.Total.StringFixed(2))
}

func TestTotals_PercentagePromoRoundsHalfUp(t *testing.T) {
	l := newTestLedger(t)
	seedSampleCart(t, l)

	require.NoError(t, l.ApplyPromoCode("DREAM10"))

	totals := l.Totals()

	// Raw discount is 42.998; the total is derived from unrounded
	// intermediates (429.98 + 15.99 - 42.998 = 402.972) and then rounded.
	assert.Equal(t, "43.00", totals.Discount.StringFixed(2))
	assert.Equal(t, "402.97", totals.Total.StringFixed(2))
}

func TestTotals_FixedPromo(t *testing.T) {
	l := newTestLedger(t)
	seedSampleCart(t, l)

	require.NoError(t, l.ApplyPromoCode("MYSTIC25"))

	totals := l.Totals()
	assert.Equal(t, "25.00", totals.Discount.StringFixed(2))
	assert.Equal(t, "420.97", totals.Total.StringFixed(2))
}

func TestTotals_FixedDiscountMayExceedSubtotalButTotalClampsAtZero(t *testing.T) {
	rates := DefaultRates()
	rates.Promos = append(rates.Promos, PromoCode{Code: "BIGSPENDER", Discount: money("1000"), Type: DiscountFixed})
	l := NewLedger("s", rates, IgnoreMissing)

	_, err := l.AddItem(AddItemRequest{ProductID: "6", Name: "Mist Weave Throw", Price: money("89.99"), Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, l.ApplyPromoCode("BIGSPENDER"))

	totals := l.Totals()

	// The discount stays uncapped for transparency; only the total clamps.
	assert.Equal(t, "1000.00", totals.Discount.StringFixed(2))
	assert.Equal(t, "0.00", totals.Total.StringFixed(2))
}

func TestTotals_InvariantUnderInsertionOrder(t *testing.T) {
	forward := newTestLedger(t)
	seedSampleCart(t, forward)

	reversed := newTestLedger(t)
	_, err := reversed.AddItem(AddItemRequest{ProductID: "2", Name: "Mystic Sculpture", Price: money("299.99"), Quantity: 1})
	require.NoError(t, err)
	_, err = reversed.AddItem(AddItemRequest{ProductID: "1", Name: "Ethereal Canvas Print", Price: money("129.99"), Quantity: 1})
	require.NoError(t, err)

	assert.Equal(t, forward.Totals(), reversed.Totals())
}

func TestTotals_RecomputedFromScratchAfterMutation(t *testing.T) {
	l := newTestLedger(t)
	canvasID, _ := seedSampleCart(t, l)

	require.NoError(t, l.UpdateQuantity(canvasID, 3))

	totals := l.Totals()
	assert.Equal(t, "689.96", totals.Subtotal.StringFixed(2))
}

func TestTotals_IsPure(t *testing.T) {
	l := newTestLedger(t)
	seedSampleCart(t, l)
	require.NoError(t, l.ApplyPromoCode("dream10"))

	first := l.Totals()
	second := l.Totals()

	assert.Equal(t, first, second)
}

func TestTotals_NoShippingSelected(t *testing.T) {
	rates := DefaultRates()
	rates.DefaultShippingID = ""
	l := NewLedger("s", rates, IgnoreMissing)
	seedSampleCart(t, l)

	totals := l.Totals()
	assert.Equal(t, "0.00", totals.ShippingCost.StringFixed(2))
	assert.Equal(t, "429.98", totals.Total.StringFixed(2))
}

func TestTotals_FreeStandardShippingOverThreshold(t *testing.T) {
	l := newTestLedger(t)
	_, err := l.AddItem(AddItemRequest{ProductID: "8", Name: "Veiled Figure Study", Price: money("499.99"), Quantity: 2})
	require.NoError(t, err)

	totals := l.Totals()
	assert.Equal(t, "999.98", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "0.00", totals.ShippingCost.StringFixed(2))
}

func TestTotals_FreeShippingDoesNotApplyToExpress(t *testing.T) {
	l := newTestLedger(t)
	_, err := l.AddItem(AddItemRequest{ProductID: "8", Name: "Veiled Figure Study", Price: money("499.99"), Quantity: 2})
	require.NoError(t, err)
	require.NoError(t, l.SelectShipping("express"))

	totals := l.Totals()
	assert.Equal(t, "29.99", totals.ShippingCost.StringFixed(2))
}

func TestAddItem_MergesMatchingVariant(t *testing.T) {
	l := newTestLedger(t)

	_, err := l.AddItem(AddItemRequest{ProductID: "3", Name: "Dream Tapestry", Price: money("159.99"), Quantity: 1, Color: "indigo"})
	require.NoError(t, err)
	_, err = l.AddItem(AddItemRequest{ProductID: "3", Name: "Dream Tapestry", Price: money("159.99"), Quantity: 2, Color: "indigo"})
	require.NoError(t, err)

	require.Len(t, l.Items(), 1)
	assert.Equal(t, 3, l.Items()[0].Quantity)
}

func TestAddItem_DistinctVariantsStaySeparate(t *testing.T) {
	l := newTestLedger(t)

	_, err := l.AddItem(AddItemRequest{ProductID: "3", Name: "Dream Tapestry", Price: money("159.99"), Quantity: 1, Color: "indigo"})
	require.NoError(t, err)
	_, err = l.AddItem(AddItemRequest{ProductID: "3", Name: "Dream Tapestry", Price: money("159.99"), Quantity: 1, Color: "pearl"})
	require.NoError(t, err)

	assert.Len(t, l.Items(), 2)
}

func TestUpdateQuantity_ZeroIsRejectedNoOp(t *testing.T) {
	l := newTestLedger(t)
	canvasID, _ := seedSampleCart(t, l)

	before := append([]LineItem(nil), l.Items()...)

	err := l.UpdateQuantity(canvasID, 0)

	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, before, l.Items(), "cart contents must be identical after a rejected update")
}

func TestUpdateQuantity_NegativeIsRejectedNoOp(t *testing.T) {
	l := newTestLedger(t)
	canvasID, _ := seedSampleCart(t, l)

	assert.ErrorIs(t, l.UpdateQuantity(canvasID, -4), ErrInvalidQuantity)
	assert.Equal(t, 1, l.Items()[0].Quantity)
}

func TestUpdateQuantity_PreservesPosition(t *testing.T) {
	l := newTestLedger(t)
	canvasID, sculptureID := seedSampleCart(t, l)

	require.NoError(t, l.UpdateQuantity(canvasID, 5))

	require.Len(t, l.Items(), 2)
	assert.Equal(t, canvasID, l.Items()[0].ID)
	assert.Equal(t, 5, l.Items()[0].Quantity)
	assert.Equal(t, sculptureID, l.Items()[1].ID)
}

func TestUpdateQuantity_UnknownIDIgnoredByDefault(t *testing.T) {
	l := newTestLedger(t)
	seedSampleCart(t, l)

	before := append([]LineItem(nil), l.Items()...)

	assert.NoError(t, l.UpdateQuantity("no-such-item", 2))
	assert.Equal(t, before, l.Items())
}

func TestUpdateQuantity_UnknownIDRejectedUnderStrictPolicy(t *testing.T) {
	l := NewLedger("s", DefaultRates(), RejectMissing)

	assert.ErrorIs(t, l.UpdateQuantity("no-such-item", 2), ErrItemNotFound)
}

func TestRemoveItem(t *testing.T) {
	l := newTestLedger(t)
	canvasID, sculptureID := seedSampleCart(t, l)

	require.NoError(t, l.RemoveItem(canvasID))

	require.Len(t, l.Items(), 1)
	assert.Equal(t, sculptureID, l.Items()[0].ID)
}

func TestRemoveItem_UnknownIDIsNoOpByDefault(t *testing.T) {
	l := newTestLedger(t)
	seedSampleCart(t, l)

	assert.NoError(t, l.RemoveItem("no-such-item"))
	assert.Len(t, l.Items(), 2)
}

func TestRemoveItem_UnknownIDRejectedUnderStrictPolicy(t *testing.T) {
	l := NewLedger("s", DefaultRates(), RejectMissing)

	assert.ErrorIs(t, l.RemoveItem("no-such-item"), ErrItemNotFound)
}

func TestApplyPromoCode_CaseInsensitive(t *testing.T) {
	l := newTestLedger(t)

	require.NoError(t, l.ApplyPromoCode("dream10"))

	require.NotNil(t, l.Promo())
	assert.Equal(t, "DREAM10", l.Promo().Code)
}

func TestApplyPromoCode_UnknownLeavesPriorPromoUntouched(t *testing.T) {
	l := newTestLedger(t)
	seedSampleCart(t, l)
	require.NoError(t, l.ApplyPromoCode("DREAM10"))

	discountBefore := l.Totals().Discount

	err := l.ApplyPromoCode("BOGUS99")

	assert.ErrorIs(t, err, ErrInvalidPromoCode)
	require.NotNil(t, l.Promo())
	assert.Equal(t, "DREAM10", l.Promo().Code)
	assert.True(t, discountBefore.Equal(l.Totals().Discount))
}

func TestApplyPromoCode_ReplacesOnSuccess(t *testing.T) {
	l := newTestLedger(t)
	require.NoError(t, l.ApplyPromoCode("DREAM10"))
	require.NoError(t, l.ApplyPromoCode("ETHEREAL20"))

	assert.Equal(t, "ETHEREAL20", l.Promo().Code)
}

func TestClearPromoCode(t *testing.T) {
	l := newTestLedger(t)
	require.NoError(t, l.ApplyPromoCode("DREAM10"))

	l.ClearPromoCode()

	assert.Nil(t, l.Promo())

	// Clearing with nothing applied stays legal.
	l.ClearPromoCode()
	assert.Nil(t, l.Promo())
}

func TestSelectShipping(t *testing.T) {
	l := newTestLedger(t)

	require.NoError(t, l.SelectShipping("overnight"))

	require.NotNil(t, l.ShippingOption())
	assert.Equal(t, "overnight", l.ShippingOption().ID)
}

func TestSelectShipping_DefaultsToStandard(t *testing.T) {
	l := newTestLedger(t)

	require.NotNil(t, l.ShippingOption())
	assert.Equal(t, "standard", l.ShippingOption().ID)
}

func TestSelectShipping_UnknownIDIsNoOpByDefault(t *testing.T) {
	l := newTestLedger(t)

	assert.NoError(t, l.SelectShipping("teleport"))
	assert.Equal(t, "standard", l.ShippingOption().ID)
}

func TestSelectShipping_UnknownIDRejectedUnderStrictPolicy(t *testing.T) {
	l := NewLedger("s", DefaultRates(), RejectMissing)

	assert.ErrorIs(t, l.SelectShipping("teleport"), ErrShippingNotFound)
	assert.Equal(t, "standard", l.ShippingOption().ID)
}

func TestCheckoutFlag(t *testing.T) {
	l := newTestLedger(t)

	assert.False(t, l.IsCheckingOut())
	l.BeginCheckout()
	assert.True(t, l.IsCheckingOut())
	l.CancelCheckout()
	assert.False(t, l.IsCheckingOut())
}

func TestClear(t *testing.T) {
	l := newTestLedger(t)
	seedSampleCart(t, l)

	l.Clear()

	assert.Empty(t, l.Items())
	assert.Equal(t, "0.00", l.Totals().Subtotal.StringFixed(2))
}

func TestRestore_RoundTripsThroughJSON(t *testing.T) {
	l := newTestLedger(t)
	seedSampleCart(t, l)
	require.NoError(t, l.ApplyPromoCode("DREAM10"))
	require.NoError(t, l.SelectShipping("express"))
	l.BeginCheckout()

	data, err := json.Marshal(l.State())
	require.NoError(t, err)

	var state State
	require.NoError(t, json.Unmarshal(data, &state))

	restored := Restore(&state, DefaultRates(), IgnoreMissing)

	assert.Len(t, restored.Items(), 2)
	assert.Equal(t, "DREAM10", restored.Promo().Code)
	assert.Equal(t, "express", restored.ShippingOption().ID)
	assert.True(t, restored.IsCheckingOut())
	assert.Equal(t, l.Totals().Total.StringFixed(2), restored.Totals().Total.StringFixed(2))
}
