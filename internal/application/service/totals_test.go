package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/salespoint/checkout-api/internal/domain/entity"
	"github.com/salespoint/checkout-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func taxTable(taxes ...entity.Tax) map[uuid.UUID]entity.Tax {
	table := make(map[uuid.UUID]entity.Tax, len(taxes))
	for _, tax := range taxes {
		table[tax.ID] = tax
	}
	return table
}

func TestComputeTotals_PercentageDiscountWithExclusiveTax(t *testing.T) {
	vat := entity.Tax{ID: uuid.New(), Name: "VAT", Rate: dec("15"), Type: enum.TaxTypeExclusive}
	items := []entity.CartItem{
		{
			ProductID:      uuid.New(),
			ProductName:    "Widget",
			Quantity:       2,
			UnitPrice:      dec("100"),
			TaxIDs:         entity.UUIDSlice{vat.ID},
			DiscountType:   enum.DiscountTypePercentage,
			DiscountAmount: dec("10"),
		},
	}

	totals, err := ComputeTotals(items, taxTable(vat))
	require.NoError(t, err)

	assert.True(t, totals.ActualSubtotal.Equal(dec("200")), "gross %s", totals.ActualSubtotal)
	assert.True(t, totals.TotalDiscount.Equal(dec("20")), "discount %s", totals.TotalDiscount)
	assert.True(t, totals.Subtotal.Equal(dec("180")), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.TotalTax.Equal(dec("27")), "tax %s", totals.TotalTax)
	assert.True(t, totals.GrandTotal.Equal(dec("207")), "grand %s", totals.GrandTotal)
	assert.True(t, totals.TaxBreakdown["VAT"].Equal(dec("27")))
}

func TestComputeTotals_InclusiveTaxIsExtractedNotAdded(t *testing.T) {
	vat := entity.Tax{ID: uuid.New(), Name: "VAT", Rate: dec("15"), Type: enum.TaxTypeInclusive}
	items := []entity.CartItem{
		{
			ProductID:      uuid.New(),
			ProductName:    "Widget",
			Quantity:       2,
			UnitPrice:      dec("100"),
			TaxIDs:         entity.UUIDSlice{vat.ID},
			DiscountType:   enum.DiscountTypePercentage,
			DiscountAmount: dec("10"),
		},
	}

	totals, err := ComputeTotals(items, taxTable(vat))
	require.NoError(t, err)

	// tax = 180 - 180/1.15; the grand total stays at the discounted price
	assert.Equal(t, "23.48", totals.TotalTax.StringFixed(2))
	assert.Equal(t, "156.52", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "180.00", totals.GrandTotal.StringFixed(2))
}

func TestComputeTotals_TaxOrderMatters(t *testing.T) {
	inclusive := entity.Tax{ID: uuid.New(), Name: "Inclusive", Rate: dec("10"), Type: enum.TaxTypeInclusive}
	exclusive := entity.Tax{ID: uuid.New(), Name: "Exclusive", Rate: dec("10"), Type: enum.TaxTypeExclusive}
	table := taxTable(inclusive, exclusive)

	base := entity.CartItem{
		ProductID: uuid.New(),
		Quantity:  1,
		UnitPrice: dec("110"),
	}

	inclusiveFirst := base
	inclusiveFirst.TaxIDs = entity.UUIDSlice{inclusive.ID, exclusive.ID}
	exclusiveFirst := base
	exclusiveFirst.TaxIDs = entity.UUIDSlice{exclusive.ID, inclusive.ID}

	first, err := ComputeTotals([]entity.CartItem{inclusiveFirst}, table)
	require.NoError(t, err)
	second, err := ComputeTotals([]entity.CartItem{exclusiveFirst}, table)
	require.NoError(t, err)

	// Inclusive first: extract 10 from 110, then 10% of 100 on top.
	assert.Equal(t, "100.00", first.Subtotal.StringFixed(2))
	assert.Equal(t, "20.00", first.TotalTax.StringFixed(2))
	assert.Equal(t, "120.00", first.GrandTotal.StringFixed(2))

	// Exclusive first sees the full 110 as its base, so the figures differ.
	assert.NotEqual(t, first.GrandTotal.StringFixed(2), second.GrandTotal.StringFixed(2))
}

func TestComputeTotals_FixedDiscountClampedToLineGross(t *testing.T) {
	items := []entity.CartItem{
		{
			ProductID:      uuid.New(),
			Quantity:       1,
			UnitPrice:      dec("50"),
			DiscountType:   enum.DiscountTypeFixed,
			DiscountAmount: dec("80"),
		},
	}

	totals, err := ComputeTotals(items, taxTable())
	require.NoError(t, err)

	assert.True(t, totals.TotalDiscount.Equal(dec("50")))
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.GrandTotal.IsZero())
}

func TestComputeTotals_UnknownTaxRejected(t *testing.T) {
	items := []entity.CartItem{
		{
			ProductID:   uuid.New(),
			ProductName: "Widget",
			Quantity:    1,
			UnitPrice:   dec("10"),
			TaxIDs:      entity.UUIDSlice{uuid.New()},
		},
	}

	_, err := ComputeTotals(items, taxTable())
	require.Error(t, err)
}

func TestComputeTotals_MultiLineAggregation(t *testing.T) {
	vat := entity.Tax{ID: uuid.New(), Name: "VAT", Rate: dec("16"), Type: enum.TaxTypeExclusive}
	levy := entity.Tax{ID: uuid.New(), Name: "Levy", Rate: dec("2"), Type: enum.TaxTypeExclusive}
	items := []entity.CartItem{
		{
			ProductID: uuid.New(),
			Quantity:  3,
			UnitPrice: dec("25"),
			TaxIDs:    entity.UUIDSlice{vat.ID},
		},
		{
			ProductID:      uuid.New(),
			Quantity:       1,
			UnitPrice:      dec("100"),
			TaxIDs:         entity.UUIDSlice{vat.ID, levy.ID},
			DiscountType:   enum.DiscountTypeFixed,
			DiscountAmount: dec("20"),
		},
	}

	totals, err := ComputeTotals(items, taxTable(vat, levy))
	require.NoError(t, err)

	// Line 1: 75 net, 12.00 VAT. Line 2: 80 net, 12.80 VAT + 1.60 levy.
	assert.Equal(t, "175.00", totals.ActualSubtotal.StringFixed(2))
	assert.Equal(t, "155.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "26.40", totals.TotalTax.StringFixed(2))
	assert.Equal(t, "181.40", totals.GrandTotal.StringFixed(2))
	assert.Equal(t, "24.80", totals.TaxBreakdown["VAT"].StringFixed(2))
	assert.Equal(t, "1.60", totals.TaxBreakdown["Levy"].StringFixed(2))
	require.Len(t, totals.Lines, 2)
}

func TestComputeTotals_Deterministic(t *testing.T) {
	vat := entity.Tax{ID: uuid.New(), Name: "VAT", Rate: dec("7.5"), Type: enum.TaxTypeInclusive}
	items := []entity.CartItem{
		{
			ProductID:      uuid.New(),
			Quantity:       7,
			UnitPrice:      dec("13.99"),
			TaxIDs:         entity.UUIDSlice{vat.ID},
			DiscountType:   enum.DiscountTypePercentage,
			DiscountAmount: dec("3"),
		},
	}
	table := taxTable(vat)

	first, err := ComputeTotals(items, table)
	require.NoError(t, err)
	second, err := ComputeTotals(items, table)
	require.NoError(t, err)

	assert.True(t, first.GrandTotal.Equal(second.GrandTotal))
	assert.True(t, first.TotalTax.Equal(second.TotalTax))
	assert.True(t, first.TotalDiscount.Equal(second.TotalDiscount))
}

func TestComputeTotals_EmptyCart(t *testing.T) {
	totals, err := ComputeTotals(nil, taxTable())
	require.NoError(t, err)

	assert.True(t, totals.GrandTotal.IsZero())
	assert.Empty(t, totals.Lines)
}
