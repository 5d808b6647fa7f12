package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/salespoint/checkout-api/internal/domain/entity"
	"github.com/salespoint/checkout-api/internal/domain/enum"
	"github.com/salespoint/checkout-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// LineTotals is the per-line result of the totals computation
type LineTotals struct {
	ProductID uuid.UUID       `json:"product_id"`
	Gross     decimal.Decimal `json:"gross"`
	Discount  decimal.Decimal `json:"discount"`
	Net       decimal.Decimal `json:"net"`
	Tax       decimal.Decimal `json:"tax"`
}

// TotalsBreakdown is the full result of the totals computation.
// ActualSubtotal is the pre-discount gross; Subtotal is the post-discount,
// post-inclusive-tax-extraction base; GrandTotal = Subtotal + TotalTax.
type TotalsBreakdown struct {
	ActualSubtotal decimal.Decimal            `json:"actual_subtotal"`
	Subtotal       decimal.Decimal            `json:"subtotal"`
	TotalDiscount  decimal.Decimal            `json:"total_discount"`
	TotalTax       decimal.Decimal            `json:"total_tax"`
	GrandTotal     decimal.Decimal            `json:"grand_total"`
	TaxBreakdown   map[string]decimal.Decimal `json:"tax_breakdown"`
	Lines          []LineTotals               `json:"lines"`
}

// ComputeTotals derives a cart's money figures from its lines and the tax
// table. It is deterministic and side-effect free: the same inputs always
// produce the same decimals, so the same figures can be recomputed at
// settlement without risking a payment-amount mismatch.
//
// Taxes attached to a line are applied in attachment order. An exclusive tax
// is added on top of the current line base; an inclusive tax is extracted
// out of it, shrinking the base seen by any subsequent tax on the same line.
// A fixed discount larger than the line gross is clamped to the gross, so a
// line never goes negative.
func ComputeTotals(items []entity.CartItem, taxTable map[uuid.UUID]entity.Tax) (*TotalsBreakdown, error) {
	result := &TotalsBreakdown{
		ActualSubtotal: decimal.Zero,
		Subtotal:       decimal.Zero,
		TotalDiscount:  decimal.Zero,
		TotalTax:       decimal.Zero,
		GrandTotal:     decimal.Zero,
		TaxBreakdown:   make(map[string]decimal.Decimal),
		Lines:          make([]LineTotals, 0, len(items)),
	}

	for _, item := range items {
		lineGross := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		result.ActualSubtotal = result.ActualSubtotal.Add(lineGross)

		discount := lineDiscount(item, lineGross)
		result.TotalDiscount = result.TotalDiscount.Add(discount)

		lineNet := lineGross.Sub(discount)
		lineTax := decimal.Zero

		for _, taxID := range item.TaxIDs {
			tax, ok := taxTable[taxID]
			if !ok {
				return nil, apperror.NewBadRequestError(
					fmt.Sprintf("Unknown tax %s on product %s", taxID, item.ProductName))
			}

			var taxAmt decimal.Decimal
			switch tax.Type {
			case enum.TaxTypeInclusive:
				// Extract the tax already embedded in the base:
				// taxAmt = net - net/(1 + rate/100)
				divisor := decimal.NewFromInt(1).Add(tax.Rate.Div(oneHundred))
				taxAmt = lineNet.Sub(lineNet.Div(divisor))
				lineNet = lineNet.Sub(taxAmt)
			default:
				taxAmt = lineNet.Mul(tax.Rate).Div(oneHundred)
			}

			result.TaxBreakdown[tax.Name] = result.TaxBreakdown[tax.Name].Add(taxAmt)
			lineTax = lineTax.Add(taxAmt)
		}

		result.Subtotal = result.Subtotal.Add(lineNet)
		result.TotalTax = result.TotalTax.Add(lineTax)
		result.Lines = append(result.Lines, LineTotals{
			ProductID: item.ProductID,
			Gross:     lineGross,
			Discount:  discount,
			Net:       lineNet,
			Tax:       lineTax,
		})
	}

	result.GrandTotal = result.Subtotal.Add(result.TotalTax)
	return result, nil
}

// lineDiscount resolves a line's discount against its gross amount
func lineDiscount(item entity.CartItem, lineGross decimal.Decimal) decimal.Decimal {
	if item.DiscountType == enum.DiscountTypePercentage {
		return lineGross.Mul(item.DiscountAmount).Div(oneHundred)
	}
	// Fixed discounts are clamped to the line gross
	if item.DiscountAmount.GreaterThan(lineGross) {
		return lineGross
	}
	return item.DiscountAmount
}
