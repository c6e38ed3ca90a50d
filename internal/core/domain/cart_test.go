package domain

import "testing"

func TestCart_AddLineMergesSameProduct(t *testing.T) {
	cart := NewCart("cust_1")
	cart.AddLine(CartLine{ProductID: "p1", Name: "Honey", ListPrice: 5000, Quantity: 2})
	cart.AddLine(CartLine{ProductID: "p1", Name: "Honey", ListPrice: 5000, Quantity: 1})

	if len(cart.Lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(cart.Lines))
	}
	if cart.Lines[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", cart.Lines[0].Quantity)
	}
	if got := cart.Totals().Subtotal; got != 15000 {
		t.Fatalf("expected subtotal 15000, got %d", got)
	}
}

func TestCart_AddLinePreservesInsertionOrder(t *testing.T) {
	cart := NewCart("cust_1")
	cart.AddLine(CartLine{ProductID: "p1", ListPrice: 100, Quantity: 1})
	cart.AddLine(CartLine{ProductID: "p2", ListPrice: 200, Quantity: 1})
	cart.AddLine(CartLine{ProductID: "p1", ListPrice: 100, Quantity: 1})

	if cart.Lines[0].ProductID != "p1" || cart.Lines[1].ProductID != "p2" {
		t.Fatalf("merge reordered lines: %v", cart.Lines)
	}
}

func TestCart_AddLineClampsToStock(t *testing.T) {
	cart := NewCart("cust_1")
	cart.AddLine(CartLine{ProductID: "p1", ListPrice: 100, Quantity: 3, Stock: 4})
	cart.AddLine(CartLine{ProductID: "p1", ListPrice: 100, Quantity: 5, Stock: 4})

	if cart.Lines[0].Quantity != 4 {
		t.Fatalf("expected quantity clamped to stock 4, got %d", cart.Lines[0].Quantity)
	}
}

func TestCart_AddLineZeroQuantityBecomesOne(t *testing.T) {
	cart := NewCart("cust_1")
	cart.AddLine(CartLine{ProductID: "p1", ListPrice: 100})

	if cart.Lines[0].Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", cart.Lines[0].Quantity)
	}
}

func TestCart_SetQuantityZeroRemovesLine(t *testing.T) {
	cart := NewCart("cust_1")
	cart.AddLine(CartLine{ProductID: "p1", ListPrice: 100, Quantity: 2})
	cart.AddLine(CartLine{ProductID: "p2", ListPrice: 200, Quantity: 1})

	if !cart.SetQuantity("p1", 0) {
		t.Fatalf("expected SetQuantity to find p1")
	}
	if len(cart.Lines) != 1 || cart.Lines[0].ProductID != "p2" {
		t.Fatalf("expected only p2 to remain, got %v", cart.Lines)
	}
}

func TestCart_SetQuantityUnknownProduct(t *testing.T) {
	cart := NewCart("cust_1")
	if cart.SetQuantity("missing", 3) {
		t.Fatalf("expected false for unknown product")
	}
}

func TestCartLine_UnitPricePrefersSalePrice(t *testing.T) {
	line := CartLine{ListPrice: 5000, SalePrice: 4000}
	if got := line.UnitPrice(); got != 4000 {
		t.Fatalf("expected sale price 4000, got %d", got)
	}

	line.SalePrice = 0
	if got := line.UnitPrice(); got != 5000 {
		t.Fatalf("expected list price 5000, got %d", got)
	}
}

func TestCart_TotalsEmptyCartSkipsDeliveryFee(t *testing.T) {
	cart := NewCart("cust_1")
	cart.DeliveryFee = 500

	totals := cart.Totals()
	if totals.DeliveryFee != 0 {
		t.Fatalf("empty cart must not carry a delivery fee, got %d", totals.DeliveryFee)
	}
	if totals.Total != 0 {
		t.Fatalf("expected total 0, got %d", totals.Total)
	}
}

func TestCart_TotalsDerivation(t *testing.T) {
	cart := NewCart("cust_1")
	cart.DeliveryFee = 500
	cart.Discount = 1000
	cart.AddLine(CartLine{ProductID: "p1", ListPrice: 5000, SalePrice: 4000, Quantity: 2})
	cart.AddLine(CartLine{ProductID: "p2", ListPrice: 3000, Quantity: 1})

	totals := cart.Totals()
	if totals.Subtotal != 11000 {
		t.Fatalf("expected subtotal 11000, got %d", totals.Subtotal)
	}
	if totals.ItemCount != 3 {
		t.Fatalf("expected item count 3, got %d", totals.ItemCount)
	}
	if totals.Total != 10500 {
		t.Fatalf("expected total 10500, got %d", totals.Total)
	}
}

func TestCart_TotalsFlooredAtZero(t *testing.T) {
	cart := NewCart("cust_1")
	cart.Discount = 100000
	cart.AddLine(CartLine{ProductID: "p1", ListPrice: 100, Quantity: 1})

	if got := cart.Totals().Total; got != 0 {
		t.Fatalf("discount must not drive total negative, got %d", got)
	}
}

func TestCart_ClearLines(t *testing.T) {
	cart := NewCart("cust_1")
	cart.AddLine(CartLine{ProductID: "p1", ListPrice: 100, Quantity: 1})
	cart.ClearLines()

	if len(cart.Lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(cart.Lines))
	}
	if got := cart.Totals(); got.Total != 0 || got.ItemCount != 0 {
		t.Fatalf("expected zeroed totals, got %+v", got)
	}
}
