package validate_test

import (
	"testing"

	"github.com/shashiranjanraj/maison/pkg/validate"
)

type productInput struct {
	Title    string  `json:"title"    validate:"required,max=255"`
	Price    float64 `json:"price"    validate:"gte=0"`
	Category string  `json:"category" validate:"nullable,in=seating,tables,decor,textiles"`
	Image    string  `json:"image"    validate:"nullable,url"`
	StockQty int     `json:"stock_qty" validate:"integer,gte=0,lte=100000"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(productInput{
		Title:    "Linen Armchair",
		Price:    199.99,
		Category: "seating",
		Image:    "", // nullable — allowed to be empty
		StockQty: 5,
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(productInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["title"]; !ok {
		t.Error("expected title to be required")
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Price float64 `json:"price" validate:"gte=0,lte=100000"`
	}
	if errs := validate.Struct(in{Price: -1}); !validate.HasErrors(errs) {
		t.Error("expected negative price to fail")
	}
	if errs := validate.Struct(in{Price: 200000}); !validate.HasErrors(errs) {
		t.Error("expected price above bound to fail")
	}
	if errs := validate.Struct(in{Price: 49.95}); validate.HasErrors(errs) {
		t.Errorf("expected in-range price to pass, got: %v", errs)
	}
}

func TestURLRule(t *testing.T) {
	type in struct {
		Image string `json:"image" validate:"required,url"`
	}
	if errs := validate.Struct(in{Image: "not-a-url"}); !validate.HasErrors(errs) {
		t.Error("expected invalid URL to fail")
	}
	if errs := validate.Struct(in{Image: "https://cdn.example.com/p.jpg"}); validate.HasErrors(errs) {
		t.Errorf("expected valid URL to pass, got: %v", errs)
	}
}

func TestInRule(t *testing.T) {
	type in struct {
		Category string `json:"category" validate:"required,in=seating,tables,decor"`
	}
	if errs := validate.Struct(in{Category: "vehicles"}); !validate.HasErrors(errs) {
		t.Error("expected unknown category to fail")
	}
	if errs := validate.Struct(in{Category: "tables"}); validate.HasErrors(errs) {
		t.Errorf("expected listed category to pass, got: %v", errs)
	}
}

func TestMinMaxStringLength(t *testing.T) {
	type in struct {
		SKU string `json:"sku" validate:"required,min=3,max=12"`
	}
	if errs := validate.Struct(in{SKU: "ab"}); !validate.HasErrors(errs) {
		t.Error("expected short SKU to fail")
	}
	if errs := validate.Struct(in{SKU: "CH-LIN-01"}); validate.HasErrors(errs) {
		t.Errorf("expected valid SKU to pass, got: %v", errs)
	}
}

func TestNullableSkipsRules(t *testing.T) {
	type in struct {
		Image string `json:"image" validate:"nullable,url"`
	}
	if errs := validate.Struct(in{}); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable field to pass, got: %v", errs)
	}
}
