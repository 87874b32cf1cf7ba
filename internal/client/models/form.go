package models

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophinventory/internal/common"
)

var (
	emailRe = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+$`)
	phoneRe = regexp.MustCompile(`^[+]?[0-9]{10,15}$`)
)

// ItemForm is the user-editable text representation of an Item.
type ItemForm struct {
	Name          string
	Price         string
	Quantity      string
	SupplierName  string
	SupplierEmail string
	SupplierPhone string
}

// FormFromItem fills a form with the values of an existing item.
func FormFromItem(i Item) ItemForm {
	return ItemForm{
		Name:          i.Name,
		Price:         strconv.FormatFloat(i.Price, 'f', -1, 64),
		Quantity:      strconv.Itoa(i.Quantity),
		SupplierName:  i.SupplierName,
		SupplierEmail: i.SupplierEmail,
		SupplierPhone: i.SupplierPhone,
	}
}

// ValidationErrors holds one message per invalid field; empty strings mean
// the field is fine. It satisfies error and unwraps to common.ErrValidation.
type ValidationErrors struct {
	Name     string
	Price    string
	Quantity string
	Email    string
	Phone    string
}

// Valid reports whether no field has an error.
func (v ValidationErrors) Valid() bool {
	return v == ValidationErrors{}
}

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, m := range []string{v.Name, v.Price, v.Quantity, v.Email, v.Phone} {
		if m != "" {
			msgs = append(msgs, m)
		}
	}
	return "invalid item: " + strings.Join(msgs, "; ")
}

func (v ValidationErrors) Unwrap() error {
	return common.ErrValidation
}

func parsePrice(s string) (float64, bool) {
	p, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, false
	}
	return p, true
}

func parseQuantity(s string) (int, bool) {
	q, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, false
	}
	return int(q), true
}

// Validate checks every field and returns the collected messages.
func (f ItemForm) Validate() ValidationErrors {
	var v ValidationErrors

	if strings.TrimSpace(f.Name) == "" {
		v.Name = "name is required"
	}

	if strings.TrimSpace(f.Price) == "" {
		v.Price = "price is required"
	} else if p, ok := parsePrice(f.Price); !ok {
		v.Price = "price must be a number"
	} else if p < 0 {
		v.Price = "price must not be negative"
	}

	if strings.TrimSpace(f.Quantity) == "" {
		v.Quantity = "quantity is required"
	} else if q, ok := parseQuantity(f.Quantity); !ok {
		v.Quantity = "quantity must be a whole number"
	} else if q < 0 {
		v.Quantity = "quantity must not be negative"
	}

	if email := strings.TrimSpace(f.SupplierEmail); email != "" && !emailRe.MatchString(email) {
		v.Email = "supplier email is malformed"
	}
	if phone := strings.TrimSpace(f.SupplierPhone); phone != "" && !phoneRe.MatchString(phone) {
		v.Phone = "supplier phone is malformed"
	}

	return v
}

// ToItem converts the form into an Item with the given id and provenance.
// Unparseable numbers become zero, so call Validate first.
func (f ItemForm) ToItem(id int64, provenance Provenance) Item {
	price, _ := parsePrice(f.Price)
	quantity, _ := parseQuantity(f.Quantity)
	return Item{
		ID:            id,
		Name:          strings.TrimSpace(f.Name),
		Price:         price,
		Quantity:      quantity,
		SupplierName:  strings.TrimSpace(f.SupplierName),
		SupplierEmail: strings.TrimSpace(f.SupplierEmail),
		SupplierPhone: strings.TrimSpace(f.SupplierPhone),
		Provenance:    provenance,
	}
}
