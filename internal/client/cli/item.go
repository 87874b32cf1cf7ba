package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophinventory/internal/client/models"
	"github.com/dmitrijs2005/gophinventory/internal/common"
)

// clearValue typed into a form field empties it.
const clearValue = "-"

func (a *App) readID(args []string, prompt string) (int64, error) {
	var raw string
	if len(args) > 0 {
		raw = args[0]
	} else {
		var err error
		if raw, err = GetSimpleText(a.reader, prompt, a.out); err != nil {
			return 0, err
		}
	}
	return parseID(raw)
}

// parseID accepts "12" and "#12".
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(raw), "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not an item id", common.ErrValidation, raw)
	}
	return id, nil
}

func (a *App) List(ctx context.Context) error {
	items, err := a.items.List(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		a.println("No items yet. Use 'add' to create one.")
		return nil
	}

	a.println(fmt.Sprintf("%-5s %-30s %12s %8s", "ID", "NAME", "PRICE", "QTY"))
	for _, i := range items {
		qty := strconv.Itoa(i.Quantity)
		if i.OutOfStock() {
			qty = "sold out"
		}
		a.println(fmt.Sprintf("%-5d %-30s %12s %8s", i.ID, truncate(i.Name, 30), i.FormattedPrice(), qty))
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := a.readID(args, "Enter item id to show")
	if err != nil {
		return err
	}
	item, err := a.items.Get(ctx, id)
	if err != nil {
		return err
	}
	prefs, err := a.settings.Load(ctx)
	if err != nil {
		return err
	}
	if prefs.HideSensitiveData {
		item = item.Masked()
	}

	a.println(fmt.Sprintf("#%d %s", item.ID, item.Name))
	a.println("Price:          " + item.FormattedPrice())
	a.println("Quantity:       " + strconv.Itoa(item.Quantity))
	a.println("Supplier:       " + item.SupplierName)
	a.println("Supplier email: " + item.SupplierEmail)
	a.println("Supplier phone: " + item.SupplierPhone)
	a.println("Source:         " + item.ProvenanceLabel())
	return nil
}

// fillForm prompts for every field. Enter keeps the current value, "-"
// clears it.
func (a *App) fillForm(form models.ItemForm) (models.ItemForm, error) {
	fields := []struct {
		label string
		value *string
	}{
		{"Name", &form.Name},
		{"Price", &form.Price},
		{"Quantity", &form.Quantity},
		{"Supplier name", &form.SupplierName},
		{"Supplier email", &form.SupplierEmail},
		{"Supplier phone", &form.SupplierPhone},
	}

	for _, f := range fields {
		prompt := f.label
		if *f.value != "" {
			prompt += " [" + *f.value + "]"
		}
		v, err := GetSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return form, err
		}
		switch v {
		case "":
		case clearValue:
			*f.value = ""
		default:
			*f.value = v
		}
	}
	return form, nil
}

func (a *App) printValidation(v models.ValidationErrors) {
	for _, msg := range []string{v.Name, v.Price, v.Quantity, v.Email, v.Phone} {
		if msg != "" {
			a.println(failure(msg))
		}
	}
}

// editLoop fills the form and calls save until it succeeds or the user
// gives up after a validation failure.
func (a *App) editLoop(form models.ItemForm, save func(models.ItemForm) (models.Item, error)) error {
	for {
		var err error
		if form, err = a.fillForm(form); err != nil {
			return err
		}

		item, err := save(form)
		var v models.ValidationErrors
		if errors.As(err, &v) {
			a.printValidation(v)
			again, err := GetConfirm(a.reader, "Fix and try again?", true, a.out)
			if err != nil || !again {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}

		a.println(success(fmt.Sprintf("Saved #%d %s", item.ID, item.Name)))
		return nil
	}
}

func (a *App) Add(ctx context.Context) error {
	form, err := a.items.NewForm(ctx)
	if err != nil {
		return err
	}
	return a.editLoop(form, func(f models.ItemForm) (models.Item, error) {
		return a.items.Create(ctx, f)
	})
}

func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := a.readID(args, "Enter item id to edit")
	if err != nil {
		return err
	}
	item, err := a.items.Get(ctx, id)
	if err != nil {
		return err
	}
	return a.editLoop(models.FormFromItem(item), func(f models.ItemForm) (models.Item, error) {
		return a.items.Update(ctx, id, f)
	})
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := a.readID(args, "Enter item id to delete")
	if err != nil {
		return err
	}
	item, err := a.items.Get(ctx, id)
	if err != nil {
		return err
	}

	ok, err := GetConfirm(a.reader, fmt.Sprintf("Delete #%d %s?", item.ID, item.Name), false, a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.items.Delete(ctx, id); err != nil {
		return err
	}
	a.println(success("Deleted " + item.Name))
	return nil
}

func (a *App) Sell(ctx context.Context, args []string) error {
	id, err := a.readID(args, "Enter item id to sell")
	if err != nil {
		return err
	}
	item, err := a.items.Sell(ctx, id)
	if err != nil {
		return err
	}
	a.println(success(fmt.Sprintf("Sold one %s, %d left", item.Name, item.Quantity)))
	return nil
}
