package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophinventory/internal/client/services"
	"github.com/dmitrijs2005/gophinventory/internal/common"
)

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// ShowSettings prints the stored preferences.
func (a *App) ShowSettings(ctx context.Context) error {
	p, err := a.settings.Load(ctx)
	if err != nil {
		return err
	}
	a.println(fmt.Sprintf("%-22s %s", services.KeyHideSensitiveData, onOff(p.HideSensitiveData)))
	a.println(fmt.Sprintf("%-22s %s", services.KeyDisableSharing, onOff(p.DisableSharing)))
	a.println(fmt.Sprintf("%-22s %s", services.KeyUseDefaultQuantity, onOff(p.UseDefaultQuantity)))
	a.println(fmt.Sprintf("%-22s %d", services.KeyDefaultQuantity, p.DefaultQuantity))
	return nil
}

// SetSetting stores one preference from user text.
func (a *App) SetSetting(ctx context.Context, name, value string) error {
	if err := a.settings.Set(ctx, name, value); err != nil {
		return err
	}
	a.println(success("Saved " + name))
	return nil
}

func (a *App) Settings(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.ShowSettings(ctx)
	}

	switch strings.ToLower(args[0]) {
	case "set":
		if len(args) != 3 {
			return fmt.Errorf("%w: usage: settings set <%s> <value>", common.ErrValidation,
				strings.Join(services.PreferenceNames, "|"))
		}
		return a.SetSetting(ctx, args[1], args[2])
	case "reset":
		ok, err := GetConfirm(a.reader, "Reset all settings to defaults?", false, a.out)
		if err != nil || !ok {
			return err
		}
		if err := a.settings.Reset(ctx); err != nil {
			return err
		}
		a.println(success("Settings reset"))
		return nil
	default:
		return fmt.Errorf("%w: unknown settings command %q", common.ErrValidation, args[0])
	}
}
