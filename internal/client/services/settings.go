package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophinventory/internal/client/models"
	"github.com/dmitrijs2005/gophinventory/internal/client/repositories/settings"
	"github.com/dmitrijs2005/gophinventory/internal/common"
	"github.com/dmitrijs2005/gophinventory/internal/envelope"
)

// Preference keys in the settings store. Names match the preference keys of
// the mobile app.
const (
	KeyHideSensitiveData  = "hide_sensitive_data"
	KeyDisableSharing     = "disable_sharing"
	KeyUseDefaultQuantity = "use_default_quantity"
	KeyDefaultQuantity    = "default_quantity"

	secretPrefix = "enc_"
)

// PreferenceNames lists the names accepted by SettingsService.Set.
var PreferenceNames = []string{KeyHideSensitiveData, KeyDisableSharing, KeyUseDefaultQuantity, KeyDefaultQuantity}

type SettingsService interface {
	Load(ctx context.Context) (models.Preferences, error)
	SetHideSensitiveData(ctx context.Context, v bool) error
	SetDisableSharing(ctx context.Context, v bool) error
	SetUseDefaultQuantity(ctx context.Context, v bool) error
	SetDefaultQuantity(ctx context.Context, v int) error

	// Set assigns a preference by name from user text.
	Set(ctx context.Context, name, value string) error

	// Reset drops the stored preferences. Secrets and the key salt stay.
	Reset(ctx context.Context) error

	// SetSecret and GetSecret store values sealed with the envelope key.
	// GetSecret returns "" for a secret that was never set.
	SetSecret(ctx context.Context, name, value string) error
	GetSecret(ctx context.Context, name string) (string, error)
}

type settingsService struct {
	repo settings.Repository
	key  envelope.Key
}

func NewSettingsService(repo settings.Repository, key envelope.Key) SettingsService {
	return &settingsService{repo: repo, key: key}
}

func (s *settingsService) Load(ctx context.Context) (models.Preferences, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return models.Preferences{}, fmt.Errorf("error loading preferences: %w", err)
	}

	p := models.DefaultPreferences()
	p.HideSensitiveData = parseBool(all[KeyHideSensitiveData], p.HideSensitiveData)
	p.DisableSharing = parseBool(all[KeyDisableSharing], p.DisableSharing)
	p.UseDefaultQuantity = parseBool(all[KeyUseDefaultQuantity], p.UseDefaultQuantity)
	if raw, ok := all[KeyDefaultQuantity]; ok {
		if n, err := strconv.Atoi(string(raw)); err == nil && n >= 0 {
			p.DefaultQuantity = n
		}
	}
	return p, nil
}

func parseBool(raw []byte, def bool) bool {
	if raw == nil {
		return def
	}
	v, err := strconv.ParseBool(string(raw))
	if err != nil {
		return def
	}
	return v
}

func (s *settingsService) setBool(ctx context.Context, key string, v bool) error {
	if err := s.repo.Set(ctx, key, []byte(strconv.FormatBool(v))); err != nil {
		return fmt.Errorf("error saving %s: %w", key, err)
	}
	return nil
}

func (s *settingsService) SetHideSensitiveData(ctx context.Context, v bool) error {
	return s.setBool(ctx, KeyHideSensitiveData, v)
}

func (s *settingsService) SetDisableSharing(ctx context.Context, v bool) error {
	return s.setBool(ctx, KeyDisableSharing, v)
}

func (s *settingsService) SetUseDefaultQuantity(ctx context.Context, v bool) error {
	return s.setBool(ctx, KeyUseDefaultQuantity, v)
}

func (s *settingsService) SetDefaultQuantity(ctx context.Context, v int) error {
	if v < 0 {
		return fmt.Errorf("%w: default quantity must not be negative", common.ErrValidation)
	}
	if err := s.repo.Set(ctx, KeyDefaultQuantity, []byte(strconv.Itoa(v))); err != nil {
		return fmt.Errorf("error saving %s: %w", KeyDefaultQuantity, err)
	}
	return nil
}

// ParseDefaultQuantity reads user text the way the settings screen did:
// anything that is not a non-negative whole number becomes 1.
func ParseDefaultQuantity(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 1
	}
	return n
}

func (s *settingsService) Set(ctx context.Context, name, value string) error {
	name = strings.ToLower(strings.TrimSpace(name))

	if name == KeyDefaultQuantity {
		return s.SetDefaultQuantity(ctx, ParseDefaultQuantity(value))
	}

	var set func(context.Context, bool) error
	switch name {
	case KeyHideSensitiveData:
		set = s.SetHideSensitiveData
	case KeyDisableSharing:
		set = s.SetDisableSharing
	case KeyUseDefaultQuantity:
		set = s.SetUseDefaultQuantity
	default:
		return fmt.Errorf("%w: unknown setting %q", common.ErrValidation, name)
	}

	v, err := parseSwitch(value)
	if err != nil {
		return err
	}
	return set(ctx, v)
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "yes", "y":
		return true, nil
	case "off", "no", "n":
		return false, nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("%w: %q is not on/off", common.ErrValidation, s)
	}
	return v, nil
}

func (s *settingsService) Reset(ctx context.Context) error {
	for _, key := range PreferenceNames {
		if err := s.repo.Delete(ctx, key); err != nil {
			return fmt.Errorf("error resetting settings: %w", err)
		}
	}
	return nil
}

func (s *settingsService) SetSecret(ctx context.Context, name, value string) error {
	sealed, err := envelope.SealText([]byte(value), s.key)
	if err != nil {
		return err
	}
	if err := s.repo.Set(ctx, secretPrefix+name, []byte(sealed)); err != nil {
		return fmt.Errorf("error saving secret %s: %w", name, err)
	}
	return nil
}

func (s *settingsService) GetSecret(ctx context.Context, name string) (string, error) {
	raw, err := s.repo.Get(ctx, secretPrefix+name)
	if err != nil {
		return "", fmt.Errorf("error loading secret %s: %w", name, err)
	}
	if raw == nil {
		return "", nil
	}
	plain, err := envelope.OpenText(string(raw), s.key)
	if err != nil {
		return "", fmt.Errorf("error opening secret %s: %w", name, err)
	}
	return string(plain), nil
}
