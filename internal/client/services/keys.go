package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophinventory/internal/client/repositories/settings"
	"github.com/dmitrijs2005/gophinventory/internal/common"
	"github.com/dmitrijs2005/gophinventory/internal/envelope"
	"github.com/dmitrijs2005/gophinventory/internal/logging"
)

// Key derivation modes accepted by KeyService.Resolve.
const (
	KeyModeLegacy = "legacy"
	KeyModeArgon2 = "argon2"

	keySaltSetting = "key_salt"
	keySaltSize    = 16
)

// PromptFunc asks the user for a passphrase.
type PromptFunc func() ([]byte, error)

// KeyService turns configuration into the envelope key.
type KeyService interface {
	Resolve(ctx context.Context, mode, passphrase string, prompt PromptFunc) (envelope.Key, error)
}

type keyService struct {
	repo settings.Repository
	log  logging.Logger
}

func NewKeyService(repo settings.Repository, log logging.Logger) KeyService {
	return &keyService{repo: repo, log: log}
}

// Resolve returns the legacy fixed-width key or an argon2id-derived one.
// In argon2 mode an empty passphrase triggers prompt, and the salt is
// generated on first use and kept in the settings store.
func (s *keyService) Resolve(ctx context.Context, mode, passphrase string, prompt PromptFunc) (envelope.Key, error) {
	switch mode {
	case "", KeyModeLegacy:
		if passphrase == "" {
			s.log.Warn(ctx, "using the built-in envelope key; files are readable by anyone with this program")
			return envelope.DefaultKey(), nil
		}
		return envelope.LegacyKey(passphrase), nil

	case KeyModeArgon2:
		pw := []byte(passphrase)
		if len(pw) == 0 {
			if prompt == nil {
				return envelope.Key{}, fmt.Errorf("%w: argon2 key mode needs a passphrase", common.ErrValidation)
			}
			var err error
			if pw, err = prompt(); err != nil {
				return envelope.Key{}, fmt.Errorf("error reading passphrase: %w", err)
			}
			defer common.WipeByteArray(pw)
		}
		if len(pw) == 0 {
			return envelope.Key{}, fmt.Errorf("%w: empty passphrase", common.ErrValidation)
		}

		salt, err := s.salt(ctx)
		if err != nil {
			return envelope.Key{}, err
		}
		return envelope.DeriveKey(pw, salt), nil

	default:
		return envelope.Key{}, fmt.Errorf("%w: unknown key mode %q", common.ErrValidation, mode)
	}
}

func (s *keyService) salt(ctx context.Context) ([]byte, error) {
	salt, err := s.repo.Get(ctx, keySaltSetting)
	if err != nil {
		return nil, fmt.Errorf("error loading key salt: %w", err)
	}
	if salt != nil {
		return salt, nil
	}

	salt = common.GenerateRandByteArray(keySaltSize)
	if err := s.repo.Set(ctx, keySaltSetting, salt); err != nil {
		return nil, fmt.Errorf("error saving key salt: %w", err)
	}
	s.log.Info(ctx, "generated new key salt")
	return salt, nil
}
