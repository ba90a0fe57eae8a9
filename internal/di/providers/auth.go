package providers

import (
	"encoding/hex"

	"github.com/samber/do/v2"

	"github.com/bookshelfapp/bookshelf-server/internal/auth"
	"github.com/bookshelfapp/bookshelf-server/internal/config"
	"github.com/bookshelfapp/bookshelf-server/internal/logger"
	"github.com/bookshelfapp/bookshelf-server/internal/service"
)

// AuthKey wraps the token-signing key bytes.
type AuthKey []byte

// ProvideAuthKey resolves the token-signing key: TOKEN_SECRET from the
// environment when set, otherwise a key file under the data path
// (generated on first start).
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Auth.TokenSecret != "" {
		key, err := hex.DecodeString(cfg.Auth.TokenSecret)
		if err != nil {
			return nil, err
		}
		log.Info("token-signing key loaded from environment")
		return AuthKey(key), nil
	}

	key, err := auth.LoadOrGenerateKey(cfg.Store.DataPath)
	if err != nil {
		return nil, err
	}
	log.Info("token-signing key loaded from data path")
	return AuthKey(key), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	key := do.MustInvoke[AuthKey](i)
	return auth.NewTokenService(hex.EncodeToString([]byte(key)))
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokens, log.Logger), nil
}
