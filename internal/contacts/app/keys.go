package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/contacts/pkg/jwtx"
)

// InitSessionKeys creates the KeyManager that signs and verifies session
// tokens.
//
// HS256 with CONTACTS_JWT_SECRET uses that secret as the only key, so tokens
// survive restarts and several instances can share it. Without a secret, or
// with EdDSA, NumKeys keys are generated in memory and every token becomes
// invalid when the service restarts. EdDSA public keys are published at
// /.well-known/jwks.json.
func InitSessionKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	var secret []byte
	if cfg.Algorithm == jwtx.AlgorithmHS256 && cfg.Secret != "" {
		if len(cfg.Secret) < jwtx.MinHS256SecretLen {
			return nil, fmt.Errorf("CONTACTS_JWT_SECRET must be at least %d bytes", jwtx.MinHS256SecretLen)
		}
		secret = []byte(cfg.Secret)
	}

	logger.Info("initializing key manager",
		"algorithm", cfg.Algorithm,
		"num_keys", cfg.NumKeys,
		"shared_secret", secret != nil,
	)

	keyManager, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Algorithm: cfg.Algorithm,
		Issuer:    cfg.Issuer,
		Secret:    secret,
		NumKeys:   cfg.NumKeys,
	})
	if err != nil {
		return nil, err
	}

	kids := make([]string, 0, keyManager.NumSigners())
	for _, s := range keyManager.GetSigners() {
		kids = append(kids, s.KID())
	}
	logger.Info("signing keys ready",
		"algorithm", keyManager.Algorithm(),
		"kids", kids,
		"issuer", cfg.Issuer,
	)

	if secret == nil {
		logger.Warn("session keys are ephemeral, tokens will not survive a restart")
	}

	return keyManager, nil
}
