package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// MinSecretLength é o tamanho mínimo aceito para a chave HMAC
const MinSecretLength = 32

var (
	ErrSecretTooShort = errors.New("jwt secret key muito curta")
	ErrTokenInvalid   = errors.New("token inválido")
	ErrTokenExpired   = errors.New("token expirado")
)

// Claims carrega a identidade do usuário dentro do token
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// KeyManager emite e verifica tokens HS256
type KeyManager struct {
	secretKey []byte
	ttl       time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// NewKeyManager cria um gerenciador de chaves a partir do segredo configurado
func NewKeyManager(secret string, ttl time.Duration, logger *zap.Logger) (*KeyManager, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrSecretTooShort
	}
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &KeyManager{
		secretKey: []byte(secret),
		ttl:       ttl,
		logger:    logger,
		now:       time.Now,
	}, nil
}

// TTL retorna a validade dos tokens emitidos
func (km *KeyManager) TTL() time.Duration {
	return km.ttl
}

// GenerateToken emite um token para o usuário com expiração em now+ttl
func (km *KeyManager) GenerateToken(userID uint) (string, error) {
	now := km.now()

	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(km.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(km.secretKey)
	if err != nil {
		km.logger.Error("falha ao gerar token JWT", zap.Error(err))
		return "", err
	}

	return tokenString, nil
}

// VerifyToken valida assinatura e expiração. Token expirado retorna ErrTokenExpired,
// qualquer outra falha retorna ErrTokenInvalid.
func (km *KeyManager) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return km.secretKey, nil
	}, jwt.WithTimeFunc(km.now), jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		km.logger.Debug("falha ao validar token JWT", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
