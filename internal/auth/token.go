package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hitoshi/rollcall/internal/model"
)

// ErrInvalidSession はセッショントークンの検証失敗を表す。
// 署名不正・期限切れ・形式不正のいずれの場合もこのエラーに集約し、
// 呼び出し元に失敗理由を区別させない。
var ErrInvalidSession = errors.New("invalid session token")

// Claims はセッショントークンに埋め込む本人情報。
// Roleは発行時点でDBに保存されていたロールのコピーであり、
// クライアント入力由来の値は決して入らない。
type Claims struct {
	jwt.RegisteredClaims
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}

// UserID はクレームのアカウントIDを返す。
func (c *Claims) UserID() string {
	return c.Subject
}

// TokenIssuer は署名付きセッショントークンの発行と検証を行う。
// 署名シークレットはプロセス全体の設定から渡され、リクエストデータから導出しない。
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer はTokenIssuerを生成する。
func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, ttl: ttl}
}

// TTL はトークンの有効期間を返す。CookieのMax-Ageと一致させるために使用する。
func (i *TokenIssuer) TTL() time.Duration {
	return i.ttl
}

// Issue はHS256で署名した有効期限付きトークンを発行する。
func (i *TokenIssuer) Issue(userID, email string, role model.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		Email: email,
		Role:  role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify はトークンの署名と有効期限を検証し、クレームを返す。
// いかなる検証失敗もErrInvalidSessionに集約する。
func (i *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}
	if claims.Subject == "" || !claims.Role.Valid() {
		return nil, ErrInvalidSession
	}
	return claims, nil
}
