package oidc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
)

const defaultRequestTimeout = 10 * time.Second

// VerifierOptions 包含驗證器的設定選項
type VerifierOptions struct {
	supportedAlgs  []string      // 允許的簽章演算法
	requestTimeout time.Duration // 向 JWKS 端點請求金鑰的逾時時間
}

// VerifierOption 定義設定選項的函數類型
type VerifierOption func(*VerifierOptions)

// WithSupportedAlgorithms 設定允許的簽章演算法
func WithSupportedAlgorithms(algs ...string) VerifierOption {
	return func(options *VerifierOptions) {
		options.supportedAlgs = algs
	}
}

// WithRequestTimeout 設定金鑰請求的逾時時間
func WithRequestTimeout(timeout time.Duration) VerifierOption {
	return func(options *VerifierOptions) {
		options.requestTimeout = timeout
	}
}

// Verifier 驗證 Auth0 簽發的 bearer token
// 簽章金鑰只會從發行者公開的 JWKS 端點取得，不信任 token 內嵌的金鑰；
// audience、issuer 與過期時間的檢查皆為必要，任一不符即拒絕
type Verifier struct {
	verifier *oidc.IDTokenVerifier
	timeout  time.Duration
}

// NewVerifier 建立 token 驗證器
// JWKS 端點由 issuerURL 推導 (https://<issuer-domain>/.well-known/jwks.json)，
// 金鑰由 go-oidc 的 RemoteKeySet 依 token header 的 kid 比對並快取，
// 金鑰輪替時會重新向端點請求
func NewVerifier(issuerURL, audience string, opts ...VerifierOption) *Verifier {
	options := VerifierOptions{
		supportedAlgs:  []string{oidc.RS256},
		requestTimeout: defaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(&options)
	}

	jwksURL := strings.TrimSuffix(issuerURL, "/") + "/.well-known/jwks.json"
	keySet := oidc.NewRemoteKeySet(context.Background(), jwksURL)
	verifier := oidc.NewVerifier(issuerURL, keySet, &oidc.Config{
		ClientID:             audience,
		SupportedSigningAlgs: options.supportedAlgs,
	})
	return &Verifier{
		verifier: verifier,
		timeout:  options.requestTimeout,
	}
}

// Verify 驗證 token 並回傳解碼後的 claims
// 驗證失敗 (金鑰不存在、簽章錯誤、audience/issuer 不符、過期、格式
// 錯誤) 時一律回傳錯誤，呼叫端不需要也不應該區分失敗的原因
func (v *Verifier) Verify(ctx context.Context, rawToken string) (*Claims, error) {
	const op = "Verify"
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	idToken, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("[%s] Fail to verify token, err=%w", op, err)
	}

	claims := Claims{
		OpenID: OpenID{
			Sub: idToken.Subject,
			Iss: idToken.Issuer,
			Aud: idToken.Audience,
			Exp: idToken.Expiry,
			Iat: idToken.IssuedAt,
		},
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("[%s] Fail to parse token claims, err=%w", op, err)
	}
	if err := idToken.Claims(&claims.payload); err != nil {
		return nil, fmt.Errorf("[%s] Fail to decode token payload, err=%w", op, err)
	}
	return &claims, nil
}
