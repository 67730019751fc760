package oidc

import "context"

// ITokenVerifier 驗證外部簽發的 bearer token
// Verify 只會回傳完整驗證通過的 claims 或錯誤，不會有部分結果
type ITokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*Claims, error)
}
