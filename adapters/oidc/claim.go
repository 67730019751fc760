// 參考https://auth0.com/docs/get-started/apis/scopes/openid-connect-scopes
package oidc

import "time"

// OpenID 是 token 的標準欄位，由驗證器在驗證成功後填入
// 這些欄位直接取自已驗證的 token，不參與 JSON 解析
type OpenID struct {
	Sub string    `json:"-"`
	Iss string    `json:"-"`
	Aud []string  `json:"-"`
	Exp time.Time `json:"-"`
	Iat time.Time `json:"-"`
}

type Email struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

type Profile struct {
	Name       string `json:"name"`
	FamilyName string `json:"family_name"`
	GivenName  string `json:"given_name"`
	Nickname   string `json:"nickname"`
	Picture    string `json:"picture"`
}

// Claims 是驗證通過的 token 內容
type Claims struct {
	OpenID
	Email
	Profile

	payload map[string]any
}

// Payload 回傳 token 完整的解碼內容
func (c *Claims) Payload() map[string]any {
	return c.payload
}
