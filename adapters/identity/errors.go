package identity

import "errors"

var (
	// ErrMissingSubject 表示驗證通過的 claims 缺少 sub
	// 簽章既然有效，這代表提供者或設定有問題，不是一般的認證失敗
	ErrMissingSubject = errors.New("verified claims missing subject identifier")

	// ErrUserNotInContext 表示 context 中沒有已解析的使用者
	ErrUserNotInContext = errors.New("no authenticated user in context")
)
