package handler

import "strconv"

type ContextKey string

var (
	RoleCtxKey  ContextKey = "role"
	SubCtxKey   ContextKey = "sub"
	MyInfoCtx   ContextKey = "myInfo"
	UserInfoCtx ContextKey = "userInfo"
)

// parseSub 将 JWT 的 sub 声明解析为用户 ID
func parseSub(sub string) (int64, error) {
	return strconv.ParseInt(sub, 10, 64)
}
