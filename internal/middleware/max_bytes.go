package middleware

import "net/http"

// NewMaxBytesMiddleware はリクエストボディのサイズを制限するミドルウェアを返す。
// 制限超過時はデコード側でエラーになり、400として扱われる。
func NewMaxBytesMiddleware(limit int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
