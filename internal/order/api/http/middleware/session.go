package middleware

import (
	"net/http"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/order/authctx"
)

// headerSessionID имя заголовка с идентификатором сессии
const headerSessionID = "x-session-id"

// Session извлекает x-session-id из заголовка запроса и кладёт его в контекст.
// Заголовок необязательный: запросы без него проходят дальше без сессии.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(headerSessionID)
		if sessionID != "" {
			r = r.WithContext(authctx.WithSessionID(r.Context(), sessionID))
		}
		next.ServeHTTP(w, r)
	})
}
