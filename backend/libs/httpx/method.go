package httpx

import (
	"net/http"
	"sort"
	"strings"
)

// Method rejects requests whose method differs from expected with 405.
func Method(expected string, handler http.Handler) http.Handler {
	return Methods{expected: handler}
}

// Methods dispatches a single path to one handler per HTTP method.
type Methods map[string]http.Handler

func (m Methods) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h, ok := m[r.Method]; ok && h != nil {
		h.ServeHTTP(w, r)
		return
	}
	w.Header().Set("Allow", m.allow())
	w.WriteHeader(http.StatusMethodNotAllowed)
}

func (m Methods) allow() string {
	out := make([]string, 0, len(m))
	for method, h := range m {
		if h != nil {
			out = append(out, method)
		}
	}
	sort.Strings(out)
	return strings.Join(out, ", ")
}
