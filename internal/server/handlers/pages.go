package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// PageHandler отдает страницы веб-интерфейса из каталога на диске.
// Без каталога любая страница отвечает 404.
type PageHandler struct {
	dir string
}

// NewPageHandler создает handler страниц; dir может быть пустым
func NewPageHandler(dir string) *PageHandler {
	return &PageHandler{dir: dir}
}

// ServeHTTP ищет файл по пути запроса, затем "<путь>.html", затем "<путь>/index.html"
func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.dir == "" || (r.Method != http.MethodGet && r.Method != http.MethodHead) {
		http.NotFound(w, r)
		return
	}

	clean := path.Clean("/" + r.URL.Path)
	base := filepath.Join(h.dir, filepath.FromSlash(strings.TrimPrefix(clean, "/")))

	for _, candidate := range []string{base, base + ".html", filepath.Join(base, "index.html")} {
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		http.ServeFile(w, r, candidate)
		return
	}

	http.NotFound(w, r)
}
