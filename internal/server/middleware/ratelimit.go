package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/iudanet/passvault/internal/server/handlers"
	"github.com/iudanet/passvault/internal/server/metrics"
)

// RateLimiter ограничивает попытки signup/signin с одного адреса.
// Для каждого клиента хранится окно фиксированной длины со счетчиком попыток.
type RateLimiter struct {
	now     func() time.Time
	clients map[string]*attempts
	logger  *slog.Logger
	done    chan struct{}
	limit   int
	window  time.Duration
	mu      sync.Mutex
	stop    sync.Once
}

// attempts счетчик попыток клиента в текущем окне
type attempts struct {
	windowStart time.Time
	count       int
}

// NewRateLimiter создает limiter на limit попыток за window и запускает
// фоновую очистку устаревших клиентов. Остановка через Stop.
func NewRateLimiter(limit int, window time.Duration, logger *slog.Logger) *RateLimiter {
	rl := &RateLimiter{
		now:     time.Now,
		clients: make(map[string]*attempts),
		logger:  logger,
		done:    make(chan struct{}),
		limit:   limit,
		window:  window,
	}
	go rl.sweepLoop()
	return rl
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.done:
			return
		}
	}
}

// sweep удаляет клиентов, чье окно закончилось больше window назад
func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, a := range rl.clients {
		if now.Sub(a.windowStart) > rl.window*2 {
			delete(rl.clients, key)
		}
	}
}

// Stop останавливает фоновую очистку, повторный вызов безопасен
func (rl *RateLimiter) Stop() {
	rl.stop.Do(func() { close(rl.done) })
}

// Allow учитывает попытку клиента key и сообщает, укладывается ли она в лимит
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	a, ok := rl.clients[key]
	if !ok || now.Sub(a.windowStart) >= rl.window {
		rl.clients[key] = &attempts{windowStart: now, count: 1}
		return true
	}
	if a.count >= rl.limit {
		return false
	}
	a.count++
	return true
}

// retryAfter секунды до начала следующего окна клиента
func (rl *RateLimiter) retryAfter(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	a, ok := rl.clients[key]
	if !ok {
		return 0
	}
	left := rl.window - rl.now().Sub(a.windowStart)
	if left < time.Second {
		return 1
	}
	return int(left.Seconds())
}

// Middleware отклоняет запросы сверх лимита ответом 429
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)
		if !rl.Allow(key) {
			rl.logger.Warn("Auth rate limit exceeded",
				"ip", key,
				"path", r.URL.Path,
			)
			metrics.RateLimited.WithLabelValues(r.URL.Path).Inc()

			w.Header().Set("Retry-After", strconv.Itoa(rl.retryAfter(key)))
			handlers.WriteJSONError(w, handlers.MsgRateLimited, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP адрес клиента без порта.
// Заголовки прокси уже разобраны chi middleware.RealIP.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
