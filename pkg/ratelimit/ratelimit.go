// Package ratelimit — AttemptLimiter: brute-force saldırılarına karşı
// anahtar bazlı deneme sınırlama.
//
// İki yerde kullanılır:
//   - Login: IP bazlı (şifre brute-force koruması)
//   - Verification code confirm: admin ID bazlı (6 haneli kodun
//     kaba kuvvetle taranmasını engeller — kod uzayı sadece 900.000)
//
// Tasarım:
// - Her anahtar için sabit pencere ile deneme sayısı takip edilir.
// - Pencere içinde maxAttempts aşılırsa istek reddedilir.
// - Başarılı işlem sonrası Reset() ile sayaç sıfırlanır.
// - Background goroutine süresi dolmuş bucket'ları temizler (memory leak engeli).
//
// Neden in-memory?
// SQLite'a her denemede yazmak gereksiz I/O + contention yaratır;
// tek instance deploy'da in-memory sayaç yeterlidir.
package ratelimit

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"
)

// bucket, bir anahtar için deneme sayacı ve pencere başlangıç zamanı tutar.
type bucket struct {
	count       int
	windowStart time.Time
}

// AttemptLimiter, anahtar bazlı deneme sınırlayıcı.
//
// Kullanım:
//
//	limiter := ratelimit.NewAttemptLimiter(5, 2*time.Minute)
//	if !limiter.Allow(key) { return 429 }
//	// başarılı işlemde:
//	limiter.Reset(key)
type AttemptLimiter struct {
	mu          sync.RWMutex
	buckets     map[string]*bucket
	maxAttempts int
	window      time.Duration
	stopCleanup chan struct{}
}

// NewAttemptLimiter, yeni limiter oluşturur ve arka plan temizleme
// goroutine'ini başlatır. Temizleme her dakika çalışır ve süresi dolmuş
// bucket'ları siler — uzun süre çalışan sunucularda bellek sızıntısını önler.
func NewAttemptLimiter(maxAttempts int, window time.Duration) *AttemptLimiter {
	l := &AttemptLimiter{
		buckets:     make(map[string]*bucket),
		maxAttempts: maxAttempts,
		window:      window,
		stopCleanup: make(chan struct{}),
	}

	go l.cleanupLoop()

	return l
}

// Allow, verilen anahtarın yeni bir denemesine izin verilip verilmediğini döner.
// Her çağrı sayacı artırır (deneme başarılı olsun veya olmasın).
func (l *AttemptLimiter) Allow(key string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, exists := l.buckets[key]
	if !exists {
		l.buckets[key] = &bucket{count: 1, windowStart: now}
		return true
	}

	if now.Sub(b.windowStart) > l.window {
		// Pencere dolmuş — sayaç sıfırdan başlar
		b.count = 1
		b.windowStart = now
		return true
	}

	b.count++
	return b.count <= l.maxAttempts
}

// Reset, başarılı işlem sonrası anahtarın sayacını sıfırlar.
// Temizlenmezse meşru kullanıcı sonraki denemelerinde bloke olabilir.
func (l *AttemptLimiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
}

// RetryAfterSeconds, limit aşıldığında kalan bekleme süresini saniye
// cinsinden döner. HTTP Retry-After header değeri olarak kullanılır.
func (l *AttemptLimiter) RetryAfterSeconds(key string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	b, exists := l.buckets[key]
	if !exists {
		return 0
	}

	remaining := l.window - time.Since(b.windowStart)
	if remaining < 0 {
		return 0
	}
	return int(remaining.Seconds()) + 1 // +1 yuvarlama — client tam süreyi beklesin
}

// Stop, temizleme goroutine'ini durdurur. Testlerde leak engellemek için.
func (l *AttemptLimiter) Stop() {
	close(l.stopCleanup)
}

func (l *AttemptLimiter) cleanupLoop() {
	ticker := time.NewTicker(60 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stopCleanup:
			return
		}
	}
}

func (l *AttemptLimiter) cleanup() {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, b := range l.buckets {
		if now.Sub(b.windowStart) > l.window {
			delete(l.buckets, key)
		}
	}
}

// ExtractIP, HTTP request'ten client IP adresini çıkarır.
//
// Öncelik sırası:
// 1. X-Forwarded-For header (reverse proxy arkasındaysa, ilk IP)
// 2. X-Real-IP header
// 3. RemoteAddr (doğrudan bağlantı)
func ExtractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// FormatRetryMessage, kalan süreyi okunabilir formata çevirir.
// Örn: 120 → "2 minute(s)", 45 → "45 second(s)"
func FormatRetryMessage(seconds int) string {
	if seconds >= 60 {
		return fmt.Sprintf("%d minute(s)", seconds/60)
	}
	return fmt.Sprintf("%d second(s)", seconds)
}
