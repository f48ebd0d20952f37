package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Alexandra151/LibrarySystem/internal/access"
	"github.com/Alexandra151/LibrarySystem/internal/domain"
	"github.com/Alexandra151/LibrarySystem/internal/http/response"
	"github.com/Alexandra151/LibrarySystem/internal/ratelimit"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	contextKeyUsername contextKey = "username"
	contextKeyRoles    contextKey = "roles"
)

const (
	headerRequestID  = "X-Request-Id"
	headerClientName = "X-Client-Name"
)

// requestID assigns every request a UUID and echoes it on the response.
// An inbound X-Request-Id is preserved so clients can correlate retries.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r)
	})
}

// requireClientName rejects API requests that do not identify their
// client application via the X-Client-Name header.
func (s *Server) requireClientName(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.TrimSpace(r.Header.Get(headerClientName)) == "" {
			response.BadRequest(w, "X-Client-Name header is required", s.logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireOperation guards a route with the access policy for the given
// operation. Public operations pass through untouched; everything else
// needs a valid bearer token whose roles the policy allows.
func (s *Server) requireOperation(op access.Operation) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if access.IsPublic(op) {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Missing authorization header", s.logger)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Unauthorized(w, "Invalid authorization header format", s.logger)
				return
			}

			claims, err := s.authService.VerifyAccessToken(parts[1])
			if err != nil {
				response.Unauthorized(w, "Invalid or expired token", s.logger)
				return
			}

			roles := claims.DomainRoles()
			if !access.Allowed(op, roles) {
				s.logger.Warn("operation denied",
					"operation", string(op),
					"username", claims.Username,
					"roles", claims.Roles,
				)
				response.Forbidden(w, "Insufficient permissions", s.logger)
				return
			}

			ctx := context.WithValue(r.Context(), contextKeyUsername, claims.Username)
			ctx = context.WithValue(ctx, contextKeyRoles, roles)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// rateLimitByIP limits requests per client IP using the given limiter.
// Returns 429 Too Many Requests when the limit is exceeded.
func (s *Server) rateLimitByIP(limiter *ratelimit.KeyedRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)
			if !limiter.Allow(key) {
				s.logger.Warn("rate limit exceeded", "ip", key, "path", r.URL.Path)
				response.TooManyRequests(w, "Too many requests. Please try again later.", s.logger)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP extracts the client IP from the request.
// Checks X-Forwarded-For and X-Real-IP before falling back to RemoteAddr.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// First IP in the chain is the client.
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	ip := r.RemoteAddr
	if i := strings.LastIndexByte(ip, ':'); i >= 0 {
		return ip[:i]
	}
	return ip
}

// getUsername extracts the authenticated username from request context.
// Returns empty string if not authenticated.
func getUsername(ctx context.Context) string {
	if username, ok := ctx.Value(contextKeyUsername).(string); ok {
		return username
	}
	return ""
}

// getRoles extracts the authenticated user's roles from request context.
// Returns nil if not authenticated.
func getRoles(ctx context.Context) []domain.Role {
	if roles, ok := ctx.Value(contextKeyRoles).([]domain.Role); ok {
		return roles
	}
	return nil
}
