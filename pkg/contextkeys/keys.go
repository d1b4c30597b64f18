package contextkeys

// Custom type so the key cannot collide with other packages' context values.
type contextKey string

// DBContextKey is the key under which the *gorm.DB handle (pool or
// per-request transaction) is stored in the request context.
const DBContextKey = contextKey("db")
