// Package session stores per-visitor data behind a cookie descriptor from
// package cookie.
//
// Two storages implement the Storage interface:
//
//   - CookieStorage keeps the whole data map in the cookie value, so the
//     serialized header must stay under cookie.MaxSize.
//   - IDStorage keeps only an id in the cookie and the data in a Store.
//     MemoryStore and RedisStore ship with the package.
//
// # Usage
//
//	c, _ := cookie.New("__session",
//	    cookie.WithSecrets(os.Getenv("SESSION_SECRET")),
//	    cookie.WithMaxAge(3600),
//	    cookie.WithHTTPOnly(true),
//	)
//	storage := session.NewIDStorage(c, session.NewRedisStore(redisClient))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    s, err := storage.GetSession(r.Context(), r.Header.Get("Cookie"))
//	    if err != nil {
//	        http.Error(w, "session unavailable", http.StatusInternalServerError)
//	        return
//	    }
//	    s.Set("uid", 42)
//	    s.Flash("notice", "saved")
//	    _ = session.Commit(r.Context(), w, storage, s)
//	}
//
// Middleware loads the session into the request context; handlers fetch it
// with FromContext and persist it with Commit.
//
// # Expiry
//
// IDStorage passes the cookie expiry to the Store on every commit: MaxAge
// wins over Expires, and options given to CommitSession win over the
// descriptor.
//
// # Error Handling
//
//   - ErrSessionNotFound – the store has no live data for an id
//   - ErrNilSession      – a nil session was committed or destroyed
//   - ErrStoreFailure    – wraps backend errors
//   - cookie.ErrCookieTooLarge – CookieStorage data exceeds the cookie limit
package session
