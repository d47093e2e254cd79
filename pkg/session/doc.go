// Package session issues and stores opaque sign-in sessions.
//
// A [Session] binds a random 32-byte token to a user id and an expiry.
// The token travels to the client in a signed cookie or an Authorization
// header; stores only ever see its SHA-256 [Hash].
//
//	sess, err := session.New(user.ID, 24*time.Hour)
//	if err != nil {
//		return err
//	}
//	if err := store.Create(ctx, sess); err != nil {
//		return err
//	}
//	// hand sess.Token to the client
//
// Two stores are provided: [RedisStore] for production and [MemoryStore]
// for single-instance deployments and tests.
package session
