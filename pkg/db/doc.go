// Package db connects to PostgreSQL through pgx and applies goose migrations.
//
//	pool, err := db.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := db.Migrate(ctx, pool, migrations.FS, cfg, log); err != nil {
//		return err
//	}
//
// [SessionMaker] provides the per-request scoped resource: each request gets
// a [Session] whose transaction starts on first use and is rolled back on
// Release unless the handler committed it.
//
// [Healthcheck] plugs into readiness probes and [Shutdown] into the server's
// shutdown hooks.
package db
