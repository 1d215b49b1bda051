// Package database handles database connections and schema inspection.
//
// It wraps GORM to open either a MySQL server or a local SQLite file based on the
// application's configuration. The library snapshot cache stores its rows here.
//
// # Schema Inspection
//
// TableColumns lists the columns of a table from information_schema on MySQL and
// pragma_table_info on SQLite. MissingColumns compares them against the columns
// a model expects, which is how the status endpoint checks the snapshot table.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Database unavailable", zap.Error(err))
//	}
//
//	missing, err := database.MissingColumns(db, "library_snapshots", cache.Columns())
package database
