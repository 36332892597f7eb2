// Package database stores step attributes in a SQL table through GORM.
//
// Every attribute is one row of step_attributes, unique on (step_id, name).
// Saving an attribute that already exists updates its value in place.
// SQLite and PostgreSQL are supported:
//
//	comp := database.NewComponent(database.Config{
//	    Driver: database.DriverSQLite,
//	    DSN:    "file:steps.db",
//	}, log)
//	if err := comp.Start(ctx); err != nil { ... }
//	repo := comp.Repository()
//
// Start opens the connection with retries and migrates the table.
package database
