// Package schema names the tables and columns of the Readmate database so that
// repositories build their SQL from one place. Keep it in step with
// data/migrations.
package schema
