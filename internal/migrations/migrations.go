// Package migrations はgoose形式のSQLマイグレーションを埋め込みます。
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
