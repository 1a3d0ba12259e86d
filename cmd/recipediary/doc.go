// Command recipediary is a terminal client for a personal recipe diary.
//
// It signs a user in locally, keeps their recipes in the configured store
// (PostgreSQL, a local SQLite file or memory) and supports listing,
// searching, editing, importing and exporting them.
package main
