// Package cli provides the interactive myhealth terminal console.
//
// Each REPL command is a page: listings query the backend every time, while
// edit commands open an edit session in the console's workspace and prompt
// for every exposed field. The workspace lives as long as the process, so an
// edit whose submit failed can be resumed by running the same command again.
//
// Commands:
//   - food [filter]           list food, optionally filtered
//   - food-create             add a food
//   - food-edit <key>         edit a food
//   - food-delete <key>       delete a food
//   - settings                edit user settings
//   - weight [days]           list weight entries of the last days (365)
//   - weight-create           record today's weight
//   - weight-edit <ts>        edit a weight entry
//   - weight-delete <ts>      delete a weight entry
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
