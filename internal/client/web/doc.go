// Package web is the browser console of myhealth.
//
// Every browser gets a browsing session identified by a signed cookie. The
// session owns an editsession.Workspace, so a record opened for editing is
// fetched once and survives re-renders until it is saved or the session
// expires after the configured idle time. With a cache DSN the snapshots are
// kept in SQLite and a janitor purges those of expired sessions.
//
// Routes:
//
//	/                  start page
//	/food              food catalog (?q= filters)
//	/food/create       new food
//	/food/edit?key=    edit food
//	/food/delete?key=  POST, delete food
//	/settings/user     user settings
//	/weight            weight journal (?days= range)
//	/weight/create     record today's weight
//	/weight/edit?key=  edit a weight entry
//	/weight/delete?key= POST, delete a weight entry
package web
