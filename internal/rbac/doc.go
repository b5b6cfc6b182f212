// Package rbac holds the permission matrix of the shelter administration.
//
// The matrix is the single source of truth for every authorization decision:
// the server guard (internal/auth), the page route guard
// (internal/web/middleware/auth) and the template render gate
// (internal/web/gate) all call CanAccessResource. Nothing here performs I/O;
// results depend only on the (role, resource, action) triple.
//
// The table is versioned with the code, not the database:
//
//	role     view  create  edit  delete
//	VIEWER   yes   no      no    no
//	EDITOR   yes   yes     yes   no
//	ADMIN    yes   yes     yes   yes
//
// The users resource overrides the table: only ADMIN may act on accounts.
//
// Any value outside the defined enumerations is denied.
package rbac
