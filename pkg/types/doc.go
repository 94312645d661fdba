// Package types defines the highlight data model, the collaborator
// interfaces (renderer, table editor, persister), configuration, and the
// standard error values shared by every tablemarks package.
package types
