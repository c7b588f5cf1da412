// Package rename is the rename-planning model behind werename.
//
// A Plan is built from a directory snapshot, rendered as two parallel
// texts (old names and new names), kept in sync with the edited new-names
// text line by line, and finally executed as one rename per changed
// entry. Hosts drive a Plan through a Session.
package rename
