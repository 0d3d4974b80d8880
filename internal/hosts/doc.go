// Package hosts registers local host aliases in the system hosts file.
//
// Presence is decided by parsing the file: comments are dropped and every
// hostname field is compared exactly, so an entry for foo.test does not
// satisfy a lookup for oo.test. Missing aliases are appended through
//
//	sudo sh -c "echo '127.0.0.1 <host>' >> /etc/hosts"
//
// which may prompt for a password on the inherited terminal.
package hosts
