// Package generator renders the Apache virtual host for a new project.
//
// The environment root is the current or parent directory, whichever
// contains the marker directory (docker/ by default). The vhost is written
// to <root>/docker/apache/vhosts/<host>.conf:
//
//	w := generator.NewVhostWriter(fs, opts)
//	path, err := w.Write(req)
//
// The file routes <host> to /var/www/html/<name>/public and hands PHP
// requests to the FPM upstream (php:9000). Existing files are overwritten.
package generator
