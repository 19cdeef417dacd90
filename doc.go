/*
Package rrd provides Go bindings for librrd, the round-robin database
library behind rrdtool.

The package wraps librrd's create, update, fetch, graph, info, dump and
restore entry points. librrd itself accepts most arguments as CLI-style
argv string arrays; this package provides structured Go types that take
care of producing those strings, so callers never format "DS:..." or
"RRA:..." arguments by hand. The low-level declaration layer lives in
internal/librrd and links against the system librrd via pkg-config.

# Usage

For runnable examples, see the repository's examples directory. The
upstream CLI documentation (rrdcreate, rrdupdate, rrdfetch, rrdgraph,
rrdinfo) describes the semantics of each operation; Go types here are
named to match those docs.

# Concurrency

All operations are safe for concurrent use. librrd keeps its error state
in library-global storage and its graph entry point is not reentrant, so
calls are serialized internally.

# Compatibility

Requires librrd >= 1.5.0 at build time (pkg-config: librrd). The update
locking modes require librrd >= 1.9.0 at runtime. Tested against the
librrd builds shipped by Ubuntu 20.04 through 25.04 and Fedora 39
through 42; see docker/ and scripts/check-with-different-versions.sh.
*/
package rrd
