// Package librrd is the low-level declaration layer over the native librrd
// C library. It owns all cgo in the module: symbol declarations, argv
// marshaling, result copying, and the error protocol.
//
// librrd keeps its error message in library-global storage, and rrd_graph_v
// (like the rrdtool CLI it backs) is not reentrant, so every entry point
// here is serialized behind a single mutex. Callers get plain Go values;
// all C memory is released before returning.
//
// Reference: rrd.h from rrdtool >= 1.5.0.
package librrd

/*
#cgo pkg-config: librrd
#include <stdlib.h>
#include <rrd.h>

// Accessors for the rrd_infoval_t union, which cgo cannot address directly.
static rrd_info_type_t rrdgo_info_type(rrd_info_t *e) { return e->type; }
static char *rrdgo_info_key(rrd_info_t *e) { return e->key; }
static rrd_info_t *rrdgo_info_next(rrd_info_t *e) { return e->next; }
static double rrdgo_info_val(rrd_info_t *e) { return e->value.u_val; }
static unsigned long rrdgo_info_cnt(rrd_info_t *e) { return e->value.u_cnt; }
static char *rrdgo_info_str(rrd_info_t *e) { return e->value.u_str; }
static int rrdgo_info_int(rrd_info_t *e) { return e->value.u_int; }
static unsigned long rrdgo_info_blob_size(rrd_info_t *e) { return e->value.u_blo.size; }
static unsigned char *rrdgo_info_blob_ptr(rrd_info_t *e) { return e->value.u_blo.ptr; }
*/
import "C"

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unsafe"
)

// mu serializes all librrd calls. The error message lives in library-global
// storage and must be read before the next call can clobber it.
var mu sync.Mutex

// Error carries a message produced by librrd itself.
type Error struct {
	Msg string
}

func (e *Error) Error() string { return fmt.Sprintf("librrd: %q", e.Msg) }

// ErrNulByte is returned when a string destined for the C side contains a
// NUL byte, which cannot be represented in a C string.
var ErrNulByte = errors.New("rrd: string contains NUL byte")

// lastError reads and clears the library error state. If librrd reported
// nothing, fallback describes the failure instead.
func lastError(fallback string) error {
	p := C.rrd_get_error()
	if p == nil || *p == 0 {
		return fmt.Errorf("rrd: %s (no librrd error info)", fallback)
	}
	msg := C.GoString(p)
	C.rrd_clear_error()
	return &Error{Msg: msg}
}

func checkRC(rc C.int, fallback string) error {
	if rc == 0 {
		return nil
	}
	return lastError(fallback)
}

// cstr converts s to a C string, rejecting interior NUL bytes.
func cstr(s string) (*C.char, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return nil, ErrNulByte
	}
	return C.CString(s), nil
}

// argv holds a C array of NUL-terminated strings. If nullTerminated is set,
// the pointer array itself carries a trailing NULL for C APIs that take no
// length parameter.
type argv struct {
	ptrs []*C.char
	n    int
}

func newArgv(ss []string, nullTerminated bool) (*argv, error) {
	a := &argv{n: len(ss)}
	for _, s := range ss {
		p, err := cstr(s)
		if err != nil {
			a.free()
			return nil, err
		}
		a.ptrs = append(a.ptrs, p)
	}
	if nullTerminated {
		a.ptrs = append(a.ptrs, nil)
	}
	return a, nil
}

func (a *argv) free() {
	for _, p := range a.ptrs {
		if p != nil {
			C.free(unsafe.Pointer(p))
		}
	}
	a.ptrs = nil
}

// ptr returns the argument array, or nil when it holds no strings.
func (a *argv) ptr() **C.char {
	if a.n == 0 {
		return nil
	}
	return (**C.char)(unsafe.Pointer(&a.ptrs[0]))
}

// Create wraps rrd_create_r2. sources is passed NULL-terminated; template
// may be empty for none; args carries the DS:/RRA: definitions.
func Create(filename string, step uint64, lastUp int64, noOverwrite bool, sources []string, template string, args []string) error {
	cFilename, err := cstr(filename)
	if err != nil {
		return err
	}
	defer C.free(unsafe.Pointer(cFilename))

	cSources, err := newArgv(sources, true)
	if err != nil {
		return err
	}
	defer cSources.free()

	var cTemplate *C.char
	if template != "" {
		if cTemplate, err = cstr(template); err != nil {
			return err
		}
		defer C.free(unsafe.Pointer(cTemplate))
	}

	cArgs, err := newArgv(args, false)
	if err != nil {
		return err
	}
	defer cArgs.free()

	overwrite := C.int(0)
	if noOverwrite {
		overwrite = 1
	}

	mu.Lock()
	defer mu.Unlock()
	rc := C.rrd_create_r2(cFilename, C.ulong(step), C.time_t(lastUp), overwrite,
		cSources.ptr(), cTemplate, C.int(cArgs.n), cArgs.ptr())
	return checkRC(rc, "create failed")
}

// Update wraps rrd_updatex_r. template may be empty for none.
func Update(filename, template string, extraFlags int, args []string) error {
	cFilename, err := cstr(filename)
	if err != nil {
		return err
	}
	defer C.free(unsafe.Pointer(cFilename))

	var cTemplate *C.char
	if template != "" {
		if cTemplate, err = cstr(template); err != nil {
			return err
		}
		defer C.free(unsafe.Pointer(cTemplate))
	}

	cArgs, err := newArgv(args, false)
	if err != nil {
		return err
	}
	defer cArgs.free()

	mu.Lock()
	defer mu.Unlock()
	rc := C.rrd_updatex_r(cFilename, cTemplate, C.int(extraFlags), C.int(cArgs.n), cArgs.ptr())
	return checkRC(rc, "update failed")
}

// FetchResult is the raw output of rrd_fetch_r after librrd has adjusted the
// requested range. Values is row-major with one column per name.
type FetchResult struct {
	Start  int64
	End    int64
	Step   uint64
	Names  []string
	Values []float64
}

// Fetch wraps rrd_fetch_r. The returned arrays are copied into Go memory and
// the C allocations freed before returning.
func Fetch(filename, cf string, start, end int64, step uint64) (*FetchResult, error) {
	cFilename, err := cstr(filename)
	if err != nil {
		return nil, err
	}
	defer C.free(unsafe.Pointer(cFilename))

	cCF, err := cstr(cf)
	if err != nil {
		return nil, err
	}
	defer C.free(unsafe.Pointer(cCF))

	cStart := C.time_t(start)
	cEnd := C.time_t(end)
	cStep := C.ulong(step)

	var dsCount C.ulong
	var dsNames **C.char
	var data *C.rrd_value_t

	mu.Lock()
	rc := C.rrd_fetch_r(cFilename, cCF, &cStart, &cEnd, &cStep, &dsCount, &dsNames, &data)
	if rc != 0 {
		err := lastError("fetch failed")
		mu.Unlock()
		return nil, err
	}
	mu.Unlock()

	count := int(dsCount)
	names := make([]string, 0, count)
	namePtrs := unsafe.Slice(dsNames, count)
	for _, p := range namePtrs {
		names = append(names, C.GoString(p))
		C.rrd_freemem(unsafe.Pointer(p))
	}
	C.rrd_freemem(unsafe.Pointer(dsNames))

	// The row at the raw start time is not part of the data array; its
	// datum belongs to the interval ending one step later.
	rows := int((cEnd - cStart) / C.time_t(cStep))
	values := make([]float64, rows*count)
	src := unsafe.Slice((*float64)(unsafe.Pointer(data)), rows*count)
	copy(values, src)
	C.rrd_freemem(unsafe.Pointer(data))

	return &FetchResult{
		Start:  int64(cStart),
		End:    int64(cEnd),
		Step:   uint64(cStep),
		Names:  names,
		Values: values,
	}, nil
}

// InfoEntry is one key/value pair from an rrd_info_t list. Value holds one
// of float64, uint64, string, int32, or []byte depending on the entry type.
type InfoEntry struct {
	Key   string
	Value any
}

// Info wraps rrd_info_r.
func Info(filename string) ([]InfoEntry, error) {
	cFilename, err := cstr(filename)
	if err != nil {
		return nil, err
	}
	defer C.free(unsafe.Pointer(cFilename))

	mu.Lock()
	defer mu.Unlock()
	head := C.rrd_info_r(cFilename)
	if head == nil {
		return nil, lastError("no info data")
	}
	return collectInfo(head)
}

// GraphV wraps rrd_graph_v. args must already include the leading "graphv"
// command word and the "-" filename that routes the image into the result
// list. Caller must hold no expectations about argument mutation: librrd
// parses argv with getopt, which is one of the reasons for the global mutex.
func GraphV(args []string) ([]InfoEntry, error) {
	cArgs, err := newArgv(args, false)
	if err != nil {
		return nil, err
	}
	defer cArgs.free()

	mu.Lock()
	defer mu.Unlock()
	head := C.rrd_graph_v(C.int(cArgs.n), cArgs.ptr())
	if head == nil {
		return nil, lastError("no graph data produced")
	}
	return collectInfo(head)
}

// collectInfo converts and frees an rrd_info_t list. Must be called with mu
// held, since a type tag outside the known set reads the error state.
func collectInfo(head *C.rrd_info_t) ([]InfoEntry, error) {
	defer C.rrd_info_free(head)

	var entries []InfoEntry
	for e := head; e != nil; e = C.rrdgo_info_next(e) {
		key := C.GoString(C.rrdgo_info_key(e))
		var value any
		switch t := C.rrdgo_info_type(e); t {
		case C.RD_I_VAL:
			value = float64(C.rrdgo_info_val(e))
		case C.RD_I_CNT:
			value = uint64(C.rrdgo_info_cnt(e))
		case C.RD_I_STR:
			value = C.GoString(C.rrdgo_info_str(e))
		case C.RD_I_INT:
			value = int32(C.rrdgo_info_int(e))
		case C.RD_I_BLO:
			size := int(C.rrdgo_info_blob_size(e))
			value = C.GoBytes(unsafe.Pointer(C.rrdgo_info_blob_ptr(e)), C.int(size))
		default:
			return nil, fmt.Errorf("rrd: unexpected info type %d for key %q (librrd version mismatch?)", int(t), key)
		}
		entries = append(entries, InfoEntry{Key: key, Value: value})
	}
	return entries, nil
}

// Dump wraps rrd_dump_r.
func Dump(filename, out string) error {
	cFilename, err := cstr(filename)
	if err != nil {
		return err
	}
	defer C.free(unsafe.Pointer(cFilename))

	cOut, err := cstr(out)
	if err != nil {
		return err
	}
	defer C.free(unsafe.Pointer(cOut))

	mu.Lock()
	defer mu.Unlock()
	return checkRC(C.rrd_dump_r(cFilename, cOut), "dump failed")
}

// Restore wraps rrd_restore. args must include the leading "restore"
// command word; rrd_restore parses flags with getopt.
func Restore(args []string) error {
	cArgs, err := newArgv(args, false)
	if err != nil {
		return err
	}
	defer cArgs.free()

	mu.Lock()
	defer mu.Unlock()
	return checkRC(C.rrd_restore(C.int(cArgs.n), cArgs.ptr()), "restore failed")
}

// First wraps rrd_first_r, returning the first timestamp of the RRA at
// rraIndex.
func First(filename string, rraIndex int) (int64, error) {
	cFilename, err := cstr(filename)
	if err != nil {
		return 0, err
	}
	defer C.free(unsafe.Pointer(cFilename))

	mu.Lock()
	defer mu.Unlock()
	ts := C.rrd_first_r(cFilename, C.int(rraIndex))
	if ts == -1 {
		return 0, lastError("first failed")
	}
	return int64(ts), nil
}

// Last wraps rrd_last_r, returning the timestamp of the most recent update.
func Last(filename string) (int64, error) {
	cFilename, err := cstr(filename)
	if err != nil {
		return 0, err
	}
	defer C.free(unsafe.Pointer(cFilename))

	mu.Lock()
	defer mu.Unlock()
	ts := C.rrd_last_r(cFilename)
	if ts == -1 {
		return 0, lastError("last failed")
	}
	return int64(ts), nil
}

// LastUpdate wraps rrd_lastupdate_r. lastDS holds the most recently seen
// raw datum string for each DS, parallel to names.
func LastUpdate(filename string) (lastUp int64, names, lastDS []string, err error) {
	cFilename, err := cstr(filename)
	if err != nil {
		return 0, nil, nil, err
	}
	defer C.free(unsafe.Pointer(cFilename))

	var cLastUp C.time_t
	var dsCount C.ulong
	var dsNames, dsLast **C.char

	mu.Lock()
	rc := C.rrd_lastupdate_r(cFilename, &cLastUp, &dsCount, &dsNames, &dsLast)
	if rc != 0 {
		err := lastError("lastupdate failed")
		mu.Unlock()
		return 0, nil, nil, err
	}
	mu.Unlock()

	count := int(dsCount)
	names = make([]string, 0, count)
	lastDS = make([]string, 0, count)
	for _, p := range unsafe.Slice(dsNames, count) {
		names = append(names, C.GoString(p))
		C.rrd_freemem(unsafe.Pointer(p))
	}
	for _, p := range unsafe.Slice(dsLast, count) {
		lastDS = append(lastDS, C.GoString(p))
		C.rrd_freemem(unsafe.Pointer(p))
	}
	C.rrd_freemem(unsafe.Pointer(dsNames))
	C.rrd_freemem(unsafe.Pointer(dsLast))

	return int64(cLastUp), names, lastDS, nil
}

// Version returns the librrd version string, e.g. "1.9.0".
func Version() string {
	return C.GoString(C.rrd_strversion())
}
