// Package profile provides optional runtime profiling for strand.
//
// Profiling wraps [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag:
//
//	go build -tags pprof .
//	strand --pprof-mode=cpu run input1.txt
//
// Without the tag, [Config.Start] always returns a no-op and [Modes] is
// empty, so the profiling flags are hidden from the command line.
//
// Supported modes are allocs, block, clock, cpu, goroutine, heap, mem,
// mutex, thread, and trace. Profiles are written to the configured
// directory (by default the pprof directory under the user cache
// directory) and can be inspected with:
//
//	go tool pprof -http=: ~/.cache/strand/pprof/cpu.pprof
//
// With the tag, [net/http/pprof] handlers are also registered on
// [net/http.DefaultServeMux].
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
