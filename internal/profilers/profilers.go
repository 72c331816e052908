// Package profilers implement helper functions to set up profiling of the searchers and learners.
//
// If linked, it will install the profiler flags:
//
//   - -cpu_profile=<file>: CPU profile of the whole run.
//   - -mem_profile=<file>: heap profile written at the end of the run.
//   - -prof=<port>: serves net/http/pprof on localhost:<port>, while the program runs.
package profilers

import (
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
	"sync"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	flagProfiler   = flag.Int("prof", -1, "If set, serves net/http/pprof on localhost at the given port.")
	flagCPUProfile = flag.String("cpu_profile", "", "write cpu profile to `file`")
	flagMemProfile = flag.String("mem_profile", "", "write heap profile at the end of the program to `file`")
)

// Setup starts the HTTP (flag -prof) and CPU profilers (flag -cpu_profile), if they were configured.
// It returns the function to call before the program exits, typically deferred, which stops the CPU profile and
// writes the heap profile (flag -mem_profile). Only the first call to onQuit has any effect, so it can also be called
// explicitly before os.Exit (or klog.Exitf), which skips deferred functions.
func Setup() (onQuit func(), err error) {
	var cpuFile *os.File
	if *flagCPUProfile != "" {
		cpuFile, err = os.Create(*flagCPUProfile)
		if err != nil {
			return nil, errors.Wrapf(err, "could not create CPU profile %q", *flagCPUProfile)
		}
		if err = pprof.StartCPUProfile(cpuFile); err != nil {
			_ = cpuFile.Close()
			return nil, errors.Wrap(err, "could not start CPU profile")
		}
	}
	if *flagProfiler >= 0 {
		addr := fmt.Sprintf("localhost:%d", *flagProfiler)
		fmt.Printf("Starting profiler on %s/debug/pprof\n", addr)
		go func() {
			klog.Errorf("Profiler server stopped: %v", http.ListenAndServe(addr, nil))
		}()
	}
	var once sync.Once
	onQuit = func() { once.Do(func() { stopProfiles(cpuFile) }) }
	return onQuit, nil
}

// stopProfiles stops the CPU profile, if one was started, and writes the heap profile if -mem_profile is set.
func stopProfiles(cpuFile *os.File) {
	if cpuFile != nil {
		pprof.StopCPUProfile()
		if err := cpuFile.Close(); err != nil {
			klog.Errorf("Failed to close CPU profile: %v", err)
		}
	}
	if *flagMemProfile != "" {
		writeHeapProfile(*flagMemProfile)
	}
}

// writeHeapProfile after garbage collecting, to see if there is anything leaking.
func writeHeapProfile(filePath string) {
	f, err := os.Create(filePath)
	if err != nil {
		klog.Errorf("Could not create heap profile %q: %v", filePath, err)
		return
	}
	defer func() { _ = f.Close() }()
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		klog.Errorf("Could not write heap profile %q: %v", filePath, err)
	}
}
