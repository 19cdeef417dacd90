// Package main provides the rrdinspect CLI tool for examining RRD files.
//
// Usage:
//
//	rrdinspect --file=<path> [options]
//
// Commands:
//
//	info            Show all metadata key/value pairs
//	header          Show the header summary (step, DS list, RRA list)
//	last            Show the last update time and values
//	fetch           Print consolidated data rows
//
// Reference: https://oss.oetiker.ch/rrdtool/doc/rrdinfo.en.html
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rrdkit/rrd"
)

var (
	filePath = flag.String("file", "", "Path to the RRD file (required)")
	command  = flag.String("command", "header", "Command: info, header, last, fetch")
	cfName   = flag.String("cf", "AVERAGE", "Consolidation function for fetch: AVERAGE, MIN, MAX, LAST")
	duration = flag.Duration("duration", time.Hour, "Time window for fetch, ending now")
	limit    = flag.Int("limit", 0, "Limit number of fetch rows (0 = unlimited)")
	help     = flag.Bool("help", false, "Print help")
)

func main() {
	flag.Parse()

	if *help {
		printUsage()
		return
	}
	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "Error: --file flag is required")
		printUsage()
		os.Exit(1)
	}

	var err error
	switch *command {
	case "info":
		err = cmdInfo()
	case "header":
		err = cmdHeader()
	case "last":
		err = cmdLast()
	case "fetch":
		err = cmdFetch()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", *command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("rrdinspect - examine RRD files")
	fmt.Println()
	fmt.Println("Usage: rrdinspect --file=<path> [--command=info|header|last|fetch]")
	fmt.Println()
	flag.PrintDefaults()
}

func cmdInfo() error {
	info, err := rrd.Info(*filePath)
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s = %s\n", k, info[k])
	}
	return nil
}

func cmdHeader() error {
	info, err := rrd.Info(*filePath)
	if err != nil {
		return err
	}

	fmt.Printf("file:    %s\n", *filePath)
	fmt.Printf("librrd:  %s\n", rrd.Version())
	if v, ok := info["rrd_version"]; ok {
		fmt.Printf("format:  %s\n", v)
	}
	if v, ok := info["step"]; ok {
		fmt.Printf("step:    %ss\n", v)
	}
	if v, ok := info["last_update"]; ok {
		if c, isCount := v.Count(); isCount {
			fmt.Printf("updated: %s\n", time.Unix(int64(c), 0).UTC().Format(time.RFC3339))
		}
	}

	fmt.Println("\ndata sources:")
	for _, name := range dsNames(info) {
		typ := info[fmt.Sprintf("ds[%s].type", name)]
		hb := info[fmt.Sprintf("ds[%s].minimal_heartbeat", name)]
		fmt.Printf("  %-16s %-10s heartbeat=%ss\n", name, typ, hb)
	}

	fmt.Println("\narchives:")
	for i := 0; ; i++ {
		cf, ok := info[fmt.Sprintf("rra[%d].cf", i)]
		if !ok {
			break
		}
		rows := info[fmt.Sprintf("rra[%d].rows", i)]
		pdp := info[fmt.Sprintf("rra[%d].pdp_per_row", i)]
		xff := info[fmt.Sprintf("rra[%d].xff", i)]
		fmt.Printf("  rra[%d] %-8s rows=%s pdp_per_row=%s xff=%s\n", i, cf, rows, pdp, xff)
	}
	return nil
}

// dsNames pulls the DS names out of the info map, in file order where the
// format exposes an index and name order otherwise.
func dsNames(info map[string]rrd.InfoValue) []string {
	var names []string
	for k := range info {
		if strings.HasPrefix(k, "ds[") && strings.HasSuffix(k, "].type") {
			names = append(names, k[len("ds["):len(k)-len("].type")])
		}
	}
	sort.Slice(names, func(i, j int) bool {
		vi, oki := info[fmt.Sprintf("ds[%s].index", names[i])].Count()
		vj, okj := info[fmt.Sprintf("ds[%s].index", names[j])].Count()
		if oki && okj {
			return vi < vj
		}
		return names[i] < names[j]
	})
	return names
}

func cmdLast() error {
	lu, err := rrd.LastUpdate(*filePath)
	if err != nil {
		return err
	}
	fmt.Printf("last update: %s\n", lu.Time.Format(time.RFC3339))
	names := make([]string, 0, len(lu.Values))
	for name := range lu.Values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-16s %s\n", name, lu.Values[name])
	}
	return nil
}

func cmdFetch() error {
	var cf rrd.ConsolidationFunction
	switch strings.ToUpper(*cfName) {
	case "AVERAGE":
		cf = rrd.CFAverage
	case "MIN":
		cf = rrd.CFMin
	case "MAX":
		cf = rrd.CFMax
	case "LAST":
		cf = rrd.CFLast
	default:
		return fmt.Errorf("unknown consolidation function %q", *cfName)
	}

	end := time.Now()
	data, err := rrd.Fetch(*filePath, cf, end.Add(-*duration), end, 0)
	if err != nil {
		return err
	}

	fmt.Printf("%-25s", "time")
	for _, name := range data.DSNames() {
		fmt.Printf(" %16s", name)
	}
	fmt.Println()

	for i, row := range data.Rows() {
		if *limit > 0 && i >= *limit {
			fmt.Printf("... %d more rows\n", data.RowCount()-i)
			break
		}
		fmt.Printf("%-25s", row.Time.UTC().Format(time.RFC3339))
		for _, v := range row.Values() {
			fmt.Printf(" %16g", v)
		}
		fmt.Println()
	}
	return nil
}
