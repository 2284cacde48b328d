package main

/* Tim Henderson (tadh@case.edu)
*
* Copyright (c) 2015, Tim Henderson, Case Western Reserve University
* Cleveland, Ohio 44106. All Rights Reserved.
*
* This library is free software; you can redistribute it and/or modify
* it under the terms of the GNU General Public License as published by
* the Free Software Foundation; either version 3 of the License, or (at
* your option) any later version.
*
* This library is distributed in the hope that it will be useful, but
* WITHOUT ANY WARRANTY; without even the implied warranty of
* MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
* General Public License for more details.
*
* You should have received a copy of the GNU General Public License
* along with this library; if not, write to the Free Software
* Foundation, Inc.,
*   51 Franklin Street, Fifth Floor,
*   Boston, MA  02110-1301
*   USA
 */

import (
	"fmt"
	"log"
	"os"
	"runtime/pprof"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/getopt"
)

import (
	"github.com/timtadh/gspan/cmd"
	"github.com/timtadh/gspan/dfs"
	"github.com/timtadh/gspan/dictionary"
	"github.com/timtadh/gspan/grow"
	"github.com/timtadh/gspan/stores/patterns"
	"github.com/timtadh/gspan/support"
	"github.com/timtadh/gspan/transaction"
)

func init() {
	cmd.UsageMessage = "find-embeddings --help"
	cmd.ExtendedMessage = `
find-embeddings - find where patterns occur in a graph collection

$ find-embeddings -p <patterns.veg> [--directed] [--all] <graphs>
$ find-embeddings -i <patterns.bpt> -s <support> [--directed] <graphs>

    -h, --help              view this message
    -p, --patterns=<path>   patterns in veg format (as written by the file
                            reporter)
    -i, --index=<path>      patterns in an index (as written by the index
                            reporter)
    -s, --support=<float>   the support of the run that wrote the index. The
                            run's labels are rebuilt from <graphs> with it.
    --directed              treat edges as directed
    --multigraph            keep parallel edges
    --all                   log every embedding, not just the supporting
                            graphs
    --cpu-profile=<path>    write a cpu-profile to this location
`
}

func main() {
	os.Exit(run())
}

func run() int {
	args, optargs, err := getopt.GetOpt(
		os.Args[1:],
		"hp:i:s:",
		[]string{
			"help",
			"patterns=",
			"index=",
			"support=",
			"directed",
			"multigraph",
			"all",
			"cpu-profile=",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	patternsPath := ""
	indexPath := ""
	minSupport := 0.0
	directed := false
	multigraph := false
	all := false
	cpuProfile := ""
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			cmd.Usage(0)
		case "-p", "--patterns":
			patternsPath = cmd.AssertFileOrDirExists(oa.Arg())
		case "-i", "--index":
			indexPath = cmd.AssertFileOrDirExists(oa.Arg())
		case "-s", "--support":
			minSupport = cmd.ParseFloat(oa.Arg())
		case "--directed":
			directed = true
		case "--multigraph":
			multigraph = true
		case "--all":
			all = true
		case "--cpu-profile":
			cpuProfile = cmd.AssertFile(oa.Arg())
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			cmd.Usage(cmd.ErrorCodes["opts"])
		}
	}

	if (patternsPath == "") == (indexPath == "") {
		fmt.Fprintf(os.Stderr, "You must supply patterns (-p) or an index (-i)\n")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	if indexPath != "" && !(minSupport > 0 && minSupport <= 1) {
		fmt.Fprintf(os.Stderr, "An index needs the support it was mined with (-s)\n")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "You must supply exactly an input path\n")
		fmt.Fprintf(os.Stderr, "You gave: %v\n", args)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	inputPath := cmd.AssertFileOrDirExists(args[0])

	if cpuProfile != "" {
		errors.Logf("DEBUG", "starting cpu profile: %v", cpuProfile)
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		err = pprof.StartCPUProfile(f)
		if err != nil {
			log.Fatal(err)
		}
		defer func() {
			errors.Logf("DEBUG", "closing cpu profile")
			pprof.StopCPUProfile()
			err := f.Close()
			errors.Logf("DEBUG", "closed cpu profile, err: %v", err)
		}()
	}

	graphs, err := cmd.Load(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "There was error loading the graphs\n")
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	grower, err := grow.New(directed, 1)
	if err != nil {
		log.Fatal(err)
	}

	if indexPath != "" {
		vertices, edges := dictionary.Build(graphs, support.MinCount(minSupport, len(graphs)))
		enc := &transaction.Encoder{
			Vertices:   vertices,
			Edges:      edges,
			Directed:   directed,
			MultiGraph: multigraph,
		}
		txs, _ := enc.EncodeAll(graphs)
		decoder, err := dfs.NewDecoder(1)
		if err != nil {
			log.Fatal(err)
		}
		indexed, err := patterns.Load(indexPath, decoder, vertices.Len(), edges.Len())
		if err != nil {
			fmt.Fprintf(os.Stderr, "There was error loading the index\n")
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		errors.Logf("INFO", "loaded %d graphs and %d indexed patterns", len(graphs), len(indexed))
		for i, p := range indexed {
			find(grower, txs, i+1, p.Code, all)
		}
		errors.Logf("INFO", "done")
		return 0
	}

	pgraphs, err := cmd.Load(patternsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "There was error loading the patterns\n")
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	errors.Logf("INFO", "loaded %d graphs and %d patterns", len(graphs), len(pgraphs))

	vertices, edges := dictionary.Build(append(graphs, pgraphs...), 1)
	enc := &transaction.Encoder{
		Vertices:   vertices,
		Edges:      edges,
		Directed:   directed,
		MultiGraph: multigraph,
	}
	txs, _ := enc.EncodeAll(graphs)

	for _, p := range pgraphs {
		ptx, err := enc.Encode(p)
		if err != nil {
			errors.Logf("ERROR", "pattern %d: %v", p.Id, err)
			continue
		}
		code := dfs.MinCode(ptx)
		if len(code) != ptx.EdgeCount() {
			errors.Logf("ERROR", "pattern %d is not connected", p.Id)
			continue
		}
		find(grower, txs, p.Id, code, all)
	}

	errors.Logf("INFO", "done")
	return 0
}

func find(grower *grow.Grower, txs []*transaction.Transaction, id int, code dfs.Code, all bool) {
	supporting := make([]int, 0, len(txs))
	total := 0
	for _, tx := range txs {
		embs := grower.Embeddings(tx, code)
		if len(embs) == 0 {
			continue
		}
		supporting = append(supporting, tx.Id)
		total += len(embs)
		if all {
			for _, emb := range embs {
				errors.Logf("INFO", "pattern %d graph %d embedding %v", id, tx.Id, emb)
			}
		}
	}
	errors.Logf("INFO", "pattern %d %v support %d embeddings %d graphs %v",
		id, code, len(supporting), total, supporting)
}
