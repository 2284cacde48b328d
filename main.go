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
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/getopt"
)

import (
	"github.com/timtadh/gspan/cmd"
	"github.com/timtadh/gspan/config"
)

func init() {
	cmd.UsageMessage = "gspan --help"
	cmd.ExtendedMessage = `
gspan - mine frequent connected subgraphs from a collection of graphs

$ gspan -o <path> --support=<float> [Global Options] \
    <input-path> \
    <mode> [Mode Options] \
    [<reporter> [Reporter Options]]

Note: You must supply [Global Options] then <input-path> then
      [<mode> [Mode Options]] and finally the reporters. Changes in ordering
      are not supported.

Note: You may either supply the <input-path> as a regular file, a gzipped
      file or a directory of files. If supplying a gzip file the file
      extension must be '.gz'.

Note: If you don't supply a reporter by default it will use 'chain log file'.

Global Options
    -h, --help                view this message
    --modes                   show the available modes
    --reporters               show the available reporters
    -o, --output=<path>       path to output directory (required)
                              NB: will overwrite contents of dir
    -c, --config=<path>       YAML configuration file. Command line options
                              override it and GSPAN_* environment variables.
    --support=<float>         minimum support as a fraction of the graphs in
                              (0, 1] (required here, in the config file or in
                              GSPAN_MIN_SUPPORT)
    --directed                edge direction is part of a pattern
    --multigraph              keep parallel edges between two vertices
    --max-edges=<int>         largest pattern to grow (default 1000)
    --min-edges=<int>         smallest pattern to report (default 0)
    -p, --parallelism=<int>   workers per mining run (default: #cpus)
    --cache-size=<int>        entries in the canonical and decode caches
    --skip-log=<level>        don't output the given log level.

Developer Options
    --cpu-profile=<path>      write a cpu-profile to this location

Environment
    GSPAN_MIN_SUPPORT, GSPAN_DIRECTED, GSPAN_MULTIGRAPH, GSPAN_MAX_EDGES,
    GSPAN_MIN_EDGES, GSPAN_LIKELINESS, GSPAN_PARALLELISM, GSPAN_PARTITIONS,
    GSPAN_CACHE_SIZE, GSPAN_OUTPUT

Input Format
    The veg file format is a line delimited format with graph, vertex and
    edge lines. Every graph line starts a new graph. For example:

        graph	{"id":1}
        vertex	{"id":136,"label":"A"}
        vertex	{"id":137,"label":"B"}
        edge	{"src":136,"targ":137,"label":"e"}

    Note: the spaces between the line type and {...} are tabs

Modes
    iterative                 bulk synchronous gSpan over every graph
    filter-refine             mine partitions independently then refine the
                              counts of patterns that may still be frequent

    filter-refine Options
        -n, partitions=<int>  number of partitions (default 1)
        -l, likeliness=<float> also report locally infrequent patterns with
                              at least this fraction of a partition
                              (default .05)

Reporters
    chain                     chain several reporters together (end the chain
                              with endchain)
    log                       log the patterns
    file                      write the patterns and a supports table to
                              files in the output dir
    dir                       write every pattern to its own directory
    count                     write the number of patterns by size
    index                     write codes and supports to an fs2 B+tree
    skip                      pass every n-th pattern to an inner reporter
    max                       pass only maximal patterns to an inner reporter
    heap-profile              write a heap profile per pattern

    log Options
        -l, level=<string>    log level the logger should use
        -p, prefix=<string>   a prefix to put before the log line

    file Options
        -p, patterns=<name>   the prefix of the patterns file
        -s, supports=<name>   the name of the supports file
        -f, format=<name>     veg (default) or dot

    dir Options
        -d, dir-name=<name>   name of the directory.
        -f, format=<name>     dot (default) or veg

    count Options
        -f, filename=<name>   name of the count file

    index Options
        -f, filename=<name>   name of the B+tree file (default patterns.bpt)

    skip Options
        -n, every=<int>       pass on every n-th pattern

    heap-profile Options
        -p, profile=<path>    where you want the heap-profile written

    Examples

        $ gspan -o /tmp/gspan --support=.1 ./data/graphs.veg.gz \
            iterative \
            chain log file

        $ gspan -o /tmp/gspan --support=.05 --directed --max-edges=6 \
            ./data/graphs.veg.gz \
            filter-refine -n 8 \
            chain count max file -p max-patterns endchain file
`
}

func main() {
	os.Exit(run())
}

func run() int {
	args, optargs, err := getopt.GetOpt(
		os.Args[1:],
		"ho:c:p:",
		[]string{
			"help",
			"output=", "config=",
			"modes", "reporters",
			"support=",
			"directed", "multigraph",
			"max-edges=", "min-edges=",
			"parallelism=", "cache-size=",
			"skip-log=",
			"cpu-profile=",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "could not process your arguments (perhaps you forgot a mode?) try:")
		fmt.Fprintf(os.Stderr, "$ %v iterative %v\n", os.Args[0], strings.Join(os.Args[1:], " "))
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	conf := config.Default()
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-c", "--config":
			conf, err = config.Load(oa.Arg())
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				cmd.Usage(cmd.ErrorCodes["config"])
			}
		}
	}
	if err := conf.FromEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmd.Usage(cmd.ErrorCodes["config"])
	}

	cpuProfile := ""
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			cmd.Usage(0)
		case "-c", "--config":
		case "-o", "--output":
			conf.Output = oa.Arg()
		case "--support":
			conf.MinSupport = cmd.ParseFloat(oa.Arg())
		case "--directed":
			conf.Directed = true
		case "--multigraph":
			conf.MultiGraph = true
		case "--max-edges":
			conf.MaxEdges = cmd.ParseInt(oa.Arg())
		case "--min-edges":
			conf.MinEdges = cmd.ParseInt(oa.Arg())
		case "-p", "--parallelism":
			conf.Parallelism = cmd.ParseInt(oa.Arg())
		case "--cache-size":
			conf.CacheSize = cmd.ParseInt(oa.Arg())
		case "--modes":
			fmt.Fprintln(os.Stderr, "Modes:")
			for k := range cmd.Modes {
				fmt.Fprintln(os.Stderr, "  ", k)
			}
			os.Exit(0)
		case "--reporters":
			fmt.Fprintln(os.Stderr, "Reporters:")
			for k := range cmd.Reporters {
				fmt.Fprintln(os.Stderr, "  ", k)
			}
			os.Exit(0)
		case "--skip-log":
			level := oa.Arg()
			errors.Logf("INFO", "not logging level %v", level)
			errors.SkipLogging[level] = true
		case "--cpu-profile":
			cpuProfile = cmd.AssertFile(oa.Arg())
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			cmd.Usage(cmd.ErrorCodes["opts"])
		}
	}

	if conf.Output == "" {
		fmt.Fprintf(os.Stderr, "You must supply an output dir (-o)\n")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	if err := conf.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmd.Usage(cmd.ErrorCodes["config"])
	}
	conf.Output = cmd.EmptyDir(conf.Output)

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	errors.Logf("INFO", "run %v support %v directed %v multigraph %v max-edges %v",
		conf.RunId, conf.MinSupport, conf.Directed, conf.MultiGraph, conf.MaxEdges)
	return cmd.Main(ctx, args, conf, cmd.Modes)
}
