package cli

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"golang.org/x/time/rate"

	"rowbinary"
	"rowbinary/internal/config"
	"rowbinary/internal/streamio"
	"rowbinary/schema"
)

func runDump(args []string) int {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)
	var (
		inputPath   string
		format      string
		schemaStr   string
		compression string
		configPath  string
		bufferSize  int
		tail        bool
		pollRate    float64
	)
	fs.StringVar(&inputPath, "input", "", "input file path (default: stdin)")
	fs.StringVar(&format, "format", "rowbinary-with-names-and-types", "'rowbinary' or 'rowbinary-with-names-and-types'")
	fs.StringVar(&schemaStr, "schema", "", "column schema \"name Type, name Type\" (required when format=rowbinary)")
	fs.StringVar(&compression, "compression", "", "'', 'zstd', 'lz4', or 'lzf'")
	fs.StringVar(&configPath, "config", "", "optional YAML config file supplying defaults")
	fs.IntVar(&bufferSize, "buffer-size", 0, "reader buffer size in bytes")
	fs.BoolVar(&tail, "tail", false, "keep polling the input for newly appended rows")
	fs.Float64Var(&pollRate, "rate", 5, "max polls per second in --tail mode")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		log.Printf("failed to parse arguments: %v", err)
		return 1
	}
	visited := visitedFlags(fs)

	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return errorToExitCode(err)
		}
		if !visited["format"] {
			format = cfg.Format
		}
		if !visited["compression"] {
			compression = cfg.Compression
		}
		if !visited["buffer-size"] {
			bufferSize = cfg.BufferSize
		}
	}

	if format == "rowbinary" && schemaStr == "" {
		log.Println("--schema is required when --format=rowbinary")
		return 2
	}

	in, err := openInput(inputPath)
	if err != nil {
		log.Printf("opening input: %v", err)
		return 1
	}
	defer in.Close()

	stream, err := streamio.WrapReader(in, compression)
	if err != nil {
		log.Printf("%v", err)
		return 1
	}

	r, err := rowbinary.NewReader(stream, rowbinary.Options{BufferSize: bufferSize})
	if err != nil {
		log.Printf("opening reader: %v", err)
		return 1
	}
	defer r.Close()

	var columns []schema.Column
	if format == "rowbinary-with-names-and-types" {
		columns, err = r.ReadColumns()
		if err != nil {
			log.Printf("reading header: %v", err)
			return 1
		}
	} else {
		columns, err = parseSchema(schemaStr)
		if err != nil {
			log.Printf("parsing --schema: %v", err)
			return 2
		}
	}

	var limiter *rate.Limiter
	if tail {
		limiter = rate.NewLimiter(rate.Limit(pollRate), 1)
	}

	enc := json.NewEncoder(os.Stdout)
	ctx := context.Background()
	for {
		done, err := r.IsComplete()
		if err != nil {
			log.Printf("checking stream: %v", err)
			return 1
		}
		if done {
			if !tail {
				break
			}
			if err := limiter.Wait(ctx); err != nil {
				log.Printf("tail wait: %v", err)
				return 1
			}
			continue
		}

		row := make(map[string]interface{}, len(columns))
		for _, col := range columns {
			v, err := rowbinary.ReadValue(r, col.Type)
			if err != nil {
				log.Printf("decoding column %q: %v", col.Name, err)
				return 1
			}
			row[col.Name] = v
		}
		if err := enc.Encode(row); err != nil {
			log.Printf("writing JSON: %v", err)
			return 1
		}
	}

	return 0
}
