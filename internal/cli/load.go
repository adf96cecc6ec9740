package cli

import (
	"context"
	"flag"
	"log"
	"os"

	"rowbinary"
	"rowbinary/internal/config"
	"rowbinary/internal/sink"
	"rowbinary/internal/streamio"
	"rowbinary/schema"
)

func runLoad(args []string) int {
	fs := flag.NewFlagSet("load", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)
	var (
		inputPath   string
		format      string
		schemaStr   string
		compression string
		configPath  string
		bufferSize  int
		redisAddr   string
		keyColumn   string
		keyPrefix   string
	)
	fs.StringVar(&inputPath, "input", "", "input file path (default: stdin)")
	fs.StringVar(&format, "format", "rowbinary-with-names-and-types", "'rowbinary' or 'rowbinary-with-names-and-types'")
	fs.StringVar(&schemaStr, "schema", "", "column schema \"name Type, name Type\" (required when format=rowbinary)")
	fs.StringVar(&compression, "compression", "", "'', 'zstd', 'lz4', or 'lzf'")
	fs.StringVar(&configPath, "config", "", "YAML config file supplying Redis connection details (required)")
	fs.IntVar(&bufferSize, "buffer-size", 0, "reader buffer size in bytes")
	fs.StringVar(&redisAddr, "redis-addr", "", "override the config file's redis.addr")
	fs.StringVar(&keyColumn, "key-column", "", "override the config file's redis.keyColumn")
	fs.StringVar(&keyPrefix, "key-prefix", "", "override the config file's redis.keyPrefix")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		log.Printf("failed to parse arguments: %v", err)
		return 1
	}
	visited := visitedFlags(fs)

	if configPath == "" {
		log.Println("--config is required (it supplies the Redis connection details)")
		return 2
	}
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
	redisCfg := sink.RedisConfig{
		Addr:      cfg.Redis.Addr,
		Password:  cfg.Redis.Password,
		DB:        cfg.Redis.DB,
		KeyPrefix: cfg.Redis.KeyPrefix,
		KeyColumn: cfg.Redis.KeyColumn,
	}
	if visited["redis-addr"] {
		redisCfg.Addr = redisAddr
	}
	if visited["key-column"] {
		redisCfg.KeyColumn = keyColumn
	}
	if visited["key-prefix"] {
		redisCfg.KeyPrefix = keyPrefix
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

	redisSink, err := sink.NewRedisSink(redisCfg)
	if err != nil {
		log.Printf("connecting to redis: %v", err)
		return 1
	}
	defer redisSink.Close()

	ctx := context.Background()
	count := 0
	for {
		done, err := r.IsComplete()
		if err != nil {
			log.Printf("checking stream: %v", err)
			return 1
		}
		if done {
			break
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
		if err := redisSink.WriteRow(ctx, row); err != nil {
			log.Printf("mirroring row %d: %v", count, err)
			return 1
		}
		count++
	}

	log.Printf("mirrored %d rows into redis", count)
	return 0
}
