package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"practicehub/internal/logger"
	synchub "practicehub/internal/sync"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:7070", "TCP sync server address")
	pretty := flag.Bool("pretty", true, "pretty print JSON events")
	flag.Parse()

	log, err := logger.New("dev")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	for {
		if err := run(*addr, *pretty, os.Stdout, log); err != nil {
			log.Warn("sync-client disconnected", "addr", *addr, "error", err)
		}
		time.Sleep(1 * time.Second) // auto reconnect
	}
}

func run(addr string, pretty bool, out io.Writer, log *logger.Logger) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	log.Info("sync-client connected", "addr", addr)
	return printEvents(conn, pretty, out)
}

// printEvents copies newline-delimited events to out. Catalog refresh events
// get a one-line summary; anything else is echoed.
func printEvents(r io.Reader, pretty bool, out io.Writer) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Bytes()

		var ev synchub.CatalogEvent
		if err := json.Unmarshal(line, &ev); err == nil && ev.Type == synchub.EventCatalogRefreshed {
			fmt.Fprintf(out, "%s catalog refreshed from %s: %d practices, %d categories (fingerprint %s)\n",
				ev.At.Format(time.RFC3339), ev.Source, ev.Practices, ev.Categories, ev.Fingerprint)
			continue
		}

		if !pretty {
			fmt.Fprintln(out, string(line))
			continue
		}
		var obj map[string]any
		if err := json.Unmarshal(line, &obj); err != nil {
			// not JSON? print raw
			fmt.Fprintln(out, string(line))
			continue
		}
		b, _ := json.MarshalIndent(obj, "", "  ")
		fmt.Fprintln(out, string(b))
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return io.EOF
}
