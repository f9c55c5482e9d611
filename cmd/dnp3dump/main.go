// Command dnp3dump dissects DNP3-over-TCP traffic from a capture file (or a
// live interface) and prints every event the core pipeline emits.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dnp3kit/dissect/dnp3"
	"github.com/dnp3kit/dissect/internal/pcapsource"
)

func main() {
	var (
		capFile  = flag.String("r", "", "read packets from this capture file")
		iface    = flag.String("i", "", "read packets live from this interface")
		bpf      = flag.String("bpf", fmt.Sprintf("tcp port %d", pcapsource.DefaultPort), "BPF filter applied to the capture")
		capacity = flag.Int("context-capacity", dnp3.DefaultContextCapacity, "max tracked (source, destination) pairs per flow")
		verbose  = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *capFile == "" && *iface == "" {
		fmt.Fprintln(os.Stderr, "dnp3dump: one of -r (capture file) or -i (interface) is required")
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	events := make(chan dnp3.Event, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range events {
			fmt.Println(e.Print())
		}
	}()

	newDissector := func() (*dnp3.Dissector, error) {
		return dnp3.New(
			dnp3.WithLogger(logger),
			dnp3.WithSink(dnp3.ChannelSink(events)),
			dnp3.WithContextCapacity(*capacity),
		)
	}

	sourceOpts := []pcapsource.Option{pcapsource.WithBPFFilter(*bpf)}
	if *iface != "" {
		sourceOpts = append(sourceOpts, pcapsource.WithLiveInterface(*iface))
	} else {
		sourceOpts = append(sourceOpts, pcapsource.WithOfflineFile(*capFile))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := pcapsource.Run(ctx, logger, newDissector, sourceOpts...)
	close(events)
	<-done

	if err != nil && err != context.Canceled {
		logger.Error("capture failed", slog.Any("err", err))
		os.Exit(1)
	}
}
