// Package pcapsource wires gopacket's TCP reassembly onto dnp3.Dissector so
// that DNP3-over-TCP traffic in a capture file (or on a live interface) can
// be dissected end to end. It carries none of the core dissection
// invariants; it exists to make the repository runnable against real
// capture input.
package pcapsource

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/reassembly"
)

// Run reads packets from a Reader built per opts, reassembles TCP flows,
// and hands each flow's byte stream to a dissector obtained from
// newDissector. It blocks until the packet source is exhausted or ctx is
// cancelled.
func Run(ctx context.Context, logger *slog.Logger, newDissector DissectorFactory, opt ...Option) error {
	opts := NewOptions()
	for _, o := range opt {
		o(&opts)
	}

	var reader Reader
	if opts.Live {
		reader = NewDeviceReader(opts.ReadName, opts.BPFilter)
	} else {
		reader = NewFileReader(opts.ReadName, opts.BPFilter)
	}

	packets, err := reader.Capture(ctx)
	if err != nil {
		return err
	}

	streamFactory := newTCPStreamFactory(newDissector, logger)
	streamPool := reassembly.NewStreamPool(streamFactory)
	assembler := reassembly.NewAssembler(streamPool)
	assembler.AssemblerOptions.MaxBufferedPagesTotal = opts.MaxBufferedPagesTotal
	assembler.AssemblerOptions.MaxBufferedPagesPerConnection = opts.MaxBufferedPagesPerConnection

	flushTimeout := time.Duration(opts.StreamFlushTimeoutSeconds) * time.Second
	closeTimeout := time.Duration(opts.StreamCloseTimeoutSeconds) * time.Second

	ticker := time.NewTicker(flushTimeout / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			assembler.FlushAll()
			return ctx.Err()

		case packet, more := <-packets:
			if !more || packet == nil {
				// Flushes and closes every remaining flow, delivering whatever
				// bytes the assembler is still holding.
				assembler.FlushAll()
				return nil
			}
			assemblePacket(assembler, packet, logger)

		case <-ticker.C:
			now := time.Now()
			flushed, closed := assembler.FlushWithOptions(reassembly.FlushOptions{
				T:  now.Add(-flushTimeout),
				TC: now.Add(-closeTimeout),
			})
			if flushed != 0 || closed != 0 {
				logger.Debug("assembler flush", slog.Int("flushed", flushed), slog.Int("closed", closed))
			}
		}
	}
}

func assemblePacket(assembler *reassembly.Assembler, packet gopacket.Packet, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic while assembling packet", slog.Any("recovered", r))
		}
	}()

	if packet.NetworkLayer() == nil || packet.TransportLayer() == nil {
		return
	}

	tcp, ok := packet.TransportLayer().(*layers.TCP)
	if !ok {
		// DNP3-over-TCP only; non-TCP transports carry nothing we dissect.
		return
	}

	assembler.AssembleWithContext(packet.NetworkLayer().NetworkFlow(), tcp,
		contextFromTCPPacket(packet, tcp))
}

// assemblerCtxWithSeq implements reassembly.AssemblerContext, carrying the
// TCP sequence/ack numbers gopacket's reassembly package needs alongside
// capture metadata.
type assemblerCtxWithSeq struct {
	ci       gopacket.CaptureInfo
	seq, ack reassembly.Sequence
}

func contextFromTCPPacket(p gopacket.Packet, t *layers.TCP) *assemblerCtxWithSeq {
	return &assemblerCtxWithSeq{
		ci:  p.Metadata().CaptureInfo,
		seq: reassembly.Sequence(t.Seq),
		ack: reassembly.Sequence(t.Ack),
	}
}

func (c *assemblerCtxWithSeq) GetCaptureInfo() gopacket.CaptureInfo {
	return c.ci
}
