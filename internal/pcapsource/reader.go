package pcapsource

import (
	"context"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcap"
	"github.com/pkg/errors"
)

// The same default as tcpdump.
const defaultSnapLen = 262144

// Reader produces a channel of captured packets, closed once the capture
// source is exhausted or ctx is cancelled.
type Reader interface {
	Capture(ctx context.Context) (<-chan gopacket.Packet, error)
}

// FileReader reads packets from an offline capture file.
type FileReader struct {
	path     string
	bpfilter string
}

func NewFileReader(path, bpfilter string) *FileReader {
	return &FileReader{path: path, bpfilter: bpfilter}
}

func (r *FileReader) Capture(ctx context.Context) (<-chan gopacket.Packet, error) {
	handle, err := pcap.OpenOffline(r.path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open capture file %s", r.path)
	}
	if r.bpfilter != "" {
		if err := handle.SetBPFFilter(r.bpfilter); err != nil {
			handle.Close()
			return nil, errors.Wrap(err, "failed to set BPF filter")
		}
	}

	out := make(chan gopacket.Packet)
	go func() {
		defer handle.Close()
		defer close(out)

		source := gopacket.NewPacketSource(handle, handle.LinkType())
		for packet := range source.Packets() {
			select {
			case <-ctx.Done():
				return
			case out <- packet:
			}
		}
	}()

	return out, nil
}

// DeviceReader reads packets live from a network interface.
type DeviceReader struct {
	iface    string
	bpfilter string
}

func NewDeviceReader(iface, bpfilter string) *DeviceReader {
	return &DeviceReader{iface: iface, bpfilter: bpfilter}
}

func (r *DeviceReader) Capture(ctx context.Context) (<-chan gopacket.Packet, error) {
	handle, err := pcap.OpenLive(r.iface, defaultSnapLen, true, pcap.BlockForever)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open interface %s", r.iface)
	}
	if r.bpfilter != "" {
		if err := handle.SetBPFFilter(r.bpfilter); err != nil {
			handle.Close()
			return nil, errors.Wrap(err, "failed to set BPF filter")
		}
	}

	source := gopacket.NewPacketSource(handle, handle.LinkType())
	pktChan := source.Packets()

	out := make(chan gopacket.Packet, 10)
	go func() {
		defer close(out)
		defer handle.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case packet, more := <-pktChan:
				if !more {
					return
				}
				select {
				case <-ctx.Done():
					return
				case out <- packet:
				}
			}
		}
	}()

	return out, nil
}
