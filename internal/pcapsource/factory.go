package pcapsource

import (
	"log/slog"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/reassembly"
)

// tcpStreamFactory implements reassembly.StreamFactory.
type tcpStreamFactory struct {
	newDissector DissectorFactory
	logger       *slog.Logger
}

func newTCPStreamFactory(newDissector DissectorFactory, logger *slog.Logger) *tcpStreamFactory {
	return &tcpStreamFactory{newDissector: newDissector, logger: logger}
}

func (fact *tcpStreamFactory) New(netFlow, _ gopacket.Flow, _ *layers.TCP,
	_ reassembly.AssemblerContext) reassembly.Stream {
	return newTCPStream(netFlow, fact.newDissector, fact.logger)
}
