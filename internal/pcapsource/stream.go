package pcapsource

import (
	"log/slog"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/reassembly"
	"github.com/google/uuid"

	"github.com/dnp3kit/dissect/dnp3"
)

// DissectorFactory builds a fresh *dnp3.Dissector for one directional TCP
// flow. Implementations typically close over a shared dnp3.Sink so that
// every flow's events land in the same place.
type DissectorFactory func() (*dnp3.Dissector, error)

// tcpStream represents a pair of uni-directional tcpFlows. It implements
// reassembly.Stream to receive reassembled packets for BOTH flows, routing
// each to the correct tcpFlow.
type tcpStream struct {
	bidiID  uuid.UUID
	netFlow gopacket.Flow

	flows map[reassembly.TCPFlowDirection]*tcpFlow

	newDissector DissectorFactory
	logger       *slog.Logger
}

func newTCPStream(netFlow gopacket.Flow, newDissector DissectorFactory, logger *slog.Logger) *tcpStream {
	return &tcpStream{
		bidiID:       uuid.New(),
		netFlow:      netFlow,
		newDissector: newDissector,
		logger:       logger,
	}
}

func (c *tcpStream) Accept(tcp *layers.TCP, _ gopacket.CaptureInfo,
	dir reassembly.TCPFlowDirection, _ reassembly.Sequence,
	start *bool, _ reassembly.AssemblerContext) bool {
	// Force the stream to start even without an observed SYN: a capture may
	// begin mid-connection and we still want whatever data follows.
	*start = true

	if c.flows == nil {
		tf, _ := gopacket.FlowFromEndpoints(
			layers.NewTCPPortEndpoint(tcp.SrcPort),
			layers.NewTCPPortEndpoint(tcp.DstPort),
		)

		d1, err := c.newDissector()
		if err != nil {
			c.logger.Error("failed to create dissector for flow", slog.Any("err", err))
			return false
		}
		d2, err := c.newDissector()
		if err != nil {
			c.logger.Error("failed to create dissector for flow", slog.Any("err", err))
			return false
		}

		s1 := newTCPFlow(c.bidiID, c.netFlow, tf, d1, c.logger)
		s2 := newTCPFlow(c.bidiID, c.netFlow.Reverse(), tf.Reverse(), d2, c.logger)
		c.flows = map[reassembly.TCPFlowDirection]*tcpFlow{
			dir:           s1,
			dir.Reverse(): s2,
		}
	}

	// Accept everything: we're interested in detecting DNP3 traffic
	// regardless of whether the TCP stack would consider the segment valid.
	return true
}

func (c *tcpStream) ReassembledSG(sg reassembly.ScatterGather, ac reassembly.AssemblerContext) {
	if c.flows == nil {
		return
	}
	dir, _, _, _ := sg.Info()
	c.flows[dir].reassembled(sg, ac)
}

func (c *tcpStream) ReassemblyComplete(_ reassembly.AssemblerContext) bool {
	for _, s := range c.flows {
		s.reassemblyComplete()
	}
	return true
}
