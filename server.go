package bluetoe

import "github.com/pkg/errors"

// A Server is a fixed, compile-time-described GATT attribute database. It
// answers Attribute Protocol requests over the L2CAP fixed channel and
// fills the advertising payload, per §6.2. A Server is immutable once
// Build has been called; AddService must not be called afterwards.
type Server struct {
	name     string
	services []*Service
	table    attributeTable
	built    bool
}

// NewServer creates a Server with the given options applied.
// See http://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis
// for more discussion of this pattern.
func NewServer(opts ...option) *Server {
	s := &Server{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddService registers a new Service with the server. All services must be
// added before calling Build.
func (s *Server) AddService(u UUID) *Service {
	if s.built {
		panic("bluetoe: cannot add a service after Build")
	}
	svc := &Service{uuid: u}
	s.services = append(s.services, svc)
	return svc
}

// Build lays out every added service (plus, if a name is configured, the
// Generic Access service) into the flat attribute table and freezes the
// server. It must be called exactly once before L2CAPInput or
// AdvertisingData are used.
func (s *Server) Build() error {
	if s.built {
		return errors.New("bluetoe: server already built")
	}

	services := s.services
	if s.name != "" {
		services = append([]*Service{newGAPService(s.name)}, services...)
	}

	table, err := buildAttributeTable(services)
	if err != nil {
		return errors.Wrap(err, "bluetoe: building attribute table")
	}

	s.table = table
	s.built = true
	return nil
}

// L2CAPInput processes one inbound ATT PDU and writes the response PDU
// into out, returning the number of bytes written. See §4.4.
func (s *Server) L2CAPInput(in, out []byte) int {
	return s.l2capInput(in, out)
}

// AdvertisingData fills buf with this server's AD records (flags, and the
// device name if configured), returning the number of bytes written.
// See §6.5.
func (s *Server) AdvertisingData(buf []byte) int {
	return s.advertisingData(buf)
}

// Name returns the configured device name, or "" if none was set.
func (s *Server) Name() string {
	return s.name
}

// option is a self-referential functional option for Server, following
// http://commandcenter.blogspot.com.au/2014/01/self-referential-functions-and-design.html.
type option func(*Server) option

// Option applies opts to the server, returning an option that would
// restore the last argument's previous value.
func (s *Server) Option(opts ...option) (prev option) {
	for _, opt := range opts {
		prev = opt(s)
	}
	return prev
}

// Name sets the device name, exposed via the Generic Access Service
// (0x1800) and via the advertising payload.
func Name(n string) option {
	return func(s *Server) option {
		prev := s.name
		s.name = n
		return Name(prev)
	}
}
