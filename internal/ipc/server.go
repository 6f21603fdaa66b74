package ipc

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/strutbar"
	"github.com/1broseidon/strutbar/internal/runtimepath"
)

// Server answers control requests on a unix socket. Bar interaction goes
// through the bar's thread-safe surface: handles and atomic snapshots.
type Server struct {
	socketPath   string
	listener     net.Listener
	bar          *strutbar.Bar
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a control server for bar
func NewServer(bar *strutbar.Bar) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve control socket path: %w", err)
	}

	// Remove stale socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		bar:        bar,
		startTime:  time.Now(),
	}, nil
}

// Start begins listening for control connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create control socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("control socket listening on %s", s.socketPath)

	go s.acceptLoop()

	return nil
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("control accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection reads one JSON request line and answers it
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("control read error: %v", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("failed to marshal response: %v", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("failed to send response: %v", err)
	}
}

func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandStatus:
		return s.handleStatus()
	case CommandRedraw:
		s.bar.Redraw()
		resp, _ := NewOKResponse(nil)
		return resp
	case CommandStop:
		s.bar.Stop()
		resp, _ := NewOKResponse(nil)
		return resp
	default:
		return NewErrorResponse(fmt.Sprintf("unknown command: %s", req.Command))
	}
}

func (s *Server) handleStatus() *Response {
	geom := s.bar.Geometry()
	status := StatusData{
		Running:       s.bar.Running(),
		Components:    s.bar.ComponentCount(),
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		X:             geom.X,
		Y:             geom.Y,
		Width:         geom.Width,
		Height:        geom.Height,
	}

	resp, _ := NewOKResponse(status)
	return resp
}

func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop shuts the control server down and removes the socket
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
