package main

import (
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
)

const (
	startingMessage  = "Starting BARQ Lite…"
	listeningMessage = "Listening on port %d"
)

// Server is a running responder together with its event log
type Server struct {
	Port     int // bound port
	events   *EventLog
	http     *http.Server
	errorLog *io.PipeWriter
	done     chan error
}

// Start opens the event log, binds the listener and begins serving in the
// background. The event log is closed again if the port cannot be bound.
func Start(config Config) (*Server, error) {
	events, err := OpenEventLog(config.LogFile)
	if err != nil {
		return nil, err
	}
	if config.Console {
		events.MirrorTo(os.Stdout)
	}

	events.Log(startingMessage)

	listener, err := net.Listen("tcp", fmt.Sprintf("0.0.0.0:%d", config.Port))
	if err != nil {
		events.Close()
		return nil, bindError(config.Port, err)
	}

	errorLog := logrus.StandardLogger().WriterLevel(logrus.WarnLevel)
	s := &Server{
		Port:   listener.Addr().(*net.TCPAddr).Port,
		events: events,
		http: &http.Server{
			Handler:  newRootHandler(events),
			ErrorLog: log.New(errorLog, "", 0),
		},
		errorLog: errorLog,
		done:     make(chan error, 1),
	}

	go func() {
		s.done <- s.http.Serve(listener)
	}()

	events.Logf(listeningMessage, s.Port)
	return s, nil
}

// Wait blocks until the server stops serving and returns the reason.
func (s *Server) Wait() error {
	return <-s.done
}

// Close stops the listener, drops open connections and closes the event log.
func (s *Server) Close() error {
	err := s.http.Close()
	s.errorLog.Close()
	if cerr := s.events.Close(); err == nil {
		err = cerr
	}
	return err
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	config, err := loadConfig(os.LookupEnv)
	if err != nil {
		logrus.Fatalf("Error reading configuration: %v", err)
	}
	logrus.SetLevel(config.LogLevel)

	server, err := Start(config)
	if err != nil {
		logrus.Fatalf("Error starting BARQ Lite: %v", err)
	}
	logrus.Debugf("Serving on 0.0.0.0:%d, logging to %s", server.Port, config.LogFile)

	logrus.Fatalf("Server stopped: %v", server.Wait())
}
