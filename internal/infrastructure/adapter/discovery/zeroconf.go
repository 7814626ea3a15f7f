package discovery

import (
	"fmt"

	coreport "github.com/columbia6/time/internal/domain/port/core"
	"github.com/enbility/zeroconf/v3"
)

const (
	// ServiceType is the mDNS service type advertised on the local network
	ServiceType = "_timekit._tcp"

	// APIVersion is published in the TXT records so clients can pick a
	// compatible endpoint before connecting
	APIVersion = "v1"
)

// Advertiser announces the HTTP service on the local network via mDNS
type Advertiser struct {
	server *zeroconf.Server
	logger coreport.Logger
}

// NewAdvertiser registers the service with the given instance name and
// domain. The returned advertiser keeps announcing until Shutdown.
func NewAdvertiser(instance, domain string, port int, logger coreport.Logger) (*Advertiser, error) {
	txt := []string{
		"api=" + APIVersion,
		fmt.Sprintf("port=%d", port),
	}

	// nil interfaces means all multicast-capable interfaces
	server, err := zeroconf.Register(instance, ServiceType, domain, port, txt, nil)
	if err != nil {
		logger.Error("Failed to register mDNS service", map[string]any{
			"instance": instance,
			"domain":   domain,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("mdns registration failed: %w", err)
	}

	logger.Info("Service advertised on local network", map[string]any{
		"instance": instance,
		"service":  ServiceType,
		"domain":   domain,
		"port":     port,
	})

	return &Advertiser{
		server: server,
		logger: logger,
	}, nil
}

// Shutdown stops the mDNS announcements
func (a *Advertiser) Shutdown() {
	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
		a.logger.Info("Service discovery stopped", nil)
	}
}
