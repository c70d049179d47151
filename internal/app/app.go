package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abrezinsky/electiondash/internal/auth"
	"github.com/abrezinsky/electiondash/internal/config"
	"github.com/abrezinsky/electiondash/internal/handlers"
	"github.com/abrezinsky/electiondash/internal/logger"
	"github.com/abrezinsky/electiondash/internal/repository"
	"github.com/abrezinsky/electiondash/internal/services"
	"github.com/abrezinsky/electiondash/internal/websocket"
	"github.com/abrezinsky/electiondash/pkg/feeds"
)

// shutdownTimeout bounds how long in-flight requests may finish on shutdown
const shutdownTimeout = 10 * time.Second

// App holds all application dependencies
type App struct {
	log       logger.Logger
	handlers  *handlers.Handlers
	store     *repository.FileStore
	newsCache *repository.NewsCache
	hub       *websocket.Hub
	baseURL   string
}

// New creates and initializes a new application instance
func New(log logger.Logger, cfg *config.Config) (*App, error) {
	return NewWithFeeds(log, cfg, feeds.NewHTTPClient(log))
}

// NewWithFeeds is New with an explicit feed client
func NewWithFeeds(log logger.Logger, cfg *config.Config, feedClient feeds.Client) (*App, error) {
	store, err := repository.New(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	newsCache, err := repository.NewNewsCache(filepath.Join(store.Root(), repository.NewsCacheFile))
	if err != nil {
		return nil, fmt.Errorf("failed to open news cache: %w", err)
	}

	// Initialize services
	electionService := services.NewElectionService(log, store)
	dataService := services.NewDataService(log, store)
	dashboardService := services.NewDashboardService(log, electionService, dataService)
	newsService := services.NewNewsService(log, store, newsCache, feedClient)
	newsService.SetTTL(cfg.NewsTTL)
	adminService := services.NewAdminService(log, store)

	// Initialize WebSocket hub and let writers announce changes through it
	hub := websocket.New(log)
	hub.Start()
	electionService.SetBroadcaster(hub)
	adminService.SetBroadcaster(hub)

	if cfg.AdminToken == "" {
		log.Warn("No admin token configured, admin API is disabled")
	}

	h := handlers.New(
		electionService,
		dataService,
		dashboardService,
		newsService,
		adminService,
		auth.NewGateway(cfg.AdminToken),
		hub,
		log,
		cfg.BaseURL,
	)

	return &App{
		log:       log,
		handlers:  h,
		store:     store,
		newsCache: newsCache,
		hub:       hub,
		baseURL:   cfg.BaseURL,
	}, nil
}

// Router returns the configured HTTP router
func (a *App) Router() chi.Router {
	return a.handlers.Router()
}

// Close performs graceful shutdown of app resources
func (a *App) Close() {
	if a.newsCache != nil {
		if err := a.newsCache.Close(); err != nil {
			a.log.Warn("Failed to close news cache", "error", err)
		}
		a.newsCache = nil
	}
}

// Run serves HTTP on addr until ctx is canceled, then drains in-flight requests
func (a *App) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return a.Serve(ctx, ln)
}

// Serve is Run on an existing listener
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	url := a.baseURL
	if url == "" {
		url = fmt.Sprintf("http://%s:%d", getPreferredIP(realNetworkProvider{}), listenPort(ln))
	}
	a.log.Info("Server starting", "url", url, "data", a.store.Root())
	a.log.Info("Dashboard URL", "url", url+"/dashboard")

	srv := &http.Server{
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.log.Info("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// DashboardURL is the local address of the dashboard page for addr
func DashboardURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://localhost" + addr + "/dashboard"
	}
	if host == "" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s/dashboard", net.JoinHostPort(host, port))
}

func listenPort(ln net.Listener) int {
	if tcp, ok := ln.Addr().(*net.TCPAddr); ok {
		return tcp.Port
	}
	return 0
}

// networkInterface wraps net.Interface for testing
type networkInterface interface {
	Flags() net.Flags
	Addrs() ([]net.Addr, error)
}

// realInterface wraps a real net.Interface
type realInterface struct {
	iface net.Interface
}

func (r realInterface) Flags() net.Flags {
	return r.iface.Flags
}

func (r realInterface) Addrs() ([]net.Addr, error) {
	return r.iface.Addrs()
}

// networkProvider is an interface for getting network interfaces (for testing)
type networkProvider interface {
	Interfaces() ([]networkInterface, error)
}

// realNetworkProvider implements networkProvider using actual net package
type realNetworkProvider struct{}

func (realNetworkProvider) Interfaces() ([]networkInterface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	result := make([]networkInterface, len(ifaces))
	for i, iface := range ifaces {
		result[i] = realInterface{iface: iface}
	}
	return result, nil
}

// getPreferredIP returns the best IPv4 address for LAN access, preferring
// private ranges and falling back to localhost.
func getPreferredIP(provider networkProvider) string {
	ifaces, err := provider.Interfaces()
	if err != nil {
		return "localhost"
	}

	var candidates []net.IP
	for _, iface := range ifaces {
		flags := iface.Flags()
		if flags&net.FlagUp == 0 || flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip == nil || ip.To4() == nil || ip.IsLoopback() {
				continue
			}
			candidates = append(candidates, ip)
		}
	}

	for _, ip := range candidates {
		ipStr := ip.String()
		if strings.HasPrefix(ipStr, "192.168.") ||
			strings.HasPrefix(ipStr, "10.") ||
			isPrivate172(ip) {
			return ipStr
		}
	}

	if len(candidates) > 0 {
		return candidates[0].String()
	}
	return "localhost"
}

// isPrivate172 checks if IP is in 172.16.0.0/12 range
func isPrivate172(ip net.IP) bool {
	if ip4 := ip.To4(); ip4 != nil {
		return ip4[0] == 172 && ip4[1] >= 16 && ip4[1] <= 31
	}
	return false
}
