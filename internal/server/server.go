package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/birthday-cards/internal/config"
)

// cacheItem stores one rendered artifact and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	mime         string
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// FeedServer serves the upcoming-birthday ICS feed and the latest rendered
// card PNG on localhost.
type FeedServer struct {
	// Both caches use atomic.Pointer for lock-free reads: the artifacts are
	// read often by clients but replaced only when the UI regenerates them,
	// so a mutex would add contention on the hot path for nothing.
	feed atomic.Pointer[cacheItem]
	card atomic.Pointer[cacheItem]

	Port string
}

// NewFeedServer creates a new instance of the server.
func NewFeedServer(port string) *FeedServer {
	return &FeedServer{
		Port: port,
	}
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *FeedServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteFeed, s.handleFeedRequest)
	mux.HandleFunc(config.RouteCard, s.handleCardRequest)

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      mux,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// UpdateFeed atomically replaces the served calendar content.
func (s *FeedServer) UpdateFeed(data []byte) {
	s.feed.Store(newCacheItem(data, config.MimeTextCalendar))
}

// UpdateCard atomically replaces the served card image.
func (s *FeedServer) UpdateCard(data []byte) {
	s.card.Store(newCacheItem(data, config.MimeImagePNG))
}

func newCacheItem(data []byte, mime string) *cacheItem {
	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	item := &cacheItem{
		data:         data,
		mime:         mime,
		etag:         etag,
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	}

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
	return item
}

// handleFeedRequest serves the ICS content with HTTP caching support.
func (s *FeedServer) handleFeedRequest(w http.ResponseWriter, r *http.Request) {
	s.serveItem(w, r, s.feed.Load(), config.HTTPMsgInitializing)
}

// handleCardRequest serves the latest rendered card PNG.
func (s *FeedServer) handleCardRequest(w http.ResponseWriter, r *http.Request) {
	s.serveItem(w, r, s.card.Load(), config.HTTPMsgNoCard)
}

// serveItem implements method validation, readiness, conditional headers,
// and body delivery for one cached artifact.
func (s *FeedServer) serveItem(w http.ResponseWriter, r *http.Request, item *cacheItem, notReadyMsg string) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, notReadyMsg, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set(config.HeaderContentType, item.mime)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}
