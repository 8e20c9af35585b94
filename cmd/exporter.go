package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/kardianos/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"jarvis-cli/internal/client"
	"jarvis-cli/internal/config"
)

// Variables to hold flag values
var (
	expHost       string
	expPort       string
	serviceAction string // "install", "uninstall", "start", "stop"
)

// --- SERVICE WRAPPER ---

// program implements the kardianos/service interface
type program struct {
	exit   chan struct{}
	server *http.Server
	api    *client.JarvisClient
}

func (p *program) Start(s service.Service) error {
	// Start should not block. Do the actual work async.
	p.exit = make(chan struct{})
	go p.run()
	return nil
}

func (p *program) run() {
	registry := prometheus.NewRegistry()
	collector := &JarvisCollector{Client: p.api}
	registry.MustRegister(collector)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	addr := fmt.Sprintf(":%s", expPort)
	p.server = &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	log.Printf("Jarvis Exporter listening on %s", addr)

	// Blocking call to listen
	if err := p.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("HTTP Server error: %v", err)
	}
}

func (p *program) Stop(s service.Service) error {
	// Stop should not block. Signal the app to stop.
	log.Println("Stopping service...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if p.server != nil {
		if err := p.server.Shutdown(ctx); err != nil {
			log.Printf("Server forced to shutdown: %v", err)
		}
	}
	close(p.exit)
	return nil
}

// --- COLLECTOR LOGIC ---

// JarvisCollector scrapes the device on every /metrics pull.
type JarvisCollector struct {
	Client *client.JarvisClient
	Mutex  sync.Mutex
}

var (
	upDesc = prometheus.NewDesc(
		"jarvis_up", "Was the last scrape successful.", nil, nil,
	)
	scrapeDurationDesc = prometheus.NewDesc(
		"jarvis_scrape_duration_seconds", "Time taken to scrape the device API.", nil, nil,
	)
	alarmsCountDesc = prometheus.NewDesc(
		"jarvis_alarms_total", "Total alarms grouped by state.", []string{"state"}, nil,
	)
	alarmActiveDesc = prometheus.NewDesc(
		"jarvis_alarm_active", "Whether the alarm is switched on.", []string{"id", "time"}, nil,
	)
	alarmScheduledDesc = prometheus.NewDesc(
		"jarvis_alarm_scheduled", "Whether the alarm holds a scheduler slot.", []string{"id", "time"}, nil,
	)
	volumeDesc = prometheus.NewDesc(
		"jarvis_volume", "Configured playback volume (0.0 to 1.0).", nil, nil,
	)
	brightnessDesc = prometheus.NewDesc(
		"jarvis_max_brightness", "Configured maximum sunrise brightness in percent.", nil, nil,
	)
	audioActiveDesc = prometheus.NewDesc(
		"jarvis_audio_system_active", "1 for the active audio output system, 0 for the others.", []string{"id", "name"}, nil,
	)
)

func (c *JarvisCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- upDesc
	ch <- scrapeDurationDesc
	ch <- alarmsCountDesc
	ch <- alarmActiveDesc
	ch <- alarmScheduledDesc
	ch <- volumeDesc
	ch <- brightnessDesc
	ch <- audioActiveDesc
}

func (c *JarvisCollector) Collect(ch chan<- prometheus.Metric) {
	c.Mutex.Lock()
	defer c.Mutex.Unlock()
	start := time.Now()
	success := 1.0
	ctx := context.Background()

	// 1. Alarms
	if alarms, err := c.Client.GetAlarms(ctx); err == nil {
		stateCounts := map[string]float64{"active": 0, "inactive": 0, "scheduled": 0}
		for _, a := range alarms {
			active := 0.0
			if a.Active {
				active = 1.0
				stateCounts["active"]++
			} else {
				stateCounts["inactive"]++
			}
			scheduled := 0.0
			if a.Scheduled {
				scheduled = 1.0
				stateCounts["scheduled"]++
			}

			ch <- prometheus.MustNewConstMetric(alarmActiveDesc, prometheus.GaugeValue, active, a.AlarmID, a.Time)
			ch <- prometheus.MustNewConstMetric(alarmScheduledDesc, prometheus.GaugeValue, scheduled, a.AlarmID, a.Time)
		}
		for st, cnt := range stateCounts {
			ch <- prometheus.MustNewConstMetric(alarmsCountDesc, prometheus.GaugeValue, cnt, st)
		}
	} else {
		success = 0.0
		log.Printf("Error scraping alarms: %v", err)
	}

	// 2. Global settings
	if settings, err := c.Client.GetSettings(ctx); err == nil {
		ch <- prometheus.MustNewConstMetric(volumeDesc, prometheus.GaugeValue, settings.Volume)
		ch <- prometheus.MustNewConstMetric(brightnessDesc, prometheus.GaugeValue, settings.MaxBrightness)
	} else {
		success = 0.0
		log.Printf("Error scraping settings: %v", err)
	}

	// 3. Audio systems
	if systems, err := c.Client.GetAudioSystems(ctx); err == nil {
		for _, sys := range systems {
			active := 0.0
			if sys.Active {
				active = 1.0
			}
			ch <- prometheus.MustNewConstMetric(audioActiveDesc, prometheus.GaugeValue, active, sys.ID, sys.Name)
		}
	} else {
		success = 0.0
		log.Printf("Error scraping audio systems: %v", err)
	}

	ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, success)
	ch <- prometheus.MustNewConstMetric(scrapeDurationDesc, prometheus.GaugeValue, time.Since(start).Seconds())
}

// --- COMMAND ---

var exporterCmd = &cobra.Command{
	Use:   "exporter",
	Short: "Start Prometheus Exporter service",
	Long: `Starts a long-running HTTP server that exposes Jarvis device metrics.
Can be installed as a system service.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Resolve the device address (flag wins over stored config)
		host := strings.TrimRight(expHost, "/")
		if host == "" {
			host = config.BaseURL()
		}

		// 2. Define Service Configuration
		// The host is passed explicitly because the service environment does
		// not read the user's config file.
		svcConfig := &service.Config{
			Name:        "jarvis-exporter",
			DisplayName: "Jarvis Prometheus Exporter",
			Description: "Exposes Jarvis alarm device metrics to Prometheus",
			Arguments: []string{
				"exporter",
				"--host", host,
				"--port", expPort,
			},
		}

		prg := &program{
			api: client.New(client.ClientConfig{BaseURL: host}),
		}

		s, err := service.New(prg, svcConfig)
		if err != nil {
			log.Fatal(err)
		}

		// 3. Handle Service Control Actions (Install, Start, Stop, Uninstall)
		if serviceAction != "" {
			err = service.Control(s, serviceAction)
			if err != nil {
				log.Fatalf("Failed to %s service: %v", serviceAction, err)
			}
			fmt.Printf("Service action '%s' completed successfully.\n", serviceAction)
			return
		}

		// 4. Run the Service (Blocking)
		// This happens when the Service Manager starts the binary, OR when run interactively
		logger, err := s.Logger(nil)
		if err != nil {
			log.Fatal(err)
		}
		if err = s.Run(); err != nil {
			logger.Error(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(exporterCmd)
	exporterCmd.Flags().StringVar(&expHost, "host", "", "Device base URL (defaults to the configured one)")
	exporterCmd.Flags().StringVar(&expPort, "port", "9100", "Port to listen on")
	exporterCmd.Flags().StringVar(&serviceAction, "service", "", "Service action: install, uninstall, start, stop")
}
