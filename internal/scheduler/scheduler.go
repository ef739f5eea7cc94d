package scheduler

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"marketpulse/server/config"
	"marketpulse/server/internal/analysis"
	"marketpulse/server/internal/models"
)

// ForecastWarmer computes a forecast; satisfied by *analysis.Service.
type ForecastWarmer interface {
	GetPriceForecast(ctx context.Context, query analysis.ForecastQuery) (*models.ForecastResult, error)
}

// ResultStore receives warmed results; satisfied by *cache.ForecastCache.
type ResultStore interface {
	Set(ctx context.Context, key string, result *models.ForecastResult) error
}

// Scheduler keeps the forecast cache warm by recomputing forecasts for every
// configured city on a fixed interval, so report requests rarely pay the full
// computation on a cache miss.
type Scheduler struct {
	service  ForecastWarmer
	store    ResultStore
	cityList func() ([]string, error)
	interval time.Duration
	logger   *logrus.Logger
	stopChan chan struct{}
	wg       sync.WaitGroup
	jobMutex sync.Mutex // Ensures sequential job execution
}

// NewScheduler creates a new scheduler. cityList is queried on every run so
// newly configured regions are picked up without a restart.
func NewScheduler(service ForecastWarmer, store ResultStore, cityList func() ([]string, error), interval time.Duration, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Scheduler{
		service:  service,
		store:    store,
		cityList: cityList,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start begins the scheduled warm-up runs, including one immediately.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.runScheduler()
}

func (s *Scheduler) runScheduler() {
	defer s.wg.Done()

	// Warm the cache once on startup
	go s.warmForecasts()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.warmForecasts()
		}
	}
}

// warmForecasts recomputes and stores the default forecast for every
// configured city sequentially.
func (s *Scheduler) warmForecasts() {
	s.jobMutex.Lock()
	defer s.jobMutex.Unlock()

	cities, err := s.cityList()
	if err != nil {
		s.logger.WithError(err).Error("Failed to load city list for cache warming")
		return
	}

	s.logger.WithField("cities", len(cities)).Info("Starting forecast warm-up run")
	for _, city := range cities {
		s.warmCity(city)
	}
	s.logger.Info("Completed forecast warm-up run")
}

func (s *Scheduler) warmCity(city string) {
	normalizedCity := config.NormalizeCity(city)
	query := analysis.ForecastQuery{
		City:           city,
		LookbackMonths: analysis.DefaultLookbackMonths,
		ForecastMonths: analysis.DefaultForecastMonths,
	}

	result, err := s.service.GetPriceForecast(context.Background(), query)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"city":            city,
			"normalized_city": normalizedCity,
		}).Error("Forecast warm-up failed")
		return
	}

	if result.Success {
		if err := s.store.Set(context.Background(), query.CacheKey(), result); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"city":            city,
				"normalized_city": normalizedCity,
			}).Error("Failed to cache warmed forecast")
			return
		}
	}

	s.logger.WithFields(logrus.Fields{
		"city":            city,
		"normalized_city": normalizedCity,
		"success":         result.Success,
		"data_points":     result.DataPoints,
	}).Info("Forecast warm-up completed")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}
