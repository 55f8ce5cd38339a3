package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP
// =============================================================================

var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Storage
// =============================================================================

// DbQueryDuration is observed by repositories through DbTimer.
var DbQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	},
	[]string{"service", "operation", "table"},
)

var DbErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "db_errors_total",
		Help: "Total number of database errors",
	},
	[]string{"service", "operation"},
)

var RedisOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "redis_operation_duration_seconds",
		Help:    "Duration of Redis operations in seconds",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	},
	[]string{"service", "operation"},
)

var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka
// =============================================================================

var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"},
)

// =============================================================================
// Drinks domain
// =============================================================================

var VotesCast = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "drinks_votes_cast_total",
		Help: "Total number of ballots cast or changed",
	},
)

// FeaturedRotations counts daily rotations by how the drink was chosen.
var FeaturedRotations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "drinks_featured_rotations_total",
		Help: "Total number of drink-of-the-day rotations",
	},
	[]string{"source"}, // votes, random
)

var RatingsCreated = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "drinks_ratings_created_total",
		Help: "Total number of ratings created",
	},
)

var RatingValues = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "drinks_rating_value",
		Help:    "Distribution of submitted rating values",
		Buckets: []float64{0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4, 4.5, 5},
	},
)

var ReviewsAdded = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "drinks_reviews_added_total",
		Help: "Total number of reviews added",
	},
)

// ValidationFailures counts rejected inputs per engine.
var ValidationFailures = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "drinks_validation_failures_total",
		Help: "Total number of inputs rejected by domain validation",
	},
	[]string{"kind"}, // rating, review, query
)
